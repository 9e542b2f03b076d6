// Copyright (c) 2026 Leasemaster Team
// Leasemaster - vehicle leasing management system
// This source code is licensed under the MIT license found in the LICENSE file.

package core

import (
	"context"

	"github.com/toeirei/leasemaster/internal/auth"
	"github.com/toeirei/leasemaster/internal/db"
	"github.com/toeirei/leasemaster/internal/logging"
	"github.com/toeirei/leasemaster/internal/model"
)

// ListClients returns all clients.
func (l *Leasing) ListClients(ctx context.Context) ([]model.Client, error) {
	var out []model.Client
	err := l.run(ctx, auth.PermRead, func(ctx context.Context, r *db.Repos) error {
		var err error
		out, err = r.Clients.List(ctx)
		return err
	})
	return out, err
}

// GetClient returns one client or db.ErrNotFound.
func (l *Leasing) GetClient(ctx context.Context, id int64) (*model.Client, error) {
	var out *model.Client
	err := l.run(ctx, auth.PermRead, func(ctx context.Context, r *db.Repos) error {
		var err error
		out, err = r.Clients.Get(ctx, id)
		return err
	})
	return out, err
}

// CreateClient validates c and stores it.
func (l *Leasing) CreateClient(ctx context.Context, c model.Client) (int64, error) {
	if err := l.gate.Authorize(auth.PermClientsWrite); err != nil {
		return 0, err
	}
	if err := c.Validate(); err != nil {
		return 0, err
	}
	var id int64
	err := l.store.Session(ctx, func(ctx context.Context, r *db.Repos) error {
		var err error
		id, err = r.Clients.Create(ctx, c)
		return err
	})
	if err == nil {
		logging.Infof("client #%d created: %s", id, c)
	}
	return id, err
}

// UpdateClient applies the supplied fields of p.
func (l *Leasing) UpdateClient(ctx context.Context, id int64, p model.ClientPatch) (bool, error) {
	if err := l.gate.Authorize(auth.PermClientsWrite); err != nil {
		return false, err
	}
	if err := p.Validate(); err != nil {
		return false, err
	}
	var ok bool
	err := l.store.Session(ctx, func(ctx context.Context, r *db.Repos) error {
		var err error
		ok, err = r.Clients.Update(ctx, id, p)
		return err
	})
	return ok, err
}

// DeleteClient removes a client under the configured delete policy.
func (l *Leasing) DeleteClient(ctx context.Context, id int64) (bool, error) {
	var ok bool
	err := l.run(ctx, auth.PermClientsWrite, func(ctx context.Context, r *db.Repos) error {
		var err error
		ok, err = r.Clients.Delete(ctx, id, l.opts.DeletePolicy)
		return err
	})
	if ok {
		logging.Infof("client #%d deleted (policy %s)", id, l.opts.DeletePolicy)
	}
	return ok, err
}
