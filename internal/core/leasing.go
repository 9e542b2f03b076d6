// Copyright (c) 2026 Leasemaster Team
// Leasemaster - vehicle leasing management system
// This source code is licensed under the MIT license found in the LICENSE file.

// Package core defines the record-management façade used by the UI layers
// (CLI and interactive menu). Every operation checks the caller's permission,
// validates its input, and then runs in exactly one store transaction.
package core // import "github.com/toeirei/leasemaster/internal/core"

import (
	"context"

	"github.com/toeirei/leasemaster/internal/auth"
	"github.com/toeirei/leasemaster/internal/db"
	"github.com/toeirei/leasemaster/internal/model"
)

// Options configures a Leasing façade.
type Options struct {
	// DeletePolicy decides what happens to dependents of a deleted row.
	DeletePolicy model.DeletePolicy
	// DBType and DSN identify the store for maintenance.
	DBType string
	DSN    string
}

// Leasing is the record-management façade.
type Leasing struct {
	store *db.Store
	creds *auth.Credentials
	gate  *auth.Gate
	opts  Options
}

// New builds the façade. An empty delete policy means DeleteRestrict.
func New(store *db.Store, creds *auth.Credentials, gate *auth.Gate, opts Options) *Leasing {
	if opts.DeletePolicy == "" {
		opts.DeletePolicy = model.DeleteRestrict
	}
	return &Leasing{store: store, creds: creds, gate: gate, opts: opts}
}

// DeletePolicy returns the active delete policy.
func (l *Leasing) DeletePolicy() model.DeletePolicy { return l.opts.DeletePolicy }

// Gate returns the authentication gate the façade checks against.
func (l *Leasing) Gate() *auth.Gate { return l.gate }

// Principal returns the logged-in principal, or nil.
func (l *Leasing) Principal() *model.Principal { return l.gate.Principal() }

// run authorizes perm and then runs fn in one transaction.
func (l *Leasing) run(ctx context.Context, perm auth.Permission, fn func(ctx context.Context, r *db.Repos) error) error {
	if err := l.gate.Authorize(perm); err != nil {
		return err
	}
	return l.store.Session(ctx, fn)
}
