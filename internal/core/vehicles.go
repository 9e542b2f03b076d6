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

// ListVehicles returns all vehicles.
func (l *Leasing) ListVehicles(ctx context.Context) ([]model.Vehicle, error) {
	var out []model.Vehicle
	err := l.run(ctx, auth.PermRead, func(ctx context.Context, r *db.Repos) error {
		var err error
		out, err = r.Vehicles.List(ctx)
		return err
	})
	return out, err
}

// GetVehicle returns one vehicle or db.ErrNotFound.
func (l *Leasing) GetVehicle(ctx context.Context, id int64) (*model.Vehicle, error) {
	var out *model.Vehicle
	err := l.run(ctx, auth.PermRead, func(ctx context.Context, r *db.Repos) error {
		var err error
		out, err = r.Vehicles.Get(ctx, id)
		return err
	})
	return out, err
}

func (l *Leasing) CreateVehicle(ctx context.Context, v model.Vehicle) (int64, error) {
	if err := l.gate.Authorize(auth.PermVehiclesWrite); err != nil {
		return 0, err
	}
	if err := v.Validate(); err != nil {
		return 0, err
	}
	var id int64
	err := l.store.Session(ctx, func(ctx context.Context, r *db.Repos) error {
		var err error
		id, err = r.Vehicles.Create(ctx, v)
		return err
	})
	if err == nil {
		logging.Infof("vehicle #%d created: %s", id, v)
	}
	return id, err
}

func (l *Leasing) UpdateVehicle(ctx context.Context, id int64, p model.VehiclePatch) (bool, error) {
	if err := l.gate.Authorize(auth.PermVehiclesWrite); err != nil {
		return false, err
	}
	if err := p.Validate(); err != nil {
		return false, err
	}
	var ok bool
	err := l.store.Session(ctx, func(ctx context.Context, r *db.Repos) error {
		var err error
		ok, err = r.Vehicles.Update(ctx, id, p)
		return err
	})
	return ok, err
}

// DeleteVehicle removes a vehicle under the configured delete policy.
func (l *Leasing) DeleteVehicle(ctx context.Context, id int64) (bool, error) {
	var ok bool
	err := l.run(ctx, auth.PermVehiclesWrite, func(ctx context.Context, r *db.Repos) error {
		var err error
		ok, err = r.Vehicles.Delete(ctx, id, l.opts.DeletePolicy)
		return err
	})
	if ok {
		logging.Infof("vehicle #%d deleted (policy %s)", id, l.opts.DeletePolicy)
	}
	return ok, err
}
