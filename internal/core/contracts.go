// Copyright (c) 2026 Leasemaster Team
// Leasemaster - vehicle leasing management system
// This source code is licensed under the MIT license found in the LICENSE file.

package core

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/toeirei/leasemaster/internal/auth"
	"github.com/toeirei/leasemaster/internal/db"
	"github.com/toeirei/leasemaster/internal/logging"
	"github.com/toeirei/leasemaster/internal/model"
)

// ContractDetails is a contract together with the rows it references and
// the payments received for it.
type ContractDetails struct {
	Contract model.LeasingContract
	Client   model.Client
	Vehicle  model.Vehicle
	Payments []model.Payment
	// Paid is the sum of all payment amounts.
	Paid decimal.Decimal
}

// ListContracts returns all leasing contracts.
func (l *Leasing) ListContracts(ctx context.Context) ([]model.LeasingContract, error) {
	var out []model.LeasingContract
	err := l.run(ctx, auth.PermRead, func(ctx context.Context, r *db.Repos) error {
		var err error
		out, err = r.Contracts.List(ctx)
		return err
	})
	return out, err
}

// ContractDetails loads a contract with its client, vehicle and payments
// from one consistent snapshot.
func (l *Leasing) ContractDetails(ctx context.Context, id int64) (*ContractDetails, error) {
	var out ContractDetails
	err := l.run(ctx, auth.PermRead, func(ctx context.Context, r *db.Repos) error {
		c, err := r.Contracts.Get(ctx, id)
		if err != nil {
			return err
		}
		client, err := r.Clients.Get(ctx, c.ClientID)
		if err != nil {
			return err
		}
		vehicle, err := r.Vehicles.Get(ctx, c.VehicleID)
		if err != nil {
			return err
		}
		payments, err := r.Payments.ListByContract(ctx, id)
		if err != nil {
			return err
		}
		out = ContractDetails{Contract: *c, Client: *client, Vehicle: *vehicle, Payments: payments, Paid: decimal.Zero}
		for _, p := range payments {
			out.Paid = out.Paid.Add(p.Amount)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateContract validates c, checks that its client and vehicle exist and
// stores it.
func (l *Leasing) CreateContract(ctx context.Context, c model.LeasingContract) (int64, error) {
	if err := l.gate.Authorize(auth.PermContractsWrite); err != nil {
		return 0, err
	}
	c.StartDate, c.EndDate = model.Day(c.StartDate), model.Day(c.EndDate)
	if err := c.Validate(); err != nil {
		return 0, err
	}
	var id int64
	err := l.store.Session(ctx, func(ctx context.Context, r *db.Repos) error {
		var err error
		id, err = r.Contracts.Create(ctx, c)
		return err
	})
	if err == nil {
		logging.Infof("leasing contract #%d created: client %d, vehicle %d", id, c.ClientID, c.VehicleID)
	}
	return id, err
}

// UpdateContract applies the supplied fields of p. The merged contract is
// validated again, so a patch cannot move end_date before start_date.
func (l *Leasing) UpdateContract(ctx context.Context, id int64, p model.ContractPatch) (bool, error) {
	if err := l.gate.Authorize(auth.PermContractsWrite); err != nil {
		return false, err
	}
	if err := p.Validate(); err != nil {
		return false, err
	}
	var ok bool
	err := l.store.Session(ctx, func(ctx context.Context, r *db.Repos) error {
		var err error
		ok, err = r.Contracts.Update(ctx, id, p)
		return err
	})
	return ok, err
}

// DeleteContract removes a contract under the configured delete policy.
func (l *Leasing) DeleteContract(ctx context.Context, id int64) (bool, error) {
	var ok bool
	err := l.run(ctx, auth.PermContractsWrite, func(ctx context.Context, r *db.Repos) error {
		var err error
		ok, err = r.Contracts.Delete(ctx, id, l.opts.DeletePolicy)
		return err
	})
	if ok {
		logging.Infof("leasing contract #%d deleted (policy %s)", id, l.opts.DeletePolicy)
	}
	return ok, err
}
