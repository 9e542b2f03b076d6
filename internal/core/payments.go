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

// ListPayments returns all payments.
func (l *Leasing) ListPayments(ctx context.Context) ([]model.Payment, error) {
	var out []model.Payment
	err := l.run(ctx, auth.PermRead, func(ctx context.Context, r *db.Repos) error {
		var err error
		out, err = r.Payments.List(ctx)
		return err
	})
	return out, err
}

// ListContractPayments returns the payments of one contract.
func (l *Leasing) ListContractPayments(ctx context.Context, contractID int64) ([]model.Payment, error) {
	var out []model.Payment
	err := l.run(ctx, auth.PermRead, func(ctx context.Context, r *db.Repos) error {
		var err error
		out, err = r.Payments.ListByContract(ctx, contractID)
		return err
	})
	return out, err
}

func (l *Leasing) CreatePayment(ctx context.Context, p model.Payment) (int64, error) {
	if err := l.gate.Authorize(auth.PermPaymentsWrite); err != nil {
		return 0, err
	}
	p.PaymentDate = model.Day(p.PaymentDate)
	if err := p.Validate(); err != nil {
		return 0, err
	}
	var id int64
	err := l.store.Session(ctx, func(ctx context.Context, r *db.Repos) error {
		var err error
		id, err = r.Payments.Create(ctx, p)
		return err
	})
	if err == nil {
		logging.Infof("payment #%d recorded for contract %d: %s", id, p.LeasingContractID, model.FormatMoney(p.Amount))
	}
	return id, err
}

func (l *Leasing) UpdatePayment(ctx context.Context, id int64, p model.PaymentPatch) (bool, error) {
	if err := l.gate.Authorize(auth.PermPaymentsWrite); err != nil {
		return false, err
	}
	if err := p.Validate(); err != nil {
		return false, err
	}
	var ok bool
	err := l.store.Session(ctx, func(ctx context.Context, r *db.Repos) error {
		var err error
		ok, err = r.Payments.Update(ctx, id, p)
		return err
	})
	return ok, err
}

func (l *Leasing) DeletePayment(ctx context.Context, id int64) (bool, error) {
	var ok bool
	err := l.run(ctx, auth.PermPaymentsWrite, func(ctx context.Context, r *db.Repos) error {
		var err error
		ok, err = r.Payments.Delete(ctx, id)
		return err
	})
	return ok, err
}
