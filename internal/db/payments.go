// Copyright (c) 2026 Leasemaster Team
// Leasemaster - vehicle leasing management system
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/toeirei/leasemaster/internal/model"
	"github.com/uptrace/bun"
)

// PaymentRepo manages rows of the payments table.
type PaymentRepo struct {
	idb bun.IDB
}

func (r *PaymentRepo) checkContract(ctx context.Context, contractID int64) error {
	return requireReference(ctx, r.idb, (*ContractModel)(nil), "leasing_contract_id", "leasing contract", contractID)
}

// Create inserts p after checking that its contract exists.
func (r *PaymentRepo) Create(ctx context.Context, p model.Payment) (int64, error) {
	if err := r.checkContract(ctx, p.LeasingContractID); err != nil {
		return 0, err
	}
	m := paymentModelFrom(p)
	m.ID = 0
	if err := insertRow(ctx, r.idb, m); err != nil {
		return 0, fmt.Errorf("failed to insert payment: %w", err)
	}
	return m.ID, nil
}

// Get loads one payment or returns ErrNotFound.
func (r *PaymentRepo) Get(ctx context.Context, id int64) (*model.Payment, error) {
	var m PaymentModel
	if err := getRow(ctx, r.idb, &m, id); err != nil {
		return nil, err
	}
	p := paymentModelToModel(m)
	return &p, nil
}

func (r *PaymentRepo) list(ctx context.Context, where string, args ...any) ([]model.Payment, error) {
	var rows []PaymentModel
	if err := listRows(ctx, r.idb, &rows, where, args...); err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	out := make([]model.Payment, 0, len(rows))
	for _, m := range rows {
		out = append(out, paymentModelToModel(m))
	}
	return out, nil
}

// List returns all payments in insertion order.
func (r *PaymentRepo) List(ctx context.Context) ([]model.Payment, error) {
	return r.list(ctx, "")
}

// ListByContract returns the payments received for one contract.
func (r *PaymentRepo) ListByContract(ctx context.Context, contractID int64) ([]model.Payment, error) {
	return r.list(ctx, "leasing_contract_id = ?", contractID)
}

// Update applies the supplied fields of p.
func (r *PaymentRepo) Update(ctx context.Context, id int64, p model.PaymentPatch) (bool, error) {
	var m PaymentModel
	if err := getRow(ctx, r.idb, &m, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	if p.IsEmpty() {
		return true, nil
	}
	if p.LeasingContractID != nil {
		if err := r.checkContract(ctx, *p.LeasingContractID); err != nil {
			return false, err
		}
	}

	merged := paymentModelToModel(m)
	p.Apply(&merged)
	var cols []string
	if p.LeasingContractID != nil {
		cols = append(cols, "leasing_contract_id")
	}
	if p.PaymentDate != nil {
		cols = append(cols, "payment_date")
	}
	if p.Amount != nil {
		cols = append(cols, "amount")
	}
	if err := updateColumns(ctx, r.idb, paymentModelFrom(merged), cols); err != nil {
		return false, fmt.Errorf("failed to update payment %d: %w", id, err)
	}
	return true, nil
}

// Delete removes the payment. Payments have no dependents.
func (r *PaymentRepo) Delete(ctx context.Context, id int64) (bool, error) {
	return deleteByID(ctx, r.idb, (*PaymentModel)(nil), id)
}
