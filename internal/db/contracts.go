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

// ContractRepo manages rows of the leasing_contracts table.
type ContractRepo struct {
	idb bun.IDB
}

func (r *ContractRepo) checkReferences(ctx context.Context, clientID, vehicleID int64) error {
	if err := requireReference(ctx, r.idb, (*ClientModel)(nil), "client_id", "client", clientID); err != nil {
		return err
	}
	return requireReference(ctx, r.idb, (*VehicleModel)(nil), "vehicle_id", "vehicle", vehicleID)
}

// Create inserts c after checking that its client and vehicle exist.
func (r *ContractRepo) Create(ctx context.Context, c model.LeasingContract) (int64, error) {
	if err := r.checkReferences(ctx, c.ClientID, c.VehicleID); err != nil {
		return 0, err
	}
	m := contractModelFrom(c)
	m.ID = 0
	if err := insertRow(ctx, r.idb, m); err != nil {
		return 0, fmt.Errorf("failed to insert leasing contract: %w", err)
	}
	return m.ID, nil
}

// Get loads one contract or returns ErrNotFound.
func (r *ContractRepo) Get(ctx context.Context, id int64) (*model.LeasingContract, error) {
	var m ContractModel
	if err := getRow(ctx, r.idb, &m, id); err != nil {
		return nil, err
	}
	c := contractModelToModel(m)
	return &c, nil
}

func (r *ContractRepo) list(ctx context.Context, where string, args ...any) ([]model.LeasingContract, error) {
	var rows []ContractModel
	if err := listRows(ctx, r.idb, &rows, where, args...); err != nil {
		return nil, fmt.Errorf("failed to list leasing contracts: %w", err)
	}
	out := make([]model.LeasingContract, 0, len(rows))
	for _, m := range rows {
		out = append(out, contractModelToModel(m))
	}
	return out, nil
}

// List returns all contracts in insertion order.
func (r *ContractRepo) List(ctx context.Context) ([]model.LeasingContract, error) {
	return r.list(ctx, "")
}

// ListByClient returns the contracts of one client.
func (r *ContractRepo) ListByClient(ctx context.Context, clientID int64) ([]model.LeasingContract, error) {
	return r.list(ctx, "client_id = ?", clientID)
}

// ListByVehicle returns the contracts that lease one vehicle.
func (r *ContractRepo) ListByVehicle(ctx context.Context, vehicleID int64) ([]model.LeasingContract, error) {
	return r.list(ctx, "vehicle_id = ?", vehicleID)
}

// Update applies the supplied fields of p. The merged row must still
// reference existing rows and keep end_date on or after start_date.
func (r *ContractRepo) Update(ctx context.Context, id int64, p model.ContractPatch) (bool, error) {
	var m ContractModel
	if err := getRow(ctx, r.idb, &m, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	if p.IsEmpty() {
		return true, nil
	}

	merged := contractModelToModel(m)
	p.Apply(&merged)
	if err := merged.Validate(); err != nil {
		return false, err
	}
	if p.ClientID != nil || p.VehicleID != nil {
		if err := r.checkReferences(ctx, merged.ClientID, merged.VehicleID); err != nil {
			return false, err
		}
	}

	var cols []string
	if p.ClientID != nil {
		cols = append(cols, "client_id")
	}
	if p.VehicleID != nil {
		cols = append(cols, "vehicle_id")
	}
	if p.StartDate != nil {
		cols = append(cols, "start_date")
	}
	if p.EndDate != nil {
		cols = append(cols, "end_date")
	}
	if p.MonthlyPayment != nil {
		cols = append(cols, "monthly_payment")
	}
	if err := updateColumns(ctx, r.idb, contractModelFrom(merged), cols); err != nil {
		return false, fmt.Errorf("failed to update leasing contract %d: %w", id, err)
	}
	return true, nil
}

// Delete removes the contract, honoring policy for its payments.
func (r *ContractRepo) Delete(ctx context.Context, id int64, policy model.DeletePolicy) (bool, error) {
	ok, err := rowExists(ctx, r.idb, (*ContractModel)(nil), id)
	if err != nil || !ok {
		return false, err
	}
	payments, err := idsWhere(ctx, r.idb, (*PaymentModel)(nil), "leasing_contract_id", id)
	if err != nil {
		return false, err
	}
	if len(payments) > 0 && policy != model.DeleteCascade {
		return false, &ReferentialConflictError{Table: "leasing_contracts", ID: id, Dependent: "payments", DependentIDs: payments}
	}
	if err := deleteContractsCascade(ctx, r.idb, []int64{id}); err != nil {
		return false, err
	}
	return true, nil
}
