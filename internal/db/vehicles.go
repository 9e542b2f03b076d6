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

// VehicleRepo manages rows of the vehicles table.
type VehicleRepo struct {
	idb bun.IDB
}

// Create inserts v and returns the assigned id.
func (r *VehicleRepo) Create(ctx context.Context, v model.Vehicle) (int64, error) {
	m := vehicleModelFrom(v)
	m.ID = 0
	if err := insertRow(ctx, r.idb, m); err != nil {
		return 0, fmt.Errorf("failed to insert vehicle: %w", err)
	}
	return m.ID, nil
}

// Get loads one vehicle or returns ErrNotFound.
func (r *VehicleRepo) Get(ctx context.Context, id int64) (*model.Vehicle, error) {
	var m VehicleModel
	if err := getRow(ctx, r.idb, &m, id); err != nil {
		return nil, err
	}
	v := vehicleModelToModel(m)
	return &v, nil
}

// List returns all vehicles in insertion order.
func (r *VehicleRepo) List(ctx context.Context) ([]model.Vehicle, error) {
	var rows []VehicleModel
	if err := listRows(ctx, r.idb, &rows, ""); err != nil {
		return nil, fmt.Errorf("failed to list vehicles: %w", err)
	}
	out := make([]model.Vehicle, 0, len(rows))
	for _, m := range rows {
		out = append(out, vehicleModelToModel(m))
	}
	return out, nil
}

// Update applies the supplied fields of p.
func (r *VehicleRepo) Update(ctx context.Context, id int64, p model.VehiclePatch) (bool, error) {
	var m VehicleModel
	if err := getRow(ctx, r.idb, &m, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	var cols []string
	if p.Brand != nil {
		m.Brand, cols = *p.Brand, append(cols, "brand")
	}
	if p.Model != nil {
		m.Model, cols = *p.Model, append(cols, "model")
	}
	if p.Year != nil {
		m.Year, cols = *p.Year, append(cols, "year")
	}
	if p.Color != nil {
		m.Color, cols = *p.Color, append(cols, "color")
	}
	if err := updateColumns(ctx, r.idb, &m, cols); err != nil {
		return false, fmt.Errorf("failed to update vehicle %d: %w", id, err)
	}
	return true, nil
}

// Delete removes the vehicle, honoring policy for contracts that lease it.
func (r *VehicleRepo) Delete(ctx context.Context, id int64, policy model.DeletePolicy) (bool, error) {
	ok, err := rowExists(ctx, r.idb, (*VehicleModel)(nil), id)
	if err != nil || !ok {
		return false, err
	}
	contracts, err := idsWhere(ctx, r.idb, (*ContractModel)(nil), "vehicle_id", id)
	if err != nil {
		return false, err
	}
	if len(contracts) > 0 {
		if policy != model.DeleteCascade {
			return false, &ReferentialConflictError{Table: "vehicles", ID: id, Dependent: "leasing_contracts", DependentIDs: contracts}
		}
		if err := deleteContractsCascade(ctx, r.idb, contracts); err != nil {
			return false, err
		}
	}
	return deleteByID(ctx, r.idb, (*VehicleModel)(nil), id)
}
