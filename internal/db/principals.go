// Copyright (c) 2026 Leasemaster Team
// Leasemaster - vehicle leasing management system
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/toeirei/leasemaster/internal/model"
	"github.com/uptrace/bun"
)

// PrincipalRepo manages rows of the principals table. It stores password
// hashes only; hashing is done by the credential store in internal/auth.
type PrincipalRepo struct {
	idb bun.IDB
}

// Create inserts p and returns the assigned id. A taken username yields
// ErrDuplicate.
func (r *PrincipalRepo) Create(ctx context.Context, p model.Principal) (int64, error) {
	if p.PasswordHash == "" {
		return 0, model.Invalid("password", "hash is required")
	}
	m := principalModelFrom(p)
	m.ID = 0
	if err := insertRow(ctx, r.idb, m); err != nil {
		if errors.Is(err, ErrDuplicate) {
			return 0, err
		}
		return 0, fmt.Errorf("failed to insert principal: %w", err)
	}
	return m.ID, nil
}

// Get loads one principal or returns ErrNotFound.
func (r *PrincipalRepo) Get(ctx context.Context, id int64) (*model.Principal, error) {
	var m PrincipalModel
	if err := getRow(ctx, r.idb, &m, id); err != nil {
		return nil, err
	}
	p := principalModelToModel(m)
	return &p, nil
}

// GetByUsername loads a principal by its login name or returns ErrNotFound.
func (r *PrincipalRepo) GetByUsername(ctx context.Context, username string) (*model.Principal, error) {
	var m PrincipalModel
	err := r.idb.NewSelect().Model(&m).Where("username = ?", username).Limit(1).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, MapDBError(err)
	}
	p := principalModelToModel(m)
	return &p, nil
}

func (r *PrincipalRepo) list(ctx context.Context, where string, args ...any) ([]model.Principal, error) {
	var rows []PrincipalModel
	if err := listRows(ctx, r.idb, &rows, where, args...); err != nil {
		return nil, fmt.Errorf("failed to list principals: %w", err)
	}
	out := make([]model.Principal, 0, len(rows))
	for _, m := range rows {
		out = append(out, principalModelToModel(m))
	}
	return out, nil
}

// List returns all principals in insertion order.
func (r *PrincipalRepo) List(ctx context.Context) ([]model.Principal, error) {
	return r.list(ctx, "")
}

// ListFleetManagers returns the principals holding the car-manager role.
func (r *PrincipalRepo) ListFleetManagers(ctx context.Context) ([]model.Principal, error) {
	return r.list(ctx, "is_car_manager = ?", true)
}

// CountAdmins returns the number of principals holding the admin role.
func (r *PrincipalRepo) CountAdmins(ctx context.Context) (int, error) {
	n, err := r.idb.NewSelect().Model((*PrincipalModel)(nil)).Where("is_admin = ?", true).Count(ctx)
	if err != nil {
		return 0, MapDBError(err)
	}
	return n, nil
}

// Update applies the supplied username and role changes.
func (r *PrincipalRepo) Update(ctx context.Context, id int64, p model.PrincipalPatch) (bool, error) {
	var m PrincipalModel
	if err := getRow(ctx, r.idb, &m, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	var cols []string
	if p.Username != nil {
		m.Username, cols = *p.Username, append(cols, "username")
	}
	if p.Roles != nil {
		m.IsAdmin, m.IsAccountant, m.IsCarManager = p.Roles.Admin, p.Roles.Accountant, p.Roles.CarManager
		cols = append(cols, "is_admin", "is_accountant", "is_car_manager")
	}
	if err := updateColumns(ctx, r.idb, &m, cols); err != nil {
		if errors.Is(err, ErrDuplicate) {
			return false, err
		}
		return false, fmt.Errorf("failed to update principal %d: %w", id, err)
	}
	return true, nil
}

// SetPasswordHash replaces the stored hash.
func (r *PrincipalRepo) SetPasswordHash(ctx context.Context, id int64, hash string) (bool, error) {
	if hash == "" {
		return false, model.Invalid("password", "hash is required")
	}
	m := &PrincipalModel{ID: id, PasswordHash: hash}
	res, err := r.idb.NewUpdate().Model(m).Column("password_hash").WherePK().Exec(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to update password of principal %d: %w", id, MapDBError(err))
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Delete removes the principal.
func (r *PrincipalRepo) Delete(ctx context.Context, id int64) (bool, error) {
	return deleteByID(ctx, r.idb, (*PrincipalModel)(nil), id)
}
