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

// ClientRepo manages rows of the clients table.
type ClientRepo struct {
	idb bun.IDB
}

// Create inserts c and returns the assigned id.
func (r *ClientRepo) Create(ctx context.Context, c model.Client) (int64, error) {
	m := clientModelFrom(c)
	m.ID = 0
	if err := insertRow(ctx, r.idb, m); err != nil {
		return 0, fmt.Errorf("failed to insert client: %w", err)
	}
	return m.ID, nil
}

// Get loads one client or returns ErrNotFound.
func (r *ClientRepo) Get(ctx context.Context, id int64) (*model.Client, error) {
	var m ClientModel
	if err := getRow(ctx, r.idb, &m, id); err != nil {
		return nil, err
	}
	c := clientModelToModel(m)
	return &c, nil
}

// List returns all clients in insertion order.
func (r *ClientRepo) List(ctx context.Context) ([]model.Client, error) {
	var rows []ClientModel
	if err := listRows(ctx, r.idb, &rows, ""); err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	out := make([]model.Client, 0, len(rows))
	for _, m := range rows {
		out = append(out, clientModelToModel(m))
	}
	return out, nil
}

// Update applies the supplied fields of p. It returns false when the client
// does not exist.
func (r *ClientRepo) Update(ctx context.Context, id int64, p model.ClientPatch) (bool, error) {
	var m ClientModel
	if err := getRow(ctx, r.idb, &m, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	var cols []string
	if p.Name != nil {
		m.Name, cols = *p.Name, append(cols, "name")
	}
	if p.Email != nil {
		m.Email, cols = *p.Email, append(cols, "email")
	}
	if p.Phone != nil {
		m.Phone, cols = *p.Phone, append(cols, "phone")
	}
	if err := updateColumns(ctx, r.idb, &m, cols); err != nil {
		return false, fmt.Errorf("failed to update client %d: %w", id, err)
	}
	return true, nil
}

// Delete removes the client. Under DeleteRestrict a client with contracts
// is kept and a *ReferentialConflictError is returned; under DeleteCascade
// its contracts and their payments are removed first.
func (r *ClientRepo) Delete(ctx context.Context, id int64, policy model.DeletePolicy) (bool, error) {
	ok, err := rowExists(ctx, r.idb, (*ClientModel)(nil), id)
	if err != nil || !ok {
		return false, err
	}
	contracts, err := idsWhere(ctx, r.idb, (*ContractModel)(nil), "client_id", id)
	if err != nil {
		return false, err
	}
	if len(contracts) > 0 {
		if policy != model.DeleteCascade {
			return false, &ReferentialConflictError{Table: "clients", ID: id, Dependent: "leasing_contracts", DependentIDs: contracts}
		}
		if err := deleteContractsCascade(ctx, r.idb, contracts); err != nil {
			return false, err
		}
	}
	return deleteByID(ctx, r.idb, (*ClientModel)(nil), id)
}
