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

// Shared query helpers for the entity repositories. Every helper takes the
// bun.IDB the repository was built on, so it runs inside the caller's
// transaction when there is one.

func rowExists(ctx context.Context, idb bun.IDB, m any, id int64) (bool, error) {
	ok, err := idb.NewSelect().Model(m).Where("id = ?", id).Exists(ctx)
	if err != nil {
		return false, MapDBError(err)
	}
	return ok, nil
}

func getRow(ctx context.Context, idb bun.IDB, dest any, id int64) error {
	err := idb.NewSelect().Model(dest).Where("id = ?", id).Limit(1).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return MapDBError(err)
}

func listRows(ctx context.Context, idb bun.IDB, dest any, where string, args ...any) error {
	q := idb.NewSelect().Model(dest).OrderExpr("id ASC")
	if where != "" {
		q = q.Where(where, args...)
	}
	return MapDBError(q.Scan(ctx))
}

// idsWhere returns the ids of rows in m's table whose column equals id.
func idsWhere(ctx context.Context, idb bun.IDB, m any, column string, id int64) ([]int64, error) {
	var ids []int64
	err := idb.NewSelect().Model(m).Column("id").Where("? = ?", bun.Ident(column), id).OrderExpr("id ASC").Scan(ctx, &ids)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, MapDBError(err)
	}
	return ids, nil
}

func insertRow(ctx context.Context, idb bun.IDB, m any) error {
	_, err := idb.NewInsert().Model(m).Returning("id").Exec(ctx)
	return MapDBError(err)
}

func updateColumns(ctx context.Context, idb bun.IDB, m any, columns []string) error {
	if len(columns) == 0 {
		return nil
	}
	_, err := idb.NewUpdate().Model(m).Column(columns...).WherePK().Exec(ctx)
	return MapDBError(err)
}

// deleteByID removes one row and reports whether it existed.
func deleteByID(ctx context.Context, idb bun.IDB, m any, id int64) (bool, error) {
	res, err := idb.NewDelete().Model(m).Where("id = ?", id).Exec(ctx)
	if err != nil {
		return false, MapDBError(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// deleteContractsCascade removes the given contracts and their payments.
func deleteContractsCascade(ctx context.Context, idb bun.IDB, contractIDs []int64) error {
	if len(contractIDs) == 0 {
		return nil
	}
	if _, err := idb.NewDelete().Model((*PaymentModel)(nil)).Where("leasing_contract_id IN (?)", bun.In(contractIDs)).Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete payments of contracts %v: %w", contractIDs, MapDBError(err))
	}
	if _, err := idb.NewDelete().Model((*ContractModel)(nil)).Where("id IN (?)", bun.In(contractIDs)).Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete contracts %v: %w", contractIDs, MapDBError(err))
	}
	dbLogf("db: cascade removed contracts %v", contractIDs)
	return nil
}

// requireReference fails with a validation error on field when the row
// with id does not exist in m's table.
func requireReference(ctx context.Context, idb bun.IDB, m any, field, entity string, id int64) error {
	ok, err := rowExists(ctx, idb, m, id)
	if err != nil {
		return err
	}
	if !ok {
		return model.Invalid(field, "%s #%d does not exist", entity, id)
	}
	return nil
}
