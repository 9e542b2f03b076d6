// Copyright (c) 2026 Leasemaster Team
// Leasemaster - vehicle leasing management system
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"
)

// Store owns the connection pool. It holds no per-operation state: every
// unit of work gets its own transaction through Session.
type Store struct {
	bun    *bun.DB
	dbType string
}

// BunDB exposes the underlying *bun.DB for helpers and tests.
func (s *Store) BunDB() *bun.DB { return s.bun }

// Type returns the database type the store was opened with.
func (s *Store) Type() string { return s.dbType }

// Close releases the connection pool.
func (s *Store) Close() error {
	if s == nil || s.bun == nil {
		return nil
	}
	return s.bun.Close()
}

// Ping checks that the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.bun.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	return nil
}

// Session runs fn inside one transaction with repositories bound to it. The
// transaction commits when fn returns nil and rolls back on error or panic,
// so an operation is either applied entirely or not at all.
func (s *Store) Session(ctx context.Context, fn func(ctx context.Context, r *Repos) error) error {
	return WithTx(ctx, s.bun, func(ctx context.Context, tx bun.Tx) error {
		return fn(ctx, NewRepos(tx))
	})
}

// BeginTx starts a transaction on the given Bun DB.
func BeginTx(ctx context.Context, bdb *bun.DB, opts *sql.TxOptions) (bun.Tx, error) {
	tx, err := bdb.BeginTx(ctx, opts)
	if err != nil {
		return tx, fmt.Errorf("%w: begin transaction: %w", ErrStoreUnavailable, err)
	}
	return tx, nil
}

// WithTx runs fn in a transaction. A returned error or a panic rolls the
// transaction back; the panic is re-raised after the rollback. Begin and
// commit failures are reported as ErrStoreUnavailable.
func WithTx(ctx context.Context, bdb *bun.DB, fn func(ctx context.Context, tx bun.Tx) error) (err error) {
	tx, err := BeginTx(ctx, bdb, nil)
	if err != nil {
		return err
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
				dbLogf("db: rollback failed: %v", rbErr)
			}
			return
		}
		if cerr := tx.Commit(); cerr != nil {
			err = fmt.Errorf("%w: commit: %w", ErrStoreUnavailable, cerr)
		}
	}()
	return fn(ctx, tx)
}

// Repos groups the entity repositories bound to one bun.IDB, which is
// either the pool or an open transaction.
type Repos struct {
	Clients    *ClientRepo
	Vehicles   *VehicleRepo
	Contracts  *ContractRepo
	Payments   *PaymentRepo
	Principals *PrincipalRepo
}

// NewRepos binds all repositories to idb.
func NewRepos(idb bun.IDB) *Repos {
	return &Repos{
		Clients:    &ClientRepo{idb: idb},
		Vehicles:   &VehicleRepo{idb: idb},
		Contracts:  &ContractRepo{idb: idb},
		Payments:   &PaymentRepo{idb: idb},
		Principals: &PrincipalRepo{idb: idb},
	}
}
