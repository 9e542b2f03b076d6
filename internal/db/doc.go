// Copyright (c) 2026 Leasemaster Team
// Leasemaster - vehicle leasing management system
// This source code is licensed under the MIT license found in the LICENSE file.

// Package db contains the data-access layer of Leasemaster.
//
// A Store wraps one long-lived *bun.DB for SQLite, PostgreSQL or MySQL and
// applies the embedded per-dialect migrations when it is opened. There is no
// package-level store: callers open one with New and pass it down.
//
// Repositories
//   - ClientRepo, VehicleRepo, ContractRepo, PaymentRepo and PrincipalRepo
//     share one contract: Create returns the assigned id, Update and Delete
//     report false for a missing id, List returns rows ordered by id and Get
//     returns ErrNotFound.
//   - Repositories are built on a bun.IDB with NewRepos, so the same code runs
//     on the pool or inside a transaction.
//
// Transactions
//   - Store.Session runs one unit of work in one transaction and hands the
//     callback repositories bound to it. Errors and panics roll back; begin
//     and commit failures are reported as ErrStoreUnavailable.
//
// Deleting referenced rows
//   - Client, vehicle and contract deletes take a model.DeletePolicy.
//     DeleteRestrict returns a *ReferentialConflictError listing the blocking
//     rows; DeleteCascade removes payments, then contracts, then the row.
//     The schema declares ON DELETE RESTRICT as well, so an orphan cannot be
//     written by any path.
//
// Testing notes
//   - Use New("sqlite", "file:<name>?mode=memory&cache=shared") for tests that
//     need real DB semantics and migrations.
package db
