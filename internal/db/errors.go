// Copyright (c) 2026 Leasemaster Team
// Leasemaster - vehicle leasing management system
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrDuplicate is returned when attempting to insert a record that already exists.
	ErrDuplicate = errors.New("duplicate record")
	// ErrNotFound is returned by lookups for a row that does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrReferentialConflict is returned when a delete or write would break a
	// foreign key relationship.
	ErrReferentialConflict = errors.New("referential conflict")
	// ErrStoreUnavailable wraps failures to reach the database, to begin a
	// transaction, or to commit one.
	ErrStoreUnavailable = errors.New("store unavailable")
)

// ReferentialConflictError names the row that could not be deleted and the
// dependent rows that still reference it. Op is "delete" when empty; a
// backup merge sets it to "merge".
type ReferentialConflictError struct {
	Op           string
	Table        string
	ID           int64
	Dependent    string
	DependentIDs []int64
}

func (e *ReferentialConflictError) Error() string {
	if e.Op == "merge" {
		return fmt.Sprintf("cannot merge %s #%d: stored row differs, %d %s row(s) %v depend on it",
			e.Table, e.ID, len(e.DependentIDs), e.Dependent, e.DependentIDs)
	}
	return fmt.Sprintf("cannot delete %s #%d: referenced by %d %s row(s) %v",
		e.Table, e.ID, len(e.DependentIDs), e.Dependent, e.DependentIDs)
}

// Is makes errors.Is(err, ErrReferentialConflict) true.
func (e *ReferentialConflictError) Is(target error) bool {
	return target == ErrReferentialConflict
}

// MapDBError inspects low-level driver errors and maps common constraint
// violations to package-level sentinel errors. The mapping is string-based
// so this file does not import SQL driver packages.
func MapDBError(err error) error {
	if err == nil {
		return nil
	}
	le := strings.ToLower(err.Error())
	// SQLite "FOREIGN KEY constraint failed", Postgres 23503, MySQL 1451/1452.
	if strings.Contains(le, "foreign key") || strings.Contains(le, "23503") ||
		strings.Contains(le, "1451") || strings.Contains(le, "1452") {
		return fmt.Errorf("%w: %v", ErrReferentialConflict, err)
	}
	// MySQL duplicate entry, Postgres unique violation (23505), SQLite unique constraint.
	if strings.Contains(le, "duplicate") || strings.Contains(le, "unique") ||
		strings.Contains(le, "23505") || strings.Contains(le, "1062") {
		return ErrDuplicate
	}
	return err
}
