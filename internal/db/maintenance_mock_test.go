// Copyright (c) 2026 Leasemaster Team
// Leasemaster - vehicle leasing management system
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func withMockOpen(t *testing.T) sqlmock.Sqlmock {
	t.Helper()
	dbMock, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	orig := sqlOpenFunc
	sqlOpenFunc = func(driverName, dsn string) (*sql.DB, error) { return dbMock, nil }
	t.Cleanup(func() {
		sqlOpenFunc = orig
		_ = dbMock.Close()
	})
	return mock
}

func TestRunDBMaintenance_Sqlite_WithMock_Success(t *testing.T) {
	mock := withMockOpen(t)
	mock.ExpectExec("PRAGMA optimize").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("VACUUM").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("PRAGMA wal_checkpoint\\(").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("PRAGMA integrity_check").WillReturnRows(sqlmock.NewRows([]string{"integrity_check"}).AddRow("ok"))

	if err := RunDBMaintenance(TypeSQLite, "whatever"); err != nil {
		t.Fatalf("expected RunDBMaintenance success, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRunDBMaintenance_Sqlite_WithMock_Failure(t *testing.T) {
	mock := withMockOpen(t)
	mock.ExpectExec("PRAGMA optimize").WillReturnError(errors.New("optimize fail"))

	if err := RunDBMaintenance(TypeSQLite, "whatever"); err == nil {
		t.Fatalf("expected error when PRAGMA optimize fails")
	}
}

func TestRunDBMaintenance_Sqlite_WithMock_Corrupt(t *testing.T) {
	mock := withMockOpen(t)
	mock.ExpectExec("PRAGMA optimize").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("VACUUM").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("PRAGMA wal_checkpoint\\(").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("PRAGMA integrity_check").WillReturnRows(sqlmock.NewRows([]string{"integrity_check"}).AddRow("page 3: corrupt"))

	if err := RunDBMaintenance(TypeSQLite, "whatever"); err == nil {
		t.Fatalf("expected error for failed integrity check")
	}
}

func TestRunDBMaintenance_Postgres_WithMock_Success(t *testing.T) {
	mock := withMockOpen(t)
	mock.ExpectExec("VACUUM ANALYZE").WillReturnResult(sqlmock.NewResult(0, 0))

	if err := RunDBMaintenance(TypePostgres, "dsn"); err != nil {
		t.Fatalf("expected postgres maintenance to succeed, got: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRunDBMaintenance_MySQL_WithMock_TableFailure(t *testing.T) {
	mock := withMockOpen(t)
	mock.ExpectQuery("SHOW TABLES").WillReturnRows(sqlmock.NewRows([]string{"table"}).AddRow("clients").AddRow("payments"))
	mock.ExpectExec("OPTIMIZE TABLE `clients`").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("OPTIMIZE TABLE `payments`").WillReturnError(errors.New("locked"))

	if err := RunDBMaintenance(TypeMySQL, "dsn"); err == nil {
		t.Fatalf("expected error when a table fails to optimize")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
