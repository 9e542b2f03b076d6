// Copyright (c) 2026 Leasemaster Team
// Leasemaster - vehicle leasing management system
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"path/filepath"
	"testing"
)

// TestDBPoolDefaultsSQLite verifies the default pool size for a file-backed
// SQLite database.
func TestDBPoolDefaultsSQLite(t *testing.T) {
	t.Setenv("LEASEMASTER_DB_MAX_OPEN_CONNS", "")
	t.Setenv("LEASEMASTER_DB_MAX_IDLE_CONNS", "")

	s, err := New(TypeSQLite, filepath.Join(t.TempDir(), "pool.db"))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	defer func() { _ = s.Close() }()

	if got := s.BunDB().DB.Stats().MaxOpenConnections; got != 25 {
		t.Fatalf("MaxOpenConnections = %d; want 25", got)
	}
	if s.Type() != TypeSQLite {
		t.Fatalf("Type() = %q", s.Type())
	}
}

func TestDBPoolOverrideFromEnv(t *testing.T) {
	t.Setenv("LEASEMASTER_DB_MAX_OPEN_CONNS", "3")

	s, err := New(TypeSQLite, filepath.Join(t.TempDir(), "pool.db"))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	defer func() { _ = s.Close() }()

	if got := s.BunDB().DB.Stats().MaxOpenConnections; got != 3 {
		t.Fatalf("MaxOpenConnections = %d; want 3", got)
	}
}

func TestDBPoolInMemorySingleConnection(t *testing.T) {
	s := newTestStore(t)
	if got := s.BunDB().DB.Stats().MaxOpenConnections; got != 1 {
		t.Fatalf("in-memory sqlite must use one connection, got %d", got)
	}
}

func TestNew_UnsupportedType(t *testing.T) {
	if _, err := New("oracle", "dsn"); err == nil {
		t.Fatalf("expected error for unsupported database type")
	}
}
