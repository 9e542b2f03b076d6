// Copyright (c) 2026 Leasemaster Team
// Leasemaster - vehicle leasing management system
// This source code is licensed under the MIT license found in the LICENSE file.

package ui

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/toeirei/leasemaster/internal/auth"
	"github.com/toeirei/leasemaster/internal/core"
	"github.com/toeirei/leasemaster/internal/db"
	"github.com/toeirei/leasemaster/internal/i18n"
	"github.com/toeirei/leasemaster/internal/model"
)

func init() { i18n.Init("en") }

func TestWriteClients(t *testing.T) {
	var b strings.Builder
	require.NoError(t, WriteClients(&b, nil))
	assert.Equal(t, "No clients yet.\n", b.String())

	b.Reset()
	require.NoError(t, WriteClients(&b, []model.Client{
		{ID: 1, Name: "Ana Petrova", Email: "ana@example.com", Phone: "555-0101"},
		{ID: 12, Name: "Bo", Email: "bo@example.com", Phone: "555-0202"},
	}))
	lines := strings.Split(strings.TrimRight(b.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "ID"))
	assert.Contains(t, lines[1], "Ana Petrova")
	// Columns are aligned.
	assert.Equal(t, strings.Index(lines[1], "ana@"), strings.Index(lines[2], "bo@"))
}

func TestWritePrincipals_NoHash(t *testing.T) {
	var b strings.Builder
	require.NoError(t, WritePrincipals(&b, []model.Principal{
		{ID: 1, Username: "admin", PasswordHash: "$2a$10$secrethash", Roles: model.Roles{Admin: true}},
	}))
	assert.Contains(t, b.String(), "admin")
	assert.NotContains(t, b.String(), "secrethash")
}

func TestWriteContractDetails(t *testing.T) {
	day := func(y int, m time.Month, d int) time.Time { return time.Date(y, m, d, 0, 0, 0, 0, time.UTC) }
	d := &core.ContractDetails{
		Contract: model.LeasingContract{ID: 3, ClientID: 1, VehicleID: 2, StartDate: day(2024, 1, 1), EndDate: day(2024, 12, 31),
			MonthlyPayment: decimal.RequireFromString("450")},
		Client:   model.Client{ID: 1, Name: "Ana", Email: "ana@example.com"},
		Vehicle:  model.Vehicle{ID: 2, Brand: "Skoda", Model: "Octavia", Year: 2022, Color: "grey"},
		Payments: []model.Payment{{ID: 9, LeasingContractID: 3, PaymentDate: day(2024, 2, 1), Amount: decimal.RequireFromString("450")}},
		Paid:     decimal.RequireFromString("450"),
	}
	var b strings.Builder
	require.NoError(t, WriteContractDetails(&b, d))
	out := b.String()
	assert.Contains(t, out, "2024-01-01 .. 2024-12-31")
	assert.Contains(t, out, "Skoda Octavia")
	assert.Contains(t, out, "450.00")
	assert.Contains(t, out, "2024-02-01")
}

func TestWriteDashboard(t *testing.T) {
	var b strings.Builder
	require.NoError(t, WriteDashboard(&b, core.DashboardData{ClientCount: 2, ContractCount: 3, ActiveContracts: 1, PaymentCount: 4,
		TotalPaid: decimal.RequireFromString("1200.5")}))
	assert.Contains(t, b.String(), "3 (1)")
	assert.Contains(t, b.String(), "4 / 1200.50")
}

func TestNotFound(t *testing.T) {
	assert.NoError(t, NotFound(true, "client", 1))
	err := NotFound(false, "client", 42)
	assert.ErrorIs(t, err, db.ErrNotFound)
	assert.Equal(t, "Client #42 not found.", Describe(err))
}

func TestDescribe(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{model.Invalid("email", "not a valid email address"), "Invalid email: not a valid email address"},
		{&model.ValidationError{Reason: "broken"}, "Invalid input: broken"},
		{fmt.Errorf("wrapped: %w", auth.ErrForbidden), "Your roles do not allow this operation."},
		{auth.ErrInvalidCredentials, "Invalid username or password."},
		{auth.ErrUnauthenticated, "Please log in first."},
		{auth.ErrDuplicateUsername, "This username is already taken."},
		{db.ErrNotFound, "Record not found."},
		{db.ErrReferentialConflict, "The record is still referenced by other rows."},
		{errors.New("boom"), "boom"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, Describe(c.err), "Describe(%v)", c.err)
	}

	rc := &db.ReferentialConflictError{Table: "client", ID: 1, Dependent: "leasing_contract", DependentIDs: []int64{4, 5}}
	got := Describe(fmt.Errorf("delete: %w", rc))
	assert.Contains(t, got, "client #1")
	assert.Contains(t, got, "2 leasing_contract")
	assert.Contains(t, got, "[4 5]")

	merge := &db.ReferentialConflictError{Op: "merge", Table: "clients", ID: 1, Dependent: "leasing_contracts", DependentIDs: []int64{1}}
	got = Describe(fmt.Errorf("restore: %w", merge))
	assert.Contains(t, got, "Cannot merge clients #1")

	assert.Contains(t, Describe(fmt.Errorf("%w: dial tcp", db.ErrStoreUnavailable)), "The database is unavailable")
}
