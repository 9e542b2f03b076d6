// Copyright (c) 2026 Leasemaster Team
// Leasemaster - vehicle leasing management system
// This source code is licensed under the MIT license found in the LICENSE file.

package core

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/toeirei/leasemaster/internal/auth"
	"github.com/toeirei/leasemaster/internal/db"
	"github.com/toeirei/leasemaster/internal/model"
	"github.com/toeirei/leasemaster/internal/security"
	"golang.org/x/crypto/bcrypt"
)

const testPassword = "s3cret-pass"

// fixture is a migrated in-memory store with one principal per role.
type fixture struct {
	store *db.Store
	creds *auth.Credentials
	ids   map[string]int64
}

func testDSN(t *testing.T, suffix string) string {
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	return "file:core_" + name + suffix + "?mode=memory&cache=shared"
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	s, err := db.New(db.TypeSQLite, testDSN(t, ""))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	f := &fixture{store: s, creds: auth.NewCredentials(s, bcrypt.MinCost), ids: map[string]int64{}}
	for name, roles := range map[string]model.Roles{
		"admin": {Admin: true},
		"acc":   {Accountant: true},
		"fleet": {CarManager: true},
	} {
		id, err := f.creds.Register(context.Background(), name, security.FromString(testPassword), roles)
		require.NoError(t, err)
		f.ids[name] = id
	}
	return f
}

// as returns a façade logged in as username.
func (f *fixture) as(t *testing.T, username string, policy model.DeletePolicy) *Leasing {
	t.Helper()
	g := auth.NewGate(f.creds)
	_, err := g.Login(context.Background(), username, security.FromString(testPassword))
	require.NoError(t, err)
	return New(f.store, f.creds, g, Options{DeletePolicy: policy, DBType: db.TypeSQLite})
}

// anonymous returns a façade nobody logged into.
func (f *fixture) anonymous() *Leasing {
	return New(f.store, f.creds, auth.NewGate(f.creds), Options{})
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func money(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type lease struct {
	client, vehicle, contract, payment int64
}

// seedLease creates the Ana / Toyota lease with one 450.00 payment.
func seedLease(t *testing.T, l *Leasing) lease {
	t.Helper()
	ctx := context.Background()
	var out lease
	var err error
	out.client, err = l.CreateClient(ctx, model.Client{Name: "Ana", Email: "a@x.com", Phone: "555-1"})
	require.NoError(t, err)
	out.vehicle, err = l.CreateVehicle(ctx, model.Vehicle{Brand: "Toyota", Model: "Corolla", Year: 2020, Color: "red"})
	require.NoError(t, err)
	out.contract, err = l.CreateContract(ctx, model.LeasingContract{
		ClientID:       out.client,
		VehicleID:      out.vehicle,
		StartDate:      day(2024, 1, 1),
		EndDate:        day(2025, 1, 1),
		MonthlyPayment: money("450.00"),
	})
	require.NoError(t, err)
	out.payment, err = l.CreatePayment(ctx, model.Payment{LeasingContractID: out.contract, PaymentDate: day(2024, 2, 1), Amount: money("450.00")})
	require.NoError(t, err)
	return out
}

func secretOf(s string) security.Secret { return security.FromString(s) }
