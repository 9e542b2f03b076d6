// Copyright (c) 2026 Leasemaster Team
// Leasemaster - vehicle leasing management system
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/toeirei/leasemaster/internal/model"
)

// newTestStore opens a migrated in-memory sqlite Store private to the test.
func newTestStore(t *testing.T) *Store {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	s, err := New(TypeSQLite, "file:"+name+"?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

// poolRepos binds repositories to the pool so assertions can read outside a
// Session.
func poolRepos(s *Store) *Repos { return NewRepos(s.bun) }

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// seedLease creates the Ana / Toyota lease with one payment and returns the
// ids of the client, vehicle, contract and payment.
func seedLease(t *testing.T, s *Store) (clientID, vehicleID, contractID, paymentID int64) {
	t.Helper()
	err := s.Session(context.Background(), func(ctx context.Context, r *Repos) error {
		var err error
		if clientID, err = r.Clients.Create(ctx, model.Client{Name: "Ana", Email: "a@x.com", Phone: "555-1"}); err != nil {
			return err
		}
		if vehicleID, err = r.Vehicles.Create(ctx, model.Vehicle{Brand: "Toyota", Model: "Corolla", Year: 2020, Color: "red"}); err != nil {
			return err
		}
		contractID, err = r.Contracts.Create(ctx, model.LeasingContract{
			ClientID:       clientID,
			VehicleID:      vehicleID,
			StartDate:      day(2024, 1, 1),
			EndDate:        day(2025, 1, 1),
			MonthlyPayment: money("450.00"),
		})
		if err != nil {
			return err
		}
		paymentID, err = r.Payments.Create(ctx, model.Payment{LeasingContractID: contractID, PaymentDate: day(2024, 2, 1), Amount: money("450.00")})
		return err
	})
	if err != nil {
		t.Fatalf("seedLease failed: %v", err)
	}
	return
}
