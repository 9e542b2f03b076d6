// Copyright (c) 2026 Leasemaster Team
// Leasemaster - vehicle leasing management system
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/toeirei/leasemaster/internal/model"
)

func TestBackup_ExportImportKeepsIDs(t *testing.T) {
	src := newTestStore(t)
	ctx := context.Background()
	_, _, contractID, paymentID := seedLease(t, src)
	_, err := poolRepos(src).Principals.Create(ctx, model.Principal{Username: "admin", PasswordHash: "hash", Roles: model.Roles{Admin: true}})
	require.NoError(t, err)

	data, err := src.ExportDataForBackup(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.BackupSchemaVersion, data.SchemaVersion)
	require.Len(t, data.Contracts, 1)
	require.Len(t, data.Principals, 1)

	dst, err := New(TypeSQLite, "file:TestBackup_ExportImportKeepsIDs_dst?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = dst.Close() })

	// Pre-existing rows are replaced by a full import.
	_, err = poolRepos(dst).Clients.Create(ctx, model.Client{Name: "Old", Email: "o@x.com", Phone: "0"})
	require.NoError(t, err)

	require.NoError(t, dst.ImportDataFromBackup(ctx, data))

	clients, err := poolRepos(dst).Clients.List(ctx)
	require.NoError(t, err)
	require.Len(t, clients, 1)
	assert.Equal(t, "Ana", clients[0].Name)

	p, err := poolRepos(dst).Payments.Get(ctx, paymentID)
	require.NoError(t, err)
	assert.Equal(t, contractID, p.LeasingContractID)

	admin, err := poolRepos(dst).Principals.GetByUsername(ctx, "admin")
	require.NoError(t, err)
	assert.Equal(t, "hash", admin.PasswordHash)
}

func TestBackup_ImportFailureLeavesStoreUntouched(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	seedLease(t, s)

	bad := &model.BackupData{
		SchemaVersion: model.BackupSchemaVersion,
		Clients:       []model.Client{{ID: 1, Name: "X", Email: "x@x.com", Phone: "1"}},
		// Payment referencing a contract that the backup does not contain.
		Payments: []model.Payment{{ID: 1, LeasingContractID: 42, PaymentDate: day(2024, 1, 1), Amount: money("1")}},
	}
	require.Error(t, s.ImportDataFromBackup(ctx, bad))

	assert.Equal(t, 1, countRows(t, s, "leasing_contracts"))
	assert.Equal(t, 1, countRows(t, s, "payments"))
	c, err := poolRepos(s).Clients.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Ana", c.Name)
}

func TestBackup_IntegrateSkipsExisting(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	clientID, _, _, _ := seedLease(t, s)
	_, err := poolRepos(s).Principals.Create(ctx, model.Principal{Username: "admin", PasswordHash: "keep", Roles: model.Roles{Admin: true}})
	require.NoError(t, err)

	data := &model.BackupData{
		SchemaVersion: model.BackupSchemaVersion,
		Clients: []model.Client{
			{ID: clientID, Name: "Changed", Email: "c@x.com", Phone: "9"},
			{ID: 50, Name: "New", Email: "n@x.com", Phone: "5"},
		},
		Principals: []model.Principal{{ID: 77, Username: "admin", PasswordHash: "other", Roles: model.Roles{Admin: true}}},
	}
	require.NoError(t, s.IntegrateDataFromBackup(ctx, data))

	clients, err := poolRepos(s).Clients.List(ctx)
	require.NoError(t, err)
	require.Len(t, clients, 2)
	assert.Equal(t, "Ana", clients[0].Name)
	assert.Equal(t, int64(50), clients[1].ID)

	admin, err := poolRepos(s).Principals.GetByUsername(ctx, "admin")
	require.NoError(t, err)
	assert.Equal(t, "keep", admin.PasswordHash)
}

func TestBackup_IntegrateRefusesToReparentDependents(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	bobID, err := poolRepos(s).Clients.Create(ctx, model.Client{Name: "Bob", Email: "b@x.com", Phone: "555-2"})
	require.NoError(t, err)
	require.Equal(t, int64(1), bobID)

	data := &model.BackupData{
		SchemaVersion: model.BackupSchemaVersion,
		Clients:       []model.Client{{ID: 1, Name: "Ana", Email: "a@x.com", Phone: "555-1"}},
		Vehicles:      []model.Vehicle{{ID: 1, Brand: "Toyota", Model: "Corolla", Year: 2020, Color: "red"}},
		Contracts: []model.LeasingContract{{
			ID: 1, ClientID: 1, VehicleID: 1,
			StartDate: day(2024, 1, 1), EndDate: day(2025, 1, 1), MonthlyPayment: money("450.00"),
		}},
	}
	err = s.IntegrateDataFromBackup(ctx, data)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrReferentialConflict)
	var rc *ReferentialConflictError
	require.True(t, errors.As(err, &rc))
	assert.Equal(t, "merge", rc.Op)
	assert.Equal(t, "clients", rc.Table)
	assert.Equal(t, int64(1), rc.ID)
	assert.Equal(t, "leasing_contracts", rc.Dependent)
	assert.Equal(t, []int64{1}, rc.DependentIDs)

	// The whole merge rolled back.
	assert.Equal(t, 0, countRows(t, s, "leasing_contracts"))
	assert.Equal(t, 0, countRows(t, s, "vehicles"))
	c, err := poolRepos(s).Clients.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Bob", c.Name)
}

func TestBackup_IntegrateAttachesToIdenticalParent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	clientID, vehicleID, contractID, _ := seedLease(t, s)

	data := &model.BackupData{
		SchemaVersion: model.BackupSchemaVersion,
		Clients:       []model.Client{{ID: clientID, Name: "Ana", Email: "a@x.com", Phone: "555-1"}},
		Vehicles:      []model.Vehicle{{ID: vehicleID, Brand: "Toyota", Model: "Corolla", Year: 2020, Color: "red"}},
		Contracts: []model.LeasingContract{
			{
				ID: contractID, ClientID: clientID, VehicleID: vehicleID,
				StartDate: day(2024, 1, 1), EndDate: day(2025, 1, 1), MonthlyPayment: money("450.00"),
			},
			{
				ID: 20, ClientID: clientID, VehicleID: vehicleID,
				StartDate: day(2025, 1, 1), EndDate: day(2026, 1, 1), MonthlyPayment: money("500.00"),
			},
		},
		Payments: []model.Payment{{ID: 30, LeasingContractID: 20, PaymentDate: day(2025, 2, 1), Amount: money("500.00")}},
	}
	require.NoError(t, s.IntegrateDataFromBackup(ctx, data))

	assert.Equal(t, 2, countRows(t, s, "leasing_contracts"))
	assert.Equal(t, 2, countRows(t, s, "payments"))
	added, err := poolRepos(s).Contracts.Get(ctx, 20)
	require.NoError(t, err)
	assert.Equal(t, clientID, added.ClientID)
}

func TestBackup_IntegrateRefusesPaymentOfDivergedContract(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	clientID, vehicleID, contractID, _ := seedLease(t, s)

	data := &model.BackupData{
		SchemaVersion: model.BackupSchemaVersion,
		Contracts: []model.LeasingContract{{
			ID: contractID, ClientID: clientID, VehicleID: vehicleID,
			StartDate: day(2023, 1, 1), EndDate: day(2023, 6, 1), MonthlyPayment: money("99.00"),
		}},
		Payments: []model.Payment{{ID: 40, LeasingContractID: contractID, PaymentDate: day(2023, 2, 1), Amount: money("99.00")}},
	}
	err := s.IntegrateDataFromBackup(ctx, data)
	var rc *ReferentialConflictError
	require.True(t, errors.As(err, &rc), "got %v", err)
	assert.Equal(t, "leasing_contracts", rc.Table)
	assert.Equal(t, []int64{40}, rc.DependentIDs)
	assert.Equal(t, 1, countRows(t, s, "payments"))
}

func TestBackup_RejectsUnknownVersion(t *testing.T) {
	s := newTestStore(t)
	err := s.ImportDataFromBackup(context.Background(), &model.BackupData{SchemaVersion: 99})
	require.Error(t, err)
	require.Error(t, s.IntegrateDataFromBackup(context.Background(), nil))
}
