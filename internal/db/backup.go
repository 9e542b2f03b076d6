// Copyright (c) 2026 Leasemaster Team
// Leasemaster - vehicle leasing management system
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/toeirei/leasemaster/internal/model"
	"github.com/uptrace/bun"
)

// backupTables lists the tables in dependency order: parents first.
var backupTables = []string{"clients", "vehicles", "leasing_contracts", "payments", "principals"}

// ExportDataForBackup reads every table inside one transaction so the
// snapshot is consistent.
func (s *Store) ExportDataForBackup(ctx context.Context) (*model.BackupData, error) {
	data := &model.BackupData{SchemaVersion: model.BackupSchemaVersion}
	err := s.Session(ctx, func(ctx context.Context, r *Repos) error {
		var err error
		if data.Clients, err = r.Clients.List(ctx); err != nil {
			return err
		}
		if data.Vehicles, err = r.Vehicles.List(ctx); err != nil {
			return err
		}
		if data.Contracts, err = r.Contracts.List(ctx); err != nil {
			return err
		}
		if data.Payments, err = r.Payments.List(ctx); err != nil {
			return err
		}
		data.Principals, err = r.Principals.List(ctx)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to export data: %w", err)
	}
	return data, nil
}

func checkBackupVersion(d *model.BackupData) error {
	if d == nil {
		return fmt.Errorf("backup is empty")
	}
	if d.SchemaVersion != model.BackupSchemaVersion {
		return fmt.Errorf("unsupported backup schema version %d (expected %d)", d.SchemaVersion, model.BackupSchemaVersion)
	}
	return nil
}

// ImportDataFromBackup replaces the whole store content with d. Row ids are
// preserved. The import is atomic: on any failure nothing changes.
func (s *Store) ImportDataFromBackup(ctx context.Context, d *model.BackupData) error {
	if err := checkBackupVersion(d); err != nil {
		return err
	}
	return WithTx(ctx, s.bun, func(ctx context.Context, tx bun.Tx) error {
		for i := len(backupTables) - 1; i >= 0; i-- {
			if _, err := ExecRaw(ctx, tx, "DELETE FROM ?", bun.Ident(backupTables[i])); err != nil {
				return fmt.Errorf("failed to clear %s: %w", backupTables[i], MapDBError(err))
			}
		}
		if err := insertBackupRows(ctx, tx, d, nil); err != nil {
			return err
		}
		return s.resetSequences(ctx, tx)
	})
}

// IntegrateDataFromBackup merges d into the store, inserting only rows whose
// id (and, for principals, username) is not present yet. A backup row whose
// id is held by a different stored row is skipped, and any new dependent of
// it fails the merge with a *ReferentialConflictError instead of being
// attached to the stored row.
func (s *Store) IntegrateDataFromBackup(ctx context.Context, d *model.BackupData) error {
	if err := checkBackupVersion(d); err != nil {
		return err
	}
	return WithTx(ctx, s.bun, func(ctx context.Context, tx bun.Tx) error {
		if err := insertBackupRows(ctx, tx, d, newBackupMerge(tx)); err != nil {
			return err
		}
		return s.resetSequences(ctx, tx)
	})
}

// backupMerge remembers backup rows that lost their id to a different
// stored row.
type backupMerge struct {
	r        *Repos
	diverged map[string]map[int64]bool
}

func newBackupMerge(tx bun.Tx) *backupMerge {
	return &backupMerge{r: NewRepos(tx), diverged: map[string]map[int64]bool{}}
}

func (m *backupMerge) skip(table string, id int64, same bool) {
	if same {
		dbLogf("db: backup row %s #%d already present, skipped", table, id)
		return
	}
	dbLogf("db: backup row %s #%d differs from the stored row, skipped", table, id)
	if m.diverged[table] == nil {
		m.diverged[table] = map[int64]bool{}
	}
	m.diverged[table][id] = true
}

// parent fails when a new dependent row would reference a diverged parent.
func (m *backupMerge) parent(table string, id int64, dependent string, dependentID int64) error {
	if m == nil || !m.diverged[table][id] {
		return nil
	}
	return &ReferentialConflictError{Op: "merge", Table: table, ID: id, Dependent: dependent, DependentIDs: []int64{dependentID}}
}

// present reports whether get finds a stored row. ErrNotFound is not an error.
func present[T any](get func() (*T, error)) (*T, error) {
	row, err := get()
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	return row, err
}

func sameDay(a, b time.Time) bool {
	return model.Day(a).Equal(model.Day(b))
}

func insertBackupRows(ctx context.Context, tx bun.Tx, d *model.BackupData, merge *backupMerge) error {
	insert := func(table string, m any, id int64) error {
		if _, err := tx.NewInsert().Model(m).Exec(ctx); err != nil {
			return fmt.Errorf("failed to restore %s #%d: %w", table, id, MapDBError(err))
		}
		return nil
	}

	for _, c := range d.Clients {
		if err := c.Validate(); err != nil {
			return fmt.Errorf("client #%d: %w", c.ID, err)
		}
		if merge != nil {
			old, err := present(func() (*model.Client, error) { return merge.r.Clients.Get(ctx, c.ID) })
			if err != nil {
				return err
			}
			if old != nil {
				merge.skip("clients", c.ID, old.Name == c.Name && old.Email == c.Email && old.Phone == c.Phone)
				continue
			}
		}
		if err := insert("clients", clientModelFrom(c), c.ID); err != nil {
			return err
		}
	}
	for _, v := range d.Vehicles {
		if err := v.Validate(); err != nil {
			return fmt.Errorf("vehicle #%d: %w", v.ID, err)
		}
		if merge != nil {
			old, err := present(func() (*model.Vehicle, error) { return merge.r.Vehicles.Get(ctx, v.ID) })
			if err != nil {
				return err
			}
			if old != nil {
				merge.skip("vehicles", v.ID, old.Brand == v.Brand && old.Model == v.Model && old.Year == v.Year && old.Color == v.Color)
				continue
			}
		}
		if err := insert("vehicles", vehicleModelFrom(v), v.ID); err != nil {
			return err
		}
	}
	for _, c := range d.Contracts {
		if err := c.Validate(); err != nil {
			return fmt.Errorf("leasing contract #%d: %w", c.ID, err)
		}
		if merge != nil {
			old, err := present(func() (*model.LeasingContract, error) { return merge.r.Contracts.Get(ctx, c.ID) })
			if err != nil {
				return err
			}
			if old != nil {
				merge.skip("leasing_contracts", c.ID, old.ClientID == c.ClientID && old.VehicleID == c.VehicleID &&
					sameDay(old.StartDate, c.StartDate) && sameDay(old.EndDate, c.EndDate) &&
					old.MonthlyPayment.Equal(c.MonthlyPayment))
				continue
			}
			if err := merge.parent("clients", c.ClientID, "leasing_contracts", c.ID); err != nil {
				return err
			}
			if err := merge.parent("vehicles", c.VehicleID, "leasing_contracts", c.ID); err != nil {
				return err
			}
		}
		if err := insert("leasing_contracts", contractModelFrom(c), c.ID); err != nil {
			return err
		}
	}
	for _, p := range d.Payments {
		if err := p.Validate(); err != nil {
			return fmt.Errorf("payment #%d: %w", p.ID, err)
		}
		if merge != nil {
			old, err := present(func() (*model.Payment, error) { return merge.r.Payments.Get(ctx, p.ID) })
			if err != nil {
				return err
			}
			if old != nil {
				merge.skip("payments", p.ID, old.LeasingContractID == p.LeasingContractID &&
					sameDay(old.PaymentDate, p.PaymentDate) && old.Amount.Equal(p.Amount))
				continue
			}
			if err := merge.parent("leasing_contracts", p.LeasingContractID, "payments", p.ID); err != nil {
				return err
			}
		}
		if err := insert("payments", paymentModelFrom(p), p.ID); err != nil {
			return err
		}
	}
	repo := &PrincipalRepo{idb: tx}
	for _, p := range d.Principals {
		if merge != nil {
			if _, err := repo.GetByUsername(ctx, p.Username); err == nil {
				dbLogf("db: principal %q already present, skipped", p.Username)
				continue
			}
			exists, err := rowExists(ctx, tx, principalModelFrom(p), p.ID)
			if err != nil {
				return err
			}
			if exists {
				dbLogf("db: backup row principals #%d already present, skipped", p.ID)
				continue
			}
		}
		if p.PasswordHash == "" {
			return fmt.Errorf("principal %q: %w", p.Username, model.Invalid("password_hash", "value is required"))
		}
		if err := insert("principals", principalModelFrom(p), p.ID); err != nil {
			return err
		}
	}
	return nil
}

// resetSequences moves postgres id sequences past the restored ids. SQLite
// and MySQL advance their counters on explicit inserts.
func (s *Store) resetSequences(ctx context.Context, tx bun.Tx) error {
	if s.dbType != TypePostgres {
		return nil
	}
	for _, table := range backupTables {
		q := "SELECT setval(pg_get_serial_sequence(?, 'id'), COALESCE((SELECT MAX(id) FROM ?), 0) + 1, false)"
		if _, err := ExecRaw(ctx, tx, q, table, bun.Ident(table)); err != nil {
			return fmt.Errorf("failed to reset sequence of %s: %w", table, err)
		}
	}
	return nil
}
