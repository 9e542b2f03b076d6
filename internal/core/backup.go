// Copyright (c) 2026 Leasemaster Team
// Leasemaster - vehicle leasing management system
// This source code is licensed under the MIT license found in the LICENSE file.

package core

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/toeirei/leasemaster/internal/auth"
	"github.com/toeirei/leasemaster/internal/db"
	"github.com/toeirei/leasemaster/internal/logging"
	"github.com/toeirei/leasemaster/internal/model"
)

// RestoreOptions controls restore behavior used by Restore.
type RestoreOptions struct {
	// Full replaces the whole store content. When false the backup is
	// merged and rows that already exist are kept.
	Full bool
}

// storeOpener opens the target of a migration. Replaced in tests.
var storeOpener = db.New

// Backup returns a consistent snapshot of every table.
func (l *Leasing) Backup(ctx context.Context) (*model.BackupData, error) {
	if err := l.gate.Authorize(auth.PermStoreAdmin); err != nil {
		return nil, err
	}
	return l.store.ExportDataForBackup(ctx)
}

// WriteBackup writes compressed JSON backup data to w.
func WriteBackup(data *model.BackupData, w io.Writer) error {
	zw, err := zstd.NewWriter(w)
	if err != nil {
		return fmt.Errorf("create zstd writer: %w", err)
	}
	enc := json.NewEncoder(zw)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		_ = zw.Close()
		return fmt.Errorf("encode backup: %w", err)
	}
	return zw.Close()
}

// ReadBackup decodes a zstd-compressed JSON backup.
func ReadBackup(r io.Reader) (*model.BackupData, error) {
	zr, err := zstd.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("create zstd reader: %w", err)
	}
	defer zr.Close()
	var data model.BackupData
	if err := json.NewDecoder(zr).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode backup: %w", err)
	}
	return &data, nil
}

// Restore reads a backup from r and imports it in one transaction.
func (l *Leasing) Restore(ctx context.Context, r io.Reader, opts RestoreOptions) error {
	if err := l.gate.Authorize(auth.PermStoreAdmin); err != nil {
		return err
	}
	data, err := ReadBackup(r)
	if err != nil {
		return err
	}
	if opts.Full {
		err = l.store.ImportDataFromBackup(ctx, data)
	} else {
		err = l.store.IntegrateDataFromBackup(ctx, data)
	}
	if err == nil {
		logging.Infof("backup restored (full=%t): %d clients, %d vehicles, %d contracts, %d payments, %d principals",
			opts.Full, len(data.Clients), len(data.Vehicles), len(data.Contracts), len(data.Payments), len(data.Principals))
	}
	return err
}

// Migrate copies every row into a freshly migrated target store. The target
// content is replaced.
func (l *Leasing) Migrate(ctx context.Context, targetType, targetDSN string) error {
	if err := l.gate.Authorize(auth.PermStoreAdmin); err != nil {
		return err
	}
	data, err := l.store.ExportDataForBackup(ctx)
	if err != nil {
		return fmt.Errorf("export backup: %w", err)
	}
	target, err := storeOpener(targetType, targetDSN)
	if err != nil {
		return fmt.Errorf("init target store: %w", err)
	}
	defer func() { _ = target.Close() }()
	if err := target.ImportDataFromBackup(ctx, data); err != nil {
		return fmt.Errorf("import to target: %w", err)
	}
	logging.Infof("store migrated to %s", targetType)
	return nil
}

// Maintain runs engine-specific maintenance on the configured database.
func (l *Leasing) Maintain(ctx context.Context) error {
	if err := l.gate.Authorize(auth.PermStoreAdmin); err != nil {
		return err
	}
	if l.opts.DBType == "" {
		return fmt.Errorf("database type is not configured")
	}
	return db.RunDBMaintenance(l.opts.DBType, l.opts.DSN)
}
