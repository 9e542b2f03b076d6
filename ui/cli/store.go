// Copyright (c) 2026 Leasemaster Team
// Leasemaster - vehicle leasing management system
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/toeirei/leasemaster/internal/core"
	"github.com/toeirei/leasemaster/internal/i18n"
	"github.com/toeirei/leasemaster/internal/logging"
	"github.com/toeirei/leasemaster/internal/ui"
)

func newSummaryCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "summary",
		Aliases: []string{"dashboard"},
		Short:   "Show record counts and the total paid",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.leasing.BuildDashboardData(cmd.Context(), time.Now())
			if err != nil {
				return err
			}
			return ui.WriteDashboard(cmd.OutOrStdout(), d)
		},
	}
}

func newBackupCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "backup <file>",
		Short: "Write a compressed backup of all records",
		Long: `Writes every client, vehicle, contract, payment and account to a
zstd-compressed JSON file. Account rows keep their password hashes, so the
file is created readable by the owner only.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			data, err := a.leasing.Backup(cmd.Context())
			if err != nil {
				return err
			}
			f, err := os.OpenFile(args[0], os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
			if err != nil {
				return fmt.Errorf("failed to create backup file: %w", err)
			}
			defer func() {
				if cerr := f.Close(); cerr != nil && err == nil {
					err = cerr
				}
			}()
			if err := core.WriteBackup(data, f); err != nil {
				return err
			}
			logging.Infof("backup written to %s", args[0])
			fmt.Fprintln(cmd.OutOrStdout(), i18n.T("backup.done", args[0]))
			return nil
		},
	}
}

func newRestoreCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "restore <file>",
		Short: "Restore records from a backup file",
		Long: `Merges the records of a backup into the store, skipping rows whose id
already exists. With --full the store is wiped first and replaced by the
backup contents.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			full, _ := cmd.Flags().GetBool("full")
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open backup file: %w", err)
			}
			defer func() { _ = f.Close() }()
			if err := a.leasing.Restore(cmd.Context(), f, core.RestoreOptions{Full: full}); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), i18n.T("restore.done", args[0]))
			return nil
		},
	}
	cmd.Flags().Bool("full", false, "Replace all records instead of merging")
	return cmd
}

func newDBCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "db",
		Short: "Store maintenance",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "maintain",
		Short: "Run engine-specific maintenance (VACUUM, ANALYZE, OPTIMIZE)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.leasing.Maintain(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), i18n.T("db.maintain_done"))
			return nil
		},
	})

	migrate := &cobra.Command{
		Use:   "migrate",
		Short: "Copy all records into another store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			toType, _ := cmd.Flags().GetString("to-type")
			toDSN, _ := cmd.Flags().GetString("to-dsn")
			if err := a.leasing.Migrate(cmd.Context(), toType, toDSN); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), i18n.T("db.migrate_done", toType))
			return nil
		},
	}
	migrate.Flags().String("to-type", "", `Target database type ("sqlite", "postgres", "mysql")`)
	migrate.Flags().String("to-dsn", "", "Target connection string")
	requireFlags(migrate, "to-type", "to-dsn")

	cmd.AddCommand(migrate)
	return cmd
}
