// Copyright (c) 2026 Leasemaster Team
// Leasemaster - vehicle leasing management system
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/toeirei/leasemaster/internal/i18n"
	"github.com/toeirei/leasemaster/internal/model"
	"github.com/toeirei/leasemaster/internal/security"
	"github.com/toeirei/leasemaster/internal/ui"
)

func newManagerCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "manager",
		Aliases: []string{"managers"},
		Short:   "Manage fleet manager accounts",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List fleet managers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := a.leasing.ListFleetManagers(cmd.Context())
			if err != nil {
				return err
			}
			return ui.WritePrincipals(cmd.OutOrStdout(), list)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "add <username>",
		Short: "Create a fleet manager; the password is prompted",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pw, err := a.newPassword(cmd)
			if err != nil {
				return err
			}
			defer pw.Zero()
			id, err := a.leasing.AddFleetManager(cmd.Context(), args[0], pw)
			if err != nil {
				return err
			}
			printAdded(cmd, "manager", id)
			return nil
		},
	})

	update := &cobra.Command{
		Use:   "update <id>",
		Short: "Rename a fleet manager or reset the password",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := idArg(args)
			if err != nil {
				return err
			}
			var pw security.Secret
			if reset, _ := cmd.Flags().GetBool("reset-password"); reset {
				if pw, err = a.newPassword(cmd); err != nil {
					return err
				}
				defer pw.Zero()
			}
			ok, err := a.leasing.UpdateFleetManager(cmd.Context(), id, changedString(cmd, "username"), pw)
			if err != nil {
				return err
			}
			return printUpdated(cmd, "manager", id, ok)
		},
	}
	update.Flags().String("username", "", "New login name")
	update.Flags().Bool("reset-password", false, "Prompt for a new password")

	cmd.AddCommand(update, &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a fleet manager",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := idArg(args)
			if err != nil {
				return err
			}
			ok, err := a.leasing.DeleteFleetManager(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printDeleted(cmd, "manager", id, ok)
		},
	})
	return cmd
}

func newUserCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "user",
		Aliases: []string{"users"},
		Short:   "Manage login accounts and roles",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List all accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := a.leasing.ListUsers(cmd.Context())
			if err != nil {
				return err
			}
			return ui.WritePrincipals(cmd.OutOrStdout(), list)
		},
	})

	register := &cobra.Command{
		Use:   "register <username>",
		Short: "Create an account; the password is prompted",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rawRoles, _ := cmd.Flags().GetString("roles")
			roles, err := model.ParseRoles(rawRoles)
			if err != nil {
				return err
			}
			pw, err := a.newPassword(cmd)
			if err != nil {
				return err
			}
			defer pw.Zero()
			id, err := a.leasing.RegisterUser(cmd.Context(), args[0], pw, roles)
			if err != nil {
				return err
			}
			printAdded(cmd, "user", id)
			return nil
		},
	}
	register.Flags().String("roles", "", "Comma-separated roles: admin, accountant, car_manager")

	update := &cobra.Command{
		Use:   "update <id>",
		Short: "Rename an account or replace its roles",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := idArg(args)
			if err != nil {
				return err
			}
			roles, err := changedParsed(cmd, "roles", "roles", func(_, raw string) (model.Roles, error) {
				return model.ParseRoles(raw)
			})
			if err != nil {
				return err
			}
			ok, err := a.leasing.UpdateUser(cmd.Context(), id, model.PrincipalPatch{
				Username: changedString(cmd, "username"),
				Roles:    roles,
			})
			if err != nil {
				return err
			}
			return printUpdated(cmd, "user", id, ok)
		},
	}
	update.Flags().String("username", "", "New login name")
	update.Flags().String("roles", "", "Replacement roles: admin, accountant, car_manager")

	deleteCmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := idArg(args)
			if err != nil {
				return err
			}
			ok, err := a.leasing.DeleteUser(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printDeleted(cmd, "user", id, ok)
		},
	}

	passwd := &cobra.Command{
		Use:   "passwd [id]",
		Short: "Change your own password, or reset another account's",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				current, err := a.promptSecret(cmd, i18n.T("prompt.current_password"))
				if err != nil {
					return err
				}
				defer current.Zero()
				next, err := a.newPassword(cmd)
				if err != nil {
					return err
				}
				defer next.Zero()
				if err := a.leasing.ChangeOwnPassword(cmd.Context(), current, next); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), i18n.T("result.password_changed"))
				return nil
			}
			id, err := idArg(args)
			if err != nil {
				return err
			}
			pw, err := a.newPassword(cmd)
			if err != nil {
				return err
			}
			defer pw.Zero()
			ok, err := a.leasing.SetUserPassword(cmd.Context(), id, pw)
			if err != nil {
				return err
			}
			return printUpdated(cmd, "user", id, ok)
		},
	}

	cmd.AddCommand(register, update, deleteCmd, passwd)
	return cmd
}
