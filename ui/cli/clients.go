// Copyright (c) 2026 Leasemaster Team
// Leasemaster - vehicle leasing management system
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"github.com/spf13/cobra"
	"github.com/toeirei/leasemaster/internal/model"
	"github.com/toeirei/leasemaster/internal/ui"
)

func newClientCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "client",
		Aliases: []string{"clients"},
		Short:   "Manage clients",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List all clients",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := a.leasing.ListClients(cmd.Context())
			if err != nil {
				return err
			}
			return ui.WriteClients(cmd.OutOrStdout(), list)
		},
	})

	add := &cobra.Command{
		Use:   "add",
		Short: "Add a client",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			name, _ := cmd.Flags().GetString("name")
			email, _ := cmd.Flags().GetString("email")
			phone, _ := cmd.Flags().GetString("phone")
			id, err := a.leasing.CreateClient(cmd.Context(), model.Client{Name: name, Email: email, Phone: phone})
			if err != nil {
				return err
			}
			printAdded(cmd, "client", id)
			return nil
		},
	}
	clientFlags(add)
	requireFlags(add, "name", "email", "phone")

	update := &cobra.Command{
		Use:   "update <id>",
		Short: "Update the given fields of a client",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := idArg(args)
			if err != nil {
				return err
			}
			ok, err := a.leasing.UpdateClient(cmd.Context(), id, model.ClientPatch{
				Name:  changedString(cmd, "name"),
				Email: changedString(cmd, "email"),
				Phone: changedString(cmd, "phone"),
			})
			if err != nil {
				return err
			}
			return printUpdated(cmd, "client", id, ok)
		},
	}
	clientFlags(update)

	cmd.AddCommand(add, update, &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a client",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := idArg(args)
			if err != nil {
				return err
			}
			ok, err := a.leasing.DeleteClient(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printDeleted(cmd, "client", id, ok)
		},
	})
	return cmd
}

func clientFlags(cmd *cobra.Command) {
	cmd.Flags().String("name", "", "Client name")
	cmd.Flags().String("email", "", "Contact email")
	cmd.Flags().String("phone", "", "Contact phone")
}
