// Copyright (c) 2026 Leasemaster Team
// Leasemaster - vehicle leasing management system
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"errors"

	"github.com/spf13/cobra"
	"github.com/toeirei/leasemaster/internal/db"
	"github.com/toeirei/leasemaster/internal/model"
	"github.com/toeirei/leasemaster/internal/ui"
)

func newContractCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "contract",
		Aliases: []string{"contracts"},
		Short:   "Manage leasing contracts",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List all leasing contracts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := a.leasing.ListContracts(cmd.Context())
			if err != nil {
				return err
			}
			return ui.WriteContracts(cmd.OutOrStdout(), list)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show <id>",
		Short: "Show a contract with its client, vehicle and payments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := idArg(args)
			if err != nil {
				return err
			}
			d, err := a.leasing.ContractDetails(cmd.Context(), id)
			if errors.Is(err, db.ErrNotFound) {
				return ui.NotFound(false, "contract", id)
			}
			if err != nil {
				return err
			}
			return ui.WriteContractDetails(cmd.OutOrStdout(), d)
		},
	})

	add := &cobra.Command{
		Use:   "add",
		Short: "Create a leasing contract",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := contractPatchFromFlags(cmd)
			if err != nil {
				return err
			}
			var c model.LeasingContract
			p.Apply(&c)
			id, err := a.leasing.CreateContract(cmd.Context(), c)
			if err != nil {
				return err
			}
			printAdded(cmd, "contract", id)
			return nil
		},
	}
	contractFlags(add)
	requireFlags(add, "client", "vehicle", "start", "end", "monthly")

	update := &cobra.Command{
		Use:   "update <id>",
		Short: "Update the given fields of a leasing contract",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := idArg(args)
			if err != nil {
				return err
			}
			p, err := contractPatchFromFlags(cmd)
			if err != nil {
				return err
			}
			ok, err := a.leasing.UpdateContract(cmd.Context(), id, p)
			if err != nil {
				return err
			}
			return printUpdated(cmd, "contract", id, ok)
		},
	}
	contractFlags(update)

	cmd.AddCommand(add, update, &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a leasing contract",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := idArg(args)
			if err != nil {
				return err
			}
			ok, err := a.leasing.DeleteContract(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printDeleted(cmd, "contract", id, ok)
		},
	})
	return cmd
}

func contractFlags(cmd *cobra.Command) {
	cmd.Flags().String("client", "", "Client id")
	cmd.Flags().String("vehicle", "", "Vehicle id")
	cmd.Flags().String("start", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().String("end", "", "End date (YYYY-MM-DD)")
	cmd.Flags().String("monthly", "", "Monthly payment")
}

func contractPatchFromFlags(cmd *cobra.Command) (model.ContractPatch, error) {
	var (
		p   model.ContractPatch
		err error
	)
	if p.ClientID, err = changedParsed(cmd, "client", "client_id", model.ParseID); err != nil {
		return p, err
	}
	if p.VehicleID, err = changedParsed(cmd, "vehicle", "vehicle_id", model.ParseID); err != nil {
		return p, err
	}
	if p.StartDate, err = changedParsed(cmd, "start", "start_date", model.ParseDay); err != nil {
		return p, err
	}
	if p.EndDate, err = changedParsed(cmd, "end", "end_date", model.ParseDay); err != nil {
		return p, err
	}
	if p.MonthlyPayment, err = changedParsed(cmd, "monthly", "monthly_payment", model.ParseMoney); err != nil {
		return p, err
	}
	return p, nil
}
