// Copyright (c) 2026 Leasemaster Team
// Leasemaster - vehicle leasing management system
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"github.com/spf13/cobra"
	"github.com/toeirei/leasemaster/internal/model"
	"github.com/toeirei/leasemaster/internal/ui"
)

func newVehicleCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "vehicle",
		Aliases: []string{"vehicles", "car"},
		Short:   "Manage the vehicle fleet",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List all vehicles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := a.leasing.ListVehicles(cmd.Context())
			if err != nil {
				return err
			}
			return ui.WriteVehicles(cmd.OutOrStdout(), list)
		},
	})

	add := &cobra.Command{
		Use:   "add",
		Short: "Add a vehicle",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			brand, _ := cmd.Flags().GetString("brand")
			mdl, _ := cmd.Flags().GetString("model")
			color, _ := cmd.Flags().GetString("color")
			rawYear, _ := cmd.Flags().GetString("year")
			year, err := model.ParseYear("year", rawYear)
			if err != nil {
				return err
			}
			id, err := a.leasing.CreateVehicle(cmd.Context(), model.Vehicle{Brand: brand, Model: mdl, Year: year, Color: color})
			if err != nil {
				return err
			}
			printAdded(cmd, "vehicle", id)
			return nil
		},
	}
	vehicleFlags(add)
	requireFlags(add, "brand", "model", "year", "color")

	update := &cobra.Command{
		Use:   "update <id>",
		Short: "Update the given fields of a vehicle",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := idArg(args)
			if err != nil {
				return err
			}
			year, err := changedParsed(cmd, "year", "year", model.ParseYear)
			if err != nil {
				return err
			}
			ok, err := a.leasing.UpdateVehicle(cmd.Context(), id, model.VehiclePatch{
				Brand: changedString(cmd, "brand"),
				Model: changedString(cmd, "model"),
				Year:  year,
				Color: changedString(cmd, "color"),
			})
			if err != nil {
				return err
			}
			return printUpdated(cmd, "vehicle", id, ok)
		},
	}
	vehicleFlags(update)

	cmd.AddCommand(add, update, &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a vehicle",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := idArg(args)
			if err != nil {
				return err
			}
			ok, err := a.leasing.DeleteVehicle(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printDeleted(cmd, "vehicle", id, ok)
		},
	})
	return cmd
}

func vehicleFlags(cmd *cobra.Command) {
	cmd.Flags().String("brand", "", "Manufacturer")
	cmd.Flags().String("model", "", "Model name")
	cmd.Flags().String("year", "", "Model year")
	cmd.Flags().String("color", "", "Color")
}
