// Copyright (c) 2026 Leasemaster Team
// Leasemaster - vehicle leasing management system
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"github.com/spf13/cobra"
	"github.com/toeirei/leasemaster/internal/model"
	"github.com/toeirei/leasemaster/internal/ui"
)

func newPaymentCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "payment",
		Aliases: []string{"payments"},
		Short:   "Record and review payments",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List payments, optionally for one contract",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			contractID, err := changedParsed(cmd, "contract", "leasing_contract_id", model.ParseID)
			if err != nil {
				return err
			}
			var list []model.Payment
			if contractID != nil {
				list, err = a.leasing.ListContractPayments(cmd.Context(), *contractID)
			} else {
				list, err = a.leasing.ListPayments(cmd.Context())
			}
			if err != nil {
				return err
			}
			return ui.WritePayments(cmd.OutOrStdout(), list)
		},
	}
	list.Flags().String("contract", "", "Only payments of this contract id")

	add := &cobra.Command{
		Use:   "add",
		Short: "Record a payment",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := paymentPatchFromFlags(cmd)
			if err != nil {
				return err
			}
			var pay model.Payment
			p.Apply(&pay)
			id, err := a.leasing.CreatePayment(cmd.Context(), pay)
			if err != nil {
				return err
			}
			printAdded(cmd, "payment", id)
			return nil
		},
	}
	paymentFlags(add)
	requireFlags(add, "contract", "date", "amount")

	update := &cobra.Command{
		Use:   "update <id>",
		Short: "Correct a recorded payment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := idArg(args)
			if err != nil {
				return err
			}
			p, err := paymentPatchFromFlags(cmd)
			if err != nil {
				return err
			}
			ok, err := a.leasing.UpdatePayment(cmd.Context(), id, p)
			if err != nil {
				return err
			}
			return printUpdated(cmd, "payment", id, ok)
		},
	}
	paymentFlags(update)

	cmd.AddCommand(list, add, update, &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a payment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := idArg(args)
			if err != nil {
				return err
			}
			ok, err := a.leasing.DeletePayment(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printDeleted(cmd, "payment", id, ok)
		},
	})
	return cmd
}

func paymentFlags(cmd *cobra.Command) {
	cmd.Flags().String("contract", "", "Leasing contract id")
	cmd.Flags().String("date", "", "Payment date (YYYY-MM-DD)")
	cmd.Flags().String("amount", "", "Amount paid")
}

func paymentPatchFromFlags(cmd *cobra.Command) (model.PaymentPatch, error) {
	var (
		p   model.PaymentPatch
		err error
	)
	if p.LeasingContractID, err = changedParsed(cmd, "contract", "leasing_contract_id", model.ParseID); err != nil {
		return p, err
	}
	if p.PaymentDate, err = changedParsed(cmd, "date", "payment_date", model.ParseDay); err != nil {
		return p, err
	}
	if p.Amount, err = changedParsed(cmd, "amount", "amount", model.ParseMoney); err != nil {
		return p, err
	}
	return p, nil
}
