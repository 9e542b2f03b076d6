// Copyright (c) 2026 Leasemaster Team
// Leasemaster - vehicle leasing management system
// This source code is licensed under the MIT license found in the LICENSE file.

package ui

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/toeirei/leasemaster/internal/core"
	"github.com/toeirei/leasemaster/internal/i18n"
	"github.com/toeirei/leasemaster/internal/model"
)

func newTable(w io.Writer, headerKeys ...string) *tabwriter.Writer {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	headers := make([]string, len(headerKeys))
	for i, k := range headerKeys {
		headers[i] = i18n.T("table." + k)
	}
	fmt.Fprintln(tw, strings.Join(headers, "\t"))
	return tw
}

// WriteClients renders clients as a table, or a localized "empty" line.
func WriteClients(w io.Writer, clients []model.Client) error {
	if len(clients) == 0 {
		_, err := fmt.Fprintln(w, i18n.T("clients.empty"))
		return err
	}
	tw := newTable(w, "id", "name", "email", "phone")
	for _, c := range clients {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", c.ID, c.Name, c.Email, c.Phone)
	}
	return tw.Flush()
}

// WriteVehicles renders vehicles as a table.
func WriteVehicles(w io.Writer, vehicles []model.Vehicle) error {
	if len(vehicles) == 0 {
		_, err := fmt.Fprintln(w, i18n.T("vehicles.empty"))
		return err
	}
	tw := newTable(w, "id", "brand", "model", "year", "color")
	for _, v := range vehicles {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%s\n", v.ID, v.Brand, v.Model, v.Year, v.Color)
	}
	return tw.Flush()
}

// WriteContracts renders leasing contracts as a table.
func WriteContracts(w io.Writer, contracts []model.LeasingContract) error {
	if len(contracts) == 0 {
		_, err := fmt.Fprintln(w, i18n.T("contracts.empty"))
		return err
	}
	tw := newTable(w, "id", "client", "vehicle", "start", "end", "monthly")
	for _, c := range contracts {
		fmt.Fprintf(tw, "%d\t%d\t%d\t%s\t%s\t%s\n", c.ID, c.ClientID, c.VehicleID,
			model.FormatDay(c.StartDate), model.FormatDay(c.EndDate), model.FormatMoney(c.MonthlyPayment))
	}
	return tw.Flush()
}

// WritePayments renders payments as a table.
func WritePayments(w io.Writer, payments []model.Payment) error {
	if len(payments) == 0 {
		_, err := fmt.Fprintln(w, i18n.T("payments.empty"))
		return err
	}
	tw := newTable(w, "id", "contract", "date", "amount")
	for _, p := range payments {
		fmt.Fprintf(tw, "%d\t%d\t%s\t%s\n", p.ID, p.LeasingContractID, model.FormatDay(p.PaymentDate), model.FormatMoney(p.Amount))
	}
	return tw.Flush()
}

// WritePrincipals renders principals without their password hashes.
func WritePrincipals(w io.Writer, principals []model.Principal) error {
	if len(principals) == 0 {
		_, err := fmt.Fprintln(w, i18n.T("principals.empty"))
		return err
	}
	tw := newTable(w, "id", "username", "roles")
	for _, p := range principals {
		fmt.Fprintf(tw, "%d\t%s\t%s\n", p.ID, p.Username, p.Roles)
	}
	return tw.Flush()
}

// WriteContractDetails renders one contract with its parties and payments.
func WriteContractDetails(w io.Writer, d *core.ContractDetails) error {
	c := d.Contract
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "%s:\t%d\n", i18n.T("table.id"), c.ID)
	fmt.Fprintf(tw, "%s:\t#%d %s\n", i18n.T("table.client"), d.Client.ID, d.Client)
	fmt.Fprintf(tw, "%s:\t#%d %s\n", i18n.T("table.vehicle"), d.Vehicle.ID, d.Vehicle)
	fmt.Fprintf(tw, "%s:\t%s .. %s\n", i18n.T("contract.period"), model.FormatDay(c.StartDate), model.FormatDay(c.EndDate))
	fmt.Fprintf(tw, "%s:\t%s\n", i18n.T("table.monthly"), model.FormatMoney(c.MonthlyPayment))
	fmt.Fprintf(tw, "%s:\t%s\n", i18n.T("contract.paid"), model.FormatMoney(d.Paid))
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintln(w)
	return WritePayments(w, d.Payments)
}

// WriteDashboard renders the summary counters.
func WriteDashboard(w io.Writer, d core.DashboardData) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "%s:\t%d\n", i18n.T("dashboard.clients"), d.ClientCount)
	fmt.Fprintf(tw, "%s:\t%d\n", i18n.T("dashboard.vehicles"), d.VehicleCount)
	fmt.Fprintf(tw, "%s:\t%d (%d)\n", i18n.T("dashboard.contracts"), d.ContractCount, d.ActiveContracts)
	fmt.Fprintf(tw, "%s:\t%d / %s\n", i18n.T("dashboard.payments"), d.PaymentCount, model.FormatMoney(d.TotalPaid))
	return tw.Flush()
}
