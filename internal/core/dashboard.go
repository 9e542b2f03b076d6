// Copyright (c) 2026 Leasemaster Team
// Leasemaster - vehicle leasing management system
// This source code is licensed under the MIT license found in the LICENSE file.

package core

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/toeirei/leasemaster/internal/auth"
	"github.com/toeirei/leasemaster/internal/db"
	"github.com/toeirei/leasemaster/internal/model"
)

// DashboardData holds aggregated values for the main menu header.
type DashboardData struct {
	ClientCount   int
	VehicleCount  int
	ContractCount int
	// ActiveContracts counts contracts whose period contains the reference day.
	ActiveContracts int
	PaymentCount    int
	TotalPaid       decimal.Decimal
}

// BuildDashboardData computes the counters from one snapshot. now selects the
// reference day for active contracts.
func (l *Leasing) BuildDashboardData(ctx context.Context, now time.Time) (DashboardData, error) {
	out := DashboardData{TotalPaid: decimal.Zero}
	today := model.Day(now)
	err := l.run(ctx, auth.PermRead, func(ctx context.Context, r *db.Repos) error {
		clients, err := r.Clients.List(ctx)
		if err != nil {
			return err
		}
		vehicles, err := r.Vehicles.List(ctx)
		if err != nil {
			return err
		}
		contracts, err := r.Contracts.List(ctx)
		if err != nil {
			return err
		}
		payments, err := r.Payments.List(ctx)
		if err != nil {
			return err
		}
		out.ClientCount = len(clients)
		out.VehicleCount = len(vehicles)
		out.ContractCount = len(contracts)
		for _, c := range contracts {
			if !today.Before(c.StartDate) && !today.After(c.EndDate) {
				out.ActiveContracts++
			}
		}
		out.PaymentCount = len(payments)
		for _, p := range payments {
			out.TotalPaid = out.TotalPaid.Add(p.Amount)
		}
		return nil
	})
	return out, err
}
