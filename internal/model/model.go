// Copyright (c) 2026 Leasemaster Team
// Leasemaster - vehicle leasing management system
// This source code is licensed under the MIT license found in the LICENSE file.

// Package model defines the leasing domain types shared by the store, the
// core façade and the user interfaces.
package model // import "github.com/toeirei/leasemaster/internal/model"

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Client is a customer that leases vehicles.
type Client struct {
	ID    int64  `json:"id"`
	Name  string `json:"name" validate:"notblank,max=255"`
	Email string `json:"email" validate:"required,email,max=255"`
	Phone string `json:"phone" validate:"notblank,max=64"`
}

// String returns a short human-readable representation.
func (c Client) String() string {
	return fmt.Sprintf("%s <%s>", c.Name, c.Email)
}

// Vehicle is a car that can be leased.
type Vehicle struct {
	ID    int64  `json:"id"`
	Brand string `json:"brand" validate:"notblank,max=128"`
	Model string `json:"model" validate:"notblank,max=128"`
	Year  int    `json:"year" validate:"gte=1886,lte=2100"`
	Color string `json:"color" validate:"notblank,max=64"`
}

func (v Vehicle) String() string {
	return fmt.Sprintf("%s %s (%d, %s)", v.Brand, v.Model, v.Year, v.Color)
}

// LeasingContract binds one client to one vehicle for a period with a fixed
// monthly payment.
type LeasingContract struct {
	ID             int64           `json:"id"`
	ClientID       int64           `json:"client_id" validate:"gt=0"`
	VehicleID      int64           `json:"vehicle_id" validate:"gt=0"`
	StartDate      time.Time       `json:"start_date" validate:"required"`
	EndDate        time.Time       `json:"end_date" validate:"required"`
	MonthlyPayment decimal.Decimal `json:"monthly_payment"`
}

func (c LeasingContract) String() string {
	return fmt.Sprintf("contract #%d: client %d, vehicle %d, %s..%s, %s/month",
		c.ID, c.ClientID, c.VehicleID, FormatDay(c.StartDate), FormatDay(c.EndDate), FormatMoney(c.MonthlyPayment))
}

// Payment is a single payment received for a leasing contract.
type Payment struct {
	ID                int64           `json:"id"`
	LeasingContractID int64           `json:"leasing_contract_id" validate:"gt=0"`
	PaymentDate       time.Time       `json:"payment_date" validate:"required"`
	Amount            decimal.Decimal `json:"amount"`
}

func (p Payment) String() string {
	return fmt.Sprintf("payment #%d: contract %d, %s, %s",
		p.ID, p.LeasingContractID, FormatDay(p.PaymentDate), FormatMoney(p.Amount))
}

// Principal is an identity that can log in. Fleet managers are principals
// with the car-manager role.
type Principal struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"password_hash"`
	Roles        Roles  `json:"roles"`
}

// String never includes the password hash.
func (p Principal) String() string {
	return fmt.Sprintf("%s [%s]", p.Username, p.Roles)
}

// Format keeps the password hash out of every fmt verb, including %+v and %#v.
func (p Principal) Format(f fmt.State, _ rune) {
	_, _ = fmt.Fprint(f, p.String())
}

// IsFleetManager reports whether the principal manages the car fleet.
func (p Principal) IsFleetManager() bool {
	return p.Roles.CarManager
}
