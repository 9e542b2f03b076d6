// Copyright (c) 2026 Leasemaster Team
// Leasemaster - vehicle leasing management system
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"database/sql/driver"
	"time"

	"github.com/shopspring/decimal"
	"github.com/toeirei/leasemaster/internal/model"
	"github.com/uptrace/bun"
)

// Money stores a decimal amount with exactly two fractional digits. SQLite
// keeps it as TEXT, postgres and mysql as NUMERIC(10,2).
type Money struct{ decimal.Decimal }

// Value implements driver.Valuer.
func (m Money) Value() (driver.Value, error) {
	return m.StringFixed(2), nil
}

// Scan implements sql.Scanner.
func (m *Money) Scan(value any) error {
	return m.Decimal.Scan(value)
}

func toMoney(d decimal.Decimal) Money { return Money{d.Round(2)} }

// ClientModel maps the clients table for Bun queries.
type ClientModel struct {
	bun.BaseModel `bun:"table:clients"`
	ID            int64  `bun:"id,pk,autoincrement"`
	Name          string `bun:"name"`
	Email         string `bun:"email"`
	Phone         string `bun:"phone"`
}

// VehicleModel maps the vehicles table.
type VehicleModel struct {
	bun.BaseModel `bun:"table:vehicles"`
	ID            int64  `bun:"id,pk,autoincrement"`
	Brand         string `bun:"brand"`
	Model         string `bun:"model"`
	Year          int    `bun:"year"`
	Color         string `bun:"color"`
}

// ContractModel maps the leasing_contracts table.
type ContractModel struct {
	bun.BaseModel  `bun:"table:leasing_contracts"`
	ID             int64     `bun:"id,pk,autoincrement"`
	ClientID       int64     `bun:"client_id"`
	VehicleID      int64     `bun:"vehicle_id"`
	StartDate      time.Time `bun:"start_date"`
	EndDate        time.Time `bun:"end_date"`
	MonthlyPayment Money     `bun:"monthly_payment"`
}

// PaymentModel maps the payments table.
type PaymentModel struct {
	bun.BaseModel     `bun:"table:payments"`
	ID                int64     `bun:"id,pk,autoincrement"`
	LeasingContractID int64     `bun:"leasing_contract_id"`
	PaymentDate       time.Time `bun:"payment_date"`
	Amount            Money     `bun:"amount"`
}

// PrincipalModel maps the principals table.
type PrincipalModel struct {
	bun.BaseModel `bun:"table:principals"`
	ID            int64  `bun:"id,pk,autoincrement"`
	Username      string `bun:"username"`
	PasswordHash  string `bun:"password_hash"`
	IsAdmin       bool   `bun:"is_admin"`
	IsAccountant  bool   `bun:"is_accountant"`
	IsCarManager  bool   `bun:"is_car_manager"`
}

func clientModelToModel(m ClientModel) model.Client {
	return model.Client{ID: m.ID, Name: m.Name, Email: m.Email, Phone: m.Phone}
}

func clientModelFrom(c model.Client) *ClientModel {
	return &ClientModel{ID: c.ID, Name: c.Name, Email: c.Email, Phone: c.Phone}
}

func vehicleModelToModel(m VehicleModel) model.Vehicle {
	return model.Vehicle{ID: m.ID, Brand: m.Brand, Model: m.Model, Year: m.Year, Color: m.Color}
}

func vehicleModelFrom(v model.Vehicle) *VehicleModel {
	return &VehicleModel{ID: v.ID, Brand: v.Brand, Model: v.Model, Year: v.Year, Color: v.Color}
}

func contractModelToModel(m ContractModel) model.LeasingContract {
	return model.LeasingContract{
		ID:             m.ID,
		ClientID:       m.ClientID,
		VehicleID:      m.VehicleID,
		StartDate:      model.Day(m.StartDate),
		EndDate:        model.Day(m.EndDate),
		MonthlyPayment: m.MonthlyPayment.Decimal,
	}
}

func contractModelFrom(c model.LeasingContract) *ContractModel {
	return &ContractModel{
		ID:             c.ID,
		ClientID:       c.ClientID,
		VehicleID:      c.VehicleID,
		StartDate:      model.Day(c.StartDate),
		EndDate:        model.Day(c.EndDate),
		MonthlyPayment: toMoney(c.MonthlyPayment),
	}
}

func paymentModelToModel(m PaymentModel) model.Payment {
	return model.Payment{
		ID:                m.ID,
		LeasingContractID: m.LeasingContractID,
		PaymentDate:       model.Day(m.PaymentDate),
		Amount:            m.Amount.Decimal,
	}
}

func paymentModelFrom(p model.Payment) *PaymentModel {
	return &PaymentModel{
		ID:                p.ID,
		LeasingContractID: p.LeasingContractID,
		PaymentDate:       model.Day(p.PaymentDate),
		Amount:            toMoney(p.Amount),
	}
}

func principalModelToModel(m PrincipalModel) model.Principal {
	return model.Principal{
		ID:           m.ID,
		Username:     m.Username,
		PasswordHash: m.PasswordHash,
		Roles:        model.Roles{Admin: m.IsAdmin, Accountant: m.IsAccountant, CarManager: m.IsCarManager},
	}
}

func principalModelFrom(p model.Principal) *PrincipalModel {
	return &PrincipalModel{
		ID:           p.ID,
		Username:     p.Username,
		PasswordHash: p.PasswordHash,
		IsAdmin:      p.Roles.Admin,
		IsAccountant: p.Roles.Accountant,
		IsCarManager: p.Roles.CarManager,
	}
}
