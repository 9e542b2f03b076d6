// Copyright (c) 2026 Leasemaster Team
// Leasemaster - vehicle leasing management system
// This source code is licensed under the MIT license found in the LICENSE file.

package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Patches carry field-level updates. A nil pointer means "no value supplied"
// and leaves the stored column untouched; a non-nil pointer is applied as-is,
// so a pointer to "" is an explicit (and for required fields invalid) value.

// ClientPatch updates a Client.
type ClientPatch struct {
	Name  *string `json:"name,omitempty" validate:"omitnil,notblank,max=255"`
	Email *string `json:"email,omitempty" validate:"omitnil,required,email,max=255"`
	Phone *string `json:"phone,omitempty" validate:"omitnil,notblank,max=64"`
}

// IsEmpty reports whether no field is set.
func (p ClientPatch) IsEmpty() bool {
	return p.Name == nil && p.Email == nil && p.Phone == nil
}

// Validate checks the supplied fields only.
func (p ClientPatch) Validate() error { return validateStruct(p) }

// Apply copies the supplied fields onto c.
func (p ClientPatch) Apply(c *Client) {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Email != nil {
		c.Email = *p.Email
	}
	if p.Phone != nil {
		c.Phone = *p.Phone
	}
}

// VehiclePatch updates a Vehicle.
type VehiclePatch struct {
	Brand *string `json:"brand,omitempty" validate:"omitnil,notblank,max=128"`
	Model *string `json:"model,omitempty" validate:"omitnil,notblank,max=128"`
	Year  *int    `json:"year,omitempty" validate:"omitnil,gte=1886,lte=2100"`
	Color *string `json:"color,omitempty" validate:"omitnil,notblank,max=64"`
}

func (p VehiclePatch) IsEmpty() bool {
	return p.Brand == nil && p.Model == nil && p.Year == nil && p.Color == nil
}

func (p VehiclePatch) Validate() error { return validateStruct(p) }

func (p VehiclePatch) Apply(v *Vehicle) {
	if p.Brand != nil {
		v.Brand = *p.Brand
	}
	if p.Model != nil {
		v.Model = *p.Model
	}
	if p.Year != nil {
		v.Year = *p.Year
	}
	if p.Color != nil {
		v.Color = *p.Color
	}
}

// ContractPatch updates a LeasingContract.
type ContractPatch struct {
	ClientID       *int64           `json:"client_id,omitempty" validate:"omitnil,gt=0"`
	VehicleID      *int64           `json:"vehicle_id,omitempty" validate:"omitnil,gt=0"`
	StartDate      *time.Time       `json:"start_date,omitempty" validate:"omitnil,required"`
	EndDate        *time.Time       `json:"end_date,omitempty" validate:"omitnil,required"`
	MonthlyPayment *decimal.Decimal `json:"monthly_payment,omitempty"`
}

func (p ContractPatch) IsEmpty() bool {
	return p.ClientID == nil && p.VehicleID == nil && p.StartDate == nil && p.EndDate == nil && p.MonthlyPayment == nil
}

// Validate checks the supplied fields only. The period is checked against
// the merged row by LeasingContract.Validate.
func (p ContractPatch) Validate() error {
	if err := validateStruct(p); err != nil {
		return err
	}
	if p.MonthlyPayment != nil {
		return ValidateMoney("monthly_payment", *p.MonthlyPayment)
	}
	return nil
}

func (p ContractPatch) Apply(c *LeasingContract) {
	if p.ClientID != nil {
		c.ClientID = *p.ClientID
	}
	if p.VehicleID != nil {
		c.VehicleID = *p.VehicleID
	}
	if p.StartDate != nil {
		c.StartDate = Day(*p.StartDate)
	}
	if p.EndDate != nil {
		c.EndDate = Day(*p.EndDate)
	}
	if p.MonthlyPayment != nil {
		c.MonthlyPayment = p.MonthlyPayment.Round(2)
	}
}

// PaymentPatch updates a Payment.
type PaymentPatch struct {
	LeasingContractID *int64           `json:"leasing_contract_id,omitempty" validate:"omitnil,gt=0"`
	PaymentDate       *time.Time       `json:"payment_date,omitempty" validate:"omitnil,required"`
	Amount            *decimal.Decimal `json:"amount,omitempty"`
}

func (p PaymentPatch) IsEmpty() bool {
	return p.LeasingContractID == nil && p.PaymentDate == nil && p.Amount == nil
}

func (p PaymentPatch) Validate() error {
	if err := validateStruct(p); err != nil {
		return err
	}
	if p.Amount != nil {
		return ValidateMoney("amount", *p.Amount)
	}
	return nil
}

func (p PaymentPatch) Apply(pay *Payment) {
	if p.LeasingContractID != nil {
		pay.LeasingContractID = *p.LeasingContractID
	}
	if p.PaymentDate != nil {
		pay.PaymentDate = Day(*p.PaymentDate)
	}
	if p.Amount != nil {
		pay.Amount = p.Amount.Round(2)
	}
}

// PrincipalPatch updates a Principal. Passwords are changed through the
// credential store so that every write path hashes them.
type PrincipalPatch struct {
	Username *string `json:"username,omitempty"`
	Roles    *Roles  `json:"roles,omitempty"`
}

func (p PrincipalPatch) IsEmpty() bool {
	return p.Username == nil && p.Roles == nil
}

func (p PrincipalPatch) Validate() error {
	if p.Username != nil {
		return ValidateUsername(*p.Username)
	}
	return nil
}

func (p PrincipalPatch) Apply(pr *Principal) {
	if p.Username != nil {
		pr.Username = *p.Username
	}
	if p.Roles != nil {
		pr.Roles = *p.Roles
	}
}

// Ptr returns a pointer to v; handy for building patches.
func Ptr[T any](v T) *T { return &v }
