// Copyright (c) 2026 Leasemaster Team
// Leasemaster - vehicle leasing management system
// This source code is licensed under the MIT license found in the LICENSE file.

package model

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestPrincipalFormat_HidesHash(t *testing.T) {
	p := Principal{ID: 1, Username: "admin", PasswordHash: "$2a$10$secrethash", Roles: Roles{Admin: true}}
	for _, verb := range []string{"%v", "%+v", "%#v", "%s"} {
		if got := fmt.Sprintf(verb, p); strings.Contains(got, "secrethash") {
			t.Fatalf("%s leaked the password hash: %q", verb, got)
		}
	}
	if got := p.String(); got != "admin [admin]" {
		t.Errorf("unexpected Principal.String(): %q", got)
	}
}

func TestParseRoles(t *testing.T) {
	r, err := ParseRoles("admin, car_manager")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !r.Admin || r.Accountant || !r.CarManager {
		t.Fatalf("unexpected roles: %+v", r)
	}
	if r.String() != "admin,car_manager" {
		t.Errorf("unexpected Roles.String(): %q", r.String())
	}
	if (Roles{}).String() != "none" {
		t.Errorf("empty roles should print as none")
	}
	if _, err := ParseRoles("admin,janitor"); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error for unknown role, got %v", err)
	}
}

func TestParseDeletePolicy(t *testing.T) {
	cases := map[string]DeletePolicy{"": DeleteRestrict, "restrict": DeleteRestrict, "CASCADE": DeleteCascade}
	for in, want := range cases {
		got, err := ParseDeletePolicy(in)
		if err != nil || got != want {
			t.Errorf("ParseDeletePolicy(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := ParseDeletePolicy("orphan"); err == nil {
		t.Fatalf("expected error for unknown policy")
	}
}

func TestClientValidate(t *testing.T) {
	ok := Client{Name: "Ana", Email: "a@x.com", Phone: "555-1"}
	if err := ok.Validate(); err != nil {
		t.Fatalf("valid client rejected: %v", err)
	}

	bad := ok
	bad.Name = "   "
	err := bad.Validate()
	var ve *ValidationError
	if !errors.As(err, &ve) || ve.Field != "name" {
		t.Fatalf("expected name validation error, got %v", err)
	}

	bad = ok
	bad.Email = "not-an-email"
	if err := bad.Validate(); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected email validation error, got %v", err)
	}
}

func TestContractValidate_Period(t *testing.T) {
	c := LeasingContract{
		ClientID:       1,
		VehicleID:      1,
		StartDate:      time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:        time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		MonthlyPayment: decimal.RequireFromString("450.00"),
	}
	if err := c.Validate(); err != nil {
		t.Fatalf("valid contract rejected: %v", err)
	}

	same := c
	same.EndDate = same.StartDate
	if err := same.Validate(); err != nil {
		t.Fatalf("single-day contract rejected: %v", err)
	}

	reversed := c
	reversed.EndDate = time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC)
	var ve *ValidationError
	if err := reversed.Validate(); !errors.As(err, &ve) || ve.Field != "end_date" {
		t.Fatalf("expected end_date validation error, got %v", err)
	}

	noClient := c
	noClient.ClientID = 0
	if err := noClient.Validate(); !errors.As(err, &ve) || ve.Field != "client_id" {
		t.Fatalf("expected client_id validation error, got %v", err)
	}
}

func TestValidateMoney(t *testing.T) {
	cases := []struct {
		in    string
		valid bool
	}{
		{"450.00", true},
		{"0.01", true},
		{"99999999.99", true},
		{"0", false},
		{"-1", false},
		{"1.005", false},
		{"100000000", false},
	}
	for _, c := range cases {
		err := ValidateMoney("amount", decimal.RequireFromString(c.in))
		if (err == nil) != c.valid {
			t.Errorf("ValidateMoney(%s) err=%v, want valid=%v", c.in, err, c.valid)
		}
	}
}

func TestParsers(t *testing.T) {
	d, err := ParseDay("start_date", " 2024-01-01 ")
	if err != nil || FormatDay(d) != "2024-01-01" {
		t.Fatalf("ParseDay: %v %v", d, err)
	}
	if _, err := ParseDay("start_date", "01.01.2024"); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error for bad date, got %v", err)
	}

	m, err := ParseMoney("amount", "450,5")
	if err != nil || FormatMoney(m) != "450.50" {
		t.Fatalf("ParseMoney: %v %v", m, err)
	}
	if _, err := ParseMoney("amount", "lots"); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error for bad amount, got %v", err)
	}

	if id, err := ParseID("id", "42"); err != nil || id != 42 {
		t.Fatalf("ParseID: %d %v", id, err)
	}
	if _, err := ParseID("id", "-3"); err == nil {
		t.Fatalf("expected error for negative id")
	}
	if _, err := ParseYear("year", "1700"); err == nil {
		t.Fatalf("expected error for year out of range")
	}
}

func TestPatches_EmptyAndApply(t *testing.T) {
	if !(ClientPatch{}).IsEmpty() || !(VehiclePatch{}).IsEmpty() || !(ContractPatch{}).IsEmpty() || !(PaymentPatch{}).IsEmpty() {
		t.Fatalf("zero patches must be empty")
	}

	c := Client{Name: "Ana", Email: "a@x.com", Phone: "555-1"}
	ClientPatch{Phone: Ptr("555-2")}.Apply(&c)
	if c.Name != "Ana" || c.Phone != "555-2" {
		t.Fatalf("patch applied wrong fields: %+v", c)
	}

	// An explicit empty string is a supplied value and must fail validation.
	if err := (ClientPatch{Name: Ptr("")}).Validate(); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error for explicit empty name, got %v", err)
	}
	if err := (VehiclePatch{Year: Ptr(1500)}).Validate(); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error for year, got %v", err)
	}
	if err := (PaymentPatch{Amount: Ptr(decimal.RequireFromString("0"))}).Validate(); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error for zero amount, got %v", err)
	}
}
