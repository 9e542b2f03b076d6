// Copyright (c) 2026 Leasemaster Team
// Leasemaster - vehicle leasing management system
// This source code is licensed under the MIT license found in the LICENSE file.

package model

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// MaxMoney is the largest amount a NUMERIC(10,2) column holds.
var MaxMoney = decimal.RequireFromString("99999999.99")

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		// Report json field names so messages match the column names.
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		_ = validate.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		})
	})
	return validate
}

// validateStruct runs the struct tags and converts the first failure into a
// ValidationError.
func validateStruct(v any) error {
	err := validatorInstance().Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return &ValidationError{Field: fe.Field(), Reason: describeTag(fe)}
	}
	return &ValidationError{Reason: err.Error()}
}

func describeTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return "value is required"
	case "email":
		return "not a valid email address"
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be %s or later", fe.Param())
	case "lte":
		return fmt.Sprintf("must be %s or earlier", fe.Param())
	default:
		return fmt.Sprintf("failed %q check", fe.Tag())
	}
}

// ValidateMoney checks that d is positive, fits NUMERIC(10,2) and carries at
// most two fractional digits.
func ValidateMoney(field string, d decimal.Decimal) error {
	if !d.IsPositive() {
		return Invalid(field, "must be greater than 0")
	}
	if d.GreaterThan(MaxMoney) {
		return Invalid(field, "must not exceed %s", MaxMoney.StringFixed(2))
	}
	if !d.Equal(d.Round(2)) {
		return Invalid(field, "must have at most 2 decimal places")
	}
	return nil
}

// Validate checks all client fields.
func (c Client) Validate() error {
	return validateStruct(c)
}

// Validate checks all vehicle fields.
func (v Vehicle) Validate() error {
	return validateStruct(v)
}

// Validate checks the contract fields, its amount and its period.
func (c LeasingContract) Validate() error {
	if err := validateStruct(c); err != nil {
		return err
	}
	if err := ValidateMoney("monthly_payment", c.MonthlyPayment); err != nil {
		return err
	}
	if Day(c.EndDate).Before(Day(c.StartDate)) {
		return Invalid("end_date", "must not be before start_date (%s)", FormatDay(c.StartDate))
	}
	return nil
}

// Validate checks the payment fields and amount.
func (p Payment) Validate() error {
	if err := validateStruct(p); err != nil {
		return err
	}
	return ValidateMoney("amount", p.Amount)
}

// ValidateUsername applies the login name rules shared by every principal.
func ValidateUsername(username string) error {
	if strings.TrimSpace(username) == "" {
		return Invalid("username", "value is required")
	}
	if len(username) < 3 || len(username) > 64 {
		return Invalid("username", "must be between 3 and 64 characters")
	}
	if strings.ContainsAny(username, " \t\r\n") {
		return Invalid("username", "must not contain whitespace")
	}
	return nil
}
