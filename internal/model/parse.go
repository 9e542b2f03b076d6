// Copyright (c) 2026 Leasemaster Team
// Leasemaster - vehicle leasing management system
// This source code is licensed under the MIT license found in the LICENSE file.

package model

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DayLayout is the calendar-date format used for input and output.
const DayLayout = "2006-01-02"

// Day truncates t to midnight UTC of its calendar date.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// FormatDay renders a calendar date as YYYY-MM-DD.
func FormatDay(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DayLayout)
}

// FormatMoney renders an amount with exactly two fractional digits.
func FormatMoney(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// ParseDay parses a YYYY-MM-DD date typed by the operator.
func ParseDay(field, raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, Invalid(field, "value is required")
	}
	t, err := time.Parse(DayLayout, raw)
	if err != nil {
		return time.Time{}, Invalid(field, "%q is not a date in YYYY-MM-DD format", raw)
	}
	return t, nil
}

// ParseMoney parses a monetary amount. A decimal comma is accepted.
func ParseMoney(field, raw string) (decimal.Decimal, error) {
	raw = strings.ReplaceAll(strings.TrimSpace(raw), ",", ".")
	if raw == "" {
		return decimal.Zero, Invalid(field, "value is required")
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, Invalid(field, "%q is not a number", raw)
	}
	if err := ValidateMoney(field, d); err != nil {
		return decimal.Zero, err
	}
	return d, nil
}

// ParseID parses a positive row identifier.
func ParseID(field, raw string) (int64, error) {
	raw = strings.TrimSpace(raw)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, Invalid(field, "%q is not a valid id", raw)
	}
	return id, nil
}

// ParseYear parses a model year.
func ParseYear(field, raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	y, err := strconv.Atoi(raw)
	if err != nil {
		return 0, Invalid(field, "%q is not a year", raw)
	}
	if y < 1886 || y > 2100 {
		return 0, Invalid(field, "must be between 1886 and 2100")
	}
	return y, nil
}
