// Copyright (c) 2026 Leasemaster Team
// Leasemaster - vehicle leasing management system
// This source code is licensed under the MIT license found in the LICENSE file.

package model

import (
	"fmt"
	"strings"
)

// Role names accepted on the command line and in backups.
const (
	RoleAdmin      = "admin"
	RoleAccountant = "accountant"
	RoleCarManager = "car_manager"
)

// Roles is the set of independent role flags of a principal.
type Roles struct {
	Admin      bool `json:"is_admin"`
	Accountant bool `json:"is_accountant"`
	CarManager bool `json:"is_car_manager"`
}

// String lists the enabled roles, or "none".
func (r Roles) String() string {
	names := r.Names()
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, ",")
}

// Names returns the enabled role names in a stable order.
func (r Roles) Names() []string {
	var out []string
	if r.Admin {
		out = append(out, RoleAdmin)
	}
	if r.Accountant {
		out = append(out, RoleAccountant)
	}
	if r.CarManager {
		out = append(out, RoleCarManager)
	}
	return out
}

// ParseRoles parses a comma separated role list such as "admin,car_manager".
// Empty input yields no roles.
func ParseRoles(raw string) (Roles, error) {
	var r Roles
	for _, part := range strings.Split(raw, ",") {
		switch strings.ToLower(strings.TrimSpace(part)) {
		case "":
		case RoleAdmin:
			r.Admin = true
		case RoleAccountant:
			r.Accountant = true
		case RoleCarManager, "car-manager", "carmanager":
			r.CarManager = true
		default:
			return Roles{}, &ValidationError{Field: "roles", Reason: fmt.Sprintf("unknown role %q", strings.TrimSpace(part))}
		}
	}
	return r, nil
}

// DeletePolicy decides what happens when a referenced row is deleted.
type DeletePolicy string

const (
	// DeleteRestrict rejects the delete while dependents exist.
	DeleteRestrict DeletePolicy = "restrict"
	// DeleteCascade removes dependents in the same transaction.
	DeleteCascade DeletePolicy = "cascade"
)

// ParseDeletePolicy accepts "restrict" (also the empty string) or "cascade".
func ParseDeletePolicy(raw string) (DeletePolicy, error) {
	switch DeletePolicy(strings.ToLower(strings.TrimSpace(raw))) {
	case "", DeleteRestrict:
		return DeleteRestrict, nil
	case DeleteCascade:
		return DeleteCascade, nil
	default:
		return "", &ValidationError{Field: "delete_policy", Reason: fmt.Sprintf("unknown policy %q", raw)}
	}
}
