// Copyright (c) 2026 Leasemaster Team
// Leasemaster - vehicle leasing management system
// This source code is licensed under the MIT license found in the LICENSE file.

package auth

import "github.com/toeirei/leasemaster/internal/model"

// Permission names an action class checked by the gate.
type Permission string

const (
	PermRead           Permission = "read"
	PermClientsWrite   Permission = "clients.write"
	PermVehiclesWrite  Permission = "vehicles.write"
	PermContractsWrite Permission = "contracts.write"
	PermPaymentsWrite  Permission = "payments.write"
	PermFleetManage    Permission = "fleet.manage"
	PermUsersManage    Permission = "users.manage"
	PermStoreAdmin     Permission = "store.admin"
)

// Allowed reports whether roles grant perm. Admins hold every permission.
func Allowed(roles model.Roles, perm Permission) bool {
	if roles.Admin {
		return true
	}
	switch perm {
	case PermRead:
		return true
	case PermClientsWrite, PermContractsWrite, PermPaymentsWrite:
		return roles.Accountant
	case PermVehiclesWrite, PermFleetManage:
		return roles.CarManager
	default:
		return false
	}
}
