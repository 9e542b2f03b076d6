// Copyright (c) 2026 Leasemaster Team
// Leasemaster - vehicle leasing management system
// This source code is licensed under the MIT license found in the LICENSE file.

package tui

import (
	"context"
	"strings"
	"time"

	"github.com/toeirei/leasemaster/internal/auth"
	"github.com/toeirei/leasemaster/internal/core"
	"github.com/toeirei/leasemaster/internal/i18n"
	"github.com/toeirei/leasemaster/internal/model"
	"github.com/toeirei/leasemaster/internal/security"
	"github.com/toeirei/leasemaster/internal/ui"
)

// field is one line the operator is prompted for.
type field struct {
	key      string
	optional bool
	secret   bool
}

func req(key string) field    { return field{key: key} }
func opt(key string) field    { return field{key: key, optional: true} }
func secret(key string) field { return field{key: key, secret: true} }

// values holds the raw answers of a form, keyed by field key.
type values map[string]string

func (v values) id(key string) (int64, error) { return model.ParseID(key, v[key]) }

// str returns nil for a blank answer ("keep the stored value").
func (v values) str(key string) *string {
	s := strings.TrimSpace(v[key])
	if s == "" {
		return nil
	}
	return &s
}

func (v values) secret(key string) security.Secret { return security.FromString(v[key]) }

// optional parses a non-blank answer and returns nil for a blank one.
func optional[T any](v values, key string, parse func(field, raw string) (T, error)) (*T, error) {
	if strings.TrimSpace(v[key]) == "" {
		return nil, nil
	}
	out, err := parse(key, v[key])
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// action is one menu entry.
type action struct {
	id     string
	perm   auth.Permission
	fields []field
	run    func(ctx context.Context, l *core.Leasing, v values) (string, error)
	quit   bool
}

func (a action) title() string { return i18n.T("menu." + a.id) }

func added(entity string, id int64, err error) (string, error) {
	if err != nil {
		return "", err
	}
	return i18n.T("result.added", i18n.T("entity."+entity), id), nil
}

func changed(key, entity string, id int64, ok bool, err error) (string, error) {
	if err != nil {
		return "", err
	}
	if err := ui.NotFound(ok, entity, id); err != nil {
		return "", err
	}
	return i18n.T(key, i18n.T("entity."+entity), id), nil
}

func updated(entity string, id int64, ok bool, err error) (string, error) {
	return changed("result.updated", entity, id, ok, err)
}

func deleted(entity string, id int64, ok bool, err error) (string, error) {
	return changed("result.deleted", entity, id, ok, err)
}

func render(write func(b *strings.Builder) error) (string, error) {
	var b strings.Builder
	if err := write(&b); err != nil {
		return "", err
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

// allActions lists the menu in display order, mirroring the numbered menu
// of the console: clients, contracts, vehicles, then fleet managers.
func allActions() []action {
	return []action{
		{id: "clients.list", perm: auth.PermRead, run: func(ctx context.Context, l *core.Leasing, _ values) (string, error) {
			list, err := l.ListClients(ctx)
			if err != nil {
				return "", err
			}
			return render(func(b *strings.Builder) error { return ui.WriteClients(b, list) })
		}},
		{id: "clients.add", perm: auth.PermClientsWrite, fields: []field{req("name"), req("email"), req("phone")},
			run: func(ctx context.Context, l *core.Leasing, v values) (string, error) {
				id, err := l.CreateClient(ctx, model.Client{Name: v["name"], Email: v["email"], Phone: v["phone"]})
				return added("client", id, err)
			}},
		{id: "clients.update", perm: auth.PermClientsWrite, fields: []field{req("id"), opt("name"), opt("email"), opt("phone")},
			run: func(ctx context.Context, l *core.Leasing, v values) (string, error) {
				id, err := v.id("id")
				if err != nil {
					return "", err
				}
				ok, err := l.UpdateClient(ctx, id, model.ClientPatch{Name: v.str("name"), Email: v.str("email"), Phone: v.str("phone")})
				return updated("client", id, ok, err)
			}},
		{id: "clients.delete", perm: auth.PermClientsWrite, fields: []field{req("id")},
			run: func(ctx context.Context, l *core.Leasing, v values) (string, error) {
				id, err := v.id("id")
				if err != nil {
					return "", err
				}
				ok, err := l.DeleteClient(ctx, id)
				return deleted("client", id, ok, err)
			}},
		{id: "contracts.list", perm: auth.PermRead, run: func(ctx context.Context, l *core.Leasing, _ values) (string, error) {
			list, err := l.ListContracts(ctx)
			if err != nil {
				return "", err
			}
			return render(func(b *strings.Builder) error { return ui.WriteContracts(b, list) })
		}},
		{id: "contracts.add", perm: auth.PermContractsWrite,
			fields: []field{req("client_id"), req("vehicle_id"), req("start_date"), req("end_date"), req("monthly_payment")},
			run: func(ctx context.Context, l *core.Leasing, v values) (string, error) {
				c, err := contractFrom(v)
				if err != nil {
					return "", err
				}
				id, err := l.CreateContract(ctx, c)
				return added("contract", id, err)
			}},
		{id: "contracts.update", perm: auth.PermContractsWrite,
			fields: []field{req("id"), opt("client_id"), opt("vehicle_id"), opt("start_date"), opt("end_date"), opt("monthly_payment")},
			run: func(ctx context.Context, l *core.Leasing, v values) (string, error) {
				id, err := v.id("id")
				if err != nil {
					return "", err
				}
				p, err := contractPatchFrom(v)
				if err != nil {
					return "", err
				}
				ok, err := l.UpdateContract(ctx, id, p)
				return updated("contract", id, ok, err)
			}},
		{id: "contracts.delete", perm: auth.PermContractsWrite, fields: []field{req("id")},
			run: func(ctx context.Context, l *core.Leasing, v values) (string, error) {
				id, err := v.id("id")
				if err != nil {
					return "", err
				}
				ok, err := l.DeleteContract(ctx, id)
				return deleted("contract", id, ok, err)
			}},
		{id: "contracts.show", perm: auth.PermRead, fields: []field{req("id")},
			run: func(ctx context.Context, l *core.Leasing, v values) (string, error) {
				id, err := v.id("id")
				if err != nil {
					return "", err
				}
				d, err := l.ContractDetails(ctx, id)
				if err != nil {
					return "", err
				}
				return render(func(b *strings.Builder) error { return ui.WriteContractDetails(b, d) })
			}},
		{id: "vehicles.list", perm: auth.PermRead, run: func(ctx context.Context, l *core.Leasing, _ values) (string, error) {
			list, err := l.ListVehicles(ctx)
			if err != nil {
				return "", err
			}
			return render(func(b *strings.Builder) error { return ui.WriteVehicles(b, list) })
		}},
		{id: "vehicles.add", perm: auth.PermVehiclesWrite, fields: []field{req("brand"), req("model"), req("year"), req("color")},
			run: func(ctx context.Context, l *core.Leasing, v values) (string, error) {
				year, err := model.ParseYear("year", v["year"])
				if err != nil {
					return "", err
				}
				id, err := l.CreateVehicle(ctx, model.Vehicle{Brand: v["brand"], Model: v["model"], Year: year, Color: v["color"]})
				return added("vehicle", id, err)
			}},
		{id: "vehicles.update", perm: auth.PermVehiclesWrite, fields: []field{req("id"), opt("brand"), opt("model"), opt("year"), opt("color")},
			run: func(ctx context.Context, l *core.Leasing, v values) (string, error) {
				id, err := v.id("id")
				if err != nil {
					return "", err
				}
				year, err := optional(v, "year", model.ParseYear)
				if err != nil {
					return "", err
				}
				ok, err := l.UpdateVehicle(ctx, id, model.VehiclePatch{Brand: v.str("brand"), Model: v.str("model"), Year: year, Color: v.str("color")})
				return updated("vehicle", id, ok, err)
			}},
		{id: "vehicles.delete", perm: auth.PermVehiclesWrite, fields: []field{req("id")},
			run: func(ctx context.Context, l *core.Leasing, v values) (string, error) {
				id, err := v.id("id")
				if err != nil {
					return "", err
				}
				ok, err := l.DeleteVehicle(ctx, id)
				return deleted("vehicle", id, ok, err)
			}},
		{id: "payments.list", perm: auth.PermRead, fields: []field{opt("contract_id")},
			run: func(ctx context.Context, l *core.Leasing, v values) (string, error) {
				contractID, err := optional(v, "contract_id", model.ParseID)
				if err != nil {
					return "", err
				}
				var list []model.Payment
				if contractID != nil {
					list, err = l.ListContractPayments(ctx, *contractID)
				} else {
					list, err = l.ListPayments(ctx)
				}
				if err != nil {
					return "", err
				}
				return render(func(b *strings.Builder) error { return ui.WritePayments(b, list) })
			}},
		{id: "payments.add", perm: auth.PermPaymentsWrite, fields: []field{req("contract_id"), req("payment_date"), req("amount")},
			run: func(ctx context.Context, l *core.Leasing, v values) (string, error) {
				p, err := paymentFrom(v)
				if err != nil {
					return "", err
				}
				id, err := l.CreatePayment(ctx, p)
				return added("payment", id, err)
			}},
		{id: "payments.delete", perm: auth.PermPaymentsWrite, fields: []field{req("id")},
			run: func(ctx context.Context, l *core.Leasing, v values) (string, error) {
				id, err := v.id("id")
				if err != nil {
					return "", err
				}
				ok, err := l.DeletePayment(ctx, id)
				return deleted("payment", id, ok, err)
			}},
		{id: "managers.list", perm: auth.PermFleetManage, run: func(ctx context.Context, l *core.Leasing, _ values) (string, error) {
			list, err := l.ListFleetManagers(ctx)
			if err != nil {
				return "", err
			}
			return render(func(b *strings.Builder) error { return ui.WritePrincipals(b, list) })
		}},
		{id: "managers.add", perm: auth.PermFleetManage, fields: []field{req("username"), secret("password")},
			run: func(ctx context.Context, l *core.Leasing, v values) (string, error) {
				id, err := l.AddFleetManager(ctx, v["username"], v.secret("password"))
				return added("manager", id, err)
			}},
		{id: "users.list", perm: auth.PermUsersManage, run: func(ctx context.Context, l *core.Leasing, _ values) (string, error) {
			list, err := l.ListUsers(ctx)
			if err != nil {
				return "", err
			}
			return render(func(b *strings.Builder) error { return ui.WritePrincipals(b, list) })
		}},
		{id: "users.register", perm: auth.PermUsersManage, fields: []field{req("username"), secret("password"), opt("roles")},
			run: func(ctx context.Context, l *core.Leasing, v values) (string, error) {
				roles, err := model.ParseRoles(v["roles"])
				if err != nil {
					return "", err
				}
				id, err := l.RegisterUser(ctx, v["username"], v.secret("password"), roles)
				return added("user", id, err)
			}},
		{id: "account.password", perm: auth.PermRead, fields: []field{secret("current_password"), secret("new_password")},
			run: func(ctx context.Context, l *core.Leasing, v values) (string, error) {
				if err := l.ChangeOwnPassword(ctx, v.secret("current_password"), v.secret("new_password")); err != nil {
					return "", err
				}
				return i18n.T("result.password_changed"), nil
			}},
		{id: "dashboard", perm: auth.PermRead, run: func(ctx context.Context, l *core.Leasing, _ values) (string, error) {
			d, err := l.BuildDashboardData(ctx, time.Now())
			if err != nil {
				return "", err
			}
			return render(func(b *strings.Builder) error { return ui.WriteDashboard(b, d) })
		}},
		{id: "quit", quit: true},
	}
}

// actionsFor keeps the entries the principal is allowed to use.
func actionsFor(g *auth.Gate) []action {
	var out []action
	for _, a := range allActions() {
		if a.quit || g.Can(a.perm) {
			out = append(out, a)
		}
	}
	return out
}

func contractFrom(v values) (model.LeasingContract, error) {
	var c model.LeasingContract
	var err error
	if c.ClientID, err = model.ParseID("client_id", v["client_id"]); err != nil {
		return c, err
	}
	if c.VehicleID, err = model.ParseID("vehicle_id", v["vehicle_id"]); err != nil {
		return c, err
	}
	if c.StartDate, err = model.ParseDay("start_date", v["start_date"]); err != nil {
		return c, err
	}
	if c.EndDate, err = model.ParseDay("end_date", v["end_date"]); err != nil {
		return c, err
	}
	c.MonthlyPayment, err = model.ParseMoney("monthly_payment", v["monthly_payment"])
	return c, err
}

func contractPatchFrom(v values) (model.ContractPatch, error) {
	var p model.ContractPatch
	var err error
	if p.ClientID, err = optional(v, "client_id", model.ParseID); err != nil {
		return p, err
	}
	if p.VehicleID, err = optional(v, "vehicle_id", model.ParseID); err != nil {
		return p, err
	}
	if p.StartDate, err = optional(v, "start_date", model.ParseDay); err != nil {
		return p, err
	}
	if p.EndDate, err = optional(v, "end_date", model.ParseDay); err != nil {
		return p, err
	}
	p.MonthlyPayment, err = optional(v, "monthly_payment", model.ParseMoney)
	return p, err
}

func paymentFrom(v values) (model.Payment, error) {
	var p model.Payment
	var err error
	if p.LeasingContractID, err = model.ParseID("contract_id", v["contract_id"]); err != nil {
		return p, err
	}
	if p.PaymentDate, err = model.ParseDay("payment_date", v["payment_date"]); err != nil {
		return p, err
	}
	p.Amount, err = model.ParseMoney("amount", v["amount"])
	return p, err
}
