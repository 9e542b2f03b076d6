// Copyright (c) 2026 Leasemaster Team
// Leasemaster - vehicle leasing management system
// This source code is licensed under the MIT license found in the LICENSE file.

package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/toeirei/leasemaster/internal/auth"
	"github.com/toeirei/leasemaster/internal/db"
	"github.com/toeirei/leasemaster/internal/logging"
	"github.com/toeirei/leasemaster/internal/model"
	"github.com/toeirei/leasemaster/internal/security"
)

// ListUsers returns every principal.
func (l *Leasing) ListUsers(ctx context.Context) ([]model.Principal, error) {
	var out []model.Principal
	err := l.run(ctx, auth.PermUsersManage, func(ctx context.Context, r *db.Repos) error {
		var err error
		out, err = r.Principals.List(ctx)
		return err
	})
	return out, err
}

// RegisterUser creates a principal with the given roles.
func (l *Leasing) RegisterUser(ctx context.Context, username string, password security.Secret, roles model.Roles) (int64, error) {
	if err := l.gate.Authorize(auth.PermUsersManage); err != nil {
		return 0, err
	}
	id, err := l.creds.Register(ctx, username, password, roles)
	if err == nil {
		logging.Infof("principal #%d registered: %s [%s]", id, username, roles)
	}
	return id, err
}

// UpdateUser changes the username and/or roles of a principal. The last
// administrator cannot lose the admin role.
func (l *Leasing) UpdateUser(ctx context.Context, id int64, p model.PrincipalPatch) (bool, error) {
	if err := l.gate.Authorize(auth.PermUsersManage); err != nil {
		return false, err
	}
	if err := p.Validate(); err != nil {
		return false, err
	}
	var ok bool
	err := l.store.Session(ctx, func(ctx context.Context, r *db.Repos) error {
		current, err := r.Principals.Get(ctx, id)
		if errors.Is(err, db.ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		if p.Roles != nil && current.Roles.Admin && !p.Roles.Admin {
			if err := guardLastAdmin(ctx, r); err != nil {
				return err
			}
		}
		ok, err = r.Principals.Update(ctx, id, p)
		return err
	})
	return ok, mapPrincipalErr(err)
}

// SetUserPassword replaces the password of any principal.
func (l *Leasing) SetUserPassword(ctx context.Context, id int64, password security.Secret) (bool, error) {
	if err := l.gate.Authorize(auth.PermUsersManage); err != nil {
		return false, err
	}
	return l.creds.SetPassword(ctx, id, password)
}

// ChangeOwnPassword lets any logged-in principal replace its own password
// after confirming the current one.
func (l *Leasing) ChangeOwnPassword(ctx context.Context, current, next security.Secret) error {
	if err := l.gate.Authorize(auth.PermRead); err != nil {
		return err
	}
	me := l.gate.Principal()
	if _, err := l.creds.Verify(ctx, me.Username, current); err != nil {
		return err
	}
	ok, err := l.creds.SetPassword(ctx, me.ID, next)
	if err != nil {
		return err
	}
	if !ok {
		return db.ErrNotFound
	}
	return nil
}

// DeleteUser removes a principal. The logged-in principal and the last
// administrator cannot be deleted.
func (l *Leasing) DeleteUser(ctx context.Context, id int64) (bool, error) {
	if err := l.gate.Authorize(auth.PermUsersManage); err != nil {
		return false, err
	}
	if me := l.gate.Principal(); me != nil && me.ID == id {
		return false, model.Invalid("id", "cannot delete the logged-in principal")
	}
	var ok bool
	err := l.store.Session(ctx, func(ctx context.Context, r *db.Repos) error {
		current, err := r.Principals.Get(ctx, id)
		if errors.Is(err, db.ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		if current.Roles.Admin {
			if err := guardLastAdmin(ctx, r); err != nil {
				return err
			}
		}
		ok, err = r.Principals.Delete(ctx, id)
		return err
	})
	return ok, err
}

func guardLastAdmin(ctx context.Context, r *db.Repos) error {
	n, err := r.Principals.CountAdmins(ctx)
	if err != nil {
		return err
	}
	if n <= 1 {
		return model.Invalid("roles", "cannot remove the last administrator")
	}
	return nil
}

func mapPrincipalErr(err error) error {
	if errors.Is(err, db.ErrDuplicate) {
		return auth.ErrDuplicateUsername
	}
	return err
}

// ListFleetManagers returns the principals holding the car-manager role.
func (l *Leasing) ListFleetManagers(ctx context.Context) ([]model.Principal, error) {
	var out []model.Principal
	err := l.run(ctx, auth.PermFleetManage, func(ctx context.Context, r *db.Repos) error {
		var err error
		out, err = r.Principals.ListFleetManagers(ctx)
		return err
	})
	return out, err
}

// AddFleetManager registers a principal holding only the car-manager role.
func (l *Leasing) AddFleetManager(ctx context.Context, username string, password security.Secret) (int64, error) {
	if err := l.gate.Authorize(auth.PermFleetManage); err != nil {
		return 0, err
	}
	return l.creds.Register(ctx, username, password, model.Roles{CarManager: true})
}

// fleetManager loads a principal that is a pure fleet manager. Principals
// holding other roles are managed through the user commands.
func fleetManager(ctx context.Context, r *db.Repos, id int64) (*model.Principal, error) {
	p, err := r.Principals.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !p.Roles.CarManager {
		return nil, db.ErrNotFound
	}
	if p.Roles.Admin || p.Roles.Accountant {
		return nil, fmt.Errorf("%w: principal %s holds roles beyond car_manager", auth.ErrForbidden, p.Username)
	}
	return p, nil
}

// UpdateFleetManager renames a fleet manager and, when password is not
// empty, replaces its password. Both writes share one transaction.
func (l *Leasing) UpdateFleetManager(ctx context.Context, id int64, username *string, password security.Secret) (bool, error) {
	if err := l.gate.Authorize(auth.PermFleetManage); err != nil {
		return false, err
	}
	p := model.PrincipalPatch{Username: username}
	if err := p.Validate(); err != nil {
		return false, err
	}
	var hash string
	if !password.IsEmpty() {
		var err error
		if hash, err = l.creds.Hash(password); err != nil {
			return false, err
		}
	}
	var ok bool
	err := l.store.Session(ctx, func(ctx context.Context, r *db.Repos) error {
		if _, err := fleetManager(ctx, r, id); err != nil {
			if errors.Is(err, db.ErrNotFound) {
				return nil
			}
			return err
		}
		var err error
		if ok, err = r.Principals.Update(ctx, id, p); err != nil || !ok || hash == "" {
			return err
		}
		ok, err = r.Principals.SetPasswordHash(ctx, id, hash)
		return err
	})
	if err != nil {
		return false, mapPrincipalErr(err)
	}
	return ok, nil
}

// DeleteFleetManager removes a fleet manager. The logged-in principal cannot
// delete itself.
func (l *Leasing) DeleteFleetManager(ctx context.Context, id int64) (bool, error) {
	if err := l.gate.Authorize(auth.PermFleetManage); err != nil {
		return false, err
	}
	if me := l.gate.Principal(); me != nil && me.ID == id {
		return false, model.Invalid("id", "cannot delete the logged-in principal")
	}
	var ok bool
	err := l.store.Session(ctx, func(ctx context.Context, r *db.Repos) error {
		if _, err := fleetManager(ctx, r, id); err != nil {
			if errors.Is(err, db.ErrNotFound) {
				return nil
			}
			return err
		}
		var err error
		ok, err = r.Principals.Delete(ctx, id)
		return err
	})
	return ok, err
}
