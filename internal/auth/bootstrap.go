// Copyright (c) 2026 Leasemaster Team
// Leasemaster - vehicle leasing management system
// This source code is licensed under the MIT license found in the LICENSE file.

package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/toeirei/leasemaster/internal/db"
	"github.com/toeirei/leasemaster/internal/logging"
	"github.com/toeirei/leasemaster/internal/model"
	"github.com/toeirei/leasemaster/internal/security"
)

// DefaultAdminUsername is used when no admin username is configured.
const DefaultAdminUsername = "admin"

// PasswordPrompt asks the operator for the password of username.
type PasswordPrompt func(username string) (security.Secret, error)

// EnsureAdmin registers one administrator when no principal holds the admin
// role. The password is obtained from prompt; it is never a built-in
// default. It returns created=false when an administrator already exists.
func EnsureAdmin(ctx context.Context, creds *Credentials, username string, prompt PasswordPrompt) (bool, error) {
	if username == "" {
		username = DefaultAdminUsername
	}
	var admins int
	err := creds.Store().Session(ctx, func(ctx context.Context, r *db.Repos) error {
		var err error
		admins, err = r.Principals.CountAdmins(ctx)
		return err
	})
	if err != nil {
		return false, fmt.Errorf("failed to check for administrators: %w", err)
	}
	if admins > 0 {
		return false, nil
	}
	if prompt == nil {
		return false, errors.New("no administrator exists and no password prompt is available")
	}

	logging.Infof("auth: no administrator found, creating %q", username)
	password, err := prompt(username)
	if err != nil {
		return false, fmt.Errorf("failed to read administrator password: %w", err)
	}
	defer password.Zero()

	if _, err := creds.Register(ctx, username, password, model.Roles{Admin: true}); err != nil {
		if errors.Is(err, ErrDuplicateUsername) {
			return false, fmt.Errorf("cannot create administrator %q: the username is taken by a non-admin principal: %w", username, err)
		}
		return false, err
	}
	return true, nil
}
