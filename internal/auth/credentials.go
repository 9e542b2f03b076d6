// Copyright (c) 2026 Leasemaster Team
// Leasemaster - vehicle leasing management system
// This source code is licensed under the MIT license found in the LICENSE file.

package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"unicode/utf8"

	"github.com/toeirei/leasemaster/internal/db"
	"github.com/toeirei/leasemaster/internal/logging"
	"github.com/toeirei/leasemaster/internal/model"
	"github.com/toeirei/leasemaster/internal/security"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrDuplicateUsername is returned when registering a taken username.
	ErrDuplicateUsername = fmt.Errorf("username already exists: %w", db.ErrDuplicate)
	// ErrInvalidCredentials is returned for an unknown username and for a
	// wrong password alike.
	ErrInvalidCredentials = errors.New("invalid username or password")
)

const (
	// MinPasswordLength is the shortest accepted password.
	MinPasswordLength = 8
	// maxPasswordBytes is the bcrypt input limit.
	maxPasswordBytes = 72
	dummyPassword    = "leasemaster-dummy-password"
)

// Credentials stores principals with salted bcrypt hashes. It is the only
// write path for passwords, so a plaintext password never reaches the store.
type Credentials struct {
	store *db.Store
	cost  int

	dummyOnce sync.Once
	dummyHash []byte
}

// NewCredentials returns a credential store using the given bcrypt cost.
// Out-of-range costs fall back to bcrypt.DefaultCost.
func NewCredentials(store *db.Store, cost int) *Credentials {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Credentials{store: store, cost: cost}
}

// Store returns the underlying store.
func (c *Credentials) Store() *db.Store { return c.store }

// ValidatePassword checks the password rules.
func ValidatePassword(password security.Secret) error {
	switch {
	case password.IsEmpty():
		return model.Invalid("password", "value is required")
	case utf8.RuneCount(password) < MinPasswordLength:
		return model.Invalid("password", "must be at least %d characters", MinPasswordLength)
	case password.Len() > maxPasswordBytes:
		return model.Invalid("password", "must be at most %d bytes", maxPasswordBytes)
	}
	return nil
}

// Hash validates password and returns its bcrypt hash, for callers that
// store it inside their own Session.
func (c *Credentials) Hash(password security.Secret) (string, error) {
	if err := ValidatePassword(password); err != nil {
		return "", err
	}
	return c.hash(password)
}

func (c *Credentials) hash(password security.Secret) (string, error) {
	var hashed []byte
	err := password.Use(func(b []byte) error {
		var err error
		hashed, err = bcrypt.GenerateFromPassword(b, c.cost)
		return err
	})
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// dummy returns a hash of the same cost used to burn the comparison time
// when the username is unknown.
func (c *Credentials) dummy() []byte {
	c.dummyOnce.Do(func() {
		h, err := bcrypt.GenerateFromPassword([]byte(dummyPassword), c.cost)
		if err != nil {
			logging.Errorf("auth: failed to build dummy hash: %v", err)
			return
		}
		c.dummyHash = h
	})
	return c.dummyHash
}

// Register validates and hashes the password and inserts a new principal.
func (c *Credentials) Register(ctx context.Context, username string, password security.Secret, roles model.Roles) (int64, error) {
	if err := model.ValidateUsername(username); err != nil {
		return 0, err
	}
	if err := ValidatePassword(password); err != nil {
		return 0, err
	}
	hash, err := c.hash(password)
	if err != nil {
		return 0, err
	}
	var id int64
	err = c.store.Session(ctx, func(ctx context.Context, r *db.Repos) error {
		var err error
		id, err = r.Principals.Create(ctx, model.Principal{Username: username, PasswordHash: hash, Roles: roles})
		return err
	})
	if errors.Is(err, db.ErrDuplicate) {
		return 0, ErrDuplicateUsername
	}
	if err != nil {
		return 0, err
	}
	logging.Debugf("auth: registered principal %q with roles %s", username, roles)
	return id, nil
}

// Verify checks a username/password pair. Unknown usernames and wrong
// passwords both cost one bcrypt comparison and both return
// ErrInvalidCredentials.
func (c *Credentials) Verify(ctx context.Context, username string, password security.Secret) (*model.Principal, error) {
	var p *model.Principal
	err := c.store.Session(ctx, func(ctx context.Context, r *db.Repos) error {
		var err error
		p, err = r.Principals.GetByUsername(ctx, username)
		return err
	})
	if err != nil && !errors.Is(err, db.ErrNotFound) {
		return nil, err
	}

	stored := c.dummy()
	if p != nil {
		stored = []byte(p.PasswordHash)
	}
	cmpErr := password.Use(func(b []byte) error {
		return bcrypt.CompareHashAndPassword(stored, b)
	})
	if p == nil || cmpErr != nil {
		return nil, ErrInvalidCredentials
	}
	return p, nil
}

// SetPassword hashes and stores a new password. It returns false when the
// principal does not exist.
func (c *Credentials) SetPassword(ctx context.Context, id int64, password security.Secret) (bool, error) {
	hash, err := c.Hash(password)
	if err != nil {
		return false, err
	}
	var ok bool
	err = c.store.Session(ctx, func(ctx context.Context, r *db.Repos) error {
		var err error
		ok, err = r.Principals.SetPasswordHash(ctx, id, hash)
		return err
	})
	return ok, err
}
