// Copyright (c) 2026 Leasemaster Team
// Leasemaster - vehicle leasing management system
// This source code is licensed under the MIT license found in the LICENSE file.

package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/toeirei/leasemaster/internal/logging"
	"github.com/toeirei/leasemaster/internal/model"
	"github.com/toeirei/leasemaster/internal/security"
)

var (
	// ErrAlreadyAuthenticated is returned by Login on an authenticated gate.
	ErrAlreadyAuthenticated = errors.New("already authenticated")
	// ErrUnauthenticated is returned by Authorize before a successful login.
	ErrUnauthenticated = errors.New("not authenticated")
	// ErrForbidden is returned by Authorize when the principal lacks the permission.
	ErrForbidden = errors.New("permission denied")
)

// State is the gate state.
type State int

const (
	Unauthenticated State = iota
	Authenticated
)

func (s State) String() string {
	if s == Authenticated {
		return "authenticated"
	}
	return "unauthenticated"
}

// Verifier checks a username/password pair. *Credentials implements it.
type Verifier interface {
	Verify(ctx context.Context, username string, password security.Secret) (*model.Principal, error)
}

// Gate holds the principal of the current run. It moves from
// Unauthenticated to Authenticated once and never back.
type Gate struct {
	verifier Verifier

	mu        sync.RWMutex
	principal *model.Principal
}

// NewGate returns an unauthenticated gate.
func NewGate(v Verifier) *Gate {
	return &Gate{verifier: v}
}

// Login verifies the credentials and binds the principal to the gate.
func (g *Gate) Login(ctx context.Context, username string, password security.Secret) (*model.Principal, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.principal != nil {
		return nil, ErrAlreadyAuthenticated
	}
	p, err := g.verifier.Verify(ctx, username, password)
	if err != nil {
		logging.Debugf("auth: login failed for %q", username)
		return nil, err
	}
	g.principal = p
	logging.Infof("auth: %s logged in", p)
	return p, nil
}

// State returns the current gate state.
func (g *Gate) State() State {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if g.principal == nil {
		return Unauthenticated
	}
	return Authenticated
}

// Principal returns the authenticated principal, or nil.
func (g *Gate) Principal() *model.Principal {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if g.principal == nil {
		return nil
	}
	p := *g.principal
	return &p
}

// Authorize checks perm against the authenticated principal's roles.
func (g *Gate) Authorize(perm Permission) error {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if g.principal == nil {
		return ErrUnauthenticated
	}
	if !Allowed(g.principal.Roles, perm) {
		return fmt.Errorf("%w: %s requires %s", ErrForbidden, g.principal.Username, perm)
	}
	return nil
}

// Can reports whether the authenticated principal holds perm.
func (g *Gate) Can(perm Permission) bool {
	return g.Authorize(perm) == nil
}
