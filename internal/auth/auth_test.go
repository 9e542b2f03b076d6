// Copyright (c) 2026 Leasemaster Team
// Leasemaster - vehicle leasing management system
// This source code is licensed under the MIT license found in the LICENSE file.

package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/toeirei/leasemaster/internal/db"
	"github.com/toeirei/leasemaster/internal/model"
	"github.com/toeirei/leasemaster/internal/security"
	"golang.org/x/crypto/bcrypt"
)

func newTestCredentials(t *testing.T) *Credentials {
	t.Helper()
	name := strings.ReplaceAll(t.Name(), "/", "_")
	s, err := db.New(db.TypeSQLite, "file:auth_"+name+"?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return NewCredentials(s, bcrypt.MinCost)
}

func secret(s string) security.Secret { return security.FromString(s) }

func TestRegisterAndVerify(t *testing.T) {
	c := newTestCredentials(t)
	ctx := context.Background()

	id, err := c.Register(ctx, "alice", secret("correct horse"), model.Roles{Accountant: true})
	require.NoError(t, err)
	assert.Positive(t, id)

	p, err := c.Verify(ctx, "alice", secret("correct horse"))
	require.NoError(t, err)
	assert.Equal(t, id, p.ID)
	assert.True(t, p.Roles.Accountant)
	assert.NotContains(t, p.PasswordHash, "correct horse")
	assert.True(t, strings.HasPrefix(p.PasswordHash, "$2"), "expected a bcrypt hash")
}

func TestVerify_FailuresAreIndistinguishable(t *testing.T) {
	c := newTestCredentials(t)
	ctx := context.Background()
	_, err := c.Register(ctx, "alice", secret("correct horse"), model.Roles{})
	require.NoError(t, err)

	_, wrongPassword := c.Verify(ctx, "alice", secret("wrong password"))
	_, unknownUser := c.Verify(ctx, "mallory", secret("correct horse"))

	require.ErrorIs(t, wrongPassword, ErrInvalidCredentials)
	require.ErrorIs(t, unknownUser, ErrInvalidCredentials)
	assert.Equal(t, wrongPassword.Error(), unknownUser.Error())
}

func TestRegister_SameHashNeverRepeats(t *testing.T) {
	c := newTestCredentials(t)
	ctx := context.Background()
	_, err := c.Register(ctx, "alice", secret("same password"), model.Roles{})
	require.NoError(t, err)
	_, err = c.Register(ctx, "bob", secret("same password"), model.Roles{})
	require.NoError(t, err)

	var list []model.Principal
	err = c.Store().Session(ctx, func(ctx context.Context, r *db.Repos) error {
		list, err = r.Principals.List(ctx)
		return err
	})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.NotEqual(t, list[0].PasswordHash, list[1].PasswordHash, "hashes must be salted")
}

func TestRegister_DuplicateAndValidation(t *testing.T) {
	c := newTestCredentials(t)
	ctx := context.Background()
	_, err := c.Register(ctx, "alice", secret("password1"), model.Roles{})
	require.NoError(t, err)

	_, err = c.Register(ctx, "alice", secret("password2"), model.Roles{})
	require.ErrorIs(t, err, ErrDuplicateUsername)
	require.ErrorIs(t, err, db.ErrDuplicate)

	_, err = c.Register(ctx, "bob", secret("short"), model.Roles{})
	require.ErrorIs(t, err, model.ErrValidation)

	_, err = c.Register(ctx, "", secret("password1"), model.Roles{})
	require.ErrorIs(t, err, model.ErrValidation)

	_, err = c.Register(ctx, "bob", secret(strings.Repeat("x", 73)), model.Roles{})
	require.ErrorIs(t, err, model.ErrValidation)
}

func TestSetPassword(t *testing.T) {
	c := newTestCredentials(t)
	ctx := context.Background()
	id, err := c.Register(ctx, "alice", secret("old password"), model.Roles{})
	require.NoError(t, err)

	ok, err := c.SetPassword(ctx, id, secret("new password"))
	require.NoError(t, err)
	require.True(t, ok)

	_, err = c.Verify(ctx, "alice", secret("old password"))
	require.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = c.Verify(ctx, "alice", secret("new password"))
	require.NoError(t, err)

	ok, err = c.SetPassword(ctx, 999, secret("new password"))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestErrorsNeverContainSecrets(t *testing.T) {
	c := newTestCredentials(t)
	ctx := context.Background()
	_, err := c.Register(ctx, "alice", secret("hunter2hunter2"), model.Roles{})
	require.NoError(t, err)
	_, err = c.Register(ctx, "alice", secret("hunter2hunter2"), model.Roles{})
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "hunter2")

	p, err := c.Verify(ctx, "alice", secret("hunter2hunter2"))
	require.NoError(t, err)
	assert.NotContains(t, fmt.Sprintf("%+v", p), p.PasswordHash)
}

func TestPermissions(t *testing.T) {
	admin := model.Roles{Admin: true}
	accountant := model.Roles{Accountant: true}
	fleet := model.Roles{CarManager: true}
	nobody := model.Roles{}

	cases := []struct {
		roles model.Roles
		perm  Permission
		want  bool
	}{
		{admin, PermUsersManage, true},
		{admin, PermStoreAdmin, true},
		{accountant, PermClientsWrite, true},
		{accountant, PermPaymentsWrite, true},
		{accountant, PermVehiclesWrite, false},
		{accountant, PermUsersManage, false},
		{fleet, PermVehiclesWrite, true},
		{fleet, PermFleetManage, true},
		{fleet, PermContractsWrite, false},
		{nobody, PermRead, true},
		{nobody, PermClientsWrite, false},
	}
	for _, c := range cases {
		assert.Equalf(t, c.want, Allowed(c.roles, c.perm), "Allowed(%s, %s)", c.roles, c.perm)
	}
}

type fakeVerifier struct {
	calls int
	p     *model.Principal
	err   error
}

func (f *fakeVerifier) Verify(context.Context, string, security.Secret) (*model.Principal, error) {
	f.calls++
	return f.p, f.err
}

func TestGate_StateMachine(t *testing.T) {
	v := &fakeVerifier{err: ErrInvalidCredentials}
	g := NewGate(v)
	ctx := context.Background()

	assert.Equal(t, Unauthenticated, g.State())
	assert.Nil(t, g.Principal())
	require.ErrorIs(t, g.Authorize(PermRead), ErrUnauthenticated)

	_, err := g.Login(ctx, "alice", secret("bad"))
	require.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Equal(t, Unauthenticated, g.State())

	v.err = nil
	v.p = &model.Principal{ID: 1, Username: "alice", Roles: model.Roles{Accountant: true}}
	p, err := g.Login(ctx, "alice", secret("good"))
	require.NoError(t, err)
	assert.Equal(t, "alice", p.Username)
	assert.Equal(t, Authenticated, g.State())

	require.NoError(t, g.Authorize(PermClientsWrite))
	err = g.Authorize(PermUsersManage)
	require.ErrorIs(t, err, ErrForbidden)
	assert.False(t, g.Can(PermFleetManage))

	_, err = g.Login(ctx, "bob", secret("x"))
	require.ErrorIs(t, err, ErrAlreadyAuthenticated)
	assert.Equal(t, 2, v.calls, "login on an authenticated gate must not verify")
	assert.Equal(t, "alice", g.Principal().Username)
}

func TestEnsureAdmin(t *testing.T) {
	c := newTestCredentials(t)
	ctx := context.Background()
	prompts := 0
	prompt := func(username string) (security.Secret, error) {
		prompts++
		assert.Equal(t, "root", username)
		return secret("bootstrap-pass"), nil
	}

	created, err := EnsureAdmin(ctx, c, "root", prompt)
	require.NoError(t, err)
	assert.True(t, created)

	created, err = EnsureAdmin(ctx, c, "root", prompt)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, 1, prompts)

	p, err := c.Verify(ctx, "root", secret("bootstrap-pass"))
	require.NoError(t, err)
	assert.True(t, p.Roles.Admin)
}

func TestEnsureAdmin_PromptErrorAndTakenName(t *testing.T) {
	c := newTestCredentials(t)
	ctx := context.Background()

	boom := errors.New("no tty")
	_, err := EnsureAdmin(ctx, c, "", func(string) (security.Secret, error) { return nil, boom })
	require.ErrorIs(t, err, boom)

	_, err = EnsureAdmin(ctx, c, "", nil)
	require.Error(t, err)

	_, err = c.Register(ctx, DefaultAdminUsername, secret("password1"), model.Roles{Accountant: true})
	require.NoError(t, err)
	_, err = EnsureAdmin(ctx, c, "", func(string) (security.Secret, error) { return secret("password2"), nil })
	require.ErrorIs(t, err, ErrDuplicateUsername)
}

func TestHash_ValidatesAndMatches(t *testing.T) {
	c := newTestCredentials(t)
	_, err := c.Hash(secret("short"))
	require.ErrorIs(t, err, model.ErrValidation)

	h, err := c.Hash(secret("long enough"))
	require.NoError(t, err)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(h), []byte("long enough")))
}
