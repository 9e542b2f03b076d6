// Copyright (c) 2026 Leasemaster Team
// Leasemaster - vehicle leasing management system
// This source code is licensed under the MIT license found in the LICENSE file.

package ui

import (
	"errors"
	"fmt"

	"github.com/toeirei/leasemaster/internal/auth"
	"github.com/toeirei/leasemaster/internal/db"
	"github.com/toeirei/leasemaster/internal/i18n"
	"github.com/toeirei/leasemaster/internal/model"
)

// NotFoundError reports that an update or delete target does not exist.
type NotFoundError struct {
	// Entity is a message key suffix such as "client" or "vehicle".
	Entity string
	ID     int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s #%d not found", e.Entity, e.ID)
}

// Is makes errors.Is(err, db.ErrNotFound) true.
func (e *NotFoundError) Is(target error) bool { return target == db.ErrNotFound }

// NotFound returns nil when ok is true and a *NotFoundError otherwise.
func NotFound(ok bool, entity string, id int64) error {
	if ok {
		return nil
	}
	return &NotFoundError{Entity: entity, ID: id}
}

// Describe turns an operation error into a localized message for the
// operator. Unknown errors are shown as-is.
func Describe(err error) string {
	if err == nil {
		return ""
	}
	var (
		nf *NotFoundError
		ve *model.ValidationError
		rc *db.ReferentialConflictError
	)
	switch {
	case errors.As(err, &nf):
		return i18n.T("error.not_found", i18n.T("entity."+nf.Entity), nf.ID)
	case errors.As(err, &ve):
		if ve.Field == "" {
			return i18n.T("error.validation_plain", ve.Reason)
		}
		return i18n.T("error.validation", ve.Field, ve.Reason)
	case errors.As(err, &rc) && rc.Op == "merge":
		return i18n.T("error.merge_conflict", rc.Table, rc.ID, len(rc.DependentIDs), rc.Dependent, rc.DependentIDs)
	case errors.As(err, &rc):
		return i18n.T("error.referential_conflict", rc.Table, rc.ID, len(rc.DependentIDs), rc.Dependent, rc.DependentIDs)
	case errors.Is(err, db.ErrReferentialConflict):
		return i18n.T("error.referential_conflict_generic")
	case errors.Is(err, auth.ErrDuplicateUsername), errors.Is(err, db.ErrDuplicate):
		return i18n.T("error.duplicate_username")
	case errors.Is(err, auth.ErrInvalidCredentials):
		return i18n.T("error.invalid_credentials")
	case errors.Is(err, auth.ErrUnauthenticated):
		return i18n.T("error.unauthenticated")
	case errors.Is(err, auth.ErrForbidden):
		return i18n.T("error.forbidden")
	case errors.Is(err, db.ErrNotFound):
		return i18n.T("error.not_found_plain")
	case errors.Is(err, db.ErrStoreUnavailable):
		return i18n.T("error.store_unavailable", err)
	}
	return err.Error()
}
