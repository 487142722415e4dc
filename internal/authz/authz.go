// Package authz decides whether a caller may mutate a fetched record.
package authz

import (
	"strings"

	"github.com/taskfixer/servicios-api/internal/apperr"
	"github.com/taskfixer/servicios-api/internal/auth"
)

// CanMutate authorizes an update or delete against a record's owner
// reference. Admins always pass. ownerRef is the canonical hex form of the
// record's created_by, or "" when the document predates ownership tracking.
// Must run only after the record's existence is confirmed, so not-found
// takes precedence over forbidden.
func CanMutate(ownerRef string, ident auth.Identity) error {
	if ident.Admin {
		return nil
	}
	if ownerRef == "" {
		return apperr.Forbidden("no owner recorded; admin required")
	}
	if !strings.EqualFold(strings.TrimSpace(ownerRef), strings.TrimSpace(ident.ID)) {
		return apperr.Forbidden("not owner")
	}
	return nil
}
