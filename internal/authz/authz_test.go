package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskfixer/servicios-api/internal/apperr"
	"github.com/taskfixer/servicios-api/internal/auth"
)

const (
	ownerID = "64f1b2c3d4e5f60718293a4b"
	otherID = "74f1b2c3d4e5f60718293a4c"
)

func TestAdminAlwaysAllowed(t *testing.T) {
	t.Parallel()

	admin := auth.Identity{ID: otherID, Admin: true}

	assert.NoError(t, CanMutate(ownerID, admin))
	assert.NoError(t, CanMutate("", admin))
	assert.NoError(t, CanMutate("something-else", admin))
}

func TestOwnerMatch(t *testing.T) {
	t.Parallel()

	owner := auth.Identity{ID: ownerID}
	assert.NoError(t, CanMutate(ownerID, owner))

	// Normalization: surrounding space and casing must not matter.
	assert.NoError(t, CanMutate("  "+ownerID+"  ", owner))
	assert.NoError(t, CanMutate("64F1B2C3D4E5F60718293A4B", owner))
}

func TestNonOwnerDenied(t *testing.T) {
	t.Parallel()

	err := CanMutate(ownerID, auth.Identity{ID: otherID})
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindForbidden))
	assert.Contains(t, err.Error(), "not owner")
}

func TestNoOwnerRecorded(t *testing.T) {
	t.Parallel()

	err := CanMutate("", auth.Identity{ID: otherID})
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindForbidden))
	assert.Contains(t, err.Error(), "no owner recorded")
}
