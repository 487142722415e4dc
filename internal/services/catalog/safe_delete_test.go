package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskfixer/servicios-api/internal/apperr"
	"github.com/taskfixer/servicios-api/internal/auth"
	"github.com/taskfixer/servicios-api/internal/storage"
)

const (
	recID   = "64f1b2c3d4e5f60718293a4b"
	ownerID = "74f1b2c3d4e5f60718293a4c"
)

type fakeStore struct {
	rec     *storage.Record
	findErr error
	linked  int64

	deactivated int
	removed     int
}

func (f *fakeStore) FindRecord(_ context.Context, _ string) (*storage.Record, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.rec, nil
}

func (f *fakeStore) CountDependents(_ context.Context, _ string) (int64, error) {
	return f.linked, nil
}

func (f *fakeStore) Deactivate(_ context.Context, _ string) error {
	f.deactivated++
	return nil
}

func (f *fakeStore) Remove(_ context.Context, _ string) error {
	f.removed++
	return nil
}

func TestDeleteBranchesOnDependents(t *testing.T) {
	t.Parallel()

	admin := auth.Identity{ID: "admin", Active: true, Admin: true}

	t.Run("no dependents removes permanently", func(t *testing.T) {
		t.Parallel()

		store := &fakeStore{rec: &storage.Record{ID: recID, OwnerRef: ownerID, Active: true}}
		res, err := (&SafeDeleter{Store: store}).Delete(context.Background(), recID, admin)
		require.NoError(t, err)

		assert.Equal(t, "deleted", res.Status)
		assert.Equal(t, recID, res.ID)
		assert.Zero(t, res.LinkedCount)
		assert.Equal(t, 1, store.removed)
		assert.Zero(t, store.deactivated)
	})

	t.Run("dependents deactivate instead", func(t *testing.T) {
		t.Parallel()

		store := &fakeStore{rec: &storage.Record{ID: recID, OwnerRef: ownerID, Active: true}, linked: 3}
		res, err := (&SafeDeleter{Store: store}).Delete(context.Background(), recID, admin)
		require.NoError(t, err)

		assert.Equal(t, "deactivated", res.Status)
		assert.Equal(t, int64(3), res.LinkedCount)
		assert.Equal(t, 1, store.deactivated)
		assert.Zero(t, store.removed)
	})

	t.Run("deactivation repeats without error", func(t *testing.T) {
		t.Parallel()

		store := &fakeStore{rec: &storage.Record{ID: recID, OwnerRef: ownerID, Active: false}, linked: 1}
		d := &SafeDeleter{Store: store}

		for i := 0; i < 2; i++ {
			res, err := d.Delete(context.Background(), recID, admin)
			require.NoError(t, err)
			assert.Equal(t, "deactivated", res.Status)
		}
		assert.Equal(t, 2, store.deactivated)
	})
}

func TestDeleteAuthorization(t *testing.T) {
	t.Parallel()

	t.Run("owner may delete", func(t *testing.T) {
		t.Parallel()

		store := &fakeStore{rec: &storage.Record{ID: recID, OwnerRef: ownerID}}
		owner := auth.Identity{ID: ownerID, Active: true, Professional: true}
		res, err := (&SafeDeleter{Store: store}).Delete(context.Background(), recID, owner)
		require.NoError(t, err)
		assert.Equal(t, "deleted", res.Status)
	})

	t.Run("non-owner is refused before any mutation", func(t *testing.T) {
		t.Parallel()

		store := &fakeStore{rec: &storage.Record{ID: recID, OwnerRef: ownerID}}
		stranger := auth.Identity{ID: "84f1b2c3d4e5f60718293a4d", Active: true, Professional: true}
		_, err := (&SafeDeleter{Store: store}).Delete(context.Background(), recID, stranger)

		require.Error(t, err)
		assert.True(t, apperr.IsKind(err, apperr.KindForbidden))
		assert.Zero(t, store.removed)
		assert.Zero(t, store.deactivated)
	})

	t.Run("missing record reports not found even to strangers", func(t *testing.T) {
		t.Parallel()

		store := &fakeStore{findErr: apperr.NotFound("profession not found")}
		stranger := auth.Identity{ID: "84f1b2c3d4e5f60718293a4d", Active: true}
		_, err := (&SafeDeleter{Store: store}).Delete(context.Background(), recID, stranger)

		require.Error(t, err)
		assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
	})

	t.Run("ownerless record requires admin", func(t *testing.T) {
		t.Parallel()

		store := &fakeStore{rec: &storage.Record{ID: recID}}
		professional := auth.Identity{ID: ownerID, Active: true, Professional: true}
		_, err := (&SafeDeleter{Store: store}).Delete(context.Background(), recID, professional)

		require.Error(t, err)
		assert.True(t, apperr.IsKind(err, apperr.KindForbidden))
	})
}
