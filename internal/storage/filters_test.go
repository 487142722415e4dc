package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/taskfixer/servicios-api/internal/apperr"
)

func TestOID(t *testing.T) {
	t.Parallel()

	t.Run("valid hex", func(t *testing.T) {
		t.Parallel()

		oid, err := OID("64f1b2c3d4e5f60718293a4b")
		require.NoError(t, err)
		assert.Equal(t, "64f1b2c3d4e5f60718293a4b", oid.Hex())
	})

	t.Run("surrounding whitespace tolerated", func(t *testing.T) {
		t.Parallel()

		oid, err := OID("  64f1b2c3d4e5f60718293a4b ")
		require.NoError(t, err)
		assert.Equal(t, "64f1b2c3d4e5f60718293a4b", oid.Hex())
	})

	for _, bad := range []string{"", "nope", "64f1b2c3d4e5f60718293a4", "zzf1b2c3d4e5f60718293a4b"} {
		bad := bad
		t.Run("rejects "+bad, func(t *testing.T) {
			t.Parallel()

			_, err := OID(bad)
			require.Error(t, err)
			assert.True(t, apperr.IsKind(err, apperr.KindBadRequest))
		})
	}
}

func TestHexOf(t *testing.T) {
	t.Parallel()

	oid, err := primitive.ObjectIDFromHex("64f1b2c3d4e5f60718293a4b")
	require.NoError(t, err)

	tests := []struct {
		name string
		in   interface{}
		want string
	}{
		{"object id", oid, "64f1b2c3d4e5f60718293a4b"},
		{"hex string", "64f1b2c3d4e5f60718293a4b", "64f1b2c3d4e5f60718293a4b"},
		{"uppercase string normalized", "64F1B2C3D4E5F60718293A4B", "64f1b2c3d4e5f60718293a4b"},
		{"padded string trimmed", "  64f1b2c3d4e5f60718293a4b ", "64f1b2c3d4e5f60718293a4b"},
		{"nil is empty", nil, ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, HexOf(tt.in))
		})
	}
}

func TestRefEitherCoversBothEncodings(t *testing.T) {
	t.Parallel()

	filter, err := RefEither("id_profession", "64f1b2c3d4e5f60718293a4b")
	require.NoError(t, err)

	or, ok := filter["$or"].(bson.A)
	require.True(t, ok)
	require.Len(t, or, 2)

	oid, _ := primitive.ObjectIDFromHex("64f1b2c3d4e5f60718293a4b")
	assert.Contains(t, or, bson.M{"id_profession": oid})
	assert.Contains(t, or, bson.M{"id_profession": oid.Hex()})
}

func TestRefEitherRejectsBadID(t *testing.T) {
	t.Parallel()

	_, err := RefEither("id_profession", "not-an-id")
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindBadRequest))
}
