package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskfixer/servicios-api/internal/apperr"
)

const testSecret = "test-secret-long-enough-for-hs256"

func testIdentity() Identity {
	return Identity{
		ID:           "64f1b2c3d4e5f60718293a4b",
		Name:         "Maria",
		Lastname:     "Lopez",
		Email:        "maria@example.com",
		Active:       true,
		Admin:        false,
		Professional: true,
	}
}

func TestSignAndParse(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	ident := testIdentity()

	token, err := Sign(testSecret, ident, now)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := Parse(testSecret, token)
	require.NoError(t, err)

	assert.Equal(t, ident.ID, claims.UserID)
	assert.Equal(t, ident.Name, claims.Firstname)
	assert.Equal(t, ident.Lastname, claims.Lastname)
	assert.Equal(t, ident.Email, claims.Email)
	assert.True(t, claims.Active)
	assert.False(t, claims.Admin)
	assert.True(t, claims.Professional)

	assert.Equal(t, now.Unix(), claims.IssuedAt.Unix())
	assert.Equal(t, now.Add(TokenLifetime).Unix(), claims.ExpiresAt.Unix())

	assert.Equal(t, ident, claims.Identity())
}

func TestParseFailures(t *testing.T) {
	t.Parallel()

	ident := testIdentity()

	tests := []struct {
		name    string
		token   func(t *testing.T) string
		message string
	}{
		{
			name: "expired token",
			token: func(t *testing.T) string {
				tok, err := Sign(testSecret, ident, time.Now().Add(-2*time.Hour))
				require.NoError(t, err)
				return tok
			},
			message: "expired token",
		},
		{
			name: "wrong secret",
			token: func(t *testing.T) string {
				tok, err := Sign("a-different-secret-entirely", ident, time.Now())
				require.NoError(t, err)
				return tok
			},
			message: "invalid token",
		},
		{
			name: "garbage",
			token: func(t *testing.T) string {
				return "not.a.token"
			},
			message: "invalid token",
		},
		{
			name: "tampered payload",
			token: func(t *testing.T) string {
				tok, err := Sign(testSecret, ident, time.Now())
				require.NoError(t, err)
				return tok + "x"
			},
			message: "invalid token",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Parse(testSecret, tt.token(t))
			require.Error(t, err)
			assert.True(t, apperr.IsKind(err, apperr.KindUnauthorized))
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestTokenValidBeforeExpiry(t *testing.T) {
	t.Parallel()

	// Signed just inside the lifetime window: still valid.
	tok, err := Sign(testSecret, testIdentity(), time.Now().Add(-TokenLifetime+5*time.Minute))
	require.NoError(t, err)

	claims, err := Parse(testSecret, tok)
	require.NoError(t, err)
	assert.True(t, claims.Active)
}
