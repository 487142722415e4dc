package middleware

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskfixer/servicios-api/internal/apperr"
	"github.com/taskfixer/servicios-api/internal/auth"
)

const testSecret = "guard-test-secret"

func newGuardedApp(role Role) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: apperr.ErrorHandler})
	app.Get("/guarded", Protected(testSecret), Require(role), func(c *fiber.Ctx) error {
		ident, ok := IdentityFrom(c)
		if !ok {
			return apperr.Internal(nil)
		}
		return c.JSON(fiber.Map{"id": ident.ID})
	})
	return app
}

func signedToken(t *testing.T, ident auth.Identity, at time.Time) string {
	t.Helper()
	tok, err := auth.Sign(testSecret, ident, at)
	require.NoError(t, err)
	return tok
}

func request(t *testing.T, app *fiber.App, authHeader string) int {
	t.Helper()
	req := httptest.NewRequest("GET", "/guarded", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp.StatusCode
}

func TestProtectedHeaderHandling(t *testing.T) {
	t.Parallel()

	app := newGuardedApp(RoleAuthenticated)
	active := auth.Identity{ID: "64f1b2c3d4e5f60718293a4b", Active: true}

	t.Run("missing header", func(t *testing.T) {
		assert.Equal(t, fiber.StatusBadRequest, request(t, app, ""))
	})

	t.Run("wrong scheme", func(t *testing.T) {
		tok := signedToken(t, active, time.Now())
		assert.Equal(t, fiber.StatusBadRequest, request(t, app, "Token "+tok))
	})

	t.Run("scheme is case-insensitive", func(t *testing.T) {
		tok := signedToken(t, active, time.Now())
		assert.Equal(t, fiber.StatusOK, request(t, app, "BEARER "+tok))
	})

	t.Run("garbage token", func(t *testing.T) {
		assert.Equal(t, fiber.StatusUnauthorized, request(t, app, "Bearer nope"))
	})

	t.Run("expired token", func(t *testing.T) {
		tok := signedToken(t, active, time.Now().Add(-2*time.Hour))
		assert.Equal(t, fiber.StatusUnauthorized, request(t, app, "Bearer "+tok))
	})

	t.Run("inactive user", func(t *testing.T) {
		tok := signedToken(t, auth.Identity{ID: active.ID, Active: false}, time.Now())
		assert.Equal(t, fiber.StatusUnauthorized, request(t, app, "Bearer "+tok))
	})
}

func TestRolePredicates(t *testing.T) {
	t.Parallel()

	id := "64f1b2c3d4e5f60718293a4b"
	client := auth.Identity{ID: id, Active: true}
	professional := auth.Identity{ID: id, Active: true, Professional: true}
	admin := auth.Identity{ID: id, Active: true, Admin: true}

	tests := []struct {
		name  string
		role  Role
		ident auth.Identity
		want  int
	}{
		{"authenticated accepts client", RoleAuthenticated, client, fiber.StatusOK},
		{"admin accepts admin", RoleAdmin, admin, fiber.StatusOK},
		{"admin rejects client", RoleAdmin, client, fiber.StatusForbidden},
		{"admin rejects professional", RoleAdmin, professional, fiber.StatusForbidden},
		{"client accepts plain user", RoleClient, client, fiber.StatusOK},
		{"client rejects professional", RoleClient, professional, fiber.StatusForbidden},
		{"client rejects admin", RoleClient, admin, fiber.StatusForbidden},
		{"professional accepts professional", RoleProfessional, professional, fiber.StatusOK},
		{"professional rejects client", RoleProfessional, client, fiber.StatusForbidden},
		{"admin_or_professional accepts admin", RoleAdminOrProfessional, admin, fiber.StatusOK},
		{"admin_or_professional accepts professional", RoleAdminOrProfessional, professional, fiber.StatusOK},
		{"admin_or_professional rejects client", RoleAdminOrProfessional, client, fiber.StatusForbidden},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			app := newGuardedApp(tt.role)
			tok := signedToken(t, tt.ident, time.Now())
			assert.Equal(t, tt.want, request(t, app, "Bearer "+tok))
		})
	}
}

func TestOptionalIdentity(t *testing.T) {
	t.Parallel()

	app := fiber.New(fiber.Config{ErrorHandler: apperr.ErrorHandler})
	app.Get("/open", OptionalIdentity(testSecret), func(c *fiber.Ctx) error {
		if ident, ok := IdentityFrom(c); ok {
			return c.JSON(fiber.Map{"id": ident.ID})
		}
		return c.JSON(fiber.Map{"id": nil})
	})

	t.Run("anonymous passes", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/open", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("bad token still rejected", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/open", nil)
		req.Header.Set("Authorization", "Bearer nope")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("valid token attaches identity", func(t *testing.T) {
		tok := signedToken(t, auth.Identity{ID: "64f1b2c3d4e5f60718293a4b", Active: true}, time.Now())
		req := httptest.NewRequest("GET", "/open", nil)
		req.Header.Set("Authorization", "Bearer "+tok)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})
}
