package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/taskfixer/servicios-api/internal/apperr"
	"github.com/taskfixer/servicios-api/internal/auth"
)

const identityKey = "identity"

// Role predicates evaluated against the verified token claims. All of them
// require the token's active flag, independent of current database state.
type Role string

const (
	RoleAuthenticated       Role = "authenticated"
	RoleAdmin               Role = "admin"
	RoleClient              Role = "client"
	RoleProfessional        Role = "professional"
	RoleAdminOrProfessional Role = "admin_or_professional"
)

func bearerToken(c *fiber.Ctx) (string, error) {
	header := c.Get(fiber.HeaderAuthorization)
	if header == "" {
		return "", apperr.BadRequest("authorization header missing")
	}
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", apperr.BadRequest("invalid auth scheme")
	}
	return parts[1], nil
}

// Protected extracts and verifies the bearer token and attaches the caller
// identity to the request. Handlers behind it never run on a bad token.
func Protected(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, err := bearerToken(c)
		if err != nil {
			return err
		}

		claims, err := auth.Parse(secret, token)
		if err != nil {
			return err
		}
		if !claims.Active {
			return apperr.Unauthorized("inactive user")
		}

		c.Locals(identityKey, claims.Identity())
		return c.Next()
	}
}

// OptionalIdentity attaches an identity when a valid bearer token is present
// and lets anonymous requests through. Used on public read endpoints.
func OptionalIdentity(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Get(fiber.HeaderAuthorization) == "" {
			return c.Next()
		}
		token, err := bearerToken(c)
		if err != nil {
			return err
		}
		claims, err := auth.Parse(secret, token)
		if err != nil {
			return err
		}
		if claims.Active {
			c.Locals(identityKey, claims.Identity())
		}
		return c.Next()
	}
}

// Require evaluates a role predicate against the identity set by Protected.
func Require(role Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ident, ok := IdentityFrom(c)
		if !ok {
			return apperr.Unauthorized("missing identity")
		}

		switch role {
		case RoleAuthenticated:
			// Protected already guaranteed an active identity.
		case RoleAdmin:
			if !ident.Admin {
				return apperr.Forbidden("user is not admin")
			}
		case RoleClient:
			if ident.Admin || ident.Professional {
				return apperr.Forbidden("not a client user")
			}
		case RoleProfessional:
			if !ident.Professional {
				return apperr.Forbidden("user is not a professional")
			}
		case RoleAdminOrProfessional:
			if !ident.Admin && !ident.Professional {
				return apperr.Forbidden("not authorized")
			}
		default:
			return apperr.Forbidden("unknown role requirement")
		}

		return c.Next()
	}
}

// IdentityFrom returns the request identity populated by Protected.
func IdentityFrom(c *fiber.Ctx) (auth.Identity, bool) {
	ident, ok := c.Locals(identityKey).(auth.Identity)
	return ident, ok
}
