package handlers

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/taskfixer/servicios-api/internal/apperr"
	"github.com/taskfixer/servicios-api/internal/auth"
	"github.com/taskfixer/servicios-api/internal/identity"
	"github.com/taskfixer/servicios-api/internal/models"
	"github.com/taskfixer/servicios-api/internal/storage"
)

type AuthHandler struct {
	Users     storage.UserStore
	Provider  identity.Provider
	JWTSecret string
}

func NewAuthHandler(users storage.UserStore, provider identity.Provider, secret string) *AuthHandler {
	return &AuthHandler{Users: users, Provider: provider, JWTSecret: secret}
}

type RegisterReq struct {
	Name     string `json:"name"`
	Lastname string `json:"lastname"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates the identity-provider account first, then the local user
// document. If the local insert fails the provider account is rolled back so
// no orphaned credentials remain.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req RegisterReq
	if err := c.BodyParser(&req); err != nil {
		return apperr.BadRequest("invalid body")
	}

	name := strings.TrimSpace(req.Name)
	lastname := strings.TrimSpace(req.Lastname)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	password := strings.TrimSpace(req.Password)

	if name == "" {
		return apperr.BadRequest("name is required")
	}
	if email == "" || !strings.Contains(email, "@") {
		return apperr.BadRequest("valid email is required")
	}
	if len(password) < 6 {
		return apperr.BadRequest("password must be at least 6 characters")
	}

	ctx := c.UserContext()

	taken, err := h.Users.EmailTaken(ctx, email)
	if err != nil {
		return err
	}
	if taken {
		return apperr.Conflict("email already registered")
	}

	displayName := strings.TrimSpace(name + " " + lastname)
	uid, err := h.Provider.CreateAccount(ctx, email, password, displayName)
	if err != nil {
		return err
	}

	u := &models.User{
		Name:         name,
		Lastname:     lastname,
		Email:        email,
		Active:       true,
		Admin:        false,
		Professional: false,
		FirebaseUID:  uid,
	}

	u, err = h.Users.Insert(ctx, u)
	if err != nil {
		// Roll back the provider account; a failure here is logged only.
		if delErr := h.Provider.DeleteAccount(ctx, uid); delErr != nil {
			log.Error().Err(delErr).Str("uid", uid).Msg("identity rollback failed")
		}
		return err
	}

	token, err := auth.Sign(h.JWTSecret, identityOf(u), time.Now())
	if err != nil {
		return apperr.Internal(err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"token":   token,
		"user":    u,
	})
}

// Login verifies credentials against the identity provider and issues this
// service's own token from the locally stored user.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginReq
	if err := c.BodyParser(&req); err != nil {
		return apperr.BadRequest("invalid body")
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	password := strings.TrimSpace(req.Password)
	if email == "" || password == "" {
		return apperr.BadRequest("email and password are required")
	}

	ctx := c.UserContext()

	if err := h.Provider.SignIn(ctx, email, password); err != nil {
		return err
	}

	u, err := h.Users.FindByEmail(ctx, email)
	if err != nil {
		return err
	}

	token, err := auth.Sign(h.JWTSecret, identityOf(u), time.Now())
	if err != nil {
		return apperr.Internal(err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "user authenticated",
		"token":   token,
		"user":    u,
	})
}

func identityOf(u *models.User) auth.Identity {
	return auth.Identity{
		ID:           u.ID.Hex(),
		Name:         u.Name,
		Lastname:     u.Lastname,
		Email:        u.Email,
		Active:       u.Active,
		Admin:        u.Admin,
		Professional: u.Professional,
	}
}
