package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/taskfixer/servicios-api/internal/apperr"
)

// TokenLifetime is fixed. There is no refresh mechanism; callers
// re-authenticate after expiry.
const TokenLifetime = time.Hour

// Identity is the verified caller attached to a request once the guard
// middleware accepts its token.
type Identity struct {
	ID           string
	Name         string
	Lastname     string
	Email        string
	Active       bool
	Admin        bool
	Professional bool
}

type Claims struct {
	UserID       string `json:"id"`
	Firstname    string `json:"firstname"`
	Lastname     string `json:"lastname"`
	Email        string `json:"email"`
	Active       bool   `json:"active"`
	Admin        bool   `json:"admin"`
	Professional bool   `json:"professional"`
	jwt.RegisteredClaims
}

func (c *Claims) Identity() Identity {
	return Identity{
		ID:           c.UserID,
		Name:         c.Firstname,
		Lastname:     c.Lastname,
		Email:        c.Email,
		Active:       c.Active,
		Admin:        c.Admin,
		Professional: c.Professional,
	}
}

// Sign issues an HS256 token for ident valid for TokenLifetime from now.
func Sign(secret string, ident Identity, now time.Time) (string, error) {
	claims := Claims{
		UserID:       ident.ID,
		Firstname:    ident.Name,
		Lastname:     ident.Lastname,
		Email:        ident.Email,
		Active:       ident.Active,
		Admin:        ident.Admin,
		Professional: ident.Professional,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenLifetime)),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(secret))
}

// Parse verifies the signature and expiry. Expired tokens are reported
// distinctly from otherwise invalid ones.
func Parse(secret, tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperr.Unauthorized("expired token")
		}
		return nil, apperr.Unauthorized("invalid token")
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, apperr.Unauthorized("invalid token")
	}
	return claims, nil
}
