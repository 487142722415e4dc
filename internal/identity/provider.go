// Package identity wraps the external identity provider. Account storage and
// password verification live there; this service only keeps a reference.
package identity

import "context"

type Provider interface {
	// CreateAccount registers the credentials and returns the provider's
	// opaque account reference.
	CreateAccount(ctx context.Context, email, password, displayName string) (string, error)

	// DeleteAccount removes a provider account. Used to roll back a
	// registration whose local persistence failed.
	DeleteAccount(ctx context.Context, uid string) error

	// SignIn verifies the credentials against the provider.
	SignIn(ctx context.Context, email, password string) error
}
