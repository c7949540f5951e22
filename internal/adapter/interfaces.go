// Package adapter provides a Go client for the auth-service REST API.
// It is used by sibling services (checkout, order history) that need to
// register customers, verify sessions, or look profiles up over HTTP.
package adapter

import (
	"context"

	"github.com/globalmart/auth-service/models"
)

// AuthClient is the outbound contract of the auth-service HTTP API.
type AuthClient interface {
	// Register creates an account and returns the fresh credentials.
	Register(ctx context.Context, req models.RegisterRequest) (models.AuthResponse, error)

	// Login authenticates and returns the fresh credentials.
	Login(ctx context.Context, req models.LoginRequest) (models.AuthResponse, error)

	// Refresh exchanges a session token for a new access token.
	Refresh(ctx context.Context, sessionToken string) (models.AuthResponse, error)

	// Logout revokes a session token.
	Logout(ctx context.Context, sessionToken string) error

	// Me fetches the profile owning accessToken.
	Me(ctx context.Context, accessToken string) (models.User, error)
}
