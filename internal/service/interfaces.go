package service

import (
	"context"

	"github.com/globalmart/auth-service/models"
)

type AuthService interface {
	// Register creates a new account from req and opens a first session.
	Register(ctx context.Context, req models.RegisterRequest) (models.AuthResponse, error)

	// Login verifies credentials and opens a session. Wrong email and wrong
	// password are indistinguishable to the caller.
	Login(ctx context.Context, req models.LoginRequest) (models.AuthResponse, error)

	// Logout revokes the session identified by sessionToken. Revoking an
	// unknown or already revoked token succeeds.
	Logout(ctx context.Context, sessionToken string) error

	// Refresh exchanges a live session token for a fresh access token.
	Refresh(ctx context.Context, sessionToken string) (models.AuthResponse, error)

	// GetProfile returns the account owning userID.
	GetProfile(ctx context.Context, userID string) (models.User, error)

	// UpdateProfile applies a partial update of the account's display
	// attributes.
	UpdateProfile(ctx context.Context, userID string, update models.ProfileUpdate) (models.User, error)

	// Deactivate flips the target account to inactive and cuts its live
	// sessions off from refresh. Admin-only at the transport layer.
	Deactivate(ctx context.Context, userID string) error

	// ParseToken validates a raw access token string and returns its
	// claims. Any validation failure is reported as
	// ErrTokenIsExpiredOrInvalid.
	ParseToken(ctx context.Context, tokenString string) (models.AccessToken, error)
}

// PasswordHasher derives storage-ready password hashes and verifies
// candidates against them. Implementations must be safe for concurrent use.
type PasswordHasher interface {
	// Hash derives a self-describing hash (algorithm, parameters and salt
	// encoded alongside the digest) from a plaintext password. Passwords
	// below the minimum length fail with ErrPasswordTooShort.
	Hash(ctx context.Context, password string) (string, error)

	// Verify reports whether password matches encodedHash. The comparison
	// takes the same time whether it matches or not.
	Verify(ctx context.Context, password, encodedHash string) (bool, error)
}

// SessionService owns the session lifecycle: issuing opaque tokens, checking
// them on refresh, revoking them on logout, and purging expired rows.
type SessionService interface {
	// Issue mints a session for userID. rememberMe selects the long TTL.
	Issue(ctx context.Context, userID string, rememberMe bool) (models.Session, error)

	// Validate resolves token to a live session of an active account.
	// Unknown and revoked tokens fail with ErrSessionInvalid, expired ones
	// with ErrSessionExpired, and sessions of deactivated accounts with
	// ErrAccountInactive. Dead sessions are revoked on sight.
	Validate(ctx context.Context, token string) (models.Session, error)

	// Revoke removes the session. Idempotent.
	Revoke(ctx context.Context, token string) error

	// PurgeExpired deletes expired sessions and reports how many went.
	PurgeExpired(ctx context.Context) (int64, error)
}
