package store

import (
	"context"
	"time"

	"github.com/globalmart/auth-service/models"
)

// UserRepository is the credential store contract: user records keyed by ID
// with a case-insensitive unique index on email.
type UserRepository interface {
	// CreateUser persists a new user record. Returns
	// [ErrEmailAlreadyExists] if the email is already taken; uniqueness is
	// decided atomically by the database unique index, never by a
	// read-then-write in application code.
	CreateUser(ctx context.Context, user models.User) (models.User, error)

	// FindUserByEmail looks a user up by email, case-insensitively.
	// Returns [ErrUserNotFound] if no record matches.
	FindUserByEmail(ctx context.Context, email string) (models.User, error)

	// FindUserByID looks a user up by its opaque identifier.
	// Returns [ErrUserNotFound] if no record matches.
	FindUserByID(ctx context.Context, id string) (models.User, error)

	// UpdateLastLogin records a successful login timestamp.
	// Returns [ErrUserNotFound] if the user does not exist.
	UpdateLastLogin(ctx context.Context, id string, at time.Time) error

	// UpdateProfile applies a partial update of the mutable display
	// attributes and bumps updated_at. Returns [ErrUserNotFound] if the
	// user does not exist.
	UpdateProfile(ctx context.Context, id string, update models.ProfileUpdate, at time.Time) (models.User, error)

	// UpdateStatus flips the lifecycle status of an account (soft
	// deactivation/reactivation). Returns [ErrUserNotFound] if the user
	// does not exist.
	UpdateStatus(ctx context.Context, id string, status models.Status, at time.Time) error
}

// SessionRepository is the injectable session store contract.
type SessionRepository interface {
	// CreateSession persists a freshly issued session.
	CreateSession(ctx context.Context, session models.Session) error

	// FindSessionByToken returns the session with the given token.
	// Returns [ErrSessionNotFound] if no record matches; expiry is the
	// caller's concern.
	FindSessionByToken(ctx context.Context, token string) (models.Session, error)

	// DeleteSession removes a session. Deleting an absent session is not
	// an error, which makes logout idempotent.
	DeleteSession(ctx context.Context, token string) error

	// DeleteExpiredSessions removes sessions whose expiry is at or before
	// now and reports how many were removed.
	DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error)
}

// ErrorClassification is the result type returned by
// [ErrorClassificator.Classify]. It indicates whether a failed database
// operation should be retried or abandoned.
type ErrorClassification int

const (
	// NonRetryable indicates that the failed operation should not be retried.
	// This is the default classification for unrecognised errors, constraint
	// violations, syntax errors, and data exceptions.
	NonRetryable ErrorClassification = iota

	// Retryable indicates that the failed operation may succeed if attempted
	// again (e.g. after a transient connection loss or a deadlock rollback).
	Retryable
)

// ErrorClassificator maps driver-level errors to the store's error model so
// repositories stay driver-agnostic.
type ErrorClassificator interface {
	// Classify reports whether err is worth retrying.
	Classify(err error) ErrorClassification

	// IsUniqueViolation reports whether err is a unique-constraint
	// violation (the losing side of a duplicate-email race).
	IsUniqueViolation(err error) bool
}
