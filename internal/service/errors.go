package service

import "errors"

var (
	// ErrInvalidDataProvided is returned when a request is missing required
	// fields or carries a malformed email.
	ErrInvalidDataProvided = errors.New("invalid data provided")

	// ErrPasswordTooShort is returned when the plaintext password does not
	// meet the minimum length policy.
	ErrPasswordTooShort = errors.New("password is too short")

	// ErrPasswordMismatch is returned at registration when password and its
	// confirmation differ.
	ErrPasswordMismatch = errors.New("passwords do not match")

	// ErrInvalidCredentials is returned on login when the email is unknown
	// OR the password is wrong. The two cases are deliberately collapsed so
	// responses cannot be used to probe which emails are registered.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrAccountInactive is returned when the account exists and the
	// password is correct, but the account has been deactivated.
	ErrAccountInactive = errors.New("account is inactive")

	// ErrSessionInvalid is returned when a session token is unknown or
	// revoked. Revocation deletes the session row, so the two cases are
	// indistinguishable.
	ErrSessionInvalid = errors.New("session is unknown or revoked")

	// ErrSessionExpired is returned when a session token resolves to a
	// session whose expiry has passed.
	ErrSessionExpired = errors.New("session is expired")

	// ErrTokenCreationFailed wraps access-token signing failures.
	ErrTokenCreationFailed = errors.New("token creation failed")

	// ErrTokenIsExpiredOrInvalid is returned for any access-token
	// validation failure (expired, wrong issuer, malformed, bad signature).
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")
)
