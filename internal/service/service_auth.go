// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/globalmart/auth-service/internal/config"
	"github.com/globalmart/auth-service/internal/logger"
	"github.com/globalmart/auth-service/internal/store"
	"github.com/globalmart/auth-service/internal/utils"
	"github.com/globalmart/auth-service/internal/validators"
	"github.com/globalmart/auth-service/models"
)

// IDGenerator produces identifiers for newly created records.
type IDGenerator interface {
	Generate() string
}

// authService is the concrete implementation of AuthService.
// It orchestrates the credential store, the password hasher and the session
// service, and mints JWT access tokens for authenticated requests.
type authService struct {
	// userRepository is the data-access layer used to create and look up users.
	userRepository store.UserRepository

	// passwordHasher derives and verifies stored password hashes.
	passwordHasher PasswordHasher

	// sessionService issues and revokes the opaque session tokens.
	sessionService SessionService

	// requestValidator checks register, login and profile payloads before
	// any hashing or storage work.
	requestValidator validators.Validator

	// idGenerator assigns identifiers to new user records.
	idGenerator IDGenerator

	// tokenSignKey is the HMAC secret used to sign and verify access tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued access token.
	tokenIssuer string

	// accessTokenDuration controls how long a newly issued access token
	// remains valid.
	accessTokenDuration time.Duration

	// dummyHash is a valid encoded hash of a throwaway password. Login
	// verifies against it when the email is unknown, so the unknown-email
	// path costs the same as the wrong-password path.
	dummyHash string

	// now is the clock used for login timestamps. Injectable for tests.
	now func() time.Time

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewAuthService constructs an AuthService wired to the given collaborators
// and populated with security parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only
// after construction.
func NewAuthService(userRepository store.UserRepository, passwordHasher PasswordHasher, sessionService SessionService, idGenerator IDGenerator, cfg config.Auth, log *logger.Logger) (AuthService, error) {
	dummyHash, err := passwordHasher.Hash(context.Background(), "dummy-password-for-timing")
	if err != nil {
		return nil, fmt.Errorf("error preparing dummy hash: %w", err)
	}

	return &authService{
		userRepository:      userRepository,
		passwordHasher:      passwordHasher,
		sessionService:      sessionService,
		requestValidator:    validators.NewAuthRequestValidator(cfg.PasswordMinLength),
		idGenerator:         idGenerator,
		tokenSignKey:        cfg.TokenSignKey,
		tokenIssuer:         cfg.TokenIssuer,
		accessTokenDuration: cfg.AccessTokenDuration,
		dummyHash:           dummyHash,
		now:                 time.Now,
		logger:              log,
	}, nil
}

// Register creates a new user account and opens its first session.
//
// Validation happens before any hashing work: the email must parse, the full
// name must be present, the password must meet the minimum length and match
// its confirmation. Email
// uniqueness is left to the store's unique index, so two concurrent
// registrations of the same email cannot both succeed.
//
// Returns the auth response (user, session token, access token) or:
//   - ErrInvalidDataProvided if the email is missing or malformed.
//   - ErrPasswordTooShort if the password violates the length policy.
//   - ErrPasswordMismatch if password and confirmation differ.
//   - store.ErrEmailAlreadyExists if the email is taken.
func (a *authService) Register(ctx context.Context, req models.RegisterRequest) (models.AuthResponse, error) {
	log := logger.FromContext(ctx)

	if err := a.requestValidator.Validate(ctx, req); err != nil {
		log.Info().Err(err).Msg("registration payload rejected")
		return models.AuthResponse{}, mapValidationError(err)
	}

	email, err := normalizeEmail(req.Email)
	if err != nil {
		log.Error().Str("email", req.Email).Msg("invalid email provided")
		return models.AuthResponse{}, ErrInvalidDataProvided
	}

	passwordHash, err := a.passwordHasher.Hash(ctx, req.Password)
	if err != nil {
		log.Err(err).Msg("password hashing failed")
		return models.AuthResponse{}, fmt.Errorf("password hashing failed: %w", err)
	}

	now := a.now()
	user := models.User{
		ID:           a.idGenerator.Generate(),
		Email:        email,
		FullName:     req.FullName,
		Phone:        req.Phone,
		PasswordHash: passwordHash,
		Role:         models.RoleMember,
		Status:       models.StatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	registeredUser, err := a.userRepository.CreateUser(ctx, user)
	if err != nil {
		log.Err(err).Str("email", email).Msg("user creation ended with error")
		return models.AuthResponse{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	return a.openSession(ctx, registeredUser, false)
}

// Login authenticates an existing user and opens a session.
//
// The unknown-email and wrong-password paths return the same
// ErrInvalidCredentials and take comparable time: when no account matches,
// the supplied password is still verified against a dummy hash.
//
// Returns the auth response or:
//   - ErrInvalidDataProvided if email or password is empty.
//   - ErrInvalidCredentials if the email is unknown or the password wrong.
//   - ErrAccountInactive if the credentials are right but the account is
//     deactivated.
func (a *authService) Login(ctx context.Context, req models.LoginRequest) (models.AuthResponse, error) {
	log := logger.FromContext(ctx)

	if err := a.requestValidator.Validate(ctx, req); err != nil {
		return models.AuthResponse{}, ErrInvalidDataProvided
	}

	foundUser, err := a.userRepository.FindUserByEmail(ctx, strings.TrimSpace(req.Email))
	if errors.Is(err, store.ErrUserNotFound) {
		// burn the same KDF cost as a real verification
		_, _ = a.passwordHasher.Verify(ctx, req.Password, a.dummyHash)
		return models.AuthResponse{}, ErrInvalidCredentials
	}
	if err != nil {
		log.Err(err).Msg("user search by email failed")
		return models.AuthResponse{}, fmt.Errorf("user search by email failed: %w", err)
	}

	match, err := a.passwordHasher.Verify(ctx, req.Password, foundUser.PasswordHash)
	if err != nil {
		log.Err(err).Str("id", foundUser.ID).Msg("password verification failed")
		return models.AuthResponse{}, fmt.Errorf("password verification failed: %w", err)
	}
	if !match {
		log.Info().Str("id", foundUser.ID).Msg("wrong password")
		return models.AuthResponse{}, ErrInvalidCredentials
	}

	// status is checked only after the password matched, so an attacker
	// cannot learn that an email exists by probing for the inactive error
	if !foundUser.IsActive() {
		log.Info().Str("id", foundUser.ID).Msg("login attempt on inactive account")
		return models.AuthResponse{}, ErrAccountInactive
	}

	now := a.now()
	if err = a.userRepository.UpdateLastLogin(ctx, foundUser.ID, now); err != nil {
		// login still succeeds; the timestamp is advisory
		log.Err(err).Str("id", foundUser.ID).Msg("failed to record last login")
	} else {
		foundUser.LastLoginAt = &now
	}

	return a.openSession(ctx, foundUser, req.RememberMe)
}

// Logout revokes the given session token. Unknown and already revoked tokens
// are not errors.
func (a *authService) Logout(ctx context.Context, sessionToken string) error {
	return a.sessionService.Revoke(ctx, sessionToken)
}

// Refresh exchanges a live session token for a fresh access token. The
// session must resolve to an active account; sessions of deactivated accounts
// are revoked on the spot.
//
// Returns the auth response (without a new session token) or:
//   - ErrSessionInvalid if the token is unknown or revoked.
//   - ErrSessionExpired if the session outlived its TTL.
//   - ErrAccountInactive if the owning account was deactivated.
func (a *authService) Refresh(ctx context.Context, sessionToken string) (models.AuthResponse, error) {
	log := logger.FromContext(ctx)

	session, err := a.sessionService.Validate(ctx, sessionToken)
	if err != nil {
		return models.AuthResponse{}, err
	}

	user, err := a.userRepository.FindUserByID(ctx, session.UserID)
	if errors.Is(err, store.ErrUserNotFound) {
		_ = a.sessionService.Revoke(ctx, sessionToken)
		return models.AuthResponse{}, ErrSessionInvalid
	}
	if err != nil {
		log.Err(err).Str("id", session.UserID).Msg("user lookup failed")
		return models.AuthResponse{}, fmt.Errorf("user lookup failed: %w", err)
	}

	if !user.IsActive() {
		if err = a.sessionService.Revoke(ctx, sessionToken); err != nil {
			log.Err(err).Str("id", user.ID).Msg("failed to revoke session of inactive account")
		}
		return models.AuthResponse{}, ErrAccountInactive
	}

	accessToken, err := a.createToken(user)
	if err != nil {
		return models.AuthResponse{}, err
	}

	return models.AuthResponse{
		AccessToken: accessToken.SignedString,
		ExpiresAt:   session.ExpiresAt.Unix(),
		User:        user,
		Session:     session,
	}, nil
}

// GetProfile returns the account owning userID.
func (a *authService) GetProfile(ctx context.Context, userID string) (models.User, error) {
	user, err := a.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		return models.User{}, fmt.Errorf("user lookup failed: %w", err)
	}

	return user, nil
}

// UpdateProfile applies a partial update of the account's display attributes.
func (a *authService) UpdateProfile(ctx context.Context, userID string, update models.ProfileUpdate) (models.User, error) {
	if err := a.requestValidator.Validate(ctx, update); err != nil {
		return models.User{}, ErrInvalidDataProvided
	}

	user, err := a.userRepository.UpdateProfile(ctx, userID, update, a.now())
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("id", userID).Msg("profile update failed")
		return models.User{}, fmt.Errorf("profile update failed: %w", err)
	}

	return user, nil
}

// Deactivate flips the target account to inactive. Existing access tokens
// stay valid until they expire, but refresh is cut off immediately.
func (a *authService) Deactivate(ctx context.Context, userID string) error {
	if err := a.userRepository.UpdateStatus(ctx, userID, models.StatusInactive, a.now()); err != nil {
		logger.FromContext(ctx).Err(err).Str("id", userID).Msg("account deactivation failed")
		return fmt.Errorf("account deactivation failed: %w", err)
	}

	return nil
}

// openSession issues a session and an access token for an authenticated user.
func (a *authService) openSession(ctx context.Context, user models.User, rememberMe bool) (models.AuthResponse, error) {
	session, err := a.sessionService.Issue(ctx, user.ID, rememberMe)
	if err != nil {
		return models.AuthResponse{}, err
	}

	accessToken, err := a.createToken(user)
	if err != nil {
		return models.AuthResponse{}, err
	}

	return models.AuthResponse{
		AccessToken:  accessToken.SignedString,
		SessionToken: session.Token,
		ExpiresAt:    session.ExpiresAt.Unix(),
		User:         user,
		Session:      session,
	}, nil
}

// createToken issues a signed access token for the given user.
func (a *authService) createToken(user models.User) (models.AccessToken, error) {
	token, err := utils.GenerateJWTToken(a.tokenIssuer, user.ID, user.Role, a.accessTokenDuration, a.tokenSignKey)
	if err != nil {
		return models.AccessToken{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// ParseToken validates and parses a raw access token string.
//
// It delegates to utils.ValidateAndParseJWTToken, verifying the signature and
// the issuer claim. Any validation failure (expired, wrong issuer, malformed)
// is normalised to ErrTokenIsExpiredOrInvalid so that callers do not need to
// inspect low-level JWT errors.
func (a *authService) ParseToken(_ context.Context, tokenString string) (models.AccessToken, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		return models.AccessToken{}, ErrTokenIsExpiredOrInvalid
	}

	return token, nil
}

// mapValidationError translates validator errors into the service's own
// sentinels so that transport layers only deal with one error vocabulary.
func mapValidationError(err error) error {
	switch {
	case errors.Is(err, validators.ErrPasswordTooShort):
		return ErrPasswordTooShort
	case errors.Is(err, validators.ErrPasswordMismatch):
		return ErrPasswordMismatch
	default:
		return ErrInvalidDataProvided
	}
}

// normalizeEmail trims whitespace and rejects addresses the mail package
// cannot parse. The stored form keeps the original case; comparisons are
// case-insensitive in the store.
func normalizeEmail(email string) (string, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return "", errors.New("empty email")
	}

	addr, err := mail.ParseAddress(email)
	if err != nil {
		return "", fmt.Errorf("invalid email: %w", err)
	}

	return addr.Address, nil
}
