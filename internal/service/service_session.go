// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/globalmart/auth-service/internal/config"
	"github.com/globalmart/auth-service/internal/logger"
	"github.com/globalmart/auth-service/internal/store"
	"github.com/globalmart/auth-service/models"
)

// sessionTokenLength is the entropy of an issued session token in bytes.
// 32 bytes keeps guessing infeasible even against an offline attacker.
const sessionTokenLength = 32

// sessionService is the concrete implementation of SessionService backed by a
// store.SessionRepository.
type sessionService struct {
	sessionRepository store.SessionRepository

	// userRepository resolves session owners so validation can reject
	// sessions of deactivated accounts.
	userRepository store.UserRepository

	// sessionTTL is the lifetime of a session issued without "remember me".
	sessionTTL time.Duration

	// rememberMeTTL is the lifetime of a session issued with "remember me".
	rememberMeTTL time.Duration

	// now is the clock used for issuance and expiry checks. Injectable so
	// tests can pin time.
	now func() time.Time

	logger *logger.Logger
}

// NewSessionService constructs a SessionService wired to the given
// repositories and populated with lifetimes from cfg.
func NewSessionService(sessionRepository store.SessionRepository, userRepository store.UserRepository, cfg config.Auth, logger *logger.Logger) SessionService {
	return &sessionService{
		sessionRepository: sessionRepository,
		userRepository:    userRepository,
		sessionTTL:        cfg.SessionTTL,
		rememberMeTTL:     cfg.RememberMeTTL,
		now:               time.Now,
		logger:            logger,
	}
}

// Issue mints a fresh opaque token for userID and persists the session.
func (s *sessionService) Issue(ctx context.Context, userID string, rememberMe bool) (models.Session, error) {
	log := logger.FromContext(ctx)

	token, err := generateSessionToken()
	if err != nil {
		log.Err(err).Msg("session token generation failed")
		return models.Session{}, fmt.Errorf("session token generation failed: %w", err)
	}

	ttl := s.sessionTTL
	if rememberMe {
		ttl = s.rememberMeTTL
	}

	now := s.now()
	session := models.Session{
		Token:     token,
		UserID:    userID,
		IssuedAt:  now,
		ExpiresAt: now.Add(ttl),
	}

	if err = s.sessionRepository.CreateSession(ctx, session); err != nil {
		log.Err(err).Str("userID", userID).Msg("session creation ended with error")
		return models.Session{}, fmt.Errorf("session creation ended with error: %w", err)
	}

	return session, nil
}

// Validate resolves token to a live session of an active account. Unknown and
// revoked tokens look the same here because revocation deletes the row;
// expiry is reported separately as ErrSessionExpired. Expired sessions and
// sessions of deactivated or deleted accounts are deleted on sight so later
// lookups fail fast.
func (s *sessionService) Validate(ctx context.Context, token string) (models.Session, error) {
	log := logger.FromContext(ctx)

	if token == "" {
		return models.Session{}, ErrSessionInvalid
	}

	session, err := s.sessionRepository.FindSessionByToken(ctx, token)
	if errors.Is(err, store.ErrSessionNotFound) {
		return models.Session{}, ErrSessionInvalid
	}
	if err != nil {
		log.Err(err).Msg("session lookup failed")
		return models.Session{}, fmt.Errorf("session lookup failed: %w", err)
	}

	if session.ExpiredAt(s.now()) {
		s.deleteDeadSession(ctx, token)
		return models.Session{}, ErrSessionExpired
	}

	user, err := s.userRepository.FindUserByID(ctx, session.UserID)
	if errors.Is(err, store.ErrUserNotFound) {
		s.deleteDeadSession(ctx, token)
		return models.Session{}, ErrSessionInvalid
	}
	if err != nil {
		log.Err(err).Str("userID", session.UserID).Msg("session owner lookup failed")
		return models.Session{}, fmt.Errorf("session owner lookup failed: %w", err)
	}
	if !user.IsActive() {
		s.deleteDeadSession(ctx, token)
		return models.Session{}, ErrAccountInactive
	}

	return session, nil
}

// deleteDeadSession removes a session that can never validate again. A failed
// delete is logged, not surfaced; the caller already rejects the token.
func (s *sessionService) deleteDeadSession(ctx context.Context, token string) {
	if err := s.sessionRepository.DeleteSession(ctx, token); err != nil {
		logger.FromContext(ctx).Err(err).Msg("failed to delete dead session")
	}
}

// Revoke removes the session. Unknown tokens are ignored so repeated logouts
// and logout-after-expiry both succeed.
func (s *sessionService) Revoke(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}

	if err := s.sessionRepository.DeleteSession(ctx, token); err != nil {
		logger.FromContext(ctx).Err(err).Msg("session revocation failed")
		return fmt.Errorf("session revocation failed: %w", err)
	}

	return nil
}

// PurgeExpired deletes all sessions whose expiry has passed. Intended to run
// periodically from the server process.
func (s *sessionService) PurgeExpired(ctx context.Context) (int64, error) {
	removed, err := s.sessionRepository.DeleteExpiredSessions(ctx, s.now())
	if err != nil {
		return 0, fmt.Errorf("expired session purge failed: %w", err)
	}

	return removed, nil
}

// generateSessionToken returns a URL-safe random token with
// sessionTokenLength bytes of entropy.
func generateSessionToken() (string, error) {
	raw := make([]byte, sessionTokenLength)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}

	return base64.RawURLEncoding.EncodeToString(raw), nil
}
