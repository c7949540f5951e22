// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/globalmart/auth-service/internal/app"
	"github.com/globalmart/auth-service/internal/logger"
	"github.com/globalmart/auth-service/internal/service"
	"github.com/globalmart/auth-service/internal/store"
	"github.com/globalmart/auth-service/internal/utils"
	"github.com/globalmart/auth-service/models"
)

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg(app.MsgInvalidJSON)
		http.Error(w, app.MsgInvalidJSON, http.StatusBadRequest)
		return
	}

	resp, err := h.services.AuthService.Register(ctx, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDataProvided),
			errors.Is(err, service.ErrPasswordTooShort),
			errors.Is(err, service.ErrPasswordMismatch):
			log.Err(err).Msg("invalid registration data provided")
		case errors.Is(err, store.ErrEmailAlreadyExists):
			log.Err(err).Msg("email already exists")
		default:
			log.Err(err).Msg("unexpected error occurred during user registration")
		}
		http.Error(w, http.StatusText(statusFromError(err)), statusFromError(err))
		return
	}

	log.Debug().Str("id", resp.User.ID).Msg("user successfully registered")

	utils.WriteJSON(w, resp, http.StatusCreated)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg(app.MsgInvalidJSON)
		http.Error(w, app.MsgInvalidJSON, http.StatusBadRequest)
		return
	}

	resp, err := h.services.AuthService.Login(ctx, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			log.Info().Msg("login rejected")
		case errors.Is(err, service.ErrAccountInactive):
			log.Info().Msg("login attempt on inactive account")
		case errors.Is(err, store.ErrStoreUnavailable):
			log.Err(err).Msg("credential store unavailable")
		default:
			log.Err(err).Msg("unexpected error occurred during user login")
		}
		http.Error(w, http.StatusText(statusFromError(err)), statusFromError(err))
		return
	}

	log.Debug().Str("id", resp.User.ID).Msg("user successfully logged in")

	utils.WriteJSON(w, resp, http.StatusOK)
}

// refresh exchanges the opaque session token carried in the Authorization
// header for a fresh access token.
func (h *Handler) refresh(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	sessionToken, err := sessionTokenFromRequest(r)
	if err != nil {
		log.Err(err).Send()
		http.Error(w, err.Error(), http.StatusUnauthorized)
		return
	}

	resp, err := h.services.AuthService.Refresh(ctx, sessionToken)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSessionInvalid),
			errors.Is(err, service.ErrSessionExpired):
			log.Info().Msg("refresh with invalid session token")
		case errors.Is(err, service.ErrAccountInactive):
			log.Info().Msg("refresh on inactive account")
		default:
			log.Err(err).Msg("unexpected error occurred during session refresh")
		}
		http.Error(w, http.StatusText(statusFromError(err)), statusFromError(err))
		return
	}

	utils.WriteJSON(w, resp, http.StatusOK)
}

// logout revokes the session token carried in the Authorization header.
// Unknown and already revoked tokens still yield 200, so logout never leaks
// whether a token was live.
func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	sessionToken, err := sessionTokenFromRequest(r)
	if err != nil {
		log.Err(err).Send()
		http.Error(w, err.Error(), http.StatusUnauthorized)
		return
	}

	if err = h.services.AuthService.Logout(ctx, sessionToken); err != nil {
		log.Err(err).Msg("unexpected error occurred during logout")
		http.Error(w, http.StatusText(statusFromError(err)), statusFromError(err))
		return
	}

	w.WriteHeader(http.StatusOK)
}

// sessionTokenFromRequest extracts the opaque session token from the
// "Authorization: Bearer <token>" header.
func sessionTokenFromRequest(r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", ErrEmptyAuthorizationHeader
	}

	return getTokenFromAuthHeader(authHeader)
}
