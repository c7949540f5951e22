package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/globalmart/auth-service/internal/app"
	"github.com/globalmart/auth-service/internal/logger"
	"github.com/globalmart/auth-service/internal/store"
	"github.com/globalmart/auth-service/internal/utils"
	"github.com/globalmart/auth-service/models"
)

// me returns the profile of the authenticated user.
func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Error().Msg(app.MsgNoUserIDProvided)
		http.Error(w, app.MsgNoUserIDProvided, http.StatusUnauthorized)
		return
	}

	user, err := h.services.AuthService.GetProfile(ctx, userID)
	if err != nil {
		log.Err(err).Str("id", userID).Msg("profile lookup failed")
		http.Error(w, http.StatusText(statusFromError(err)), statusFromError(err))
		return
	}

	utils.WriteJSON(w, user, http.StatusOK)
}

// updateProfile applies a partial update of the authenticated user's display
// attributes.
func (h *Handler) updateProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Error().Msg(app.MsgNoUserIDProvided)
		http.Error(w, app.MsgNoUserIDProvided, http.StatusUnauthorized)
		return
	}

	var update models.ProfileUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		log.Err(err).Msg(app.MsgInvalidJSON)
		http.Error(w, app.MsgInvalidJSON, http.StatusBadRequest)
		return
	}

	user, err := h.services.AuthService.UpdateProfile(ctx, userID, update)
	if err != nil {
		log.Err(err).Str("id", userID).Msg("profile update failed")
		http.Error(w, http.StatusText(statusFromError(err)), statusFromError(err))
		return
	}

	utils.WriteJSON(w, user, http.StatusOK)
}

// deactivateUser flips the target account to inactive. Reachable only through
// the admin route group.
func (h *Handler) deactivateUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	targetID := chi.URLParam(r, "userID")
	if targetID == "" {
		http.Error(w, app.MsgNoUserIDProvided, http.StatusBadRequest)
		return
	}

	if err := h.services.AuthService.Deactivate(ctx, targetID); err != nil {
		switch {
		case errors.Is(err, store.ErrUserNotFound):
			log.Info().Str("id", targetID).Msg("deactivation of unknown user")
		default:
			log.Err(err).Str("id", targetID).Msg("deactivation failed")
		}
		http.Error(w, http.StatusText(statusFromError(err)), statusFromError(err))
		return
	}

	log.Info().Str("id", targetID).Msg("account deactivated")
	w.WriteHeader(http.StatusOK)
}
