package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/api/auth/register", h.register)
		r.Post("/api/auth/login", h.login)
	})

	// routes authorized by the opaque session token
	router.Group(func(r chi.Router) {
		r.Post("/api/auth/refresh", h.refresh)
		r.Post("/api/auth/logout", h.logout)
	})

	// routes authorized by the JWT access token
	router.Group(func(r chi.Router) {
		r.Use(h.auth)
		r.Get("/api/user/me", h.me)
		r.Patch("/api/user/profile", h.updateProfile)
	})

	// admin-only routes
	router.Group(func(r chi.Router) {
		r.Use(h.auth)
		r.Use(h.requireAdmin)
		r.Post("/api/admin/users/{userID}/deactivate", h.deactivateUser)
	})

	return router
}
