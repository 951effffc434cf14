package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Init builds the router of the API process.
func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(withLogging)
	router.Use(h.withCORS())

	router.Get("/health", h.health)

	h.logger.Info().
		Str("app", h.appName).
		Str("version", h.appVersion).
		Str("environment", h.environment).
		Stringer("cors_allow_origins", h.origins).
		Msg("http routes initialized")

	return router
}
