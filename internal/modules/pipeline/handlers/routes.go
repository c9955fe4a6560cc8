package handlers

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// RegisterRoutes registers all pipeline routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		// Narrator calls retry once, so allow for two full attempts
		r.Use(middleware.Timeout(90 * time.Second))

		r.Post("/api/analyze", h.HandleAnalyze)
		r.Post("/api/analyze/search", h.HandleSearch)
		r.Post("/api/features", h.HandleFeatures)
	})
}
