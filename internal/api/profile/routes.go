package profile

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers profile routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/profile", func(r chi.Router) {
		r.Get("/", h.GetProfile)
		r.Put("/", h.SetProfile)
		r.Delete("/", h.DeleteProfile)
	})
}
