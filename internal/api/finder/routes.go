package finder

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers dermatologist search routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Get("/dermatologists", h.FindDermatologists)
}
