package consult

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers consultation routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/consultation", func(r chi.Router) {
		r.Post("/", h.StartConsultation)
		r.Get("/{id}", h.GetState)
		r.Post("/{id}/answer", h.SubmitAnswer)
		r.Post("/{id}/photos", h.SubmitPhotos)
		r.Post("/{id}/retry", h.Retry)
		r.Post("/{id}/back", h.GoBack)
		r.Post("/{id}/reset", h.Reset)
		r.Get("/{id}/report/{format}", h.ExportReport)
	})
}
