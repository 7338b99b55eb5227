package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	consultapi "github.com/dermocheck/backend/internal/api/consult"
	"github.com/dermocheck/backend/internal/api/docs"
	finderapi "github.com/dermocheck/backend/internal/api/finder"
	"github.com/dermocheck/backend/internal/api/middleware"
	profileapi "github.com/dermocheck/backend/internal/api/profile"
)

// SetupRouter creates and configures the HTTP router
func SetupRouter(
	consultHandler *consultapi.Handler,
	profileHandler *profileapi.Handler,
	finderHandler *finderapi.Handler,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Middleware stack
	r.Use(chimiddleware.Recoverer)                 // Recover from panics
	r.Use(chimiddleware.RequestID)                 // Add request ID
	r.Use(middleware.Logger(logger))               // Log requests
	r.Use(middleware.CORS)                         // Handle CORS
	r.Use(chimiddleware.Timeout(60 * time.Second)) // Default timeout

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	})

	// Swagger documentation endpoints
	docs.RegisterRoutes(r)

	// Register routes
	consultapi.RegisterRoutes(r, consultHandler)
	profileapi.RegisterRoutes(r, profileHandler)
	finderapi.RegisterRoutes(r, finderHandler)

	return r
}
