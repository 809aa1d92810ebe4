package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"arenagen.dev/internal/config"
	"arenagen.dev/internal/logging"
	"arenagen.dev/internal/services"
)

// SetupRoutes configures all routes and returns the router
func SetupRoutes(cfg *config.Config, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = logging.Discard()
	}
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)

	// Initialize services
	mapService := services.NewMapService(cfg, logger)

	// Initialize handlers
	mapHandler := NewMapHandler(mapService, logger)

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Route("/maps/{seed}", func(r chi.Router) {
			r.Get("/", mapHandler.GetMap)
			r.Get("/summary", mapHandler.GetSummary)
			r.Get("/preview", mapHandler.GetPreview)
		})

		// Health check
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		})
	})

	return r
}

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("encoding JSON response", "error", err)
	}
}

// respondError writes an error JSON response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
