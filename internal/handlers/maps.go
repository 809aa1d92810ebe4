package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"arenagen.dev/internal/services"
)

const defaultPreviewCols = 120

// MapHandler handles map generation endpoints
type MapHandler struct {
	mapService *services.MapService
	logger     *slog.Logger
}

// NewMapHandler creates a new MapHandler
func NewMapHandler(ms *services.MapService, logger *slog.Logger) *MapHandler {
	return &MapHandler{mapService: ms, logger: logger}
}

// seedParam parses the {seed} URL parameter, answering 400 when it is not an integer
func seedParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	seed, err := strconv.ParseInt(chi.URLParam(r, "seed"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid seed")
		return 0, false
	}
	return seed, true
}

func (h *MapHandler) generationFailed(w http.ResponseWriter, seed int64, err error) {
	h.logger.Warn("map generation failed", "seed", seed, "error", err)
	respondError(w, http.StatusUnprocessableEntity, err.Error())
}

// GetMap handles GET /api/maps/{seed} - returns the full map definition
func (h *MapHandler) GetMap(w http.ResponseWriter, r *http.Request) {
	seed, ok := seedParam(w, r)
	if !ok {
		return
	}

	m, err := h.mapService.Generate(seed)
	if err != nil {
		h.generationFailed(w, seed, err)
		return
	}

	respondJSON(w, http.StatusOK, m)
}

// GetSummary handles GET /api/maps/{seed}/summary
func (h *MapHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	seed, ok := seedParam(w, r)
	if !ok {
		return
	}

	summary, err := h.mapService.Summary(seed)
	if err != nil {
		h.generationFailed(w, seed, err)
		return
	}

	respondJSON(w, http.StatusOK, summary)
}

// GetPreview handles GET /api/maps/{seed}/preview?cols=N - returns the map as text
func (h *MapHandler) GetPreview(w http.ResponseWriter, r *http.Request) {
	seed, ok := seedParam(w, r)
	if !ok {
		return
	}

	cols := defaultPreviewCols
	if s := r.URL.Query().Get("cols"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 {
			respondError(w, http.StatusBadRequest, "Invalid cols")
			return
		}
		cols = n
	}

	text, err := h.mapService.Preview(seed, cols)
	if err != nil {
		h.generationFailed(w, seed, err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(text)); err != nil {
		h.logger.Error("writing preview", "seed", seed, "error", err)
	}
}
