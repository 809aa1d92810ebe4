package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"arenagen.dev/internal/config"
	"arenagen.dev/internal/models"
)

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Grid = config.GridConfig{Width: 40, Height: 40}
	return cfg
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHealth(t *testing.T) {
	rec := get(t, SetupRoutes(testConfig(), nil), "/api/health")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if body["status"] != "ok" {
		t.Fatalf("status field = %q, want %q", body["status"], "ok")
	}
}

func TestBadRequests(t *testing.T) {
	h := SetupRoutes(testConfig(), nil)
	tests := map[string]string{
		"non numeric seed":  "/api/maps/abc",
		"summary bad seed":  "/api/maps/4x2/summary",
		"preview bad seed":  "/api/maps/1.5/preview",
		"preview zero cols": "/api/maps/42/preview?cols=0",
		"preview text cols": "/api/maps/42/preview?cols=wide",
	}

	for name, target := range tests {
		t.Run(name, func(t *testing.T) {
			rec := get(t, h, target)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("GET %s status = %d, want %d", target, rec.Code, http.StatusBadRequest)
			}
			if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
				t.Fatalf("Content-Type = %q, want application/json", ct)
			}
		})
	}
}

func TestGetMap(t *testing.T) {
	rec := get(t, SetupRoutes(testConfig(), nil), "/api/maps/42")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusOK, rec.Body.String())
	}

	var body struct {
		Seed  int64             `json:"seed"`
		Zones []json.RawMessage `json:"zones"`
		Tiles struct {
			Rows []string `json:"rows"`
		} `json:"tiles"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if body.Seed != 42 || len(body.Zones) != 3 || len(body.Tiles.Rows) != 41 {
		t.Fatalf("map = seed %d, %d zones, %d rows; want 42, 3, 41", body.Seed, len(body.Zones), len(body.Tiles.Rows))
	}
}

func TestGetSummary(t *testing.T) {
	rec := get(t, SetupRoutes(testConfig(), nil), "/api/maps/42/summary")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusOK, rec.Body.String())
	}

	var summary models.MapSummary
	if err := json.NewDecoder(rec.Body).Decode(&summary); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if summary.Seed != 42 || len(summary.Zones) != 3 || len(summary.Walls.DividerLengths) != 3 {
		t.Fatalf("summary = %+v", summary)
	}
}

func TestGetPreview(t *testing.T) {
	rec := get(t, SetupRoutes(testConfig(), nil), "/api/maps/42/preview?cols=20")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusOK, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Fatalf("Content-Type = %q, want text/plain", ct)
	}

	rows := strings.Split(strings.TrimSuffix(rec.Body.String(), "\n"), "\n")
	// 41 tiles at 3 tiles per cell
	if len(rows) != 14 || len([]rune(rows[0])) != 14 {
		t.Fatalf("preview is %d rows of %d, want 14 of 14", len(rows), len([]rune(rows[0])))
	}
}

func TestGenerationFailureIsUnprocessable(t *testing.T) {
	cfg := testConfig()
	cfg.Noise.Backend = "worley"

	rec := get(t, SetupRoutes(cfg, nil), "/api/maps/42/summary")
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnprocessableEntity)
	}
	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if !strings.Contains(body["error"], "worley") {
		t.Fatalf("error = %q, want it to name the backend", body["error"])
	}
}
