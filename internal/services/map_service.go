package services

import (
	"fmt"
	"log/slog"
	"math"

	"arenagen.dev/internal/config"
	"arenagen.dev/internal/generation"
	"arenagen.dev/internal/models"
	"arenagen.dev/internal/preview"
)

// MapService generates maps on demand. Nothing is cached; every call runs a
// fresh generation with its own source, so calls may run concurrently.
type MapService struct {
	cfg    *config.Config
	logger *slog.Logger
}

// NewMapService creates a new MapService
func NewMapService(cfg *config.Config, logger *slog.Logger) *MapService {
	return &MapService{cfg: cfg, logger: logger}
}

// Generate produces the full map for seed
func (s *MapService) Generate(seed int64) (*generation.MapDefinition, error) {
	gen, err := generation.NewGenerator(s.cfg, seed, s.logger)
	if err != nil {
		return nil, err
	}
	m, err := gen.Generate()
	if err != nil {
		return nil, fmt.Errorf("generating map %d: %w", seed, err)
	}
	return m, nil
}

// Summary generates the map for seed and describes it
func (s *MapService) Summary(seed int64) (*models.MapSummary, error) {
	m, err := s.Generate(seed)
	if err != nil {
		return nil, err
	}
	return Summarize(m), nil
}

// Preview generates the map for seed and renders it as text about cols wide
func (s *MapService) Preview(seed int64, cols int) (string, error) {
	m, err := s.Generate(seed)
	if err != nil {
		return "", err
	}
	return preview.Render(m, s.cfg.Tiles, cols).String(), nil
}

// Summarize builds the summary of a generated map
func Summarize(m *generation.MapDefinition) *models.MapSummary {
	summary := &models.MapSummary{
		Seed:      m.Seed,
		Boundary:  [2]float64{m.Boundary.RadiusX, m.Boundary.RadiusY},
		Polylines: len(m.Polylines),
		Walls: models.WallSummary{
			Vertices:    m.Stats.WallVertices,
			OuterLength: m.Stats.OuterLength,
			OuterPieces: m.Stats.WallPieces,
		},
		Roads: models.RoadSummary{
			Runs:     m.Stats.RoadRuns,
			Nodes:    m.Stats.RoadNodes,
			MaxDepth: m.Stats.MaxRoadDepth,
		},
		Terrain: models.TerrainStats{
			RoadTiles:  m.Stats.RoadTiles,
			TotalTiles: m.Stats.TotalTiles,
		},
	}
	if m.Stats.TotalTiles > 0 {
		summary.Terrain.RoadShare = float64(m.Stats.RoadTiles) / float64(m.Stats.TotalTiles)
	}

	for _, o := range m.Openings {
		summary.Walls.Openings = append(summary.Walls.Openings, models.Opening{
			Wall:     o.Wall,
			Position: models.Position{X: o.Position.X, Y: o.Position.Y},
			Width:    o.Width,
		})
	}
	for _, d := range m.Dividers {
		summary.Walls.DividerLengths = append(summary.Walls.DividerLengths, d.Length())
	}
	if m.Roads != nil {
		for _, n := range m.Roads.Nodes {
			summary.Roads.Length += n.Traveled
		}
	}

	for _, z := range m.Zones {
		summary.Zones = append(summary.Zones, models.ZoneSummary{
			Index:    z.Index,
			Area:     z.Area,
			Vertices: len(z.Loop),
			Bounds:   boundsOf(z.Loop),
		})
	}
	return summary
}

func boundsOf(p generation.Path) models.Bounds {
	b := models.Bounds{MinX: math.Inf(1), MaxX: math.Inf(-1), MinY: math.Inf(1), MaxY: math.Inf(-1)}
	if len(p) == 0 {
		return models.Bounds{}
	}
	for _, v := range p {
		b.MinX = math.Min(b.MinX, v.X)
		b.MaxX = math.Max(b.MaxX, v.X)
		b.MinY = math.Min(b.MinY, v.Y)
		b.MaxY = math.Max(b.MaxY, v.Y)
	}
	return b
}
