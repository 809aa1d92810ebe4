package generation

import (
	"arenagen.dev/internal/config"
)

// Source carries the randomness of one generation run. It is created per run
// and handed to every component, so two runs never share state.
type Source struct {
	rng      *RNG
	field    NoiseField
	detail   float64
	yStretch float64
}

// NewSource creates a source for seed using the configured noise backend
func NewSource(seed int64, nc config.NoiseConfig) (*Source, error) {
	field, err := NewNoiseField(nc.Backend)
	if err != nil {
		return nil, err
	}
	return &Source{
		rng:      NewRNG(seed),
		field:    field,
		detail:   nc.Detail,
		yStretch: nc.YStretch,
	}, nil
}

// Next draws from the run's PRNG
func (s *Source) Next() float64 {
	return s.rng.Next()
}

// Range draws min + span*Next()
func (s *Source) Range(min, span float64) float64 {
	return s.rng.Range(min, span)
}

// Reseed seeds the noise field from one PRNG draw
func (s *Source) Reseed() {
	s.field.Seed(s.rng.Next())
}

// Noise samples the field at world position (x, y). Larger scales give
// smoother noise; y is stretched to correct for the map's aspect.
func (s *Source) Noise(x, y, scale float64) float64 {
	f := s.detail / scale
	return s.field.Noise2(x*f, y*f/s.yStretch)
}

// NoiseAt samples the field at p offset by (dx, dy)
func (s *Source) NoiseAt(p Vec2, dx, dy, scale float64) float64 {
	return s.Noise(p.X+dx, p.Y+dy, scale)
}
