package generation

// RNG is the seeded generator every stochastic step draws from. It is a small
// LCG so that a seed reproduces the same map on any platform.
type RNG struct {
	state int64
}

// NewRNG creates a new RNG with the given seed; negative seeds use their magnitude
func NewRNG(seed int64) *RNG {
	state := seed % rngModulus
	if state < 0 {
		state = -state
	}
	return &RNG{state: state}
}

const (
	rngMultiplier = 9301
	rngIncrement  = 49297
	rngModulus    = 233280
)

// Next returns the next value in [0, 1)
func (r *RNG) Next() float64 {
	r.state = (r.state*rngMultiplier + rngIncrement) % rngModulus
	return float64(r.state) / rngModulus
}

// Range returns min + span*Next()
func (r *RNG) Range(min, span float64) float64 {
	return min + span*r.Next()
}
