package generation

import (
	"fmt"
	"math"

	"arenagen.dev/internal/config"
)

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// segmentCount is the vertex density law shared by every connector: longer
// chords get more, but proportionally fewer, segments.
func segmentCount(chord float64) int {
	return max(1, int(math.Ceil(math.Pow(chord, 0.65)/15)))
}

// Grower grows wall centrelines outward from the boundary
type Grower struct {
	src      *Source
	boundary Boundary
	cfg      config.WallConfig
}

// NewGrower creates a grower drawing from src
func NewGrower(src *Source, boundary Boundary, cfg config.WallConfig) *Grower {
	return &Grower{src: src, boundary: boundary, cfg: cfg}
}

// GrowSpec describes one wall to grow
type GrowSpec struct {
	Length          float64
	StartAngle      float64
	DesiredAngle    float64
	DesiredStrength float64
	// Avoid, when set, is a path the wall keeps clear of with a clearance that
	// widens every step.
	Avoid Path
}

// Grow performs the noise-steered random walk. Each step takes exactly one
// noise sample followed by one PRNG draw.
func (g *Grower) Grow(spec GrowSpec) Path {
	heading := spec.StartAngle
	outward := FromAngle(spec.StartAngle)
	p := g.boundary.PointAt(spec.StartAngle).Sub(outward.Mul(g.src.Next() * g.cfg.StartInset))

	curviness := radians(g.cfg.CurvinessDeg)
	snap := radians(g.cfg.HeadingSnapDeg)
	clearance := g.cfg.AvoidClearance
	avoid := len(spec.Avoid) >= 2

	path := Path{p}
	grown := 0.0
	for grown < spec.Length {
		heading += g.src.NoiseAt(p, -g.cfg.NoiseOffset, -g.cfg.NoiseOffset, 1) * curviness
		heading += AngleBetween(heading, spec.DesiredAngle) * spec.DesiredStrength

		step := g.src.Range(g.cfg.MinStep, g.cfg.StepJitter)
		placed := RoundToInterval(heading, snap)
		next := p.Add(FromAngle(placed).Mul(step))

		if avoid {
			next = keepClear(next, FromAngle(placed).Perp(), spec.Avoid, clearance)
			clearance += g.cfg.AvoidClearanceStep
		}
		if samePoint(next, p) {
			continue
		}

		grown += next.Dist(p)
		path = append(path, next)
		p = next
	}
	return path
}

// keepClear pushes p straight away from the nearest point of avoid until it is
// at least clearance from it. fallback is used when p lies exactly on avoid.
func keepClear(p, fallback Vec2, avoid Path, clearance float64) Vec2 {
	nearest, dist, _ := avoid.NearestPoint(p)
	if dist >= clearance {
		return p
	}
	away := p.Sub(nearest).Normalize()
	if away == (Vec2{}) {
		away = fallback
	}
	return p.Add(away.Mul(clearance - dist))
}

// Connect joins a to b with a cubic Hermite curve leaving a along ta and
// arriving at b along -tb, so tb is the direction pointing away from b.
func Connect(a, ta, b, tb Vec2) (Path, error) {
	chord := a.Dist(b)
	if chord <= pointTolerance {
		return nil, fmt.Errorf("connect coincident endpoints: %w", ErrDegenerateGeometry)
	}

	n := segmentCount(chord)
	arrive := tb.Mul(-1)
	out := make(Path, 0, n+1)
	out = append(out, a)
	for i := 1; i < n; i++ {
		t := float64(i) / float64(n)
		t2 := t * t
		t3 := t2 * t
		h00 := 2*t3 - 3*t2 + 1
		h10 := t3 - 2*t2 + t
		h01 := -2*t3 + 3*t2
		h11 := t3 - t2
		out = append(out, a.Mul(h00).Add(ta.Mul(h10)).Add(b.Mul(h01)).Add(arrive.Mul(h11)))
	}
	out = append(out, b)
	return out.Compact(), nil
}

// ConnectLinear joins a to b with a straight line at the connector vertex density
func ConnectLinear(a, b Vec2) (Path, error) {
	chord := a.Dist(b)
	if chord <= pointTolerance {
		return nil, fmt.Errorf("connect coincident endpoints: %w", ErrDegenerateGeometry)
	}

	n := segmentCount(chord)
	out := make(Path, 0, n+1)
	out = append(out, a)
	for i := 1; i < n; i++ {
		out = append(out, a.Lerp(b, float64(i)/float64(n)))
	}
	out = append(out, b)
	return out, nil
}
