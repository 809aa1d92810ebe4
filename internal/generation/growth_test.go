package generation

import (
	"errors"
	"math"
	"testing"

	"arenagen.dev/internal/config"
)

func newTestGrower(t *testing.T, seed int64) (*Grower, config.WallConfig) {
	t.Helper()
	cfg := config.Default()
	b := Boundary{RadiusX: cfg.Boundary.RadiusX, RadiusY: cfg.Boundary.RadiusY}
	return NewGrower(newTestSource(t, seed), b, cfg.Walls), cfg.Walls
}

func onInterval(angle, interval float64) bool {
	k := angle / interval
	return math.Abs(k-math.Round(k)) < 1e-6
}

func TestGrowReachesLength(t *testing.T) {
	tests := map[string]struct {
		seed   int64
		length float64
		angle  float64
	}{
		"east":       {seed: 1, length: 5000, angle: 0},
		"north west": {seed: 2, length: 12000, angle: 2.3},
		"south":      {seed: 3, length: 800, angle: -math.Pi / 2},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			g, wc := newTestGrower(t, tc.seed)
			p := g.Grow(GrowSpec{Length: tc.length, StartAngle: tc.angle, DesiredAngle: tc.angle, DesiredStrength: wc.Convergence})

			if err := p.Validate(); err != nil {
				t.Fatalf("grown path invalid: %v", err)
			}
			l := p.Length()
			if l < tc.length || l >= tc.length+wc.MinStep+wc.StepJitter {
				t.Fatalf("Length() = %v, want within [%v, %v)", l, tc.length, tc.length+wc.MinStep+wc.StepJitter)
			}

			start := g.boundary.PointAt(tc.angle)
			if d := p.First().Dist(start); d > wc.StartInset+1e-9 {
				t.Fatalf("start is %v from the boundary point, want at most %v", d, wc.StartInset)
			}

			snap := radians(wc.HeadingSnapDeg)
			for i := 1; i < len(p); i++ {
				if a := p[i].Sub(p[i-1]).Angle(); !onInterval(a, snap) {
					t.Fatalf("edge %d heading %v is not a multiple of %v", i-1, a, snap)
				}
			}
		})
	}
}

func TestGrowDeterministic(t *testing.T) {
	spec := GrowSpec{Length: 6000, StartAngle: 1, DesiredAngle: 1, DesiredStrength: 0.02}
	a, _ := newTestGrower(t, 77)
	b, _ := newTestGrower(t, 77)
	pa := a.Grow(spec)
	pb := b.Grow(spec)
	if len(pa) != len(pb) {
		t.Fatalf("vertex counts differ: %d and %d", len(pa), len(pb))
	}
	for i := range pa {
		if pa[i] != pb[i] {
			t.Fatalf("vertex %d differs: %v and %v", i, pa[i], pb[i])
		}
	}
}

func TestGrowKeepsClearOfAvoid(t *testing.T) {
	g, wc := newTestGrower(t, 5)
	avoid := Path{{5000, -20000}, {5000, 20000}}
	p := g.Grow(GrowSpec{Length: 3000, StartAngle: 0, DesiredAngle: 0, DesiredStrength: wc.Convergence, Avoid: avoid})

	for i := 1; i < len(p); i++ {
		if _, d, _ := avoid.NearestPoint(p[i]); d < wc.AvoidClearance-1e-6 {
			t.Fatalf("vertex %d is %v from the avoided path, want at least %v", i, d, wc.AvoidClearance)
		}
	}
}

func TestConnectEndpointsExact(t *testing.T) {
	tests := map[string]struct {
		a, ta, b, tb Vec2
	}{
		"straight":      {a: Vec2{0, 0}, ta: Vec2{}, b: Vec2{5000, 0}, tb: Vec2{}},
		"bent":          {a: Vec2{-300, 20}, ta: Vec2{1000, 1000}, b: Vec2{4000, -900}, tb: Vec2{0, 3000}},
		"short chord":   {a: Vec2{1, 1}, ta: Vec2{1, 0}, b: Vec2{2, 1}, tb: Vec2{1, 0}},
		"long tangents": {a: Vec2{0, 0}, ta: Vec2{0, 9000}, b: Vec2{9000, 0}, tb: Vec2{9000, 0}},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			p, err := Connect(tc.a, tc.ta, tc.b, tc.tb)
			if err != nil {
				t.Fatalf("Connect returned error: %v", err)
			}
			if p.First() != tc.a || p.Last() != tc.b {
				t.Fatalf("endpoints = %v, %v; want %v, %v", p.First(), p.Last(), tc.a, tc.b)
			}
			if len(p) > segmentCount(tc.a.Dist(tc.b))+1 {
				t.Fatalf("len = %d, want at most %d", len(p), segmentCount(tc.a.Dist(tc.b))+1)
			}
		})
	}
}

func TestConnectZeroTangentsIsStraight(t *testing.T) {
	a, b := Vec2{0, 0}, Vec2{3000, 4000}
	p, err := Connect(a, Vec2{}, b, Vec2{})
	if err != nil {
		t.Fatalf("Connect returned error: %v", err)
	}
	for i, v := range p {
		if _, d, _ := (Path{a, b}).NearestPoint(v); d > 1e-6 {
			t.Fatalf("vertex %d %v is %v off the chord", i, v, d)
		}
	}
}

func TestConnectDegenerate(t *testing.T) {
	if _, err := Connect(Vec2{3, 3}, Vec2{1, 0}, Vec2{3, 3}, Vec2{0, 1}); !errors.Is(err, ErrDegenerateGeometry) {
		t.Fatalf("Connect = %v, want ErrDegenerateGeometry", err)
	}
	if _, err := ConnectLinear(Vec2{3, 3}, Vec2{3, 3}); !errors.Is(err, ErrDegenerateGeometry) {
		t.Fatalf("ConnectLinear = %v, want ErrDegenerateGeometry", err)
	}
}

func TestConnectLinearEvenSpacing(t *testing.T) {
	a, b := Vec2{0, 0}, Vec2{1000, 0}
	p, err := ConnectLinear(a, b)
	if err != nil {
		t.Fatalf("ConnectLinear returned error: %v", err)
	}
	n := segmentCount(1000)
	if len(p) != n+1 {
		t.Fatalf("len = %d, want %d", len(p), n+1)
	}
	if p.First() != a || p.Last() != b {
		t.Fatalf("endpoints = %v, %v; want %v, %v", p.First(), p.Last(), a, b)
	}
	want := 1000 / float64(n)
	for i := 1; i < len(p); i++ {
		if d := p[i].Dist(p[i-1]); !almostEqual(d, want, 1e-9) {
			t.Fatalf("edge %d length = %v, want %v", i-1, d, want)
		}
	}
}

func TestSegmentCount(t *testing.T) {
	tests := map[string]struct {
		chord float64
		want  int
	}{
		"tiny":  {chord: 1, want: 1},
		"short": {chord: 60, want: 1},
		"1000":  {chord: 1000, want: 6},
		"long":  {chord: 20000, want: 42},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			if got := segmentCount(tc.chord); got != tc.want {
				t.Fatalf("segmentCount(%v) = %d, want %d", tc.chord, got, tc.want)
			}
		})
	}
}
