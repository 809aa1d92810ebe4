package generation

import (
	"math"
	"reflect"
	"testing"

	"arenagen.dev/internal/config"
)

func newTestRoadGrower(t *testing.T, seed int64) (*RoadGrower, *config.Config) {
	t.Helper()
	cfg := config.Default()
	src := newTestSource(t, seed)
	b := Boundary{RadiusX: cfg.Boundary.RadiusX, RadiusY: cfg.Boundary.RadiusY}
	return NewRoadGrower(src, NewTerrain(src, cfg.Terrain, cfg.Tiles), b, cfg), cfg
}

func growTestNetwork(t *testing.T, seed int64, width, length float64) (*RoadNetwork, *config.Config) {
	t.Helper()
	g, cfg := newTestRoadGrower(t, seed)
	rn := &RoadNetwork{}
	for _, angle := range []float64{0.4, 2.2, 4.1} {
		mouth := g.boundary.PointAt(angle)
		heading := g.boundary.Normal(mouth).Angle()
		g.Grow(rn, mouth, heading-math.Pi/4, heading+math.Pi/4, width, length)
	}
	return rn, cfg
}

func TestRoadCreateClampsHeading(t *testing.T) {
	g, cfg := newTestRoadGrower(t, 42)
	clamp := radians(cfg.Roads.HeadingClampDeg)

	for i := 0; i < 48; i++ {
		angle := float64(i) / 48 * 2 * math.Pi
		approx := g.boundary.PointAt(angle)
		outward := g.boundary.Normal(approx).Angle()
		start, end := outward-0.6, outward+0.9

		n := g.Create(approx, start, end, 150)
		center := start + AngleBetween(start, end)/2
		if d := math.Abs(AngleBetween(center, n.Heading)); d > clamp+1e-9 {
			t.Fatalf("angle %v: heading %v is %v from centre, want at most %v", angle, n.Heading, d, clamp)
		}
		if !almostEqual(n.Spread(), 1.5, 1e-9) {
			t.Fatalf("angle %v: Spread() = %v, want 1.5", angle, n.Spread())
		}
		if !almostEqual(AngleBetween(n.StartAngle, n.Heading), 0.75, 1e-9) {
			t.Fatalf("angle %v: range not centred on heading", angle)
		}
		if n.Start != approx || n.Width != 150 || n.Parent != -1 {
			t.Fatalf("angle %v: node = %+v", angle, n)
		}
	}
}

func TestRoadNetworkStructure(t *testing.T) {
	const length = 9000
	rn, cfg := growTestNetwork(t, 42, 400, length)

	if len(rn.Roots) != 3 {
		t.Fatalf("len(Roots) = %d, want 3", len(rn.Roots))
	}
	for _, r := range rn.Roots {
		if n := rn.Nodes[r]; n.Parent != -1 || n.Depth != 0 || n.Budget != length {
			t.Fatalf("root %d = parent %d depth %d budget %v", r, n.Parent, n.Depth, n.Budget)
		}
	}

	for i, n := range rn.Nodes {
		if n.Parent >= i {
			t.Fatalf("node %d has parent %d, want an earlier node", i, n.Parent)
		}
		if n.Traveled > n.Budget+1e-9 {
			t.Fatalf("node %d travelled %v past its budget %v", i, n.Traveled, n.Budget)
		}
		if !almostEqual(n.Points.Length(), n.Traveled, 1e-6) {
			t.Fatalf("node %d length %v, traveled %v", i, n.Points.Length(), n.Traveled)
		}
		if len(n.Thickness) != len(n.Points) {
			t.Fatalf("node %d has %d widths for %d points", i, len(n.Thickness), len(n.Points))
		}
		for j, w := range n.Thickness {
			if w < cfg.Roads.MinThickness {
				t.Fatalf("node %d width %d = %v, below %v", i, j, w, cfg.Roads.MinThickness)
			}
		}

		if len(n.Children) == 0 {
			if !almostEqual(n.Traveled, n.Budget, 1e-9) {
				t.Fatalf("leaf %d stopped at %v of %v", i, n.Traveled, n.Budget)
			}
			continue
		}
		if len(n.Children) != 2 {
			t.Fatalf("node %d has %d children, want 2", i, len(n.Children))
		}
		for _, c := range n.Children {
			child := rn.Nodes[c]
			if child.Parent != i || child.Depth != n.Depth+1 {
				t.Fatalf("child %d of %d has parent %d depth %d", c, i, child.Parent, child.Depth)
			}
			if !almostEqual(n.Traveled+child.Budget, n.Budget, 1e-6) {
				t.Fatalf("child %d budget %v does not continue parent %d (%v of %v)", c, child.Budget, i, n.Traveled, n.Budget)
			}
			if child.Width >= n.Thickness[len(n.Thickness)-1] {
				t.Fatalf("child %d width %v not narrower than its parent", c, child.Width)
			}
		}
	}
}

func TestRoadNetworkBranches(t *testing.T) {
	rn, _ := growTestNetwork(t, 42, 400, 18000)
	if rn.MaxDepth() == 0 {
		t.Fatalf("wide roads never forked across %d nodes", len(rn.Nodes))
	}
}

func TestRoadNetworkDeterministic(t *testing.T) {
	a, _ := growTestNetwork(t, 1234, 300, 12000)
	b, _ := growTestNetwork(t, 1234, 300, 12000)
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("networks grown from the same seed differ")
	}
}
