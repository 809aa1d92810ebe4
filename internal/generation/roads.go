package generation

import (
	"math"

	"arenagen.dev/internal/config"
)

// RoadNode is one unbranched stretch of road. Nodes live in a RoadNetwork
// arena and refer to their parent by index.
type RoadNode struct {
	Parent     int       `json:"parent"`
	Depth      int       `json:"depth"`
	Start      Vec2      `json:"start"`
	Heading    float64   `json:"heading"`
	StartAngle float64   `json:"start_angle"`
	EndAngle   float64   `json:"end_angle"`
	Width      float64   `json:"width"`
	Budget     float64   `json:"budget"`
	Traveled   float64   `json:"traveled"`
	Points     Path      `json:"points"`
	Thickness  []float64 `json:"thickness"`
	Children   []int     `json:"children,omitempty"`
}

// Spread returns the signed angular range the node may fork into
func (n *RoadNode) Spread() float64 {
	return AngleBetween(n.StartAngle, n.EndAngle)
}

// RoadNetwork is a flat arena of road nodes forming a forest
type RoadNetwork struct {
	Nodes []RoadNode `json:"nodes"`
	Roots []int      `json:"roots"`
}

func (rn *RoadNetwork) add(n RoadNode) int {
	rn.Nodes = append(rn.Nodes, n)
	return len(rn.Nodes) - 1
}

// AddRoot stores a created node as a new tree root
func (rn *RoadNetwork) AddRoot(n RoadNode) int {
	n.Parent = -1
	n.Depth = 0
	idx := rn.add(n)
	rn.Roots = append(rn.Roots, idx)
	return idx
}

// MaxDepth returns the depth of the deepest node
func (rn *RoadNetwork) MaxDepth() int {
	depth := 0
	for _, n := range rn.Nodes {
		depth = max(depth, n.Depth)
	}
	return depth
}

// RoadGrower creates and extends road trees
type RoadGrower struct {
	src      *Source
	terrain  *Terrain
	boundary Boundary
	cfg      config.RoadConfig
	tileH    float64

	curviness   float64
	convergence float64
	noiseOffset float64
}

// NewRoadGrower creates a road grower. Roads bend with the same noise rule as walls.
func NewRoadGrower(src *Source, terrain *Terrain, boundary Boundary, cfg *config.Config) *RoadGrower {
	return &RoadGrower{
		src:         src,
		terrain:     terrain,
		boundary:    boundary,
		cfg:         cfg.Roads,
		tileH:       cfg.Tiles.Height,
		curviness:   radians(cfg.Walls.CurvinessDeg),
		convergence: cfg.Walls.Convergence,
		noiseOffset: cfg.Walls.NoiseOffset,
	}
}

// Create builds an unextended node at approx. The heading follows whatever
// road tiles lie just outside the boundary within the probe cone around the
// outward normal, clamped around the centre of [startAngle, endAngle]. The
// node keeps the width of that range, recentred on the chosen heading.
func (g *RoadGrower) Create(approx Vec2, startAngle, endAngle, thickness float64) RoadNode {
	edge, _ := g.boundary.Nearest(approx)
	spread := AngleBetween(startAngle, endAngle)
	center := startAngle + spread/2
	outward := g.boundary.Normal(edge).Angle()
	cone := radians(g.cfg.ProbeConeDeg)

	var sum Vec2
	matched := 0
	for i := 0; i < g.cfg.ProbeDirections; i++ {
		angle := float64(i) / float64(g.cfg.ProbeDirections) * 2 * math.Pi
		if math.Abs(AngleBetween(angle, outward)) > cone {
			continue
		}
		dir := FromAngle(angle)
		near := edge.Add(dir.Mul(thickness))
		if g.boundary.Contains(near) {
			continue
		}
		far := edge.Add(dir.Mul(thickness + 2*g.tileH))
		if g.terrain.IsRoad(near) || g.terrain.IsRoad(far) {
			sum = sum.Add(dir)
			matched++
		}
	}

	heading := center
	if matched > 0 && sum.Len() > geomEpsilon {
		heading = sum.Angle()
	}
	clamp := radians(g.cfg.HeadingClampDeg)
	if d := AngleBetween(center, heading); math.Abs(d) > clamp {
		heading = center + math.Copysign(clamp, d)
	}

	return RoadNode{
		Parent:     -1,
		Start:      approx,
		Heading:    heading,
		StartAngle: heading - spread/2,
		EndAngle:   heading + spread/2,
		Width:      thickness,
	}
}

// Grow creates a root at approx and extends it by length
func (g *RoadGrower) Grow(rn *RoadNetwork, approx Vec2, startAngle, endAngle, thickness, length float64) int {
	root := rn.AddRoot(g.Create(approx, startAngle, endAngle, thickness))
	g.Extend(rn, root, length)
	return root
}

type roadJob struct {
	node   int
	budget float64
}

// Extend grows the node at idx and every branch it forks into. Branches are
// handled on a LIFO worklist so the first child, with all its descendants,
// finishes before the second one starts.
func (g *RoadGrower) Extend(rn *RoadNetwork, idx int, length float64) {
	stack := []roadJob{{idx, length}}
	for len(stack) > 0 {
		job := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		children := g.extendNode(rn, job.node, job.budget)
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, children[i])
		}
	}
}

// extendNode walks one node until its budget runs out or it forks
func (g *RoadGrower) extendNode(rn *RoadNetwork, idx int, budget float64) []roadJob {
	node := rn.Nodes[idx]
	snap := radians(g.cfg.HeadingSnapDeg)

	heading := node.Heading
	width := node.Width
	p := node.Start
	points := Path{p}
	widths := []float64{width}
	traveled := 0.0
	split := 0.0

	var forks []roadJob
	for traveled < budget {
		step := g.src.Range(g.cfg.MinStep, g.cfg.StepJitter)
		dir := FromAngle(RoundToInterval(heading, snap))

		if traveled+step >= budget {
			if rest := budget - traveled; rest > pointTolerance {
				p = p.Add(dir.Mul(rest))
				points = append(points, p)
				widths = append(widths, width)
			}
			traveled = budget
			break
		}

		p = p.Add(dir.Mul(step))
		traveled += step
		points = append(points, p)
		widths = append(widths, width)

		split += math.Max(math.Sqrt(width)-12, 0) / 18 * g.src.Next()
		if split > 1 {
			forks = g.fork(rn, idx, node, p, heading, width, budget-traveled)
			break
		}

		heading += g.src.NoiseAt(p, -g.noiseOffset, -g.noiseOffset, 1) * g.curviness
		heading += AngleBetween(heading, node.Heading) * g.convergence

		q1 := (g.src.NoiseAt(p, 4532, 7546, 10) + 1) / 2
		q2 := (g.src.NoiseAt(p, 85623, 68572, 10) + 1) / 2
		width *= q1*q2*2 + 0.2
		width = math.Max(width, g.cfg.MinThickness)
		width += (node.Width - width) / 2 * g.src.Next()
		width = math.Max(width, g.cfg.MinThickness)
	}

	n := &rn.Nodes[idx]
	n.Points = points
	n.Thickness = widths
	n.Traveled = traveled
	n.Budget = budget
	return forks
}

// fork creates the two children of parent at p, offset to either side by a
// quarter of the road width, each taking a random share of the parent's spread.
func (g *RoadGrower) fork(rn *RoadNetwork, idx int, parent RoadNode, p Vec2, heading, width, remaining float64) []roadJob {
	side := FromAngle(heading + math.Pi/2).Mul(width / 4)
	spread := parent.Spread()
	childWidth := width / g.cfg.BranchShrink

	left := g.Create(p.Sub(side), heading-spread*g.src.Range(0.6, 0.5), heading, childWidth)
	right := g.Create(p.Add(side), heading, heading+spread*g.src.Range(0.6, 0.5), childWidth)

	jobs := make([]roadJob, 0, 2)
	for _, child := range []RoadNode{left, right} {
		child.Parent = idx
		child.Depth = parent.Depth + 1
		c := rn.add(child)
		rn.Nodes[idx].Children = append(rn.Nodes[idx].Children, c)
		jobs = append(jobs, roadJob{node: c, budget: remaining})
	}
	return jobs
}
