package generation

import (
	"fmt"
	"log/slog"
	"math"
	"sort"

	"arenagen.dev/internal/config"
	"arenagen.dev/internal/logging"
)

// Generator produces one arena map from configuration and a seed
type Generator struct {
	cfg    *config.Config
	seed   int64
	logger *slog.Logger

	src       *Source
	boundary  Boundary
	terrain   *Terrain
	walls     *Grower
	thickener *Thickener
	roads     *RoadGrower

	tiles      *TileGrid
	dividers   []divider
	backWalls  []Path
	zones      []Zone
	outer      Path
	outerWalls []Path
	openings   []Opening
	runs       []roadRun
	network    *RoadNetwork
}

// divider is one of the three walls that separate the zones
type divider struct {
	angle  float64
	centre Path
	sides  Offset
	pieces []Path
}

// outward is the unit direction of the divider's last edge
func (d divider) outward() Vec2 {
	n := len(d.centre)
	return d.centre[n-1].Sub(d.centre[n-2]).Normalize()
}

// roadRun is a contiguous stretch of road samples around the boundary.
// start is a sample index and may wrap past the last sample.
type roadRun struct {
	start, count int
}

// NewGenerator creates a generator; a nil logger discards output
func NewGenerator(cfg *config.Config, seed int64, logger *slog.Logger) (*Generator, error) {
	src, err := NewSource(seed, cfg.Noise)
	if err != nil {
		return nil, fmt.Errorf("creating noise source: %w", err)
	}
	if logger == nil {
		logger = logging.Discard()
	}

	boundary := Boundary{RadiusX: cfg.Boundary.RadiusX, RadiusY: cfg.Boundary.RadiusY}
	terrain := NewTerrain(src, cfg.Terrain, cfg.Tiles)
	return &Generator{
		cfg:       cfg,
		seed:      seed,
		logger:    logger.With("seed", seed),
		src:       src,
		boundary:  boundary,
		terrain:   terrain,
		walls:     NewGrower(src, boundary, cfg.Walls),
		thickener: NewThickener(src, cfg.Walls.MinThickness),
		roads:     NewRoadGrower(src, terrain, boundary, cfg),
	}, nil
}

// Generate produces the map definition. Any degenerate geometry aborts the
// whole run; retrying with another seed is the caller's call.
func (g *Generator) Generate() (*MapDefinition, error) {
	// 1. Seed the noise field
	g.src.Reseed()

	// 2. Classify terrain tiles
	g.tiles = g.terrain.BuildTileGrid(g.cfg.Grid)
	g.logger.Debug("terrain classified", "road_tiles", g.tiles.RoadCount())

	// 3. Grow the dividing walls
	g.growDividers()
	if err := g.checkTipOrder(); err != nil {
		return nil, fmt.Errorf("ordering dividers: %w", err)
	}

	// 4. Give them thickness
	if err := g.thickenDividers(); err != nil {
		return nil, fmt.Errorf("thickening dividers: %w", err)
	}

	// 5. Seal each zone with a back wall between neighbouring tips
	if err := g.connectBackWalls(); err != nil {
		return nil, fmt.Errorf("connecting back walls: %w", err)
	}

	// 6. Close the zone loops
	if err := g.buildZones(); err != nil {
		return nil, fmt.Errorf("building zones: %w", err)
	}

	// 7. Close the outer loop around everything
	if err := g.buildOuterLoop(); err != nil {
		return nil, fmt.Errorf("building outer loop: %w", err)
	}

	// 8. Grow roads out of the boundary wherever gravel reaches it
	g.growRoads()

	// 9. Open every wall where a road runs through it
	if err := g.carveOpenings(); err != nil {
		return nil, fmt.Errorf("carving openings: %w", err)
	}

	// 10. Build output
	m := g.buildOutput()
	g.logger.Info("map generated",
		"zones", len(m.Zones),
		"wall_pieces", m.Stats.WallPieces,
		"openings", m.Stats.Openings,
		"road_runs", m.Stats.RoadRuns,
		"road_nodes", m.Stats.RoadNodes,
		"max_road_depth", m.Stats.MaxRoadDepth)
	return m, nil
}

func (g *Generator) growDividers() {
	wc := g.cfg.Walls
	jitter := radians(wc.AngleJitterDeg)

	// two roughly opposite walls, and a third roughly halfway round the long way
	first := g.src.Next() * 2 * math.Pi
	second := first + math.Pi + g.src.Next()*jitter - jitter/2
	third := first + AngleBetween(first, second)/2 + math.Pi
	third += g.src.Next()*jitter - jitter/2

	var prev Path
	for _, angle := range []float64{first, second, third} {
		length := g.src.Range(wc.MinLength, wc.LengthJitter)
		centre := g.walls.Grow(GrowSpec{
			Length:          length,
			StartAngle:      angle,
			DesiredAngle:    angle,
			DesiredStrength: wc.Convergence,
			Avoid:           prev,
		})
		g.dividers = append(g.dividers, divider{angle: angle, centre: centre})
		prev = centre
		g.logger.Debug("divider grown", "angle", angle, "length", centre.Length(), "vertices", len(centre))
	}

	sort.SliceStable(g.dividers, func(i, j int) bool {
		return NormalizeAngle(g.dividers[i].angle) < NormalizeAngle(g.dividers[j].angle)
	})
}

// checkTipOrder rejects dividers whose tips wind around the origin in a
// different order from their starts. Back walls between such tips wrap around
// the whole layout and the outer loop collapses.
func (g *Generator) checkTipOrder() error {
	turn := 0.0
	for i, d := range g.dividers {
		from := d.centre.Last().Angle()
		to := g.next(i).centre.Last().Angle()
		turn += NormalizeAngle(to - from)
	}
	if math.Abs(turn-2*math.Pi) > 1e-6 {
		return fmt.Errorf("divider tips turn %.2f times around the origin: %w", turn/(2*math.Pi), ErrDegenerateGeometry)
	}
	return nil
}

func (g *Generator) thickenDividers() error {
	wc := g.cfg.Walls
	for i := range g.dividers {
		sides, err := g.thickener.Thicken(g.dividers[i].centre, wc.StartThickness, wc.EndThickness)
		if err != nil {
			return fmt.Errorf("divider %d: %w", i, err)
		}
		g.dividers[i].sides = sides
	}
	return nil
}

// next returns the divider counter-clockwise from divider i
func (g *Generator) next(i int) divider {
	return g.dividers[(i+1)%len(g.dividers)]
}

func (g *Generator) connectBackWalls() error {
	for i, d := range g.dividers {
		n := g.next(i)
		from := d.sides.Left.Last()
		to := n.sides.Right.Last()
		reach := from.Dist(to) * g.cfg.Walls.BackWallTangent

		back, err := Connect(from, d.outward().Mul(reach), to, n.outward().Mul(reach))
		if err != nil {
			return fmt.Errorf("zone %d: %w", i, err)
		}
		g.backWalls = append(g.backWalls, back)
	}
	return nil
}

// simplifyLoop clears self-crossings, snaps edges to the compass and clears
// any crossings the snapping introduced.
func (g *Generator) simplifyLoop(loop Path) (Path, error) {
	rounded, err := RoundToAngle(RemoveLoops(loop), radians(g.cfg.Walls.RoundIntervalDeg))
	if err != nil {
		return nil, err
	}
	return RemoveLoops(rounded), nil
}

// buildZones closes each zone: along the left side of its clockwise divider,
// across its back wall, back down the right side of the next divider and
// around the boundary. Loops start halfway along the boundary arc.
func (g *Generator) buildZones() error {
	for i, d := range g.dividers {
		n := g.next(i)
		left := d.sides.Left
		right := n.sides.Right

		arc, err := g.boundary.Arc(right.First(), left.First(), false)
		if err != nil {
			return fmt.Errorf("zone %d arc: %w", i, err)
		}
		toMid, fromMid := SplitForPath(arc, arc.Length()/2, 0)

		loop, err := JoinWalls(fromMid, left, g.backWalls[i], right.Reverse(), toMid)
		if err != nil {
			return fmt.Errorf("zone %d: %w", i, err)
		}
		loop, err = g.simplifyLoop(loop)
		if err != nil {
			return fmt.Errorf("zone %d: %w", i, err)
		}

		g.zones = append(g.zones, Zone{Index: i, Loop: loop, Area: math.Abs(loop.Area())})
	}
	return nil
}

// buildOuterLoop joins the back walls and the caps across each divider tip into
// one loop, starting halfway along the first back wall.
func (g *Generator) buildOuterLoop() error {
	pieces := make([]Path, 0, 2*len(g.dividers)+1)

	firstBack := g.backWalls[0]
	toMid, fromMid := SplitForPath(firstBack, firstBack.Length()/2, 0)
	pieces = append(pieces, fromMid)

	for k := 1; k <= len(g.dividers); k++ {
		i := k % len(g.dividers)
		d := g.dividers[i]
		tip, err := ConnectLinear(d.sides.Right.Last(), d.sides.Left.Last())
		if err != nil {
			return fmt.Errorf("tip %d: %w", i, err)
		}
		pieces = append(pieces, tip)
		if i != 0 {
			pieces = append(pieces, g.backWalls[i])
		}
	}
	pieces = append(pieces, toMid)

	loop, err := JoinWalls(pieces...)
	if err != nil {
		return err
	}
	if g.outer, err = g.simplifyLoop(loop); err != nil {
		return err
	}

	// simplifying a tangled loop keeps only a stub, leaving back walls behind
	for i, back := range g.backWalls {
		mid, _ := back.PointAtLength(back.Length() / 2)
		if _, d, _ := g.outer.NearestPoint(mid); d > g.backWallTolerance(back) {
			return fmt.Errorf("back wall %d lies %.0f off the outer loop: %w", i, d, ErrDegenerateGeometry)
		}
	}
	return nil
}

// backWallTolerance is how far the simplified outer loop may pull away from
// the middle of a back wall
func (g *Generator) backWallTolerance(back Path) float64 {
	return back.Length()/4 + g.cfg.Walls.GateWidth
}

// carveOpenings cuts a gap into the outer loop and both sides of every
// divider wherever a road crosses them. Each gap is the road's width at the
// crossing plus the gate clearance.
func (g *Generator) carveOpenings() error {
	ri := newRoadIndex(g.network)
	clearance := g.cfg.Walls.GateWidth

	gaps, openings := openingsFor(ri, g.outer, KindOuterWall, -1, clearance)
	pieces, err := carveLoop(g.outer, gaps)
	if err != nil {
		return fmt.Errorf("outer wall: %w", err)
	}
	g.outerWalls = pieces
	g.openings = openings

	for i := range g.dividers {
		d := &g.dividers[i]
		for _, side := range []Path{d.sides.Left, d.sides.Right} {
			gaps, openings := openingsFor(ri, side, KindWall, i, clearance)
			d.pieces = append(d.pieces, carveWall(side, gaps)...)
			g.openings = append(g.openings, openings...)
		}
	}
	g.logger.Debug("openings carved", "openings", len(g.openings), "outer_pieces", len(g.outerWalls))
	return nil
}

// findRoadRuns samples the boundary and groups consecutive road samples.
// The scan starts at the first grass sample so a run is never split across
// the wrap point; with no grass at all the whole ring is one run.
func (g *Generator) findRoadRuns() []roadRun {
	n := g.cfg.Roads.RingSamples
	road := make([]bool, n)
	start := -1
	for i := range road {
		road[i] = g.terrain.IsRoad(g.boundary.PointAt(float64(i) / float64(n) * 2 * math.Pi))
		if !road[i] && start < 0 {
			start = i
		}
	}
	if start < 0 {
		return []roadRun{{start: 0, count: n}}
	}

	var runs []roadRun
	current := roadRun{count: 0}
	for k := 0; k < n; k++ {
		i := (start + k) % n
		if road[i] {
			if current.count == 0 {
				current.start = start + k
			}
			current.count++
			continue
		}
		if current.count > 0 {
			runs = append(runs, current)
			current = roadRun{}
		}
	}
	if current.count > 0 {
		runs = append(runs, current)
	}
	return runs
}

func (g *Generator) growRoads() {
	rc := g.cfg.Roads
	g.runs = g.findRoadRuns()
	g.network = &RoadNetwork{}

	n := float64(rc.RingSamples)
	spread := radians(rc.RootSpreadDeg)
	perimeter := g.boundary.Perimeter()

	for _, run := range g.runs {
		mid := float64(run.start) + float64(run.count-1)/2
		mouth := g.boundary.PointAt(mid / n * 2 * math.Pi)
		heading := g.boundary.Normal(mouth).Angle()

		width := float64(run.count) / n * perimeter * rc.RootWidthScale
		width = math.Max(rc.RootMinWidth, math.Min(rc.RootMaxWidth, width))

		g.roads.Grow(g.network, mouth, heading-spread/2, heading+spread/2, width, rc.Length)
	}
	g.logger.Debug("roads grown", "runs", len(g.runs), "nodes", len(g.network.Nodes))
}

func (g *Generator) buildOutput() *MapDefinition {
	m := &MapDefinition{
		Seed:      g.seed,
		Boundary:  g.boundary,
		Tiles:     g.tiles,
		Zones:     g.zones,
		OuterLoop: g.outer,
		Roads:     g.network,
		Openings:  g.openings,
	}

	for _, z := range g.zones {
		m.Polylines = append(m.Polylines, Polyline{
			Kind:   KindZone,
			Color:  zoneColors[z.Index%len(zoneColors)],
			Alpha:  0.35,
			Closed: true,
			Points: z.Loop,
		})
	}
	for _, d := range g.dividers {
		m.Dividers = append(m.Dividers, d.centre)
		for _, piece := range d.pieces {
			m.Polylines = append(m.Polylines, Polyline{Kind: KindWall, Color: ColorWall, Alpha: 1, Points: piece})
			m.Stats.WallVertices += len(piece)
		}
	}
	for _, piece := range g.outerWalls {
		m.Polylines = append(m.Polylines, Polyline{
			Kind:   KindOuterWall,
			Color:  ColorOuterWall,
			Alpha:  1,
			Closed: piece.Closed(),
			Points: piece,
		})
	}
	for _, node := range g.network.Nodes {
		m.Polylines = append(m.Polylines, Polyline{
			Kind:      KindRoad,
			Color:     ColorRoad,
			Alpha:     1,
			Points:    node.Points,
			Thickness: node.Thickness,
		})
	}

	m.Stats.RoadTiles = g.tiles.RoadCount()
	m.Stats.TotalTiles = g.tiles.Width * g.tiles.Height
	m.Stats.OuterLength = g.outer.Length()
	m.Stats.WallPieces = len(g.outerWalls)
	m.Stats.Openings = len(g.openings)
	m.Stats.RoadRuns = len(g.runs)
	m.Stats.RoadNodes = len(g.network.Nodes)
	m.Stats.MaxRoadDepth = g.network.MaxDepth()
	return m
}
