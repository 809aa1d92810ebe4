package generation

// Colors used when rendering a map
const (
	ColorGravel    uint32 = 0xffffff
	ColorGrass     uint32 = 0x43711d
	ColorSafeZone  uint32 = 0x39a8e7
	ColorWall      uint32 = 0xff0000
	ColorOuterWall uint32 = 0xb00000
	ColorRoad      uint32 = 0xffffbb
)

var zoneColors = []uint32{0xe7a839, 0xa839e7, 0x39e7a8}

// Polyline kinds
const (
	KindZone      = "zone"
	KindWall      = "wall"
	KindOuterWall = "outer_wall"
	KindRoad      = "road"
)

// Polyline is one drawable line of the map with its render hints
type Polyline struct {
	Kind      string    `json:"kind"`
	Color     uint32    `json:"color"`
	Alpha     float64   `json:"alpha"`
	Closed    bool      `json:"closed"`
	Points    Path      `json:"points"`
	Thickness []float64 `json:"thickness,omitempty"`
}

// Zone is one of the three regions between consecutive dividing walls
type Zone struct {
	Index int     `json:"index"`
	Loop  Path    `json:"loop"`
	Area  float64 `json:"area"`
}

// MapStats summarises a generated map
type MapStats struct {
	RoadTiles    int     `json:"road_tiles"`
	TotalTiles   int     `json:"total_tiles"`
	WallVertices int     `json:"wall_vertices"`
	OuterLength  float64 `json:"outer_length"`
	WallPieces   int     `json:"wall_pieces"`
	Openings     int     `json:"openings"`
	RoadRuns     int     `json:"road_runs"`
	RoadNodes    int     `json:"road_nodes"`
	MaxRoadDepth int     `json:"max_road_depth"`
}

// MapDefinition is the complete generated map
type MapDefinition struct {
	Seed      int64        `json:"seed"`
	Boundary  Boundary     `json:"boundary"`
	Tiles     *TileGrid    `json:"tiles"`
	Dividers  []Path       `json:"dividers"`
	Zones     []Zone       `json:"zones"`
	OuterLoop Path         `json:"outer_loop"`
	Polylines []Polyline   `json:"polylines"`
	Roads     *RoadNetwork `json:"roads"`
	Openings  []Opening    `json:"openings"`
	Stats     MapStats     `json:"stats"`
}

// Rasterizer draws a map onto some surface
type Rasterizer interface {
	SetTile(x, y int, road bool)
	FillEllipse(cx, cy, rx, ry float64, color uint32, alpha float64)
	Stroke(points []Vec2, thickness []float64, color uint32, alpha float64)
}

// Render draws the map: tiles first, then the safe zone, then every polyline in order
func (m *MapDefinition) Render(r Rasterizer) {
	if m.Tiles != nil {
		for y := m.Tiles.MinY; y < m.Tiles.MinY+m.Tiles.Height; y++ {
			for x := m.Tiles.MinX; x < m.Tiles.MinX+m.Tiles.Width; x++ {
				r.SetTile(x, y, m.Tiles.IsRoad(x, y))
			}
		}
	}

	r.FillEllipse(0, 0, m.Boundary.RadiusX, m.Boundary.RadiusY, ColorSafeZone, 0.5)

	for _, pl := range m.Polylines {
		r.Stroke(pl.Points, pl.Thickness, pl.Color, pl.Alpha)
	}
}

// PolylinesOf returns the polylines of one kind
func (m *MapDefinition) PolylinesOf(kind string) []Polyline {
	var out []Polyline
	for _, pl := range m.Polylines {
		if pl.Kind == kind {
			out = append(out, pl)
		}
	}
	return out
}
