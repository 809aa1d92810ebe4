package models

// MapSummary is the compact description of a generated map
type MapSummary struct {
	Seed      int64         `json:"seed"`
	Boundary  [2]float64    `json:"boundary"` // radii x, y
	Zones     []ZoneSummary `json:"zones"`
	Walls     WallSummary   `json:"walls"`
	Roads     RoadSummary   `json:"roads"`
	Terrain   TerrainStats  `json:"terrain"`
	Polylines int           `json:"polylines"`
}

// ZoneSummary describes one zone
type ZoneSummary struct {
	Index    int     `json:"index"`
	Area     float64 `json:"area"`
	Vertices int     `json:"vertices"`
	Bounds   Bounds  `json:"bounds"`
}

// WallSummary describes the dividing walls and the outer wall
type WallSummary struct {
	DividerLengths []float64 `json:"divider_lengths"`
	Vertices       int       `json:"vertices"`
	OuterLength    float64   `json:"outer_length"`
	OuterPieces    int       `json:"outer_pieces"`
	Openings       []Opening `json:"openings"`
}

// Opening is a gap cut into a wall for a road
type Opening struct {
	Wall     string   `json:"wall"`
	Position Position `json:"position"`
	Width    float64  `json:"width"`
}

// RoadSummary describes the road network
type RoadSummary struct {
	Runs     int     `json:"runs"`
	Nodes    int     `json:"nodes"`
	MaxDepth int     `json:"max_depth"`
	Length   float64 `json:"length"`
}

// TerrainStats counts the classified tiles
type TerrainStats struct {
	RoadTiles  int     `json:"road_tiles"`
	TotalTiles int     `json:"total_tiles"`
	RoadShare  float64 `json:"road_share"`
}

// Position is a world-space point
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Bounds defines an axis-aligned world-space box
type Bounds struct {
	MinX float64 `json:"min_x"`
	MaxX float64 `json:"max_x"`
	MinY float64 `json:"min_y"`
	MaxY float64 `json:"max_y"`
}
