package generation

import (
	"encoding/json"
	"math"
	"strings"

	"arenagen.dev/internal/config"
)

// Terrain classifies world positions as road (gravel) or grass
type Terrain struct {
	src   *Source
	cfg   config.TerrainConfig
	tiles config.TileConfig
}

// NewTerrain creates a classifier sampling src
func NewTerrain(src *Source, cfg config.TerrainConfig, tiles config.TileConfig) *Terrain {
	return &Terrain{src: src, cfg: cfg, tiles: tiles}
}

// Classify reports whether (x, y) is road, and how far the nearer of the two
// noise channels is from zero. Noise is sampled at a scale that shrinks with
// squared distance from the centre down to a fixed minimum.
func (t *Terrain) Classify(x, y float64) (bool, float64) {
	d2 := math.Max(x*x+y*y, 1)
	scale := math.Max(t.cfg.MinScale, t.cfg.ScaleNumerator/d2)

	n1 := math.Abs(t.src.Noise(x, y, scale))
	n2 := math.Abs(t.src.Noise(x+t.cfg.SecondOffset, y+t.cfg.SecondOffset, scale))

	road := n1 < t.cfg.RoadThreshold || n2 < t.cfg.RoadThreshold
	return road, math.Min(n1, n2)
}

// IsRoad classifies a point
func (t *Terrain) IsRoad(p Vec2) bool {
	road, _ := t.Classify(p.X, p.Y)
	return road
}

// TileCenter returns the world position sampled for tile (x, y)
func (t *Terrain) TileCenter(x, y int) Vec2 {
	return Vec2{
		float64(x)*t.tiles.Width + t.tiles.Width/2,
		float64(y)*t.tiles.Height + t.tiles.Height/2,
	}
}

// BuildTileGrid classifies every tile from -W/2 to W/2 and -H/2 to H/2 inclusive
func (t *Terrain) BuildTileGrid(grid config.GridConfig) *TileGrid {
	tg := NewTileGrid(-grid.Width/2, -grid.Height/2, grid.Width/2*2+1, grid.Height/2*2+1)
	for y := tg.MinY; y < tg.MinY+tg.Height; y++ {
		for x := tg.MinX; x < tg.MinX+tg.Width; x++ {
			c := t.TileCenter(x, y)
			road, _ := t.Classify(c.X, c.Y)
			tg.Set(x, y, road)
		}
	}
	return tg
}

// TileGrid is a road/grass grid addressed by signed tile coordinates
type TileGrid struct {
	MinX, MinY    int
	Width, Height int
	cells         [][]bool
}

// NewTileGrid creates an all-grass grid whose first tile is (minX, minY)
func NewTileGrid(minX, minY, width, height int) *TileGrid {
	cells := make([][]bool, height)
	for y := range cells {
		cells[y] = make([]bool, width)
	}
	return &TileGrid{MinX: minX, MinY: minY, Width: width, Height: height, cells: cells}
}

// InBounds checks if a tile coordinate is within the grid
func (g *TileGrid) InBounds(x, y int) bool {
	return x >= g.MinX && x < g.MinX+g.Width && y >= g.MinY && y < g.MinY+g.Height
}

// Set marks a tile as road or grass
func (g *TileGrid) Set(x, y int, road bool) {
	if g.InBounds(x, y) {
		g.cells[y-g.MinY][x-g.MinX] = road
	}
}

// IsRoad returns the tile's class; tiles outside the grid are grass
func (g *TileGrid) IsRoad(x, y int) bool {
	if g.InBounds(x, y) {
		return g.cells[y-g.MinY][x-g.MinX]
	}
	return false
}

// RoadCount returns the number of road tiles
func (g *TileGrid) RoadCount() int {
	count := 0
	for _, row := range g.cells {
		for _, road := range row {
			if road {
				count++
			}
		}
	}
	return count
}

// Rows renders the grid top row first, '#' for road and '.' for grass
func (g *TileGrid) Rows() []string {
	rows := make([]string, g.Height)
	var sb strings.Builder
	for y, row := range g.cells {
		sb.Reset()
		for _, road := range row {
			if road {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		rows[y] = sb.String()
	}
	return rows
}

type tileGridJSON struct {
	MinX   int      `json:"min_x"`
	MinY   int      `json:"min_y"`
	Width  int      `json:"width"`
	Height int      `json:"height"`
	Rows   []string `json:"rows"`
}

func (g *TileGrid) MarshalJSON() ([]byte, error) {
	return json.Marshal(tileGridJSON{
		MinX:   g.MinX,
		MinY:   g.MinY,
		Width:  g.Width,
		Height: g.Height,
		Rows:   g.Rows(),
	})
}
