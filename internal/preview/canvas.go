package preview

import (
	"math"
	"strings"

	"arenagen.dev/internal/config"
	"arenagen.dev/internal/generation"
)

// Palette maps map colors to the characters drawn for them
type Palette struct {
	Grass    rune
	Gravel   rune
	Empty    rune
	Fallback rune
	Colors   map[uint32]rune
}

// DefaultPalette returns the standard character palette
func DefaultPalette() *Palette {
	return &Palette{
		Grass:    ',',
		Gravel:   '.',
		Empty:    ' ',
		Fallback: '*',
		Colors: map[uint32]rune{
			generation.ColorSafeZone:  'o',
			generation.ColorWall:      '#',
			generation.ColorOuterWall: 'X',
			generation.ColorRoad:      '=',
		},
	}
}

// Canvas is a character grid covering a tile grid, each cell standing for
// factor x factor tiles. It implements generation.Rasterizer.
type Canvas struct {
	Width, Height int
	cells         [][]rune

	minX, minY int
	factor     int
	tile       config.TileConfig
	palette    *Palette
}

// NewCanvas creates an empty canvas over the given tile grid
func NewCanvas(grid *generation.TileGrid, tile config.TileConfig, factor int, palette *Palette) *Canvas {
	factor = max(1, factor)
	if palette == nil {
		palette = DefaultPalette()
	}
	width := (grid.Width + factor - 1) / factor
	height := (grid.Height + factor - 1) / factor

	cells := make([][]rune, height)
	for y := range cells {
		cells[y] = make([]rune, width)
		for x := range cells[y] {
			cells[y][x] = palette.Empty
		}
	}
	return &Canvas{
		Width:   width,
		Height:  height,
		cells:   cells,
		minX:    grid.MinX,
		minY:    grid.MinY,
		factor:  factor,
		tile:    tile,
		palette: palette,
	}
}

// Render draws a whole map at roughly cols characters wide
func Render(m *generation.MapDefinition, tile config.TileConfig, cols int) *Canvas {
	factor := 1
	if cols > 0 && m.Tiles.Width > cols {
		factor = (m.Tiles.Width + cols - 1) / cols
	}
	c := NewCanvas(m.Tiles, tile, factor, nil)
	m.Render(c)
	return c
}

func (c *Canvas) inBounds(x, y int) bool {
	return x >= 0 && x < c.Width && y >= 0 && y < c.Height
}

func (c *Canvas) set(x, y int, ch rune) {
	if c.inBounds(x, y) {
		c.cells[y][x] = ch
	}
}

// At returns the character at a cell, or 0 outside the canvas
func (c *Canvas) At(x, y int) rune {
	if c.inBounds(x, y) {
		return c.cells[y][x]
	}
	return 0
}

// cellOf returns the cell holding a tile
func (c *Canvas) cellOf(tx, ty int) (int, int) {
	return floorDiv(tx-c.minX, c.factor), floorDiv(ty-c.minY, c.factor)
}

// worldCell returns the cell holding a world position
func (c *Canvas) worldCell(p generation.Vec2) (int, int) {
	return c.cellOf(int(math.Floor(p.X/c.tile.Width)), int(math.Floor(p.Y/c.tile.Height)))
}

func (c *Canvas) glyph(color uint32) rune {
	if ch, ok := c.palette.Colors[color]; ok {
		return ch
	}
	return c.palette.Fallback
}

// SetTile marks a tile; a cell shows gravel if any of its tiles is gravel
func (c *Canvas) SetTile(x, y int, road bool) {
	cx, cy := c.cellOf(x, y)
	if !c.inBounds(cx, cy) {
		return
	}
	switch {
	case road:
		c.cells[cy][cx] = c.palette.Gravel
	case c.cells[cy][cx] == c.palette.Empty:
		c.cells[cy][cx] = c.palette.Grass
	}
}

// FillEllipse paints every cell whose centre lies in the ellipse. Faint fills are skipped.
func (c *Canvas) FillEllipse(cx, cy, rx, ry float64, color uint32, alpha float64) {
	if alpha < 0.5 {
		return
	}
	ch := c.glyph(color)
	cellW := c.tile.Width * float64(c.factor)
	cellH := c.tile.Height * float64(c.factor)
	for y := 0; y < c.Height; y++ {
		wy := float64(c.minY)*c.tile.Height + (float64(y)+0.5)*cellH
		for x := 0; x < c.Width; x++ {
			wx := float64(c.minX)*c.tile.Width + (float64(x)+0.5)*cellW
			dx := (wx - cx) / rx
			dy := (wy - cy) / ry
			if dx*dx+dy*dy <= 1 {
				c.cells[y][x] = ch
			}
		}
	}
}

// Stroke draws the polyline one cell wide. Faint strokes are skipped.
func (c *Canvas) Stroke(points []generation.Vec2, _ []float64, color uint32, alpha float64) {
	if alpha < 0.5 || len(points) == 0 {
		return
	}
	ch := c.glyph(color)
	x0, y0 := c.worldCell(points[0])
	c.set(x0, y0, ch)
	for _, p := range points[1:] {
		x1, y1 := c.worldCell(p)
		c.line(x0, y0, x1, y1, ch)
		x0, y0 = x1, y1
	}
}

// line draws a line between two cells using Bresenham's algorithm
func (c *Canvas) line(x0, y0, x1, y1 int, ch rune) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	x, y := x0, y0
	for {
		c.set(x, y, ch)
		if x == x1 && y == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x += sx
		}
		if e2 <= dx {
			err += dx
			y += sy
		}
	}
}

// String renders the canvas row by row
func (c *Canvas) String() string {
	var sb strings.Builder
	sb.Grow((c.Width + 1) * c.Height)
	for _, row := range c.cells {
		sb.WriteString(string(row))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Count returns how many cells hold ch
func (c *Canvas) Count(ch rune) int {
	n := 0
	for _, row := range c.cells {
		for _, r := range row {
			if r == ch {
				n++
			}
		}
	}
	return n
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
