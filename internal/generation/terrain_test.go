package generation

import (
	"encoding/json"
	"strings"
	"testing"

	"arenagen.dev/internal/config"
)

func newTestTerrain(t *testing.T, seed int64) *Terrain {
	t.Helper()
	cfg := config.Default()
	return NewTerrain(newTestSource(t, seed), cfg.Terrain, cfg.Tiles)
}

func TestTerrainOriginIsRoad(t *testing.T) {
	for _, seed := range []int64{1, 42, 1000} {
		if !newTestTerrain(t, seed).IsRoad(Vec2{}) {
			t.Fatalf("seed %d: origin is not road", seed)
		}
	}
}

func TestTerrainClassifyDeterministic(t *testing.T) {
	a := newTestTerrain(t, 42)
	b := newTestTerrain(t, 42)
	for x := -20000.0; x <= 20000; x += 1700 {
		for y := -20000.0; y <= 20000; y += 1300 {
			ra, ma := a.Classify(x, y)
			rb, mb := b.Classify(x, y)
			if ra != rb || ma != mb {
				t.Fatalf("Classify(%v, %v) differs between runs", x, y)
			}
			if ma < 0 {
				t.Fatalf("Classify(%v, %v) margin = %v, want non-negative", x, y, ma)
			}
			if ra != (ma < config.Default().Terrain.RoadThreshold) {
				t.Fatalf("Classify(%v, %v) = %v with margin %v", x, y, ra, ma)
			}
		}
	}
}

func TestTerrainHasBothClasses(t *testing.T) {
	tr := newTestTerrain(t, 42)
	tg := tr.BuildTileGrid(config.GridConfig{Width: 120, Height: 120})
	roads := tg.RoadCount()
	if roads == 0 || roads == tg.Width*tg.Height {
		t.Fatalf("RoadCount() = %d of %d, want a mix of road and grass", roads, tg.Width*tg.Height)
	}
}

func TestBuildTileGridMatchesClassify(t *testing.T) {
	tr := newTestTerrain(t, 7)
	tg := tr.BuildTileGrid(config.GridConfig{Width: 30, Height: 20})

	if tg.Width != 31 || tg.Height != 21 || tg.MinX != -15 || tg.MinY != -10 {
		t.Fatalf("grid = %d,%d %dx%d; want -15,-10 31x21", tg.MinX, tg.MinY, tg.Width, tg.Height)
	}
	for y := tg.MinY; y < tg.MinY+tg.Height; y++ {
		for x := tg.MinX; x < tg.MinX+tg.Width; x++ {
			c := tr.TileCenter(x, y)
			if want := tr.IsRoad(c); tg.IsRoad(x, y) != want {
				t.Fatalf("tile (%d, %d) = %v, want %v", x, y, tg.IsRoad(x, y), want)
			}
		}
	}
}

func TestTileCenter(t *testing.T) {
	tr := newTestTerrain(t, 1)
	tests := map[string]struct {
		x, y int
		want Vec2
	}{
		"origin tile":   {x: 0, y: 0, want: Vec2{64, 48}},
		"negative tile": {x: -1, y: -2, want: Vec2{-64, -144}},
		"far tile":      {x: 10, y: 3, want: Vec2{1344, 336}},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			if got := tr.TileCenter(tc.x, tc.y); got != tc.want {
				t.Fatalf("TileCenter(%d, %d) = %v, want %v", tc.x, tc.y, got, tc.want)
			}
		})
	}
}

func TestTileGridOutOfBounds(t *testing.T) {
	tg := NewTileGrid(-2, -2, 5, 5)
	tg.Set(10, 10, true)
	if tg.RoadCount() != 0 {
		t.Fatalf("Set outside the grid changed it")
	}
	if tg.IsRoad(10, 10) {
		t.Fatalf("IsRoad outside the grid = true, want false")
	}
	tg.Set(-2, 2, true)
	if !tg.IsRoad(-2, 2) || tg.RoadCount() != 1 {
		t.Fatalf("Set(-2, 2) not recorded")
	}
}

func TestTileGridJSON(t *testing.T) {
	tg := NewTileGrid(-1, -1, 3, 2)
	tg.Set(0, -1, true)
	tg.Set(1, 0, true)

	data, err := json.Marshal(tg)
	if err != nil {
		t.Fatalf("Marshal returned error: %v", err)
	}
	var decoded struct {
		MinX int      `json:"min_x"`
		Rows []string `json:"rows"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal returned error: %v", err)
	}
	if decoded.MinX != -1 {
		t.Fatalf("min_x = %d, want -1", decoded.MinX)
	}
	if got := strings.Join(decoded.Rows, "|"); got != ".#.|..#" {
		t.Fatalf("rows = %q, want %q", got, ".#.|..#")
	}
}
