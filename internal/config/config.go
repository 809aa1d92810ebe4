package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration
type Config struct {
	ServerAddr string         `yaml:"server_addr"`
	LogLevel   string         `yaml:"log_level"`
	Seed       int64          `yaml:"seed"`
	Boundary   BoundaryConfig `yaml:"boundary"`
	Tiles      TileConfig     `yaml:"tiles"`
	Grid       GridConfig     `yaml:"grid"`
	Noise      NoiseConfig    `yaml:"noise"`
	Terrain    TerrainConfig  `yaml:"terrain"`
	Walls      WallConfig     `yaml:"walls"`
	Roads      RoadConfig     `yaml:"roads"`
}

// BoundaryConfig describes the safe-zone ellipse at the map origin
type BoundaryConfig struct {
	RadiusX float64 `yaml:"radius_x"`
	RadiusY float64 `yaml:"radius_y"`
}

// TileConfig is the world-space size of one terrain tile
type TileConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// GridConfig is the tile extent of the terrain grid, centred on the origin
type GridConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// NoiseConfig selects the noise backend and its sampling frequency
type NoiseConfig struct {
	Backend  string  `yaml:"backend"`
	Detail   float64 `yaml:"detail"`
	YStretch float64 `yaml:"y_stretch"`
}

// TerrainConfig controls road/grass classification
type TerrainConfig struct {
	RoadThreshold  float64 `yaml:"road_threshold"`
	MinScale       float64 `yaml:"min_scale"`
	ScaleNumerator float64 `yaml:"scale_numerator"`
	SecondOffset   float64 `yaml:"second_offset"`
}

// WallConfig controls divider growth, offsetting and the zone loops
type WallConfig struct {
	MinLength          float64 `yaml:"min_length"`
	LengthJitter       float64 `yaml:"length_jitter"`
	StartInset         float64 `yaml:"start_inset"`
	MinStep            float64 `yaml:"min_step"`
	StepJitter         float64 `yaml:"step_jitter"`
	CurvinessDeg       float64 `yaml:"curviness_deg"`
	Convergence        float64 `yaml:"convergence"`
	HeadingSnapDeg     float64 `yaml:"heading_snap_deg"`
	AngleJitterDeg     float64 `yaml:"angle_jitter_deg"`
	NoiseOffset        float64 `yaml:"noise_offset"`
	AvoidClearance     float64 `yaml:"avoid_clearance"`
	AvoidClearanceStep float64 `yaml:"avoid_clearance_step"`
	StartThickness     float64 `yaml:"start_thickness"`
	EndThickness       float64 `yaml:"end_thickness"`
	MinThickness       float64 `yaml:"min_thickness"`
	RoundIntervalDeg   float64 `yaml:"round_interval_deg"`
	BackWallTangent    float64 `yaml:"back_wall_tangent"`
	GateWidth          float64 `yaml:"gate_width"` // clearance added to a road's width at each opening
}

// RoadConfig controls road mouth detection and road network growth
type RoadConfig struct {
	RingSamples     int     `yaml:"ring_samples"`
	Length          float64 `yaml:"length"`
	MinStep         float64 `yaml:"min_step"`
	StepJitter      float64 `yaml:"step_jitter"`
	HeadingSnapDeg  float64 `yaml:"heading_snap_deg"`
	MinThickness    float64 `yaml:"min_thickness"`
	RootMinWidth    float64 `yaml:"root_min_width"`
	RootMaxWidth    float64 `yaml:"root_max_width"`
	RootWidthScale  float64 `yaml:"root_width_scale"`
	RootSpreadDeg   float64 `yaml:"root_spread_deg"`
	ProbeDirections int     `yaml:"probe_directions"`
	ProbeConeDeg    float64 `yaml:"probe_cone_deg"`
	HeadingClampDeg float64 `yaml:"heading_clamp_deg"`
	BranchShrink    float64 `yaml:"branch_shrink"`
}

// Default returns the configuration used when no file is supplied
func Default() *Config {
	return &Config{
		ServerAddr: ":8080",
		LogLevel:   "info",
		Seed:       42,
		Boundary:   BoundaryConfig{RadiusX: 3072, RadiusY: 2304},
		Tiles:      TileConfig{Width: 128, Height: 96},
		Grid:       GridConfig{Width: 240, Height: 240},
		Noise: NoiseConfig{
			Backend:  "classic",
			Detail:   0.0005 / 0.75,
			YStretch: 0.75,
		},
		Terrain: TerrainConfig{
			RoadThreshold:  0.05,
			MinScale:       2,
			ScaleNumerator: 1e7,
			SecondOffset:   10752,
		},
		Walls: WallConfig{
			MinLength:          30000,
			LengthJitter:       12000,
			StartInset:         400,
			MinStep:            200,
			StepJitter:         400,
			CurvinessDeg:       18,
			Convergence:        0.02,
			HeadingSnapDeg:     22.5,
			AngleJitterDeg:     18,
			NoiseOffset:        10240,
			AvoidClearance:     400,
			AvoidClearanceStep: 40,
			StartThickness:     200,
			EndThickness:       1200,
			MinThickness:       60,
			RoundIntervalDeg:   22.5,
			BackWallTangent:    1,
			GateWidth:          900,
		},
		Roads: RoadConfig{
			RingSamples:     200,
			Length:          18000,
			MinStep:         250,
			StepJitter:      850,
			HeadingSnapDeg:  22.5,
			MinThickness:    20,
			RootMinWidth:    80,
			RootMaxWidth:    400,
			RootWidthScale:  0.25,
			RootSpreadDeg:   90,
			ProbeDirections: 24,
			ProbeConeDeg:    72,
			HeadingClampDeg: 45,
			BranchShrink:    1.2,
		},
	}
}

// Load reads a YAML file over the defaults. An empty path returns the defaults.
// SERVER_ADDR overrides the listen address either way.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}
	if addr := os.Getenv("SERVER_ADDR"); addr != "" {
		cfg.ServerAddr = addr
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate fills in defaults for optional fields and rejects values the
// generator cannot work with
func (c *Config) Validate() error {
	if c.ServerAddr == "" {
		c.ServerAddr = ":8080"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.Boundary.RadiusX <= 0 || c.Boundary.RadiusY <= 0 {
		return fmt.Errorf("boundary radii must be positive")
	}
	if c.Tiles.Width <= 0 || c.Tiles.Height <= 0 {
		return fmt.Errorf("tile dimensions must be positive")
	}
	if c.Grid.Width <= 0 || c.Grid.Height <= 0 {
		return fmt.Errorf("grid dimensions must be positive")
	}
	switch c.Noise.Backend {
	case "":
		c.Noise.Backend = "classic"
	case "classic", "perlin", "simplex":
	default:
		return fmt.Errorf("noise.backend must be one of 'classic', 'perlin' or 'simplex'")
	}
	if c.Noise.Detail <= 0 || c.Noise.YStretch <= 0 {
		return fmt.Errorf("noise.detail and noise.y_stretch must be positive")
	}
	if c.Terrain.RoadThreshold <= 0 {
		return fmt.Errorf("terrain.road_threshold must be positive")
	}
	if c.Terrain.MinScale <= 0 {
		return fmt.Errorf("terrain.min_scale must be positive")
	}
	if err := c.Walls.validate(); err != nil {
		return err
	}
	return c.Roads.validate()
}

func (w *WallConfig) validate() error {
	if w.MinLength <= 0 || w.LengthJitter < 0 {
		return fmt.Errorf("walls.min_length must be positive and walls.length_jitter non-negative")
	}
	if w.MinStep <= 0 || w.StepJitter < 0 {
		return fmt.Errorf("walls.min_step must be positive and walls.step_jitter non-negative")
	}
	if w.Convergence < 0 || w.Convergence > 1 {
		return fmt.Errorf("walls.convergence must be within [0, 1]")
	}
	if w.HeadingSnapDeg < 0 {
		return fmt.Errorf("walls.heading_snap_deg cannot be negative")
	}
	if w.MinThickness <= 0 {
		return fmt.Errorf("walls.min_thickness must be positive")
	}
	if w.StartThickness <= 0 || w.EndThickness <= 0 {
		return fmt.Errorf("walls start and end thickness must be positive")
	}
	if w.RoundIntervalDeg <= 0 || w.RoundIntervalDeg >= 90 {
		return fmt.Errorf("walls.round_interval_deg must be within (0, 90)")
	}
	if w.GateWidth < 0 {
		return fmt.Errorf("walls.gate_width cannot be negative")
	}
	if w.BackWallTangent <= 0 {
		w.BackWallTangent = 1
	}
	return nil
}

func (r *RoadConfig) validate() error {
	if r.RingSamples < 3 {
		return fmt.Errorf("roads.ring_samples must be at least 3")
	}
	if r.Length <= 0 {
		return fmt.Errorf("roads.length must be positive")
	}
	if r.MinStep <= 0 || r.StepJitter < 0 {
		return fmt.Errorf("roads.min_step must be positive and roads.step_jitter non-negative")
	}
	if r.MinThickness <= 0 {
		return fmt.Errorf("roads.min_thickness must be positive")
	}
	if r.RootMinWidth <= 0 || r.RootMaxWidth < r.RootMinWidth {
		return fmt.Errorf("roads.root_min_width must be positive and not exceed roads.root_max_width")
	}
	if r.HeadingSnapDeg < 0 {
		return fmt.Errorf("roads.heading_snap_deg cannot be negative")
	}
	if r.ProbeConeDeg < 0 {
		return fmt.Errorf("roads.probe_cone_deg cannot be negative")
	}
	if r.HeadingClampDeg < 0 {
		return fmt.Errorf("roads.heading_clamp_deg cannot be negative")
	}
	if r.ProbeDirections <= 0 {
		return fmt.Errorf("roads.probe_directions must be positive")
	}
	if r.BranchShrink <= 1 {
		return fmt.Errorf("roads.branch_shrink must be greater than 1")
	}
	return nil
}
