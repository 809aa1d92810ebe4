package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"arenagen.dev/internal/config"
	"arenagen.dev/internal/logging"
	"arenagen.dev/internal/preview"
	"arenagen.dev/internal/services"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file (defaults when empty)")
	seed := flag.Int64("seed", 0, "map seed (overrides the config seed when non-zero)")
	jsonOut := flag.String("json", "", "write the map definition as JSON to this file")
	previewCols := flag.Int("preview", 0, "print a text preview about this many columns wide")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger := logging.New(cfg.LogLevel, os.Stderr)

	if *seed != 0 {
		cfg.Seed = *seed
	}

	logger.Info("generating map", "seed", cfg.Seed, "backend", cfg.Noise.Backend)
	m, err := services.NewMapService(cfg, logger).Generate(cfg.Seed)
	if err != nil {
		logger.Error("generation failed", "seed", cfg.Seed, "error", err)
		os.Exit(1)
	}

	if *jsonOut != "" {
		if err := os.MkdirAll(filepath.Dir(*jsonOut), 0755); err != nil {
			logger.Error("creating output directory", "error", err)
			os.Exit(1)
		}

		data, err := json.MarshalIndent(m, "", "  ")
		if err != nil {
			logger.Error("marshaling JSON", "error", err)
			os.Exit(1)
		}

		if err := os.WriteFile(*jsonOut, data, 0644); err != nil {
			logger.Error("writing file", "path", *jsonOut, "error", err)
			os.Exit(1)
		}
		logger.Info("map written", "path", *jsonOut)
	}

	if *previewCols > 0 {
		fmt.Print(preview.Render(m, cfg.Tiles, *previewCols))
	}

	summary := services.Summarize(m)
	fmt.Printf("seed %d: %d zones, %d outer wall pieces, %d road runs, %d road nodes (depth %d), %.1f%% road tiles\n",
		summary.Seed, len(summary.Zones), summary.Walls.OuterPieces, summary.Roads.Runs,
		summary.Roads.Nodes, summary.Roads.MaxDepth, summary.Terrain.RoadShare*100)
}
