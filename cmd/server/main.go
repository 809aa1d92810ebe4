package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"

	"arenagen.dev/internal/config"
	"arenagen.dev/internal/handlers"
	"arenagen.dev/internal/logging"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file (defaults when empty)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger := logging.New(cfg.LogLevel, os.Stderr)

	router := handlers.SetupRoutes(cfg, logger)

	logger.Info("server listening", "addr", cfg.ServerAddr)
	if err := http.ListenAndServe(cfg.ServerAddr, router); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
