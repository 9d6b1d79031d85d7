package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/zeusync/starfall/internal/config"
	"github.com/zeusync/starfall/internal/core/observability/log"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	logPath := flag.String("log", "", "write logs to this file")
	sound := flag.Bool("sound", false, "play sound cues")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error loading config:", err)
		os.Exit(1)
	}
	if *sound {
		cfg.Audio.Enabled = true
	}
	if *logPath != "" {
		logger := log.NewWithOutput(cfg.Level(), *logPath)
		defer func() { _ = logger.Sync() }()
	}

	game, err := newGame(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed to initialize:", err)
		os.Exit(1)
	}
	defer game.cleanup()

	game.run()
}
