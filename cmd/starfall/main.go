package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/zeusync/starfall/internal/config"
	"github.com/zeusync/starfall/internal/core/observability/log"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
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
	logger := log.New(cfg.Level())
	defer func() { _ = logger.Sync() }()

	g, err := newGame(cfg, logger)
	if err != nil {
		logger.Error("init failed", log.Error(err))
		os.Exit(1)
	}
	defer g.cleanup()

	ebiten.SetWindowSize(int(cfg.Viewport.Width), int(cfg.Viewport.Height))
	ebiten.SetWindowTitle("Starfall")
	ebiten.SetWindowResizable(true)

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		logger.Error("game stopped", log.Error(err))
	}
}
