package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/zeusync/starfall/internal/config"
	"github.com/zeusync/starfall/internal/core/observability/metrics"
	"github.com/zeusync/starfall/internal/core/observability/log"
	"github.com/zeusync/starfall/internal/core/session"
	"github.com/zeusync/starfall/internal/injector"
	"github.com/zeusync/starfall/pkg/concurrent"
	"github.com/zeusync/starfall/pkg/sequence"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	duration := flag.Float64("duration", 60, "simulated seconds per run")
	dt := flag.Float64("dt", 1.0/60, "frame step in seconds")
	runs := flag.Int("runs", 1, "number of independent runs")
	parallel := flag.Int("parallel", 4, "runs simulated at the same time")
	report := flag.Bool("metrics", false, "log per-event counters when the batch ends")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error loading config:", err)
		os.Exit(1)
	}
	logger := log.New(cfg.Level())
	defer func() { _ = logger.Sync() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	registry := metrics.NewRegistry()
	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		stopCh := make(chan os.Signal, 1)
		signal.Notify(stopCh, os.Interrupt, syscall.SIGTERM)
		defer signal.Stop(stopCh)
		select {
		case sig := <-stopCh:
			logger.Info("stopping", log.String("signal", sig.String()))
			return context.Canceled
		case <-ctx.Done():
			return nil
		}
	})
	group.Go(func() error {
		defer cancel()
		seeds := make([]string, *runs)
		for i := range seeds {
			seeds[i] = seedFor(cfg.Seed, i, *runs)
		}
		results, err := concurrent.Map(ctx, sequence.From(seeds), *parallel, func(ctx context.Context, seed string) (session.Stats, error) {
			run := *cfg
			run.Seed = seed
			return simulate(ctx, &run, *duration, *dt, logger, registry)
		})
		if err != nil {
			return err
		}
		summarize(logger, seeds, results)
		if *report {
			for _, sample := range registry.Snapshot() {
				logger.Info("counter", log.String("name", sample.Name), log.Uint64("value", sample.Value))
			}
		}
		return nil
	})

	if err := group.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("simulation failed", log.Error(err))
		os.Exit(1)
	}
}

func seedFor(base string, i, runs int) string {
	if runs == 1 {
		return base
	}
	if base == "" {
		base = "sim"
	}
	return fmt.Sprintf("%s-%d", base, i)
}

func simulate(ctx context.Context, cfg *config.Config, duration, dt float64, logger log.Log, registry *metrics.Registry) (session.Stats, error) {
	s, cleanup, err := injector.InitializeSession(cfg)
	if err != nil {
		return session.Stats{}, err
	}
	defer cleanup()

	observer := metrics.NewBusObserver(registry)
	s.Bus().AddObserver(observer)
	defer s.Bus().RemoveObserver(observer)

	pilot := session.NewAutopilot(s)
	for s.Now() < duration && !s.Over() {
		if s.Stats().Frames%600 == 0 && ctx.Err() != nil {
			return s.Stats(), ctx.Err()
		}
		start := time.Now()
		pilot.Drive()
		s.Step(dt)
		registry.Since("frame.micros", start)
	}
	registry.Counter("runs").Inc()

	st := s.Stats()
	logger.Info("run finished",
		log.String("seed", cfg.Seed),
		log.Float64("elapsed", st.Elapsed),
		log.Bool("survived", !s.Over()),
		log.Uint64("shots", st.ShotsFired),
		log.Uint64("meteors_spawned", st.MeteorsSpawned),
		log.Uint64("meteors_destroyed", st.MeteorsDestroyed),
		log.Int("damage_taken", st.DamageTaken),
	)
	return st, nil
}

func summarize(logger log.Log, seeds []string, results []session.Stats) {
	if len(results) < 2 {
		return
	}
	var elapsed float64
	var destroyed uint64
	for _, st := range results {
		elapsed += st.Elapsed
		destroyed += st.MeteorsDestroyed
	}
	n := float64(len(results))
	logger.Info("batch finished",
		log.Int("runs", len(seeds)),
		log.Float64("mean_elapsed", elapsed/n),
		log.Float64("mean_meteors_destroyed", float64(destroyed)/n),
	)
}
