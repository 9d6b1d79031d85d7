package injector

import (
	"github.com/google/wire"

	"github.com/zeusync/starfall/internal/config"
	"github.com/zeusync/starfall/internal/core/events/bus"
	"github.com/zeusync/starfall/internal/core/observability/log"
	"github.com/zeusync/starfall/internal/core/rng"
	"github.com/zeusync/starfall/internal/core/session"
)

var ProviderSet = wire.NewSet(
	ProvideLogger,
	ProvideBus,
	ProvideRand,
	session.NewControls,
	ProvideSession,
)

// ProvideLogger returns the process logger set to the configured level. Hosts
// that never called log.New get a no-op logger.
func ProvideLogger(cfg *config.Config) *log.Logger {
	logger := log.Provide()
	logger.SetLevel(cfg.Level())
	return logger
}

func ProvideBus() bus.EventBus {
	return bus.New()
}

func ProvideRand(cfg *config.Config) rng.Source {
	return rng.FromString(cfg.Seed)
}

func ProvideSession(
	cfg *config.Config,
	logger *log.Logger,
	eventBus bus.EventBus,
	source rng.Source,
	controls *session.Controls,
) (*session.Session, func(), error) {
	s, err := session.New(cfg, logger, eventBus, source, controls)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if err := s.Close(); err != nil {
			logger.Warn("session close", log.Error(err))
		}
		_ = logger.Sync()
	}
	return s, cleanup, nil
}
