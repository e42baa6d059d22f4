package injector

import (
	"github.com/google/wire"

	"github.com/zeusync/formations/internal/config"
	"github.com/zeusync/formations/internal/core/events/bus"
	"github.com/zeusync/formations/internal/core/observability/log"
	"github.com/zeusync/formations/internal/core/simulation"
	"github.com/zeusync/formations/internal/server"
)

var ProviderSet = wire.NewSet(
	ProvideLogger,
	ProvideBus,
	ProvideEngine,
	ProvideServer,
	NewApp,
	wire.Bind(new(log.Log), new(*log.Logger)),
	wire.Bind(new(server.Engine), new(*simulation.Engine)),
)

// ProvideLogger validates cfg and builds the root logger from its log section.
func ProvideLogger(cfg config.Config) (*log.Logger, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return log.NewWithOptions(cfg.Level(), log.Options{Encoding: cfg.Log.Encoding}), nil
}

func ProvideBus() bus.EventBus {
	return bus.New()
}

func ProvideEngine(cfg config.Config, eventBus bus.EventBus, logger log.Log) *simulation.Engine {
	return simulation.NewEngine(cfg.Engine, cfg.Simulation, eventBus, logger)
}

func ProvideServer(cfg config.Config, engine server.Engine, eventBus bus.EventBus, logger log.Log) *server.Server {
	return server.NewServer(cfg.Server, engine, eventBus, logger)
}
