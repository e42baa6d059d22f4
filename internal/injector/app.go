package injector

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/zeusync/formations/internal/config"
	"github.com/zeusync/formations/internal/core/events/bus"
	"github.com/zeusync/formations/internal/core/observability/log"
	"github.com/zeusync/formations/internal/core/simulation"
	"github.com/zeusync/formations/internal/server"
)

// App is the wired process: one engine, one websocket server.
type App struct {
	Config config.Config
	Logger log.Log
	Bus    bus.EventBus
	Engine *simulation.Engine
	Server *server.Server
}

func NewApp(cfg config.Config, logger log.Log, eventBus bus.EventBus, engine *simulation.Engine, srv *server.Server) *App {
	return &App{
		Config: cfg,
		Logger: logger,
		Bus:    eventBus,
		Engine: engine,
		Server: srv,
	}
}

// Run runs the engine and the server until ctx is done or either of them fails.
func (a *App) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return a.Engine.Run(ctx) })
	g.Go(func() error { return a.Server.Run(ctx) })

	a.Logger.Info("formations running",
		log.String("addr", a.Config.Server.Address),
		log.String("mode", a.Config.Simulation.Mode.String()),
		log.Int("entities", a.Config.Simulation.Total()),
	)
	return g.Wait()
}
