package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/zeusync/formations/internal/config"
	"github.com/zeusync/formations/internal/core/observability/log"
	"github.com/zeusync/formations/internal/injector"
)

func main() {
	defaultConfig := "formations.yaml"
	if p := os.Getenv("FORMATIONS_CONFIG"); p != "" {
		defaultConfig = p
	}

	configPath := flag.String("config", defaultConfig, "path to the YAML config file (env FORMATIONS_CONFIG)")
	addr := flag.String("addr", "", "listen address, overrides server.address")
	entities := flag.Int("entities", 0, "number of moving entities, overrides simulation.entity_count")
	statics := flag.Int("statics", -1, "number of static entities, overrides simulation.static_count")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error loading config:", err)
		os.Exit(1)
	}
	if *addr != "" {
		cfg.Server.Address = *addr
	}
	if *entities > 0 {
		cfg.Simulation.EntityCount = *entities
	}
	if *statics >= 0 {
		cfg.Simulation.StaticCount = *statics
	}
	cfg.Normalize()

	app, err := injector.InitializeApp(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error initializing:", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx); err != nil {
		app.Logger.Error("formations stopped with error", log.Error(err))
		stop()
		os.Exit(1)
	}
	app.Logger.Info("formations stopped")
}
