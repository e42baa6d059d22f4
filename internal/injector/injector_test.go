package injector

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/formations/internal/config"
	"github.com/zeusync/formations/internal/core/simulation"
)

func testConfig() config.Config {
	cfg := config.Default()
	cfg.Server.Address = "127.0.0.1:0"
	cfg.Engine.TickRate = time.Millisecond
	cfg.Simulation.EntityCount = 10
	cfg.Simulation.Seed = 7
	cfg.Log.Level = "error"
	return cfg
}

func TestInitializeAppRuns(t *testing.T) {
	app, err := InitializeApp(testConfig())
	require.NoError(t, err)
	require.NotNil(t, app.Engine)
	require.NotNil(t, app.Server)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	require.Eventually(t, func() bool {
		return app.Engine.Stats().Tick > 2 && app.Server.Addr() != nil
	}, 5*time.Second, 5*time.Millisecond)
	assert.Equal(t, 10, app.Engine.Stats().Entities)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("app did not stop")
	}
}

func TestInitializeAppRejectsInvalidConfig(t *testing.T) {
	cfg := testConfig()
	cfg.Simulation.EntityCount = 1

	_, err := InitializeApp(cfg)
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
	assert.ErrorIs(t, err, simulation.ErrInvalidConfig)
}
