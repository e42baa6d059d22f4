package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/formations/internal/core/observability/log"
	"github.com/zeusync/formations/internal/core/simulation"
	"github.com/zeusync/formations/internal/server"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	require.NoError(t, cfg.Validate())
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "formations.yaml")
	src := `
simulation:
  mode: triangle
  navigation: navmesh
  entity_count: 12
  static_count: 3
  seed: 42
engine:
  tick_rate: 50ms
server:
  address: ":9000"
log:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(src), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, simulation.ModeTriangle, cfg.Simulation.Mode)
	assert.Equal(t, simulation.NavigationNavMesh, cfg.Simulation.Navigation)
	assert.Equal(t, 12, cfg.Simulation.EntityCount)
	assert.Equal(t, 3, cfg.Simulation.StaticCount)
	assert.Equal(t, uint64(42), cfg.Simulation.Seed)
	assert.Equal(t, 50*time.Millisecond, cfg.Engine.TickRate)
	assert.Equal(t, ":9000", cfg.Server.Address)
	assert.Equal(t, log.LevelDebug, cfg.Level())

	// untouched keys keep their defaults
	assert.Equal(t, simulation.DefaultConfig().Speed, cfg.Simulation.Speed)
	assert.Equal(t, server.DefaultConfig().SendBuffer, cfg.Server.SendBuffer)
	assert.Equal(t, simulation.DefaultEngineConfig().QueueSize, cfg.Engine.QueueSize)
	require.NoError(t, cfg.Validate())
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("simulation:\n  mode: chaos\n"), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestNormalizeClampsCounts(t *testing.T) {
	tests := []struct {
		name                 string
		entities, statics    int
		wantEntities, wantSt int
	}{
		{"in range", 10, 2, 10, 2},
		{"too few without statics", 0, 0, 3, 0},
		{"statics cover the minimum", 0, 5, 1, 5},
		{"one static", 1, 1, 2, 1},
		{"too many", 5000, 0, 2000, 0},
		{"too many with statics", 1990, 20, 1980, 20},
		{"negative statics", 4, -2, 4, 0},
		{"statics fill everything", 3, 2500, 1, 1999},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.Simulation.EntityCount = tt.entities
			cfg.Simulation.StaticCount = tt.statics
			cfg.Normalize()
			assert.Equal(t, tt.wantEntities, cfg.Simulation.EntityCount)
			assert.Equal(t, tt.wantSt, cfg.Simulation.StaticCount)
			assert.NoError(t, cfg.Validate())
		})
	}
}

func TestNormalizeKeepsLayout(t *testing.T) {
	cfg := Default()
	cfg.Simulation.EntityCount = 0
	cfg.Simulation.Layout = []simulation.Placement{{}, {}, {}}
	cfg.Normalize()
	assert.Equal(t, 0, cfg.Simulation.EntityCount)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"log level", func(c *Config) { c.Log.Level = "loud" }},
		{"log encoding", func(c *Config) { c.Log.Encoding = "xml" }},
		{"address", func(c *Config) { c.Server.Address = "" }},
		{"send buffer", func(c *Config) { c.Server.SendBuffer = 0 }},
		{"tick rate", func(c *Config) { c.Engine.TickRate = 0 }},
		{"simulation", func(c *Config) { c.Simulation.EntityCount = 1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}

	cfg := Default()
	cfg.Simulation.EntityCount = 1
	assert.ErrorIs(t, cfg.Validate(), simulation.ErrInvalidConfig)
}
