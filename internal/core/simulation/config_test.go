package simulation

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/zeusync/formations/internal/core/entity"
	"github.com/zeusync/formations/internal/core/systems/physics"
)

func TestConfigValidate(t *testing.T) {
	valid := DefaultConfig().Fitted()
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"too few", func(c *Config) { c.EntityCount, c.StaticCount = 1, 1 }},
		{"too many", func(c *Config) { c.EntityCount, c.StaticCount = 1990, 11 }},
		{"negative statics", func(c *Config) { c.StaticCount = -1 }},
		{"negative speed", func(c *Config) { c.Speed = -1 }},
		{"nan radius", func(c *Config) { c.SpawnRadius = math.NaN() }},
		{"negative cap", func(c *Config) { c.MaxDistanceFromOrigin = -3 }},
		{"unknown mode", func(c *Config) { c.Mode = GameMode(9) }},
		{"unknown navigation", func(c *Config) { c.Navigation = Navigation(9) }},
		{"self peer", func(c *Config) {
			c.Layout = []Placement{
				{Kind: entity.KindPaired, Peers: []int{0, 1}},
				{Kind: entity.KindStatic},
				{Kind: entity.KindStatic},
			}
		}},
		{"peer out of range", func(c *Config) {
			c.Layout = []Placement{
				{Kind: entity.KindTriangle, Peers: []int{1, 3}},
				{Kind: entity.KindStatic},
				{Kind: entity.KindStatic},
			}
		}},
		{"static with peers", func(c *Config) {
			c.Layout = []Placement{
				{Kind: entity.KindStatic, Peers: []int{1, 2}},
				{Kind: entity.KindStatic},
				{Kind: entity.KindStatic},
			}
		}},
		{"short layout", func(c *Config) {
			c.Layout = []Placement{{Kind: entity.KindStatic}, {Kind: entity.KindStatic}}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidConfig))
		})
	}
}

func TestConfigFittedDerivesBoundsFromCount(t *testing.T) {
	cfg := Config{EntityCount: 97, StaticCount: 3}.Fitted()
	assert.Equal(t, 20.0, cfg.SpawnRadius)
	assert.Equal(t, 25.0, cfg.MaxDistanceFromOrigin)

	explicit := Config{EntityCount: 3, SpawnRadius: 2, MaxDistanceFromOrigin: 7}.Fitted()
	assert.Equal(t, 2.0, explicit.SpawnRadius)
	assert.Equal(t, 7.0, explicit.MaxDistanceFromOrigin)
}

func TestModeKindAt(t *testing.T) {
	assert.Equal(t, entity.KindPaired, ModeFriendsAndEnemies.KindAt(1))
	assert.Equal(t, entity.KindTriangle, ModeTriangle.KindAt(0))
	assert.Equal(t, entity.KindPaired, ModeMixed.KindAt(0))
	assert.Equal(t, entity.KindTriangle, ModeMixed.KindAt(1))
	assert.Equal(t, entity.KindPaired, ModeMixed.KindAt(2))
}

func TestConfigYAML(t *testing.T) {
	src := `
mode: mixed
navigation: navmesh
entity_count: 10
static_count: 2
speed: 3.5
seed: 11
layout:
  - kind: paired
    position: {x: 1, y: 2}
    peers: [1, 2]
  - kind: static
    position: {x: 3, y: 4}
  - kind: triangle
`
	var cfg Config
	require.NoError(t, yaml.Unmarshal([]byte(src), &cfg))
	assert.Equal(t, ModeMixed, cfg.Mode)
	assert.Equal(t, NavigationNavMesh, cfg.Navigation)
	assert.Equal(t, 10, cfg.EntityCount)
	assert.Equal(t, uint64(11), cfg.Seed)
	require.Len(t, cfg.Layout, 3)
	assert.Equal(t, physics.Vec2{X: 1, Y: 2}, cfg.Layout[0].Position)
	assert.Equal(t, entity.KindTriangle, cfg.Layout[2].Kind)
	assert.Equal(t, 3, cfg.Total())

	var bad Config
	assert.Error(t, yaml.Unmarshal([]byte("mode: chaos"), &bad))
}
