// Package config loads the process configuration from a YAML file.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/zeusync/formations/internal/core/observability/log"
	"github.com/zeusync/formations/internal/core/simulation"
	"github.com/zeusync/formations/internal/server"
)

var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds everything cmd/server needs to run.
type Config struct {
	Simulation simulation.Config       `yaml:"simulation"`
	Engine     simulation.EngineConfig `yaml:"engine"`
	Server     server.Config           `yaml:"server"`
	Log        Log                     `yaml:"log"`
}

type Log struct {
	Level string `yaml:"level"`
	// Encoding is "json" or "console".
	Encoding string `yaml:"encoding"`
}

// Default returns a config with sensible defaults.
func Default() Config {
	return Config{
		Simulation: simulation.DefaultConfig(),
		Engine:     simulation.DefaultEngineConfig(),
		Server:     server.DefaultConfig(),
		Log:        Log{Level: log.LevelInfo.String(), Encoding: "json"},
	}
}

// Load reads config from a YAML file on top of the defaults.
// If the file doesn't exist, returns defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return cfg, nil
}

// Normalize clamps the entity counts the way the count inputs do: statics first, then
// moving entities so the total lands in [MinEntities, MaxEntities] with at least one
// moving entity. A scenario layout is left alone.
func (c *Config) Normalize() {
	sim := &c.Simulation
	if len(sim.Layout) > 0 {
		return
	}

	sim.StaticCount = clamp(sim.StaticCount, 0, simulation.MaxEntities-1)

	lo := 1
	if sim.StaticCount < simulation.MinEntities {
		lo = simulation.MinEntities - sim.StaticCount
	}
	sim.EntityCount = clamp(sim.EntityCount, lo, simulation.MaxEntities-sim.StaticCount)
}

// Validate checks every section.
func (c Config) Validate() error {
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: log: %w", ErrInvalidConfig, err)
	}
	if c.Log.Encoding != "json" && c.Log.Encoding != "console" {
		return fmt.Errorf("%w: log: unknown encoding %q", ErrInvalidConfig, c.Log.Encoding)
	}
	if c.Server.Address == "" {
		return fmt.Errorf("%w: server: empty address", ErrInvalidConfig)
	}
	if c.Server.SendBuffer < 1 {
		return fmt.Errorf("%w: server: send_buffer must be positive", ErrInvalidConfig)
	}
	if c.Engine.TickRate <= 0 {
		return fmt.Errorf("%w: engine: tick_rate must be positive", ErrInvalidConfig)
	}
	if err := c.Simulation.Fitted().Validate(); err != nil {
		return fmt.Errorf("%w: simulation: %w", ErrInvalidConfig, err)
	}
	return nil
}

// Level parses the configured log level.
func (c Config) Level() log.Level {
	level, _ := log.ParseLevel(c.Log.Level)
	return level
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}
