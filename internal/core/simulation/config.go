package simulation

import (
	"errors"
	"fmt"
	"math"

	"github.com/zeusync/formations/internal/core/entity"
	"github.com/zeusync/formations/internal/core/movement"
	"github.com/zeusync/formations/internal/core/systems/physics"
	"github.com/zeusync/formations/internal/core/viewport"
)

// Bounds on the combined number of entities. Fewer than three entities cannot give
// every entity two distinct peers.
const (
	MinEntities = 3
	MaxEntities = 2000
)

var ErrInvalidConfig = errors.New("simulation: invalid config")

// GameMode selects which behaviors the dynamic entities get.
type GameMode uint8

const (
	ModeFriendsAndEnemies GameMode = iota
	ModeTriangle
	// ModeMixed alternates, starting with a paired entity at index 0.
	ModeMixed
)

func (m GameMode) String() string {
	switch m {
	case ModeFriendsAndEnemies:
		return "friends_and_enemies"
	case ModeTriangle:
		return "triangle"
	case ModeMixed:
		return "mixed"
	default:
		return fmt.Sprintf("mode(%d)", uint8(m))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (m GameMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *GameMode) UnmarshalText(text []byte) error {
	switch string(text) {
	case "friends_and_enemies", "paired", "":
		*m = ModeFriendsAndEnemies
	case "triangle":
		*m = ModeTriangle
	case "mixed":
		*m = ModeMixed
	default:
		return fmt.Errorf("unknown game mode %q", text)
	}
	return nil
}

// KindAt is the behavior of the dynamic entity at index i.
func (m GameMode) KindAt(i int) entity.Kind {
	switch {
	case m == ModeFriendsAndEnemies, m == ModeMixed && i%2 == 0:
		return entity.KindPaired
	default:
		return entity.KindTriangle
	}
}

// Navigation is re-exported so configs only need this package.
type Navigation = movement.Navigation

const (
	NavigationDefault = movement.NavigationDefault
	NavigationNavMesh = movement.NavigationNavMesh
)

// Placement pins one entity of a hand-written layout. Dynamic entities without peers
// get them sampled like a random spawn would.
type Placement struct {
	Kind     entity.Kind  `yaml:"kind" json:"kind"`
	Position physics.Vec2 `yaml:"position" json:"position"`
	Peers    []int        `yaml:"peers,omitempty" json:"peers,omitempty"`
}

// Config is everything Start needs. It is passed by value and never mutated by the
// controller.
type Config struct {
	Mode        GameMode   `yaml:"mode" json:"mode"`
	Navigation  Navigation `yaml:"navigation" json:"navigation"`
	EntityCount int        `yaml:"entity_count" json:"entity_count"`
	StaticCount int        `yaml:"static_count" json:"static_count"`
	// SpawnRadius and MaxDistanceFromOrigin are derived from the entity count when zero.
	SpawnRadius           float64 `yaml:"spawn_radius" json:"spawn_radius"`
	MaxDistanceFromOrigin float64 `yaml:"max_distance_from_origin" json:"max_distance_from_origin"`
	Speed                 float64 `yaml:"speed" json:"speed"`
	// Seed makes a run reproducible; zero picks a random seed.
	Seed   uint64      `yaml:"seed" json:"seed"`
	Layout []Placement `yaml:"layout,omitempty" json:"layout,omitempty"`
}

func DefaultConfig() Config {
	return Config{
		Mode:        ModeFriendsAndEnemies,
		Navigation:  NavigationDefault,
		EntityCount: 50,
		StaticCount: 0,
		Speed:       5,
	}
}

// Total is the number of entities a run will spawn.
func (c Config) Total() int {
	if len(c.Layout) > 0 {
		return len(c.Layout)
	}
	return c.EntityCount + c.StaticCount
}

// Fitted fills a zero spawn radius or origin cap from viewport.ParametersFor.
func (c Config) Fitted() Config {
	params := viewport.ParametersFor(c.Total())
	if c.SpawnRadius == 0 {
		c.SpawnRadius = float64(params.SpawnArea)
	}
	if c.MaxDistanceFromOrigin == 0 {
		c.MaxDistanceFromOrigin = float64(params.MaxDistance)
	}
	return c
}

// Validate reports the first problem that would make a run ill-defined.
func (c Config) Validate() error {
	if c.EntityCount < 0 || c.StaticCount < 0 {
		return fmt.Errorf("%w: negative entity count", ErrInvalidConfig)
	}
	if total := c.Total(); total < MinEntities || total > MaxEntities {
		return fmt.Errorf("%w: %d entities, want between %d and %d", ErrInvalidConfig, total, MinEntities, MaxEntities)
	}
	if c.Mode > ModeMixed {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, c.Mode)
	}
	if c.Navigation > NavigationNavMesh {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, c.Navigation)
	}
	for _, f := range []struct {
		name  string
		value float64
	}{
		{"speed", c.Speed},
		{"spawn_radius", c.SpawnRadius},
		{"max_distance_from_origin", c.MaxDistanceFromOrigin},
	} {
		if f.value < 0 || math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return fmt.Errorf("%w: %s must be a finite non-negative number, got %v", ErrInvalidConfig, f.name, f.value)
		}
	}
	return c.validateLayout()
}

func (c Config) validateLayout() error {
	for i, p := range c.Layout {
		if !p.Position.IsFinite() {
			return fmt.Errorf("%w: layout[%d]: position is not finite", ErrInvalidConfig, i)
		}
		switch p.Kind {
		case entity.KindStatic:
			if len(p.Peers) > 0 {
				return fmt.Errorf("%w: layout[%d]: static entities have no peers", ErrInvalidConfig, i)
			}
			continue
		case entity.KindPaired, entity.KindTriangle:
		default:
			return fmt.Errorf("%w: layout[%d]: %s", ErrInvalidConfig, i, p.Kind)
		}

		if len(p.Peers) == 0 {
			continue
		}
		if len(p.Peers) != 2 {
			return fmt.Errorf("%w: layout[%d]: want 2 peers, got %d", ErrInvalidConfig, i, len(p.Peers))
		}
		a, b := p.Peers[0], p.Peers[1]
		if a == b || a == i || b == i || a < 0 || b < 0 || a >= len(c.Layout) || b >= len(c.Layout) {
			return fmt.Errorf("%w: layout[%d]: peers %v must be two distinct other entities", ErrInvalidConfig, i, p.Peers)
		}
	}
	return nil
}
