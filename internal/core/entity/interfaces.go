package entity

import (
	"fmt"

	"github.com/zeusync/formations/internal/core/systems/physics"
)

// PersonalSpace is the minimum separation every entity wants around itself.
const PersonalSpace = 1.0

// Kind identifies the behavior variant of an entity
type Kind uint8

const (
	KindPaired Kind = iota
	KindTriangle
	KindStatic
)

func (k Kind) String() string {
	switch k {
	case KindPaired:
		return "paired"
	case KindTriangle:
		return "triangle"
	case KindStatic:
		return "static"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "paired", "friends_and_enemies":
		*k = KindPaired
	case "triangle":
		*k = KindTriangle
	case "static":
		*k = KindStatic
	default:
		return fmt.Errorf("unknown entity kind %q", text)
	}
	return nil
}

// Entity is one member of the simulation roster.
// Implementations are not safe for concurrent use.
type Entity interface {
	physics.Positioned

	// Identity

	Kind() Kind
	Index() int
	PersonalSpace() float64
	// Peers returns the roster indices this entity reads positions from.
	Peers() []int

	// Tick

	// DesiredPosition reads peer positions and returns where the entity wants to be.
	// Static entities report false.
	DesiredPosition() (physics.Vec2, bool)
	Apply(dt float64, desired physics.Vec2)
	UpdatePosition(dt float64)
	SetPaused(paused bool)

	// Selection and drag

	Select()
	Deselect()
	Selected() bool
	DragTowards(dt float64, target physics.Vec2)
	StopDragging()
	Dragging() bool
}

// Visualizer draws the helper lines of the selected entity. It reads positions from the
// given entities on its own every frame.
type Visualizer interface {
	ShowPair(selected, friend, enemy Entity)
	ShowTriangle(selected, corner1, corner2 Entity)
	Hide()
}
