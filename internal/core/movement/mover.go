package movement

import (
	"fmt"

	"github.com/zeusync/formations/internal/core/nav"
	"github.com/zeusync/formations/internal/core/systems/physics"
)

// Navigation selects the movement variant.
type Navigation uint8

const (
	NavigationDefault Navigation = iota
	NavigationNavMesh
)

func (n Navigation) String() string {
	switch n {
	case NavigationDefault:
		return "default"
	case NavigationNavMesh:
		return "navmesh"
	default:
		return fmt.Sprintf("navigation(%d)", uint8(n))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (n Navigation) MarshalText() ([]byte, error) {
	return []byte(n.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (n *Navigation) UnmarshalText(text []byte) error {
	switch string(text) {
	case "default", "direct", "":
		*n = NavigationDefault
	case "navmesh", "nav_mesh", "seek":
		*n = NavigationNavMesh
	default:
		return fmt.Errorf("unknown navigation %q", text)
	}
	return nil
}

// Mover is the per-entity movement component: a Strategy plus the drag override and
// the origin-distance cap.
type Mover struct {
	strategy Strategy
	maxDist  float64
	dragging bool
}

// NewMover builds the strategy for the given navigation variant. A NavMesh variant
// needs a mesh; without one it falls back to direct movement.
func NewMover(navigation Navigation, mesh *nav.Mesh, start physics.Vec2, speed, maxDistanceFromOrigin float64) *Mover {
	var s Strategy
	if navigation == NavigationNavMesh && mesh != nil {
		s = NewSeek(mesh.AddAgent(start, speed), speed)
	} else {
		s = NewDirect(start, speed)
	}
	return &Mover{strategy: s, maxDist: maxDistanceFromOrigin}
}

// NewMoverWith wraps an existing strategy.
func NewMoverWith(s Strategy, maxDistanceFromOrigin float64) *Mover {
	return &Mover{strategy: s, maxDist: maxDistanceFromOrigin}
}

func (m *Mover) Position() physics.Vec2 { return m.strategy.Position() }
func (m *Mover) Strategy() Strategy     { return m.strategy }
func (m *Mover) Dragging() bool         { return m.dragging }

// UpdatePosition runs the strategy unless a drag is in progress.
func (m *Mover) UpdatePosition(dt float64, desired physics.Vec2) {
	if m.dragging {
		return
	}
	m.strategy.Advance(dt, desired)
}

func (m *Mover) SetPaused(paused bool) {
	m.strategy.SetPaused(paused)
}

// DragTowards clamps target to the origin cap and moves toward it, ignoring pause.
func (m *Mover) DragTowards(dt float64, target physics.Vec2) {
	m.dragging = true
	m.strategy.DragTowards(dt, physics.ClampMagnitude(target, m.maxDist))
}

func (m *Mover) StopDragging() {
	m.dragging = false
	m.strategy.StopDragging()
}
