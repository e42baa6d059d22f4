package nav

import (
	"github.com/zeusync/formations/internal/core/systems/physics"
)

// Agent follows a path toward its destination at a fixed speed.
// It owns its own step integration; callers only steer it.
type Agent struct {
	mesh     *Mesh
	position physics.Vec2
	speed    float64

	destination    physics.Vec2
	hasDestination bool
	halted         bool

	path        []physics.Vec2
	pathVersion uint64
	needsRepath bool
	// planned is the destination the current path was searched for.
	planned     physics.Vec2
	unreachable bool
}

func (a *Agent) Position() physics.Vec2 { return a.position }
func (a *Agent) Speed() float64         { return a.speed }
func (a *Agent) Halted() bool           { return a.halted }

// Destination returns the current destination, if one was ever set.
func (a *Agent) Destination() (physics.Vec2, bool) {
	return a.destination, a.hasDestination
}

// Path returns the remaining waypoints.
func (a *Agent) Path() []physics.Vec2 { return a.path }

// SetDestination steers the agent. A destination that stays near the one the path was
// planned for, and is still in plain sight of the last leg, only moves the final
// waypoint. A failed search is not retried until the destination moves away or the
// obstacles change.
func (a *Agent) SetDestination(p physics.Vec2) {
	switch {
	case !a.hasDestination:
		a.needsRepath = true
	case a.planned.Distance(p) > a.mesh.cfg.RepathDistance:
		a.needsRepath = true
	case a.unreachable:
	case len(a.path) == 0, a.mesh.IsBlocked(p):
		a.needsRepath = true
	case !a.mesh.Grid().lineOfSight(a.lastLeg(), p):
		a.needsRepath = true
	default:
		a.path[len(a.path)-1] = p
	}
	a.destination = p
	a.hasDestination = true
}

// Unreachable reports whether the last search for the destination found no path.
func (a *Agent) Unreachable() bool { return a.unreachable }

// lastLeg is where the final straight segment of the path starts.
func (a *Agent) lastLeg() physics.Vec2 {
	if len(a.path) > 1 {
		return a.path[len(a.path)-2]
	}
	return a.position
}

// SetHalted stops or releases the agent without touching its destination.
func (a *Agent) SetHalted(halted bool) {
	a.halted = halted
}

// Warp moves the agent directly, bypassing path following.
func (a *Agent) Warp(p physics.Vec2) {
	if a.position == p {
		return
	}
	a.position = p
	a.needsRepath = true
}

func (a *Agent) step(dt float64) {
	if a.halted || !a.hasDestination || dt <= 0 {
		return
	}
	if a.needsRepath || a.pathVersion != a.mesh.version {
		a.path = a.mesh.FindPath(a.position, a.destination)
		a.mesh.pathSearches++
		a.pathVersion = a.mesh.version
		a.needsRepath = false
		a.planned = a.destination
		a.unreachable = a.path == nil
	}

	budget := a.speed * dt
	for budget > 0 && len(a.path) > 0 {
		next := a.path[0]
		d := a.position.Distance(next)
		if d <= budget {
			a.position = next
			budget -= d
			a.path = a.path[1:]
			continue
		}
		a.position = physics.MoveToward(a.position, next, budget)
		budget = 0
	}
}
