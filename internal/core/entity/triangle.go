package entity

import (
	"github.com/zeusync/formations/internal/core/systems/physics"
)

// Triangle completes an equilateral triangle with its two corners, taking whichever apex
// is nearer to where it already stands.
type Triangle struct {
	base
	corner1 int
	corner2 int
}

var _ Entity = (*Triangle)(nil)

func NewTriangle(args Args, corner1, corner2 int) *Triangle {
	return &Triangle{base: newBase(args), corner1: corner1, corner2: corner2}
}

func (t *Triangle) Kind() Kind          { return KindTriangle }
func (t *Triangle) Corners() (int, int) { return t.corner1, t.corner2 }
func (t *Triangle) Peers() []int        { return []int{t.corner1, t.corner2} }

// apexes returns both capped candidates, the chosen one first.
func (t *Triangle) apexes() (physics.Vec2, physics.Vec2, bool) {
	c1, c2, ok := t.peers(t.corner1, t.corner2)
	if !ok {
		return physics.Vec2{}, physics.Vec2{}, false
	}

	first, second := physics.CircleIntersection(c1.Position(), c2.Position())
	first = physics.ClampMagnitude(first, t.maxDist)
	second = physics.ClampMagnitude(second, t.maxDist)

	current := t.Position()
	if current.Distance(first) < current.Distance(second) {
		return first, second, true
	}
	// ties go to the second apex
	return second, first, true
}

func (t *Triangle) DesiredPosition() (physics.Vec2, bool) {
	chosen, _, ok := t.apexes()
	return chosen, ok
}

// Alternate returns the apex that was not chosen this tick.
func (t *Triangle) Alternate() (physics.Vec2, bool) {
	_, other, ok := t.apexes()
	return other, ok
}

func (t *Triangle) UpdatePosition(dt float64) {
	if desired, ok := t.DesiredPosition(); ok {
		t.Apply(dt, desired)
	}
}

func (t *Triangle) Select() {
	t.selected = true
	if t.visualizer == nil {
		return
	}
	if c1, c2, ok := t.peers(t.corner1, t.corner2); ok {
		t.visualizer.ShowTriangle(t, c1, c2)
	}
}
