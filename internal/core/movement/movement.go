// Package movement turns a desired position into actual motion. A Strategy is picked
// once per entity (direct stepping or path following); Mover layers the drag override
// and the origin-distance cap on top of it.
package movement

import (
	"github.com/zeusync/formations/internal/core/systems/physics"
)

// Strategy moves one entity's authoritative position.
type Strategy interface {
	Position() physics.Vec2
	// Advance moves toward desired for one tick.
	Advance(dt float64, desired physics.Vec2)
	SetPaused(paused bool)
	// DragTowards moves toward target regardless of pause state.
	DragTowards(dt float64, target physics.Vec2)
	StopDragging()
}

// Navigator is the path-following collaborator used by Seek.
// *nav.Agent satisfies it.
type Navigator interface {
	Position() physics.Vec2
	Warp(p physics.Vec2)
	SetDestination(p physics.Vec2)
	SetHalted(halted bool)
}

// Direct steps straight toward the desired position, at most speed·dt per tick.
type Direct struct {
	position physics.Vec2
	speed    float64
}

var _ Strategy = (*Direct)(nil)

func NewDirect(start physics.Vec2, speed float64) *Direct {
	return &Direct{position: start, speed: speed}
}

func (d *Direct) Position() physics.Vec2 { return d.position }
func (d *Direct) Speed() float64         { return d.speed }

func (d *Direct) Advance(dt float64, desired physics.Vec2) {
	d.position = physics.MoveToward(d.position, desired, dt*d.speed)
}

// SetPaused is a no-op: a paused simulation simply stops calling Advance.
func (d *Direct) SetPaused(bool) {}

func (d *Direct) DragTowards(dt float64, target physics.Vec2) {
	d.position = physics.MoveToward(d.position, target, dt*d.speed)
}

func (d *Direct) StopDragging() {}

// Seek hands the desired position to a Navigator every tick and lets it walk there.
type Seek struct {
	nav      Navigator
	speed    float64
	paused   bool
	dragging bool
}

var _ Strategy = (*Seek)(nil)

func NewSeek(nav Navigator, speed float64) *Seek {
	return &Seek{nav: nav, speed: speed}
}

func (s *Seek) Position() physics.Vec2 { return s.nav.Position() }
func (s *Seek) Paused() bool           { return s.paused }

func (s *Seek) Advance(_ float64, desired physics.Vec2) {
	if s.paused {
		return
	}
	s.nav.SetDestination(desired)
}

// SetPaused halts or releases the navigator. A drag in progress keeps it halted
// until StopDragging.
func (s *Seek) SetPaused(paused bool) {
	s.paused = paused
	s.nav.SetHalted(paused || s.dragging)
}

func (s *Seek) DragTowards(dt float64, target physics.Vec2) {
	s.dragging = true
	s.nav.SetHalted(true)
	s.nav.Warp(physics.MoveToward(s.nav.Position(), target, dt*s.speed))
}

// StopDragging hands control back to the navigator, halted only if paused.
func (s *Seek) StopDragging() {
	s.dragging = false
	s.nav.SetHalted(s.paused)
}
