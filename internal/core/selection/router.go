// Package selection routes a single pointer to at most one selected entity.
package selection

import (
	"github.com/zeusync/formations/internal/core/entity"
	"github.com/zeusync/formations/internal/core/observability/log"
	"github.com/zeusync/formations/internal/core/systems/physics"
)

// Roster is the read side of entity.Roster the router needs.
type Roster interface {
	Len() int
	At(i int) entity.Entity
}

// Router owns the drag session. It is driven from the engine goroutine only.
type Router struct {
	log    log.Log
	roster Roster

	selected entity.Entity
	pressed  bool
	dragging bool
	last     physics.Vec2
	fresh    bool
}

func NewRouter(logger log.Log) *Router {
	return &Router{log: logger.With(log.Component("selection"))}
}

// Reset forgets the current selection and binds the router to a new roster.
// Entities of the previous roster are not touched.
func (r *Router) Reset(roster Roster) {
	r.roster = roster
	r.selected = nil
	r.pressed = false
	r.dragging = false
	r.fresh = false
}

// Selected returns the selected entity, if any.
func (r *Router) Selected() (entity.Entity, bool) {
	return r.selected, r.selected != nil
}

func (r *Router) Dragging() bool { return r.dragging }

// SelectAt presses the pointer at point. Any drag in progress ends, the previous entity
// is deselected and the hit entity (if any) becomes selected.
func (r *Router) SelectAt(point physics.Vec2) (entity.Entity, bool) {
	r.endDrag()
	if r.selected != nil {
		r.selected.Deselect()
		r.selected = nil
	}

	hit := r.hitTest(point)
	if hit == nil {
		r.log.Debug("selection cleared", log.Float64("x", point.X), log.Float64("y", point.Y))
		return nil, false
	}

	r.selected = hit
	r.pressed = true
	r.last = point
	hit.Select()
	r.log.Debug("entity selected", log.Int("index", hit.Index()), log.String("kind", hit.Kind().String()))
	return hit, true
}

// DragTo moves the selected entity toward point while the pointer is pressed.
func (r *Router) DragTo(point physics.Vec2, dt float64) {
	if r.selected == nil || !r.pressed {
		return
	}
	r.dragging = true
	r.last = point
	r.fresh = true
	r.selected.DragTowards(dt, point)
}

// Hold keeps a held drag going on ticks without pointer movement, so the last input
// position wins until release.
func (r *Router) Hold(dt float64) {
	if r.dragging && !r.fresh && r.selected != nil {
		r.selected.DragTowards(dt, r.last)
	}
	r.fresh = false
}

// ReleaseDrag ends the drag session; the entity stays selected.
func (r *Router) ReleaseDrag() {
	r.endDrag()
}

func (r *Router) endDrag() {
	if r.dragging && r.selected != nil {
		r.selected.StopDragging()
	}
	r.pressed = false
	r.dragging = false
	r.fresh = false
}

// hitTest returns the nearest entity whose personal space contains point.
func (r *Router) hitTest(point physics.Vec2) entity.Entity {
	if r.roster == nil {
		return nil
	}
	var (
		best     entity.Entity
		bestDist float64
	)
	for i := 0; i < r.roster.Len(); i++ {
		e := r.roster.At(i)
		if e == nil {
			continue
		}
		d := e.Position().Distance(point)
		if d > e.PersonalSpace() {
			continue
		}
		if best == nil || d < bestDist {
			best, bestDist = e, d
		}
	}
	return best
}
