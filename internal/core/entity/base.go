package entity

import (
	"github.com/zeusync/formations/internal/core/movement"
	"github.com/zeusync/formations/internal/core/nav"
	"github.com/zeusync/formations/internal/core/systems/physics"
)

// Args carries what every entity needs at construction.
type Args struct {
	Index  int
	Roster *Roster
	Start  physics.Vec2
	Speed  float64
	// MaxDistanceFromOrigin caps every computed or dragged position.
	MaxDistanceFromOrigin float64
	Navigation            movement.Navigation
	// Mesh is required for movement.NavigationNavMesh.
	Mesh       *nav.Mesh
	Visualizer Visualizer
}

type base struct {
	index      int
	roster     *Roster
	mover      *movement.Mover
	visualizer Visualizer
	maxDist    float64
	selected   bool
}

func newBase(args Args) base {
	return base{
		index:      args.Index,
		roster:     args.Roster,
		mover:      movement.NewMover(args.Navigation, args.Mesh, args.Start, args.Speed, args.MaxDistanceFromOrigin),
		visualizer: args.Visualizer,
		maxDist:    args.MaxDistanceFromOrigin,
	}
}

func (b *base) Index() int             { return b.index }
func (b *base) Position() physics.Vec2 { return b.mover.Position() }
func (b *base) PersonalSpace() float64 { return PersonalSpace }
func (b *base) Selected() bool         { return b.selected }
func (b *base) Dragging() bool         { return b.mover.Dragging() }
func (b *base) SetPaused(paused bool)  { b.mover.SetPaused(paused) }
func (b *base) StopDragging()          { b.mover.StopDragging() }
func (b *base) Mover() *movement.Mover { return b.mover }

func (b *base) Apply(dt float64, desired physics.Vec2) {
	b.mover.UpdatePosition(dt, desired)
}

func (b *base) DragTowards(dt float64, target physics.Vec2) {
	b.mover.DragTowards(dt, target)
}

func (b *base) Deselect() {
	if !b.selected {
		return
	}
	b.selected = false
	if b.visualizer != nil {
		b.visualizer.Hide()
	}
}

// peers resolves two roster indices; ok is false when either is missing.
func (b *base) peers(i, j int) (Entity, Entity, bool) {
	first, second := b.roster.At(i), b.roster.At(j)
	return first, second, first != nil && second != nil
}
