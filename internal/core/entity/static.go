package entity

import (
	"github.com/zeusync/formations/internal/core/movement"
	"github.com/zeusync/formations/internal/core/nav"
	"github.com/zeusync/formations/internal/core/systems/physics"
)

// Static never moves on its own; it only follows drags. With path-following navigation
// it is also an obstacle the other entities route around.
type Static struct {
	index      int
	position   physics.Vec2
	speed      float64
	maxDist    float64
	visualizer Visualizer
	obstacle   *nav.Obstacle
	selected   bool
	dragging   bool
}

var _ Entity = (*Static)(nil)

func NewStatic(args Args) *Static {
	s := &Static{
		index:      args.Index,
		position:   args.Start,
		speed:      args.Speed,
		maxDist:    args.MaxDistanceFromOrigin,
		visualizer: args.Visualizer,
	}
	if args.Navigation == movement.NavigationNavMesh && args.Mesh != nil {
		s.obstacle = args.Mesh.AddObstacle(args.Start, PersonalSpace)
	}
	return s
}

func (s *Static) Kind() Kind              { return KindStatic }
func (s *Static) Index() int              { return s.index }
func (s *Static) Position() physics.Vec2  { return s.position }
func (s *Static) PersonalSpace() float64  { return PersonalSpace }
func (s *Static) Peers() []int            { return nil }
func (s *Static) Selected() bool          { return s.selected }
func (s *Static) Dragging() bool          { return s.dragging }
func (s *Static) Obstacle() *nav.Obstacle { return s.obstacle }

func (s *Static) DesiredPosition() (physics.Vec2, bool) { return physics.Vec2{}, false }
func (s *Static) Apply(float64, physics.Vec2)            {}
func (s *Static) UpdatePosition(float64)                 {}
func (s *Static) SetPaused(bool)                         {}

func (s *Static) DragTowards(dt float64, target physics.Vec2) {
	s.dragging = true
	s.position = physics.MoveToward(s.position, physics.ClampMagnitude(target, s.maxDist), dt*s.speed)
	if s.obstacle != nil {
		s.obstacle.Move(s.position)
	}
}

func (s *Static) StopDragging() { s.dragging = false }

// Select has no helper lines to show; any previous lines are cleared.
func (s *Static) Select() {
	s.selected = true
	if s.visualizer != nil {
		s.visualizer.Hide()
	}
}

func (s *Static) Deselect() {
	if !s.selected {
		return
	}
	s.selected = false
	if s.visualizer != nil {
		s.visualizer.Hide()
	}
}
