package movement

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/formations/internal/core/nav"
	"github.com/zeusync/formations/internal/core/systems/physics"
)

type fakeNavigator struct {
	position    physics.Vec2
	destination physics.Vec2
	destSets    int
	halted      bool
}

func (f *fakeNavigator) Position() physics.Vec2 { return f.position }
func (f *fakeNavigator) Warp(p physics.Vec2)    { f.position = p }
func (f *fakeNavigator) SetHalted(h bool)       { f.halted = h }
func (f *fakeNavigator) SetDestination(p physics.Vec2) {
	f.destination = p
	f.destSets++
}

func TestDirectAdvanceIsStepLimited(t *testing.T) {
	d := NewDirect(physics.Vec2{}, 2)
	d.Advance(0.5, physics.Vec2{X: 10})
	assert.Equal(t, physics.Vec2{X: 1}, d.Position())

	d.Advance(10, physics.Vec2{X: 10})
	assert.Equal(t, physics.Vec2{X: 10}, d.Position(), "clamps exactly at the target")
}

func TestMoverSuppressesAdvanceWhileDragging(t *testing.T) {
	m := NewMoverWith(NewDirect(physics.Vec2{}, 1), 100)

	m.DragTowards(1, physics.Vec2{Y: 10})
	assert.Equal(t, physics.Vec2{Y: 1}, m.Position())
	assert.True(t, m.Dragging())

	m.UpdatePosition(1, physics.Vec2{X: 10})
	assert.Equal(t, physics.Vec2{Y: 1}, m.Position(), "normal tick path is suppressed")

	m.StopDragging()
	m.UpdatePosition(1, physics.Vec2{X: 10, Y: 1})
	assert.Equal(t, physics.Vec2{X: 1, Y: 1}, m.Position())
}

func TestMoverDragClampsToOriginCap(t *testing.T) {
	m := NewMoverWith(NewDirect(physics.Vec2{X: 4.5}, 100), 5)
	m.DragTowards(1, physics.Vec2{X: 50})
	assert.InDelta(t, 5, m.Position().X, 1e-9)
}

func TestSeekSetsDestinationEachTick(t *testing.T) {
	f := &fakeNavigator{}
	s := NewSeek(f, 3)

	s.Advance(0.1, physics.Vec2{X: 2})
	s.Advance(0.1, physics.Vec2{X: 3})
	assert.Equal(t, 2, f.destSets)
	assert.Equal(t, physics.Vec2{X: 3}, f.destination)
}

func TestSeekPauseHaltsWithoutLosingDestination(t *testing.T) {
	f := &fakeNavigator{}
	s := NewSeek(f, 3)
	s.Advance(0.1, physics.Vec2{X: 2})

	s.SetPaused(true)
	assert.True(t, f.halted)
	s.Advance(0.1, physics.Vec2{X: 9})
	assert.Equal(t, physics.Vec2{X: 2}, f.destination)

	s.SetPaused(false)
	assert.False(t, f.halted)
}

func TestSeekDragRestoresPauseState(t *testing.T) {
	f := &fakeNavigator{}
	s := NewSeek(f, 2)
	m := NewMoverWith(s, 100)

	m.SetPaused(true)
	m.DragTowards(1, physics.Vec2{X: 10})
	assert.True(t, f.halted)
	assert.Equal(t, physics.Vec2{X: 2}, f.position, "drag moves even while paused")

	m.StopDragging()
	assert.True(t, f.halted, "still paused after the drag")

	m.SetPaused(false)
	m.DragTowards(1, physics.Vec2{X: 10})
	assert.True(t, f.halted, "drag halts path following")
	m.StopDragging()
	assert.False(t, f.halted, "resumes after the drag")
}

func TestSeekResumeDuringDragStaysHalted(t *testing.T) {
	f := &fakeNavigator{}
	m := NewMoverWith(NewSeek(f, 2), 100)

	m.SetPaused(true)
	m.DragTowards(1, physics.Vec2{Y: 10})
	m.SetPaused(false)
	assert.True(t, f.halted, "resuming mid drag keeps the navigator halted")

	m.StopDragging()
	assert.False(t, f.halted)
}

func TestSeekWithMeshIgnoresResumeWhileDragged(t *testing.T) {
	mesh := nav.NewMesh(nav.DefaultConfig(10))
	m := NewMover(NavigationNavMesh, mesh, physics.Vec2{}, 2, 10)
	m.UpdatePosition(1, physics.Vec2{X: 5})

	m.SetPaused(true)
	m.DragTowards(1, physics.Vec2{Y: 2})
	require.Equal(t, physics.Vec2{Y: 2}, m.Position())

	m.SetPaused(false)
	mesh.Step(1)
	assert.Equal(t, physics.Vec2{Y: 2}, m.Position(), "the path follower must not move a dragged entity")
	assert.True(t, m.Dragging())

	m.StopDragging()
	mesh.Step(1)
	assert.NotEqual(t, physics.Vec2{Y: 2}, m.Position(), "path following resumes once the drag ends")
}

func TestNewMoverPicksVariant(t *testing.T) {
	mesh := nav.NewMesh(nav.DefaultConfig(10))

	direct := NewMover(NavigationDefault, mesh, physics.Vec2{}, 1, 10)
	_, ok := direct.Strategy().(*Direct)
	assert.True(t, ok)

	seek := NewMover(NavigationNavMesh, mesh, physics.Vec2{X: 1}, 1, 10)
	_, ok = seek.Strategy().(*Seek)
	assert.True(t, ok)
	require.Len(t, mesh.Agents(), 1)
	assert.Equal(t, physics.Vec2{X: 1}, seek.Position())

	fallback := NewMover(NavigationNavMesh, nil, physics.Vec2{}, 1, 10)
	_, ok = fallback.Strategy().(*Direct)
	assert.True(t, ok)
}

func TestSeekWithMeshMovesOnStep(t *testing.T) {
	mesh := nav.NewMesh(nav.DefaultConfig(10))
	m := NewMover(NavigationNavMesh, mesh, physics.Vec2{}, 2, 10)

	m.UpdatePosition(0.5, physics.Vec2{X: 5})
	assert.Equal(t, physics.Vec2{}, m.Position(), "the navigator integrates, not Advance")
	mesh.Step(0.5)
	assert.InDelta(t, 1, m.Position().X, 1e-9)
}

func TestNavigationText(t *testing.T) {
	var n Navigation
	require.NoError(t, n.UnmarshalText([]byte("navmesh")))
	assert.Equal(t, NavigationNavMesh, n)
	assert.Error(t, n.UnmarshalText([]byte("teleport")))
	b, err := NavigationDefault.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "default", string(b))
}
