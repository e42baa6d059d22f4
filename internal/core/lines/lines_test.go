package lines

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/formations/internal/core/entity"
	"github.com/zeusync/formations/internal/core/events/bus"
	"github.com/zeusync/formations/internal/core/observability/log"
	"github.com/zeusync/formations/internal/core/systems/physics"
)

func roster(vis entity.Visualizer, points ...physics.Vec2) *entity.Roster {
	r := entity.NewRoster(len(points))
	for _, p := range points {
		r.Append(entity.NewStatic(entity.Args{
			Index:                 r.Len(),
			Roster:                r,
			Start:                 p,
			Speed:                 10,
			MaxDistanceFromOrigin: 100,
			Visualizer:            vis,
		}))
	}
	return r
}

func TestShowPairFollowsLivePositions(t *testing.T) {
	c := New(nil, log.NewNop())
	r := roster(c, physics.Vec2{X: 0}, physics.Vec2{X: 1}, physics.Vec2{X: 2})

	c.ShowPair(r.At(0), r.At(1), r.At(2))
	require.True(t, c.Visible())
	assert.Equal(t, []Segment{
		{From: physics.Vec2{X: 0}, To: physics.Vec2{X: 1}},
		{From: physics.Vec2{X: 1}, To: physics.Vec2{X: 2}},
	}, c.Segments())

	r.At(1).DragTowards(1, physics.Vec2{X: 1, Y: 3})
	segs := c.Segments()
	assert.Equal(t, physics.Vec2{X: 1, Y: 3}, segs[0].To)
	assert.Equal(t, physics.Vec2{X: 1, Y: 3}, segs[1].From)
}

func TestShowTriangleDrawsFromSelected(t *testing.T) {
	c := New(nil, log.NewNop())
	r := roster(c, physics.Vec2{X: 5, Y: 5}, physics.Vec2{X: 0}, physics.Vec2{X: 10})

	c.ShowTriangle(r.At(0), r.At(1), r.At(2))
	segs := c.Segments()
	require.Len(t, segs, 2)
	assert.Equal(t, physics.Vec2{X: 5, Y: 5}, segs[0].From)
	assert.Equal(t, physics.Vec2{X: 5, Y: 5}, segs[1].From)
	assert.Equal(t, physics.Vec2{X: 10}, segs[1].To)
}

func TestHidePublishesOnce(t *testing.T) {
	b := bus.New()
	var events []bus.Event
	_, err := b.Subscribe(Topic, bus.Wildcard, func(e bus.Event) error {
		events = append(events, e)
		return nil
	})
	require.NoError(t, err)

	c := New(b, log.NewNop())
	r := roster(c, physics.Vec2{}, physics.Vec2{X: 1}, physics.Vec2{X: 2})

	c.ShowPair(r.At(0), r.At(1), r.At(2))
	c.Hide()
	c.Hide()

	require.Len(t, events, 2)
	assert.Equal(t, EventShown, events[0].Type())
	assert.Equal(t, EventHidden, events[1].Type())
	sel, ok := events[0].Data().(Selection)
	require.True(t, ok)
	assert.Equal(t, Selection{Selected: 0, Kind: entity.KindStatic, Peers: []int{1, 2}}, sel)
	assert.Empty(t, c.Segments())
	assert.False(t, c.Visible())
}

func TestSetWidthIgnoresNonPositive(t *testing.T) {
	c := New(nil, log.NewNop())
	assert.Equal(t, DefaultWidth, c.Width())
	c.SetWidth(0.4)
	c.SetWidth(-1)
	assert.Equal(t, 0.4, c.Width())
}
