// Package lines keeps the helper lines shown for the selected entity. Segments are
// resolved from live entity positions whenever they are read.
package lines

import (
	"github.com/zeusync/formations/internal/core/entity"
	"github.com/zeusync/formations/internal/core/events/bus"
	"github.com/zeusync/formations/internal/core/observability/log"
	"github.com/zeusync/formations/internal/core/systems/physics"
)

const (
	Topic       = "selection"
	EventShown  = "selection.shown"
	EventHidden = "selection.hidden"
)

// DefaultWidth is used until SetWidth is called.
const DefaultWidth = 0.1

// Segment is one line between two points.
type Segment struct {
	From physics.Vec2 `json:"from"`
	To   physics.Vec2 `json:"to"`
}

// Selection describes the shown lines; it is the payload of EventShown.
type Selection struct {
	Selected int         `json:"selected"`
	Kind     entity.Kind `json:"kind"`
	Peers    []int       `json:"peers"`
}

type pair struct {
	from, to entity.Entity
}

// Controller implements entity.Visualizer.
type Controller struct {
	bus    bus.EventBus
	log    log.Log
	pairs  []pair
	width  float64
	active *Selection
}

var _ entity.Visualizer = (*Controller)(nil)

// New creates a Controller. eventBus may be nil.
func New(eventBus bus.EventBus, logger log.Log) *Controller {
	return &Controller{
		bus:   eventBus,
		log:   logger.With(log.Component("lines")),
		width: DefaultWidth,
	}
}

// ShowPair draws selected -> friend and friend -> enemy.
func (c *Controller) ShowPair(selected, friend, enemy entity.Entity) {
	c.show(selected, []int{friend.Index(), enemy.Index()}, pair{selected, friend}, pair{friend, enemy})
}

// ShowTriangle draws selected -> corner1 and selected -> corner2.
func (c *Controller) ShowTriangle(selected, corner1, corner2 entity.Entity) {
	c.show(selected, []int{corner1.Index(), corner2.Index()}, pair{selected, corner1}, pair{selected, corner2})
}

func (c *Controller) Hide() {
	if c.active == nil {
		return
	}
	hidden := *c.active
	c.pairs = nil
	c.active = nil
	c.publish(EventHidden, hidden)
}

func (c *Controller) show(selected entity.Entity, peers []int, pairs ...pair) {
	c.pairs = pairs
	c.active = &Selection{Selected: selected.Index(), Kind: selected.Kind(), Peers: peers}
	c.publish(EventShown, *c.active)
}

func (c *Controller) publish(eventType string, sel Selection) {
	if c.bus == nil {
		return
	}
	if err := c.bus.Publish(Topic, bus.NewEvent(eventType, "lines", sel)); err != nil {
		c.log.Warn("selection handler failed", log.String("event", eventType), log.Error(err))
	}
}

// Visible reports whether any lines are shown.
func (c *Controller) Visible() bool { return c.active != nil }

// Active returns the shown selection, if any.
func (c *Controller) Active() (Selection, bool) {
	if c.active == nil {
		return Selection{}, false
	}
	return *c.active, true
}

// Segments resolves the shown lines from current positions.
func (c *Controller) Segments() []Segment {
	if len(c.pairs) == 0 {
		return nil
	}
	out := make([]Segment, 0, len(c.pairs))
	for _, p := range c.pairs {
		out = append(out, Segment{From: p.from.Position(), To: p.to.Position()})
	}
	return out
}

func (c *Controller) Width() float64 { return c.width }

// SetWidth ignores non-positive widths.
func (c *Controller) SetWidth(width float64) {
	if width > 0 {
		c.width = width
	}
}

// Reset forgets the shown lines without publishing, used when the roster is rebuilt.
func (c *Controller) Reset() {
	c.pairs = nil
	c.active = nil
}
