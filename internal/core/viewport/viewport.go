// Package viewport models the orthographic camera a viewer uses to watch the simulation.
// Animated transitions are explicit tween state advanced once per tick.
package viewport

import (
	"math"

	"github.com/zeusync/formations/internal/core/systems/physics"
)

const (
	spawnScaler     = 2.0
	distanceBuffer  = 5.0
	cameraBuffer    = 5
	lineWidthScaler = 0.1
	lineWidthOffset = 10.0

	// MinSize is the smallest half-height the camera can zoom to.
	MinSize = 5.0
	// MaxSizeScaler bounds zooming out relative to the fitted size.
	MaxSizeScaler = 1.5
	// ResetSpeed is the size change per second while the camera resets.
	ResetSpeed = 30.0
)

// Parameters are the world bounds derived from the number of entities.
type Parameters struct {
	SpawnArea   int     `json:"spawn_area"`
	MaxDistance int     `json:"max_distance"`
	CameraSize  int     `json:"camera_size"`
	LineWidth   float64 `json:"line_width"`
}

// ParametersFor sizes the world so that n entities have room to spread out.
func ParametersFor(n int) Parameters {
	if n < 0 {
		n = 0
	}
	spawn := spawnScaler * math.Sqrt(float64(n))
	maxDistance := int(math.Ceil(spawn + distanceBuffer))
	size := maxDistance + cameraBuffer
	return Parameters{
		SpawnArea:   int(math.Ceil(spawn)),
		MaxDistance: maxDistance,
		CameraSize:  size,
		LineWidth:   LineWidthFor(float64(size)),
	}
}

// WithMaxDistance re-derives the camera bounds for an explicit origin-distance cap.
func (p Parameters) WithMaxDistance(maxDistance float64) Parameters {
	if maxDistance <= 0 {
		return p
	}
	p.MaxDistance = int(math.Ceil(maxDistance))
	p.CameraSize = p.MaxDistance + cameraBuffer
	p.LineWidth = LineWidthFor(float64(p.CameraSize))
	return p
}

// LineWidthFor keeps helper lines readable at the given camera size.
func LineWidthFor(size float64) float64 {
	return lineWidthScaler * math.Sqrt(math.Max(1, size-lineWidthOffset))
}

// State is the camera as seen by a viewer.
type State struct {
	Center    physics.Vec2 `json:"center"`
	Size      float64      `json:"size"`
	LineWidth float64      `json:"line_width"`
	Resetting bool         `json:"resetting"`
}

type tween struct {
	startSize   float64
	goalSize    float64
	startCenter physics.Vec2
	difference  float64
	travelled   float64
}

// Camera is not safe for concurrent use.
type Camera struct {
	params Parameters
	size   float64
	center physics.Vec2
	reset  *tween
}

func NewCamera(params Parameters) *Camera {
	return &Camera{params: params, size: float64(params.CameraSize)}
}

func (c *Camera) Parameters() Parameters { return c.params }
func (c *Camera) Size() float64          { return c.size }
func (c *Camera) Center() physics.Vec2   { return c.center }
func (c *Camera) LineWidth() float64     { return LineWidthFor(c.size) }
func (c *Camera) Resetting() bool        { return c.reset != nil }

func (c *Camera) State() State {
	return State{Center: c.center, Size: c.size, LineWidth: c.LineWidth(), Resetting: c.Resetting()}
}

// Fit adopts new world parameters and animates toward them.
func (c *Camera) Fit(params Parameters) {
	c.params = params
	c.Reset()
}

// Zoom changes the size by delta, cancelling a running reset.
func (c *Camera) Zoom(delta float64) {
	c.reset = nil
	c.size = c.clampSize(c.size + delta)
}

// ZoomAt zooms by delta while keeping the world point anchor at the same place on screen.
func (c *Camera) ZoomAt(delta float64, anchor physics.Vec2) {
	before := c.size
	c.Zoom(delta)
	if before <= 0 {
		return
	}
	ratio := c.size / before
	c.center = c.clampCenter(anchor.Sub(anchor.Sub(c.center).Scale(ratio)))
}

// Pan moves the center by delta, clamped per axis to the world bounds.
func (c *Camera) Pan(delta physics.Vec2) {
	c.reset = nil
	c.center = c.clampCenter(c.center.Add(delta))
}

// Reset starts animating back to the fitted size, centered on the origin.
func (c *Camera) Reset() {
	goal := float64(c.params.CameraSize)
	c.reset = &tween{
		startSize:   c.size,
		goalSize:    goal,
		startCenter: c.center,
		difference:  math.Abs(goal - c.size),
	}
}

// Advance steps a running reset by dt seconds.
func (c *Camera) Advance(dt float64) {
	if c.reset == nil {
		return
	}
	r := c.reset
	r.travelled += ResetSpeed * dt

	t := 1.0
	if r.difference > 0 {
		t = math.Min(1, r.travelled/r.difference)
	}
	c.size = r.startSize + (r.goalSize-r.startSize)*t
	c.center = physics.Lerp(r.startCenter, physics.Zero, t)
	if t >= 1 {
		c.size = r.goalSize
		c.center = physics.Zero
		c.reset = nil
	}
}

func (c *Camera) clampSize(size float64) float64 {
	upper := math.Max(MinSize, float64(c.params.CameraSize)*MaxSizeScaler)
	return math.Min(math.Max(size, MinSize), upper)
}

func (c *Camera) clampCenter(p physics.Vec2) physics.Vec2 {
	limit := float64(c.params.MaxDistance)
	return physics.Vec2{
		X: math.Min(math.Max(p.X, -limit), limit),
		Y: math.Min(math.Max(p.Y, -limit), limit),
	}
}
