package physics

import "math"

// Epsilon is the relative tolerance used by Approximately.
const Epsilon = 1e-5

// Vec2 is a point or direction on the simulation plane.
type Vec2 struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

var Zero = Vec2{}

func (v Vec2) Add(o Vec2) Vec2         { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2         { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Scale(s float64) Vec2    { return Vec2{v.X * s, v.Y * s} }
func (v Vec2) Dot(o Vec2) float64      { return v.X*o.X + v.Y*o.Y }
func (v Vec2) LengthSquared() float64  { return v.X*v.X + v.Y*v.Y }
func (v Vec2) Length() float64         { return math.Hypot(v.X, v.Y) }
func (v Vec2) Distance(o Vec2) float64 { return math.Hypot(o.X-v.X, o.Y-v.Y) }

// IsFinite reports whether both components are neither NaN nor infinite.
func (v Vec2) IsFinite() bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0)
}

// Approximately compares two floats with a tolerance that scales with their magnitude.
func Approximately(a, b float64) bool {
	scale := math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
	return math.Abs(a-b) <= Epsilon*scale
}

// Lerp interpolates between a and b; t is not clamped.
func Lerp(a, b Vec2, t float64) Vec2 {
	return Vec2{a.X + (b.X-a.X)*t, a.Y + (b.Y-a.Y)*t}
}

// MoveToward steps from current toward target by at most maxStep.
// The target is returned exactly once it is within reach.
func MoveToward(current, target Vec2, maxStep float64) Vec2 {
	delta := target.Sub(current)
	dist := delta.Length()
	if dist <= maxStep || dist == 0 {
		return target
	}
	if maxStep <= 0 {
		return current
	}
	return current.Add(delta.Scale(maxStep / dist))
}

// ClampMagnitude shortens v so that it is no longer than maxLength.
func ClampMagnitude(v Vec2, maxLength float64) Vec2 {
	sq := v.LengthSquared()
	if sq <= maxLength*maxLength {
		return v
	}
	if maxLength <= 0 {
		return Zero
	}
	return v.Scale(maxLength / math.Sqrt(sq))
}
