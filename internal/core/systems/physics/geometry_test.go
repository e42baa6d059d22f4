package physics

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tolerance = 1e-6

func randomPoint(r *rand.Rand, spread float64) Vec2 {
	return Vec2{X: (r.Float64()*2 - 1) * spread, Y: (r.Float64()*2 - 1) * spread}
}

func cross(a, b Vec2) float64 { return a.X*b.Y - a.Y*b.X }

func TestProjectOntoLineLiesOnLine(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 200; i++ {
		a := randomPoint(r, 50)
		b := randomPoint(r, 50)
		if a.Distance(b) < 0.01 {
			continue
		}
		p := randomPoint(r, 50)

		got := ProjectOntoLine(p, a, b, 2)
		// collinearity: (got-a) x (b-a) == 0, normalized by the line length
		c := cross(got.Sub(a), b.Sub(a)) / b.Sub(a).Length()
		assert.InDelta(t, 0, c, tolerance, "projection %v of %v is off line %v-%v", got, p, a, b)

		// the residual is perpendicular to the line
		assert.InDelta(t, 0, p.Sub(got).Dot(b.Sub(a))/b.Sub(a).Length(), 1e-5)
	}
}

func TestProjectOntoLineKnownValues(t *testing.T) {
	got := ProjectOntoLine(Vec2{3, 7}, Vec2{0, 0}, Vec2{10, 0}, 2)
	assert.InDelta(t, 3, got.X, tolerance)
	assert.InDelta(t, 0, got.Y, tolerance)

	got = ProjectOntoLine(Vec2{0, 2}, Vec2{0, 0}, Vec2{2, 2}, 2)
	assert.InDelta(t, 1, got.X, tolerance)
	assert.InDelta(t, 1, got.Y, tolerance)
}

func TestProjectOntoLineZeroLength(t *testing.T) {
	a := Vec2{4, -3}
	got := ProjectOntoLine(Vec2{100, 100}, a, a, 2)

	require.True(t, got.IsFinite())
	assert.InDelta(t, 2, got.Distance(a), tolerance)
	assert.Equal(t, NearestPointAtDistance(a, a, 2), got)
}

func TestNearestPointAtDistance(t *testing.T) {
	tests := []struct {
		name      string
		reference Vec2
		awayFrom  Vec2
		distance  float64
		want      Vec2
	}{
		{"horizontal away to the left", Vec2{10, 0}, Vec2{20, 0}, 2, Vec2{8, 0}},
		{"horizontal away to the right", Vec2{10, 0}, Vec2{0, 0}, 2, Vec2{12, 0}},
		{"vertical away upwards", Vec2{0, 5}, Vec2{0, 0}, 1, Vec2{0, 6}},
		{"vertical away downwards", Vec2{0, 5}, Vec2{0, 9}, 1, Vec2{0, 4}},
		{"diagonal", Vec2{1, 1}, Vec2{0, 0}, math.Sqrt2, Vec2{2, 2}},
		{"coincident", Vec2{3, 3}, Vec2{3, 3}, 2, Vec2{3, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NearestPointAtDistance(tt.reference, tt.awayFrom, tt.distance)
			assert.InDelta(t, tt.want.X, got.X, tolerance)
			assert.InDelta(t, tt.want.Y, got.Y, tolerance)
		})
	}
}

func TestConstrainToFarSideKeepsProtectedCandidate(t *testing.T) {
	candidate := Vec2{-5, -5}
	got := ConstrainToFarSide(candidate, Vec2{0, 0}, Vec2{3, 3}, 2)
	assert.Equal(t, candidate, got)
}

func TestConstrainToFarSideRecomputesCloseCandidate(t *testing.T) {
	got := ConstrainToFarSide(Vec2{-0.1, -0.1}, Vec2{0, 0}, Vec2{3, 3}, 2)
	assert.InDelta(t, 2, got.Length(), tolerance)
	assert.Less(t, got.X, 0.0)
	assert.Less(t, got.Y, 0.0)
}

func TestConstrainToFarSideProperties(t *testing.T) {
	r := rand.New(rand.NewPCG(7, 11))
	for i := 0; i < 100; i++ {
		candidate := randomPoint(r, 30)
		reference := randomPoint(r, 30)
		awayFrom := randomPoint(r, 30)
		switch i % 4 {
		case 0:
			awayFrom.X = reference.X
		case 1:
			awayFrom.Y = reference.Y
		}
		minDistance := 0.1 + r.Float64()*5

		got := ConstrainToFarSide(candidate, reference, awayFrom, minDistance)

		require.True(t, got.IsFinite())
		assert.GreaterOrEqual(t, got.Distance(reference), minDistance-tolerance,
			"case %d: %v too close to %v", i, got, reference)

		// on each axis the result never leans toward awayFrom
		assert.GreaterOrEqual(t, (got.X-reference.X)*(reference.X-awayFrom.X), -tolerance, "case %d x side", i)
		assert.GreaterOrEqual(t, (got.Y-reference.Y)*(reference.Y-awayFrom.Y), -tolerance, "case %d y side", i)
		if awayFrom.X == reference.X && got != candidate {
			assert.InDelta(t, reference.X, got.X, tolerance, "case %d vertical line keeps x", i)
		}
	}
}

func TestCircleIntersectionKnownTriangle(t *testing.T) {
	p1, p2 := CircleIntersection(Vec2{0, 0}, Vec2{10, 0})

	h := 10 * math.Sqrt(0.75)
	assert.InDelta(t, 5, p1.X, tolerance)
	assert.InDelta(t, h, p1.Y, tolerance)
	assert.InDelta(t, 5, p2.X, tolerance)
	assert.InDelta(t, -h, p2.Y, tolerance)
	assert.InDelta(t, 8.66, p1.Y, 0.01)
}

func TestCircleIntersectionProperties(t *testing.T) {
	r := rand.New(rand.NewPCG(3, 5))
	for i := 0; i < 200; i++ {
		a := randomPoint(r, 40)
		b := randomPoint(r, 40)
		d := a.Distance(b)
		if d < 0.01 {
			continue
		}

		p1, p2 := CircleIntersection(a, b)
		for _, p := range []Vec2{p1, p2} {
			assert.InDelta(t, d, p.Distance(a), 1e-9*math.Max(1, d))
			assert.InDelta(t, d, p.Distance(b), 1e-9*math.Max(1, d))
		}

		// reflections across a-b: shared midpoint and the joining segment is perpendicular
		mid := Lerp(p1, p2, 0.5)
		abMid := Lerp(a, b, 0.5)
		assert.InDelta(t, abMid.X, mid.X, 1e-9*math.Max(1, d))
		assert.InDelta(t, abMid.Y, mid.Y, 1e-9*math.Max(1, d))
		assert.InDelta(t, 0, p1.Sub(p2).Dot(b.Sub(a))/(d*d), 1e-9)
	}
}

func TestCircleIntersectionCoincident(t *testing.T) {
	a := Vec2{2, -7}
	p1, p2 := CircleIntersection(a, a)
	assert.Equal(t, a, p1)
	assert.Equal(t, a, p2)
}

func TestMoveToward(t *testing.T) {
	r := rand.New(rand.NewPCG(9, 9))
	for i := 0; i < 200; i++ {
		current := randomPoint(r, 20)
		desired := randomPoint(r, 20)
		maxStep := r.Float64() * 30

		got := MoveToward(current, desired, maxStep)
		assert.LessOrEqual(t, got.Distance(current), maxStep+tolerance)
		if current.Distance(desired) <= maxStep {
			assert.Equal(t, desired, got)
		} else {
			// stays on the segment
			c := cross(got.Sub(current), desired.Sub(current)) / desired.Sub(current).Length()
			assert.InDelta(t, 0, c, tolerance)
		}
	}
}

func TestMoveTowardZeroStep(t *testing.T) {
	current := Vec2{1, 1}
	assert.Equal(t, current, MoveToward(current, Vec2{5, 5}, 0))
	assert.Equal(t, current, MoveToward(current, current, 0))
}

func TestClampMagnitude(t *testing.T) {
	assert.Equal(t, Vec2{3, 4}, ClampMagnitude(Vec2{3, 4}, 5))

	got := ClampMagnitude(Vec2{30, 40}, 5)
	assert.InDelta(t, 3, got.X, tolerance)
	assert.InDelta(t, 4, got.Y, tolerance)

	assert.Equal(t, Zero, ClampMagnitude(Vec2{1, 1}, 0))
}

func TestApproximately(t *testing.T) {
	assert.True(t, Approximately(0, 1e-7))
	assert.True(t, Approximately(1e6, 1e6+1))
	assert.False(t, Approximately(0, 1e-3))
	assert.False(t, Approximately(1, 1.001))
}
