package physics

import "math"

// ProjectOntoLine projects point onto the infinite line through lineA and lineB.
//
// The projection of v onto a direction s is (v·s)/(s·s)·s; it is computed relative to
// lineA and translated back. When the line has zero length there is nothing to project
// onto, so the point fallbackDistance away from lineA (see NearestPointAtDistance) is
// returned instead.
func ProjectOntoLine(point, lineA, lineB Vec2, fallbackDistance float64) Vec2 {
	toPoint := point.Sub(lineA)
	direction := lineA.Sub(lineB)

	lineLengthSq := direction.Dot(direction)
	if Approximately(0, lineLengthSq) {
		return NearestPointAtDistance(lineA, lineB, fallbackDistance)
	}

	t := toPoint.Dot(direction) / lineLengthSq
	return lineA.Add(direction.Scale(t))
}

// NearestPointAtDistance returns the point exactly distance away from reference, on the
// line through reference and awayFrom, on the side of reference facing away from awayFrom.
//
// Along a non-vertical line y = slope·x + intercept, substituting into the circle
// (x - x1)² + (y - y1)² = r² gives x = x1 ± r/sqrt(slope²+1).
func NearestPointAtDistance(reference, awayFrom Vec2, distance float64) Vec2 {
	xAbove := reference.X > awayFrom.X
	yAbove := reference.Y > awayFrom.Y

	changeInX := reference.X - awayFrom.X
	changeInY := reference.Y - awayFrom.Y
	if Approximately(0, changeInX) {
		if yAbove {
			return Vec2{X: reference.X, Y: reference.Y + distance}
		}
		return Vec2{X: reference.X, Y: reference.Y - distance}
	}

	slope := changeInY / changeInX
	intercept := reference.Y - slope*reference.X

	sign := -1.0
	if xAbove {
		sign = 1
	}

	x := reference.X + sign*distance/math.Sqrt(slope*slope+1)
	return Vec2{X: x, Y: slope*x + intercept}
}

// ConstrainToFarSide keeps candidate when it is strictly beyond reference (as seen from
// awayFrom) on both axes and at least minDistance from reference. Otherwise it is replaced
// by NearestPointAtDistance(reference, awayFrom, minDistance).
func ConstrainToFarSide(candidate, reference, awayFrom Vec2, minDistance float64) Vec2 {
	var xProtected, yProtected bool
	if reference.X > awayFrom.X {
		xProtected = candidate.X > reference.X
	} else {
		xProtected = candidate.X < reference.X
	}
	if reference.Y > awayFrom.Y {
		yProtected = candidate.Y > reference.Y
	} else {
		yProtected = candidate.Y < reference.Y
	}

	if xProtected && yProtected && candidate.Distance(reference) >= minDistance {
		return candidate
	}
	return NearestPointAtDistance(reference, awayFrom, minDistance)
}

// equilateralHeight is sqrt(0.75): the apex height of an equilateral triangle per unit side.
var equilateralHeight = math.Sqrt(0.75)

// CircleIntersection intersects two circles centered on centerA and centerB whose radius
// is the distance between the centers. The two results are the apexes of the two
// equilateral triangles built on the segment. Coincident centers collapse to centerA.
func CircleIntersection(centerA, centerB Vec2) (Vec2, Vec2) {
	distance := centerA.Distance(centerB)
	if Approximately(0, distance) {
		return centerA, centerA
	}

	mid := Lerp(centerA, centerB, 0.5)
	// h/d where h = sqrt(0.75·d²)
	k := equilateralHeight
	dx := centerA.X - centerB.X
	dy := centerA.Y - centerB.Y

	first := Vec2{X: mid.X + k*dy, Y: mid.Y - k*dx}
	second := Vec2{X: mid.X - k*dy, Y: mid.Y + k*dx}
	return first, second
}
