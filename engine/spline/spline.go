// Package spline evaluates closed centripetal Catmull-Rom curves and
// builds distance to parameter lookup tables for them.
//
// The centripetal parameterization (alpha = 0.5) is required: with
// uniform knots the curve develops cusps and self-intersections at
// unevenly spaced control points, which corrupts the boundary
// offsetting performed by the track builder.
package spline

import (
	"math"

	"github.com/openracer/racetrack/common/utils/vector"
)

const alpha = 0.5

// minKnotInterval is substituted for the chord-length knot interval of
// coincident or near-coincident control points.
const minKnotInterval = 1e-6

func knotInterval(a vector.Vector2, b vector.Vector2) float64 {
	interval := math.Pow(b.Sub(a).Mag(), alpha)
	if interval < minKnotInterval {
		return minKnotInterval
	}

	return interval
}

// segmentTangents computes the Hermite endpoint tangents of the curve
// segment p1->p2 surrounded by p0 and p3, scaled by the centripetal
// knot intervals.
func segmentTangents(p0, p1, p2, p3 vector.Vector2) (m1 vector.Vector2, m2 vector.Vector2) {
	t01 := knotInterval(p0, p1)
	t12 := knotInterval(p1, p2)
	t23 := knotInterval(p2, p3)

	m1 = p2.Sub(p1).Add(
		p1.Sub(p0).DivScalar(t01).Sub(p2.Sub(p0).DivScalar(t01 + t12)).MultScalar(t12),
	)
	m2 = p2.Sub(p1).Add(
		p3.Sub(p2).DivScalar(t23).Sub(p3.Sub(p1).DivScalar(t12 + t23)).MultScalar(t12),
	)

	return m1, m2
}

func segmentControlPoints(points []vector.Vector2, segment int) (p0, p1, p2, p3 vector.Vector2) {
	n := len(points)

	// The curve is closed; indexing wraps modulo count, the seam is not
	// special-cased.
	p0 = points[((segment-1)+n)%n]
	p1 = points[segment%n]
	p2 = points[(segment+1)%n]
	p3 = points[(segment+2)%n]

	return p0, p1, p2, p3
}

// Point evaluates the curve on the given segment at t in [0, 1] through
// the Hermite basis.
func Point(points []vector.Vector2, segment int, t float64) vector.Vector2 {
	p0, p1, p2, p3 := segmentControlPoints(points, segment)
	m1, m2 := segmentTangents(p0, p1, p2, p3)

	t2 := t * t
	t3 := t2 * t

	h00 := 2*t3 - 3*t2 + 1
	h10 := t3 - 2*t2 + t
	h01 := -2*t3 + 3*t2
	h11 := t3 - t2

	return p1.MultScalar(h00).
		Add(m1.MultScalar(h10)).
		Add(p2.MultScalar(h01)).
		Add(m2.MultScalar(h11))
}

// Tangent returns the first derivative of the same basis; it is not
// normalized.
func Tangent(points []vector.Vector2, segment int, t float64) vector.Vector2 {
	p0, p1, p2, p3 := segmentControlPoints(points, segment)
	m1, m2 := segmentTangents(p0, p1, p2, p3)

	t2 := t * t

	h00 := 6*t2 - 6*t
	h10 := 3*t2 - 4*t + 1
	h01 := -6*t2 + 6*t
	h11 := 3*t2 - 2*t

	return p1.MultScalar(h00).
		Add(m1.MultScalar(h10)).
		Add(p2.MultScalar(h01)).
		Add(m2.MultScalar(h11))
}

// PointAtParam evaluates the curve at a global parameter in [0, count),
// where the integer part selects the segment and the fractional part is
// the local t. The parameter wraps modulo count.
func PointAtParam(points []vector.Vector2, param float64) vector.Vector2 {
	segment, t := splitParam(param, len(points))
	return Point(points, segment, t)
}

func TangentAtParam(points []vector.Vector2, param float64) vector.Vector2 {
	segment, t := splitParam(param, len(points))
	return Tangent(points, segment, t)
}

func splitParam(param float64, count int) (segment int, t float64) {
	n := float64(count)

	param = math.Mod(param, n)
	if param < 0 {
		param += n
	}

	segment = int(param)
	if segment >= count {
		segment = count - 1
	}

	return segment, param - float64(segment)
}
