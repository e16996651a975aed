package trigo

import (
	"github.com/openracer/racetrack/common/utils/number"
	"github.com/openracer/racetrack/common/utils/vector"
)

// IntersectionWithLineSegment solves the parametric form of the two
// segments p->p2 and q->q2 with the 2D cross product; both parameters
// must lie in [0, 1] for the segments to meet within their extents.
func IntersectionWithLineSegment(p vector.Vector2, p2 vector.Vector2, q vector.Vector2, q2 vector.Vector2) (intersection vector.Vector2, intersects bool, parallel bool) {

	r := p2.Sub(p)
	s := q2.Sub(q)
	rxs := r.Cross(s)

	// Parallel or collinear segments are treated as non-intersecting
	if number.IsZero(rxs) {
		return vector.MakeNullVector2(), false, true
	}

	t := q.Sub(p).Cross(s) / rxs
	u := q.Sub(p).Cross(r) / rxs

	if 0 <= t && t <= 1 && 0 <= u && u <= 1 {
		return p.Add(r.MultScalar(t)), true, false
	}

	return vector.MakeNullVector2(), false, false
}

func IntersectionWithLineSegmentCheckOnly(p1 vector.Vector2, p2 vector.Vector2, p3 vector.Vector2, p4 vector.Vector2) bool {
	_, intersects, _ := IntersectionWithLineSegment(p1, p2, p3, p4)
	return intersects
}

// NearestPointOnPolyline scans every segment of the polyline for the
// point closest to p; returns the point, the distance and the index of
// the owning segment.
func NearestPointOnPolyline(polyline []vector.Vector2, p vector.Vector2) (nearest vector.Vector2, distance float64, segmentIndex int) {

	distance = -1

	for i := 0; i < len(polyline)-1; i++ {
		seg := vector.MakeSegment2(polyline[i], polyline[i+1])
		candidate := seg.NearestPoint(p)
		d := candidate.Sub(p).Mag()

		if distance < 0 || d < distance {
			nearest = candidate
			distance = d
			segmentIndex = i
		}
	}

	return nearest, distance, segmentIndex
}

// RaycastPolyline returns the distance from origin along direction to
// the nearest polyline intersection, capped at maxDistance.
func RaycastPolyline(origin vector.Vector2, direction vector.Vector2, maxDistance float64, polyline []vector.Vector2) float64 {

	end := origin.Add(direction.SetMag(maxDistance))
	nearest := maxDistance

	for i := 0; i < len(polyline)-1; i++ {
		hit, intersects, _ := IntersectionWithLineSegment(origin, end, polyline[i], polyline[i+1])
		if !intersects {
			continue
		}

		d := hit.Sub(origin).Mag()
		if d < nearest {
			nearest = d
		}
	}

	return nearest
}
