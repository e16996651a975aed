// Package track builds drivable closed circuits from ordered control
// points: two offset boundary polylines, perpendicular checkpoint
// gates, and centerline queries used for surface classification.
package track

import (
	"github.com/openracer/racetrack/common/utils/number"
	"github.com/openracer/racetrack/common/utils/vector"
	"github.com/openracer/racetrack/engine/spline"
)

// ControlPoint is one node of a track definition; an ordered closed
// list of them defines the circuit.
type ControlPoint struct {
	Position  vector.Vector2
	HalfWidth float64
}

// Checkpoint is a gate segment perpendicular to the centerline at a
// known arc-length position. Gates are ordered by ascending arc length
// and must be crossed strictly in index order.
type Checkpoint struct {
	Left      vector.Vector2
	Right     vector.Vector2
	Center    vector.Vector2
	Forward   vector.Vector2
	ArcLength float64
}

type coarseSample struct {
	distance float64
	point    vector.Vector2
}

// Track is immutable after construction; the same reference is shared,
// unmodified, across every tick of an episode.
type Track struct {
	controlPoints []ControlPoint
	positions     []vector.Vector2

	innerBoundary []vector.Vector2
	outerBoundary []vector.Vector2
	checkpoints   []Checkpoint

	table       spline.ArcLengthTable
	totalLength float64

	// arc-length position of each control point, used to interpolate
	// half-width by distance rather than by raw index
	controlPointDistances []float64

	coarseSamples []coarseSample

	startPosition vector.Vector2
	startHeading  float64
}

func (t *Track) ControlPoints() []ControlPoint {
	return t.controlPoints
}

func (t *Track) InnerBoundary() []vector.Vector2 {
	return t.innerBoundary
}

func (t *Track) OuterBoundary() []vector.Vector2 {
	return t.outerBoundary
}

func (t *Track) Checkpoints() []Checkpoint {
	return t.checkpoints
}

func (t *Track) TotalLength() float64 {
	return t.totalLength
}

func (t *Track) StartPosition() vector.Vector2 {
	return t.startPosition
}

func (t *Track) StartHeading() float64 {
	return t.startHeading
}

// CenterAtDistance evaluates the centerline at an arc-length position;
// the distance wraps modulo the total length.
func (t *Track) CenterAtDistance(distance float64) vector.Vector2 {
	return spline.PointAtParam(t.positions, t.table.ParamAtDistance(distance))
}

// ForwardAtDistance returns the normalized centerline tangent at an
// arc-length position.
func (t *Track) ForwardAtDistance(distance float64) vector.Vector2 {
	return spline.TangentAtParam(t.positions, t.table.ParamAtDistance(distance)).Normalize()
}

// HalfWidthAt interpolates the drivable half-width at an arc-length
// position between the two bracketing control points.
func (t *Track) HalfWidthAt(distance float64) float64 {
	distance = number.Mod(distance, t.totalLength)

	n := len(t.controlPoints)

	lo := n - 1
	for i := 0; i < n; i++ {
		if t.controlPointDistances[i] > distance {
			lo = i - 1
			break
		}
	}

	if lo < 0 {
		// before the first control point: bracket wraps across the seam
		lo = n - 1
	}

	hi := (lo + 1) % n

	loDist := t.controlPointDistances[lo]
	hiDist := t.controlPointDistances[hi]

	span := number.Mod(hiDist-loDist, t.totalLength)
	offset := number.Mod(distance-loDist, t.totalLength)

	if number.IsZero(span) {
		return t.controlPoints[lo].HalfWidth
	}

	frac := offset / span

	return t.controlPoints[lo].HalfWidth + (t.controlPoints[hi].HalfWidth-t.controlPoints[lo].HalfWidth)*frac
}

// NearestCenterline locates the centerline point closest to p: a coarse
// linear scan over precomputed samples bounds the search to one
// bracket, then a ternary search refines the arc-length position inside
// it. Bounded cost without a full fine scan.
func (t *Track) NearestCenterline(p vector.Vector2) (arcDistance float64, center vector.Vector2, distance float64) {

	bestIndex := 0
	bestDistSq := -1.0

	for i, sample := range t.coarseSamples {
		dSq := sample.point.Sub(p).MagSq()
		if bestDistSq < 0 || dSq < bestDistSq {
			bestDistSq = dSq
			bestIndex = i
		}
	}

	lo := t.coarseSamples[bestIndex].distance - coarseScanStep
	hi := t.coarseSamples[bestIndex].distance + coarseScanStep

	for i := 0; i < refineIterations; i++ {
		m1 := lo + (hi-lo)/3
		m2 := hi - (hi-lo)/3

		d1 := t.CenterAtDistance(m1).Sub(p).MagSq()
		d2 := t.CenterAtDistance(m2).Sub(p).MagSq()

		if d1 < d2 {
			hi = m2
		} else {
			lo = m1
		}
	}

	arcDistance = number.Mod((lo+hi)/2, t.totalLength)
	center = t.CenterAtDistance(arcDistance)
	distance = center.Sub(p).Mag()

	return arcDistance, center, distance
}

// SurfaceAt classifies a position: on-road when its distance to the
// centerline does not exceed the interpolated half-width there. A
// vehicle exactly on the boundary line counts as on-road.
func (t *Track) SurfaceAt(p vector.Vector2) Surface {
	arcDistance, _, distance := t.NearestCenterline(p)

	return classifySurface(distance, t.HalfWidthAt(arcDistance))
}

func classifySurface(distance float64, halfWidth float64) Surface {
	if distance <= halfWidth {
		return SurfaceRoad
	}

	return SurfaceOffroad
}
