package track

import (
	"github.com/pkg/errors"

	"github.com/openracer/racetrack/common/utils/number"
	"github.com/openracer/racetrack/common/utils/vector"
	"github.com/openracer/racetrack/engine/spline"
)

const (
	// arc-length table resolution, per curve segment
	arcSamplesPerSegment = 100

	// boundary polyline resolution
	minBoundarySamples        = 200
	boundarySamplesPerSegment = 25

	// nearest-centerline search tuning
	coarseScanStep   = 2.0
	refineIterations = 16
)

// Build samples the control-point spline into a usable circuit, with
// the start line at arc distance zero. It fails with a configuration
// error when fewer than 3 control points or fewer than 1 checkpoint
// are supplied; these are the only failure modes of the whole engine.
func Build(controlPoints []ControlPoint, checkpointCount int) (*Track, error) {
	return BuildWithStart(controlPoints, checkpointCount, 0)
}

// BuildWithStart places the start line (and checkpoint gate 0) at the
// given arc distance along the centerline instead of at the spline
// seam. The offset wraps around the circuit length.
func BuildWithStart(controlPoints []ControlPoint, checkpointCount int, startOffset float64) (*Track, error) {

	if len(controlPoints) < 3 {
		return nil, errors.Errorf("track: need at least 3 control points, got %d", len(controlPoints))
	}

	if checkpointCount < 1 {
		return nil, errors.Errorf("track: need at least 1 checkpoint, got %d", checkpointCount)
	}

	positions := make([]vector.Vector2, len(controlPoints))
	for i, cp := range controlPoints {
		positions[i] = cp.Position
	}

	table := spline.BuildArcLengthTable(positions, arcSamplesPerSegment)
	total := table.TotalLength()

	t := &Track{
		controlPoints: controlPoints,
		positions:     positions,
		table:         table,
		totalLength:   total,
	}

	t.controlPointDistances = make([]float64, len(controlPoints))
	for i := range controlPoints {
		t.controlPointDistances[i] = table.DistanceAtParam(float64(i))
	}

	startOffset = number.Mod(startOffset, total)

	t.buildBoundaries()
	t.buildCheckpoints(checkpointCount, startOffset)
	t.buildCoarseSamples()

	t.startPosition = t.CenterAtDistance(startOffset)
	t.startHeading = t.ForwardAtDistance(startOffset).Angle()

	return t, nil
}

func (t *Track) buildBoundaries() {

	sampleCount := len(t.controlPoints) * boundarySamplesPerSegment
	if sampleCount < minBoundarySamples {
		sampleCount = minBoundarySamples
	}

	t.innerBoundary = make([]vector.Vector2, 0, sampleCount+1)
	t.outerBoundary = make([]vector.Vector2, 0, sampleCount+1)

	for i := 0; i < sampleCount; i++ {
		distance := float64(i) / float64(sampleCount) * t.totalLength

		center := t.CenterAtDistance(distance)
		forward := t.ForwardAtDistance(distance)
		halfWidth := t.HalfWidthAt(distance)

		left := forward.OrthogonalCounterClockwise()
		right := forward.OrthogonalClockwise()

		t.innerBoundary = append(t.innerBoundary, center.Add(left.MultScalar(halfWidth)))
		t.outerBoundary = append(t.outerBoundary, center.Add(right.MultScalar(halfWidth)))
	}

	// close the loops by repeating the first sample
	t.innerBoundary = append(t.innerBoundary, t.innerBoundary[0])
	t.outerBoundary = append(t.outerBoundary, t.outerBoundary[0])
}

func (t *Track) buildCheckpoints(checkpointCount int, startOffset float64) {

	t.checkpoints = make([]Checkpoint, 0, checkpointCount)

	for i := 0; i < checkpointCount; i++ {
		distance := number.Mod(startOffset+float64(i)/float64(checkpointCount)*t.totalLength, t.totalLength)

		center := t.CenterAtDistance(distance)
		forward := t.ForwardAtDistance(distance)
		halfWidth := t.HalfWidthAt(distance)

		left := forward.OrthogonalCounterClockwise()
		right := forward.OrthogonalClockwise()

		t.checkpoints = append(t.checkpoints, Checkpoint{
			Left:      center.Add(left.MultScalar(halfWidth)),
			Right:     center.Add(right.MultScalar(halfWidth)),
			Center:    center,
			Forward:   forward,
			ArcLength: distance,
		})
	}
}

func (t *Track) buildCoarseSamples() {

	count := int(t.totalLength/coarseScanStep) + 1

	t.coarseSamples = make([]coarseSample, 0, count)

	for i := 0; i < count; i++ {
		distance := float64(i) * coarseScanStep

		t.coarseSamples = append(t.coarseSamples, coarseSample{
			distance: distance,
			point:    t.CenterAtDistance(distance),
		})
	}
}
