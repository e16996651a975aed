package spline

import (
	"sort"

	"github.com/openracer/racetrack/common/utils/number"
	"github.com/openracer/racetrack/common/utils/vector"
)

// ArcLengthTable maps distance travelled along the curve to the curve's
// native parameter. Built once per track, read-only afterwards.
type ArcLengthTable struct {
	lengths []float64
	params  []float64
	total   float64
}

// BuildArcLengthTable walks every segment of the closed curve at
// samplesPerSegment steps, accumulating chord lengths into a monotonic
// (length, parameter) table.
func BuildArcLengthTable(points []vector.Vector2, samplesPerSegment int) ArcLengthTable {
	count := len(points)
	n := count * samplesPerSegment

	lengths := make([]float64, 0, n+1)
	params := make([]float64, 0, n+1)

	accumulated := 0.0
	prev := Point(points, 0, 0)

	lengths = append(lengths, 0)
	params = append(params, 0)

	for i := 1; i <= n; i++ {
		param := float64(i) / float64(samplesPerSegment)
		point := PointAtParam(points, param)

		accumulated += point.Sub(prev).Mag()
		prev = point

		lengths = append(lengths, accumulated)
		params = append(params, param)
	}

	return ArcLengthTable{
		lengths: lengths,
		params:  params,
		total:   accumulated,
	}
}

func (table ArcLengthTable) TotalLength() float64 {
	return table.total
}

// ParamAtDistance binary-searches the table for the bracket containing
// the given distance and linearly interpolates the parameter within it.
// Distance wraps modulo the total length; the curve is a closed loop.
func (table ArcLengthTable) ParamAtDistance(distance float64) float64 {
	distance = number.Mod(distance, table.total)

	// First index whose cumulative length exceeds distance
	hi := sort.SearchFloat64s(table.lengths, distance)
	if hi <= 0 {
		return table.params[0]
	}
	if hi >= len(table.lengths) {
		return table.params[len(table.params)-1]
	}

	lo := hi - 1

	span := table.lengths[hi] - table.lengths[lo]
	if number.IsZero(span) {
		return table.params[lo]
	}

	frac := (distance - table.lengths[lo]) / span

	return table.params[lo] + (table.params[hi]-table.params[lo])*frac
}

// DistanceAtParam is the inverse lookup, interpolating cumulative
// length at a curve parameter. The parameter wraps modulo the segment
// count.
func (table ArcLengthTable) DistanceAtParam(param float64) float64 {
	last := len(table.params) - 1
	param = number.Mod(param, table.params[last])

	hi := sort.SearchFloat64s(table.params, param)
	if hi <= 0 {
		return table.lengths[0]
	}
	if hi > last {
		return table.lengths[last]
	}

	lo := hi - 1

	span := table.params[hi] - table.params[lo]
	if number.IsZero(span) {
		return table.lengths[lo]
	}

	frac := (param - table.params[lo]) / span

	return table.lengths[lo] + (table.lengths[hi]-table.lengths[lo])*frac
}
