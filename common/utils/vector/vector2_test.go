package vector

import (
	"encoding/json"
	"math"
	"testing"
)

func TestAngleConvention(t *testing.T) {
	cases := []struct {
		v    Vector2
		want float64
	}{
		{MakeVector2(1, 0), 0},
		{MakeVector2(0, 1), math.Pi / 2},
		{MakeVector2(-1, 0), math.Pi},
		{MakeVector2(0, -1), 3 * math.Pi / 2},
	}

	for _, c := range cases {
		if got := c.v.Angle(); math.Abs(got-c.want) > 1e-9 {
			t.Fatalf("%s: angle %f, want %f", c.v.String(), got, c.want)
		}
	}

	if got := MakeNullVector2().Angle(); got != 0 {
		t.Fatalf("null vector angle %f, want 0", got)
	}
}

func TestMakeVector2FromAngleRoundTrips(t *testing.T) {
	for _, angle := range []float64{0, 0.7, math.Pi / 2, 3, 5.5} {
		v := MakeVector2FromAngle(angle)

		if math.Abs(v.Mag()-1) > 1e-9 {
			t.Fatalf("angle %f: magnitude %f, want 1", angle, v.Mag())
		}
		if math.Abs(v.Angle()-angle) > 1e-9 {
			t.Fatalf("angle %f came back as %f", angle, v.Angle())
		}
	}
}

func TestRotateIsCounterClockwise(t *testing.T) {
	v := MakeVector2(1, 0).Rotate(math.Pi / 2)

	if v.Sub(MakeVector2(0, 1)).Mag() > 1e-9 {
		t.Fatalf("rotating +x by π/2 gave %s, want +y", v.String())
	}
}

func TestOrthogonalsArePerpendicular(t *testing.T) {
	v := MakeVector2(3, 4)

	cw := v.OrthogonalClockwise()
	ccw := v.OrthogonalCounterClockwise()

	if !isZeroDot(v, cw) || !isZeroDot(v, ccw) {
		t.Fatalf("orthogonals not perpendicular: %s, %s", cw.String(), ccw.String())
	}

	// clockwise means negative cross with the original
	if v.Cross(cw) >= 0 {
		t.Fatalf("clockwise orthogonal %s on the wrong side", cw.String())
	}
	if v.Cross(ccw) <= 0 {
		t.Fatalf("counterclockwise orthogonal %s on the wrong side", ccw.String())
	}
}

func isZeroDot(a Vector2, b Vector2) bool {
	return math.Abs(a.Dot(b)) < 1e-9
}

func TestLimitPreservesDirection(t *testing.T) {
	v := MakeVector2(30, 40)

	limited := v.Limit(10)
	if math.Abs(limited.Mag()-10) > 1e-9 {
		t.Fatalf("limited magnitude %f, want 10", limited.Mag())
	}
	if math.Abs(limited.Angle()-v.Angle()) > 1e-9 {
		t.Fatal("Limit changed the direction")
	}

	under := MakeVector2(1, 2)
	if under.Limit(10) != under {
		t.Fatal("Limit altered a vector already under the cap")
	}
}

func TestCloneAndToFloatArray(t *testing.T) {
	v := MakeVector2(1.5, -2.25)

	if v.Clone() != v {
		t.Fatal("Clone does not equal its source")
	}

	if arr := v.ToFloatArray(); arr[0] != 1.5 || arr[1] != -2.25 {
		t.Fatalf("ToFloatArray gave %v", arr)
	}
}

func TestJSONRoundTrip(t *testing.T) {
	v := MakeVector2(12.3456, -7.89)

	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("could not marshal: %v", err)
	}

	if string(data) != "[12.3456,-7.8900]" {
		t.Fatalf("marshalled as %s", data)
	}

	var back Vector2
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("could not unmarshal: %v", err)
	}

	if !back.Equals(v) {
		t.Fatalf("round trip gave %s, want %s", back.String(), v.String())
	}
}

func TestSegmentGeometry(t *testing.T) {
	seg := MakeSegment2(MakeVector2(0, 0), MakeVector2(10, 0))

	if seg.GetPointA() != MakeVector2(0, 0) || seg.GetPointB() != MakeVector2(10, 0) {
		t.Fatal("segment endpoints do not round trip")
	}
	if seg.Length() != 10 {
		t.Fatalf("segment length %f, want 10", seg.Length())
	}
	if seg.Center() != MakeVector2(5, 0) {
		t.Fatalf("segment center %s, want (5, 0)", seg.Center().String())
	}
}

func TestSegmentNearestPointClampsToEndpoints(t *testing.T) {
	seg := MakeSegment2(MakeVector2(0, 0), MakeVector2(10, 0))

	cases := []struct {
		p    Vector2
		want Vector2
	}{
		{MakeVector2(4, 3), MakeVector2(4, 0)},    // interior projection
		{MakeVector2(-5, 2), MakeVector2(0, 0)},   // clamped to a
		{MakeVector2(15, -2), MakeVector2(10, 0)}, // clamped to b
	}

	for _, c := range cases {
		if got := seg.NearestPoint(c.p); !got.Equals(c.want) {
			t.Fatalf("nearest point to %s: got %s, want %s", c.p.String(), got.String(), c.want.String())
		}
	}

	if d := seg.DistanceTo(MakeVector2(4, 3)); math.Abs(d-3) > 1e-9 {
		t.Fatalf("distance %f, want 3", d)
	}
}

func TestDegenerateSegmentNearestPoint(t *testing.T) {
	seg := MakeSegment2(MakeVector2(2, 2), MakeVector2(2, 2))

	if got := seg.NearestPoint(MakeVector2(10, 10)); got != MakeVector2(2, 2) {
		t.Fatalf("degenerate segment nearest point %s, want (2, 2)", got.String())
	}
}