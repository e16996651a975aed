package vector

type Segment2 struct {
	a Vector2
	b Vector2
}

func MakeSegment2(a Vector2, b Vector2) Segment2 {
	return Segment2{a, b}
}

func (s Segment2) GetPointA() Vector2 {
	return s.a
}

func (s Segment2) GetPointB() Vector2 {
	return s.b
}

func (s Segment2) Length() float64 {
	return s.b.Sub(s.a).Mag()
}

func (s Segment2) Center() Vector2 {
	return s.a.Add(s.b).MultScalar(0.5)
}

// NearestPoint returns the point of the segment closest to p, with the
// projection parameter clamped to [0, 1].
func (s Segment2) NearestPoint(p Vector2) Vector2 {
	ab := s.b.Sub(s.a)

	lenSq := ab.MagSq()
	if lenSq == 0 {
		return s.a
	}

	t := p.Sub(s.a).Dot(ab) / lenSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}

	return s.a.Add(ab.MultScalar(t))
}

func (s Segment2) DistanceTo(p Vector2) float64 {
	return s.NearestPoint(p).Sub(p).Mag()
}
