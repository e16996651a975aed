package track

// Surface classifies a position on the track area.
type Surface int

const (
	SurfaceRoad Surface = iota
	SurfaceOffroad
)

func (s Surface) String() string {
	switch s {
	case SurfaceRoad:
		return "road"
	case SurfaceOffroad:
		return "offroad"
	}

	return "unknown"
}
