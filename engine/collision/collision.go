// Package collision detects vehicle penetration of the track boundary
// polylines and resolves it by sliding: the vehicle is pushed out along
// the contact normal and keeps only a friction-scaled tangential
// velocity, never a bounce.
package collision

import (
	"math"

	"github.com/openracer/racetrack/common/utils/number"
	"github.com/openracer/racetrack/common/utils/trigo"
	"github.com/openracer/racetrack/common/utils/vector"
	"github.com/openracer/racetrack/engine/dynamics"
	"github.com/openracer/racetrack/engine/track"
)

type Config struct {
	// PaddedRadius is the vehicle's bounding radius plus padding. It
	// must exceed MaxSpeed × dt or a fast vehicle could cross a wall
	// between two ticks.
	PaddedRadius float64

	// WallFriction scales the tangential velocity kept after contact;
	// < 1, so sliding along a wall always costs speed.
	WallFriction float64

	// HeadingAlignment blends the heading toward the slide direction on
	// contact so the vehicle visually follows the wall.
	HeadingAlignment float64
}

func DefaultConfig() Config {
	return Config{
		PaddedRadius:     1.2,
		WallFriction:     0.7,
		HeadingAlignment: 0.5,
	}
}

// Result describes one boundary contact.
type Result struct {
	Hit         bool
	Penetration float64
	// Normal points outward from the boundary toward the vehicle.
	Normal vector.Vector2
	Point  vector.Vector2
}

// Detect finds the nearest point on either boundary polyline; a hit
// occurs when it lies closer than the padded radius. When both
// boundaries are hit the deeper penetration wins.
func Detect(trk *track.Track, position vector.Vector2, cfg Config) Result {

	result := detectAgainst(trk, trk.InnerBoundary(), position, cfg)
	outer := detectAgainst(trk, trk.OuterBoundary(), position, cfg)

	if outer.Hit && (!result.Hit || outer.Penetration > result.Penetration) {
		result = outer
	}

	return result
}

func detectAgainst(trk *track.Track, boundary []vector.Vector2, position vector.Vector2, cfg Config) Result {

	nearest, distance, _ := trigo.NearestPointOnPolyline(boundary, position)

	if distance >= cfg.PaddedRadius {
		return Result{}
	}

	var normal vector.Vector2
	if number.IsZero(distance) {
		// vehicle center exactly on the wall; orient the normal toward
		// the centerline instead of dividing by zero
		_, center, _ := trk.NearestCenterline(position)
		normal = center.Sub(nearest).Normalize()
	} else {
		normal = position.Sub(nearest).Normalize()
	}

	return Result{
		Hit:         true,
		Penetration: cfg.PaddedRadius - distance,
		Normal:      normal,
		Point:       nearest,
	}
}

// Resolve pushes the vehicle out of the wall and converts the impact
// into a slide: the normal velocity component is absorbed, the
// tangential component survives scaled by wall friction. One formula
// covers glancing and head-on hits; speed loss grows with impact angle.
// No-op when there was no contact.
func Resolve(state dynamics.VehicleState, result Result, cfg Config) dynamics.VehicleState {

	if !result.Hit {
		return state
	}

	state.Position = state.Position.Add(result.Normal.MultScalar(result.Penetration))

	normalSpeed := state.Velocity.Dot(result.Normal)
	if normalSpeed < 0 {
		tangential := state.Velocity.Sub(result.Normal.MultScalar(normalSpeed))
		state.Velocity = tangential.MultScalar(cfg.WallFriction)
		state.Speed = state.Velocity.Mag()

		if !state.Velocity.IsNull() {
			state.Heading = alignHeading(state.Heading, state.Velocity.Angle(), cfg.HeadingAlignment)
		}
	}

	return state
}

// alignHeading nudges heading toward target by the given fraction of
// the shortest angular difference.
func alignHeading(heading float64, target float64, fraction float64) float64 {
	delta := math.Mod(target-heading, 2*math.Pi)
	if delta > math.Pi {
		delta -= 2 * math.Pi
	} else if delta < -math.Pi {
		delta += 2 * math.Pi
	}

	return heading + delta*fraction
}
