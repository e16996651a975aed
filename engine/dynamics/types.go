package dynamics

import (
	"github.com/openracer/racetrack/common/utils/vector"
	"github.com/openracer/racetrack/engine/track"
)

// Input is the raw control vector. Steer is in [-1, 1], throttle and
// brake in [0, 1]. Values outside those ranges are accepted by the
// model but not clamped; validating external input is the caller's
// concern.
type Input struct {
	Steer    float64 `json:"steer"`
	Throttle float64 `json:"throttle"`
	Brake    float64 `json:"brake"`
}

// SmoothedInput is the exponentially smoothed control state carried
// across ticks, plus the steering angle derived from it.
type SmoothedInput struct {
	Steer         float64 `json:"steer"`
	Throttle      float64 `json:"throttle"`
	Brake         float64 `json:"brake"`
	SteeringAngle float64 `json:"steeringAngle"`
}

// VehicleState is one vehicle snapshot. It is a value; Step returns a
// new one and never mutates its argument.
type VehicleState struct {
	Position vector.Vector2 `json:"position"`
	Velocity vector.Vector2 `json:"velocity"`
	Heading  float64        `json:"heading"`
	YawRate  float64        `json:"yawRate"`
	Speed    float64        `json:"speed"`

	Input SmoothedInput `json:"input"`

	Surface track.Surface `json:"surface"`

	// longitudinal acceleration of the previous tick; load transfer
	// lags one tick because it is a consequence of dynamics not yet
	// solved this tick
	LongitudinalAccel float64 `json:"longitudinalAccel"`

	RearSlipAngle float64 `json:"rearSlipAngle"`
}

// MakeVehicleState returns a vehicle at rest at the given pose.
func MakeVehicleState(position vector.Vector2, heading float64) VehicleState {
	return VehicleState{
		Position: position,
		Velocity: vector.MakeNullVector2(),
		Heading:  heading,
		Surface:  track.SurfaceRoad,
	}
}
