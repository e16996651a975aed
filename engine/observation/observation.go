// Package observation derives the normalized feature vector a training
// harness feeds to a policy. It reads world snapshots and never writes
// them; the engine has no dependency on this package.
package observation

import (
	"math"

	"github.com/openracer/racetrack/common/utils/number"
	"github.com/openracer/racetrack/common/utils/trigo"
	"github.com/openracer/racetrack/common/utils/vector"
	"github.com/openracer/racetrack/engine/simulation"
)

type Config struct {
	RayCount       int
	RayMaxDistance float64
	// RayFanAngle is the total angular spread of the ray fan, centered
	// on the vehicle heading.
	RayFanAngle float64

	MaxSpeed   float64
	MaxYawRate float64
}

func DefaultConfig() Config {
	return Config{
		RayCount:       9,
		RayMaxDistance: 60,
		RayFanAngle:    math.Pi,
		MaxSpeed:       40,
		MaxYawRate:     3.0,
	}
}

// Size of the observation vector: RayCount rays plus speed, yaw rate,
// steer, lap progress and centerline distance.
func (cfg Config) Size() int {
	return cfg.RayCount + 5
}

// CastRays returns the distance to the nearest boundary along each ray
// of a fan centered on the vehicle heading, capped at the maximum ray
// distance.
func CastRays(state simulation.WorldState, cfg Config) []float64 {

	distances := make([]float64, cfg.RayCount)

	origin := state.Vehicle.Position
	step := cfg.RayFanAngle / float64(cfg.RayCount-1)
	first := state.Vehicle.Heading - cfg.RayFanAngle/2

	for i := 0; i < cfg.RayCount; i++ {
		direction := vector.MakeVector2FromAngle(first + float64(i)*step)

		d := trigo.RaycastPolyline(origin, direction, cfg.RayMaxDistance, state.Track.InnerBoundary())
		if outer := trigo.RaycastPolyline(origin, direction, cfg.RayMaxDistance, state.Track.OuterBoundary()); outer < d {
			d = outer
		}

		distances[i] = d
	}

	return distances
}

// Vector builds the full observation: rays normalized to [0,1], speed
// in [0,1], yaw rate and smoothed steer in [-1,1], lap progress in
// [0,1), centerline distance in [0,1].
func Vector(state simulation.WorldState, cfg Config) []float64 {

	obs := make([]float64, 0, cfg.Size())

	for _, d := range CastRays(state, cfg) {
		obs = append(obs, d/cfg.RayMaxDistance)
	}

	obs = append(obs, number.Clamp(state.Vehicle.Speed/cfg.MaxSpeed, 0, 1))
	obs = append(obs, number.Clamp(state.Vehicle.YawRate/cfg.MaxYawRate, -1, 1))
	obs = append(obs, number.Clamp(state.Vehicle.Input.Steer, -1, 1))

	arcDistance, _, centerDistance := state.Track.NearestCenterline(state.Vehicle.Position)

	obs = append(obs, LapProgress(state, arcDistance))

	halfWidth := state.Track.HalfWidthAt(arcDistance)
	obs = append(obs, number.Clamp(centerDistance/halfWidth, 0, 1))

	return obs
}

// LapProgress maps an arc-length position to the fraction of the lap
// completed, measured from the start/finish gate.
func LapProgress(state simulation.WorldState, arcDistance float64) float64 {
	total := state.Track.TotalLength()
	start := state.Track.Checkpoints()[0].ArcLength

	return number.Mod(arcDistance-start, total) / total
}
