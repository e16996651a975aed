// Package reward shapes the scalar training signal: arc-length progress
// along the centerline, gate and lap bonuses, and tiered penalties for
// leaving the road or grinding the wall.
package reward

import (
	"github.com/openracer/racetrack/common/utils/number"
	"github.com/openracer/racetrack/engine/collision"
	"github.com/openracer/racetrack/engine/simulation"
	"github.com/openracer/racetrack/engine/track"
)

type Config struct {
	ProgressWeight     float64
	CheckpointBonus    float64
	LapBonus           float64
	OffroadPenalty     float64
	WallContactPenalty float64
	TimePenalty        float64

	Collision collision.Config
}

func DefaultConfig() Config {
	return Config{
		ProgressWeight:     1.0,
		CheckpointBonus:    5.0,
		LapBonus:           50.0,
		OffroadPenalty:     0.5,
		WallContactPenalty: 1.0,
		TimePenalty:        0.01,

		Collision: collision.DefaultConfig(),
	}
}

// Compute scores the transition from the previous to the next snapshot.
func Compute(previous simulation.WorldState, next simulation.WorldState, cfg Config) float64 {

	reward := cfg.ProgressWeight * progressDelta(previous, next)

	if next.Timing.LapComplete {
		reward += cfg.LapBonus
	} else if next.Timing.LastCheckpoint != previous.Timing.LastCheckpoint {
		reward += cfg.CheckpointBonus
	}

	if next.Vehicle.Surface == track.SurfaceOffroad {
		reward -= cfg.OffroadPenalty
	}

	if collision.Detect(next.Track, next.Vehicle.Position, cfg.Collision).Hit {
		reward -= cfg.WallContactPenalty
	}

	return reward - cfg.TimePenalty
}

// progressDelta is the signed arc-length advance along the centerline
// this tick, shortest-way wrapped so crossing the seam does not produce
// a full-lap spike.
func progressDelta(previous simulation.WorldState, next simulation.WorldState) float64 {

	total := next.Track.TotalLength()

	before, _, _ := next.Track.NearestCenterline(previous.Vehicle.Position)
	after, _, _ := next.Track.NearestCenterline(next.Vehicle.Position)

	return number.Mod(after-before+total/2, total) - total/2
}
