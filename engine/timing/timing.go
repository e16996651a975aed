// Package timing tracks sequential checkpoint crossings and lap times.
// Only the expected-next gate is ever tested, so cutting across the
// infield can never advance progress.
package timing

import (
	"github.com/openracer/racetrack/common/utils/trigo"
	"github.com/openracer/racetrack/common/utils/vector"
	"github.com/openracer/racetrack/engine/track"
)

// State is the lap bookkeeping carried in every world snapshot.
type State struct {
	CurrentLapTicks int  `json:"currentLapTicks"`
	BestLapTicks    int  `json:"bestLapTicks"` // 0 until a lap has been completed
	CurrentLap      int  `json:"currentLap"`
	LastCheckpoint  int  `json:"lastCheckpoint"`
	LapComplete     bool `json:"lapComplete"` // true for exactly one tick per lap
}

// MakeState returns fresh-episode timing. LastCheckpoint is pre-seeded
// to 0: the vehicle spawns on the start/finish gate and will not
// physically cross it on tick one, so starting at -1 would cost a
// phantom lap.
func MakeState() State {
	return State{
		CurrentLap:     1,
		LastCheckpoint: 0,
	}
}

// Update advances the lap clock and tests the movement segment of this
// tick against the expected-next gate. Crossings must run with the
// gate's forward direction; backward crossings do not count.
func Update(state State, checkpoints []track.Checkpoint, before vector.Vector2, after vector.Vector2) State {

	state.CurrentLapTicks++
	state.LapComplete = false

	count := len(checkpoints)
	expected := (state.LastCheckpoint + 1) % count
	gate := checkpoints[expected]

	movement := after.Sub(before)
	if movement.Dot(gate.Forward) <= 0 {
		return state
	}

	if !trigo.IntersectionWithLineSegmentCheckOnly(before, after, gate.Left, gate.Right) {
		return state
	}

	if expected == 0 {
		// crossed the start/finish gate after the final gate
		if state.BestLapTicks == 0 || state.CurrentLapTicks < state.BestLapTicks {
			state.BestLapTicks = state.CurrentLapTicks
		}

		state.CurrentLap++
		state.CurrentLapTicks = 0
		state.LastCheckpoint = 0
		state.LapComplete = true

		return state
	}

	state.LastCheckpoint = expected

	return state
}
