// Package simulation composes track geometry, vehicle dynamics,
// collision response and lap timing into a single deterministic
// per-tick transition over immutable world snapshots.
package simulation

import (
	"github.com/openracer/racetrack/engine/collision"
	"github.com/openracer/racetrack/engine/dynamics"
	"github.com/openracer/racetrack/engine/timing"
	"github.com/openracer/racetrack/engine/track"
)

type Config struct {
	// Dt is the fixed timestep. Every consumer of the engine runs at
	// the same tick rate; there is no variable-step path.
	Dt float64 `json:"dt"`

	Dynamics  dynamics.Config  `json:"dynamics"`
	Collision collision.Config `json:"collision"`
}

func DefaultConfig() Config {
	return Config{
		Dt:        1.0 / 60.0,
		Dynamics:  dynamics.DefaultConfig(),
		Collision: collision.DefaultConfig(),
	}
}

// WorldState is the full snapshot advanced once per Step call. It is
// replaced wholesale each tick; nothing is mutated in place. The Track
// reference is shared read-only across the whole episode.
type WorldState struct {
	Tick    int                   `json:"tick"`
	Vehicle dynamics.VehicleState `json:"vehicle"`
	Timing  timing.State          `json:"timing"`
	Track   *track.Track          `json:"-"`
}

// NewEpisode produces the tick-0 snapshot: vehicle at rest at the
// track's start pose, timing reset. Episode reset is just calling this
// again with the same Track.
func NewEpisode(trk *track.Track) WorldState {
	return WorldState{
		Tick:    0,
		Vehicle: dynamics.MakeVehicleState(trk.StartPosition(), trk.StartHeading()),
		Timing:  timing.MakeState(),
		Track:   trk,
	}
}

// Step advances the world one tick: classify the surface under the
// vehicle, advance dynamics on it, detect and resolve boundary contact,
// re-classify at the resolved position, then update lap timing from the
// pre-tick and post-resolution positions. Pure: same state and input
// always produce the same output, and the input state is left intact.
func Step(state WorldState, input dynamics.Input, cfg Config) WorldState {

	surface := state.Track.SurfaceAt(state.Vehicle.Position)

	vehicle := dynamics.Step(state.Vehicle, input, surface, cfg.Dt, cfg.Dynamics)

	contact := collision.Detect(state.Track, vehicle.Position, cfg.Collision)
	vehicle = collision.Resolve(vehicle, contact, cfg.Collision)

	vehicle.Surface = state.Track.SurfaceAt(vehicle.Position)

	newTiming := timing.Update(state.Timing, state.Track.Checkpoints(), state.Vehicle.Position, vehicle.Position)

	return WorldState{
		Tick:    state.Tick + 1,
		Vehicle: vehicle,
		Timing:  newTiming,
		Track:   state.Track,
	}
}
