package bridge

import (
	"encoding/json"

	"github.com/pkg/errors"
	uuid "github.com/satori/go.uuid"

	"github.com/openracer/racetrack/common/types/trackcontainer"
	"github.com/openracer/racetrack/common/utils/number"
	"github.com/openracer/racetrack/engine/dynamics"
	"github.com/openracer/racetrack/engine/observation"
	"github.com/openracer/racetrack/engine/reward"
	"github.com/openracer/racetrack/engine/simulation"
	"github.com/openracer/racetrack/engine/track"
)

type SessionConfig struct {
	Simulation  simulation.Config  `json:"simulation"`
	Observation observation.Config `json:"observation"`
	Reward      reward.Config      `json:"reward"`

	// episode policy; the engine itself has no notion of termination
	MaxEpisodeTicks         int `json:"maxEpisodeTicks"`
	OffroadTerminationTicks int `json:"offroadTerminationTicks"`
}

func DefaultSessionConfig() SessionConfig {
	return SessionConfig{
		Simulation:  simulation.DefaultConfig(),
		Observation: observation.DefaultConfig(),
		Reward:      reward.DefaultConfig(),

		MaxEpisodeTicks:         3600,
		OffroadTerminationTicks: 180,
	}
}

// Validate rejects trainer-supplied configs the engine cannot run with;
// a degenerate observation layout would otherwise produce NaN vectors.
func (cfg SessionConfig) Validate() error {
	if cfg.Observation.RayCount < 2 {
		return errors.Errorf("bridge: need at least 2 observation rays, got %d", cfg.Observation.RayCount)
	}
	if cfg.Observation.RayMaxDistance <= 0 {
		return errors.Errorf("bridge: ray max distance must be positive, got %f", cfg.Observation.RayMaxDistance)
	}
	if cfg.Simulation.Dt <= 0 {
		return errors.Errorf("bridge: timestep must be positive, got %f", cfg.Simulation.Dt)
	}
	if cfg.MaxEpisodeTicks < 1 {
		return errors.Errorf("bridge: episode tick budget must be at least 1, got %d", cfg.MaxEpisodeTicks)
	}
	if cfg.OffroadTerminationTicks < 1 {
		return errors.Errorf("bridge: offroad termination ticks must be at least 1, got %d", cfg.OffroadTerminationTicks)
	}

	return nil
}

// Session is one trainer connection's episode state machine. Sessions
// never share state; parallel training workers each own their own.
type Session struct {
	id     string
	cfg    SessionConfig
	tracks map[string]*trackcontainer.TrackContainer

	// built tracks are cached per session; a reset on the same track
	// reuses the Track reference, construction cost is amortized
	built map[string]*track.Track

	state        simulation.WorldState
	active       bool
	offroadTicks int
}

func NewSession() *Session {
	return &Session{
		id:     uuid.NewV4().String(),
		cfg:    DefaultSessionConfig(),
		tracks: trackcontainer.Builtin(),
		built:  make(map[string]*track.Track),
	}
}

func (s *Session) Id() string {
	return s.id
}

func (s *Session) Reset(trackId string, rawConfig json.RawMessage) (ResetResponse, error) {

	if trackId == "" {
		trackId = "track-01"
	}

	if len(rawConfig) > 0 {
		cfg := DefaultSessionConfig()
		if err := json.Unmarshal(rawConfig, &cfg); err != nil {
			return ResetResponse{}, errors.Wrap(err, "bridge: invalid session config")
		}
		if err := cfg.Validate(); err != nil {
			return ResetResponse{}, err
		}
		s.cfg = cfg
	}

	trk, ok := s.built[trackId]
	if !ok {
		container, found := s.tracks[trackId]
		if !found {
			return ResetResponse{}, errors.Errorf("bridge: unknown track %q", trackId)
		}

		built, err := container.BuildTrack()
		if err != nil {
			return ResetResponse{}, err
		}

		trk = built
		s.built[trackId] = trk
	}

	s.state = simulation.NewEpisode(trk)
	s.active = true
	s.offroadTicks = 0

	return ResetResponse{
		Type:        "reset",
		Observation: observation.Vector(s.state, s.cfg.Observation),
		Info:        s.info(),
	}, nil
}

func (s *Session) Step(action []float64) (StepResponse, error) {

	if !s.active {
		return StepResponse{}, errors.New("bridge: step before reset")
	}

	// the engine has no NaN-recovery path; non-finite input is
	// rejected here, before it can reach the model
	if len(action) != 3 {
		return StepResponse{}, errors.Errorf("bridge: action must have 3 components, got %d", len(action))
	}
	for i, a := range action {
		if !number.IsFinite(a) {
			return StepResponse{}, errors.Errorf("bridge: action component %d is not finite", i)
		}
	}

	input := dynamics.Input{
		Steer:    action[0],
		Throttle: action[1],
		Brake:    action[2],
	}

	previous := s.state
	s.state = simulation.Step(previous, input, s.cfg.Simulation)

	if s.state.Vehicle.Surface == track.SurfaceOffroad {
		s.offroadTicks++
	} else {
		s.offroadTicks = 0
	}

	terminated := s.state.Timing.LapComplete || s.offroadTicks >= s.cfg.OffroadTerminationTicks
	truncated := !terminated && s.state.Tick >= s.cfg.MaxEpisodeTicks

	if terminated || truncated {
		s.active = false
	}

	return StepResponse{
		Type:        "step",
		Observation: observation.Vector(s.state, s.cfg.Observation),
		Reward:      reward.Compute(previous, s.state, s.cfg.Reward),
		Terminated:  terminated,
		Truncated:   truncated,
		Info:        s.info(),
	}, nil
}

func (s *Session) Close() {
	s.active = false
}

func (s *Session) info() map[string]interface{} {
	return map[string]interface{}{
		"tick":           s.state.Tick,
		"lap":            s.state.Timing.CurrentLap,
		"lastCheckpoint": s.state.Timing.LastCheckpoint,
		"bestLapTicks":   s.state.Timing.BestLapTicks,
		"speed":          s.state.Vehicle.Speed,
		"surface":        s.state.Vehicle.Surface.String(),
	}
}
