package dynamics

import (
	"math"
	"testing"

	"github.com/openracer/racetrack/common/utils/vector"
	"github.com/openracer/racetrack/engine/track"
)

const testDt = 1.0 / 60.0

func TestStepIsDeterministic(t *testing.T) {
	cfg := DefaultConfig()

	run := func() VehicleState {
		state := MakeVehicleState(vector.MakeVector2(0, 0), 0)
		for i := 0; i < 300; i++ {
			input := Input{
				Steer:    0.5 * math.Sin(float64(i)/30),
				Throttle: 1,
				Brake:    0,
			}
			state = Step(state, input, track.SurfaceRoad, testDt, cfg)
		}
		return state
	}

	a := run()
	b := run()

	if a != b {
		t.Fatalf("two identical runs diverged:\n%+v\n%+v", a, b)
	}
}

func TestStepDoesNotMutateItsArgument(t *testing.T) {
	cfg := DefaultConfig()

	state := MakeVehicleState(vector.MakeVector2(10, 20), 0.5)
	before := state

	Step(state, Input{Steer: 1, Throttle: 1}, track.SurfaceRoad, testDt, cfg)

	if state != before {
		t.Fatal("Step mutated its argument")
	}
}

func TestSpeedNeverExceedsMax(t *testing.T) {
	cfg := DefaultConfig()

	state := MakeVehicleState(vector.MakeVector2(0, 0), 0)

	for i := 0; i < 2000; i++ {
		state = Step(state, Input{Throttle: 1}, track.SurfaceRoad, testDt, cfg)

		if state.Speed < 0 || state.Speed > cfg.MaxSpeed+1e-9 {
			t.Fatalf("tick %d: speed %f escapes [0, %f]", i, state.Speed, cfg.MaxSpeed)
		}
	}

	// full throttle on a straight must saturate the clamp
	if state.Speed < cfg.MaxSpeed-0.01 {
		t.Fatalf("speed %f after 2000 ticks of full throttle, want ~%f", state.Speed, cfg.MaxSpeed)
	}
}

func TestInputSmoothingIsGradual(t *testing.T) {
	cfg := DefaultConfig()

	state := MakeVehicleState(vector.MakeVector2(0, 0), 0)
	state = Step(state, Input{Steer: 1, Throttle: 1, Brake: 1}, track.SurfaceRoad, testDt, cfg)

	// one tick after a step input, the smoothed values must have moved
	// but not arrived
	if state.Input.Steer <= 0 || state.Input.Steer >= 0.5 {
		t.Fatalf("smoothed steer after one tick: %f", state.Input.Steer)
	}
	if state.Input.Throttle <= 0 || state.Input.Throttle >= 0.5 {
		t.Fatalf("smoothed throttle after one tick: %f", state.Input.Throttle)
	}

	expected := 1 - math.Exp(-cfg.SteerSmoothingRate*testDt)
	if math.Abs(state.Input.Steer-expected) > 1e-9 {
		t.Fatalf("smoothed steer %f, want %f", state.Input.Steer, expected)
	}
}

func TestSteeringAuthorityDiminishesWithSpeed(t *testing.T) {
	cfg := DefaultConfig()

	slow := MakeVehicleState(vector.MakeVector2(0, 0), 0)
	fast := MakeVehicleState(vector.MakeVector2(0, 0), 0)
	fast.Velocity = vector.MakeVector2(30, 0)
	fast.Speed = 30

	slow = Step(slow, Input{Steer: 1}, track.SurfaceRoad, testDt, cfg)
	fast = Step(fast, Input{Steer: 1}, track.SurfaceRoad, testDt, cfg)

	if math.Abs(fast.Input.SteeringAngle) >= math.Abs(slow.Input.SteeringAngle) {
		t.Fatalf("steering angle at 30 m/s (%f) not below standstill angle (%f)",
			fast.Input.SteeringAngle, slow.Input.SteeringAngle)
	}
}

func TestBrakingNeverReversesTheCar(t *testing.T) {
	cfg := DefaultConfig()

	state := MakeVehicleState(vector.MakeVector2(0, 0), 0)
	state.Velocity = vector.MakeVector2(5, 0)
	state.Speed = 5

	forward := vector.MakeVector2FromAngle(0)

	for i := 0; i < 600; i++ {
		state = Step(state, Input{Brake: 1}, track.SurfaceRoad, testDt, cfg)

		if state.Velocity.Dot(forward) < -1e-9 {
			t.Fatalf("tick %d: car crept backward under brake-only input, velocity %s",
				i, state.Velocity.String())
		}
	}

	if state.Speed != 0 {
		t.Fatalf("car never came to rest, speed %f", state.Speed)
	}
}

func TestOffroadSurfaceReducesCornering(t *testing.T) {
	cfg := DefaultConfig()

	launch := func(surface track.Surface) VehicleState {
		state := MakeVehicleState(vector.MakeVector2(0, 0), 0)
		state.Velocity = vector.MakeVector2(20, 0)
		state.Speed = 20

		for i := 0; i < 120; i++ {
			state = Step(state, Input{Steer: 1, Throttle: 0.5}, surface, testDt, cfg)
		}
		return state
	}

	road := launch(track.SurfaceRoad)
	offroad := launch(track.SurfaceOffroad)

	// lower grip turns the car less over the same maneuver
	if math.Abs(offroad.Heading) >= math.Abs(road.Heading) {
		t.Fatalf("offroad heading change %f not below road heading change %f", offroad.Heading, road.Heading)
	}
}

func TestLoadTransferLagsOneTick(t *testing.T) {
	cfg := DefaultConfig()

	state := MakeVehicleState(vector.MakeVector2(0, 0), 0)

	// the very first tick accelerates hard, yet its load computation
	// sees the zero acceleration of the previous (nonexistent) tick
	next := Step(state, Input{Throttle: 1}, track.SurfaceRoad, testDt, cfg)

	if next.LongitudinalAccel <= 0 {
		t.Fatalf("expected positive longitudinal acceleration, got %f", next.LongitudinalAccel)
	}

	if state.LongitudinalAccel != 0 {
		t.Fatal("initial state should carry zero longitudinal acceleration")
	}
}
