// Package dynamics advances a single-track bicycle vehicle model one
// fixed tick: smoothed inputs, per-axle load with lagged longitudinal
// transfer, a simplified nonlinear Pacejka lateral tire curve, and
// explicit Euler integration. The falloff past the tire curve's peak is
// the only source of oversteer; there is no scripted drift path.
package dynamics

import (
	"math"

	"github.com/openracer/racetrack/common/utils/vector"
	"github.com/openracer/racetrack/engine/track"
)

// Step is a pure function of its arguments; it reads no clock and no
// randomness, which makes tick sequences bit-reproducible.
func Step(state VehicleState, input Input, surface track.Surface, dt float64, cfg Config) VehicleState {

	smoothed := smoothInput(state.Input, input, state.Speed, dt, cfg)

	forward := vector.MakeVector2FromAngle(state.Heading)

	// world-frame velocity in the body frame; x forward, y left
	velBody := state.Velocity.Rotate(-state.Heading)
	vx, vy := velBody.Get()

	// per-axle vertical load, using the previous tick's longitudinal
	// acceleration
	wheelbase := cfg.Wheelbase()
	staticFront := cfg.Mass * cfg.Gravity * cfg.RearAxleDistance / wheelbase
	staticRear := cfg.Mass * cfg.Gravity * cfg.FrontAxleDistance / wheelbase

	transfer := cfg.Mass * state.LongitudinalAccel * cfg.LoadTransferCoefficient
	loadFront := staticFront - transfer
	loadRear := staticRear + transfer

	// slip angles; the denominator is floored to dodge the singularity
	// at standstill
	slipSpeed := math.Abs(vx)
	if slipSpeed < cfg.SlipSpeedFloor {
		slipSpeed = cfg.SlipSpeedFloor
	}

	slipFront := math.Atan2(vy+state.YawRate*cfg.FrontAxleDistance, slipSpeed) - smoothed.SteeringAngle
	slipRear := math.Atan2(vy-state.YawRate*cfg.RearAxleDistance, slipSpeed)

	grip := cfg.GripRoad
	if surface == track.SurfaceOffroad {
		grip = cfg.GripOffroad
	}

	forceFront := lateralTireForce(slipFront, loadFront, grip, cfg)
	forceRear := lateralTireForce(slipRear, loadRear, grip, cfg)

	// longitudinal force: engine minus directional brake minus
	// quadratic drag minus rolling resistance
	longForce := cfg.EngineForce * smoothed.Throttle
	longForce -= cfg.BrakeForce * smoothed.Brake * sign(vx)
	longForce -= cfg.DragCoefficient * vx * math.Abs(vx)
	longForce -= cfg.RollingResistance * sign(vx)

	cosSteer := math.Cos(smoothed.SteeringAngle)
	sinSteer := math.Sin(smoothed.SteeringAngle)

	accelX := (longForce-forceFront*sinSteer)/cfg.Mass + state.YawRate*vy
	accelY := (forceFront*cosSteer+forceRear)/cfg.Mass - state.YawRate*vx

	yawAccel := (cfg.FrontAxleDistance*forceFront*cosSteer - cfg.RearAxleDistance*forceRear) / cfg.YawInertia

	accelWorld := vector.MakeVector2(accelX, accelY).Rotate(state.Heading)

	velocity := state.Velocity.Add(accelWorld.MultScalar(dt))
	velocity = clampSpeed(velocity, cfg.MaxSpeed)

	yawRate := state.YawRate + yawAccel*dt
	heading := state.Heading + yawRate*dt
	position := state.Position.Add(velocity.MultScalar(dt))

	// snap to rest instead of creeping backward under brake-only input
	if velocity.Dot(forward) < 0 && velocity.Mag() < cfg.BackstopSpeed && smoothed.Throttle < smoothed.Brake {
		velocity = vector.MakeNullVector2()
		yawRate = 0
	}

	return VehicleState{
		Position:          position,
		Velocity:          velocity,
		Heading:           heading,
		YawRate:           yawRate,
		Speed:             velocity.Mag(),
		Input:             smoothed,
		Surface:           surface,
		LongitudinalAccel: accelX,
		RearSlipAngle:     slipRear,
	}
}

func smoothInput(previous SmoothedInput, target Input, speed float64, dt float64, cfg Config) SmoothedInput {

	steer := previous.Steer + (target.Steer-previous.Steer)*smoothingFactor(cfg.SteerSmoothingRate, dt)
	throttle := previous.Throttle + (target.Throttle-previous.Throttle)*smoothingFactor(cfg.ThrottleSmoothingRate, dt)
	brake := previous.Brake + (target.Brake-previous.Brake)*smoothingFactor(cfg.BrakeSmoothingRate, dt)

	// steering authority diminishes with speed
	angle := steer * cfg.MaxSteeringAngle / (1 + speed*cfg.SteeringSpeedFactor)

	return SmoothedInput{
		Steer:         steer,
		Throttle:      throttle,
		Brake:         brake,
		SteeringAngle: angle,
	}
}

// lateralTireForce rises with slip angle, peaks, then falls off; the
// falloff is what lets the rear axle break loose.
func lateralTireForce(slipAngle float64, load float64, surfaceGrip float64, cfg Config) float64 {
	return -cfg.TireFrictionMu * surfaceGrip * load *
		math.Sin(cfg.TireShape*math.Atan(cfg.TireStiffness*slipAngle))
}

// clampSpeed scales the velocity uniformly so direction is preserved.
func clampSpeed(velocity vector.Vector2, maxSpeed float64) vector.Vector2 {
	return velocity.Limit(maxSpeed)
}

func sign(f float64) float64 {
	if f > 0 {
		return 1
	}
	if f < 0 {
		return -1
	}
	return 0
}
