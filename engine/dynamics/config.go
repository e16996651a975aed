package dynamics

import "math"

// Config carries every tuned constant of the vehicle model. Values are
// configuration, not logic; collaborators may override them per episode
// but the engine never mutates them mid-run.
type Config struct {
	Mass       float64 // kg
	YawInertia float64 // kg·m²

	// distances from the center of gravity to each axle
	FrontAxleDistance float64 // m
	RearAxleDistance  float64 // m

	// effective height of the center of gravity over the wheelbase,
	// scales longitudinal load transfer
	LoadTransferCoefficient float64

	MaxSteeringAngle float64 // rad, at standstill
	// steering authority shrinks as 1 / (1 + speed × SteeringSpeedFactor)
	SteeringSpeedFactor float64

	// exponential input smoothing rates, per second
	SteerSmoothingRate    float64
	ThrottleSmoothingRate float64
	BrakeSmoothingRate    float64

	EngineForce       float64 // N at full throttle
	BrakeForce        float64 // N at full brake
	DragCoefficient   float64 // N per (m/s)²
	RollingResistance float64 // N, constant

	// simplified Pacejka lateral tire curve
	TireStiffness   float64 // B
	TireShape       float64 // C
	TireFrictionMu  float64
	GripRoad        float64
	GripOffroad     float64
	SlipSpeedFloor  float64 // m/s, floors the slip-angle denominator
	MaxSpeed        float64 // m/s, hard velocity clamp
	BackstopSpeed   float64 // m/s, backward-creep snap threshold
	Gravity         float64 // m/s²
}

// DefaultConfig returns the tuning the built-in tracks are balanced
// for. Drag and engine force place the natural top speed slightly above
// MaxSpeed so the clamp is what actually bounds it.
func DefaultConfig() Config {
	return Config{
		Mass:       1200,
		YawInertia: 1500,

		FrontAxleDistance: 1.2,
		RearAxleDistance:  1.4,

		LoadTransferCoefficient: 0.2,

		MaxSteeringAngle:    0.55,
		SteeringSpeedFactor: 0.08,

		SteerSmoothingRate:    12.0,
		ThrottleSmoothingRate: 8.0,
		BrakeSmoothingRate:    10.0,

		EngineForce:       10000,
		BrakeForce:        14000,
		DragCoefficient:   5.0,
		RollingResistance: 180,

		TireStiffness:  8.0,
		TireShape:      1.4,
		TireFrictionMu: 1.1,
		GripRoad:       1.0,
		GripOffroad:    0.45,
		SlipSpeedFloor: 1.0,
		MaxSpeed:       40,
		BackstopSpeed:  0.25,
		Gravity:        9.81,
	}
}

func (c Config) Wheelbase() float64 {
	return c.FrontAxleDistance + c.RearAxleDistance
}

// smoothingFactor converts a per-second rate into a per-tick blend
// factor; 1 − e^(−k·dt) keeps the response independent of tick length.
func smoothingFactor(rate float64, dt float64) float64 {
	return 1 - math.Exp(-rate*dt)
}
