package transform

import (
	"fmt"
	"math"
)

// DefaultTimeStep is the dt used by the viscous damping scenario.
const DefaultTimeStep = 0.01

// ReductionFactor is the closed form exp(−ν·dt·steps).
func ReductionFactor(viscosity, dt float64, steps int) float64 {
	return math.Exp(-viscosity * dt * float64(steps))
}

// Damp applies v ← v·exp(−ν·dt) steps times.
func Damp(v, viscosity, dt float64, steps int) float64 {
	f := math.Exp(-viscosity * dt)
	for i := 0; i < steps; i++ {
		v *= f
	}
	return v
}

// GeometricDecay multiplies v by factor steps times.
func GeometricDecay(v, factor float64, steps int) float64 {
	for i := 0; i < steps; i++ {
		v *= factor
	}
	return v
}

// ViscousDamping applies Damp elementwise.
func ViscousDamping(x *Array, viscosity, dt float64, steps int) (*Array, error) {
	if steps < 0 {
		return nil, opError("ViscousDamping", fmt.Errorf("negative step count %d", steps))
	}
	return mapPure("ViscousDamping", x, func(v float64) float64 {
		return Damp(v, viscosity, dt, steps)
	})
}
