package transform

import (
	"fmt"
	"math"

	"github.com/roach88/nrcfold/internal/constants"
)

// DefaultFoldIterations is the iteration count used by PhiInfinityFold
// callers that have no reason to pick another.
const DefaultFoldIterations = 5

// PhiPower returns φⁿ for every exponent n in exponents.
func PhiPower(exponents *Array) (*Array, error) {
	phi := constants.Phi().Float
	return mapPure("PhiPower", exponents, func(n float64) float64 {
		return math.Pow(phi, n)
	})
}

// PhiInfinityFold repeatedly applies folded ← φⁿ·folded + 1/√5 for
// n = 1..iterations and returns the final array.
//
// This is a scaling operator, not a contraction: magnitudes grow by roughly
// φ^(iterations·(iterations+1)/2). Results that overflow return ErrNonFinite.
func PhiInfinityFold(x *Array, iterations int) (*Array, error) {
	if iterations < 0 {
		return nil, opError("PhiInfinityFold", fmt.Errorf("negative iteration count %d", iterations))
	}
	phi := constants.Phi().Float
	offset := 1 / constants.Sqrt5().Float
	return mapPure("PhiInfinityFold", x, func(v float64) float64 {
		for n := 1; n <= iterations; n++ {
			v = math.Pow(phi, float64(n))*v + offset
		}
		return v
	})
}
