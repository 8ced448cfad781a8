package transform

import (
	"math"

	"github.com/roach88/nrcfold/internal/constants"
)

const (
	// MSTModulus is 29³. MSTStep output always lies in [0, MSTModulus).
	MSTModulus = 24389

	// MSTLambda is the Lyapunov exponent reported for MST cycles.
	MSTLambda = 0.381

	// MSTMaxInput bounds |x|. 1000·sinh(x) overflows float64 near 703.
	MSTMaxInput = 700.0
)

// MST evaluates |⌊1000·sinh x⌋ + ln(x²+1) + φˣ| mod MSTModulus for one value.
func MST(x float64) (float64, error) {
	if !isFinite(x) {
		return 0, ErrNonFinite
	}
	if math.Abs(x) > MSTMaxInput {
		return 0, ErrOutOfDomain
	}
	total := math.Floor(1000*math.Sinh(x)) + math.Log(x*x+1) + math.Pow(constants.Phi().Float, x)
	return math.Mod(math.Abs(total), MSTModulus), nil
}

// MSTStep applies MST elementwise.
func MSTStep(x *Array) (*Array, error) {
	return Map("MSTStep", x, MST)
}
