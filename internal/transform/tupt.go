package transform

import (
	"math"

	"github.com/roach88/nrcfold/internal/residue"
)

// TUPTModulus is 3⁷.
const TUPTModulus = 2187

// ForbiddenPattern lists the divisors checked against the residue mod
// TUPTModulus.
var ForbiddenPattern = [...]float64{3, 6, 9, 7}

// IsForbidden reports whether x mod 2187 (floored, non-negative) is divisible
// by any divisor in ForbiddenPattern. Zero is always forbidden.
func IsForbidden(x float64) bool {
	r := residue.ModFloat(x, TUPTModulus)
	for _, k := range ForbiddenPattern {
		if math.Mod(r, k) == 0 {
			return true
		}
	}
	return false
}

// ForbiddenMask returns IsForbidden for every element of a, in flat order.
func ForbiddenMask(a *Array) ([]bool, error) {
	if a == nil {
		return nil, opError("ForbiddenMask", ErrNilArray)
	}
	mask := make([]bool, len(a.data))
	for i, v := range a.data {
		mask[i] = IsForbidden(v)
	}
	return mask, nil
}

// ExclusionGate returns a copy of a with every forbidden element set to 0.
// Because 0 is itself forbidden, applying the gate twice equals applying it
// once.
func ExclusionGate(a *Array) (*Array, error) {
	return mapPure("ExclusionGate", a, func(v float64) float64 {
		if IsForbidden(v) {
			return 0
		}
		return v
	})
}
