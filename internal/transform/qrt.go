package transform

import (
	"math"

	"github.com/roach88/nrcfold/internal/constants"
)

// QRTMaxInput bounds |x| for QRT: the largest magnitude for which the cosine
// argument π/φ·x is still finite, less a few ulps for the rounding of π/φ.
const QRTMaxInput = math.MaxFloat64 / (math.Pi / math.Phi) * (1 - 1e-12)

// QRT evaluates sin(φ·√2·S·x)·exp(−x²/φ) + cos(π/φ·x) for one value.
// The result lies in [−2, 2].
func QRT(x float64) (float64, error) {
	if !isFinite(x) {
		return 0, ErrNonFinite
	}
	if math.Abs(x) > QRTMaxInput {
		return 0, ErrOutOfDomain
	}
	phi := constants.Phi().Float
	freqSin := phi * constants.Sqrt2().Float * constants.Slope().Float
	freqCos := constants.Pi().Float / phi

	envelope := math.Exp(-(x * x) / phi)
	var burst float64
	if envelope != 0 {
		burst = math.Sin(freqSin*x) * envelope
	}
	return burst + math.Cos(freqCos*x), nil
}

// QRTDamping applies QRT elementwise. It is used as a gradient damping
// multiplier.
func QRTDamping(x *Array) (*Array, error) {
	return Map("QRTDamping", x, QRT)
}
