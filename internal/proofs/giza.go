package proofs

import (
	"math"

	"github.com/roach88/nrcfold/internal/constants"
	"github.com/roach88/nrcfold/internal/harness"
)

func gizaResonance() harness.Scenario {
	return harness.Scenario{
		Name:        "giza-resonance",
		Description: "atan(4/π) in degrees agrees with the 51.84° reference slope",
		Run: func(r *harness.Report) error {
			p := mustParams().Giza
			pi := constants.Pi().Float

			degrees := math.Atan(4/pi) * 180 / pi
			diff := math.Abs(degrees - p.ReferenceDegrees)
			match := 100 - diff

			r.Banner("GIZA RESONANCE", ruleWidth)
			r.Printf("Projection angle atan(4/π): %.5f°\n", degrees)
			r.Printf("Reference slope:            %.5f°\n", p.ReferenceDegrees)
			r.Printf("Match:                      %.3f%%\n", match)

			if err := r.Above("match percent", match, p.MinMatchPercent); err != nil {
				return err
			}

			slope := constants.Slope().Float
			r.Printf("Empirical slope constant:   %.2f°\n", slope)
			return r.Within("slope constant", degrees, slope, p.SlopeTolerance)
		},
	}
}
