package proofs

import (
	"fmt"
	"strings"

	"github.com/roach88/nrcfold/internal/constants"
	"github.com/roach88/nrcfold/internal/harness"
	"github.com/roach88/nrcfold/internal/residue"
)

func mstLyapunov() harness.Scenario {
	return harness.Scenario{
		Name:        "mst-lyapunov",
		Description: "(x mod 9)·φ⁻¹ stays below 9φ⁻¹ from any seed",
		Run: func(r *harness.Report) error {
			p := mustParams().MST
			phiInv := constants.PhiInverse().Float
			modulus := float64(p.Modulus)
			bound := modulus * phiInv

			step := func(x float64) float64 {
				return residue.ModFloat(x, modulus) * phiInv
			}

			r.Banner("MST LYAPUNOV BOUND", ruleWidth)
			r.Line("Trajectories x₀ → MST¹ … MSTⁿ:")
			for _, seed := range p.Seeds {
				x := seed
				cols := []string{fmt.Sprintf("%12.5f", seed)}
				var peak float64
				for i := 0; i < p.Iterations; i++ {
					x = step(x)
					cols = append(cols, fmt.Sprintf("%9.6f", x))
					if x > peak {
						peak = x
					}
				}
				ok := peak <= bound+p.Slack
				r.Line(strings.Join(cols, " | ") + " | " + harness.Mark(ok))
				if err := r.AtMost(fmt.Sprintf("trajectory from %g", seed), peak, bound+p.Slack); err != nil {
					return err
				}
			}

			r.Blank()
			r.Line(fmt.Sprintf("Upper bound: %d × φ⁻¹ = %.6f", p.Modulus, bound))
			r.Line("Fixed-point analysis:")
			for seed := int64(0); seed < p.Modulus; seed++ {
				r.Line(fmt.Sprintf("  MST(%d) = %d × %.5f = %.6f", seed, seed, phiInv, step(float64(seed))))
			}

			// Negative seeds use the floored remainder, so they obey the same bound.
			return r.AtMost("negative seed", step(-1e6), bound)
		},
	}
}
