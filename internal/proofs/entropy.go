package proofs

import (
	"fmt"
	"math"

	"github.com/roach88/nrcfold/internal/constants"
	"github.com/roach88/nrcfold/internal/harness"
	"github.com/roach88/nrcfold/internal/transform"
)

func entropyCollapse() harness.Scenario {
	return harness.Scenario{
		Name:        "entropy-collapse",
		Description: "repeated φ⁻¹ damping drives an initial value below threshold",
		Run: func(r *harness.Report) error {
			p := mustParams().Entropy
			phiInv := constants.PhiInverse().Float

			r.Banner("φ⁻¹ ENTROPY COLLAPSE", ruleWidth)
			r.Printf("Initial value:  %.1f\n", p.Initial)
			r.Printf("Damping factor: %.10f\n", phiInv)
			r.Blank()
			r.Line("Step |       φ⁻ⁿ decay |   1/√N baseline | Speedup")
			r.Rule("-", ruleWidth)

			e := p.Initial
			for step := 1; step <= p.Steps; step++ {
				e = transform.GeometricDecay(e, phiInv, 1)
				if step%p.ReportEvery != 0 && step != 1 {
					continue
				}
				baseline := p.Initial / math.Sqrt(float64(step))
				r.Line(fmt.Sprintf("%4d | %15.9e | %15.5f | %.1fx", step, e, baseline, baseline/e))
			}
			r.Rule("-", ruleWidth)

			// The closed form must agree with the iterated product.
			closed := p.Initial * math.Pow(phiInv, float64(p.Steps))
			if err := r.Within("closed form", e, closed, closed*1e-9); err != nil {
				return err
			}

			baseline := p.Initial / math.Sqrt(float64(p.Steps))
			r.Printf("Final value after %d steps: %.15e\n", p.Steps, e)
			r.Printf("Baseline after %d steps:    %.15e\n", p.Steps, baseline)
			r.Printf("Ratio: %.0f\n", baseline/e)

			return r.Below("final value", e, p.Threshold)
		},
	}
}
