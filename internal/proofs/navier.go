package proofs

import (
	"fmt"
	"math"

	"github.com/roach88/nrcfold/internal/constants"
	"github.com/roach88/nrcfold/internal/harness"
	"github.com/roach88/nrcfold/internal/transform"
)

func navierStokesDamping() harness.Scenario {
	return harness.Scenario{
		Name:        "navier-stokes-damping",
		Description: "viscous damping reduces every magnitude by exactly exp(−ν·dt·N)",
		Run: func(r *harness.Report) error {
			p := mustParams().Navier
			nu := constants.PhiInverse().Float
			factor := transform.ReductionFactor(nu, p.TimeStep, p.Steps)

			r.Banner("VISCOUS DAMPING BOUNDS", ruleWidth)
			r.Line(fmt.Sprintf("Viscosity ν = φ⁻¹ = %.6f", nu))
			r.Line(fmt.Sprintf("Time step dt = %g", p.TimeStep))
			r.Line(fmt.Sprintf("Steps N = %d", p.Steps))
			r.Line(fmt.Sprintf("exp(−ν·dt·N) = %.12e", factor))
			r.Blank()

			norms, err := transform.FromSlice(p.Norms)
			if err != nil {
				return err
			}
			damped, err := transform.ViscousDamping(norms, nu, p.TimeStep, p.Steps)
			if err != nil {
				return err
			}

			r.Line("       initial |   after N steps |          ratio | ok")
			r.Rule("-", ruleWidth)
			for i := 0; i < norms.Len(); i++ {
				g0, g := norms.At(i), damped.At(i)
				ratio := g / g0
				ok := math.Abs(ratio-factor) < p.Tolerance
				r.Line(fmt.Sprintf("%14.4f | %15.6e | %14.12f | %s", g0, g, ratio, harness.Mark(ok)))
				if err := r.Within(fmt.Sprintf("ratio for %g", g0), ratio, factor, p.Tolerance); err != nil {
					return err
				}
			}
			r.Rule("-", ruleWidth)

			r.Line("Convergence to zero:")
			prev := 1.0
			for _, steps := range p.Horizons {
				f := transform.ReductionFactor(nu, p.TimeStep, steps)
				r.Line(fmt.Sprintf("  %5d steps: factor %.6e (1e6 → %.4e)", steps, f, 1e6*f))
				if err := r.Below(fmt.Sprintf("factor decreases at %d", steps), f, prev); err != nil {
					return err
				}
				prev = f
			}
			return nil
		},
	}
}
