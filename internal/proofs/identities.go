package proofs

import (
	"fmt"
	"math"

	"github.com/roach88/nrcfold/internal/constants"
	"github.com/roach88/nrcfold/internal/harness"
)

type identity struct {
	name     string
	lhs, rhs func(phi float64) float64
}

var phiIdentities = []identity{
	{"φ² = φ + 1", func(f float64) float64 { return f * f }, func(f float64) float64 { return f + 1 }},
	{"1/φ = φ − 1", func(f float64) float64 { return 1 / f }, func(f float64) float64 { return f - 1 }},
	{"φ · (1/φ) = 1", func(f float64) float64 { return f * (1 / f) }, func(float64) float64 { return 1 }},
	{"φ³ = 2φ + 1", func(f float64) float64 { return math.Pow(f, 3) }, func(f float64) float64 { return 2*f + 1 }},
	{"φ⁴ = 3φ + 2", func(f float64) float64 { return math.Pow(f, 4) }, func(f float64) float64 { return 3*f + 2 }},
	{"φ⁵ = 5φ + 3", func(f float64) float64 { return math.Pow(f, 5) }, func(f float64) float64 { return 5*f + 3 }},
	{"φ⁶ = 8φ + 5", func(f float64) float64 { return math.Pow(f, 6) }, func(f float64) float64 { return 8*f + 5 }},
	{"φ⁻² = 2 − φ", func(f float64) float64 { return math.Pow(f, -2) }, func(f float64) float64 { return 2 - f }},
	{"φ⁻³ = 2φ − 3", func(f float64) float64 { return math.Pow(f, -3) }, func(f float64) float64 { return 2*f - 3 }},
	{"φ² − φ − 1 = 0", func(f float64) float64 { return f*f - f - 1 }, func(float64) float64 { return 0 }},
}

func phiIdentitiesScenario() harness.Scenario {
	return harness.Scenario{
		Name:        "phi-identities",
		Description: "algebraic identities of φ and convergence of Fibonacci ratios",
		Run: func(r *harness.Report) error {
			p := mustParams().Identities
			phi := constants.Phi().Float

			r.Banner("GOLDEN RATIO IDENTITIES", ruleWidth)
			r.Printf("φ = %.15f\n", phi)
			r.Blank()

			for _, id := range phiIdentities {
				lhs, rhs := id.lhs(phi), id.rhs(phi)
				err := r.Within(id.name, lhs, rhs, p.Tolerance)
				r.Line(fmt.Sprintf("%s %-16s lhs=%.15f rhs=%.15f", harness.Mark(err == nil), id.name, lhs, rhs))
				if err != nil {
					return err
				}
			}

			r.Blank()
			r.Line("Fibonacci ratio convergence F(n)/F(n−1):")
			var ratio float64
			for n := 3; n <= p.RatioMaxIndex; n++ {
				fn, err := constants.Fibonacci(n)
				if err != nil {
					return err
				}
				fp, err := constants.Fibonacci(n - 1)
				if err != nil {
					return err
				}
				a, _ := fn.Float64()
				b, _ := fp.Float64()
				ratio = a / b
				if n%5 == 0 {
					r.Line(fmt.Sprintf("  n=%2d ratio=%.15f error=%.3e", n, ratio, math.Abs(ratio-phi)))
				}
			}
			if err := r.Within("fibonacci ratio", ratio, phi, p.RatioTolerance); err != nil {
				return err
			}

			// Binet in float mode against the exact sequence.
			exact, err := constants.Fibonacci(p.RatioMaxIndex)
			if err != nil {
				return err
			}
			want, _ := exact.Float64()
			if err := r.Within("binet", constants.Binet(p.RatioMaxIndex), want, 0.5); err != nil {
				return err
			}

			// The float constant is derived from the high-precision value.
			r.Blank()
			for _, c := range []constants.Real{constants.Phi(), constants.PhiInverse(), constants.Sqrt5()} {
				diff, err := c.AbsError()
				if err != nil {
					return err
				}
				r.Line(fmt.Sprintf("%-12s float vs %d-digit decimal: %.3e", c.Name, constants.Precision, diff))
				if err := r.Below(c.Name+" precision", diff, p.DecimalTolerance); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
