package proofs

import (
	"fmt"

	"github.com/roach88/nrcfold/internal/harness"
	"github.com/roach88/nrcfold/internal/residue"
)

func pisanoPeriodScenario() harness.Scenario {
	return harness.Scenario{
		Name:        "pisano-period",
		Description: "π(m) is positive and at most 6m for small moduli; π(9) = 24",
		Run: func(r *harness.Report) error {
			p := mustParams().Pisano

			r.Banner("PISANO PERIOD UNIVERSALITY", ruleWidth)
			r.Line("  m | π(m) | bound | ok")
			r.Rule("-", ruleWidth)
			for m := p.From; m <= p.To; m++ {
				period, err := residue.PisanoPeriodChecked(m)
				if err != nil {
					return err
				}
				bound := p.BoundFactor * m
				ok := period >= 1 && period <= bound
				r.Line(fmt.Sprintf("%3d | %4d | %5d | %s", m, period, bound, harness.Mark(ok)))
				if err := r.True(fmt.Sprintf("π(%d) in [1, %d]", m, bound), ok,
					fmt.Sprintf("1 <= π(%d) <= %d", m, bound)); err != nil {
					return err
				}
			}
			r.Rule("-", ruleWidth)

			anchor := residue.PisanoPeriod(p.AnchorModulus)
			if err := r.Equal(fmt.Sprintf("π(%d)", p.AnchorModulus), anchor, p.AnchorPeriod); err != nil {
				return err
			}
			cycle, err := residue.Cycle(p.AnchorModulus)
			if err != nil {
				return err
			}
			r.Line(fmt.Sprintf("π(%d) = %d", p.AnchorModulus, anchor))
			r.Line("Cycle: " + harness.Ints(cycle))
			return nil
		},
	}
}
