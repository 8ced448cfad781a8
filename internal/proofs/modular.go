package proofs

import (
	"fmt"

	"github.com/roach88/nrcfold/internal/harness"
	"github.com/roach88/nrcfold/internal/residue"
)

// Node roles within the mod-9 Pisano cycle.
var (
	attractorNodes = []int64{0, 3, 6}
	bridgeNodes    = []int64{7}
)

func nodeRole(n int64) string {
	for _, a := range attractorNodes {
		if n == a {
			return "attractor"
		}
	}
	for _, b := range bridgeNodes {
		if n == b {
			return "bridge"
		}
	}
	return "chaotic"
}

func modularExclusion() harness.Scenario {
	return harness.Scenario{
		Name:        "modular-exclusion",
		Description: "Fibonacci mod 9 repeats with period 24 across consecutive cycles",
		Run: func(r *harness.Report) error {
			p := mustParams().Modular
			total := p.Period * p.Cycles

			seq, err := residue.FibonacciMod(p.Modulus, total)
			if err != nil {
				return err
			}

			r.Banner("MOD 9 EXCLUSION AND PISANO PERIODICITY", ruleWidth)
			r.Printf("Generated %d Fibonacci terms modulo %d.\n", total, p.Modulus)

			cycle := seq[:p.Period]
			for k := 1; k < p.Cycles; k++ {
				offset := k * p.Period
				segment := seq[offset : offset+p.Period]
				name := fmt.Sprintf("cycle at offset %d", offset)
				if err := r.Equal(name, segment, cycle); err != nil {
					return err
				}
			}
			if err := r.Equal("pisano period", residue.PisanoPeriod(p.Modulus), int64(p.Period)); err != nil {
				return err
			}
			r.Printf("Pisano period π(%d) = %d verified over %d cycles\n", p.Modulus, p.Period, p.Cycles)
			r.Line("Cycle: " + harness.Ints(cycle))
			r.Blank()

			counts := make([]int, p.Modulus)
			for _, v := range cycle {
				counts[v]++
			}

			r.Rule("-", ruleWidth)
			r.Line("Node | Count | Role")
			r.Rule("-", ruleWidth)
			var resonant, chaotic, sum int
			for n := int64(0); n < p.Modulus; n++ {
				role := nodeRole(n)
				r.Line(fmt.Sprintf("%4d | %5d | %s", n, counts[n], role))
				sum += counts[n]
				if role == "chaotic" {
					chaotic += counts[n]
				} else {
					resonant += counts[n]
				}
			}
			r.Rule("-", ruleWidth)

			if err := r.Equal("histogram total", sum, p.Period); err != nil {
				return err
			}
			r.Line(fmt.Sprintf("Attractor and bridge nodes occupy %d/%d of the cycle.", resonant, p.Period))
			r.Line(fmt.Sprintf("Chaotic nodes occupy %d/%d of the cycle.", chaotic, p.Period))
			return nil
		},
	}
}
