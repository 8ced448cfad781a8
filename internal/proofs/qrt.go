package proofs

import (
	"fmt"

	"github.com/roach88/nrcfold/internal/harness"
	"github.com/roach88/nrcfold/internal/residue"
)

func qrtExpansion() harness.Scenario {
	return harness.Scenario{
		Name:        "qrt-expansion",
		Description: "every odd prime p has exactly (p−1)/2+1 quadratic residues including 0",
		Run: func(r *harness.Report) error {
			p := mustParams().QRT

			r.Banner("QUADRATIC RESIDUE TRANSFORM", ruleWidth)
			r.Line("   p | |QR(p)| | (p-1)/2+1 | Match | QR set")
			r.Rule("-", ruleWidth)
			for _, prime := range p.Primes {
				if !residue.IsPrime(prime) {
					return fmt.Errorf("qrt-expansion: %d is not prime", prime)
				}
				qr := residue.QuadraticResidues(prime)
				expected := (prime-1)/2 + 1
				ok := int64(qr.Len()) == expected
				r.Line(fmt.Sprintf("%4d | %7d | %9d | %5s | %s",
					prime, qr.Len(), expected, harness.Mark(ok), harness.Ints(qr)))
				if err := r.Equal(fmt.Sprintf("|QR(%d)|", prime), int64(qr.Len()), expected); err != nil {
					return err
				}
			}
			r.Rule("-", ruleWidth)

			demo := p.DemoPrime
			signal := make([]int64, demo)
			for i := range signal {
				signal[i] = int64(i)
			}
			qr := residue.QuadraticResidues(demo)
			passed, rejected := residue.Partition(signal, demo, qr)

			r.Blank()
			r.Printf("Filter demonstration (p=%d):\n", demo)
			r.Line("Input:    " + harness.Ints(signal))
			r.Line("Passed:   " + harness.Ints(passed))
			r.Line("Rejected: " + harness.Ints(rejected))
			r.Line(fmt.Sprintf("Compression: %d/%d = %.1f%%",
				len(passed), len(signal), 100*float64(len(passed))/float64(len(signal))))

			return r.Equal("partition covers input", len(passed)+len(rejected), len(signal))
		},
	}
}
