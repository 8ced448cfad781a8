package proofs

import (
	"fmt"
	"math"

	"github.com/roach88/nrcfold/internal/harness"
	"github.com/roach88/nrcfold/internal/residue"
)

func tuptExclusion() harness.Scenario {
	return harness.Scenario{
		Name:        "tupt-exclusion",
		Description: "4/9 of integers fall in the resonant mod-9 classes",
		Run: func(r *harness.Report) error {
			p := mustParams().TUPT

			r.Banner("TUPT EXCLUSION CLASSIFICATION", ruleWidth)
			r.Line("Residue | Class    | Action")
			r.Rule("-", ruleWidth)
			for v := int64(0); v < 9; v++ {
				class := residue.ClassifyMod9(v)
				action := "prune"
				if class == residue.Resonant {
					action = "keep"
				}
				r.Line(fmt.Sprintf("%7d | %-8s | %s", v, class, action))
			}
			r.Rule("-", ruleWidth)

			resonant, chaotic := residue.Tally(0, p.Limit)
			total := float64(p.Limit)
			resPct := float64(resonant) / total * 100
			chaPct := float64(chaotic) / total * 100
			expected := 4.0 / 9.0 * 100

			r.Printf("Values classified: %d\n", p.Limit)
			r.Printf("Resonant: %d (%.2f%%)\n", resonant, resPct)
			r.Printf("Chaotic:  %d (%.2f%%)\n", chaotic, chaPct)
			r.Printf("Expected resonant: %.4f%%\n", expected)
			r.Printf("Match error:       %.6f%%\n", math.Abs(resPct-expected))

			if err := r.Equal("tally covers range", resonant+chaotic, p.Limit); err != nil {
				return err
			}
			if err := r.Within("resonant share", resPct, expected, p.Tolerance); err != nil {
				return err
			}

			kept, _ := residue.Tally(0, p.SampleSize)
			r.Blank()
			r.Printf("Sample of %d: %d kept, %d pruned\n", p.SampleSize, kept, p.SampleSize-kept)
			return nil
		},
	}
}
