package proofs

import (
	"fmt"
	"math"

	"github.com/roach88/nrcfold/internal/harness"
	"github.com/roach88/nrcfold/internal/shard"
)

func shardFolding() harness.Scenario {
	return harness.Scenario{
		Name:        "shard-folding",
		Description: "φ⁻¹ folding fits any sequence length into a fixed shard in O(log N) folds",
		Run: func(r *harness.Report) error {
			p := mustParams().Shard

			r.Banner("φ∞ SHARD FOLDING", ruleWidth)
			r.Printf("Shard width: %d\n", p.Width)
			r.Blank()
			r.Line("        length | folds |   final size")
			r.Rule("-", ruleWidth)

			prevFolds := -1
			var lastFolds int
			for _, n := range p.Lengths {
				folds, final, err := shard.FoldCount(n, p.Width)
				if err != nil {
					return err
				}
				r.Line(fmt.Sprintf("%14d | %5d | %12.2f", n, folds, final))
				if err := r.AtMost(fmt.Sprintf("final size for %d", n), final, float64(p.Width)); err != nil {
					return err
				}
				if err := r.True(fmt.Sprintf("folds monotone at %d", n), folds >= prevFolds,
					fmt.Sprintf(">= %d folds", prevFolds)); err != nil {
					return err
				}
				prevFolds, lastFolds = folds, folds
			}
			r.Rule("-", ruleWidth)

			largest := p.Lengths[len(p.Lengths)-1]
			theory := shard.TheoreticalFolds(largest, p.Width)
			r.Printf("Folds for %d: %d\n", largest, lastFolds)
			r.Line(fmt.Sprintf("log_φ(N/S) = %.1f", theory))

			if err := r.Below("fold count", float64(lastFolds), float64(p.MaxFolds)); err != nil {
				return err
			}
			return r.Equal("folds match log_φ(N/S)", lastFolds, int(math.Ceil(theory)))
		},
	}
}
