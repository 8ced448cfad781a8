package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/nrcfold/internal/harness"
	"github.com/roach88/nrcfold/internal/proofs"
)

// NewProofCommand creates the proof command, which runs one scenario and
// prints its full report.
func NewProofCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "proof <name>",
		Short: "Run a single validation scenario",
		Long: `Run one scenario by name and print its report.

Use "nrc list" to see the available names.

Examples:
  nrc proof pisano-period
  nrc proof giza-resonance --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := newFormatter(rootOpts, cmd)
			s, ok := harness.Lookup(proofs.All(), args[0])
			if !ok {
				return commandError(out, ErrCodeNotFound,
					fmt.Sprintf("unknown scenario %q (known: %s)", args[0], strings.Join(proofs.Names(), ", ")), nil)
			}

			result := harness.NewRunner(rootOpts.Logger(), 1).Run(s)

			var b strings.Builder
			b.WriteString(result.Report)
			if result.Pass {
				fmt.Fprintf(&b, "\n✓ %s\n", result.Name)
			} else {
				fmt.Fprintf(&b, "\n✗ %s\n", result.Name)
				for _, e := range result.Errors {
					fmt.Fprintf(&b, "  %s\n", strings.ReplaceAll(e, "\n", "\n  "))
				}
			}

			if result.Pass {
				return out.Success(result, b.String())
			}
			if err := out.Failure(result, b.String()); err != nil {
				return err
			}
			return failed(fmt.Sprintf("scenario %s failed", result.Name))
		},
	}
}
