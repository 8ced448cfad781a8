package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/roach88/nrcfold/internal/proofs"
)

// ScenarioInfo describes one registered scenario.
type ScenarioInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "list",
		Short:         "List validation scenarios",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := newFormatter(rootOpts, cmd)

			scenarios := proofs.All()
			infos := make([]ScenarioInfo, 0, len(scenarios))
			var b strings.Builder
			tw := tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)
			for _, s := range scenarios {
				infos = append(infos, ScenarioInfo{Name: s.Name, Description: s.Description})
				fmt.Fprintf(tw, "%s\t%s\n", s.Name, s.Description)
			}
			tw.Flush()

			return out.Success(infos, b.String())
		},
	}
}
