package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/nrcfold/internal/constants"
)

// ConstantInfo is one constant at both precisions.
type ConstantInfo struct {
	Name     string  `json:"name"`
	Symbol   string  `json:"symbol"`
	Float    float64 `json:"float"`
	Decimal  string  `json:"decimal"`
	AbsError float64 `json:"abs_error"`
}

// NewConstantsCommand creates the constants command.
func NewConstantsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "constants",
		Short: "Print the mathematical constants at both precisions",
		Long: fmt.Sprintf(`Print each constant as a float64 and as a %d-digit decimal, with the
absolute difference between the two.`, constants.Precision),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := newFormatter(rootOpts, cmd)

			all := constants.All()
			infos := make([]ConstantInfo, 0, len(all))
			var b strings.Builder
			for _, c := range all {
				absErr, err := c.AbsError()
				if err != nil {
					return commandError(out, ErrCodeDomain, "failed to compare precisions", err)
				}
				infos = append(infos, ConstantInfo{
					Name:     c.Name,
					Symbol:   c.Symbol,
					Float:    c.Float,
					Decimal:  c.Text(),
					AbsError: absErr,
				})
				fmt.Fprintf(&b, "%s (%s)\n", c.Name, c.Symbol)
				fmt.Fprintf(&b, "  float64: %s\n", strconv.FormatFloat(c.Float, 'g', -1, 64))
				fmt.Fprintf(&b, "  decimal: %s\n", c.Text())
				fmt.Fprintf(&b, "  |diff|:  %.3e\n", absErr)
			}
			return out.Success(infos, b.String())
		},
	}
}
