package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/nrcfold/internal/transform"
)

// TransformResult is the input and output of one transform invocation.
type TransformResult struct {
	Op     string    `json:"op"`
	Input  []float64 `json:"input"`
	Output []float64 `json:"output"`
}

// transformOps maps an op name to its implementation.
func transformOps(iterations int) map[string]func(*transform.Array) (*transform.Array, error) {
	return map[string]func(*transform.Array) (*transform.Array, error){
		"qrt":  transform.QRTDamping,
		"mst":  transform.MSTStep,
		"gate": transform.ExclusionGate,
		"phi":  transform.PhiPower,
		"fold": func(a *transform.Array) (*transform.Array, error) {
			return transform.PhiInfinityFold(a, iterations)
		},
	}
}

// NewTransformCommand creates the transform command.
func NewTransformCommand(rootOpts *RootOptions) *cobra.Command {
	var iterations int

	cmd := &cobra.Command{
		Use:   "transform <qrt|mst|gate|fold|phi> <value>...",
		Short: "Apply a numeric transform to a list of values",
		Long: `Apply one transform elementwise and print the result.

Operations:
  qrt   quantum resonance transform, a bounded damping multiplier
  mst   one step of the modular stability map
  gate  zero every value whose residue mod 2187 is forbidden
  fold  phi-infinity fold (see --iterations)
  phi   phi raised to each value

Examples:
  nrc transform qrt 0 0.5 1
  nrc transform gate 1 2 3 4 5
  nrc transform fold --iterations 3 -- -1 0 1`,
		Args:          cobra.MinimumNArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := newFormatter(rootOpts, cmd)

			op := strings.ToLower(args[0])
			fn, ok := transformOps(iterations)[op]
			if !ok {
				return commandError(out, ErrCodeUsage, fmt.Sprintf("unknown transform %q", args[0]), nil)
			}
			values, err := parseFloats(args[1:])
			if err != nil {
				return commandError(out, ErrCodeUsage, "invalid value", err)
			}
			in, err := transform.FromSlice(values)
			if err != nil {
				return commandError(out, ErrCodeDomain, "invalid input", err)
			}
			res, err := fn(in)
			if err != nil {
				return commandError(out, ErrCodeDomain, fmt.Sprintf("%s failed", op), err)
			}

			result := TransformResult{Op: op, Input: values, Output: res.Values()}
			var b strings.Builder
			for i, v := range result.Output {
				fmt.Fprintf(&b, "%s\t%s\n", formatFloat(result.Input[i]), formatFloat(v))
			}
			return out.Success(result, b.String())
		},
	}

	cmd.Flags().IntVar(&iterations, "iterations", transform.DefaultFoldIterations, "fold iterations")
	return cmd
}

func parseFloats(args []string) ([]float64, error) {
	out := make([]float64, 0, len(args))
	for _, a := range args {
		for _, field := range strings.Split(a, ",") {
			field = strings.TrimSpace(field)
			if field == "" {
				continue
			}
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
	}
	return out, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
