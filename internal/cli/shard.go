package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/roach88/nrcfold/internal/sequence"
	"github.com/roach88/nrcfold/internal/shard"
)

// ShardOptions holds flags for the shard command.
type ShardOptions struct {
	*RootOptions
	Count    int
	Sequence string
	Out      string
}

// NewShardCommand creates the shard command.
func NewShardCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ShardOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "shard [value...]",
		Short: "Split a workload into work units",
		Long: `Split a list of values, or the phi-scaled residue masses of an amino-acid
sequence, into contiguous work units for distributed processing.

Examples:
  nrc shard --count 4 1 2 3 4 5 6 7 8 9 10
  nrc shard --count 3 --sequence MKTAYIAKQR --out json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShard(opts, args, cmd)
		},
	}

	cmd.Flags().IntVar(&opts.Count, "count", 1, "number of work units")
	cmd.Flags().StringVar(&opts.Sequence, "sequence", "", "amino-acid sequence to convert to coordinates")
	cmd.Flags().StringVar(&opts.Out, "out", "", "encoding: yaml or json (default follows --format)")

	return cmd
}

func runShard(opts *ShardOptions, args []string, cmd *cobra.Command) error {
	out := newFormatter(opts.RootOptions, cmd)

	if opts.Sequence != "" && len(args) > 0 {
		return commandError(out, ErrCodeUsage, "pass either --sequence or values, not both", nil)
	}

	var data []float64
	if opts.Sequence != "" {
		if unknown := sequence.Unknown(opts.Sequence); len(unknown) > 0 {
			opts.Logger().Warn("unknown residues mapped to zero mass",
				zap.String("residues", string(unknown)))
		}
		coords, err := sequence.BaseCoordinates(sequence.Masses(opts.Sequence))
		if err != nil {
			return commandError(out, ErrCodeDomain, "cannot build coordinates", err)
		}
		data = coords.Values()
	} else {
		values, err := parseFloats(args)
		if err != nil {
			return commandError(out, ErrCodeUsage, "invalid value", err)
		}
		data = values
	}
	if len(data) == 0 {
		return commandError(out, ErrCodeUsage, "nothing to shard: pass values or --sequence", nil)
	}

	units, err := shard.Split(data, opts.Count)
	if err != nil {
		return commandError(out, ErrCodeUsage, "cannot split", err)
	}

	format := opts.Out
	if format == "" {
		format = "yaml"
		if out.JSON() {
			format = "json"
		}
	}
	if err := shard.Encode(cmd.OutOrStdout(), units, format); err != nil {
		return commandError(out, ErrCodeUsage, fmt.Sprintf("cannot encode as %q", format), err)
	}
	out.VerboseLog("wrote %d work units for %d values", len(units), len(data))
	return nil
}
