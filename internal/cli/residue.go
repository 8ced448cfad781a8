package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/nrcfold/internal/constants"
	"github.com/roach88/nrcfold/internal/harness"
	"github.com/roach88/nrcfold/internal/residue"
)

// NewResidueCommand creates the residue command group.
func NewResidueCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "residue",
		Short: "Query the modular residue engine",
	}

	cmd.AddCommand(newPisanoCommand(rootOpts))
	cmd.AddCommand(newQRCommand(rootOpts))
	cmd.AddCommand(newFibCommand(rootOpts))
	cmd.AddCommand(newClassifyCommand(rootOpts))

	return cmd
}

// PisanoInfo is the period and one cycle of F(n) mod m.
type PisanoInfo struct {
	Modulus int64   `json:"modulus"`
	Period  int64   `json:"period"`
	Cycle   []int64 `json:"cycle,omitempty"`
}

func newPisanoCommand(rootOpts *RootOptions) *cobra.Command {
	var showCycle bool

	cmd := &cobra.Command{
		Use:   "pisano <m>...",
		Short: "Print the Pisano period of each modulus",
		Example: `  nrc residue pisano 9 10 24
  nrc residue pisano --cycle 7`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := newFormatter(rootOpts, cmd)
			mods, err := parseInts(args)
			if err != nil {
				return commandError(out, ErrCodeUsage, "invalid modulus", err)
			}

			infos := make([]PisanoInfo, 0, len(mods))
			var b strings.Builder
			for _, m := range mods {
				p, err := residue.PisanoPeriodChecked(m)
				if err != nil {
					return commandError(out, ErrCodeDomain, "cannot compute period", err)
				}
				info := PisanoInfo{Modulus: m, Period: p}
				fmt.Fprintf(&b, "π(%d) = %d\n", m, p)
				if showCycle {
					info.Cycle, err = residue.Cycle(m)
					if err != nil {
						return commandError(out, ErrCodeDomain, "cannot compute cycle", err)
					}
					fmt.Fprintf(&b, "  %s\n", harness.Ints(info.Cycle))
				}
				infos = append(infos, info)
			}
			return out.Success(infos, b.String())
		},
	}

	cmd.Flags().BoolVar(&showCycle, "cycle", false, "also print one full cycle")
	return cmd
}

// QRInfo lists the quadratic residues of a prime, and optionally how a set
// of values partitions against them.
type QRInfo struct {
	Prime    int64   `json:"prime"`
	Residues []int64 `json:"residues"`
	Passed   []int64 `json:"passed,omitempty"`
	Rejected []int64 `json:"rejected,omitempty"`
}

func newQRCommand(rootOpts *RootOptions) *cobra.Command {
	var partition []string

	cmd := &cobra.Command{
		Use:   "qr <p>",
		Short: "List the quadratic residues of a prime",
		Example: `  nrc residue qr 7
  nrc residue qr 7 --partition 1,2,3,4,5,6`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := newFormatter(rootOpts, cmd)
			p, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return commandError(out, ErrCodeUsage, "invalid prime", err)
			}
			if !residue.IsPrime(p) {
				return commandError(out, ErrCodeDomain, fmt.Sprintf("%d is not prime", p), nil)
			}

			qr := residue.QuadraticResidues(p)
			info := QRInfo{Prime: p, Residues: qr}
			var b strings.Builder
			fmt.Fprintf(&b, "QR(%d) = %s\n", p, harness.Ints(qr))

			if len(partition) > 0 {
				values, err := parseInts(partition)
				if err != nil {
					return commandError(out, ErrCodeUsage, "invalid partition value", err)
				}
				info.Passed, info.Rejected = residue.Partition(values, p, qr)
				fmt.Fprintf(&b, "passed:   %s\n", harness.Ints(info.Passed))
				fmt.Fprintf(&b, "rejected: %s\n", harness.Ints(info.Rejected))
			}
			return out.Success(info, b.String())
		},
	}

	cmd.Flags().StringSliceVar(&partition, "partition", nil, "values to split by residue class")
	return cmd
}

// FibInfo is F(n), optionally reduced mod m.
type FibInfo struct {
	N       int    `json:"n"`
	Value   string `json:"value"`
	Modulus int64  `json:"modulus,omitempty"`
}

func newFibCommand(rootOpts *RootOptions) *cobra.Command {
	var modulus int64

	cmd := &cobra.Command{
		Use:   "fib <n>...",
		Short: "Print exact Fibonacci numbers",
		Example: `  nrc residue fib 10 100
  nrc residue fib --mod 9 1000`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := newFormatter(rootOpts, cmd)
			ns, err := parseInts(args)
			if err != nil {
				return commandError(out, ErrCodeUsage, "invalid index", err)
			}

			infos := make([]FibInfo, 0, len(ns))
			var b strings.Builder
			for _, n := range ns {
				if n < 0 {
					return commandError(out, ErrCodeDomain, "cannot compute",
						fmt.Errorf("%w: %d", constants.ErrNegativeIndex, n))
				}
				info := FibInfo{N: int(n), Modulus: modulus}
				if modulus > 0 {
					seq, err := residue.FibonacciMod(modulus, int(n)+1)
					if err != nil {
						return commandError(out, ErrCodeDomain, "cannot reduce", err)
					}
					info.Value = strconv.FormatInt(seq[n], 10)
					fmt.Fprintf(&b, "F(%d) mod %d = %s\n", n, modulus, info.Value)
				} else {
					f, err := constants.Fibonacci(int(n))
					if err != nil {
						return commandError(out, ErrCodeDomain, "cannot compute", err)
					}
					info.Value = f.String()
					fmt.Fprintf(&b, "F(%d) = %s\n", n, info.Value)
				}
				infos = append(infos, info)
			}
			return out.Success(infos, b.String())
		},
	}

	cmd.Flags().Int64Var(&modulus, "mod", 0, "reduce modulo m")
	return cmd
}

// ClassInfo is the mod-9 class of an integer.
type ClassInfo struct {
	Value   int64  `json:"value"`
	Residue int64  `json:"residue"`
	Class   string `json:"class"`
}

func newClassifyCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "classify <x>...",
		Short:         "Classify integers as resonant or chaotic by residue mod 9",
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := newFormatter(rootOpts, cmd)
			xs, err := parseInts(args)
			if err != nil {
				return commandError(out, ErrCodeUsage, "invalid value", err)
			}

			infos := make([]ClassInfo, 0, len(xs))
			var b strings.Builder
			for _, x := range xs {
				info := ClassInfo{Value: x, Residue: residue.Mod(x, 9), Class: residue.ClassifyMod9(x).String()}
				infos = append(infos, info)
				fmt.Fprintf(&b, "%d ≡ %d (mod 9): %s\n", info.Value, info.Residue, info.Class)
			}
			return out.Success(infos, b.String())
		},
	}
}

func parseInts(args []string) ([]int64, error) {
	out := make([]int64, 0, len(args))
	for _, a := range args {
		v, err := strconv.ParseInt(strings.TrimSpace(a), 10, 64)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
