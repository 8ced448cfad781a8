package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/roach88/nrcfold/internal/harness"
	"github.com/roach88/nrcfold/internal/proofs"
	"github.com/roach88/nrcfold/internal/store"
)

// VerifyOptions holds flags for the verify command.
type VerifyOptions struct {
	*RootOptions
	Filter   string // scenario filter (glob pattern)
	Parallel int    // concurrent scenarios; 0 uses the configured value
	DBPath   string // ledger path; empty uses the configured value
	Quiet    bool   // suppress per-scenario reports
}

// ScenarioResult is one scenario's entry in the verify output.
type ScenarioResult struct {
	Name   string   `json:"name"`
	Pass   bool     `json:"pass"`
	Errors []string `json:"errors,omitempty"`
	Digest string   `json:"digest"`
	Drift  bool     `json:"drift,omitempty"`
}

// VerifyResult holds the overall verification result.
type VerifyResult struct {
	RunID     string           `json:"run_id,omitempty"`
	Scenarios []ScenarioResult `json:"scenarios"`
	Passed    int              `json:"passed"`
	Failed    int              `json:"failed"`
	Total     int              `json:"total"`
}

// NewVerifyCommand creates the verify command.
func NewVerifyCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &VerifyOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Run the validation suite",
		Long: `Run every validation scenario (or those matching --filter), print each
report followed by a summary, and optionally record the run in the ledger.

Exit codes:
  0 - All scenarios passed
  1 - One or more scenarios failed
  2 - Command error (bad filter, unreadable ledger, etc.)

Examples:
  nrc verify
  nrc verify --filter "pisano-*"
  nrc verify --parallel 4 --db nrc.db
  nrc verify --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVerify(cmd.Context(), opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Filter, "filter", "", "filter scenarios by glob pattern")
	cmd.Flags().IntVar(&opts.Parallel, "parallel", 0, "number of scenarios to run concurrently")
	cmd.Flags().StringVar(&opts.DBPath, "db", "", "record the run in this SQLite ledger")
	cmd.Flags().BoolVarP(&opts.Quiet, "quiet", "q", false, "print only the summary")

	return cmd
}

func runVerify(ctx context.Context, opts *VerifyOptions, cmd *cobra.Command) error {
	if ctx == nil {
		ctx = context.Background()
	}
	out := newFormatter(opts.RootOptions, cmd)
	cfg := opts.Config()
	logger := opts.Logger()

	scenarios := proofs.All()
	if opts.Filter != "" {
		filtered, err := harness.Filter(scenarios, opts.Filter)
		if err != nil {
			return commandError(out, ErrCodeUsage, "invalid filter", err)
		}
		scenarios = filtered
	}

	if len(scenarios) == 0 {
		if out.JSON() {
			return out.Success(VerifyResult{Scenarios: []ScenarioResult{}}, "")
		}
		fmt.Fprintln(cmd.OutOrStdout(), "No scenarios matched.")
		return nil
	}

	parallel := opts.Parallel
	if parallel <= 0 {
		parallel = cfg.Suite.Parallel
	}

	dbPath := opts.DBPath
	if dbPath == "" {
		dbPath = cfg.Ledger.Path
	}
	var ledger *store.Store
	if dbPath != "" {
		s, err := store.Open(dbPath)
		if err != nil {
			return commandError(out, ErrCodeIO, "failed to open ledger", err)
		}
		defer s.Close()
		ledger = s
	}

	started := opts.now()
	results, err := harness.NewRunner(logger, parallel).RunAll(ctx, scenarios)
	if err != nil {
		return commandError(out, ErrCodeIO, "verification interrupted", err)
	}

	summary := harness.Summarize(results)
	result := VerifyResult{
		Scenarios: make([]ScenarioResult, 0, len(results)),
		Passed:    summary.Passed,
		Failed:    summary.Failed,
		Total:     summary.Total,
	}
	for _, r := range results {
		result.Scenarios = append(result.Scenarios, ScenarioResult{
			Name:   r.Name,
			Pass:   r.Pass,
			Errors: r.Errors,
			Digest: r.Digest,
		})
	}

	if ledger != nil {
		run, err := recordRun(ctx, ledger, store.Run{
			ID:        opts.newID(),
			StartedAt: started,
			Filter:    opts.Filter,
			Passed:    summary.Passed,
			Failed:    summary.Failed,
			Total:     summary.Total,
		}, results, result.Scenarios)
		if err != nil {
			return commandError(out, ErrCodeIO, "failed to record run", err)
		}
		result.RunID = run.ID
		logger.Info("run recorded", zap.String("run_id", run.ID), zap.Int64("seq", run.Seq))
	}

	if out.JSON() {
		if err := out.Success(result, ""); err != nil {
			return err
		}
	} else {
		if err := out.Success(nil, verifyText(result, results, opts.Quiet)); err != nil {
			return err
		}
	}

	if result.Failed > 0 {
		return failed(fmt.Sprintf("%d of %d scenarios failed", result.Failed, result.Total))
	}
	return nil
}

// recordRun flags digest drift against each scenario's previous run and
// writes the run to the ledger. entries is updated in place.
func recordRun(ctx context.Context, ledger *store.Store, run store.Run,
	results []*harness.Result, entries []ScenarioResult) (store.Run, error) {
	next, err := ledger.NextSeq(ctx)
	if err != nil {
		return store.Run{}, err
	}
	outcomes := make([]store.Outcome, 0, len(results))
	for i, r := range results {
		prev, ok, err := ledger.LastDigest(ctx, r.Name, next)
		if err != nil {
			return store.Run{}, err
		}
		entries[i].Drift = ok && prev != r.Digest
		outcomes = append(outcomes, store.Outcome{
			Position: i,
			Name:     r.Name,
			Pass:     r.Pass,
			Errors:   r.Errors,
			Digest:   r.Digest,
		})
	}
	return ledger.RecordRun(ctx, run, outcomes)
}

func verifyText(result VerifyResult, results []*harness.Result, quiet bool) string {
	var b strings.Builder
	if !quiet {
		for _, r := range results {
			b.WriteString(r.Report)
			b.WriteString("\n")
		}
	}

	for _, s := range result.Scenarios {
		if s.Pass {
			fmt.Fprintf(&b, "✓ %s", s.Name)
		} else {
			fmt.Fprintf(&b, "✗ %s", s.Name)
		}
		if s.Drift {
			b.WriteString(" (report changed since last run)")
		}
		b.WriteString("\n")
		for _, e := range s.Errors {
			fmt.Fprintf(&b, "  %s\n", strings.ReplaceAll(e, "\n", "\n  "))
		}
	}

	b.WriteString("\n")
	fmt.Fprintf(&b, "Results: %d passed, %d failed, %d total\n", result.Passed, result.Failed, result.Total)
	if result.RunID != "" {
		fmt.Fprintf(&b, "Recorded run %s\n", result.RunID)
	}
	return b.String()
}
