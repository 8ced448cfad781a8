package cli

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/nrcfold/internal/store"
)

// HistoryEntry is one ledger run with its outcomes.
type HistoryEntry struct {
	store.Run
	Outcomes []store.Outcome `json:"outcomes,omitempty"`
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		limit    int
		dbPath   string
		outcomes bool
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded verification runs",
		Long: `List runs recorded by "nrc verify --db", newest first.

Examples:
  nrc history --db nrc.db
  nrc history --db nrc.db --limit 5 --outcomes`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := newFormatter(rootOpts, cmd)
			if dbPath == "" {
				dbPath = rootOpts.Config().Ledger.Path
			}
			if dbPath == "" {
				return commandError(out, ErrCodeUsage, "no ledger configured: pass --db or set NRC_LEDGER_PATH", nil)
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			s, err := store.Open(dbPath)
			if err != nil {
				return commandError(out, ErrCodeIO, "failed to open ledger", err)
			}
			defer s.Close()

			if out.Verbose {
				if v, err := s.SchemaVersion(ctx); err == nil {
					out.VerboseLog("ledger %s at schema version %d", dbPath, v)
				}
			}

			runs, err := s.ListRuns(ctx, limit)
			if err != nil {
				return commandError(out, ErrCodeIO, "failed to list runs", err)
			}

			entries := make([]HistoryEntry, 0, len(runs))
			for _, r := range runs {
				e := HistoryEntry{Run: r}
				if outcomes {
					e.Outcomes, err = s.Outcomes(ctx, r.ID)
					if err != nil {
						return commandError(out, ErrCodeIO, "failed to read outcomes", err)
					}
				}
				entries = append(entries, e)
			}

			return out.Success(entries, historyText(entries))
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 10, "maximum runs to show (0 for all)")
	cmd.Flags().StringVar(&dbPath, "db", "", "SQLite ledger path")
	cmd.Flags().BoolVar(&outcomes, "outcomes", false, "include per-scenario outcomes")

	return cmd
}

func historyText(entries []HistoryEntry) string {
	if len(entries) == 0 {
		return "No runs recorded.\n"
	}
	var b strings.Builder
	tw := tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SEQ\tSTARTED\tPASSED\tFAILED\tTOTAL\tFILTER\tID")
	for _, e := range entries {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%d\t%d\t%s\t%s\n",
			e.Seq, e.StartedAt.UTC().Format(time.RFC3339), e.Passed, e.Failed, e.Total, e.Filter, e.ID)
	}
	tw.Flush()
	for _, e := range entries {
		for _, o := range e.Outcomes {
			mark := "✓"
			if !o.Pass {
				mark = "✗"
			}
			fmt.Fprintf(&b, "  #%d %s %s %.12s\n", e.Seq, mark, o.Name, o.Digest)
		}
	}
	return b.String()
}
