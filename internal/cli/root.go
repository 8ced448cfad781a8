package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/roach88/nrcfold/internal/config"
	"github.com/roach88/nrcfold/internal/logging"
	"github.com/roach88/nrcfold/internal/store"
)

// RootOptions holds global flags and the state built from them before any
// subcommand runs.
type RootOptions struct {
	Verbose    bool
	Format     string // "json" | "text"
	ConfigPath string

	// Now and NewID stamp ledger records. Nil uses the wall clock and
	// UUIDv7 run IDs.
	Now   func() time.Time
	NewID func() string

	cfg    *config.Config
	logger *zap.Logger
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// Config returns the loaded configuration, or defaults when the root
// command's pre-run has not executed (as in tests that build a subcommand
// directly).
func (o *RootOptions) Config() *config.Config {
	if o.cfg == nil {
		return config.Default()
	}
	return o.cfg
}

// Logger returns the command logger, or a no-op logger.
func (o *RootOptions) Logger() *zap.Logger {
	if o.logger == nil {
		return zap.NewNop()
	}
	return o.logger
}

func (o *RootOptions) now() time.Time {
	if o.Now == nil {
		return time.Now().UTC()
	}
	return o.Now()
}

func (o *RootOptions) newID() string {
	if o.NewID == nil {
		return store.NewRunID()
	}
	return o.NewID()
}

// NewRootCommand creates the root command for the nrc CLI.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&RootOptions{})
}

func newRootCommand(opts *RootOptions) *cobra.Command {

	cmd := &cobra.Command{
		Use:   "nrc",
		Short: "nrc - golden-ratio transforms and validation suite",
		Long: `Numeric transforms built on golden-ratio and Fibonacci arithmetic,
with a deterministic validation suite that re-derives each identity and
checks it within a stated tolerance.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return NewExitError(ExitCommandError,
					fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}
			cfg, err := config.Load(opts.ConfigPath)
			if err != nil {
				return WrapExitError(ExitCommandError, "failed to load configuration", err)
			}
			logger, err := logging.New(logging.Options{
				Level:   cfg.Log.Level,
				Format:  cfg.Log.Format,
				Verbose: opts.Verbose,
				Writer:  cmd.ErrOrStderr(),
			})
			if err != nil {
				return WrapExitError(ExitCommandError, "failed to create logger", err)
			}
			opts.cfg = cfg
			opts.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if opts.logger != nil {
				_ = opts.logger.Sync()
			}
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "path to a YAML config file")

	cmd.AddCommand(NewVerifyCommand(opts))
	cmd.AddCommand(NewProofCommand(opts))
	cmd.AddCommand(NewListCommand(opts))
	cmd.AddCommand(NewConstantsCommand(opts))
	cmd.AddCommand(NewResidueCommand(opts))
	cmd.AddCommand(NewTransformCommand(opts))
	cmd.AddCommand(NewShardCommand(opts))
	cmd.AddCommand(NewPublishCommand(opts))
	cmd.AddCommand(NewHistoryCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
