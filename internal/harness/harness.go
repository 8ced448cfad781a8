package harness

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Runner executes scenarios. The zero value is not usable; use NewRunner.
type Runner struct {
	logger   *zap.Logger
	parallel int
}

// NewRunner returns a runner that executes at most parallel scenarios at
// once. parallel < 1 means sequential. A nil logger discards output.
func NewRunner(logger *zap.Logger, parallel int) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	if parallel < 1 {
		parallel = 1
	}
	return &Runner{logger: logger.Named("harness"), parallel: parallel}
}

// Run executes a single scenario with a fresh report and returns its result.
// Run never fails: errors and panics inside the scenario become a failed
// result.
func Run(s Scenario) *Result {
	return NewRunner(nil, 1).Run(s)
}

// RunAll executes scenarios with the given concurrency limit.
func RunAll(ctx context.Context, scenarios []Scenario, parallel int) ([]*Result, error) {
	return NewRunner(nil, parallel).RunAll(ctx, scenarios)
}

// Run executes a single scenario.
func (r *Runner) Run(s Scenario) *Result {
	start := time.Now()
	report := NewReport()
	result := NewResult(s.Name)

	err := invoke(s, report)

	result.Report = report.String()
	result.Checks = report.Checks()
	result.Digest = Digest(result.Report)

	if err != nil {
		result.AddError(err.Error())
	}

	fields := []zap.Field{
		zap.String("scenario", s.Name),
		zap.Bool("pass", result.Pass),
		zap.Int("checks", len(result.Checks)),
		zap.Duration("elapsed", time.Since(start)),
	}
	if result.Pass {
		r.logger.Debug("scenario finished", fields...)
	} else {
		var ae *AssertionError
		if errors.As(err, &ae) {
			fields = append(fields, zap.String("check", ae.Check))
		}
		r.logger.Warn("scenario failed", append(fields, zap.Error(err))...)
	}
	return result
}

func invoke(s Scenario, report *Report) (err error) {
	if s.Run == nil {
		return fmt.Errorf("scenario %q has no Run function", s.Name)
	}
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("internal fault: %v", p)
		}
	}()
	return s.Run(report)
}

// RunAll executes every scenario and returns results in registration order.
// Scenarios are isolated from each other: a failure or panic in one has no
// effect on the rest. The only error returned is ctx's, when it is cancelled
// before all scenarios have started.
func (r *Runner) RunAll(ctx context.Context, scenarios []Scenario) ([]*Result, error) {
	results := make([]*Result, len(scenarios))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.parallel)

	for i, s := range scenarios {
		if err := gctx.Err(); err != nil {
			break
		}
		i, s := i, s
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = r.Run(s)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s := Summarize(results)
	r.logger.Info("suite finished",
		zap.Int("passed", s.Passed),
		zap.Int("failed", s.Failed),
		zap.Int("total", s.Total),
	)
	return results, nil
}
