// Package harness runs validation scenarios and records their outcome.
//
// A Scenario is a named procedure that computes a sequence or identity,
// checks it against a theoretical prediction and writes a formatted report.
// Checks are made through the Report passed to the scenario; the first failed
// check returns an *AssertionError and the scenario stops there. There are
// no retries and no partial passes.
//
// # Isolation
//
// Scenarios share no state. Runner.RunAll may execute them concurrently;
// results always come back in registration order, but log lines emitted
// while they run may interleave.
//
// A panic inside a scenario is recovered and reported as an "internal fault"
// failure of that scenario only.
//
// # Determinism
//
// Every scenario is a pure computation, so its report text is identical on
// every run. Result.Digest is a domain-separated SHA-256 of the NFC-normalized
// report; the run ledger stores it so drift between runs is visible.
//
// # Usage
//
//	runner := harness.NewRunner(logger, 4)
//	results, err := runner.RunAll(ctx, proofs.All())
//	if err != nil {
//	    return err
//	}
//	for _, r := range results {
//	    fmt.Println(r.Name, r.Pass)
//	}
package harness
