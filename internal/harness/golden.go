package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"
)

// GoldenDir is where golden report files live, relative to the test's package.
const GoldenDir = "testdata/golden"

// NewGoldie returns a goldie instance configured for report files.
//
// Update golden files with:
//
//	go test ./... -update
func NewGoldie(t *testing.T) *goldie.Goldie {
	t.Helper()
	return goldie.New(t,
		goldie.WithFixtureDir(GoldenDir),
		goldie.WithNameSuffix(".golden"),
	)
}

// AssertGolden runs the scenario and compares its report with the golden file
// named after it.
func AssertGolden(t *testing.T, s Scenario) {
	t.Helper()
	result := Run(s)
	if !result.Pass {
		t.Fatalf("scenario %s failed: %v", s.Name, result.Errors)
	}
	NewGoldie(t).Assert(t, s.Name, []byte(result.Report))
}
