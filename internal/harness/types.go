package harness

// Scenario is one independent validation procedure.
type Scenario struct {
	// Name uniquely identifies the scenario (e.g. "pisano-period").
	Name string

	// Description explains what the scenario validates.
	Description string

	// Run performs the computation, writes the report and returns the first
	// failed check, if any.
	Run func(r *Report) error
}

// Check is one recorded comparison.
type Check struct {
	Name     string `json:"name"`
	Pass     bool   `json:"pass"`
	Expected string `json:"expected"`
	Actual   string `json:"actual"`
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Name is the scenario name.
	Name string `json:"name"`

	// Pass is true when the scenario ran to completion with no failed check.
	Pass bool `json:"pass"`

	// Errors holds failure messages. Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`

	// Checks lists every comparison made, in order.
	Checks []Check `json:"checks"`

	// Report is the formatted text the scenario produced.
	Report string `json:"report,omitempty"`

	// Digest identifies the report content. See Digest.
	Digest string `json:"digest"`
}

// NewResult creates a passing result for the named scenario.
func NewResult(name string) *Result {
	return &Result{
		Name:   name,
		Pass:   true,
		Errors: []string{},
		Checks: []Check{},
	}
}

// AddError adds a failure message and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// Summary counts passed and failed results.
type Summary struct {
	Passed int `json:"passed"`
	Failed int `json:"failed"`
	Total  int `json:"total"`
}

// Summarize tallies a result set.
func Summarize(results []*Result) Summary {
	s := Summary{Total: len(results)}
	for _, r := range results {
		if r.Pass {
			s.Passed++
		} else {
			s.Failed++
		}
	}
	return s
}
