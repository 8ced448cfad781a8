package harness

import (
	"fmt"
	"math"
	"reflect"
	"strings"
)

// AssertionError is returned when a check fails. It is fatal to the scenario
// that produced it.
type AssertionError struct {
	Check    string // name of the failed check
	Expected string // human-readable expectation
	Actual   string // human-readable observation
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Check)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s", e.Actual)
	return buf.String()
}

// Check records a named comparison. It returns an *AssertionError when ok is
// false so the caller can stop with `if err := r.Check(...); err != nil`.
func (r *Report) Check(name string, ok bool, expected, actual string) error {
	r.checks = append(r.checks, Check{Name: name, Pass: ok, Expected: expected, Actual: actual})
	if ok {
		return nil
	}
	return &AssertionError{Check: name, Expected: expected, Actual: actual}
}

// Within checks |got − want| < tol.
func (r *Report) Within(name string, got, want, tol float64) error {
	diff := math.Abs(got - want)
	return r.Check(name, diff < tol,
		fmt.Sprintf("%.17g ± %g", want, tol),
		fmt.Sprintf("%.17g (error %.3e)", got, diff))
}

// Below checks got < limit.
func (r *Report) Below(name string, got, limit float64) error {
	return r.Check(name, got < limit,
		fmt.Sprintf("< %g", limit),
		fmt.Sprintf("%.17g", got))
}

// AtMost checks got ≤ limit.
func (r *Report) AtMost(name string, got, limit float64) error {
	return r.Check(name, got <= limit,
		fmt.Sprintf("<= %g", limit),
		fmt.Sprintf("%.17g", got))
}

// Above checks got > limit.
func (r *Report) Above(name string, got, limit float64) error {
	return r.Check(name, got > limit,
		fmt.Sprintf("> %g", limit),
		fmt.Sprintf("%.17g", got))
}

// Equal checks deep equality.
func (r *Report) Equal(name string, got, want any) error {
	return r.Check(name, reflect.DeepEqual(got, want),
		fmt.Sprintf("%v", want),
		fmt.Sprintf("%v", got))
}

// True checks a boolean condition described by what.
func (r *Report) True(name string, ok bool, what string) error {
	actual := "true"
	if !ok {
		actual = "false"
	}
	return r.Check(name, ok, what, actual)
}
