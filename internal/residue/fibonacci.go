package residue

import (
	"fmt"
	"math"
)

// FibonacciMod returns count terms of F(i) mod m, starting F(0)=0, F(1)=1.
func FibonacciMod(m int64, count int) ([]int64, error) {
	if m < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidModulus, m)
	}
	if count < 0 {
		return nil, fmt.Errorf("residue: negative term count %d", count)
	}
	seq := make([]int64, count)
	var a, b int64 = 0, 1 % m
	for i := range seq {
		seq[i] = a
		a, b = b, (a+b)%m
	}
	return seq, nil
}

// MaxPisanoModulus is the largest modulus PisanoPeriod accepts. Residues
// stay below it, so a+b cannot overflow, and the 6m search bound fits int64.
const MaxPisanoModulus = math.MaxInt64 / 6

// PisanoPeriod returns π(m), the period of the Fibonacci sequence mod m.
//
// The search is bounded by π(m) ≤ 6m. Failing to find the period inside that
// bound is impossible for m ≥ 1, so it panics rather than returning an error.
// It also panics for m < 1; use PisanoPeriodChecked for untrusted input.
func PisanoPeriod(m int64) int64 {
	p, err := PisanoPeriodChecked(m)
	if err != nil {
		panic(err.Error())
	}
	return p
}

// PisanoPeriodChecked is PisanoPeriod with errors instead of panics.
func PisanoPeriodChecked(m int64) (int64, error) {
	if m < 1 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidModulus, m)
	}
	if m == 1 {
		return 1, nil
	}
	if m > MaxPisanoModulus {
		return 0, fmt.Errorf("%w: %d exceeds %d", ErrInvalidModulus, m, int64(MaxPisanoModulus))
	}
	var a, b int64 = 0, 1
	limit := 6 * m
	for i := int64(1); i <= limit; i++ {
		a, b = b, (a+b)%m
		if a == 0 && b == 1 {
			return i, nil
		}
	}
	return 0, fmt.Errorf("residue: no pisano period for m=%d within %d steps", m, limit)
}

// Cycle returns one full Pisano cycle: the first π(m) terms of F(i) mod m.
func Cycle(m int64) ([]int64, error) {
	p, err := PisanoPeriodChecked(m)
	if err != nil {
		return nil, err
	}
	return FibonacciMod(m, int(p))
}
