package constants

import (
	"fmt"
	"math"
	"math/big"

	"github.com/cockroachdb/apd/v3"
)

// Binet returns F(n) from the closed form evaluated in float64.
// The result is accurate to well under 1 for n ≤ 70.
func Binet(n int) float64 {
	phi := Phi().Float
	return (math.Pow(phi, float64(n)) - math.Pow(-phi, float64(-n))) / Sqrt5().Float
}

// BinetDecimal evaluates the closed form at full precision.
func BinetDecimal(n int) (*apd.Decimal, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNegativeIndex, n)
	}
	c := workContext()

	pow := new(apd.Decimal)
	if _, err := c.Pow(pow, Phi().dec, apd.New(int64(n), 0)); err != nil {
		return nil, fmt.Errorf("binet(%d): power: %w", n, err)
	}

	// (−φ)⁻ⁿ = (−1)ⁿ · φ⁻ⁿ
	tail := new(apd.Decimal)
	if _, err := c.Quo(tail, apd.New(1, 0), pow); err != nil {
		return nil, fmt.Errorf("binet(%d): reciprocal: %w", n, err)
	}
	if n%2 == 1 {
		tail.Neg(tail)
	}

	out := new(apd.Decimal)
	if _, err := c.Sub(out, pow, tail); err != nil {
		return nil, fmt.Errorf("binet(%d): %w", n, err)
	}
	if _, err := c.Quo(out, out, Sqrt5().dec); err != nil {
		return nil, fmt.Errorf("binet(%d): %w", n, err)
	}
	return out, nil
}

// BinetExact rounds BinetDecimal to the nearest integer.
func BinetExact(n int) (*big.Int, error) {
	d, err := BinetDecimal(n)
	if err != nil {
		return nil, err
	}
	rounded := new(apd.Decimal)
	if _, err := workContext().RoundToIntegralValue(rounded, d); err != nil {
		return nil, fmt.Errorf("binet(%d): round: %w", n, err)
	}
	v, ok := new(big.Int).SetString(rounded.Text('f'), 10)
	if !ok {
		return nil, fmt.Errorf("binet(%d): unparsable integer %q", n, rounded.Text('f'))
	}
	return v, nil
}

// Fibonacci returns F(n) by iteration. It is the exact reference for Binet.
func Fibonacci(n int) (*big.Int, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNegativeIndex, n)
	}
	a, b := big.NewInt(0), big.NewInt(1)
	for i := 0; i < n; i++ {
		a.Add(a, b)
		a, b = b, a
	}
	return a, nil
}
