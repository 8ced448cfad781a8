package constants

import (
	"errors"
	"fmt"
	"sync"

	"github.com/cockroachdb/apd/v3"
)

const (
	// Precision is the number of significant decimal digits carried by every
	// high-precision constant.
	Precision = 100

	// guardDigits are extra digits used while deriving constants so the
	// final rounding to Precision is correct.
	guardDigits = 10

	// SlopeValue is the empirical slope constant (degrees) used by QRT.
	SlopeValue = "51.85"

	// piDigits holds π to 111 decimal places. apd has no exported π.
	piDigits = "3.141592653589793238462643383279502884197169399375105820974944592307816406286208998628034825342117067982148086513"
)

// ErrNegativeIndex is returned when a Fibonacci index below zero is requested.
var ErrNegativeIndex = errors.New("constants: negative fibonacci index")

// Real is a scalar constant available as float64 and as a decimal.
type Real struct {
	Name   string
	Symbol string
	Float  float64
	dec    *apd.Decimal
}

// Decimal returns a copy of the high-precision value.
func (r Real) Decimal() *apd.Decimal {
	d := new(apd.Decimal)
	d.Set(r.dec)
	return d
}

// Text renders the high-precision value in plain decimal notation.
func (r Real) Text() string {
	return r.dec.Text('f')
}

// AbsError returns |Float − Decimal| evaluated at full precision.
func (r Real) AbsError() (float64, error) {
	c := workContext()
	f := new(apd.Decimal)
	if _, err := f.SetFloat64(r.Float); err != nil {
		return 0, fmt.Errorf("%s: %w", r.Name, err)
	}
	diff := new(apd.Decimal)
	if _, err := c.Sub(diff, f, r.dec); err != nil {
		return 0, fmt.Errorf("%s: %w", r.Name, err)
	}
	diff.Abs(diff)
	return diff.Float64()
}

// table is the process-wide set of constants, built once.
type table struct {
	phi, phiInv, sqrt5, sqrt2, pi, slope Real
}

var (
	once   sync.Once
	shared table
	// initErr is only ever set if apd rejects one of the fixed derivations,
	// which would be a programming fault.
	initErr error
)

func load() table {
	once.Do(func() {
		shared, initErr = build()
	})
	if initErr != nil {
		panic(fmt.Sprintf("constants: derivation failed: %v", initErr))
	}
	return shared
}

// workContext is the arithmetic context used for all derivations.
func workContext() *apd.Context {
	return apd.BaseContext.WithPrecision(Precision + guardDigits)
}

// finalContext rounds derived values to Precision digits.
func finalContext() *apd.Context {
	return apd.BaseContext.WithPrecision(Precision)
}

func build() (table, error) {
	c := workContext()
	one := apd.New(1, 0)

	sqrt5 := new(apd.Decimal)
	if _, err := c.Sqrt(sqrt5, apd.New(5, 0)); err != nil {
		return table{}, fmt.Errorf("sqrt5: %w", err)
	}
	sqrt2 := new(apd.Decimal)
	if _, err := c.Sqrt(sqrt2, apd.New(2, 0)); err != nil {
		return table{}, fmt.Errorf("sqrt2: %w", err)
	}

	phi := new(apd.Decimal)
	if _, err := c.Add(phi, one, sqrt5); err != nil {
		return table{}, fmt.Errorf("phi: %w", err)
	}
	if _, err := c.Quo(phi, phi, apd.New(2, 0)); err != nil {
		return table{}, fmt.Errorf("phi: %w", err)
	}

	phiInv := new(apd.Decimal)
	if _, err := c.Quo(phiInv, one, phi); err != nil {
		return table{}, fmt.Errorf("phi inverse: %w", err)
	}

	pi, _, err := apd.NewFromString(piDigits)
	if err != nil {
		return table{}, fmt.Errorf("pi: %w", err)
	}
	slope, _, err := apd.NewFromString(SlopeValue)
	if err != nil {
		return table{}, fmt.Errorf("slope: %w", err)
	}

	var t table
	specs := []struct {
		dst    *Real
		name   string
		symbol string
		value  *apd.Decimal
	}{
		{&t.phi, "phi", "φ", phi},
		{&t.phiInv, "phi_inverse", "φ⁻¹", phiInv},
		{&t.sqrt5, "sqrt5", "√5", sqrt5},
		{&t.sqrt2, "sqrt2", "√2", sqrt2},
		{&t.pi, "pi", "π", pi},
		{&t.slope, "slope", "S", slope},
	}
	for _, s := range specs {
		r, err := newReal(s.name, s.symbol, s.value)
		if err != nil {
			return table{}, err
		}
		*s.dst = r
	}
	return t, nil
}

func newReal(name, symbol string, v *apd.Decimal) (Real, error) {
	rounded := new(apd.Decimal)
	if _, err := finalContext().Round(rounded, v); err != nil {
		return Real{}, fmt.Errorf("%s: round: %w", name, err)
	}
	f, err := rounded.Float64()
	if err != nil {
		return Real{}, fmt.Errorf("%s: float: %w", name, err)
	}
	return Real{Name: name, Symbol: symbol, Float: f, dec: rounded}, nil
}

// Phi returns the golden ratio (1+√5)/2.
func Phi() Real { return load().phi }

// PhiInverse returns 1/φ.
func PhiInverse() Real { return load().phiInv }

// Sqrt5 returns √5.
func Sqrt5() Real { return load().sqrt5 }

// Sqrt2 returns √2.
func Sqrt2() Real { return load().sqrt2 }

// Pi returns π.
func Pi() Real { return load().pi }

// Slope returns the empirical slope constant S.
func Slope() Real { return load().slope }

// All returns every constant in a stable order.
func All() []Real {
	t := load()
	return []Real{t.phi, t.phiInv, t.sqrt5, t.sqrt2, t.pi, t.slope}
}
