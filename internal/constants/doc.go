// Package constants supplies the golden ratio and the constants derived from
// it at two resolutions.
//
// Every constant is computed once as an arbitrary-precision decimal
// (Precision significant digits, github.com/cockroachdb/apd/v3) and the
// float64 value is derived from that decimal. The decimal is the source of
// truth for tolerance checks; the float is what the transform library uses.
//
// # Constants
//
//   - Phi:        (1+√5)/2
//   - PhiInverse: 1/φ (equal to φ−1)
//   - Sqrt5, Sqrt2, Pi
//   - Slope:      the empirical slope constant used by the QRT damping term
//
// Values are immutable. Accessors return a Real whose Decimal method hands out
// a fresh copy, so callers can never alter the shared value.
//
// # Binet's formula
//
//	F(n) = (φⁿ − (−φ)⁻ⁿ) / √5
//
// Binet evaluates it in float64; BinetDecimal and BinetExact evaluate it at
// full precision and agree exactly with the iterative Fibonacci reference for
// every index whose value fits comfortably inside Precision digits.
package constants
