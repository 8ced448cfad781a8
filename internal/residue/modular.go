package residue

import (
	"errors"
	"fmt"
	"math"
	"math/big"
)

// ErrInvalidModulus is returned for moduli below 1.
var ErrInvalidModulus = errors.New("residue: modulus must be >= 1")

// Mod returns the floored remainder of x by m, always in [0, m).
// m must be positive.
func Mod(x, m int64) int64 {
	r := x % m
	if r < 0 {
		r += m
	}
	return r
}

// ModFloat is the float64 counterpart of Mod: the result is in [0, m).
func ModFloat(x, m float64) float64 {
	r := math.Mod(x, m)
	if r < 0 {
		r += m
	}
	// r+m can round up to exactly m for tiny negative r.
	if r >= m {
		r = 0
	}
	return r
}

// PowMod computes base^exp mod m by square-and-multiply.
// Intermediate products go through math/big so large moduli cannot overflow.
func PowMod(base, exp, m int64) int64 {
	if m == 1 {
		return 0
	}
	if exp < 0 {
		panic(fmt.Sprintf("residue: negative exponent %d", exp))
	}
	b := big.NewInt(Mod(base, m))
	mod := big.NewInt(m)
	result := big.NewInt(1)
	for e := exp; e > 0; e >>= 1 {
		if e&1 == 1 {
			result.Mul(result, b).Mod(result, mod)
		}
		b.Mul(b, b).Mod(b, mod)
	}
	return result.Int64()
}

// IsPrime reports whether n is prime using trial division.
func IsPrime(n int64) bool {
	if n < 2 {
		return false
	}
	if n%2 == 0 {
		return n == 2
	}
	for d := int64(3); d*d <= n; d += 2 {
		if n%d == 0 {
			return false
		}
	}
	return true
}
