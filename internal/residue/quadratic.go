package residue

import "sort"

// Set is an ordered set of residues.
type Set []int64

// Contains reports whether v is in the set.
func (s Set) Contains(v int64) bool {
	i := sort.Search(len(s), func(i int) bool { return s[i] >= v })
	return i < len(s) && s[i] == v
}

// Len returns the number of residues.
func (s Set) Len() int { return len(s) }

// IsQuadraticResidue applies Euler's criterion: a is a residue mod p when
// a ≡ 0 or a^((p-1)/2) ≡ 1. p is assumed prime.
func IsQuadraticResidue(a, p int64) bool {
	a = Mod(a, p)
	if a == 0 {
		return true
	}
	return PowMod(a, (p-1)/2, p) == 1
}

// QuadraticResidues returns every a in [0, p) that is a quadratic residue of
// the prime p, including 0. The result has (p-1)/2 + 1 elements.
//
// Primality is the caller's responsibility; for composite p the result is
// whatever Euler's criterion yields.
func QuadraticResidues(p int64) Set {
	out := make(Set, 0, p/2+1)
	for a := int64(0); a < p; a++ {
		if IsQuadraticResidue(a, p) {
			out = append(out, a)
		}
	}
	return out
}

// Partition splits values into those whose residue mod p is in qr and those
// that are not. Order is preserved in both outputs.
func Partition(values []int64, p int64, qr Set) (passed, rejected []int64) {
	for _, v := range values {
		if qr.Contains(Mod(v, p)) {
			passed = append(passed, v)
		} else {
			rejected = append(rejected, v)
		}
	}
	return passed, rejected
}
