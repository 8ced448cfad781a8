// Package sequence converts one-letter amino-acid sequences into numeric
// arrays for the transform library.
package sequence

import (
	"strings"
	"unicode"

	"github.com/roach88/nrcfold/internal/constants"
	"github.com/roach88/nrcfold/internal/transform"
)

// massTable holds approximate residue masses in daltons, keyed by the
// upper-case one-letter code.
var massTable = map[rune]float64{
	'A': 71.04, 'R': 156.19, 'N': 114.10, 'D': 115.09, 'C': 103.14,
	'E': 129.12, 'Q': 128.13, 'G': 57.05, 'H': 137.14, 'I': 113.16,
	'L': 113.16, 'K': 128.17, 'M': 131.19, 'F': 147.18, 'P': 97.12,
	'S': 87.08, 'T': 101.11, 'W': 186.21, 'Y': 163.18, 'V': 99.13,
}

// Mass returns the mass for a one-letter code. Case is ignored. Unknown
// codes have mass 0 and ok == false.
func Mass(code rune) (mass float64, ok bool) {
	mass, ok = massTable[unicode.ToUpper(code)]
	return mass, ok
}

// Masses maps every character of seq to its residue mass. Unknown
// characters map to 0 so the result always has one entry per rune.
func Masses(seq string) []float64 {
	out := make([]float64, 0, len(seq))
	for _, c := range strings.ToUpper(seq) {
		m, _ := Mass(c)
		out = append(out, m)
	}
	return out
}

// Unknown returns the distinct characters of seq that have no mass, in
// order of first appearance.
func Unknown(seq string) []rune {
	var out []rune
	seen := map[rune]bool{}
	for _, c := range strings.ToUpper(seq) {
		if _, ok := massTable[c]; ok || seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}

// BaseCoordinates scales each mass by φ, giving the coordinate C(n) = m·φ.
func BaseCoordinates(masses []float64) (*transform.Array, error) {
	a, err := transform.FromSlice(masses)
	if err != nil {
		return nil, err
	}
	return a.Scale(constants.Phi().Float)
}
