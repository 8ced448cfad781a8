// Package residue implements the modular arithmetic behind the validation
// suite: Fibonacci sequences reduced modulo m, Pisano periods, quadratic
// residue sets and the mod-9 resonant/chaotic classifier.
//
// # Modulus convention
//
// Go's % operator truncates toward zero, so -7 % 9 == -7. Every function in
// this package instead uses the floored, non-negative remainder (Mod), so
// Mod(-7, 9) == 2. ClassifyMod9 and the transform package's forbidden-pattern
// check both follow this convention for negative inputs.
//
// # Classifiers
//
// ClassifyMod9 labels an integer resonant when its residue mod 9 is in
// {0, 3, 6, 7} and chaotic otherwise. It is a different rule from the mod-2187
// forbidden pattern in package transform and the two are never combined.
package residue
