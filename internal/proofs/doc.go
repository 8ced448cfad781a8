// Package proofs registers the validation scenarios.
//
// Each scenario re-derives one numeric property of the golden-ratio
// transforms (an identity, a period, a bound or a distribution) and checks it
// against the theoretical value. Thresholds live in params.cue, which is
// embedded in the binary and validated against its schema on first use.
package proofs
