// Package transform is the numeric transform library: pure, elementwise,
// shape-preserving functions over Array values, each derived from the golden
// ratio or from modular residue rules.
//
// # Array
//
// Array is a fixed-shape container of finite float64 values stored flat in
// row-major order. There is no implicit broadcasting: binary operations
// require equal shapes, and scalar operands are separate methods (Scale,
// AddScalar). Construction rejects NaN and ±Inf.
//
// # Transforms
//
//   - PhiPower:        φⁿ per element
//   - PhiInfinityFold: folded ← φⁿ·folded + 1/√5 for n = 1..iterations
//   - QRTDamping:      sin(φ·√2·S·x)·exp(−x²/φ) + cos(π/φ·x), in [−2, 2]
//   - MSTStep:         |⌊1000·sinh x⌋ + ln(x²+1) + φˣ| mod 24389
//   - ExclusionGate:   zero every element whose residue mod 2187 is
//     divisible by 3, 6, 9 or 7
//   - ViscousDamping:  x·exp(−ν·dt) applied per step
//
// # Numeric domain
//
// PhiInfinityFold and PhiPower grow without bound; results that overflow
// float64 return ErrNonFinite instead of ±Inf. MSTStep accepts |x| ≤
// MSTMaxInput and QRTDamping accepts |x| ≤ QRTMaxInput; inputs outside those
// bounds return ErrOutOfDomain.
package transform
