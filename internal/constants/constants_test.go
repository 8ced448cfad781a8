package constants

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPhiIdentities(t *testing.T) {
	phi := Phi().Float
	inv := PhiInverse().Float

	assert.InDelta(t, phi+1, phi*phi, 1e-12, "φ² = φ+1")
	assert.InDelta(t, phi-1, inv, 1e-12, "1/φ = φ-1")
	assert.InDelta(t, 1.0, phi*inv, 1e-12, "φ·(1/φ) = 1")
	assert.InDelta(t, 0.0, phi*phi-phi-1, 1e-12, "φ²-φ-1 = 0")
}

func TestFloatAgreesWithDecimal(t *testing.T) {
	for _, r := range All() {
		t.Run(r.Name, func(t *testing.T) {
			errAbs, err := r.AbsError()
			require.NoError(t, err)
			assert.Less(t, errAbs, 1e-12)
		})
	}
}

func TestDecimalPrecision(t *testing.T) {
	text := Phi().Text()
	require.True(t, strings.HasPrefix(text, "1.6180339887498948482045868343656381177203091798057628621354486227"))

	digits := strings.ReplaceAll(text, ".", "")
	assert.GreaterOrEqual(t, len(digits), Precision)
}

func TestDecimalIsIndependentCopy(t *testing.T) {
	d := Phi().Decimal()
	d.Neg(d)

	assert.True(t, strings.HasPrefix(Phi().Text(), "1.618"))
}

func TestKnownFloatValues(t *testing.T) {
	assert.InDelta(t, math.Sqrt(5), Sqrt5().Float, 1e-15)
	assert.InDelta(t, math.Sqrt2, Sqrt2().Float, 1e-15)
	assert.InDelta(t, math.Pi, Pi().Float, 1e-15)
	assert.InDelta(t, 51.85, Slope().Float, 1e-15)
	assert.InDelta(t, (1+math.Sqrt(5))/2, Phi().Float, 1e-15)
}

func TestAllOrder(t *testing.T) {
	names := []string{}
	for _, r := range All() {
		names = append(names, r.Name)
	}
	assert.Equal(t, []string{"phi", "phi_inverse", "sqrt5", "sqrt2", "pi", "slope"}, names)
}
