package residue

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMod(t *testing.T) {
	tests := []struct {
		x, m, want int64
	}{
		{7, 9, 7},
		{-7, 9, 2},
		{-9, 9, 0},
		{-1, 2187, 2186},
		{18, 9, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Mod(tt.x, tt.m), "Mod(%d, %d)", tt.x, tt.m)
	}
}

func TestModFloat(t *testing.T) {
	assert.InDelta(t, 2.0, ModFloat(-7, 9), 1e-12)
	assert.InDelta(t, 3.14159, ModFloat(3.14159, 9), 1e-12)
	assert.InDelta(t, 1.0, ModFloat(1e6, 9), 1e-9)

	r := ModFloat(-1e-20, 9)
	assert.GreaterOrEqual(t, r, 0.0)
	assert.Less(t, r, 9.0)
}

func TestPowMod(t *testing.T) {
	assert.Equal(t, int64(1), PowMod(2, 3, 7))
	assert.Equal(t, int64(445), PowMod(4, 13, 497))
	assert.Equal(t, int64(0), PowMod(5, 10, 1))
	assert.Equal(t, int64(1), PowMod(3, 0, 7))
}

func TestIsPrime(t *testing.T) {
	primes := []int64{2, 3, 5, 7, 11, 13, 17, 19, 23, 29, 31, 37, 41, 43, 47}
	for _, p := range primes {
		assert.True(t, IsPrime(p), "%d", p)
	}
	for _, n := range []int64{-3, 0, 1, 4, 9, 15, 49, 2187} {
		assert.False(t, IsPrime(n), "%d", n)
	}
}

func TestFibonacciMod9(t *testing.T) {
	seq, err := FibonacciMod(9, 10)
	require.NoError(t, err)
	assert.Equal(t, []int64{0, 1, 1, 2, 3, 5, 8, 4, 3, 7}, seq)
}

func TestFibonacciModRepeatsEvery24(t *testing.T) {
	seq, err := FibonacciMod(9, 96)
	require.NoError(t, err)
	require.Len(t, seq, 96)

	cycle := seq[:24]
	for _, off := range []int{24, 48, 72} {
		if diff := cmp.Diff(cycle, seq[off:off+24]); diff != "" {
			t.Fatalf("cycle mismatch at offset %d (-want +got):\n%s", off, diff)
		}
	}
	for _, v := range seq {
		assert.GreaterOrEqual(t, v, int64(0))
		assert.Less(t, v, int64(9))
	}
}

func TestFibonacciModErrors(t *testing.T) {
	_, err := FibonacciMod(0, 5)
	require.ErrorIs(t, err, ErrInvalidModulus)

	_, err = FibonacciMod(9, -1)
	require.Error(t, err)

	seq, err := FibonacciMod(1, 4)
	require.NoError(t, err)
	assert.Equal(t, []int64{0, 0, 0, 0}, seq)
}

func TestPisanoPeriod(t *testing.T) {
	assert.Equal(t, int64(24), PisanoPeriod(9))
	assert.Equal(t, int64(1), PisanoPeriod(1))
	assert.Equal(t, int64(60), PisanoPeriod(10))

	for m := int64(2); m < 20; m++ {
		p := PisanoPeriod(m)
		assert.GreaterOrEqual(t, p, int64(1), "m=%d", m)
		assert.LessOrEqual(t, p, 6*m, "m=%d", m)
	}
}

func TestPisanoPeriodLargeModulus(t *testing.T) {
	// π(F(n)) = 2n for even n, so these periods are short even though m*m
	// overflows int64.
	tests := []struct {
		m    int64
		want int64
	}{
		{12586269025, 100},   // F(50)
		{1548008755920, 120}, // F(60)
	}
	for _, tt := range tests {
		p, err := PisanoPeriodChecked(tt.m)
		require.NoError(t, err, "m=%d", tt.m)
		assert.Equal(t, tt.want, p, "m=%d", tt.m)
	}

	_, err := PisanoPeriodChecked(MaxPisanoModulus + 1)
	require.ErrorIs(t, err, ErrInvalidModulus)
}

func TestPisanoPeriodInvalid(t *testing.T) {
	_, err := PisanoPeriodChecked(0)
	require.ErrorIs(t, err, ErrInvalidModulus)

	assert.Panics(t, func() { PisanoPeriod(-4) })
}

func TestCycleRepeats(t *testing.T) {
	for m := int64(2); m < 30; m++ {
		cycle, err := Cycle(m)
		require.NoError(t, err)
		twice, err := FibonacciMod(m, 2*len(cycle))
		require.NoError(t, err)
		assert.Equal(t, cycle, twice[len(cycle):], "m=%d", m)
	}
}

func TestQuadraticResidues(t *testing.T) {
	assert.Equal(t, Set{0, 1, 2, 4}, QuadraticResidues(7))

	primes := []int64{7, 11, 13, 17, 19, 23, 29, 31, 37, 41, 43, 47}
	for _, p := range primes {
		qr := QuadraticResidues(p)
		assert.Equal(t, int((p-1)/2+1), qr.Len(), "p=%d", p)

		// Every square must be a member.
		for b := int64(0); b < p; b++ {
			assert.True(t, qr.Contains(b*b%p), "p=%d b=%d", p, b)
		}
	}
}

func TestPartition(t *testing.T) {
	qr := QuadraticResidues(7)
	passed, rejected := Partition([]int64{0, 1, 2, 3, 4, 5, 6, 8}, 7, qr)
	assert.Equal(t, []int64{0, 1, 2, 4, 8}, passed)
	assert.Equal(t, []int64{3, 5, 6}, rejected)
}

func TestClassifyMod9(t *testing.T) {
	assert.Equal(t, Resonant, ClassifyMod9(7))
	assert.Equal(t, Chaotic, ClassifyMod9(5))
	assert.Equal(t, Resonant, ClassifyMod9(0))
	assert.Equal(t, Resonant, ClassifyMod9(9))

	// -2 ≡ 7 (mod 9) under the floored convention.
	assert.Equal(t, Resonant, ClassifyMod9(-2))
	// -4 ≡ 5 (mod 9).
	assert.Equal(t, Chaotic, ClassifyMod9(-4))

	assert.Equal(t, "resonant", Resonant.String())
	assert.Equal(t, "chaotic", Chaotic.String())
	assert.Equal(t, "unknown", Class(7).String())
}

func TestTally(t *testing.T) {
	res, cha := Tally(0, 900)
	assert.Equal(t, int64(400), res)
	assert.Equal(t, int64(500), cha)
}

type pisanoRow struct {
	M      int64 `json:"m"`
	Period int64 `json:"period"`
}

type residueRow struct {
	P        int64 `json:"p"`
	Residues Set   `json:"residues"`
}

type residueTable struct {
	Pisano    []pisanoRow  `json:"pisano"`
	Quadratic []residueRow `json:"quadratic"`
	Mod9Cycle []int64      `json:"mod9_cycle"`
}

func TestResidueTableGolden(t *testing.T) {
	var table residueTable
	for m := int64(2); m < 20; m++ {
		table.Pisano = append(table.Pisano, pisanoRow{M: m, Period: PisanoPeriod(m)})
	}
	for _, p := range []int64{7, 11, 13} {
		table.Quadratic = append(table.Quadratic, residueRow{P: p, Residues: QuadraticResidues(p)})
	}
	cycle, err := Cycle(9)
	require.NoError(t, err)
	table.Mod9Cycle = cycle

	data, err := json.MarshalIndent(table, "", "  ")
	require.NoError(t, err)

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "residue_table", append(data, '\n'))
}
