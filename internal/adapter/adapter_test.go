package adapter

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/nrcfold/internal/transform"
)

// recorder captures the input it was called with.
type recorder struct {
	seen *transform.Array
}

func (r *recorder) Forward(_ context.Context, x *transform.Array) (*transform.Array, error) {
	r.seen = x
	return x.Scale(2)
}

func TestForwardGatesInput(t *testing.T) {
	rec := &recorder{}
	w, err := New(rec)
	require.NoError(t, err)

	x := transform.MustFromSlice([]float64{1, 3, 4, 7, 2187, 10})
	out, err := w.Forward(context.Background(), x)
	require.NoError(t, err)

	// 3 and 7 are forbidden, 2187 ≡ 0 is forbidden.
	assert.Equal(t, []float64{1, 0, 4, 0, 0, 10}, rec.seen.Values())
	assert.Equal(t, []float64{2, 0, 8, 0, 0, 20}, out.Values())
	assert.Equal(t, []float64{1, 3, 4, 7, 2187, 10}, x.Values(), "input must not be modified")
}

func TestForwardPreservesShape(t *testing.T) {
	w, err := New(Identity)
	require.NoError(t, err)

	x, err := transform.New([]int{2, 2}, []float64{1, 2, 3, 4})
	require.NoError(t, err)

	out, err := w.Forward(context.Background(), x)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 2}, out.Shape())
}

func TestForwardPropagatesModuleError(t *testing.T) {
	boom := errors.New("boom")
	w, err := New(ModuleFunc(func(context.Context, *transform.Array) (*transform.Array, error) {
		return nil, boom
	}))
	require.NoError(t, err)

	_, err = w.Forward(context.Background(), transform.MustFromSlice([]float64{1}))
	assert.ErrorIs(t, err, boom)
}

func TestForwardCancelled(t *testing.T) {
	w, err := New(Identity)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = w.Forward(ctx, transform.MustFromSlice([]float64{1}))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDampen(t *testing.T) {
	w, err := New(Identity)
	require.NoError(t, err)

	grad := transform.MustFromSlice([]float64{0, 0.5, -3, 40})
	damped, err := w.Dampen(grad)
	require.NoError(t, err)

	want, err := transform.QRTDamping(grad)
	require.NoError(t, err)
	assert.True(t, want.Equal(damped))
	for _, v := range damped.Values() {
		assert.LessOrEqual(t, v, 2.0)
		assert.GreaterOrEqual(t, v, -2.0)
	}
	// QRT(0) = cos(0) = 1.
	assert.InDelta(t, 1.0, damped.At(0), 1e-15)
}

func TestDampenOutOfDomain(t *testing.T) {
	w, err := New(Identity)
	require.NoError(t, err)

	_, err = w.Dampen(transform.MustFromSlice([]float64{1e301}))
	assert.ErrorIs(t, err, transform.ErrOutOfDomain)
}

func TestNewNil(t *testing.T) {
	_, err := New(nil)
	assert.ErrorIs(t, err, ErrNilModule)
}
