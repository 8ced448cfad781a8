// Package adapter wraps an external model stage with the exclusion gate on
// its input and QRT damping on its gradients.
//
// The wrapper does not install hooks into the wrapped module. Callers invoke
// Forward for the gated forward pass and Dampen on the gradient after their
// own backward pass.
package adapter

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/roach88/nrcfold/internal/transform"
)

// ErrNilModule is returned by New when no module is supplied.
var ErrNilModule = errors.New("adapter: nil module")

// Module is a forward computation over arrays, such as one stage of an
// external structure-prediction model.
type Module interface {
	Forward(ctx context.Context, x *transform.Array) (*transform.Array, error)
}

// ModuleFunc adapts a function to Module.
type ModuleFunc func(ctx context.Context, x *transform.Array) (*transform.Array, error)

// Forward calls f.
func (f ModuleFunc) Forward(ctx context.Context, x *transform.Array) (*transform.Array, error) {
	return f(ctx, x)
}

// Identity returns its input unchanged.
var Identity Module = ModuleFunc(func(_ context.Context, x *transform.Array) (*transform.Array, error) {
	return x, nil
})

// Wrapper gates a module's input and damps its gradients.
type Wrapper struct {
	core   Module
	logger *zap.Logger
}

// Option configures a Wrapper.
type Option func(*Wrapper)

// WithLogger sets the wrapper's logger.
func WithLogger(l *zap.Logger) Option {
	return func(w *Wrapper) {
		if l != nil {
			w.logger = l
		}
	}
}

// New wraps core.
func New(core Module, opts ...Option) (*Wrapper, error) {
	if core == nil {
		return nil, ErrNilModule
	}
	w := &Wrapper{core: core, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Forward zeroes forbidden entries of x and passes the result to the wrapped
// module. x is not modified.
func (w *Wrapper) Forward(ctx context.Context, x *transform.Array) (*transform.Array, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	gated, err := transform.ExclusionGate(x)
	if err != nil {
		return nil, fmt.Errorf("adapter: gate input: %w", err)
	}
	if ce := w.logger.Check(zap.DebugLevel, "input gated"); ce != nil {
		ce.Write(zap.Int("zeroed", zeroedCount(x, gated)), zap.Ints("shape", x.Shape()))
	}

	out, err := w.core.Forward(ctx, gated)
	if err != nil {
		return nil, fmt.Errorf("adapter: forward: %w", err)
	}
	return out, nil
}

// Dampen applies QRT damping to a gradient. It is the explicit replacement
// for a backward hook: call it once per gradient, after backward.
func (w *Wrapper) Dampen(grad *transform.Array) (*transform.Array, error) {
	damped, err := transform.QRTDamping(grad)
	if err != nil {
		return nil, fmt.Errorf("adapter: dampen gradient: %w", err)
	}
	return damped, nil
}

func zeroedCount(before, after *transform.Array) int {
	n := 0
	for i := 0; i < before.Len(); i++ {
		if before.At(i) != 0 && after.At(i) == 0 {
			n++
		}
	}
	return n
}
