package transform

import (
	"fmt"
	"math"
	"strings"
)

// Array is an immutable-by-convention, fixed-shape numeric array.
// Every transform returns a new Array; none mutates its input.
type Array struct {
	shape []int
	data  []float64
}

// New builds an Array from a shape and row-major data. The data slice is
// copied.
func New(shape []int, data []float64) (*Array, error) {
	n, err := shapeSize(shape)
	if err != nil {
		return nil, opError("New", err)
	}
	if n != len(data) {
		return nil, opError("New", fmt.Errorf("%w: shape %v holds %d values, got %d", ErrShapeMismatch, shape, n, len(data)))
	}
	for i, v := range data {
		if !isFinite(v) {
			return nil, elemError("New", i, v, ErrNonFinite)
		}
	}
	return &Array{
		shape: append([]int(nil), shape...),
		data:  append([]float64(nil), data...),
	}, nil
}

// FromSlice builds a one-dimensional Array.
func FromSlice(data []float64) (*Array, error) {
	return New([]int{len(data)}, data)
}

// MustFromSlice is like FromSlice but panics on error.
// Use only in tests or with literal, known-finite data.
func MustFromSlice(data []float64) *Array {
	a, err := FromSlice(data)
	if err != nil {
		panic(err)
	}
	return a
}

// Zeros returns an Array of the given shape filled with 0.
func Zeros(shape ...int) (*Array, error) {
	n, err := shapeSize(shape)
	if err != nil {
		return nil, opError("Zeros", err)
	}
	return &Array{shape: append([]int(nil), shape...), data: make([]float64, n)}, nil
}

func shapeSize(shape []int) (int, error) {
	if len(shape) == 0 {
		return 0, ErrBadShape
	}
	n := 1
	for _, d := range shape {
		if d < 0 {
			return 0, ErrBadShape
		}
		n *= d
	}
	return n, nil
}

// Shape returns a copy of the array's dimensions.
func (a *Array) Shape() []int { return append([]int(nil), a.shape...) }

// Len returns the number of elements.
func (a *Array) Len() int { return len(a.data) }

// At returns the element at flat index i.
func (a *Array) At(i int) float64 { return a.data[i] }

// Values returns a copy of the flat data.
func (a *Array) Values() []float64 { return append([]float64(nil), a.data...) }

// SameShape reports whether a and b have identical dimensions.
func (a *Array) SameShape(b *Array) bool {
	if len(a.shape) != len(b.shape) {
		return false
	}
	for i := range a.shape {
		if a.shape[i] != b.shape[i] {
			return false
		}
	}
	return true
}

// Equal reports whether a and b have the same shape and identical values.
func (a *Array) Equal(b *Array) bool {
	if !a.SameShape(b) {
		return false
	}
	for i := range a.data {
		if a.data[i] != b.data[i] {
			return false
		}
	}
	return true
}

// String renders the shape and values.
func (a *Array) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Array%v[", a.shape)
	for i, v := range a.data {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%g", v)
	}
	sb.WriteByte(']')
	return sb.String()
}

// Map applies fn to every element and returns a new Array of the same shape.
// fn errors are reported with the element index. Non-finite results are
// rejected with ErrNonFinite.
func Map(op string, a *Array, fn func(float64) (float64, error)) (*Array, error) {
	if a == nil {
		return nil, opError(op, ErrNilArray)
	}
	out := &Array{shape: a.Shape(), data: make([]float64, len(a.data))}
	for i, v := range a.data {
		r, err := fn(v)
		if err != nil {
			return nil, elemError(op, i, v, err)
		}
		if !isFinite(r) {
			return nil, elemError(op, i, v, ErrNonFinite)
		}
		out.data[i] = r
	}
	return out, nil
}

// mapPure is Map for functions that cannot fail on their own.
func mapPure(op string, a *Array, fn func(float64) float64) (*Array, error) {
	return Map(op, a, func(v float64) (float64, error) { return fn(v), nil })
}

// Scale multiplies every element by s.
func (a *Array) Scale(s float64) (*Array, error) {
	return mapPure("Scale", a, func(v float64) float64 { return v * s })
}

// AddScalar adds s to every element.
func (a *Array) AddScalar(s float64) (*Array, error) {
	return mapPure("AddScalar", a, func(v float64) float64 { return v + s })
}

// Add returns a+b elementwise. Shapes must match exactly.
func (a *Array) Add(b *Array) (*Array, error) {
	if a == nil || b == nil {
		return nil, opError("Add", ErrNilArray)
	}
	if !a.SameShape(b) {
		return nil, opError("Add", fmt.Errorf("%w: %v vs %v", ErrShapeMismatch, a.shape, b.shape))
	}
	out := &Array{shape: a.Shape(), data: make([]float64, len(a.data))}
	for i := range a.data {
		r := a.data[i] + b.data[i]
		if !isFinite(r) {
			return nil, elemError("Add", i, a.data[i], ErrNonFinite)
		}
		out.data[i] = r
	}
	return out, nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
