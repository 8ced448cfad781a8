package transform

import (
	"errors"
	"fmt"
)

var (
	// ErrBadShape is returned for an empty shape or a negative dimension.
	ErrBadShape = errors.New("transform: invalid shape")

	// ErrShapeMismatch is returned when the data length does not match the
	// shape, or when two operands have different shapes.
	ErrShapeMismatch = errors.New("transform: shape mismatch")

	// ErrNonFinite is returned when an input or a result is NaN or ±Inf.
	ErrNonFinite = errors.New("transform: NaN or Inf encountered")

	// ErrOutOfDomain is returned when an input lies outside the range a
	// transform can evaluate in float64.
	ErrOutOfDomain = errors.New("transform: input outside safe domain")

	// ErrNilArray is returned when a nil *Array is passed.
	ErrNilArray = errors.New("transform: nil array")
)

// opError attaches the operation name to a sentinel.
func opError(op string, err error) error {
	return fmt.Errorf("transform.%s: %w", op, err)
}

// elemError attaches the operation name and flat index to a sentinel.
func elemError(op string, i int, v float64, err error) error {
	return fmt.Errorf("transform.%s: element %d (%g): %w", op, i, v, err)
}
