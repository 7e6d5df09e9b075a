package vectordb

import "errors"

var (
	// ErrInvalidFilter is returned when a FilterSet cannot be expressed as a
	// vector set filter expression.
	ErrInvalidFilter = errors.New("invalid filter")

	// ErrDimensionMismatch is returned when vectors do not match the
	// dimension of their collection.
	ErrDimensionMismatch = errors.New("vector dimension mismatch")

	// ErrInvalidInput is returned for requests rejected before reaching the server.
	ErrInvalidInput = errors.New("invalid input")
)
