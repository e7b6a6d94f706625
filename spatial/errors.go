// SPDX-License-Identifier: MIT

package spatial

import "errors"

var (
	// ErrEmptyIndex is returned when an index is built over zero points.
	ErrEmptyIndex = errors.New("spatial: no points to index")

	// ErrDimensionMismatch is returned when points (or a query) do not share
	// one non-zero dimensionality.
	ErrDimensionMismatch = errors.New("spatial: dimension mismatch")

	// ErrNonFinite is returned for NaN or ±Inf coordinates.
	ErrNonFinite = errors.New("spatial: NaN or Inf coordinate")

	// ErrBadK is returned when k < 1 or k exceeds the number of indexed points.
	ErrBadK = errors.New("spatial: invalid neighbour count")
)
