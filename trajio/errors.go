// SPDX-License-Identifier: MIT

package trajio

import "errors"

var (
	// ErrEmpty: the input holds no data rows.
	ErrEmpty = errors.New("trajio: no data rows")

	// ErrMalformed: a row has the wrong width or a non-numeric field.
	ErrMalformed = errors.New("trajio: malformed row")

	// ErrMismatch: result arrays disagree in length or dimension.
	ErrMismatch = errors.New("trajio: length mismatch")
)
