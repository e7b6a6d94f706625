// SPDX-License-Identifier: MIT

// Package matrix - bridge to gonum.org/v1/gonum/mat.
//
// Dense keeps its own storage and error-returning accessors; heavy linear
// algebra (eigen decomposition, small solves) is delegated to gonum. Both
// directions copy, so neither side can alias the other's buffer.

package matrix

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// ToGonum copies m into a new *mat.Dense.
// Complexity: O(r*c).
func ToGonum(m Matrix) (*mat.Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, fmt.Errorf("ToGonum: %w", err)
	}
	r, c := m.Rows(), m.Cols()
	buf := make([]float64, r*c)
	if d, ok := m.(*Dense); ok {
		copy(buf, d.data)
		return mat.NewDense(r, c, buf), nil
	}
	var i, j int
	for i = 0; i < r; i++ {
		for j = 0; j < c; j++ {
			buf[i*c+j], _ = m.At(i, j)
		}
	}

	return mat.NewDense(r, c, buf), nil
}

// FromGonum copies a gonum matrix into a new Dense.
// Values are checked against the finite-value policy.
func FromGonum(g mat.Matrix) (*Dense, error) {
	r, c := g.Dims()
	out, err := NewDense(r, c)
	if err != nil {
		return nil, fmt.Errorf("FromGonum: %w", err)
	}
	var i, j int
	for i = 0; i < r; i++ {
		for j = 0; j < c; j++ {
			if err = out.Set(i, j, g.At(i, j)); err != nil {
				return nil, fmt.Errorf("FromGonum: %w", err)
			}
		}
	}

	return out, nil
}
