// SPDX-License-Identifier: MIT
// Package matrix_test contains unit tests for the matrix validators.
package matrix_test

import (
	"errors"
	"math"
	"testing"

	"github.com/katalvlaran/stochrare/matrix"
	"github.com/stretchr/testify/require"
)

func mustRows(t *testing.T, rows [][]float64) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDenseFromRows(rows)
	require.NoError(t, err)
	return m
}

// TestValidateSquare covers nil inputs, square and non-square cases.
func TestValidateSquare(t *testing.T) {
	t.Parallel()

	var typedNil *matrix.Dense
	tests := []struct {
		name string
		m    matrix.Matrix
		want error
	}{
		{"nil", nil, matrix.ErrNilMatrix},
		{"typed nil", typedNil, matrix.ErrNilMatrix},
		{"1x1", mustRows(t, [][]float64{{1}}), nil},
		{"2x3", mustRows(t, [][]float64{{1, 2, 3}, {4, 5, 6}}), matrix.ErrDimensionMismatch},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			err := matrix.ValidateSquare(tc.m)
			if tc.want == nil {
				require.NoError(t, err)
			} else {
				require.Truef(t, errors.Is(err, tc.want),
					"expected errors.Is(%v, %v)", err, tc.want)
			}
		})
	}
}

// TestValidateRowStochastic walks the documented error priority.
func TestValidateRowStochastic(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		rows [][]float64
		opts []matrix.Option
		want error
	}{
		{"identity", [][]float64{{1, 0}, {0, 1}}, nil, nil},
		{"thirds", [][]float64{{1.0 / 3, 1.0 / 3, 1.0 / 3}, {0, 0, 1}, {0.5, 0, 0.5}}, nil, nil},
		{"rounding within eps", [][]float64{{0.1 + 0.2, 0.7}, {0, 1}}, nil, nil},
		{"negative", [][]float64{{1.5, -0.5}, {0, 1}}, nil, matrix.ErrNegativeEntry},
		{"short row", [][]float64{{0.5, 0.4}, {0, 1}}, nil, matrix.ErrRowSum},
		{"long row", [][]float64{{0.6, 0.6}, {0, 1}}, nil, matrix.ErrRowSum},
		{"loose eps", [][]float64{{0.5, 0.49}, {0, 1}}, []matrix.Option{matrix.WithEpsilon(0.1)}, nil},
		{"non-square", [][]float64{{1, 0, 0}, {0, 1, 0}}, nil, matrix.ErrDimensionMismatch},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			err := matrix.ValidateRowStochastic(mustRows(t, tc.rows), tc.opts...)
			if tc.want == nil {
				require.NoError(t, err)
			} else {
				require.ErrorIs(t, err, tc.want)
			}
		})
	}
}

// TestValidateFinite detects NaN stored with the policy disabled upstream.
func TestValidateFinite(t *testing.T) {
	m := mustRows(t, [][]float64{{1, 0}, {0, 1}})
	require.NoError(t, matrix.ValidateFinite(m))
	require.ErrorIs(t, matrix.ValidateFinite(nil), matrix.ErrNilMatrix)
	require.ErrorIs(t, m.Set(0, 0, math.Inf(1)), matrix.ErrNaNInf)
}

// TestWithEpsilonPanics guards the option constructor contract.
func TestWithEpsilonPanics(t *testing.T) {
	require.Panics(t, func() { matrix.WithEpsilon(-1) })
	require.Panics(t, func() { matrix.WithEpsilon(math.NaN()) })
	require.Equal(t, 0.5, matrix.NewOptions(matrix.WithEpsilon(0.5)).Epsilon())
	require.Equal(t, matrix.DefaultEpsilon, matrix.NewOptions().Epsilon())
}
