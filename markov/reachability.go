// SPDX-License-Identifier: MIT

package markov

import (
	"github.com/katalvlaran/stochrare/matrix"
)

// UnreachableStates returns, in increasing order, the states outside A ∪ B
// from which neither A nor B can be reached along positive-probability
// transitions. A non-empty answer means the committor problem is ill-posed:
// those states form (or drain into) a closed class of their own.
//
// Implementation:
//   - Stage 1: validate the partition (same rules as SolveCommittor).
//   - Stage 2: breadth-first search on reversed edges, seeded with A ∪ B.
//     Edges are the positive entries of g.
//   - Stage 3: collect interior states never dequeued.
//
// Complexity: O(N²) on a dense matrix.
func UnreachableStates(g matrix.Matrix, a, b []int) ([]int, error) {
	if err := matrix.ValidateSquare(g); err != nil {
		return nil, wrapf("UnreachableStates", "%w: %w", err, ErrDimensionMismatch)
	}
	n := g.Rows()
	member, err := partition(n, a, b)
	if err != nil {
		return nil, err
	}

	// Stage 2: reversed edges, then a queue of states known to reach A ∪ B.
	preds := predecessors(g)
	reached := make([]bool, n)
	queue := make([]int, 0, n)
	for i, s := range member {
		if s != inNone {
			reached[i] = true
			queue = append(queue, i)
		}
	}
	var head, i, j int
	for head < len(queue) {
		j = queue[head]
		head++
		for _, i = range preds[j] {
			if !reached[i] {
				reached[i] = true
				queue = append(queue, i)
			}
		}
	}

	// Stage 3.
	var stuck []int
	for i = 0; i < n; i++ {
		if !reached[i] {
			stuck = append(stuck, i)
		}
	}

	return stuck, nil
}

// predecessors lists, for every j, the states i with g[i][j] > 0.
func predecessors(g matrix.Matrix) [][]int {
	n := g.Rows()
	preds := make([][]int, n)
	edge := func(i, j int, v float64) bool {
		if v > 0 {
			preds[j] = append(preds[j], i)
		}
		return true
	}
	if d, ok := g.(*matrix.Dense); ok {
		d.NonZero(edge)
		return preds
	}
	var v float64
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if v, _ = g.At(i, j); v != 0 {
				edge(i, j, v)
			}
		}
	}
	return preds
}
