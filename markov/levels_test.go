// SPDX-License-Identifier: MIT
package markov_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/katalvlaran/stochrare/markov"
)

func TestLevelSets(t *testing.T) {
	xs := markov.Scalars(-1.2, 0.1, 1.1, -0.9, 0.95, 0)
	a, b := markov.LevelSets(xs, markov.Coordinate(0), -0.9, 0.95)
	assert.Equal(t, []int{0, 3}, a)
	assert.Equal(t, []int{2, 4}, b)

	a, b = markov.LevelSets(xs, markov.Coordinate(0), -5, 5)
	assert.Empty(t, a)
	assert.Empty(t, b)
}
