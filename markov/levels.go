// SPDX-License-Identifier: MIT

package markov

// LevelSets splits states by an observable into committor sets:
// A holds the indices with f(x) <= lo, B those with f(x) >= hi.
// Both are in increasing order; lo < hi keeps them disjoint.
func LevelSets(states []State, f func(State) float64, lo, hi float64) (a, b []int) {
	for i, s := range states {
		switch v := f(s); {
		case v <= lo:
			a = append(a, i)
		case v >= hi:
			b = append(b, i)
		}
	}
	return a, b
}

// Coordinate returns the observable x ↦ x[i].
func Coordinate(i int) func(State) float64 {
	return func(s State) float64 { return s[i] }
}
