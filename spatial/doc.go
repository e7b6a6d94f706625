// SPDX-License-Identifier: MIT

// Package spatial provides Index, a static k-nearest-neighbour index over a
// fixed set of sample points.
//
// The index is built once (gonum's spatial/kdtree under the hood) and is
// read-only afterwards, so concurrent Query calls are safe. Results carry
// the position of each point in the original input slice, sorted by
// ascending Euclidean distance with ties broken by ascending index, which
// keeps neighbour sets reproducible for duplicated points.
//
//	idx, err := spatial.NewIndex(points)
//	nbrs, err := idx.Query(points[0], 3) // includes points[0] itself at distance 0
package spatial
