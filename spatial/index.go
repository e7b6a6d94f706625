// SPDX-License-Identifier: MIT

package spatial

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/spatial/kdtree"
)

// Neighbor is one query hit: the position of the point in the indexed slice
// and its Euclidean distance to the query.
type Neighbor struct {
	Index int
	Dist  float64
}

// Index is a static k-NN index. The zero value is not usable; build with NewIndex.
type Index struct {
	tree *kdtree.Tree
	pts  [][]float64 // private copy, in input order
	dim  int
}

// point carries the input position alongside the coordinates so that query
// results can be mapped back after the tree reorders its storage.
type point struct {
	idx int
	x   kdtree.Point
}

func (p point) Compare(c kdtree.Comparable, d kdtree.Dim) float64 {
	return p.x[d] - c.(point).x[d]
}

func (p point) Dims() int { return len(p.x) }

// Distance is the squared Euclidean distance, as kdtree expects.
func (p point) Distance(c kdtree.Comparable) float64 {
	return p.x.Distance(c.(point).x)
}

// points is the kdtree.Interface collection used to build the tree.
type points []point

func (p points) Index(i int) kdtree.Comparable         { return p[i] }
func (p points) Len() int                              { return len(p) }
func (p points) Pivot(d kdtree.Dim) int                { return plane{Dim: d, points: p}.Pivot() }
func (p points) Slice(start, end int) kdtree.Interface { return p[start:end] }

// plane sorts a points slice along one dimension; median-of-medians keeps
// the tree shape independent of any random state.
type plane struct {
	kdtree.Dim
	points
}

func (p plane) Less(i, j int) bool {
	a, b := p.points[i], p.points[j]
	if a.x[p.Dim] != b.x[p.Dim] {
		return a.x[p.Dim] < b.x[p.Dim]
	}
	return a.idx < b.idx
}
func (p plane) Pivot() int { return kdtree.Partition(p, kdtree.MedianOfMedians(p)) }
func (p plane) Slice(start, end int) kdtree.SortSlicer {
	return plane{Dim: p.Dim, points: p.points[start:end]}
}
func (p plane) Swap(i, j int) { p.points[i], p.points[j] = p.points[j], p.points[i] }

// NewIndex builds an index over pts. The slice and its rows are copied.
//
// Errors: ErrEmptyIndex, ErrDimensionMismatch (ragged or zero-length points),
// ErrNonFinite.
//
// Complexity: O(n log n) build, O(n·d) memory.
func NewIndex(pts [][]float64) (*Index, error) {
	if len(pts) == 0 {
		return nil, ErrEmptyIndex
	}
	dim := len(pts[0])
	if dim == 0 {
		return nil, fmt.Errorf("NewIndex: point 0 has no coordinates: %w", ErrDimensionMismatch)
	}

	own := make([][]float64, len(pts))
	tp := make(points, len(pts))
	for i, p := range pts {
		if len(p) != dim {
			return nil, fmt.Errorf("NewIndex: point %d has dim %d, want %d: %w", i, len(p), dim, ErrDimensionMismatch)
		}
		if err := checkFinite(p); err != nil {
			return nil, fmt.Errorf("NewIndex: point %d: %w", i, err)
		}
		own[i] = append([]float64(nil), p...)
		tp[i] = point{idx: i, x: kdtree.Point(own[i])}
	}

	return &Index{
		tree: kdtree.New(tp, false),
		pts:  own,
		dim:  dim,
	}, nil
}

// Len returns the number of indexed points.
func (x *Index) Len() int { return len(x.pts) }

// Dims returns the dimensionality shared by all indexed points.
func (x *Index) Dims() int { return x.dim }

// Point returns a copy of the i-th indexed point.
func (x *Index) Point(i int) []float64 {
	return append([]float64(nil), x.pts[i]...)
}

// Query returns the k points nearest to q, closest first. If q coincides with
// an indexed point, that point is part of the answer at distance 0.
//
// Errors: ErrBadK (k<1 or k>Len()), ErrDimensionMismatch, ErrNonFinite.
//
// Complexity: O(k log k + log n) expected per query.
func (x *Index) Query(q []float64, k int) ([]Neighbor, error) {
	if k < 1 || k > len(x.pts) {
		return nil, fmt.Errorf("Query: k=%d with %d points: %w", k, len(x.pts), ErrBadK)
	}
	if len(q) != x.dim {
		return nil, fmt.Errorf("Query: dim %d, want %d: %w", len(q), x.dim, ErrDimensionMismatch)
	}
	if err := checkFinite(q); err != nil {
		return nil, fmt.Errorf("Query: %w", err)
	}

	keep := kdtree.NewNKeeper(k)
	x.tree.NearestSet(keep, point{idx: -1, x: kdtree.Point(q)})

	out := make([]Neighbor, 0, k)
	for _, cd := range keep.Heap {
		// The keeper is seeded with a nil sentinel at +Inf.
		if cd.Comparable == nil {
			continue
		}
		out = append(out, Neighbor{Index: cd.Comparable.(point).idx, Dist: math.Sqrt(cd.Dist)})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Dist != out[j].Dist {
			return out[i].Dist < out[j].Dist
		}
		return out[i].Index < out[j].Index
	})

	return out, nil
}

// QueryIndices is Query without distances.
func (x *Index) QueryIndices(q []float64, k int) ([]int, error) {
	nb, err := x.Query(q, k)
	if err != nil {
		return nil, err
	}
	ids := make([]int, len(nb))
	for i, n := range nb {
		ids[i] = n.Index
	}

	return ids, nil
}

func checkFinite(p []float64) error {
	for _, v := range p {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return ErrNonFinite
		}
	}
	return nil
}
