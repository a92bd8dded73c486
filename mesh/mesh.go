// Package mesh implements the weighted triangle mesh that backs weighted
// spatial sampling: a vertex array, a triangle index array, a per-triangle
// weight, and the cumulative-weight array used for O(log n) selection.
package mesh

import (
	"errors"
	"sort"
	"sync"

	"github.com/brandon-kohn/simulation-suite/geom"
)

// ErrZeroTotalWeight is returned by NewMesh when every triangle's effective
// weight is zero, leaving nothing to sample.
var ErrZeroTotalWeight = errors.New("mesh: zero total weight, no sampleable content")

// WeightFunc computes the effective weight of a triangle (before area is
// folded in by the caller, if at all — Mesh itself does not impose area
// weighting; callers that want area-biased sampling multiply area into
// their WeightFunc, as biasedpos.Generator's weight policy does).
type WeightFunc func(geom.Triangle) float64

// Mesh is a read-only triangulated region annotated with per-triangle
// weights and a cumulative weight array for binary-search selection.
// Immutable after construction except for the lazily cached adjacency
// matrix, which is computed at most once behind a sync.Once regardless of
// how many callers race to request it first.
type Mesh struct {
	vertices   []geom.Point2
	indices    []int // triples
	triangles  []geom.Triangle
	cumulative []float64 // Cumulative[i] = sum of weights of triangles[0..i]
	total      float64

	adjacencyOnce sync.Once
	adjacency     [][]int
}

// NewMesh builds a Mesh from a vertex array and a flat triangle index
// array (three consecutive indices per triangle), computing each
// triangle's weight via weight. Returns ErrZeroTotalWeight if the
// resulting cumulative total is not positive.
func NewMesh(vertices []geom.Point2, indices []int, weight WeightFunc) (*Mesh, error) {
	if len(indices)%3 != 0 {
		return nil, errors.New("mesh: index array length must be a multiple of 3")
	}
	nTri := len(indices) / 3
	triangles := make([]geom.Triangle, nTri)
	cumulative := make([]float64, nTri)
	var running float64
	for i := 0; i < nTri; i++ {
		i0, i1, i2 := indices[3*i], indices[3*i+1], indices[3*i+2]
		t := geom.Triangle{V0: vertices[i0], V1: vertices[i1], V2: vertices[i2]}
		t.Weight = weight(t)
		if t.Weight < 0 {
			t.Weight = 0
		}
		triangles[i] = t
		running += t.Weight
		cumulative[i] = running
	}
	if running <= 0 {
		return nil, ErrZeroTotalWeight
	}
	return &Mesh{
		vertices:   vertices,
		indices:    indices,
		triangles:  triangles,
		cumulative: cumulative,
		total:      running,
	}, nil
}

// NumTriangles returns the number of triangles in the mesh.
func (m *Mesh) NumTriangles() int { return len(m.triangles) }

// Triangle returns the i'th triangle.
func (m *Mesh) Triangle(i int) geom.Triangle { return m.triangles[i] }

// TotalWeight returns the mesh's total cumulative weight (Cumulative's
// last entry).
func (m *Mesh) TotalWeight() float64 { return m.total }

// RandomPosition draws a point from the mesh: u0 selects a triangle by
// binary-searching the cumulative array for the smallest i with
// Cumulative[i] >= u0*total, then u1, u2 fold into barycentric
// coordinates inside that triangle via the standard reflection (if
// u1+u2 > 1, fold both across 1). u0, u1, u2 must lie in [0, 1);
// out-of-range values are a precondition violation, not a reported error.
func (m *Mesh) RandomPosition(u0, u1, u2 float64) geom.Point2 {
	target := u0 * m.total
	i := sort.Search(len(m.cumulative), func(i int) bool {
		return m.cumulative[i] >= target
	})
	if i >= len(m.cumulative) {
		i = len(m.cumulative) - 1
	}
	t := m.triangles[i]

	var a, b float64
	if u1+u2 > 1 {
		a, b = 1-u1, 1-u2
	} else {
		a, b = u1, u2
	}
	c := 1 - a - b

	return geom.Point2{
		X: a*t.V0.X + b*t.V1.X + c*t.V2.X,
		Y: a*t.V0.Y + b*t.V1.Y + c*t.V2.Y,
	}
}

// AdjacencyMatrix returns, for each triangle, the indices of triangles
// sharing an edge with it. Computed and cached on first call; later
// callers — even concurrent ones — observe the same cached result, per
// spec.md's "first caller wins" adjacency requirement.
func (m *Mesh) AdjacencyMatrix() [][]int {
	m.adjacencyOnce.Do(m.buildAdjacency)
	return m.adjacency
}

func (m *Mesh) buildAdjacency() {
	type edgeKey struct{ a, b int }
	mkKey := func(a, b int) edgeKey {
		if a > b {
			a, b = b, a
		}
		return edgeKey{a, b}
	}

	edgeToTriangles := make(map[edgeKey][]int)
	n := len(m.triangles)
	for i := 0; i < n; i++ {
		i0, i1, i2 := m.indices[3*i], m.indices[3*i+1], m.indices[3*i+2]
		for _, e := range [][2]int{{i0, i1}, {i1, i2}, {i2, i0}} {
			k := mkKey(e[0], e[1])
			edgeToTriangles[k] = append(edgeToTriangles[k], i)
		}
	}

	adjacency := make([][]int, n)
	for _, tris := range edgeToTriangles {
		if len(tris) < 2 {
			continue
		}
		for _, a := range tris {
			for _, b := range tris {
				if a == b {
					continue
				}
				adjacency[a] = append(adjacency[a], b)
			}
		}
	}
	m.adjacency = adjacency
}
