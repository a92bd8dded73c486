package mesh

import (
	"errors"
	"testing"

	"github.com/brandon-kohn/simulation-suite/geom"
)

// twoTriangleSquare returns a 10x10 square split into two triangles sharing
// the diagonal edge (1,3).
func twoTriangleSquare() ([]geom.Point2, []int) {
	vertices := []geom.Point2{
		{X: 0, Y: 0}, // 0
		{X: 10, Y: 0}, // 1
		{X: 10, Y: 10}, // 2
		{X: 0, Y: 10}, // 3
	}
	indices := []int{0, 1, 3, 1, 2, 3}
	return vertices, indices
}

func TestNewMeshUniformWeight(t *testing.T) {
	vertices, indices := twoTriangleSquare()
	m, err := NewMesh(vertices, indices, func(t geom.Triangle) float64 { return t.Area() })
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.NumTriangles() != 2 {
		t.Fatalf("expected 2 triangles, got %d", m.NumTriangles())
	}
	if m.TotalWeight() <= 0 {
		t.Fatalf("expected positive total weight, got %v", m.TotalWeight())
	}
}

func TestNewMeshZeroWeightRejected(t *testing.T) {
	vertices, indices := twoTriangleSquare()
	_, err := NewMesh(vertices, indices, func(t geom.Triangle) float64 { return 0 })
	if !errors.Is(err, ErrZeroTotalWeight) {
		t.Fatalf("expected ErrZeroTotalWeight, got %v", err)
	}
}

func TestNewMeshRejectsMalformedIndices(t *testing.T) {
	vertices, _ := twoTriangleSquare()
	_, err := NewMesh(vertices, []int{0, 1}, func(t geom.Triangle) float64 { return 1 })
	if err == nil {
		t.Fatal("expected error for index array not divisible by 3")
	}
}

func TestRandomPositionStaysInsideBounds(t *testing.T) {
	vertices, indices := twoTriangleSquare()
	m, err := NewMesh(vertices, indices, func(t geom.Triangle) float64 { return t.Area() })
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	samples := [][3]float64{
		{0.0, 0.0, 0.0},
		{0.25, 0.9, 0.9},
		{0.5, 0.1, 0.2},
		{0.999, 0.5, 0.6},
	}
	for _, s := range samples {
		p := m.RandomPosition(s[0], s[1], s[2])
		if p.X < 0 || p.X > 10 || p.Y < 0 || p.Y > 10 {
			t.Errorf("RandomPosition(%v) = %v, outside [0,10]^2", s, p)
		}
	}
}

func TestRandomPositionFavorsHeavierTriangle(t *testing.T) {
	vertices, indices := twoTriangleSquare()
	// Triangle 0 = (0,1,3), a heavy triangle near x=0..10,y=0..10's lower-left half.
	// Weight triangle 0 heavily and triangle 1 near zero (but not exactly zero).
	weights := []float64{1000.0, 1e-6}
	call := 0
	m, err := NewMesh(vertices, indices, func(t geom.Triangle) float64 {
		w := weights[call%2]
		call++
		return w
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// u0 near 0 should always land in the first (heavily weighted) triangle.
	p := m.RandomPosition(0.01, 0.1, 0.1)
	// Triangle 0 is (0,0)-(10,0)-(0,10); barycentric fold keeps point within it.
	if p.X < 0 || p.Y < 0 || p.X+p.Y > 10.01 {
		t.Errorf("expected sample from heavy triangle 0, got %v", p)
	}
}

func TestAdjacencyMatrixSharesDiagonalEdge(t *testing.T) {
	vertices, indices := twoTriangleSquare()
	m, err := NewMesh(vertices, indices, func(t geom.Triangle) float64 { return t.Area() })
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	adj := m.AdjacencyMatrix()
	if len(adj) != 2 {
		t.Fatalf("expected adjacency entries for 2 triangles, got %d", len(adj))
	}
	if len(adj[0]) != 1 || adj[0][0] != 1 {
		t.Errorf("expected triangle 0 adjacent only to triangle 1, got %v", adj[0])
	}
	if len(adj[1]) != 1 || adj[1][0] != 0 {
		t.Errorf("expected triangle 1 adjacent only to triangle 0, got %v", adj[1])
	}

	// Second call must return the same cached slice reference contents.
	adj2 := m.AdjacencyMatrix()
	if len(adj2) != len(adj) {
		t.Errorf("expected cached adjacency matrix to be stable across calls")
	}
}
