package biasedpos

import (
	"errors"
	"testing"

	"github.com/brandon-kohn/simulation-suite/geom"
)

func TestNewGridProducesSampleablePositions(t *testing.T) {
	boundary := geom.PolygonWithHoles2{Outer: unitSquare(20)}
	grid, err := NewGrid([]geom.PolygonWithHoles2{boundary}, nil, 2.0, 0.1, 1.0, 1.0, geom.DefaultTolerance)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if grid.NumPositions() == 0 {
		t.Fatal("expected at least one admitted grid position")
	}
}

func TestGridRandomPositionStaysInBoundary(t *testing.T) {
	boundary := geom.PolygonWithHoles2{Outer: unitSquare(20)}
	grid, err := NewGrid([]geom.PolygonWithHoles2{boundary}, nil, 2.0, 0.1, 1.0, 1.0, geom.DefaultTolerance)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	seq := []float64{0.1, 0.2, 0.3, 0.9, 0.5, 0.6, 0.05, 0.95, 0.4}
	idx := 0
	next := func() (float64, float64, float64) {
		a, b, c := seq[idx%len(seq)], seq[(idx+1)%len(seq)], seq[(idx+2)%len(seq)]
		idx += 3
		return a, b, c
	}

	p, ok := grid.RandomPosition(next, 1000)
	if !ok {
		t.Fatal("expected RandomPosition to find a valid point within maxAttempts")
	}
	if !geom.PointInPolygon(p, boundary.Outer, geom.DefaultTolerance) {
		t.Errorf("sampled position %v fell outside the boundary", p)
	}
}

func TestNewGridRejectsWhenNothingAdmitted(t *testing.T) {
	// A boundary entirely blanketed by an attractor within minDistance of
	// every cell leaves nothing admitted.
	tiny := geom.PolygonWithHoles2{Outer: unitSquare(1)}
	attractor := []geom.Segment2{{A: geom.Point2{X: -5, Y: -5}, B: geom.Point2{X: 5, Y: 5}}}
	_, err := NewGrid([]geom.PolygonWithHoles2{tiny}, attractor, 5.0, 10.0, 1.0, 1.0, geom.DefaultTolerance)
	if !errors.Is(err, ErrNoSampleablePositions) {
		t.Fatalf("expected ErrNoSampleablePositions, got %v", err)
	}
}
