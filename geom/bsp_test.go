package geom

import (
	"math"
	"testing"
)

func squareSegments() []Segment2 {
	// CCW winding so the interior is the solid side.
	p := Polygon2{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}}
	return p.Segments()
}

func TestSolidBSPClassify(t *testing.T) {
	tol := DefaultTolerance
	bsp := NewSolidBSP(squareSegments(), tol)

	cases := []struct {
		name string
		p    Point2
		want Classification
	}{
		{"center", Point2{5, 5}, InSolidSpace},
		{"outside", Point2{20, 20}, InEmptySpace},
		{"on boundary", Point2{0, 5}, OnBoundary},
	}
	for _, c := range cases {
		if got := bsp.Classify(c.p, tol); got != c.want {
			t.Errorf("%s: Classify(%v) = %v, want %v", c.name, c.p, got, c.want)
		}
	}
}

func TestSolidBSPMinDistanceMatchesBruteForce(t *testing.T) {
	tol := DefaultTolerance
	segs := squareSegments()
	bsp := NewSolidBSP(segs, tol)

	probe := Point2{X: -3, Y: 5}
	got, _ := bsp.MinDistanceSqrdToSolid(probe, tol)

	want := math.Inf(1)
	for _, s := range segs {
		d := distanceSqrdPointSegment(probe, s)
		if d < want {
			want = d
		}
	}

	if math.Abs(got-want) > 1e-9 {
		t.Errorf("MinDistanceSqrdToSolid = %v, want %v", got, want)
	}
	if math.Abs(got-9.0) > 1e-9 {
		t.Errorf("expected distance-squared of 9 (3m from left edge), got %v", got)
	}
}

func TestEmptySegmentSetClassifiesEverythingEmpty(t *testing.T) {
	tol := DefaultTolerance
	bsp := NewSolidBSP(nil, tol)
	if got := bsp.Classify(Point2{1, 1}, tol); got != InEmptySpace {
		t.Errorf("expected empty BSP to classify everything as empty, got %v", got)
	}
}
