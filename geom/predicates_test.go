package geom

import "testing"

func unitSquare() Polygon2 {
	return Polygon2{
		{X: 0, Y: 0},
		{X: 10, Y: 0},
		{X: 10, Y: 10},
		{X: 0, Y: 10},
	}
}

func TestPointInTriangle(t *testing.T) {
	tol := DefaultTolerance
	a, b, c := Point2{0, 0}, Point2{10, 0}, Point2{0, 10}

	if !PointInTriangle(Point2{1, 1}, a, b, c, tol) {
		t.Error("expected (1,1) inside triangle")
	}
	if PointInTriangle(Point2{9, 9}, a, b, c, tol) {
		t.Error("expected (9,9) outside triangle")
	}
	if !PointInTriangle(Point2{5, 0}, a, b, c, tol) {
		t.Error("expected point on edge to count as inside")
	}
}

func TestPointInPolygon(t *testing.T) {
	tol := DefaultTolerance
	square := unitSquare()

	if !PointInPolygon(Point2{5, 5}, square, tol) {
		t.Error("expected center of square to be inside")
	}
	if PointInPolygon(Point2{20, 20}, square, tol) {
		t.Error("expected far point to be outside")
	}
	if !PointInPolygon(Point2{0, 5}, square, tol) {
		t.Error("expected boundary point to be inside")
	}
}

func TestPointInPolygonWithHoles(t *testing.T) {
	tol := DefaultTolerance
	outer := unitSquare()
	hole := Polygon2{{X: 4, Y: 4}, {X: 6, Y: 4}, {X: 6, Y: 6}, {X: 4, Y: 6}}
	pgon := PolygonWithHoles2{Outer: outer, Holes: []Polygon2{hole}}

	if !PointInPolygonWithHoles(Point2{1, 1}, pgon, tol) {
		t.Error("expected point outside hole but inside outer to count")
	}
	if PointInPolygonWithHoles(Point2{5, 5}, pgon, tol) {
		t.Error("expected point inside hole to be excluded")
	}
}

func TestIsPolygonSimple(t *testing.T) {
	tol := DefaultTolerance
	if !IsPolygonSimple(unitSquare(), tol) {
		t.Error("expected unit square to be simple")
	}

	bowtie := Polygon2{{X: 0, Y: 0}, {X: 10, Y: 10}, {X: 10, Y: 0}, {X: 0, Y: 10}}
	if IsPolygonSimple(bowtie, tol) {
		t.Error("expected bowtie polygon to be non-simple")
	}
}

func TestSelfIntersectingAcrossRings(t *testing.T) {
	tol := DefaultTolerance
	outer := unitSquare()
	crossingHole := Polygon2{{X: -1, Y: 4}, {X: 5, Y: 4}, {X: 5, Y: 6}, {X: -1, Y: 6}}

	if !SelfIntersecting(outer, []Polygon2{crossingHole}, tol) {
		t.Error("expected hole crossing outer boundary to be detected")
	}

	containedHole := Polygon2{{X: 4, Y: 4}, {X: 6, Y: 4}, {X: 6, Y: 6}, {X: 4, Y: 6}}
	if SelfIntersecting(outer, []Polygon2{containedHole}, tol) {
		t.Error("expected wholly-contained hole to not be flagged")
	}
}

func TestBounds(t *testing.T) {
	minX, maxX, minY, maxY := Bounds(unitSquare())
	if minX != 0 || maxX != 10 || minY != 0 || maxY != 10 {
		t.Errorf("unexpected bounds: %v %v %v %v", minX, maxX, minY, maxY)
	}
}
