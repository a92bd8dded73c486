package geom

import (
	"math"

	"github.com/paulmach/orb/planar"
)

// PointInTriangle reports whether p lies inside or on triangle (a, b, c),
// via the barycentric-coordinate test. Grounded on the same denominator/
// barycentric derivation the teacher uses to locate a 2D point inside a
// mesh triangle (Tin.pointInTriangle), dropping the elevation lookup that
// accompanied it there.
func PointInTriangle(p, a, b, c Point2, tol Tolerance) bool {
	denom := (b.Y-c.Y)*(a.X-c.X) + (c.X-b.X)*(a.Y-c.Y)
	if tol.Zero(denom) {
		return false
	}
	u := ((b.Y-c.Y)*(p.X-c.X) + (c.X-b.X)*(p.Y-c.Y)) / denom
	v := ((c.Y-a.Y)*(p.X-c.X) + (a.X-c.X)*(p.Y-c.Y)) / denom
	w := 1 - u - v
	return tol.GreaterEqual(u, 0) && tol.GreaterEqual(v, 0) && tol.GreaterEqual(w, 0)
}

// PointInPolygon reports whether p lies inside the (possibly non-convex)
// ring described by vertices. A point within tol of any edge counts as
// inside. Wired through orb/planar.RingContains for the interior test,
// the same library call the pack's own royalcat-rgeocache utility uses for
// a polygon-fill membership test (there via MultiPolygonContains); this
// module's boundary-inclusive behavior still needs the raw per-edge
// onSegment check planar.RingContains doesn't offer.
func PointInPolygon(p Point2, vertices Polygon2, tol Tolerance) bool {
	if len(vertices) < 3 {
		return false
	}
	for _, s := range vertices.Segments() {
		if onSegment(p, s, tol) {
			return true
		}
	}
	return planar.RingContains(vertices.Ring(), p.Orb())
}

// PointInPolygonWithHoles reports whether p lies inside the outer ring and
// outside every hole, via orb/planar.PolygonContains over the
// Polygon2/orb.Polygon bridge in types.go.
func PointInPolygonWithHoles(p Point2, pgon PolygonWithHoles2, tol Tolerance) bool {
	for _, s := range pgon.AllSegments() {
		if onSegment(p, s, tol) {
			return true
		}
	}
	return planar.PolygonContains(pgon.Polygon(), p.Orb())
}

func onSegment(p Point2, s Segment2, tol Tolerance) bool {
	cross := (s.B.X-s.A.X)*(p.Y-s.A.Y) - (s.B.Y-s.A.Y)*(p.X-s.A.X)
	if !tol.Zero(cross) {
		return false
	}
	minX, maxX := math.Min(s.A.X, s.B.X), math.Max(s.A.X, s.B.X)
	minY, maxY := math.Min(s.A.Y, s.B.Y), math.Max(s.A.Y, s.B.Y)
	return tol.GreaterEqual(p.X, minX) && tol.LessEqual(p.X, maxX) &&
		tol.GreaterEqual(p.Y, minY) && tol.LessEqual(p.Y, maxY)
}

// IsPolygonSimple reports whether no two non-adjacent edges of the polygon
// intersect. O(n^2); acceptable for the boundary/hole sizes this module
// targets (interior density comes from Steiner points, not boundary
// vertex count).
func IsPolygonSimple(p Polygon2, tol Tolerance) bool {
	if len(p) < 3 {
		return false
	}
	segs := p.Segments()
	n := len(segs)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if adjacent(i, j, n) {
				continue
			}
			if segmentsIntersect(segs[i], segs[j], tol) {
				return false
			}
		}
	}
	return true
}

func adjacent(i, j, n int) bool {
	return i == j || (i+1)%n == j || (j+1)%n == i
}

// SelfIntersecting reports whether the outer boundary and any hole of pgon
// cross each other or themselves. Ported from the original's
// is_self_intersecting free functions: the outer and each hole are each
// simple on their own (checked by IsPolygonSimple at the call site), this
// additionally catches the case a hole crosses the outer ring or another
// hole, which a per-ring simplicity check alone would miss.
func SelfIntersecting(outer Polygon2, holes []Polygon2, tol Tolerance) bool {
	rings := make([]Polygon2, 0, len(holes)+1)
	rings = append(rings, outer)
	rings = append(rings, holes...)
	for i := 0; i < len(rings); i++ {
		for j := i + 1; j < len(rings); j++ {
			if ringsCross(rings[i], rings[j], tol) {
				return true
			}
		}
	}
	return false
}

func ringsCross(a, b Polygon2, tol Tolerance) bool {
	for _, sa := range a.Segments() {
		for _, sb := range b.Segments() {
			if segmentsIntersect(sa, sb, tol) {
				return true
			}
		}
	}
	return false
}

func segmentsIntersect(s1, s2 Segment2, tol Tolerance) bool {
	d1 := orientation(s2.A, s2.B, s1.A)
	d2 := orientation(s2.A, s2.B, s1.B)
	d3 := orientation(s1.A, s1.B, s2.A)
	d4 := orientation(s1.A, s1.B, s2.B)

	sd1, sd2 := tol.Sign(d1), tol.Sign(d2)
	sd3, sd4 := tol.Sign(d3), tol.Sign(d4)

	if sd1*sd2 < 0 && sd3*sd4 < 0 {
		return true
	}
	if sd1 == 0 && onSegment(s1.A, s2, tol) {
		return true
	}
	if sd2 == 0 && onSegment(s1.B, s2, tol) {
		return true
	}
	if sd3 == 0 && onSegment(s2.A, s1, tol) {
		return true
	}
	if sd4 == 0 && onSegment(s2.B, s1, tol) {
		return true
	}
	return false
}

func orientation(a, b, c Point2) float64 {
	return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
}

// Bounds returns the axis-aligned bounding box of vertices.
func Bounds(vertices Polygon2) (minX, maxX, minY, maxY float64) {
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)
	for _, p := range vertices {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}
	return
}
