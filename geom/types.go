package geom

import "github.com/paulmach/orb"

// Point2 is a planar point. Coordinates are assumed to be in meters
// throughout this module, matching the original's length-typed quantities;
// Go has no unit-checked arithmetic in the standard library, so callers are
// responsible for passing dimensioned values consistently.
type Point2 struct {
	X, Y float64
}

// Orb converts p to an orb.Point, letting callers hand boundary data to any
// orb-based pipeline (simplification, GeoJSON encoding) without this
// package depending on those pipelines itself.
func (p Point2) Orb() orb.Point {
	return orb.Point{p.X, p.Y}
}

// Sub returns p - q as a displacement vector (still represented as Point2).
func (p Point2) Sub(q Point2) Point2 {
	return Point2{X: p.X - q.X, Y: p.Y - q.Y}
}

// Add returns p + q.
func (p Point2) Add(q Point2) Point2 {
	return Point2{X: p.X + q.X, Y: p.Y + q.Y}
}

// Scale returns p scaled by s.
func (p Point2) Scale(s float64) Point2 {
	return Point2{X: p.X * s, Y: p.Y * s}
}

// DistanceSqrd returns the squared Euclidean distance between p and q.
func (p Point2) DistanceSqrd(q Point2) float64 {
	dx, dy := p.X-q.X, p.Y-q.Y
	return dx*dx + dy*dy
}

// Segment2 is an ordered pair of points.
type Segment2 struct {
	A, B Point2
}

// Polygon2 is an ordered, implicitly-closed sequence of vertices. It is
// simple when no two non-adjacent edges intersect.
type Polygon2 []Point2

// Ring converts the polygon to an orb.Ring (closing the ring if necessary).
func (p Polygon2) Ring() orb.Ring {
	r := make(orb.Ring, 0, len(p)+1)
	for _, v := range p {
		r = append(r, v.Orb())
	}
	if len(r) > 0 && r[0] != r[len(r)-1] {
		r = append(r, r[0])
	}
	return r
}

// Segments returns the polygon's boundary edges, one per adjacent vertex
// pair including the closing edge.
func (p Polygon2) Segments() []Segment2 {
	n := len(p)
	segs := make([]Segment2, 0, n)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		segs = append(segs, Segment2{A: p[i], B: p[j]})
	}
	return segs
}

// PolygonWithHoles2 is an outer boundary plus zero or more interior holes.
// A Polygon2 without holes is the degenerate case with an empty Holes slice.
type PolygonWithHoles2 struct {
	Outer Polygon2
	Holes []Polygon2
}

// AllSegments returns the outer boundary's and every hole's edges, in that
// order, matching the original's detail::add_segments traversal.
func (p PolygonWithHoles2) AllSegments() []Segment2 {
	segs := p.Outer.Segments()
	for _, h := range p.Holes {
		segs = append(segs, h.Segments()...)
	}
	return segs
}

// Polygon converts p to an orb.Polygon: the outer ring first, followed by
// one ring per hole, the layout orb/planar's containment helpers expect.
func (p PolygonWithHoles2) Polygon() orb.Polygon {
	rings := make(orb.Polygon, 0, len(p.Holes)+1)
	rings = append(rings, p.Outer.Ring())
	for _, h := range p.Holes {
		rings = append(rings, h.Ring())
	}
	return rings
}

// Triangle is three vertices plus the weight assigned by a mesh's weight
// policy. Weight is not populated by geometric construction; C3 fills it in.
type Triangle struct {
	V0, V1, V2 Point2
	Weight     float64
}

// Area returns the unsigned area of t.
func (t Triangle) Area() float64 {
	return triangleArea(t.V0, t.V1, t.V2)
}

// Centroid returns the triangle's centroid.
func (t Triangle) Centroid() Point2 {
	return Point2{
		X: (t.V0.X + t.V1.X + t.V2.X) / 3.0,
		Y: (t.V0.Y + t.V1.Y + t.V2.Y) / 3.0,
	}
}

func triangleArea(a, b, c Point2) float64 {
	cross := (b.X-a.X)*(c.Y-a.Y) - (c.X-a.X)*(b.Y-a.Y)
	return absF(cross) / 2.0
}

func absF(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
