package biasedpos

import (
	"math"

	"github.com/brandon-kohn/simulation-suite/geom"
)

// Triangulator produces a constrained triangulation of a polygon (with
// holes) plus a set of interior Steiner points. Generator depends on this
// interface rather than a concrete algorithm, the same way the original
// treats its CDT step (built on poly2tri) as an external collaborator
// reached through a narrow seam. defaultTriangulator is this module's own
// implementation so the package has no unresolvable external dependency;
// a caller free to vendor a dedicated CDT library can supply one instead.
type Triangulator interface {
	Triangulate(boundary geom.PolygonWithHoles2, steiner []geom.Point2, tol geom.Tolerance) (vertices []geom.Point2, indices []int)
}

type defaultTriangulator struct{}

// NewDefaultTriangulator returns the built-in triangulator: an
// incremental Bowyer-Watson Delaunay triangulation over the boundary
// vertices and Steiner points, followed by discarding every triangle
// whose centroid falls outside the polygon or inside a hole. Adapted
// from the incremental Delaunay construction in the teacher's Tin
// package (super-triangle bootstrap, circumcircle retriangulation,
// strip-the-scaffold cleanup), generalized from elevation-bearing 3D
// points to the plain 2D points this module samples over.
func NewDefaultTriangulator() Triangulator {
	return defaultTriangulator{}
}

type delaunayPoint struct {
	x, y float64
	id   int
}

type delaunayTriangle struct {
	a, b, c int // indices into the point slice
}

type delaunayEdge struct {
	u, v int
}

func (t defaultTriangulator) Triangulate(boundary geom.PolygonWithHoles2, steiner []geom.Point2, tol geom.Tolerance) ([]geom.Point2, []int) {
	var vertices []geom.Point2
	vertices = append(vertices, boundary.Outer...)
	for _, h := range boundary.Holes {
		vertices = append(vertices, h...)
	}
	vertices = append(vertices, steiner...)

	if len(vertices) < 3 {
		return vertices, nil
	}

	pts := make([]delaunayPoint, len(vertices))
	for i, v := range vertices {
		pts[i] = delaunayPoint{x: v.X, y: v.Y, id: i}
	}

	triangles := delaunayTriangulate(pts)

	indices := make([]int, 0, len(triangles)*3)
	for _, t := range triangles {
		centroid := geom.Point2{
			X: (vertices[t.a].X + vertices[t.b].X + vertices[t.c].X) / 3.0,
			Y: (vertices[t.a].Y + vertices[t.b].Y + vertices[t.c].Y) / 3.0,
		}
		if !geom.PointInPolygonWithHoles(centroid, boundary, tol) {
			continue
		}
		indices = append(indices, t.a, t.b, t.c)
	}
	return vertices, indices
}

// delaunayTriangulate runs the Bowyer-Watson algorithm over pts, bracketed
// by a super-triangle that is stripped out of the result before return.
// Grounded on Tin.delaunayTriangulation3D, with the elevation/ID-collision
// bookkeeping that 3D TIN construction needed dropped since this module's
// points carry no elevation.
func delaunayTriangulate(pts []delaunayPoint) []delaunayTriangle {
	superA, superB, superC := superTriangleIndices(pts)
	work := append(append([]delaunayPoint{}, pts...), superA, superB, superC)
	superIdx := map[int]bool{superA.id: true, superB.id: true, superC.id: true}

	triangles := []delaunayTriangle{{superA.id, superB.id, superC.id}}

	byID := make(map[int]delaunayPoint, len(work))
	for _, p := range work {
		byID[p.id] = p
	}

	for _, p := range pts {
		var bad []delaunayTriangle
		for _, t := range triangles {
			if inCircumcircle(p, byID[t.a], byID[t.b], byID[t.c]) {
				bad = append(bad, t)
			}
		}

		boundaryEdges := boundaryOf(bad)

		var kept []delaunayTriangle
		for _, t := range triangles {
			if !containsTriangle(bad, t) {
				kept = append(kept, t)
			}
		}
		triangles = kept

		for _, e := range boundaryEdges {
			triangles = append(triangles, delaunayTriangle{e.u, e.v, p.id})
		}
	}

	var final []delaunayTriangle
	for _, t := range triangles {
		if superIdx[t.a] || superIdx[t.b] || superIdx[t.c] {
			continue
		}
		final = append(final, t)
	}
	return final
}

func superTriangleIndices(pts []delaunayPoint) (a, b, c delaunayPoint) {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range pts {
		minX, maxX = math.Min(minX, p.x), math.Max(maxX, p.x)
		minY, maxY = math.Min(minY, p.y), math.Max(maxY, p.y)
	}
	dx, dy := maxX-minX, maxY-minY
	delta := math.Max(dx, dy)
	if delta == 0 {
		delta = 1
	}
	midX, midY := (minX+maxX)/2, (minY+maxY)/2

	baseID := -1
	for _, p := range pts {
		if p.id <= baseID {
			baseID = p.id - 1
		}
	}

	a = delaunayPoint{x: midX - 20*delta, y: midY - delta, id: baseID - 1}
	b = delaunayPoint{x: midX, y: midY + 20*delta, id: baseID - 2}
	c = delaunayPoint{x: midX + 20*delta, y: midY - delta, id: baseID - 3}
	return
}

func inCircumcircle(p, a, b, c delaunayPoint) bool {
	ax, ay := a.x, a.y
	bx, by := b.x, b.y
	cx, cy := c.x, c.y

	d := 2 * (ax*(by-cy) + bx*(cy-ay) + cx*(ay-by))
	if math.Abs(d) < 1e-12 {
		return false
	}

	ux := ((ax*ax+ay*ay)*(by-cy) + (bx*bx+by*by)*(cy-ay) + (cx*cx+cy*cy)*(ay-by)) / d
	uy := ((ax*ax+ay*ay)*(cx-bx) + (bx*bx+by*by)*(ax-cx) + (cx*cx+cy*cy)*(bx-ax)) / d

	r2 := (ux-ax)*(ux-ax) + (uy-ay)*(uy-ay)
	dist2 := (ux-p.x)*(ux-p.x) + (uy-p.y)*(uy-p.y)
	return dist2 < r2
}

func boundaryOf(bad []delaunayTriangle) []delaunayEdge {
	edgesOf := func(t delaunayTriangle) [3]delaunayEdge {
		return [3]delaunayEdge{{t.a, t.b}, {t.b, t.c}, {t.c, t.a}}
	}
	sameEdge := func(e1, e2 delaunayEdge) bool {
		return (e1.u == e2.u && e1.v == e2.v) || (e1.u == e2.v && e1.v == e2.u)
	}

	var boundary []delaunayEdge
	for i, t := range bad {
		for _, e := range edgesOf(t) {
			shared := false
			for j, other := range bad {
				if i == j {
					continue
				}
				for _, oe := range edgesOf(other) {
					if sameEdge(e, oe) {
						shared = true
						break
					}
				}
				if shared {
					break
				}
			}
			if !shared {
				boundary = append(boundary, e)
			}
		}
	}
	return boundary
}

func containsTriangle(list []delaunayTriangle, t delaunayTriangle) bool {
	for _, x := range list {
		if x == t {
			return true
		}
	}
	return false
}
