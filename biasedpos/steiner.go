package biasedpos

import (
	"math"

	"github.com/brandon-kohn/simulation-suite/geom"
)

// minAttractiveDistanceSqrd is the squared-distance admission threshold a
// candidate Steiner point must clear against the attractive BSP: within
// one meter of attractive geometry, a cell centroid is considered already
// well-represented by the boundary/attractor geometry itself and is
// dropped, matching the original's 1 square meter literal.
const minAttractiveDistanceSqrd = 1.0

// uniformGrid is a simple row-major grid over a bounding box, used only to
// enumerate candidate Steiner cell centroids; it is not retained after
// generateFineSteinerPoints returns.
type uniformGrid struct {
	minX, minY float64
	cell       float64
}

func newUniformGrid(minX, minY, cell float64) uniformGrid {
	if cell <= 0 {
		cell = 1.0
	}
	return uniformGrid{minX: minX, minY: minY, cell: cell}
}

func (g uniformGrid) xIndex(x float64) int {
	return int(math.Floor((x - g.minX) / g.cell))
}

func (g uniformGrid) yIndex(y float64) int {
	return int(math.Floor((y - g.minY) / g.cell))
}

func (g uniformGrid) cellCentroid(i, j int) geom.Point2 {
	return geom.Point2{
		X: g.minX + (float64(i)+0.5)*g.cell,
		Y: g.minY + (float64(j)+0.5)*g.cell,
	}
}

// generateFineSteinerPoints lays a uniform grid of spacing granularity over
// each triangle of a coarse triangulation of pgon, admitting a cell
// centroid only when it falls inside the triangle and lies farther than
// minAttractiveDistanceSqrd from the attractive BSP's solid geometry.
// Ported from generate_fine_steiner_points: the original triangulates the
// raw polygon once to get candidate triangles, then grids each one
// independently, which is exactly mirrored here via the package's own
// Triangulator rather than a dedicated coarse pass, since both need only a
// triangle soup, not a CDT.
func generateFineSteinerPoints(pgon geom.PolygonWithHoles2, granularity float64, bsp *geom.SolidBSP, tol geom.Tolerance, tri Triangulator) []geom.Point2 {
	seen := make(map[[2]float64]bool)
	var results []geom.Point2

	vertices, indices := tri.Triangulate(pgon, nil, tol)
	if len(indices) == 0 {
		return nil
	}

	minX, _, minY, _ := geom.Bounds(pgon.Outer)
	grid := newUniformGrid(minX, minY, granularity)

	for q := 0; q < len(indices)/3; q++ {
		i0, i1, i2 := indices[3*q], indices[3*q+1], indices[3*q+2]
		v0, v1, v2 := vertices[i0], vertices[i1], vertices[i2]

		txMin, txMax, tyMin, tyMax := geom.Bounds(geom.Polygon2{v0, v1, v2})
		iMin, iMax := grid.xIndex(txMin), grid.xIndex(txMax)
		jMin, jMax := grid.yIndex(tyMin), grid.yIndex(tyMax)

		for j := jMin; j <= jMax; j++ {
			for i := iMin; i <= iMax; i++ {
				c := grid.cellCentroid(i, j)
				key := [2]float64{c.X, c.Y}
				if seen[key] {
					continue
				}
				d2, _ := bsp.MinDistanceSqrdToSolid(c, tol)
				if d2 > minAttractiveDistanceSqrd && geom.PointInTriangle(c, v0, v1, v2, tol) {
					seen[key] = true
					results = append(results, c)
				}
			}
		}
	}
	return results
}
