// Package biasedpos generates random positions inside a polygonal
// boundary biased toward a set of "attractive" segments: dense, Delaunay
// triangulation with extra Steiner points on a grid across the interior
// (away from the attractive segments), triangle
// weights that favor proximity to the attractors, and weighted random
// sampling over the resulting mesh.
package biasedpos

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/brandon-kohn/simulation-suite/geom"
	"github.com/brandon-kohn/simulation-suite/mesh"
)

// ErrInvalidPolygon is returned when a boundary is empty or self-intersecting.
var ErrInvalidPolygon = errors.New("biasedpos: polygon is empty or not simple")

// Generator samples random positions inside a polygon, biased toward
// attractive geometry. Immutable after construction; safe for concurrent
// callers of RandomPosition.
type Generator struct {
	mesh *mesh.Mesh
	tol  geom.Tolerance
}

// Mesh exposes the underlying weighted mesh, ported from the original's
// get_mesh() accessor: callers that need the raw triangulation (for
// visualization, diagnostics, or further spatial queries) can reach it
// without this package exposing its own redundant query surface.
func (g *Generator) Mesh() *mesh.Mesh {
	return g.mesh
}

// NewGenerator builds a Generator over a simple polygon boundary, biased
// toward attractiveSegments. granularity sets the Steiner point grid
// spacing, distanceSaturation caps the attractive pull of a segment once a
// triangle is within that distance, and attractionStrength scales the
// falloff. Grounded on the boundary-only constructor of the original's
// biased_position_generator.
func NewGenerator(boundary geom.Polygon2, attractiveSegments []geom.Segment2, granularity, distanceSaturation, attractionStrength float64, tol geom.Tolerance) (*Generator, error) {
	return newGenerator(geom.PolygonWithHoles2{Outer: boundary}, attractiveSegments, granularity, distanceSaturation, attractionStrength, tol)
}

// NewGeneratorWithHoles builds a Generator over a polygon with holes,
// biased toward attractiveSegments. Grounded on the holes-accepting
// constructor overload of the original's biased_position_generator.
func NewGeneratorWithHoles(boundary geom.Polygon2, holes []geom.Polygon2, attractiveSegments []geom.Segment2, granularity, distanceSaturation, attractionStrength float64, tol geom.Tolerance) (*Generator, error) {
	return newGenerator(geom.PolygonWithHoles2{Outer: boundary, Holes: holes}, attractiveSegments, granularity, distanceSaturation, attractionStrength, tol)
}

// NewGeneratorFromBSP builds a Generator that biases toward geometry
// already captured in an externally-owned attractive BSP, rather than
// building a fresh one from a raw segment list. Grounded on the
// external-BSP constructor overload of the original, useful when many
// generators share the same attractor set.
func NewGeneratorFromBSP(boundary geom.PolygonWithHoles2, attractiveBSP *geom.SolidBSP, granularity, distanceSaturation, attractionStrength float64, tol geom.Tolerance) (*Generator, error) {
	return buildGenerator(boundary, attractiveBSP, granularity, distanceSaturation, attractionStrength, tol, NewDefaultTriangulator())
}

func newGenerator(boundary geom.PolygonWithHoles2, attractiveSegments []geom.Segment2, granularity, distanceSaturation, attractionStrength float64, tol geom.Tolerance) (*Generator, error) {
	bsp := geom.NewSolidBSP(attractiveSegments, tol)
	return buildGenerator(boundary, bsp, granularity, distanceSaturation, attractionStrength, tol, NewDefaultTriangulator())
}

func buildGenerator(boundary geom.PolygonWithHoles2, attractiveBSP *geom.SolidBSP, granularity, distanceSaturation, attractionStrength float64, tol geom.Tolerance, tri Triangulator) (*Generator, error) {
	if len(boundary.Outer) == 0 || !geom.IsPolygonSimple(boundary.Outer, tol) {
		return nil, ErrInvalidPolygon
	}
	for _, h := range boundary.Holes {
		if !geom.IsPolygonSimple(h, tol) {
			return nil, ErrInvalidPolygon
		}
	}
	if geom.SelfIntersecting(boundary.Outer, boundary.Holes, tol) {
		return nil, ErrInvalidPolygon
	}

	steiner := generateFineSteinerPoints(boundary, granularity, attractiveBSP, tol, tri)
	vertices, indices := tri.Triangulate(boundary, steiner, tol)
	if len(indices) == 0 {
		return nil, fmt.Errorf("biasedpos: triangulation produced no triangles")
	}

	weightFn := AreaDistanceWeight(attractiveBSP, distanceSaturation, attractionStrength, tol)
	m, err := mesh.NewMesh(vertices, indices, mesh.WeightFunc(weightFn))
	if err != nil {
		return nil, fmt.Errorf("biasedpos: %w", err)
	}
	m.AdjacencyMatrix() // cache eagerly, matching the original's constructor-time caching.

	return &Generator{mesh: m, tol: tol}, nil
}

// RandomPosition draws a biased random position inside the boundary.
// random0, random1, random2 must be independently uniform over [0, 1).
func (g *Generator) RandomPosition(random0, random1, random2 float64) geom.Point2 {
	return g.mesh.RandomPosition(random0, random1, random2)
}

// CollectionItem is one polygon-with-holes entry in a multi-polygon
// collection passed to NewGeneratorForCollection.
type CollectionItem struct {
	Boundary geom.PolygonWithHoles2
}

// NewGeneratorForCollection builds one Generator per item in polygons,
// triangulating each independently and in parallel via an errgroup, all
// biased toward the same attractiveSegments. This supplements the
// original's dropped generate_weighted_mesh(vector<polygon_with_holes2>)
// overload, which built a single mesh spanning a whole polygon collection;
// this module keeps each polygon's mesh separate (so a caller can sample
// from one without paying for the others) and only parallelizes their
// independent construction, not their sampling.
func NewGeneratorForCollection(ctx context.Context, polygons []CollectionItem, attractiveSegments []geom.Segment2, granularity, distanceSaturation, attractionStrength float64, tol geom.Tolerance) ([]*Generator, error) {
	bsp := geom.NewSolidBSP(attractiveSegments, tol)
	generators := make([]*Generator, len(polygons))

	g, _ := errgroup.WithContext(ctx)
	for i, item := range polygons {
		i, item := i, item
		g.Go(func() error {
			gen, err := buildGenerator(item.Boundary, bsp, granularity, distanceSaturation, attractionStrength, tol, NewDefaultTriangulator())
			if err != nil {
				return fmt.Errorf("biasedpos: polygon %d: %w", i, err)
			}
			generators[i] = gen
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return generators, nil
}
