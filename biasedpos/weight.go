package biasedpos

import (
	"math"

	"github.com/brandon-kohn/simulation-suite/geom"
)

// WeightPolicy computes a triangle's sampling weight. Generator's default
// is AreaDistanceWeight; callers needing a different bias (area alone, a
// custom attractor model) can supply their own to NewMesh-backed
// construction paths that accept one.
type WeightPolicy func(t geom.Triangle) float64

// AreaDistanceWeight reproduces triangle_area_distance_weight_policy: a
// triangle's weight is its area times exp(-attractionStrength *
// max(d^2, distanceSaturation^2)), where d is the distance from the
// triangle's centroid to the nearest attractive geometry in bsp. Triangles
// closer than distanceSaturation are all treated as lying at
// distanceSaturation, which caps the weight near attractive segments;
// farther triangles are exponentially suppressed. An empty attractive set
// (infinite distance) is treated the same as the saturation distance, so
// every triangle is weighted by area alone.
func AreaDistanceWeight(bsp *geom.SolidBSP, distanceSaturation, attractionStrength float64, tol geom.Tolerance) WeightPolicy {
	satSqrd := distanceSaturation * distanceSaturation
	return func(t geom.Triangle) float64 {
		centroid := t.Centroid()
		d2, _ := bsp.MinDistanceSqrdToSolid(centroid, tol)
		if d2 < satSqrd || math.IsInf(d2, 1) {
			d2 = satSqrd
		}
		return t.Area() * math.Exp(-attractionStrength*d2)
	}
}
