// Package geom provides the geometric primitives the rest of the module
// treats as external collaborators: points, segments, polygons, the
// approximate-comparison policy, and the solid BSP used for classification
// and nearest-distance queries.
package geom

import "math"

// Tolerance is the approximate-comparison policy every predicate in this
// module is threaded through. Two values closer than Epsilon are treated
// as equal.
type Tolerance struct {
	Epsilon float64
}

// DefaultTolerance mirrors the original's make_tolerance_policy() default.
var DefaultTolerance = Tolerance{Epsilon: 1e-10}

// NewTolerance builds a Tolerance with the given epsilon. A non-positive
// epsilon falls back to DefaultTolerance.Epsilon.
func NewTolerance(epsilon float64) Tolerance {
	if epsilon <= 0 {
		epsilon = DefaultTolerance.Epsilon
	}
	return Tolerance{Epsilon: epsilon}
}

// Equal reports whether a and b differ by no more than Epsilon.
func (t Tolerance) Equal(a, b float64) bool {
	return math.Abs(a-b) <= t.Epsilon
}

// Zero reports whether v is within Epsilon of zero.
func (t Tolerance) Zero(v float64) bool {
	return math.Abs(v) <= t.Epsilon
}

// LessEqual reports whether a <= b, allowing for Epsilon slack.
func (t Tolerance) LessEqual(a, b float64) bool {
	return a <= b+t.Epsilon
}

// GreaterEqual reports whether a >= b, allowing for Epsilon slack.
func (t Tolerance) GreaterEqual(a, b float64) bool {
	return a >= b-t.Epsilon
}

// Sign returns -1, 0, or 1 for v, treating anything within Epsilon of zero
// as zero. Used for orientation tests against a partition hyperplane.
func (t Tolerance) Sign(v float64) int {
	if t.Zero(v) {
		return 0
	}
	if v < 0 {
		return -1
	}
	return 1
}
