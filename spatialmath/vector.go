// Package spatialmath defines the vector primitives shared by the planners and the environment:
// positions are D-dimensional points stored as []float64.
package spatialmath

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Difference returns the per-axis vector pointing from a toward b, i.e. b[i]-a[i].
func Difference(a, b []float64) []float64 {
	diff := make([]float64, len(a))
	floats.SubTo(diff, b, a)
	return diff
}

// Distance returns the Euclidean distance between a and b.
func Distance(a, b []float64) float64 {
	// 2 is the L value returning a standard L2 Normalization
	return floats.Distance(a, b, 2)
}

// Norm returns the Euclidean length of v.
func Norm(v []float64) float64 {
	return floats.Norm(v, 2)
}

// Steer returns the point step units from `from` along the direction toward `toward`.
// The two points must not coincide; callers check Distance(from, toward) > 0 first.
func Steer(from, toward []float64, step float64) []float64 {
	dist := Distance(from, toward)
	steered := Difference(from, toward)
	floats.Scale(step/dist, steered)
	floats.Add(steered, from)
	return steered
}

// Midpoint returns the point halfway between a and b.
func Midpoint(a, b []float64) []float64 {
	mid := make([]float64, len(a))
	floats.AddTo(mid, a, b)
	floats.Scale(0.5, mid)
	return mid
}

// Clone returns a copy of v that shares no storage with it.
func Clone(v []float64) []float64 {
	if v == nil {
		return nil
	}
	out := make([]float64, len(v))
	copy(out, v)
	return out
}

// AlmostEqual reports whether every axis of a and b differs by at most epsilon.
func AlmostEqual(a, b []float64, epsilon float64) bool {
	if len(a) != len(b) {
		return false
	}
	return floats.EqualApprox(a, b, epsilon)
}

// Equal reports whether a and b are exactly the same point.
func Equal(a, b []float64) bool {
	return floats.Equal(a, b)
}

// IsFinite reports whether every component of v is a finite number.
func IsFinite(v []float64) bool {
	for _, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}
