package spatialmath

import (
	"fmt"
	"math"
)

// Sphere is a circle (2D), sphere (3D) or hypersphere obstacle.
type Sphere struct {
	center []float64
	radius float64
	label  string
}

// NewSphere instantiates a new sphere Geometry.
func NewSphere(center []float64, radius float64, label string) (*Sphere, error) {
	if len(center) == 0 || radius < 0 || math.IsNaN(radius) {
		return nil, newBadGeometryDimensionsError(&Sphere{})
	}
	return &Sphere{center: Clone(center), radius: radius, label: label}, nil
}

func (s *Sphere) isGeometry() {}

// IsInside reports whether position is within radius of the center.
func (s *Sphere) IsInside(position []float64) bool {
	return Distance(s.center, position[:len(s.center)]) <= s.radius
}

// Center returns the center of the sphere.
func (s *Sphere) Center() []float64 {
	return s.center
}

// Radius returns the radius of the sphere.
func (s *Sphere) Radius() float64 {
	return s.radius
}

// Dimension returns the number of axes of the sphere.
func (s *Sphere) Dimension() int {
	return len(s.center)
}

// Label returns the label of this sphere.
func (s *Sphere) Label() string {
	return s.label
}

// String returns a human readable string that represents the sphere.
func (s *Sphere) String() string {
	return fmt.Sprintf("Type: Sphere | Center: %s | Radius: %.2f", formatVector(s.center), s.radius)
}

// MarshalJSON encodes the sphere as its GeometryConfig.
func (s *Sphere) MarshalJSON() ([]byte, error) {
	return geometryMarshalJSON(s)
}
