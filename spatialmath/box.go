package spatialmath

import (
	"fmt"
	"math"
	"strings"
)

// Box is an axis-aligned rectangle (or hyperrectangle) obstacle defined by its center and
// the half extent along every axis.
type Box struct {
	center   []float64
	halfSize []float64
	label    string
}

// NewBox instantiates a new box Geometry.
func NewBox(center, halfSize []float64, label string) (*Box, error) {
	if len(center) == 0 || len(center) != len(halfSize) {
		return nil, newBadGeometryDimensionsError(&Box{})
	}
	// Negative dimensions not allowed. Zero dimensions are allowed for degenerate boxes.
	for _, h := range halfSize {
		if h < 0 || math.IsNaN(h) {
			return nil, newBadGeometryDimensionsError(&Box{})
		}
	}
	return &Box{center: Clone(center), halfSize: Clone(halfSize), label: label}, nil
}

func (b *Box) isGeometry() {}

// IsInside checks every axis against the box's extent. Points on the faces are inside.
func (b *Box) IsInside(position []float64) bool {
	for i, c := range b.center {
		if position[i] < c-b.halfSize[i] || c+b.halfSize[i] < position[i] {
			return false
		}
	}
	return true
}

// Center returns the center of the box.
func (b *Box) Center() []float64 {
	return b.center
}

// HalfSize returns the half extent of the box along every axis.
func (b *Box) HalfSize() []float64 {
	return b.halfSize
}

// Min returns the lowest corner of the box.
func (b *Box) Min() []float64 {
	corner := make([]float64, len(b.center))
	for i, c := range b.center {
		corner[i] = c - b.halfSize[i]
	}
	return corner
}

// Max returns the highest corner of the box.
func (b *Box) Max() []float64 {
	corner := make([]float64, len(b.center))
	for i, c := range b.center {
		corner[i] = c + b.halfSize[i]
	}
	return corner
}

// Dimension returns the number of axes of the box.
func (b *Box) Dimension() int {
	return len(b.center)
}

// Label returns the label of this box.
func (b *Box) Label() string {
	return b.label
}

// String returns a human readable string that represents the box.
func (b *Box) String() string {
	return fmt.Sprintf("Type: Box | Center: %s | Half size: %s", formatVector(b.center), formatVector(b.halfSize))
}

// MarshalJSON encodes the box as its GeometryConfig.
func (b *Box) MarshalJSON() ([]byte, error) {
	return geometryMarshalJSON(b)
}

func formatVector(v []float64) string {
	parts := make([]string, 0, len(v))
	for _, x := range v {
		parts = append(parts, fmt.Sprintf("%.2f", x))
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
