package spatialmath

import (
	"encoding/json"
	"strings"

	"github.com/pkg/errors"
)

// GeometryType defines what geometry creator representations are known.
type GeometryType string

// The set of allowed representations for obstacle geometry.
const (
	UnknownType = GeometryType("")
	BoxType     = GeometryType("box")
	SphereType  = GeometryType("sphere")
)

var errGeometryTypeUnsupported = errors.New("unsupported Geometry type")

// Geometry is an obstacle shape in a D-dimensional configuration space. The set of
// implementations is closed: *Box and *Sphere.
type Geometry interface {
	// IsInside reports whether the position lies inside the geometry, boundary included.
	IsInside(position []float64) bool
	Center() []float64
	Dimension() int
	Label() string
	String() string
	json.Marshaler

	isGeometry()
}

// GeometryConfig specifies the format of geometries specified through the configuration file.
type GeometryConfig struct {
	Type GeometryType `json:"type"`

	Center []float64 `json:"center"`

	// parameters used for defining a box's half extent along every axis
	HalfSize []float64 `json:"half_size,omitempty"`

	// parameters used for defining a sphere, its radius
	R float64 `json:"r,omitempty"`

	Label string `json:"label,omitempty"`
}

// NewGeometryConfig creates a config for a Geometry from an instance of a Geometry.
func NewGeometryConfig(g Geometry) (*GeometryConfig, error) {
	config := GeometryConfig{Center: Clone(g.Center()), Label: g.Label()}
	switch gType := g.(type) {
	case *Box:
		config.Type = BoxType
		config.HalfSize = Clone(gType.halfSize)
	case *Sphere:
		config.Type = SphereType
		config.R = gType.radius
	default:
		return nil, newGeometryTypeUnsupportedError(g)
	}
	return &config, nil
}

// ParseConfig converts a GeometryConfig into the correct Geometry type.
func (config *GeometryConfig) ParseConfig() (Geometry, error) {
	geomType := GeometryType(strings.ToLower(string(config.Type)))
	if geomType == UnknownType {
		// no type specified, try to infer intent from the populated fields
		switch {
		case len(config.HalfSize) > 0:
			geomType = BoxType
		case config.R > 0:
			geomType = SphereType
		}
	}
	switch geomType {
	case BoxType:
		b, err := NewBox(config.Center, config.HalfSize, config.Label)
		if err != nil {
			return nil, err
		}
		return b, nil
	case SphereType:
		s, err := NewSphere(config.Center, config.R, config.Label)
		if err != nil {
			return nil, err
		}
		return s, nil
	case UnknownType:
	}
	return nil, errors.Wrapf(errGeometryTypeUnsupported, "%q", config.Type)
}

func newGeometryTypeUnsupportedError(g Geometry) error {
	return errors.Wrapf(errGeometryTypeUnsupported, "%T", g)
}

func newBadGeometryDimensionsError(g Geometry) error {
	return errors.Errorf("invalid dimension(s) for Geometry type %T", g)
}

func geometryMarshalJSON(g Geometry) ([]byte, error) {
	config, err := NewGeometryConfig(g)
	if err != nil {
		return nil, err
	}
	return json.Marshal(config)
}
