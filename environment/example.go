package environment

import (
	"go.viam.com/rrtplan/spatialmath"
)

// NewExample2D returns the 50x30 demonstration environment used by the examples and the
// `rrtplan example-config` command: four rectangles and five circles.
func NewExample2D() *Environment {
	return mustNewEnvironment(ExampleConfig2D())
}

// ExampleConfig2D returns the configuration form of NewExample2D.
func ExampleConfig2D() *Config {
	box := func(label string, cx, cy, w, h float64) *spatialmath.GeometryConfig {
		return &spatialmath.GeometryConfig{
			Type:     spatialmath.BoxType,
			Center:   []float64{cx, cy},
			HalfSize: []float64{w / 2, h / 2},
			Label:    label,
		}
	}
	circle := func(label string, cx, cy, r float64) *spatialmath.GeometryConfig {
		return &spatialmath.GeometryConfig{
			Type:   spatialmath.SphereType,
			Center: []float64{cx, cy},
			R:      r,
			Label:  label,
		}
	}
	return &Config{
		Low:  []float64{0, 0},
		High: []float64{50, 30},
		Obstacles: []*spatialmath.GeometryConfig{
			box("wall-1", 18, 13, 8, 2),
			box("wall-2", 22, 23.5, 8, 3),
			box("wall-3", 27, 13, 2, 12),
			box("wall-4", 37, 15, 10, 2),
			circle("rock-1", 7, 12, 3),
			circle("rock-2", 46, 20, 2),
			circle("rock-3", 15, 5, 2),
			circle("rock-4", 37, 7, 3),
			circle("rock-5", 37, 23, 3),
		},
	}
}

func mustNewEnvironment(cfg *Config) *Environment {
	env, err := cfg.Build()
	if err != nil {
		panic(err)
	}
	return env
}
