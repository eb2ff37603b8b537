// Package environment describes the bounded configuration space a planner searches and the
// obstacles inside it.
package environment

import (
	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"go.viam.com/rrtplan/spatialmath"
)

// Environment is an axis-aligned bounding box plus the obstacles within it. It is immutable once
// constructed and safe to share between planners.
type Environment struct {
	low       []float64
	high      []float64
	obstacles []spatialmath.Geometry
}

// NewEnvironment validates the bounds and the obstacle dimensions and returns an Environment.
func NewEnvironment(low, high []float64, obstacles []spatialmath.Geometry) (*Environment, error) {
	if len(low) == 0 {
		return nil, errors.New("environment bounds must have at least one dimension")
	}
	if len(low) != len(high) {
		return nil, errors.Errorf("environment bounds dimension mismatch: low has %d axes, high has %d", len(low), len(high))
	}
	var errs error
	for i := range low {
		if low[i] >= high[i] {
			errs = multierr.Append(errs, errors.Errorf("axis %d: low %v must be less than high %v", i, low[i], high[i]))
		}
	}
	for i, obs := range obstacles {
		if obs == nil {
			errs = multierr.Append(errs, errors.Errorf("obstacle %d is nil", i))
			continue
		}
		if obs.Dimension() != len(low) {
			errs = multierr.Append(errs, errors.Errorf("obstacle %d has %d axes, environment has %d", i, obs.Dimension(), len(low)))
		}
	}
	if errs != nil {
		return nil, errs
	}
	return &Environment{
		low:       spatialmath.Clone(low),
		high:      spatialmath.Clone(high),
		obstacles: append([]spatialmath.Geometry(nil), obstacles...),
	}, nil
}

// Low returns the lowest corner of the bounding box.
func (env *Environment) Low() []float64 {
	return env.low
}

// High returns the highest corner of the bounding box.
func (env *Environment) High() []float64 {
	return env.high
}

// Obstacles returns the obstacles of the environment.
func (env *Environment) Obstacles() []spatialmath.Geometry {
	return env.obstacles
}

// Dimension returns the number of axes of the configuration space.
func (env *Environment) Dimension() int {
	return len(env.low)
}

// IsInsideObstacle returns true if the position lies in any of the obstacles.
func (env *Environment) IsInsideObstacle(position []float64) bool {
	for _, obs := range env.obstacles {
		if obs.IsInside(position) {
			return true
		}
	}
	return false
}

// InBounds returns true if the position is within the bounding box, boundary included.
func (env *Environment) InBounds(position []float64) bool {
	for i := range env.low {
		if position[i] < env.low[i] || env.high[i] < position[i] {
			return false
		}
	}
	return true
}

// IsFeasible is the planners' feasibility predicate: a position is feasible when it is not
// inside any obstacle.
func (env *Environment) IsFeasible(position []float64) bool {
	return !env.IsInsideObstacle(position)
}
