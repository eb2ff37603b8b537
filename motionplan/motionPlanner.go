// Package motionplan implements sampling-based tree planners (RRT, RRT* and Informed RRT*)
// searching a bounded D-dimensional configuration space for a feasible path from a start to a goal.
package motionplan

import (
	"context"
	"math/rand"

	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"go.viam.com/rrtplan/logging"
	"go.viam.com/rrtplan/spatialmath"
)

// MotionPlanner provides an interface to path planning methods.
type MotionPlanner interface {
	// Plan grows a tree from the start and returns the path to the goal. An empty path with a nil
	// error means no path was found within the iteration budget. A non-nil error is only returned
	// if the context is cancelled.
	Plan(ctx context.Context) (Path, error)

	// Tree returns a copy of the tree left by the last call to Plan.
	Tree() Snapshot

	// Snapshots returns the trees recorded during the last call to Plan if snapshots are enabled.
	Snapshots() []Snapshot

	// Stats returns counters about the last call to Plan.
	Stats() PlanStats

	Algorithm() Algorithm
}

// Algorithm names a planner implementation.
type Algorithm string

// The supported planning algorithms.
const (
	RRT             Algorithm = "rrt"
	RRTStar         Algorithm = "rrt_star"
	InformedRRTStar Algorithm = "informed_rrt_star"
)

// Algorithms returns the supported planning algorithms.
func Algorithms() []Algorithm {
	return []Algorithm{RRT, RRTStar, InformedRRTStar}
}

// FeasibilityChecker decides whether a position may be occupied by the tree. Implementations
// must be free of side effects.
type FeasibilityChecker interface {
	IsFeasible(position []float64) bool
}

// FeasibilityFunc adapts an ordinary function to a FeasibilityChecker.
type FeasibilityFunc func(position []float64) bool

// IsFeasible calls f(position).
func (f FeasibilityFunc) IsFeasible(position []float64) bool {
	return f(position)
}

// Problem is a single planning query: where to start, where to go and the box to sample in.
type Problem struct {
	Start []float64 `json:"start"`
	Goal  []float64 `json:"goal"`
	Low   []float64 `json:"low"`
	High  []float64 `json:"high"`
}

// Dimension returns the number of axes of the configuration space.
func (p *Problem) Dimension() int {
	return len(p.Start)
}

// Validate returns every problem with the query combined into one error.
func (p *Problem) Validate() error {
	dim := len(p.Start)
	if dim == 0 {
		return errors.New("start must have at least one dimension")
	}
	var errs error
	for _, field := range []struct {
		name string
		v    []float64
	}{{"goal", p.Goal}, {"low", p.Low}, {"high", p.High}} {
		if len(field.v) != dim {
			errs = multierr.Append(errs, errors.Errorf("%s has %d axes, start has %d", field.name, len(field.v), dim))
		}
	}
	if errs != nil {
		return errs
	}
	if !spatialmath.IsFinite(p.Start) || !spatialmath.IsFinite(p.Goal) {
		errs = multierr.Append(errs, errors.New("start and goal must be finite"))
	}
	if !spatialmath.IsFinite(p.Low) || !spatialmath.IsFinite(p.High) {
		errs = multierr.Append(errs, errors.New("low and high bounds must be finite"))
	}
	for i := range p.Low {
		if !(p.Low[i] < p.High[i]) {
			errs = multierr.Append(errs, errors.Errorf("axis %d: low %v must be less than high %v", i, p.Low[i], p.High[i]))
		}
	}
	return errs
}

// PlanStats are counters describing one call to Plan.
type PlanStats struct {
	Iterations int `json:"iterations"`
	Nodes      int `json:"nodes"`
	// Iteration at which the goal was first connected, 0 if it never was.
	GoalReachedAt int     `json:"goal_reached_at"`
	Rewires       int     `json:"rewires"`
	Cost          float64 `json:"cost"`
}

// NewMotionPlanner creates the planner implementing alg.
func NewMotionPlanner(
	alg Algorithm,
	problem *Problem,
	checker FeasibilityChecker,
	opts *PlannerOptions,
	logger logging.Logger,
) (MotionPlanner, error) {
	if opts == nil {
		opts = NewBasicPlannerOptions()
	}
	//nolint:gosec
	return NewMotionPlannerWithSeed(alg, problem, checker, opts, rand.New(rand.NewSource(opts.Seed)), logger)
}

// NewMotionPlannerWithSeed creates the planner implementing alg with a user specified random source.
func NewMotionPlannerWithSeed(
	alg Algorithm,
	problem *Problem,
	checker FeasibilityChecker,
	opts *PlannerOptions,
	seed *rand.Rand,
	logger logging.Logger,
) (MotionPlanner, error) {
	switch alg {
	case RRT:
		return NewRRTMotionPlannerWithSeed(problem, checker, opts, seed, logger)
	case RRTStar:
		return NewRRTStarMotionPlannerWithSeed(problem, checker, opts, seed, logger)
	case InformedRRTStar:
		return NewInformedRRTStarMotionPlannerWithSeed(problem, checker, opts, seed, logger)
	default:
		return nil, NewUnknownAlgorithmError(alg)
	}
}
