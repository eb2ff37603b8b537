package motionplan

import (
	"math"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

// default values for planning options.
const (
	// Probability of sampling the goal directly instead of a uniform point.
	defaultGoalSampleRate = 0.2

	// Maximum edge length of the tree, and the neighborhood radius of the optimizing planners.
	defaultStepSize = 2.0

	// Number of planner iterations before giving up.
	defaultPlanIter = 2000

	// Seed of the random source used when none is injected.
	defaultRandomSeed = 1

	// Fraction of the iteration budget between two progress logs.
	defaultLoggingInterval = 0.1
)

// PlannerOptions are a set of options to be passed to a planner which will specify how to solve a motion planning problem.
type PlannerOptions struct {
	// Probability in [0, 1] of sampling the goal directly.
	GoalSampleRate float64 `json:"goal_sample_rate"`

	// Maximum distance between a node and its parent. Must be positive.
	StepSize float64 `json:"step_size"`

	// Number of iterations before giving up. Zero is allowed and yields an empty path.
	MaxIter int `json:"max_iter"`

	// Seed of the planner's random source, used by the constructors that do not take a *rand.Rand.
	Seed int64 `json:"seed"`

	// If set, a copy of the whole tree is recorded after every accepted iteration.
	EnableSnapshots bool `json:"snapshots"`

	// Fraction of MaxIter between progress logs. Zero or less disables progress logging.
	LoggingInterval float64 `json:"logging_interval"`
}

// NewBasicPlannerOptions specifies a set of basic options for the planner.
func NewBasicPlannerOptions() *PlannerOptions {
	return &PlannerOptions{
		GoalSampleRate:  defaultGoalSampleRate,
		StepSize:        defaultStepSize,
		MaxIter:         defaultPlanIter,
		Seed:            defaultRandomSeed,
		LoggingInterval: defaultLoggingInterval,
	}
}

// validate returns every problem with the options combined into one error.
func (opts *PlannerOptions) validate() error {
	var errs error
	if !(opts.StepSize > 0) || math.IsInf(opts.StepSize, 1) {
		errs = multierr.Append(errs, errors.Errorf("step_size must be a positive finite number, got %v", opts.StepSize))
	}
	if opts.MaxIter < 0 {
		errs = multierr.Append(errs, errors.Errorf("max_iter must not be negative, got %d", opts.MaxIter))
	}
	if !(opts.GoalSampleRate >= 0 && opts.GoalSampleRate <= 1) {
		errs = multierr.Append(errs, errors.Errorf("goal_sample_rate must be within [0, 1], got %v", opts.GoalSampleRate))
	}
	return errs
}

// logIteration returns how many iterations pass between progress logs, or 0 to disable them.
func (opts *PlannerOptions) logIteration() int {
	if opts.LoggingInterval <= 0 {
		return 0
	}
	return int(math.Max(1, float64(opts.MaxIter)*opts.LoggingInterval))
}
