// Package config reads planning scenarios from JSON files.
package config

import (
	"math/rand"

	"github.com/pkg/errors"
	"go.viam.com/utils"

	"go.viam.com/rrtplan/environment"
	"go.viam.com/rrtplan/logging"
	"go.viam.com/rrtplan/motionplan"
	"go.viam.com/rrtplan/visualize"
)

// DefaultAlgorithm is used when a scenario does not name one.
const DefaultAlgorithm = motionplan.RRTStar

// A Scenario describes a planning problem: the environment, where to start and stop, the
// algorithm to use and its attributes.
type Scenario struct {
	ConfigFilePath string `json:"-"`

	Start       []float64            `json:"start"`
	Goal        []float64            `json:"goal"`
	Algorithm   motionplan.Algorithm `json:"algorithm,omitempty"`
	Environment *environment.Config  `json:"environment"`
	LogLevel    string               `json:"log_level,omitempty"`

	// Planner options, decoded onto the defaults by DecodePlannerOptions.
	Attributes AttributeMap `json:"attributes,omitempty"`

	// Animation options, decoded onto the defaults by DecodeAnimationOptions.
	Animation AttributeMap `json:"animation,omitempty"`
}

// Validate ensures all parts of the scenario are valid.
func (s *Scenario) Validate(path string) error {
	if len(s.Start) == 0 {
		return utils.NewConfigValidationFieldRequiredError(path, "start")
	}
	if len(s.Goal) == 0 {
		return utils.NewConfigValidationFieldRequiredError(path, "goal")
	}
	if s.Environment == nil {
		return utils.NewConfigValidationFieldRequiredError(path, "environment")
	}
	if err := s.Environment.Validate(path + ".environment"); err != nil {
		return err
	}
	if len(s.Goal) != len(s.Start) || len(s.Environment.Low) != len(s.Start) {
		return utils.NewConfigValidationError(path, errors.Errorf(
			"start, goal and environment bounds must have the same dimension, got %d, %d and %d",
			len(s.Start), len(s.Goal), len(s.Environment.Low),
		))
	}
	if s.Algorithm != "" {
		known := false
		for _, alg := range motionplan.Algorithms() {
			known = known || alg == s.Algorithm
		}
		if !known {
			return utils.NewConfigValidationError(path, motionplan.NewUnknownAlgorithmError(s.Algorithm))
		}
	}
	if s.LogLevel != "" {
		if _, err := logging.LevelFromString(s.LogLevel); err != nil {
			return utils.NewConfigValidationError(path, err)
		}
	}
	if _, err := DecodePlannerOptions(s.Attributes); err != nil {
		return utils.NewConfigValidationError(path+".attributes", err)
	}
	if _, err := DecodeAnimationOptions(s.Animation); err != nil {
		return utils.NewConfigValidationError(path+".animation", err)
	}
	return nil
}

// AlgorithmOrDefault returns the scenario's algorithm, DefaultAlgorithm if none is set.
func (s *Scenario) AlgorithmOrDefault() motionplan.Algorithm {
	if s.Algorithm == "" {
		return DefaultAlgorithm
	}
	return s.Algorithm
}

// Problem returns the planning query of the scenario inside env.
func (s *Scenario) Problem(env *environment.Environment) *motionplan.Problem {
	return &motionplan.Problem{Start: s.Start, Goal: s.Goal, Low: env.Low(), High: env.High()}
}

// NewMotionPlanner builds the scenario's environment and a planner for it using the given
// random source, or one seeded from the attributes if seed is nil. The planner logs through a
// sublogger named after its algorithm.
func (s *Scenario) NewMotionPlanner(
	seed *rand.Rand,
	logger logging.Logger,
) (motionplan.MotionPlanner, *environment.Environment, error) {
	env, err := s.Environment.Build()
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to build environment")
	}
	opts, err := DecodePlannerOptions(s.Attributes)
	if err != nil {
		return nil, nil, err
	}
	if seed == nil {
		//nolint:gosec
		seed = rand.New(rand.NewSource(opts.Seed))
	}
	alg := s.AlgorithmOrDefault()
	if logger != nil {
		logger = logger.Sublogger(string(alg))
	}
	mp, err := motionplan.NewMotionPlannerWithSeed(alg, s.Problem(env), env, opts, seed, logger)
	if err != nil {
		return nil, nil, err
	}
	return mp, env, nil
}

// AnimationOptions returns the scenario's animation options overlaid onto the defaults.
func (s *Scenario) AnimationOptions() (*visualize.AnimationOptions, error) {
	return DecodeAnimationOptions(s.Animation)
}

// ExampleScenario returns a scenario crossing the example 2D environment from corner to corner.
func ExampleScenario() *Scenario {
	return &Scenario{
		Start:       []float64{1, 1},
		Goal:        []float64{48, 25},
		Algorithm:   motionplan.InformedRRTStar,
		Environment: environment.ExampleConfig2D(),
		Attributes: AttributeMap{
			"goal_sample_rate": 0.2,
			"step_size":        2.0,
			"max_iter":         2000,
		},
	}
}
