package motionplan

import (
	"context"
	"math"
	"math/rand"

	"go.viam.com/rrtplan/logging"
)

// Number of ellipsoid draws tried before falling back to a uniform sample in the bounds.
const maxInformedSampleAttempts = 100

type informedRRTStarMotionPlanner struct {
	*rrtStarMotionPlanner
	informed *informedSampler

	// cost of the best path found so far, +Inf until the goal is connected
	costMax float64
}

// NewInformedRRTStarMotionPlanner creates an Informed RRT* planner seeded from opts.Seed.
func NewInformedRRTStarMotionPlanner(
	problem *Problem,
	checker FeasibilityChecker,
	opts *PlannerOptions,
	logger logging.Logger,
) (MotionPlanner, error) {
	return NewInformedRRTStarMotionPlannerWithSeed(problem, checker, opts, nil, logger)
}

// NewInformedRRTStarMotionPlannerWithSeed creates an Informed RRT* planner with a user specified
// random source.
func NewInformedRRTStarMotionPlannerWithSeed(
	problem *Problem,
	checker FeasibilityChecker,
	opts *PlannerOptions,
	seed *rand.Rand,
	logger logging.Logger,
) (MotionPlanner, error) {
	p, err := newPlanner(problem, checker, opts, seed, logger)
	if err != nil {
		return nil, err
	}
	informed, err := newInformedSampler(p.randseed, p.problem.Start, p.problem.Goal)
	if err != nil {
		return nil, err
	}
	p.logger.Debugw("created planner",
		"algorithm", InformedRRTStar,
		"step_size", p.opts.StepSize,
		"max_iter", p.opts.MaxIter,
		"cost_min", informed.costMin,
	)
	return &informedRRTStarMotionPlanner{
		rrtStarMotionPlanner: &rrtStarMotionPlanner{planner: p},
		informed:             informed,
		costMax:              math.Inf(1),
	}, nil
}

func (mp *informedRRTStarMotionPlanner) Algorithm() Algorithm {
	return InformedRRTStar
}

// Plan runs RRT*, switching from uniform sampling to sampling the ellipsoid of points that can
// still improve on the best path as soon as the goal is connected.
func (mp *informedRRTStarMotionPlanner) Plan(ctx context.Context) (Path, error) {
	mp.costMax = math.Inf(1)
	return mp.optimize(ctx, mp.sample, mp.updateCostMax)
}

func (mp *informedRRTStarMotionPlanner) sample() []float64 {
	if math.IsInf(mp.costMax, 1) {
		return mp.sampler.sample()
	}
	for attempt := 0; attempt < maxInformedSampleAttempts; attempt++ {
		if position := mp.informed.sample(mp.costMax); mp.inBounds(position) {
			return position
		}
	}
	// the ellipsoid barely overlaps the bounds
	return mp.sampler.uniform()
}

func (mp *informedRRTStarMotionPlanner) inBounds(position []float64) bool {
	for i, x := range position {
		if x < mp.problem.Low[i] || x > mp.problem.High[i] {
			return false
		}
	}
	return true
}

func (mp *informedRRTStarMotionPlanner) updateCostMax(iteration, goalIdx int) {
	if goalIdx == NoParent {
		return
	}
	cost := mp.tree.cost(goalIdx)
	if cost >= mp.costMax {
		return
	}
	if !math.IsInf(mp.costMax, 1) {
		mp.logger.Debugw("path improved", "iteration", iteration, "cost", cost, "previous", mp.costMax)
	}
	mp.costMax = cost
}
