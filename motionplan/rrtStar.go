package motionplan

import (
	"context"
	"math/rand"

	"go.viam.com/rrtplan/logging"
	"go.viam.com/rrtplan/spatialmath"
)

type rrtStarMotionPlanner struct {
	*planner
}

// NewRRTStarMotionPlanner creates an RRT* planner seeded from opts.Seed.
func NewRRTStarMotionPlanner(
	problem *Problem,
	checker FeasibilityChecker,
	opts *PlannerOptions,
	logger logging.Logger,
) (MotionPlanner, error) {
	return NewRRTStarMotionPlannerWithSeed(problem, checker, opts, nil, logger)
}

// NewRRTStarMotionPlannerWithSeed creates an RRT* planner with a user specified random source.
func NewRRTStarMotionPlannerWithSeed(
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
	p.logger.Debugw("created planner", "algorithm", RRTStar, "step_size", p.opts.StepSize, "max_iter", p.opts.MaxIter)
	return &rrtStarMotionPlanner{planner: p}, nil
}

func (mp *rrtStarMotionPlanner) Algorithm() Algorithm {
	return RRTStar
}

// Plan spends the whole iteration budget growing and rewiring the tree, so the path to the goal
// keeps getting cheaper after it is first found.
func (mp *rrtStarMotionPlanner) Plan(ctx context.Context) (Path, error) {
	return mp.optimize(ctx, mp.sampler.sample, nil)
}

// optimize runs the RRT* loop. sample draws the point to grow toward on every iteration.
// afterRewire, if not nil, is called at the end of every accepted iteration with the handle of
// the goal node, NoParent while the goal is not connected yet.
func (mp *rrtStarMotionPlanner) optimize(
	ctx context.Context,
	sample func() []float64,
	afterRewire func(iteration, goalIdx int),
) (Path, error) {
	mp.reset()
	if path, done := mp.trivialPath(); done {
		return mp.finish(path), nil
	}

	goalIdx := NoParent
	logIteration := mp.opts.logIteration()
	for i := 1; i <= mp.opts.MaxIter; i++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		mp.stats.Iterations = i
		if logIteration > 0 && i%logIteration == 0 {
			mp.logProgress(i, goalIdx)
		}

		target := sample()
		nearest := mp.tree.nearestNeighbor(target)
		candidate := mp.steer(nearest, target)
		if !mp.checker.IsFeasible(candidate) {
			continue
		}

		// every neighbor is at most one step away, so edges to and from the new node stay short
		near := mp.tree.nearNeighbors(candidate, mp.opts.StepSize)
		parent := mp.tree.minCostParent(candidate, near, nearest)
		newIdx := mp.tree.add(candidate, parent)

		if goalIdx == NoParent && mp.isNearGoal(candidate) {
			goalIdx = mp.tree.add(spatialmath.Clone(mp.problem.Goal), newIdx)
			mp.stats.GoalReachedAt = i
			mp.logger.Debugw("goal connected", "iteration", i, "cost", mp.tree.cost(goalIdx))
		}

		mp.stats.Rewires += mp.tree.rewire(newIdx, near)
		if afterRewire != nil {
			afterRewire(i, goalIdx)
		}
		mp.recordSnapshot()
	}

	if goalIdx == NoParent {
		return mp.finish(Path{}), nil
	}
	return mp.finish(mp.tree.pathTo(goalIdx)), nil
}

func (mp *rrtStarMotionPlanner) logProgress(iteration, goalIdx int) {
	progress := 100 * iteration / mp.opts.MaxIter
	if goalIdx == NoParent {
		mp.logger.Debugf("RRT* progress: %d%%\tnodes: %d", progress, mp.tree.size())
		return
	}
	mp.logger.Debugf("RRT* progress: %d%%\tnodes: %d\tcost: %.4f", progress, mp.tree.size(), mp.tree.cost(goalIdx))
}
