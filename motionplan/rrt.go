package motionplan

import (
	"context"
	"math/rand"

	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"go.viam.com/rrtplan/logging"
	"go.viam.com/rrtplan/spatialmath"
)

// planner holds what every tree planner shares: the query, the options, the random source and
// the tree of the current (or last) call to Plan.
type planner struct {
	problem  *Problem
	checker  FeasibilityChecker
	opts     *PlannerOptions
	logger   logging.Logger
	randseed *rand.Rand
	sampler  *uniformSampler

	tree      *tree
	snapshots []Snapshot
	stats     PlanStats
}

func newPlanner(
	problem *Problem,
	checker FeasibilityChecker,
	opts *PlannerOptions,
	seed *rand.Rand,
	logger logging.Logger,
) (*planner, error) {
	if opts == nil {
		opts = NewBasicPlannerOptions()
	}
	if problem == nil {
		return nil, newInvalidConfigError(errors.New("problem must not be nil"))
	}
	errs := multierr.Combine(problem.Validate(), opts.validate())
	if checker == nil {
		errs = multierr.Append(errs, errNilFeasibilityChecker)
	}
	if errs != nil {
		return nil, newInvalidConfigError(errs)
	}
	if seed == nil {
		//nolint:gosec
		seed = rand.New(rand.NewSource(opts.Seed))
	}
	if logger == nil {
		logger = logging.NewBlankLogger("motionplan")
	}
	p := &Problem{
		Start: spatialmath.Clone(problem.Start),
		Goal:  spatialmath.Clone(problem.Goal),
		Low:   spatialmath.Clone(problem.Low),
		High:  spatialmath.Clone(problem.High),
	}
	optsCopy := *opts
	return &planner{
		problem:  p,
		checker:  checker,
		opts:     &optsCopy,
		logger:   logger,
		randseed: seed,
		sampler: &uniformSampler{
			randseed:       seed,
			low:            p.Low,
			high:           p.High,
			goal:           p.Goal,
			goalSampleRate: opts.GoalSampleRate,
		},
	}, nil
}

// reset discards the tree of a previous call to Plan and plants a new one at the start.
func (mp *planner) reset() {
	mp.tree = newTree(mp.problem.Start)
	mp.snapshots = nil
	mp.stats = PlanStats{}
}

// steer returns the point to add to the tree when growing from the node at idx toward target:
// target itself if it is within one step, else the point exactly one step toward it. A target
// coinciding with the node is returned unchanged.
func (mp *planner) steer(idx int, target []float64) []float64 {
	from := mp.tree.position(idx)
	if spatialmath.Distance(from, target) > mp.opts.StepSize {
		return spatialmath.Steer(from, target, mp.opts.StepSize)
	}
	return target
}

func (mp *planner) isNearGoal(position []float64) bool {
	return spatialmath.Distance(position, mp.problem.Goal) <= mp.opts.StepSize
}

// trivialPath handles the degenerate queries shared by all planners. It returns true if Plan
// must return immediately with the given path.
func (mp *planner) trivialPath() (Path, bool) {
	if mp.opts.MaxIter == 0 {
		return Path{}, true
	}
	if !mp.checker.IsFeasible(mp.problem.Goal) {
		mp.logger.Warnw("goal is not feasible, no path can reach it", "goal", mp.problem.Goal)
		return Path{}, true
	}
	if spatialmath.Equal(mp.problem.Start, mp.problem.Goal) {
		goalIdx := mp.tree.add(spatialmath.Clone(mp.problem.Goal), 0)
		mp.stats.GoalReachedAt = 1
		mp.stats.Iterations = 1
		mp.recordSnapshot()
		return mp.tree.pathTo(goalIdx), true
	}
	return nil, false
}

func (mp *planner) recordSnapshot() {
	if mp.opts.EnableSnapshots {
		mp.snapshots = append(mp.snapshots, mp.tree.states())
	}
}

func (mp *planner) finish(path Path) Path {
	mp.stats.Nodes = mp.tree.size()
	mp.stats.Cost = path.Cost()
	if path.Empty() {
		mp.logger.Infow("no path found", "iterations", mp.stats.Iterations, "nodes", mp.stats.Nodes)
	} else {
		mp.logger.Infow("path found",
			"iterations", mp.stats.Iterations,
			"nodes", mp.stats.Nodes,
			"waypoints", len(path),
			"cost", mp.stats.Cost,
		)
	}
	return path
}

func (mp *planner) Tree() Snapshot {
	if mp.tree == nil {
		return nil
	}
	return mp.tree.states()
}

func (mp *planner) Snapshots() []Snapshot {
	return mp.snapshots
}

func (mp *planner) Stats() PlanStats {
	return mp.stats
}

type rrtMotionPlanner struct {
	*planner
}

// NewRRTMotionPlanner creates a basic RRT planner seeded from opts.Seed.
func NewRRTMotionPlanner(
	problem *Problem,
	checker FeasibilityChecker,
	opts *PlannerOptions,
	logger logging.Logger,
) (MotionPlanner, error) {
	return NewRRTMotionPlannerWithSeed(problem, checker, opts, nil, logger)
}

// NewRRTMotionPlannerWithSeed creates a basic RRT planner with a user specified random source.
func NewRRTMotionPlannerWithSeed(
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
	p.logger.Debugw("created planner", "algorithm", RRT, "step_size", p.opts.StepSize, "max_iter", p.opts.MaxIter)
	return &rrtMotionPlanner{planner: p}, nil
}

func (mp *rrtMotionPlanner) Algorithm() Algorithm {
	return RRT
}

// Plan grows the tree greedily toward samples and stops as soon as a node lands within one step
// of the goal.
func (mp *rrtMotionPlanner) Plan(ctx context.Context) (Path, error) {
	mp.reset()
	if path, done := mp.trivialPath(); done {
		return mp.finish(path), nil
	}

	logIteration := mp.opts.logIteration()
	for i := 1; i <= mp.opts.MaxIter; i++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		mp.stats.Iterations = i
		if logIteration > 0 && i%logIteration == 0 {
			mp.logger.Debugf("RRT progress: %d%%\tnodes: %d", 100*i/mp.opts.MaxIter, mp.tree.size())
		}

		target := mp.sampler.sample()
		nearest := mp.tree.nearestNeighbor(target)
		candidate := mp.steer(nearest, target)
		if !mp.checker.IsFeasible(candidate) {
			continue
		}

		newIdx := mp.tree.add(candidate, nearest)
		if mp.isNearGoal(candidate) {
			goalIdx := mp.tree.add(spatialmath.Clone(mp.problem.Goal), newIdx)
			mp.stats.GoalReachedAt = i
			mp.recordSnapshot()
			return mp.finish(mp.tree.pathTo(goalIdx)), nil
		}
		mp.recordSnapshot()
	}
	return mp.finish(Path{}), nil
}
