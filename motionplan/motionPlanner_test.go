package motionplan

import (
	"context"
	"math"
	"math/rand"
	"testing"

	"github.com/pkg/errors"
	"go.viam.com/test"

	"go.viam.com/rrtplan/environment"
	"go.viam.com/rrtplan/logging"
	"go.viam.com/rrtplan/spatialmath"
)

type seededPlannerConstructor func(
	problem *Problem,
	checker FeasibilityChecker,
	opts *PlannerOptions,
	seed *rand.Rand,
	logger logging.Logger,
) (MotionPlanner, error)

var plannerConstructors = map[Algorithm]seededPlannerConstructor{
	RRT:             NewRRTMotionPlannerWithSeed,
	RRTStar:         NewRRTStarMotionPlannerWithSeed,
	InformedRRTStar: NewInformedRRTStarMotionPlannerWithSeed,
}

var freeSpace = FeasibilityFunc(func([]float64) bool { return true })

// checkTree asserts that nodes form a single tree rooted at node 0 in which every cost is its
// parent's cost plus the edge length, and, if checker is not nil, that every node is feasible.
func checkTree(t *testing.T, nodes Snapshot, checker FeasibilityChecker) {
	t.Helper()
	test.That(t, nodes, test.ShouldNotBeEmpty)
	test.That(t, nodes[0].Parent, test.ShouldEqual, NoParent)
	test.That(t, nodes[0].Cost, test.ShouldEqual, 0.)

	children := make([][]int, len(nodes))
	for i := 1; i < len(nodes); i++ {
		n := nodes[i]
		if n.Parent < 0 || n.Parent >= len(nodes) || n.Parent == i {
			t.Fatalf("node %d has invalid parent %d", i, n.Parent)
		}
		parent := nodes[n.Parent]
		test.That(t, n.Cost, test.ShouldAlmostEqual, parent.Cost+spatialmath.Distance(parent.Position, n.Position), 1e-6)
		children[n.Parent] = append(children[n.Parent], i)
	}

	// every node hangs off the root exactly once, so there is no cycle
	seen := make([]bool, len(nodes))
	stack := []int{0}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		test.That(t, seen[cur], test.ShouldBeFalse)
		seen[cur] = true
		stack = append(stack, children[cur]...)
	}
	for i, ok := range seen {
		if !ok {
			t.Fatalf("node %d is not reachable from the root", i)
		}
	}

	if checker != nil {
		for i, n := range nodes {
			if !checker.IsFeasible(n.Position) {
				t.Fatalf("node %d at %v is not feasible", i, n.Position)
			}
		}
	}
}

// checkPath asserts the endpoints of a non-empty path and that no edge is longer than step.
func checkPath(t *testing.T, path Path, problem *Problem, step float64) {
	t.Helper()
	test.That(t, path.Empty(), test.ShouldBeFalse)
	test.That(t, path[0], test.ShouldResemble, problem.Start)
	test.That(t, path[len(path)-1], test.ShouldResemble, problem.Goal)
	test.That(t, path.MaxEdgeLength(), test.ShouldBeLessThanOrEqualTo, step+1e-9)
}

func straightLineProblem() *Problem {
	return &Problem{
		Start: []float64{0, 0},
		Goal:  []float64{10, 0},
		Low:   []float64{-2, -5},
		High:  []float64{12, 5},
	}
}

func TestEmptySpace(t *testing.T) {
	for alg, constructor := range plannerConstructors {
		t.Run(string(alg), func(t *testing.T) {
			opts := NewBasicPlannerOptions()
			opts.StepSize = 1
			opts.MaxIter = 5000
			problem := straightLineProblem()

			//nolint:gosec
			mp, err := constructor(problem, freeSpace, opts, rand.New(rand.NewSource(1)), logging.NewTestLogger(t))
			test.That(t, err, test.ShouldBeNil)
			test.That(t, mp.Algorithm(), test.ShouldEqual, alg)

			path, err := mp.Plan(context.Background())
			test.That(t, err, test.ShouldBeNil)
			checkPath(t, path, problem, opts.StepSize)
			checkTree(t, mp.Tree(), freeSpace)

			stats := mp.Stats()
			test.That(t, stats.GoalReachedAt, test.ShouldBeGreaterThan, 0)
			test.That(t, stats.Nodes, test.ShouldEqual, len(mp.Tree()))
			test.That(t, stats.Cost, test.ShouldAlmostEqual, path.Cost())
			test.That(t, path.Cost(), test.ShouldBeGreaterThanOrEqualTo, 10.-1e-9)
		})
	}
}

func TestBlockedStraightLine(t *testing.T) {
	box, err := spatialmath.NewBox([]float64{5, 0}, []float64{1, 1}, "block")
	test.That(t, err, test.ShouldBeNil)
	problem := straightLineProblem()
	env, err := environment.NewEnvironment(problem.Low, problem.High, []spatialmath.Geometry{box})
	test.That(t, err, test.ShouldBeNil)

	for alg, constructor := range plannerConstructors {
		t.Run(string(alg), func(t *testing.T) {
			opts := NewBasicPlannerOptions()
			opts.StepSize = 1
			opts.MaxIter = 5000

			//nolint:gosec
			mp, err := constructor(problem, env, opts, rand.New(rand.NewSource(2)), logging.NewTestLogger(t))
			test.That(t, err, test.ShouldBeNil)
			path, err := mp.Plan(context.Background())
			test.That(t, err, test.ShouldBeNil)
			checkPath(t, path, problem, opts.StepSize)
			checkTree(t, mp.Tree(), env)

			for _, waypoint := range path {
				inBlock := waypoint[0] >= 4 && waypoint[0] <= 6 && waypoint[1] >= -1 && waypoint[1] <= 1
				test.That(t, inBlock, test.ShouldBeFalse)
			}
		})
	}
}

func TestZeroIterations(t *testing.T) {
	for alg, constructor := range plannerConstructors {
		t.Run(string(alg), func(t *testing.T) {
			opts := NewBasicPlannerOptions()
			opts.MaxIter = 0
			//nolint:gosec
			mp, err := constructor(straightLineProblem(), freeSpace, opts, rand.New(rand.NewSource(1)), nil)
			test.That(t, err, test.ShouldBeNil)
			path, err := mp.Plan(context.Background())
			test.That(t, err, test.ShouldBeNil)
			test.That(t, path, test.ShouldBeEmpty)
			test.That(t, mp.Tree(), test.ShouldHaveLength, 1)
			test.That(t, mp.Stats().GoalReachedAt, test.ShouldEqual, 0)
		})
	}
}

func TestStartIsGoal(t *testing.T) {
	for alg, constructor := range plannerConstructors {
		t.Run(string(alg), func(t *testing.T) {
			problem := straightLineProblem()
			problem.Goal = []float64{0, 0}
			//nolint:gosec
			mp, err := constructor(problem, freeSpace, nil, rand.New(rand.NewSource(1)), nil)
			test.That(t, err, test.ShouldBeNil)
			path, err := mp.Plan(context.Background())
			test.That(t, err, test.ShouldBeNil)
			test.That(t, path, test.ShouldResemble, Path{{0, 0}, {0, 0}})
			test.That(t, path.Cost(), test.ShouldEqual, 0.)
			checkTree(t, mp.Tree(), freeSpace)
		})
	}
}

func TestInfeasibleGoal(t *testing.T) {
	problem := straightLineProblem()
	walled := FeasibilityFunc(func(p []float64) bool { return spatialmath.Distance(p, problem.Goal) > 0.5 })
	for alg, constructor := range plannerConstructors {
		t.Run(string(alg), func(t *testing.T) {
			logger, logs := logging.NewObservedTestLogger(t)
			//nolint:gosec
			mp, err := constructor(problem, walled, nil, rand.New(rand.NewSource(1)), logger)
			test.That(t, err, test.ShouldBeNil)
			path, err := mp.Plan(context.Background())
			test.That(t, err, test.ShouldBeNil)
			test.That(t, path, test.ShouldBeEmpty)
			test.That(t, logs.FilterMessageSnippet("goal is not feasible").Len(), test.ShouldEqual, 1)
		})
	}
}

func TestNoPathFound(t *testing.T) {
	// the start is enclosed by a ring no step can cross
	problem := straightLineProblem()
	enclosed := FeasibilityFunc(func(p []float64) bool {
		d := spatialmath.Norm(p)
		return d < 1 || d > 5
	})
	for alg, constructor := range plannerConstructors {
		t.Run(string(alg), func(t *testing.T) {
			opts := NewBasicPlannerOptions()
			opts.StepSize = 1
			opts.MaxIter = 300
			//nolint:gosec
			mp, err := constructor(problem, enclosed, opts, rand.New(rand.NewSource(1)), logging.NewTestLogger(t))
			test.That(t, err, test.ShouldBeNil)
			path, err := mp.Plan(context.Background())
			test.That(t, err, test.ShouldBeNil)
			test.That(t, path.Empty(), test.ShouldBeTrue)
			test.That(t, mp.Stats().Iterations, test.ShouldEqual, opts.MaxIter)
			checkTree(t, mp.Tree(), enclosed)
		})
	}
}

func TestDeterminism(t *testing.T) {
	env := environment.NewExample2D()
	problem := &Problem{Start: []float64{1, 1}, Goal: []float64{48, 25}, Low: env.Low(), High: env.High()}
	for alg, constructor := range plannerConstructors {
		t.Run(string(alg), func(t *testing.T) {
			opts := NewBasicPlannerOptions()
			opts.MaxIter = 800
			run := func() (Path, Snapshot) {
				//nolint:gosec
				mp, err := constructor(problem, env, opts, rand.New(rand.NewSource(42)), nil)
				test.That(t, err, test.ShouldBeNil)
				path, err := mp.Plan(context.Background())
				test.That(t, err, test.ShouldBeNil)
				return path, mp.Tree()
			}
			path1, tree1 := run()
			path2, tree2 := run()
			test.That(t, path2, test.ShouldResemble, path1)
			test.That(t, tree2, test.ShouldResemble, tree1)
		})
	}
}

func TestPlanResetsTree(t *testing.T) {
	opts := NewBasicPlannerOptions()
	opts.StepSize = 1
	opts.MaxIter = 500
	mp, err := NewRRTStarMotionPlanner(straightLineProblem(), freeSpace, opts, nil)
	test.That(t, err, test.ShouldBeNil)
	_, err = mp.Plan(context.Background())
	test.That(t, err, test.ShouldBeNil)
	first := mp.Stats()

	_, err = mp.Plan(context.Background())
	test.That(t, err, test.ShouldBeNil)
	test.That(t, mp.Stats().Iterations, test.ShouldEqual, first.Iterations)
	test.That(t, len(mp.Tree()), test.ShouldEqual, mp.Stats().Nodes)
	checkTree(t, mp.Tree(), freeSpace)
}

func TestPlanCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	for alg, constructor := range plannerConstructors {
		t.Run(string(alg), func(t *testing.T) {
			//nolint:gosec
			mp, err := constructor(straightLineProblem(), freeSpace, nil, rand.New(rand.NewSource(1)), nil)
			test.That(t, err, test.ShouldBeNil)
			path, err := mp.Plan(ctx)
			test.That(t, errors.Is(err, context.Canceled), test.ShouldBeTrue)
			test.That(t, path, test.ShouldBeNil)
		})
	}
}

func TestSnapshots(t *testing.T) {
	for alg, constructor := range plannerConstructors {
		t.Run(string(alg), func(t *testing.T) {
			opts := NewBasicPlannerOptions()
			opts.StepSize = 1
			opts.MaxIter = 300
			opts.EnableSnapshots = true
			//nolint:gosec
			mp, err := constructor(straightLineProblem(), freeSpace, opts, rand.New(rand.NewSource(1)), nil)
			test.That(t, err, test.ShouldBeNil)
			_, err = mp.Plan(context.Background())
			test.That(t, err, test.ShouldBeNil)

			snapshots := mp.Snapshots()
			test.That(t, snapshots, test.ShouldNotBeEmpty)
			test.That(t, snapshots[len(snapshots)-1], test.ShouldResemble, mp.Tree())
			for i := 1; i < len(snapshots); i++ {
				test.That(t, len(snapshots[i]), test.ShouldBeGreaterThan, len(snapshots[i-1]))
			}
		})
	}

	t.Run("disabled", func(t *testing.T) {
		mp, err := NewRRTMotionPlanner(straightLineProblem(), freeSpace, nil, nil)
		test.That(t, err, test.ShouldBeNil)
		_, err = mp.Plan(context.Background())
		test.That(t, err, test.ShouldBeNil)
		test.That(t, mp.Snapshots(), test.ShouldBeEmpty)
	})
}

func TestNewMotionPlanner(t *testing.T) {
	for _, alg := range Algorithms() {
		mp, err := NewMotionPlanner(alg, straightLineProblem(), freeSpace, nil, nil)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, mp.Algorithm(), test.ShouldEqual, alg)
	}

	_, err := NewMotionPlanner("prm", straightLineProblem(), freeSpace, nil, nil)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, errors.Is(err, ErrInvalidConfig), test.ShouldBeTrue)
	test.That(t, err.Error(), test.ShouldContainSubstring, "prm")
}

func TestInvalidConfig(t *testing.T) {
	valid := straightLineProblem()
	testCases := []struct {
		name    string
		problem *Problem
		checker FeasibilityChecker
		mutate  func(opts *PlannerOptions)
		msg     string
	}{
		{"nil problem", nil, freeSpace, nil, "problem must not be nil"},
		{"nil checker", valid, nil, nil, "feasibility checker"},
		{"zero step", valid, freeSpace, func(opts *PlannerOptions) { opts.StepSize = 0 }, "step_size"},
		{"negative step", valid, freeSpace, func(opts *PlannerOptions) { opts.StepSize = -1 }, "step_size"},
		{"negative budget", valid, freeSpace, func(opts *PlannerOptions) { opts.MaxIter = -1 }, "max_iter"},
		{"goal rate", valid, freeSpace, func(opts *PlannerOptions) { opts.GoalSampleRate = 1.5 }, "goal_sample_rate"},
		{
			"empty bounds",
			&Problem{Start: []float64{0, 0}, Goal: []float64{1, 1}, Low: []float64{0, 3}, High: []float64{5, 3}},
			freeSpace, nil, "axis 1",
		},
		{
			"dimension mismatch",
			&Problem{Start: []float64{0, 0}, Goal: []float64{1, 1, 1}, Low: []float64{0, 0}, High: []float64{5, 5}},
			freeSpace, nil, "goal has 3 axes",
		},
		{
			"unbounded axis",
			&Problem{Start: []float64{0, 0}, Goal: []float64{1, 1}, Low: []float64{math.Inf(-1), -5}, High: []float64{5, 5}},
			freeSpace, nil, "bounds must be finite",
		},
		{"zero dimension", &Problem{}, freeSpace, nil, "at least one dimension"},
	}
	for alg, constructor := range plannerConstructors {
		for _, tc := range testCases {
			t.Run(string(alg)+" "+tc.name, func(t *testing.T) {
				opts := NewBasicPlannerOptions()
				if tc.mutate != nil {
					tc.mutate(opts)
				}
				mp, err := constructor(tc.problem, tc.checker, opts, nil, nil)
				test.That(t, mp, test.ShouldBeNil)
				test.That(t, err, test.ShouldNotBeNil)
				test.That(t, errors.Is(err, ErrInvalidConfig), test.ShouldBeTrue)
				test.That(t, err.Error(), test.ShouldContainSubstring, tc.msg)
			})
		}
	}
}
