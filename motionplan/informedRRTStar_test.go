package motionplan

import (
	"context"
	"math"
	"math/rand"
	"testing"

	"go.viam.com/test"

	"go.viam.com/rrtplan/environment"
	"go.viam.com/rrtplan/logging"
	"go.viam.com/rrtplan/spatialmath"
)

func newInformedForTest(t *testing.T, problem *Problem, checker FeasibilityChecker, opts *PlannerOptions, logger logging.Logger) *informedRRTStarMotionPlanner {
	t.Helper()
	//nolint:gosec
	mp, err := NewInformedRRTStarMotionPlannerWithSeed(problem, checker, opts, rand.New(rand.NewSource(1)), logger)
	test.That(t, err, test.ShouldBeNil)
	informed, ok := mp.(*informedRRTStarMotionPlanner)
	test.That(t, ok, test.ShouldBeTrue)
	return informed
}

func TestInformedRRTStarExampleEnvironment(t *testing.T) {
	env := environment.NewExample2D()
	problem := &Problem{Start: []float64{1, 1}, Goal: []float64{48, 25}, Low: env.Low(), High: env.High()}
	opts := NewBasicPlannerOptions()
	opts.MaxIter = 3000

	logger, logs := logging.NewObservedTestLogger(t)
	mp := newInformedForTest(t, problem, env, opts, logger)
	path, err := mp.Plan(context.Background())
	test.That(t, err, test.ShouldBeNil)
	checkPath(t, path, problem, opts.StepSize)
	checkTree(t, mp.Tree(), env)

	// the best cost bounds the sampling ellipsoid and is never below the straight line
	test.That(t, mp.costMax, test.ShouldAlmostEqual, path.Cost(), 1e-9)
	test.That(t, mp.costMax, test.ShouldBeGreaterThanOrEqualTo, spatialmath.Distance(problem.Start, problem.Goal))
	test.That(t, logs.FilterMessageSnippet("goal connected").Len(), test.ShouldEqual, 1)
}

func TestInformedRRTStarSamplesInsideEllipsoid(t *testing.T) {
	problem := straightLineProblem()
	// wide bounds so that no draw needs to be retried for leaving them
	problem.Low = []float64{-100, -100}
	problem.High = []float64{100, 100}
	opts := NewBasicPlannerOptions()
	opts.StepSize = 1
	mp := newInformedForTest(t, problem, freeSpace, opts, nil)

	// before the goal is connected samples come from the bounds
	test.That(t, math.IsInf(mp.costMax, 1), test.ShouldBeTrue)

	for _, costMax := range []float64{20, 12, 10.5, 10} {
		mp.costMax = costMax
		for i := 0; i < 300; i++ {
			p := mp.sample()
			sum := spatialmath.Distance(p, problem.Start) + spatialmath.Distance(p, problem.Goal)
			test.That(t, sum, test.ShouldBeLessThanOrEqualTo, costMax+1e-9)
		}
	}
}

func TestInformedRRTStarPrefersInBoundsSamples(t *testing.T) {
	problem := straightLineProblem()
	problem.Low = []float64{-2, -1}
	problem.High = []float64{12, 1}
	mp := newInformedForTest(t, problem, freeSpace, nil, nil)

	// the ellipsoid for cost 14 reaches |y| = 4.9, well past the bounds
	mp.costMax = 14
	for i := 0; i < 200; i++ {
		p := mp.sample()
		test.That(t, mp.inBounds(p), test.ShouldBeTrue)
	}
}

func TestInformedRRTStarFallsBackToUniformSamples(t *testing.T) {
	problem := straightLineProblem()
	problem.Low = []float64{-2, -0.01}
	problem.High = []float64{12, 0.01}
	mp := newInformedForTest(t, problem, freeSpace, nil, nil)

	// almost every draw from this ellipsoid leaves the thin bounds
	mp.costMax = 1000
	for i := 0; i < 200; i++ {
		p := mp.sample()
		test.That(t, mp.inBounds(p), test.ShouldBeTrue)
	}
}

func TestUpdateCostMax(t *testing.T) {
	logger, logs := logging.NewObservedTestLogger(t)
	mp := newInformedForTest(t, straightLineProblem(), freeSpace, nil, logger)
	mp.reset()
	a := mp.tree.add([]float64{5, 5}, 0)
	goalIdx := mp.tree.add([]float64{10, 0}, a)

	mp.updateCostMax(1, NoParent)
	test.That(t, math.IsInf(mp.costMax, 1), test.ShouldBeTrue)

	mp.updateCostMax(2, goalIdx)
	test.That(t, mp.costMax, test.ShouldAlmostEqual, 2*math.Sqrt(50))
	test.That(t, logs.FilterMessageSnippet("path improved").Len(), test.ShouldEqual, 0)

	// a cheaper route through a rewired parent lowers the bound
	b := mp.tree.add([]float64{5, 1}, 0)
	mp.tree.reparent(goalIdx, b)
	mp.updateCostMax(3, goalIdx)
	test.That(t, mp.costMax, test.ShouldAlmostEqual, 2*math.Sqrt(26))
	test.That(t, logs.FilterMessageSnippet("path improved").Len(), test.ShouldEqual, 1)

	// and it never grows back
	mp.tree.reparent(goalIdx, a)
	mp.updateCostMax(4, goalIdx)
	test.That(t, mp.costMax, test.ShouldAlmostEqual, 2*math.Sqrt(26))
}
