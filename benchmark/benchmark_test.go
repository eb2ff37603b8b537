package benchmark

import (
	"bytes"
	"context"
	"math/rand"
	"testing"

	"github.com/benbjohnson/clock"
	"github.com/pkg/errors"
	"go.viam.com/test"

	"go.viam.com/rrtplan/logging"
	"go.viam.com/rrtplan/motionplan"
)

func straightLine(alg motionplan.Algorithm, maxIter int) PlannerFactory {
	problem := &motionplan.Problem{
		Start: []float64{0, 0},
		Goal:  []float64{10, 0},
		Low:   []float64{-2, -5},
		High:  []float64{12, 5},
	}
	free := motionplan.FeasibilityFunc(func([]float64) bool { return true })
	return func(seed *rand.Rand) (motionplan.MotionPlanner, error) {
		opts := motionplan.NewBasicPlannerOptions()
		opts.StepSize = 1
		opts.MaxIter = maxIter
		return motionplan.NewMotionPlannerWithSeed(alg, problem, free, opts, seed, nil)
	}
}

func TestRun(t *testing.T) {
	logger := logging.NewTestLogger(t)
	summary, err := Run(context.Background(), straightLine(motionplan.RRTStar, 500), Options{Runs: 8, FirstSeed: 3, Parallelism: 3}, logger)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, summary.Algorithm, test.ShouldEqual, motionplan.RRTStar)
	test.That(t, summary.Results, test.ShouldHaveLength, 8)
	test.That(t, summary.SuccessRate, test.ShouldEqual, 1.)

	for i, r := range summary.Results {
		test.That(t, r.Seed, test.ShouldEqual, int64(3+i))
		test.That(t, r.Found, test.ShouldBeTrue)
		test.That(t, r.Stats.Iterations, test.ShouldEqual, 500)
	}
	test.That(t, summary.Cost.Min, test.ShouldBeGreaterThanOrEqualTo, 10.)
	test.That(t, summary.Cost.Min, test.ShouldBeLessThanOrEqualTo, summary.Cost.Median)
	test.That(t, summary.Cost.Median, test.ShouldBeLessThanOrEqualTo, summary.Cost.Max)
	test.That(t, summary.Cost.P90, test.ShouldBeLessThanOrEqualTo, summary.Cost.Max)
	test.That(t, summary.Iterations.Mean, test.ShouldEqual, 500.)
	test.That(t, summary.Iterations.StdDev, test.ShouldEqual, 0.)

	var buf bytes.Buffer
	test.That(t, summary.FprintCostHistogram(&buf, 4), test.ShouldBeNil)
	test.That(t, buf.Len(), test.ShouldBeGreaterThan, 0)
	test.That(t, summary.String(), test.ShouldContainSubstring, "rrt_star: 8 runs, 100% found a path")
}

func TestRunIsDeterministic(t *testing.T) {
	first, err := Run(context.Background(), straightLine(motionplan.InformedRRTStar, 300), Options{Runs: 4}, nil)
	test.That(t, err, test.ShouldBeNil)
	// a clock that never advances times every run at zero
	second, err := Run(
		context.Background(),
		straightLine(motionplan.InformedRRTStar, 300),
		Options{Runs: 4, Parallelism: 1, Clock: clock.NewMock()},
		nil,
	)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, first.Costs(), test.ShouldResemble, second.Costs())
	test.That(t, second.Duration, test.ShouldResemble, Statistics{})
}

func TestRunNoPath(t *testing.T) {
	// a single iteration of plain RRT cannot cross ten units with unit steps
	summary, err := Run(context.Background(), straightLine(motionplan.RRT, 1), Options{Runs: 3}, nil)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, summary.SuccessRate, test.ShouldEqual, 0.)
	test.That(t, summary.Costs(), test.ShouldBeEmpty)
	test.That(t, summary.Cost, test.ShouldResemble, Statistics{})

	var buf bytes.Buffer
	test.That(t, summary.FprintCostHistogram(&buf, 4), test.ShouldBeNil)
	test.That(t, buf.String(), test.ShouldContainSubstring, "no run found a path")
	test.That(t, summary.String(), test.ShouldContainSubstring, "rrt: 3 runs, 0% found a path")
}

func TestRunErrors(t *testing.T) {
	_, err := Run(context.Background(), straightLine(motionplan.RRT, 10), Options{}, nil)
	test.That(t, err, test.ShouldNotBeNil)

	failing := func(*rand.Rand) (motionplan.MotionPlanner, error) {
		return nil, errors.New("no planner")
	}
	_, err = Run(context.Background(), failing, Options{Runs: 2}, nil)
	test.That(t, err, test.ShouldBeError, errors.New("no planner"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = Run(ctx, straightLine(motionplan.RRTStar, 100), Options{Runs: 2}, nil)
	test.That(t, errors.Is(err, context.Canceled), test.ShouldBeTrue)
}
