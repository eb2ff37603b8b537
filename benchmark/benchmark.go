// Package benchmark runs a planner over many seeds and summarizes the results.
package benchmark

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"runtime"
	"time"

	"github.com/aybabtme/uniplot/histogram"
	"github.com/benbjohnson/clock"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/montanaflynn/stats"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"go.viam.com/rrtplan/logging"
	"go.viam.com/rrtplan/motionplan"
)

// PlannerFactory creates a fresh planner drawing from the given random source.
type PlannerFactory func(seed *rand.Rand) (motionplan.MotionPlanner, error)

// Options control a benchmark.
type Options struct {
	// Number of plans to run. Run i is seeded with FirstSeed+i.
	Runs      int
	FirstSeed int64
	// Maximum number of plans running at once, runtime.NumCPU() if not positive.
	Parallelism int
	// Clock timing every plan, the wall clock if nil.
	Clock clock.Clock
}

// Result describes a single seeded plan.
type Result struct {
	Seed     int64
	Found    bool
	Stats    motionplan.PlanStats
	Duration time.Duration
}

// Statistics summarize a sample of float64 values.
type Statistics struct {
	Min    float64
	Max    float64
	Mean   float64
	Median float64
	StdDev float64
	P90    float64
}

// Summary is the outcome of a benchmark.
type Summary struct {
	Algorithm motionplan.Algorithm
	Results   []Result

	// Fraction of runs that found a path.
	SuccessRate float64
	// Cost is computed over the runs that found a path only.
	Cost       Statistics
	Iterations Statistics
	Duration   Statistics
}

// Run plans once per seed, at most opts.Parallelism at a time, and summarizes the results. The
// first planner error cancels the remaining runs and is returned.
func Run(ctx context.Context, newPlanner PlannerFactory, opts Options, logger logging.Logger) (*Summary, error) {
	if opts.Runs <= 0 {
		return nil, errors.Errorf("runs must be positive, got %d", opts.Runs)
	}
	if logger == nil {
		logger = logging.NewBlankLogger("benchmark")
	}
	parallelism := opts.Parallelism
	if parallelism <= 0 {
		parallelism = runtime.NumCPU()
	}
	clk := opts.Clock
	if clk == nil {
		clk = clock.New()
	}

	results := make([]Result, opts.Runs)
	algorithms := make([]motionplan.Algorithm, opts.Runs)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(parallelism)
	for i := range results {
		i := i
		seed := opts.FirstSeed + int64(i)
		g.Go(func() error {
			//nolint:gosec
			mp, err := newPlanner(rand.New(rand.NewSource(seed)))
			if err != nil {
				return err
			}
			start := clk.Now()
			path, err := mp.Plan(gctx)
			if err != nil {
				return errors.Wrapf(err, "run with seed %d", seed)
			}
			results[i] = Result{
				Seed:     seed,
				Found:    !path.Empty(),
				Stats:    mp.Stats(),
				Duration: clk.Since(start),
			}
			algorithms[i] = mp.Algorithm()
			logger.Debugw("benchmark run finished", "seed", seed, "found", results[i].Found, "cost", results[i].Stats.Cost)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	summary, err := summarize(results)
	if err != nil {
		return nil, err
	}
	summary.Algorithm = algorithms[0]
	logger.Infow("benchmark finished",
		"algorithm", summary.Algorithm,
		"runs", len(results),
		"success_rate", summary.SuccessRate,
		"mean_cost", summary.Cost.Mean,
	)
	return summary, nil
}

func summarize(results []Result) (*Summary, error) {
	var costs, iterations, durations []float64
	for _, r := range results {
		if r.Found {
			costs = append(costs, r.Stats.Cost)
		}
		iterations = append(iterations, float64(r.Stats.Iterations))
		durations = append(durations, r.Duration.Seconds())
	}
	summary := &Summary{
		Results:     results,
		SuccessRate: float64(len(costs)) / float64(len(results)),
	}
	var err error
	if len(costs) > 0 {
		if summary.Cost, err = describe(costs); err != nil {
			return nil, err
		}
	}
	if summary.Iterations, err = describe(iterations); err != nil {
		return nil, err
	}
	if summary.Duration, err = describe(durations); err != nil {
		return nil, err
	}
	return summary, nil
}

func describe(data stats.Float64Data) (Statistics, error) {
	var s Statistics
	var err error
	if s.Min, err = data.Min(); err != nil {
		return s, err
	}
	if s.Max, err = data.Max(); err != nil {
		return s, err
	}
	if s.Mean, err = data.Mean(); err != nil {
		return s, err
	}
	if s.Median, err = data.Median(); err != nil {
		return s, err
	}
	if s.StdDev, err = data.StandardDeviation(); err != nil {
		return s, err
	}
	if s.P90, err = data.Percentile(90); err != nil {
		return s, err
	}
	return s, nil
}

// Costs returns the path costs of the runs that found a path.
func (s *Summary) Costs() []float64 {
	var costs []float64
	for _, r := range s.Results {
		if r.Found {
			costs = append(costs, r.Stats.Cost)
		}
	}
	return costs
}

// FprintCostHistogram writes a text histogram of the path costs to w.
func (s *Summary) FprintCostHistogram(w io.Writer, bins int) error {
	costs := s.Costs()
	if len(costs) == 0 {
		_, err := fmt.Fprintln(w, "no run found a path")
		return err
	}
	return histogram.Fprint(w, histogram.Hist(bins, costs), histogram.Linear(40))
}

// String renders the summary as a table.
func (s *Summary) String() string {
	t := table.NewWriter()
	t.SetTitle("%s: %d runs, %.0f%% found a path", s.Algorithm, len(s.Results), 100*s.SuccessRate)
	t.AppendHeader(table.Row{"", "Min", "Median", "Mean", "StdDev", "P90", "Max"})
	for _, row := range []struct {
		name string
		s    Statistics
	}{{"cost", s.Cost}, {"iterations", s.Iterations}, {"seconds", s.Duration}} {
		t.AppendRow(table.Row{
			row.name,
			fmt.Sprintf("%.3f", row.s.Min),
			fmt.Sprintf("%.3f", row.s.Median),
			fmt.Sprintf("%.3f", row.s.Mean),
			fmt.Sprintf("%.3f", row.s.StdDev),
			fmt.Sprintf("%.3f", row.s.P90),
			fmt.Sprintf("%.3f", row.s.Max),
		})
	}
	return t.Render()
}
