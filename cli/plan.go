package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"math/rand"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"go.viam.com/utils"

	"go.viam.com/rrtplan/benchmark"
	"go.viam.com/rrtplan/config"
	"go.viam.com/rrtplan/logging"
	"go.viam.com/rrtplan/motionplan"
	"go.viam.com/rrtplan/visualize"
)

// PlanAction is the corresponding Action for 'plan'.
func PlanAction(c *cli.Context) error {
	logger, closeLogs := newLogger(c)
	defer closeLogs()
	scenario, err := loadScenario(c, logger)
	if err != nil {
		return err
	}

	attrs := config.AttributeMap{}
	for k, v := range scenario.Attributes {
		attrs[k] = v
	}
	if c.IsSet(generalFlagSeed) {
		attrs["seed"] = c.Int64(generalFlagSeed)
	}
	animation := c.String(planFlagAnimate)
	if animation != "" {
		attrs["snapshots"] = true
	}
	scenario.Attributes = attrs

	mp, env, err := scenario.NewMotionPlanner(nil, logger)
	if err != nil {
		return err
	}
	path, err := mp.Plan(c.Context)
	if err != nil {
		return err
	}
	printPlanSummary(c.App.Writer, mp, path)
	if c.Bool(planFlagWaypoints) && !path.Empty() {
		fmt.Fprintln(c.App.Writer, path.String())
	}

	if plotFile := c.String(planFlagPlot); plotFile != "" {
		if err := visualize.PlotPath(env, path, plotFile); err != nil {
			return errors.Wrap(err, "failed to plot path")
		}
		logger.Infow("saved plot", "file", plotFile)
	}
	if animation != "" {
		opts, err := scenario.AnimationOptions()
		if err != nil {
			return err
		}
		if err := visualize.SaveAnimation(env, mp.Snapshots(), path, animation, opts); err != nil {
			return errors.Wrap(err, "failed to animate tree")
		}
		logger.Infow("saved animation", "file", animation, "snapshots", len(mp.Snapshots()))
	}
	return nil
}

func printPlanSummary(w io.Writer, mp motionplan.MotionPlanner, path motionplan.Path) {
	stats := mp.Stats()
	t := table.NewWriter()
	t.SetTitle("%s", mp.Algorithm())
	t.AppendRows([]table.Row{
		{"path found", !path.Empty()},
		{"iterations", stats.Iterations},
		{"goal reached at", stats.GoalReachedAt},
		{"nodes", stats.Nodes},
		{"rewires", stats.Rewires},
		{"waypoints", len(path)},
		{"cost", fmt.Sprintf("%.4f", stats.Cost)},
	})
	fmt.Fprintln(w, t.Render())
}

// BenchAction is the corresponding Action for 'bench'.
func BenchAction(c *cli.Context) error {
	logger, closeLogs := newLogger(c)
	defer closeLogs()
	scenario, err := loadScenario(c, logger)
	if err != nil {
		return err
	}

	runLogger := logging.NewBlankLogger("bench")
	if c.Bool(generalFlagDebug) {
		runLogger = logger.Sublogger("run")
	}
	newPlanner := func(seed *rand.Rand) (motionplan.MotionPlanner, error) {
		mp, _, err := scenario.NewMotionPlanner(seed, runLogger)
		return mp, err
	}
	summary, err := benchmark.Run(c.Context, newPlanner, benchmark.Options{
		Runs:        c.Int(benchFlagRuns),
		FirstSeed:   c.Int64(generalFlagSeed),
		Parallelism: c.Int(benchFlagParallel),
	}, logger)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, summary.String())
	return summary.FprintCostHistogram(c.App.Writer, c.Int(benchFlagBins))
}

// RenderEnvironmentAction is the corresponding Action for 'render-env'.
func RenderEnvironmentAction(c *cli.Context) error {
	logger, closeLogs := newLogger(c)
	defer closeLogs()
	scenario, err := loadScenario(c, logger)
	if err != nil {
		return err
	}
	env, err := scenario.Environment.Build()
	if err != nil {
		return err
	}
	out := c.String(generalFlagOut)
	if err := visualize.PlotPath(env, nil, out); err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "saved %s\n", out)
	return nil
}

// ExampleConfigAction is the corresponding Action for 'example-config'.
func ExampleConfigAction(c *cli.Context) error {
	if out := c.String(generalFlagOut); out != "" {
		return config.WriteFile(out, config.ExampleScenario())
	}
	return config.Write(c.App.Writer, config.ExampleScenario())
}

// SchemaAction is the corresponding Action for 'schema'.
func SchemaAction(c *cli.Context) error {
	name := c.String(schemaFlagName)
	schema, ok := config.Schemas[name]
	if !ok {
		return errors.Errorf("no schema named %q", name)
	}
	enc := json.NewEncoder(c.App.Writer)
	enc.SetIndent("", "  ")
	return enc.Encode(schema)
}

// newLogger returns a logger writing to the app's ErrWriter and, if requested, to a log file. The
// returned func closes the file.
func newLogger(c *cli.Context) (logging.Logger, func()) {
	logger := logging.NewBlankLogger("rrtplan")
	logger.SetLevel(logging.INFO)
	if c.Bool(generalFlagDebug) {
		logger.SetLevel(logging.DEBUG)
	}
	logger.AddAppender(logging.NewWriterAppender(c.App.ErrWriter))
	logFile := c.String(generalFlagLogFile)
	if logFile == "" {
		return logger, func() {}
	}
	appender := logging.NewFileAppender(logFile)
	logger.AddAppender(appender)
	return logger, func() {
		utils.UncheckedError(logger.Sync())
		utils.UncheckedErrorFunc(appender.Close)
	}
}

// loadScenario reads the scenario named by the config flag, or the example scenario, applies the
// algorithm flag and the scenario's log level.
func loadScenario(c *cli.Context, logger logging.Logger) (*config.Scenario, error) {
	scenario := config.ExampleScenario()
	if file := c.String(generalFlagConfig); file != "" {
		var err error
		if scenario, err = config.Read(file, logger); err != nil {
			return nil, errors.Wrapf(err, "cannot read scenario %q", file)
		}
	}
	if alg := c.String(generalFlagAlgorithm); alg != "" {
		scenario.Algorithm = motionplan.Algorithm(alg)
		if err := scenario.Validate("scenario"); err != nil {
			return nil, err
		}
	}
	if scenario.LogLevel != "" && !c.Bool(generalFlagDebug) {
		level, err := logging.LevelFromString(scenario.LogLevel)
		if err != nil {
			return nil, err
		}
		logger.SetLevel(level)
	}
	return scenario, nil
}
