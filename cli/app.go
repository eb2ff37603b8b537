// Package cli contains the rrtplan command line tool.
package cli

import (
	"io"

	"github.com/urfave/cli/v2"

	"go.viam.com/rrtplan/motionplan"
)

const (
	// Flags.
	generalFlagConfig    = "config"
	generalFlagDebug     = "debug"
	generalFlagLogFile   = "log-file"
	generalFlagAlgorithm = "algorithm"
	generalFlagSeed      = "seed"
	generalFlagOut       = "out"

	planFlagPlot      = "plot"
	planFlagAnimate   = "animate"
	planFlagWaypoints = "waypoints"

	benchFlagRuns     = "runs"
	benchFlagParallel = "parallel"
	benchFlagBins     = "bins"

	schemaFlagName = "name"
)

var (
	configFlag = &cli.StringFlag{
		Name:    generalFlagConfig,
		Aliases: []string{"c"},
		Usage:   "load the scenario from `FILE`, the built-in example if unset",
	}
	algorithmFlag = &cli.StringFlag{
		Name:    generalFlagAlgorithm,
		Aliases: []string{"a"},
		Usage:   "override the scenario's algorithm, one of " + algorithmNames(),
	}
)

// NewApp returns a new app with the CLI API, Writer set to out, and ErrWriter
// set to errOut. Logs go to errOut.
func NewApp(out, errOut io.Writer) *cli.App {
	return &cli.App{
		Name:            "rrtplan",
		Usage:           "plan paths through obstacle fields with RRT, RRT* and Informed RRT*",
		HideHelpCommand: true,
		Writer:          out,
		ErrWriter:       errOut,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    generalFlagDebug,
				Aliases: []string{"vvv"},
				Usage:   "enable debug logging",
			},
			&cli.StringFlag{
				Name:  generalFlagLogFile,
				Usage: "also write logs to `FILE`, rotating it when it grows large",
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "plan",
				Usage:     "plan a path for a scenario",
				UsageText: "rrtplan plan [--config FILE] [--plot OUT.png] [--animate OUT.gif]",
				Flags: []cli.Flag{
					configFlag,
					algorithmFlag,
					&cli.Int64Flag{
						Name:  generalFlagSeed,
						Usage: "override the seed of the planner's random source",
					},
					&cli.StringFlag{
						Name:  planFlagPlot,
						Usage: "save a plot of the environment and the path to `FILE`",
					},
					&cli.StringFlag{
						Name:  planFlagAnimate,
						Usage: "save an animated GIF of the growing tree to `FILE`",
					},
					&cli.BoolFlag{
						Name:  planFlagWaypoints,
						Usage: "print every waypoint of the path",
					},
				},
				Action: PlanAction,
			},
			{
				Name:  "bench",
				Usage: "plan a scenario over many seeds and summarize the path costs",
				Flags: []cli.Flag{
					configFlag,
					algorithmFlag,
					&cli.IntFlag{
						Name:  benchFlagRuns,
						Value: 20,
						Usage: "number of plans to run",
					},
					&cli.IntFlag{
						Name:  benchFlagParallel,
						Usage: "maximum number of plans running at once, the number of CPUs if unset",
					},
					&cli.Int64Flag{
						Name:  generalFlagSeed,
						Value: 1,
						Usage: "seed of the first run, incremented for every other run",
					},
					&cli.IntFlag{
						Name:  benchFlagBins,
						Value: 10,
						Usage: "number of bins of the cost histogram",
					},
				},
				Action: BenchAction,
			},
			{
				Name:  "render-env",
				Usage: "save a plot of a scenario's environment",
				Flags: []cli.Flag{
					configFlag,
					&cli.StringFlag{
						Name:  generalFlagOut,
						Value: "environment.png",
						Usage: "save the plot to `FILE`",
					},
				},
				Action: RenderEnvironmentAction,
			},
			{
				Name:  "example-config",
				Usage: "print the built-in example scenario as JSON",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  generalFlagOut,
						Usage: "write the scenario to `FILE` instead of stdout",
					},
				},
				Action: ExampleConfigAction,
			},
			{
				Name:  "schema",
				Usage: "print the JSON schema of the scenario file or of its attribute maps",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  schemaFlagName,
						Value: "scenario",
						Usage: "which schema to print, one of scenario, attributes or animation",
					},
				},
				Action: SchemaAction,
			},
		},
	}
}

func algorithmNames() string {
	names := ""
	for i, alg := range motionplan.Algorithms() {
		if i > 0 {
			names += ", "
		}
		names += string(alg)
	}
	return names
}
