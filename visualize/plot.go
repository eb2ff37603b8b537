// Package visualize renders planning environments, paths and the growth of planner trees to
// PNG plots and animated GIFs. Only 2D environments can be drawn.
package visualize

import (
	"math"

	"github.com/pkg/errors"
	"golang.org/x/image/colornames"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"go.viam.com/rrtplan/environment"
	"go.viam.com/rrtplan/motionplan"
	"go.viam.com/rrtplan/spatialmath"
)

// Number of vertices used to draw a circle as a polygon.
const circleVertices = 64

// Default size of saved plots.
const (
	PlotWidth  = 10 * vg.Inch
	PlotHeight = 6 * vg.Inch
)

// PlotEnvironment builds a plot of the environment's obstacles and, if it is not empty, the path
// through it.
func PlotEnvironment(env *environment.Environment, path motionplan.Path) (*plot.Plot, error) {
	if err := check2D(env); err != nil {
		return nil, err
	}
	p := plot.New()
	p.Title.Text = "Environment"
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"
	p.X.Min, p.X.Max = env.Low()[0], env.High()[0]
	p.Y.Min, p.Y.Max = env.Low()[1], env.High()[1]
	p.Add(plotter.NewGrid())

	obstacles := env.Obstacles()
	colors := Palette(len(obstacles))
	for i, g := range obstacles {
		polygon, err := plotter.NewPolygon(outline(g))
		if err != nil {
			return nil, errors.Wrapf(err, "cannot draw obstacle %d", i)
		}
		polygon.Color = colors[i]
		polygon.LineStyle.Color = colors[i]
		p.Add(polygon)
		if g.Label() != "" {
			p.Legend.Add(g.Label(), polygon)
		}
	}

	if !path.Empty() {
		if err := plotPath(p, path); err != nil {
			return nil, err
		}
		p.Title.Text = "Path"
	}
	p.Legend.Top = true
	p.Legend.Left = false
	p.Legend.XOffs = -10
	p.Legend.YOffs = -10
	return p, nil
}

func plotPath(p *plot.Plot, path motionplan.Path) error {
	xys := toXYs(path)
	line, err := plotter.NewLine(xys)
	if err != nil {
		return errors.Wrap(err, "cannot draw path")
	}
	line.Color = colornames.Red
	line.Width = vg.Points(1.5)

	waypoints, err := plotter.NewScatter(xys)
	if err != nil {
		return errors.Wrap(err, "cannot draw waypoints")
	}
	waypoints.GlyphStyle.Color = colornames.Darkred
	waypoints.GlyphStyle.Radius = vg.Points(2)
	waypoints.GlyphStyle.Shape = draw.CircleGlyph{}

	p.Add(line, waypoints)
	p.Legend.Add("path", line, waypoints)
	return nil
}

// PlotPath draws the environment and the path and saves the plot to file. The image format
// follows the file extension, as for plot.Save.
func PlotPath(env *environment.Environment, path motionplan.Path, file string) error {
	p, err := PlotEnvironment(env, path)
	if err != nil {
		return err
	}
	return p.Save(PlotWidth, PlotHeight, file)
}

// outline returns the boundary of an obstacle's cross-section in the plane.
func outline(g spatialmath.Geometry) plotter.XYs {
	switch shape := g.(type) {
	case *spatialmath.Box:
		lo, hi := shape.Min(), shape.Max()
		return plotter.XYs{{X: lo[0], Y: lo[1]}, {X: hi[0], Y: lo[1]}, {X: hi[0], Y: hi[1]}, {X: lo[0], Y: hi[1]}}
	case *spatialmath.Sphere:
		c, r := shape.Center(), shape.Radius()
		xys := make(plotter.XYs, circleVertices)
		for i := range xys {
			theta := 2 * math.Pi * float64(i) / circleVertices
			xys[i] = plotter.XY{X: c[0] + r*math.Cos(theta), Y: c[1] + r*math.Sin(theta)}
		}
		return xys
	}
	return nil
}

func toXYs(positions [][]float64) plotter.XYs {
	xys := make(plotter.XYs, len(positions))
	for i, position := range positions {
		xys[i] = plotter.XY{X: position[0], Y: position[1]}
	}
	return xys
}
