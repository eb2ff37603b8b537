package visualize

import (
	"image/color"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"github.com/pkg/errors"
	"golang.org/x/image/font/gofont/goregular"

	"go.viam.com/rrtplan/environment"
	"go.viam.com/rrtplan/spatialmath"
)

var font *truetype.Font

// init sets up the fonts we want to use.
func init() {
	var err error
	font, err = truetype.Parse(goregular.TTF)
	if err != nil {
		panic(err)
	}
}

// errNot2D is returned when asked to draw anything but a planar environment.
var errNot2D = errors.New("only 2D environments can be drawn")

func check2D(env *environment.Environment) error {
	if env == nil {
		return errors.New("environment must not be nil")
	}
	if env.Dimension() != 2 {
		return errors.Wrapf(errNot2D, "environment has %d dimensions", env.Dimension())
	}
	return nil
}

// canvas maps the environment's bounding box onto a raster image with a margin, flipping the y
// axis so that it points up.
type canvas struct {
	dc     *gg.Context
	low    []float64
	high   []float64
	margin float64
}

func newCanvas(env *environment.Environment, width, height int, margin float64) *canvas {
	return &canvas{dc: gg.NewContext(width, height), low: env.Low(), high: env.High(), margin: margin}
}

func (c *canvas) scale(axis int) float64 {
	size := float64(c.dc.Width())
	if axis == 1 {
		size = float64(c.dc.Height())
	}
	return (size - 2*c.margin) / (c.high[axis] - c.low[axis])
}

// toPixel returns the image coordinates of a 2D position.
func (c *canvas) toPixel(position []float64) (float64, float64) {
	x := c.margin + (position[0]-c.low[0])*c.scale(0)
	y := float64(c.dc.Height()) - c.margin - (position[1]-c.low[1])*c.scale(1)
	return x, y
}

func (c *canvas) clear(background color.Color) {
	c.dc.SetColor(background)
	c.dc.Clear()
}

// drawBounds outlines the bounding box.
func (c *canvas) drawBounds(col color.Color, width float64) {
	x0, y0 := c.toPixel(c.low)
	x1, y1 := c.toPixel(c.high)
	c.dc.SetColor(col)
	c.dc.SetLineWidth(width)
	c.dc.DrawRectangle(x0, y1, x1-x0, y0-y1)
	c.dc.Stroke()
}

// drawObstacles fills every obstacle with its palette color.
func (c *canvas) drawObstacles(obstacles []spatialmath.Geometry) {
	colors := Palette(len(obstacles))
	for i, g := range obstacles {
		c.dc.SetColor(colors[i])
		switch shape := g.(type) {
		case *spatialmath.Box:
			x0, y0 := c.toPixel(shape.Min())
			x1, y1 := c.toPixel(shape.Max())
			c.dc.DrawRectangle(x0, y1, x1-x0, y0-y1)
		case *spatialmath.Sphere:
			x, y := c.toPixel(shape.Center())
			c.dc.DrawEllipse(x, y, shape.Radius()*c.scale(0), shape.Radius()*c.scale(1))
		}
		c.dc.Fill()
	}
}

// drawPolyline strokes the segments between consecutive positions.
func (c *canvas) drawPolyline(positions [][]float64, col color.Color, width float64) {
	if len(positions) < 2 {
		return
	}
	c.dc.SetColor(col)
	c.dc.SetLineWidth(width)
	x, y := c.toPixel(positions[0])
	c.dc.MoveTo(x, y)
	for _, p := range positions[1:] {
		x, y = c.toPixel(p)
		c.dc.LineTo(x, y)
	}
	c.dc.Stroke()
}

// drawPoint fills a disc of the given pixel radius at position.
func (c *canvas) drawPoint(position []float64, col color.Color, radius float64) {
	x, y := c.toPixel(position)
	c.dc.SetColor(col)
	c.dc.DrawPoint(x, y, radius)
	c.dc.Fill()
}

// drawString writes text with its top left corner at the given pixel.
func (c *canvas) drawString(text string, x, y float64, col color.Color, size float64) {
	c.dc.SetFontFace(truetype.NewFace(font, &truetype.Options{Size: size}))
	c.dc.SetColor(col)
	c.dc.DrawStringAnchored(text, x, y, 0, 1)
}
