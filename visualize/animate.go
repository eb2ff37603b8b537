package visualize

import (
	"fmt"
	"image"
	"image/color"
	"image/color/palette"
	"image/gif"
	"io"
	"os"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"golang.org/x/image/colornames"
	"golang.org/x/image/draw"

	"go.viam.com/rrtplan/environment"
	"go.viam.com/rrtplan/motionplan"
)

// AnimationOptions control how a tree's growth is rendered.
type AnimationOptions struct {
	// Size of every frame in pixels.
	Width  int `json:"width"`
	Height int `json:"height"`

	// Only every FrameStride-th snapshot becomes a frame. The last snapshot is always drawn.
	FrameStride int `json:"frame_stride"`

	// Time between frames, in 100ths of a second.
	Delay int `json:"delay"`

	// Time the final frame is held, in 100ths of a second.
	FinalDelay int `json:"final_delay"`
}

// NewDefaultAnimationOptions returns options for a 1000x600 animation at 20 frames per second.
func NewDefaultAnimationOptions() *AnimationOptions {
	return &AnimationOptions{
		Width:       1000,
		Height:      600,
		FrameStride: 1,
		Delay:       5,
		FinalDelay:  200,
	}
}

func (opts *AnimationOptions) validate() error {
	var errs error
	if opts.Width <= 0 || opts.Height <= 0 {
		errs = multierr.Append(errs, errors.Errorf("frame size must be positive, got %dx%d", opts.Width, opts.Height))
	}
	if opts.FrameStride <= 0 {
		errs = multierr.Append(errs, errors.Errorf("frame_stride must be positive, got %d", opts.FrameStride))
	}
	if opts.Delay < 0 || opts.FinalDelay < 0 {
		errs = multierr.Append(errs, errors.New("delays must not be negative"))
	}
	return errs
}

const frameMargin = 20

// RenderFrame draws one snapshot of a tree over the environment. If path is not empty it is
// drawn over the tree.
func RenderFrame(
	env *environment.Environment,
	snapshot motionplan.Snapshot,
	path motionplan.Path,
	width, height int,
) (image.Image, error) {
	if err := check2D(env); err != nil {
		return nil, err
	}
	c := newCanvas(env, width, height, frameMargin)
	c.clear(color.White)
	c.drawBounds(colornames.Black, 1)
	c.drawObstacles(env.Obstacles())

	for _, n := range snapshot {
		if n.Parent == motionplan.NoParent {
			continue
		}
		c.drawPolyline([][]float64{snapshot[n.Parent].Position, n.Position}, colornames.Steelblue, 1)
	}
	for _, n := range snapshot {
		c.drawPoint(n.Position, colornames.Navy, 1.5)
	}

	if !path.Empty() {
		c.drawPolyline(path, colornames.Red, 2.5)
		c.drawPoint(path[0], colornames.Green, 5)
		c.drawPoint(path[len(path)-1], colornames.Red, 5)
	}
	c.drawString(fmt.Sprintf("nodes: %d", len(snapshot)), frameMargin+4, 4, colornames.Black, 12)
	return c.dc.Image(), nil
}

// AnimateTree renders the snapshots of a planner's tree as an animated GIF written to w. The
// final frame also shows path.
func AnimateTree(
	env *environment.Environment,
	snapshots []motionplan.Snapshot,
	path motionplan.Path,
	w io.Writer,
	opts *AnimationOptions,
) error {
	if opts == nil {
		opts = NewDefaultAnimationOptions()
	}
	if err := opts.validate(); err != nil {
		return err
	}
	if len(snapshots) == 0 {
		return errors.New("no snapshots to animate, enable snapshots when planning")
	}

	anim := &gif.GIF{}
	for _, i := range frameIndices(len(snapshots), opts.FrameStride) {
		last := i == len(snapshots)-1
		var framePath motionplan.Path
		if last {
			framePath = path
		}
		img, err := RenderFrame(env, snapshots[i], framePath, opts.Width, opts.Height)
		if err != nil {
			return err
		}
		delay := opts.Delay
		if last {
			delay = opts.FinalDelay
		}
		anim.Image = append(anim.Image, toPaletted(img))
		anim.Delay = append(anim.Delay, delay)
	}
	return gif.EncodeAll(w, anim)
}

// SaveAnimation is AnimateTree writing to a file.
func SaveAnimation(
	env *environment.Environment,
	snapshots []motionplan.Snapshot,
	path motionplan.Path,
	file string,
	opts *AnimationOptions,
) (err error) {
	//nolint:gosec
	f, err := os.Create(file)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Combine(err, f.Close())
	}()
	return AnimateTree(env, snapshots, path, f, opts)
}

// frameIndices returns every stride-th index below n, always ending with n-1.
func frameIndices(n, stride int) []int {
	indices := make([]int, 0, n/stride+1)
	for i := 0; i < n; i += stride {
		indices = append(indices, i)
	}
	if indices[len(indices)-1] != n-1 {
		indices = append(indices, n-1)
	}
	return indices
}

func toPaletted(img image.Image) *image.Paletted {
	bounds := img.Bounds()
	paletted := image.NewPaletted(bounds, palette.Plan9)
	draw.FloydSteinberg.Draw(paletted, bounds, img, image.Point{})
	return paletted
}
