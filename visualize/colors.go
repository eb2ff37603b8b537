package visualize

import (
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// Palette returns n distinct colors evenly spaced in hue at a fixed chroma and luminance, so no
// obstacle stands out more than another.
func Palette(n int) []color.Color {
	colors := make([]color.Color, 0, n)
	for i := 0; i < n; i++ {
		hue := 360 * float64(i) / float64(n)
		cc := colorful.Hcl(hue, 0.45, 0.7).Clamped()
		r, g, b := cc.RGB255()
		colors = append(colors, color.NRGBA{R: r, G: g, B: b, A: 255})
	}
	return colors
}
