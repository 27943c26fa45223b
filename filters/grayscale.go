package filters

import (
	"image/color"
	"image/draw"
)

// Grayscale replaces every pixel by its luminance, keeping alpha.
type Grayscale struct{}

// Apply implements the Filter interface. Adaptive layers are treated as any
// other surface.
func (Grayscale) Apply(dst draw.Image, _ bool) {
	render(dst, grayAt)
}

func (Grayscale) equal(other Filter) bool {
	_, ok := other.(Grayscale)
	return ok
}

// grayAt uses the ITU-R 601 weights (0.299, 0.587, 0.114) in 16.16 fixed
// point, the same as color.GrayModel. The weights add up to 1<<16, so a
// gray pixel maps to itself.
func grayAt(_, _ int, under color.Color) color.Color {
	r, g, b, a := under.RGBA()
	y := uint16((19595*r + 38470*g + 7471*b + 1<<15) >> 16)
	return color.RGBA64{R: y, G: y, B: y, A: uint16(a)}
}
