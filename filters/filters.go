// Package filters implements the visual markers drawn over launcher icons:
// ribbons with a label, grayscale conversion and image overlays.
//
// Each filter is a plain comparable value. Applying it mutates the
// given surface in place, and the same surface plus the same filter
// always produce the same pixels.
package filters

import (
	"image"
	"image/color"
	"image/draw"
)

// Filter draws one marker on an icon surface.
//
// The whole dst.Bounds() is taken to be the icon. If adaptive is true the
// surface is one layer of an adaptive icon and anything drawn should stay
// inside the layer's safe zone, since the launcher masks the rest.
//
// The variants are Grayscale, ColorRibbon and Overlay.
type Filter interface {
	Apply(dst draw.Image, adaptive bool)

	// equal reports whether other draws exactly the same marker.
	equal(other Filter) bool
}

// Equal reports whether a and b are the same filter by value: two overlays
// decoded from the same resource are equal even if they don't share the
// decoded image.
func Equal(a, b Filter) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.equal(b)
}

// Adaptive icon layers are 108dp wide, of which only the 72dp centre is
// guaranteed visible: 18dp are cut on each side.
const adaptiveInset = 18.0 / 108.0

// SafeZone returns the part of bounds guaranteed to be visible once an
// adaptive icon layer is masked by the launcher.
func SafeZone(bounds image.Rectangle) image.Rectangle {
	inset := int(float64(min(bounds.Dx(), bounds.Dy()))*adaptiveInset + 0.5)
	return bounds.Inset(inset)
}

type filterImage struct {
	source image.Image
	atFn   func(x, y int, under color.Color) color.Color
}

// ColorModel returns the Image's color model.
func (f *filterImage) ColorModel() color.Model { return f.source.ColorModel() }

// Bounds returns the domain for which At can return non-zero color.
// The bounds do not necessarily contain the point (0, 0).
func (f *filterImage) Bounds() image.Rectangle { return f.source.Bounds() }

// At returns the color of the pixel at (x, y).
func (f *filterImage) At(x, y int) color.Color {
	return f.atFn(x, y, f.source.At(x, y))
}

// render replaces every pixel of dst with atFn(x, y, dst.At(x, y)).
//
// atFn may only look at the pixel it is given: dst is read and written
// in the same pass.
func render(dst draw.Image, atFn func(x, y int, under color.Color) color.Color) {
	b := dst.Bounds()
	draw.Draw(dst, b, &filterImage{dst, atFn}, b.Min, draw.Src)
}

// M is the maximum value of a color channel as returned by color.Color.RGBA().
const M = 1<<16 - 1

// over composites c, with its alpha scaled by coverage (0 to M), on top
// of under.
func over(c color.Color, coverage uint32, under color.Color) color.Color {
	if coverage == 0 {
		return under
	}
	sr, sg, sb, sa := c.RGBA()
	if coverage < M {
		sr, sg, sb, sa = sr*coverage/M, sg*coverage/M, sb*coverage/M, sa*coverage/M
	}
	dr, dg, db, da := under.RGBA()
	rest := M - sa
	return color.RGBA64{
		R: uint16(sr + dr*rest/M),
		G: uint16(sg + dg*rest/M),
		B: uint16(sb + db*rest/M),
		A: uint16(sa + da*rest/M),
	}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
