package filters

import (
	"image"
	"sync"

	"github.com/golang/freetype/truetype"
	"github.com/golang/glog"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/math/fixed"
)

// DPI used for labels. At 72 DPI one point is one pixel, so font sizes
// are given in pixels.
const DPI = 72

var (
	goboldOnce sync.Once
	goboldFont *truetype.Font
)

func labelFont() *truetype.Font {
	goboldOnce.Do(func() {
		var err error
		goboldFont, err = truetype.Parse(gobold.TTF)
		if err != nil {
			glog.Fatalf("Failed to generate font for golang.org/x/image/font/gofont/gobold TTF: %v", err)
		}
	})
	return goboldFont
}

func newFace(size float64) font.Face {
	return truetype.NewFace(labelFont(), &truetype.Options{
		Size:       size,
		DPI:        DPI,
		Hinting:    font.HintingNone,
		SubPixelsX: 8,
		SubPixelsY: 8,
	})
}

// textSize returns the advance width and line height (ascent plus descent),
// in pixels, of text rendered at the given size.
func textSize(text string, size float64) (width, height float64) {
	face := newFace(size)
	defer func() { _ = face.Close() }()
	metrics := face.Metrics()
	width = fix2float(font.MeasureString(face, text))
	height = fix2float(metrics.Ascent + metrics.Descent)
	return
}

// renderedText is a label rasterized as a coverage mask.
type renderedText struct {
	mask *image.Alpha
	// Center of the text box within mask.
	cx, cy float64
}

// renderText draws text with the baseline placed so that the ascent and
// descent fit in the returned mask.
func renderText(text string, size float64) *renderedText {
	face := newFace(size)
	defer func() { _ = face.Close() }()
	metrics := face.Metrics()
	width := font.MeasureString(face, text).Ceil()
	if width < 1 {
		width = 1
	}
	ascent, descent := metrics.Ascent.Ceil(), metrics.Descent.Ceil()
	rt := &renderedText{
		mask: image.NewAlpha(image.Rect(0, 0, width, ascent+descent)),
		cx:   fix2float(font.MeasureString(face, text)) / 2,
		cy:   float64(ascent+descent) / 2,
	}
	d := &font.Drawer{
		Dst:  rt.mask,
		Src:  image.Opaque,
		Face: face,
		Dot:  fixed.P(0, ascent),
	}
	d.DrawString(text)
	return rt
}

// coverage samples the mask with bilinear interpolation at the
// continuous position (x, y), where pixel (i, j) has its center at
// (i+0.5, j+0.5). Returns a value from 0 to M.
func (rt *renderedText) coverage(x, y float64) uint32 {
	x, y = x-0.5, y-0.5
	x0, y0 := floor(x), floor(y)
	fx, fy := x-float64(x0), y-float64(y0)
	a00 := rt.alphaAt(x0, y0)
	a10 := rt.alphaAt(x0+1, y0)
	a01 := rt.alphaAt(x0, y0+1)
	a11 := rt.alphaAt(x0+1, y0+1)
	top := a00*(1-fx) + a10*fx
	bottom := a01*(1-fx) + a11*fx
	v := top*(1-fy) + bottom*fy
	return uint32(v*M/0xff + 0.5)
}

func (rt *renderedText) alphaAt(x, y int) float64 {
	if !(image.Point{X: x, Y: y}.In(rt.mask.Rect)) {
		return 0
	}
	return float64(rt.mask.AlphaAt(x, y).A)
}

func fix2float(v fixed.Int26_6) float64 {
	return float64(v) / 64
}

func floor(v float64) int {
	i := int(v)
	if v < float64(i) {
		i--
	}
	return i
}
