package filters

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

var (
	black = color.NRGBA{A: 0xff}
	white = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	red   = color.NRGBA{R: 0xff, A: 0xff}
	blue  = color.NRGBA{B: 0xff, A: 0xff}
)

func solid(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for ii := 0; ii < len(img.Pix); ii += 4 {
		img.Pix[ii], img.Pix[ii+1], img.Pix[ii+2], img.Pix[ii+3] = c.R, c.G, c.B, c.A
	}
	return img
}

func TestNewColorRibbon(t *testing.T) {
	r, err := NewColorRibbon("debug", red, white, BottomRight, 0.2)
	require.NoError(t, err)
	require.Equal(t, ColorRibbon{Label: "debug", RibbonColor: red, LabelColor: white, Gravity: BottomRight, TextSizeRatio: 0.2}, r)

	for _, ratio := range []float64{-0.1, 1.5, math.NaN(), math.Inf(1)} {
		_, err = NewColorRibbon("debug", red, white, TopLeft, ratio)
		require.ErrorIs(t, err, ErrInvalidTextSize, "ratio %g", ratio)
	}
	_, err = NewColorRibbon("debug", red, white, Gravity(42), 0)
	require.ErrorIs(t, err, ErrUnknownGravity)
}

func TestColorRibbonFontSizeRatio(t *testing.T) {
	for _, bounds := range []image.Rectangle{
		image.Rect(0, 0, 48, 48),
		image.Rect(0, 0, 192, 144),
		image.Rect(10, 20, 118, 128),
	} {
		dim := float64(min(bounds.Dx(), bounds.Dy()))
		for _, ratio := range []float64{0.01, 0.1, 0.25, 0.5, 1} {
			r, err := NewColorRibbon("debug", red, white, TopLeft, ratio)
			require.NoError(t, err)
			require.Equal(t, ratio*dim, r.FontSize(bounds, false), "bounds %s, ratio %g", bounds, ratio)
			require.Equal(t, ratio*dim, r.FontSize(bounds, true), "bounds %s, ratio %g", bounds, ratio)
		}
	}
}

func TestColorRibbonAutoFit(t *testing.T) {
	bounds := image.Rect(0, 0, 192, 192)
	r := ColorRibbon{Label: "debug", RibbonColor: red, LabelColor: white}
	size := r.FontSize(bounds, false)
	g := r.geometry(bounds, false)
	w, h := textSize(r.Label, size)
	require.LessOrEqual(t, w, g.length*labelFill)
	require.LessOrEqual(t, h, g.thickness)
	require.GreaterOrEqual(t, size, minAutoFontSize)
	require.Equal(t, size, r.FontSize(bounds, false), "auto-fit must be deterministic")

	long := r
	long.Label = "staging-release"
	require.Less(t, long.FontSize(bounds, false), size)

	// Tiny icons: the ribbon thickness caps the size.
	tiny := image.Rect(0, 0, 12, 12)
	require.LessOrEqual(t, r.FontSize(tiny, false), r.geometry(tiny, false).thickness)
}

func TestColorRibbonGravity(t *testing.T) {
	const size = 96
	// Middle of each ribbon: at a quarter of the icon from the corner.
	anchors := map[Gravity]image.Point{
		TopLeft:     {24, 24},
		TopRight:    {71, 24},
		BottomLeft:  {24, 71},
		BottomRight: {71, 71},
	}
	for gravity, anchor := range anchors {
		img := solid(size, size, black)
		ColorRibbon{RibbonColor: red, LabelColor: white, Gravity: gravity}.Apply(img, false)
		require.Equal(t, red, img.NRGBAAt(anchor.X, anchor.Y), "%s at %s", gravity, anchor)
		for other, p := range anchors {
			if other != gravity {
				require.Equal(t, black, img.NRGBAAt(p.X, p.Y), "%s drawn at %s anchor %s", gravity, other, p)
			}
		}
		// Ribbons are bands: the very corner is left untouched.
		for _, corner := range []image.Point{{0, 0}, {size - 1, 0}, {0, size - 1}, {size - 1, size - 1}} {
			require.Equal(t, black, img.NRGBAAt(corner.X, corner.Y), "%s at corner %s", gravity, corner)
		}
	}

	img := solid(size, size, black)
	ColorRibbon{RibbonColor: red, Gravity: Top}.Apply(img, false)
	require.Equal(t, red, img.NRGBAAt(48, 8))
	require.Equal(t, red, img.NRGBAAt(0, 0))
	require.Equal(t, black, img.NRGBAAt(48, 88))

	img = solid(size, size, black)
	ColorRibbon{RibbonColor: red, Gravity: Bottom}.Apply(img, false)
	require.Equal(t, red, img.NRGBAAt(48, 88))
	require.Equal(t, black, img.NRGBAAt(48, 8))
}

func TestColorRibbonAdaptive(t *testing.T) {
	const size = 108
	r := ColorRibbon{RibbonColor: red, Gravity: TopLeft}

	img := solid(size, size, black)
	r.Apply(img, false)
	require.Equal(t, red, img.NRGBAAt(27, 27))
	require.Equal(t, black, img.NRGBAAt(45, 45))

	// The adaptive ribbon is shifted by the 18px inset on both axes.
	img = solid(size, size, black)
	r.Apply(img, true)
	require.Equal(t, black, img.NRGBAAt(27, 27))
	require.Equal(t, red, img.NRGBAAt(45, 45))
}

func TestColorRibbonLabel(t *testing.T) {
	const size = 96
	img := solid(size, size, black)
	r := ColorRibbon{Label: "debug", RibbonColor: blue, LabelColor: white, Gravity: TopLeft}
	r.Apply(img, false)

	// The label is the only source of red: it must be there, and inside the ribbon.
	g := r.geometry(img.Rect, false)
	halfWidth := g.thickness / 2 * math.Sqrt2 // Half width of the band, measured along x+y.
	var maxRed uint8
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			c := img.NRGBAAt(x, y)
			if c.R == 0 {
				continue
			}
			if c.R > maxRed {
				maxRed = c.R
			}
			diagonal := float64(x+y) + 1 - size*ribbonReach
			require.LessOrEqual(t, math.Abs(diagonal), halfWidth+1, "label pixel (%d, %d) outside ribbon", x, y)
		}
	}
	require.GreaterOrEqual(t, maxRed, uint8(0xc0))
}

func TestColorRibbonDeterministic(t *testing.T) {
	r := ColorRibbon{Label: "staging", RibbonColor: color.NRGBA{0xff, 0x76, 0, 0x99}, LabelColor: white, Gravity: BottomLeft}
	a, b := gradient(64, 64, true), gradient(64, 64, true)
	r.Apply(a, true)
	r.Apply(b, true)
	require.Equal(t, a.Pix, b.Pix)
}

// labelExtent returns the width and height of the box holding the pixels
// where the white label shows over a blue ribbon.
func labelExtent(img *image.NRGBA) (w, h int) {
	box := image.Rectangle{}
	for y := img.Rect.Min.Y; y < img.Rect.Max.Y; y++ {
		for x := img.Rect.Min.X; x < img.Rect.Max.X; x++ {
			if img.NRGBAAt(x, y).R > 0x80 {
				box = box.Union(image.Rect(x, y, x+1, y+1))
			}
		}
	}
	return box.Dx(), box.Dy()
}

func TestColorRibbonLabelSizeRatio(t *testing.T) {
	const size = 192
	var prevW, prevH int
	for _, ratio := range []float64{0.05, 0.1, 0.15} {
		r, err := NewColorRibbon("debug", blue, white, Top, ratio)
		require.NoError(t, err)
		img := solid(size, size, black)
		r.Apply(img, false)

		w, h := labelExtent(img)
		advance, _ := textSize("debug", ratio*size)
		require.InDelta(t, advance, float64(w), 0.15*advance+2, "ratio %g", ratio)
		require.Greater(t, w, prevW, "ratio %g", ratio)
		require.Greater(t, h, prevH, "ratio %g", ratio)
		prevW, prevH = w, h
	}
}
