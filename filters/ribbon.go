package filters

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/glog"
	"golang.org/x/image/vector"
)

// ErrInvalidTextSize is returned for a text size ratio outside of [0, 1].
var ErrInvalidTextSize = errors.New("invalid text size ratio")

const (
	// Distance from the corner, along each edge, where the centre line of a
	// corner ribbon meets the border. Fraction of the icon dimension.
	ribbonReach = 0.5

	// Ribbon thickness, as a fraction of the icon dimension.
	ribbonThickness = 1.0 / 6.0

	// Fraction of the ribbon length the label may take when auto-fitting.
	labelFill = 0.8

	// Smallest font size, in pixels, picked when auto-fitting.
	minAutoFontSize = 4.0

	autoFitIterations = 24
)

// ColorRibbon draws a band of RibbonColor across a corner (or along the
// top or bottom edge) of the icon, with Label written on it in LabelColor.
//
// All sizes derive from the icon dimension: the smaller of the surface
// width and height.
type ColorRibbon struct {
	Label       string
	RibbonColor color.NRGBA
	LabelColor  color.NRGBA
	Gravity     Gravity

	// TextSizeRatio is the font size as a fraction of the icon dimension.
	// Zero picks the largest size for which the label fits the ribbon.
	TextSizeRatio float64
}

// NewColorRibbon validates its arguments and returns the ribbon filter.
func NewColorRibbon(label string, ribbonColor, labelColor color.NRGBA, gravity Gravity, textSizeRatio float64) (ColorRibbon, error) {
	if gravity < TopLeft || gravity > Bottom {
		return ColorRibbon{}, fmt.Errorf("%w: %s", ErrUnknownGravity, gravity)
	}
	if math.IsNaN(textSizeRatio) || textSizeRatio < 0 || textSizeRatio > 1 {
		return ColorRibbon{}, fmt.Errorf("%w %g: must be in (0, 1], or 0 to fit the ribbon",
			ErrInvalidTextSize, textSizeRatio)
	}
	return ColorRibbon{
		Label:         label,
		RibbonColor:   ribbonColor,
		LabelColor:    labelColor,
		Gravity:       gravity,
		TextSizeRatio: textSizeRatio,
	}, nil
}

func (r ColorRibbon) equal(other Filter) bool {
	o, ok := other.(ColorRibbon)
	return ok && r == o
}

// ribbonGeometry describes the band in surface coordinates.
type ribbonGeometry struct {
	dim       float64    // Icon dimension.
	center    mgl64.Vec2 // Center of the band.
	angle     float64    // Direction of the band, in radians.
	thickness float64
	length    float64 // Length available for the label.
}

func (r ColorRibbon) geometry(bounds image.Rectangle, adaptive bool) ribbonGeometry {
	minX, minY := float64(bounds.Min.X), float64(bounds.Min.Y)
	maxX, maxY := float64(bounds.Max.X), float64(bounds.Max.Y)
	dim := math.Min(maxX-minX, maxY-minY)
	inset := 0.0
	if adaptive {
		inset = dim * adaptiveInset
	}
	g := ribbonGeometry{
		dim:       dim,
		thickness: dim * ribbonThickness,
	}

	// The centre line of a corner ribbon joins the points at ribbonReach from
	// the corner on both edges. Its middle is half way in on both axes.
	half := dim*ribbonReach/2 + inset
	switch r.Gravity {
	case TopLeft:
		g.center, g.angle = mgl64.Vec2{minX + half, minY + half}, -math.Pi/4
	case TopRight:
		g.center, g.angle = mgl64.Vec2{maxX - half, minY + half}, math.Pi/4
	case BottomLeft:
		g.center, g.angle = mgl64.Vec2{minX + half, maxY - half}, math.Pi/4
	case BottomRight:
		g.center, g.angle = mgl64.Vec2{maxX - half, maxY - half}, -math.Pi/4
	case Top:
		g.center = mgl64.Vec2{(minX + maxX) / 2, minY + inset + g.thickness/2}
	case Bottom:
		g.center = mgl64.Vec2{(minX + maxX) / 2, maxY - inset - g.thickness/2}
	}
	if r.Gravity.corner() {
		// Chord of the inner edge, the shorter side of the band.
		g.length = dim*ribbonReach*math.Sqrt2 - g.thickness
	} else {
		g.length = (maxX - minX) - 2*inset
	}
	return g
}

// rebase returns the matrix taking surface coordinates to band coordinates:
// X along the band and Y across it, with the origin at the band center.
func (g ribbonGeometry) rebase() mgl64.Mat3 {
	return mgl64.HomogRotate2D(-g.angle).Mul3(mgl64.Translate2D(-g.center.X(), -g.center.Y()))
}

// mask rasterizes the band, anti-aliased, with bounds.Min at the origin.
func (g ribbonGeometry) mask(bounds image.Rectangle) *image.Alpha {
	w, h := bounds.Dx(), bounds.Dy()
	mask := image.NewAlpha(image.Rect(0, 0, w, h))
	along := mgl64.Vec2{math.Cos(g.angle), math.Sin(g.angle)}
	across := mgl64.Vec2{-along.Y(), along.X()}
	center := g.center.Sub(mgl64.Vec2{float64(bounds.Min.X), float64(bounds.Min.Y)})
	// Longer than any chord of the surface: the rasterizer clips the rest.
	reach := float64(w + h)
	point := func(a, b float64) (float32, float32) {
		p := center.Add(along.Mul(a)).Add(across.Mul(b))
		return float32(p.X()), float32(p.Y())
	}

	var z vector.Rasterizer
	z.Reset(w, h)
	z.MoveTo(point(-reach, -g.thickness/2))
	z.LineTo(point(reach, -g.thickness/2))
	z.LineTo(point(reach, g.thickness/2))
	z.LineTo(point(-reach, g.thickness/2))
	z.ClosePath()
	z.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})
	return mask
}

// FontSize returns the label font size, in pixels, used on a surface
// with the given bounds.
func (r ColorRibbon) FontSize(bounds image.Rectangle, adaptive bool) float64 {
	return r.fontSize(r.geometry(bounds, adaptive))
}

func (r ColorRibbon) fontSize(g ribbonGeometry) float64 {
	if r.TextSizeRatio > 0 {
		return r.TextSizeRatio * g.dim
	}
	return autoFit(r.Label, g.length*labelFill, g.thickness)
}

// autoFit binary searches the largest font size for which label is at most
// maxWidth wide and its line height at most maxHeight. The result is
// clamped to [minAutoFontSize, maxHeight], with maxHeight winning for tiny
// ribbons.
func autoFit(label string, maxWidth, maxHeight float64) float64 {
	lo, hi := math.Min(minAutoFontSize, maxHeight), maxHeight
	fits := func(size float64) bool {
		w, h := textSize(label, size)
		return w <= maxWidth && h <= maxHeight
	}
	if label == "" || fits(hi) {
		return hi
	}
	for ii := 0; ii < autoFitIterations; ii++ {
		mid := (lo + hi) / 2
		if fits(mid) {
			lo = mid
		} else {
			hi = mid
		}
	}
	return lo
}

// Apply implements the Filter interface. In adaptive mode the ribbon is
// moved inwards so that it stays inside the layer's safe zone.
func (r ColorRibbon) Apply(dst draw.Image, adaptive bool) {
	bounds := dst.Bounds()
	if bounds.Empty() {
		return
	}
	g := r.geometry(bounds, adaptive)
	band := g.mask(bounds)
	rebase := g.rebase()

	var text *renderedText
	if r.Label != "" {
		size := r.fontSize(g)
		text = renderText(r.Label, size)
		glog.V(2).Infof("ColorRibbon(%q, %s): %dx%d surface, font size %.2f, adaptive=%v",
			r.Label, r.Gravity, bounds.Dx(), bounds.Dy(), size, adaptive)
	}

	render(dst, func(x, y int, under color.Color) color.Color {
		coverage := uint32(band.AlphaAt(x-bounds.Min.X, y-bounds.Min.Y).A) * 0x101
		if coverage == 0 {
			return under
		}
		c := over(r.RibbonColor, coverage, under)
		if text == nil {
			return c
		}
		p := rebase.Mul3x1(mgl64.Vec3{float64(x) + 0.5, float64(y) + 0.5, 1})
		if tc := text.coverage(p.X()+text.cx, p.Y()+text.cy); tc > 0 {
			c = over(r.LabelColor, tc*coverage/M, c)
		}
		return c
	})
}
