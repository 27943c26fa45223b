package config

import (
	"fmt"
	"image/color"

	"fyne.io/fyne/v2"
	"github.com/janpfeifer/easylauncher/filters"
	xdraw "golang.org/x/image/draw"
)

// Defaults of RibbonOptions.
const (
	DefaultRibbonColor = "#00720099"
	DefaultLabelColor  = "#FFFFFF"
	DefaultPosition    = "topleft"
)

// Ribbon colors of the presets. They are translucent, so the icon shows
// through the ribbon.
var (
	GrayRibbon   = color.NRGBA{R: 0x60, G: 0x60, B: 0x60, A: 0x99}
	GreenRibbon  = color.NRGBA{R: 0x00, G: 0x72, B: 0x00, A: 0x99}
	OrangeRibbon = color.NRGBA{R: 0xff, G: 0x76, B: 0x00, A: 0x99}
	YellowRibbon = color.NRGBA{R: 0xff, G: 0xfb, B: 0x00, A: 0x99}
	RedRibbon    = color.NRGBA{R: 0xff, G: 0x00, B: 0x00, A: 0x99}
	BlueRibbon   = color.NRGBA{R: 0x00, G: 0x00, B: 0xff, A: 0x99}

	White = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

// RibbonOptions describes a custom ribbon. The zero value of every field
// selects its default.
type RibbonOptions struct {
	// Label defaults to the configuration name.
	Label string `yaml:"label"`

	// RibbonColor is a hex color (see filters.ParseColor), DefaultRibbonColor if empty.
	RibbonColor string `yaml:"ribbonColor"`

	// LabelColor is a hex color, DefaultLabelColor if empty.
	LabelColor string `yaml:"labelColor"`

	// Position is one of the filters.Gravity names, matched ignoring case.
	// DefaultPosition if empty.
	Position string `yaml:"position"`

	// TextSizeRatio is the font size as a fraction of the icon dimension,
	// in (0, 1]. Zero fits the label to the ribbon.
	TextSizeRatio float64 `yaml:"textSizeRatio"`
}

// CustomRibbon builds a ribbon filter from opts. Malformed colors and unknown
// positions are reported here, not when drawing.
func (b *Builder) CustomRibbon(opts RibbonOptions) (filters.ColorRibbon, error) {
	if opts.Label == "" {
		opts.Label = b.name
	}
	if opts.RibbonColor == "" {
		opts.RibbonColor = DefaultRibbonColor
	}
	if opts.LabelColor == "" {
		opts.LabelColor = DefaultLabelColor
	}
	if opts.Position == "" {
		opts.Position = DefaultPosition
	}

	ribbonColor, err := filters.ParseColor(opts.RibbonColor)
	if err != nil {
		return filters.ColorRibbon{}, fmt.Errorf("configuration %q, ribbon color: %w", b.name, err)
	}
	labelColor, err := filters.ParseColor(opts.LabelColor)
	if err != nil {
		return filters.ColorRibbon{}, fmt.Errorf("configuration %q, label color: %w", b.name, err)
	}
	gravity, err := filters.ParseGravity(opts.Position)
	if err != nil {
		return filters.ColorRibbon{}, fmt.Errorf("configuration %q: %w", b.name, err)
	}
	r, err := filters.NewColorRibbon(opts.Label, ribbonColor, labelColor, gravity, opts.TextSizeRatio)
	if err != nil {
		return filters.ColorRibbon{}, fmt.Errorf("configuration %q: %w", b.name, err)
	}
	return r, nil
}

// CustomColorRibbonFilter builds a ribbon from positional arguments. An empty
// label selects the configuration name, an empty labelColor white and an
// empty position "topleft". ribbonColor is required.
//
// Deprecated: use CustomRibbon.
func (b *Builder) CustomColorRibbonFilter(label, ribbonColor, labelColor, position string, textSizeRatio float64) (filters.ColorRibbon, error) {
	if ribbonColor == "" {
		return filters.ColorRibbon{}, fmt.Errorf("configuration %q: %w: ribbon color is required",
			b.name, filters.ErrInvalidColor)
	}
	return b.CustomRibbon(RibbonOptions{
		Label:         label,
		RibbonColor:   ribbonColor,
		LabelColor:    labelColor,
		Position:      position,
		TextSizeRatio: textSizeRatio,
	})
}

// presetRibbon is the common form of the named ribbon presets: top-left,
// white label, size fit to the ribbon.
func (b *Builder) presetRibbon(label string, ribbonColor color.NRGBA) filters.ColorRibbon {
	if label == "" {
		label = b.name
	}
	return filters.ColorRibbon{
		Label:       label,
		RibbonColor: ribbonColor,
		LabelColor:  White,
		Gravity:     filters.TopLeft,
	}
}

// GrayRibbonFilter returns a gray ribbon labeled label, or the configuration
// name if label is empty.
func (b *Builder) GrayRibbonFilter(label string) filters.ColorRibbon {
	return b.presetRibbon(label, GrayRibbon)
}

// GreenRibbonFilter is like GrayRibbonFilter, in green.
func (b *Builder) GreenRibbonFilter(label string) filters.ColorRibbon {
	return b.presetRibbon(label, GreenRibbon)
}

// OrangeRibbonFilter is like GrayRibbonFilter, in orange.
func (b *Builder) OrangeRibbonFilter(label string) filters.ColorRibbon {
	return b.presetRibbon(label, OrangeRibbon)
}

// YellowRibbonFilter is like GrayRibbonFilter, in yellow.
func (b *Builder) YellowRibbonFilter(label string) filters.ColorRibbon {
	return b.presetRibbon(label, YellowRibbon)
}

// RedRibbonFilter is like GrayRibbonFilter, in red.
func (b *Builder) RedRibbonFilter(label string) filters.ColorRibbon {
	return b.presetRibbon(label, RedRibbon)
}

// BlueRibbonFilter is like GrayRibbonFilter, in blue.
func (b *Builder) BlueRibbonFilter(label string) filters.ColorRibbon {
	return b.presetRibbon(label, BlueRibbon)
}

// OverlayFilter composites the image in res over the icons. If fit is true
// the image is scaled to the icon, otherwise it is drawn at its own size
// from the top-left corner.
func (b *Builder) OverlayFilter(res fyne.Resource, fit bool) (filters.Overlay, error) {
	var scaler xdraw.Scaler
	if fit {
		scaler = xdraw.CatmullRom
	}
	o, err := filters.NewOverlay(res, scaler)
	if err != nil {
		return filters.Overlay{}, fmt.Errorf("configuration %q: %w", b.name, err)
	}
	return o, nil
}

// OverlayFilterFromPath is OverlayFilter for an image file.
func (b *Builder) OverlayFilterFromPath(path string, fit bool) (filters.Overlay, error) {
	res, err := fyne.LoadResourceFromPath(path)
	if err != nil {
		return filters.Overlay{}, fmt.Errorf("configuration %q: %w %q: %v", b.name, filters.ErrInvalidResource, path, err)
	}
	return b.OverlayFilter(res, fit)
}

// GrayscaleFilter returns the filter turning icons gray.
func (b *Builder) GrayscaleFilter() filters.Grayscale {
	return filters.Grayscale{}
}
