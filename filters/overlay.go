package filters

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"reflect"

	"fyne.io/fyne/v2"
	"github.com/golang/glog"
	xdraw "golang.org/x/image/draw"

	_ "golang.org/x/image/bmp"
)

// ErrInvalidResource is returned when an overlay resource can't be decoded.
var ErrInvalidResource = errors.New("invalid overlay resource")

// Overlay composites a foreground image over the icon.
type Overlay struct {
	// Name of the resource the foreground was decoded from.
	Name string

	Foreground image.Image

	// Scaler, if set, resizes the foreground to the icon (or to the safe
	// zone of an adaptive layer) before compositing. If nil the foreground
	// is drawn unscaled, its top-left corner on the icon's top-left corner.
	Scaler xdraw.Scaler
}

// NewOverlay decodes the foreground from res. The image formats are the
// ones registered with the image package: PNG, JPEG, GIF and BMP.
func NewOverlay(res fyne.Resource, scaler xdraw.Scaler) (Overlay, error) {
	if res == nil {
		return Overlay{}, fmt.Errorf("%w: no resource given", ErrInvalidResource)
	}
	fg, format, err := image.Decode(bytes.NewReader(res.Content()))
	if err != nil {
		return Overlay{}, fmt.Errorf("%w %q: %v", ErrInvalidResource, res.Name(), err)
	}
	glog.V(2).Infof("Overlay %q: decoded %s image, bounds %s", res.Name(), format, fg.Bounds())
	return Overlay{Name: res.Name(), Foreground: fg, Scaler: scaler}, nil
}

func (o Overlay) equal(other Filter) bool {
	p, ok := other.(Overlay)
	return ok && o.Name == p.Name && sameScaler(o.Scaler, p.Scaler) && samePixels(o.Foreground, p.Foreground)
}

// sameScaler compares scalers by value when their type allows it, and by
// identity otherwise.
func sameScaler(a, b xdraw.Scaler) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta := reflect.TypeOf(a)
	if ta != reflect.TypeOf(b) {
		return false
	}
	if ta.Comparable() {
		return a == b
	}
	switch ta.Kind() {
	case reflect.Func, reflect.Map, reflect.Slice:
		return reflect.ValueOf(a).Pointer() == reflect.ValueOf(b).Pointer()
	}
	return false
}

// samePixels reports whether a and b have the same bounds and colors.
func samePixels(a, b image.Image) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	bounds := a.Bounds()
	if bounds != b.Bounds() {
		return false
	}
	switch a := a.(type) {
	case *image.NRGBA:
		if b, ok := b.(*image.NRGBA); ok && a.Stride == b.Stride {
			return bytes.Equal(a.Pix, b.Pix)
		}
	case *image.RGBA:
		if b, ok := b.(*image.RGBA); ok && a.Stride == b.Stride {
			return bytes.Equal(a.Pix, b.Pix)
		}
	}
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			ar, ag, ab, aa := a.At(x, y).RGBA()
			br, bg, bb, ba := b.At(x, y).RGBA()
			if ar != br || ag != bg || ab != bb || aa != ba {
				return false
			}
		}
	}
	return true
}

// Apply implements the Filter interface.
func (o Overlay) Apply(dst draw.Image, adaptive bool) {
	if o.Foreground == nil {
		return
	}
	bounds := dst.Bounds()
	if o.Scaler == nil {
		draw.Draw(dst, bounds, o.Foreground, o.Foreground.Bounds().Min, draw.Over)
		return
	}
	target := bounds
	if adaptive {
		target = SafeZone(bounds)
	}
	o.Scaler.Scale(dst, target, o.Foreground, o.Foreground.Bounds(), draw.Over, nil)
}
