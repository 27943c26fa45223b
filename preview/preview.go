// Package preview renders contact sheets of processed icons, to review
// the markers of a build variant at a glance.
package preview

import (
	"image"
	"image/color"
	"math"

	"github.com/golang/glog"
	"github.com/janpfeifer/easylauncher/icons"
	"golang.org/x/image/draw"
)

// Padding around and between cells, in pixels.
const Padding = 8

var (
	bgDark, bgLight = color.RGBA{R: 58, G: 58, B: 58, A: 0xFF}, color.RGBA{R: 84, G: 84, B: 84, A: 0xFF}
)

func bgPattern(x, y int) color.RGBA {
	const boxSize = 8
	if (x/boxSize)%2 == (y/boxSize)%2 {
		return bgDark
	}
	return bgLight
}

// Sheet renders one row per result, the icon before the filters on the left
// and after on the right. Icons are scaled to fit a cell x cell square,
// keeping their aspect ratio.
func Sheet(results []icons.Result, cell int) *image.RGBA {
	w := 2*cell + 3*Padding
	h := len(results)*(cell+Padding) + Padding
	sheet := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			sheet.SetRGBA(x, y, bgPattern(x, y))
		}
	}

	for row, r := range results {
		top := Padding + row*(cell+Padding)
		for col, img := range []image.Image{r.Before, r.After} {
			if img == nil {
				continue
			}
			left := Padding + col*(cell+Padding)
			dst := fit(img.Bounds(), image.Rect(left, top, left+cell, top+cell))
			draw.CatmullRom.Scale(sheet, dst, img, img.Bounds(), draw.Over, nil)
		}
	}
	glog.V(2).Infof("Preview sheet: %d icons, %dx%d", len(results), w, h)
	return sheet
}

// fit returns the largest rectangle with the aspect ratio of src centered
// in cell.
func fit(src, cell image.Rectangle) image.Rectangle {
	if src.Empty() {
		return image.Rectangle{}
	}
	scale := math.Min(float64(cell.Dx())/float64(src.Dx()), float64(cell.Dy())/float64(src.Dy()))
	w := int(math.Round(float64(src.Dx()) * scale))
	h := int(math.Round(float64(src.Dy()) * scale))
	corner := cell.Min.Add(image.Pt((cell.Dx()-w)/2, (cell.Dy()-h)/2))
	return image.Rectangle{Min: corner, Max: corner.Add(image.Pt(w, h))}
}
