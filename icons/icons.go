// Package icons finds the launcher icons of an Android style resource
// directory and draws a configuration's filters over them.
package icons

import (
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/golang/glog"
)

// DefaultNames are the base names (without extension) of the launcher icons
// of an Android application.
var DefaultNames = []string{
	"ic_launcher",
	"ic_launcher_round",
	"ic_launcher_foreground",
	"ic_launcher_monochrome",
}

// Icon is one icon file of one density.
type Icon struct {
	// Path to the file.
	Path string

	// Rel is Path relative to the resource directory it was found in.
	Rel string

	// Adaptive is set for the foreground and monochrome layers of adaptive
	// icons, which the launcher masks.
	Adaptive bool
}

// Find returns the PNG icons under resDir whose base name is in names. Only
// "mipmap*" and "drawable*" directories are searched, as Android does.
// Icons are sorted by Rel.
func Find(resDir string, names []string) ([]Icon, error) {
	wanted := make(map[string]bool, len(names))
	for _, name := range names {
		wanted[name] = true
	}

	var icons []Icon
	err := filepath.WalkDir(resDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != resDir && !isIconDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		ext := filepath.Ext(d.Name())
		base := strings.TrimSuffix(d.Name(), ext)
		if !wanted[base] {
			return nil
		}
		if !strings.EqualFold(ext, ".png") {
			glog.V(2).Infof("Skipping %q: only PNG icons are supported", path)
			return nil
		}
		rel, err := filepath.Rel(resDir, path)
		if err != nil {
			return err
		}
		icons = append(icons, Icon{
			Path:     path,
			Rel:      rel,
			Adaptive: isAdaptiveLayer(base),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("searching icons in %q: %w", resDir, err)
	}
	sort.Slice(icons, func(i, j int) bool { return icons[i].Rel < icons[j].Rel })
	glog.V(2).Infof("Found %d icons in %q", len(icons), resDir)
	return icons, nil
}

func isIconDir(name string) bool {
	return strings.HasPrefix(name, "mipmap") || strings.HasPrefix(name, "drawable")
}

func isAdaptiveLayer(base string) bool {
	return strings.HasSuffix(base, "_foreground") || strings.HasSuffix(base, "_monochrome")
}

// Load decodes the image in path into a new, non-premultiplied surface.
func Load(path string) (*image.NRGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	src, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %q: %w", path, err)
	}
	img := image.NewNRGBA(image.Rect(0, 0, src.Bounds().Dx(), src.Bounds().Dy()))
	draw.Draw(img, img.Rect, src, src.Bounds().Min, draw.Src)
	return img, nil
}

// Save writes img as a PNG in path, creating the directories needed.
func Save(path string, img image.Image) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err = png.Encode(f, img); err != nil {
		_ = f.Close()
		return fmt.Errorf("encoding %q: %w", path, err)
	}
	return f.Close()
}
