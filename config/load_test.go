package config

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/janpfeifer/easylauncher/filters"
	"github.com/stretchr/testify/require"
)

const description = `
configurations:
  - name: debug
    filters:
      - type: greenRibbon
      - type: grayscale
  - name: staging
    filters:
      - type: customRibbon
        label: beta
        ribbonColor: "#6600CC"
        position: Bottom
        textSizeRatio: 0.2
        someFutureOption: ignored
      - type: overlay
        resource: badge
        fit: true
      - type: overlay
        file: overlays/star.png
      - type: overlay
        resource: badge
        fit: true
  - name: release
    enabled: false
    filters:
      - type: redRibbon
        label: prod
`

func writeOverlay(t *testing.T, dir string) {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	img.SetNRGBA(1, 1, color.NRGBA{R: 0xff, A: 0xff})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "overlays"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "overlays", "star.png"), buf.Bytes(), 0644))
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	writeOverlay(t, dir)
	path := filepath.Join(dir, "easylauncher.yaml")
	require.NoError(t, os.WriteFile(path, []byte(description), 0644))

	configs, err := Load(path)
	require.NoError(t, err)
	require.Len(t, configs, 3)

	debug, found := Find(configs, "debug")
	require.True(t, found)
	require.True(t, debug.Enabled())
	require.Equal(t, []filters.Filter{
		filters.ColorRibbon{Label: "debug", RibbonColor: GreenRibbon, LabelColor: White},
		filters.Grayscale{},
	}, debug.Filters())

	staging, found := Find(configs, "staging")
	require.True(t, found)
	fs := staging.Filters()
	// The second badge overlay is the same filter as the first.
	require.Len(t, fs, 3)
	require.Equal(t, filters.ColorRibbon{
		Label:         "beta",
		RibbonColor:   color.NRGBA{R: 0x66, B: 0xcc, A: 0xff},
		LabelColor:    White,
		Gravity:       filters.Bottom,
		TextSizeRatio: 0.2,
	}, fs[0])
	badge := fs[1].(filters.Overlay)
	require.Equal(t, "badge.png", badge.Name)
	require.NotNil(t, badge.Scaler)
	star := fs[2].(filters.Overlay)
	require.Equal(t, "star.png", star.Name)
	require.Nil(t, star.Scaler)
	require.Equal(t, image.Rect(0, 0, 4, 4), star.Foreground.Bounds())

	release, found := Find(configs, "release")
	require.True(t, found)
	require.False(t, release.Enabled())
	require.Equal(t, "prod", release.Filters()[0].(filters.ColorRibbon).Label)

	_, found = Find(configs, "qa")
	require.False(t, found)
}

func TestParseErrors(t *testing.T) {
	testCases := []struct {
		name, yaml string
		want       error
	}{
		{"bad color", `
configurations:
  - name: debug
    filters:
      - type: customRibbon
        ribbonColor: "#GG0000"`, filters.ErrInvalidColor},
		{"bad position", `
configurations:
  - name: debug
    filters:
      - type: customRibbon
        position: middle`, filters.ErrUnknownGravity},
		{"unknown type", `
configurations:
  - name: debug
    filters:
      - type: sepia`, ErrInvalidDeclaration},
		{"no name", `
configurations:
  - filters:
      - type: grayscale`, ErrInvalidDeclaration},
		{"duplicate", `
configurations:
  - name: debug
  - name: debug`, ErrInvalidDeclaration},
		{"overlay without image", `
configurations:
  - name: debug
    filters:
      - type: overlay`, ErrInvalidDeclaration},
		{"unknown resource", `
configurations:
  - name: debug
    filters:
      - type: overlay
        resource: sticker`, ErrInvalidDeclaration},
		{"missing file", `
configurations:
  - name: debug
    filters:
      - type: overlay
        file: nowhere.png`, filters.ErrInvalidResource},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.yaml), t.TempDir())
			require.ErrorIs(t, err, tc.want)
		})
	}

	_, err := Parse([]byte("configurations: [oops"), ".")
	require.Error(t, err)

	configs, err := Parse(nil, ".")
	require.NoError(t, err)
	require.Empty(t, configs)
}
