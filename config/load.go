package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/golang/glog"
	"github.com/janpfeifer/easylauncher/filters"
	"github.com/janpfeifer/easylauncher/resources"
	"gopkg.in/yaml.v3"
)

// ErrInvalidDeclaration is returned for build descriptions that don't
// describe valid configurations.
var ErrInvalidDeclaration = errors.New("invalid declaration")

// Filter types accepted in FilterDeclaration.Type.
const (
	TypeGrayscale    = "grayscale"
	TypeOverlay      = "overlay"
	TypeCustomRibbon = "customRibbon"
	TypeGrayRibbon   = "grayRibbon"
	TypeGreenRibbon  = "greenRibbon"
	TypeOrangeRibbon = "orangeRibbon"
	TypeYellowRibbon = "yellowRibbon"
	TypeRedRibbon    = "redRibbon"
	TypeBlueRibbon   = "blueRibbon"
)

// Description is the YAML build description, e.g.:
//
//	configurations:
//	  - name: debug
//	    filters:
//	      - type: greenRibbon
//	  - name: staging
//	    filters:
//	      - type: customRibbon
//	        ribbonColor: "#6600CC"
//	        position: bottom
//	      - type: overlay
//	        resource: badge
//	        fit: true
//	  - name: release
//	    enabled: false
type Description struct {
	Configurations []Declaration `yaml:"configurations"`
}

// Declaration of the configuration of one build variant.
type Declaration struct {
	Name string `yaml:"name"`

	// Enabled defaults to true.
	Enabled *bool `yaml:"enabled"`

	Filters []FilterDeclaration `yaml:"filters"`
}

// FilterDeclaration declares one filter. Ribbon types read the ribbon
// options, and the presets only their label. Overlays take either a File,
// relative to the description, or the name of an embedded Resource.
type FilterDeclaration struct {
	Type string `yaml:"type"`

	RibbonOptions `yaml:",inline"`

	File     string `yaml:"file"`
	Resource string `yaml:"resource"`
	Fit      bool   `yaml:"fit"`
}

// Load reads the build description in path.
func Load(path string) ([]Configuration, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read build description: %w", err)
	}
	configs, err := Parse(data, filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return configs, nil
}

// Parse builds the configurations declared in the YAML data. Overlay files
// are relative to baseDir.
func Parse(data []byte, baseDir string) ([]Configuration, error) {
	var desc Description
	dec := yaml.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&desc); err != nil && err != io.EOF {
		return nil, fmt.Errorf("parse build description: %w", err)
	}

	configs := make([]Configuration, 0, len(desc.Configurations))
	seen := make(map[string]bool)
	for ii, decl := range desc.Configurations {
		if decl.Name == "" {
			return nil, fmt.Errorf("%w: configuration #%d has no name", ErrInvalidDeclaration, ii)
		}
		if seen[decl.Name] {
			return nil, fmt.Errorf("%w: configuration %q declared twice", ErrInvalidDeclaration, decl.Name)
		}
		seen[decl.Name] = true
		c, err := decl.build(baseDir)
		if err != nil {
			return nil, err
		}
		glog.V(2).Infof("Declared configuration %q: enabled=%v, %d filters", c.Name(), c.Enabled(), len(c.filters))
		configs = append(configs, c)
	}
	return configs, nil
}

func (decl Declaration) build(baseDir string) (Configuration, error) {
	b := NewBuilder(decl.Name)
	if decl.Enabled != nil {
		b.Enable(*decl.Enabled)
	}
	for ii, fd := range decl.Filters {
		f, err := fd.build(b, baseDir)
		if err != nil {
			return Configuration{}, fmt.Errorf("filter #%d (%s): %w", ii, fd.Type, err)
		}
		b.AddFilter(f)
	}
	return b.Build(), nil
}

func (fd FilterDeclaration) build(b *Builder, baseDir string) (filters.Filter, error) {
	switch fd.Type {
	case TypeGrayscale:
		return b.GrayscaleFilter(), nil
	case TypeCustomRibbon:
		return b.CustomRibbon(fd.RibbonOptions)
	case TypeGrayRibbon:
		return b.GrayRibbonFilter(fd.Label), nil
	case TypeGreenRibbon:
		return b.GreenRibbonFilter(fd.Label), nil
	case TypeOrangeRibbon:
		return b.OrangeRibbonFilter(fd.Label), nil
	case TypeYellowRibbon:
		return b.YellowRibbonFilter(fd.Label), nil
	case TypeRedRibbon:
		return b.RedRibbonFilter(fd.Label), nil
	case TypeBlueRibbon:
		return b.BlueRibbonFilter(fd.Label), nil
	case TypeOverlay:
		switch {
		case fd.File != "" && fd.Resource != "":
			return nil, fmt.Errorf("%w: overlay takes either a file or a resource, not both", ErrInvalidDeclaration)
		case fd.Resource != "":
			res, err := resources.Lookup(fd.Resource)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrInvalidDeclaration, err)
			}
			return b.OverlayFilter(res, fd.Fit)
		case fd.File != "":
			path := fd.File
			if !filepath.IsAbs(path) {
				path = filepath.Join(baseDir, path)
			}
			return b.OverlayFilterFromPath(path, fd.Fit)
		}
		return nil, fmt.Errorf("%w: overlay needs a file or a resource", ErrInvalidDeclaration)
	}
	return nil, fmt.Errorf("%w: unknown filter type %q", ErrInvalidDeclaration, fd.Type)
}

// Find returns the configuration of the build variant name.
func Find(configs []Configuration, name string) (Configuration, bool) {
	for _, c := range configs {
		if c.name == name {
			return c, true
		}
	}
	return Configuration{}, false
}
