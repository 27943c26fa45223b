package resources

// This file embeds the images that can be used as overlays without
// shipping a file along with the build description.

import (
	_ "embed"
	"fmt"
	"sort"

	"fyne.io/fyne/v2"
)

//go:embed badge.png
var embedBadge []byte

// Badge is an orange "+" disc in the bottom-right corner of a transparent
// 108x108 image, the size of an adaptive icon layer.
var Badge = fyne.NewStaticResource("badge.png", embedBadge)

var byName = map[string]fyne.Resource{
	"badge": Badge,
}

// Lookup returns the embedded resource with the given name.
func Lookup(name string) (fyne.Resource, error) {
	res, found := byName[name]
	if !found {
		return nil, fmt.Errorf("no embedded resource %q, available: %v", name, Names())
	}
	return res, nil
}

// Names lists the embedded resources, sorted.
func Names() []string {
	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
