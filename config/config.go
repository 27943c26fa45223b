// Package config holds the per build variant configuration of which
// filters to draw over the launcher icons.
//
// A Builder collects the declarations for one variant and produces an
// immutable Configuration, which is then applied to each icon.
package config

import (
	"image/draw"

	"github.com/golang/glog"
	"github.com/janpfeifer/easylauncher/filters"
)

// Configuration is the immutable set of filters of one build variant.
type Configuration struct {
	name    string
	enabled bool
	filters []filters.Filter
}

// Name of the build variant the configuration belongs to.
func (c Configuration) Name() string { return c.name }

// Enabled reports whether the filters are applied at all.
func (c Configuration) Enabled() bool { return c.enabled }

// Filters returns a copy of the filters, in the order they were added.
func (c Configuration) Filters() []filters.Filter {
	return append([]filters.Filter(nil), c.filters...)
}

// Apply draws every filter, in order, on dst. It does nothing, and returns
// false, if the configuration is disabled or has no filters.
func (c Configuration) Apply(dst draw.Image, adaptive bool) bool {
	if !c.enabled || len(c.filters) == 0 {
		glog.V(2).Infof("Configuration %q: nothing to apply (enabled=%v, %d filters)", c.name, c.enabled, len(c.filters))
		return false
	}
	for _, f := range c.filters {
		f.Apply(dst, adaptive)
	}
	return true
}

// Builder accumulates the declarations of one configuration. A new Builder
// is enabled and has no filters.
type Builder struct {
	name    string
	enabled bool
	filters []filters.Filter
}

// NewBuilder starts the configuration of the build variant name.
func NewBuilder(name string) *Builder {
	return &Builder{name: name, enabled: true}
}

// Name of the build variant being configured.
func (b *Builder) Name() string { return b.name }

// Enable sets whether the configuration's filters are applied.
func (b *Builder) Enable(enabled bool) *Builder {
	b.enabled = enabled
	return b
}

// ReplaceFilters discards all filters added so far and adds fs instead.
func (b *Builder) ReplaceFilters(fs ...filters.Filter) *Builder {
	b.filters = nil
	return b.Filters(fs...)
}

// AddFilter appends f to the set, unless an equal filter is already there.
func (b *Builder) AddFilter(f filters.Filter) *Builder {
	if f == nil {
		return b
	}
	for _, existing := range b.filters {
		if filters.Equal(existing, f) {
			glog.V(2).Infof("Configuration %q: ignoring duplicate filter %+v", b.name, f)
			return b
		}
	}
	b.filters = append(b.filters, f)
	return b
}

// Filters appends each of fs with AddFilter.
func (b *Builder) Filters(fs ...filters.Filter) *Builder {
	for _, f := range fs {
		b.AddFilter(f)
	}
	return b
}

// Build returns the configuration declared so far. The Builder can keep
// being used afterwards without affecting the returned value.
func (b *Builder) Build() Configuration {
	return Configuration{
		name:    b.name,
		enabled: b.enabled,
		filters: append([]filters.Filter(nil), b.filters...),
	}
}
