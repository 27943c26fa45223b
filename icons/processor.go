package icons

import (
	"context"
	"fmt"
	"image"
	"path/filepath"
	"runtime"

	"github.com/golang/glog"
	"github.com/janpfeifer/easylauncher/config"
	"golang.org/x/sync/errgroup"
)

// Processor draws a configuration over icon files.
type Processor struct {
	Config config.Configuration

	// OutDir receives the processed icons, at the same relative paths.
	// If empty the icons are overwritten.
	OutDir string

	// Parallelism is the number of icons processed at the same time.
	// Defaults to the number of CPUs.
	Parallelism int
}

// Result of processing one icon.
type Result struct {
	Icon Icon

	// Before and After are the icon before and after the filters.
	Before, After *image.NRGBA

	// Written is false if the configuration is disabled (or empty), in which
	// case no file was written.
	Written bool
}

// Process applies the configuration to each icon and saves the result.
// Icons are independent and processed concurrently. Results are in the
// order of icons.
func (p *Processor) Process(ctx context.Context, icons []Icon) ([]Result, error) {
	parallelism := p.Parallelism
	if parallelism <= 0 {
		parallelism = runtime.NumCPU()
	}
	results := make([]Result, len(icons))
	slots := make(chan struct{}, parallelism)
	g, ctx := errgroup.WithContext(ctx)
	for ii, icon := range icons {
		ii, icon := ii, icon
		g.Go(func() error {
			select {
			case slots <- struct{}{}:
			case <-ctx.Done():
				return ctx.Err()
			}
			defer func() { <-slots }()
			if err := ctx.Err(); err != nil {
				return err
			}
			r, err := p.processOne(icon)
			if err != nil {
				return err
			}
			results[ii] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (p *Processor) processOne(icon Icon) (Result, error) {
	before, err := Load(icon.Path)
	if err != nil {
		return Result{}, err
	}
	after := image.NewNRGBA(before.Rect)
	copy(after.Pix, before.Pix)
	r := Result{Icon: icon, Before: before, After: after}
	if !p.Config.Apply(after, icon.Adaptive) {
		return r, nil
	}

	target := icon.Path
	if p.OutDir != "" {
		target = filepath.Join(p.OutDir, icon.Rel)
	}
	if err := Save(target, after); err != nil {
		return Result{}, fmt.Errorf("saving icon %q: %w", icon.Rel, err)
	}
	r.Written = true
	glog.V(2).Infof("Configuration %q: wrote %q (%dx%d, adaptive=%v)",
		p.Config.Name(), target, after.Rect.Dx(), after.Rect.Dy(), icon.Adaptive)
	return r, nil
}
