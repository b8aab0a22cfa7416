// BYZRA ⸻ internal/apply/plan.go
// generate, resolve and perturb one record per file

package apply

import (
	"errors"
	"path/filepath"
	"strings"
	"time"

	"mirage/internal/catalog"
	"mirage/internal/metadata"
	"mirage/internal/perturb"
	"mirage/internal/resolve"
	"mirage/internal/synth"
)

type PlanOptions struct {
	// vary each file's record; off gives every file its own fresh draw only
	Perturb bool

	// restore explicitly set fields after perturbation
	KeepExplicit bool
}

type Planner struct {
	gen      *synth.Generator
	resolver *resolve.Resolver
	engine   *perturb.Engine
	opts     PlanOptions
	now      func() time.Time
}

func NewPlanner(cat *catalog.Catalog, gen *synth.Generator, opts PlanOptions) *Planner {
	return &Planner{
		gen:      gen,
		resolver: resolve.New(cat),
		engine:   perturb.New(cat),
		opts:     opts,
		now:      time.Now,
	}
}

// Plan builds one item per file, in order.
//
// The returned items are always complete. err joins the rejected directives,
// one per field however many files hit it.
func (p *Planner) Plan(files []string, directives metadata.Directives) ([]Item, error) {
	items := make([]Item, 0, len(files))
	reported := map[metadata.Field]bool{}
	var errs []error

	for _, file := range files {
		dirs := expandDirectives(directives, file, p.now())

		rec, err := p.resolver.Resolve(dirs, p.gen.Generate())
		errs = appendFieldErrors(errs, reported, err)

		if p.opts.Perturb {
			varied := p.engine.Perturb(rec, file)
			if p.opts.KeepExplicit {
				for f, d := range dirs {
					if d.Kind == metadata.Explicit && !failedField(err, f) {
						varied.Set(f, rec.Get(f))
					}
				}
			}
			rec = varied
		}

		items = append(items, Item{File: file, Record: rec})
	}

	return items, errors.Join(errs...)
}

// copies directives with per-file placeholders filled in:
// {{now}} the current exif timestamp, {{name}} the file name without extension
func expandDirectives(in metadata.Directives, file string, now time.Time) metadata.Directives {
	out := make(metadata.Directives, len(in))
	name := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))

	for f, d := range in {
		if d.Kind == metadata.Explicit && strings.Contains(d.Value, "{{") {
			v := strings.ReplaceAll(d.Value, "{{now}}", now.Format(synth.DateTimeLayout))
			d = metadata.ExplicitValue(strings.ReplaceAll(v, "{{name}}", name))
		}
		out[f] = d
	}
	return out
}

func appendFieldErrors(errs []error, reported map[metadata.Field]bool, err error) []error {
	if err == nil {
		return errs
	}

	joined, ok := err.(interface{ Unwrap() []error })
	if !ok {
		return append(errs, err)
	}

	for _, e := range joined.Unwrap() {
		f, ok := metadata.ErrorField(e)
		if ok && reported[f] {
			continue
		}
		if ok {
			reported[f] = true
		}
		errs = append(errs, e)
	}
	return errs
}

func failedField(err error, f metadata.Field) bool {
	joined, ok := err.(interface{ Unwrap() []error })
	if !ok {
		return false
	}
	for _, e := range joined.Unwrap() {
		if got, ok := metadata.ErrorField(e); ok && got == f {
			return true
		}
	}
	return false
}
