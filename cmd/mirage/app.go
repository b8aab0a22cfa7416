// BYZRA ⸻ cmd/mirage/app.go
// configuration, catalog and logger shared by the commands

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"math/rand/v2"
	"os"

	"mirage/internal/apply"
	"mirage/internal/catalog"
	"mirage/internal/config"
	"mirage/internal/metadata"
	"mirage/internal/synth"
	"mirage/internal/util"
)

// rotate the log before it grows past this
const maxLogSize = 5 << 20

type app struct {
	cfg    *config.Config
	cat    *catalog.Catalog
	locale catalog.Locale
	logger *util.Logger
}

func newApp(opts cliOptions) (*app, error) {
	cfg, _, err := config.Load()
	if err != nil {
		return nil, err
	}

	cat := catalog.Default()
	if err := cfg.ApplyCatalog(cat); err != nil {
		return nil, err
	}

	if opts.locale != "" {
		cfg.Generate.Locale = opts.locale
	}
	locale, err := cfg.Locale()
	if err != nil {
		return nil, err
	}

	level, err := util.ParseLogLevel(cfg.Log.Level)
	if err != nil {
		level = util.LevelInfo
	}
	logger, err := util.NewLogger(cfg.Log.Path, level)
	if err != nil {
		warn(fmt.Sprintf("logging disabled: %v", err))
		logger = nil
	}
	if info, err := os.Stat(cfg.Log.Path); err == nil && info.Size() > maxLogSize {
		if err := logger.Rotate(); err != nil {
			warn(fmt.Sprintf("log rotation failed: %v", err))
		}
	}

	return &app{cfg: cfg, cat: cat, locale: locale, logger: logger}, nil
}

func (a *app) close() {
	a.logger.Close()
}

func (a *app) generator(opts cliOptions) *synth.Generator {
	gopts := []synth.Option{synth.WithLocale(a.locale)}
	if opts.seeded {
		gopts = append(gopts, synth.WithRand(rand.New(rand.NewPCG(opts.seed, ^opts.seed))))
	}
	return synth.New(a.cat, gopts...)
}

// config [directives], then the preset, then --set, later wins
func (a *app) directives(opts cliOptions) (metadata.Directives, error) {
	dirs, err := a.cfg.DirectiveMap()
	if err != nil {
		return nil, fmt.Errorf("config directives: %w", err)
	}

	if opts.preset != "" {
		preset, err := config.LoadPreset(opts.preset)
		if err != nil {
			return nil, err
		}
		maps.Copy(dirs, preset)
	}

	for _, s := range opts.sets {
		f, d, err := metadata.ParseAssignment(s)
		if err != nil {
			return nil, fmt.Errorf("--set: %w", err)
		}
		dirs[f] = d
	}

	return dirs, nil
}

// directives for the watch daemon: [watch] preset or the default preset
func (a *app) watchDirectives() (metadata.Directives, error) {
	opts := cliOptions{preset: a.cfg.Watch.Preset}
	if opts.preset == "" {
		if _, path, err := config.DefaultPreset(); err == nil {
			opts.preset = path
		}
	}
	return a.directives(opts)
}

func (a *app) planner(opts cliOptions) *apply.Planner {
	return apply.NewPlanner(a.cat, a.generator(opts), apply.PlanOptions{
		Perturb:      a.cfg.Generate.Perturb && !opts.noPerturb,
		KeepExplicit: a.cfg.Generate.KeepExplicit || opts.keepExplicit,
	})
}

func (a *app) coordinator(opts cliOptions) *apply.Coordinator {
	open := func() (apply.Writer, error) {
		et, err := util.OpenExifTool(a.cfg.ExifTool.Path)
		if err != nil {
			return nil, err
		}
		return et, nil
	}
	return apply.NewCoordinator(open, apply.Options{
		Verify: a.cfg.ExifTool.Verify || opts.verify,
		Backup: a.cfg.ExifTool.Backup || opts.backup,
		Logger: a.logger,
	})
}

// one stderr line per rejected directive
func warnDirectives(err error) {
	var errs []error
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		errs = joined.Unwrap()
	} else {
		errs = []error{err}
	}

	for _, e := range errs {
		if errors.Is(e, metadata.ErrInvalidDirective) {
			warn(e.Error() + ", using a random value")
			continue
		}
		warn(e.Error())
	}
}

func warn(msg string) {
	fmt.Fprintf(os.Stderr, "%s %s\n", util.WarningSymbol(), util.SEC.Render(msg))
}

func fail(msg string) int {
	fmt.Fprintf(os.Stderr, "%s %s\n", util.ErrorSymbol(), util.LBL.Render(msg))
	return 1
}

func printJSON(v any) int {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fail("encoding JSON: " + err.Error())
	}
	return 0
}
