// BYZRA ⸻ cmd/mirage/commands.go
// generate, apply, inspect, catalog, daemon and init

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"mirage/internal/analyse"
	"mirage/internal/apply"
	"mirage/internal/config"
	"mirage/internal/daemon"
	"mirage/internal/metadata"
	"mirage/internal/resolve"
	"mirage/internal/util"
)

func setup(args []string) (cliOptions, *app, int) {
	opts, err := parseOptions(args)
	if err != nil {
		fail(err.Error())
		return opts, nil, 1
	}
	a, err := newApp(opts)
	if err != nil {
		fail(err.Error())
		return opts, nil, 1
	}
	return opts, a, 0
}

func runGenerate(args []string) int {
	opts, a, code := setup(args)
	if a == nil {
		return code
	}
	defer a.close()

	dirs, err := a.directives(opts)
	if err != nil {
		return fail(err.Error())
	}

	gen := a.generator(opts)
	resolver := resolve.New(a.cat)

	records := make([]metadata.Record, 0, opts.count)
	var rejected error
	for range opts.count {
		rec, err := resolver.Resolve(dirs, gen.Generate())
		if err != nil && rejected == nil {
			rejected = err
		}
		records = append(records, rec)
	}
	if rejected != nil {
		warnDirectives(rejected)
	}

	if opts.json {
		out := make([]map[string]string, 0, len(records))
		for _, rec := range records {
			out = append(out, rec.Strings())
		}
		return printJSON(out)
	}

	for i, rec := range records {
		if i > 0 {
			fmt.Println(util.Divider)
		}
		fmt.Printf("%s %s\n", util.Ornament, util.NSH.Render(fmt.Sprintf("Record %d/%d", i+1, len(records))))
		fmt.Print(apply.FormatRecord(rec, a.cat, a.locale))
	}
	return 0
}

type plannedFile struct {
	File   string            `json:"file"`
	Fields map[string]string `json:"fields"`
}

func runApply(args []string) int {
	opts, a, code := setup(args)
	if a == nil {
		return code
	}
	defer a.close()

	if len(opts.args) == 0 {
		fmt.Println(util.SUB.Render("Usage: mirage apply <file|dir>... [options]"))
		return fail("No files specified")
	}

	files, err := util.ExpandTargets(opts.args)
	if err != nil {
		return fail(err.Error())
	}
	if len(files) == 0 {
		return fail("No images found in " + strings.Join(opts.args, ", "))
	}

	dirs, err := a.directives(opts)
	if err != nil {
		return fail(err.Error())
	}

	items, err := a.planner(opts).Plan(files, dirs)
	if err != nil {
		warnDirectives(err)
	}

	if opts.dryRun {
		return printPlan(a, items, opts.json)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var progress apply.Progress
	if !opts.json {
		fmt.Println(util.NSH.Render(fmt.Sprintf("[~] Applying to %d files", len(items))))
		progress = util.NewProgressBar().Update
	}

	report, err := a.coordinator(opts).ApplyBatch(ctx, items, progress)

	if opts.json {
		if code := printJSON(apply.NewSummary(report)); code != 0 {
			return code
		}
	} else {
		fmt.Println(apply.FormatReport(report, a.cat, a.locale))
	}

	if err != nil {
		return fail(err.Error())
	}
	if report.Cancelled {
		return 130
	}
	return 0
}

func printPlan(a *app, items []apply.Item, asJSON bool) int {
	if asJSON {
		out := make([]plannedFile, 0, len(items))
		for _, it := range items {
			out = append(out, plannedFile{File: it.File, Fields: it.Record.Strings()})
		}
		return printJSON(out)
	}

	fmt.Println(util.NSH.Render("[i] Dry run, nothing is written"))
	for _, it := range items {
		fmt.Println(util.Divider)
		fmt.Printf("%s %s\n", util.Ornament, util.NSH.Render(filepath.Base(it.File)))
		fmt.Print(apply.FormatRecord(it.Record, a.cat, a.locale))
	}
	return 0
}

type inspectedFile struct {
	File      string            `json:"file"`
	MimeType  string            `json:"mime_type,omitempty"`
	Source    string            `json:"source,omitempty"`
	Fields    map[string]string `json:"fields,omitempty"`
	Sensitive []string          `json:"sensitive,omitempty"`
	Error     string            `json:"error,omitempty"`
}

func runInspect(args []string) int {
	opts, a, code := setup(args)
	if a == nil {
		return code
	}
	defer a.close()

	if len(opts.args) == 0 {
		fmt.Println(util.SUB.Render("Usage: mirage inspect <file|dir>... [--all] [--plain] [--json]"))
		return fail("No file specified for inspection")
	}

	files, err := util.ExpandTargets(opts.args)
	if err != nil {
		return fail(err.Error())
	}

	var reader analyse.Reader
	if et, err := util.OpenExifTool(a.cfg.ExifTool.Path); err != nil {
		warn("exiftool unavailable, reading EXIF in-process: " + err.Error())
	} else {
		defer et.Close()
		reader = et
	}

	if opts.json {
		out := make([]inspectedFile, 0, len(files))
		for _, r := range analyse.InspectFiles(files, reader) {
			entry := inspectedFile{File: r.Path}
			if r.Err != nil {
				entry.Error = r.Err.Error()
			} else {
				entry.MimeType = r.FileType.MimeType
				entry.Source = r.Source
				entry.Fields = r.Current.Strings()
				entry.Sensitive = r.SensitiveFields
			}
			out = append(out, entry)
		}
		return printJSON(out)
	}

	failures := 0
	for _, path := range files {
		result, err := util.SpinWhile("[~] Reading metadata", func() (string, error) {
			report, err := analyse.Inspect(path, reader)
			if err != nil {
				return "", err
			}
			if opts.plain {
				return analyse.GenerateSimplifiedReport(report), nil
			}
			return analyse.GenerateReport(report, a.cat, a.locale, opts.all), nil
		})
		if err != nil {
			fail(fmt.Sprintf("Inspection of %s failed: %v", path, err))
			failures++
			continue
		}
		fmt.Println(result)
	}

	if failures == len(files) {
		return 1
	}
	return 0
}

type makeEntry struct {
	Make     string   `json:"make"`
	Class    string   `json:"class"`
	Models   []string `json:"models"`
	Software []string `json:"software,omitempty"`
	Lenses   []string `json:"lenses,omitempty"`
}

func runCatalog(args []string) int {
	opts, a, code := setup(args)
	if a == nil {
		return code
	}
	defer a.close()

	if len(opts.args) == 0 {
		var entries []makeEntry
		for _, brand := range a.cat.Makes() {
			p, _ := a.cat.Profile(brand)
			entries = append(entries, makeEntry{Make: brand, Class: p.Class.String(), Models: p.Models})
		}
		if opts.json {
			return printJSON(entries)
		}
		for _, e := range entries {
			fmt.Printf("%s %-12s %s %s\n", util.Ornament, util.NSH.Render(e.Make),
				util.SUB.Render(e.Class), util.SUB.Render(fmt.Sprintf("(%d models)", len(e.Models))))
		}
		return 0
	}

	brand := opts.args[0]
	p, ok := a.cat.Profile(brand)
	if !ok {
		return fail("Unknown make: " + brand)
	}
	entry := makeEntry{
		Make:     p.Make,
		Class:    p.Class.String(),
		Models:   p.Models,
		Software: a.cat.SoftwareFor(p.Make),
		Lenses:   a.cat.LensesFor(p.Make),
	}
	if opts.json {
		return printJSON(entry)
	}

	fmt.Printf("%s %s\n\n", util.SHE.Render(entry.Make), util.SUB.Render(entry.Class))
	for _, section := range []struct {
		title  string
		values []string
	}{
		{"Models", entry.Models},
		{"Software", entry.Software},
		{"Lenses", entry.Lenses},
	} {
		fmt.Println(util.SEC.Render("== " + section.title + " =="))
		for _, v := range section.values {
			fmt.Printf("  %s %s\n", util.Ornament, v)
		}
	}
	return 0
}

func runDaemon(args []string) int {
	if len(args) < 1 {
		fmt.Println(util.SUB.Render("Usage: mirage daemon [on|off|status]"))
		return fail("Daemon mode requires a subcommand")
	}

	pidFile, err := daemon.DefaultPIDFile()
	if err != nil {
		return fail(err.Error())
	}

	switch args[0] {
	case "on", "start":
		return daemonOn(pidFile)

	case "off", "stop":
		pid, err := daemon.StopProcess(pidFile)
		if errors.Is(err, daemon.ErrNotRunning) {
			fmt.Println(util.NSH.Render("[!] Daemon is not running"))
			return 0
		}
		if err != nil {
			return fail(err.Error())
		}
		fmt.Println(util.NSH.Render(fmt.Sprintf("[✓] Daemon stopped (PID %d)", pid)))

	case "status":
		pid, err := daemon.RunningPID(pidFile)
		if err != nil {
			fmt.Println(util.NSH.Render("[...] Daemon is not running"))
			return 0
		}
		fmt.Println(util.NSH.Render(fmt.Sprintf("[...] Daemon is running (PID %d)", pid)))

	default:
		fmt.Println(util.SUB.Render("Usage: mirage daemon [on|off|status]"))
		return fail("Unknown daemon command: " + args[0])
	}
	return 0
}

// runs in the foreground until SIGINT or SIGTERM
func daemonOn(pidFile string) int {
	if pid, err := daemon.RunningPID(pidFile); err == nil {
		fmt.Println(util.NSH.Render(fmt.Sprintf("[!] Daemon is already running (PID %d)", pid)))
		return 0
	}

	a, err := newApp(cliOptions{})
	if err != nil {
		return fail(err.Error())
	}
	defer a.close()

	dirs, err := a.watchDirectives()
	if err != nil {
		return fail(err.Error())
	}

	options := daemon.DefaultWatchOptions()
	options.Extensions = a.cfg.Watch.Extensions

	d := daemon.NewDaemon(a.cfg.Watch.Paths, options, a.planner(cliOptions{}), a.coordinator(cliOptions{}), dirs, a.logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Println(util.NSH.Render("[~] Starting daemon..."))
	if err := d.Start(ctx); err != nil {
		return fail("Failed to start daemon: " + err.Error())
	}

	if err := daemon.WritePID(pidFile, os.Getpid()); err != nil {
		warn(err.Error())
	}
	defer os.Remove(pidFile)

	status := d.Status()
	fmt.Println(util.NSH.Render("[✓] Daemon started, watching " + strings.Join(status.WatchedDirs, ", ")))

	<-ctx.Done()
	if err := d.Stop(); err != nil {
		return fail(err.Error())
	}
	fmt.Println(util.NSH.Render("[✓] Daemon stopped"))
	return 0
}

func runInit() int {
	dir, err := config.SetupConfigDir()
	if err != nil {
		return fail("Could not create config directory: " + err.Error())
	}

	path := filepath.Join(dir, "mirage.toml")
	if _, err := os.Stat(path); err == nil {
		fmt.Println(util.NSH.Render("[!] Config already exists: " + path))
		return 0
	}

	if err := config.SaveConfig(config.Default(), path); err != nil {
		return fail("Could not write config: " + err.Error())
	}
	fmt.Println(util.LBL.Render("[✓] Wrote " + path))
	return 0
}
