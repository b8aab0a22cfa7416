// BYZRA ⸻ cmd/mirage/options.go
// command line flags shared by the subcommands

package main

import (
	"fmt"
	"strconv"
	"strings"
)

type cliOptions struct {
	args []string

	sets   []string
	preset string
	count  int
	seed   uint64
	seeded bool
	locale string

	json         bool
	noPerturb    bool
	keepExplicit bool
	dryRun       bool
	verify       bool
	backup       bool
	all          bool
	plain        bool
}

// flags may appear anywhere; "--name=value" and "--name value" both work
func parseOptions(args []string) (cliOptions, error) {
	opts := cliOptions{count: 1}

	for i := 0; i < len(args); i++ {
		arg := args[i]

		name, inline, hasInline := arg, "", false
		if strings.HasPrefix(arg, "--") {
			name, inline, hasInline = strings.Cut(arg, "=")
		}
		value := func() (string, error) {
			if hasInline {
				return inline, nil
			}
			if i+1 >= len(args) {
				return "", fmt.Errorf("%s needs a value", name)
			}
			i++
			return args[i], nil
		}

		var err error
		switch name {
		case "--set", "-s":
			var v string
			if v, err = value(); err == nil {
				opts.sets = append(opts.sets, v)
			}
		case "--preset", "-p":
			opts.preset, err = value()
		case "--locale":
			opts.locale, err = value()
		case "-n", "--count":
			var v string
			if v, err = value(); err == nil {
				opts.count, err = strconv.Atoi(v)
				if err == nil && opts.count < 1 {
					err = fmt.Errorf("count must be at least 1")
				}
			}
		case "--seed":
			var v string
			if v, err = value(); err == nil {
				opts.seed, err = strconv.ParseUint(v, 10, 64)
				opts.seeded = err == nil
			}
		case "--json":
			opts.json = true
		case "--no-perturb":
			opts.noPerturb = true
		case "--keep-explicit":
			opts.keepExplicit = true
		case "--dry-run":
			opts.dryRun = true
		case "--verify":
			opts.verify = true
		case "--backup":
			opts.backup = true
		case "--all":
			opts.all = true
		case "--plain":
			opts.plain = true
		default:
			if strings.HasPrefix(arg, "-") && arg != "-" {
				return opts, fmt.Errorf("unknown option: %s", arg)
			}
			opts.args = append(opts.args, arg)
		}
		if err != nil {
			return opts, fmt.Errorf("%s: %w", name, err)
		}
	}

	return opts, nil
}
