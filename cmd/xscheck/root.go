package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"unicode"

	"github.com/spf13/cobra"

	"github.com/xs-lang/xscheck/checker"
	"github.com/xs-lang/xscheck/diag"
	"github.com/xs-lang/xscheck/prelude"
	"github.com/xs-lang/xscheck/span"
	"github.com/xs-lang/xscheck/xsenv"
)

// Set at build time via -ldflags; surfaced by --version (name, version,
// description, authors, build date).
var (
	version     = "dev"
	buildDate   = "unknown"
	description = "static analyzer for XS scripting files"
	authors     = "xscheck contributors"
)

type options struct {
	ignores       []string
	extraPreludes []string
	includeDirs   []string
	configPath    string
	watch         bool
	json          bool
	noColor       bool
	cacheFile     string
	debug         bool
	showVersion   bool
}

func newRootCmd() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:           "xscheck [FILE]",
		Short:         "Static analyzer for XS scripting files",
		Args:          cobra.MaximumNArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRoot(cmd, args, &opts)
		},
	}

	cmd.Flags().StringSliceVar(&opts.ignores, "ignores", nil, "comma/space-separated warning names to ignore")
	cmd.Flags().StringArrayVar(&opts.extraPreludes, "extra-prelude-path", nil, "additional prelude file, checked before the main file")
	cmd.Flags().StringArrayVarP(&opts.includeDirs, "include-dir", "I", nil, "directory searched for include statements, in order")
	cmd.Flags().StringVar(&opts.configPath, "config", "", "path to xscheck.yaml (default: ./xscheck.yaml if present)")
	cmd.Flags().BoolVar(&opts.watch, "watch", false, "re-check on file change")
	cmd.Flags().BoolVar(&opts.json, "json", false, "emit diagnostics as a JSON array instead of a text report")
	cmd.Flags().BoolVar(&opts.noColor, "no-color", false, "disable colored output")
	cmd.Flags().StringVar(&opts.cacheFile, "cache-file", "", "persist per-file diagnostics to this path across invocations")
	cmd.Flags().BoolVar(&opts.debug, "debug", false, "enable debug logging to stderr")
	cmd.Flags().BoolVar(&opts.showVersion, "version", false, "print version information and exit")

	return cmd
}

func runRoot(cmd *cobra.Command, args []string, opts *options) error {
	if opts.showVersion {
		fmt.Fprintf(cmd.OutOrStdout(), "xscheck %s\n%s\nauthors: %s\nbuilt: %s\n", version, description, authors, buildDate)
		return nil
	}

	if opts.debug {
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))
	}

	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		return err
	}

	includeDirs := overrideList(cfg.IncludeDirs, opts.includeDirs)
	ignoreNames := overrideList(cfg.Ignores, splitIgnores(opts.ignores))
	extraPreludes := overrideList(cfg.ExtraPreludes, opts.extraPreludes)

	ignoreCodes := make(map[diag.WarningKind]bool, len(ignoreNames))
	for _, name := range ignoreNames {
		code, ok := diag.LookupWarning(name)
		if !ok {
			return fmt.Errorf("unrecognized warning name %q in --ignores", name)
		}
		ignoreCodes[code] = true
	}

	targets := cfg.Files
	if len(args) == 1 {
		targets = []string{args[0]}
	}
	if len(targets) == 0 {
		return cmd.Help()
	}

	useColor := ShouldUseColor(opts.noColor)

	runPass := func() int {
		exitCode := 0
		for _, target := range targets {
			failed, err := checkOne(cmd, target, includeDirs, extraPreludes, ignoreCodes, opts, useColor)
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", target, err)
				exitCode = 1
				continue
			}
			if failed {
				exitCode = 1
			}
		}
		return exitCode
	}

	if opts.watch {
		if len(targets) != 1 {
			return fmt.Errorf("--watch requires exactly one file")
		}
		return watch(targets[0], includeDirs, func() { runPass() })
	}

	if code := runPass(); code != 0 {
		return fmt.Errorf("xscheck found diagnostics")
	}
	return nil
}

// overrideList returns cli if any CLI values were given, otherwise cfg.
// A CLI flag replaces its config counterpart outright rather than
// merging with it.
func overrideList(cfg, cli []string) []string {
	if len(cli) > 0 {
		return cli
	}
	return cfg
}

// splitIgnores splits each --ignores value on commas and whitespace, so
// `--ignores "DupCase NumDownCast"` and `--ignores DupCase,NumDownCast`
// both work.
func splitIgnores(raw []string) []string {
	var out []string
	for _, r := range raw {
		out = append(out, strings.FieldsFunc(r, func(c rune) bool { return c == ',' || unicode.IsSpace(c) })...)
	}
	return out
}

// checkOne runs the full pipeline against one target file and reports
// its diagnostics, returning whether the run should fail the process.
func checkOne(cmd *cobra.Command, target string, includeDirs, extraPreludes []string, ignoreCodes map[diag.WarningKind]bool, opts *options, useColor bool) (bool, error) {
	if _, err := os.Stat(target); err != nil {
		return false, fmt.Errorf("reading %s: %w", target, err)
	}
	c := checker.New()
	env := xsenv.New()
	env.IncludeDirs = includeDirs
	if len(ignoreCodes) > 0 {
		env.TempIgnore(ignoreCodes)
	}

	prelude.Seed(c, env)
	for _, path := range extraPreludes {
		src, err := os.ReadFile(path)
		if err != nil {
			return false, fmt.Errorf("reading extra prelude %s: %w", path, err)
		}
		prelude.SeedExtra(c, env, path, string(src))
	}

	var persisted *xsenv.PersistedCache
	var targetHash []byte
	if opts.cacheFile != "" {
		var err error
		persisted, err = xsenv.LoadPersistedCache(opts.cacheFile)
		if err != nil {
			return false, fmt.Errorf("loading cache file: %w", err)
		}
		if raw, err := os.ReadFile(target); err == nil {
			src := string(raw)
			c.Src.Set(target, src)
			targetHash = xsenv.Hash(src)
			if cached, ok := persisted.Lookup(target, targetHash); ok {
				return report(cmd.OutOrStdout(), cached, c, useColor, opts.json), nil
			}
		}
	}

	c.CheckPath(target, span.Zero, env, checker.TopLevel())

	if persisted != nil && targetHash != nil {
		persisted.Store(target, targetHash, env.Diagnostics)
		if err := persisted.Save(opts.cacheFile); err != nil {
			return false, fmt.Errorf("saving cache file: %w", err)
		}
	}

	return report(cmd.OutOrStdout(), env.Diagnostics, c, useColor, opts.json), nil
}
