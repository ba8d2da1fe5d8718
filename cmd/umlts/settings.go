package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"umlts/internal/compiler"
	"umlts/internal/diagfmt"
	"umlts/internal/driver"
	"umlts/internal/project"
	"umlts/internal/trace"
)

// loadOptions собирает опции: umlts.toml, затем .env и окружение, затем флаги.
// Флаги применяются только если заданы явно.
func loadOptions(cmd *cobra.Command, path string) (driver.DiagnoseOptions, *project.Config, error) {
	cfg, err := project.Load(path)
	if err != nil {
		return driver.DiagnoseOptions{}, nil, fmt.Errorf("load project config: %w", err)
	}
	opts := driver.OptionsFromProject(cfg)
	opts.Tracer = trace.FromContext(cmd.Context())

	pf := cmd.Root().PersistentFlags()
	if pf.Changed("max-diagnostics") {
		n, err := pf.GetInt("max-diagnostics")
		if err != nil {
			return opts, cfg, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
		}
		if n < 0 {
			return opts, cfg, fmt.Errorf("--max-diagnostics must be >= 0, got %d", n)
		}
		opts.MaxDiagnostics = n
	}
	if pf.Changed("language") {
		lang, err := pf.GetString("language")
		if err != nil {
			return opts, cfg, fmt.Errorf("failed to get language flag: %w", err)
		}
		opts.Language = strings.ToLower(strings.TrimSpace(lang))
	}
	timings, err := pf.GetBool("timings")
	if err != nil {
		return opts, cfg, fmt.Errorf("failed to get timings flag: %w", err)
	}
	opts.EnableTimings = timings
	return opts, cfg, nil
}

// applyWarningFlags reads --no-warnings / --warnings-as-errors when the
// command defines them.
func applyWarningFlags(cmd *cobra.Command, opts *driver.DiagnoseOptions) error {
	flags := cmd.Flags()
	if flags.Lookup("no-warnings") != nil {
		v, err := flags.GetBool("no-warnings")
		if err != nil {
			return fmt.Errorf("failed to get no-warnings flag: %w", err)
		}
		opts.IgnoreWarnings = v
	}
	if flags.Lookup("warnings-as-errors") != nil && flags.Changed("warnings-as-errors") {
		v, err := flags.GetBool("warnings-as-errors")
		if err != nil {
			return fmt.Errorf("failed to get warnings-as-errors flag: %w", err)
		}
		opts.WarningsAsErrors = v
	}
	if opts.IgnoreWarnings && opts.WarningsAsErrors {
		return fmt.Errorf("no-warnings and warnings-as-errors flags cannot be used together")
	}
	return nil
}

func readStage(cmd *cobra.Command) (compiler.Stage, error) {
	s, err := cmd.Flags().GetString("stages")
	if err != nil {
		return compiler.StageAll, fmt.Errorf("failed to get stages flag: %w", err)
	}
	return compiler.ParseStage(s)
}

func useColor(cmd *cobra.Command, f *os.File) (bool, error) {
	colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return false, err
	}
	switch strings.ToLower(colorFlag) {
	case "on", "always":
		return true, nil
	case "off", "never":
		return false, nil
	case "auto", "":
		return isTerminal(f), nil
	default:
		return false, fmt.Errorf("invalid --color value %q (expected auto|on|off)", colorFlag)
	}
}

func isQuiet(cmd *cobra.Command) bool {
	q, _ := cmd.Root().PersistentFlags().GetBool("quiet")
	return q
}

// printDiagnosticsToStderr печатает диагностики для команд, чей stdout занят
// другим выводом (tokenize, parse, compile).
func printDiagnosticsToStderr(cmd *cobra.Command, res *driver.DiagnoseResult) error {
	if res.Bag.Len() == 0 {
		return nil
	}
	colored, err := useColor(cmd, os.Stderr)
	if err != nil {
		return err
	}
	diagfmt.Pretty(cmd.ErrOrStderr(), res.Bag, res.FileSet, diagfmt.PrettyOpts{Color: colored, Context: 1})
	return nil
}
