package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"umlts/internal/version"
)

// errDiagnostics — диагностики уже напечатаны, нужен только код выхода.
var errDiagnostics = errors.New("compilation reported errors")

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "umlts",
		Short:         "UML text-notation compiler",
		Long:          `umlts compiles textual UML class models (*.umlts) into a JSON-friendly diagram IR`,
		Version:       version.Version,
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	root.AddCommand(newTokenizeCmd())
	root.AddCommand(newParseCmd())
	root.AddCommand(newDiagCmd())
	root.AddCommand(newCompileCmd())
	root.AddCommand(newInitCmd())
	root.AddCommand(newLanguagesCmd())
	root.AddCommand(newVersionCmd())

	// Глобальные флаги
	pf := root.PersistentFlags()
	pf.String("color", "auto", "colorize output (auto|on|off)")
	pf.Bool("quiet", false, "suppress non-essential output")
	pf.Bool("timings", false, "show timing information")
	pf.Int("max-diagnostics", 0, "maximum number of diagnostics per file (0 = from umlts.toml)")
	pf.String("language", "", "target language plugin when the source declares none")
	pf.String("trace", "", "trace output file (- for stderr)")
	pf.String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	pf.String("trace-mode", "stream", "trace storage mode (stream|ring|both)")
	pf.String("trace-format", "auto", "trace format (auto|text|ndjson)")
	pf.Int("trace-ring-size", 0, "ring buffer size for ring/both modes (0 = default)")
	pf.Duration("trace-heartbeat", 0, "emit heartbeat events at this interval (0 = off)")
	pf.String("cpu-profile", "", "write a CPU profile to this file")
	pf.String("mem-profile", "", "write a heap profile to this file on exit")
	pf.String("runtime-trace", "", "write a Go runtime trace to this file")

	root.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		cleanup, err := setupTracing(cmd)
		if err != nil {
			return err
		}
		stopProfiling, err := setupProfiling(cmd)
		if err != nil {
			cleanup()
			return err
		}
		traceCleanup = func() {
			stopProfiling()
			cleanup()
		}
		return nil
	}
	root.PersistentPostRun = func(*cobra.Command, []string) {
		runTraceCleanup()
	}
	return root
}

func main() {
	err := newRootCmd().Execute()
	// PersistentPostRun не вызывается при ошибке
	runTraceCleanup()
	if err == nil {
		return
	}
	if !errors.Is(err, errDiagnostics) {
		fmt.Fprintf(os.Stderr, "%s %v\n", color.New(color.FgRed, color.Bold).Sprint("umlts:"), err)
	}
	os.Exit(1)
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd())) // #nosec G115 -- file descriptors fit in int
}
