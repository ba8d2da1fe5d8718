package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"umlts/internal/diag"
	"umlts/internal/diagfmt"
	"umlts/internal/driver"
	"umlts/internal/version"
)

func newDiagCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diag [flags] <file.umlts|directory>",
		Short: "Run diagnostics on a umlts file or directory",
		Long: `Run diagnostics to find lexical, syntax and semantic issues in a umlts file
or in every *.umlts file within a directory. Without arguments the source
directories of the enclosing umlts.toml project are checked.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runDiagnose,
	}
	f := cmd.Flags()
	f.String("format", "pretty", "output format (pretty|short|json|sarif)")
	f.String("stages", "all", "diagnostic stages to run (tokenize|syntax|sema|all)")
	f.Bool("no-warnings", false, "ignore warnings in diagnostics")
	f.Bool("warnings-as-errors", false, "treat warnings as errors")
	f.Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	f.Bool("with-notes", false, "include diagnostic notes in output")
	f.String("path-mode", "auto", "how file paths are printed (auto|absolute|relative|basename)")
	f.String("ui", "off", "progress UI for directories (auto|on|off)")
	return cmd
}

type diagOutput struct {
	format    string
	withNotes bool
	pathMode  diagfmt.PathMode
	color     bool
	args      []string
}

// runDiagnose executes the "diag" command: it resolves options from the
// project config and flags, compiles a file or directory and prints the
// diagnostics. Errors in the compiled sources yield errDiagnostics.
func runDiagnose(cmd *cobra.Command, args []string) error {
	target := "."
	if len(args) == 1 {
		target = args[0]
	}

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	switch format {
	case "pretty", "short", "json", "sarif":
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	withNotes, err := cmd.Flags().GetBool("with-notes")
	if err != nil {
		return fmt.Errorf("failed to get with-notes flag: %w", err)
	}
	pathModeStr, err := cmd.Flags().GetString("path-mode")
	if err != nil {
		return fmt.Errorf("failed to get path-mode flag: %w", err)
	}
	pathMode, err := diagfmt.ParsePathMode(pathModeStr)
	if err != nil {
		return err
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	uiStr, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := readUIMode(uiStr)
	if err != nil {
		return err
	}

	opts, cfg, err := loadOptions(cmd, target)
	if err != nil {
		return err
	}
	if err := applyWarningFlags(cmd, &opts); err != nil {
		return err
	}
	if opts.Stage, err = readStage(cmd); err != nil {
		return err
	}
	opts.Jobs = jobs

	colored, err := useColor(cmd, os.Stdout)
	if err != nil {
		return err
	}
	out := diagOutput{
		format:    format,
		withNotes: withNotes,
		pathMode:  pathMode,
		color:     colored,
		args:      append([]string{"diag"}, args...),
	}

	dirs := []string{target}
	st, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("failed to stat path: %w", err)
	}
	if !st.IsDir() {
		return diagnoseFile(cmd, target, opts, out)
	}
	if len(args) == 0 && cfg.Found() {
		if dirs, err = cfg.SourceDirs(); err != nil {
			return err
		}
	}

	var results []*driver.DirResult
	for _, dir := range dirs {
		var res *driver.DirResult
		if shouldUseTUI(mode) && !isQuiet(cmd) {
			files, listErr := driver.ListSourceFiles(dir)
			if listErr != nil {
				return listErr
			}
			res, err = runDirWithUI(cmd.Context(), os.Stderr, dir, files, opts)
		} else {
			res, err = driver.DiagnoseDir(cmd.Context(), dir, &opts)
		}
		if err != nil {
			dumpTraceRing(cmd)
			return fmt.Errorf("diagnosis failed: %w", err)
		}
		results = append(results, res)
	}
	return printDirResults(cmd, results, out)
}

func diagnoseFile(cmd *cobra.Command, path string, opts driver.DiagnoseOptions, out diagOutput) error {
	result, err := driver.Diagnose(cmd.Context(), path, &opts)
	if err != nil {
		dumpTraceRing(cmd)
		return fmt.Errorf("diagnosis failed: %w", err)
	}
	w := cmd.OutOrStdout()
	switch out.format {
	case "pretty":
		diagfmt.Pretty(w, result.Bag, result.FileSet, out.prettyOpts())
		if !isQuiet(cmd) {
			printSummary(cmd.ErrOrStderr(), result.Bag)
		}
	case "short":
		err = diagfmt.Short(w, result.Bag, result.FileSet, out.withNotes)
	case "json":
		err = diagfmt.JSON(w, result.Bag, result.FileSet, out.jsonOpts())
	case "sarif":
		err = diagfmt.Sarif(w, result.Bag, result.FileSet, out.sarifMeta())
	}
	if err != nil {
		return fmt.Errorf("failed to format diagnostics: %w", err)
	}
	if opts.EnableTimings {
		printTimings(cmd.ErrOrStderr(), result.Timing)
	}
	if result.HasErrors() {
		dumpTraceRing(cmd)
		return errDiagnostics
	}
	return nil
}

func printDirResults(cmd *cobra.Command, results []*driver.DirResult, out diagOutput) error {
	w := cmd.OutOrStdout()
	hasErrors := false
	for _, r := range results {
		hasErrors = hasErrors || r.HasErrors()
	}

	switch out.format {
	case "pretty":
		first := true
		for _, r := range results {
			for _, f := range r.Files {
				if f.Bag.Len() == 0 {
					continue
				}
				if !first {
					fmt.Fprintln(w)
				}
				first = false
				diagfmt.Pretty(w, f.Bag, r.FileSet, out.prettyOpts())
			}
		}
		if !isQuiet(cmd) {
			files, errs, warns := 0, 0, 0
			for _, r := range results {
				e, wn := r.Counts()
				files += len(r.Files)
				errs += e
				warns += wn
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "%d file(s) checked: %d error(s), %d warning(s)\n", files, errs, warns)
		}
	case "short":
		for _, r := range results {
			for _, f := range r.Files {
				if err := diagfmt.Short(w, f.Bag, r.FileSet, out.withNotes); err != nil {
					return err
				}
			}
		}
	case "json":
		// ключ — путь файла, как у одиночного вывода по файлу
		output := make(map[string]diagfmt.DiagnosticsOutput)
		for _, r := range results {
			for _, f := range r.Files {
				output[f.Path] = diagfmt.BuildDiagnosticsOutput(f.Bag, r.FileSet, out.jsonOpts())
			}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(output); err != nil {
			return fmt.Errorf("failed to encode diagnostics output: %w", err)
		}
	case "sarif":
		// один SARIF-лог на директорию: FileID разных FileSet пересекаются
		for _, r := range results {
			merged := diag.NewBag(0)
			for _, f := range r.Files {
				merged.Merge(f.Bag)
			}
			if err := diagfmt.Sarif(w, merged, r.FileSet, out.sarifMeta()); err != nil {
				return err
			}
		}
	}

	timing := cmd.ErrOrStderr()
	for _, r := range results {
		printTimings(timing, r.Timing)
	}
	if hasErrors {
		dumpTraceRing(cmd)
		return errDiagnostics
	}
	return nil
}

func printSummary(w io.Writer, bag *diag.Bag) {
	errs, warns := 0, 0
	for _, d := range bag.Items() {
		switch {
		case d.Severity >= diag.SevError:
			errs++
		case d.Severity == diag.SevWarning:
			warns++
		}
	}
	if errs+warns == 0 {
		return
	}
	fmt.Fprintf(w, "%d error(s), %d warning(s)\n", errs, warns)
}

func (o diagOutput) prettyOpts() diagfmt.PrettyOpts {
	return diagfmt.PrettyOpts{Color: o.color, Context: 1, PathMode: o.pathMode, ShowNotes: o.withNotes}
}

func (o diagOutput) jsonOpts() diagfmt.JSONOpts {
	return diagfmt.JSONOpts{IncludePositions: true, PathMode: o.pathMode, IncludeNotes: o.withNotes}
}

func (o diagOutput) sarifMeta() diagfmt.SarifRunMeta {
	return diagfmt.SarifRunMeta{ToolName: "umlts", ToolVersion: version.Version, InvocationArgs: o.args}
}
