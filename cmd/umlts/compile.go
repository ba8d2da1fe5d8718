package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"umlts/internal/compiler"
	"umlts/internal/diagfmt"
	"umlts/internal/driver"
)

func newCompileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compile [flags] file.umlts",
		Short: "Compile a umlts file to diagram IR",
		Long: `Compile runs the full pipeline and writes the diagram IR. The IR is written
even when the model has errors; the exit status reports validity.`,
		Args: cobra.ExactArgs(1),
		RunE: runCompile,
	}
	f := cmd.Flags()
	f.String("emit", "", "IR format (json|yaml|msgpack); defaults to [output].format of umlts.toml")
	f.StringP("output", "o", "", "write the IR to this file instead of stdout")
	f.Bool("no-warnings", false, "ignore warnings in diagnostics")
	f.Bool("warnings-as-errors", false, "treat warnings as errors")
	return cmd
}

func runCompile(cmd *cobra.Command, args []string) error {
	filePath := args[0]

	emit, err := cmd.Flags().GetString("emit")
	if err != nil {
		return fmt.Errorf("failed to get emit flag: %w", err)
	}
	outPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return fmt.Errorf("failed to get output flag: %w", err)
	}

	opts, cfg, err := loadOptions(cmd, filePath)
	if err != nil {
		return err
	}
	if err := applyWarningFlags(cmd, &opts); err != nil {
		return err
	}
	opts.Stage = compiler.StageAll
	if emit == "" {
		emit = cfg.Manifest.Output.Format
	}
	if outPath == "" && diagfmt.IsBinaryIR(emit) && isTerminal(os.Stdout) {
		return fmt.Errorf("refusing to write %s to a terminal; use -o", emit)
	}

	result, err := driver.Diagnose(cmd.Context(), filePath, &opts)
	if err != nil {
		return fmt.Errorf("compilation failed: %w", err)
	}
	if err := printDiagnosticsToStderr(cmd, result); err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := diagfmt.EmitIR(&buf, result.Result.Diagram, emit); err != nil {
		return err
	}
	if outPath == "" {
		if _, err := cmd.OutOrStdout().Write(buf.Bytes()); err != nil {
			return err
		}
	} else {
		if err := os.WriteFile(outPath, buf.Bytes(), 0o600); err != nil {
			return fmt.Errorf("failed to write %s: %w", outPath, err)
		}
		if !isQuiet(cmd) {
			fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s (%s)\n", outPath, emit)
		}
	}
	if opts.EnableTimings {
		printTimings(cmd.ErrOrStderr(), result.Timing)
	}
	if !result.Result.IsValid {
		dumpTraceRing(cmd)
		return errDiagnostics
	}
	return nil
}
