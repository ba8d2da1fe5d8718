package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"umlts/internal/compiler"
	"umlts/internal/diagfmt"
	"umlts/internal/driver"
)

func newParseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse [flags] file.umlts",
		Short: "Parse a umlts source file and print its AST",
		Long:  `Parse runs the lexer and the parser (without semantic analysis) and prints the syntax tree`,
		Args:  cobra.ExactArgs(1),
		RunE:  runParse,
	}
	cmd.Flags().String("format", "tree", "output format (tree|json)")
	return cmd
}

func runParse(cmd *cobra.Command, args []string) error {
	filePath := args[0]

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format != "tree" && format != "pretty" && format != "json" {
		return fmt.Errorf("unknown format: %s", format)
	}

	opts, _, err := loadOptions(cmd, filePath)
	if err != nil {
		return err
	}
	opts.Stage = compiler.StageSyntax

	result, err := driver.Diagnose(cmd.Context(), filePath, &opts)
	if err != nil {
		return fmt.Errorf("parsing failed: %w", err)
	}
	if err := printDiagnosticsToStderr(cmd, result); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if format == "json" {
		err = diagfmt.FormatASTJSON(out, result.Result.AST, result.FileSet)
	} else {
		err = diagfmt.FormatASTPretty(out, result.Result.AST, result.FileSet)
	}
	if err != nil {
		return err
	}
	if result.HasErrors() {
		return errDiagnostics
	}
	return nil
}
