package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"umlts/internal/compiler"
	"umlts/internal/diagfmt"
	"umlts/internal/driver"
)

func newTokenizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tokenize [flags] file.umlts",
		Short: "Tokenize a umlts source file",
		Long:  `Tokenize breaks a umlts source file into tokens, including the active language plugin's tokens`,
		Args:  cobra.ExactArgs(1),
		RunE:  runTokenize,
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|json)")
	return cmd
}

func runTokenize(cmd *cobra.Command, args []string) error {
	filePath := args[0]

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unknown format: %s", format)
	}

	opts, _, err := loadOptions(cmd, filePath)
	if err != nil {
		return err
	}
	opts.Stage = compiler.StageTokenize

	result, err := driver.Diagnose(cmd.Context(), filePath, &opts)
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}
	if err := printDiagnosticsToStderr(cmd, result); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if format == "json" {
		return diagfmt.FormatTokensJSON(out, result.Result.Tokens)
	}
	return diagfmt.FormatTokensPretty(out, result.Result.Tokens, result.FileSet)
}
