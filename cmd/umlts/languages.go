package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"umlts/internal/compiler"
)

func newLanguagesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "languages",
		Short: "List the registered language plugins",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			for _, lang := range compiler.DefaultRegistry().Languages() {
				fmt.Fprintln(out, lang)
			}
			return nil
		},
	}
}
