package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"umlts/internal/project"
)

const exampleModelName = "model.umlts"

func newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init [path|name]",
		Short: "Initialize a new umlts project",
		Long: `Initialize a new umlts project by creating a project manifest (umlts.toml)
and an example model (model.umlts). If [path|name] is omitted, initializes
the current directory. If a non-existing name is provided, a directory will be
created.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runInit,
	}
	cmd.Flags().String("language", "", "target language recorded in umlts.toml (typescript|java)")
	return cmd
}

// runInit creates umlts.toml and model.umlts in the target directory. It
// refuses to overwrite an existing manifest; an existing model is kept.
func runInit(cmd *cobra.Command, args []string) error {
	wd, err := os.Getwd()
	if err != nil {
		return err
	}
	target := wd
	if len(args) == 1 && args[0] != "." {
		target = args[0]
		if !filepath.IsAbs(target) {
			target = filepath.Join(wd, target)
		}
	}

	if st, err := os.Stat(target); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return err
		}
		if err = os.MkdirAll(target, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %q: %w", target, err)
		}
	} else if !st.IsDir() {
		return fmt.Errorf("%q is not a directory", target)
	}

	name := strings.TrimSpace(filepath.Base(target))
	if name == "" || name == "." || name == string(filepath.Separator) {
		name = "umlts-project"
	}

	manifestPath := filepath.Join(target, project.ManifestName)
	if _, err := os.Stat(manifestPath); err == nil {
		return fmt.Errorf("project already initialized: %s exists", manifestPath)
	}

	lang, err := cmd.Flags().GetString("language")
	if err != nil {
		return fmt.Errorf("failed to get language flag: %w", err)
	}
	m := project.DefaultManifest(name)
	m.Compile.Language = strings.ToLower(strings.TrimSpace(lang))

	var buf bytes.Buffer
	buf.WriteString("# umlts project manifest\n")
	if err := m.Encode(&buf); err != nil {
		return fmt.Errorf("failed to encode manifest: %w", err)
	}
	if err := os.WriteFile(manifestPath, buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}

	modelPath := filepath.Join(target, exampleModelName)
	createdModel := false
	if _, err := os.Stat(modelPath); errors.Is(err, os.ErrNotExist) {
		if err := os.WriteFile(modelPath, []byte(exampleModel), 0o600); err != nil {
			return fmt.Errorf("failed to write %s: %w", exampleModelName, err)
		}
		createdModel = true
	}

	rel := target
	if r, err := filepath.Rel(wd, target); err == nil {
		rel = r
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Initialized umlts project in %s\n", rel)
	fmt.Fprintf(out, "  - %s\n", project.ManifestName)
	if createdModel {
		fmt.Fprintf(out, "  - %s\n", exampleModelName)
	} else {
		fmt.Fprintf(out, "  - %s (existing)\n", exampleModelName)
	}
	return nil
}

const exampleModel = `/** Example model: run "umlts diag" to check it. */
package shop {
  /** A customer order. */
  class Order {
    + id: string
    + total: number
    + place(): void
  }

  class Customer {
    + name: string
  }

  Customer >- [1] Order
  Order >* LineItem
}
`
