package project

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
)

// Output formats accepted by [output].format and `compile --emit`.
const (
	FormatJSON    = "json"
	FormatYAML    = "yaml"
	FormatMsgpack = "msgpack"
)

// OutputFormats lists the valid IR output formats.
var OutputFormats = []string{FormatJSON, FormatYAML, FormatMsgpack}

var (
	// ErrProjectSectionMissing: umlts.toml without [project].
	ErrProjectSectionMissing = errors.New("missing [project]")
	// ErrUnknownKey: a key the manifest schema does not define.
	ErrUnknownKey = errors.New("unknown manifest key")
)

// Manifest mirrors umlts.toml.
type Manifest struct {
	Project ProjectSection `toml:"project"`
	Compile CompileSection `toml:"compile"`
	Output  OutputSection  `toml:"output"`
}

type ProjectSection struct {
	Name    string   `toml:"name"`
	Sources []string `toml:"sources,omitempty"`
}

type CompileSection struct {
	Language         string `toml:"language,omitempty"`
	MaxDiagnostics   int    `toml:"max_diagnostics"`
	WarningsAsErrors bool   `toml:"warnings_as_errors"`
}

type OutputSection struct {
	Format string `toml:"format"`
}

// DefaultMaxDiagnostics is used when the manifest leaves it at zero.
const DefaultMaxDiagnostics = 200

// DefaultManifest is what `umlts init` writes.
func DefaultManifest(name string) Manifest {
	return Manifest{
		Project: ProjectSection{Name: name, Sources: []string{"."}},
		Compile: CompileSection{MaxDiagnostics: DefaultMaxDiagnostics},
		Output:  OutputSection{Format: FormatJSON},
	}
}

// LoadManifest decodes and validates umlts.toml.
func LoadManifest(path string) (Manifest, error) {
	var m Manifest
	meta, err := toml.DecodeFile(path, &m)
	if err != nil {
		return Manifest{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("project") {
		return Manifest{}, fmt.Errorf("%s: %w", path, ErrProjectSectionMissing)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return Manifest{}, fmt.Errorf("%s: %w: %s", path, ErrUnknownKey, strings.Join(keys, ", "))
	}
	m.normalize()
	if err := m.Validate(); err != nil {
		return Manifest{}, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

func (m *Manifest) normalize() {
	m.Project.Name = strings.TrimSpace(m.Project.Name)
	m.Compile.Language = strings.ToLower(strings.TrimSpace(m.Compile.Language))
	m.Output.Format = strings.ToLower(strings.TrimSpace(m.Output.Format))
	if m.Output.Format == "" {
		m.Output.Format = FormatJSON
	}
	if m.Compile.MaxDiagnostics == 0 {
		m.Compile.MaxDiagnostics = DefaultMaxDiagnostics
	}
	if len(m.Project.Sources) == 0 {
		m.Project.Sources = []string{"."}
	}
}

// Validate checks value ranges; unknown languages are left to the compiler.
func (m Manifest) Validate() error {
	var errs []error
	if m.Compile.MaxDiagnostics < 0 {
		errs = append(errs, fmt.Errorf("[compile].max_diagnostics must be >= 0, got %d", m.Compile.MaxDiagnostics))
	}
	if !slices.Contains(OutputFormats, m.Output.Format) {
		errs = append(errs, fmt.Errorf("[output].format %q: expected one of %s", m.Output.Format, strings.Join(OutputFormats, "|")))
	}
	return errors.Join(errs...)
}

// Encode writes m as TOML.
func (m Manifest) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(m)
}
