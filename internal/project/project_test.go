package project

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

const sampleManifest = `
[project]
name = "shop"
sources = ["models"]

[compile]
language = "TypeScript"
max_diagnostics = 50
warnings_as_errors = true

[output]
format = "yaml"
`

func TestFindManifestWalksUp(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ManifestName), sampleManifest)
	file := filepath.Join(root, "models", "deep", "order.umlts")
	writeFile(t, file, "class Order")

	path, ok, err := FindManifest(file)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, filepath.Join(root, ManifestName), path)

	dir, ok, err := FindProjectRoot(filepath.Dir(file))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, root, dir)
}

func TestLoadManifest(t *testing.T) {
	path := filepath.Join(t.TempDir(), ManifestName)
	writeFile(t, path, sampleManifest)

	m, err := LoadManifest(path)
	require.NoError(t, err)
	assert.Equal(t, "shop", m.Project.Name)
	assert.Equal(t, "typescript", m.Compile.Language)
	assert.Equal(t, 50, m.Compile.MaxDiagnostics)
	assert.True(t, m.Compile.WarningsAsErrors)
	assert.Equal(t, FormatYAML, m.Output.Format)
	assert.Equal(t, []string{"models"}, m.Project.Sources)
}

func TestLoadManifestDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), ManifestName)
	writeFile(t, path, "[project]\nname = \"x\"\n")

	m, err := LoadManifest(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultMaxDiagnostics, m.Compile.MaxDiagnostics)
	assert.Equal(t, FormatJSON, m.Output.Format)
	assert.Equal(t, []string{"."}, m.Project.Sources)
}

func TestLoadManifestErrors(t *testing.T) {
	cases := map[string]string{
		"missing project": "[compile]\nlanguage = \"java\"\n",
		"unknown key":     "[project]\nname = \"x\"\ncolour = \"red\"\n",
		"bad format":      "[project]\nname = \"x\"\n[output]\nformat = \"xml\"\n",
		"negative max":    "[project]\nname = \"x\"\n[compile]\nmax_diagnostics = -1\n",
		"bad toml":        "[project\n",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), ManifestName)
			writeFile(t, path, content)
			_, err := LoadManifest(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), path)
		})
	}

	path := filepath.Join(t.TempDir(), ManifestName)
	writeFile(t, path, "[compile]\n")
	_, err := LoadManifest(path)
	assert.ErrorIs(t, err, ErrProjectSectionMissing)
}

func TestManifestEncodeRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, DefaultManifest("demo").Encode(&buf))
	assert.Contains(t, buf.String(), "[project]")

	path := filepath.Join(t.TempDir(), ManifestName)
	writeFile(t, path, buf.String())
	m, err := LoadManifest(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultManifest("demo"), m)
}

func TestLoadAppliesEnvOverrides(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ManifestName), sampleManifest)
	writeFile(t, filepath.Join(root, EnvFileName), "UMLTS_LANGUAGE=java\nUMLTS_MAX_DIAGNOSTICS=7\n")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "models"), 0o755))

	cfg, err := Load(filepath.Join(root, "models"))
	require.NoError(t, err)
	require.True(t, cfg.Found())
	assert.Equal(t, "java", cfg.Manifest.Compile.Language)
	assert.Equal(t, 7, cfg.Manifest.Compile.MaxDiagnostics)
	assert.Equal(t, filepath.Join(root, EnvFileName), cfg.EnvFile)

	t.Setenv(EnvLanguage, "TS")
	cfg, err = Load(root)
	require.NoError(t, err)
	assert.Equal(t, "ts", cfg.Manifest.Compile.Language, "process env beats .env")

	dirs, err := cfg.SourceDirs()
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(root, "models")}, dirs)
}

func TestLoadWithoutManifest(t *testing.T) {
	dir := t.TempDir()
	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.False(t, cfg.Found())
	assert.Equal(t, DefaultMaxDiagnostics, cfg.Manifest.Compile.MaxDiagnostics)
	_, err = cfg.SourceDirs()
	assert.Error(t, err)
}

func TestLoadRejectsBadEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvMaxDiagnostics, "many")
	_, err := Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), EnvMaxDiagnostics)
}

func TestResolveSourceDir(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "models"), 0o755))
	writeFile(t, filepath.Join(root, "file.txt"), "")

	got, err := ResolveSourceDir(root, "models")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "models"), got)

	for _, bad := range []string{"", "../outside", "/abs", "missing", "file.txt"} {
		_, err := ResolveSourceDir(root, bad)
		assert.Error(t, err, bad)
	}
}
