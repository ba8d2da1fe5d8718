package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"umlts/internal/diagfmt"
	"umlts/internal/project"
)

func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	root := newRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err = root.Execute()
	runTraceCleanup()
	return out.String(), errOut.String(), err
}

func writeModel(t *testing.T, dir, name, src string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(src), 0o600))
	return path
}

func TestDiagCleanFile(t *testing.T) {
	path := writeModel(t, t.TempDir(), "ok.umlts", "class A\nclass B >> A\n")
	out, _, err := execute(t, "diag", "--color", "off", path)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestDiagReportsCycleAsJSON(t *testing.T) {
	path := writeModel(t, t.TempDir(), "bad.umlts", "class A >> B\nclass B >> A\n")
	out, _, err := execute(t, "diag", "--format", "json", path)
	require.ErrorIs(t, err, errDiagnostics)

	var res diagfmt.DiagnosticsOutput
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	require.NotEmpty(t, res.Diagnostics)
	assert.Equal(t, "SEM3030", res.Diagnostics[0].Code)
}

func TestDiagDirectoryShort(t *testing.T) {
	dir := t.TempDir()
	writeModel(t, dir, "a.umlts", "class A\n")
	writeModel(t, dir, "b.umlts", "class B >> B\n")
	out, stderr, err := execute(t, "diag", "--format", "short", "--jobs", "2", dir)
	require.ErrorIs(t, err, errDiagnostics)
	assert.Contains(t, out, "b.umlts")
	assert.NotContains(t, out, "a.umlts")
	assert.Empty(t, stderr)
}

func TestDiagRejectsConflictingWarningFlags(t *testing.T) {
	path := writeModel(t, t.TempDir(), "ok.umlts", "class A\n")
	_, _, err := execute(t, "diag", "--no-warnings", "--warnings-as-errors", path)
	require.Error(t, err)
	assert.NotErrorIs(t, err, errDiagnostics)
}

func TestDiagUnknownFormat(t *testing.T) {
	path := writeModel(t, t.TempDir(), "ok.umlts", "class A\n")
	_, _, err := execute(t, "diag", "--format", "xml", path)
	require.Error(t, err)
}

func TestCompileEmitsYAMLToFile(t *testing.T) {
	dir := t.TempDir()
	path := writeModel(t, dir, "m.umlts", "class Order {\n  + items: Item[]\n}\n")
	outPath := filepath.Join(dir, "m.yaml")

	_, stderr, err := execute(t, "compile", "--emit", "yaml", "-o", outPath, path)
	require.NoError(t, err)
	assert.Contains(t, stderr, "wrote")

	f, err := os.Open(outPath)
	require.NoError(t, err)
	defer f.Close()
	d, err := diagfmt.DecodeIR(f, "yaml")
	require.NoError(t, err)
	require.NotNil(t, d.Entity("Order"))
}

func TestCompileInvalidStillWritesIR(t *testing.T) {
	path := writeModel(t, t.TempDir(), "m.umlts", "class A >> A\n")
	out, stderr, err := execute(t, "compile", "--emit", "json", path)
	require.ErrorIs(t, err, errDiagnostics)
	assert.Contains(t, out, `"entities"`)
	assert.Contains(t, stderr, "SEM3030")
}

func TestCompileUsesManifestFormatAndLanguage(t *testing.T) {
	dir := t.TempDir()
	m := project.DefaultManifest("demo")
	m.Compile.Language = "java"
	m.Output.Format = project.FormatYAML
	var buf bytes.Buffer
	require.NoError(t, m.Encode(&buf))
	require.NoError(t, os.WriteFile(filepath.Join(dir, project.ManifestName), buf.Bytes(), 0o600))
	path := writeModel(t, dir, "m.umlts", "class Cart {\n  items: List<Item>\n}\n")

	out, _, err := execute(t, "compile", path)
	require.NoError(t, err)
	assert.Contains(t, out, "entities:")
	assert.Contains(t, out, "upper: '*'")
}

func TestTokenizeJSON(t *testing.T) {
	path := writeModel(t, t.TempDir(), "t.umlts", "class A")
	out, _, err := execute(t, "tokenize", "--format", "json", path)
	require.NoError(t, err)
	var toks []diagfmt.TokenOutput
	require.NoError(t, json.Unmarshal([]byte(out), &toks))
	require.NotEmpty(t, toks)
	assert.Equal(t, "KW_CLASS", toks[0].Kind)
}

func TestParseTree(t *testing.T) {
	path := writeModel(t, t.TempDir(), "p.umlts", "class A {\n  + name: string\n}\n")
	out, _, err := execute(t, "parse", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Program")
	assert.Contains(t, out, "Attribute")
}

func TestInitCreatesProject(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "shop")
	out, _, err := execute(t, "init", "--language", "typescript", dir)
	require.NoError(t, err)
	assert.Contains(t, out, project.ManifestName)

	m, err := project.LoadManifest(filepath.Join(dir, project.ManifestName))
	require.NoError(t, err)
	assert.Equal(t, "shop", m.Project.Name)
	assert.Equal(t, "typescript", m.Compile.Language)

	// пример модели компилируется без ошибок
	_, _, err = execute(t, "diag", filepath.Join(dir, exampleModelName))
	require.NoError(t, err)

	_, _, err = execute(t, "init", dir)
	require.Error(t, err)
}

func TestLanguages(t *testing.T) {
	out, _, err := execute(t, "languages")
	require.NoError(t, err)
	assert.Equal(t, "java\ntypescript\n", out)
}

func TestVersionJSON(t *testing.T) {
	out, _, err := execute(t, "version", "--format", "json", "--full")
	require.NoError(t, err)
	var p versionPayload
	require.NoError(t, json.Unmarshal([]byte(out), &p))
	assert.Equal(t, "umlts", p.Tool)
	assert.Equal(t, "unknown", p.GitCommit)
}

func TestReadUIMode(t *testing.T) {
	for in, want := range map[string]uiMode{"": uiModeAuto, "ON": uiModeOn, "off": uiModeOff} {
		got, err := readUIMode(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := readUIMode("maybe")
	assert.Error(t, err)
	assert.True(t, shouldUseTUI(uiModeOn))
	assert.False(t, shouldUseTUI(uiModeOff))
}
