package diagfmt_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"umlts/internal/compiler"
	"umlts/internal/diag"
	"umlts/internal/diagfmt"
	"umlts/internal/source"
)

func bagFor(t *testing.T, src string) (*diag.Bag, *source.FileSet) {
	t.Helper()
	fs := source.NewFileSetWithBase("/work")
	id := fs.AddVirtual("model.umlts", []byte(src))
	res := compiler.Compile(fs, id, compiler.Options{})
	require.NotNil(t, res.Bag)
	return res.Bag, fs
}

const cyclic = "class A >> B\nclass B >> C\nclass C >> A\n"

func TestPrettyHeaderAndCaret(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("m.umlts", []byte("class A\nclass Bad >> A\n"))
	bag := diag.NewBag(0)
	bag.Add(diag.NewError(diag.SemaCycleDetected, source.Span{File: id, Start: 14, End: 17}, "cycle"))

	var buf bytes.Buffer
	diagfmt.Pretty(&buf, bag, fs, diagfmt.PrettyOpts{})
	out := buf.String()

	assert.Contains(t, out, "m.umlts:2:7: ERROR SEM3030 [SEMANTIC_CYCLE_DETECTED]: cycle")
	assert.Contains(t, out, "2 | class Bad >> A")
	assert.Contains(t, out, " |       ^~~\n")
}

func TestPrettyContextClampsToFile(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("m.umlts", []byte("class A"))
	bag := diag.NewBag(0)
	bag.Add(diag.NewError(diag.SemaCycleDetected, source.Span{File: id, Start: 6, End: 7}, "x"))

	var buf bytes.Buffer
	diagfmt.Pretty(&buf, bag, fs, diagfmt.PrettyOpts{Context: 3})
	assert.Equal(t, 1, strings.Count(buf.String(), "| class A"))
}

func TestPrettyWideRunesShiftCaret(t *testing.T) {
	fs := source.NewFileSet()
	src := "note \"日本\" X"
	id := fs.AddVirtual("m.umlts", []byte(src))
	off := uint32(strings.Index(src, "X")) // #nosec G115
	bag := diag.NewBag(0)
	bag.Add(diag.NewError(diag.SemaCycleDetected, source.Span{File: id, Start: off, End: off + 1}, "x"))

	var buf bytes.Buffer
	diagfmt.Pretty(&buf, bag, fs, diagfmt.PrettyOpts{})
	lines := strings.Split(buf.String(), "\n")
	require.GreaterOrEqual(t, len(lines), 3)
	// 'note "' = 6 cols, two wide runes = 4, '" ' = 2
	assert.Equal(t, " | "+strings.Repeat(" ", 12)+"^", lines[2])
}

func TestPrettyNotesTrimInternalStack(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("m.umlts", []byte("class A\n"))
	d := diag.NewError(diag.SemaInternal, source.Span{File: id}, "internal error").
		WithNote(source.Span{File: id}, "panic: boom\ngoroutine 1 [running]")
	bag := diag.NewBag(0)
	bag.Add(d)

	var buf bytes.Buffer
	diagfmt.Pretty(&buf, bag, fs, diagfmt.PrettyOpts{ShowNotes: true})
	assert.Contains(t, buf.String(), "note: m.umlts:1:1: panic: boom")
	assert.NotContains(t, buf.String(), "goroutine")
}

func TestParsePathMode(t *testing.T) {
	for in, want := range map[string]diagfmt.PathMode{
		"":         diagfmt.PathModeAuto,
		"abs":      diagfmt.PathModeAbsolute,
		"Relative": diagfmt.PathModeRelative,
		"basename": diagfmt.PathModeBasename,
	} {
		got, err := diagfmt.ParsePathMode(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := diagfmt.ParsePathMode("weird")
	assert.Error(t, err)
}

func TestPathModesInShortOutput(t *testing.T) {
	fs := source.NewFileSetWithBase("/work/models")
	id := fs.Add("/work/models/sub/a.umlts", []byte("class A\n"), 0)
	bag := diag.NewBag(0)
	bag.Add(diag.NewError(diag.SemaCycleDetected, source.Span{File: id, Start: 6, End: 7}, "x"))

	out := diagfmt.BuildDiagnosticsOutput(bag, fs, diagfmt.JSONOpts{PathMode: diagfmt.PathModeRelative})
	assert.Equal(t, "sub/a.umlts", out.Diagnostics[0].Location.File)

	out = diagfmt.BuildDiagnosticsOutput(bag, fs, diagfmt.JSONOpts{PathMode: diagfmt.PathModeBasename})
	assert.Equal(t, "a.umlts", out.Diagnostics[0].Location.File)
}

func TestJSONOutput(t *testing.T) {
	bag, fs := bagFor(t, cyclic)
	require.True(t, bag.HasErrors())

	var buf bytes.Buffer
	require.NoError(t, diagfmt.JSON(&buf, bag, fs, diagfmt.JSONOpts{IncludePositions: true, IncludeNotes: true, Max: 1}))

	var out diagfmt.DiagnosticsOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	assert.Equal(t, bag.Len(), out.Count)
	require.Len(t, out.Diagnostics, 1)
	d := out.Diagnostics[0]
	assert.Equal(t, "error", d.Severity)
	assert.Equal(t, "SEM3030", d.Code)
	assert.Equal(t, "SEMANTIC_CYCLE_DETECTED", d.Name)
	assert.NotZero(t, d.Location.StartLine)
}

func TestJSONEmptyBag(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, diagfmt.JSON(&buf, nil, source.NewFileSet(), diagfmt.JSONOpts{}))
	assert.JSONEq(t, `{"diagnostics":[],"count":0}`, buf.String())
}

func TestSarif(t *testing.T) {
	bag, fs := bagFor(t, cyclic)

	var buf bytes.Buffer
	require.NoError(t, diagfmt.Sarif(&buf, bag, fs, diagfmt.SarifRunMeta{
		ToolName:       "umlts",
		ToolVersion:    "test",
		InvocationArgs: []string{"diag", "model.umlts"},
	}))

	var log struct {
		Version string `json:"version"`
		Runs    []struct {
			Tool struct {
				Driver struct {
					Name  string `json:"name"`
					Rules []struct {
						ID string `json:"id"`
					} `json:"rules"`
				} `json:"driver"`
			} `json:"tool"`
			Invocations []struct {
				ExecutionSuccessful bool `json:"executionSuccessful"`
			} `json:"invocations"`
			Results []struct {
				RuleID string `json:"ruleId"`
				Level  string `json:"level"`
			} `json:"results"`
		} `json:"runs"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &log))
	assert.Equal(t, "2.1.0", log.Version)
	require.Len(t, log.Runs, 1)
	run := log.Runs[0]
	assert.Equal(t, "umlts", run.Tool.Driver.Name)
	require.NotEmpty(t, run.Results)
	assert.Equal(t, "SEM3030", run.Results[0].RuleID)
	assert.Equal(t, "error", run.Results[0].Level)
	require.Len(t, run.Invocations, 1)
	assert.False(t, run.Invocations[0].ExecutionSuccessful)
	require.Len(t, run.Tool.Driver.Rules, 1)
	assert.Equal(t, "SEM3030", run.Tool.Driver.Rules[0].ID)
}

func TestShort(t *testing.T) {
	bag, fs := bagFor(t, cyclic)
	var buf bytes.Buffer
	require.NoError(t, diagfmt.Short(&buf, bag, fs, false))
	assert.Contains(t, buf.String(), "model.umlts:")
	assert.Contains(t, buf.String(), "SEM3030")
}

func TestTokens(t *testing.T) {
	res := compiler.ParseWithOptions("t.umlts", "class A", compiler.Options{Stage: compiler.StageTokenize})

	var pretty bytes.Buffer
	require.NoError(t, diagfmt.FormatTokensPretty(&pretty, res.Tokens, res.FileSet))
	assert.Contains(t, pretty.String(), "KW_CLASS")
	assert.Contains(t, pretty.String(), `"A"`)
	assert.Contains(t, pretty.String(), "EOF")

	var js bytes.Buffer
	require.NoError(t, diagfmt.FormatTokensJSON(&js, res.Tokens))
	var toks []diagfmt.TokenOutput
	require.NoError(t, json.Unmarshal(js.Bytes(), &toks))
	require.NotEmpty(t, toks)
	assert.Equal(t, "KW_CLASS", toks[0].Kind)
	assert.Equal(t, "EOF", toks[len(toks)-1].Kind)
}

func TestASTOutput(t *testing.T) {
	src := "package shop {\n  class Order {\n    + id: string\n  }\n}\nOrder >* Item\n"
	res := compiler.ParseWithOptions("a.umlts", src, compiler.Options{Stage: compiler.StageSyntax})
	require.NotNil(t, res.AST)

	var pretty bytes.Buffer
	require.NoError(t, diagfmt.FormatASTPretty(&pretty, res.AST, res.FileSet))
	out := pretty.String()
	assert.True(t, strings.HasPrefix(out, "Program"))
	assert.Contains(t, out, "Package")
	assert.Contains(t, out, "Order")
	assert.Contains(t, out, "Relationship")

	var js bytes.Buffer
	require.NoError(t, diagfmt.FormatASTJSON(&js, res.AST, res.FileSet))
	var root diagfmt.ASTNodeOutput
	require.NoError(t, json.Unmarshal(js.Bytes(), &root))
	assert.Equal(t, "Program", root.Kind)
	assert.Len(t, root.Children, 2)
}

func TestEmitIRRoundTrip(t *testing.T) {
	res := compiler.Parse("class Order {\n  + items: Item[]\n}\nOrder >* Item\n")
	require.True(t, res.IsValid)

	for _, format := range []string{diagfmt.IRFormatJSON, diagfmt.IRFormatYAML, diagfmt.IRFormatMsgpack} {
		t.Run(format, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, diagfmt.EmitIR(&buf, res.Diagram, format))
			got, err := diagfmt.DecodeIR(&buf, format)
			require.NoError(t, err)
			require.Len(t, got.Entities, len(res.Diagram.Entities))
			assert.Equal(t, res.Diagram.Entities[0].ID, got.Entities[0].ID)
			require.Len(t, got.Relationships, len(res.Diagram.Relationships))
			assert.Equal(t, res.Diagram.Relationships[0].Kind, got.Relationships[0].Kind)
		})
	}
}

func TestEmitIRJSONUsesStarForMany(t *testing.T) {
	res := compiler.Parse("class Order {\n  + items: Item[]\n}\n")
	var buf bytes.Buffer
	require.NoError(t, diagfmt.EmitIR(&buf, res.Diagram, "json"))
	assert.Contains(t, buf.String(), `"upper": "*"`)
}

func TestEmitIRUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, diagfmt.EmitIR(&buf, nil, "xml"))
	assert.True(t, diagfmt.IsBinaryIR("msgpack"))
	assert.False(t, diagfmt.IsBinaryIR("yaml"))
}
