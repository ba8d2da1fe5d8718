package compiler

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"umlts/internal/ast"
	"umlts/internal/ir"
	"umlts/internal/observ"
	"umlts/internal/parser"
	"umlts/internal/plugin"
	"umlts/internal/source"
	"umlts/internal/testkit"
	"umlts/internal/trace"
)

func codes(res *Result) []string {
	out := make([]string, 0, len(res.Diagnostics))
	for _, d := range res.Diagnostics {
		out = append(out, d.Code)
	}
	return out
}

func TestParseValidModel(t *testing.T) {
	res := Parse(`
package shop {
  /** Customer order */
  class Order {
    + id: string
    - lines: Line[]
    total(): float
  }
  class Line
  Order >* [1] Line
}
`)
	require.True(t, res.IsValid, "%v", res.Diagnostics)
	assert.Empty(t, res.Diagnostics)
	require.NotNil(t, res.AST)
	require.NotNil(t, res.Diagram)

	order := res.Diagram.Entity("shop.Order")
	require.NotNil(t, order)
	assert.Equal(t, "Customer order", order.Doc)
	assert.Len(t, order.Properties, 2)
	assert.Len(t, order.Operations, 1)
	assert.NotEmpty(t, res.Tokens)
}

func TestParseReportsExternalDiagnostics(t *testing.T) {
	res := Parse("class A >> B\nclass B >> C\nclass C >> A\n")
	assert.False(t, res.IsValid)
	require.Len(t, res.Diagnostics, 1)
	d := res.Diagnostics[0]
	assert.Equal(t, "error", d.Severity)
	assert.Equal(t, "SEM3030", d.Code)
	assert.Equal(t, "SEMANTIC_CYCLE_DETECTED", d.Name)
	assert.Contains(t, d.Message, "A -> B -> C -> A")
	assert.GreaterOrEqual(t, d.Line, 1)
	assert.GreaterOrEqual(t, d.Column, 1)
}

func TestParseMalformedInputNeverNil(t *testing.T) {
	for _, src := range []string{"", "}}}}", "class {", "package { class Inside {} }", "\"unterminated", "/* open"} {
		res := Parse(src)
		require.NotNil(t, res.Diagram, "src %q", src)
		require.NotNil(t, res.AST, "src %q", src)
		require.NotNil(t, res.Diagram.Entities, "src %q", src)
	}
}

func TestSoftConsumeThroughCompiler(t *testing.T) {
	res := Parse("package { class Inside {} }")
	assert.False(t, res.IsValid)
	assert.Contains(t, codes(res), "SYN2003")
	require.Len(t, res.AST.Body, 1)
	pkg, ok := res.AST.Body[0].(*ast.Package)
	require.True(t, ok)
	assert.Equal(t, "<missing:IDENTIFIER>", pkg.Name)
}

func TestLanguageFromConfigBlock(t *testing.T) {
	res := Parse(`config { language: "typescript" }
namespace app {
  type Id = string
  class User {
    id: Id
    name: string?
  }
}`)
	require.True(t, res.IsValid, "%v", res.Diagnostics)
	assert.Equal(t, "typescript", res.Language)
	user := res.Diagram.Entity("app.User")
	require.NotNil(t, user)
	assert.Equal(t, ir.KindDataType, res.Diagram.Entity("app.Id").Kind)
	assert.Equal(t, "typescript", res.Diagram.Config["language"])
}

func TestLanguageFromDirective(t *testing.T) {
	res := Parse("@language: java\n@Entity\nclass Order {\n  items: List<Item>\n}\nclass Item\n")
	require.True(t, res.IsValid, "%v", res.Diagnostics)
	assert.Equal(t, "java", res.Language)
	rels := res.Diagram.RelationshipsOf("Order")
	require.Len(t, rels, 1)
	assert.Equal(t, "Item", rels[0].To)
	require.NotNil(t, rels[0].ToMultiplicity)
	assert.Equal(t, ir.Many, rels[0].ToMultiplicity.Upper)
}

func TestSourceLanguageOverridesOption(t *testing.T) {
	res := ParseWithOptions("a.umlts", "@language: ts\nclass A", Options{Language: "java"})
	assert.Equal(t, "typescript", res.Language)

	res = ParseWithOptions("a.umlts", "class A { x: long }", Options{Language: "java"})
	assert.Equal(t, "java", res.Language)
	assert.Empty(t, res.Diagram.RelationshipsOf("A"), "long is a java primitive")
}

func TestUnknownLanguageWarns(t *testing.T) {
	res := Parse("config { language: \"cobol\" }\nclass A { n: int }")
	assert.True(t, res.IsValid, "unknown language is only a warning")
	assert.Empty(t, res.Language)
	require.Contains(t, codes(res), "PRJ5001")
	for _, d := range res.Diagnostics {
		if d.Code == "PRJ5001" {
			assert.Equal(t, "warning", d.Severity)
			assert.Contains(t, d.Message, "cobol")
		}
	}
	assert.Empty(t, res.Diagram.RelationshipsOf("A"), "defaults still know int")
}

func TestWarningsAsErrors(t *testing.T) {
	src := "xor solo { A >- B }"
	assert.True(t, Parse(src).IsValid)

	res := ParseWithOptions(DefaultName, src, Options{WarningsAsErrors: true})
	assert.False(t, res.IsValid)
	require.NotEmpty(t, res.Diagnostics)
	assert.Equal(t, "error", res.Diagnostics[0].Severity)
}

func TestMaxDiagnosticsCaps(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 20; i++ {
		sb.WriteString("class Dup\n")
	}
	res := ParseWithOptions(DefaultName, sb.String(), Options{MaxDiagnostics: 5})
	assert.LessOrEqual(t, len(res.Diagnostics), 5)
	assert.False(t, res.IsValid)
}

func TestCappedErrorStillInvalidates(t *testing.T) {
	src := "@language: nope\nclass A\nclass A\n"
	assert.False(t, Parse(src).IsValid)

	res := ParseWithOptions(DefaultName, src, Options{MaxDiagnostics: 1})
	require.Len(t, res.Diagnostics, 1)
	assert.Equal(t, "warning", res.Diagnostics[0].Severity)
	assert.False(t, res.IsValid)
	assert.True(t, res.Bag.HasErrors())
}

func TestCappedWarningPromoted(t *testing.T) {
	src := "@language: nope\nxor solo { A >- B }"
	res := ParseWithOptions(DefaultName, src, Options{MaxDiagnostics: 1})
	assert.True(t, res.IsValid)

	res = ParseWithOptions(DefaultName, src, Options{MaxDiagnostics: 1, WarningsAsErrors: true})
	require.Len(t, res.Diagnostics, 1)
	assert.False(t, res.IsValid)
}

type panicRule struct{}

func (panicRule) Name() string                         { return "boom" }
func (panicRule) CanHandle(o parser.Orchestrator) bool { return o.Stream().Peek().Text == "boom" }
func (panicRule) Parse(parser.Orchestrator) (ast.Statement, error) {
	panic("plugin exploded")
}

type badPlugin struct{}

func (badPlugin) Name() string { return "bad" }
func (badPlugin) Capabilities() []plugin.Capability {
	return []plugin.Capability{&plugin.Language{
		Name: "bad",
		Setup: func(api *plugin.LanguageAPI) {
			api.AddStatementRule(panicRule{})
		},
	}}
}

func TestPluginPanicBecomesInternalDiagnostic(t *testing.T) {
	reg := plugin.NewRegistry()
	require.NoError(t, reg.Register(badPlugin{}))
	reg.Freeze()

	var res *Result
	require.NotPanics(t, func() {
		res = ParseWithOptions(DefaultName, "@language: bad\nboom", Options{Registry: reg})
	})
	assert.False(t, res.IsValid)
	assert.Contains(t, codes(res), "SEM3000")
	require.NotNil(t, res.AST)
	require.NotNil(t, res.Diagram)
}

func TestDeterministicOutput(t *testing.T) {
	src := "class A >> B\ninterface I\nA >I I\nxor x { A >- C\n A >- D }\nnote \"n\" for A\n"
	first := Parse(src)
	second := Parse(src)
	assert.Equal(t, first.Diagram, second.Diagram)
	assert.Equal(t, first.Diagnostics, second.Diagnostics)
}

func TestCompileTracesAndTimes(t *testing.T) {
	ring := trace.NewRingTracer(64, trace.LevelDebug)
	timer := observ.NewTimer()
	fs := source.NewFileSet()
	id := fs.AddVirtual("t.umlts", []byte("class A"))

	res := Compile(fs, id, Options{Tracer: ring, Timer: timer})
	require.True(t, res.IsValid)

	names := map[string]bool{}
	for _, ev := range ring.Snapshot() {
		names[ev.Name] = true
	}
	for _, want := range []string{"compile:t.umlts", "lex", "parse", "sema"} {
		assert.True(t, names[want], "missing span %s", want)
	}
	phases := timer.Aggregate().Phases
	require.Len(t, phases, 3)
	assert.Equal(t, "lex", phases[0].Name)
}

func TestDetectLanguage(t *testing.T) {
	cases := []struct {
		src  string
		want string
		ok   bool
	}{
		{`config { language: "java" }`, "java", true},
		{"config {\n theme: dark,\n language: typescript\n}", "typescript", true},
		{"@language: ts", "ts", true},
		{"class language", "", false},
		{"config { title: \"language\" }", "", false},
	}
	for _, tc := range cases {
		fs := source.NewFileSet()
		got, ok := DetectLanguage(fs.Get(fs.AddVirtual("x.umlts", []byte(tc.src))))
		assert.Equal(t, tc.ok, ok, tc.src)
		assert.Equal(t, tc.want, got.Name, tc.src)
	}
}

func TestStagesStopEarly(t *testing.T) {
	src := "class A >> B\nclass B >> A\n"

	res := ParseWithOptions(DefaultName, src, Options{Stage: StageTokenize})
	assert.NotEmpty(t, res.Tokens)
	assert.Empty(t, res.AST.Body)
	assert.Empty(t, res.Diagram.Entities)

	res = ParseWithOptions(DefaultName, src, Options{Stage: StageSyntax})
	assert.Len(t, res.AST.Body, 2)
	assert.Empty(t, res.Diagram.Entities)
	assert.True(t, res.IsValid, "cycle is a semantic error")

	stage, err := ParseStage("syntax")
	require.NoError(t, err)
	assert.Equal(t, StageSyntax, stage)
	_, err = ParseStage("codegen")
	assert.Error(t, err)
}

func TestIgnoreWarnings(t *testing.T) {
	res := ParseWithOptions(DefaultName, "xor solo { A >- B }", Options{IgnoreWarnings: true})
	assert.Empty(t, res.Diagnostics)
	assert.True(t, res.IsValid)
}

func TestASTSpansStayInsideSource(t *testing.T) {
	for _, src := range []string{
		"package shop {\n  class Order {\n    + id: string\n    + total(): number\n  }\n  Order >* [1..*] Item\n}",
		"class Enrollment <> (Student[*], Course[1..*]) {\n  grade: string\n}",
		"note todo \"n\" for A, B\nclass A\nclass B",
		"@language: java\nclass J {\n  items: List<Item>\n}",
		"class {\n}}} A >>",
	} {
		res := Parse(src)
		require.NoError(t, testkit.CheckSpanInvariants(res.AST, res.File), "src %q", src)
	}
}
