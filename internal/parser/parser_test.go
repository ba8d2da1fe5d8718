package parser_test

import (
	"fmt"
	"strings"
	"testing"

	"umlts/internal/ast"
	"umlts/internal/diag"
	"umlts/internal/lexer"
	"umlts/internal/parser"
	"umlts/internal/source"
)

func parseSource(t *testing.T, src string) *ast.Program {
	t.Helper()
	return parseWith(t, src, parser.Options{})
}

func parseWith(t *testing.T, src string, opts parser.Options) *ast.Program {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.umlts", []byte(src))
	toks := lexer.Tokenize(fs.Get(id), lexer.Options{})
	return parser.Parse(toks, opts)
}

func diagnosticsSummary(diags []diag.Diagnostic) string {
	if len(diags) == 0 {
		return "<none>"
	}
	lines := make([]string, len(diags))
	for i, d := range diags {
		lines[i] = fmt.Sprintf("[%s] %s", d.Code.ID(), d.Message)
	}
	return strings.Join(lines, "; ")
}

func errorCount(diags []diag.Diagnostic) int {
	n := 0
	for _, d := range diags {
		if d.Severity == diag.SevError {
			n++
		}
	}
	return n
}

func TestParseEntityWithHeadersAndMembers(t *testing.T) {
	prog := parseSource(t, `
abstract class Order<T> >> Base, Entity >I Auditable {
  +id: string
  -items: List<Item>[0..*]
  #status: Status(OPEN | CLOSED) = OPEN
  $count?: int
  +total(discount: number = 0): number
}
`)
	if len(prog.Diagnostics) != 0 {
		t.Fatalf("unexpected diagnostics: %s", diagnosticsSummary(prog.Diagnostics))
	}
	if len(prog.Body) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(prog.Body))
	}
	ent, ok := prog.Body[0].(*ast.Entity)
	if !ok {
		t.Fatalf("expected *ast.Entity, got %T", prog.Body[0])
	}
	if ent.Name != "Order" || !ent.Modifiers.Abstract || ent.EntityKind != ast.EntityClass {
		t.Fatalf("unexpected entity header: %+v", ent)
	}
	if len(ent.TypeParams) != 1 || ent.TypeParams[0] != "T" {
		t.Fatalf("type params = %v", ent.TypeParams)
	}
	if len(ent.Headers) != 3 {
		t.Fatalf("expected 3 header relationships, got %d", len(ent.Headers))
	}
	if ent.Headers[1].To != "Entity" || ent.Headers[1].RelKind != ast.RelGeneralization {
		t.Fatalf("comma target must reuse operator: %+v", ent.Headers[1])
	}
	if ent.Headers[2].RelKind != ast.RelRealization || ent.Headers[2].To != "Auditable" {
		t.Fatalf("unexpected realization header: %+v", ent.Headers[2])
	}
	if len(ent.Members) != 5 {
		t.Fatalf("expected 5 members, got %d", len(ent.Members))
	}
	items := ent.Members[1].(*ast.Attribute)
	if items.Type.TypeKind != ast.TypeGeneric || items.Multiplicity == nil || items.Multiplicity.Upper != ast.Many {
		t.Fatalf("unexpected items attribute: %+v", items)
	}
	status := ent.Members[2].(*ast.Attribute)
	if status.Type.TypeKind != ast.TypeEnumLiteral || len(status.Type.Literals) != 2 || status.Default != "OPEN" {
		t.Fatalf("unexpected status attribute: %+v", status.Type)
	}
	count := ent.Members[3].(*ast.Attribute)
	if !count.Optional || !count.Modifiers.Static {
		t.Fatalf("unexpected count attribute: %+v", count)
	}
	m := ent.Members[4].(*ast.Method)
	if len(m.Params) != 1 || m.Params[0].Default != "0" || m.ReturnType.Name != "number" {
		t.Fatalf("unexpected method: %+v", m)
	}
}

func TestPackageNameSoftConsume(t *testing.T) {
	prog := parseSource(t, "package { class Inside {} }")
	if len(prog.Body) != 1 {
		t.Fatalf("expected one package, got %d statements", len(prog.Body))
	}
	pkg, ok := prog.Body[0].(*ast.Package)
	if !ok {
		t.Fatalf("expected package, got %T", prog.Body[0])
	}
	if pkg.Name != "<missing:IDENTIFIER>" {
		t.Fatalf("package name = %q", pkg.Name)
	}
	if len(pkg.Body) != 1 {
		t.Fatalf("expected one class in package, got %d", len(pkg.Body))
	}
	if cls, ok := pkg.Body[0].(*ast.Entity); !ok || cls.Name != "Inside" {
		t.Fatalf("unexpected package body: %#v", pkg.Body[0])
	}
	if len(prog.Diagnostics) != 1 || prog.Diagnostics[0].Message != "Package name expected" {
		t.Fatalf("expected 'Package name expected', got %s", diagnosticsSummary(prog.Diagnostics))
	}
}

func TestMemberRecovery(t *testing.T) {
	prog := parseSource(t, `class User {
  name: string
  @@@ garbage !! %%
  age: int
}`)
	ent := prog.Body[0].(*ast.Entity)
	var names []string
	for _, m := range ent.Members {
		if a, ok := m.(*ast.Attribute); ok {
			names = append(names, a.Name)
		}
	}
	if strings.Join(names, ",") != "name,age" {
		t.Fatalf("attributes = %v, diags: %s", names, diagnosticsSummary(prog.Diagnostics))
	}
	if errorCount(prog.Diagnostics) == 0 {
		t.Fatalf("garbage line must be diagnosed")
	}
}

func TestTopLevelRecoveryOneDiagnosticPerIsland(t *testing.T) {
	prog := parseSource(t, `) ) ) ,
class A {}
class B {}`)
	if len(prog.Body) != 2 {
		t.Fatalf("expected 2 classes after recovery, got %d", len(prog.Body))
	}
	if len(prog.Diagnostics) != 1 {
		t.Fatalf("expected one diagnostic for the island, got %s", diagnosticsSummary(prog.Diagnostics))
	}
}

func TestRelationshipStatement(t *testing.T) {
	prog := parseSource(t, `Customer [1] >- [0..*] Order : places {xor: pay}
A -- B
C ..> D`)
	if len(prog.Body) != 3 {
		t.Fatalf("expected 3 relationships, got %d (%s)", len(prog.Body), diagnosticsSummary(prog.Diagnostics))
	}
	rel := prog.Body[0].(*ast.Relationship)
	if rel.From != "Customer" || rel.To != "Order" || rel.Label != "places" || rel.XorGroup != "pay" {
		t.Fatalf("unexpected relationship: %+v", rel)
	}
	if rel.FromMult.Lower != 1 || rel.FromMult.Upper != 1 || rel.ToMult.Lower != 0 || rel.ToMult.Upper != ast.Many {
		t.Fatalf("unexpected multiplicities: %+v %+v", rel.FromMult, rel.ToMult)
	}
	if plain := prog.Body[1].(*ast.Relationship); plain.Navigable {
		t.Fatalf("`--` must be non-navigable")
	}
	if dep := prog.Body[2].(*ast.Relationship); dep.RelKind != ast.RelDependency {
		t.Fatalf("expected dependency, got %v", dep.RelKind)
	}
}

func TestAssociationClass(t *testing.T) {
	prog := parseSource(t, `class Enrollment <> (Student[*], Course[1..*] >> Offering) {
  grade: string
}`)
	if len(prog.Diagnostics) != 0 {
		t.Fatalf("unexpected diagnostics: %s", diagnosticsSummary(prog.Diagnostics))
	}
	ac, ok := prog.Body[0].(*ast.AssociationClass)
	if !ok {
		t.Fatalf("expected association class, got %T", prog.Body[0])
	}
	if len(ac.Participants) != 2 || ac.Participants[1].Name != "Course" {
		t.Fatalf("unexpected participants: %+v", ac.Participants)
	}
	if len(ac.Participants[1].Chain) != 1 || ac.Participants[1].Chain[0].To != "Offering" {
		t.Fatalf("participant chain lost: %+v", ac.Participants[1].Chain)
	}
	if len(ac.Members) != 1 {
		t.Fatalf("expected 1 member, got %d", len(ac.Members))
	}
}

func TestNestedGenericsSplitShift(t *testing.T) {
	prog := parseSource(t, `class Cache {
  data: Map<string, List<Item>>
  next: int
}`)
	if len(prog.Diagnostics) != 0 {
		t.Fatalf("unexpected diagnostics: %s", diagnosticsSummary(prog.Diagnostics))
	}
	ent := prog.Body[0].(*ast.Entity)
	if len(ent.Members) != 2 {
		t.Fatalf("expected 2 members, got %d", len(ent.Members))
	}
	data := ent.Members[0].(*ast.Attribute)
	if got := data.Type.String(); got != "Map<string, List<Item>>" {
		t.Fatalf("type = %q", got)
	}
}

func TestUnionIsFlat(t *testing.T) {
	prog := parseSource(t, "class P { pay: Card | Cash | Voucher[] }")
	attr := prog.Body[0].(*ast.Entity).Members[0].(*ast.Attribute)
	if attr.Type.TypeKind != ast.TypeUnion || len(attr.Type.Args) != 3 {
		t.Fatalf("expected flat union of 3, got %s", attr.Type)
	}
	if attr.Type.Args[2].TypeKind != ast.TypeArray {
		t.Fatalf("array must bind tighter than union")
	}
}

func TestEnumBody(t *testing.T) {
	prog := parseSource(t, `enum Color { RED, GREEN; BLUE
  +code: int }`)
	ent := prog.Body[0].(*ast.Entity)
	var lits []string
	attrs := 0
	for _, m := range ent.Members {
		switch x := m.(type) {
		case *ast.EnumLiteral:
			lits = append(lits, x.Name)
		case *ast.Attribute:
			attrs++
		}
	}
	if strings.Join(lits, ",") != "RED,GREEN,BLUE" || attrs != 1 {
		t.Fatalf("literals=%v attrs=%d diags=%s", lits, attrs, diagnosticsSummary(prog.Diagnostics))
	}
}

func TestDocCommentsAttach(t *testing.T) {
	prog := parseSource(t, `/** A customer. */
class Customer {
  /** Display name. */
  name: string
}
/** dangling */`)
	if len(prog.Body) != 2 {
		t.Fatalf("expected class and dangling doc, got %d", len(prog.Body))
	}
	ent := prog.Body[0].(*ast.Entity)
	if ent.Doc != "A customer." {
		t.Fatalf("entity doc = %q", ent.Doc)
	}
	if a := ent.Members[0].(*ast.Attribute); a.Doc != "Display name." {
		t.Fatalf("attribute doc = %q", a.Doc)
	}
	if _, ok := prog.Body[1].(*ast.DocComment); !ok {
		t.Fatalf("expected dangling DocComment, got %T", prog.Body[1])
	}
}

func TestConfigDirectiveXorNote(t *testing.T) {
	prog := parseSource(t, `config { language: "java", strict: true; width: 80 }
@theme: dark
xor payment { Order >- Card; Order >- Cash }
note todo "check this" for Order, Card
// trailing`)
	if len(prog.Diagnostics) != 0 {
		t.Fatalf("unexpected diagnostics: %s", diagnosticsSummary(prog.Diagnostics))
	}
	if len(prog.Body) != 5 {
		t.Fatalf("expected 5 statements, got %d", len(prog.Body))
	}
	cfg := prog.Body[0].(*ast.Config)
	if len(cfg.Entries) != 3 || cfg.Entries[0].Value != "java" || cfg.Entries[1].Value != true || cfg.Entries[2].Value != 80.0 {
		t.Fatalf("unexpected config: %+v", cfg.Entries)
	}
	dir := prog.Body[1].(*ast.Config)
	if !dir.Directive || dir.Entries[0].Key != "theme" || dir.Entries[0].Value != "dark" {
		t.Fatalf("unexpected directive: %+v", dir)
	}
	xor := prog.Body[2].(*ast.Constraint)
	if xor.Group != "payment" || len(xor.Relationships) != 2 {
		t.Fatalf("unexpected xor block: %+v", xor)
	}
	note := prog.Body[3].(*ast.Note)
	if note.Name != "todo" || note.Text != "check this" || len(note.Anchors) != 2 {
		t.Fatalf("unexpected note: %+v", note)
	}
	if _, ok := prog.Body[4].(*ast.Comment); !ok {
		t.Fatalf("expected comment, got %T", prog.Body[4])
	}
}

func TestMemberXorBlock(t *testing.T) {
	prog := parseSource(t, `class Account {
  xor owner { person: Person; company: Company }
}`)
	ent := prog.Body[0].(*ast.Entity)
	c, ok := ent.Members[0].(*ast.Constraint)
	if !ok || c.Group != "owner" || len(c.Members) != 2 {
		t.Fatalf("unexpected member xor: %#v (%s)", ent.Members, diagnosticsSummary(prog.Diagnostics))
	}
}

func TestUnclosedBodyStopsAtNextClass(t *testing.T) {
	prog := parseSource(t, `class A {
  x: int
class B {}`)
	if len(prog.Body) != 2 {
		t.Fatalf("expected both classes, got %d", len(prog.Body))
	}
	if errorCount(prog.Diagnostics) != 1 {
		t.Fatalf("expected one missing-brace error, got %s", diagnosticsSummary(prog.Diagnostics))
	}
}

type countingRule struct{ hits *int }

func (countingRule) Name() string { return "counting" }
func (r countingRule) CanHandle(o parser.Orchestrator) bool {
	tok := o.Stream().Peek()
	return tok.IsName() && tok.Text == "marker"
}
func (r countingRule) Parse(o parser.Orchestrator) (ast.Statement, error) {
	*r.hits++
	o.Stream().Advance()
	return nil, nil
}

func TestExtensionRulesRunFirst(t *testing.T) {
	hits := 0
	reg := parser.NewRegistry()
	reg.AddStatementRule(countingRule{hits: &hits})
	prog := parseWith(t, "marker\nclass A {}", parser.Options{Registry: reg})
	if hits != 1 {
		t.Fatalf("extension rule not used")
	}
	if len(prog.Body) != 1 || len(prog.Diagnostics) != 0 {
		t.Fatalf("unexpected result: %d statements, %s", len(prog.Body), diagnosticsSummary(prog.Diagnostics))
	}
}

func TestParseNeverPanics(t *testing.T) {
	inputs := []string{
		"", "class", "class {", "package", "package a {", "A >>", "A [", "A [1..", "class A <> (",
		"class A <> (B, C", "enum E {", "xor {", "note", "config {", "@x:", "class A { f( }",
		"class A { x: Map<", "class A { x: List<List<T> }", "}}}}", "class A >> ,",
	}
	for _, in := range inputs {
		func() {
			defer func() {
				if r := recover(); r != nil {
					t.Fatalf("panic on %q: %v", in, r)
				}
			}()
			parseSource(t, in)
		}()
	}
}

func nestedPackages(depth int) string {
	return strings.Repeat("package p {\n", depth) + "class Leaf\n" + strings.Repeat("}\n", depth) + "class After\n"
}

func TestPackageNestingLimit(t *testing.T) {
	prog := parseSource(t, nestedPackages(parser.MaxPackageDepth))
	if len(prog.Diagnostics) != 0 {
		t.Fatalf("depth %d must parse cleanly, got %s", parser.MaxPackageDepth, diagnosticsSummary(prog.Diagnostics))
	}

	prog = parseSource(t, nestedPackages(parser.MaxPackageDepth+10))
	deep := 0
	for _, d := range prog.Diagnostics {
		if d.Code == diag.SynNestingTooDeep {
			deep++
		}
	}
	if deep != 1 || len(prog.Diagnostics) != 1 {
		t.Fatalf("expected one nesting diagnostic, got %s", diagnosticsSummary(prog.Diagnostics))
	}
	if len(prog.Body) != 2 {
		t.Fatalf("expected package and trailing class, got %d statements", len(prog.Body))
	}
	if cls, ok := prog.Body[1].(*ast.Entity); !ok || cls.Name != "After" {
		t.Fatalf("statement after the skipped body was lost: %#v", prog.Body[1])
	}
}

func TestLongQualifiedNameIsCapped(t *testing.T) {
	parts := make([]string, parser.MaxPackageDepth+50)
	for i := range parts {
		parts[i] = "p"
	}
	prog := parseSource(t, "package "+strings.Join(parts, ".")+" { class Inside }")
	if len(prog.Diagnostics) != 1 || prog.Diagnostics[0].Code != diag.SynNestingTooDeep {
		t.Fatalf("expected one nesting diagnostic, got %s", diagnosticsSummary(prog.Diagnostics))
	}
	pkg, ok := prog.Body[0].(*ast.Package)
	if !ok {
		t.Fatalf("expected package, got %T", prog.Body[0])
	}
	if got := strings.Count(pkg.Name, ".") + 1; got != parser.MaxPackageDepth {
		t.Fatalf("package name kept %d segments", got)
	}
	if len(pkg.Body) != 1 {
		t.Fatalf("body at the depth limit must still parse, got %d statements", len(pkg.Body))
	}
}
