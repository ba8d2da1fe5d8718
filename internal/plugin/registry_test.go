package plugin

import (
	"errors"
	"testing"

	"umlts/internal/ast"
	"umlts/internal/parser"
	"umlts/internal/token"
)

type testPlugin struct {
	name string
	caps []Capability
}

func (p testPlugin) Name() string               { return p.name }
func (p testPlugin) Capabilities() []Capability { return p.caps }

type fakeRule struct{}

func (fakeRule) Name() string                                     { return "fake" }
func (fakeRule) CanHandle(parser.Orchestrator) bool               { return false }
func (fakeRule) Parse(parser.Orchestrator) (ast.Statement, error) { return nil, nil }

func TestRegisterAndActivate(t *testing.T) {
	reg := NewRegistry()
	var kind token.Kind
	err := reg.Register(testPlugin{name: "demo", caps: []Capability{&Language{
		Name:    "Demo",
		Aliases: []string{"dm"},
		Setup: func(api *LanguageAPI) {
			api.AddPrimitives("text")
			api.AddStatementRule(fakeRule{})
			kind = api.AllocKind("MARK")
		},
	}}})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if kind < token.PluginBase {
		t.Fatalf("plugin kind %d below PluginBase", kind)
	}
	if got := kind.String(); got != "Demo:MARK" {
		t.Fatalf("kind name = %q", got)
	}

	act, ok := reg.Activate("DM")
	if !ok {
		t.Fatalf("alias lookup failed")
	}
	if act.Language != "Demo" || len(act.Primitives) != 1 {
		t.Fatalf("unexpected activation %+v", act)
	}
	rules := act.ParserRegistry().StatementRules()
	if rules[0].Name() != "fake" {
		t.Fatalf("plugin rule must come first, got %q", rules[0].Name())
	}
	if n := len(parser.NewRegistry().StatementRules()); len(rules) != n+1 {
		t.Fatalf("expected %d rules, got %d", n+1, len(rules))
	}

	if _, ok := reg.Activate("cobol"); ok {
		t.Fatalf("unknown language activated")
	}
}

func TestDuplicateLanguageRejected(t *testing.T) {
	reg := NewRegistry()
	lang := func() Capability { return &Language{Name: "x"} }
	if err := reg.Register(testPlugin{name: "a", caps: []Capability{lang()}}); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if err := reg.Register(testPlugin{name: "b", caps: []Capability{lang()}}); err == nil {
		t.Fatalf("expected duplicate error")
	}
	if len(reg.Plugins()) != 1 {
		t.Fatalf("failed plugin must not be kept")
	}
}

func TestFreeze(t *testing.T) {
	reg := NewRegistry()
	reg.Freeze()
	err := reg.Register(testPlugin{name: "late", caps: []Capability{&Language{Name: "late"}}})
	if !errors.Is(err, ErrFrozen) {
		t.Fatalf("expected ErrFrozen, got %v", err)
	}
	if !reg.Frozen() {
		t.Fatalf("expected frozen registry")
	}
}

func TestNilActivationParserRegistry(t *testing.T) {
	var act *Activation
	if got, want := len(act.ParserRegistry().StatementRules()), len(parser.NewRegistry().StatementRules()); got != want {
		t.Fatalf("got %d rules, want %d", got, want)
	}
}
