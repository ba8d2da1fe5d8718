// Package typescript is the TypeScript flavour of UMLTS: TypeScript
// primitives, `namespace` blocks, `type X = T` aliases and `T?` types.
package typescript

import (
	"umlts/internal/ast"
	"umlts/internal/diag"
	"umlts/internal/parser"
	"umlts/internal/plugin"
	"umlts/internal/token"
)

// Primitives never produce relationships.
var Primitives = []string{
	"string", "number", "boolean", "any", "unknown", "void", "never",
	"null", "undefined", "object", "bigint", "symbol", "Date",
}

type Plugin struct{}

func New() Plugin { return Plugin{} }

func (Plugin) Name() string { return "typescript" }

func (Plugin) Capabilities() []plugin.Capability {
	return []plugin.Capability{&plugin.Language{
		Name:    "typescript",
		Aliases: []string{"ts"},
		Setup:   setup,
	}}
}

func setup(api *plugin.LanguageAPI) {
	api.AddPrimitives(Primitives...)
	api.AddStatementRule(namespaceRule{})
	api.AddStatementRule(aliasRule{})
	api.AddTypeModifierProvider(optionalModifier{})
}

func isWord(t token.Token, w string) bool {
	return t.Kind == token.Ident && t.Text == w
}

// namespaceRule: `namespace a.b { ... }` is a package.
type namespaceRule struct{}

func (namespaceRule) Name() string { return "ts-namespace" }

func (namespaceRule) CanHandle(o parser.Orchestrator) bool {
	ts := o.Stream()
	return isWord(ts.Peek(), "namespace") && (ts.PeekAt(1).IsName() || ts.CheckAt(1, token.LBrace))
}

func (namespaceRule) Parse(o parser.Orchestrator) (ast.Statement, error) {
	doc := o.Session().TakeDoc()
	o.Stream().Advance()
	pkg, err := parser.ParsePackageBody(o, doc)
	if pkg == nil {
		return nil, err
	}
	return pkg, err
}

// aliasRule: `type Money = number` declares a datatype alias.
type aliasRule struct{}

func (aliasRule) Name() string { return "ts-type-alias" }

func (aliasRule) CanHandle(o parser.Orchestrator) bool {
	ts := o.Stream()
	return isWord(ts.Peek(), "type") && ts.PeekAt(1).IsName() && ts.CheckAt(2, token.Assign)
}

func (aliasRule) Parse(o parser.Orchestrator) (ast.Statement, error) {
	ts := o.Stream()
	doc := o.Session().TakeDoc()
	kw := ts.Advance()
	nameTok := ts.Peek()
	name, err := o.ParseQualifiedName()
	if err != nil {
		return nil, err
	}
	e := &ast.Entity{
		EntityKind: ast.EntityDataType,
		Name:       name,
		NameSpan:   nameTok.Span.Cover(ts.Last().Span),
		Doc:        doc,
	}
	if _, err := ts.Consume(token.Assign, diag.SynUnexpectedToken, "expected '=' in type alias"); err != nil {
		e.Span = kw.Span.Cover(ts.Last().Span)
		return e, err
	}
	t, err := o.ParseType()
	e.AliasOf = t
	e.Span = kw.Span.Cover(ts.Last().Span)
	ts.Match(token.Semicolon)
	return e, err
}

// optionalModifier: `T?` marks the type optional.
type optionalModifier struct{}

func (optionalModifier) Name() string { return "ts-optional" }

func (optionalModifier) CanHandle(o parser.Orchestrator, _ *ast.TypeAnnotation) bool {
	return o.Stream().Check(token.Question)
}

func (optionalModifier) Apply(o parser.Orchestrator, base *ast.TypeAnnotation) (*ast.TypeAnnotation, error) {
	ts := o.Stream()
	ts.Advance()
	base.Optional = true
	base.Span = base.Span.Cover(ts.Last().Span)
	return base, nil
}
