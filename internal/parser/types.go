package parser

import (
	"umlts/internal/ast"
	"umlts/internal/diag"
	"umlts/internal/token"
)

// genericTypeProvider: Name<T, U>
type genericTypeProvider struct{}

func (genericTypeProvider) Name() string { return "generic" }

func (genericTypeProvider) CanHandle(o Orchestrator) bool {
	ts := o.Stream()
	i := scanQualifiedName(ts, 0)
	return i > 0 && ts.CheckAt(i, token.Lt)
}

func (genericTypeProvider) Parse(o Orchestrator) (*ast.TypeAnnotation, error) {
	ts := o.Stream()
	start := ts.Peek()
	name, err := o.ParseQualifiedName()
	if err != nil {
		return nil, err
	}
	t := &ast.TypeAnnotation{TypeKind: ast.TypeGeneric, Name: name}
	ts.Advance() // <
	for {
		arg, err := o.ParseType()
		if arg != nil {
			t.Args = append(t.Args, arg)
		}
		if err != nil {
			t.Span = start.Span.Cover(ts.Last().Span)
			return t, err
		}
		if _, ok := ts.Match(token.Comma); !ok {
			break
		}
	}
	// `>>` закрывает сразу два уровня: List<List<T>>
	if !ts.SplitShift() {
		t.Span = start.Span.Cover(ts.Last().Span)
		return t, ts.Errorf(diag.SynExpectGt, "expected '>' to close type arguments of %s, got %s", name, describe(ts.Peek()))
	}
	t.Span = start.Span.Cover(ts.Last().Span)
	return t, nil
}

// inlineEnumTypeProvider: Status(OPEN | CLOSED)
type inlineEnumTypeProvider struct{}

func (inlineEnumTypeProvider) Name() string { return "inline-enum" }

func (inlineEnumTypeProvider) CanHandle(o Orchestrator) bool {
	ts := o.Stream()
	i := scanQualifiedName(ts, 0)
	return i > 0 && ts.CheckAt(i, token.LParen) && ts.PeekAt(i).Line == ts.Peek().Line
}

func (inlineEnumTypeProvider) Parse(o Orchestrator) (*ast.TypeAnnotation, error) {
	ts := o.Stream()
	start := ts.Peek()
	name, err := o.ParseQualifiedName()
	if err != nil {
		return nil, err
	}
	t := &ast.TypeAnnotation{TypeKind: ast.TypeEnumLiteral, Name: name}
	ts.Advance() // (
	for !ts.Check(token.RParen) && !ts.AtEOF() {
		lit := ts.Peek()
		if !lit.IsName() {
			t.Span = start.Span.Cover(ts.Last().Span)
			return t, ts.Errorf(diag.SynExpectIdentifier, "expected enum literal, got %s", describe(lit))
		}
		t.Literals = append(t.Literals, ts.Advance().Text)
		if _, ok := ts.Match(token.Pipe); ok {
			continue
		}
		if _, ok := ts.Match(token.Comma); !ok {
			break
		}
	}
	if _, err := ts.Consume(token.RParen, diag.SynExpectRParen, "expected ')' to close inline enum"); err != nil {
		t.Span = start.Span.Cover(ts.Last().Span)
		return t, err
	}
	t.Span = start.Span.Cover(ts.Last().Span)
	return t, nil
}

type simpleTypeProvider struct{}

func (simpleTypeProvider) Name() string { return "simple" }

func (simpleTypeProvider) CanHandle(o Orchestrator) bool {
	return o.Stream().Peek().IsName()
}

func (simpleTypeProvider) Parse(o Orchestrator) (*ast.TypeAnnotation, error) {
	ts := o.Stream()
	start := ts.Peek()
	name, err := o.ParseQualifiedName()
	if err != nil {
		return nil, err
	}
	return &ast.TypeAnnotation{
		Base:     ast.Base{Span: start.Span.Cover(ts.Last().Span)},
		TypeKind: ast.TypeSimple,
		Name:     name,
	}, nil
}

// arrayModifier: T[]
type arrayModifier struct{}

func (arrayModifier) Name() string { return "array" }

func (arrayModifier) CanHandle(o Orchestrator, _ *ast.TypeAnnotation) bool {
	ts := o.Stream()
	return ts.Check(token.LBracket) && ts.CheckAt(1, token.RBracket)
}

func (arrayModifier) Apply(o Orchestrator, base *ast.TypeAnnotation) (*ast.TypeAnnotation, error) {
	ts := o.Stream()
	ts.Advance()
	ts.Advance()
	return &ast.TypeAnnotation{
		Base:     ast.Base{Span: base.Span.Cover(ts.Last().Span)},
		TypeKind: ast.TypeArray,
		Elem:     base,
	}, nil
}

// unionModifier: A | B | C — всегда плоский список.
type unionModifier struct{}

func (unionModifier) Name() string { return "union" }

func (unionModifier) CanHandle(o Orchestrator, _ *ast.TypeAnnotation) bool {
	return o.Stream().Check(token.Pipe)
}

func (unionModifier) Apply(o Orchestrator, base *ast.TypeAnnotation) (*ast.TypeAnnotation, error) {
	ts := o.Stream()
	ts.Advance()
	right, err := o.ParseType()
	u := &ast.TypeAnnotation{TypeKind: ast.TypeUnion}
	u.Args = appendUnion(u.Args, base)
	if right != nil {
		u.Args = appendUnion(u.Args, right)
	}
	u.Span = base.Span.Cover(ts.Last().Span)
	return u, err
}

func appendUnion(args []*ast.TypeAnnotation, t *ast.TypeAnnotation) []*ast.TypeAnnotation {
	if t.TypeKind == ast.TypeUnion && !t.Optional {
		return append(args, t.Args...)
	}
	return append(args, t)
}
