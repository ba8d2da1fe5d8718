package parser

import (
	"umlts/internal/ast"
	"umlts/internal/diag"
	"umlts/internal/token"
)

type docMemberProvider struct{}

func (docMemberProvider) Name() string { return "doc-comment" }

func (docMemberProvider) CanHandle(o Orchestrator, _ MemberContext) bool {
	return o.Stream().Check(token.DocComment)
}

func (docMemberProvider) Parse(o Orchestrator, ctx MemberContext) (ast.Member, error) {
	ts := o.Stream()
	t := ts.Advance()
	if ts.Check(token.RBrace) || ts.Check(token.DocComment) || ts.AtEOF() {
		return &ast.DocComment{Base: ast.Base{Span: t.Span}, Text: t.Text}, nil
	}
	o.Session().SetDoc(t.Text)
	return o.ParseMember(ctx)
}

type commentMemberProvider struct{}

func (commentMemberProvider) Name() string { return "comment" }

func (commentMemberProvider) CanHandle(o Orchestrator, _ MemberContext) bool {
	return o.Stream().PeekRaw().Kind == token.Comment
}

func (commentMemberProvider) Parse(o Orchestrator, _ MemberContext) (ast.Member, error) {
	t := o.Stream().AdvanceRaw()
	return &ast.Comment{Base: ast.Base{Span: t.Span}, Text: t.Text}, nil
}

// xorMemberProvider: xor name? { feature* }
type xorMemberProvider struct{}

func (xorMemberProvider) Name() string { return "xor" }

func (xorMemberProvider) CanHandle(o Orchestrator, ctx MemberContext) bool {
	ts := o.Stream()
	if ctx.InXor || !ts.Check(token.KwXor) {
		return false
	}
	return ts.CheckAt(1, token.LBrace) || (ts.PeekAt(1).IsName() && ts.CheckAt(2, token.LBrace))
}

func (xorMemberProvider) Parse(o Orchestrator, ctx MemberContext) (ast.Member, error) {
	ts := o.Stream()
	start := ts.Advance()
	c := &ast.Constraint{ConstraintKind: "xor"}
	if !ts.Check(token.LBrace) {
		c.Group = ts.Advance().Text
	}
	inner := ctx
	inner.InXor = true
	members, err := o.ParseBody(inner)
	c.Members = members
	c.Span = start.Span.Cover(ts.Last().Span)
	return c, err
}

type noteMemberProvider struct{}

func (noteMemberProvider) Name() string { return "note" }

func (noteMemberProvider) CanHandle(o Orchestrator, _ MemberContext) bool {
	return canHandleNote(o.Stream())
}

func (noteMemberProvider) Parse(o Orchestrator, _ MemberContext) (ast.Member, error) {
	return parseNote(o)
}

// enumLiteralProvider: RED, GREEN; BLUE — только в теле enum.
type enumLiteralProvider struct{}

func (enumLiteralProvider) Name() string { return "enum-literal" }

func (enumLiteralProvider) CanHandle(o Orchestrator, ctx MemberContext) bool {
	if ctx.Owner != ast.EntityEnum || ctx.InXor {
		return false
	}
	ts := o.Stream()
	name := ts.Peek()
	if name.Kind != token.Ident {
		return false
	}
	next := ts.PeekAt(1)
	switch next.Kind {
	case token.Comma, token.Semicolon, token.RBrace, token.EOF:
		return true
	}
	return next.Line != name.Line
}

func (enumLiteralProvider) Parse(o Orchestrator, _ MemberContext) (ast.Member, error) {
	t := o.Stream().Advance()
	return &ast.EnumLiteral{
		Base: ast.Base{Span: t.Span},
		Name: t.Text,
		Doc:  o.Session().TakeDoc(),
	}, nil
}

// featureProvider: visibility? modifiers* name '?'? params? (':' type)? mult? ('=' value)? xorTag?
//
// CanHandle looks along the current line only, so a garbage line is never
// mistaken for the start of the next member.
type featureProvider struct{}

func (featureProvider) Name() string { return "feature" }

func (featureProvider) CanHandle(o Orchestrator, _ MemberContext) bool {
	ts := o.Stream()
	line := ts.Peek().Line
	i := 0
	if ts.PeekAt(i).IsVisibility() {
		i++
	}
	for ts.PeekAt(i).IsModifier() && ts.PeekAt(i).Line == line {
		i++
	}
	name := ts.PeekAt(i)
	if !name.IsName() || name.Line != line {
		return false
	}
	next := ts.PeekAt(i + 1)
	if next.Line != line {
		return true
	}
	switch next.Kind {
	case token.Question, token.LParen, token.Colon, token.LBracket, token.Assign,
		token.LBrace, token.Semicolon, token.RBrace, token.EOF, token.DocComment:
		return true
	}
	return false
}

var visibilities = map[token.Kind]ast.Visibility{
	token.Plus:  ast.VisPublic,
	token.Minus: ast.VisPrivate,
	token.Hash:  ast.VisProtected,
	token.Tilde: ast.VisPackage,
}

func (featureProvider) Parse(o Orchestrator, _ MemberContext) (ast.Member, error) {
	ts := o.Stream()
	doc := o.Session().TakeDoc()
	start := ts.Peek()
	vis := ast.VisNone
	if v, ok := visibilities[start.Kind]; ok {
		vis = v
		ts.Advance()
	}
	mods := o.ParseModifiers()
	nameTok := ts.Advance()
	_, optional := ts.Match(token.Question)

	if ts.Check(token.LParen) {
		m := &ast.Method{
			Name:       nameTok.Text,
			NameSpan:   nameTok.Span,
			Visibility: vis,
			Modifiers:  mods,
			Doc:        doc,
		}
		err := parseMethodTail(o, m)
		m.Span = start.Span.Cover(ts.Last().Span)
		return m, err
	}

	a := &ast.Attribute{
		Name:       nameTok.Text,
		NameSpan:   nameTok.Span,
		Visibility: vis,
		Modifiers:  mods,
		Optional:   optional,
		Doc:        doc,
	}
	err := parseAttributeTail(o, a)
	a.Span = start.Span.Cover(ts.Last().Span)
	return a, err
}

func parseAttributeTail(o Orchestrator, a *ast.Attribute) error {
	ts := o.Stream()
	if _, ok := ts.Match(token.Colon); ok {
		t, err := o.ParseType()
		a.Type = t
		if err != nil {
			return err
		}
	}
	if ts.Check(token.LBracket) {
		m, err := o.ParseMultiplicity()
		if err != nil {
			return err
		}
		a.Multiplicity = m
	}
	if _, ok := ts.Match(token.Assign); ok {
		v, err := o.ParseValue()
		if err != nil {
			return err
		}
		a.Default = v
	}
	if xorTagAhead(ts) {
		g, err := parseXorTagStream(ts)
		a.XorGroup = g
		return err
	}
	return nil
}

func parseMethodTail(o Orchestrator, m *ast.Method) error {
	ts := o.Stream()
	ts.Advance() // (
	for !ts.Check(token.RParen) && !ts.AtEOF() {
		prm, err := parseParameter(o)
		if prm != nil {
			m.Params = append(m.Params, prm)
		}
		if err != nil {
			return err
		}
		if _, ok := ts.Match(token.Comma); !ok {
			break
		}
	}
	if _, err := ts.Consume(token.RParen, diag.SynExpectRParen, "expected ')' to close parameter list"); err != nil {
		return err
	}
	if _, ok := ts.Match(token.Colon); ok {
		t, err := o.ParseType()
		m.ReturnType = t
		if err != nil {
			return err
		}
	}
	if ts.Check(token.LBracket) {
		// кратность результата допускается, но в IR не переносится
		if _, err := o.ParseMultiplicity(); err != nil {
			return err
		}
	}
	if xorTagAhead(ts) {
		g, err := parseXorTagStream(ts)
		m.XorGroup = g
		return err
	}
	return nil
}

// parseParameter: name (: Type)? (= value)?  или просто Type.
func parseParameter(o Orchestrator) (*ast.Parameter, error) {
	ts := o.Stream()
	start := ts.Peek()
	if !start.IsName() {
		return nil, ts.Errorf(diag.SynExpectIdentifier, "expected parameter name, got %s", describe(start))
	}
	prm := &ast.Parameter{}
	if ts.CheckAt(1, token.Colon) {
		prm.Name = ts.Advance().Text
		ts.Advance()
		t, err := o.ParseType()
		prm.Type = t
		if err != nil {
			return prm, err
		}
	} else {
		t, err := o.ParseType()
		prm.Type = t
		if err != nil {
			return prm, err
		}
	}
	if _, ok := ts.Match(token.Assign); ok {
		v, err := o.ParseValue()
		if err != nil {
			return prm, err
		}
		prm.Default = v
	}
	prm.Span = start.Span.Cover(ts.Last().Span)
	return prm, nil
}

func xorTagAhead(ts *TokenStream) bool {
	return ts.Check(token.LBrace) && ts.CheckAt(1, token.KwXor) && ts.CheckAt(2, token.Colon)
}

func parseXorTagStream(ts *TokenStream) (string, error) {
	ts.Advance() // {
	ts.Advance() // xor
	ts.Advance() // :
	name := ts.Peek()
	if !name.IsName() {
		return "", ts.Errorf(diag.SynExpectIdentifier, "expected xor group name, got %s", describe(name))
	}
	ts.Advance()
	if _, err := ts.Consume(token.RBrace, diag.SynExpectRBrace, "expected '}' after xor group"); err != nil {
		return name.Text, err
	}
	return name.Text, nil
}
