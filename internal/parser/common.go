package parser

import (
	"strconv"
	"strings"

	"umlts/internal/ast"
	"umlts/internal/diag"
	"umlts/internal/token"
)

var relKinds = map[token.Kind]ast.RelKind{
	token.Generalization: ast.RelGeneralization,
	token.Realization:    ast.RelRealization,
	token.Composition:    ast.RelComposition,
	token.Aggregation:    ast.RelAggregation,
	token.Association:    ast.RelAssociation,
	token.AssocBidir:     ast.RelBidirectional,
	token.AssocPlain:     ast.RelAssociation,
	token.Dependency:     ast.RelDependency,
}

// ParseMultiplicity reads `[n]`, `[*]`, `[lo..hi]`. The cursor must be on `[`.
func (p *Parser) ParseMultiplicity() (*ast.Multiplicity, error) {
	open, err := p.ts.Consume(token.LBracket, diag.SynBadMultiplicity, "expected '['")
	if err != nil {
		return nil, err
	}
	lo, err := p.bound()
	if err != nil {
		p.skipMultiplicity()
		return nil, err
	}
	hi := lo
	if _, ok := p.ts.Match(token.Range); ok {
		if hi, err = p.bound(); err != nil {
			p.skipMultiplicity()
			return nil, err
		}
	}
	if _, err := p.ts.Consume(token.RBracket, diag.SynBadMultiplicity, "expected ']' to close multiplicity"); err != nil {
		p.skipMultiplicity()
		return nil, err
	}
	m := &ast.Multiplicity{Lower: lo, Upper: hi, Span: p.spanFrom(open)}
	if lo == ast.Many {
		// `[*]` — то же, что `[0..*]`
		m.Lower = 0
	}
	return m, nil
}

func (p *Parser) bound() (int, error) {
	if _, ok := p.ts.Match(token.Star); ok {
		return ast.Many, nil
	}
	tok := p.ts.Peek()
	if tok.Kind != token.NumberLit {
		return 0, p.ts.Errorf(diag.SynBadMultiplicity, "expected number or '*' in multiplicity, got %s", describe(tok))
	}
	n, err := strconv.Atoi(tok.Text)
	if err != nil || n < 0 {
		return 0, p.ts.Errorf(diag.SynBadMultiplicity, "invalid multiplicity bound %q", tok.Text)
	}
	p.ts.Advance()
	return n, nil
}

// skipMultiplicity drops tokens up to and including `]` on the same line.
func (p *Parser) skipMultiplicity() {
	line := p.ts.Peek().Line
	for !p.ts.AtEOF() {
		cur := p.ts.Peek()
		if cur.Line != line || cur.Kind == token.RBrace {
			return
		}
		p.ts.Advance()
		if cur.Kind == token.RBracket {
			return
		}
	}
}

// ParseValue reads a literal: string, number (optionally negative), boolean
// or a qualified name. The raw text is returned.
func (p *Parser) ParseValue() (string, error) {
	tok := p.ts.Peek()
	switch tok.Kind {
	case token.StringLit, token.KwTrue, token.KwFalse:
		p.ts.Advance()
		return tok.Text, nil
	case token.NumberLit:
		p.ts.Advance()
		return tok.Text, nil
	case token.Minus:
		if p.ts.CheckAt(1, token.NumberLit) {
			p.ts.Advance()
			return "-" + p.ts.Advance().Text, nil
		}
	case token.LBracket:
		if p.ts.CheckAt(1, token.RBracket) {
			p.ts.Advance()
			p.ts.Advance()
			return "[]", nil
		}
	}
	if tok.IsName() {
		name, err := p.ParseQualifiedName()
		if err != nil {
			return "", err
		}
		if _, ok := p.ts.Match(token.LParen); ok {
			if _, err := p.ts.Consume(token.RParen, diag.SynExpectRParen, "expected ')'"); err != nil {
				return name, err
			}
			name += "()"
		}
		return name, nil
	}
	return "", p.ts.Errorf(diag.SynExpectValue, "expected value, got %s", describe(tok))
}

// ParseRelationshipTail reads `relOp mult? qname (':' label)? xorTag?` for
// a known source.
func (p *Parser) ParseRelationshipTail(from token.Token, fromName string, fromMult *ast.Multiplicity) (*ast.Relationship, error) {
	op := p.ts.Peek()
	if _, ok := relKinds[op.Kind]; !ok {
		return nil, p.ts.Errorf(diag.SynExpectRelOp, "expected relationship operator, got %s", describe(op))
	}
	p.ts.Advance()
	return p.ParseRelationshipTarget(from, fromName, fromMult, op)
}

// ParseRelationshipTarget is ParseRelationshipTail with the operator already
// consumed.
func (p *Parser) ParseRelationshipTarget(from token.Token, fromName string, fromMult *ast.Multiplicity, op token.Token) (*ast.Relationship, error) {
	rel := &ast.Relationship{
		From:      fromName,
		FromSpan:  from.Span,
		RelKind:   relKinds[op.Kind],
		Navigable: op.Kind != token.AssocPlain,
		FromMult:  fromMult,
	}
	rel.Span = from.Span
	if p.ts.Check(token.LBracket) {
		m, err := p.ParseMultiplicity()
		if err != nil {
			return rel, err
		}
		rel.ToMult = m
	}
	toTok := p.ts.Peek()
	to, err := p.ParseQualifiedName()
	if err != nil {
		return rel, err
	}
	rel.To, rel.ToSpan = to, toTok.Span.Cover(p.ts.Last().Span)
	if p.ts.Check(token.Colon) && p.ts.PeekAt(1).Line == p.ts.Last().Line {
		p.ts.Advance()
		label, err := p.parseLabel()
		if err != nil {
			return rel, err
		}
		rel.Label = label
	}
	if xorTagAhead(p.ts) {
		g, err := parseXorTagStream(p.ts)
		if err != nil {
			return rel, err
		}
		rel.XorGroup = g
	}
	rel.Span = p.spanFrom(from)
	return rel, nil
}

// parseLabel: строка или слова до конца строки.
func (p *Parser) parseLabel() (string, error) {
	if t, ok := p.ts.Match(token.StringLit); ok {
		return t.Text, nil
	}
	line := p.ts.Last().Line
	var words []string
	for {
		cur := p.ts.Peek()
		if !cur.IsName() && !cur.IsKeyword() || cur.Line != line {
			break
		}
		words = append(words, p.ts.Advance().Text)
	}
	if len(words) == 0 {
		return "", p.ts.Errorf(diag.SynExpectValue, "expected relationship label")
	}
	return strings.Join(words, " "), nil
}

// scanQualifiedName returns the offset just past a qualified name starting at
// offset i, or -1.
func scanQualifiedName(ts *TokenStream, i int) int {
	if !ts.PeekAt(i).IsName() {
		return -1
	}
	i++
	for ts.CheckAt(i, token.Dot) && ts.PeekAt(i+1).IsName() {
		i += 2
	}
	return i
}

// scanMultiplicity skips a bracketed multiplicity at offset i, if any.
func scanMultiplicity(ts *TokenStream, i int) int {
	if !ts.CheckAt(i, token.LBracket) {
		return i
	}
	for j := i + 1; j < i+6; j++ {
		switch ts.PeekAt(j).Kind {
		case token.RBracket:
			return j + 1
		case token.NumberLit, token.Star, token.Range:
		default:
			return i
		}
	}
	return i
}

// scanModifiers skips prefix modifiers at offset i.
func scanModifiers(ts *TokenStream, i int) int {
	for ts.PeekAt(i).IsModifier() {
		i++
	}
	return i
}
