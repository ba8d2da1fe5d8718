package parser

import (
	"strconv"
	"strings"

	"umlts/internal/ast"
	"umlts/internal/diag"
	"umlts/internal/source"
	"umlts/internal/token"
)

type Options struct {
	Reporter  diag.Reporter // может быть nil — диагностики остаются только в Program
	MaxErrors uint
	// Registry defaults to NewRegistry().
	Registry *Registry
}

// Parser — состояние парсера на один файл
type Parser struct {
	ts      *TokenStream
	session Session
	reg     *Registry
	sink    *sink
}

// Parse builds the syntax tree for one token stream. It never fails: every
// problem becomes a diagnostic in Program.Diagnostics.
func Parse(toks []token.Token, opts Options) *ast.Program {
	reg := opts.Registry
	if reg == nil {
		reg = NewRegistry()
	}
	s := &sink{next: opts.Reporter, maxErrors: opts.MaxErrors}
	p := &Parser{
		ts:   newTokenStream(toks, s),
		reg:  reg,
		sink: s,
	}

	start := p.ts.PeekRaw().Span
	prog := &ast.Program{File: start.File}
	prog.Body = p.parseStatements(false)
	prog.Span = start.Cover(p.ts.PeekRaw().Span)
	prog.Diagnostics = s.items
	return prog
}

func (p *Parser) Stream() *TokenStream { return p.ts }
func (p *Parser) Session() *Session    { return &p.session }

// parseStatements — основной цикл: до EOF (или до `}` внутри пакета).
func (p *Parser) parseStatements(inBlock bool) []ast.Statement {
	var out []ast.Statement
	for {
		cur := p.ts.PeekRaw()
		if cur.Kind == token.EOF {
			return out
		}
		if inBlock && p.ts.Check(token.RBrace) {
			return out
		}
		before := p.ts.Snapshot()
		stmt, err := p.ParseStatement()
		if stmt != nil {
			out = append(out, stmt)
		}
		switch {
		case err != nil:
			p.reportErr(err)
			p.resync(before, inBlock)
		case p.ts.Snapshot().pos == before.pos && !p.ts.half:
			// правило ничего не съело — не зацикливаемся
			p.ts.Advance()
		}
	}
}

// ParseStatement dispatches to the first rule that can handle the cursor.
func (p *Parser) ParseStatement() (ast.Statement, error) {
	defer p.session.Clear()
	for _, rule := range p.reg.statements {
		if rule.CanHandle(p) {
			return rule.Parse(p)
		}
	}
	return nil, p.ts.Errorf(diag.SynUnexpectedTopLevel, "unexpected %s at statement level", describe(p.ts.Peek()))
}

// ParseBlock parses nested statements until `}`.
func (p *Parser) ParseBlock() []ast.Statement {
	return p.parseStatements(true)
}

// CanStartStatement reports whether any registered rule accepts the cursor.
func (p *Parser) CanStartStatement() bool {
	for _, rule := range p.reg.statements {
		if rule.CanHandle(p) {
			return true
		}
	}
	return false
}

// resync — panic-mode: пропускаем токены, пока какое-то правило не сможет
// начать разбор (или `}` внутри блока, или EOF). Одна диагностика на остров.
func (p *Parser) resync(before Snapshot, inBlock bool) {
	if p.ts.Snapshot().pos == before.pos && !p.ts.AtEOF() {
		p.ts.Advance()
	}
	for !p.ts.AtEOF() {
		if inBlock && p.ts.Check(token.RBrace) {
			return
		}
		if p.ts.PeekRaw().IsTrivia() || p.CanStartStatement() {
			return
		}
		p.ts.Advance()
	}
}

func (p *Parser) reportErr(err error) {
	p.ts.ReportError(err)
}

// ParseBody parses `{ member* }`. A missing `}` is reported but the members
// read so far are kept.
func (p *Parser) ParseBody(ctx MemberContext) ([]ast.Member, error) {
	if _, err := p.ts.Consume(token.LBrace, diag.SynExpectLBrace, "expected '{'"); err != nil {
		return nil, err
	}
	members := p.parseMembers(ctx)
	if _, ok := p.ts.Match(token.RBrace); !ok {
		p.ts.Report(diag.SynExpectRBrace, diag.SevError, p.ts.DiagSpan(), "expected '}' to close body")
	}
	return members, nil
}

func (p *Parser) parseMembers(ctx MemberContext) []ast.Member {
	var out []ast.Member
	recovering := false
	for {
		cur := p.ts.Peek()
		switch cur.Kind {
		case token.EOF, token.RBrace:
			return out
		case token.Semicolon, token.Comma:
			p.ts.Advance()
			continue
		case token.KwPackage, token.KwClass, token.KwInterface, token.KwEnum:
			// незакрытое тело — отдаём управление наверх
			if !ctx.InXor {
				return out
			}
		}
		before := p.ts.Snapshot()
		m, err := p.ParseMember(ctx)
		if m != nil {
			out = append(out, m)
		}
		switch {
		case err == nil && p.ts.Snapshot().pos == before.pos:
			p.skipMemberToken()
		case err == nil:
			recovering = false
		case !recovering:
			p.reportErr(err)
			recovering = true
			fallthrough
		default:
			p.skipMemberToken()
		}
	}
}

// skipMemberToken drops one token; closing braces are left for the caller.
func (p *Parser) skipMemberToken() {
	if !p.ts.Check(token.RBrace) && !p.ts.AtEOF() {
		p.ts.Advance()
	}
}

// ParseMember dispatches one member through the provider chain.
func (p *Parser) ParseMember(ctx MemberContext) (ast.Member, error) {
	defer p.session.Clear()
	before := p.ts.Snapshot()
	for _, prov := range p.reg.members {
		if !prov.CanHandle(p, ctx) {
			continue
		}
		m, err := prov.Parse(p, ctx)
		if err != nil && p.ts.Snapshot().pos != before.pos {
			// член частично разобран: остаток строки — мусор
			p.reportErr(err)
			p.skipLine()
			return m, nil
		}
		return m, err
	}
	return nil, p.ts.Errorf(diag.SynUnexpectedMember, "unexpected %s in body", describe(p.ts.Peek()))
}

// skipLine drops tokens until the line changes or a `}` shows up.
func (p *Parser) skipLine() {
	line := p.ts.Last().Line
	for !p.ts.AtEOF() {
		cur := p.ts.Peek()
		if cur.Kind == token.RBrace || cur.Line != line {
			return
		}
		p.ts.Advance()
	}
}

// ParseType runs the primary providers, then modifier providers until none
// applies.
func (p *Parser) ParseType() (*ast.TypeAnnotation, error) {
	var t *ast.TypeAnnotation
	for _, prov := range p.reg.primaries {
		if prov.CanHandle(p) {
			var err error
			t, err = prov.Parse(p)
			if err != nil {
				return t, err
			}
			break
		}
	}
	if t == nil {
		return nil, p.ts.Errorf(diag.SynExpectType, "expected type")
	}
	for {
		applied := false
		for _, mod := range p.reg.modifiers {
			if !mod.CanHandle(p, t) {
				continue
			}
			next, err := mod.Apply(p, t)
			if err != nil {
				return t, err
			}
			t, applied = next, true
			break
		}
		if !applied {
			return t, nil
		}
	}
}

// ParseQualifiedName reads `a.b.C`.
func (p *Parser) ParseQualifiedName() (string, error) {
	first := p.ts.Peek()
	if !first.IsName() {
		return "", p.ts.Errorf(diag.SynExpectIdentifier, "expected identifier, got %s", describe(first))
	}
	p.ts.Advance()
	var name strings.Builder
	name.WriteString(first.Text)
	segments := 1
	for p.ts.Check(token.Dot) && p.ts.PeekAt(1).IsName() {
		p.ts.Advance()
		part := p.ts.Advance()
		segments++
		switch {
		case segments <= MaxPackageDepth:
			name.WriteByte('.')
			name.WriteString(part.Text)
		case segments == MaxPackageDepth+1:
			p.ts.Report(diag.SynNestingTooDeep, diag.SevError, part.Span,
				"qualified name longer than "+strconv.Itoa(MaxPackageDepth)+" segments, rest ignored")
		}
	}
	return name.String(), nil
}

// ParseModifiers reads prefix modifier marks and keywords.
func (p *Parser) ParseModifiers() ast.Modifiers {
	var m ast.Modifiers
	for {
		switch p.ts.Peek().Kind {
		case token.Dollar, token.KwStatic:
			m.Static = true
		case token.Star, token.KwAbstract:
			m.Abstract = true
		case token.Bang, token.KwFinal:
			m.Final = true
		case token.Amp, token.KwLeaf:
			m.Leaf = true
		case token.Caret, token.KwRoot:
			m.Root = true
		default:
			return m
		}
		p.ts.Advance()
	}
}

// source span helper for nodes built from a start token to the last consumed one.
func (p *Parser) spanFrom(start token.Token) source.Span {
	return start.Span.Cover(p.ts.Last().Span)
}
