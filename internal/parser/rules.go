package parser

import (
	"strconv"
	"strings"

	"umlts/internal/ast"
	"umlts/internal/diag"
	"umlts/internal/token"
)

type commentRule struct{}

func (commentRule) Name() string { return "comment" }

func (commentRule) CanHandle(o Orchestrator) bool {
	return o.Stream().PeekRaw().Kind == token.Comment
}

func (commentRule) Parse(o Orchestrator) (ast.Statement, error) {
	t := o.Stream().AdvanceRaw()
	return &ast.Comment{Base: ast.Base{Span: t.Span}, Text: t.Text}, nil
}

// docCommentRule attaches `/** */` to the declaration that follows it. A doc
// comment with nothing after it stays in the tree as a DocComment node.
type docCommentRule struct{}

func (docCommentRule) Name() string { return "doc-comment" }

func (docCommentRule) CanHandle(o Orchestrator) bool {
	return o.Stream().Check(token.DocComment)
}

func (docCommentRule) Parse(o Orchestrator) (ast.Statement, error) {
	ts := o.Stream()
	t := ts.Advance()
	ts.SkipTrivia()
	if ts.AtEOF() || ts.Check(token.DocComment) || ts.Check(token.RBrace) || !o.CanStartStatement() {
		return &ast.DocComment{Base: ast.Base{Span: t.Span}, Text: t.Text}, nil
	}
	o.Session().SetDoc(t.Text)
	return o.ParseStatement()
}

// configRule: config { key: value, ... }
type configRule struct{}

func (configRule) Name() string { return "config" }

func (configRule) CanHandle(o Orchestrator) bool {
	ts := o.Stream()
	return ts.Check(token.KwConfig) && ts.CheckAt(1, token.LBrace)
}

func (configRule) Parse(o Orchestrator) (ast.Statement, error) {
	ts := o.Stream()
	start := ts.Advance()
	ts.Advance() // {
	cfg := &ast.Config{}
	var firstErr error
	for !ts.Check(token.RBrace) && !ts.AtEOF() {
		if _, ok := ts.Match(token.Comma); ok {
			continue
		}
		if _, ok := ts.Match(token.Semicolon); ok {
			continue
		}
		entry, err := parseConfigEntry(o)
		if err != nil {
			if firstErr == nil {
				ts.ReportError(err)
				firstErr = err
			}
			// до следующего разделителя
			for !ts.AtEOF() && !ts.Check(token.Comma) && !ts.Check(token.Semicolon) && !ts.Check(token.RBrace) {
				ts.Advance()
			}
			continue
		}
		cfg.Entries = append(cfg.Entries, entry)
	}
	if _, ok := ts.Match(token.RBrace); !ok {
		ts.Report(diag.SynExpectRBrace, diag.SevError, ts.DiagSpan(), "expected '}' to close config block")
	}
	cfg.Span = start.Span.Cover(ts.Last().Span)
	return cfg, nil
}

func parseConfigEntry(o Orchestrator) (ast.ConfigEntry, error) {
	ts := o.Stream()
	key := ts.Peek()
	if !key.IsName() && !key.IsKeyword() {
		return ast.ConfigEntry{}, ts.Errorf(diag.SynExpectIdentifier, "expected configuration key, got %s", describe(key))
	}
	ts.Advance()
	if _, err := ts.Consume(token.Colon, diag.SynExpectColon, "expected ':' after configuration key"); err != nil {
		return ast.ConfigEntry{}, err
	}
	val, err := parseConfigValue(o)
	if err != nil {
		return ast.ConfigEntry{}, err
	}
	return ast.ConfigEntry{Key: key.Text, Value: val, Span: key.Span.Cover(ts.Last().Span)}, nil
}

// parseConfigValue: строки и имена — string, числа — float64, true/false — bool.
func parseConfigValue(o Orchestrator) (any, error) {
	ts := o.Stream()
	tok := ts.Peek()
	switch tok.Kind {
	case token.KwTrue:
		ts.Advance()
		return true, nil
	case token.KwFalse:
		ts.Advance()
		return false, nil
	case token.NumberLit:
		ts.Advance()
		f, err := strconv.ParseFloat(tok.Text, 64)
		if err != nil {
			return nil, newError(diag.SynExpectValue, tok.Span, "invalid number %q", tok.Text)
		}
		return f, nil
	}
	return o.ParseValue()
}

// directiveRule: @key: value
type directiveRule struct{}

func (directiveRule) Name() string { return "directive" }

func (directiveRule) CanHandle(o Orchestrator) bool {
	ts := o.Stream()
	return ts.Check(token.At) && ts.PeekAt(1).IsName() && ts.CheckAt(2, token.Colon)
}

func (directiveRule) Parse(o Orchestrator) (ast.Statement, error) {
	ts := o.Stream()
	start := ts.Advance()
	entry, err := parseConfigEntry(o)
	if err != nil {
		return nil, err
	}
	return &ast.Config{
		Base:      ast.Base{Span: start.Span.Cover(ts.Last().Span)},
		Directive: true,
		Entries:   []ast.ConfigEntry{entry},
	}, nil
}

type packageRule struct{}

func (packageRule) Name() string { return "package" }

func (packageRule) CanHandle(o Orchestrator) bool {
	return o.Stream().Check(token.KwPackage)
}

func (packageRule) Parse(o Orchestrator) (ast.Statement, error) {
	ts := o.Stream()
	doc := o.Session().TakeDoc()
	ts.Advance()
	pkg, err := ParsePackageBody(o, doc)
	if pkg == nil {
		return nil, err
	}
	return pkg, err
}

// ParsePackageBody parses `name? { statements }` after the introducing
// keyword. Language plugins reuse it for their own package spellings.
func ParsePackageBody(o Orchestrator, doc string) (*ast.Package, error) {
	ts := o.Stream()
	kw := ts.Last()
	pkg := &ast.Package{Doc: doc}
	nameTok := ts.Peek()
	if ts.Check(token.LBrace) {
		missing := ts.SoftConsume(token.Ident, diag.SynPackageNameExpected, "Package name expected")
		pkg.Name, pkg.NameSpan = missing.Text, missing.Span
	} else {
		name, err := o.ParseQualifiedName()
		if err != nil {
			return nil, err
		}
		pkg.Name, pkg.NameSpan = name, nameTok.Span.Cover(ts.Last().Span)
	}
	if _, err := ts.Consume(token.LBrace, diag.SynExpectLBrace, "expected '{' after package name"); err != nil {
		pkg.Span = kw.Span.Cover(ts.Last().Span)
		return pkg, err
	}
	sess := o.Session()
	levels := strings.Count(pkg.Name, ".") + 1
	defer sess.leavePackage(levels)
	if !sess.enterPackage(levels) {
		ts.Report(diag.SynNestingTooDeep, diag.SevError, pkg.NameSpan,
			"package "+pkg.Name+" nested deeper than "+strconv.Itoa(MaxPackageDepth)+" levels, body skipped")
		skipBalanced(ts)
		pkg.Span = kw.Span.Cover(ts.Last().Span)
		return pkg, nil
	}
	pkg.Body = o.ParseBlock()
	if _, ok := ts.Match(token.RBrace); !ok {
		ts.Report(diag.SynExpectRBrace, diag.SevError, ts.DiagSpan(), "expected '}' to close package "+pkg.Name)
	}
	pkg.Span = kw.Span.Cover(ts.Last().Span)
	return pkg, nil
}

// skipBalanced consumes tokens up to and including the '}' matching an
// already consumed '{'.
func skipBalanced(ts *TokenStream) {
	depth := 1
	for !ts.AtEOF() {
		switch {
		case ts.Check(token.LBrace):
			depth++
		case ts.Check(token.RBrace):
			depth--
		}
		ts.Advance()
		if depth == 0 {
			return
		}
	}
}

// xorRule: xor name? { A >- B; A >- C }
type xorRule struct{}

func (xorRule) Name() string { return "xor" }

func (xorRule) CanHandle(o Orchestrator) bool {
	ts := o.Stream()
	if !ts.Check(token.KwXor) {
		return false
	}
	return ts.CheckAt(1, token.LBrace) || (ts.PeekAt(1).IsName() && ts.CheckAt(2, token.LBrace))
}

func (xorRule) Parse(o Orchestrator) (ast.Statement, error) {
	ts := o.Stream()
	start := ts.Advance()
	c := &ast.Constraint{ConstraintKind: "xor"}
	if !ts.Check(token.LBrace) {
		c.Group = ts.Advance().Text
	}
	ts.Advance() // {
	for !ts.Check(token.RBrace) && !ts.AtEOF() {
		if _, ok := ts.Match(token.Semicolon); ok {
			continue
		}
		if _, ok := ts.Match(token.Comma); ok {
			continue
		}
		fromTok := ts.Peek()
		from, err := o.ParseQualifiedName()
		if err != nil {
			c.Span = start.Span.Cover(ts.Last().Span)
			return c, err
		}
		var fromMult *ast.Multiplicity
		if ts.Check(token.LBracket) {
			if fromMult, err = o.ParseMultiplicity(); err != nil {
				return c, err
			}
		}
		rel, err := o.ParseRelationshipTail(fromTok, from, fromMult)
		if rel != nil && rel.To != "" {
			c.Relationships = append(c.Relationships, rel)
		}
		if err != nil {
			c.Span = start.Span.Cover(ts.Last().Span)
			return c, err
		}
	}
	if _, ok := ts.Match(token.RBrace); !ok {
		ts.Report(diag.SynExpectRBrace, diag.SevError, ts.DiagSpan(), "expected '}' to close xor block")
	}
	c.Span = start.Span.Cover(ts.Last().Span)
	return c, nil
}

// noteRule: note name? "text" (for A, B)?
type noteRule struct{}

func (noteRule) Name() string { return "note" }

func (noteRule) CanHandle(o Orchestrator) bool {
	return canHandleNote(o.Stream())
}

func canHandleNote(ts *TokenStream) bool {
	if !ts.Check(token.KwNote) {
		return false
	}
	return ts.CheckAt(1, token.StringLit) || (ts.PeekAt(1).IsName() && ts.CheckAt(2, token.StringLit))
}

func (noteRule) Parse(o Orchestrator) (ast.Statement, error) {
	return parseNote(o)
}

func parseNote(o Orchestrator) (*ast.Note, error) {
	ts := o.Stream()
	start := ts.Advance()
	n := &ast.Note{}
	if !ts.Check(token.StringLit) {
		n.Name = ts.Advance().Text
	}
	n.Text = ts.Advance().Text
	if _, ok := ts.Match(token.KwFor); ok {
		for {
			tok := ts.Peek()
			target, err := o.ParseQualifiedName()
			if err != nil {
				n.Span = start.Span.Cover(ts.Last().Span)
				return n, err
			}
			n.Anchors = append(n.Anchors, &ast.Anchor{
				Base:   ast.Base{Span: tok.Span.Cover(ts.Last().Span)},
				Target: target,
			})
			if _, ok := ts.Match(token.Comma); !ok {
				break
			}
		}
	}
	n.Span = start.Span.Cover(ts.Last().Span)
	return n, nil
}

type semicolonRule struct{}

func (semicolonRule) Name() string { return "semicolon" }

func (semicolonRule) CanHandle(o Orchestrator) bool {
	return o.Stream().Check(token.Semicolon)
}

func (semicolonRule) Parse(o Orchestrator) (ast.Statement, error) {
	o.Stream().Advance()
	return nil, nil
}
