package lexer

import (
	"umlts/internal/diag"
	"umlts/internal/source"
	"umlts/internal/token"
)

// Context is what a Matcher sees: the shared cursor and a diagnostic sink.
type Context struct {
	*Cursor
	reporter diag.Reporter
}

// Report forwards a lexical diagnostic.
func (ctx *Context) Report(code diag.Code, sev diag.Severity, sp source.Span, msg string) {
	if ctx.reporter != nil {
		ctx.reporter.Report(code, sev, sp, msg, nil)
	}
}

// Emit builds a token that started at s and ends at the cursor.
func (ctx *Context) Emit(kind token.Kind, s Snapshot, text string) token.Token {
	return token.Token{
		Kind: kind,
		Text: text,
		Span: ctx.SpanFrom(s),
		Line: s.Line,
		Col:  s.Col,
	}
}

// Matcher recognises one token class at the cursor.
//
// A matcher that does not recognise its input must leave the cursor where it
// found it and return false. Returning false after advancing means "consumed
// trivia": the lexer restarts the matcher chain at the new position.
type Matcher interface {
	Match(ctx *Context) (token.Token, bool)
}

// MatcherFunc adapts a function to Matcher.
type MatcherFunc func(ctx *Context) (token.Token, bool)

func (f MatcherFunc) Match(ctx *Context) (token.Token, bool) { return f(ctx) }

// Composite tries sub-matchers in order; the first that yields a token or
// moves the cursor wins.
type Composite struct {
	matchers []Matcher
}

// NewComposite builds a composite; nil matchers are skipped.
func NewComposite(ms ...Matcher) *Composite {
	c := &Composite{matchers: make([]Matcher, 0, len(ms))}
	for _, m := range ms {
		if m != nil {
			c.matchers = append(c.matchers, m)
		}
	}
	return c
}

func (c *Composite) Match(ctx *Context) (token.Token, bool) {
	start := ctx.Off
	for _, m := range c.matchers {
		tok, ok := m.Match(ctx)
		if ok || ctx.Off != start {
			return tok, ok
		}
	}
	return token.Token{}, false
}

// Len reports the number of sub-matchers.
func (c *Composite) Len() int {
	return len(c.matchers)
}

// Builtins returns the core matcher chain in priority order.
func Builtins() []Matcher {
	return []Matcher{
		MatcherFunc(matchWhitespace),
		MatcherFunc(matchDocComment),
		MatcherFunc(matchComment),
		MatcherFunc(matchIdent),
		MatcherFunc(matchString),
		MatcherFunc(matchNumber),
		MatcherFunc(matchOperator),
		MatcherFunc(matchPunct),
	}
}
