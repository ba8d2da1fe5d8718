package parser

import (
	"errors"

	"umlts/internal/diag"
	"umlts/internal/source"
	"umlts/internal/token"
)

// TokenStream is the parser cursor over a lexed token slice.
//
// Comment tokens are transparent: Peek, PeekAt and Advance skip them. Rules
// that care about comments use PeekRaw/AdvanceRaw.
//
// A `>>` token can be split in two `>` when it closes nested generics; the
// split is recorded in the cursor state so Rollback undoes it.
type TokenStream struct {
	toks []token.Token
	pos  int
	half bool // первая половина текущего `>>` уже съедена
	last token.Token
	sink *sink
}

// Snapshot is a saved stream position.
type Snapshot struct {
	pos  int
	half bool
	last token.Token
}

func newTokenStream(toks []token.Token, s *sink) *TokenStream {
	if len(toks) == 0 || toks[len(toks)-1].Kind != token.EOF {
		var eof token.Token
		if len(toks) > 0 {
			end := toks[len(toks)-1].Span.AtEnd()
			eof = token.Token{Kind: token.EOF, Span: end, Line: toks[len(toks)-1].Line}
		}
		eof.Kind = token.EOF
		toks = append(toks[:len(toks):len(toks)], eof)
	}
	return &TokenStream{toks: toks, sink: s}
}

func (ts *TokenStream) at(i int) token.Token {
	if i >= len(ts.toks) {
		return ts.toks[len(ts.toks)-1]
	}
	return ts.toks[i]
}

// secondHalf returns the `>` left over after splitting a `>>`.
func secondHalf(t token.Token) token.Token {
	sp := t.Span
	sp.Start++
	return token.Token{Kind: token.Gt, Text: ">", Span: sp, Line: t.Line, Col: t.Col + 1}
}

// PeekRaw returns the current token without skipping comments.
func (ts *TokenStream) PeekRaw() token.Token {
	t := ts.at(ts.pos)
	if ts.half {
		return secondHalf(t)
	}
	return t
}

// AdvanceRaw consumes the current token including comments.
func (ts *TokenStream) AdvanceRaw() token.Token {
	t := ts.PeekRaw()
	if t.Kind == token.EOF {
		return t
	}
	ts.half = false
	ts.pos++
	ts.last = t
	return t
}

func (ts *TokenStream) skipTrivia() {
	if ts.half {
		return
	}
	for ts.pos < len(ts.toks)-1 && ts.toks[ts.pos].IsTrivia() {
		ts.pos++
	}
}

// SkipTrivia drops comments at the cursor.
func (ts *TokenStream) SkipTrivia() {
	ts.skipTrivia()
}

// Peek returns the current significant token.
func (ts *TokenStream) Peek() token.Token {
	return ts.PeekAt(0)
}

// PeekAt returns the n-th significant token ahead of the cursor.
func (ts *TokenStream) PeekAt(n int) token.Token {
	i := ts.pos
	if ts.half {
		if n == 0 {
			return secondHalf(ts.at(i))
		}
		n--
		i++
	}
	for {
		for i < len(ts.toks)-1 && ts.toks[i].IsTrivia() {
			i++
		}
		if n == 0 || i >= len(ts.toks)-1 {
			return ts.at(i)
		}
		n--
		i++
	}
}

// Advance consumes the current significant token.
func (ts *TokenStream) Advance() token.Token {
	ts.skipTrivia()
	return ts.AdvanceRaw()
}

// Check reports whether the current token has kind k without consuming it.
func (ts *TokenStream) Check(k token.Kind) bool {
	return ts.Peek().Kind == k
}

// CheckAt is Check at offset n.
func (ts *TokenStream) CheckAt(n int, k token.Kind) bool {
	return ts.PeekAt(n).Kind == k
}

// Match consumes the current token when it has kind k.
func (ts *TokenStream) Match(k token.Kind) (token.Token, bool) {
	if ts.Check(k) {
		return ts.Advance(), true
	}
	return token.Token{}, false
}

// AtEOF reports whether only EOF remains.
func (ts *TokenStream) AtEOF() bool {
	return ts.Check(token.EOF)
}

// Consume requires a token of kind k; on mismatch nothing is consumed and an
// *Error is returned for the caller to turn into a diagnostic.
func (ts *TokenStream) Consume(k token.Kind, code diag.Code, msg string) (token.Token, error) {
	if t, ok := ts.Match(k); ok {
		return t, nil
	}
	return token.Token{}, ts.Errorf(code, "%s, got %s", msg, describe(ts.Peek()))
}

// SoftConsume is Consume that never fails: on mismatch it records a
// diagnostic and returns a zero-width placeholder `<missing:KIND>`.
func (ts *TokenStream) SoftConsume(k token.Kind, code diag.Code, msg string) token.Token {
	if t, ok := ts.Match(k); ok {
		return t
	}
	sp := ts.DiagSpan()
	ts.sink.report(code, diag.SevError, sp, msg)
	cur := ts.Peek()
	return token.Token{
		Kind: k,
		Text: Placeholder(k),
		Span: source.Span{File: sp.File, Start: sp.Start, End: sp.Start},
		Line: cur.Line,
		Col:  cur.Col,
	}
}

// Placeholder is the name given to tokens synthesised by SoftConsume.
func Placeholder(k token.Kind) string {
	return "<missing:" + k.String() + ">"
}

// SplitShift consumes one `>` out of a `>>` token. It reports false when the
// current token is neither `>` nor `>>`.
func (ts *TokenStream) SplitShift() bool {
	switch cur := ts.Peek(); {
	case cur.Kind == token.Gt:
		ts.Advance()
		return true
	case cur.Kind == token.Generalization && !ts.half:
		ts.skipTrivia()
		ts.half = true
		return true
	}
	return false
}

// Snapshot saves the cursor.
func (ts *TokenStream) Snapshot() Snapshot {
	return Snapshot{pos: ts.pos, half: ts.half, last: ts.last}
}

// Rollback restores a snapshot.
func (ts *TokenStream) Rollback(s Snapshot) {
	ts.pos, ts.half, ts.last = s.pos, s.half, s.last
}

// Last returns the most recently consumed token.
func (ts *TokenStream) Last() token.Token {
	return ts.last
}

// DiagSpan returns the best span for a diagnostic at the cursor: the current
// token, or the end of the previous one when the cursor sits on EOF.
func (ts *TokenStream) DiagSpan() source.Span {
	cur := ts.Peek()
	if cur.Kind == token.EOF && ts.last.Kind != token.Unknown {
		return ts.last.Span.AtEnd()
	}
	return cur.Span
}

// Report records a diagnostic at sp.
func (ts *TokenStream) Report(code diag.Code, sev diag.Severity, sp source.Span, msg string) {
	ts.sink.report(code, sev, sp, msg)
}

// ReportError records err as an error diagnostic.
func (ts *TokenStream) ReportError(err error) {
	var pe *Error
	if errors.As(err, &pe) {
		ts.sink.report(pe.Code, diag.SevError, pe.Span, pe.Msg)
		return
	}
	ts.sink.report(diag.SynUnexpectedToken, diag.SevError, ts.DiagSpan(), err.Error())
}

// Errorf builds an *Error at the cursor.
func (ts *TokenStream) Errorf(code diag.Code, format string, args ...any) *Error {
	return newError(code, ts.DiagSpan(), format, args...)
}

func describe(t token.Token) string {
	switch t.Kind {
	case token.EOF:
		return "end of file"
	case token.StringLit:
		return "string \"" + t.Text + "\""
	}
	if t.Text != "" {
		return "\"" + t.Text + "\""
	}
	return t.Kind.String()
}
