package lexer

import (
	"fmt"

	"umlts/internal/diag"
	"umlts/internal/source"
	"umlts/internal/token"
)

type Lexer struct {
	file   *source.File
	cursor Cursor
	chain  *Composite
	ctx    Context
}

func New(file *source.File, opts Options) *Lexer {
	ms := make([]Matcher, 0, len(opts.Matchers)+8)
	ms = append(ms, opts.Matchers...)
	ms = append(ms, Builtins()...)
	lx := &Lexer{
		file:   file,
		cursor: NewCursor(file),
		chain:  NewComposite(ms...),
	}
	lx.ctx = Context{Cursor: &lx.cursor, reporter: opts.Reporter}
	return lx
}

// Next возвращает следующий токен. После EOF всегда возвращает EOF.
func (lx *Lexer) Next() token.Token {
	for !lx.cursor.EOF() {
		before := lx.cursor.Snapshot()
		tok, ok := lx.chain.Match(&lx.ctx)
		moved := lx.cursor.Off != before.Off
		if ok && moved {
			return tok
		}
		if moved {
			continue
		}
		// никто не продвинулся — одна руна уходит в Unknown
		r := lx.cursor.AdvanceRune()
		tok = lx.ctx.Emit(token.Unknown, before, lx.cursor.Slice(before))
		lx.ctx.Report(diag.LexUnknownChar, diag.SevError, tok.Span, fmt.Sprintf("unknown character %q", r))
		return tok
	}
	s := lx.cursor.Snapshot()
	return token.Token{
		Kind: token.EOF,
		Span: lx.cursor.SpanFrom(s),
		Line: s.Line,
		Col:  s.Col,
	}
}

// Tokenize lexes the whole file. The result always ends with exactly one EOF.
// Tokenize keeps no state between calls and is safe for concurrent use on
// distinct files.
func Tokenize(file *source.File, opts Options) []token.Token {
	lx := New(file, opts)
	out := make([]token.Token, 0, len(file.Content)/4+1)
	for {
		tok := lx.Next()
		out = append(out, tok)
		if tok.Kind == token.EOF {
			return out
		}
	}
}
