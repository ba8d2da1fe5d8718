package lexer

import (
	"unicode/utf8"

	"umlts/internal/token"
)

// Жадность: сначала 3-символьные, затем 2-символьные операторы.
var multiOps = []struct {
	text string
	kind token.Kind
}{
	{"..>", token.Dependency},
	{">>", token.Generalization},
	{">*", token.Composition},
	{">+", token.Aggregation},
	{">-", token.Association},
	{"<>", token.AssocBidir},
	{"--", token.AssocPlain},
	{"..", token.Range},
}

func matchOperator(ctx *Context) (token.Token, bool) {
	start := ctx.Snapshot()
	// >I — реализация, но только если за I не продолжается идентификатор (>Item).
	if ctx.HasPrefix(">I") {
		ctx.AdvanceN(2)
		if r, sz := ctx.PeekRune(); sz == 0 || !isIdentContinueRune(r) {
			return ctx.Emit(token.Realization, start, ">I"), true
		}
		ctx.Rollback(start)
	}
	for _, op := range multiOps {
		if ctx.HasPrefix(op.text) {
			ctx.AdvanceN(len(op.text))
			return ctx.Emit(op.kind, start, op.text), true
		}
	}
	return token.Token{}, false
}

var punct = [128]token.Kind{
	'+': token.Plus,
	'-': token.Minus,
	'#': token.Hash,
	'~': token.Tilde,
	'$': token.Dollar,
	'*': token.Star,
	'&': token.Amp,
	'!': token.Bang,
	'^': token.Caret,
	'(': token.LParen,
	')': token.RParen,
	'{': token.LBrace,
	'}': token.RBrace,
	'[': token.LBracket,
	']': token.RBracket,
	'<': token.Lt,
	'>': token.Gt,
	',': token.Comma,
	':': token.Colon,
	';': token.Semicolon,
	'.': token.Dot,
	'|': token.Pipe,
	'=': token.Assign,
	'@': token.At,
	'?': token.Question,
	'/': token.Slash,
}

// односимвольные
func matchPunct(ctx *Context) (token.Token, bool) {
	b := ctx.Peek()
	if ctx.EOF() || b >= utf8.RuneSelf || punct[b] == token.Unknown {
		return token.Token{}, false
	}
	start := ctx.Snapshot()
	ctx.Advance()
	return ctx.Emit(punct[b], start, string(b)), true
}
