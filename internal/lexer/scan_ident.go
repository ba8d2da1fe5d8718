package lexer

import (
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"umlts/internal/token"
)

// matchIdent сканирует идентификатор и проверяет через LookupKeyword.
// Не-ASCII идентификаторы приводятся к NFC, чтобы составные и разложенные
// формы одной буквы давали одно и то же имя.
func matchIdent(ctx *Context) (token.Token, bool) {
	r, sz := ctx.PeekRune()
	if sz == 0 || !isIdentStartRune(r) {
		return token.Token{}, false
	}
	start := ctx.Snapshot()
	ascii := true
	ctx.AdvanceRune()
	for {
		r, sz = ctx.PeekRune()
		if sz == 0 || !isIdentContinueRune(r) {
			break
		}
		if r >= utf8.RuneSelf {
			ascii = false
		}
		ctx.AdvanceRune()
	}
	text := ctx.Slice(start)
	if !ascii || text[0] >= utf8.RuneSelf {
		text = norm.NFC.String(text)
	}
	if k, ok := token.LookupKeyword(text); ok {
		return ctx.Emit(k, start, text), true
	}
	return ctx.Emit(token.Ident, start, text), true
}

func isIdentStartRune(r rune) bool {
	if r < utf8.RuneSelf {
		return r == '_' || (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z')
	}
	return unicode.IsLetter(r)
}

func isIdentContinueRune(r rune) bool {
	if r < utf8.RuneSelf {
		return isIdentStartRune(r) || (r >= '0' && r <= '9')
	}
	// комбинирующие знаки нужны для разложенных форм (e + U+0301)
	return unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.Is(unicode.Mn, r)
}

// IsIdentContinue is exposed for plugin matchers that need the same word
// boundary rule.
func IsIdentContinue(r rune) bool {
	return isIdentContinueRune(r)
}
