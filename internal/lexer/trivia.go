package lexer

import (
	"strings"

	"umlts/internal/diag"
	"umlts/internal/token"
)

func matchWhitespace(ctx *Context) (token.Token, bool) {
	for !ctx.EOF() {
		switch ctx.Peek() {
		case ' ', '\t', '\r', '\n', '\f', '\v':
			ctx.Advance()
		default:
			return token.Token{}, false
		}
	}
	return token.Token{}, false
}

// matchDocComment: /** ... */ — текст без рамки и ведущих звёздочек.
func matchDocComment(ctx *Context) (token.Token, bool) {
	if !ctx.HasPrefix("/**") || ctx.HasPrefix("/**/") {
		return token.Token{}, false
	}
	start := ctx.Snapshot()
	ctx.AdvanceN(3)
	body := ctx.Snapshot()
	for !ctx.EOF() {
		if ctx.HasPrefix("*/") {
			text := ctx.Slice(body)
			ctx.AdvanceN(2)
			return ctx.Emit(token.DocComment, start, cleanDoc(text)), true
		}
		ctx.AdvanceRune()
	}
	text := ctx.Slice(body)
	tok := ctx.Emit(token.DocComment, start, cleanDoc(text))
	ctx.Report(diag.LexUnterminatedComment, diag.SevWarning, tok.Span, "unterminated doc comment")
	return tok, true
}

// matchComment: // до конца строки и /* ... */.
func matchComment(ctx *Context) (token.Token, bool) {
	start := ctx.Snapshot()
	switch {
	case ctx.HasPrefix("//"):
		ctx.AdvanceN(2)
		body := ctx.Snapshot()
		for !ctx.EOF() && ctx.Peek() != '\n' {
			ctx.AdvanceRune()
		}
		return ctx.Emit(token.Comment, start, strings.TrimSpace(ctx.Slice(body))), true
	case ctx.HasPrefix("/*"):
		ctx.AdvanceN(2)
		body := ctx.Snapshot()
		for !ctx.EOF() {
			if ctx.HasPrefix("*/") {
				text := ctx.Slice(body)
				ctx.AdvanceN(2)
				return ctx.Emit(token.Comment, start, strings.TrimSpace(text)), true
			}
			ctx.AdvanceRune()
		}
		tok := ctx.Emit(token.Comment, start, strings.TrimSpace(ctx.Slice(body)))
		ctx.Report(diag.LexUnterminatedComment, diag.SevWarning, tok.Span, "unterminated block comment")
		return tok, true
	}
	return token.Token{}, false
}

func cleanDoc(raw string) string {
	lines := strings.Split(raw, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		line = strings.TrimPrefix(line, "*")
		line = strings.TrimSpace(line)
		out = append(out, line)
	}
	// обрезаем пустые строки по краям
	for len(out) > 0 && out[0] == "" {
		out = out[1:]
	}
	for len(out) > 0 && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}
	return strings.Join(out, "\n")
}
