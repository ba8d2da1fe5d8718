package lexer

import (
	"strings"

	"umlts/internal/diag"
	"umlts/internal/token"
)

// matchString: "..." или '...' с escape-последовательностями \n \t \r \\ \" \'.
// Token.Text — значение без кавычек. Незакрытая строка возвращает прочитанное.
func matchString(ctx *Context) (token.Token, bool) {
	quote := ctx.Peek()
	if quote != '"' && quote != '\'' {
		return token.Token{}, false
	}
	start := ctx.Snapshot()
	ctx.Advance()
	var sb strings.Builder
	for !ctx.EOF() {
		b := ctx.Peek()
		switch {
		case b == quote:
			ctx.Advance()
			return ctx.Emit(token.StringLit, start, sb.String()), true
		case b == '\n':
			tok := ctx.Emit(token.StringLit, start, sb.String())
			ctx.Report(diag.LexUnterminatedString, diag.SevWarning, tok.Span, "newline in string literal")
			return tok, true
		case b == '\\':
			ctx.Advance()
			if ctx.EOF() {
				break
			}
			sb.WriteRune(unescape(ctx.AdvanceRune()))
		default:
			sb.WriteRune(ctx.AdvanceRune())
		}
	}
	tok := ctx.Emit(token.StringLit, start, sb.String())
	ctx.Report(diag.LexUnterminatedString, diag.SevWarning, tok.Span, "unterminated string literal")
	return tok, true
}

func unescape(r rune) rune {
	switch r {
	case 'n':
		return '\n'
	case 't':
		return '\t'
	case 'r':
		return '\r'
	case '0':
		return 0
	}
	return r
}
