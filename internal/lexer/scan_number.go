package lexer

import "umlts/internal/token"

// matchNumber: 123, 4.5. Точка без цифры после неё — не часть числа,
// поэтому "0..*" даёт NUMBER RANGE STAR.
func matchNumber(ctx *Context) (token.Token, bool) {
	if !isDec(ctx.Peek()) {
		return token.Token{}, false
	}
	start := ctx.Snapshot()
	for isDec(ctx.Peek()) {
		ctx.Advance()
	}
	if ctx.Peek() == '.' && isDec(ctx.PeekNext()) {
		ctx.Advance()
		for isDec(ctx.Peek()) {
			ctx.Advance()
		}
	}
	return ctx.Emit(token.NumberLit, start, ctx.Slice(start)), true
}

func isDec(b byte) bool { return b >= '0' && b <= '9' }
