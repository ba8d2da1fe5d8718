package lexer

import "umlts/internal/diag"

type Options struct {
	Reporter diag.Reporter // может быть nil — тогда ошибки игнорируем (но продолжаем лексить)
	// Matchers are tried before the built-in chain, in order. Language
	// plugins contribute here.
	Matchers []Matcher
}
