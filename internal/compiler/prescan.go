package compiler

import (
	"umlts/internal/lexer"
	"umlts/internal/source"
	"umlts/internal/token"
)

// LanguageDecl is a `language` setting found by the pre-scan.
type LanguageDecl struct {
	Name string
	Span source.Span
}

// DetectLanguage scans the built-in token stream for `config { language: x }`
// or `@language: x`. The first occurrence wins.
func DetectLanguage(file *source.File) (LanguageDecl, bool) {
	toks := lexer.Tokenize(file, lexer.Options{})
	sig := make([]token.Token, 0, len(toks))
	for _, t := range toks {
		if !t.IsTrivia() && t.Kind != token.DocComment {
			sig = append(sig, t)
		}
	}
	at := func(i int) token.Token {
		if i < len(sig) {
			return sig[i]
		}
		return token.Token{Kind: token.EOF}
	}
	isLanguageValue := func(i int) bool {
		v := at(i)
		return v.Kind == token.StringLit || v.IsName()
	}

	depth := 0 // inside config { }
	for i := 0; i < len(sig); i++ {
		t := sig[i]
		switch {
		case t.Kind == token.KwConfig && at(i+1).Kind == token.LBrace:
			depth = 1
			i++
		case depth > 0 && t.Kind == token.LBrace:
			depth++
		case depth > 0 && t.Kind == token.RBrace:
			depth--
		case depth > 0 && t.IsName() && t.Text == "language" && at(i+1).Kind == token.Colon && isLanguageValue(i+2):
			v := at(i + 2)
			return LanguageDecl{Name: v.Text, Span: v.Span}, true
		case depth == 0 && t.Kind == token.At && at(i+1).Text == "language" && at(i+2).Kind == token.Colon && isLanguageValue(i+3):
			v := at(i + 3)
			return LanguageDecl{Name: v.Text, Span: v.Span}, true
		}
	}
	return LanguageDecl{}, false
}
