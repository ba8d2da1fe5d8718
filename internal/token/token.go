package token

import (
	"umlts/internal/source"
)

// Token represents a single source token with its location.
type Token struct {
	Kind Kind
	Text string
	Span source.Span
	Line uint32 // 1-based
	Col  uint32 // 1-based
}

// IsRelOp reports whether the token is a relationship operator.
func (t Token) IsRelOp() bool {
	switch t.Kind {
	case Generalization, Realization, Composition, Aggregation, Association,
		AssocBidir, AssocPlain, Dependency:
		return true
	default:
		return false
	}
}

// IsVisibility reports whether the token is a visibility mark.
func (t Token) IsVisibility() bool {
	switch t.Kind {
	case Plus, Minus, Hash, Tilde:
		return true
	default:
		return false
	}
}

// IsModifier reports whether the token is a modifier mark or modifier keyword.
func (t Token) IsModifier() bool {
	switch t.Kind {
	case Dollar, Star, Amp, Bang, Caret,
		KwAbstract, KwStatic, KwFinal, KwLeaf, KwRoot:
		return true
	default:
		return false
	}
}

// IsKeyword reports whether the token is a language keyword.
func (t Token) IsKeyword() bool {
	return t.Kind >= KwPackage && t.Kind <= KwFalse
}

// IsTrivia reports whether the parser may skip the token during lookahead.
func (t Token) IsTrivia() bool {
	return t.Kind == Comment
}

// IsName reports whether the token may serve as a member name. Soft keywords
// such as `for` or `note` are valid names once the member prefix is consumed.
func (t Token) IsName() bool {
	switch t.Kind {
	case Ident, KwFor, KwNote, KwConfig, KwXor, KwDataType:
		return true
	default:
		return false
	}
}
