package token_test

import (
	"testing"

	"umlts/internal/token"
)

func tok(k token.Kind) token.Token {
	return token.Token{Kind: k}
}

func TestIsRelOp(t *testing.T) {
	ops := []token.Kind{
		token.Generalization, token.Realization, token.Composition, token.Aggregation,
		token.Association, token.AssocBidir, token.AssocPlain, token.Dependency,
	}
	for _, k := range ops {
		if !tok(k).IsRelOp() {
			t.Fatalf("%v should be a relationship operator", k)
		}
	}
	for _, k := range []token.Kind{token.Range, token.Gt, token.Lt, token.Minus, token.Ident} {
		if tok(k).IsRelOp() {
			t.Fatalf("%v must NOT be a relationship operator", k)
		}
	}
}

func TestModifierAndVisibility(t *testing.T) {
	for _, k := range []token.Kind{token.Plus, token.Minus, token.Hash, token.Tilde} {
		if !tok(k).IsVisibility() {
			t.Fatalf("%v should be visibility", k)
		}
	}
	for _, k := range []token.Kind{token.Dollar, token.Star, token.Amp, token.Bang, token.Caret, token.KwAbstract, token.KwRoot} {
		if !tok(k).IsModifier() {
			t.Fatalf("%v should be a modifier", k)
		}
	}
	if tok(token.Plus).IsModifier() {
		t.Fatalf("visibility must not be a modifier")
	}
}

func TestKindNames(t *testing.T) {
	if got := token.AssocBidir.String(); got != "OP_ASSOC_BIDIR" {
		t.Fatalf("unexpected name %q", got)
	}
	if got := token.Range.String(); got != "RANGE" {
		t.Fatalf("unexpected name %q", got)
	}
	custom := token.PluginBase + 7
	token.RegisterKindName(custom, "TS_DECORATOR")
	if got := custom.String(); got != "TS_DECORATOR" {
		t.Fatalf("plugin kind name not registered: %q", got)
	}
}

func TestLookupKeyword(t *testing.T) {
	if k, ok := token.LookupKeyword("interface"); !ok || k != token.KwInterface {
		t.Fatalf("interface keyword lookup failed: %v %v", k, ok)
	}
	if _, ok := token.LookupKeyword("Interface"); ok {
		t.Fatalf("keywords are case-sensitive")
	}
	if !tok(token.KwFor).IsName() {
		t.Fatalf("soft keyword 'for' must be usable as a name")
	}
}
