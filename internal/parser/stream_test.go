package parser

import (
	"testing"

	"umlts/internal/diag"
	"umlts/internal/lexer"
	"umlts/internal/source"
	"umlts/internal/token"
)

func newStream(t *testing.T, src string) *TokenStream {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("stream.umlts", []byte(src))
	return newTokenStream(lexer.Tokenize(fs.Get(id), lexer.Options{}), &sink{})
}

func TestStreamSkipsComments(t *testing.T) {
	ts := newStream(t, "A // c\n >> B")
	if ts.PeekAt(1).Kind != token.Generalization {
		t.Fatalf("comment must be transparent to lookahead, got %v", ts.PeekAt(1).Kind)
	}
	ts.Advance()
	if ts.PeekRaw().Kind != token.Comment {
		t.Fatalf("raw peek must see the comment")
	}
	if got := ts.Advance(); got.Kind != token.Generalization {
		t.Fatalf("advance must skip the comment, got %v", got.Kind)
	}
}

func TestStreamSplitShiftAndRollback(t *testing.T) {
	ts := newStream(t, ">> X")
	snap := ts.Snapshot()
	if !ts.SplitShift() {
		t.Fatalf("split failed")
	}
	if half := ts.Peek(); half.Kind != token.Gt || half.Span.Start != 1 {
		t.Fatalf("expected second '>' at offset 1, got %v %v", half.Kind, half.Span)
	}
	if ts.PeekAt(1).Text != "X" {
		t.Fatalf("lookahead past the split is wrong: %q", ts.PeekAt(1).Text)
	}
	ts.Rollback(snap)
	if ts.Peek().Kind != token.Generalization {
		t.Fatalf("rollback must undo the split")
	}
}

func TestStreamConsumeAndSoftConsume(t *testing.T) {
	s := &sink{}
	fs := source.NewFileSet()
	id := fs.AddVirtual("stream.umlts", []byte("{ }"))
	ts := newTokenStream(lexer.Tokenize(fs.Get(id), lexer.Options{}), s)

	if _, err := ts.Consume(token.Ident, diag.SynExpectIdentifier, "expected identifier"); err == nil {
		t.Fatalf("consume must fail on '{'")
	}
	if !ts.Check(token.LBrace) {
		t.Fatalf("failed consume must not move the cursor")
	}
	tok := ts.SoftConsume(token.Ident, diag.SynPackageNameExpected, "Package name expected")
	if tok.Text != "<missing:IDENTIFIER>" || !tok.Span.Empty() {
		t.Fatalf("unexpected placeholder %+v", tok)
	}
	if len(s.items) != 1 || s.items[0].Code != diag.SynPackageNameExpected {
		t.Fatalf("soft consume must record one diagnostic, got %v", s.items)
	}
}

func TestSinkHonoursMaxErrors(t *testing.T) {
	s := &sink{maxErrors: 1}
	s.report(diag.SynUnexpectedToken, diag.SevError, source.Span{}, "a")
	s.report(diag.SynUnexpectedToken, diag.SevError, source.Span{}, "b")
	s.report(diag.SynUnexpectedToken, diag.SevWarning, source.Span{}, "w")
	if len(s.items) != 2 {
		t.Fatalf("expected 1 error + 1 warning, got %d", len(s.items))
	}
}
