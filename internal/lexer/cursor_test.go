package lexer

import (
	"testing"

	"umlts/internal/source"
)

func createFile(content string) *source.File {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.umlts", []byte(content))
	return fs.Get(id)
}

// TestCursorLineTracking проверяет строку/колонку при чтении "a\nbc"
func TestCursorLineTracking(t *testing.T) {
	c := NewCursor(createFile("a\nbc"))
	if c.Peek() != 'a' || c.PeekNext() != '\n' {
		t.Fatalf("unexpected peek: %q %q", c.Peek(), c.PeekNext())
	}
	c.Advance()
	c.Advance()
	if c.Line != 2 || c.Col != 1 {
		t.Fatalf("expected 2:1, got %d:%d", c.Line, c.Col)
	}
	c.Advance()
	if c.Col != 2 {
		t.Fatalf("expected col 2, got %d", c.Col)
	}
}

func TestCursorSnapshotRollback(t *testing.T) {
	c := NewCursor(createFile("héllo"))
	snap := c.Snapshot()
	c.AdvanceRune()
	c.AdvanceRune()
	if c.Off != 3 || c.Col != 3 {
		t.Fatalf("multibyte rune must advance offset by size and column by one: off=%d col=%d", c.Off, c.Col)
	}
	if got := c.Slice(snap); got != "hé" {
		t.Fatalf("slice = %q", got)
	}
	c.Rollback(snap)
	if c.Off != 0 || c.Line != 1 || c.Col != 1 {
		t.Fatalf("rollback failed: %+v", c)
	}
	for !c.EOF() {
		c.AdvanceRune()
	}
	if c.Peek() != 0 || c.Advance() != 0 {
		t.Fatalf("reads past EOF must return 0")
	}
}
