package lexer

import (
	"fmt"
	"unicode/utf8"

	"fortio.org/safecast"

	"umlts/internal/source"
)

// Cursor представляет собой позицию в файле вместе со строкой и колонкой.
type Cursor struct {
	File *source.File
	Off  uint32
	Line uint32 // 1-based
	Col  uint32 // 1-based, в байтах
	// Limit is the exclusive upper bound for Off; defaults to len(File.Content).
	Limit uint32
}

// NewCursor creates a new cursor for the provided file.
func NewCursor(f *source.File) Cursor {
	limit, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("len file content overflow: %w", err))
	}
	return Cursor{
		File:  f,
		Line:  1,
		Col:   1,
		Limit: limit,
	}
}

// EOF проверяет, достигнут ли конец файла
func (c *Cursor) EOF() bool {
	return c.Off >= c.Limit
}

// Peek читает текущий байт, если есть, иначе возвращает 0
func (c *Cursor) Peek() byte {
	return c.PeekAt(0)
}

// PeekNext читает байт после текущего, иначе возвращает 0
func (c *Cursor) PeekNext() byte {
	return c.PeekAt(1)
}

// PeekAt returns the byte n positions ahead, or 0 past the end.
func (c *Cursor) PeekAt(n uint32) byte {
	if c.Off+n >= c.Limit {
		return 0
	}
	return c.File.Content[c.Off+n]
}

// HasPrefix reports whether the remaining input starts with s.
func (c *Cursor) HasPrefix(s string) bool {
	n := uint32(len(s)) // #nosec G115 -- operator literals are tiny
	if c.Off+n > c.Limit {
		return false
	}
	return string(c.File.Content[c.Off:c.Off+n]) == s
}

// Advance перемещает курсор на один байт вперед и возвращает прочитанный байт
func (c *Cursor) Advance() byte {
	if c.EOF() {
		return 0
	}
	b := c.File.Content[c.Off]
	c.Off++
	if b == '\n' {
		c.Line++
		c.Col = 1
	} else {
		c.Col++
	}
	return b
}

// AdvanceN advances n bytes.
func (c *Cursor) AdvanceN(n int) {
	for i := 0; i < n; i++ {
		c.Advance()
	}
}

// PeekRune decodes the rune at the cursor.
func (c *Cursor) PeekRune() (r rune, size int) {
	if c.EOF() {
		return utf8.RuneError, 0
	}
	b := c.File.Content[c.Off]
	if b < utf8.RuneSelf {
		return rune(b), 1
	}
	return utf8.DecodeRune(c.File.Content[c.Off:c.Limit])
}

// AdvanceRune consumes one rune; a column counts one per rune.
func (c *Cursor) AdvanceRune() rune {
	r, sz := c.PeekRune()
	if sz == 0 {
		return r
	}
	if sz == 1 {
		c.Advance()
		return r
	}
	usz, err := safecast.Conv[uint32](sz)
	if err != nil {
		panic(fmt.Errorf("rune size overflow: %w", err))
	}
	c.Off += usz
	c.Col++
	return r
}

// Snapshot — сохранённая позиция курсора.
type Snapshot struct {
	Off  uint32
	Line uint32
	Col  uint32
}

// Snapshot сохраняет текущую позицию курсора
func (c *Cursor) Snapshot() Snapshot {
	return Snapshot{Off: c.Off, Line: c.Line, Col: c.Col}
}

// Rollback возвращает курсор назад к снимку
func (c *Cursor) Rollback(s Snapshot) {
	c.Off, c.Line, c.Col = s.Off, s.Line, s.Col
}

// SpanFrom получает Span для фрагмента, начиная с метки
func (c *Cursor) SpanFrom(s Snapshot) source.Span {
	return source.Span{File: c.File.ID, Start: s.Off, End: c.Off}
}

// Slice returns the raw text read since s.
func (c *Cursor) Slice(s Snapshot) string {
	return string(c.File.Content[s.Off:c.Off])
}
