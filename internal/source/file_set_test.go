package source

import "testing"

func TestFileSetVersioning(t *testing.T) {
	fs := NewFileSet()

	id1 := fs.Add("model.umlts", []byte("class A"), 0)
	id2 := fs.Add("model.umlts", []byte("class B"), 0)
	if id1 == id2 {
		t.Fatalf("expected distinct ids, got %d twice", id1)
	}
	latest, ok := fs.GetLatest("model.umlts")
	if !ok || latest != id2 {
		t.Fatalf("expected latest %d, got %d (ok=%v)", id2, latest, ok)
	}
	if got := string(fs.Get(id1).Content); got != "class A" {
		t.Fatalf("old version lost: %q", got)
	}
}

func TestAddVirtualNormalizes(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("buf", []byte("\xEF\xBB\xBFclass A\r\nclass B\r\n"))
	f := fs.Get(id)
	if string(f.Content) != "class A\nclass B\n" {
		t.Fatalf("unexpected content %q", f.Content)
	}
	if f.Flags&FileHadBOM == 0 || f.Flags&FileNormalizedCRLF == 0 || f.Flags&FileVirtual == 0 {
		t.Fatalf("unexpected flags %b", f.Flags)
	}
}

func TestPositionAndGetLine(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("buf", []byte("ab\ncde\n\nf"))
	f := fs.Get(id)

	cases := []struct {
		off  uint32
		line uint32
		col  uint32
	}{
		{0, 1, 1},
		{2, 1, 3}, // the '\n' itself belongs to line 1
		{3, 2, 1},
		{7, 3, 1},
		{8, 4, 1},
	}
	for _, c := range cases {
		pos := f.Position(c.off)
		if pos.Line != c.line || pos.Col != c.col {
			t.Fatalf("offset %d: expected %d:%d, got %d:%d", c.off, c.line, c.col, pos.Line, pos.Col)
		}
	}

	if got := f.GetLine(2); got != "cde" {
		t.Fatalf("line 2: %q", got)
	}
	if got := f.GetLine(3); got != "" {
		t.Fatalf("line 3: %q", got)
	}
	if got := f.GetLine(4); got != "f" {
		t.Fatalf("line 4: %q", got)
	}
	if got := f.GetLine(5); got != "" {
		t.Fatalf("line 5 should not exist: %q", got)
	}
}

func TestSpanCover(t *testing.T) {
	a := Span{File: 1, Start: 5, End: 8}
	b := Span{File: 1, Start: 2, End: 6}
	if got := a.Cover(b); got.Start != 2 || got.End != 8 {
		t.Fatalf("unexpected cover %v", got)
	}
	other := Span{File: 2, Start: 0, End: 100}
	if got := a.Cover(other); got != a {
		t.Fatalf("cross-file cover must keep receiver, got %v", got)
	}
}
