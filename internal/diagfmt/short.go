package diagfmt

import (
	"io"

	"umlts/internal/diag"
	"umlts/internal/source"
)

// Short writes one line per diagnostic (and per note when includeNotes).
func Short(w io.Writer, bag *diag.Bag, fs *source.FileSet, includeNotes bool) error {
	if bag == nil {
		return nil
	}
	out := diag.FormatShort(bag.Items(), fs, includeNotes)
	if out == "" {
		return nil
	}
	_, err := io.WriteString(w, out+"\n")
	return err
}
