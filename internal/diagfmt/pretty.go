package diagfmt

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"umlts/internal/diag"
	"umlts/internal/source"
)

const tabWidth = 4

type palette struct {
	err, warn, info, note, code, path, gutter, caret *color.Color
}

func newPalette(enabled bool) palette {
	mk := func(attrs ...color.Attribute) *color.Color {
		c := color.New(attrs...)
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c
	}
	return palette{
		err:    mk(color.FgRed, color.Bold),
		warn:   mk(color.FgYellow, color.Bold),
		info:   mk(color.FgCyan, color.Bold),
		note:   mk(color.FgBlue, color.Bold),
		code:   mk(color.Bold),
		path:   mk(color.FgWhite, color.Bold),
		gutter: mk(color.FgBlue),
		caret:  mk(color.FgGreen, color.Bold),
	}
}

func (p palette) severity(s diag.Severity) *color.Color {
	switch {
	case s >= diag.SevError:
		return p.err
	case s == diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее):
//
//	<path>:<line>:<col>: ERROR SEM3030 [SEMANTIC_CYCLE_DETECTED]: <message>
//	   4 | class C >> A
//	     |          ^~~
//
// затем Notes в том же формате.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	if bag == nil || fs == nil {
		return
	}
	p := newPalette(opts.Color)
	for i, d := range bag.Items() {
		if i > 0 {
			fmt.Fprintln(w)
		}
		f := fs.Get(d.Primary.File)
		start, _ := fs.Resolve(d.Primary)
		fmt.Fprintf(w, "%s: %s %s [%s]: %s\n",
			p.path.Sprintf("%s:%d:%d", formatPath(fs, f, opts.PathMode), start.Line, start.Col),
			p.severity(d.Severity).Sprint(strings.ToUpper(d.Severity.Label())),
			p.code.Sprint(d.Code.ID()),
			d.Code.Name(),
			d.Message,
		)
		writeSnippet(w, f, d.Primary, int(opts.Context), p)

		if !opts.ShowNotes {
			continue
		}
		for _, n := range d.Notes {
			nf := fs.Get(n.Span.File)
			ns, _ := fs.Resolve(n.Span)
			msg := n.Msg
			if d.Code == diag.SemaInternal {
				// stack traces stay out of the human view
				msg, _, _ = strings.Cut(msg, "\n")
			}
			fmt.Fprintf(w, "  %s %s: %s\n",
				p.note.Sprint("note:"),
				p.path.Sprintf("%s:%d:%d", formatPath(fs, nf, opts.PathMode), ns.Line, ns.Col),
				msg,
			)
			if !n.Span.Empty() {
				writeSnippet(w, nf, n.Span, 0, p)
			}
		}
	}
}

// writeSnippet prints the primary line with context and a caret underline.
// Caret columns are display widths, so wide runes and tabs line up.
func writeSnippet(w io.Writer, f *source.File, span source.Span, context int, p palette) {
	if f == nil || len(f.Content) == 0 {
		return
	}
	start := f.Position(span.Start)
	end := f.Position(span.End)
	first := max(1, int(start.Line)-context)
	last := min(int(start.Line)+context, len(f.LineIdx)+1)
	gutterWidth := len(strconv.Itoa(last))

	for ln := first; ln <= last; ln++ {
		line := f.GetLine(uint32(ln)) // #nosec G115 -- ln is a positive line number
		fmt.Fprintf(w, "%s %s\n", p.gutter.Sprintf("%*d |", gutterWidth, ln), expandTabs(line))
		if ln != int(start.Line) {
			continue
		}
		prefix := displayWidth(sliceBytes(line, 0, int(start.Col)-1))
		width := 1
		if end.Line == start.Line && end.Col > start.Col {
			width = max(1, displayWidth(sliceBytes(line, int(start.Col)-1, int(end.Col)-1)))
		}
		underline := "^" + strings.Repeat("~", width-1)
		fmt.Fprintf(w, "%s %s%s\n", p.gutter.Sprintf("%*s |", gutterWidth, ""), strings.Repeat(" ", prefix), p.caret.Sprint(underline))
	}
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", tabWidth))
}

func displayWidth(s string) int {
	return runewidth.StringWidth(expandTabs(s))
}

// sliceBytes clamps a byte range of line; columns are 1-based byte offsets.
func sliceBytes(line string, from, to int) string {
	from = min(max(from, 0), len(line))
	to = min(max(to, from), len(line))
	return line[from:to]
}
