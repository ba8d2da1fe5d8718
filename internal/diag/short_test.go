package diag

import (
	"testing"

	"umlts/internal/source"
)

func TestFormatShortSortsAndIncludesNotes(t *testing.T) {
	fs := source.NewFileSetWithBase("/project")
	src := []byte("class A >> B\nclass B >> A\n")
	fileID := fs.Add("/project/model.umlts", src, 0)

	diags := []Diagnostic{
		{
			Severity: SevWarning,
			Code:     SemaAmbiguousEntity,
			Message:  "ambiguous\nreference",
			Primary:  source.Span{File: fileID, Start: 13, End: 18},
		},
		{
			Severity: SevError,
			Code:     SemaCycleDetected,
			Message:  "cycle",
			Primary:  source.Span{File: fileID, Start: 0, End: 5},
			Notes: []Note{
				{Span: source.Span{File: fileID, Start: 19, End: 21}, Msg: "closes here"},
			},
		},
	}

	got := FormatShort(diags, fs, true)
	want := "error SEM3030 model.umlts:1:1 cycle\n" +
		"warning SEM3006 model.umlts:2:1 ambiguous reference\n" +
		"note SEM3030 model.umlts:2:7 closes here"
	if got != want {
		t.Fatalf("unexpected output:\n%s\nwant:\n%s", got, want)
	}
}

func TestFormatShortSkipsUnknownFiles(t *testing.T) {
	fs := source.NewFileSet()
	diags := []Diagnostic{{Severity: SevError, Code: SynUnexpectedToken, Primary: source.Span{File: 7}}}
	if got := FormatShort(diags, fs, false); got != "" {
		t.Fatalf("expected empty output, got %q", got)
	}
}
