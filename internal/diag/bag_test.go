package diag

import (
	"testing"

	"umlts/internal/source"
)

func span(start, end uint32) source.Span {
	return source.Span{File: 0, Start: start, End: end}
}

func TestBagCapAndErrors(t *testing.T) {
	b := NewBag(2)
	if !b.Add(New(SevWarning, SemaAmbiguousEntity, span(0, 1), "w")) {
		t.Fatalf("first add rejected")
	}
	if b.HasErrors() {
		t.Fatalf("warning must not count as error")
	}
	if !b.HasWarnings() {
		t.Fatalf("expected warnings")
	}
	b.Add(NewError(SynUnexpectedToken, span(2, 3), "e"))
	if b.Add(NewError(SynUnexpectedToken, span(4, 5), "dropped")) {
		t.Fatalf("cap exceeded")
	}
	if b.Len() != 2 || !b.HasErrors() {
		t.Fatalf("unexpected bag state: len=%d errors=%v", b.Len(), b.HasErrors())
	}
}

func TestBagSortDedup(t *testing.T) {
	b := NewBag(0)
	b.Add(NewError(SemaCycleDetected, span(10, 12), "cycle"))
	b.Add(New(SevWarning, SemaAmbiguousEntity, span(0, 3), "amb"))
	b.Add(NewError(SemaCycleDetected, span(10, 12), "cycle"))
	b.Add(NewError(SynUnexpectedToken, span(0, 3), "tok"))

	b.Dedup()
	if b.Len() != 3 {
		t.Fatalf("expected 3 items after dedup, got %d", b.Len())
	}
	b.Sort()
	items := b.Items()
	if items[0].Code != SynUnexpectedToken {
		t.Fatalf("errors sort before warnings on the same span, got %s", items[0].Code.ID())
	}
	if items[2].Code != SemaCycleDetected {
		t.Fatalf("expected cycle last, got %s", items[2].Code.ID())
	}
}

func TestBagMergeGrowsCap(t *testing.T) {
	a := NewBag(1)
	a.Add(NewError(SynUnexpectedToken, span(0, 1), "a"))
	other := NewBag(2)
	other.Add(NewError(SynUnexpectedToken, span(1, 2), "b"))
	other.Add(NewError(SynUnexpectedToken, span(2, 3), "c"))
	a.Merge(other)
	if a.Len() != 3 {
		t.Fatalf("merge lost items: %d", a.Len())
	}
}

func TestCodeIdentifiers(t *testing.T) {
	cases := []struct {
		code Code
		id   string
		name string
	}{
		{LexUnknownChar, "LEX1001", "LEXICAL_UNKNOWN_CHARACTER"},
		{SynPackageNameExpected, "SYN2003", "SYNTAX_PACKAGE_NAME_EXPECTED"},
		{SemaCycleDetected, "SEM3030", "SEMANTIC_CYCLE_DETECTED"},
		{IOLoadFileError, "IO4001", "IO_LOAD_FAILED"},
		{PrjUnknownLanguage, "PRJ5001", "PROJECT_UNKNOWN_LANGUAGE"},
	}
	for _, tc := range cases {
		if got := tc.code.ID(); got != tc.id {
			t.Errorf("ID(%d) = %s, want %s", tc.code, got, tc.id)
		}
		if got := tc.code.Name(); got != tc.name {
			t.Errorf("Name(%d) = %s, want %s", tc.code, got, tc.name)
		}
	}
	if Code(9999).Name() != "UNKNOWN" {
		t.Fatalf("unknown code must map to UNKNOWN")
	}
}

func TestDedupReporterAndBuilder(t *testing.T) {
	bag := NewBag(10)
	r := NewDedupReporter(&BagReporter{Bag: bag})
	b := ReportError(r, SemaDuplicateDefinition, span(0, 1), "dup").WithNote(span(5, 6), "first here")
	b.Emit()
	b.Emit()
	ReportError(r, SemaDuplicateDefinition, span(0, 1), "dup").Emit()
	if bag.Len() != 1 {
		t.Fatalf("expected one diagnostic, got %d", bag.Len())
	}
	if len(bag.Items()[0].Notes) != 1 {
		t.Fatalf("note lost")
	}
}

func TestBagRemembersDroppedSeverities(t *testing.T) {
	b := NewBag(1)
	b.Add(New(SevWarning, SemaAmbiguousEntity, span(0, 1), "w"))
	b.Add(New(SevWarning, SemaAmbiguousEntity, span(2, 3), "w2"))
	if b.HasErrors() {
		t.Fatalf("dropped warning must not count as error")
	}
	b.Add(NewError(SemaDuplicateDefinition, span(4, 5), "dup"))
	if b.Len() != 1 {
		t.Fatalf("cap not honored: len=%d", b.Len())
	}
	if !b.HasErrors() {
		t.Fatalf("dropped error must keep HasErrors true")
	}
	if errs, warns := b.Dropped(); errs != 1 || warns != 1 {
		t.Fatalf("dropped = %d errors, %d warnings", errs, warns)
	}

	merged := NewBag(0)
	merged.Merge(b)
	if !merged.HasErrors() {
		t.Fatalf("merge lost dropped error")
	}
}

func TestBagPromoteAndDiscardWarnings(t *testing.T) {
	b := NewBag(1)
	b.Add(New(SevInfo, SemaAmbiguousEntity, span(0, 1), "i"))
	b.Add(New(SevWarning, SemaAmbiguousEntity, span(2, 3), "w"))
	b.PromoteWarnings()
	if !b.HasErrors() {
		t.Fatalf("promoted dropped warning must become an error")
	}

	d := NewBag(1)
	d.Add(New(SevWarning, SemaAmbiguousEntity, span(0, 1), "w"))
	d.Add(New(SevWarning, SemaAmbiguousEntity, span(2, 3), "w2"))
	d.DiscardWarnings()
	if d.Len() != 0 || d.HasWarnings() {
		t.Fatalf("warnings survived discard: len=%d", d.Len())
	}
}
