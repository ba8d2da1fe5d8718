package observ

import (
	"strings"
	"sync"
	"testing"
)

func TestTimerAggregatesByName(t *testing.T) {
	tm := NewTimer()
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tm.End(tm.Begin("lex"), "")
			tm.End(tm.Begin("parse"), "")
		}()
	}
	wg.Wait()
	idx := tm.Begin("emit")
	tm.End(idx, "3 files")

	if got := len(tm.Report().Phases); got != 9 {
		t.Fatalf("raw phases = %d, want 9", got)
	}
	agg := tm.Aggregate()
	if len(agg.Phases) != 3 {
		t.Fatalf("aggregated phases = %d, want 3", len(agg.Phases))
	}
	for _, p := range agg.Phases[:2] {
		if p.Count != 4 {
			t.Errorf("%s count = %d, want 4", p.Name, p.Count)
		}
	}
	sum := tm.Summary()
	if !strings.Contains(sum, "×4") || !strings.Contains(sum, "// 3 files") || !strings.Contains(sum, "total") {
		t.Fatalf("unexpected summary:\n%s", sum)
	}
}

func TestTimerEndOutOfRange(t *testing.T) {
	tm := NewTimer()
	tm.End(5, "ignored")
	if r := tm.Report(); len(r.Phases) != 0 || r.TotalMS != 0 {
		t.Fatalf("empty timer report = %+v", r)
	}
}
