package trace

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestLevelShouldEmit(t *testing.T) {
	cases := []struct {
		level Level
		scope Scope
		want  bool
	}{
		{LevelOff, ScopeDriver, false},
		{LevelError, ScopeDriver, true},
		{LevelError, ScopePass, false},
		{LevelPhase, ScopePass, true},
		{LevelPhase, ScopeUnit, false},
		{LevelDetail, ScopeUnit, true},
		{LevelDetail, ScopeNode, false},
		{LevelDebug, ScopeNode, true},
	}
	for _, tc := range cases {
		if got := tc.level.ShouldEmit(tc.scope); got != tc.want {
			t.Errorf("%s.ShouldEmit(%s) = %v, want %v", tc.level, tc.scope, got, tc.want)
		}
	}
}

func TestParseLevel(t *testing.T) {
	if l, err := ParseLevel("PHASE"); err != nil || l != LevelPhase {
		t.Fatalf("ParseLevel(PHASE) = %v, %v", l, err)
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatal("expected error for unknown level")
	}
}

func TestStreamTracerText(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelPhase, FormatText)

	root := Begin(tr, ScopeDriver, "compile", 0)
	child := Begin(tr, ScopePass, "parse", root.ID())
	child.WithExtra("tokens", "12").End("ok")
	Begin(tr, ScopeUnit, "hidden", root.ID()).End("")
	root.End("")

	out := buf.String()
	for _, want := range []string{"→ compile", "→ parse", "← parse (ok) {tokens=12}", "← compile"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
	if strings.Contains(out, "hidden") {
		t.Errorf("unit scope must be filtered at phase level:\n%s", out)
	}
}

func TestSuppressedSpanKeepsParent(t *testing.T) {
	tr := NewRingTracer(8, LevelPhase)
	root := Begin(tr, ScopeDriver, "root", 0)
	unit := Begin(tr, ScopeUnit, "file", root.ID())
	if unit.ID() != root.ID() {
		t.Fatalf("suppressed span id = %d, want parent %d", unit.ID(), root.ID())
	}
	pass := Begin(tr, ScopePass, "sema", unit.ID())
	pass.End("")
	evs := tr.Snapshot()
	last := evs[len(evs)-1]
	if last.ParentID != root.ID() {
		t.Fatalf("parent = %d, want %d", last.ParentID, root.ID())
	}
}

func TestRingTracerWraps(t *testing.T) {
	tr := NewRingTracer(3, LevelDebug)
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		Point(tr, ScopeNode, name, "", 0)
	}
	evs := tr.Snapshot()
	if len(evs) != 3 {
		t.Fatalf("len = %d, want 3", len(evs))
	}
	got := evs[0].Name + evs[1].Name + evs[2].Name
	if got != "cde" {
		t.Fatalf("order = %q, want cde", got)
	}

	var buf bytes.Buffer
	if err := tr.Dump(&buf, FormatNDJSON); err != nil {
		t.Fatal(err)
	}
	if n := strings.Count(buf.String(), "\n"); n != 3 {
		t.Fatalf("ndjson lines = %d, want 3", n)
	}
	if !strings.Contains(buf.String(), `"name":"e"`) {
		t.Fatalf("ndjson missing event: %s", buf.String())
	}
}

func TestNewSelectsImplementation(t *testing.T) {
	tr, err := New(Config{Level: LevelOff})
	if err != nil || tr.Enabled() {
		t.Fatalf("off level: %v %v", tr, err)
	}

	var buf bytes.Buffer
	tr, err = New(Config{Level: LevelPhase, Mode: ModeBoth, Output: &buf, Format: FormatNDJSON})
	if err != nil {
		t.Fatal(err)
	}
	multi, ok := tr.(*MultiTracer)
	if !ok || multi.Ring() == nil {
		t.Fatalf("ModeBoth should yield a multi tracer with a ring, got %T", tr)
	}
	Begin(tr, ScopePass, "lex", 0).End("")
	if len(multi.Ring().Snapshot()) != 2 || !strings.Contains(buf.String(), `"kind":"end"`) {
		t.Fatalf("fan-out failed: ring=%d out=%s", len(multi.Ring().Snapshot()), buf.String())
	}
	if err := tr.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestContextPropagation(t *testing.T) {
	if FromContext(context.Background()) != Nop {
		t.Fatal("empty context should yield Nop")
	}
	tr := NewRingTracer(4, LevelDebug)
	ctx := WithParent(WithTracer(context.Background(), tr), 42)
	if FromContext(ctx) != Tracer(tr) {
		t.Fatal("tracer not propagated")
	}
	if ParentFromContext(ctx) != 42 {
		t.Fatal("parent not propagated")
	}
}

func TestHeartbeatNilSafe(t *testing.T) {
	h := StartHeartbeat(Nop, 0)
	if h != nil {
		t.Fatal("disabled tracer should not start heartbeat")
	}
	h.Stop()
}
