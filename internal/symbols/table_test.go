package symbols

import (
	"testing"

	"umlts/internal/ir"
	"umlts/internal/source"
)

func entity(name string, kind ir.EntityKind) *ir.Entity {
	return &ir.Entity{Name: name, Kind: kind}
}

func TestNamespaceReuse(t *testing.T) {
	table := NewTable(Hints{})
	first := table.Namespace(table.Root(), "shop.orders")
	second := table.Namespace(table.Namespace(table.Root(), "shop"), "orders")
	if first != second {
		t.Fatalf("expected namespace reuse, got %d and %d", first, second)
	}
	if got := table.Scopes.Get(first).Path; got != "shop.orders" {
		t.Fatalf("path = %q", got)
	}
	if err := table.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestDeclareQualifiesAndDetectsDuplicates(t *testing.T) {
	table := NewTable(Hints{})
	ns := table.Namespace(table.Root(), "shop")

	id, status := table.Declare(ns, entity("Order", ir.KindClass), source.Span{})
	if status != Declared {
		t.Fatalf("status = %v", status)
	}
	if got := table.Entity(id).ID; got != "shop.Order" {
		t.Fatalf("fqn = %q", got)
	}

	dup, status := table.Declare(ns, entity("Order", ir.KindClass), source.Span{})
	if status != Duplicate || dup != id {
		t.Fatalf("expected duplicate of %d, got %d/%v", id, dup, status)
	}
	_, status = table.Declare(ns, entity("Order", ir.KindInterface), source.Span{})
	if status != KindConflict {
		t.Fatalf("expected kind conflict, got %v", status)
	}
	if table.Entity(id).Kind != ir.KindClass {
		t.Fatalf("explicit kind overwritten: %v", table.Entity(id).Kind)
	}
	if table.Len() != 1 {
		t.Fatalf("expected 1 entry, got %d", table.Len())
	}
}

func TestImplicitNarrowsToExplicit(t *testing.T) {
	table := NewTable(Hints{})
	id, created := table.Implicit(table.Root(), "Shape", ir.KindClass, source.Span{})
	if !created || !table.Get(id).Implicit() {
		t.Fatalf("expected implicit entry")
	}
	ptr := table.Entity(id)

	again, status := table.Declare(table.Root(), entity("Shape", ir.KindInterface), source.Span{})
	if status != Completed || again != id {
		t.Fatalf("expected completion of %d, got %d/%v", id, again, status)
	}
	if table.Entity(id) != ptr {
		t.Fatalf("entity pointer changed on completion")
	}
	if ptr.IsImplicit || ptr.Kind != ir.KindInterface || ptr.ID != "Shape" {
		t.Fatalf("bad completed entity: %+v", ptr)
	}

	// explicit entries are never demoted or re-kinded by inference
	same, created := table.Implicit(table.Root(), "Shape", ir.KindClass, source.Span{})
	if created || same != id || ptr.Kind != ir.KindInterface {
		t.Fatalf("implicit lookup changed explicit entry")
	}
}

func TestImplicitQualifiedName(t *testing.T) {
	table := NewTable(Hints{})
	id, _ := table.Implicit(table.Root(), "a.b.Leaf", ir.KindClass, source.Span{})
	e := table.Entity(id)
	if e.ID != "a.b.Leaf" || e.Namespace != "a.b" || e.Name != "Leaf" {
		t.Fatalf("unexpected entity %+v", e)
	}
	if err := table.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestResolveScopeChainAndAmbiguity(t *testing.T) {
	table := NewTable(Hints{})
	a := table.Namespace(table.Root(), "a")
	b := table.Namespace(table.Root(), "b")
	inner := table.Namespace(a, "inner")
	idA, _ := table.Declare(a, entity("User", ir.KindClass), source.Span{})
	idB, _ := table.Declare(b, entity("User", ir.KindClass), source.Span{})

	if res := table.Resolve(inner, "User"); res.ID != idA || res.Ambiguous {
		t.Fatalf("scope chain should bind a.User, got %+v", res)
	}
	if res := table.Resolve(b, "User"); res.ID != idB || res.Ambiguous {
		t.Fatalf("scope chain should bind b.User, got %+v", res)
	}
	res := table.Resolve(table.Root(), "User")
	if !res.Ambiguous || res.ID != idA || len(res.Candidates) != 2 {
		t.Fatalf("expected ambiguous binding to first candidate, got %+v", res)
	}
	if res := table.Resolve(table.Root(), "b.User"); res.ID != idB {
		t.Fatalf("qualified lookup failed: %+v", res)
	}
	if res := table.Resolve(table.Root(), "c.User"); res.Found() {
		t.Fatalf("unexpected binding %+v", res)
	}
}

func TestEntitiesDeclarationOrder(t *testing.T) {
	table := NewTable(Hints{})
	for _, n := range []string{"C", "A", "B"} {
		table.Declare(table.Root(), entity(n, ir.KindClass), source.Span{})
	}
	var got []string
	for _, e := range table.Entities() {
		got = append(got, e.Name)
	}
	if len(got) != 3 || got[0] != "C" || got[1] != "A" || got[2] != "B" {
		t.Fatalf("order = %v", got)
	}
}
