package symbols

import (
	"strings"

	"umlts/internal/ir"
	"umlts/internal/source"
)

// Hints provide optional capacity suggestions for the arenas.
type Hints struct{ Scopes, Symbols int }

// Table is a namespace-aware registry of entities keyed by FQN.
// A Table belongs to one analysis and is not safe for concurrent use.
type Table struct {
	Scopes  *Scopes
	Symbols *Symbols
	root    ScopeID
	byFQN   map[string]SymbolID
	byName  map[string][]SymbolID // short name -> candidates, declaration order
}

// NewTable builds a table with an empty root namespace.
func NewTable(h Hints) *Table {
	t := &Table{
		Scopes:  NewScopes(h.Scopes),
		Symbols: NewSymbols(h.Symbols),
		byFQN:   make(map[string]SymbolID),
		byName:  make(map[string][]SymbolID),
	}
	t.root = t.Scopes.New("", "", NoScopeID)
	return t
}

// Root returns the global namespace.
func (t *Table) Root() ScopeID { return t.root }

// Namespace returns (creating as needed) the scope for a dotted path
// relative to parent. An empty path yields parent itself.
func (t *Table) Namespace(parent ScopeID, path string) ScopeID {
	if !parent.IsValid() {
		parent = t.root
	}
	if path == "" {
		return parent
	}
	cur := parent
	for _, part := range strings.Split(path, ".") {
		scope := t.Scopes.Get(cur)
		if child, ok := scope.Children[part]; ok {
			cur = child
			continue
		}
		cur = t.Scopes.New(part, scope.Qualify(part), cur)
	}
	return cur
}

// Lookup finds a symbol by exact FQN.
func (t *Table) Lookup(fqn string) SymbolID {
	return t.byFQN[fqn]
}

// Get returns the symbol for id, or nil.
func (t *Table) Get(id SymbolID) *Symbol { return t.Symbols.Get(id) }

// Entity returns the IR entity behind id, or nil.
func (t *Table) Entity(id SymbolID) *ir.Entity {
	if sym := t.Get(id); sym != nil {
		return sym.Entity
	}
	return nil
}

// DeclareStatus reports how Declare treated an explicit declaration.
type DeclareStatus uint8

const (
	// Declared: a new entry was created.
	Declared DeclareStatus = iota
	// Completed: an implicit entry was narrowed into the explicit one.
	Completed
	// Duplicate: an explicit entry of the same kind already exists.
	Duplicate
	// KindConflict: an explicit entry with another kind already exists.
	KindConflict
)

// Declare registers an explicit entity in scope. Explicit entries are never
// replaced: on Duplicate and KindConflict the original entry is returned
// untouched and the caller reports the diagnostic.
func (t *Table) Declare(scope ScopeID, e *ir.Entity, span source.Span) (SymbolID, DeclareStatus) {
	if !scope.IsValid() {
		scope = t.root
	}
	sc := t.Scopes.Get(scope)
	fqn := sc.Qualify(e.Name)
	if id, ok := t.byFQN[fqn]; ok {
		sym := t.Get(id)
		if sym.Implicit() {
			t.complete(sym, e, span)
			return id, Completed
		}
		if sym.Kind() != e.Kind {
			return id, KindConflict
		}
		return id, Duplicate
	}
	e.IsImplicit = false
	return t.insert(sc, scope, e, span), Declared
}

// Implicit returns the entry for fqn-in-scope, creating an implicit entity of
// the inferred kind when it is missing. An existing entry keeps its kind.
func (t *Table) Implicit(scope ScopeID, name string, kind ir.EntityKind, span source.Span) (SymbolID, bool) {
	if !scope.IsValid() {
		scope = t.root
	}
	ns, short := splitQualified(name)
	scope = t.Namespace(scope, ns)
	sc := t.Scopes.Get(scope)
	if id, ok := t.byFQN[sc.Qualify(short)]; ok {
		return id, false
	}
	e := &ir.Entity{
		Name:       short,
		Kind:       kind,
		IsImplicit: true,
		Properties: []*ir.Property{},
		Operations: []*ir.Operation{},
	}
	return t.insert(sc, scope, e, span), true
}

// complete narrows an implicit entry into an explicit declaration. The
// entity pointer stays stable so relationships built earlier still refer to it.
func (t *Table) complete(sym *Symbol, e *ir.Entity, span source.Span) {
	id, ns := sym.Entity.ID, sym.Entity.Namespace
	*sym.Entity = *e
	sym.Entity.ID, sym.Entity.Namespace = id, ns
	sym.Entity.IsImplicit = false
	sym.Span = span
}

func (t *Table) insert(sc *Scope, scope ScopeID, e *ir.Entity, span source.Span) SymbolID {
	fqn := sc.Qualify(e.Name)
	e.ID = fqn
	e.Namespace = sc.Path
	id := t.Symbols.New(&Symbol{
		FQN:    fqn,
		Name:   e.Name,
		Scope:  scope,
		Entity: e,
		Span:   span,
	})
	t.byFQN[fqn] = id
	t.byName[e.Name] = append(t.byName[e.Name], id)
	sc.Members[e.Name] = id
	sc.Order = append(sc.Order, id)
	return id
}

// Resolution is the outcome of a name lookup.
type Resolution struct {
	ID         SymbolID
	Candidates []SymbolID // populated when Ambiguous
	Ambiguous  bool
}

// Found reports whether the lookup bound to a symbol.
func (r Resolution) Found() bool { return r.ID.IsValid() }

// Resolve looks name up from scope outwards. A dotted name is tried relative
// to each enclosing scope, then as an FQN. An unqualified name missing from
// the scope chain falls back to a global search by short name: a single
// candidate binds, several bind to the first declared and set Ambiguous.
func (t *Table) Resolve(scope ScopeID, name string) Resolution {
	if !scope.IsValid() {
		scope = t.root
	}
	for cur := scope; cur.IsValid(); {
		sc := t.Scopes.Get(cur)
		if id, ok := t.byFQN[sc.Qualify(name)]; ok {
			return Resolution{ID: id}
		}
		cur = sc.Parent
	}
	if strings.Contains(name, ".") {
		return Resolution{}
	}
	cands := t.byName[name]
	switch len(cands) {
	case 0:
		return Resolution{}
	case 1:
		return Resolution{ID: cands[0]}
	}
	out := make([]SymbolID, len(cands))
	copy(out, cands)
	return Resolution{ID: cands[0], Candidates: out, Ambiguous: true}
}

// Entities returns every entity in declaration order.
func (t *Table) Entities() []*ir.Entity {
	data := t.Symbols.Data()
	out := make([]*ir.Entity, 0, len(data))
	for i := range data {
		out = append(out, data[i].Entity)
	}
	return out
}

// Len reports the number of entries.
func (t *Table) Len() int { return t.Symbols.Len() }

func splitQualified(name string) (ns, short string) {
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		return name[:i], name[i+1:]
	}
	return "", name
}
