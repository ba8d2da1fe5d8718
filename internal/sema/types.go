package sema

import (
	"strings"

	"umlts/internal/ast"
	"umlts/internal/source"
	"umlts/internal/symbols"
)

// DefaultPrimitives are active when no language plugin is selected.
var DefaultPrimitives = []string{
	"string", "int", "integer", "float", "double", "number",
	"boolean", "bool", "void", "any", "date",
}

// TypeQuery is one type reference to resolve.
type TypeQuery struct {
	Type  *ast.TypeAnnotation
	Scope symbols.ScopeID
	Span  source.Span
}

// TypeResolution is a strategy's answer.
//
// Exactly one of Primitive, FQN, Elem or Elems is meaningful: a primitive
// produces no relationship, an FQN names the target classifier, and Elem or
// Elems redirect resolution to the types held by a container.
type TypeResolution struct {
	Primitive bool
	FQN       string
	Elem      *ast.TypeAnnotation
	Elems     []*ast.TypeAnnotation
}

// TypeStrategy is one step of the type resolution pipeline.
type TypeStrategy interface {
	// Resolve returns nil when the strategy has no opinion.
	Resolve(q TypeQuery) *TypeResolution
	IsPrimitive(name string) bool
}

// Pipeline tries strategies in order.
type Pipeline struct {
	strategies []TypeStrategy
}

func NewPipeline(strategies ...TypeStrategy) *Pipeline {
	return &Pipeline{strategies: strategies}
}

// Resolve returns the first non-nil resolution.
func (p *Pipeline) Resolve(q TypeQuery) *TypeResolution {
	for _, st := range p.strategies {
		if r := st.Resolve(q); r != nil {
			return r
		}
	}
	return nil
}

// IsPrimitive is true when any strategy declares name primitive, so no
// strategy can shadow a primitive contributed by another.
func (p *Pipeline) IsPrimitive(name string) bool {
	for _, st := range p.strategies {
		if st.IsPrimitive(name) {
			return true
		}
	}
	return false
}

// PrimitiveStrategy answers for a fixed set of names, case-insensitively.
type PrimitiveStrategy struct {
	names map[string]struct{}
}

func NewPrimitiveStrategy(names ...string) *PrimitiveStrategy {
	st := &PrimitiveStrategy{names: make(map[string]struct{}, len(names))}
	for _, n := range names {
		st.names[strings.ToLower(n)] = struct{}{}
	}
	return st
}

func (st *PrimitiveStrategy) IsPrimitive(name string) bool {
	_, ok := st.names[strings.ToLower(name)]
	return ok
}

func (st *PrimitiveStrategy) Resolve(q TypeQuery) *TypeResolution {
	if q.Type == nil || q.Type.TypeKind != ast.TypeSimple {
		return nil
	}
	if st.IsPrimitive(q.Type.Name) {
		return &TypeResolution{Primitive: true}
	}
	return nil
}

// CollectionStrategy maps `Name<T>` for the listed names to its element T.
type CollectionStrategy struct {
	names map[string]struct{}
}

func NewCollectionStrategy(names ...string) *CollectionStrategy {
	st := &CollectionStrategy{names: make(map[string]struct{}, len(names))}
	for _, n := range names {
		st.names[n] = struct{}{}
	}
	return st
}

func (st *CollectionStrategy) IsPrimitive(string) bool { return false }

func (st *CollectionStrategy) Resolve(q TypeQuery) *TypeResolution {
	t := q.Type
	if t == nil || t.TypeKind != ast.TypeGeneric || len(t.Args) != 1 {
		return nil
	}
	if _, ok := st.names[t.Name]; !ok {
		return nil
	}
	return &TypeResolution{Elem: t.Args[0]}
}

// genericStrategy treats every generic as a container: `Array<T>` behaves
// like T[], and `Map<K, V>` contributes each of its arguments. The generic's
// own name never becomes a classifier.
type genericStrategy struct{}

func (genericStrategy) IsPrimitive(string) bool { return false }

func (genericStrategy) Resolve(q TypeQuery) *TypeResolution {
	t := q.Type
	if t == nil || t.TypeKind != ast.TypeGeneric || len(t.Args) == 0 {
		return nil
	}
	if len(t.Args) == 1 {
		return &TypeResolution{Elem: t.Args[0]}
	}
	return &TypeResolution{Elems: t.Args}
}

// symbolStrategy binds names declared in the symbol table.
type symbolStrategy struct{ s *session }

func (symbolStrategy) IsPrimitive(string) bool { return false }

func (st symbolStrategy) Resolve(q TypeQuery) *TypeResolution {
	if q.Type == nil {
		return nil
	}
	name := q.Type.BaseName()
	if name == "" {
		return nil
	}
	if id := st.s.lookup(q.Scope, name, q.Span); id.IsValid() {
		return &TypeResolution{FQN: st.s.table.Get(id).FQN}
	}
	return nil
}
