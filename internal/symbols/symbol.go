package symbols

import (
	"umlts/internal/ir"
	"umlts/internal/source"
)

// Symbol is a table entry. Entity is the IR value being built up by the
// analysis passes; the table owns the pointer until emission.
type Symbol struct {
	FQN    string
	Name   string
	Scope  ScopeID
	Entity *ir.Entity
	Span   source.Span
}

// Kind returns the entity kind.
func (s *Symbol) Kind() ir.EntityKind {
	if s == nil || s.Entity == nil {
		return ""
	}
	return s.Entity.Kind
}

// Implicit reports whether the entry was synthesized from a reference.
func (s *Symbol) Implicit() bool {
	return s != nil && s.Entity != nil && s.Entity.IsImplicit
}
