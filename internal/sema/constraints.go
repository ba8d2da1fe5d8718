package sema

import (
	"strconv"

	"umlts/internal/ir"
	"umlts/internal/source"
)

type xorGroup struct {
	id      string
	span    source.Span
	members []string
}

// ConstraintRegistry owns the xor groups of one analysis. Registering the
// same group twice is a no-op, so each group yields one global constraint.
type ConstraintRegistry struct {
	groups []*xorGroup
	byID   map[string]*xorGroup
	auto   int
}

func NewConstraintRegistry() *ConstraintRegistry {
	return &ConstraintRegistry{byID: make(map[string]*xorGroup)}
}

// Group returns the id for a named group (registering it), or a fresh
// numbered id when name is empty.
func (r *ConstraintRegistry) Group(name string, sp source.Span) string {
	var id string
	if name == "" {
		r.auto++
		id = "xor_" + strconv.Itoa(r.auto)
		for r.byID[id] != nil {
			r.auto++
			id = "xor_" + strconv.Itoa(r.auto)
		}
	} else {
		id = xorGroupID(name)
	}
	if _, ok := r.byID[id]; !ok {
		g := &xorGroup{id: id, span: sp}
		r.groups = append(r.groups, g)
		r.byID[id] = g
	}
	return id
}

// AddMember records target as a member of group and returns the marker
// constraint the member carries.
func (r *ConstraintRegistry) AddMember(group, target string) *ir.Constraint {
	if g := r.byID[group]; g != nil {
		g.members = append(g.members, target)
	}
	return &ir.Constraint{Kind: ir.ConstraintXorMember, Targets: []string{group}}
}

// Members returns the recorded members of group.
func (r *ConstraintRegistry) Members(group string) []string {
	if g := r.byID[group]; g != nil {
		return g.members
	}
	return nil
}

// Len reports the number of groups.
func (r *ConstraintRegistry) Len() int { return len(r.groups) }

// Global returns one xor constraint per group, in registration order.
func (r *ConstraintRegistry) Global() []*ir.Constraint {
	out := make([]*ir.Constraint, 0, len(r.groups))
	for _, g := range r.groups {
		out = append(out, &ir.Constraint{Kind: ir.ConstraintXor, Targets: []string{g.id}})
	}
	return out
}
