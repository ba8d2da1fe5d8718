package sema

import (
	"fmt"

	"umlts/internal/ast"
	"umlts/internal/diag"
	"umlts/internal/ir"
	"umlts/internal/source"
	"umlts/internal/symbols"
)

// resolve walks relationships, xor blocks, notes and association classes.
func (s *session) resolve(body []ast.Statement, scope symbols.ScopeID) {
	for _, st := range body {
		switch n := st.(type) {
		case *ast.Package:
			ns, short := splitQualified(n.Name)
			s.resolve(n.Body, s.table.Namespace(s.table.Namespace(scope, ns), short))
		case *ast.Entity:
			d := s.declOf[n]
			if d == nil {
				continue // rejected duplicate
			}
			for _, h := range n.Headers {
				s.resolveRelationship(h, d.scope, d.id, "")
			}
		case *ast.AssociationClass:
			if d := s.declOf[n]; d != nil {
				s.resolveAssocClass(n, d)
			}
		case *ast.Relationship:
			s.resolveRelationship(n, scope, symbols.NoSymbolID, "")
		case *ast.Constraint:
			group := s.constraints.Group(n.Group, n.Span)
			for _, r := range n.Relationships {
				s.resolveRelationship(r, scope, symbols.NoSymbolID, group)
			}
		case *ast.Note:
			s.addNote(n, scope, "")
		}
	}
}

// endpoint resolves name, synthesizing an implicit entity whose kind is
// inferred from the other end when the name is unknown.
func (s *session) endpoint(scope symbols.ScopeID, name string, sp source.Span, sourceKind ir.EntityKind, rel ir.RelationshipKind) symbols.SymbolID {
	if id := s.lookup(scope, name, sp); id.IsValid() {
		return id
	}
	id, _ := s.table.Implicit(scope, name, s.inference.Infer(sourceKind, rel), sp)
	return id
}

// resolveRelationship emits one edge. from is the declaring entity for
// header relationships; group is the enclosing xor block, if any.
func (s *session) resolveRelationship(r *ast.Relationship, scope symbols.ScopeID, from symbols.SymbolID, group string) *ir.Relationship {
	kind := relKind(r.RelKind)
	if !from.IsValid() {
		from = s.endpoint(scope, r.From, r.FromSpan, "", ir.RelAssociation)
	}
	src := s.table.Get(from)
	to := s.endpoint(scope, r.To, r.ToSpan, src.Kind(), kind)

	rel := &ir.Relationship{
		From:             src.FQN,
		To:               s.table.Get(to).FQN,
		Kind:             kind,
		IsNavigable:      r.Navigable,
		FromMultiplicity: multiplicity(r.FromMult),
		ToMultiplicity:   multiplicity(r.ToMult),
		Label:            r.Label,
	}
	sp := r.Span
	if sp.Empty() {
		sp = r.ToSpan
	}
	s.addRelationship(rel, sp)

	if group == "" && r.XorGroup != "" {
		group = s.constraints.Group(r.XorGroup, r.Span)
	}
	if group != "" {
		rel.Constraints = append(rel.Constraints, s.constraints.AddMember(group, rel.ID))
	}
	return rel
}

// resolveAssocClass links the two participants with one bidirectional edge
// carrying the association class id.
func (s *session) resolveAssocClass(n *ast.AssociationClass, d *decl) {
	self := s.table.Get(d.id)
	if len(n.Participants) != 2 {
		diag.ReportError(s.reporter, diag.SemaInvalidAssocArity, n.NameSpan,
			fmt.Sprintf("association class %q must have exactly 2 participants, got %d", self.Name, len(n.Participants))).Emit()
		return
	}

	var ends [2]*symbols.Symbol
	for i, p := range n.Participants {
		id := s.endpoint(d.scope, p.Name, p.Span, ir.KindAssociationClass, ir.RelAssociation)
		ends[i] = s.table.Get(id)
		from := id
		for _, r := range p.Chain {
			next := s.resolveRelationship(r, d.scope, from, "")
			from = s.table.Lookup(next.To)
		}
	}

	s.addRelationship(&ir.Relationship{
		From:               ends[0].FQN,
		To:                 ends[1].FQN,
		Kind:               ir.RelBidirectional,
		IsNavigable:        true,
		FromMultiplicity:   multiplicity(n.Participants[0].Multiplicity),
		ToMultiplicity:     multiplicity(n.Participants[1].Multiplicity),
		AssociationClassID: self.FQN,
	}, n.NameSpan)
}
