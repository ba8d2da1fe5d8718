package sema

import (
	"fmt"
	"slices"
	"strings"

	"umlts/internal/ast"
	"umlts/internal/diag"
	"umlts/internal/ir"
	"umlts/internal/source"
	"umlts/internal/symbols"
)

// define attaches members to every accepted declaration.
func (s *session) define() {
	for _, d := range s.decls {
		var members []ast.Member
		switch n := d.node.(type) {
		case *ast.Entity:
			members = n.Members
		case *ast.AssociationClass:
			members = n.Members
		}
		o := &owner{decl: d, entity: s.table.Entity(d.id), seen: make(map[string]source.Span)}
		s.defineMembers(o, members, "")
	}
}

// owner is the classifier whose body is being defined.
type owner struct {
	*decl
	entity *ir.Entity
	seen   map[string]source.Span // attribute names
}

func (s *session) defineMembers(o *owner, members []ast.Member, group string) {
	for _, m := range members {
		switch n := m.(type) {
		case *ast.Attribute:
			s.defineAttribute(o, n, group)
		case *ast.Method:
			s.defineMethod(o, n, group)
		case *ast.EnumLiteral:
			o.entity.Literals = append(o.entity.Literals, n.Name)
		case *ast.Constraint:
			id := s.constraints.Group(n.Group, n.Span)
			s.defineMembers(o, n.Members, id)
		case *ast.Note:
			s.addNote(n, o.scope, o.entity.ID)
		}
	}
}

func (s *session) defineAttribute(o *owner, a *ast.Attribute, group string) {
	if prev, dup := o.seen[a.Name]; dup {
		diag.ReportWarning(s.reporter, diag.SemaDuplicateMember, a.NameSpan,
			fmt.Sprintf("%q already has an attribute named %q", o.entity.Name, a.Name)).
			WithNote(prev, "previous attribute here").
			Emit()
	} else {
		o.seen[a.Name] = a.NameSpan
	}

	p := &ir.Property{
		Name:         a.Name,
		Type:         a.Type.String(),
		Visibility:   a.Visibility.String(),
		IsStatic:     a.Modifiers.Static,
		IsOptional:   a.Optional || (a.Type != nil && a.Type.Optional),
		Multiplicity: multiplicity(a.Multiplicity),
		DefaultValue: a.Default,
		Doc:          a.Doc,
	}
	o.entity.Properties = append(o.entity.Properties, p)

	if group == "" && a.XorGroup != "" {
		group = s.constraints.Group(a.XorGroup, a.NameSpan)
	}
	target := o.entity.ID + "." + a.Name
	if group != "" {
		p.Constraints = append(p.Constraints, s.constraints.AddMember(group, target))
	}

	rels := s.typeRelationships(o, a.Type, a.Multiplicity, a.Optional, a.Name, a.NameSpan)
	if group != "" {
		for _, r := range rels {
			r.Constraints = append(r.Constraints, &ir.Constraint{Kind: ir.ConstraintXorMember, Targets: []string{group}})
		}
	}
	if a.Type != nil && a.Type.TypeKind == ast.TypeUnion && group == "" && len(rels) > 1 {
		// a union of classifiers is an exclusive choice: xor_<Owner>.<attr>
		id := s.constraints.Group(o.entity.ID+"."+a.Name, a.NameSpan)
		for _, r := range rels {
			r.Constraints = append(r.Constraints, s.constraints.AddMember(id, r.ID))
		}
	}
}

func (s *session) defineMethod(o *owner, m *ast.Method, group string) {
	op := &ir.Operation{
		Name:       m.Name,
		Visibility: m.Visibility.String(),
		IsStatic:   m.Modifiers.Static,
		IsAbstract: m.Modifiers.Abstract,
		Parameters: make([]*ir.Parameter, 0, len(m.Params)),
		ReturnType: m.ReturnType.String(),
		Doc:        m.Doc,
	}
	if group == "" && m.XorGroup != "" {
		group = s.constraints.Group(m.XorGroup, m.NameSpan)
	}
	if group != "" {
		op.Constraints = append(op.Constraints, s.constraints.AddMember(group, o.entity.ID+"."+m.Name+"()"))
	}
	for _, p := range m.Params {
		op.Parameters = append(op.Parameters, &ir.Parameter{Name: p.Name, Type: p.Type.String(), DefaultValue: p.Default})
		s.dependencies(o, p.Type, p.Span)
	}
	s.dependencies(o, m.ReturnType, m.NameSpan)
	o.entity.Operations = append(o.entity.Operations, op)
}

// dependencies adds one dependency edge per non-primitive classifier used
// by an operation signature.
func (s *session) dependencies(o *owner, t *ast.TypeAnnotation, sp source.Span) {
	for _, ref := range s.typeTargets(o, t, sp) {
		if ref.fqn == o.entity.ID {
			continue
		}
		s.addUnique(&ir.Relationship{
			From:        o.entity.ID,
			To:          ref.fqn,
			Kind:        ir.RelDependency,
			IsNavigable: true,
		}, sp)
	}
}

// typeRelationships adds association edges for an attribute type and
// returns them in type order.
func (s *session) typeRelationships(o *owner, t *ast.TypeAnnotation, m *ast.Multiplicity, optional bool, label string, sp source.Span) []*ir.Relationship {
	var out []*ir.Relationship
	for _, ref := range s.typeTargets(o, t, sp) {
		mult := multiplicity(m)
		switch {
		case mult != nil:
		case ref.many:
			mm := manyMult
			mult = &mm
		case optional || (t != nil && t.Optional):
			mult = &ir.Multiplicity{Lower: 0, Upper: 1}
		}
		out = append(out, s.addRelationship(&ir.Relationship{
			From:           o.entity.ID,
			To:             ref.fqn,
			Kind:           ir.RelAssociation,
			IsNavigable:    true,
			ToMultiplicity: mult,
			Label:          label,
		}, sp))
	}
	return out
}

type typeTarget struct {
	fqn  string
	many bool
}

// typeTargets flattens t into the classifiers it refers to, creating
// implicit entities for unknown names.
func (s *session) typeTargets(o *owner, t *ast.TypeAnnotation, sp source.Span) []typeTarget {
	if t == nil {
		return nil
	}
	var out []typeTarget
	var walk func(t *ast.TypeAnnotation, many bool)
	walk = func(t *ast.TypeAnnotation, many bool) {
		if t == nil {
			return
		}
		switch t.TypeKind {
		case ast.TypeUnion:
			for _, arm := range t.Args {
				walk(arm, many)
			}
			return
		case ast.TypeArray:
			walk(t.Elem, true)
			return
		case ast.TypeEnumLiteral:
			out = append(out, typeTarget{fqn: s.inlineEnum(o, t, sp), many: many})
			return
		}
		if _, isParam := o.params[t.Name]; isParam {
			return
		}
		res := s.types.Resolve(TypeQuery{Type: t, Scope: o.scope, Span: sp})
		switch {
		case res == nil:
			if s.types.IsPrimitive(t.Name) {
				return
			}
			id, _ := s.table.Implicit(o.scope, t.BaseName(), ir.KindClass, sp)
			out = append(out, typeTarget{fqn: s.table.Get(id).FQN, many: many})
		case res.Primitive:
		case res.Elem != nil:
			walk(res.Elem, true)
		case len(res.Elems) > 0:
			for _, arg := range res.Elems {
				walk(arg, true)
			}
		case res.FQN != "":
			out = append(out, typeTarget{fqn: res.FQN, many: many})
		}
	}
	walk(t, false)
	return out
}

// inlineEnum synthesizes the enum behind `status: Status(OPEN | CLOSED)`.
// A later inline enum with the same name keeps the first literal list; a
// different list, or a name taken by a non-enum classifier, is reported.
func (s *session) inlineEnum(o *owner, t *ast.TypeAnnotation, sp source.Span) string {
	id, created := s.table.Implicit(o.scope, t.Name, ir.KindEnum, sp)
	e := s.table.Entity(id)
	switch {
	case e.Kind != ir.KindEnum:
		diag.ReportWarning(s.reporter, diag.SemaInlineEnumConflict, t.Span,
			fmt.Sprintf("inline enum %q names %s %q, literals ignored", t.Name, kindLabel(e.Kind), e.ID)).
			WithNote(s.table.Get(id).Span, "declared here").
			Emit()
	case !e.IsImplicit:
		// declared enum: its own body lists the literals
	case created || len(e.Literals) == 0:
		e.Literals = append(e.Literals, t.Literals...)
	case !slices.Equal(e.Literals, t.Literals):
		diag.ReportWarning(s.reporter, diag.SemaInlineEnumConflict, t.Span,
			fmt.Sprintf("inline enum %q lists %s, but %q already has %s",
				t.Name, strings.Join(t.Literals, " | "), e.ID, strings.Join(e.Literals, " | "))).
			WithNote(s.table.Get(id).Span, "first defined here").
			Emit()
	}
	return e.ID
}

func (s *session) addNote(n *ast.Note, scope symbols.ScopeID, owner string) {
	s.noteSeq++
	id := n.Name
	if id == "" {
		id = fmt.Sprintf("note_%d", s.noteSeq)
	}
	s.notes = append(s.notes, &ir.Note{ID: id, Text: n.Text})
	if owner != "" {
		s.anchors = append(s.anchors, &ir.Anchor{From: id, To: owner})
	}
	for _, a := range n.Anchors {
		to := a.Target
		if found := s.lookup(scope, a.Target, a.Span); found.IsValid() {
			to = s.table.Get(found).FQN
		}
		s.anchors = append(s.anchors, &ir.Anchor{From: id, To: to})
	}
}

// lookup resolves name from scope, warning on ambiguity.
func (s *session) lookup(scope symbols.ScopeID, name string, sp source.Span) symbols.SymbolID {
	res := s.table.Resolve(scope, name)
	if res.Ambiguous {
		b := diag.ReportWarning(s.reporter, diag.SemaAmbiguousEntity, sp,
			fmt.Sprintf("%q is ambiguous, using %q", name, s.table.Get(res.ID).FQN))
		for _, c := range res.Candidates[1:] {
			sym := s.table.Get(c)
			b.WithNote(sym.Span, "also declared as "+sym.FQN)
		}
		b.Emit()
	}
	return res.ID
}
