package sema

import (
	"fmt"

	"umlts/internal/ast"
	"umlts/internal/diag"
	"umlts/internal/ir"
	"umlts/internal/source"
	"umlts/internal/symbols"
)

// KnownConfigKeys are accepted in `config {}` blocks and directives without a
// warning. Unknown keys are still stored.
var KnownConfigKeys = map[string]struct{}{
	"language":  {},
	"theme":     {},
	"direction": {},
	"layout":    {},
	"title":     {},
}

// discover registers packages and classifiers of body under scope.
func (s *session) discover(body []ast.Statement, scope symbols.ScopeID) {
	for _, st := range body {
		switch n := st.(type) {
		case *ast.Package:
			s.discoverPackage(n, scope)
		case *ast.Entity:
			s.discoverEntity(n, scope)
		case *ast.AssociationClass:
			s.discoverAssocClass(n, scope)
		case *ast.Config:
			s.storeConfig(n)
		}
	}
}

func (s *session) discoverPackage(pkg *ast.Package, scope symbols.ScopeID) {
	ns, short := splitQualified(pkg.Name)
	parent := s.table.Namespace(scope, ns)
	e := &ir.Entity{
		Name:       short,
		Kind:       ir.KindPackage,
		Doc:        pkg.Doc,
		Line:       s.line(pkg.NameSpan),
		Properties: []*ir.Property{},
		Operations: []*ir.Operation{},
	}
	id, status := s.table.Declare(parent, e, pkg.NameSpan)
	switch status {
	case symbols.Duplicate:
		// reopened package
	case symbols.KindConflict:
		s.reportKindConflict(pkg.NameSpan, id, ir.KindPackage)
	}
	s.discover(pkg.Body, s.table.Namespace(parent, short))
}

func (s *session) discoverEntity(n *ast.Entity, scope symbols.ScopeID) {
	e := &ir.Entity{
		Kind:           entityKind(n.EntityKind),
		IsAbstract:     n.Modifiers.Abstract,
		IsLeaf:         n.Modifiers.Leaf,
		IsFinal:        n.Modifiers.Final,
		IsRoot:         n.Modifiers.Root,
		IsStatic:       n.Modifiers.Static,
		TypeParameters: n.TypeParams,
		Doc:            n.Doc,
		Line:           s.line(n.NameSpan),
	}
	if n.AliasOf != nil {
		e.AliasOf = n.AliasOf.String()
	}
	s.declare(n, n.Name, n.NameSpan, e, scope, n.TypeParams)
}

func (s *session) discoverAssocClass(n *ast.AssociationClass, scope symbols.ScopeID) {
	e := &ir.Entity{
		Kind:       ir.KindAssociationClass,
		IsAbstract: n.Modifiers.Abstract,
		IsLeaf:     n.Modifiers.Leaf,
		IsFinal:    n.Modifiers.Final,
		IsRoot:     n.Modifiers.Root,
		IsStatic:   n.Modifiers.Static,
		Doc:        n.Doc,
		Line:       s.line(n.NameSpan),
	}
	s.declare(n, n.Name, n.NameSpan, e, scope, nil)
}

func (s *session) declare(node ast.Node, name string, sp source.Span, e *ir.Entity, scope symbols.ScopeID, params []string) {
	ns, short := splitQualified(name)
	scope = s.table.Namespace(scope, ns)
	e.Name = short
	e.Properties = []*ir.Property{}
	e.Operations = []*ir.Operation{}

	id, status := s.table.Declare(scope, e, sp)
	switch status {
	case symbols.Duplicate:
		diag.ReportError(s.reporter, diag.SemaDuplicateDefinition, sp,
			fmt.Sprintf("duplicate definition of %q", s.table.Get(id).FQN)).
			WithNote(s.table.Get(id).Span, "previously declared here").
			Emit()
		return
	case symbols.KindConflict:
		s.reportKindConflict(sp, id, e.Kind)
		return
	}

	d := &decl{node: node, id: id, scope: scope}
	if len(params) > 0 {
		d.params = make(map[string]struct{}, len(params))
		for _, p := range params {
			d.params[p] = struct{}{}
		}
	}
	s.decls = append(s.decls, d)
	s.declOf[node] = d

	s.rules.checkEntity(s.ruleContext(), EntitySubject{Entity: s.table.Entity(id), Span: sp})
}

func (s *session) reportKindConflict(sp source.Span, id symbols.SymbolID, kind ir.EntityKind) {
	sym := s.table.Get(id)
	diag.ReportError(s.reporter, diag.SemaKindConflict, sp,
		fmt.Sprintf("%q is already declared as %s, cannot redeclare as %s", sym.FQN, kindLabel(sym.Kind()), kindLabel(kind))).
		WithNote(sym.Span, "previously declared here").
		Emit()
}

func (s *session) storeConfig(c *ast.Config) {
	for _, entry := range c.Entries {
		if _, ok := KnownConfigKeys[entry.Key]; !ok {
			diag.ReportWarning(s.reporter, diag.SemaUnknownConfigKey, entry.Span,
				fmt.Sprintf("unknown config key %q", entry.Key)).Emit()
		}
		s.config[entry.Key] = entry.Value
	}
}
