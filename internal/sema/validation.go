package sema

import (
	"umlts/internal/diag"
	"umlts/internal/ir"
	"umlts/internal/source"
)

// RuleContext is what a validation rule may see. Rules report through it
// and must not mutate the diagram.
type RuleContext struct {
	Reporter diag.Reporter
	// EntitySpan returns the declaration span of an entity, if known.
	EntitySpan func(id string) source.Span
	// RelationshipSpan returns the source span of a relationship, if known.
	RelationshipSpan func(r *ir.Relationship) source.Span
}

// EntitySubject is an entity as seen by entity rules.
type EntitySubject struct {
	Entity *ir.Entity
	Span   source.Span
}

// RelationshipSubject carries a relationship with its resolved endpoints.
type RelationshipSubject struct {
	Rel      *ir.Relationship
	From, To *ir.Entity
	Span     source.Span
}

type EntityRule interface {
	Name() string
	CheckEntity(ctx *RuleContext, subj EntitySubject)
}

type RelationshipRule interface {
	Name() string
	CheckRelationship(ctx *RuleContext, subj RelationshipSubject)
}

type DiagramRule interface {
	Name() string
	CheckDiagram(ctx *RuleContext, d *ir.Diagram)
}

// Engine holds validation rules keyed by target.
type Engine struct {
	entity       []EntityRule
	relationship []RelationshipRule
	diagram      []DiagramRule
}

// NewEngine returns an engine with the built-in rules.
func NewEngine() *Engine {
	e := NewEmptyEngine()
	e.AddEntityRule(abstractLeafRule{})
	e.AddRelationshipRule(inheritanceKindRule{})
	e.AddRelationshipRule(inheritanceTargetRule{})
	e.AddRelationshipRule(rootParentRule{})
	e.AddRelationshipRule(realizationRule{})
	e.AddRelationshipRule(enumWholeRule{})
	e.AddRelationshipRule(packageTargetRule{})
	e.AddDiagramRule(cycleRule{})
	return e
}

// NewEmptyEngine returns an engine without rules.
func NewEmptyEngine() *Engine { return &Engine{} }

func (e *Engine) AddEntityRule(r EntityRule)             { e.entity = append(e.entity, r) }
func (e *Engine) AddRelationshipRule(r RelationshipRule) { e.relationship = append(e.relationship, r) }
func (e *Engine) AddDiagramRule(r DiagramRule)           { e.diagram = append(e.diagram, r) }

// Rules lists rule names by target, for dumps.
func (e *Engine) Rules() map[string][]string {
	out := map[string][]string{}
	for _, r := range e.entity {
		out["entity"] = append(out["entity"], r.Name())
	}
	for _, r := range e.relationship {
		out["relationship"] = append(out["relationship"], r.Name())
	}
	for _, r := range e.diagram {
		out["diagram"] = append(out["diagram"], r.Name())
	}
	return out
}

func (e *Engine) checkEntity(ctx *RuleContext, subj EntitySubject) {
	for _, r := range e.entity {
		r.CheckEntity(ctx, subj)
	}
}

func (e *Engine) checkRelationship(ctx *RuleContext, subj RelationshipSubject) {
	if subj.From == nil || subj.To == nil {
		return
	}
	for _, r := range e.relationship {
		r.CheckRelationship(ctx, subj)
	}
}

func (e *Engine) checkDiagram(ctx *RuleContext, d *ir.Diagram) {
	for _, r := range e.diagram {
		r.CheckDiagram(ctx, d)
	}
}

func (s *session) ruleContext() *RuleContext {
	return &RuleContext{
		Reporter: s.reporter,
		EntitySpan: func(id string) source.Span {
			if sym := s.table.Get(s.table.Lookup(id)); sym != nil {
				return sym.Span
			}
			return source.Span{}
		},
		RelationshipSpan: func(r *ir.Relationship) source.Span {
			return s.relSpan[r]
		},
	}
}
