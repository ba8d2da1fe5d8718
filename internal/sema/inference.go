package sema

import "umlts/internal/ir"

type inferenceKey struct {
	source ir.EntityKind
	rel    ir.RelationshipKind
}

// InferenceTable picks the kind of an implicit relationship target from the
// source kind and the relationship kind.
type InferenceTable struct {
	rules    map[inferenceKey]ir.EntityKind
	fallback ir.EntityKind
}

// NewInferenceTable returns an empty table that always infers fallback.
func NewInferenceTable(fallback ir.EntityKind) *InferenceTable {
	return &InferenceTable{rules: make(map[inferenceKey]ir.EntityKind), fallback: fallback}
}

// DefaultInference returns the built-in table.
func DefaultInference() *InferenceTable {
	t := NewInferenceTable(ir.KindClass)
	t.Set(ir.KindClass, ir.RelRealization, ir.KindInterface)
	t.Set(ir.KindInterface, ir.RelGeneralization, ir.KindInterface)
	t.Set(ir.KindEnum, ir.RelRealization, ir.KindInterface)
	t.Set(ir.KindDataType, ir.RelRealization, ir.KindInterface)
	t.Set(ir.KindAssociationClass, ir.RelRealization, ir.KindInterface)
	t.Set(ir.KindDataType, ir.RelGeneralization, ir.KindDataType)
	return t
}

// Set registers (or replaces) one inference rule.
func (t *InferenceTable) Set(source ir.EntityKind, rel ir.RelationshipKind, target ir.EntityKind) {
	t.rules[inferenceKey{source, rel}] = target
}

// Infer returns the kind for a target reached from a source of kind source
// over rel. Unknown pairs yield the fallback.
func (t *InferenceTable) Infer(source ir.EntityKind, rel ir.RelationshipKind) ir.EntityKind {
	if k, ok := t.rules[inferenceKey{source, rel}]; ok {
		return k
	}
	return t.fallback
}
