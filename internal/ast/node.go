package ast

import (
	"umlts/internal/source"
)

type NodeKind uint8

const (
	NodeInvalid NodeKind = iota
	NodeProgram
	NodePackage
	NodeEntity
	NodeAssociationClass
	NodeParticipant
	NodeRelationship
	NodeAttribute
	NodeMethod
	NodeParameter
	NodeEnumLiteral
	NodeTypeAnnotation
	NodeComment
	NodeDocComment
	NodeConstraint
	NodeNote
	NodeAnchor
	NodeConfig
)

var nodeKindNames = [...]string{
	NodeInvalid:          "Invalid",
	NodeProgram:          "Program",
	NodePackage:          "Package",
	NodeEntity:           "Entity",
	NodeAssociationClass: "AssociationClass",
	NodeParticipant:      "Participant",
	NodeRelationship:     "Relationship",
	NodeAttribute:        "Attribute",
	NodeMethod:           "Method",
	NodeParameter:        "Parameter",
	NodeEnumLiteral:      "EnumLiteral",
	NodeTypeAnnotation:   "TypeAnnotation",
	NodeComment:          "Comment",
	NodeDocComment:       "DocComment",
	NodeConstraint:       "Constraint",
	NodeNote:             "Note",
	NodeAnchor:           "Anchor",
	NodeConfig:           "Config",
}

func (k NodeKind) String() string {
	if int(k) < len(nodeKindNames) {
		return nodeKindNames[k]
	}
	return "Invalid"
}

// Node is implemented by every syntax tree node.
type Node interface {
	Kind() NodeKind
	Pos() source.Span
}

// Statement is a node allowed at top level or inside a package.
type Statement interface {
	Node
	stmtNode()
}

// Member is a node allowed inside an entity body.
type Member interface {
	Node
	memberNode()
}

// Base carries the span shared by all nodes.
type Base struct {
	Span source.Span
}

func (b *Base) Pos() source.Span { return b.Span }
