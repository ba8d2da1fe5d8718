package sema

import (
	"strings"

	"umlts/internal/ast"
	"umlts/internal/ir"
)

func entityKind(k ast.EntityKind) ir.EntityKind {
	switch k {
	case ast.EntityInterface:
		return ir.KindInterface
	case ast.EntityEnum:
		return ir.KindEnum
	case ast.EntityDataType:
		return ir.KindDataType
	default:
		return ir.KindClass
	}
}

func relKind(k ast.RelKind) ir.RelationshipKind {
	switch k {
	case ast.RelComposition:
		return ir.RelComposition
	case ast.RelAggregation:
		return ir.RelAggregation
	case ast.RelGeneralization:
		return ir.RelGeneralization
	case ast.RelRealization:
		return ir.RelRealization
	case ast.RelDependency:
		return ir.RelDependency
	case ast.RelBidirectional:
		return ir.RelBidirectional
	default:
		return ir.RelAssociation
	}
}

func multiplicity(m *ast.Multiplicity) *ir.Multiplicity {
	if m == nil {
		return nil
	}
	return &ir.Multiplicity{Lower: m.Lower, Upper: m.Upper}
}

var manyMult = ir.Multiplicity{Lower: 0, Upper: ir.Many}

// splitQualified splits "a.b.C" into ("a.b", "C").
func splitQualified(name string) (ns, short string) {
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		return name[:i], name[i+1:]
	}
	return "", name
}

func xorGroupID(name string) string {
	return "xor_" + name
}
