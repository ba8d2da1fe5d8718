package ast

import (
	"strings"

	"umlts/internal/source"
)

// Visibility описывает доступность члена.
type Visibility uint8

const (
	VisNone Visibility = iota
	VisPublic
	VisPrivate
	VisProtected
	VisPackage
)

func (v Visibility) String() string {
	switch v {
	case VisPublic:
		return "public"
	case VisPrivate:
		return "private"
	case VisProtected:
		return "protected"
	case VisPackage:
		return "package"
	default:
		return ""
	}
}

// Attribute is a field: `+name?: Type[0..1] = value {xor: g}`.
type Attribute struct {
	Base
	Name         string
	NameSpan     source.Span
	Visibility   Visibility
	Modifiers    Modifiers
	Optional     bool
	Type         *TypeAnnotation
	Multiplicity *Multiplicity
	Default      string
	XorGroup     string
	Doc          string
}

func (*Attribute) Kind() NodeKind { return NodeAttribute }
func (*Attribute) memberNode()    {}

// Method is an operation: `+name(p: T): R`.
type Method struct {
	Base
	Name       string
	NameSpan   source.Span
	Visibility Visibility
	Modifiers  Modifiers
	Params     []*Parameter
	ReturnType *TypeAnnotation
	XorGroup   string
	Doc        string
}

func (*Method) Kind() NodeKind { return NodeMethod }
func (*Method) memberNode()    {}

type Parameter struct {
	Base
	Name    string
	Type    *TypeAnnotation
	Default string
}

func (*Parameter) Kind() NodeKind { return NodeParameter }

// EnumLiteral is a bare name inside an enum body.
type EnumLiteral struct {
	Base
	Name string
	Doc  string
}

func (*EnumLiteral) Kind() NodeKind { return NodeEnumLiteral }
func (*EnumLiteral) memberNode()    {}

type TypeKind uint8

const (
	TypeSimple TypeKind = iota
	TypeGeneric
	TypeArray
	TypeEnumLiteral
	TypeUnion
)

// TypeAnnotation is a member or parameter type.
//
//	Simple:      Name
//	Generic:     Name<Args...>
//	Array:       Elem[]
//	EnumLiteral: Name(Literals...)
//	Union:       Args[0] | Args[1] | ...   (always flat)
type TypeAnnotation struct {
	Base
	TypeKind TypeKind
	Name     string
	Args     []*TypeAnnotation
	Elem     *TypeAnnotation
	Literals []string
	Optional bool
}

func (*TypeAnnotation) Kind() NodeKind { return NodeTypeAnnotation }

// BaseName returns the classifier name the type refers to: the element for
// arrays, the base for generics.
func (t *TypeAnnotation) BaseName() string {
	if t == nil {
		return ""
	}
	if t.TypeKind == TypeArray {
		return t.Elem.BaseName()
	}
	return t.Name
}

func (t *TypeAnnotation) String() string {
	if t == nil {
		return ""
	}
	var s string
	switch t.TypeKind {
	case TypeGeneric:
		args := make([]string, len(t.Args))
		for i, a := range t.Args {
			args[i] = a.String()
		}
		s = t.Name + "<" + strings.Join(args, ", ") + ">"
	case TypeArray:
		s = t.Elem.String() + "[]"
	case TypeEnumLiteral:
		s = t.Name + "(" + strings.Join(t.Literals, " | ") + ")"
	case TypeUnion:
		parts := make([]string, len(t.Args))
		for i, a := range t.Args {
			parts[i] = a.String()
		}
		s = strings.Join(parts, " | ")
	default:
		s = t.Name
	}
	if t.Optional {
		s += "?"
	}
	return s
}
