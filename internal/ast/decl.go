package ast

import (
	"umlts/internal/diag"
	"umlts/internal/source"
)

// Program is the root of a parsed source file.
type Program struct {
	Base
	File source.FileID
	Body []Statement
	// Diagnostics produced while parsing, in source order.
	Diagnostics []diag.Diagnostic
}

func (*Program) Kind() NodeKind { return NodeProgram }

// Package groups statements under a (possibly dotted) name.
type Package struct {
	Base
	Name     string
	NameSpan source.Span
	Body     []Statement
	Doc      string
}

func (*Package) Kind() NodeKind { return NodePackage }
func (*Package) stmtNode()      {}

type EntityKind uint8

const (
	EntityClass EntityKind = iota
	EntityInterface
	EntityEnum
	EntityDataType
)

func (k EntityKind) String() string {
	switch k {
	case EntityInterface:
		return "interface"
	case EntityEnum:
		return "enum"
	case EntityDataType:
		return "datatype"
	default:
		return "class"
	}
}

// Modifiers collects classifier and member modifiers.
type Modifiers struct {
	Abstract bool
	Static   bool
	Final    bool
	Leaf     bool
	Root     bool
}

// Any reports whether at least one modifier is set.
func (m Modifiers) Any() bool {
	return m.Abstract || m.Static || m.Final || m.Leaf || m.Root
}

// Entity is a class, interface, enum or datatype declaration.
type Entity struct {
	Base
	EntityKind EntityKind
	Name       string
	NameSpan   source.Span
	TypeParams []string
	Modifiers  Modifiers
	// Headers are relationships written after the name: `class A >> B, C`.
	// Their From is the entity itself.
	Headers []*Relationship
	Members []Member
	// AliasOf is set for datatype aliases declared by language plugins.
	AliasOf *TypeAnnotation
	Doc     string
}

func (*Entity) Kind() NodeKind { return NodeEntity }
func (*Entity) stmtNode()      {}

// AssociationClass is `class C <> (A[1], B[*]) { ... }`.
type AssociationClass struct {
	Base
	Name         string
	NameSpan     source.Span
	Modifiers    Modifiers
	Participants []*Participant
	Members      []Member
	Doc          string
}

func (*AssociationClass) Kind() NodeKind { return NodeAssociationClass }
func (*AssociationClass) stmtNode()      {}

// Participant is one endpoint of an association class. Chain holds further
// relationships written after the participant, e.g. `A[1] >> Base`.
type Participant struct {
	Base
	Name         string
	Multiplicity *Multiplicity
	Chain        []*Relationship
}

func (*Participant) Kind() NodeKind { return NodeParticipant }

type RelKind uint8

const (
	RelAssociation RelKind = iota
	RelComposition
	RelAggregation
	RelGeneralization
	RelRealization
	RelDependency
	RelBidirectional
)

func (k RelKind) String() string {
	switch k {
	case RelComposition:
		return "composition"
	case RelAggregation:
		return "aggregation"
	case RelGeneralization:
		return "generalization"
	case RelRealization:
		return "realization"
	case RelDependency:
		return "dependency"
	case RelBidirectional:
		return "bidirectional"
	default:
		return "association"
	}
}

// Relationship is an edge between two named classifiers.
type Relationship struct {
	Base
	From     string
	FromSpan source.Span
	To       string
	ToSpan   source.Span
	RelKind  RelKind
	// Navigable is false for `--`.
	Navigable bool
	FromMult  *Multiplicity
	ToMult    *Multiplicity
	Label     string
	XorGroup  string
	Doc       string
}

func (*Relationship) Kind() NodeKind { return NodeRelationship }
func (*Relationship) stmtNode()      {}

// Many is the upper bound written as `*`.
const Many = -1

// Multiplicity is `[lo..hi]`, `[n]` or `[*]`.
type Multiplicity struct {
	Lower int
	Upper int // Many for *
	Span  source.Span
}

// Note is `note name? "text" for A, B`.
type Note struct {
	Base
	Name    string
	Text    string
	Anchors []*Anchor
}

func (*Note) Kind() NodeKind { return NodeNote }
func (*Note) stmtNode()      {}
func (*Note) memberNode()    {}

// Anchor attaches a note to a named element.
type Anchor struct {
	Base
	Target string
}

func (*Anchor) Kind() NodeKind { return NodeAnchor }

// Comment is a `//` or `/* */` comment kept in the tree.
type Comment struct {
	Base
	Text string
}

func (*Comment) Kind() NodeKind { return NodeComment }
func (*Comment) stmtNode()      {}
func (*Comment) memberNode()    {}

// DocComment is a `/** */` comment that was not attached to a declaration.
type DocComment struct {
	Base
	Text string
}

func (*DocComment) Kind() NodeKind { return NodeDocComment }
func (*DocComment) stmtNode()      {}
func (*DocComment) memberNode()    {}

// Constraint is an `xor` block. At top level it holds relationships, inside
// an entity body it holds features.
type Constraint struct {
	Base
	ConstraintKind string // "xor"
	Group          string
	Relationships  []*Relationship
	Members        []Member
}

func (*Constraint) Kind() NodeKind { return NodeConstraint }
func (*Constraint) stmtNode()      {}
func (*Constraint) memberNode()    {}

// ConfigEntry is one `key: value` pair; Value is string, float64 or bool.
type ConfigEntry struct {
	Key   string
	Value any
	Span  source.Span
}

// Config is a `config { ... }` block or an `@key: value` directive.
type Config struct {
	Base
	Directive bool
	Entries   []ConfigEntry
}

func (*Config) Kind() NodeKind { return NodeConfig }
func (*Config) stmtNode()      {}
