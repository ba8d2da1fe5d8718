package ir

type EntityKind string

const (
	KindClass            EntityKind = "CLASS"
	KindInterface        EntityKind = "INTERFACE"
	KindEnum             EntityKind = "ENUM"
	KindDataType         EntityKind = "DATA_TYPE"
	KindAssociationClass EntityKind = "ASSOCIATION_CLASS"
	KindPackage          EntityKind = "PACKAGE"
)

type RelationshipKind string

const (
	RelAssociation    RelationshipKind = "association"
	RelComposition    RelationshipKind = "composition"
	RelAggregation    RelationshipKind = "aggregation"
	RelGeneralization RelationshipKind = "generalization"
	RelRealization    RelationshipKind = "realization"
	RelDependency     RelationshipKind = "dependency"
	RelBidirectional  RelationshipKind = "bidirectional"
)

// Diagram is the output of semantic analysis.
type Diagram struct {
	Entities      []*Entity       `json:"entities" yaml:"entities" msgpack:"entities"`
	Relationships []*Relationship `json:"relationships" yaml:"relationships" msgpack:"relationships"`
	Constraints   []*Constraint   `json:"constraints" yaml:"constraints" msgpack:"constraints"`
	Notes         []*Note         `json:"notes" yaml:"notes" msgpack:"notes"`
	Anchors       []*Anchor       `json:"anchors" yaml:"anchors" msgpack:"anchors"`
	Config        map[string]any  `json:"config" yaml:"config" msgpack:"config"`
}

// NewDiagram returns an empty diagram with non-nil collections, so every
// serialisation shows empty lists rather than nulls.
func NewDiagram() *Diagram {
	return &Diagram{
		Entities:      []*Entity{},
		Relationships: []*Relationship{},
		Constraints:   []*Constraint{},
		Notes:         []*Note{},
		Anchors:       []*Anchor{},
		Config:        map[string]any{},
	}
}

// Entity is a classifier (or package) identified by its fully qualified name.
type Entity struct {
	ID             string       `json:"id" yaml:"id" msgpack:"id"`
	Name           string       `json:"name" yaml:"name" msgpack:"name"`
	Namespace      string       `json:"namespace,omitempty" yaml:"namespace,omitempty" msgpack:"namespace,omitempty"`
	Kind           EntityKind   `json:"kind" yaml:"kind" msgpack:"kind"`
	IsImplicit     bool         `json:"isImplicit" yaml:"isImplicit" msgpack:"isImplicit"`
	IsAbstract     bool         `json:"isAbstract" yaml:"isAbstract" msgpack:"isAbstract"`
	IsLeaf         bool         `json:"isLeaf,omitempty" yaml:"isLeaf,omitempty" msgpack:"isLeaf,omitempty"`
	IsFinal        bool         `json:"isFinal,omitempty" yaml:"isFinal,omitempty" msgpack:"isFinal,omitempty"`
	IsRoot         bool         `json:"isRoot,omitempty" yaml:"isRoot,omitempty" msgpack:"isRoot,omitempty"`
	IsStatic       bool         `json:"isStatic,omitempty" yaml:"isStatic,omitempty" msgpack:"isStatic,omitempty"`
	TypeParameters []string     `json:"typeParameters,omitempty" yaml:"typeParameters,omitempty" msgpack:"typeParameters,omitempty"`
	Properties     []*Property  `json:"properties" yaml:"properties" msgpack:"properties"`
	Operations     []*Operation `json:"operations" yaml:"operations" msgpack:"operations"`
	Literals       []string     `json:"literals,omitempty" yaml:"literals,omitempty" msgpack:"literals,omitempty"`
	AliasOf        string       `json:"aliasOf,omitempty" yaml:"aliasOf,omitempty" msgpack:"aliasOf,omitempty"`
	Doc            string       `json:"doc,omitempty" yaml:"doc,omitempty" msgpack:"doc,omitempty"`
	Line           int          `json:"line,omitempty" yaml:"line,omitempty" msgpack:"line,omitempty"`
}

type Property struct {
	Name         string        `json:"name" yaml:"name" msgpack:"name"`
	Type         string        `json:"type,omitempty" yaml:"type,omitempty" msgpack:"type,omitempty"`
	Visibility   string        `json:"visibility,omitempty" yaml:"visibility,omitempty" msgpack:"visibility,omitempty"`
	IsStatic     bool          `json:"isStatic,omitempty" yaml:"isStatic,omitempty" msgpack:"isStatic,omitempty"`
	IsOptional   bool          `json:"isOptional,omitempty" yaml:"isOptional,omitempty" msgpack:"isOptional,omitempty"`
	Multiplicity *Multiplicity `json:"multiplicity,omitempty" yaml:"multiplicity,omitempty" msgpack:"multiplicity,omitempty"`
	DefaultValue string        `json:"defaultValue,omitempty" yaml:"defaultValue,omitempty" msgpack:"defaultValue,omitempty"`
	Doc          string        `json:"doc,omitempty" yaml:"doc,omitempty" msgpack:"doc,omitempty"`
	Constraints  []*Constraint `json:"constraints,omitempty" yaml:"constraints,omitempty" msgpack:"constraints,omitempty"`
}

type Operation struct {
	Name        string        `json:"name" yaml:"name" msgpack:"name"`
	Visibility  string        `json:"visibility,omitempty" yaml:"visibility,omitempty" msgpack:"visibility,omitempty"`
	IsStatic    bool          `json:"isStatic,omitempty" yaml:"isStatic,omitempty" msgpack:"isStatic,omitempty"`
	IsAbstract  bool          `json:"isAbstract,omitempty" yaml:"isAbstract,omitempty" msgpack:"isAbstract,omitempty"`
	Parameters  []*Parameter  `json:"parameters" yaml:"parameters" msgpack:"parameters"`
	ReturnType  string        `json:"returnType,omitempty" yaml:"returnType,omitempty" msgpack:"returnType,omitempty"`
	Doc         string        `json:"doc,omitempty" yaml:"doc,omitempty" msgpack:"doc,omitempty"`
	Constraints []*Constraint `json:"constraints,omitempty" yaml:"constraints,omitempty" msgpack:"constraints,omitempty"`
}

type Parameter struct {
	Name         string `json:"name" yaml:"name" msgpack:"name"`
	Type         string `json:"type,omitempty" yaml:"type,omitempty" msgpack:"type,omitempty"`
	DefaultValue string `json:"defaultValue,omitempty" yaml:"defaultValue,omitempty" msgpack:"defaultValue,omitempty"`
}

type Relationship struct {
	ID                 string           `json:"id" yaml:"id" msgpack:"id"`
	From               string           `json:"from" yaml:"from" msgpack:"from"`
	To                 string           `json:"to" yaml:"to" msgpack:"to"`
	Kind               RelationshipKind `json:"kind" yaml:"kind" msgpack:"kind"`
	IsNavigable        bool             `json:"isNavigable" yaml:"isNavigable" msgpack:"isNavigable"`
	FromMultiplicity   *Multiplicity    `json:"fromMultiplicity,omitempty" yaml:"fromMultiplicity,omitempty" msgpack:"fromMultiplicity,omitempty"`
	ToMultiplicity     *Multiplicity    `json:"toMultiplicity,omitempty" yaml:"toMultiplicity,omitempty" msgpack:"toMultiplicity,omitempty"`
	AssociationClassID string           `json:"associationClassId,omitempty" yaml:"associationClassId,omitempty" msgpack:"associationClassId,omitempty"`
	Label              string           `json:"label,omitempty" yaml:"label,omitempty" msgpack:"label,omitempty"`
	Constraints        []*Constraint    `json:"constraints,omitempty" yaml:"constraints,omitempty" msgpack:"constraints,omitempty"`
}

const (
	ConstraintXor       = "xor"
	ConstraintXorMember = "xor_member"
)

// Constraint is a global xor group (Kind "xor", Targets = [groupID]) or a
// membership marker on a relationship/property (Kind "xor_member").
type Constraint struct {
	Kind    string   `json:"kind" yaml:"kind" msgpack:"kind"`
	Targets []string `json:"targets" yaml:"targets" msgpack:"targets"`
}

type Note struct {
	ID   string `json:"id" yaml:"id" msgpack:"id"`
	Text string `json:"text" yaml:"text" msgpack:"text"`
}

// Anchor links a note to the element it annotates.
type Anchor struct {
	From string `json:"from" yaml:"from" msgpack:"from"`
	To   string `json:"to" yaml:"to" msgpack:"to"`
}

// Entity returns the entity with the given ID, or nil.
func (d *Diagram) Entity(id string) *Entity {
	for _, e := range d.Entities {
		if e.ID == id {
			return e
		}
	}
	return nil
}

// RelationshipsOf returns relationships whose From is id, in emission order.
func (d *Diagram) RelationshipsOf(id string) []*Relationship {
	var out []*Relationship
	for _, r := range d.Relationships {
		if r.From == id {
			out = append(out, r)
		}
	}
	return out
}

// ConstraintsOfKind filters the global constraint list.
func (d *Diagram) ConstraintsOfKind(kind string) []*Constraint {
	var out []*Constraint
	for _, c := range d.Constraints {
		if c.Kind == kind {
			out = append(out, c)
		}
	}
	return out
}
