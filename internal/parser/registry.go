package parser

import (
	"umlts/internal/ast"
	"umlts/internal/token"
)

// Orchestrator is what rules and providers see of the parser: the stream,
// the session, and re-entry points for nested constructs.
type Orchestrator interface {
	Stream() *TokenStream
	Session() *Session
	// ParseStatement dispatches one statement through the rule chain.
	ParseStatement() (ast.Statement, error)
	// ParseBlock parses statements until `}` or EOF. The brace is not consumed.
	ParseBlock() []ast.Statement
	// ParseBody parses `{ member* }` including both braces.
	ParseBody(ctx MemberContext) ([]ast.Member, error)
	// ParseMember dispatches one member through the provider chain.
	ParseMember(ctx MemberContext) (ast.Member, error)
	ParseType() (*ast.TypeAnnotation, error)
	ParseQualifiedName() (string, error)
	ParseModifiers() ast.Modifiers
	ParseMultiplicity() (*ast.Multiplicity, error)
	ParseValue() (string, error)
	// ParseRelationshipTail reads `relOp mult? target (':' label)? xorTag?`.
	ParseRelationshipTail(from token.Token, fromName string, fromMult *ast.Multiplicity) (*ast.Relationship, error)
	// ParseRelationshipTarget is ParseRelationshipTail after the operator.
	ParseRelationshipTarget(from token.Token, fromName string, fromMult *ast.Multiplicity, op token.Token) (*ast.Relationship, error)
	// CanStartStatement is the union of the registered CanHandle predicates.
	CanStartStatement() bool
}

// StatementRule recognises a top-level (or package-level) statement.
// Parse may return a partial node together with an error.
type StatementRule interface {
	Name() string
	CanHandle(o Orchestrator) bool
	Parse(o Orchestrator) (ast.Statement, error)
}

// MemberContext describes the body being parsed.
type MemberContext struct {
	Owner ast.EntityKind
	// AssocClass is set for association class bodies.
	AssocClass bool
	// InXor is set inside a member-level `xor { }` block.
	InXor bool
}

// MemberProvider recognises one member form inside an entity body.
type MemberProvider interface {
	Name() string
	CanHandle(o Orchestrator, ctx MemberContext) bool
	Parse(o Orchestrator, ctx MemberContext) (ast.Member, error)
}

// PrimaryTypeProvider parses the head of a type annotation.
type PrimaryTypeProvider interface {
	Name() string
	CanHandle(o Orchestrator) bool
	Parse(o Orchestrator) (*ast.TypeAnnotation, error)
}

// TypeModifierProvider wraps an already parsed type: `T[]`, `A | B`, `T?`.
type TypeModifierProvider interface {
	Name() string
	CanHandle(o Orchestrator, base *ast.TypeAnnotation) bool
	Apply(o Orchestrator, base *ast.TypeAnnotation) (*ast.TypeAnnotation, error)
}

// Registry holds the ordered rule and provider chains. Extension entries
// always run before built-ins.
type Registry struct {
	statements []StatementRule
	members    []MemberProvider
	primaries  []PrimaryTypeProvider
	modifiers  []TypeModifierProvider

	extStatements int
	extMembers    int
	extPrimaries  int
	extModifiers  int
}

// NewRegistry returns a registry populated with the built-in grammar.
func NewRegistry() *Registry {
	return &Registry{
		statements: []StatementRule{
			commentRule{},
			docCommentRule{},
			configRule{},
			directiveRule{},
			packageRule{},
			xorRule{},
			noteRule{},
			assocClassRule{},
			entityRule{},
			relationshipRule{},
			semicolonRule{},
		},
		members: []MemberProvider{
			docMemberProvider{},
			commentMemberProvider{},
			xorMemberProvider{},
			noteMemberProvider{},
			enumLiteralProvider{},
			featureProvider{},
		},
		primaries: []PrimaryTypeProvider{
			genericTypeProvider{},
			inlineEnumTypeProvider{},
			simpleTypeProvider{},
		},
		modifiers: []TypeModifierProvider{
			arrayModifier{},
			unionModifier{},
		},
	}
}

// AddStatementRule registers an extension rule ahead of the built-ins,
// after previously added extensions.
func (r *Registry) AddStatementRule(rule StatementRule) {
	r.statements = insertAt(r.statements, r.extStatements, rule)
	r.extStatements++
}

func (r *Registry) AddMemberProvider(p MemberProvider) {
	r.members = insertAt(r.members, r.extMembers, p)
	r.extMembers++
}

func (r *Registry) AddPrimaryTypeProvider(p PrimaryTypeProvider) {
	r.primaries = insertAt(r.primaries, r.extPrimaries, p)
	r.extPrimaries++
}

func (r *Registry) AddTypeModifierProvider(p TypeModifierProvider) {
	r.modifiers = insertAt(r.modifiers, r.extModifiers, p)
	r.extModifiers++
}

// StatementRules returns the chain in dispatch order.
func (r *Registry) StatementRules() []StatementRule {
	return r.statements
}

func insertAt[T any](s []T, i int, v T) []T {
	out := make([]T, 0, len(s)+1)
	out = append(out, s[:i]...)
	out = append(out, v)
	return append(out, s[i:]...)
}
