package parser

import (
	"umlts/internal/ast"
	"umlts/internal/diag"
	"umlts/internal/token"
)

var entityKinds = map[token.Kind]ast.EntityKind{
	token.KwClass:     ast.EntityClass,
	token.KwInterface: ast.EntityInterface,
	token.KwEnum:      ast.EntityEnum,
	token.KwDataType:  ast.EntityDataType,
}

// entityRule: modifiers* (class|interface|enum|datatype) Name <T>? headers* body?
type entityRule struct{}

func (entityRule) Name() string { return "entity" }

func (entityRule) CanHandle(o Orchestrator) bool {
	ts := o.Stream()
	_, ok := entityKinds[ts.PeekAt(scanModifiers(ts, 0)).Kind]
	return ok
}

func (entityRule) Parse(o Orchestrator) (ast.Statement, error) {
	ts := o.Stream()
	doc := o.Session().TakeDoc()
	start := ts.Peek()
	mods := o.ParseModifiers()
	kwTok := ts.Advance()
	ent := &ast.Entity{
		EntityKind: entityKinds[kwTok.Kind],
		Modifiers:  mods,
		Doc:        doc,
	}
	ent.Span = start.Span
	nameTok := ts.Peek()
	name, err := o.ParseQualifiedName()
	if err != nil {
		return nil, err
	}
	ent.Name, ent.NameSpan = name, nameTok.Span.Cover(ts.Last().Span)

	if ts.Check(token.Lt) {
		params, err := parseTypeParams(o)
		ent.TypeParams = params
		if err != nil {
			ent.Span = start.Span.Cover(ts.Last().Span)
			return ent, err
		}
	}

	// headers: >> Base, Other >I Iface
	for ts.Peek().IsRelOp() {
		if err := parseHeader(o, ent, nameTok); err != nil {
			ent.Span = start.Span.Cover(ts.Last().Span)
			return ent, err
		}
	}

	if ts.Check(token.LBrace) {
		members, err := o.ParseBody(MemberContext{Owner: ent.EntityKind})
		ent.Members = members
		if err != nil {
			ent.Span = start.Span.Cover(ts.Last().Span)
			return ent, err
		}
	}
	ent.Span = start.Span.Cover(ts.Last().Span)
	return ent, nil
}

func parseTypeParams(o Orchestrator) ([]string, error) {
	ts := o.Stream()
	ts.Advance() // <
	var params []string
	for {
		tok := ts.Peek()
		if !tok.IsName() {
			return params, ts.Errorf(diag.SynExpectIdentifier, "expected type parameter, got %s", describe(tok))
		}
		params = append(params, ts.Advance().Text)
		if _, ok := ts.Match(token.Comma); !ok {
			break
		}
	}
	if !ts.SplitShift() {
		return params, ts.Errorf(diag.SynExpectGt, "expected '>' to close type parameters, got %s", describe(ts.Peek()))
	}
	return params, nil
}

// parseHeader reads `relOp mult? Target (, mult? Target)*` after an entity name.
// Comma-separated targets share the operator.
func parseHeader(o Orchestrator, ent *ast.Entity, nameTok token.Token) error {
	ts := o.Stream()
	op := ts.Peek()
	if _, ok := relKinds[op.Kind]; !ok {
		return ts.Errorf(diag.SynExpectRelOp, "expected relationship operator, got %s", describe(op))
	}
	ts.Advance()
	for {
		rel, err := o.ParseRelationshipTarget(nameTok, ent.Name, nil, op)
		if rel != nil && rel.To != "" {
			ent.Headers = append(ent.Headers, rel)
		}
		if err != nil {
			return err
		}
		if _, ok := ts.Match(token.Comma); !ok {
			return nil
		}
	}
}

// assocClassRule: class Name <> (A[1], B[*]) { ... }
type assocClassRule struct{}

func (assocClassRule) Name() string { return "association-class" }

// CanHandle пробует префикс на снимке и откатывается.
func (assocClassRule) CanHandle(o Orchestrator) bool {
	ts := o.Stream()
	snap := ts.Snapshot()
	defer ts.Rollback(snap)
	for ts.Peek().IsModifier() {
		ts.Advance()
	}
	if _, ok := ts.Match(token.KwClass); !ok {
		return false
	}
	if !ts.Peek().IsName() {
		return false
	}
	ts.Advance()
	for ts.Check(token.Dot) && ts.PeekAt(1).IsName() {
		ts.Advance()
		ts.Advance()
	}
	return ts.Check(token.AssocBidir) && ts.CheckAt(1, token.LParen)
}

func (assocClassRule) Parse(o Orchestrator) (ast.Statement, error) {
	ts := o.Stream()
	doc := o.Session().TakeDoc()
	start := ts.Peek()
	ac := &ast.AssociationClass{Modifiers: o.ParseModifiers(), Doc: doc}
	ts.Advance() // class
	nameTok := ts.Peek()
	name, err := o.ParseQualifiedName()
	if err != nil {
		return nil, err
	}
	ac.Name, ac.NameSpan = name, nameTok.Span.Cover(ts.Last().Span)
	ts.Advance() // <>
	ts.Advance() // (
	for !ts.Check(token.RParen) && !ts.AtEOF() {
		part, err := parseParticipant(o)
		if part != nil {
			ac.Participants = append(ac.Participants, part)
		}
		if err != nil {
			ac.Span = start.Span.Cover(ts.Last().Span)
			return ac, err
		}
		if _, ok := ts.Match(token.Comma); !ok {
			break
		}
	}
	if _, err := ts.Consume(token.RParen, diag.SynExpectRParen, "expected ')' after association class participants"); err != nil {
		ac.Span = start.Span.Cover(ts.Last().Span)
		return ac, err
	}
	if ts.Check(token.LBrace) {
		members, err := o.ParseBody(MemberContext{Owner: ast.EntityClass, AssocClass: true})
		ac.Members = members
		if err != nil {
			ac.Span = start.Span.Cover(ts.Last().Span)
			return ac, err
		}
	}
	ac.Span = start.Span.Cover(ts.Last().Span)
	return ac, nil
}

// parseParticipant: Name mult? (relOp mult? Target)*
func parseParticipant(o Orchestrator) (*ast.Participant, error) {
	ts := o.Stream()
	tok := ts.Peek()
	name, err := o.ParseQualifiedName()
	if err != nil {
		return nil, err
	}
	part := &ast.Participant{Name: name}
	if ts.Check(token.LBracket) {
		m, err := o.ParseMultiplicity()
		if err != nil {
			return part, err
		}
		part.Multiplicity = m
	}
	from, fromName := tok, name
	for ts.Peek().IsRelOp() {
		rel, err := o.ParseRelationshipTail(from, fromName, nil)
		if rel != nil && rel.To != "" {
			part.Chain = append(part.Chain, rel)
			from, fromName = ts.Last(), rel.To
		}
		if err != nil {
			return part, err
		}
	}
	part.Span = tok.Span.Cover(ts.Last().Span)
	return part, nil
}

// relationshipRule: A [m]? relOp [m]? B (: label)? {xor: g}?
type relationshipRule struct{}

func (relationshipRule) Name() string { return "relationship" }

func (relationshipRule) CanHandle(o Orchestrator) bool {
	ts := o.Stream()
	i := scanQualifiedName(ts, 0)
	if i < 0 {
		return false
	}
	i = scanMultiplicity(ts, i)
	return ts.PeekAt(i).IsRelOp()
}

func (relationshipRule) Parse(o Orchestrator) (ast.Statement, error) {
	ts := o.Stream()
	doc := o.Session().TakeDoc()
	fromTok := ts.Peek()
	from, err := o.ParseQualifiedName()
	if err != nil {
		return nil, err
	}
	fromTok.Span = fromTok.Span.Cover(ts.Last().Span)
	var fromMult *ast.Multiplicity
	if ts.Check(token.LBracket) {
		if fromMult, err = o.ParseMultiplicity(); err != nil {
			return nil, err
		}
	}
	rel, err := o.ParseRelationshipTail(fromTok, from, fromMult)
	if rel == nil || rel.To == "" {
		return nil, err
	}
	rel.Doc = doc
	return rel, err
}
