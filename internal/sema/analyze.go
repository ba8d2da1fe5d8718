package sema

import (
	"strconv"

	"umlts/internal/ast"
	"umlts/internal/diag"
	"umlts/internal/ir"
	"umlts/internal/source"
	"umlts/internal/symbols"
	"umlts/internal/trace"
)

// Options configure one analysis.
type Options struct {
	Reporter diag.Reporter
	// File resolves entity line numbers; optional.
	File *source.File
	// Primitives replaces DefaultPrimitives when non-empty.
	Primitives []string
	// Strategies are tried before the built-in primitive and symbol strategies.
	Strategies []TypeStrategy
	// Rules defaults to NewEngine() with the built-in rules.
	Rules  *Engine
	Tracer trace.Tracer
	// ParentSpan links pass spans to the caller's span.
	ParentSpan uint64
}

// Analyze runs Discovery, Definition and Resolution over prog and emits the
// diagram. It always returns a non-nil diagram.
func Analyze(prog *ast.Program, opts Options) *ir.Diagram {
	s := newSession(opts)
	if prog == nil {
		return s.emit()
	}

	root := trace.Begin(opts.Tracer, trace.ScopePass, "sema", opts.ParentSpan)
	defer root.End("")

	s.pass(root.ID(), "discovery", func() { s.discover(prog.Body, s.table.Root()) })
	s.pass(root.ID(), "definition", s.define)
	s.pass(root.ID(), "resolution", func() { s.resolve(prog.Body, s.table.Root()) })

	var out *ir.Diagram
	s.pass(root.ID(), "emit", func() { out = s.emit() })
	root.WithExtra("entities", strconv.Itoa(len(out.Entities)))
	root.WithExtra("relationships", strconv.Itoa(len(out.Relationships)))
	return out
}

// Reanalyze is the incremental entry point. It performs a full analysis;
// previous results are not reused.
func Reanalyze(prog *ast.Program, _ *ir.Diagram, opts Options) *ir.Diagram {
	return Analyze(prog, opts)
}

func (s *session) pass(parent uint64, name string, fn func()) {
	span := trace.Begin(s.tracer, trace.ScopePass, name, parent)
	fn()
	span.End("")
}

// session is the mutable state shared by the passes of one analysis.
type session struct {
	reporter    diag.Reporter
	file        *source.File
	tracer      trace.Tracer
	table       *symbols.Table
	types       *Pipeline
	inference   *InferenceTable
	rules       *Engine
	constraints *ConstraintRegistry

	config  map[string]any
	rels    []*ir.Relationship
	relSpan map[*ir.Relationship]source.Span
	relKeys map[relKey]*ir.Relationship
	notes   []*ir.Note
	anchors []*ir.Anchor

	// decls are explicit classifiers accepted by Discovery, in source order.
	decls   []*decl
	declOf  map[ast.Node]*decl
	noteSeq int
}

// decl ties an accepted declaration to its symbol and namespace.
type decl struct {
	node   ast.Node
	id     symbols.SymbolID
	scope  symbols.ScopeID
	params map[string]struct{}
}

type relKey struct {
	from, to string
	kind     ir.RelationshipKind
}

func newSession(opts Options) *session {
	rep := opts.Reporter
	if rep == nil {
		rep = diag.NopReporter{}
	}
	rules := opts.Rules
	if rules == nil {
		rules = NewEngine()
	}
	s := &session{
		reporter:    rep,
		file:        opts.File,
		tracer:      opts.Tracer,
		table:       symbols.NewTable(symbols.Hints{}),
		inference:   DefaultInference(),
		rules:       rules,
		constraints: NewConstraintRegistry(),
		config:      make(map[string]any),
		relSpan:     make(map[*ir.Relationship]source.Span),
		relKeys:     make(map[relKey]*ir.Relationship),
		declOf:      make(map[ast.Node]*decl),
	}
	prims := opts.Primitives
	if len(prims) == 0 {
		prims = DefaultPrimitives
	}
	strategies := make([]TypeStrategy, 0, len(opts.Strategies)+3)
	strategies = append(strategies, opts.Strategies...)
	strategies = append(strategies, NewPrimitiveStrategy(prims...), genericStrategy{}, symbolStrategy{s: s})
	s.types = NewPipeline(strategies...)
	return s
}

func (s *session) line(sp source.Span) int {
	if s.file == nil || s.file.ID != sp.File {
		return 0
	}
	return int(s.file.Position(sp.Start).Line)
}

// addRelationship appends r with a deterministic ID and runs relationship rules.
func (s *session) addRelationship(r *ir.Relationship, sp source.Span) *ir.Relationship {
	r.ID = "rel_" + strconv.Itoa(len(s.rels)+1)
	s.rels = append(s.rels, r)
	s.relSpan[r] = sp
	s.rules.checkRelationship(s.ruleContext(), RelationshipSubject{
		Rel:  r,
		From: s.entityByFQN(r.From),
		To:   s.entityByFQN(r.To),
		Span: sp,
	})
	return r
}

// addUnique appends r unless an edge with the same endpoints and kind
// already exists; the existing edge is returned instead.
func (s *session) addUnique(r *ir.Relationship, sp source.Span) *ir.Relationship {
	key := relKey{from: r.From, to: r.To, kind: r.Kind}
	if prev, ok := s.relKeys[key]; ok {
		return prev
	}
	r = s.addRelationship(r, sp)
	s.relKeys[key] = r
	return r
}

func (s *session) entityByFQN(fqn string) *ir.Entity {
	return s.table.Entity(s.table.Lookup(fqn))
}
