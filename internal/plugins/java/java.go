// Package java is the Java flavour of UMLTS: Java primitives, `@Annotation`
// markers that the grammar skips, and collection types mapped to their
// element type.
package java

import (
	"unicode"

	"umlts/internal/ast"
	"umlts/internal/lexer"
	"umlts/internal/parser"
	"umlts/internal/plugin"
	"umlts/internal/sema"
	"umlts/internal/token"
)

var Primitives = []string{
	"int", "long", "short", "byte", "float", "double",
	"boolean", "char", "void", "String", "Object",
}

// Collections are unwrapped to their element with multiplicity 0..*.
var Collections = []string{
	"List", "Set", "Collection", "ArrayList", "LinkedList", "HashSet", "TreeSet", "Iterable",
}

type Plugin struct{}

func New() Plugin { return Plugin{} }

func (Plugin) Name() string { return "java" }

func (Plugin) Capabilities() []plugin.Capability {
	return []plugin.Capability{&plugin.Language{
		Name:  "java",
		Setup: setup,
	}}
}

func setup(api *plugin.LanguageAPI) {
	kind := api.AllocKind("ANNOTATION")
	api.AddPrimitives(Primitives...)
	api.AddMatcher(annotationMatcher(kind))
	api.AddStatementRule(annotationRule{kind: kind})
	api.AddMemberProvider(annotationMember{kind: kind})
	api.AddTypeStrategy(sema.NewCollectionStrategy(Collections...))
}

// annotationMatcher lexes `@Name` and `@Name(args)` as one token. `@key:`
// stays a directive for the built-in matchers.
func annotationMatcher(kind token.Kind) lexer.Matcher {
	return lexer.MatcherFunc(func(ctx *lexer.Context) (token.Token, bool) {
		if ctx.EOF() || ctx.Peek() != '@' {
			return token.Token{}, false
		}
		start := ctx.Snapshot()
		ctx.Advance()
		r, sz := ctx.PeekRune()
		if sz == 0 || !(unicode.IsLetter(r) || r == '_') {
			ctx.Rollback(start)
			return token.Token{}, false
		}
		for {
			r, sz = ctx.PeekRune()
			if sz == 0 || !(lexer.IsIdentContinue(r) || r == '.') {
				break
			}
			ctx.AdvanceRune()
		}
		name := ctx.Slice(start)

		probe := ctx.Snapshot()
		for !ctx.EOF() && (ctx.Peek() == ' ' || ctx.Peek() == '\t') {
			ctx.Advance()
		}
		if !ctx.EOF() && ctx.Peek() == ':' {
			ctx.Rollback(start)
			return token.Token{}, false
		}
		ctx.Rollback(probe)

		if !ctx.EOF() && ctx.Peek() == '(' {
			skipArgs(ctx)
		}
		return ctx.Emit(kind, start, name), true
	})
}

// skipArgs consumes a balanced argument list on the current line.
func skipArgs(ctx *lexer.Context) {
	depth := 0
	var quote byte
	for !ctx.EOF() && ctx.Peek() != '\n' {
		c := ctx.Advance()
		switch {
		case quote != 0:
			if c == '\\' && !ctx.EOF() {
				ctx.Advance()
			} else if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == '(':
			depth++
		case c == ')':
			depth--
			if depth == 0 {
				return
			}
		}
	}
}

func skipAnnotations(ts *parser.TokenStream, kind token.Kind) bool {
	skipped := false
	for ts.Check(kind) {
		ts.Advance()
		skipped = true
	}
	return skipped
}

// annotationRule drops annotations in front of a statement and parses the
// statement they decorate, keeping any pending doc comment.
type annotationRule struct{ kind token.Kind }

func (annotationRule) Name() string { return "java-annotation" }

func (r annotationRule) CanHandle(o parser.Orchestrator) bool {
	return o.Stream().Check(r.kind)
}

func (r annotationRule) Parse(o parser.Orchestrator) (ast.Statement, error) {
	ts := o.Stream()
	skipAnnotations(ts, r.kind)
	if ts.AtEOF() || ts.Check(token.RBrace) {
		return nil, nil
	}
	return o.ParseStatement()
}

// annotationMember does the same for members.
type annotationMember struct{ kind token.Kind }

func (annotationMember) Name() string { return "java-annotation" }

func (m annotationMember) CanHandle(o parser.Orchestrator, _ parser.MemberContext) bool {
	return o.Stream().Check(m.kind)
}

func (m annotationMember) Parse(o parser.Orchestrator, ctx parser.MemberContext) (ast.Member, error) {
	ts := o.Stream()
	skipAnnotations(ts, m.kind)
	if ts.AtEOF() || ts.Check(token.RBrace) {
		return nil, nil
	}
	return o.ParseMember(ctx)
}
