package plugin

import (
	"fmt"

	"umlts/internal/lexer"
	"umlts/internal/parser"
	"umlts/internal/sema"
	"umlts/internal/token"
)

// LanguageAPI is handed to Language.Setup. Contributions are kept in
// registration order and are tried before the built-ins.
type LanguageAPI struct {
	language   string
	primitives []string
	matchers   []lexer.Matcher
	statements []parser.StatementRule
	members    []parser.MemberProvider
	primaries  []parser.PrimaryTypeProvider
	modifiers  []parser.TypeModifierProvider
	strategies []sema.TypeStrategy

	kinds *kindAllocator
}

// Language returns the language being set up.
func (api *LanguageAPI) Language() string { return api.language }

func (api *LanguageAPI) AddPrimitives(names ...string) {
	api.primitives = append(api.primitives, names...)
}

func (api *LanguageAPI) AddMatcher(m lexer.Matcher) {
	api.matchers = append(api.matchers, m)
}

func (api *LanguageAPI) AddStatementRule(r parser.StatementRule) {
	api.statements = append(api.statements, r)
}

func (api *LanguageAPI) AddMemberProvider(p parser.MemberProvider) {
	api.members = append(api.members, p)
}

func (api *LanguageAPI) AddPrimaryTypeProvider(p parser.PrimaryTypeProvider) {
	api.primaries = append(api.primaries, p)
}

func (api *LanguageAPI) AddTypeModifierProvider(p parser.TypeModifierProvider) {
	api.modifiers = append(api.modifiers, p)
}

func (api *LanguageAPI) AddTypeStrategy(s sema.TypeStrategy) {
	api.strategies = append(api.strategies, s)
}

// AllocKind reserves a token kind above token.PluginBase and names it for dumps.
func (api *LanguageAPI) AllocKind(name string) token.Kind {
	return api.kinds.alloc(api.language + ":" + name)
}

// kindAllocator hands out plugin token kinds for one registry.
type kindAllocator struct {
	next  token.Kind
	names map[string]token.Kind
}

func newKindAllocator() *kindAllocator {
	return &kindAllocator{next: token.PluginBase, names: make(map[string]token.Kind)}
}

func (a *kindAllocator) alloc(name string) token.Kind {
	if k, ok := a.names[name]; ok {
		return k
	}
	if a.next == ^token.Kind(0) {
		panic(fmt.Errorf("plugin token kinds exhausted at %q", name))
	}
	k := a.next
	a.next++
	a.names[name] = k
	token.RegisterKindName(k, name)
	return k
}
