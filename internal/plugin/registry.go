package plugin

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"umlts/internal/lexer"
	"umlts/internal/parser"
	"umlts/internal/sema"
)

// ErrFrozen is returned when registering after Freeze.
var ErrFrozen = errors.New("plugin registry is frozen")

// Registry holds registered plugins. It is populated before any concurrent
// compilation and frozen afterwards; lookups after Freeze are lock-free in
// effect because nothing mutates the maps any more.
type Registry struct {
	mu      sync.RWMutex
	plugins []Plugin
	langs   map[string]*LanguageAPI
	names   []string
	kinds   *kindAllocator
	frozen  bool
}

func NewRegistry() *Registry {
	return &Registry{
		langs: make(map[string]*LanguageAPI),
		kinds: newKindAllocator(),
	}
}

// Register runs every capability's setup. Language names are matched
// case-insensitively.
func (r *Registry) Register(p Plugin) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.frozen {
		return fmt.Errorf("register %q: %w", p.Name(), ErrFrozen)
	}
	for _, c := range p.Capabilities() {
		switch c := c.(type) {
		case *Language:
			if err := r.addLanguage(c); err != nil {
				return fmt.Errorf("register %q: %w", p.Name(), err)
			}
		default:
			return fmt.Errorf("register %q: unsupported capability %T", p.Name(), c)
		}
	}
	r.plugins = append(r.plugins, p)
	return nil
}

func (r *Registry) addLanguage(l *Language) error {
	keys := append([]string{l.Name}, l.Aliases...)
	for _, k := range keys {
		if _, dup := r.langs[strings.ToLower(k)]; dup {
			return fmt.Errorf("language %q already registered", k)
		}
	}
	api := &LanguageAPI{language: l.Name, kinds: r.kinds}
	if l.Setup != nil {
		l.Setup(api)
	}
	for _, k := range keys {
		r.langs[strings.ToLower(k)] = api
	}
	r.names = append(r.names, l.Name)
	return nil
}

// Freeze forbids further registration.
func (r *Registry) Freeze() {
	r.mu.Lock()
	r.frozen = true
	r.mu.Unlock()
}

func (r *Registry) Frozen() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.frozen
}

// Languages lists registered language names, sorted.
func (r *Registry) Languages() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := append([]string(nil), r.names...)
	sort.Strings(out)
	return out
}

// Plugins returns registered plugins in registration order.
func (r *Registry) Plugins() []Plugin {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]Plugin(nil), r.plugins...)
}

// Activation is what one compilation needs from the selected language.
type Activation struct {
	Language   string
	Primitives []string
	Matchers   []lexer.Matcher
	Strategies []sema.TypeStrategy
	api        *LanguageAPI
}

// Activate returns the contributions of lang, or false when it is unknown.
func (r *Registry) Activate(lang string) (*Activation, bool) {
	r.mu.RLock()
	api, ok := r.langs[strings.ToLower(lang)]
	r.mu.RUnlock()
	if !ok {
		return nil, false
	}
	return &Activation{
		Language:   api.language,
		Primitives: api.primitives,
		Matchers:   api.matchers,
		Strategies: api.strategies,
		api:        api,
	}, true
}

// ParserRegistry builds a fresh parser registry with the language rules
// in front of the built-ins. A nil activation yields the built-ins only.
func (a *Activation) ParserRegistry() *parser.Registry {
	reg := parser.NewRegistry()
	if a == nil {
		return reg
	}
	for _, rule := range a.api.statements {
		reg.AddStatementRule(rule)
	}
	for _, p := range a.api.members {
		reg.AddMemberProvider(p)
	}
	for _, p := range a.api.primaries {
		reg.AddPrimaryTypeProvider(p)
	}
	for _, p := range a.api.modifiers {
		reg.AddTypeModifierProvider(p)
	}
	return reg
}
