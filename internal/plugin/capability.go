package plugin

// Plugin is a named bundle of capabilities.
type Plugin interface {
	Name() string
	Capabilities() []Capability
}

// Capability is a closed sum type; only types in this package implement it.
type Capability interface {
	capability()
}

// Language contributes grammar and types for one source language.
type Language struct {
	// Name is the value of `config { language: ... }` / `@language: ...`.
	Name    string
	Aliases []string
	// Setup registers contributions. It runs once, at registration.
	Setup func(api *LanguageAPI)
}

func (*Language) capability() {}
