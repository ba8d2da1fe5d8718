// Package plugin is the extension surface for language plugins.
//
// A plugin exposes a closed set of capabilities. The only capability today is
// *Language: its Setup callback receives a LanguageAPI and contributes
// primitives, lexer matchers, parser rules and type strategies. The core never
// imports a concrete plugin; it asks a Registry to Activate a language and
// receives the contributions as an Activation.
package plugin
