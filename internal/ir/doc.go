// Package ir defines the compiled diagram handed to layout and rendering.
//
// The IR is a plain value: it holds no references into the syntax tree or the
// symbol table, and serialises to JSON, YAML and msgpack with the same field
// names.
package ir
