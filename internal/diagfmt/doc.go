// Package diagfmt renders compiler output for humans and tools: diagnostics
// (pretty, short, JSON, SARIF), token and AST dumps, and the IR diagram
// (JSON, YAML, msgpack).
package diagfmt
