// Package token defines lexical token kinds for the UMLTS compiler.
// Invariants:
//   - Token.Text is the literal value: raw source text for identifiers, numbers,
//     operators and comments; the unescaped body for string literals.
//   - Token.Span covers the raw source text the token was produced from.
//   - Every token stream ends with exactly one EOF token.
//   - Unknown is the fallback kind; it always consumes at least one rune so the
//     lexer progresses on malformed input.
//   - Primitive type names (string, int, number, ...) are identifiers. They are
//     recognized by the semantic layer through language plugins, not by the lexer.
package token
