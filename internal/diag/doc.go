// Package diag defines the diagnostic model shared by all pipeline phases.
//
// # Purpose
//
//   - Provide deterministic, serialisable records that capture findings produced
//     by the lexer, parser and semantic passes.
//   - Offer light-weight utilities (Reporter, Bag) that let producers emit
//     diagnostics without coupling to storage or formatting.
//
// # Scope
//
// Package diag does no formatting beyond the single-line short form used by
// golden tests and the `--format short` CLI mode. Rendering lives in
// internal/diagfmt; orchestration lives in internal/compiler and internal/driver.
//
// # Data model
//
// Diagnostic is the central record:
//
//   - Severity – Info, Warning, Error.
//   - Code – numeric identifier with a stable ID (SEM3030) and a stable
//     symbolic name (SEMANTIC_CYCLE_DETECTED), see codes.go.
//   - Message – human oriented text; keep it short and actionable.
//   - Primary – the source.Span pointing at the offending token.
//   - Notes – optional secondary spans (e.g. "first declared here").
//
// # Emitting diagnostics
//
// Phases hold a Reporter. Use ReportError/ReportWarning/ReportInfo to build a
// diagnostic, chain WithNote, then Emit. BagReporter collects into a Bag, which
// supports capping, sorting and deduplication.
//
// Nothing in the pipeline panics on malformed input: every recognised failure
// mode becomes a Diagnostic.
package diag
