// Package compiler is the single entry point that editors and the CLI call:
// source text in, diagram plus diagnostics out.
//
// Pipeline: language pre-scan → plugin activation → lex → parse → sema.
// Parse never panics and never fails; every problem is a diagnostic and
// Result.Diagram is always set.
package compiler
