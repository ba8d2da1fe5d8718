package parser

import (
	"umlts/internal/diag"
	"umlts/internal/source"
)

// sink collects parse diagnostics for Program.Diagnostics and forwards them
// to the caller's reporter.
type sink struct {
	items     []diag.Diagnostic
	next      diag.Reporter
	maxErrors uint
	errors    uint
}

// Enough - проверить, достигли ли мы максимального количества ошибок
func (s *sink) Enough() bool {
	return s.maxErrors != 0 && s.errors >= s.maxErrors
}

func (s *sink) report(code diag.Code, sev diag.Severity, sp source.Span, msg string) {
	if sev == diag.SevError {
		if s.Enough() {
			return
		}
		s.errors++
	}
	d := diag.New(sev, code, sp, msg)
	s.items = append(s.items, d)
	if s.next != nil {
		s.next.Report(code, sev, sp, msg, nil)
	}
}
