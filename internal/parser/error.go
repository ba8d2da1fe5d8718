package parser

import (
	"fmt"

	"umlts/internal/diag"
	"umlts/internal/source"
)

// Error is a hard parse failure returned by rules. The orchestrator turns it
// into a diagnostic and recovers.
type Error struct {
	Code diag.Code
	Span source.Span
	Msg  string
}

func newError(code diag.Code, sp source.Span, format string, args ...any) *Error {
	return &Error{Code: code, Span: sp, Msg: fmt.Sprintf(format, args...)}
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code.ID(), e.Msg)
}
