package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"umlts/internal/ast"
	"umlts/internal/source"
)

// CheckSpanInvariants runs a minimal set of span invariants on a parsed file:
// 1) every node span is ordered (Start <= End) and within content bounds
// 2) every non-empty node span points at sf
// 3) non-empty top-level statements start in source order
func CheckSpanInvariants(prog *ast.Program, sf *source.File) error {
	if prog == nil || sf == nil {
		return fmt.Errorf("nil program or file")
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}

	var firstErr error
	ast.Inspect(prog, func(n ast.Node) bool {
		if firstErr != nil {
			return false
		}
		if _, isRoot := n.(*ast.Program); isRoot {
			return true
		}
		sp := n.Pos()
		switch {
		case sp.Start > sp.End:
			firstErr = fmt.Errorf("%s: inverted span %v", n.Kind(), sp)
		case sp.End > lenContent:
			firstErr = fmt.Errorf("%s: span end beyond content: %d > %d", n.Kind(), sp.End, lenContent)
		case !sp.Empty() && sp.File != sf.ID:
			firstErr = fmt.Errorf("%s: span file mismatch: got=%d want=%d", n.Kind(), sp.File, sf.ID)
		}
		return firstErr == nil
	})
	if firstErr != nil {
		return firstErr
	}

	var prev uint32
	for i, s := range prog.Body {
		sp := s.Pos()
		if sp.Empty() {
			continue
		}
		if i > 0 && sp.Start < prev {
			return fmt.Errorf("statement %d (%s) starts at %d before previous start %d", i, s.Kind(), sp.Start, prev)
		}
		prev = sp.Start
	}
	return nil
}
