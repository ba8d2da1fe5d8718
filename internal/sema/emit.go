package sema

import (
	"fmt"

	"umlts/internal/diag"
	"umlts/internal/ir"
)

// emit validates the whole diagram and hands out the final value. The
// symbol table is not referenced by the result.
func (s *session) emit() *ir.Diagram {
	d := ir.NewDiagram()
	d.Entities = append(d.Entities, s.table.Entities()...)
	d.Relationships = append(d.Relationships, s.rels...)
	d.Constraints = append(d.Constraints, s.constraints.Global()...)
	d.Notes = append(d.Notes, s.notes...)
	d.Anchors = append(d.Anchors, s.anchors...)
	for k, v := range s.config {
		d.Config[k] = v
	}

	for _, g := range s.constraints.groups {
		if len(g.members) < 2 {
			diag.ReportWarning(s.reporter, diag.SemaXorArity, g.span,
				fmt.Sprintf("xor group %q has %d member(s), expected at least 2", g.id, len(g.members))).Emit()
		}
	}
	s.rules.checkDiagram(s.ruleContext(), d)
	return d
}
