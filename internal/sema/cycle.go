package sema

import (
	"strings"

	"umlts/internal/diag"
	"umlts/internal/ir"
)

// cycleRule reports generalization cycles. The DFS keeps an explicit stack
// so the reported path lists entities in edge order, and stops exploring a
// component after its first cycle.
type cycleRule struct{}

func (cycleRule) Name() string { return "inheritance-cycle" }

type cycleEdge struct {
	to  string
	rel *ir.Relationship
}

const (
	white = iota
	grey
	black
)

type dfsFrame struct {
	node string
	next int
}

func (cycleRule) CheckDiagram(ctx *RuleContext, d *ir.Diagram) {
	edges := make(map[string][]cycleEdge)
	for _, r := range d.Relationships {
		if r.Kind == ir.RelGeneralization {
			edges[r.From] = append(edges[r.From], cycleEdge{to: r.To, rel: r})
		}
	}
	if len(edges) == 0 {
		return
	}

	color := make(map[string]int, len(d.Entities))
	for _, e := range d.Entities {
		if color[e.ID] != white || len(edges[e.ID]) == 0 {
			continue
		}
		stack := []dfsFrame{{node: e.ID}}
		color[e.ID] = grey
		found := false
		for len(stack) > 0 && !found {
			top := &stack[len(stack)-1]
			out := edges[top.node]
			if top.next >= len(out) {
				color[top.node] = black
				stack = stack[:len(stack)-1]
				continue
			}
			edge := out[top.next]
			top.next++
			switch color[edge.to] {
			case white:
				color[edge.to] = grey
				stack = append(stack, dfsFrame{node: edge.to})
			case grey:
				reportCycle(ctx, stack, edge)
				found = true
			}
		}
		for _, f := range stack {
			color[f.node] = black
		}
	}
}

func reportCycle(ctx *RuleContext, stack []dfsFrame, closing cycleEdge) {
	start := 0
	for i, f := range stack {
		if f.node == closing.to {
			start = i
			break
		}
	}
	path := make([]string, 0, len(stack)-start+1)
	for _, f := range stack[start:] {
		path = append(path, f.node)
	}
	path = append(path, closing.to)

	b := diag.ReportError(ctx.Reporter, diag.SemaCycleDetected, ctx.EntitySpan(path[0]),
		"inheritance cycle detected: "+strings.Join(path, " -> "))
	b.WithNote(ctx.RelationshipSpan(closing.rel), "cycle closes here")
	b.Emit()
}
