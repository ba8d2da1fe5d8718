package ast

// Inspect traverses the tree depth-first in source order. If fn returns
// false the children of the node are skipped.
func Inspect(n Node, fn func(Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	switch x := n.(type) {
	case *Program:
		for _, s := range x.Body {
			Inspect(s, fn)
		}
	case *Package:
		for _, s := range x.Body {
			Inspect(s, fn)
		}
	case *Entity:
		for _, h := range x.Headers {
			Inspect(h, fn)
		}
		if x.AliasOf != nil {
			Inspect(x.AliasOf, fn)
		}
		for _, m := range x.Members {
			Inspect(m, fn)
		}
	case *AssociationClass:
		for _, p := range x.Participants {
			Inspect(p, fn)
		}
		for _, m := range x.Members {
			Inspect(m, fn)
		}
	case *Participant:
		for _, r := range x.Chain {
			Inspect(r, fn)
		}
	case *Constraint:
		for _, r := range x.Relationships {
			Inspect(r, fn)
		}
		for _, m := range x.Members {
			Inspect(m, fn)
		}
	case *Note:
		for _, a := range x.Anchors {
			Inspect(a, fn)
		}
	case *Attribute:
		if x.Type != nil {
			Inspect(x.Type, fn)
		}
	case *Method:
		for _, p := range x.Params {
			Inspect(p, fn)
		}
		if x.ReturnType != nil {
			Inspect(x.ReturnType, fn)
		}
	case *Parameter:
		if x.Type != nil {
			Inspect(x.Type, fn)
		}
	case *TypeAnnotation:
		if x.Elem != nil {
			Inspect(x.Elem, fn)
		}
		for _, a := range x.Args {
			Inspect(a, fn)
		}
	}
}
