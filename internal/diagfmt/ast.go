package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"umlts/internal/ast"
	"umlts/internal/source"
)

// ASTNodeOutput is the dump shape shared by the tree and JSON views.
type ASTNodeOutput struct {
	Kind     string            `json:"kind"`
	Label    string            `json:"label,omitempty"`
	Span     string            `json:"span,omitempty"`
	Fields   map[string]string `json:"fields,omitempty"`
	Children []*ASTNodeOutput  `json:"children,omitempty"`
}

func (n *ASTNodeOutput) set(key, value string) *ASTNodeOutput {
	if value == "" {
		return n
	}
	if n.Fields == nil {
		n.Fields = make(map[string]string)
	}
	n.Fields[key] = value
	return n
}

func (n *ASTNodeOutput) add(child *ASTNodeOutput) {
	if child != nil {
		n.Children = append(n.Children, child)
	}
}

// BuildASTOutput converts a program into the dump tree.
func BuildASTOutput(prog *ast.Program, fs *source.FileSet) *ASTNodeOutput {
	if prog == nil {
		return &ASTNodeOutput{Kind: "Program", Label: "<nil>"}
	}
	root := nodeOut(prog, "", fs)
	for _, s := range prog.Body {
		root.add(buildNode(s, fs))
	}
	return root
}

func nodeOut(n ast.Node, label string, fs *source.FileSet) *ASTNodeOutput {
	return &ASTNodeOutput{Kind: n.Kind().String(), Label: label, Span: formatSpan(n.Pos(), fs)}
}

func buildNode(n ast.Node, fs *source.FileSet) *ASTNodeOutput {
	switch x := n.(type) {
	case *ast.Package:
		out := nodeOut(x, x.Name, fs).set("doc", x.Doc)
		for _, s := range x.Body {
			out.add(buildNode(s, fs))
		}
		return out
	case *ast.Entity:
		out := nodeOut(x, x.Name, fs).
			set("kind", x.EntityKind.String()).
			set("modifiers", modifiers(x.Modifiers)).
			set("type_params", strings.Join(x.TypeParams, ", ")).
			set("alias_of", x.AliasOf.String()).
			set("doc", x.Doc)
		for _, h := range x.Headers {
			out.add(buildNode(h, fs))
		}
		for _, m := range x.Members {
			out.add(buildNode(m, fs))
		}
		return out
	case *ast.AssociationClass:
		out := nodeOut(x, x.Name, fs).set("modifiers", modifiers(x.Modifiers)).set("doc", x.Doc)
		for _, p := range x.Participants {
			out.add(buildNode(p, fs))
		}
		for _, m := range x.Members {
			out.add(buildNode(m, fs))
		}
		return out
	case *ast.Participant:
		out := nodeOut(x, x.Name, fs).set("multiplicity", multiplicity(x.Multiplicity))
		for _, r := range x.Chain {
			out.add(buildNode(r, fs))
		}
		return out
	case *ast.Relationship:
		out := nodeOut(x, x.From+" "+x.RelKind.String()+" "+x.To, fs).
			set("from_mult", multiplicity(x.FromMult)).
			set("to_mult", multiplicity(x.ToMult)).
			set("label", x.Label).
			set("xor", x.XorGroup).
			set("doc", x.Doc)
		if !x.Navigable {
			out.set("navigable", "false")
		}
		return out
	case *ast.Attribute:
		return nodeOut(x, x.Name, fs).
			set("visibility", x.Visibility.String()).
			set("modifiers", modifiers(x.Modifiers)).
			set("type", x.Type.String()).
			set("optional", boolField(x.Optional)).
			set("multiplicity", multiplicity(x.Multiplicity)).
			set("default", x.Default).
			set("xor", x.XorGroup).
			set("doc", x.Doc)
	case *ast.Method:
		out := nodeOut(x, x.Name, fs).
			set("visibility", x.Visibility.String()).
			set("modifiers", modifiers(x.Modifiers)).
			set("returns", x.ReturnType.String()).
			set("xor", x.XorGroup).
			set("doc", x.Doc)
		for _, p := range x.Params {
			out.add(buildNode(p, fs))
		}
		return out
	case *ast.Parameter:
		return nodeOut(x, x.Name, fs).set("type", x.Type.String()).set("default", x.Default)
	case *ast.EnumLiteral:
		return nodeOut(x, x.Name, fs).set("doc", x.Doc)
	case *ast.Constraint:
		out := nodeOut(x, x.Group, fs).set("kind", x.ConstraintKind)
		for _, r := range x.Relationships {
			out.add(buildNode(r, fs))
		}
		for _, m := range x.Members {
			out.add(buildNode(m, fs))
		}
		return out
	case *ast.Note:
		out := nodeOut(x, x.Name, fs).set("text", x.Text)
		for _, a := range x.Anchors {
			out.add(nodeOut(a, a.Target, fs))
		}
		return out
	case *ast.Config:
		out := nodeOut(x, "", fs)
		if x.Directive {
			out.set("directive", "true")
		}
		for _, e := range x.Entries {
			out.set(e.Key, fmt.Sprint(e.Value))
		}
		return out
	case *ast.Comment:
		return nodeOut(x, "", fs).set("text", x.Text)
	case *ast.DocComment:
		return nodeOut(x, "", fs).set("text", x.Text)
	case nil:
		return nil
	default:
		return nodeOut(n, "", fs)
	}
}

func modifiers(m ast.Modifiers) string {
	if !m.Any() {
		return ""
	}
	var parts []string
	for _, p := range []struct {
		on   bool
		name string
	}{{m.Abstract, "abstract"}, {m.Static, "static"}, {m.Final, "final"}, {m.Leaf, "leaf"}, {m.Root, "root"}} {
		if p.on {
			parts = append(parts, p.name)
		}
	}
	return strings.Join(parts, " ")
}

func multiplicity(m *ast.Multiplicity) string {
	if m == nil {
		return ""
	}
	upper := "*"
	if m.Upper >= 0 {
		upper = strconv.Itoa(m.Upper)
	}
	if m.Upper >= 0 && m.Lower == m.Upper {
		return upper
	}
	return strconv.Itoa(m.Lower) + ".." + upper
}

func boolField(b bool) string {
	if b {
		return "true"
	}
	return ""
}

func formatSpan(span source.Span, fs *source.FileSet) string {
	if fs == nil {
		return fmt.Sprintf("%d..%d", span.Start, span.End)
	}
	start, end := fs.Resolve(span)
	return fmt.Sprintf("%d:%d-%d:%d", start.Line, start.Col, end.Line, end.Col)
}

// FormatASTPretty prints the program as an indented tree:
//
//	Program (1:1-3:2)
//	└── Entity Order (1:1-3:2) {kind=class}
//	    └── Attribute id (2:3-2:13) {type=string}
func FormatASTPretty(w io.Writer, prog *ast.Program, fs *source.FileSet) error {
	var sb strings.Builder
	root := BuildASTOutput(prog, fs)
	writeTreeLine(&sb, root)
	writeTreeChildren(&sb, root, "")
	_, err := io.WriteString(w, sb.String())
	return err
}

func writeTreeChildren(sb *strings.Builder, n *ASTNodeOutput, prefix string) {
	for i, c := range n.Children {
		last := i == len(n.Children)-1
		branch, next := "├── ", "│   "
		if last {
			branch, next = "└── ", "    "
		}
		sb.WriteString(prefix + branch)
		writeTreeLine(sb, c)
		writeTreeChildren(sb, c, prefix+next)
	}
}

func writeTreeLine(sb *strings.Builder, n *ASTNodeOutput) {
	sb.WriteString(n.Kind)
	if n.Label != "" {
		sb.WriteString(" " + n.Label)
	}
	if n.Span != "" {
		sb.WriteString(" (" + n.Span + ")")
	}
	if len(n.Fields) > 0 {
		keys := make([]string, 0, len(n.Fields))
		for k := range n.Fields {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = k + "=" + strconv.Quote(n.Fields[k])
		}
		sb.WriteString(" {" + strings.Join(parts, ", ") + "}")
	}
	sb.WriteString("\n")
}

// FormatASTJSON writes the dump tree as JSON.
func FormatASTJSON(w io.Writer, prog *ast.Program, fs *source.FileSet) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(BuildASTOutput(prog, fs))
}
