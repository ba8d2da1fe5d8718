package ast

import "testing"

func TestInspectOrder(t *testing.T) {
	prog := &Program{Body: []Statement{
		&Package{Name: "shop", Body: []Statement{
			&Entity{
				Name:    "Order",
				Headers: []*Relationship{{From: "Order", To: "Base", RelKind: RelGeneralization}},
				Members: []Member{
					&Attribute{Name: "items", Type: &TypeAnnotation{
						TypeKind: TypeArray,
						Elem:     &TypeAnnotation{Name: "Item"},
					}},
				},
			},
		}},
	}}

	var kinds []NodeKind
	Inspect(prog, func(n Node) bool {
		kinds = append(kinds, n.Kind())
		return true
	})
	want := []NodeKind{NodeProgram, NodePackage, NodeEntity, NodeRelationship, NodeAttribute, NodeTypeAnnotation, NodeTypeAnnotation}
	if len(kinds) != len(want) {
		t.Fatalf("visited %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Fatalf("visit %d: got %v want %v", i, kinds[i], want[i])
		}
	}
}

func TestTypeAnnotationString(t *testing.T) {
	ty := &TypeAnnotation{TypeKind: TypeUnion, Args: []*TypeAnnotation{
		{TypeKind: TypeGeneric, Name: "Map", Args: []*TypeAnnotation{{Name: "K"}, {Name: "V"}}},
		{TypeKind: TypeArray, Elem: &TypeAnnotation{Name: "Item"}},
	}}
	if got := ty.String(); got != "Map<K, V> | Item[]" {
		t.Fatalf("String() = %q", got)
	}
	if got := ty.Args[1].BaseName(); got != "Item" {
		t.Fatalf("BaseName() = %q", got)
	}
}
