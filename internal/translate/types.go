package translate

import "github.com/crogenix/tsfmt/ast"

func (t *translator) typeAnnotation(n ast.TypeAnnotation) {
	switch v := n.(type) {
	case *ast.TypeAnn:
		t.child("type", v.Type)
	case *ast.GenericTypeAnnotation:
		t.d.Text(v.ID)
		if len(v.TypeArgs) > 0 {
			t.d.Text("<")
			t.typeList("typeArgs", v.TypeArgs)
			t.d.Text(">")
		}
	case *ast.UnionTypeAnnotation:
		t.typeJoin("types", v.Types, " | ")
	case *ast.IntersectionTypeAnnotation:
		t.typeJoin("types", v.Types, " & ")
	case *ast.NullableTypeAnnotation:
		t.d.Text("?")
		t.child("type", v.Type)
	case *ast.ArrayTypeAnnotation:
		t.child("elementType", v.ElementType)
		t.d.Text("[]")
	case *ast.TupleTypeAnnotation:
		t.d.Text("[")
		t.typeList("types", v.Types)
		t.d.Text("]")
	case *ast.FunctionTypeAnnotation:
		t.d.Text("(")
		for i, p := range v.Params {
			if i > 0 {
				t.d.Text(", ")
			}
			if p.Name != "" {
				t.d.Text(p.Name + ": ")
			}
			t.p.Call("params", p.Type, func() { t.node(p.Type) })
		}
		t.d.Text(") => ")
		t.child("returnType", v.ReturnType)
	case *ast.TypeLiteral:
		if len(v.Members) == 0 {
			t.d.Text("{}")
			return
		}
		t.d.Text("{ ")
		for i, m := range v.Members {
			if i > 0 {
				t.d.Text("; ")
			}
			t.propertySignature(m)
		}
		t.d.Text(" }")
	case *ast.LiteralTypeAnnotation:
		t.d.Text(v.Raw)
	}
}

func (t *translator) typeList(name string, types []ast.TypeAnnotation) {
	for i, ty := range types {
		if i > 0 {
			t.d.Text(", ")
		}
		t.p.Call(name, ty, func() { t.node(ty) })
	}
}

func (t *translator) typeJoin(name string, types []ast.TypeAnnotation, sep string) {
	for i, ty := range types {
		if i > 0 {
			t.d.Text(sep)
		}
		t.p.Call(name, ty, func() { t.node(ty) })
	}
}

func (t *translator) propertySignature(m *ast.PropertySignature) {
	t.d.Text(m.Key)
	if m.Optional {
		t.d.Text("?")
	}
	t.d.Text(": ")
	t.p.Call("members", m, func() {
		t.child("type", m.Type)
	})
}
