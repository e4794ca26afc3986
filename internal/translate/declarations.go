package translate

import (
	"strings"

	"github.com/crogenix/tsfmt/ast"
	"github.com/crogenix/tsfmt/doc"
	"github.com/crogenix/tsfmt/token"
)

func (t *translator) variableDeclaration(v *ast.VariableDeclaration) {
	t.d.Text(v.Kind + " ")
	for i, decl := range v.Declarations {
		if i > 0 {
			t.d.Text(", ")
		}
		t.p.Call("declarations", decl, func() {
			t.child("id", decl.ID)
			if decl.Init != nil {
				t.d.Text(" = ")
				t.child("init", decl.Init)
			}
		})
	}
}

// functionLike prints a function declaration or expression. keyword is "function" for both; the
// caller distinguishes a method shorthand by not routing through here at all (classLike prints
// MethodDefinition in methodDefinition).
func (t *translator) functionLike(id *ast.Identifier, params []ast.Pattern, body *ast.BlockStatement, async, generator bool, ret ast.TypeAnnotation, keyword string) {
	if async {
		t.d.Text("async ")
	}
	t.d.Text(keyword)
	if generator {
		t.d.Text("*")
	}
	t.d.Text(" ")
	if id != nil {
		t.child("id", id)
	}
	t.printParams(params)
	if ret != nil {
		t.d.Text(": ")
		t.child("returnType", ret)
	}
	t.d.Text(" ")
	t.child("body", body)
}

func (t *translator) printParams(params []ast.Pattern) {
	if len(params) == 0 {
		t.d.Text("()")
		return
	}
	t.d.Text("(")
	t.d.Group(func(*doc.Doc) {
		t.d.Indent(func(*doc.Doc) {
			t.d.SoftLine()
			for i, p := range params {
				if i > 0 {
					t.d.Text(",")
					t.d.Line()
				}
				t.paramChild(p)
			}
			t.printTrailingComma(len(params), true)
		})
		t.d.SoftLine()
	})
	t.d.Text(")")
}

func (t *translator) paramChild(p ast.Pattern) {
	if p == nil {
		return
	}
	t.p.Call("params", p, func() { t.node(p) })
}

func (t *translator) classLike(id *ast.Identifier, superClass ast.Expr, body *ast.ClassBody) {
	t.d.Text("class")
	if id != nil {
		t.d.Text(" ")
		t.child("id", id)
	}
	if superClass != nil {
		t.d.Text(" extends ")
		t.child("superClass", superClass)
	}
	t.d.Text(" ")
	t.child("body", body)
}

func (t *translator) classBody(b *ast.ClassBody) {
	if len(b.Body) == 0 && len(ast.CommentsOf(b).Dangling) == 0 {
		t.d.Text("{}")
		return
	}
	t.d.Text("{")
	t.d.Indent(func(*doc.Doc) {
		t.d.HardLine()
		prevEnd := token.Pos(-1)
		for _, m := range b.Body {
			if prevEnd >= 0 {
				t.d.HardLine()
				if t.countNewlines(prevEnd, effectiveStart(m)) >= 2 {
					t.d.HardLine()
				}
			}
			t.child("body", m)
			if _, ok := m.(*ast.PropertyDefinition); ok && t.opts.Semi {
				t.d.Text(";")
			}
			prevEnd = m.End()
		}
		t.danglingComments(b)
	})
	t.d.HardLine()
	t.d.Text("}")
}

func (t *translator) methodDefinition(m *ast.MethodDefinition) {
	if m.Static {
		t.d.Text("static ")
	}
	if m.Kind == "get" || m.Kind == "set" {
		t.d.Text(m.Kind + " ")
	}
	if m.Value.Async {
		t.d.Text("async ")
	}
	if m.Value.Generator {
		t.d.Text("*")
	}
	t.methodKey(m.Key, m.Computed)
	t.printParams(m.Value.Params)
	if m.Value.ReturnType != nil {
		t.d.Text(": ")
		t.child("returnType", m.Value.ReturnType)
	}
	t.d.Text(" ")
	t.child("body", m.Value.Body)
}

func (t *translator) methodKey(key ast.Expr, computed bool) {
	if computed {
		t.d.Text("[")
		t.child("key", key)
		t.d.Text("]")
	} else {
		t.child("key", key)
	}
}

func (t *translator) propertyDefinition(p *ast.PropertyDefinition) {
	if p.Static {
		t.d.Text("static ")
	}
	t.methodKey(p.Key, p.Computed)
	if p.TypeAnn != nil {
		t.d.Text(": ")
		t.child("typeAnn", p.TypeAnn)
	}
	if p.Value != nil {
		t.d.Text(" = ")
		t.child("value", p.Value)
	}
}

func (t *translator) importDeclaration(v *ast.ImportDeclaration) {
	t.d.Text("import ")
	wroteAny := false
	if v.Default != nil {
		t.child("default", v.Default)
		wroteAny = true
	}
	if v.Namespace != nil {
		if wroteAny {
			t.d.Text(", ")
		}
		t.d.Text("* as ")
		t.child("namespace", v.Namespace)
		wroteAny = true
	}
	if len(v.Named) > 0 || (!wroteAny && v.Namespace == nil) {
		if wroteAny {
			t.d.Text(", ")
		}
		t.d.Text("{")
		if len(v.Named) > 0 {
			t.d.Text(" ")
			for i := range v.Named {
				if i > 0 {
					t.d.Text(", ")
				}
				t.importSpecifier(&v.Named[i])
			}
			t.d.Text(" ")
		}
		t.d.Text("}")
		wroteAny = true
	}
	if wroteAny {
		t.d.Text(" from ")
	}
	t.d.Text(t.quote(unquoteRaw(v.Source)))
}

func (t *translator) importSpecifier(s *ast.ImportSpecifier) {
	t.d.Text(s.Imported.Name)
	if s.Local.Name != s.Imported.Name {
		t.d.Text(" as " + s.Local.Name)
	}
}

func (t *translator) exportNamedDeclaration(v *ast.ExportNamedDeclaration) {
	t.d.Text("export ")
	if v.Declaration != nil {
		t.child("declaration", v.Declaration)
		return
	}
	t.d.Text("{")
	if len(v.Specifiers) > 0 {
		t.d.Text(" ")
		for i := range v.Specifiers {
			if i > 0 {
				t.d.Text(", ")
			}
			t.exportSpecifier(&v.Specifiers[i])
		}
		t.d.Text(" ")
	}
	t.d.Text("}")
	if v.Source != "" {
		t.d.Text(" from " + t.quote(unquoteRaw(v.Source)))
	}
}

func (t *translator) exportSpecifier(s *ast.ExportSpecifier) {
	t.d.Text(s.Local.Name)
	if s.Exported.Name != s.Local.Name {
		t.d.Text(" as " + s.Exported.Name)
	}
}

func (t *translator) exportDefaultDeclaration(v *ast.ExportDefaultDeclaration) {
	t.d.Text("export default ")
	t.child("declaration", v.Declaration)
}

func (t *translator) exportAllDeclaration(v *ast.ExportAllDeclaration) {
	t.d.Text("export *")
	if v.Exported != nil {
		t.d.Text(" as ")
		t.child("exported", v.Exported)
	}
	t.d.Text(" from " + t.quote(unquoteRaw(v.Source)))
}

// unquoteRaw strips the surrounding quote characters from a raw string literal (as stored
// verbatim on ImportDeclaration/ExportNamedDeclaration/ExportAllDeclaration.Source) and undoes
// the escaping of that quote character and backslashes, recovering the bare module specifier so
// it can be re-quoted per the singleQuote option.
func unquoteRaw(raw string) string {
	if len(raw) < 2 {
		return raw
	}
	q := raw[0]
	inner := raw[1 : len(raw)-1]
	var b strings.Builder
	for i := 0; i < len(inner); i++ {
		c := inner[i]
		if c == '\\' && i+1 < len(inner) && (inner[i+1] == q || inner[i+1] == '\\') {
			i++
			b.WriteByte(inner[i])
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}
