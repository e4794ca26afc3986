package translate

import "github.com/crogenix/tsfmt/ast"

func (t *translator) jsxElement(e *ast.JSXElement) {
	t.child("opening", e.Opening)
	if e.Opening.SelfClosing {
		return
	}
	t.jsxChildren(e.Children)
	t.child("closing", e.Closing)
}

func (t *translator) jsxOpeningElement(o *ast.JSXOpeningElement) {
	t.d.Text("<")
	t.child("name", o.Name)
	for _, a := range o.Attributes {
		t.d.Text(" ")
		t.p.Call("attributes", a, func() { t.node(a) })
	}
	if o.SelfClosing {
		t.d.Text(" />")
	} else {
		t.d.Text(">")
	}
}

func (t *translator) jsxClosingElement(c *ast.JSXClosingElement) {
	t.d.Text("</")
	t.child("name", c.Name)
	t.d.Text(">")
}

func (t *translator) jsxAttribute(a *ast.JSXAttribute) {
	t.d.Text(a.Name)
	if a.Value == nil {
		return
	}
	t.d.Text("=")
	t.p.Call("value", a.Value, func() { t.node(a.Value) })
}

func (t *translator) jsxSpreadAttribute(a *ast.JSXSpreadAttribute) {
	t.d.Text("{...")
	t.child("argument", a.Argument)
	t.d.Text("}")
}

func (t *translator) jsxFragment(f *ast.JSXFragment) {
	t.d.Text("<>")
	t.jsxChildren(f.Children)
	t.d.Text("</>")
}

// jsxChildren prints JSX children back to back, deliberately not reflowing JSX
// child whitespace beyond what the source already expresses (significant-whitespace text nodes
// are printed verbatim, element/expression children are printed via the normal child path).
func (t *translator) jsxChildren(children []ast.Node) {
	for _, c := range children {
		t.p.Call("children", c, func() { t.node(c) })
	}
}

func (t *translator) jsxExpressionContainer(c *ast.JSXExpressionContainer) {
	t.d.Text("{")
	if c.Expression != nil {
		t.child("expression", c.Expression)
	}
	t.danglingComments(c)
	t.d.Text("}")
}
