package translate

import (
	"github.com/crogenix/tsfmt/ast"
	"github.com/crogenix/tsfmt/doc"
	"github.com/crogenix/tsfmt/options"
)

// dispatchExprPatternType is the fallback arm of dispatch for every node kind that is not a
// statement, declaration, or class member: expressions, patterns, types, and JSX. It exists as a
// separate entry point purely to keep dispatch's type switch from growing unwieldy.
func (t *translator) dispatchExprPatternType(n ast.Node) {
	switch v := n.(type) {
	case *ast.Identifier:
		t.identifier(v)
	case *ast.Literal:
		t.literal(v)
	case *ast.TemplateLiteral:
		t.templateLiteral(v)
	case *ast.TaggedTemplateExpression:
		t.child("tag", v.Tag)
		t.child("quasi", v.Quasi)
	case *ast.BinaryExpression:
		t.binaryLike(v.Left, v.Operator, v.Right)
	case *ast.LogicalExpression:
		t.binaryLike(v.Left, v.Operator, v.Right)
	case *ast.AssignmentExpression:
		t.p.Call("left", v.Left, func() { t.node(v.Left) })
		t.d.Text(" " + v.Operator + " ")
		t.child("right", v.Right)
	case *ast.ConditionalExpression:
		t.conditionalExpression(v)
	case *ast.UnaryExpression:
		t.unaryExpression(v)
	case *ast.UpdateExpression:
		t.updateExpression(v)
	case *ast.MemberExpression:
		t.memberExpression(v)
	case *ast.CallExpression:
		t.callExpression(v)
	case *ast.NewExpression:
		t.newExpression(v)
	case *ast.SequenceExpression:
		t.children("expressions", exprsToNodes(v.Expressions), func() { t.d.Text(", ") })
	case *ast.SpreadElement:
		t.d.Text("...")
		t.child("argument", v.Argument)
	case *ast.ArrayExpression:
		t.arrayExpression(v)
	case *ast.ObjectExpression:
		t.objectExpression(v)
	case *ast.Property:
		t.property(v)
	case *ast.ArrowFunctionExpression:
		t.arrowFunctionExpression(v)
	case *ast.FunctionExpression:
		t.functionLike(v.ID, v.Params, v.Body, v.Async, v.Generator, v.ReturnType, "function")
	case *ast.ClassExpression:
		t.classLike(v.ID, v.SuperClass, v.Body)
	case *ast.YieldExpression:
		t.yieldExpression(v)
	case *ast.AwaitExpression:
		t.d.Text("await ")
		t.child("argument", v.Argument)
	case *ast.TSAsExpression:
		t.child("expression", v.Expression)
		t.d.Text(" as ")
		t.child("typeAnn", v.TypeAnn)
	case *ast.TSNonNullExpression:
		t.child("expression", v.Expression)
		t.d.Text("!")
	case *ast.ThisExpression:
		t.d.Text("this")
	case *ast.SuperExpression:
		t.d.Text("super")

	// patterns not already covered by the expression cases above (Identifier/MemberExpression
	// double as patterns and are handled by their expression printers)
	case *ast.ArrayPattern:
		t.arrayPattern(v)
	case *ast.ObjectPattern:
		t.objectPattern(v)
	case *ast.AssignmentPattern:
		t.child("left", v.Left)
		t.d.Text(" = ")
		t.child("right", v.Right)
	case *ast.RestElement:
		t.d.Text("...")
		t.child("argument", v.Argument)
		t.printOptionalTypeAnn(v.TypeAnn)

	// types
	case *ast.TypeAnn, *ast.GenericTypeAnnotation, *ast.UnionTypeAnnotation,
		*ast.IntersectionTypeAnnotation, *ast.NullableTypeAnnotation, *ast.ArrayTypeAnnotation,
		*ast.TupleTypeAnnotation, *ast.FunctionTypeAnnotation, *ast.TypeLiteral,
		*ast.LiteralTypeAnnotation:
		t.typeAnnotation(v.(ast.TypeAnnotation))

	// JSX
	case *ast.JSXElement:
		t.jsxElement(v)
	case *ast.JSXFragment:
		t.jsxFragment(v)
	case *ast.JSXOpeningElement:
		t.jsxOpeningElement(v)
	case *ast.JSXClosingElement:
		t.jsxClosingElement(v)
	case *ast.JSXAttribute:
		t.jsxAttribute(v)
	case *ast.JSXSpreadAttribute:
		t.jsxSpreadAttribute(v)
	case *ast.JSXExpressionContainer:
		t.jsxExpressionContainer(v)
	case *ast.JSXText:
		t.d.Text(v.Value)
	case *ast.JSXIdentifier:
		t.d.Text(v.Name)
	case *ast.JSXMemberExpression:
		t.child("object", v.Object)
		t.d.Text(".")
		t.p.Call("property", &v.Property, func() { t.node(&v.Property) })
	}
}

func exprsToNodes(es []ast.Expr) []ast.Node {
	ns := make([]ast.Node, len(es))
	for i, e := range es {
		ns[i] = e
	}
	return ns
}

func (t *translator) identifier(id *ast.Identifier) {
	t.d.Text(id.Name)
	if id.Optional {
		t.d.Text("?")
	}
	t.printOptionalTypeAnn(id.TypeAnn)
}

func (t *translator) printOptionalTypeAnn(ta ast.TypeAnnotation) {
	if ta == nil {
		return
	}
	t.d.Text(": ")
	t.child("typeAnn", ta)
}

func (t *translator) literal(lit *ast.Literal) {
	if lit.Kind == ast.StringLiteral {
		t.d.Text(t.quote(lit.Value))
		return
	}
	t.d.Text(lit.Raw)
}

// templateLiteral interleaves quasis and substitutions. Quasi text is emitted with LiteralLine so
// an embedded newline in the source template is reproduced exactly rather than reindented.
func (t *translator) templateLiteral(tl *ast.TemplateLiteral) {
	t.d.Text("`")
	for i, q := range tl.Quasis {
		t.writeTemplateChunk(q)
		if i < len(tl.Expressions) {
			t.d.Text("${")
			t.child("expressions", tl.Expressions[i])
			t.d.Text("}")
		}
	}
	t.d.Text("`")
}

func (t *translator) writeTemplateChunk(q string) {
	lines := splitLines(q)
	for i, line := range lines {
		if i > 0 {
			t.d.LiteralLine()
		}
		t.d.Text(line)
	}
}

func splitLines(s string) []string {
	var out []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			out = append(out, s[start:i])
			start = i + 1
		}
	}
	out = append(out, s[start:])
	return out
}

// binaryLike prints a binary/logical expression. The oracle (internal/path) decides parens for
// the operands via the normal child()/node() path, so this only has to lay out "left op right"
// with group/line points for the width-aware layout engine to break at the operator when the
// whole chain doesn't fit.
func (t *translator) binaryLike(left ast.Expr, op string, right ast.Expr) {
	t.d.Group(func(*doc.Doc) {
		t.p.Call("left", left, func() { t.node(left) })
		t.d.Text(" " + op)
		t.d.Line()
		t.p.Call("right", right, func() { t.node(right) })
	})
}

func (t *translator) conditionalExpression(c *ast.ConditionalExpression) {
	t.d.Group(func(*doc.Doc) {
		t.child("test", c.Test)
		t.d.Indent(func(*doc.Doc) {
			t.d.Line()
			t.d.Text("? ")
			t.child("consequent", c.Consequent)
			t.d.Line()
			t.d.Text(": ")
			t.child("alternate", c.Alternate)
		})
	})
}

func (t *translator) unaryExpression(u *ast.UnaryExpression) {
	t.d.Text(u.Operator)
	if isWordOperator(u.Operator) {
		t.d.Text(" ")
	}
	t.child("argument", u.Argument)
}

func isWordOperator(op string) bool {
	switch op {
	case "typeof", "void", "delete":
		return true
	}
	return false
}

func (t *translator) updateExpression(u *ast.UpdateExpression) {
	if u.Prefix {
		t.d.Text(u.Operator)
		t.child("argument", u.Argument)
		return
	}
	t.child("argument", u.Argument)
	t.d.Text(u.Operator)
}

func (t *translator) memberExpression(m *ast.MemberExpression) {
	t.child("object", m.Object)
	if m.Optional {
		t.d.Text("?.")
	} else if m.Computed {
		// no separator before `[`
	} else {
		t.d.Text(".")
	}
	if m.Computed {
		t.d.Text("[")
		t.child("property", m.Property)
		t.d.Text("]")
	} else {
		t.child("property", m.Property)
	}
}

func (t *translator) callExpression(c *ast.CallExpression) {
	t.child("callee", c.Callee)
	if c.Optional {
		t.d.Text("?.")
	}
	t.printTypeArgs(c.TypeArgs)
	t.printArguments(c.Arguments)
}

func (t *translator) newExpression(n *ast.NewExpression) {
	t.d.Text("new ")
	t.child("callee", n.Callee)
	t.printTypeArgs(n.TypeArgs)
	if n.Arguments != nil {
		t.printArguments(n.Arguments)
	}
}

func (t *translator) printTypeArgs(args []ast.TypeAnnotation) {
	if len(args) == 0 {
		return
	}
	t.d.Text("<")
	t.typeList("typeArgs", args)
	t.d.Text(">")
}

func (t *translator) printArguments(args []ast.Expr) {
	if len(args) == 0 {
		t.d.Text("()")
		return
	}
	t.d.Text("(")
	t.d.Group(func(*doc.Doc) {
		t.d.Indent(func(*doc.Doc) {
			t.d.SoftLine()
			for i, a := range args {
				if i > 0 {
					t.d.Text(",")
					t.d.Line()
				}
				t.p.Call("arguments", a, func() { t.node(a) })
			}
			t.printTrailingComma(len(args), true)
		})
		t.d.SoftLine()
	})
	t.d.Text(")")
}

func (t *translator) arrayExpression(a *ast.ArrayExpression) {
	if len(a.Elements) == 0 {
		if len(ast.CommentsOf(a).Dangling) == 0 {
			t.d.Text("[]")
			return
		}
		// A dangling comment inside otherwise-empty brackets always breaks: a line comment
		// rendered flat would swallow the closing bracket onto its own comment line.
		t.d.Text("[")
		t.d.Indent(func(*doc.Doc) {
			t.d.HardLine()
			t.danglingComments(a)
		})
		t.d.HardLine()
		t.d.Text("]")
		return
	}
	t.d.Text("[")
	t.d.Group(func(*doc.Doc) {
		t.d.Indent(func(*doc.Doc) {
			t.d.SoftLine()
			for i, e := range a.Elements {
				if i > 0 {
					t.d.Text(",")
					t.d.Line()
				}
				if e == nil {
					continue // elision: `[1, , 3]`
				}
				t.p.Call("elements", e, func() { t.node(e) })
			}
			t.printTrailingComma(len(a.Elements), false)
		})
		t.d.SoftLine()
	})
	t.d.Text("]")
}

func (t *translator) arrayPattern(a *ast.ArrayPattern) {
	t.d.Text("[")
	for i, e := range a.Elements {
		if i > 0 {
			t.d.Text(", ")
		}
		if e == nil {
			continue
		}
		t.p.Call("elements", e, func() { t.node(e) })
	}
	t.d.Text("]")
	t.printOptionalTypeAnn(a.TypeAnn)
}

func (t *translator) objectPattern(o *ast.ObjectPattern) {
	if len(o.Properties) == 0 {
		t.d.Text("{}")
		t.printOptionalTypeAnn(o.TypeAnn)
		return
	}
	pad := " "
	if !t.opts.BracketSpacing {
		pad = ""
	}
	t.d.Text("{" + pad)
	for i, p := range o.Properties {
		if i > 0 {
			t.d.Text(", ")
		}
		t.p.Call("properties", p, func() { t.objectPatternProperty(p) })
	}
	t.d.Text(pad + "}")
	t.printOptionalTypeAnn(o.TypeAnn)
}

func (t *translator) objectPatternProperty(p *ast.ObjectPatternProperty) {
	if p.Rest {
		t.d.Text("...")
		t.child("value", p.Value)
		return
	}
	if !p.Shorthand {
		t.methodKey(p.Key, p.Computed)
		t.d.Text(": ")
	}
	t.child("value", p.Value)
}

func (t *translator) objectExpression(o *ast.ObjectExpression) {
	if len(o.Properties) == 0 {
		if len(ast.CommentsOf(o).Dangling) == 0 {
			t.d.Text("{}")
			return
		}
		// A dangling comment inside otherwise-empty braces always breaks: a line comment rendered
		// flat would swallow the closing brace onto its own comment line.
		t.d.Text("{")
		t.d.Indent(func(*doc.Doc) {
			t.d.HardLine()
			t.danglingComments(o)
		})
		t.d.HardLine()
		t.d.Text("}")
		return
	}
	t.d.Text("{")
	t.d.Group(func(*doc.Doc) {
		t.d.Indent(func(*doc.Doc) {
			t.braceLine()
			for i, p := range o.Properties {
				if i > 0 {
					t.d.Text(",")
					t.d.Line()
				}
				t.p.Call("properties", p, func() { t.node(p) })
			}
			t.printTrailingComma(len(o.Properties), false)
		})
		t.braceLine()
	})
	t.d.Text("}")
}

// braceLine renders as a space when flat and BracketSpacing is set (the `{ a }` style), or
// nothing when flat and it is not (`{a}`); broken rendering is a newline either way.
func (t *translator) braceLine() {
	if t.opts.BracketSpacing {
		t.d.Line()
		return
	}
	t.d.SoftLine()
}

func (t *translator) property(p *ast.Property) {
	if p.Kind == "get" || p.Kind == "set" {
		t.d.Text(p.Kind + " ")
		t.methodKey(p.Key, p.Computed)
		if fn, ok := p.Value.(*ast.FunctionExpression); ok {
			t.printParams(fn.Params)
			t.d.Text(" ")
			t.child("body", fn.Body)
		}
		return
	}
	if p.Method {
		fn := p.Value.(*ast.FunctionExpression)
		if fn.Async {
			t.d.Text("async ")
		}
		if fn.Generator {
			t.d.Text("*")
		}
		t.methodKey(p.Key, p.Computed)
		t.printParams(fn.Params)
		t.d.Text(" ")
		t.child("body", fn.Body)
		return
	}
	if p.Shorthand {
		t.child("value", p.Value)
		return
	}
	t.methodKey(p.Key, p.Computed)
	t.d.Text(": ")
	t.child("value", p.Value)
}

// printTrailingComma emits a trailing comma when the enclosing group breaks, per the configured
// TrailingComma mode. functionList distinguishes function parameter lists and call argument
// lists, which real ES5 engines never allowed a trailing comma in, from array/object literals and
// destructuring patterns, which they did: under TrailingCommaES5 a function list gets none, same
// as TrailingCommaNone, while every other list gets one.
func (t *translator) printTrailingComma(count int, functionList bool) {
	if count == 0 {
		return
	}
	switch t.opts.TrailingComma {
	case options.TrailingCommaNone:
		return
	case options.TrailingCommaES5:
		if functionList {
			return
		}
		t.d.IfBreak(func(*doc.Doc) { t.d.Text(",") }, nil)
	default:
		t.d.IfBreak(func(*doc.Doc) { t.d.Text(",") }, nil)
	}
}

func (t *translator) arrowFunctionExpression(a *ast.ArrowFunctionExpression) {
	if a.Async {
		t.d.Text("async ")
	}
	t.printParams(a.Params)
	if a.ReturnType != nil {
		t.d.Text(": ")
		t.child("returnType", a.ReturnType)
	}
	t.d.Text(" => ")
	if block, ok := a.Body.(*ast.BlockStatement); ok {
		t.child("body", block)
		return
	}
	t.p.Call("body", a.Body, func() { t.node(a.Body) })
}

func (t *translator) yieldExpression(y *ast.YieldExpression) {
	t.d.Text("yield")
	if y.Delegate {
		t.d.Text("*")
	}
	if y.Argument != nil {
		t.d.Text(" ")
		t.child("argument", y.Argument)
	}
}
