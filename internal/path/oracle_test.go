package path

import (
	"testing"

	"github.com/teleivo/assertive/assert"

	"github.com/crogenix/tsfmt/ast"
)

func ident(name string) *ast.Identifier { return &ast.Identifier{Name: name} }

func TestNeedsParensBinaryPrecedence(t *testing.T) {
	tests := map[string]struct {
		parent *ast.LogicalExpression
		child  ast.Node
		name   string
		want   bool
	}{
		// a || b && c: mixing && under || always gets parenthesized, so it prints a || (b && c).
		"AndUnderOr": {
			parent: &ast.LogicalExpression{Operator: "||"},
			child:  &ast.LogicalExpression{Operator: "&&"},
			name:   "right",
			want:   true,
		},
		// a && b || c: the || child needs parens under &&.
		"OrUnderAnd": {
			parent: &ast.LogicalExpression{Operator: "&&"},
			child:  &ast.LogicalExpression{Operator: "||"},
			name:   "right",
			want:   true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			p := New(test.parent)
			p.Call(test.name, test.child, func() {
				got := p.NeedsParens()
				assert.Equalsf(t, test.want, got, "needsParens for %s", name)
			})
		})
	}
}

func TestNeedsParensEqualPrecedenceLeftAssociativity(t *testing.T) {
	parent := &ast.BinaryExpression{Operator: "-"}
	child := &ast.BinaryExpression{Operator: "-"}
	p := New(parent)

	p.Call("right", child, func() {
		assert.True(t, p.NeedsParens())
	})
	p.Call("left", child, func() {
		assert.False(t, p.NeedsParens())
	})
}

func TestNeedsParensExponentiation(t *testing.T) {
	parent := &ast.BinaryExpression{Operator: "**"}
	child := &ast.BinaryExpression{Operator: "**"}
	p := New(parent)

	// (a ** b) ** c: the left child always needs parens.
	p.Call("left", child, func() {
		assert.True(t, p.NeedsParens())
	})
	// a ** (b ** c): the right child composes naturally, right-associative.
	p.Call("right", child, func() {
		assert.False(t, p.NeedsParens())
	})
}

func TestNeedsParensBitwiseMixed(t *testing.T) {
	parent := &ast.BinaryExpression{Operator: "+"}
	child := &ast.BinaryExpression{Operator: "|"}
	p := New(parent)
	p.Call("left", child, func() {
		assert.True(t, p.NeedsParens())
	})
}

func TestNeedsParensNewExpressionCallee(t *testing.T) {
	inner := &ast.CallExpression{Callee: ident("f")}
	outer := &ast.NewExpression{Callee: inner}
	p := New(outer)
	p.Call("callee", inner, func() {
		assert.True(t, p.NeedsParens())
	})
}

func TestNeedsParensNewExpressionCalleeMemberChain(t *testing.T) {
	call := &ast.CallExpression{Callee: ident("f")}
	member := &ast.MemberExpression{Object: call, Property: ident("b")}
	outer := &ast.NewExpression{Callee: member}
	p := New(outer)
	p.Call("callee", member, func() {
		assert.True(t, p.NeedsParens())
	})
}

func TestNeedsParensNewExpressionCalleePlainMember(t *testing.T) {
	member := &ast.MemberExpression{Object: ident("a"), Property: ident("b")}
	outer := &ast.NewExpression{Callee: member}
	p := New(outer)
	p.Call("callee", member, func() {
		assert.False(t, p.NeedsParens())
	})
}

func TestNeedsParensBinaryAsMemberObject(t *testing.T) {
	bin := &ast.BinaryExpression{Operator: "+", Left: ident("a"), Right: ident("b")}
	m := &ast.MemberExpression{Object: bin, Property: ident("c")}
	p := New(m)
	p.Call("object", bin, func() {
		assert.True(t, p.NeedsParens())
	})
}

func TestNeedsParensUnaryAsMemberObject(t *testing.T) {
	u := &ast.UnaryExpression{Operator: "!", Argument: ident("a")}
	m := &ast.MemberExpression{Object: u, Property: ident("b")}
	p := New(m)
	p.Call("object", u, func() {
		assert.True(t, p.NeedsParens())
	})
}

func TestNeedsParensSequenceExpression(t *testing.T) {
	seq := &ast.SequenceExpression{Expressions: []ast.Expr{ident("a"), ident("b")}}

	ret := &ast.ReturnStatement{Argument: seq}
	p := New(ret)
	p.Call("argument", seq, func() {
		assert.False(t, p.NeedsParens())
	})

	call := &ast.CallExpression{Callee: ident("f"), Arguments: []ast.Expr{seq}}
	p2 := New(call)
	p2.Call("arguments", seq, func() {
		assert.True(t, p2.NeedsParens())
	})
}

func TestNeedsParensArrowAtStatementStart(t *testing.T) {
	arrow := &ast.ArrowFunctionExpression{Body: ident("a")}
	stmt := &ast.ExpressionStatement{Expression: arrow}
	p := New(stmt)
	p.Call("expression", arrow, func() {
		assert.True(t, p.NeedsParens())
	})
}

func TestNeedsParensArrowAsCallArgument(t *testing.T) {
	arrow := &ast.ArrowFunctionExpression{Body: ident("a")}
	call := &ast.CallExpression{Callee: ident("f"), Arguments: []ast.Expr{arrow}}
	p := New(call)
	p.Call("arguments", arrow, func() {
		assert.False(t, p.NeedsParens())
	})
}

func TestNeedsParensNumericLiteralMemberObject(t *testing.T) {
	lit := &ast.Literal{Kind: ast.NumberLiteral, Raw: "1"}
	m := &ast.MemberExpression{Object: lit, Property: ident("toString")}
	p := New(m)
	p.Call("object", lit, func() {
		assert.True(t, p.NeedsParens())
	})

	litDot := &ast.Literal{Kind: ast.NumberLiteral, Raw: "1."}
	m2 := &ast.MemberExpression{Object: litDot, Property: ident("toString")}
	p2 := New(m2)
	p2.Call("object", litDot, func() {
		assert.False(t, p2.NeedsParens())
	})
}

func TestNeedsParensAssignmentAsArrowBody(t *testing.T) {
	assign := &ast.AssignmentExpression{Operator: "=", Left: ident("a"), Right: ident("b")}
	arrow := &ast.ArrowFunctionExpression{Body: assign}
	p := New(arrow)
	p.Call("body", assign, func() {
		assert.True(t, p.NeedsParens())
	})
}

func TestNeedsParensAssignmentToObjectPatternStatement(t *testing.T) {
	pattern := &ast.ObjectPattern{}
	assign := &ast.AssignmentExpression{Operator: "=", Left: pattern, Right: ident("b")}
	stmt := &ast.ExpressionStatement{Expression: assign}
	p := New(stmt)
	p.Call("expression", assign, func() {
		assert.True(t, p.NeedsParens())
	})
}

func TestNeedsParensUnionInArray(t *testing.T) {
	u := &ast.UnionTypeAnnotation{}
	arr := &ast.ArrayTypeAnnotation{ElementType: u}
	p := New(arr)
	p.Call("elementType", u, func() {
		assert.True(t, p.NeedsParens())
	})
}

func TestNeedsParensSuperClass(t *testing.T) {
	decl := &ast.ClassDeclaration{SuperClass: ident("Base")}
	p := New(decl)
	p.Call("superClass", ident("Base"), func() {
		assert.False(t, p.NeedsParens())
	})

	cond := &ast.ConditionalExpression{Test: ident("x"), Consequent: ident("A"), Alternate: ident("B")}
	decl2 := &ast.ClassDeclaration{SuperClass: cond}
	p2 := New(decl2)
	p2.Call("superClass", cond, func() {
		assert.True(t, p2.NeedsParens())
	})
}
