package path

import (
	"strings"

	"github.com/crogenix/tsfmt/ast"
)

// precedence mirrors internal/parser's binaryOps table; the oracle needs the same ordering to
// decide whether a nested binary/logical expression needs parens to preserve grouping.
var precedence = map[string]int{
	"??": 1,
	"||": 2,
	"&&": 3,
	"|":  4,
	"^":  5,
	"&":  6,
	"==": 7, "!=": 7, "===": 7, "!==": 7,
	"<": 8, ">": 8, "<=": 8, ">=": 8, "instanceof": 8, "in": 8,
	"<<": 9, ">>": 9, ">>>": 9,
	"+": 10, "-": 10,
	"*": 11, "/": 11, "%": 11,
	"**": 12,
}

func isBitwise(op string) bool {
	switch op {
	case "|", "^", "&", "<<", ">>", ">>>":
		return true
	}
	return false
}

func operatorOf(n ast.Node) (string, bool) {
	switch v := n.(type) {
	case *ast.BinaryExpression:
		return v.Operator, false
	case *ast.LogicalExpression:
		return v.Operator, true
	}
	return "", false
}

// needsParens implements the parenthesization oracle: dispatch on the current node's kind, then the
// parent's kind, consulting the property name the node is reached through.
func needsParens(p *Path) bool {
	node := p.Value()
	parent := p.ParentNode(0)
	if parent == nil {
		return false
	}
	name := p.Name()

	switch n := node.(type) {
	case *ast.SequenceExpression:
		return parensForSequence(parent)
	case *ast.YieldExpression:
		return parensForSuspend(parent, name)
	case *ast.AwaitExpression:
		return parensForSuspend(parent, name)
	case *ast.ArrowFunctionExpression, *ast.FunctionExpression, *ast.ClassExpression:
		return startsStatement(p)
	case *ast.AssignmentExpression:
		return parensForAssignment(n, parent, name)
	case *ast.BinaryExpression, *ast.LogicalExpression:
		return parensForBinaryLike(node, parent, name)
	case *ast.UnaryExpression:
		return parensForUnary(parent, name)
	case *ast.Literal:
		return parensForNumericLiteral(n, parent, name)
	case *ast.UnionTypeAnnotation, *ast.IntersectionTypeAnnotation:
		return parensForTypeSum(parent)
	case *ast.FunctionTypeAnnotation:
		return parensForFunctionType(parent)
	}

	if name == "superClass" {
		return parensForSuperClass(node)
	}
	if name == "callee" {
		if _, ok := parent.(*ast.NewExpression); ok {
			if e, ok2 := node.(ast.Expr); ok2 {
				return calleeContainsCall(e)
			}
		}
	}
	return false
}

func parensForSequence(parent ast.Node) bool {
	switch parent.(type) {
	case *ast.ReturnStatement, *ast.ExpressionStatement, *ast.ForStatement:
		return false
	default:
		return true
	}
}

func parensForSuspend(parent ast.Node, name string) bool {
	switch parent.(type) {
	case *ast.UnaryExpression, *ast.BinaryExpression, *ast.LogicalExpression, *ast.SpreadElement:
		return true
	case *ast.MemberExpression:
		return name == "object"
	case *ast.CallExpression:
		return name == "callee"
	case *ast.NewExpression:
		return name == "callee"
	case *ast.ConditionalExpression:
		return name == "test"
	}
	return false
}

// startsStatement walks up from the current node while it sits in a "leftmost" position of its
// parent (the object of a member expression, the callee of a call, the tag of a tagged template,
// the left operand of a binary/logical/assignment), stopping once it reaches an
// ExpressionStatement. That is the statement-start hazard: an Arrow/Function/ClassExpression
// whose first emitted token would otherwise be mistaken for a declaration or a block.
func startsStatement(p *Path) bool {
	depth := 0
	for {
		parent := p.ParentNode(depth)
		if parent == nil {
			return false
		}
		name := p.NameAt(depth)
		if _, ok := parent.(*ast.ExpressionStatement); ok {
			return name == "expression"
		}
		switch name {
		case "object", "callee", "tag", "left", "expression":
			depth++
			continue
		default:
			return false
		}
	}
}

func parensForAssignment(n *ast.AssignmentExpression, parent ast.Node, name string) bool {
	if _, ok := parent.(*ast.ArrowFunctionExpression); ok && name == "body" {
		return true
	}
	if _, ok := parent.(*ast.ExpressionStatement); ok {
		if _, ok2 := n.Left.(*ast.ObjectPattern); ok2 {
			return true
		}
	}
	return false
}

func parensForBinaryLike(node, parent ast.Node, name string) bool {
	op, _ := operatorOf(node)
	parentOp, parentIsLogical := operatorOf(parent)
	if parentOp == "" {
		// The parent isn't itself a binary/logical expression, but member access and calls
		// bind tighter than any binary operator: `(a + b).c` needs its parens kept, or the
		// dot would bind to `b` alone.
		switch name {
		case "object", "callee", "tag":
			return true
		}
		return false
	}

	if isBitwise(op) && op != parentOp {
		return true
	}
	if isBitwise(parentOp) && op != parentOp {
		return true
	}

	// Mixing different logical operators always gets parenthesized, regardless of precedence:
	// `a || b && c` prints as `a || (b && c)`, never bare.
	if parentIsLogical {
		if _, nodeIsLogical := operatorOf(node); nodeIsLogical && op != parentOp {
			return true
		}
	}

	prec := precedence[op]
	parentPrec := precedence[parentOp]
	if prec > parentPrec {
		return false
	}
	if prec < parentPrec {
		return true
	}

	// equal precedence
	if op == "**" && parentOp == "**" {
		// ** is right-associative: as the right child it composes naturally, as the left
		// child it must be parenthesized since `(a**b)**c` and `a**b**c` mean different things.
		return name == "left"
	}
	if name == "right" {
		return true
	}
	return false
}

func parensForUnary(parent ast.Node, name string) bool {
	switch v := parent.(type) {
	case *ast.MemberExpression:
		return name == "object"
	case *ast.CallExpression:
		return name == "callee"
	case *ast.NewExpression:
		return name == "callee"
	case *ast.TaggedTemplateExpression:
		return name == "tag"
	case *ast.BinaryExpression:
		return v.Operator == "**" && name == "left"
	}
	return false
}

// parensForNumericLiteral guards against `1.toString()`, which the lexer would read as `1.` (an
// incomplete number) rather than a member access. Literals already spelled with a decimal point,
// an exponent, or a base prefix are unambiguous and need no parens.
func parensForNumericLiteral(n *ast.Literal, parent ast.Node, name string) bool {
	if n.Kind != ast.NumberLiteral {
		return false
	}
	m, ok := parent.(*ast.MemberExpression)
	if !ok || name != "object" || m.Computed {
		return false
	}
	return !strings.ContainsAny(n.Raw, ".eExXoObB")
}

func parensForTypeSum(parent ast.Node) bool {
	switch parent.(type) {
	case *ast.ArrayTypeAnnotation, *ast.NullableTypeAnnotation,
		*ast.UnionTypeAnnotation, *ast.IntersectionTypeAnnotation:
		return true
	}
	return false
}

func parensForFunctionType(parent ast.Node) bool {
	switch parent.(type) {
	case *ast.UnionTypeAnnotation, *ast.IntersectionTypeAnnotation:
		return true
	}
	return false
}

func parensForSuperClass(node ast.Node) bool {
	switch node.(type) {
	case *ast.Identifier, *ast.MemberExpression, *ast.CallExpression, *ast.ThisExpression:
		return false
	default:
		return true
	}
}

// calleeContainsCall reports whether the callee subtree of a NewExpression transitively contains
// a CallExpression, which would otherwise bind the call's parens to `new` itself: `new f()()`
// means `(new f())()`, so `new (f())()` needs the inner parens kept.
func calleeContainsCall(e ast.Expr) bool {
	switch v := e.(type) {
	case *ast.CallExpression:
		return true
	case *ast.MemberExpression:
		return calleeContainsCall(v.Object)
	case *ast.TSNonNullExpression:
		return calleeContainsCall(v.Expression)
	default:
		return false
	}
}
