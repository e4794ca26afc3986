// Package massage strips the non-semantic parts of an AST (byte positions, raw literal spelling,
// attached comments) so two trees can be compared for semantic equivalence (testable
// property 2). It is used by the debug format-check mode to detect semantic drift between the
// input and a formatted-and-reparsed round trip.
package massage

import (
	"fmt"
	"strings"

	"github.com/crogenix/tsfmt/ast"
	"github.com/crogenix/tsfmt/internal/attach"
)

// Equal reports whether a and b are semantically equivalent: same node kinds, same operators,
// names, and decoded literal values, in the same structure, ignoring position, raw spelling, and
// comments.
func Equal(a, b ast.Node) bool {
	return Fingerprint(a) == Fingerprint(b)
}

// Fingerprint renders n into a canonical string that two structurally-equivalent (but not
// necessarily byte-identical) trees produce identically. It deliberately ignores Start/End,
// Literal.Raw spelling, and comments; it does not ignore operators, identifier names, decoded
// literal values, or child order, since those are semantically load-bearing. Template quasis are
// compared by their raw text.
func Fingerprint(n ast.Node) string {
	var b strings.Builder
	write(&b, n)
	return b.String()
}

func write(b *strings.Builder, n ast.Node) {
	if n == nil || isNilNode(n) {
		b.WriteString("<nil>")
		return
	}
	b.WriteString(fmt.Sprintf("%T", n))
	writePayload(b, n)
	b.WriteByte('(')
	for i, c := range attach.Children(n) {
		if i > 0 {
			b.WriteByte(',')
		}
		write(b, c)
	}
	b.WriteByte(')')
}

// writePayload appends the scalar fields that distinguish nodes Children() alone cannot: operator
// symbols, declared names, decoded literal values, and the handful of boolean/string flags that
// change a node's meaning (computed/optional/static/async/generator/kind).
func writePayload(b *strings.Builder, n ast.Node) {
	switch v := n.(type) {
	case *ast.Identifier:
		fmt.Fprintf(b, "[%s,opt=%v]", v.Name, v.Optional)
	case *ast.Literal:
		fmt.Fprintf(b, "[%d,%s]", v.Kind, v.Value)
	case *ast.TemplateLiteral:
		fmt.Fprintf(b, "%v", v.Quasis)
	case *ast.BinaryExpression:
		fmt.Fprintf(b, "[%s]", v.Operator)
	case *ast.LogicalExpression:
		fmt.Fprintf(b, "[%s]", v.Operator)
	case *ast.AssignmentExpression:
		fmt.Fprintf(b, "[%s]", v.Operator)
	case *ast.UnaryExpression:
		fmt.Fprintf(b, "[%s]", v.Operator)
	case *ast.UpdateExpression:
		fmt.Fprintf(b, "[%s,prefix=%v]", v.Operator, v.Prefix)
	case *ast.MemberExpression:
		fmt.Fprintf(b, "[computed=%v,optional=%v]", v.Computed, v.Optional)
	case *ast.CallExpression:
		fmt.Fprintf(b, "[optional=%v]", v.Optional)
	case *ast.VariableDeclaration:
		fmt.Fprintf(b, "[%s]", v.Kind)
	case *ast.FunctionDeclaration:
		fmt.Fprintf(b, "[async=%v,gen=%v]", v.Async, v.Generator)
	case *ast.FunctionExpression:
		fmt.Fprintf(b, "[async=%v,gen=%v]", v.Async, v.Generator)
	case *ast.ArrowFunctionExpression:
		fmt.Fprintf(b, "[async=%v]", v.Async)
	case *ast.MethodDefinition:
		fmt.Fprintf(b, "[%s,static=%v,computed=%v]", v.Kind, v.Static, v.Computed)
	case *ast.PropertyDefinition:
		fmt.Fprintf(b, "[static=%v,computed=%v]", v.Static, v.Computed)
	case *ast.Property:
		fmt.Fprintf(b, "[%s,shorthand=%v,method=%v,computed=%v]", v.Kind, v.Shorthand, v.Method, v.Computed)
	case *ast.YieldExpression:
		fmt.Fprintf(b, "[delegate=%v]", v.Delegate)
	case *ast.ImportDeclaration:
		fmt.Fprintf(b, "[%s]", v.Source)
	case *ast.ExportNamedDeclaration:
		fmt.Fprintf(b, "[%s]", v.Source)
	case *ast.ExportAllDeclaration:
		fmt.Fprintf(b, "[%s]", v.Source)
	case *ast.LabeledStatement:
		fmt.Fprintf(b, "[%s]", v.Label.Name)
	case *ast.BreakStatement:
		if v.Label != nil {
			fmt.Fprintf(b, "[%s]", v.Label.Name)
		}
	case *ast.ContinueStatement:
		if v.Label != nil {
			fmt.Fprintf(b, "[%s]", v.Label.Name)
		}
	case *ast.GenericTypeAnnotation:
		fmt.Fprintf(b, "[%s]", v.ID)
	case *ast.LiteralTypeAnnotation:
		fmt.Fprintf(b, "[%s]", v.Raw)
	case *ast.JSXIdentifier:
		fmt.Fprintf(b, "[%s]", v.Name)
	case *ast.JSXAttribute:
		fmt.Fprintf(b, "[%s]", v.Name)
	case *ast.JSXText:
		fmt.Fprintf(b, "[%s]", v.Value)
	}
}

func isNilNode(n ast.Node) bool {
	switch v := n.(type) {
	case *ast.BlockStatement:
		return v == nil
	case *ast.Identifier:
		return v == nil
	case *ast.ClassBody:
		return v == nil
	case *ast.FunctionExpression:
		return v == nil
	case *ast.TemplateLiteral:
		return v == nil
	case *ast.CatchClause:
		return v == nil
	case *ast.JSXOpeningElement:
		return v == nil
	case *ast.JSXClosingElement:
		return v == nil
	}
	return false
}
