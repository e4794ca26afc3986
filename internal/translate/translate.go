// Package translate implements the AST→Doc translator: the per-node-kind dispatcher
// that walks the attributed AST via the path cursor and emits a [doc.Doc] encoding both literal
// output and the layout engine's flat/break decision points.
package translate

import (
	"github.com/crogenix/tsfmt/ast"
	"github.com/crogenix/tsfmt/doc"
	"github.com/crogenix/tsfmt/internal/path"
	"github.com/crogenix/tsfmt/options"
)

// ToDoc translates prog into a Doc under opts. Comment attachment (internal/attach.Attach) must
// have already run on prog.
func ToDoc(prog *ast.Program, opts options.Options) *doc.Doc {
	d := doc.New()
	t := &translator{d: d, p: path.New(prog), opts: opts, src: prog.Source}
	t.statements("body", prog.Body)
	t.danglingComments(prog)
	if len(prog.Body) > 0 || len(ast.CommentsOf(prog).Dangling) > 0 {
		d.HardLine()
	}
	return d
}

type translator struct {
	d    *doc.Doc
	p    *path.Path
	opts options.Options
	src  []byte
}

// child prints a single named child node: pushes it onto the path cursor, emits its leading
// comments, wraps it in parens iff the oracle requires it, dispatches on its kind, then emits its
// trailing comments. Printers recurse into a child through child, children, or a direct
// t.p.Call wrapping node, so the oracle and comment engine always observe correct ancestry.
func (t *translator) child(name string, n ast.Node) {
	if n == nil || isNilNode(n) {
		return
	}
	t.p.Call(name, n, func() {
		t.node(n)
	})
}

// children prints an ordered sequence of named children with sep run between consecutive
// elements, via the path cursor's Each so ancestry is pushed per element the same way a single
// named child is.
func (t *translator) children(name string, ns []ast.Node, sep func()) {
	present := make([]ast.Node, 0, len(ns))
	for _, n := range ns {
		if n == nil || isNilNode(n) {
			continue
		}
		present = append(present, n)
	}
	first := true
	t.p.Each(name, present, func(int) {
		if !first && sep != nil {
			sep()
		}
		first = false
		t.node(t.p.Value())
	})
}

func (t *translator) node(n ast.Node) {
	leading := ast.CommentsOf(n).Leading
	t.emitLeading(leading)

	if hasPrettierIgnore(leading) {
		t.emitRaw(n)
		t.markSubtreePrinted(n)
	} else if t.p.NeedsParens() {
		t.d.Text("(")
		t.dispatch(n)
		t.d.Text(")")
	} else {
		t.dispatch(n)
	}

	t.emitTrailing(ast.CommentsOf(n).Trailing)
}

func (t *translator) dispatch(n ast.Node) {
	switch v := n.(type) {
	// statements
	case *ast.ExpressionStatement:
		t.expressionStatement(v)
	case *ast.BlockStatement:
		t.blockStatement(v)
	case *ast.EmptyStatement:
		// nothing: an empty statement prints no text; the statement loop drops one without comments
	case *ast.Directive:
		t.directive(v)
	case *ast.IfStatement:
		t.ifStatement(v)
	case *ast.ForStatement:
		t.forStatement(v)
	case *ast.ForInStatement:
		t.forInStatement(v)
	case *ast.ForOfStatement:
		t.forOfStatement(v)
	case *ast.WhileStatement:
		t.whileStatement(v)
	case *ast.DoWhileStatement:
		t.doWhileStatement(v)
	case *ast.SwitchStatement:
		t.switchStatement(v)
	case *ast.TryStatement:
		t.tryStatement(v)
	case *ast.ReturnStatement:
		t.returnStatement(v)
	case *ast.ThrowStatement:
		t.throwStatement(v)
	case *ast.BreakStatement:
		t.breakStatement(v)
	case *ast.ContinueStatement:
		t.continueStatement(v)
	case *ast.LabeledStatement:
		t.labeledStatement(v)
	case *ast.DebuggerStatement:
		t.d.Text("debugger")

	// declarations
	case *ast.VariableDeclaration:
		t.variableDeclaration(v)
	case *ast.FunctionDeclaration:
		t.functionLike(v.ID, v.Params, v.Body, v.Async, v.Generator, v.ReturnType, "function")
	case *ast.ClassDeclaration:
		t.classLike(v.ID, v.SuperClass, v.Body)
	case *ast.ImportDeclaration:
		t.importDeclaration(v)
	case *ast.ExportNamedDeclaration:
		t.exportNamedDeclaration(v)
	case *ast.ExportDefaultDeclaration:
		t.exportDefaultDeclaration(v)
	case *ast.ExportAllDeclaration:
		t.exportAllDeclaration(v)

	// class member kinds, reached only as a class body's "body" children
	case *ast.ClassBody:
		t.classBody(v)
	case *ast.MethodDefinition:
		t.methodDefinition(v)
	case *ast.PropertyDefinition:
		t.propertyDefinition(v)

	// expressions and patterns and types live in their own files
	default:
		t.dispatchExprPatternType(n)
	}
}

// isNilNode mirrors internal/attach's guard: a typed-nil pointer boxed into an interface field
// compares != nil, so concrete pointer fields that are genuinely optional must be checked by type.
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
