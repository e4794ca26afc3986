package translate

import (
	"github.com/crogenix/tsfmt/ast"
	"github.com/crogenix/tsfmt/doc"
	"github.com/crogenix/tsfmt/token"
)

// statements prints an ordered statement list, one statement per line, preserving at most one
// blank line between consecutive statements and applying the semicolon policy to
// each.
func (t *translator) statements(name string, stmts []ast.Stmt) {
	prevEnd := token.Pos(-1)
	for _, s := range stmts {
		if _, ok := s.(*ast.EmptyStatement); ok && !hasAnyComments(s) {
			continue
		}
		if prevEnd >= 0 {
			t.d.HardLine()
			if t.countNewlines(prevEnd, effectiveStart(s)) >= 2 {
				t.d.HardLine()
			}
		}
		if !t.opts.Semi && prevEnd >= 0 && t.leadingSemiHazard(s) {
			t.d.Text(";")
		}
		t.child(name, s)
		if t.opts.Semi && semiEligible(s) {
			t.d.Text(";")
		}
		prevEnd = s.End()
	}
}

func hasAnyComments(n ast.Node) bool {
	cs := ast.CommentsOf(n)
	return len(cs.Leading) > 0 || len(cs.Trailing) > 0 || len(cs.Dangling) > 0
}

func effectiveStart(n ast.Node) token.Pos {
	cs := ast.CommentsOf(n).Leading
	if len(cs) > 0 {
		return cs[0].StartPos
	}
	return n.Start()
}

func (t *translator) countNewlines(a, b token.Pos) int {
	if a < 0 {
		a = 0
	}
	if int(b) > len(t.src) {
		b = token.Pos(len(t.src))
	}
	n := 0
	for i := int(a); i < int(b); i++ {
		if t.src[i] == '\n' {
			n++
		}
	}
	return n
}

func (t *translator) leadingSemiHazard(s ast.Stmt) bool {
	es, ok := s.(*ast.ExpressionStatement)
	if !ok {
		return false
	}
	hazard := false
	t.p.Call("expression", es.Expression, func() {
		if t.p.NeedsParens() {
			hazard = true
			return
		}
		hazard = exprStartsWithHazard(es.Expression)
	})
	return hazard
}

func exprStartsWithHazard(e ast.Expr) bool {
	switch v := e.(type) {
	case *ast.ArrayExpression, *ast.TemplateLiteral, *ast.JSXElement, *ast.JSXFragment:
		return true
	case *ast.TaggedTemplateExpression:
		return exprStartsWithHazard(v.Tag)
	case *ast.UnaryExpression:
		return v.Operator == "+" || v.Operator == "-"
	case *ast.BinaryExpression:
		return exprStartsWithHazard(v.Left)
	case *ast.LogicalExpression:
		return exprStartsWithHazard(v.Left)
	case *ast.MemberExpression:
		return exprStartsWithHazard(v.Object)
	case *ast.CallExpression:
		return exprStartsWithHazard(v.Callee)
	case *ast.TSNonNullExpression:
		return exprStartsWithHazard(v.Expression)
	case *ast.AssignmentExpression:
		if le, ok := v.Left.(ast.Expr); ok {
			return exprStartsWithHazard(le)
		}
		return false
	case *ast.SequenceExpression:
		if len(v.Expressions) > 0 {
			return exprStartsWithHazard(v.Expressions[0])
		}
		return false
	case *ast.Literal:
		return v.Kind == ast.RegexLiteral
	}
	return false
}

func semiEligible(s ast.Stmt) bool {
	switch v := s.(type) {
	case *ast.ExpressionStatement, *ast.VariableDeclaration, *ast.ReturnStatement, *ast.ThrowStatement,
		*ast.BreakStatement, *ast.ContinueStatement, *ast.DebuggerStatement, *ast.Directive,
		*ast.ImportDeclaration, *ast.ExportAllDeclaration, *ast.DoWhileStatement:
		return true
	case *ast.ExportNamedDeclaration:
		if v.Declaration == nil {
			return true
		}
		return semiEligible(v.Declaration)
	case *ast.ExportDefaultDeclaration:
		switch v.Declaration.(type) {
		case *ast.FunctionDeclaration, *ast.ClassDeclaration:
			return false
		default:
			return true
		}
	}
	return false
}

func (t *translator) expressionStatement(s *ast.ExpressionStatement) {
	t.child("expression", s.Expression)
}

func (t *translator) directive(s *ast.Directive) {
	t.d.Text(t.quote(s.Value))
}

func (t *translator) blockStatement(s *ast.BlockStatement) {
	if len(s.Body) == 0 && len(ast.CommentsOf(s).Dangling) == 0 {
		t.d.Text("{}")
		return
	}
	t.d.Text("{")
	t.d.Indent(func(*doc.Doc) {
		t.d.HardLine()
		t.statements("body", s.Body)
		t.danglingComments(s)
	})
	t.d.HardLine()
	t.d.Text("}")
}

func (t *translator) ifStatement(s *ast.IfStatement) {
	t.d.Text("if (")
	t.child("test", s.Test)
	t.d.Text(") ")
	t.consequentBlock(s.Consequent)
	if s.Alternate != nil {
		t.d.Text(" else ")
		if elseIf, ok := s.Alternate.(*ast.IfStatement); ok {
			t.p.Call("alternate", elseIf, func() { t.ifStatement(elseIf) })
		} else {
			t.consequentBlock(s.Alternate)
		}
	}
}

// consequentBlock prints an if/for/while body, wrapping a non-block single statement in braces
// rather than leaving a dangling single-statement body.
func (t *translator) consequentBlock(s ast.Stmt) {
	if _, ok := s.(*ast.BlockStatement); ok {
		t.child("consequent", s)
		return
	}
	t.d.Text("{")
	t.d.Indent(func(*doc.Doc) {
		t.d.HardLine()
		t.statements("body", []ast.Stmt{s})
	})
	t.d.HardLine()
	t.d.Text("}")
}

func (t *translator) forStatement(s *ast.ForStatement) {
	if isAbsent(s.Init) && isAbsent(s.Test) && isAbsent(s.Update) {
		t.d.Text("for (;;) ")
		t.consequentBlock(s.Body)
		return
	}
	t.d.Text("for (")
	if s.Init != nil {
		t.child("init", s.Init)
	}
	t.d.Text("; ")
	t.child("test", s.Test)
	t.d.Text("; ")
	t.child("update", s.Update)
	t.d.Text(") ")
	t.consequentBlock(s.Body)
}

func isAbsent(n ast.Node) bool {
	return n == nil || isNilNode(n)
}

func (t *translator) forInStatement(s *ast.ForInStatement) {
	t.d.Text("for (")
	t.child("left", s.Left)
	t.d.Text(" in ")
	t.child("right", s.Right)
	t.d.Text(") ")
	t.consequentBlock(s.Body)
}

func (t *translator) forOfStatement(s *ast.ForOfStatement) {
	t.d.Text("for ")
	if s.Await {
		t.d.Text("await ")
	}
	t.d.Text("(")
	t.child("left", s.Left)
	t.d.Text(" of ")
	t.child("right", s.Right)
	t.d.Text(") ")
	t.consequentBlock(s.Body)
}

func (t *translator) whileStatement(s *ast.WhileStatement) {
	t.d.Text("while (")
	t.child("test", s.Test)
	t.d.Text(") ")
	t.consequentBlock(s.Body)
}

func (t *translator) doWhileStatement(s *ast.DoWhileStatement) {
	t.d.Text("do ")
	t.consequentBlock(s.Body)
	t.d.Text(" while (")
	t.child("test", s.Test)
	t.d.Text(")")
}

func (t *translator) switchStatement(s *ast.SwitchStatement) {
	t.d.Text("switch (")
	t.child("discriminant", s.Discriminant)
	t.d.Text(") {")
	t.d.Indent(func(*doc.Doc) {
		for i, c := range s.Cases {
			t.d.HardLine()
			if i > 0 {
				t.d.HardLine()
			}
			t.switchCase(c)
		}
	})
	t.d.HardLine()
	t.d.Text("}")
}

func (t *translator) switchCase(c *ast.SwitchCase) {
	t.p.Call("cases", c, func() {
		if c.Test != nil {
			t.d.Text("case ")
			t.child("test", c.Test)
			t.d.Text(":")
		} else {
			t.d.Text("default:")
		}
		if len(c.Consequent) > 0 {
			t.d.Indent(func(*doc.Doc) {
				t.d.HardLine()
				t.statements("consequent", c.Consequent)
			})
		}
	})
}

func (t *translator) tryStatement(s *ast.TryStatement) {
	t.d.Text("try ")
	t.child("block", s.Block)
	if s.Handler != nil {
		t.d.Text(" catch ")
		t.p.Call("handler", s.Handler, func() {
			if s.Handler.Param != nil {
				t.d.Text("(")
				t.child("param", s.Handler.Param)
				t.d.Text(") ")
			}
			t.child("body", s.Handler.Body)
		})
	}
	if s.Finalizer != nil {
		t.d.Text(" finally ")
		t.child("finalizer", s.Finalizer)
	}
}

func (t *translator) returnStatement(s *ast.ReturnStatement) {
	t.d.Text("return")
	if s.Argument != nil {
		t.d.Text(" ")
		t.child("argument", s.Argument)
	}
}

func (t *translator) throwStatement(s *ast.ThrowStatement) {
	t.d.Text("throw ")
	t.child("argument", s.Argument)
}

func (t *translator) breakStatement(s *ast.BreakStatement) {
	t.d.Text("break")
	if s.Label != nil {
		t.d.Text(" " + s.Label.Name)
	}
}

func (t *translator) continueStatement(s *ast.ContinueStatement) {
	t.d.Text("continue")
	if s.Label != nil {
		t.d.Text(" " + s.Label.Name)
	}
}

func (t *translator) labeledStatement(s *ast.LabeledStatement) {
	t.d.Text(s.Label.Name + ": ")
	t.child("body", s.Body)
}
