package attach

import "github.com/crogenix/tsfmt/ast"

// Children returns the direct child nodes of n in source order, skipping any nil slots (an
// elided array element, an unset optional field). It is the one place in the pipeline that
// enumerates every node kind's child slots; the attachment pass and the range-format driver both
// need to walk the tree generically rather than through the translator's typed dispatch.
func Children(n ast.Node) []ast.Node {
	var out []ast.Node
	add := func(c ast.Node) {
		if c == nil || isNilNode(c) {
			return
		}
		out = append(out, c)
	}
	addExprs := func(es []ast.Expr) {
		for _, e := range es {
			add(e)
		}
	}
	addStmts := func(ss []ast.Stmt) {
		for _, s := range ss {
			add(s)
		}
	}
	addPatterns := func(ps []ast.Pattern) {
		for _, p := range ps {
			add(p)
		}
	}
	addTypes := func(ts []ast.TypeAnnotation) {
		for _, t := range ts {
			add(t)
		}
	}

	switch v := n.(type) {
	case *ast.Program:
		addStmts(v.Body)
	case *ast.ExpressionStatement:
		add(v.Expression)
	case *ast.BlockStatement:
		addStmts(v.Body)
	case *ast.IfStatement:
		add(v.Test)
		add(v.Consequent)
		add(v.Alternate)
	case *ast.ForStatement:
		add(v.Init)
		add(v.Test)
		add(v.Update)
		add(v.Body)
	case *ast.ForInStatement:
		add(v.Left)
		add(v.Right)
		add(v.Body)
	case *ast.ForOfStatement:
		add(v.Left)
		add(v.Right)
		add(v.Body)
	case *ast.WhileStatement:
		add(v.Test)
		add(v.Body)
	case *ast.DoWhileStatement:
		add(v.Body)
		add(v.Test)
	case *ast.SwitchStatement:
		add(v.Discriminant)
		for _, c := range v.Cases {
			add(c)
		}
	case *ast.SwitchCase:
		add(v.Test)
		addStmts(v.Consequent)
	case *ast.TryStatement:
		add(v.Block)
		add(v.Handler)
		add(v.Finalizer)
	case *ast.CatchClause:
		add(v.Param)
		add(v.Body)
	case *ast.ReturnStatement:
		add(v.Argument)
	case *ast.ThrowStatement:
		add(v.Argument)
	case *ast.BreakStatement:
		add(v.Label)
	case *ast.ContinueStatement:
		add(v.Label)
	case *ast.LabeledStatement:
		add(&v.Label)
		add(v.Body)
	case *ast.VariableDeclaration:
		for _, d := range v.Declarations {
			add(d)
		}
	case *ast.VariableDeclarator:
		add(v.ID)
		add(v.Init)
	case *ast.FunctionDeclaration:
		add(v.ID)
		addPatterns(v.Params)
		add(v.ReturnType)
		add(v.Body)
	case *ast.ClassDeclaration:
		add(v.ID)
		add(v.SuperClass)
		add(v.Body)
	case *ast.ClassBody:
		for _, m := range v.Body {
			add(m)
		}
	case *ast.MethodDefinition:
		add(v.Key)
		add(v.Value)
	case *ast.PropertyDefinition:
		add(v.Key)
		add(v.TypeAnn)
		add(v.Value)
	case *ast.ImportDeclaration:
		add(v.Default)
		add(v.Namespace)
		for i := range v.Named {
			add(&v.Named[i].Local)
		}
	case *ast.ExportNamedDeclaration:
		add(v.Declaration)
		for i := range v.Specifiers {
			add(&v.Specifiers[i].Exported)
		}
	case *ast.ExportDefaultDeclaration:
		add(v.Declaration)
	case *ast.ExportAllDeclaration:
		add(v.Exported)

	case *ast.Identifier:
		add(v.TypeAnn)
	case *ast.TemplateLiteral:
		addExprs(v.Expressions)
	case *ast.TaggedTemplateExpression:
		add(v.Tag)
		add(v.Quasi)
	case *ast.BinaryExpression:
		add(v.Left)
		add(v.Right)
	case *ast.LogicalExpression:
		add(v.Left)
		add(v.Right)
	case *ast.AssignmentExpression:
		add(v.Left)
		add(v.Right)
	case *ast.ConditionalExpression:
		add(v.Test)
		add(v.Consequent)
		add(v.Alternate)
	case *ast.UnaryExpression:
		add(v.Argument)
	case *ast.UpdateExpression:
		add(v.Argument)
	case *ast.MemberExpression:
		add(v.Object)
		add(v.Property)
	case *ast.CallExpression:
		add(v.Callee)
		addExprs(v.Arguments)
		addTypes(v.TypeArgs)
	case *ast.NewExpression:
		add(v.Callee)
		addExprs(v.Arguments)
		addTypes(v.TypeArgs)
	case *ast.SequenceExpression:
		addExprs(v.Expressions)
	case *ast.SpreadElement:
		add(v.Argument)
	case *ast.ArrayExpression:
		addExprs(v.Elements)
	case *ast.ObjectExpression:
		for _, p := range v.Properties {
			add(p)
		}
	case *ast.Property:
		add(v.Key)
		add(v.Value)
	case *ast.ArrowFunctionExpression:
		addPatterns(v.Params)
		add(v.ReturnType)
		add(v.Body)
	case *ast.FunctionExpression:
		add(v.ID)
		addPatterns(v.Params)
		add(v.ReturnType)
		add(v.Body)
	case *ast.ClassExpression:
		add(v.ID)
		add(v.SuperClass)
		add(v.Body)
	case *ast.YieldExpression:
		add(v.Argument)
	case *ast.AwaitExpression:
		add(v.Argument)
	case *ast.TSAsExpression:
		add(v.Expression)
		add(v.TypeAnn)
	case *ast.TSNonNullExpression:
		add(v.Expression)

	case *ast.ArrayPattern:
		addPatterns(v.Elements)
		add(v.TypeAnn)
	case *ast.ObjectPattern:
		for _, p := range v.Properties {
			add(p)
		}
		add(v.TypeAnn)
	case *ast.ObjectPatternProperty:
		add(v.Key)
		add(v.Value)
	case *ast.AssignmentPattern:
		add(v.Left)
		add(v.Right)
	case *ast.RestElement:
		add(v.Argument)
		add(v.TypeAnn)

	case *ast.TypeAnn:
		add(v.Type)
	case *ast.GenericTypeAnnotation:
		addTypes(v.TypeArgs)
	case *ast.UnionTypeAnnotation:
		addTypes(v.Types)
	case *ast.IntersectionTypeAnnotation:
		addTypes(v.Types)
	case *ast.NullableTypeAnnotation:
		add(v.Type)
	case *ast.ArrayTypeAnnotation:
		add(v.ElementType)
	case *ast.TupleTypeAnnotation:
		addTypes(v.Types)
	case *ast.FunctionTypeAnnotation:
		for _, p := range v.Params {
			add(p.Type)
		}
		add(v.ReturnType)
	case *ast.TypeLiteral:
		for _, m := range v.Members {
			add(m)
		}
	case *ast.PropertySignature:
		add(v.Type)

	case *ast.JSXElement:
		add(v.Opening)
		for _, c := range v.Children {
			add(c)
		}
		add(v.Closing)
	case *ast.JSXFragment:
		for _, c := range v.Children {
			add(c)
		}
	case *ast.JSXOpeningElement:
		add(v.Name)
		for _, a := range v.Attributes {
			add(a)
		}
	case *ast.JSXAttribute:
		add(v.Value)
	case *ast.JSXSpreadAttribute:
		add(v.Argument)
	case *ast.JSXClosingElement:
		add(v.Name)
	case *ast.JSXExpressionContainer:
		add(v.Expression)
	case *ast.JSXMemberExpression:
		add(v.Object)
		add(&v.Property)
	}
	return out
}

// isNilNode guards against typed-nil interface values (e.g. a *ast.BlockStatement field left
// unset), which compare != nil as an ast.Node interface even though the underlying pointer is
// nil.
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
