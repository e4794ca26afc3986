package ast

// JSXElement is `<Tag attr={x}>children</Tag>` or its self-closing form.
type JSXElement struct {
	base
	Opening  *JSXOpeningElement
	Children []Node // JSXText, JSXExpressionContainer, JSXElement, JSXFragment
	Closing  *JSXClosingElement // nil when Opening.SelfClosing
}

func (*JSXElement) exprNode() {}

type JSXFragment struct {
	base
	Children []Node
}

func (*JSXFragment) exprNode() {}

type JSXOpeningElement struct {
	base
	Name         Expr // JSXIdentifier or JSXMemberExpression
	Attributes   []JSXAttr // JSXAttribute or JSXSpreadAttribute
	SelfClosing  bool
}

// JSXAttr is implemented by JSXAttribute and JSXSpreadAttribute.
type JSXAttr interface {
	Node
	jsxAttrNode()
}

type JSXAttribute struct {
	base
	Name  string
	Value Node // nil (valueless attr), *Literal, or *JSXExpressionContainer
}

func (*JSXAttribute) jsxAttrNode() {}

type JSXSpreadAttribute struct {
	base
	Argument Expr
}

func (*JSXSpreadAttribute) jsxAttrNode() {}

type JSXClosingElement struct {
	base
	Name Expr
}

type JSXExpressionContainer struct {
	base
	Expression Expr // nil for an empty container holding only a dangling comment
}

func (*JSXExpressionContainer) exprNode() {}

type JSXText struct {
	base
	Value string
}

type JSXIdentifier struct {
	base
	Name string
}

func (*JSXIdentifier) exprNode() {}

type JSXMemberExpression struct {
	base
	Object   Expr
	Property JSXIdentifier
}

func (*JSXMemberExpression) exprNode() {}
