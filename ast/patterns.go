package ast

// ArrayPattern is a destructuring target: `[a, , b = 1, ...rest]`. Elements may be nil
// (elisions), *AssignmentPattern (defaults), *SpreadElement (rest), or any other Pattern.
type ArrayPattern struct {
	base
	Elements []Pattern
	TypeAnn  TypeAnnotation
}

func (*ArrayPattern) patternNode() {}

// ObjectPattern is a destructuring target: `{ a, b: c, ...rest }`.
type ObjectPattern struct {
	base
	Properties []*ObjectPatternProperty
	TypeAnn    TypeAnnotation
}

func (*ObjectPattern) patternNode() {}

type ObjectPatternProperty struct {
	base
	Key       Expr // absent (nil) when Rest is true
	Value     Pattern
	Computed  bool
	Shorthand bool
	Rest      bool // `...rest`
}

// AssignmentPattern is a pattern with a default value: `x = 1` inside a parameter list or
// destructuring target.
type AssignmentPattern struct {
	base
	Left  Pattern
	Right Expr
}

func (*AssignmentPattern) patternNode() {}

// RestElement is `...x` in a parameter list or array/object pattern, distinct from SpreadElement
// which appears in expression position (call arguments, array/object literals).
type RestElement struct {
	base
	Argument Pattern
	TypeAnn  TypeAnnotation
}

func (*RestElement) patternNode() {}
