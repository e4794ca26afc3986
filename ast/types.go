package ast

// TypeAnnotation wraps a type-level node for the `: T` position on a binding, parameter, or
// function return. It exists as a distinct node (rather than aliasing the inner type directly)
// so the translator has one place to emit the leading colon and so the oracle can match on
// "is this node the type annotation of a binding" without inspecting the parent's field name.
type TypeAnn struct {
	base
	Type TypeAnnotation
}

func (*TypeAnn) typeNode() {}

// GenericTypeAnnotation is a named type reference, optionally with type arguments: `Array<T>`,
// `Map<K, V>`, or a bare `Foo`.
type GenericTypeAnnotation struct {
	base
	ID       string
	TypeArgs []TypeAnnotation
}

func (*GenericTypeAnnotation) typeNode() {}

// UnionTypeAnnotation is `A | B | C`.
type UnionTypeAnnotation struct {
	base
	Types []TypeAnnotation
}

func (*UnionTypeAnnotation) typeNode() {}

// IntersectionTypeAnnotation is `A & B & C`.
type IntersectionTypeAnnotation struct {
	base
	Types []TypeAnnotation
}

func (*IntersectionTypeAnnotation) typeNode() {}

// NullableTypeAnnotation is `?T`, the superset's nullable-type sigil.
type NullableTypeAnnotation struct {
	base
	Type TypeAnnotation
}

func (*NullableTypeAnnotation) typeNode() {}

// ArrayTypeAnnotation is `T[]`.
type ArrayTypeAnnotation struct {
	base
	ElementType TypeAnnotation
}

func (*ArrayTypeAnnotation) typeNode() {}

// TupleTypeAnnotation is `[A, B, C]` in type position.
type TupleTypeAnnotation struct {
	base
	Types []TypeAnnotation
}

func (*TupleTypeAnnotation) typeNode() {}

// FunctionTypeAnnotation is `(a: A, b: B) => R`.
type FunctionTypeAnnotation struct {
	base
	Params     []FunctionTypeParam
	ReturnType TypeAnnotation
}

func (*FunctionTypeAnnotation) typeNode() {}

type FunctionTypeParam struct {
	Name string // may be empty for an unnamed parameter type
	Type TypeAnnotation
}

// TypeLiteral is an inline object type: `{ a: A; b: B }`.
type TypeLiteral struct {
	base
	Members []*PropertySignature
}

func (*TypeLiteral) typeNode() {}

type PropertySignature struct {
	base
	Key      string
	Type     TypeAnnotation
	Optional bool
}

// LiteralTypeAnnotation is a literal used as a type: `"a"`, `42`, `true`.
type LiteralTypeAnnotation struct {
	base
	Raw string
}

func (*LiteralTypeAnnotation) typeNode() {}
