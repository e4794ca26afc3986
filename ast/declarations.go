package ast

// VariableDeclaration is a var/let/const declaration statement. Kind is one of "var", "let",
// "const".
type VariableDeclaration struct {
	base
	Kind         string
	Declarations []*VariableDeclarator
}

func (*VariableDeclaration) stmtNode() {}

type VariableDeclarator struct {
	base
	ID   Pattern
	Init Expr // nil if uninitialized
}

// FunctionDeclaration is `function name(params) { body }`, optionally async/generator.
type FunctionDeclaration struct {
	base
	ID        *Identifier // nil for a default-exported anonymous function
	Params    []Pattern
	Body      *BlockStatement
	Async     bool
	Generator bool
	ReturnType TypeAnnotation // nil if unannotated
}

func (*FunctionDeclaration) stmtNode() {}

type ClassDeclaration struct {
	base
	ID         *Identifier
	SuperClass Expr // nil if there is no `extends` clause
	Body       *ClassBody
}

func (*ClassDeclaration) stmtNode() {}

type ClassBody struct {
	base
	Body []ClassMember
}

// ClassMember is implemented by MethodDefinition and PropertyDefinition.
type ClassMember interface {
	Node
	classMemberNode()
}

type MethodDefinition struct {
	base
	Key       Expr // Identifier, or a computed expression
	Value     *FunctionExpression
	Kind      string // "method", "get", "set", "constructor"
	Static    bool
	Computed  bool
}

func (*MethodDefinition) classMemberNode() {}

type PropertyDefinition struct {
	base
	Key      Expr
	Value    Expr // nil for a declared-but-uninitialized field
	Static   bool
	Computed bool
	TypeAnn  TypeAnnotation
}

func (*PropertyDefinition) classMemberNode() {}

// ImportDeclaration covers default, named, and namespace specifiers in one node, matching how
// real parsers group them: `import Default, { a, b as c }, * as ns from "mod"`.
type ImportDeclaration struct {
	base
	Default     *Identifier // nil if there is no default specifier
	Namespace   *Identifier // nil if there is no `* as ns` specifier
	Named       []ImportSpecifier
	Source      string // raw string literal, quotes included
}

func (*ImportDeclaration) stmtNode() {}

type ImportSpecifier struct {
	Imported Identifier
	Local    Identifier // equal to Imported when there is no `as` clause
}

type ExportNamedDeclaration struct {
	base
	Declaration Stmt // non-nil for `export const x = 1`, nil for `export { a, b }`
	Specifiers  []ExportSpecifier
	Source      string // non-empty for a re-export `export { a } from "mod"`
}

func (*ExportNamedDeclaration) stmtNode() {}

type ExportSpecifier struct {
	Local    Identifier
	Exported Identifier
}

type ExportDefaultDeclaration struct {
	base
	Declaration Node // Expr, *FunctionDeclaration, or *ClassDeclaration
}

func (*ExportDefaultDeclaration) stmtNode() {}

type ExportAllDeclaration struct {
	base
	Exported *Identifier // nil for `export * from "mod"`, set for `export * as ns from "mod"`
	Source   string
}

func (*ExportAllDeclaration) stmtNode() {}
