// Package ast contains the attributed abstract syntax tree produced by internal/parser and
// consumed by internal/translate. Every node carries its kind (by Go type, matched exhaustively
// via type switches in the translator and the parenthesization oracle), its source byte span, and
// the comments attached to it by internal/attach.
package ast

import "github.com/crogenix/tsfmt/token"

// Node is implemented by every AST node. Identity is by reference; two distinct nodes are never
// == even if structurally identical, which is why massage.Equal (used for the semantic-
// preservation property) compares structurally instead.
type Node interface {
	Start() token.Pos
	End() token.Pos
	// comments returns the mutable comment slots embedded in the node so internal/attach and
	// the translator's comment-emission helpers can reach them without a type switch.
	comments() *Comments
}

// Comments holds the comments bound to a node by the attachment pass (internal/attach). A
// comment sits in exactly one of Leading, Trailing, or Dangling.
type Comments struct {
	Leading  []*Comment
	Trailing []*Comment
	Dangling []*Comment
}

// base is embedded by every concrete node type. It stores the byte span and the attached
// comments, and gives every node its Start/End/comments methods for free.
type base struct {
	StartPos token.Pos
	EndPos   token.Pos
	Cs       Comments
}

func (b *base) Start() token.Pos    { return b.StartPos }
func (b *base) End() token.Pos      { return b.EndPos }
func (b *base) comments() *Comments { return &b.Cs }

// SetSpan records the byte span of a node. It is called once by internal/parser immediately after
// building each node, since base's fields are unexported outside this package.
func (b *base) SetSpan(start, end token.Pos) {
	b.StartPos = start
	b.EndPos = end
}

// CommentsOf returns the comment slots attached to n. Exported for use outside this package
// (internal/attach and internal/translate both live outside ast).
func CommentsOf(n Node) *Comments { return n.comments() }

// CommentKind distinguishes a line comment ("// ...") from a block comment ("/* ... */").
type CommentKind int

const (
	LineComment CommentKind = iota
	BlockComment
)

// Comment is a single source comment. Attachment (internal/attach) binds it into a node's Leading,
// Trailing, or Dangling slot; emission (internal/translate) sets Printed once the comment has been
// written to the Doc, and CheckAllPrinted treats any comment left unprinted as a bug.
type Comment struct {
	Text     string // text without the leading "//" or surrounding "/* */"
	Kind     CommentKind
	StartPos token.Pos
	EndPos   token.Pos
	Printed  bool
	// OwnLine records whether the comment started on a line by itself (no code before it),
	// used by the attachment heuristic and by trailing/leading placement rules.
	OwnLine bool
}

func (c *Comment) Start() token.Pos { return c.StartPos }
func (c *Comment) End() token.Pos   { return c.EndPos }

// IsPrettierIgnore reports whether the comment text is the special directive that suppresses
// formatting of the following node. The raw source slice of that node is copied
// verbatim, and comments within it are not checked for printed-ness.
func (c *Comment) IsPrettierIgnore() bool {
	return trimSpace(c.Text) == "prettier-ignore"
}

func trimSpace(s string) string {
	start, end := 0, len(s)
	for start < end && isSpace(s[start]) {
		start++
	}
	for end > start && isSpace(s[end-1]) {
		end--
	}
	return s[start:end]
}

func isSpace(b byte) bool { return b == ' ' || b == '\t' || b == '\n' || b == '\r' }

// Program is the root of the tree: a sequence of statements plus every comment found anywhere in
// the source, before attachment moves them onto individual nodes.
type Program struct {
	base
	Body     []Stmt
	Comments []*Comment // emptied conceptually by attachment; the slice itself is left for tooling
	Source   []byte     // original source text, needed by the range-format driver and prettier-ignore
}

func (p *Program) String() string { return "Program" }

// CheckAllPrinted reports the first comment in prog.Comments that emission left unprinted, or nil
// if every comment found during parsing was written to the output. prog.Comments holds every
// comment's *Comment pointer regardless of where attachment bound it, so this needs no tree walk.
func CheckAllPrinted(prog *Program) *Comment {
	for _, c := range prog.Comments {
		if !c.Printed {
			return c
		}
	}
	return nil
}

// Stmt is implemented by every statement node.
type Stmt interface {
	Node
	stmtNode()
}

// Expr is implemented by every expression node.
type Expr interface {
	Node
	exprNode()
}

// Pattern is implemented by every binding-pattern node (left-hand sides of declarations,
// parameters, and destructuring targets).
type Pattern interface {
	Node
	patternNode()
}

// TypeAnnotation is implemented by every type-level node.
type TypeAnnotation interface {
	Node
	typeNode()
}
