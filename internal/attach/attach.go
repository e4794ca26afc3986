// Package attach implements the comment-attachment pre-pass: binding each free-floating comment
// collected by internal/parser to the AST node whose source range brackets it most tightly,
// marked leading, trailing, or dangling.
package attach

import (
	"sort"

	"github.com/crogenix/tsfmt/ast"
	"github.com/crogenix/tsfmt/token"
)

// Attach binds every comment on prog.Comments to a node reachable from prog.Body, in place. It
// must run once, before translation, since node printers consult the comment slots attached here.
func Attach(prog *ast.Program) {
	comments := make([]*ast.Comment, len(prog.Comments))
	copy(comments, prog.Comments)
	sort.Slice(comments, func(i, j int) bool { return comments[i].StartPos < comments[j].StartPos })

	for _, c := range comments {
		attachOne(prog, prog.Source, c)
	}
}

// attachOne descends from enclosing (starting at the program root) into whichever direct child's
// span contains the comment, repeating until no child contains it. At that point enclosing is the
// tightest-bracketing node, and the comment is placed relative to enclosing's direct children.
func attachOne(root ast.Node, src []byte, c *ast.Comment) {
	enclosing := root
	for {
		children := Children(enclosing)
		next := childContaining(children, c)
		if next == nil {
			placeAmong(enclosing, children, src, c)
			return
		}
		enclosing = next
	}
}

func childContaining(children []ast.Node, c *ast.Comment) ast.Node {
	for _, child := range children {
		if child.Start() <= c.StartPos && c.EndPos <= child.End() {
			return child
		}
	}
	return nil
}

// placeAmong attaches c to one of enclosing's direct children (as leading or trailing) or, if
// children is empty or the comment sits outside all of them, to enclosing itself as dangling.
func placeAmong(enclosing ast.Node, children []ast.Node, src []byte, c *ast.Comment) {
	var preceding, following ast.Node
	for _, child := range children {
		if child.End() <= c.StartPos {
			if preceding == nil || child.End() > preceding.End() {
				preceding = child
			}
		}
		if child.Start() >= c.EndPos {
			if following == nil || child.Start() < following.Start() {
				following = child
			}
		}
	}

	switch {
	case preceding != nil && sameLine(src, preceding.End(), c.StartPos):
		appendTrailing(preceding, c)
	case following != nil && !blankLineBetween(src, c.EndPos, following.Start()):
		appendLeading(following, c)
	case preceding != nil:
		appendTrailing(preceding, c)
	case following != nil:
		appendLeading(following, c)
	default:
		appendDangling(enclosing, c)
	}
}

func appendLeading(n ast.Node, c *ast.Comment) {
	cs := ast.CommentsOf(n)
	cs.Leading = append(cs.Leading, c)
}

func appendTrailing(n ast.Node, c *ast.Comment) {
	cs := ast.CommentsOf(n)
	cs.Trailing = append(cs.Trailing, c)
}

func appendDangling(n ast.Node, c *ast.Comment) {
	cs := ast.CommentsOf(n)
	cs.Dangling = append(cs.Dangling, c)
}

func sameLine(src []byte, a, b token.Pos) bool {
	return countNewlines(src, a, b) == 0
}

// blankLineBetween reports whether at least one fully empty line separates a and b, i.e. two or
// more newlines appear in the gap between them.
func blankLineBetween(src []byte, a, b token.Pos) bool {
	return countNewlines(src, a, b) >= 2
}

func countNewlines(src []byte, a, b token.Pos) int {
	if a < 0 {
		a = 0
	}
	if int(b) > len(src) {
		b = token.Pos(len(src))
	}
	n := 0
	for i := int(a); i < int(b); i++ {
		if src[i] == '\n' {
			n++
		}
	}
	return n
}
