package translate

import (
	"strings"

	"github.com/crogenix/tsfmt/ast"
	"github.com/crogenix/tsfmt/doc"
	"github.com/crogenix/tsfmt/internal/attach"
)

// emitLeading prints each leading comment followed by a hard break (line comments must end their
// line) or a single space (block comments can share the line with what follows).
func (t *translator) emitLeading(cs []*ast.Comment) {
	for _, c := range cs {
		t.writeComment(c)
		if c.Kind == ast.LineComment {
			t.d.HardLine()
		} else {
			t.d.Text(" ")
		}
	}
}

// emitTrailing defers each trailing comment to the end of the current output line via
// LineSuffix, so it stays attached to the code that produced it regardless of what the
// translator appends afterward.
func (t *translator) emitTrailing(cs []*ast.Comment) {
	for _, c := range cs {
		comment := c
		t.d.LineSuffix(func(*doc.Doc) {
			t.d.Text(" ")
			t.writeComment(comment)
		})
	}
}

// danglingComments prints the comments attached to n as dangling: the case of a comment sitting
// alone inside an otherwise-empty container (`{ /* nothing yet */ }`).
func (t *translator) danglingComments(n ast.Node) {
	for _, c := range ast.CommentsOf(n).Dangling {
		t.writeComment(c)
	}
}

func hasPrettierIgnore(cs []*ast.Comment) bool {
	for _, c := range cs {
		if c.IsPrettierIgnore() {
			return true
		}
	}
	return false
}

// writeComment emits a comment's literal text. A multi-line block comment is split on its
// original newlines: each physical line is copied verbatim rather than reflowed, since comment
// bodies (JSDoc star-alignment included) are not a formatting concern this translator takes on.
func (t *translator) writeComment(c *ast.Comment) {
	var raw string
	if c.Kind == ast.LineComment {
		raw = "//" + c.Text
	} else {
		raw = "/*" + c.Text + "*/"
	}
	lines := strings.Split(raw, "\n")
	for i, line := range lines {
		if i > 0 {
			t.d.HardLine()
		}
		t.d.Text(line)
	}
	c.Printed = true
}

// emitRaw copies n's source slice verbatim, used for prettier-ignore subtrees. LiteralLine resets
// indentation to column zero between physical lines so the original text's own indentation (part
// of the copied slice) is the only indentation that survives.
func (t *translator) emitRaw(n ast.Node) {
	raw := string(t.src[n.Start():n.End()])
	lines := strings.Split(raw, "\n")
	for i, line := range lines {
		if i > 0 {
			t.d.LiteralLine()
		}
		t.d.Text(line)
	}
}

// markSubtreePrinted marks every comment reachable under n as printed without emitting it again,
// since a prettier-ignore subtree's raw copy already contains their text verbatim (such
// comments are not checked for printed-ness, but marking them keeps CheckAllPrinted accurate for
// the rest of the tree).
func (t *translator) markSubtreePrinted(n ast.Node) {
	cs := ast.CommentsOf(n)
	markAllPrinted(cs.Leading)
	markAllPrinted(cs.Trailing)
	markAllPrinted(cs.Dangling)
	for _, c := range attach.Children(n) {
		t.markSubtreePrinted(c)
	}
}

func markAllPrinted(cs []*ast.Comment) {
	for _, c := range cs {
		c.Printed = true
	}
}
