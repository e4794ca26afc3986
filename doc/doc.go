// Package doc implements the document intermediate representation that sits between the AST
// translator and the output string: an algebraic type that records both literal text and
// formatting choices (indent, align, group, line breaks) for a width-aware layout engine to
// resolve.
//
// A [Doc] is assembled by chaining method calls that append tags to a flat, span-encoded slice —
// the same representation the DOT formatter's layout package uses (see
// github.com/teleivo/dot/internal/layout), generalized here with the additional variants a
// general-purpose pretty-printer needs: IfBreak, LineSuffix/LineSuffixBoundary, Align, and the
// Soft/Hard/Literal line distinctions.
//
// # Acknowledgments
//
// The tag-array-with-span-length encoding and the two-phase measure-then-layout algorithm are
// adapted from the DOT formatter's layout package, itself a Go port of [allman] by mcyoung,
// based on ["The Art of Formatting Code"].
//
// [allman]: https://github.com/mcy/strings/tree/main/allman
// ["The Art of Formatting Code"]: https://mcyoung.xyz/2025/03/11/formatters/
package doc

import (
	"fmt"
	"strings"
)

// Doc is built by chaining [Doc.Text], [Doc.Line], [Doc.SoftLine], [Doc.HardLine],
// [Doc.LiteralLine], [Doc.Group], [Doc.Indent], [Doc.Align], [Doc.IfBreak], [Doc.LineSuffix], and
// related methods. Call [Doc.Render] once construction is complete; rendering recomputes its
// cached measurements on every call, so the same Doc may be rendered multiple times (e.g. once at
// full width and once for the debug "layout" dump).
type Doc struct {
	tags []*node
}

// New creates an empty document.
func New() *Doc {
	return &Doc{}
}

type tagIterator func(yield func(*node, tagIterator) bool)

func (d *Doc) all() tagIterator {
	return d.newTagIterator(0, len(d.tags))
}

func (d *Doc) newTagIterator(i, j int) tagIterator {
	return func(yield func(*node, tagIterator) bool) {
		for i < j {
			if d.tags[i].len == 0 {
				if !yield(d.tags[i], d.newTagIterator(i, i)) {
					return
				}
				i++
			} else {
				if !yield(d.tags[i], d.newTagIterator(i+1, i+1+d.tags[i].len)) {
					return
				}
				i = i + 1 + d.tags[i].len
			}
		}
	}
}

// condition determines when a tag renders relative to its enclosing group's flat/break decision.
// It is the mechanism [Doc.IfBreak] and the Line family are built on: each alternative is a
// sibling span tagged Flat or Broken, and the renderer skips whichever does not match.
type condition int

const (
	always condition = iota
	flat
	broken
)

// node wraps a tag with its span length (len), its condition, and (after [Doc.Render]'s measure
// phase) its computed width/break decision.
type node struct {
	tag     tag
	len     int
	cond    condition
	measure measure
}

type tag interface{ isTag() }

// Text appends literal output. content must not contain a newline; use [Doc.HardLine],
// [Doc.SoftLine], or [Doc.LiteralLine] for line breaks instead. Embedding one is an invariant
// violation and panics immediately, since a stray newline would desynchronize the layout engine's
// column tracking.
func (d *Doc) Text(content string) *Doc {
	if strings.ContainsRune(content, '\n') {
		panic(fmt.Sprintf("doc: Text content must not contain a newline: %q", content))
	}
	return d.push(&textTag{content: content}, always, nil)
}

// Line renders as a single space when its enclosing group is flat, or a newline (plus the
// current indent) when broken.
func (d *Doc) Line() *Doc {
	return d.push(&lineTag{soft: false}, always, nil)
}

// SoftLine renders as nothing when flat, or a newline when broken.
func (d *Doc) SoftLine() *Doc {
	return d.push(&lineTag{soft: true}, always, nil)
}

// HardLine always renders as a newline and forces every enclosing group to break.
func (d *Doc) HardLine() *Doc {
	return d.push(&breakTag{literal: false}, always, nil)
}

// LiteralLine always renders as a newline that resets indentation to column zero, for embedded
// template-literal text that must not be reindented.
func (d *Doc) LiteralLine() *Doc {
	return d.push(&breakTag{literal: true}, always, nil)
}

// Group marks body as a flat/break decision point: if its flattened width fits in the remaining
// column budget it renders on one line, otherwise every Line/SoftLine inside renders broken.
// Use [Doc.GroupBreak] to force the group to render broken regardless of width.
func (d *Doc) Group(body func(*Doc)) *Doc {
	return d.pushWith(&groupTag{}, always, body)
}

// GroupBreak is [Doc.Group] with an unconditional forced break.
func (d *Doc) GroupBreak(body func(*Doc)) *Doc {
	return d.pushWith(&groupTag{shouldBreak: true}, always, body)
}

// Indent increases indentation for contained line breaks by one level: one tab, or tabWidth
// spaces, depending on the printing [Options].
func (d *Doc) Indent(body func(*Doc)) *Doc {
	return d.pushWith(&indentTag{}, always, body)
}

// Align adds n literal columns of indentation (always spaces, regardless of useTabs), used for
// range-format alignment and for hanging indents that must land on a specific column.
func (d *Doc) Align(n int, body func(*Doc)) *Doc {
	return d.pushWith(&alignTag{columns: n}, always, body)
}

// IfBreak emits breakBody when the nearest enclosing group renders broken, or flatBody when it
// renders flat. Either may be nil.
func (d *Doc) IfBreak(breakBody, flatBody func(*Doc)) *Doc {
	if breakBody != nil {
		d.pushWith(&container{}, broken, breakBody)
	}
	if flatBody != nil {
		d.pushWith(&container{}, flat, flatBody)
	}
	return d
}

// LineSuffix defers body's rendering to just before the next real newline (or the end of the
// document), so trailing comments stay attached to the line that produced them even though more
// Docs are appended after the comment in the tree.
func (d *Doc) LineSuffix(body func(*Doc)) *Doc {
	return d.pushWith(&lineSuffixTag{}, always, body)
}

// LineSuffixBoundary forces any pending line-suffix content to flush immediately, without itself
// emitting a newline.
func (d *Doc) LineSuffixBoundary() *Doc {
	return d.push(&lineSuffixBoundaryTag{}, always, nil)
}

// Cursor marks a position in the output. [Doc.Render] records the byte offset of the first Cursor
// it reaches but does not return it; the marker adds no output of its own.
func (d *Doc) Cursor() *Doc {
	return d.push(&cursorTag{}, always, nil)
}

func (d *Doc) push(t tag, cond condition, body func(*Doc)) *Doc {
	if body == nil {
		body = func(*Doc) {}
	}
	return d.pushWith(t, cond, body)
}

func (d *Doc) pushWith(t tag, cond condition, body func(*Doc)) *Doc {
	i := len(d.tags)
	d.tags = append(d.tags, &node{tag: t, cond: cond})
	body(d)
	if j := len(d.tags); j != i {
		d.tags[i].len = j - i - 1
	}
	return d
}

type textTag struct{ content string }

func (*textTag) isTag() {}

type lineTag struct{ soft bool }

func (*lineTag) isTag() {}

type breakTag struct{ literal bool }

func (*breakTag) isTag() {}

type groupTag struct{ shouldBreak bool }

func (*groupTag) isTag() {}

type indentTag struct{}

func (*indentTag) isTag() {}

type alignTag struct{ columns int }

func (*alignTag) isTag() {}

// container is a neutral grouping tag with no layout effect of its own; it exists so IfBreak's
// two alternatives (and any other conditionally-rendered subtree) can carry a condition without
// inventing a new tag variant per use.
type container struct{}

func (*container) isTag() {}

type lineSuffixTag struct{}

func (*lineSuffixTag) isTag() {}

type lineSuffixBoundaryTag struct{}

func (*lineSuffixBoundaryTag) isTag() {}

type cursorTag struct{}

func (*cursorTag) isTag() {}

// measure is the result of the measure phase: the flat-rendered width of a tag's subtree, and
// whether it transitively contains a forced break (HardLine/LiteralLine), which propagates
// outward and forces every enclosing group to render broken.

type measure struct {
	width        int
	broken       bool
	pendingSpace bool
}

func (m *measure) add(b measure) {
	if m.broken || b.broken {
		m.broken = true
		m.pendingSpace = false
		return
	}
	if b.width > 0 || b.pendingSpace {
		if m.pendingSpace {
			m.width++
		}
		m.pendingSpace = b.pendingSpace
	}
	m.width += b.width
}

func (m measure) String() string {
	if m.broken {
		return "broken"
	}
	return fmt.Sprint(m.width)
}
