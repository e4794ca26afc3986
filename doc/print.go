package doc

import "strings"

// PrintOptions controls how [Doc.Render] resolves group flat/break decisions and renders
// indentation. It mirrors the subset of the options bag that the layout engine itself
// needs; the full options bag lives in package options and is translated down to this at the
// call site.
type PrintOptions struct {
	PrintWidth int
	TabWidth   int
	UseTabs    bool
}

// Render lays out d against opts and returns the formatted string. Cached measurements are
// recomputed on every call, so the same Doc may be rendered more than once (e.g. once for output,
// once via [Doc.Debug]).
func (d *Doc) Render(opts PrintOptions) string {
	measureIter(d.all())
	sumWidths(d.all())

	var sb strings.Builder
	r := &renderer{
		w:       &sb,
		opts:    opts,
		indent:  nil,
	}
	r.render(d.all(), 0, false)
	r.flushSuffixes()
	return sb.String()
}

// measureIter computes the flat-render width contribution of every leaf tag, skipping tags whose
// condition is broken-only (they contribute nothing to a flat rendering, per [Doc.IfBreak]).
func measureIter(iter tagIterator) {
	for t, children := range iter {
		t.measure = measure{}
		tagWidth(t)
		measureIter(children)
	}
}

func tagWidth(t *node) {
	if t.cond == broken {
		return
	}
	switch tag := t.tag.(type) {
	case *textTag:
		t.measure.width = len(tag.content)
	case *lineTag:
		if tag.soft {
			t.measure.width = 0
		} else {
			t.measure.pendingSpace = true
		}
	case *breakTag:
		t.measure.broken = true
	}
}

// sumWidths aggregates child measures into each parent's measure, propagating forced breaks
// outward so that a HardLine anywhere inside a group forces that group (and every ancestor
// group) to render broken.
func sumWidths(iter tagIterator) measure {
	var m measure
	for t, children := range iter {
		child := sumWidths(children)
		t.measure.add(child)
		if t.cond == broken {
			continue
		}
		m.add(t.measure)
	}
	return m
}

type renderer struct {
	w               *strings.Builder
	opts            PrintOptions
	indent          []indentUnit
	pendingSpace    bool
	writtenNewlines int
	suppressIndent  bool // set by a LiteralLine; cleared once indentation is next printed
	suffixes        []string
	cursorOffset    int
	sawCursor       bool
}

type indentKind int

const (
	indentTabUnit indentKind = iota
	indentAlignUnit
)

type indentUnit struct {
	kind    indentKind
	columns int // only meaningful for indentAlignUnit; tab units use opts.TabWidth
}

func (r *renderer) pushTab() []indentUnit {
	return append(r.indent[:len(r.indent):len(r.indent)], indentUnit{kind: indentTabUnit})
}

func (r *renderer) pushAlign(n int) []indentUnit {
	return append(r.indent[:len(r.indent):len(r.indent)], indentUnit{kind: indentAlignUnit, columns: n})
}

func (r *renderer) indentString() string {
	var sb strings.Builder
	for _, u := range r.indent {
		switch u.kind {
		case indentTabUnit:
			if r.opts.UseTabs {
				sb.WriteByte('\t')
			} else {
				sb.WriteString(strings.Repeat(" ", tabWidth(r.opts)))
			}
		case indentAlignUnit:
			sb.WriteString(strings.Repeat(" ", u.columns))
		}
	}
	return sb.String()
}

func tabWidth(opts PrintOptions) int {
	if opts.TabWidth <= 0 {
		return 2
	}
	return opts.TabWidth
}

// render walks the tree, writing to r.w. column is the caller-tracked output column, used only to
// decide whether a Group fits; isParentBroken is the flat/break mode inherited from the nearest
// enclosing group.
func (r *renderer) render(iter tagIterator, column int, isParentBroken bool) int {
	for t, children := range iter {
		if t.cond == flat && isParentBroken || t.cond == broken && !isParentBroken {
			continue
		}

		switch tag := t.tag.(type) {
		case *groupTag:
			broke := tag.shouldBreak || t.measure.broken || column+t.measure.width > r.opts.PrintWidth
			t.measure.broken = broke
			column = r.render(children, column, broke)
		case *indentTag:
			saved := r.indent
			r.indent = r.pushTab()
			column = r.render(children, column, isParentBroken)
			r.indent = saved
		case *alignTag:
			saved := r.indent
			r.indent = r.pushAlign(tag.columns)
			column = r.render(children, column, isParentBroken)
			r.indent = saved
		case *container:
			column = r.render(children, column, isParentBroken)
		case *lineSuffixTag:
			var sub strings.Builder
			saved := r.w
			r.w = &sub
			r.render(children, column, isParentBroken)
			r.w = saved
			r.suffixes = append(r.suffixes, sub.String())
		case *lineSuffixBoundaryTag:
			r.flushSuffixes()
		case *cursorTag:
			if !r.sawCursor {
				r.cursorOffset = r.w.Len()
				r.sawCursor = true
			}
		case *textTag:
			r.writeText(tag.content)
			column += len(tag.content)
		case *lineTag:
			if isParentBroken {
				column = r.writeNewline(false)
			} else if !tag.soft {
				r.pendingSpace = true
				column++
			}
		case *breakTag:
			column = r.writeNewline(tag.literal)
		}
	}
	return column
}

func (r *renderer) writeText(s string) {
	if r.pendingSpace {
		r.w.WriteByte(' ')
		r.pendingSpace = false
	}
	if r.writtenNewlines > 0 && !r.suppressIndent {
		r.w.WriteString(r.indentString())
	}
	r.writtenNewlines = 0
	r.suppressIndent = false
	r.w.WriteString(s)
}

func (r *renderer) writeNewline(literal bool) int {
	r.pendingSpace = false
	r.flushSuffixes()
	r.w.WriteByte('\n')
	r.writtenNewlines++
	if literal {
		r.suppressIndent = true
		return 0
	}
	r.suppressIndent = false
	return len(r.indentString())
}

func (r *renderer) flushSuffixes() {
	if len(r.suffixes) == 0 {
		return
	}
	for _, s := range r.suffixes {
		r.w.WriteString(s)
	}
	r.suffixes = r.suffixes[:0]
}
