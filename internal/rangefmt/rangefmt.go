// Package rangefmt implements the range-format driver: given a byte range within a
// larger source file, it reformats only the statements overlapping that range and splices the
// result back in, leaving every byte outside the chosen range untouched (testable property 6).
package rangefmt

import (
	"strings"

	"github.com/crogenix/tsfmt/ast"
	"github.com/crogenix/tsfmt/doc"
	"github.com/crogenix/tsfmt/internal/attach"
	"github.com/crogenix/tsfmt/internal/parser"
	"github.com/crogenix/tsfmt/internal/translate"
	"github.com/crogenix/tsfmt/options"
	"github.com/crogenix/tsfmt/token"
)

// Format reformats the statements of src that overlap [rangeStart, rangeEnd) and returns the
// full, spliced source. Bytes outside the chosen sibling-ancestor range are copied verbatim.
func Format(src []byte, rangeStart, rangeEnd int, opts options.Options) (string, error) {
	start, end := contract(src, rangeStart, rangeEnd)

	p, err := parser.New(src)
	if err != nil {
		return "", err
	}
	prog, err := p.Parse()
	if err != nil {
		return "", err
	}
	attach.Attach(prog)

	stmts := siblingAncestors(prog, token.Pos(start), token.Pos(end))
	if len(stmts) == 0 {
		return string(src), nil
	}
	spanStart := int(stmts[0].Start())
	spanEnd := int(stmts[len(stmts)-1].End())

	lineStart := lineStartOf(src, spanStart)
	alignmentSize := columnsOf(src[lineStart:spanStart], opts)

	fragment := src[spanStart:spanEnd]
	formatted, err := formatFragment(fragment, alignmentSize, opts)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.Write(src[:spanStart])
	b.WriteString(strings.TrimRight(formatted, "\n"))
	b.Write(src[spanEnd:])
	return b.String(), nil
}

// contract moves both endpoints inward to the nearest non-whitespace byte.
func contract(src []byte, start, end int) (int, int) {
	for start < end && start < len(src) && isSpace(src[start]) {
		start++
	}
	for end > start && end <= len(src) && isSpace(src[end-1]) {
		end--
	}
	return start, end
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

func lineStartOf(src []byte, pos int) int {
	for i := pos - 1; i >= 0; i-- {
		if src[i] == '\n' {
			return i + 1
		}
	}
	return 0
}

func columnsOf(prefix []byte, opts options.Options) int {
	n := 0
	tw := opts.TabWidth
	if tw <= 0 {
		tw = 2
	}
	for _, c := range prefix {
		if c == '\t' {
			n += tw
		} else {
			n++
		}
	}
	return n
}

// siblingAncestors finds the statement list (a Program body or the nearest enclosing block's
// body) containing [start, end), then returns the contiguous run of its statements overlapping
// that range — the "sibling ancestors" widening step, simplified to whole statements rather
// than arbitrary nested expressions, since a formatted fragment must itself be a parseable
// top-level program.
func siblingAncestors(prog *ast.Program, start, end token.Pos) []ast.Stmt {
	list := deepestStatementList(prog.Body, start, end)
	if list == nil {
		list = prog.Body
	}

	var selected []ast.Stmt
	for _, s := range list {
		if s.End() <= start {
			continue
		}
		if s.Start() >= end {
			break
		}
		selected = append(selected, s)
	}
	return selected
}

// deepestStatementList descends into the single statement whose span contains [start, end),
// looking for a nested block whose own statement list more tightly encloses the range.
func deepestStatementList(list []ast.Stmt, start, end token.Pos) []ast.Stmt {
	for _, s := range list {
		if s.Start() > start || s.End() < end {
			continue
		}
		if inner := findNestedList(s, start, end); inner != nil {
			if deeper := deepestStatementList(inner, start, end); deeper != nil {
				return deeper
			}
			return inner
		}
		return list
	}
	return nil
}

func findNestedList(n ast.Node, start, end token.Pos) []ast.Stmt {
	for _, c := range attach.Children(n) {
		if c.Start() > start || c.End() < end {
			continue
		}
		if b, ok := c.(*ast.BlockStatement); ok {
			return b.Body
		}
		if inner := findNestedList(c, start, end); inner != nil {
			return inner
		}
	}
	return nil
}

// formatFragment parses fragment as a standalone program and renders it at printWidth reduced by
// alignmentSize, then re-indents every continuation line by alignmentSize columns so the result
// lines up with the surrounding code's own indentation.
func formatFragment(fragment []byte, alignmentSize int, opts options.Options) (string, error) {
	p, err := parser.New(fragment)
	if err != nil {
		return "", err
	}
	prog, err := p.Parse()
	if err != nil {
		return "", err
	}
	attach.Attach(prog)

	// Wrapping the fragment's Doc in Doc.Align would thread alignment through the layout engine's
	// own indentation, but a reformatted fragment is rendered standalone here and spliced back in as
	// plain text, so the simpler equivalent is to render at column zero and indent every
	// continuation line by alignmentSize afterward.
	rendered := translate.ToDoc(prog, opts).Render(doc.PrintOptions{
		PrintWidth: opts.PrintWidth - alignmentSize,
		TabWidth:   opts.TabWidth,
		UseTabs:    opts.UseTabs,
	})
	return indentContinuations(rendered, alignmentSize), nil
}

func indentContinuations(s string, columns int) string {
	if columns <= 0 {
		return s
	}
	prefix := strings.Repeat(" ", columns)
	lines := strings.Split(s, "\n")
	for i := 1; i < len(lines); i++ {
		if lines[i] != "" {
			lines[i] = prefix + lines[i]
		}
	}
	return strings.Join(lines, "\n")
}
