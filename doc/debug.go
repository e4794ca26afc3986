package doc

import (
	"fmt"
	"strings"
)

// Debug renders the unresolved document structure as indented, HTML-like markup, showing every
// tag including ones that may not appear in the final output. It is the backing of the
// `formatDoc`/`printToDoc` debug hooks and is useful for understanding why a group
// broke, since unlike [Doc.Render] it does not run the measure/layout passes.
func (d *Doc) Debug() string {
	var sb strings.Builder
	debugIter(&sb, d.all(), 0)
	return sb.String()
}

func debugIter(w *strings.Builder, iter tagIterator, depth int) {
	for t, children := range iter {
		indent := strings.Repeat("  ", depth)
		condStr := ""
		if t.cond != always {
			condStr = fmt.Sprintf(" cond=%q", condName(t.cond))
		}
		switch tag := t.tag.(type) {
		case *textTag:
			fmt.Fprintf(w, "%s<text%s content=%q/>\n", indent, condStr, tag.content)
		case *lineTag:
			kind := "line"
			if tag.soft {
				kind = "softline"
			}
			fmt.Fprintf(w, "%s<%s%s/>\n", indent, kind, condStr)
		case *breakTag:
			kind := "hardline"
			if tag.literal {
				kind = "literalline"
			}
			fmt.Fprintf(w, "%s<%s%s/>\n", indent, kind, condStr)
		case *groupTag:
			fmt.Fprintf(w, "%s<group width=%s shouldBreak=%t>\n", indent, t.measure, tag.shouldBreak)
			debugIter(w, children, depth+1)
			fmt.Fprintf(w, "%s</group>\n", indent)
		case *indentTag:
			fmt.Fprintf(w, "%s<indent>\n", indent)
			debugIter(w, children, depth+1)
			fmt.Fprintf(w, "%s</indent>\n", indent)
		case *alignTag:
			fmt.Fprintf(w, "%s<align columns=%d>\n", indent, tag.columns)
			debugIter(w, children, depth+1)
			fmt.Fprintf(w, "%s</align>\n", indent)
		case *container:
			fmt.Fprintf(w, "%s<ifBreak%s>\n", indent, condStr)
			debugIter(w, children, depth+1)
			fmt.Fprintf(w, "%s</ifBreak>\n", indent)
		case *lineSuffixTag:
			fmt.Fprintf(w, "%s<lineSuffix>\n", indent)
			debugIter(w, children, depth+1)
			fmt.Fprintf(w, "%s</lineSuffix>\n", indent)
		case *lineSuffixBoundaryTag:
			fmt.Fprintf(w, "%s<lineSuffixBoundary/>\n", indent)
		case *cursorTag:
			fmt.Fprintf(w, "%s<cursor/>\n", indent)
		}
	}
}

func condName(c condition) string {
	switch c {
	case flat:
		return "flat"
	case broken:
		return "broken"
	default:
		return "always"
	}
}
