// Package tsfmt is the programmatic surface of the formatter: Format and Check wrap the
// parse → attach → translate → render pipeline, and Version reports the build version.
package tsfmt

import (
	"strings"

	"github.com/crogenix/tsfmt/ast"
	"github.com/crogenix/tsfmt/doc"
	"github.com/crogenix/tsfmt/errs"
	"github.com/crogenix/tsfmt/internal/attach"
	"github.com/crogenix/tsfmt/internal/massage"
	"github.com/crogenix/tsfmt/internal/parser"
	"github.com/crogenix/tsfmt/internal/rangefmt"
	"github.com/crogenix/tsfmt/internal/translate"
	"github.com/crogenix/tsfmt/internal/version"
	"github.com/crogenix/tsfmt/options"
)

// Version returns the module's build version.
func Version() string {
	return version.Version()
}

// Format formats text under opts and returns the formatted result. file names the source for
// error messages; it may be empty. Zero-value scalar opts fields are filled in by
// [options.Normalize]; boolean fields are used as given.
//
// A shebang line and the input's line-ending style survive formatting untouched: the shebang
// is split off before parsing and reattached verbatim, and the output is
// converted to CRLF after the fact if the input used CRLF.
func Format(file, text string, opts options.Options) (string, error) {
	opts, err := options.Normalize(opts)
	if err != nil {
		return "", err
	}

	shebang, body, crlf := splitInput(text)

	var formatted string
	if opts.RangeStart != 0 || opts.RangeEnd != -1 {
		formatted, err = formatRange(file, body, opts)
	} else {
		formatted, err = formatAll(file, body, opts)
	}
	if err != nil {
		return "", err
	}

	out := shebang + formatted
	if crlf {
		out = toCRLF(out)
	}
	return out, nil
}

// Check reports whether text is already formatted under opts, i.e. Format(text) == text.
func Check(file, text string, opts options.Options) (bool, error) {
	formatted, err := Format(file, text, opts)
	if err != nil {
		return false, err
	}
	return formatted == text, nil
}

// CheckIdempotent runs the debug format-check mode: it formats
// text, reformats that result, and reports an [errs.IdempotenceError] if the two formatted
// outputs differ or if the massaged ASTs of the input and the formatted output diverge.
func CheckIdempotent(file, text string, opts options.Options) error {
	once, err := Format(file, text, opts)
	if err != nil {
		return err
	}
	twice, err := Format(file, once, opts)
	if err != nil {
		return err
	}
	if once != twice {
		return &errs.IdempotenceError{File: file, Reason: "formatting the formatted output changed it"}
	}

	origProg, err := parse(file, []byte(text))
	if err != nil {
		return err
	}
	outProg, err := parse(file, []byte(once))
	if err != nil {
		return err
	}
	if !massage.Equal(origProg, outProg) {
		return &errs.IdempotenceError{File: file, Reason: "formatted output is not semantically equivalent to the input"}
	}
	return nil
}

func formatAll(file string, body []byte, opts options.Options) (string, error) {
	prog, err := parse(file, body)
	if err != nil {
		return "", err
	}
	d := formatDoc(prog, opts)
	if c := ast.CheckAllPrinted(prog); c != nil {
		return "", &errs.UnprintedCommentError{File: file, Text: c.Text, Pos: int(c.StartPos)}
	}
	rendered := printDocToString(d, opts)
	if rendered == "" {
		return "", nil
	}
	return strings.TrimRight(rendered, "\n") + "\n", nil
}

func formatRange(file string, body []byte, opts options.Options) (string, error) {
	out, err := rangefmt.Format(body, opts.RangeStart, rangeEnd(opts, len(body)), opts)
	if err != nil {
		if pe, ok := err.(parser.Error); ok {
			return "", &errs.ParseError{File: file, Pos: int(pe.Pos), Reason: pe.Reason}
		}
		return "", err
	}
	return out, nil
}

func rangeEnd(opts options.Options, length int) int {
	if opts.RangeEnd < 0 {
		return length
	}
	return opts.RangeEnd
}

// parse is the first debug hook: it parses src and runs comment attachment, returning
// the attributed AST the rest of the pipeline builds on.
func parse(file string, src []byte) (*ast.Program, error) {
	p, err := parser.New(src)
	if err != nil {
		return nil, wrapParseError(file, err)
	}
	prog, err := p.Parse()
	if err != nil {
		return nil, wrapParseError(file, err)
	}
	attach.Attach(prog)
	return prog, nil
}

func wrapParseError(file string, err error) error {
	if pe, ok := err.(parser.Error); ok {
		return &errs.ParseError{File: file, Pos: int(pe.Pos), Reason: pe.Reason}
	}
	return err
}

// formatAST is the second debug hook: an alias for parse exposed under the name given to the
// "parse, then run every tree transform up to but not including Doc translation" stage.
func formatAST(file string, src []byte) (*ast.Program, error) {
	return parse(file, src)
}

// formatDoc is the third debug hook: it translates an attributed AST straight to a [doc.Doc],
// skipping Format's range-selection and line-ending handling.
func formatDoc(prog *ast.Program, opts options.Options) *doc.Doc {
	return translate.ToDoc(prog, opts)
}

// printToDoc is the fourth debug hook, named distinctly from formatDoc because it
// takes source text rather than an already-parsed AST: parse, attach, translate in one call.
func printToDoc(file string, src []byte, opts options.Options) (*doc.Doc, error) {
	prog, err := parse(file, src)
	if err != nil {
		return nil, err
	}
	return formatDoc(prog, opts), nil
}

// DumpDoc parses and translates text, returning the unresolved structure of the resulting
// [doc.Doc] (doc.Doc.Debug) instead of rendering it, for the CLI's -debug-print-doc flag.
func DumpDoc(file, text string, opts options.Options) (string, error) {
	opts, err := options.Normalize(opts)
	if err != nil {
		return "", err
	}
	d, err := printToDoc(file, []byte(text), opts)
	if err != nil {
		return "", err
	}
	return d.Debug(), nil
}

// printDocToString is the fifth debug hook: the layout engine's Doc→string rendering step in
// isolation, useful for inspecting a Doc built by formatDoc/printToDoc without reformatting it.
func printDocToString(d *doc.Doc, opts options.Options) string {
	return d.Render(doc.PrintOptions{
		PrintWidth: opts.PrintWidth,
		TabWidth:   opts.TabWidth,
		UseTabs:    opts.UseTabs,
	})
}

// splitInput peels off a leading shebang line and detects CRLF line endings, normalizing the
// remainder to LF so the rest of the pipeline never has to think about
// line-ending style.
func splitInput(text string) (shebang string, body []byte, crlf bool) {
	rest := text
	if strings.HasPrefix(text, "#!") {
		if i := strings.IndexByte(text, '\n'); i >= 0 {
			shebang = text[:i+1]
			rest = text[i+1:]
		} else {
			shebang = text
			rest = ""
		}
	}

	// Line-ending style is decided by the byte before the input's first newline, not by whether
	// a CRLF appears anywhere: a file that starts LF but later contains a stray CRLF (e.g. inside
	// a string literal) must round-trip as LF, not get rewritten to CRLF throughout.
	if i := strings.IndexByte(text, '\n'); i > 0 && text[i-1] == '\r' {
		crlf = true
	}
	if crlf {
		rest = strings.ReplaceAll(rest, "\r\n", "\n")
		shebang = strings.ReplaceAll(shebang, "\r\n", "\n")
	}
	return shebang, []byte(rest), crlf
}

func toCRLF(s string) string {
	return strings.ReplaceAll(s, "\n", "\r\n")
}
