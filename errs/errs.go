// Package errs defines the distinct error types the pipeline returns, each formatted the
// "<filename>: <message>" way a command-line formatter reports failures, and each satisfying
// errors.Is/errors.As so callers can branch on failure class without string matching.
package errs

import "fmt"

// ParseError reports a syntax error encountered while lexing or parsing source text.
type ParseError struct {
	File   string
	Pos    int
	Reason string
}

func (e *ParseError) Error() string {
	if e.File == "" {
		return fmt.Sprintf("offset %d: %s", e.Pos, e.Reason)
	}
	return fmt.Sprintf("%s: offset %d: %s", e.File, e.Pos, e.Reason)
}

// ValidationError reports an Options value that failed normalization (an unknown parser name, an
// out-of-range width, and so on).
type ValidationError struct {
	File   string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.File == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.File, e.Reason)
}

// UnprintedCommentError reports a comment attached nowhere in the output Doc, caught by every
// whole-file Format before the Doc is rendered.
type UnprintedCommentError struct {
	File string
	Text string
	Pos  int
}

func (e *UnprintedCommentError) Error() string {
	msg := fmt.Sprintf("comment %q at offset %d was never printed", e.Text, e.Pos)
	if e.File == "" {
		return msg
	}
	return fmt.Sprintf("%s: %s", e.File, msg)
}

// IdempotenceError reports that formatting the formatted output produced a different result, or
// that massaged ASTs of input and output diverged.
type IdempotenceError struct {
	File   string
	Reason string
}

func (e *IdempotenceError) Error() string {
	msg := fmt.Sprintf("idempotence check failed: %s", e.Reason)
	if e.File == "" {
		return msg
	}
	return fmt.Sprintf("%s: %s", e.File, msg)
}

// IOError wraps a failure reading or writing a file, preserving the underlying error for
// errors.Unwrap/errors.Is.
type IOError struct {
	File string
	Op   string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.File, e.Op, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}
