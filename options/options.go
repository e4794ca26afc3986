// Package options normalizes and validates the style bag threaded through every stage of the
// pipeline: a plain constructor that defaults and validates against a fixed set of allowed
// values.
package options

import "fmt"

// TrailingComma selects where the translator emits a trailing comma in comma-separated lists.
type TrailingComma string

const (
	TrailingCommaNone TrailingComma = "none"
	TrailingCommaES5  TrailingComma = "es5"
	TrailingCommaAll  TrailingComma = "all"
)

// Options is the normalized style bag passed to every stage of the pipeline. Zero Options is not
// valid; callers must go through [Normalize].
type Options struct {
	PrintWidth         int
	TabWidth           int
	UseTabs            bool
	Semi               bool
	SingleQuote        bool
	BracketSpacing     bool
	JSXBracketSameLine bool
	TrailingComma      TrailingComma
	Parser             string
	RangeStart         int
	RangeEnd           int // -1 means "end of input"; Normalize maps 0 to -1, and tsfmt.Format resolves -1 against the input length
}

// Default returns the baseline option set: 80-column width, 2-space indent, semicolons on,
// double quotes, spaced braces, trailing commas everywhere.
func Default() Options {
	return Options{
		PrintWidth:     80,
		TabWidth:       2,
		UseTabs:        false,
		Semi:           true,
		SingleQuote:    false,
		BracketSpacing: true,
		TrailingComma:  TrailingCommaAll,
		Parser:         "tsfmt",
		RangeStart:     0,
		RangeEnd:       -1,
	}
}

var supportedParsers = map[string]bool{
	"tsfmt": true,
}

// Normalize fills unset scalar fields (PrintWidth, TabWidth, TrailingComma, Parser, RangeEnd) with
// their defaults and validates every field against its fixed set of allowed values, rejecting
// anything else. Boolean fields are kept as given; a false Semi or BracketSpacing is not replaced
// by the true of [Default].
func Normalize(o Options) (Options, error) {
	if o.PrintWidth == 0 {
		o.PrintWidth = 80
	}
	if o.PrintWidth < 0 {
		return Options{}, fmt.Errorf("options: printWidth must be >= 0, got %d", o.PrintWidth)
	}
	if o.TabWidth == 0 {
		o.TabWidth = 2
	}
	if o.TabWidth < 0 {
		return Options{}, fmt.Errorf("options: tabWidth must be >= 0, got %d", o.TabWidth)
	}
	if o.TrailingComma == "" {
		o.TrailingComma = TrailingCommaAll
	}
	switch o.TrailingComma {
	case TrailingCommaNone, TrailingCommaES5, TrailingCommaAll:
	default:
		return Options{}, fmt.Errorf("options: unknown trailingComma %q", o.TrailingComma)
	}
	if o.Parser == "" {
		o.Parser = "tsfmt"
	}
	if !supportedParsers[o.Parser] {
		return Options{}, fmt.Errorf("options: unsupported parser %q", o.Parser)
	}
	if o.RangeStart < 0 {
		return Options{}, fmt.Errorf("options: rangeStart must be >= 0, got %d", o.RangeStart)
	}
	if o.RangeEnd == 0 {
		o.RangeEnd = -1
	}
	if o.RangeEnd >= 0 && o.RangeEnd < o.RangeStart {
		return Options{}, fmt.Errorf("options: rangeEnd %d is before rangeStart %d", o.RangeEnd, o.RangeStart)
	}
	return o, nil
}
