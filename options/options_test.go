package options_test

import (
	"testing"

	"github.com/teleivo/assertive/assert"
	"github.com/teleivo/assertive/require"

	"github.com/crogenix/tsfmt/options"
)

// Normalize only fills the scalar fields (width, tab width, trailing comma, parser, range end)
// whose zero value is never a legitimate setting. The boolean fields (Semi, BracketSpacing, ...)
// are taken at face value since Go cannot distinguish an unset bool from an explicit false;
// callers who want the prettier-style true defaults for those must start from [options.Default].
func TestNormalizeFillsScalarDefaults(t *testing.T) {
	got, err := options.Normalize(options.Options{})
	require.NoErrorf(t, err, "Normalize(%+v)", options.Options{})

	assert.Equalsf(t, got.PrintWidth, 80, "PrintWidth")
	assert.Equalsf(t, got.TabWidth, 2, "TabWidth")
	assert.Equalsf(t, got.TrailingComma, options.TrailingCommaAll, "TrailingComma")
	assert.Equalsf(t, got.Parser, "tsfmt", "Parser")
	assert.Equalsf(t, got.RangeEnd, -1, "RangeEnd")
}

func TestDefaultIsValid(t *testing.T) {
	got, err := options.Normalize(options.Default())
	require.NoErrorf(t, err, "Normalize(Default())")
	assert.EqualValuesf(t, got, options.Default(), "Normalize(Default()) must be a fixed point")
}

func TestNormalizePreservesSetFields(t *testing.T) {
	in := options.Options{PrintWidth: 120, TabWidth: 4, SingleQuote: true}

	got, err := options.Normalize(in)
	require.NoErrorf(t, err, "Normalize(%+v)", in)

	assert.Equalsf(t, got.PrintWidth, 120, "PrintWidth")
	assert.Equalsf(t, got.TabWidth, 4, "TabWidth")
	assert.Truef(t, got.SingleQuote, "SingleQuote")
}

func TestNormalizeRejectsInvalid(t *testing.T) {
	tests := map[string]options.Options{
		"NegativePrintWidth": {PrintWidth: -1},
		"NegativeTabWidth":   {TabWidth: -1},
		"UnknownTrailingComma": {
			TrailingComma: "sometimes",
		},
		"UnknownParser": {
			Parser: "esprima",
		},
		"NegativeRangeStart": {
			RangeStart: -1,
		},
		"RangeEndBeforeRangeStart": {
			RangeStart: 10,
			RangeEnd:   5,
		},
	}

	for name, in := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := options.Normalize(in)
			assert.Truef(t, err != nil, "Normalize(%+v) must reject invalid options", in)
		})
	}
}
