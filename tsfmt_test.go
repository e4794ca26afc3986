package tsfmt_test

import (
	"strings"
	"testing"

	"github.com/teleivo/assertive/assert"
	"github.com/teleivo/assertive/require"

	"github.com/crogenix/tsfmt"
	"github.com/crogenix/tsfmt/options"
)

func TestFormat(t *testing.T) {
	tests := map[string]struct {
		in   string
		opts options.Options
		want string
	}{
		"AddsSemicolons": {
			in:   "let x = 1\n",
			opts: options.Default(),
			want: "let x = 1;\n",
		},
		"NormalizesQuotes": {
			in:   "let x = 'a';\n",
			opts: options.Default(),
			want: "let x = \"a\";\n",
		},
		"SingleQuoteOption": {
			in: `let x = "a";` + "\n",
			opts: func() options.Options {
				o := options.Default()
				o.SingleQuote = true
				return o
			}(),
			want: "let x = 'a';\n",
		},
		"NoSemiOmitsTrailingSemicolon": {
			in: "let x = 1;\n",
			opts: func() options.Options {
				o := options.Default()
				o.Semi = false
				return o
			}(),
			want: "let x = 1\n",
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := tsfmt.Format(name, test.in, test.opts)

			require.NoErrorf(t, err, "Format(%q)", test.in)
			assert.Equalsf(t, got, test.want, "Format(%q)", test.in)
		})
	}
}

func TestFormatPreservesShebang(t *testing.T) {
	in := "#!/usr/bin/env node\nlet x = 1\n"

	got, err := tsfmt.Format("script", in, options.Default())
	require.NoErrorf(t, err, "Format")

	assert.True(t, strings.HasPrefix(got, "#!/usr/bin/env node\n"), "shebang must survive verbatim")
	assert.True(t, strings.Contains(got, "let x = 1;\n"), "body must still be formatted")
}

func TestFormatPreservesCRLF(t *testing.T) {
	in := "let x = 1\r\nlet y = 2\r\n"

	got, err := tsfmt.Format("script", in, options.Default())
	require.NoErrorf(t, err, "Format")

	assert.True(t, strings.Contains(got, "\r\n"), "CRLF input must produce CRLF output")
	assert.False(t, strings.Contains(got, "x = 1\nlet"), "no bare LF should appear where the input had CRLF")
}

func TestFormatIsIdempotent(t *testing.T) {
	in := "let x=1;function f( a,b ){return a+b}\n"

	once, err := tsfmt.Format("script", in, options.Default())
	require.NoErrorf(t, err, "Format (first pass)")

	twice, err := tsfmt.Format("script", once, options.Default())
	require.NoErrorf(t, err, "Format (second pass)")

	assert.Equalsf(t, once, twice, "formatting an already-formatted file must be a no-op")
}

func TestCheck(t *testing.T) {
	formatted, err := tsfmt.Format("script", "let x = 1\n", options.Default())
	require.NoErrorf(t, err, "Format")

	ok, err := tsfmt.Check("script", formatted, options.Default())
	require.NoErrorf(t, err, "Check(formatted)")
	assert.True(t, ok, "Check must report an already-formatted file as such")

	ok, err = tsfmt.Check("script", "let   x=1", options.Default())
	require.NoErrorf(t, err, "Check(unformatted)")
	assert.False(t, ok, "Check must report an unformatted file as such")
}

func TestCheckIdempotent(t *testing.T) {
	err := tsfmt.CheckIdempotent("script", "let x=1;let y = x + 1;\n", options.Default())
	assert.NoErrorf(t, err, "CheckIdempotent")
}

func TestFormatPreservesComments(t *testing.T) {
	tests := map[string]struct {
		in   string
		want string
	}{
		"LeadingLineComment": {
			in:   "// hi\nlet x = 1;\n",
			want: "// hi\nlet x = 1;\n",
		},
		"TrailingLineComment": {
			in:   "let x = 1; // hi\n",
			want: "let x = 1; // hi\n",
		},
		"DanglingCommentInEmptyObject": {
			in:   "let x = {\n  // hi\n};\n",
			want: "let x = {\n  // hi\n};\n",
		},
		"DanglingCommentInEmptyArray": {
			in:   "let x = [\n  // hi\n];\n",
			want: "let x = [\n  // hi\n];\n",
		},
		"DanglingCommentInEmptyClassBody": {
			in:   "class Foo {\n  // hi\n}\n",
			want: "class Foo {\n  // hi\n}\n",
		},
	}
	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := tsfmt.Format("script", test.in, options.Default())
			require.NoErrorf(t, err, "Format(%q)", test.in)
			assert.Equalsf(t, got, test.want, "Format(%q)", test.in)
		})
	}
}

func TestFormatRejectsInvalidOptions(t *testing.T) {
	o := options.Default()
	o.PrintWidth = -1
	_, err := tsfmt.Format("script", "let x = 1;\n", o)
	assert.Truef(t, err != nil, "Format with negative printWidth must fail")
}

func TestFormatReportsParseErrors(t *testing.T) {
	_, err := tsfmt.Format("script", "let x = ;\n", options.Default())
	assert.Truef(t, err != nil, "Format(%q) must report a parse error", "let x = ;\n")
}

func TestVersion(t *testing.T) {
	assert.Truef(t, tsfmt.Version() != "", "Version must not be empty")
}
