package lexer

import (
	"testing"

	"github.com/teleivo/assertive/assert"
	"github.com/teleivo/assertive/require"

	"github.com/crogenix/tsfmt/token"
)

// want compares only Kind and Literal; positions are exercised separately in TestLexerPositions.
type want struct {
	kind    token.Kind
	literal string
}

func TestLexer(t *testing.T) {
	tests := map[string]struct {
		in   string
		want []want
	}{
		"Empty": {
			in:   "",
			want: []want{{token.EOF, ""}},
		},
		"OnlyWhitespace": {
			in:   "\t \n \t\t   ",
			want: []want{{token.EOF, ""}},
		},
		"Punctuators": {
			in: "{}()[];,:?!@",
			want: []want{
				{token.LBRACE, "{"}, {token.RBRACE, "}"}, {token.LPAREN, "("}, {token.RPAREN, ")"},
				{token.LBRACKET, "["}, {token.RBRACKET, "]"}, {token.SEMI, ";"}, {token.COMMA, ","},
				{token.COLON, ":"}, {token.QUESTION, "?"}, {token.BANG, "!"}, {token.AT, "@"},
				{token.EOF, ""},
			},
		},
		"MultiCharacterOperatorsPreferLongestMatch": {
			in: "=> === !== >>>= >>> ?. ??=",
			want: []want{
				{token.ARROW, "=>"}, {token.EQEQEQ, "==="}, {token.NEQEQ, "!=="},
				{token.URSHIFTEQ, ">>>="}, {token.URSHIFT, ">>>"}, {token.QUESTION, "?"},
				{token.DOT, "."}, {token.NULLISHEQ, "??="}, {token.EOF, ""},
			},
		},
		"Keywords": {
			in: "const let var function return if else class extends",
			want: []want{
				{token.KwConst, "const"}, {token.KwLet, "let"}, {token.KwVar, "var"},
				{token.KwFunction, "function"}, {token.KwReturn, "return"}, {token.KwIf, "if"},
				{token.KwElse, "else"}, {token.KwClass, "class"}, {token.KwExtends, "extends"},
				{token.EOF, ""},
			},
		},
		"Identifiers": {
			in: "foo _bar $baz qux123",
			want: []want{
				{token.IDENT, "foo"}, {token.IDENT, "_bar"}, {token.IDENT, "$baz"},
				{token.IDENT, "qux123"}, {token.EOF, ""},
			},
		},
		"Numbers": {
			in: "1 1.5 0x1F 0b101 1_000 1e10 1.5e-3 10n",
			want: []want{
				{token.NUMBER, "1"}, {token.NUMBER, "1.5"}, {token.NUMBER, "0x1F"},
				{token.NUMBER, "0b101"}, {token.NUMBER, "1_000"}, {token.NUMBER, "1e10"},
				{token.NUMBER, "1.5e-3"}, {token.NUMBER, "10n"}, {token.EOF, ""},
			},
		},
		"Strings": {
			in:   `"foo" 'bar' "with \"escape\""`,
			want: []want{{token.STRING, `"foo"`}, {token.STRING, `'bar'`}, {token.STRING, `"with \"escape\""`}, {token.EOF, ""}},
		},
		"TemplateLiteralWithSubstitution": {
			in:   "`hello ${name}!`",
			want: []want{{token.TEMPLATE, "`hello ${name}!`"}, {token.EOF, ""}},
		},
		"NestedTemplateSubstitution": {
			in:   "`a${`b${c}d`}e`",
			want: []want{{token.TEMPLATE, "`a${`b${c}d`}e`"}, {token.EOF, ""}},
		},
		"LineComment": {
			in:   "a // trailing comment\nb",
			want: []want{{token.IDENT, "a"}, {token.COMMENT, "// trailing comment"}, {token.IDENT, "b"}, {token.EOF, ""}},
		},
		"BlockComment": {
			in:   "a /* c1\n c2 */ b",
			want: []want{{token.IDENT, "a"}, {token.COMMENT, "/* c1\n c2 */"}, {token.IDENT, "b"}, {token.EOF, ""}},
		},
		"DivisionAfterIdentifierIsNotARegex": {
			in:   "a / b",
			want: []want{{token.IDENT, "a"}, {token.SLASH, "/"}, {token.IDENT, "b"}, {token.EOF, ""}},
		},
		"RegexAtStartOfExpression": {
			in:   "x = /foo\\/bar/gi",
			want: []want{{token.IDENT, "x"}, {token.ASSIGN, "="}, {token.REGEX, "/foo\\/bar/gi"}, {token.EOF, ""}},
		},
		"RegexAfterReturn": {
			in:   "return /abc/",
			want: []want{{token.KwReturn, "return"}, {token.REGEX, "/abc/"}, {token.EOF, ""}},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			l := New([]byte(tt.in))
			toks, err := l.All()
			require.NoErrorf(t, err, "All(%q)", tt.in)
			require.Equals(t, len(toks), len(tt.want), "All(%q): token count", tt.in)

			for i, g := range toks {
				assert.Equals(t, g.Kind, tt.want[i].kind, "All(%q): token %d kind", tt.in, i)
				assert.Equals(t, g.Literal, tt.want[i].literal, "All(%q): token %d literal", tt.in, i)
			}
		})
	}
}

func TestLexerErrors(t *testing.T) {
	tests := map[string]string{
		"UnterminatedString":       `"foo`,
		"UnterminatedTemplate":     "`foo",
		"UnterminatedBlockComment": "/* foo",
		"UnterminatedRegex":        "x = /foo",
		"ExponentWithoutDigits":    "1e",
		"UnexpectedCharacter":      "#",
	}

	for name, in := range tests {
		t.Run(name, func(t *testing.T) {
			l := New([]byte(in))
			_, err := l.All()
			require.NotNilf(t, err, "All(%q): want error", in)
		})
	}
}

func TestLexerPositions(t *testing.T) {
	l := New([]byte("foo = 1"))
	toks, err := l.All()
	require.NoErrorf(t, err, "All")
	require.Equals(t, len(toks), 4, "token count")

	assert.Equals(t, toks[0].Start, token.Pos(0), "foo Start")
	assert.Equals(t, toks[0].End, token.Pos(3), "foo End")
	assert.Equals(t, toks[1].Start, token.Pos(4), "= Start")
	assert.Equals(t, toks[1].End, token.Pos(5), "= End")
	assert.Equals(t, toks[2].Start, token.Pos(6), "1 Start")
	assert.Equals(t, toks[2].End, token.Pos(7), "1 End")
}
