// Package lexer tokenizes JS/TS/JSX source text into a stream of [token.Token]s, grounded in the
// DOT formatter's hand-written rune scanner (internal/lexer.go): a bufio.Reader wrapped with a
// one-rune lookahead (cur/next), advanced by readRune.
//
// Unlike the DOT lexer, positions are recorded as byte offsets ([token.Pos]) rather than
// line/column pairs, per this formatter's data model; [token/position.go] converts an offset to a
// line:column pair only when rendering a diagnostic.
package lexer

import (
	"bufio"
	"bytes"
	"fmt"
	"unicode"

	"github.com/crogenix/tsfmt/token"
)

// Error reports a lexical error at a byte offset in the source.
type Error struct {
	Pos    token.Pos
	Reason string
}

func (e Error) Error() string {
	return fmt.Sprintf("offset %d: %s", e.Pos, e.Reason)
}

// Lexer scans a byte slice of JS/TS/JSX source into tokens. It is not safe for concurrent use.
type Lexer struct {
	src []byte
	r   *bufio.Reader

	cur      rune
	curSize  int
	next     rune
	nextSize int
	eof      bool

	offset int // byte offset of cur, relative to src

	// base is added to every returned position, letting a Lexer scan a byte range embedded in a
	// larger source (e.g. a template literal substitution) while still reporting absolute offsets
	// into that larger source.
	base int

	// prevSignificant is the Kind of the last non-trivia token returned, used to disambiguate
	// `/` as division versus the start of a regex literal.
	prevSignificant token.Kind
}

// New creates a Lexer over src. src is kept so tokens can report their exact Literal by slicing,
// rather than rebuilding it rune by rune.
func New(src []byte) *Lexer {
	l := &Lexer{
		src: src,
		r:   bufio.NewReader(bytes.NewReader(src)),
	}
	l.readRune()
	l.readRune()
	return l
}

// NewAt creates a Lexer over full[offset:] whose returned token positions are shifted by offset,
// so a byte range embedded in a larger source can be re-lexed while preserving the outer source's
// absolute byte offsets. Used by internal/parser to re-parse a template literal substitution.
func NewAt(full []byte, offset int) *Lexer {
	l := New(full[offset:])
	l.base = offset
	return l
}

// Next returns the next token, or a [token.Token] with Kind [token.EOF] once the input is
// exhausted. Comments are returned as tokens of Kind [token.COMMENT] rather than being skipped, so
// a caller that wants a raw token stream (e.g. the token-inspector CLI subcommand) sees them; the
// parser skips them itself and hands them to package attach.
func (l *Lexer) Next() (token.Token, error) {
	tok, err := l.nextToken()
	if err != nil {
		if e, ok := err.(Error); ok {
			e.Pos += token.Pos(l.base)
			return token.Token{}, e
		}
		return token.Token{}, err
	}
	tok.Start += token.Pos(l.base)
	tok.End += token.Pos(l.base)
	return tok, nil
}

func (l *Lexer) nextToken() (token.Token, error) {
	l.skipWhitespace()

	start := l.offset
	if !l.hasNext() {
		return token.Token{Kind: token.EOF, Start: token.Pos(start), End: token.Pos(start)}, nil
	}

	var tok token.Token
	var err error

	switch {
	case l.cur == '/' && l.next == '/':
		tok = l.scanLineComment(start)
	case l.cur == '/' && l.next == '*':
		tok, err = l.scanBlockComment(start)
	case l.cur == '/' && l.regexAllowed():
		tok, err = l.scanRegex(start)
	case isIdentStart(l.cur):
		tok = l.scanIdentifier(start)
	case unicode.IsDigit(l.cur):
		tok, err = l.scanNumber(start)
	case l.cur == '"' || l.cur == '\'':
		tok, err = l.scanString(start, l.cur)
	case l.cur == '`':
		tok, err = l.scanTemplate(start)
	default:
		tok, err = l.scanPunctuator(start)
	}

	if err != nil {
		return token.Token{}, err
	}
	if tok.Kind != token.COMMENT {
		l.prevSignificant = tok.Kind
	}
	return tok, nil
}

// All drains the lexer, returning every token up to and including EOF. It stops at the first
// error.
func (l *Lexer) All() ([]token.Token, error) {
	var toks []token.Token
	for {
		tok, err := l.Next()
		if err != nil {
			return toks, err
		}
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			return toks, nil
		}
	}
}

func (l *Lexer) hasNext() bool {
	return !(l.eof && l.curSize == 0)
}

func (l *Lexer) readRune() {
	l.offset += l.curSize
	l.cur, l.curSize = l.next, l.nextSize
	if l.eof {
		l.next, l.nextSize = 0, 0
		return
	}
	r, size, err := l.r.ReadRune()
	if err != nil {
		l.eof = true
		l.next, l.nextSize = 0, 0
		return
	}
	l.next, l.nextSize = r, size
}

func (l *Lexer) skipWhitespace() {
	for l.hasNext() && isWhitespace(l.cur) {
		l.readRune()
	}
}

func isWhitespace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return unicode.IsSpace(r)
}

func isIdentStart(r rune) bool {
	return r == '_' || r == '$' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || unicode.IsDigit(r)
}

// regexAllowed reports whether a `/` at the current position starts a regex literal rather than
// a division or compound-assignment operator, based on the kind of the previous significant
// token: a regex cannot follow an identifier, literal, `)`, `]`, or postfix `++`/`--`, since those
// all leave an expression in value position where `/` can only mean division.
func (l *Lexer) regexAllowed() bool {
	// `</` directly adjacent is a JSX closing tag, never a regex.
	if l.offset > 0 && l.src[l.offset-1] == '<' {
		return false
	}
	switch l.prevSignificant {
	case token.IDENT, token.NUMBER, token.STRING, token.TEMPLATE, token.RPAREN, token.RBRACKET,
		token.INC, token.DEC, token.KwThis, token.KwSuper:
		return false
	default:
		return true
	}
}

func (l *Lexer) scanLineComment(start int) token.Token {
	for l.hasNext() && l.cur != '\n' {
		l.readRune()
	}
	return token.Token{Kind: token.COMMENT, Literal: string(l.src[start:l.offset]), Start: token.Pos(start), End: token.Pos(l.offset)}
}

func (l *Lexer) scanBlockComment(start int) (token.Token, error) {
	l.readRune() // '/'
	l.readRune() // '*'
	for {
		if !l.hasNext() {
			return token.Token{}, Error{Pos: token.Pos(start), Reason: "unterminated block comment"}
		}
		if l.cur == '*' && l.next == '/' {
			l.readRune()
			l.readRune()
			break
		}
		l.readRune()
	}
	return token.Token{Kind: token.COMMENT, Literal: string(l.src[start:l.offset]), Start: token.Pos(start), End: token.Pos(l.offset)}, nil
}

func (l *Lexer) scanIdentifier(start int) token.Token {
	for l.hasNext() && isIdentPart(l.cur) {
		l.readRune()
	}
	literal := string(l.src[start:l.offset])
	kind, isKeyword := token.Lookup(literal)
	if !isKeyword {
		kind = token.IDENT
	}
	return token.Token{Kind: kind, Literal: literal, Start: token.Pos(start), End: token.Pos(l.offset)}
}

func (l *Lexer) scanNumber(start int) (token.Token, error) {
	if l.cur == '0' && (l.next == 'x' || l.next == 'X') {
		l.readRune()
		l.readRune()
		for l.hasNext() && (isHexDigit(l.cur) || l.cur == '_') {
			l.readRune()
		}
		return l.numberToken(start), nil
	}
	if l.cur == '0' && (l.next == 'b' || l.next == 'B' || l.next == 'o' || l.next == 'O') {
		l.readRune()
		l.readRune()
		for l.hasNext() && (unicode.IsDigit(l.cur) || l.cur == '_') {
			l.readRune()
		}
		return l.numberToken(start), nil
	}

	for l.hasNext() && (unicode.IsDigit(l.cur) || l.cur == '_') {
		l.readRune()
	}
	if l.cur == '.' {
		l.readRune()
		for l.hasNext() && (unicode.IsDigit(l.cur) || l.cur == '_') {
			l.readRune()
		}
	}
	if l.cur == 'e' || l.cur == 'E' {
		l.readRune()
		if l.cur == '+' || l.cur == '-' {
			l.readRune()
		}
		if !unicode.IsDigit(l.cur) {
			return token.Token{}, Error{Pos: token.Pos(l.offset), Reason: "exponent has no digits"}
		}
		for l.hasNext() && unicode.IsDigit(l.cur) {
			l.readRune()
		}
	}
	if l.cur == 'n' { // BigInt suffix
		l.readRune()
	}
	return l.numberToken(start), nil
}

func (l *Lexer) numberToken(start int) token.Token {
	return token.Token{Kind: token.NUMBER, Literal: string(l.src[start:l.offset]), Start: token.Pos(start), End: token.Pos(l.offset)}
}

func isHexDigit(r rune) bool {
	return unicode.IsDigit(r) || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

func (l *Lexer) scanString(start int, quote rune) (token.Token, error) {
	l.readRune() // opening quote
	for {
		if !l.hasNext() || l.cur == '\n' {
			return token.Token{}, Error{Pos: token.Pos(start), Reason: "unterminated string literal"}
		}
		if l.cur == '\\' {
			l.readRune()
			if l.hasNext() {
				l.readRune()
			}
			continue
		}
		if l.cur == quote {
			l.readRune()
			break
		}
		l.readRune()
	}
	return token.Token{Kind: token.STRING, Literal: string(l.src[start:l.offset]), Start: token.Pos(start), End: token.Pos(l.offset)}, nil
}

// scanTemplate consumes an entire template literal including any `${...}` substitutions, since
// the parser (not the lexer) is responsible for splitting quasis from expressions; see
// internal/parser's parseTemplateLiteral.
func (l *Lexer) scanTemplate(start int) (token.Token, error) {
	l.readRune() // opening backtick
	depth := 0
	for {
		if !l.hasNext() {
			return token.Token{}, Error{Pos: token.Pos(start), Reason: "unterminated template literal"}
		}
		if l.cur == '\\' {
			l.readRune()
			if l.hasNext() {
				l.readRune()
			}
			continue
		}
		if depth == 0 && l.cur == '`' {
			l.readRune()
			break
		}
		if l.cur == '$' && l.next == '{' {
			l.readRune()
			l.readRune()
			depth++
			continue
		}
		if depth > 0 && l.cur == '{' {
			depth++
		}
		if depth > 0 && l.cur == '}' {
			depth--
		}
		l.readRune()
	}
	return token.Token{Kind: token.TEMPLATE, Literal: string(l.src[start:l.offset]), Start: token.Pos(start), End: token.Pos(l.offset)}, nil
}

func (l *Lexer) scanRegex(start int) (token.Token, error) {
	l.readRune() // opening '/'
	inClass := false
	for {
		if !l.hasNext() || l.cur == '\n' {
			return token.Token{}, Error{Pos: token.Pos(start), Reason: "unterminated regular expression literal"}
		}
		if l.cur == '\\' {
			l.readRune()
			if l.hasNext() {
				l.readRune()
			}
			continue
		}
		if l.cur == '[' {
			inClass = true
		} else if l.cur == ']' {
			inClass = false
		} else if l.cur == '/' && !inClass {
			l.readRune()
			break
		}
		l.readRune()
	}
	for l.hasNext() && isIdentPart(l.cur) { // flags
		l.readRune()
	}
	return token.Token{Kind: token.REGEX, Literal: string(l.src[start:l.offset]), Start: token.Pos(start), End: token.Pos(l.offset)}, nil
}

// punctuators3/4 list multi-character operators by length so scanPunctuator can try the longest
// match first (e.g. `>>>=` before `>>>` before `>>` before `>`).
var punctuators4 = []string{">>>="}
var punctuators3 = []string{"===", "!==", "**=", "...", "<<=", ">>=", ">>>", "&&=", "||=", "??="}
// "?." (optional chaining) is deliberately absent here: it has no dedicated token.Kind and is
// left to lex as QUESTION followed by DOT, with the parser recognizing the adjacent pair (and
// the no-space-between-them constraint) when it appears directly before `.`, `[`, or `(`.
var punctuators2 = []string{
	"=>", "==", "!=", "<=", ">=", "&&", "||", "??", "++", "--", "**",
	"+=", "-=", "*=", "/=", "%=", "&=", "|=", "^=", "<<", ">>",
}

func (l *Lexer) scanPunctuator(start int) (token.Token, error) {
	rest := l.src[start:]
	for _, p := range punctuators4 {
		if hasPrefix(rest, p) {
			return l.consumePunctuator(start, p)
		}
	}
	for _, p := range punctuators3 {
		if hasPrefix(rest, p) {
			return l.consumePunctuator(start, p)
		}
	}
	for _, p := range punctuators2 {
		if hasPrefix(rest, p) {
			return l.consumePunctuator(start, p)
		}
	}

	kind, ok := token.LookupPunctuator(string(l.cur))
	if !ok {
		r := l.cur
		l.readRune()
		return token.Token{}, Error{Pos: token.Pos(start), Reason: fmt.Sprintf("unexpected character %q", r)}
	}
	l.readRune()
	return token.Token{Kind: kind, Literal: string(l.src[start:l.offset]), Start: token.Pos(start), End: token.Pos(l.offset)}, nil
}

func (l *Lexer) consumePunctuator(start int, lit string) (token.Token, error) {
	for range []rune(lit) {
		l.readRune()
	}
	kind, ok := token.LookupPunctuator(lit)
	if !ok {
		return token.Token{}, Error{Pos: token.Pos(start), Reason: fmt.Sprintf("unknown punctuator %q", lit)}
	}
	return token.Token{Kind: kind, Literal: lit, Start: token.Pos(start), End: token.Pos(l.offset)}, nil
}

func hasPrefix(b []byte, s string) bool {
	if len(b) < len(s) {
		return false
	}
	return string(b[:len(s)]) == s
}
