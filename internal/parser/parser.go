// Package parser implements a recursive-descent parser that turns a JS/TS/JSX token stream into
// an [ast.Program]. It follows the DOT formatter's classic parser shape (internal/parser.go):
// curTok/peekTok with one token of lookahead, advanced by next, and a top-level Parse
// entry point. Unlike the DOT parser it is not error-resilient: the first syntax error aborts
// parsing and is returned to the caller, since a formatter has no use for a best-effort tree built
// from invalid input.
//
// Comments are collected as a flat, position-ordered list on the returned Program rather than
// being discarded or attached inline; internal/attach binds them to AST nodes in a separate pass
// once the full tree exists, since attachment rules need to see neighboring nodes on both sides of
// a comment.
package parser

import (
	"fmt"

	"github.com/crogenix/tsfmt/ast"
	"github.com/crogenix/tsfmt/internal/lexer"
	"github.com/crogenix/tsfmt/token"
)

// Error is a syntax error at a byte offset in the source.
type Error struct {
	Pos    token.Pos
	Reason string
}

func (e Error) Error() string {
	return fmt.Sprintf("offset %d: %s", e.Pos, e.Reason)
}

// Parser parses a token stream into an *ast.Program. It is not safe for concurrent use, and a
// given Parser instance parses exactly one program.
type Parser struct {
	src []byte
	lex *lexer.Lexer

	curTok  token.Token
	peekTok token.Token

	comments []*ast.Comment

	// noIn suppresses the `in` binary operator while parsing a for-statement's init clause, the
	// classic workaround for the grammar ambiguity between `for (a in b)` and a relational
	// expression using `in`.
	noIn bool
}

// New creates a Parser over src.
func New(src []byte) (*Parser, error) {
	p := &Parser{src: src, lex: lexer.New(src)}
	if err := p.next(); err != nil {
		return nil, err
	}
	if err := p.next(); err != nil {
		return nil, err
	}
	return p, nil
}

// Parse parses src into an *ast.Program.
func Parse(src []byte) (*ast.Program, error) {
	p, err := New(src)
	if err != nil {
		return nil, err
	}
	return p.Parse()
}

// next advances past comments, collecting them onto p.comments with OwnLine computed from
// whether a newline appears in the source between the previous token's end and the comment's
// start.
func (p *Parser) next() error {
	for {
		tok, err := p.lex.Next()
		if err != nil {
			return Error{Pos: tok.Start, Reason: err.Error()}
		}
		if tok.Kind != token.COMMENT {
			p.curTok = p.peekTok
			p.peekTok = tok
			return nil
		}

		ownLine := p.lastNewlineBefore(tok.Start)
		text := tok.Literal
		kind := ast.LineComment
		if len(text) >= 2 && text[1] == '*' {
			kind = ast.BlockComment
			text = text[2 : len(text)-2]
		} else {
			text = text[2:]
		}
		p.comments = append(p.comments, &ast.Comment{
			Text: text, Kind: kind, StartPos: tok.Start, EndPos: tok.End, OwnLine: ownLine,
		})
	}
}

// resyncAt discards the current lookahead and re-lexes from an exact byte offset. It is used by
// JSX child parsing, where the raw text between tags is scanned by hand rather than through the
// ordinary token stream: curTok/peekTok normally run one token ahead of where the parser "is",
// which is wrong once that ahead-of-time lexing has run over text that isn't JS source at all.
func (p *Parser) resyncAt(pos token.Pos) error {
	p.lex = lexer.NewAt(p.src, int(pos))
	if err := p.next(); err != nil {
		return err
	}
	return p.next()
}

func (p *Parser) lastNewlineBefore(pos token.Pos) bool {
	i := int(pos) - 1
	for i >= 0 && (p.src[i] == ' ' || p.src[i] == '\t' || p.src[i] == '\r') {
		i--
	}
	return i < 0 || p.src[i] == '\n'
}

func (p *Parser) errorf(format string, args ...any) error {
	return Error{Pos: p.curTok.Start, Reason: fmt.Sprintf(format, args...)}
}

func (p *Parser) curIs(k token.Kind) bool  { return p.curTok.Kind == k }
func (p *Parser) peekIs(k token.Kind) bool { return p.peekTok.Kind == k }

// expect consumes the current token if it has kind k, otherwise returns a syntax error.
func (p *Parser) expect(k token.Kind) (token.Token, error) {
	if !p.curIs(k) {
		return token.Token{}, p.errorf("expected %s, got %s %q", k, p.curTok.Kind, p.curTok.Literal)
	}
	tok := p.curTok
	if err := p.next(); err != nil {
		return token.Token{}, err
	}
	return tok, nil
}

// Parse parses the full program.
func (p *Parser) Parse() (*ast.Program, error) {
	start := p.curTok.Start
	var body []ast.Stmt
	for !p.curIs(token.EOF) {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		body = append(body, stmt)
	}
	prog := &ast.Program{Body: body, Comments: p.comments, Source: p.src}
	setSpan(prog, start, p.curTok.Start)
	return prog, nil
}

// spanSetter is implemented by every concrete AST node via the embedded base struct.
type spanSetter interface {
	SetSpan(start, end token.Pos)
}

// setSpan is used by every parse* helper to fill in the Start/End byte offsets on a freshly built
// node.
func setSpan(n spanSetter, start, end token.Pos) {
	n.SetSpan(start, end)
}
