package parser

import (
	"github.com/crogenix/tsfmt/ast"
	"github.com/crogenix/tsfmt/internal/assert"
	"github.com/crogenix/tsfmt/internal/lexer"
	"github.com/crogenix/tsfmt/token"
)

// newAt creates a Parser that re-lexes full[offset:] while reporting absolute byte positions into
// full, used to re-parse a template literal substitution without losing the outer source's offsets.
func newAt(full []byte, offset int) (*Parser, error) {
	p := &Parser{src: full, lex: lexer.NewAt(full, offset)}
	if err := p.next(); err != nil {
		return nil, err
	}
	if err := p.next(); err != nil {
		return nil, err
	}
	return p, nil
}

// parseExpression parses a top-level expression, folding a comma-separated list into a
// SequenceExpression.
func (p *Parser) parseExpression() (ast.Expr, error) {
	first, err := p.parseAssignmentExpression()
	if err != nil {
		return nil, err
	}
	if !p.curIs(token.COMMA) {
		return first, nil
	}
	exprs := []ast.Expr{first}
	for p.curIs(token.COMMA) {
		if err := p.advance(); err != nil {
			return nil, err
		}
		e, err := p.parseAssignmentExpression()
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, e)
	}
	seq := &ast.SequenceExpression{Expressions: exprs}
	setSpan(seq, first.Start(), exprs[len(exprs)-1].End())
	return seq, nil
}

var assignmentOps = map[token.Kind]bool{
	token.ASSIGN: true, token.PLUSEQ: true, token.MINUSEQ: true, token.STAREQ: true,
	token.SLASHEQ: true, token.PERCENTEQ: true, token.POWEQ: true, token.LSHIFTEQ: true,
	token.RSHIFTEQ: true, token.URSHIFTEQ: true, token.BITANDEQ: true, token.BITOREQ: true,
	token.BITXOREQ: true, token.ANDEQ: true, token.OREQ: true, token.NULLISHEQ: true,
}

// parseAssignmentExpression is the entry point for every expression position that isn't itself a
// comma list: it is also where arrow functions and yield are recognized, since both sit at
// assignment precedence in the grammar.
func (p *Parser) parseAssignmentExpression() (ast.Expr, error) {
	if p.curIs(token.KwYield) {
		return p.parseYieldExpression()
	}

	start := p.curTok.Start
	if p.curIs(token.KwAsync) && (p.peekIs(token.LPAREN) || p.peekIs(token.IDENT)) {
		// `async` reaching here is always treated as the async-function/arrow modifier; using
		// the bare identifier `async` as a value at this exact position (immediately before `(`
		// or another identifier) is rare enough in practice to leave unsupported.
		if err := p.advance(); err != nil {
			return nil, err
		}
		if p.curIs(token.IDENT) && p.peekIs(token.ARROW) {
			param, err := p.parseIdentifier()
			if err != nil {
				return nil, err
			}
			return p.parseArrowFunctionBody(start, []ast.Pattern{param}, true)
		}
		return p.parseAsyncParenOrCall(start)
	}

	if p.curIs(token.IDENT) && p.peekIs(token.ARROW) {
		param, err := p.parseIdentifier()
		if err != nil {
			return nil, err
		}
		return p.parseArrowFunctionBody(start, []ast.Pattern{param}, false)
	}

	left, err := p.parseConditionalExpression()
	if err != nil {
		return nil, err
	}

	if assignmentOps[p.curTok.Kind] {
		opTok := p.curTok
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseAssignmentExpression()
		if err != nil {
			return nil, err
		}
		a := &ast.AssignmentExpression{Operator: opTok.Literal, Left: left, Right: right}
		setSpan(a, left.Start(), right.End())
		return a, nil
	}
	return left, nil
}

func (p *Parser) parseYieldExpression() (*ast.YieldExpression, error) {
	start := p.curTok.Start
	if err := p.advance(); err != nil {
		return nil, err
	}
	delegate := false
	if p.curIs(token.STAR) {
		delegate = true
		if err := p.advance(); err != nil {
			return nil, err
		}
	}
	var arg ast.Expr
	end := start
	if p.yieldHasArgument() {
		a, err := p.parseAssignmentExpression()
		if err != nil {
			return nil, err
		}
		arg = a
		end = a.End()
	}
	y := &ast.YieldExpression{Argument: arg, Delegate: delegate}
	setSpan(y, start, end)
	return y, nil
}

// yieldHasArgument reports whether a bare `yield` is immediately followed by an operand, as
// opposed to a statement terminator, closing bracket, or a line break (which ends the yield
// expression per ASI).
func (p *Parser) yieldHasArgument() bool {
	switch p.curTok.Kind {
	case token.SEMI, token.RPAREN, token.RBRACE, token.RBRACKET, token.COMMA, token.COLON, token.EOF:
		return false
	}
	return !p.lastNewlineBefore(p.curTok.Start)
}

func (p *Parser) parseConditionalExpression() (ast.Expr, error) {
	test, err := p.parseBinaryExpression(1)
	if err != nil {
		return nil, err
	}
	if p.curIs(token.QUESTION) {
		if err := p.advance(); err != nil {
			return nil, err
		}
		cons, err := p.parseAssignmentExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.COLON); err != nil {
			return nil, err
		}
		alt, err := p.parseAssignmentExpression()
		if err != nil {
			return nil, err
		}
		c := &ast.ConditionalExpression{Test: test, Consequent: cons, Alternate: alt}
		setSpan(c, test.Start(), alt.End())
		return c, nil
	}
	return test, nil
}

type opInfo struct {
	prec       int
	logical    bool
	rightAssoc bool
}

// binaryOps maps each binary/logical operator token to its precedence. Nullish-coalescing,
// logical-or, and logical-and get distinct precedences (and, via the logical flag, build a
// LogicalExpression rather than a BinaryExpression) so the translator and the oracle's mixed-
// logical parenthesization rule can tell them apart without re-deriving precedence from the
// operator string.
var binaryOps = map[token.Kind]opInfo{
	token.NULLISH: {1, true, false},
	token.OR:      {2, true, false},
	token.AND:     {3, true, false},
	token.BITOR:   {4, false, false},
	token.BITXOR:  {5, false, false},
	token.BITAND:  {6, false, false},

	token.EQ: {7, false, false}, token.NE: {7, false, false},
	token.EQEQEQ: {7, false, false}, token.NEQEQ: {7, false, false},

	token.LT: {8, false, false}, token.GT: {8, false, false},
	token.LE: {8, false, false}, token.GE: {8, false, false},
	token.KwInstanceof: {8, false, false}, token.KwIn: {8, false, false},

	token.LSHIFT: {9, false, false}, token.RSHIFT: {9, false, false}, token.URSHIFT: {9, false, false},

	token.PLUS: {10, false, false}, token.MINUS: {10, false, false},

	token.STAR: {11, false, false}, token.SLASH: {11, false, false}, token.PERCENT: {11, false, false},

	token.POW: {12, false, true},
}

func (p *Parser) parseBinaryExpression(minPrec int) (ast.Expr, error) {
	left, err := p.parseUnaryExpression()
	if err != nil {
		return nil, err
	}

	for {
		if p.noIn && p.curIs(token.KwIn) {
			break
		}
		info, ok := binaryOps[p.curTok.Kind]
		if !ok || info.prec < minPrec {
			break
		}
		opTok := p.curTok
		if err := p.advance(); err != nil {
			return nil, err
		}

		nextMin := info.prec + 1
		if info.rightAssoc {
			nextMin = info.prec
		}
		right, err := p.parseBinaryExpression(nextMin)
		if err != nil {
			return nil, err
		}

		if info.logical {
			l := &ast.LogicalExpression{Operator: opTok.Literal, Left: left, Right: right}
			setSpan(l, left.Start(), right.End())
			left = l
		} else {
			b := &ast.BinaryExpression{Operator: opTok.Literal, Left: left, Right: right}
			setSpan(b, left.Start(), right.End())
			left = b
		}
	}
	return left, nil
}

var unaryOps = map[token.Kind]bool{
	token.PLUS: true, token.MINUS: true, token.BANG: true, token.TILDE: true,
	token.KwTypeof: true, token.KwVoid: true, token.KwDelete: true,
}

func (p *Parser) parseUnaryExpression() (ast.Expr, error) {
	if p.curIs(token.KwAwait) {
		start := p.curTok.Start
		if err := p.advance(); err != nil {
			return nil, err
		}
		arg, err := p.parseUnaryExpression()
		if err != nil {
			return nil, err
		}
		a := &ast.AwaitExpression{Argument: arg}
		setSpan(a, start, arg.End())
		return a, nil
	}
	if unaryOps[p.curTok.Kind] {
		tok := p.curTok
		if err := p.advance(); err != nil {
			return nil, err
		}
		arg, err := p.parseUnaryExpression()
		if err != nil {
			return nil, err
		}
		u := &ast.UnaryExpression{Operator: tok.Literal, Argument: arg, Prefix: true}
		setSpan(u, tok.Start, arg.End())
		return u, nil
	}
	if p.curIs(token.INC) || p.curIs(token.DEC) {
		tok := p.curTok
		if err := p.advance(); err != nil {
			return nil, err
		}
		arg, err := p.parseUnaryExpression()
		if err != nil {
			return nil, err
		}
		u := &ast.UpdateExpression{Operator: tok.Literal, Argument: arg, Prefix: true}
		setSpan(u, tok.Start, arg.End())
		return u, nil
	}
	return p.parsePostfixExpression()
}

func (p *Parser) parsePostfixExpression() (ast.Expr, error) {
	expr, err := p.parseLeftHandSideExpression()
	if err != nil {
		return nil, err
	}
	if (p.curIs(token.INC) || p.curIs(token.DEC)) && !p.lastNewlineBefore(p.curTok.Start) {
		tok := p.curTok
		if err := p.advance(); err != nil {
			return nil, err
		}
		u := &ast.UpdateExpression{Operator: tok.Literal, Argument: expr, Prefix: false}
		setSpan(u, expr.Start(), tok.End)
		return u, nil
	}
	return expr, nil
}

func (p *Parser) parseLeftHandSideExpression() (ast.Expr, error) {
	var expr ast.Expr
	var err error
	if p.curIs(token.KwNew) {
		expr, err = p.parseNewExpression()
	} else {
		expr, err = p.parsePrimaryExpression()
	}
	if err != nil {
		return nil, err
	}
	return p.parseCallTail(expr)
}

func (p *Parser) parseNewExpression() (ast.Expr, error) {
	start := p.curTok.Start
	if err := p.advance(); err != nil { // `new`
		return nil, err
	}
	var callee ast.Expr
	var err error
	if p.curIs(token.KwNew) {
		callee, err = p.parseNewExpression()
	} else {
		callee, err = p.parsePrimaryExpression()
	}
	if err != nil {
		return nil, err
	}
	callee, err = p.parseMemberTail(callee)
	if err != nil {
		return nil, err
	}

	var args []ast.Expr
	end := callee.End()
	if p.curIs(token.LPAREN) {
		var argsEnd token.Pos
		args, argsEnd, err = p.parseArguments()
		if err != nil {
			return nil, err
		}
		end = argsEnd
	}
	n := &ast.NewExpression{Callee: callee, Arguments: args}
	setSpan(n, start, end)
	return n, nil
}

// parseMemberTail parses only `.prop` / `[expr]` accesses, used for a `new` callee: the call
// parens of `new a.b.c(...)` belong to the NewExpression, not to a nested CallExpression.
func (p *Parser) parseMemberTail(expr ast.Expr) (ast.Expr, error) {
	for {
		switch {
		case p.curIs(token.DOT):
			if err := p.advance(); err != nil {
				return nil, err
			}
			prop, err := p.parseIdentifierName()
			if err != nil {
				return nil, err
			}
			m := &ast.MemberExpression{Object: expr, Property: prop}
			setSpan(m, expr.Start(), prop.End())
			expr = m
		case p.curIs(token.LBRACKET):
			if err := p.advance(); err != nil {
				return nil, err
			}
			prop, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			end, err := p.expect(token.RBRACKET)
			if err != nil {
				return nil, err
			}
			m := &ast.MemberExpression{Object: expr, Property: prop, Computed: true}
			setSpan(m, expr.Start(), end.End)
			expr = m
		default:
			return expr, nil
		}
	}
}

// parseCallTail parses the full member/call/tagged-template/optional-chaining/`as`/`!` suffix
// chain following a left-hand-side atom.
func (p *Parser) parseCallTail(expr ast.Expr) (ast.Expr, error) {
	for {
		switch {
		case p.curIs(token.DOT):
			if err := p.advance(); err != nil {
				return nil, err
			}
			prop, err := p.parseIdentifierName()
			if err != nil {
				return nil, err
			}
			m := &ast.MemberExpression{Object: expr, Property: prop}
			setSpan(m, expr.Start(), prop.End())
			expr = m
		// a `[` that starts a new line begins the next statement rather than indexing this one
		case p.curIs(token.LBRACKET) && !p.lastNewlineBefore(p.curTok.Start):
			if err := p.advance(); err != nil {
				return nil, err
			}
			prop, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			end, err := p.expect(token.RBRACKET)
			if err != nil {
				return nil, err
			}
			m := &ast.MemberExpression{Object: expr, Property: prop, Computed: true}
			setSpan(m, expr.Start(), end.End)
			expr = m
		case p.curIs(token.LPAREN):
			args, end, err := p.parseArguments()
			if err != nil {
				return nil, err
			}
			c := &ast.CallExpression{Callee: expr, Arguments: args}
			setSpan(c, expr.Start(), end)
			expr = c
		case p.curIs(token.TEMPLATE):
			quasi, err := p.parseTemplateLiteral()
			if err != nil {
				return nil, err
			}
			t := &ast.TaggedTemplateExpression{Tag: expr, Quasi: quasi}
			setSpan(t, expr.Start(), quasi.End())
			expr = t
		case p.curIs(token.QUESTION) && p.optionalChainFollows():
			next, err := p.parseOptionalChainLink(expr)
			if err != nil {
				return nil, err
			}
			expr = next
		case p.curIs(token.BANG) && !p.lastNewlineBefore(p.curTok.Start):
			end := p.curTok.End
			if err := p.advance(); err != nil {
				return nil, err
			}
			n := &ast.TSNonNullExpression{Expression: expr}
			setSpan(n, expr.Start(), end)
			expr = n
		case p.curIs(token.KwAs):
			if err := p.advance(); err != nil {
				return nil, err
			}
			typeAnn, err := p.parseTypeAnnotation()
			if err != nil {
				return nil, err
			}
			a := &ast.TSAsExpression{Expression: expr, TypeAnn: typeAnn}
			setSpan(a, expr.Start(), typeAnn.End())
			expr = a
		default:
			return expr, nil
		}
	}
}

// optionalChainFollows reports whether the QUESTION at curTok is immediately (no intervening
// whitespace) followed by `.`, `[`, or `(`, the only way `?` starts optional chaining rather than
// a conditional expression's `?`.
func (p *Parser) optionalChainFollows() bool {
	if p.peekTok.Start != p.curTok.End {
		return false
	}
	return p.peekIs(token.DOT) || p.peekIs(token.LBRACKET) || p.peekIs(token.LPAREN)
}

func (p *Parser) parseOptionalChainLink(expr ast.Expr) (ast.Expr, error) {
	if err := p.advance(); err != nil { // consume `?`
		return nil, err
	}
	if p.curIs(token.LBRACKET) {
		if err := p.advance(); err != nil {
			return nil, err
		}
		prop, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		end, err := p.expect(token.RBRACKET)
		if err != nil {
			return nil, err
		}
		m := &ast.MemberExpression{Object: expr, Property: prop, Computed: true, Optional: true}
		setSpan(m, expr.Start(), end.End)
		return m, nil
	}
	if p.curIs(token.LPAREN) {
		args, end, err := p.parseArguments()
		if err != nil {
			return nil, err
		}
		c := &ast.CallExpression{Callee: expr, Arguments: args, Optional: true}
		setSpan(c, expr.Start(), end)
		return c, nil
	}
	// `?.`
	if err := p.advance(); err != nil {
		return nil, err
	}
	if p.curIs(token.LBRACKET) {
		if err := p.advance(); err != nil {
			return nil, err
		}
		prop, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		end, err := p.expect(token.RBRACKET)
		if err != nil {
			return nil, err
		}
		m := &ast.MemberExpression{Object: expr, Property: prop, Computed: true, Optional: true}
		setSpan(m, expr.Start(), end.End)
		return m, nil
	}
	if p.curIs(token.LPAREN) {
		args, end, err := p.parseArguments()
		if err != nil {
			return nil, err
		}
		c := &ast.CallExpression{Callee: expr, Arguments: args, Optional: true}
		setSpan(c, expr.Start(), end)
		return c, nil
	}
	prop, err := p.parseIdentifierName()
	if err != nil {
		return nil, err
	}
	m := &ast.MemberExpression{Object: expr, Property: prop, Optional: true}
	setSpan(m, expr.Start(), prop.End())
	return m, nil
}

func (p *Parser) parseArguments() ([]ast.Expr, token.Pos, error) {
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, 0, err
	}
	var args []ast.Expr
	for !p.curIs(token.RPAREN) {
		if p.curIs(token.ELLIPSIS) {
			start := p.curTok.Start
			if err := p.advance(); err != nil {
				return nil, 0, err
			}
			arg, err := p.parseAssignmentExpression()
			if err != nil {
				return nil, 0, err
			}
			sp := &ast.SpreadElement{Argument: arg}
			setSpan(sp, start, arg.End())
			args = append(args, sp)
		} else {
			arg, err := p.parseAssignmentExpression()
			if err != nil {
				return nil, 0, err
			}
			args = append(args, arg)
		}
		if p.curIs(token.COMMA) {
			if err := p.advance(); err != nil {
				return nil, 0, err
			}
		} else {
			break
		}
	}
	end, err := p.expect(token.RPAREN)
	if err != nil {
		return nil, 0, err
	}
	return args, end.End, nil
}

// isKeywordKind reports whether k is one of the reserved-word kinds, which (being declared last,
// as a contiguous run of consecutive iota values) form a numeric range.
func isKeywordKind(k token.Kind) bool {
	return k >= token.KwVar && k <= token.KwDebugger
}

// parseIdentifierName parses a property name after `.`, which may be any identifier or a
// keyword spelled like one (`obj.class`, `obj.default`).
func (p *Parser) parseIdentifierName() (*ast.Identifier, error) {
	tok := p.curTok
	if tok.Kind != token.IDENT && !isKeywordKind(tok.Kind) {
		return nil, p.errorf("expected property name, got %s %q", tok.Kind, tok.Literal)
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	id := &ast.Identifier{Name: tok.Literal}
	setSpan(id, tok.Start, tok.End)
	return id, nil
}

func (p *Parser) parsePrimaryExpression() (ast.Expr, error) {
	switch p.curTok.Kind {
	case token.LPAREN:
		return p.parseParenOrArrow()
	case token.NUMBER:
		return p.parseNumberLiteral()
	case token.STRING:
		return p.parseStringLiteral()
	case token.TEMPLATE:
		return p.parseTemplateLiteral()
	case token.REGEX:
		return p.parseRegexLiteral()
	case token.KwTrue, token.KwFalse:
		tok := p.curTok
		if err := p.advance(); err != nil {
			return nil, err
		}
		lit := &ast.Literal{Kind: ast.BooleanLiteral, Raw: tok.Literal, Value: tok.Literal}
		setSpan(lit, tok.Start, tok.End)
		return lit, nil
	case token.KwNull:
		tok := p.curTok
		if err := p.advance(); err != nil {
			return nil, err
		}
		lit := &ast.Literal{Kind: ast.NullLiteral, Raw: tok.Literal, Value: tok.Literal}
		setSpan(lit, tok.Start, tok.End)
		return lit, nil
	case token.KwUndefined:
		tok := p.curTok
		if err := p.advance(); err != nil {
			return nil, err
		}
		id := &ast.Identifier{Name: "undefined"}
		setSpan(id, tok.Start, tok.End)
		return id, nil
	case token.KwThis:
		tok := p.curTok
		if err := p.advance(); err != nil {
			return nil, err
		}
		e := &ast.ThisExpression{}
		setSpan(e, tok.Start, tok.End)
		return e, nil
	case token.KwSuper:
		tok := p.curTok
		if err := p.advance(); err != nil {
			return nil, err
		}
		e := &ast.SuperExpression{}
		setSpan(e, tok.Start, tok.End)
		return e, nil
	case token.LBRACKET:
		return p.parseArrayExpression()
	case token.LBRACE:
		return p.parseObjectExpression()
	case token.KwFunction:
		return p.parseFunctionExpression(false)
	case token.KwAsync:
		if p.peekIs(token.KwFunction) {
			if err := p.advance(); err != nil {
				return nil, err
			}
			return p.parseFunctionExpression(true)
		}
	case token.KwClass:
		return p.parseClassExpression()
	case token.LT:
		return p.parseJSXElementOrFragment()
	case token.IDENT:
		return p.parseIdentifier()
	}
	return nil, p.errorf("unexpected token %s %q", p.curTok.Kind, p.curTok.Literal)
}

func (p *Parser) parseNumberLiteral() (*ast.Literal, error) {
	tok := p.curTok
	if err := p.advance(); err != nil {
		return nil, err
	}
	lit := &ast.Literal{Kind: ast.NumberLiteral, Raw: tok.Literal, Value: tok.Literal}
	setSpan(lit, tok.Start, tok.End)
	return lit, nil
}

func (p *Parser) parseStringLiteral() (*ast.Literal, error) {
	tok := p.curTok
	if err := p.advance(); err != nil {
		return nil, err
	}
	lit := &ast.Literal{Kind: ast.StringLiteral, Raw: tok.Literal, Value: unquote(tok.Literal)}
	setSpan(lit, tok.Start, tok.End)
	return lit, nil
}

func (p *Parser) parseRegexLiteral() (*ast.Literal, error) {
	tok := p.curTok
	if err := p.advance(); err != nil {
		return nil, err
	}
	lit := &ast.Literal{Kind: ast.RegexLiteral, Raw: tok.Literal, Value: tok.Literal}
	setSpan(lit, tok.Start, tok.End)
	return lit, nil
}

// parseTemplateLiteral splits a TEMPLATE token's raw text into quasis and substitution
// expressions. Nested braces (including a fully nested template literal) are skipped over by
// depth-counting rather than split, so only `${`/`}` pairs at depth 0 delimit a substitution.
func (p *Parser) parseTemplateLiteral() (*ast.TemplateLiteral, error) {
	tok := p.curTok
	if err := p.advance(); err != nil {
		return nil, err
	}

	raw := tok.Literal
	var quasis []string
	var exprs []ast.Expr

	i := 1 // past the opening backtick
	quasiStart := i
	for i < len(raw)-1 {
		c := raw[i]
		if c == '\\' {
			i += 2
			continue
		}
		if c == '$' && i+1 < len(raw)-1 && raw[i+1] == '{' {
			quasis = append(quasis, raw[quasiStart:i])

			substStart := int(tok.Start) + i + 2
			depth := 1
			j := i + 2
			for depth > 0 {
				switch raw[j] {
				case '\\':
					j++
				case '{':
					depth++
				case '}':
					depth--
				}
				j++
			}

			sub, err := newAt(p.src, substStart)
			if err != nil {
				return nil, err
			}
			expr, err := sub.parseExpression()
			if err != nil {
				return nil, err
			}
			exprs = append(exprs, expr)

			i = j
			quasiStart = i
			continue
		}
		i++
	}
	quasis = append(quasis, raw[quasiStart:len(raw)-1])

	t := &ast.TemplateLiteral{Quasis: quasis, Expressions: exprs}
	setSpan(t, tok.Start, tok.End)
	return t, nil
}

func (p *Parser) parseArrayExpression() (*ast.ArrayExpression, error) {
	start := p.curTok.Start
	if _, err := p.expect(token.LBRACKET); err != nil {
		return nil, err
	}
	var elems []ast.Expr
	for !p.curIs(token.RBRACKET) {
		if p.curIs(token.COMMA) {
			elems = append(elems, nil)
			if err := p.advance(); err != nil {
				return nil, err
			}
			continue
		}
		if p.curIs(token.ELLIPSIS) {
			spreadStart := p.curTok.Start
			if err := p.advance(); err != nil {
				return nil, err
			}
			arg, err := p.parseAssignmentExpression()
			if err != nil {
				return nil, err
			}
			sp := &ast.SpreadElement{Argument: arg}
			setSpan(sp, spreadStart, arg.End())
			elems = append(elems, sp)
		} else {
			e, err := p.parseAssignmentExpression()
			if err != nil {
				return nil, err
			}
			elems = append(elems, e)
		}
		if p.curIs(token.COMMA) {
			if err := p.advance(); err != nil {
				return nil, err
			}
		} else {
			break
		}
	}
	end, err := p.expect(token.RBRACKET)
	if err != nil {
		return nil, err
	}
	a := &ast.ArrayExpression{Elements: elems}
	setSpan(a, start, end.End)
	return a, nil
}

func (p *Parser) parseObjectExpression() (*ast.ObjectExpression, error) {
	start := p.curTok.Start
	if _, err := p.expect(token.LBRACE); err != nil {
		return nil, err
	}
	var props []*ast.Property
	for !p.curIs(token.RBRACE) {
		prop, err := p.parseObjectProperty()
		if err != nil {
			return nil, err
		}
		props = append(props, prop)
		if p.curIs(token.COMMA) {
			if err := p.advance(); err != nil {
				return nil, err
			}
		} else {
			break
		}
	}
	end, err := p.expect(token.RBRACE)
	if err != nil {
		return nil, err
	}
	o := &ast.ObjectExpression{Properties: props}
	setSpan(o, start, end.End)
	return o, nil
}

func (p *Parser) parseObjectProperty() (*ast.Property, error) {
	start := p.curTok.Start

	if p.curIs(token.ELLIPSIS) {
		if err := p.advance(); err != nil {
			return nil, err
		}
		arg, err := p.parseAssignmentExpression()
		if err != nil {
			return nil, err
		}
		sp := &ast.SpreadElement{Argument: arg}
		setSpan(sp, start, arg.End())
		prop := &ast.Property{Value: sp, Kind: "init"}
		setSpan(prop, start, arg.End())
		return prop, nil
	}

	async := false
	generator := false
	accessor := ""
	if p.curIs(token.KwAsync) && !p.peekIs(token.COLON) && !p.peekIs(token.COMMA) && !p.peekIs(token.RBRACE) && !p.peekIs(token.LPAREN) {
		async = true
		if err := p.advance(); err != nil {
			return nil, err
		}
	}
	if p.curIs(token.STAR) {
		generator = true
		if err := p.advance(); err != nil {
			return nil, err
		}
	}
	if (p.curIs(token.KwGet) || p.curIs(token.KwSet)) && !p.peekIs(token.COLON) && !p.peekIs(token.COMMA) && !p.peekIs(token.RBRACE) && !p.peekIs(token.LPAREN) {
		if p.curIs(token.KwGet) {
			accessor = "get"
		} else {
			accessor = "set"
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
	}

	computed := false
	var key ast.Expr
	if p.curIs(token.LBRACKET) {
		computed = true
		if err := p.advance(); err != nil {
			return nil, err
		}
		k, err := p.parseAssignmentExpression()
		if err != nil {
			return nil, err
		}
		key = k
		if _, err := p.expect(token.RBRACKET); err != nil {
			return nil, err
		}
	} else {
		k, err := p.parsePropertyKey()
		if err != nil {
			return nil, err
		}
		key = k
	}

	if p.curIs(token.LPAREN) {
		params, err := p.parseParamList()
		if err != nil {
			return nil, err
		}
		retType, err := p.parseOptionalReturnTypeAnnotation()
		if err != nil {
			return nil, err
		}
		body, err := p.parseBlockStatement()
		if err != nil {
			return nil, err
		}
		fn := &ast.FunctionExpression{Params: params, Body: body, Async: async, Generator: generator, ReturnType: retType}
		setSpan(fn, start, body.End())
		kind := accessor
		if kind == "" {
			kind = "init"
		}
		prop := &ast.Property{Key: key, Value: fn, Computed: computed, Kind: kind, Method: accessor == ""}
		setSpan(prop, start, body.End())
		return prop, nil
	}

	if p.curIs(token.COLON) {
		if err := p.advance(); err != nil {
			return nil, err
		}
		value, err := p.parseAssignmentExpression()
		if err != nil {
			return nil, err
		}
		prop := &ast.Property{Key: key, Value: value, Computed: computed, Kind: "init"}
		setSpan(prop, start, value.End())
		return prop, nil
	}

	// shorthand `{ x }` or `{ x = 1 }` (the latter only valid inside a destructuring target,
	// reinterpreted by exprToPattern)
	id, ok := key.(*ast.Identifier)
	assert.That(ok, "parseObjectProperty: shorthand key must be an identifier")
	var value ast.Expr = id
	end := id.End()
	if p.curIs(token.ASSIGN) {
		if err := p.advance(); err != nil {
			return nil, err
		}
		def, err := p.parseAssignmentExpression()
		if err != nil {
			return nil, err
		}
		a := &ast.AssignmentExpression{Operator: "=", Left: id, Right: def}
		setSpan(a, id.Start(), def.End())
		value = a
		end = def.End()
	}
	prop := &ast.Property{Key: key, Value: value, Shorthand: true, Kind: "init"}
	setSpan(prop, start, end)
	return prop, nil
}

func (p *Parser) parseFunctionExpression(async bool) (*ast.FunctionExpression, error) {
	start := p.curTok.Start
	if _, err := p.expect(token.KwFunction); err != nil {
		return nil, err
	}
	generator := false
	if p.curIs(token.STAR) {
		generator = true
		if err := p.advance(); err != nil {
			return nil, err
		}
	}
	var id *ast.Identifier
	if p.curIs(token.IDENT) {
		ident, err := p.parseIdentifier()
		if err != nil {
			return nil, err
		}
		id = ident
	}
	params, err := p.parseParamList()
	if err != nil {
		return nil, err
	}
	retType, err := p.parseOptionalReturnTypeAnnotation()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlockStatement()
	if err != nil {
		return nil, err
	}
	f := &ast.FunctionExpression{ID: id, Params: params, Body: body, Async: async, Generator: generator, ReturnType: retType}
	setSpan(f, start, body.End())
	return f, nil
}

func (p *Parser) parseClassExpression() (*ast.ClassExpression, error) {
	start := p.curTok.Start
	if _, err := p.expect(token.KwClass); err != nil {
		return nil, err
	}
	var id *ast.Identifier
	if p.curIs(token.IDENT) {
		ident, err := p.parseIdentifier()
		if err != nil {
			return nil, err
		}
		id = ident
	}
	var super ast.Expr
	if p.curIs(token.KwExtends) {
		if err := p.advance(); err != nil {
			return nil, err
		}
		s, err := p.parseLeftHandSideExpression()
		if err != nil {
			return nil, err
		}
		super = s
	}
	body, err := p.parseClassBody()
	if err != nil {
		return nil, err
	}
	c := &ast.ClassExpression{ID: id, SuperClass: super, Body: body}
	setSpan(c, start, body.End())
	return c, nil
}

func (p *Parser) parseAsyncParenOrCall(start token.Pos) (ast.Expr, error) {
	elems, end, err := p.parseParenExprList()
	if err != nil {
		return nil, err
	}
	if p.curIs(token.COLON) || p.curIs(token.ARROW) {
		params, err := exprsToParams(elems)
		if err != nil {
			return nil, err
		}
		return p.parseArrowFunctionBody(start, params, true)
	}
	asyncIdent := &ast.Identifier{Name: "async"}
	setSpan(asyncIdent, start, start+token.Pos(len("async")))
	call := &ast.CallExpression{Callee: asyncIdent, Arguments: elems}
	setSpan(call, start, end)
	return p.parseCallTail(call)
}

func (p *Parser) parseParenOrArrow() (ast.Expr, error) {
	start := p.curTok.Start
	elems, end, err := p.parseParenExprList()
	if err != nil {
		return nil, err
	}
	if p.curIs(token.COLON) || p.curIs(token.ARROW) {
		params, err := exprsToParams(elems)
		if err != nil {
			return nil, err
		}
		return p.parseArrowFunctionBody(start, params, false)
	}
	if len(elems) == 0 {
		return nil, p.errorf("unexpected empty parentheses")
	}
	if len(elems) == 1 {
		return elems[0], nil
	}
	seq := &ast.SequenceExpression{Expressions: elems}
	setSpan(seq, start, end)
	return seq, nil
}

// parseParenExprList parses `( expr, ...expr )`, the cover grammar shared by a parenthesized
// expression, a sequence expression, and arrow-function parameters (converted after the fact by
// exprsToParams once `=>` confirms the parens were a parameter list).
func (p *Parser) parseParenExprList() ([]ast.Expr, token.Pos, error) {
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, 0, err
	}
	var elems []ast.Expr
	for !p.curIs(token.RPAREN) {
		if p.curIs(token.ELLIPSIS) {
			spreadStart := p.curTok.Start
			if err := p.advance(); err != nil {
				return nil, 0, err
			}
			arg, err := p.parseAssignmentExpression()
			if err != nil {
				return nil, 0, err
			}
			sp := &ast.SpreadElement{Argument: arg}
			setSpan(sp, spreadStart, arg.End())
			elems = append(elems, sp)
		} else {
			e, err := p.parseAssignmentExpression()
			if err != nil {
				return nil, 0, err
			}
			elems = append(elems, e)
		}
		if p.curIs(token.COMMA) {
			if err := p.advance(); err != nil {
				return nil, 0, err
			}
		} else {
			break
		}
	}
	end, err := p.expect(token.RPAREN)
	if err != nil {
		return nil, 0, err
	}
	return elems, end.End, nil
}

func (p *Parser) parseArrowFunctionBody(start token.Pos, params []ast.Pattern, async bool) (*ast.ArrowFunctionExpression, error) {
	var retType ast.TypeAnnotation
	if p.curIs(token.COLON) {
		if err := p.advance(); err != nil {
			return nil, err
		}
		t, err := p.parseTypeAnnotation()
		if err != nil {
			return nil, err
		}
		retType = t
	}
	if _, err := p.expect(token.ARROW); err != nil {
		return nil, err
	}
	var body ast.Node
	if p.curIs(token.LBRACE) {
		b, err := p.parseBlockStatement()
		if err != nil {
			return nil, err
		}
		body = b
	} else {
		e, err := p.parseAssignmentExpression()
		if err != nil {
			return nil, err
		}
		body = e
	}
	fn := &ast.ArrowFunctionExpression{Params: params, Body: body, Async: async, ReturnType: retType}
	setSpan(fn, start, body.End())
	return fn, nil
}

// exprsToParams reinterprets a parenthesized expression list as arrow-function parameters once
// `=>` has confirmed that's what the parens were, per the cover-grammar technique: identifiers,
// array/object literals, assignments, and spreads are converted to their pattern equivalents.
func exprsToParams(elems []ast.Expr) ([]ast.Pattern, error) {
	params := make([]ast.Pattern, len(elems))
	for i, e := range elems {
		pat, err := exprToPattern(e)
		if err != nil {
			return nil, err
		}
		params[i] = pat
	}
	return params, nil
}

func exprToPattern(e ast.Expr) (ast.Pattern, error) {
	switch v := e.(type) {
	case ast.Pattern:
		return v, nil
	case *ast.AssignmentExpression:
		if v.Operator != "=" {
			return nil, Error{Pos: v.Start(), Reason: "invalid destructuring default"}
		}
		var left ast.Pattern
		if lp, ok := v.Left.(ast.Pattern); ok {
			left = lp
		} else if le, ok := v.Left.(ast.Expr); ok {
			converted, err := exprToPattern(le)
			if err != nil {
				return nil, err
			}
			left = converted
		} else {
			return nil, Error{Pos: v.Start(), Reason: "invalid assignment target"}
		}
		a := &ast.AssignmentPattern{Left: left, Right: v.Right}
		setSpan(a, v.Start(), v.End())
		return a, nil
	case *ast.ArrayExpression:
		elems := make([]ast.Pattern, len(v.Elements))
		for i, el := range v.Elements {
			if el == nil {
				continue
			}
			conv, err := exprToPattern(el)
			if err != nil {
				return nil, err
			}
			elems[i] = conv
		}
		a := &ast.ArrayPattern{Elements: elems}
		setSpan(a, v.Start(), v.End())
		return a, nil
	case *ast.ObjectExpression:
		props := make([]*ast.ObjectPatternProperty, len(v.Properties))
		for i, prop := range v.Properties {
			if sp, ok := prop.Value.(*ast.SpreadElement); ok {
				arg, err := exprToPattern(sp.Argument)
				if err != nil {
					return nil, err
				}
				op := &ast.ObjectPatternProperty{Value: arg, Rest: true}
				setSpan(op, prop.Start(), prop.End())
				props[i] = op
				continue
			}
			val, err := exprToPattern(prop.Value)
			if err != nil {
				return nil, err
			}
			op := &ast.ObjectPatternProperty{Key: prop.Key, Value: val, Computed: prop.Computed, Shorthand: prop.Shorthand}
			setSpan(op, prop.Start(), prop.End())
			props[i] = op
		}
		o := &ast.ObjectPattern{Properties: props}
		setSpan(o, v.Start(), v.End())
		return o, nil
	default:
		return nil, Error{Pos: e.Start(), Reason: "invalid destructuring target"}
	}
}
