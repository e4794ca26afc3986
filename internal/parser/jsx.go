package parser

import (
	"github.com/crogenix/tsfmt/ast"
	"github.com/crogenix/tsfmt/token"
)

// parseJSXElementOrFragment parses a JSX element or fragment starting at the opening `<`. The
// opening and closing tags (and any `{...}` expression container) are parsed through the ordinary
// token stream, but the raw text between them is not: JS tokenization rules would mangle it, so
// children are scanned by hand off p.src and the lexer is resynced at each boundary.
func (p *Parser) parseJSXElementOrFragment() (ast.Expr, error) {
	start := p.curTok.Start
	if _, err := p.expect(token.LT); err != nil {
		return nil, err
	}

	if p.curIs(token.GT) {
		// fragment: <>...</>
		closeGT, err := p.expect(token.GT)
		if err != nil {
			return nil, err
		}
		children, _, err := p.parseJSXChildren(closeGT.End)
		if err != nil {
			return nil, err
		}
		// children scanning stopped at the `</` of the closing tag; consume `/>`.
		if _, err := p.expect(token.SLASH); err != nil {
			return nil, err
		}
		end, err := p.expect(token.GT)
		if err != nil {
			return nil, err
		}
		f := &ast.JSXFragment{Children: children}
		setSpan(f, start, end.End)
		return f, nil
	}

	name, err := p.parseJSXName()
	if err != nil {
		return nil, err
	}
	attrs, err := p.parseJSXAttributes()
	if err != nil {
		return nil, err
	}

	if p.curIs(token.SLASH) {
		if err := p.advance(); err != nil {
			return nil, err
		}
		end, err := p.expect(token.GT)
		if err != nil {
			return nil, err
		}
		opening := &ast.JSXOpeningElement{Name: name, Attributes: attrs, SelfClosing: true}
		setSpan(opening, start, end.End)
		el := &ast.JSXElement{Opening: opening}
		setSpan(el, start, end.End)
		return el, nil
	}

	closeGT, err := p.expect(token.GT)
	if err != nil {
		return nil, err
	}
	opening := &ast.JSXOpeningElement{Name: name, Attributes: attrs}
	setSpan(opening, start, closeGT.End)

	children, _, err := p.parseJSXChildren(closeGT.End)
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(token.SLASH); err != nil {
		return nil, err
	}
	closingStart := p.curTok.Start
	closingName, err := p.parseJSXName()
	if err != nil {
		return nil, err
	}
	end, err := p.expect(token.GT)
	if err != nil {
		return nil, err
	}
	closing := &ast.JSXClosingElement{Name: closingName}
	setSpan(closing, closingStart, end.End)

	el := &ast.JSXElement{Opening: opening, Children: children, Closing: closing}
	setSpan(el, start, end.End)
	return el, nil
}

// parseJSXName parses a tag or attribute name: a dotted member chain of identifiers
// (`Foo.Bar.Baz`) or a hyphenated HTML-style name (`data-id`), both foreign to ordinary JS
// identifier syntax.
func (p *Parser) parseJSXName() (ast.Expr, error) {
	if p.curTok.Kind != token.IDENT && !isKeywordKind(p.curTok.Kind) {
		return nil, p.errorf("expected JSX name, got %s %q", p.curTok.Kind, p.curTok.Literal)
	}
	tok := p.curTok
	name := tok.Literal
	end := tok.End
	if err := p.advance(); err != nil {
		return nil, err
	}
	// a hyphenated name is re-synced from the raw source, since `-` between identifiers
	// otherwise lexes as the MINUS operator.
	for p.curTok.Start == end && p.curIs(token.MINUS) {
		if err := p.resyncAt(end + 1); err != nil {
			return nil, err
		}
		if p.curTok.Kind != token.IDENT && !isKeywordKind(p.curTok.Kind) {
			return nil, p.errorf("expected JSX name segment, got %s %q", p.curTok.Kind, p.curTok.Literal)
		}
		name += "-" + p.curTok.Literal
		end = p.curTok.End
		if err := p.advance(); err != nil {
			return nil, err
		}
	}

	var expr ast.Expr = &ast.JSXIdentifier{Name: name}
	setSpan(expr.(*ast.JSXIdentifier), tok.Start, end)

	for p.curTok.Start == end && p.curIs(token.DOT) {
		if err := p.advance(); err != nil {
			return nil, err
		}
		propTok := p.curTok
		if propTok.Kind != token.IDENT && !isKeywordKind(propTok.Kind) {
			return nil, p.errorf("expected JSX member name, got %s %q", propTok.Kind, propTok.Literal)
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		prop := ast.JSXIdentifier{Name: propTok.Literal}
		setSpan(&prop, propTok.Start, propTok.End)
		m := &ast.JSXMemberExpression{Object: expr, Property: prop}
		setSpan(m, tok.Start, propTok.End)
		expr = m
		end = propTok.End
	}
	return expr, nil
}

func (p *Parser) parseJSXAttributes() ([]ast.JSXAttr, error) {
	var attrs []ast.JSXAttr
	for !p.curIs(token.GT) && !p.curIs(token.SLASH) && !p.curIs(token.EOF) {
		if p.curIs(token.LBRACE) {
			start := p.curTok.Start
			if err := p.advance(); err != nil {
				return nil, err
			}
			if _, err := p.expect(token.ELLIPSIS); err != nil {
				return nil, err
			}
			arg, err := p.parseAssignmentExpression()
			if err != nil {
				return nil, err
			}
			end, err := p.expect(token.RBRACE)
			if err != nil {
				return nil, err
			}
			sp := &ast.JSXSpreadAttribute{Argument: arg}
			setSpan(sp, start, end.End)
			attrs = append(attrs, sp)
			continue
		}

		start := p.curTok.Start
		nameExpr, err := p.parseJSXName()
		if err != nil {
			return nil, err
		}
		name := jsxNameString(nameExpr)

		var value ast.Node
		end := nameExpr.End()
		if p.curIs(token.ASSIGN) {
			if err := p.advance(); err != nil {
				return nil, err
			}
			switch {
			case p.curIs(token.STRING):
				lit, err := p.parseStringLiteral()
				if err != nil {
					return nil, err
				}
				value = lit
				end = lit.End()
			case p.curIs(token.LBRACE):
				if err := p.advance(); err != nil {
					return nil, err
				}
				expr, err := p.parseAssignmentExpression()
				if err != nil {
					return nil, err
				}
				closeEnd, err := p.expect(token.RBRACE)
				if err != nil {
					return nil, err
				}
				c := &ast.JSXExpressionContainer{Expression: expr}
				setSpan(c, start, closeEnd.End)
				value = c
				end = closeEnd.End
			default:
				return nil, p.errorf("expected JSX attribute value, got %s %q", p.curTok.Kind, p.curTok.Literal)
			}
		}

		a := &ast.JSXAttribute{Name: name, Value: value}
		setSpan(a, start, end)
		attrs = append(attrs, a)
	}
	return attrs, nil
}

func jsxNameString(e ast.Expr) string {
	switch v := e.(type) {
	case *ast.JSXIdentifier:
		return v.Name
	case *ast.JSXMemberExpression:
		return jsxNameString(v.Object) + "." + v.Property.Name
	default:
		return ""
	}
}

// parseJSXChildren scans raw source text starting at pos looking for `{`, `<`, or the input's
// end, accumulating JSXText runs in between. It returns once it sees the `</` of this element's
// closing tag (with the `<` consumed, so the parser's current token is the `/`) or a fragment's
// closing `</>`.
func (p *Parser) parseJSXChildren(pos token.Pos) ([]ast.Node, token.Pos, error) {
	var children []ast.Node
	src := p.src
	textStart := pos
	i := int(pos)

	flushText := func(end int) {
		if end > int(textStart) {
			t := &ast.JSXText{Value: string(src[textStart:end])}
			setSpan(t, textStart, token.Pos(end))
			children = append(children, t)
		}
	}

	for {
		if i >= len(src) {
			return nil, 0, p.errorf("unterminated JSX: unexpected end of input")
		}
		c := src[i]
		if c == '<' {
			flushText(i)
			if i+1 < len(src) && src[i+1] == '/' {
				if err := p.resyncAt(token.Pos(i)); err != nil {
					return nil, 0, err
				}
				if _, err := p.expect(token.LT); err != nil {
					return nil, 0, err
				}
				return children, p.curTok.Start, nil
			}
			if err := p.resyncAt(token.Pos(i)); err != nil {
				return nil, 0, err
			}
			child, err := p.parseJSXElementOrFragment()
			if err != nil {
				return nil, 0, err
			}
			children = append(children, child)
			if err := p.resyncAt(child.End()); err != nil {
				return nil, 0, err
			}
			i = int(child.End())
			textStart = token.Pos(i)
			continue
		}
		if c == '{' {
			flushText(i)
			if err := p.resyncAt(token.Pos(i)); err != nil {
				return nil, 0, err
			}
			if err := p.advance(); err != nil { // consume `{`
				return nil, 0, err
			}
			var expr ast.Expr
			if !p.curIs(token.RBRACE) {
				e, err := p.parseAssignmentExpression()
				if err != nil {
					return nil, 0, err
				}
				expr = e
			}
			closeEnd, err := p.expect(token.RBRACE)
			if err != nil {
				return nil, 0, err
			}
			container := &ast.JSXExpressionContainer{Expression: expr}
			setSpan(container, token.Pos(i), closeEnd.End)
			children = append(children, container)
			if err := p.resyncAt(closeEnd.End); err != nil {
				return nil, 0, err
			}
			i = int(closeEnd.End)
			textStart = token.Pos(i)
			continue
		}
		i++
	}
}
