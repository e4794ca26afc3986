package parser

import (
	"github.com/crogenix/tsfmt/ast"
	"github.com/crogenix/tsfmt/token"
)

// parseOptionalTypeAnnotationSuffix parses a `: Type` suffix if one is present, used after
// identifiers, parameters, and destructuring targets. It returns nil, nil if there is none.
func (p *Parser) parseOptionalTypeAnnotationSuffix() (ast.TypeAnnotation, error) {
	if !p.curIs(token.COLON) {
		return nil, nil
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	return p.parseTypeAnnotation()
}

// parseOptionalReturnTypeAnnotation parses a function's `: ReturnType` suffix, identical in shape
// to parseOptionalTypeAnnotationSuffix but kept as a distinct name for readability at call sites.
func (p *Parser) parseOptionalReturnTypeAnnotation() (ast.TypeAnnotation, error) {
	return p.parseOptionalTypeAnnotationSuffix()
}

// parseTypeAnnotation parses a full type expression: union (lowest precedence) of intersections of
// postfix (array/nullable) types of primary types.
func (p *Parser) parseTypeAnnotation() (ast.TypeAnnotation, error) {
	return p.parseUnionType()
}

func (p *Parser) parseUnionType() (ast.TypeAnnotation, error) {
	start := p.curTok.Start
	// a leading `|` before the first member is permitted (e.g. a multi-line union type) and
	// simply ignored.
	if p.curIs(token.BITOR) {
		if err := p.advance(); err != nil {
			return nil, err
		}
	}
	first, err := p.parseIntersectionType()
	if err != nil {
		return nil, err
	}
	if !p.curIs(token.BITOR) {
		return first, nil
	}
	types := []ast.TypeAnnotation{first}
	for p.curIs(token.BITOR) {
		if err := p.advance(); err != nil {
			return nil, err
		}
		t, err := p.parseIntersectionType()
		if err != nil {
			return nil, err
		}
		types = append(types, t)
	}
	u := &ast.UnionTypeAnnotation{Types: types}
	setSpan(u, start, types[len(types)-1].End())
	return u, nil
}

func (p *Parser) parseIntersectionType() (ast.TypeAnnotation, error) {
	start := p.curTok.Start
	if p.curIs(token.BITAND) {
		if err := p.advance(); err != nil {
			return nil, err
		}
	}
	first, err := p.parsePostfixType()
	if err != nil {
		return nil, err
	}
	if !p.curIs(token.BITAND) {
		return first, nil
	}
	types := []ast.TypeAnnotation{first}
	for p.curIs(token.BITAND) {
		if err := p.advance(); err != nil {
			return nil, err
		}
		t, err := p.parsePostfixType()
		if err != nil {
			return nil, err
		}
		types = append(types, t)
	}
	i := &ast.IntersectionTypeAnnotation{Types: types}
	setSpan(i, start, types[len(types)-1].End())
	return i, nil
}

// parsePostfixType handles the `T[]` array-type suffix, which may repeat (`T[][]`).
func (p *Parser) parsePostfixType() (ast.TypeAnnotation, error) {
	start := p.curTok.Start
	t, err := p.parsePrimaryType()
	if err != nil {
		return nil, err
	}
	for p.curIs(token.LBRACKET) && p.peekIs(token.RBRACKET) {
		if err := p.advance(); err != nil {
			return nil, err
		}
		end, err := p.expect(token.RBRACKET)
		if err != nil {
			return nil, err
		}
		arr := &ast.ArrayTypeAnnotation{ElementType: t}
		setSpan(arr, start, end.End)
		t = arr
	}
	return t, nil
}

func (p *Parser) parsePrimaryType() (ast.TypeAnnotation, error) {
	start := p.curTok.Start

	if p.curIs(token.QUESTION) {
		if err := p.advance(); err != nil {
			return nil, err
		}
		inner, err := p.parsePostfixType()
		if err != nil {
			return nil, err
		}
		n := &ast.NullableTypeAnnotation{Type: inner}
		setSpan(n, start, inner.End())
		return n, nil
	}

	if p.curIs(token.LPAREN) && p.looksLikeFunctionType() {
		return p.parseFunctionType()
	}

	if p.curIs(token.LBRACKET) {
		return p.parseTupleType()
	}

	if p.curIs(token.LBRACE) {
		return p.parseTypeLiteral()
	}

	if p.curIs(token.STRING) || p.curIs(token.NUMBER) || p.curIs(token.KwTrue) || p.curIs(token.KwFalse) {
		tok := p.curTok
		if err := p.advance(); err != nil {
			return nil, err
		}
		l := &ast.LiteralTypeAnnotation{Raw: tok.Literal}
		setSpan(l, tok.Start, tok.End)
		return l, nil
	}

	if p.curIs(token.IDENT) || isKeywordKind(p.curTok.Kind) {
		tok := p.curTok
		if err := p.advance(); err != nil {
			return nil, err
		}
		var args []ast.TypeAnnotation
		end := tok.End
		if p.curIs(token.LT) {
			a, typeArgsEnd, err := p.parseTypeArgs()
			if err != nil {
				return nil, err
			}
			args = a
			end = typeArgsEnd
		}
		g := &ast.GenericTypeAnnotation{ID: tok.Literal, TypeArgs: args}
		setSpan(g, tok.Start, end)
		return g, nil
	}

	return nil, p.errorf("expected type, got %s %q", p.curTok.Kind, p.curTok.Literal)
}

// looksLikeFunctionType distinguishes `(a: A) => R` from a parenthesized type `(A | B)` by
// scanning ahead for a colon or an empty/rest parameter list, both of which are unambiguous
// markers of a function type's parameter list (a plain parenthesized type never contains `:`
// at its top level).
func (p *Parser) looksLikeFunctionType() bool {
	if p.peekIs(token.RPAREN) {
		return true
	}
	if p.peekIs(token.ELLIPSIS) {
		return true
	}
	return p.peekIs(token.IDENT) || isKeywordKind(p.peekTok.Kind)
}

func (p *Parser) parseFunctionType() (*ast.FunctionTypeAnnotation, error) {
	start := p.curTok.Start
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	var params []ast.FunctionTypeParam
	for !p.curIs(token.RPAREN) {
		if p.curIs(token.ELLIPSIS) {
			if err := p.advance(); err != nil {
				return nil, err
			}
		}
		name := ""
		if p.curIs(token.IDENT) && p.peekIs(token.COLON) {
			name = p.curTok.Literal
			if err := p.advance(); err != nil {
				return nil, err
			}
		}
		if p.curIs(token.COLON) {
			if err := p.advance(); err != nil {
				return nil, err
			}
		}
		t, err := p.parseTypeAnnotation()
		if err != nil {
			return nil, err
		}
		params = append(params, ast.FunctionTypeParam{Name: name, Type: t})
		if p.curIs(token.COMMA) {
			if err := p.advance(); err != nil {
				return nil, err
			}
		} else {
			break
		}
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.ARROW); err != nil {
		return nil, err
	}
	ret, err := p.parseTypeAnnotation()
	if err != nil {
		return nil, err
	}
	f := &ast.FunctionTypeAnnotation{Params: params, ReturnType: ret}
	setSpan(f, start, ret.End())
	return f, nil
}

func (p *Parser) parseTupleType() (*ast.TupleTypeAnnotation, error) {
	start := p.curTok.Start
	if _, err := p.expect(token.LBRACKET); err != nil {
		return nil, err
	}
	var types []ast.TypeAnnotation
	for !p.curIs(token.RBRACKET) {
		t, err := p.parseTypeAnnotation()
		if err != nil {
			return nil, err
		}
		types = append(types, t)
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
	t := &ast.TupleTypeAnnotation{Types: types}
	setSpan(t, start, end.End)
	return t, nil
}

func (p *Parser) parseTypeLiteral() (*ast.TypeLiteral, error) {
	start := p.curTok.Start
	if _, err := p.expect(token.LBRACE); err != nil {
		return nil, err
	}
	var members []*ast.PropertySignature
	for !p.curIs(token.RBRACE) {
		memberStart := p.curTok.Start
		if p.curTok.Kind != token.IDENT && !isKeywordKind(p.curTok.Kind) {
			return nil, p.errorf("expected property name, got %s %q", p.curTok.Kind, p.curTok.Literal)
		}
		key := p.curTok.Literal
		if err := p.advance(); err != nil {
			return nil, err
		}
		optional := false
		if p.curIs(token.QUESTION) {
			optional = true
			if err := p.advance(); err != nil {
				return nil, err
			}
		}
		if _, err := p.expect(token.COLON); err != nil {
			return nil, err
		}
		t, err := p.parseTypeAnnotation()
		if err != nil {
			return nil, err
		}
		m := &ast.PropertySignature{Key: key, Type: t, Optional: optional}
		setSpan(m, memberStart, t.End())
		members = append(members, m)
		if p.curIs(token.COMMA) || p.curIs(token.SEMI) {
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
	l := &ast.TypeLiteral{Members: members}
	setSpan(l, start, end.End)
	return l, nil
}

func (p *Parser) parseTypeArgs() ([]ast.TypeAnnotation, token.Pos, error) {
	if _, err := p.expect(token.LT); err != nil {
		return nil, 0, err
	}
	var args []ast.TypeAnnotation
	for !p.curIs(token.GT) {
		t, err := p.parseTypeAnnotation()
		if err != nil {
			return nil, 0, err
		}
		args = append(args, t)
		if p.curIs(token.COMMA) {
			if err := p.advance(); err != nil {
				return nil, 0, err
			}
		} else {
			break
		}
	}
	end, err := p.expect(token.GT)
	if err != nil {
		return nil, 0, err
	}
	return args, end.End, nil
}
