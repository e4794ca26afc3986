package parser

import (
	"github.com/crogenix/tsfmt/ast"
	"github.com/crogenix/tsfmt/internal/assert"
	"github.com/crogenix/tsfmt/token"
)

func (p *Parser) parseStatement() (ast.Stmt, error) {
	switch p.curTok.Kind {
	case token.LBRACE:
		return p.parseBlockStatement()
	case token.SEMI:
		start := p.curTok.Start
		if err := p.advance(); err != nil {
			return nil, err
		}
		s := &ast.EmptyStatement{}
		setSpan(s, start, p.curTok.Start)
		return s, nil
	case token.KwVar, token.KwLet, token.KwConst:
		return p.parseVariableDeclarationStatement()
	case token.KwFunction:
		return p.parseFunctionDeclaration(false)
	case token.KwAsync:
		if p.peekIs(token.KwFunction) {
			if err := p.advance(); err != nil {
				return nil, err
			}
			return p.parseFunctionDeclaration(true)
		}
	case token.KwClass:
		return p.parseClassDeclaration()
	case token.KwIf:
		return p.parseIfStatement()
	case token.KwFor:
		return p.parseForStatement()
	case token.KwWhile:
		return p.parseWhileStatement()
	case token.KwDo:
		return p.parseDoWhileStatement()
	case token.KwSwitch:
		return p.parseSwitchStatement()
	case token.KwTry:
		return p.parseTryStatement()
	case token.KwReturn:
		return p.parseReturnStatement()
	case token.KwThrow:
		return p.parseThrowStatement()
	case token.KwBreak:
		return p.parseBreakStatement()
	case token.KwContinue:
		return p.parseContinueStatement()
	case token.KwDebugger:
		return p.parseDebuggerStatement()
	case token.KwImport:
		return p.parseImportDeclaration()
	case token.KwExport:
		return p.parseExportDeclaration()
	}

	if p.curIs(token.IDENT) && p.peekIs(token.COLON) {
		return p.parseLabeledStatement()
	}

	return p.parseExpressionStatement()
}

// advance is a convenience wrapper around next used where the caller has already matched curTok
// and only needs to move past it without validating its kind (expect does both).
func (p *Parser) advance() error { return p.next() }

func (p *Parser) parseBlockStatement() (*ast.BlockStatement, error) {
	open, err := p.expect(token.LBRACE)
	if err != nil {
		return nil, err
	}
	var body []ast.Stmt
	for !p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		body = append(body, stmt)
	}
	close, err := p.expect(token.RBRACE)
	if err != nil {
		return nil, err
	}
	b := &ast.BlockStatement{Body: body}
	setSpan(b, open.Start, close.End)
	return b, nil
}

func (p *Parser) parseVariableDeclarationStatement() (*ast.VariableDeclaration, error) {
	decl, err := p.parseVariableDeclaration()
	if err != nil {
		return nil, err
	}
	if err := p.consumeSemi(); err != nil {
		return nil, err
	}
	return decl, nil
}

func (p *Parser) parseVariableDeclaration() (*ast.VariableDeclaration, error) {
	start := p.curTok.Start
	kindTok := p.curTok
	if err := p.advance(); err != nil {
		return nil, err
	}

	var decls []*ast.VariableDeclarator
	for {
		id, err := p.parseBindingTarget()
		if err != nil {
			return nil, err
		}
		var init ast.Expr
		if p.curIs(token.ASSIGN) {
			if err := p.advance(); err != nil {
				return nil, err
			}
			init, err = p.parseAssignmentExpression()
			if err != nil {
				return nil, err
			}
		}
		d := &ast.VariableDeclarator{ID: id, Init: init}
		declStart := id.Start()
		declEnd := declStart
		if init != nil {
			declEnd = init.End()
		} else {
			declEnd = id.End()
		}
		setSpan(d, declStart, declEnd)
		decls = append(decls, d)

		if !p.curIs(token.COMMA) {
			break
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
	}

	v := &ast.VariableDeclaration{Kind: kindTok.Literal, Declarations: decls}
	setSpan(v, start, p.curTok.Start)
	return v, nil
}

// consumeSemi consumes a trailing `;` if present. JS's automatic-semicolon-insertion means a
// missing one is not an error; the translator, not the parser, owns the semi/no-semi output
// policy (spec's "Non-goals" leave ASI-hazard detection to the translator rather than here).
func (p *Parser) consumeSemi() error {
	if p.curIs(token.SEMI) {
		return p.advance()
	}
	return nil
}

func (p *Parser) parseFunctionDeclaration(async bool) (*ast.FunctionDeclaration, error) {
	start := p.curTok.Start
	if async {
		start = p.curTok.Start // `async` already consumed by caller; start remains at `function`
	}
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
	f := &ast.FunctionDeclaration{ID: id, Params: params, Body: body, Async: async, Generator: generator, ReturnType: retType}
	setSpan(f, start, body.End())
	return f, nil
}

func (p *Parser) parseParamList() ([]ast.Pattern, error) {
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	var params []ast.Pattern
	for !p.curIs(token.RPAREN) {
		param, err := p.parseParam()
		if err != nil {
			return nil, err
		}
		params = append(params, param)
		if !p.curIs(token.COMMA) {
			break
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	return params, nil
}

func (p *Parser) parseParam() (ast.Pattern, error) {
	if p.curIs(token.ELLIPSIS) {
		start := p.curTok.Start
		if err := p.advance(); err != nil {
			return nil, err
		}
		arg, err := p.parseBindingTarget()
		if err != nil {
			return nil, err
		}
		typeAnn, err := p.parseOptionalTypeAnnotationSuffix()
		if err != nil {
			return nil, err
		}
		r := &ast.RestElement{Argument: arg, TypeAnn: typeAnn}
		setSpan(r, start, p.curTok.Start)
		return r, nil
	}

	target, err := p.parseBindingTarget()
	if err != nil {
		return nil, err
	}
	if p.curIs(token.ASSIGN) {
		start := target.Start()
		if err := p.advance(); err != nil {
			return nil, err
		}
		def, err := p.parseAssignmentExpression()
		if err != nil {
			return nil, err
		}
		a := &ast.AssignmentPattern{Left: target, Right: def}
		setSpan(a, start, def.End())
		return a, nil
	}
	return target, nil
}

// parseBindingTarget parses an identifier (optionally typed/optional), an array pattern, or an
// object pattern — the three forms a parameter or declarator's left side may take.
func (p *Parser) parseBindingTarget() (ast.Pattern, error) {
	switch p.curTok.Kind {
	case token.LBRACKET:
		return p.parseArrayPattern()
	case token.LBRACE:
		return p.parseObjectPattern()
	default:
		return p.parseIdentifier()
	}
}

func (p *Parser) parseIdentifier() (*ast.Identifier, error) {
	tok, err := p.expect(token.IDENT)
	if err != nil {
		return nil, err
	}
	optional := false
	if p.curIs(token.QUESTION) {
		optional = true
		if err := p.advance(); err != nil {
			return nil, err
		}
	}
	typeAnn, err := p.parseOptionalTypeAnnotationSuffix()
	if err != nil {
		return nil, err
	}
	id := &ast.Identifier{Name: tok.Literal, TypeAnn: typeAnn, Optional: optional}
	setSpan(id, tok.Start, p.curTok.Start)
	return id, nil
}

func (p *Parser) parseArrayPattern() (*ast.ArrayPattern, error) {
	start := p.curTok.Start
	if _, err := p.expect(token.LBRACKET); err != nil {
		return nil, err
	}
	var elems []ast.Pattern
	for !p.curIs(token.RBRACKET) {
		if p.curIs(token.COMMA) {
			elems = append(elems, nil)
			if err := p.advance(); err != nil {
				return nil, err
			}
			continue
		}
		elem, err := p.parseParam()
		if err != nil {
			return nil, err
		}
		elems = append(elems, elem)
		if p.curIs(token.COMMA) {
			if err := p.advance(); err != nil {
				return nil, err
			}
		} else {
			break
		}
	}
	close, err := p.expect(token.RBRACKET)
	if err != nil {
		return nil, err
	}
	typeAnn, err := p.parseOptionalTypeAnnotationSuffix()
	if err != nil {
		return nil, err
	}
	a := &ast.ArrayPattern{Elements: elems, TypeAnn: typeAnn}
	setSpan(a, start, close.End)
	return a, nil
}

func (p *Parser) parseObjectPattern() (*ast.ObjectPattern, error) {
	start := p.curTok.Start
	if _, err := p.expect(token.LBRACE); err != nil {
		return nil, err
	}
	var props []*ast.ObjectPatternProperty
	for !p.curIs(token.RBRACE) {
		if p.curIs(token.ELLIPSIS) {
			propStart := p.curTok.Start
			if err := p.advance(); err != nil {
				return nil, err
			}
			arg, err := p.parseIdentifier()
			if err != nil {
				return nil, err
			}
			prop := &ast.ObjectPatternProperty{Value: arg, Rest: true}
			setSpan(prop, propStart, arg.End())
			props = append(props, prop)
		} else {
			propStart := p.curTok.Start
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

			var value ast.Pattern
			shorthand := true
			if p.curIs(token.COLON) {
				shorthand = false
				if err := p.advance(); err != nil {
					return nil, err
				}
				v, err := p.parseBindingTarget()
				if err != nil {
					return nil, err
				}
				value = v
			} else if id, ok := key.(*ast.Identifier); ok {
				value = id
			}
			if p.curIs(token.ASSIGN) {
				if err := p.advance(); err != nil {
					return nil, err
				}
				def, err := p.parseAssignmentExpression()
				if err != nil {
					return nil, err
				}
				a := &ast.AssignmentPattern{Left: value, Right: def}
				setSpan(a, value.Start(), def.End())
				value = a
			}
			prop := &ast.ObjectPatternProperty{Key: key, Value: value, Computed: computed, Shorthand: shorthand}
			setSpan(prop, propStart, p.curTok.Start)
			props = append(props, prop)
		}

		if p.curIs(token.COMMA) {
			if err := p.advance(); err != nil {
				return nil, err
			}
		} else {
			break
		}
	}
	close, err := p.expect(token.RBRACE)
	if err != nil {
		return nil, err
	}
	typeAnn, err := p.parseOptionalTypeAnnotationSuffix()
	if err != nil {
		return nil, err
	}
	o := &ast.ObjectPattern{Properties: props, TypeAnn: typeAnn}
	setSpan(o, start, close.End)
	return o, nil
}

// parsePropertyKey parses an identifier or string/number literal used as an object/class member
// key.
func (p *Parser) parsePropertyKey() (ast.Expr, error) {
	switch p.curTok.Kind {
	case token.STRING:
		return p.parseStringLiteral()
	case token.NUMBER:
		return p.parseNumberLiteral()
	default:
		return p.parseIdentifier()
	}
}

func (p *Parser) parseClassDeclaration() (*ast.ClassDeclaration, error) {
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
	c := &ast.ClassDeclaration{ID: id, SuperClass: super, Body: body}
	setSpan(c, start, body.End())
	return c, nil
}

func (p *Parser) parseClassBody() (*ast.ClassBody, error) {
	start := p.curTok.Start
	if _, err := p.expect(token.LBRACE); err != nil {
		return nil, err
	}
	var members []ast.ClassMember
	for !p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
		if p.curIs(token.SEMI) {
			if err := p.advance(); err != nil {
				return nil, err
			}
			continue
		}
		m, err := p.parseClassMember()
		if err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	close, err := p.expect(token.RBRACE)
	if err != nil {
		return nil, err
	}
	b := &ast.ClassBody{Body: members}
	setSpan(b, start, close.End)
	return b, nil
}

func (p *Parser) parseClassMember() (ast.ClassMember, error) {
	start := p.curTok.Start
	static := false
	if p.curIs(token.KwStatic) && !p.peekIs(token.ASSIGN) && !p.peekIs(token.LPAREN) {
		static = true
		if err := p.advance(); err != nil {
			return nil, err
		}
	}

	async := false
	generator := false
	kind := "method"

	if p.curIs(token.KwAsync) && !p.peekIs(token.ASSIGN) && !p.peekIs(token.LPAREN) {
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
	if (p.curIs(token.KwGet) || p.curIs(token.KwSet)) && !p.peekIs(token.ASSIGN) && !p.peekIs(token.LPAREN) {
		if p.curIs(token.KwGet) {
			kind = "get"
		} else {
			kind = "set"
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
		if kind == "method" && isConstructorKey(key) {
			kind = "constructor"
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
		fn := &ast.FunctionExpression{Params: params, Body: body, Async: async, Generator: generator, ReturnType: retType}
		setSpan(fn, start, body.End())
		m := &ast.MethodDefinition{Key: key, Value: fn, Kind: kind, Static: static, Computed: computed}
		setSpan(m, start, body.End())
		return m, nil
	}

	typeAnn, err := p.parseOptionalTypeAnnotationSuffix()
	if err != nil {
		return nil, err
	}
	var value ast.Expr
	if p.curIs(token.ASSIGN) {
		if err := p.advance(); err != nil {
			return nil, err
		}
		v, err := p.parseAssignmentExpression()
		if err != nil {
			return nil, err
		}
		value = v
	}
	if err := p.consumeSemi(); err != nil {
		return nil, err
	}
	pd := &ast.PropertyDefinition{Key: key, Value: value, Static: static, Computed: computed, TypeAnn: typeAnn}
	setSpan(pd, start, p.curTok.Start)
	return pd, nil
}

func isConstructorKey(key ast.Expr) bool {
	id, ok := key.(*ast.Identifier)
	return ok && id.Name == "constructor"
}

func (p *Parser) parseIfStatement() (*ast.IfStatement, error) {
	start := p.curTok.Start
	if _, err := p.expect(token.KwIf); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	test, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	cons, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	var alt ast.Stmt
	end := cons.End()
	if p.curIs(token.KwElse) {
		if err := p.advance(); err != nil {
			return nil, err
		}
		a, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		alt = a
		end = a.End()
	}
	s := &ast.IfStatement{Test: test, Consequent: cons, Alternate: alt}
	setSpan(s, start, end)
	return s, nil
}

func (p *Parser) parseForStatement() (ast.Stmt, error) {
	start := p.curTok.Start
	if _, err := p.expect(token.KwFor); err != nil {
		return nil, err
	}
	await := false
	if p.curIs(token.KwAwait) {
		await = true
		if err := p.advance(); err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}

	var init ast.Node
	if p.curIs(token.KwVar) || p.curIs(token.KwLet) || p.curIs(token.KwConst) {
		p.noIn = true
		decl, err := p.parseVariableDeclaration()
		p.noIn = false
		if err != nil {
			return nil, err
		}
		init = decl
	} else if !p.curIs(token.SEMI) {
		p.noIn = true
		expr, err := p.parseExpression()
		p.noIn = false
		if err != nil {
			return nil, err
		}
		init = expr
	}

	if p.curIs(token.KwIn) || p.curIs(token.KwOf) {
		isOf := p.curIs(token.KwOf)
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseAssignmentExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RPAREN); err != nil {
			return nil, err
		}
		body, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		if isOf {
			s := &ast.ForOfStatement{Left: init, Right: right, Body: body, Await: await}
			setSpan(s, start, body.End())
			return s, nil
		}
		s := &ast.ForInStatement{Left: init, Right: right, Body: body}
		setSpan(s, start, body.End())
		return s, nil
	}

	if _, err := p.expect(token.SEMI); err != nil {
		return nil, err
	}
	var test ast.Expr
	if !p.curIs(token.SEMI) {
		t, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		test = t
	}
	if _, err := p.expect(token.SEMI); err != nil {
		return nil, err
	}
	var update ast.Expr
	if !p.curIs(token.RPAREN) {
		u, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		update = u
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	body, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	s := &ast.ForStatement{Init: init, Test: test, Update: update, Body: body}
	setSpan(s, start, body.End())
	return s, nil
}

func (p *Parser) parseWhileStatement() (*ast.WhileStatement, error) {
	start := p.curTok.Start
	if _, err := p.expect(token.KwWhile); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	test, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	body, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	s := &ast.WhileStatement{Test: test, Body: body}
	setSpan(s, start, body.End())
	return s, nil
}

func (p *Parser) parseDoWhileStatement() (*ast.DoWhileStatement, error) {
	start := p.curTok.Start
	if _, err := p.expect(token.KwDo); err != nil {
		return nil, err
	}
	body, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.KwWhile); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	test, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	end, err := p.expect(token.RPAREN)
	if err != nil {
		return nil, err
	}
	if err := p.consumeSemi(); err != nil {
		return nil, err
	}
	s := &ast.DoWhileStatement{Body: body, Test: test}
	setSpan(s, start, end.End)
	return s, nil
}

func (p *Parser) parseSwitchStatement() (*ast.SwitchStatement, error) {
	start := p.curTok.Start
	if _, err := p.expect(token.KwSwitch); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	disc, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LBRACE); err != nil {
		return nil, err
	}

	var cases []*ast.SwitchCase
	for !p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
		caseStart := p.curTok.Start
		var test ast.Expr
		if p.curIs(token.KwCase) {
			if err := p.advance(); err != nil {
				return nil, err
			}
			t, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			test = t
		} else {
			if _, err := p.expect(token.KwDefault); err != nil {
				return nil, err
			}
		}
		if _, err := p.expect(token.COLON); err != nil {
			return nil, err
		}
		var body []ast.Stmt
		for !p.curIs(token.KwCase) && !p.curIs(token.KwDefault) && !p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
			stmt, err := p.parseStatement()
			if err != nil {
				return nil, err
			}
			body = append(body, stmt)
		}
		c := &ast.SwitchCase{Test: test, Consequent: body}
		setSpan(c, caseStart, p.curTok.Start)
		cases = append(cases, c)
	}
	close, err := p.expect(token.RBRACE)
	if err != nil {
		return nil, err
	}
	s := &ast.SwitchStatement{Discriminant: disc, Cases: cases}
	setSpan(s, start, close.End)
	return s, nil
}

func (p *Parser) parseTryStatement() (*ast.TryStatement, error) {
	start := p.curTok.Start
	if _, err := p.expect(token.KwTry); err != nil {
		return nil, err
	}
	block, err := p.parseBlockStatement()
	if err != nil {
		return nil, err
	}
	var handler *ast.CatchClause
	if p.curIs(token.KwCatch) {
		catchStart := p.curTok.Start
		if err := p.advance(); err != nil {
			return nil, err
		}
		var param ast.Pattern
		if p.curIs(token.LPAREN) {
			if err := p.advance(); err != nil {
				return nil, err
			}
			pr, err := p.parseBindingTarget()
			if err != nil {
				return nil, err
			}
			param = pr
			if _, err := p.expect(token.RPAREN); err != nil {
				return nil, err
			}
		}
		cbody, err := p.parseBlockStatement()
		if err != nil {
			return nil, err
		}
		handler = &ast.CatchClause{Param: param, Body: cbody}
		setSpan(handler, catchStart, cbody.End())
	}
	var finalizer *ast.BlockStatement
	end := block.End()
	if handler != nil {
		end = handler.End()
	}
	if p.curIs(token.KwFinally) {
		if err := p.advance(); err != nil {
			return nil, err
		}
		fb, err := p.parseBlockStatement()
		if err != nil {
			return nil, err
		}
		finalizer = fb
		end = fb.End()
	}
	s := &ast.TryStatement{Block: block, Handler: handler, Finalizer: finalizer}
	setSpan(s, start, end)
	return s, nil
}

func (p *Parser) parseReturnStatement() (*ast.ReturnStatement, error) {
	start := p.curTok.Start
	if err := p.advance(); err != nil {
		return nil, err
	}
	var arg ast.Expr
	end := start
	if !p.curIs(token.SEMI) && !p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
		a, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		arg = a
		end = a.End()
	}
	if err := p.consumeSemi(); err != nil {
		return nil, err
	}
	s := &ast.ReturnStatement{Argument: arg}
	setSpan(s, start, end)
	return s, nil
}

func (p *Parser) parseThrowStatement() (*ast.ThrowStatement, error) {
	start := p.curTok.Start
	if err := p.advance(); err != nil {
		return nil, err
	}
	arg, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.consumeSemi(); err != nil {
		return nil, err
	}
	s := &ast.ThrowStatement{Argument: arg}
	setSpan(s, start, arg.End())
	return s, nil
}

func (p *Parser) parseBreakStatement() (*ast.BreakStatement, error) {
	start := p.curTok.Start
	if err := p.advance(); err != nil {
		return nil, err
	}
	var label *ast.Identifier
	end := start
	if p.curIs(token.IDENT) && !p.lastNewlineBefore(p.curTok.Start) {
		l, err := p.parseIdentifier()
		if err != nil {
			return nil, err
		}
		label = l
		end = l.End()
	}
	if err := p.consumeSemi(); err != nil {
		return nil, err
	}
	s := &ast.BreakStatement{Label: label}
	setSpan(s, start, end)
	return s, nil
}

func (p *Parser) parseContinueStatement() (*ast.ContinueStatement, error) {
	start := p.curTok.Start
	if err := p.advance(); err != nil {
		return nil, err
	}
	var label *ast.Identifier
	end := start
	if p.curIs(token.IDENT) && !p.lastNewlineBefore(p.curTok.Start) {
		l, err := p.parseIdentifier()
		if err != nil {
			return nil, err
		}
		label = l
		end = l.End()
	}
	if err := p.consumeSemi(); err != nil {
		return nil, err
	}
	s := &ast.ContinueStatement{Label: label}
	setSpan(s, start, end)
	return s, nil
}

func (p *Parser) parseDebuggerStatement() (*ast.DebuggerStatement, error) {
	start := p.curTok.Start
	if err := p.advance(); err != nil {
		return nil, err
	}
	if err := p.consumeSemi(); err != nil {
		return nil, err
	}
	s := &ast.DebuggerStatement{}
	setSpan(s, start, p.curTok.Start)
	return s, nil
}

func (p *Parser) parseLabeledStatement() (*ast.LabeledStatement, error) {
	start := p.curTok.Start
	label, err := p.parseIdentifier()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.COLON); err != nil {
		return nil, err
	}
	body, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	s := &ast.LabeledStatement{Label: *label, Body: body}
	setSpan(s, start, body.End())
	return s, nil
}

func (p *Parser) parseExpressionStatement() (ast.Stmt, error) {
	if p.curIs(token.STRING) {
		lit := p.curTok.Literal
		tok := p.curTok
		// lookahead: a bare string-literal statement is a Directive only when followed by `;`,
		// `}`, or EOF — otherwise (a newline alone included) it's a string that starts an expression
		// statement involving member/call syntax (e.g. `"x".length`), which parseExpression
		// handles uniformly.
		if p.peekIs(token.SEMI) || p.peekIs(token.RBRACE) || p.peekIs(token.EOF) {
			if err := p.advance(); err != nil {
				return nil, err
			}
			if err := p.consumeSemi(); err != nil {
				return nil, err
			}
			d := &ast.Directive{Value: unquote(lit), Raw: lit}
			setSpan(d, tok.Start, tok.End)
			return d, nil
		}
	}

	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.consumeSemi(); err != nil {
		return nil, err
	}
	s := &ast.ExpressionStatement{Expression: expr}
	setSpan(s, expr.Start(), expr.End())
	return s, nil
}

func unquote(raw string) string {
	if len(raw) >= 2 {
		return raw[1 : len(raw)-1]
	}
	return raw
}

func (p *Parser) parseImportDeclaration() (*ast.ImportDeclaration, error) {
	start := p.curTok.Start
	if _, err := p.expect(token.KwImport); err != nil {
		return nil, err
	}

	if p.curIs(token.STRING) {
		src := p.curTok.Literal
		end, err := p.expect(token.STRING)
		if err != nil {
			return nil, err
		}
		if err := p.consumeSemi(); err != nil {
			return nil, err
		}
		d := &ast.ImportDeclaration{Source: src}
		setSpan(d, start, end.End)
		return d, nil
	}

	var def *ast.Identifier
	var ns *ast.Identifier
	var named []ast.ImportSpecifier

	if p.curIs(token.IDENT) {
		d, err := p.parseIdentifier()
		if err != nil {
			return nil, err
		}
		def = d
		if p.curIs(token.COMMA) {
			if err := p.advance(); err != nil {
				return nil, err
			}
		}
	}
	if p.curIs(token.STAR) {
		if err := p.advance(); err != nil {
			return nil, err
		}
		if _, err := p.expect(token.KwAs); err != nil {
			return nil, err
		}
		n, err := p.parseIdentifier()
		if err != nil {
			return nil, err
		}
		ns = n
	} else if p.curIs(token.LBRACE) {
		if err := p.advance(); err != nil {
			return nil, err
		}
		for !p.curIs(token.RBRACE) {
			imported, err := p.parseIdentifier()
			if err != nil {
				return nil, err
			}
			local := *imported
			if p.curIs(token.KwAs) {
				if err := p.advance(); err != nil {
					return nil, err
				}
				l, err := p.parseIdentifier()
				if err != nil {
					return nil, err
				}
				local = *l
			}
			named = append(named, ast.ImportSpecifier{Imported: *imported, Local: local})
			if p.curIs(token.COMMA) {
				if err := p.advance(); err != nil {
					return nil, err
				}
			} else {
				break
			}
		}
		if _, err := p.expect(token.RBRACE); err != nil {
			return nil, err
		}
	}

	if _, err := p.expect(token.KwFrom); err != nil {
		return nil, err
	}
	src := p.curTok.Literal
	end, err := p.expect(token.STRING)
	if err != nil {
		return nil, err
	}
	if err := p.consumeSemi(); err != nil {
		return nil, err
	}
	d := &ast.ImportDeclaration{Default: def, Namespace: ns, Named: named, Source: src}
	setSpan(d, start, end.End)
	return d, nil
}

func (p *Parser) parseExportDeclaration() (ast.Stmt, error) {
	start := p.curTok.Start
	if _, err := p.expect(token.KwExport); err != nil {
		return nil, err
	}

	if p.curIs(token.KwDefault) {
		if err := p.advance(); err != nil {
			return nil, err
		}
		var decl ast.Node
		switch {
		case p.curIs(token.KwFunction):
			d, err := p.parseFunctionDeclaration(false)
			if err != nil {
				return nil, err
			}
			decl = d
		case p.curIs(token.KwClass):
			d, err := p.parseClassDeclaration()
			if err != nil {
				return nil, err
			}
			decl = d
		default:
			e, err := p.parseAssignmentExpression()
			if err != nil {
				return nil, err
			}
			if err := p.consumeSemi(); err != nil {
				return nil, err
			}
			decl = e
		}
		s := &ast.ExportDefaultDeclaration{Declaration: decl}
		setSpan(s, start, decl.End())
		return s, nil
	}

	if p.curIs(token.STAR) {
		if err := p.advance(); err != nil {
			return nil, err
		}
		var exported *ast.Identifier
		if p.curIs(token.KwAs) {
			if err := p.advance(); err != nil {
				return nil, err
			}
			e, err := p.parseIdentifier()
			if err != nil {
				return nil, err
			}
			exported = e
		}
		if _, err := p.expect(token.KwFrom); err != nil {
			return nil, err
		}
		src := p.curTok.Literal
		end, err := p.expect(token.STRING)
		if err != nil {
			return nil, err
		}
		if err := p.consumeSemi(); err != nil {
			return nil, err
		}
		s := &ast.ExportAllDeclaration{Exported: exported, Source: src}
		setSpan(s, start, end.End)
		return s, nil
	}

	if p.curIs(token.LBRACE) {
		if err := p.advance(); err != nil {
			return nil, err
		}
		var specs []ast.ExportSpecifier
		for !p.curIs(token.RBRACE) {
			local, err := p.parseIdentifier()
			if err != nil {
				return nil, err
			}
			exported := *local
			if p.curIs(token.KwAs) {
				if err := p.advance(); err != nil {
					return nil, err
				}
				e, err := p.parseIdentifier()
				if err != nil {
					return nil, err
				}
				exported = *e
			}
			specs = append(specs, ast.ExportSpecifier{Local: *local, Exported: exported})
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
		var src string
		if p.curIs(token.KwFrom) {
			if err := p.advance(); err != nil {
				return nil, err
			}
			src = p.curTok.Literal
			if _, err := p.expect(token.STRING); err != nil {
				return nil, err
			}
		}
		if err := p.consumeSemi(); err != nil {
			return nil, err
		}
		s := &ast.ExportNamedDeclaration{Specifiers: specs, Source: src}
		setSpan(s, start, end.End)
		return s, nil
	}

	decl, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	assert.That(decl != nil, "parseExportDeclaration: inline declaration must not be nil")
	s := &ast.ExportNamedDeclaration{Declaration: decl}
	setSpan(s, start, decl.End())
	return s, nil
}
