package parser

import (
	"fmt"

	"codeberg.org/saruga/stripts/internal/ast"
	"codeberg.org/saruga/stripts/internal/lexer"
)

// ----------------------------------------------------------------------------
// Expression Parsing
// ----------------------------------------------------------------------------

// parseExpr parses a full expression.
func (p *Parser) parseExpr() ast.Expr {
	return p.parseAssign()
}

// parseAssign parses an assignment-level expression (the level at which
// call arguments, initializers, and array elements sit).
func (p *Parser) parseAssign() ast.Expr {
	left := p.parseConditional()

	if op, ok := assignOps[p.current().Kind]; ok {
		tok := p.advance()
		right := p.parseAssign()
		return &ast.EBinary{Loc: loc(tok), Op: op, Left: left, Right: right}
	}
	return left
}

var assignOps = map[lexer.TokenKind]ast.BinaryOp{
	lexer.TokEq:        ast.BinOpAssign,
	lexer.TokPlusEq:    ast.BinOpAddAssign,
	lexer.TokMinusEq:   ast.BinOpSubAssign,
	lexer.TokStarEq:    ast.BinOpMulAssign,
	lexer.TokSlashEq:   ast.BinOpDivAssign,
	lexer.TokPercentEq: ast.BinOpModAssign,
	lexer.TokAmpEq:     ast.BinOpAndAssign,
	lexer.TokPipeEq:    ast.BinOpOrAssign,
	lexer.TokCaretEq:   ast.BinOpXorAssign,
}

func (p *Parser) parseConditional() ast.Expr {
	test := p.parseBinary(1)
	if p.current().Kind != lexer.TokQuestion {
		return test
	}
	tok := p.advance()
	yes := p.parseAssign()
	p.expect(lexer.TokColon)
	no := p.parseAssign()
	return &ast.ECond{Loc: loc(tok), Test: test, Yes: yes, No: no}
}

// Binary operator precedence, esbuild-style. Level 0 means "not a
// binary operator".
const (
	precLogicalOr = iota + 1
	precLogicalAnd
	precBitOr
	precBitXor
	precBitAnd
	precEquality
	precRelational
	precShift
	precAdditive
	precMultiplicative
)

type binOpInfo struct {
	op   ast.BinaryOp
	prec int
}

var binOps = map[lexer.TokenKind]binOpInfo{
	lexer.TokPipePipe:   {ast.BinOpLogicalOr, precLogicalOr},
	lexer.TokAmpAmp:     {ast.BinOpLogicalAnd, precLogicalAnd},
	lexer.TokPipe:       {ast.BinOpBitOr, precBitOr},
	lexer.TokCaret:      {ast.BinOpBitXor, precBitXor},
	lexer.TokAmp:        {ast.BinOpBitAnd, precBitAnd},
	lexer.TokEqEq:       {ast.BinOpLooseEq, precEquality},
	lexer.TokBangEq:     {ast.BinOpLooseNe, precEquality},
	lexer.TokEqEqEq:     {ast.BinOpStrictEq, precEquality},
	lexer.TokBangEqEq:   {ast.BinOpStrictNe, precEquality},
	lexer.TokLt:         {ast.BinOpLt, precRelational},
	lexer.TokLtEq:       {ast.BinOpLe, precRelational},
	lexer.TokGt:         {ast.BinOpGt, precRelational},
	lexer.TokGtEq:       {ast.BinOpGe, precRelational},
	lexer.TokIn:         {ast.BinOpIn, precRelational},
	lexer.TokInstanceof: {ast.BinOpInstanceof, precRelational},
	lexer.TokLtLt:       {ast.BinOpShl, precShift},
	lexer.TokGtGt:       {ast.BinOpShr, precShift},
	lexer.TokGtGtGt:     {ast.BinOpUShr, precShift},
	lexer.TokPlus:       {ast.BinOpAdd, precAdditive},
	lexer.TokMinus:      {ast.BinOpSub, precAdditive},
	lexer.TokStar:       {ast.BinOpMul, precMultiplicative},
	lexer.TokSlash:      {ast.BinOpDiv, precMultiplicative},
	lexer.TokPercent:    {ast.BinOpMod, precMultiplicative},
}

func (p *Parser) parseBinary(minPrec int) ast.Expr {
	left := p.parseUnary()

	for {
		tok := p.current()

		// as / satisfies bind at relational precedence
		if (tok.Kind == lexer.TokAs || tok.Kind == lexer.TokSatisfies) &&
			precRelational >= minPrec {
			p.advance()
			left = &ast.EAs{
				Loc:       loc(tok),
				Value:     left,
				Type:      p.parseType(),
				Satisfies: tok.Kind == lexer.TokSatisfies,
			}
			continue
		}

		info, ok := binOps[tok.Kind]
		if !ok || info.prec < minPrec {
			return left
		}
		if tok.Kind == lexer.TokIn && !p.allowIn {
			return left
		}
		// "<" in JSX mode as an operator is fine here: JSX only claims
		// "<" in prefix position, which parseUnary already handled.
		p.advance()
		right := p.parseBinary(info.prec + 1)
		left = &ast.EBinary{Loc: loc(tok), Op: info.op, Left: left, Right: right}
	}
}

func (p *Parser) parseUnary() ast.Expr {
	tok := p.current()

	var op ast.UnaryOp
	switch tok.Kind {
	case lexer.TokBang:
		op = ast.UnOpNot
	case lexer.TokTilde:
		op = ast.UnOpBitNot
	case lexer.TokMinus:
		op = ast.UnOpNeg
	case lexer.TokPlus:
		op = ast.UnOpPos
	case lexer.TokTypeof:
		op = ast.UnOpTypeof
	case lexer.TokVoid:
		op = ast.UnOpVoid
	case lexer.TokDelete:
		op = ast.UnOpDelete
	case lexer.TokAwait:
		op = ast.UnOpAwait
	case lexer.TokPlusPlus:
		op = ast.UnOpPreInc
	case lexer.TokMinusMinus:
		op = ast.UnOpPreDec
	default:
		return p.parsePostfix(p.parsePrimary())
	}

	p.advance()
	return &ast.EUnary{Loc: loc(tok), Op: op, Operand: p.parseUnary()}
}

// parseLeftHandSide parses a member-expression chain without call
// arguments consuming assignment operators. Used for extends clauses and
// new targets.
func (p *Parser) parseLeftHandSide() ast.Expr {
	return p.parsePostfix(p.parsePrimary())
}

func (p *Parser) parsePostfix(expr ast.Expr) ast.Expr {
	for {
		tok := p.current()
		switch tok.Kind {
		case lexer.TokDot:
			p.advance()
			nameTok := p.current()
			if !isNameLike(nameTok) {
				p.error(fmt.Sprintf("expected member name, got %s", nameTok.Kind))
				return expr
			}
			p.advance()
			expr = &ast.EDot{Loc: loc(tok), Target: expr, Name: nameTok.Value}

		case lexer.TokLBracket:
			p.advance()
			index := p.parseExpr()
			p.expect(lexer.TokRBracket)
			expr = &ast.EIndex{Loc: loc(tok), Target: expr, Index: index}

		case lexer.TokLParen:
			expr = &ast.ECall{Loc: loc(tok), Target: expr, Args: p.parseArgs()}

		case lexer.TokLt:
			// Possibly an explicit type-argument list: f<T>(x) or
			// tag<T>`...`. Otherwise this is a less-than comparison and
			// belongs to parseBinary.
			s := p.save()
			args, ok := p.tryParseTypeArgs()
			if ok && p.clean(s) {
				switch p.current().Kind {
				case lexer.TokLParen:
					expr = &ast.ECall{Loc: loc(tok), Target: expr, TypeArgs: args, Args: p.parseArgs()}
					continue
				case lexer.TokTemplate:
					tmplTok := p.advance()
					expr = &ast.ETaggedTemplate{
						Loc:      loc(tok),
						Tag:      expr,
						TypeArgs: args,
						Template: p.parseTemplate(tmplTok),
					}
					continue
				}
			}
			p.restore(s)
			return expr

		case lexer.TokBang:
			// Postfix non-null assertion
			p.advance()
			expr = &ast.ENonNull{Loc: loc(tok), Value: expr}

		case lexer.TokPlusPlus:
			p.advance()
			expr = &ast.EUnary{Loc: loc(tok), Op: ast.UnOpPostInc, Operand: expr}

		case lexer.TokMinusMinus:
			p.advance()
			expr = &ast.EUnary{Loc: loc(tok), Op: ast.UnOpPostDec, Operand: expr}

		case lexer.TokTemplate:
			p.advance()
			expr = &ast.ETaggedTemplate{
				Loc:      loc(tok),
				Tag:      expr,
				Template: p.parseTemplate(tok),
			}

		default:
			return expr
		}
	}
}

func (p *Parser) parseArgs() []ast.Expr {
	var args []ast.Expr
	p.expect(lexer.TokLParen)
	for p.current().Kind != lexer.TokRParen && p.current().Kind != lexer.TokEOF {
		if tok := p.current(); tok.Kind == lexer.TokDotDotDot {
			p.advance()
			args = append(args, &ast.ESpread{Loc: loc(tok), Value: p.parseAssign()})
		} else {
			args = append(args, p.parseAssign())
		}
		if !p.match(lexer.TokComma) {
			break
		}
	}
	p.expect(lexer.TokRParen)
	return args
}

// ----------------------------------------------------------------------------
// Template Literals
// ----------------------------------------------------------------------------

// parseTemplate splits a raw template token into quasi text runs and
// substitution expressions. Substitutions are parsed with this parser so
// their identifiers bind against the same symbol table.
func (p *Parser) parseTemplate(tok lexer.Token) *ast.ETemplate {
	e := &ast.ETemplate{Loc: loc(tok)}
	quasis, subs := splitTemplate(tok.Value)
	e.Quasis = quasis
	for _, src := range subs {
		e.Exprs = append(e.Exprs, p.parseDetachedExpr(src))
	}
	return e
}

// parseDetachedExpr parses an expression from a source fragment, keeping
// the parser's symbol table and scope state.
func (p *Parser) parseDetachedExpr(src string) ast.Expr {
	savedTokens, savedPos := p.tokens, p.pos
	p.tokens = lexer.New(src).Tokenize()
	p.pos = 0
	expr := p.parseExpr()
	p.tokens, p.pos = savedTokens, savedPos
	return expr
}

// splitTemplate splits a raw template token (backticks included) into the
// quasi text runs and the source text of each ${...} substitution.
// Braces inside substitutions are balanced; \$ escapes are respected.
func splitTemplate(raw string) (quasis, subs []string) {
	body := raw[1 : len(raw)-1]
	start := 0
	for i := 0; i+1 < len(body); i++ {
		if body[i] == '\\' {
			i++
			continue
		}
		if body[i] != '$' || body[i+1] != '{' {
			continue
		}
		depth := 1
		j := i + 2
		for j < len(body) && depth > 0 {
			switch body[j] {
			case '\\':
				j++
			case '{':
				depth++
			case '}':
				depth--
			}
			j++
		}
		quasis = append(quasis, body[start:i])
		subs = append(subs, body[i+2:j-1])
		start = j
		i = j - 1
	}
	quasis = append(quasis, body[start:])
	return quasis, subs
}

// ----------------------------------------------------------------------------
// Primary Expressions
// ----------------------------------------------------------------------------

func (p *Parser) parsePrimary() ast.Expr {
	tok := p.current()

	switch tok.Kind {
	case lexer.TokNumber:
		p.advance()
		return &ast.ENumber{Loc: loc(tok), Raw: tok.Value}

	case lexer.TokString:
		p.advance()
		return &ast.EString{Loc: loc(tok), Raw: tok.Value}

	case lexer.TokTemplate:
		p.advance()
		return p.parseTemplate(tok)

	case lexer.TokTrue, lexer.TokFalse:
		p.advance()
		return &ast.EBool{Loc: loc(tok), Value: tok.Kind == lexer.TokTrue}

	case lexer.TokNull:
		p.advance()
		return &ast.ENull{Loc: loc(tok)}

	case lexer.TokThis:
		p.advance()
		return &ast.EThis{Loc: loc(tok)}

	case lexer.TokSuper:
		p.advance()
		return &ast.ESuper{Loc: loc(tok)}

	case lexer.TokLParen:
		if arrow, ok := p.tryParseParenArrow(false); ok {
			return arrow
		}
		p.advance()
		inner := p.parseExpr()
		p.expect(lexer.TokRParen)
		return &ast.EParen{Loc: loc(tok), Expr: inner}

	case lexer.TokLBracket:
		return p.parseArrayLiteral()

	case lexer.TokLBrace:
		return p.parseObjectLiteral()

	case lexer.TokFunction:
		return p.parseFunctionExpr()

	case lexer.TokAsync:
		switch {
		case p.peek(1).Kind == lexer.TokFunction:
			return p.parseFunctionExpr()
		case isIdentLike(p.peek(1)) && p.peek(2).Kind == lexer.TokArrow:
			p.advance()
			return p.parseSingleParamArrow(true)
		case p.peek(1).Kind == lexer.TokLParen:
			s := p.save()
			p.advance()
			if arrow, ok := p.tryParseParenArrow(true); ok {
				return arrow
			}
			p.restore(s)
		case p.peek(1).Kind == lexer.TokLt:
			s := p.save()
			p.advance()
			if arrow, ok := p.tryParseParenArrow(true); ok {
				return arrow
			}
			p.restore(s)
		}

	case lexer.TokClass:
		return &ast.EClass{Loc: loc(tok), Class: p.parseClass(false)}

	case lexer.TokNew:
		p.advance()
		target := p.parseNewTarget()
		e := &ast.ENew{Loc: loc(tok), Target: target}
		if p.current().Kind == lexer.TokLt {
			s := p.save()
			args, ok := p.tryParseTypeArgs()
			if ok && p.clean(s) && p.current().Kind == lexer.TokLParen {
				e.TypeArgs = args
			} else {
				p.restore(s)
			}
		}
		if p.current().Kind == lexer.TokLParen {
			e.Args = p.parseArgs()
		}
		return e

	case lexer.TokLt:
		if p.opts.JSX {
			return p.parseJSX()
		}
		// Generic arrow with explicit type parameters: <T>(x: T) => x
		if arrow, ok := p.tryParseParenArrow(false); ok {
			return arrow
		}
		// Old-style type assertion: <T>expr
		p.advance()
		assertType := p.parseType()
		p.expectGreaterThan()
		return &ast.ETypeAssertion{Loc: loc(tok), Type: assertType, Value: p.parseUnary()}
	}

	if isIdentLike(tok) {
		if p.peek(1).Kind == lexer.TokArrow {
			return p.parseSingleParamArrow(false)
		}
		p.advance()
		return &ast.EIdentifier{Loc: loc(tok), Name: tok.Value, Ref: ast.InvalidRef()}
	}

	p.error(fmt.Sprintf("unexpected token %s in expression", tok.Kind))
	p.advance()
	return &ast.EIdentifier{Loc: loc(tok), Name: "_", Ref: ast.InvalidRef()}
}

// parseNewTarget parses the callee of a new expression: a member chain
// without call arguments, so that new a.b.C(x) binds the way it should.
func (p *Parser) parseNewTarget() ast.Expr {
	expr := p.parsePrimary()
	for {
		tok := p.current()
		switch tok.Kind {
		case lexer.TokDot:
			p.advance()
			nameTok := p.current()
			if !isNameLike(nameTok) {
				p.error("expected member name")
				return expr
			}
			p.advance()
			expr = &ast.EDot{Loc: loc(tok), Target: expr, Name: nameTok.Value}
		case lexer.TokLBracket:
			p.advance()
			index := p.parseExpr()
			p.expect(lexer.TokRBracket)
			expr = &ast.EIndex{Loc: loc(tok), Target: expr, Index: index}
		default:
			return expr
		}
	}
}

func (p *Parser) parseArrayLiteral() ast.Expr {
	start := p.advance() // [
	arr := &ast.EArray{Loc: loc(start)}
	for p.current().Kind != lexer.TokRBracket && p.current().Kind != lexer.TokEOF {
		if p.current().Kind == lexer.TokComma {
			// Hole
			arr.Items = append(arr.Items, nil)
			p.advance()
			continue
		}
		if tok := p.current(); tok.Kind == lexer.TokDotDotDot {
			p.advance()
			arr.Items = append(arr.Items, &ast.ESpread{Loc: loc(tok), Value: p.parseAssign()})
		} else {
			arr.Items = append(arr.Items, p.parseAssign())
		}
		if !p.match(lexer.TokComma) {
			break
		}
	}
	p.expect(lexer.TokRBracket)
	return arr
}

func (p *Parser) parseObjectLiteral() ast.Expr {
	start := p.advance() // {
	obj := &ast.EObject{Loc: loc(start)}

	for p.current().Kind != lexer.TokRBrace && p.current().Kind != lexer.TokEOF {
		prop := ast.ObjectProp{Loc: loc(p.current())}

		if p.current().Kind == lexer.TokDotDotDot {
			p.advance()
			prop.Kind = ast.PropSpread
			prop.Value = p.parseAssign()
			obj.Props = append(obj.Props, prop)
			if !p.match(lexer.TokComma) {
				break
			}
			continue
		}

		// Accessor prefix
		if (p.current().Kind == lexer.TokGet || p.current().Kind == lexer.TokSet) &&
			p.memberNameFollows() {
			if p.current().Kind == lexer.TokGet {
				prop.Kind = ast.PropGet
			} else {
				prop.Kind = ast.PropSet
			}
			p.advance()
		}

		isAsync := false
		if p.current().Kind == lexer.TokAsync && p.memberNameFollows() {
			isAsync = true
			p.advance()
		}
		isGenerator := p.match(lexer.TokStar)

		// Key
		keyTok := p.current()
		switch {
		case keyTok.Kind == lexer.TokLBracket:
			p.advance()
			prop.Computed = true
			prop.Key = p.parseExpr()
			p.expect(lexer.TokRBracket)
		case isNameLike(keyTok):
			p.advance()
			prop.Key = &ast.EIdentifier{Loc: loc(keyTok), Name: keyTok.Value, Ref: ast.InvalidRef()}
		case keyTok.Kind == lexer.TokString:
			p.advance()
			prop.Key = &ast.EString{Loc: loc(keyTok), Raw: keyTok.Value}
		case keyTok.Kind == lexer.TokNumber:
			p.advance()
			prop.Key = &ast.ENumber{Loc: loc(keyTok), Raw: keyTok.Value}
		default:
			p.error("expected property name")
			p.advance()
			continue
		}

		switch {
		case p.current().Kind == lexer.TokLParen || p.current().Kind == lexer.TokLt ||
			prop.Kind == ast.PropGet || prop.Kind == ast.PropSet:
			// Method or accessor
			if prop.Kind == ast.PropInit {
				prop.Kind = ast.PropMethod
			}
			fn := p.parseFn(prop.Loc, isAsync, isGenerator, true)
			prop.Value = &ast.EFunction{Loc: prop.Loc, Name: ast.NameBinding{Ref: ast.InvalidRef()}, Fn: fn}

		case p.match(lexer.TokColon):
			prop.Kind = ast.PropInit
			prop.Value = p.parseAssign()

		default:
			// Shorthand: { name }
			prop.Kind = ast.PropShorthand
			if ident, ok := prop.Key.(*ast.EIdentifier); ok {
				prop.Value = &ast.EIdentifier{Loc: ident.Loc, Name: ident.Name, Ref: ast.InvalidRef()}
			}
		}

		obj.Props = append(obj.Props, prop)
		if !p.match(lexer.TokComma) {
			break
		}
	}
	p.expect(lexer.TokRBrace)
	return obj
}

func (p *Parser) parseFunctionExpr() ast.Expr {
	start := p.current()
	isAsync := p.match(lexer.TokAsync)
	p.expect(lexer.TokFunction)
	isGenerator := p.match(lexer.TokStar)

	name := ast.NameBinding{Ref: ast.InvalidRef()}
	if isIdentLike(p.current()) {
		tok := p.advance()
		name = ast.NameBinding{Loc: loc(tok), Name: tok.Value, Ref: ast.InvalidRef()}
	}
	fn := p.parseFn(loc(start), isAsync, isGenerator, true)
	return &ast.EFunction{Loc: loc(start), Name: name, Fn: fn}
}

// ----------------------------------------------------------------------------
// Arrow Functions
// ----------------------------------------------------------------------------

func (p *Parser) parseSingleParamArrow(isAsync bool) ast.Expr {
	tok := p.advance() // parameter name
	fn := &ast.Fn{Loc: loc(tok), IsAsync: isAsync}
	fn.Scope = p.pushScope()
	fn.Params = []*ast.Param{{
		Loc: loc(tok),
		Binding: &ast.BIdentifier{
			Loc:  loc(tok),
			Name: tok.Value,
			Ref:  p.declareSymbol(tok.Value, ast.SymbolParameter, loc(tok)),
		},
	}}
	p.expect(lexer.TokArrow)
	arrow := &ast.EArrow{Loc: loc(tok), Fn: fn}
	if p.current().Kind == lexer.TokLBrace {
		fn.Body = p.parseBlock()
	} else {
		arrow.ExprBody = p.parseAssign()
	}
	p.popScope()
	return arrow
}

// tryParseParenArrow speculatively parses (params) => body, or the
// generic form <T>(params) => body. Returns false and restores all
// parser state when the tokens turn out to be a parenthesized
// expression or a comparison instead.
func (p *Parser) tryParseParenArrow(isAsync bool) (ast.Expr, bool) {
	s := p.save()
	start := p.current()

	fn := &ast.Fn{Loc: loc(start), IsAsync: isAsync}
	fn.Scope = p.pushScope()

	if p.current().Kind == lexer.TokLt {
		fn.TypeParams = p.parseTypeParams()
	}
	if p.current().Kind != lexer.TokLParen || !p.clean(s) {
		p.popScope()
		p.restore(s)
		return nil, false
	}
	fn.Params = p.parseParams()
	if !p.clean(s) {
		p.popScope()
		p.restore(s)
		return nil, false
	}
	if p.current().Kind == lexer.TokColon {
		p.advance()
		fn.ReturnType = p.parseReturnType()
	}
	if !p.clean(s) || p.current().Kind != lexer.TokArrow {
		p.popScope()
		p.restore(s)
		return nil, false
	}
	p.advance() // =>

	arrow := &ast.EArrow{Loc: loc(start), Fn: fn}
	if p.current().Kind == lexer.TokLBrace {
		fn.Body = p.parseBlock()
	} else {
		arrow.ExprBody = p.parseAssign()
	}
	p.popScope()
	return arrow, true
}
