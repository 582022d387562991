package parser

import (
	"fmt"

	"codeberg.org/saruga/stripts/internal/ast"
	"codeberg.org/saruga/stripts/internal/lexer"
)

// ----------------------------------------------------------------------------
// Type Expressions
//
// Types are never printed, only deleted. The grammar here covers what
// reference recording needs: every identifier that names a type must end
// up in a TRef or TQuery so the visit pass can record it as a
// type-position reference. Exotic forms (conditional types, mapped
// types, infer) are outside the supported subset.
// ----------------------------------------------------------------------------

// parseType parses a type expression, including unions and
// intersections.
func (p *Parser) parseType() ast.TypeAnnotation {
	// Leading | or & is allowed
	if p.current().Kind == lexer.TokPipe || p.current().Kind == lexer.TokAmp {
		p.advance()
	}

	first := p.parseTypePostfix()
	if p.current().Kind != lexer.TokPipe && p.current().Kind != lexer.TokAmp {
		return first
	}

	composite := &ast.TComposite{Loc: locOfType(first), Types: []ast.TypeAnnotation{first}}
	for p.current().Kind == lexer.TokPipe || p.current().Kind == lexer.TokAmp {
		p.advance()
		composite.Types = append(composite.Types, p.parseTypePostfix())
	}
	return composite
}

func locOfType(t ast.TypeAnnotation) ast.Loc {
	switch tt := t.(type) {
	case *ast.TRef:
		return tt.Loc
	case *ast.TQuery:
		return tt.Loc
	case *ast.TKeyword:
		return tt.Loc
	case *ast.TFunc:
		return tt.Loc
	case *ast.TObject:
		return tt.Loc
	case *ast.TComposite:
		return tt.Loc
	case *ast.TArray:
		return tt.Loc
	case *ast.TTuple:
		return tt.Loc
	}
	return ast.Loc{}
}

// parseTypePostfix parses a primary type followed by T[] array suffixes
// and T[K] indexed accesses.
func (p *Parser) parseTypePostfix() ast.TypeAnnotation {
	t := p.parseTypePrimary()
	for p.current().Kind == lexer.TokLBracket {
		tok := p.advance()
		if p.match(lexer.TokRBracket) {
			t = &ast.TArray{Loc: loc(tok), Elem: t}
			continue
		}
		index := p.parseType()
		p.expect(lexer.TokRBracket)
		t = &ast.TComposite{Loc: loc(tok), Types: []ast.TypeAnnotation{t, index}}
	}
	return t
}

func (p *Parser) parseTypePrimary() ast.TypeAnnotation {
	tok := p.current()

	switch tok.Kind {
	case lexer.TokLParen:
		// Function type or parenthesized type
		if fn, ok := p.tryParseFnType(nil, false); ok {
			return fn
		}
		p.advance()
		inner := p.parseType()
		p.expect(lexer.TokRParen)
		return inner

	case lexer.TokLt:
		// Generic function type: <T>(x: T) => T
		typeParams := p.parseTypeParams()
		if fn, ok := p.tryParseFnType(typeParams, false); ok {
			return fn
		}
		p.error("expected function type after type parameters")
		return &ast.TKeyword{Loc: loc(tok), Raw: "any"}

	case lexer.TokNew:
		// Constructor type: new (args) => T
		p.advance()
		if fn, ok := p.tryParseFnType(nil, false); ok {
			return fn
		}
		p.error("expected constructor type after new")
		return &ast.TKeyword{Loc: loc(tok), Raw: "any"}

	case lexer.TokLBrace:
		return p.parseObjectType()

	case lexer.TokLBracket:
		return p.parseTupleType()

	case lexer.TokTypeof:
		p.advance()
		q := &ast.TQuery{Loc: loc(tok), HeadRef: ast.InvalidRef()}
		if nameTok, ok := p.expectIdentLike("identifier after typeof"); ok {
			q.Parts = append(q.Parts, nameTok.Value)
			for p.match(lexer.TokDot) {
				if next := p.current(); isNameLike(next) {
					p.advance()
					q.Parts = append(q.Parts, next.Value)
				} else {
					p.error("expected member name")
					break
				}
			}
		}
		return q

	case lexer.TokString, lexer.TokNumber, lexer.TokTemplate,
		lexer.TokTrue, lexer.TokFalse, lexer.TokNull, lexer.TokVoid, lexer.TokThis:
		p.advance()
		return &ast.TKeyword{Loc: loc(tok), Raw: tok.Value}

	case lexer.TokMinus:
		// Negative numeric literal type
		p.advance()
		if num, ok := p.expect(lexer.TokNumber); ok {
			return &ast.TKeyword{Loc: loc(tok), Raw: "-" + num.Value}
		}
		return &ast.TKeyword{Loc: loc(tok), Raw: "any"}

	case lexer.TokKeyof, lexer.TokReadonly:
		// Prefix operators keep only their operand: the operand's
		// references are all that matters
		p.advance()
		return p.parseTypePostfix()
	}

	if isIdentLike(tok) {
		p.advance()
		ref := &ast.TRef{Loc: loc(tok), Parts: []string{tok.Value}, HeadRef: ast.InvalidRef()}
		for p.match(lexer.TokDot) {
			if next := p.current(); isNameLike(next) {
				p.advance()
				ref.Parts = append(ref.Parts, next.Value)
			} else {
				p.error("expected member name in qualified type")
				break
			}
		}
		if p.current().Kind == lexer.TokLt {
			if args, ok := p.tryParseTypeArgs(); ok {
				ref.TypeArgs = args
			}
		}
		return ref
	}

	p.error(fmt.Sprintf("expected type, got %s", tok.Kind))
	p.advance()
	return &ast.TKeyword{Loc: loc(tok), Raw: "any"}
}

// parseReturnType parses a function return type, including the type
// predicate forms "x is T" and "asserts x [is T]".
func (p *Parser) parseReturnType() ast.TypeAnnotation {
	tok := p.current()

	if isIdentLike(tok) && tok.Value == "asserts" && isIdentLike(p.peek(1)) {
		p.advance() // asserts
		p.advance() // parameter name
		if p.match(lexer.TokIs) {
			return p.parseType()
		}
		return &ast.TKeyword{Loc: loc(tok), Raw: "asserts"}
	}

	if (isIdentLike(tok) || tok.Kind == lexer.TokThis) && p.peek(1).Kind == lexer.TokIs {
		p.advance() // parameter name
		p.advance() // is
		return p.parseType()
	}

	return p.parseType()
}

// tryParseFnType speculatively parses (a: A, b: B) => R starting at "(".
// Method signatures in object types introduce the return type with ":"
// instead of "=>" (or omit it); colonReturn accepts that form.
func (p *Parser) tryParseFnType(typeParams []ast.TypeParam, colonReturn bool) (ast.TypeAnnotation, bool) {
	s := p.save()
	start := p.current()
	if start.Kind != lexer.TokLParen {
		return nil, false
	}
	p.advance()

	fn := &ast.TFunc{Loc: loc(start), TypeParams: typeParams}
	for p.current().Kind != lexer.TokRParen && p.current().Kind != lexer.TokEOF {
		p.match(lexer.TokDotDotDot)
		if _, ok := p.expectIdentLike("parameter name"); !ok {
			p.restore(s)
			return nil, false
		}
		p.match(lexer.TokQuestion)
		if !p.match(lexer.TokColon) {
			p.restore(s)
			return nil, false
		}
		fn.Params = append(fn.Params, p.parseType())
		if !p.clean(s) {
			p.restore(s)
			return nil, false
		}
		if !p.match(lexer.TokComma) {
			break
		}
	}
	if !p.match(lexer.TokRParen) {
		p.restore(s)
		return nil, false
	}
	if colonReturn {
		if p.match(lexer.TokColon) || p.match(lexer.TokArrow) {
			fn.Return = p.parseType()
		}
		return fn, true
	}
	if !p.match(lexer.TokArrow) {
		p.restore(s)
		return nil, false
	}
	fn.Return = p.parseType()
	return fn, true
}

func (p *Parser) parseObjectType() ast.TypeAnnotation {
	start := p.advance() // {
	obj := &ast.TObject{Loc: loc(start)}

	for p.current().Kind != lexer.TokRBrace && p.current().Kind != lexer.TokEOF {
		propLoc := loc(p.current())
		p.match(lexer.TokReadonly)

		// Index signature: [key: string]: T
		if p.current().Kind == lexer.TokLBracket {
			p.advance()
			p.expectIdentLike("index signature name")
			p.expect(lexer.TokColon)
			p.parseType()
			p.expect(lexer.TokRBracket)
			p.expect(lexer.TokColon)
			obj.Props = append(obj.Props, ast.TObjectProp{Loc: propLoc, Type: p.parseType()})
		} else {
			// Property or method member
			keyTok := p.current()
			if !isNameLike(keyTok) && keyTok.Kind != lexer.TokString && keyTok.Kind != lexer.TokNumber {
				p.error("expected object type member name")
				break
			}
			p.advance()
			p.match(lexer.TokQuestion)

			switch p.current().Kind {
			case lexer.TokColon:
				p.advance()
				obj.Props = append(obj.Props, ast.TObjectProp{Loc: propLoc, Type: p.parseType()})
			case lexer.TokLParen, lexer.TokLt:
				var typeParams []ast.TypeParam
				if p.current().Kind == lexer.TokLt {
					typeParams = p.parseTypeParams()
				}
				if fn, ok := p.tryParseFnType(typeParams, true); ok {
					obj.Props = append(obj.Props, ast.TObjectProp{Loc: propLoc, Type: fn})
				} else {
					p.error("expected method signature")
				}
			default:
				// Bare member with an implied any type
			}
		}

		if !p.match(lexer.TokSemicolon) && !p.match(lexer.TokComma) {
			break
		}
	}
	p.expect(lexer.TokRBrace)
	return obj
}

func (p *Parser) parseTupleType() ast.TypeAnnotation {
	start := p.advance() // [
	tuple := &ast.TTuple{Loc: loc(start)}
	for p.current().Kind != lexer.TokRBracket && p.current().Kind != lexer.TokEOF {
		p.match(lexer.TokDotDotDot)
		// Named tuple element: [first: A, second: B]
		if isIdentLike(p.current()) && p.peek(1).Kind == lexer.TokColon {
			p.advance()
			p.advance()
		}
		tuple.Elems = append(tuple.Elems, p.parseType())
		if !p.match(lexer.TokComma) {
			break
		}
	}
	p.expect(lexer.TokRBracket)
	return tuple
}

// ----------------------------------------------------------------------------
// Type Parameters and Arguments
// ----------------------------------------------------------------------------

// parseTypeParams parses a declared type parameter list: <T, U extends V = W>.
func (p *Parser) parseTypeParams() []ast.TypeParam {
	var params []ast.TypeParam
	p.expect(lexer.TokLt)
	for p.current().Kind != lexer.TokEOF {
		tok, ok := p.expectIdentLike("type parameter name")
		if !ok {
			break
		}
		param := ast.TypeParam{Loc: loc(tok), Name: tok.Value}
		if p.match(lexer.TokExtends) {
			param.Constraint = p.parseType()
		}
		if p.match(lexer.TokEq) {
			param.Default = p.parseType()
		}
		params = append(params, param)
		if !p.match(lexer.TokComma) {
			break
		}
	}
	p.expectGreaterThan()
	return params
}

// tryParseTypeArgs speculatively parses a type-argument list: <A, B<C>>.
// Callers check p.clean against their own snapshot and decide whether to
// commit.
func (p *Parser) tryParseTypeArgs() ([]ast.TypeAnnotation, bool) {
	s := p.save()
	if !p.match(lexer.TokLt) {
		return nil, false
	}
	var args []ast.TypeAnnotation
	for p.current().Kind != lexer.TokEOF {
		args = append(args, p.parseType())
		if !p.clean(s) {
			p.restore(s)
			return nil, false
		}
		if !p.match(lexer.TokComma) {
			break
		}
	}
	if !p.matchGreaterThan() {
		p.restore(s)
		return nil, false
	}
	return args, true
}

// expectGreaterThan consumes a closing ">" in type context, splitting a
// ">>", ">>>", or ">=" token when nested generics close together.
func (p *Parser) expectGreaterThan() {
	if !p.matchGreaterThan() {
		p.error(fmt.Sprintf("expected >, got %s", p.current().Kind))
	}
}

func (p *Parser) matchGreaterThan() bool {
	tok := p.current()
	switch tok.Kind {
	case lexer.TokGt:
		p.advance()
		return true
	case lexer.TokGtGt, lexer.TokGtGtGt, lexer.TokGtEq:
		// Split the token: consume one ">" and leave the remainder
		rest := tok
		rest.Start++
		switch tok.Kind {
		case lexer.TokGtGt:
			rest.Kind = lexer.TokGt
			rest.Value = ">"
		case lexer.TokGtGtGt:
			rest.Kind = lexer.TokGtGt
			rest.Value = ">>"
		case lexer.TokGtEq:
			rest.Kind = lexer.TokEq
			rest.Value = "="
		}
		p.tokens[p.pos] = rest
		return true
	}
	return false
}
