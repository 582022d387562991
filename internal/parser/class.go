package parser

import (
	"codeberg.org/saruga/stripts/internal/ast"
	"codeberg.org/saruga/stripts/internal/lexer"
)

// ----------------------------------------------------------------------------
// Class Declarations
// ----------------------------------------------------------------------------

func (p *Parser) parseClassDecl(declare bool, decorators []ast.Expr) ast.Stmt {
	start := p.current()
	class := p.parseClass(true)
	class.Decorators = append(decorators, class.Decorators...)
	return &ast.SClass{Loc: loc(start), Class: class, Declare: declare}
}

// parseClass parses everything from an optional "abstract" modifier
// through the closing brace of the class body. When declareName is true
// the class name is declared in the enclosing scope.
func (p *Parser) parseClass(declareName bool) *ast.Class {
	start := p.current()
	class := &ast.Class{Loc: loc(start)}

	class.Abstract = p.match(lexer.TokAbstract)
	p.expect(lexer.TokClass)

	if isIdentLike(p.current()) {
		tok := p.advance()
		ref := ast.InvalidRef()
		if declareName {
			ref = p.declareSymbol(tok.Value, ast.SymbolClass, loc(tok))
		}
		class.Name = ast.NameBinding{Loc: loc(tok), Name: tok.Value, Ref: ref}
	} else {
		class.Name = ast.NameBinding{Ref: ast.InvalidRef()}
	}

	if p.current().Kind == lexer.TokLt {
		class.TypeParams = p.parseTypeParams()
	}

	if p.match(lexer.TokExtends) {
		class.Extends = p.parseLeftHandSide()
		if p.current().Kind == lexer.TokLt {
			s := p.save()
			args, ok := p.tryParseTypeArgs()
			if ok && p.clean(s) {
				class.ExtendsTypeArgs = args
			} else {
				p.restore(s)
			}
		}
	}

	if p.match(lexer.TokImplements) {
		for {
			class.Implements = append(class.Implements, p.parseType())
			if !p.match(lexer.TokComma) {
				break
			}
		}
	}

	p.expect(lexer.TokLBrace)
	for p.current().Kind != lexer.TokRBrace && p.current().Kind != lexer.TokEOF {
		if p.match(lexer.TokSemicolon) {
			continue
		}
		before := p.pos
		member := p.parseClassMember()
		if member != nil {
			class.Members = append(class.Members, member)
		}
		if p.pos == before {
			p.advance()
		}
	}
	p.expect(lexer.TokRBrace)
	return class
}

// ----------------------------------------------------------------------------
// Class Members
// ----------------------------------------------------------------------------

func (p *Parser) parseClassMember() ast.ClassMember {
	memberLoc := loc(p.current())
	decorators := p.parseDecorators()

	var (
		accessibility ast.Accessibility
		isStatic      bool
		isAbstract    bool
		isReadonly    bool
		isDeclare     bool
		isAsync       bool
	)

	// Modifiers. A modifier word immediately followed by (, =, ;, :, <,
	// ?, or } is actually a member name, not a modifier.
	for {
		tok := p.current()
		if !tok.Kind.IsKeyword() || !p.nextStartsMemberContinuation() {
			break
		}
		switch tok.Kind {
		case lexer.TokPublic:
			accessibility = ast.AccessPublic
		case lexer.TokPrivate:
			accessibility = ast.AccessPrivate
		case lexer.TokProtected:
			accessibility = ast.AccessProtected
		case lexer.TokStatic:
			isStatic = true
		case lexer.TokAbstract:
			isAbstract = true
		case lexer.TokReadonly:
			isReadonly = true
		case lexer.TokDeclare:
			isDeclare = true
		case lexer.TokAsync:
			isAsync = true
		default:
			goto modifiersDone
		}
		p.advance()
	}
modifiersDone:

	// Index signature: [name: Type]: Type
	if p.current().Kind == lexer.TokLBracket &&
		isIdentLike(p.peek(1)) && p.peek(2).Kind == lexer.TokColon {
		p.advance() // [
		p.advance() // name
		p.advance() // :
		p.parseType()
		p.expect(lexer.TokRBracket)
		p.expect(lexer.TokColon)
		p.parseType()
		p.match(lexer.TokSemicolon)
		return &ast.IndexSignatureMember{Loc: memberLoc}
	}

	// Accessor prefix
	kind := ast.MethodNormal
	if (p.current().Kind == lexer.TokGet || p.current().Kind == lexer.TokSet) &&
		p.memberNameFollows() {
		if p.current().Kind == lexer.TokGet {
			kind = ast.MethodGet
		} else {
			kind = ast.MethodSet
		}
		p.advance()
	}

	isGenerator := p.match(lexer.TokStar)

	// Member key
	var key ast.Expr
	computed := false
	tok := p.current()
	switch {
	case tok.Kind == lexer.TokLBracket:
		p.advance()
		computed = true
		key = p.parseExpr()
		p.expect(lexer.TokRBracket)
	case isNameLike(tok):
		p.advance()
		key = &ast.EIdentifier{Loc: loc(tok), Name: tok.Value, Ref: ast.InvalidRef()}
	case tok.Kind == lexer.TokString:
		p.advance()
		key = &ast.EString{Loc: loc(tok), Raw: tok.Value}
	case tok.Kind == lexer.TokNumber:
		p.advance()
		key = &ast.ENumber{Loc: loc(tok), Raw: tok.Value}
	default:
		p.error("expected class member name")
		return nil
	}

	optional := p.match(lexer.TokQuestion)
	definite := false
	if !optional {
		definite = p.match(lexer.TokBang)
	}

	// Method or accessor
	if p.current().Kind == lexer.TokLParen || p.current().Kind == lexer.TokLt {
		if kind == ast.MethodNormal && !computed {
			if ident, ok := key.(*ast.EIdentifier); ok && ident.Name == "constructor" {
				kind = ast.MethodConstructor
			}
		}
		// An abstract method or a method in an ambient class never has a
		// body; otherwise a missing body marks an overload signature.
		fn := p.parseFn(memberLoc, isAsync, isGenerator, !isAbstract && !isDeclare)
		return &ast.MethodMember{
			Loc:           memberLoc,
			Kind:          kind,
			Key:           key,
			Computed:      computed,
			Static:        isStatic,
			Abstract:      isAbstract,
			Optional:      optional,
			Accessibility: accessibility,
			Decorators:    decorators,
			Fn:            fn,
		}
	}

	// Property
	prop := &ast.PropertyMember{
		Loc:           memberLoc,
		Key:           key,
		Computed:      computed,
		Static:        isStatic,
		Abstract:      isAbstract,
		Readonly:      isReadonly,
		Optional:      optional,
		Definite:      definite,
		Declare:       isDeclare,
		Accessibility: accessibility,
		Decorators:    decorators,
	}
	if p.match(lexer.TokColon) {
		prop.Type = p.parseType()
	}
	if p.match(lexer.TokEq) {
		prop.Value = p.parseAssign()
	}
	p.match(lexer.TokSemicolon)
	return prop
}

// nextStartsMemberContinuation reports whether the token after the
// current one continues a class member, meaning the current keyword is a
// modifier rather than the member name itself.
func (p *Parser) nextStartsMemberContinuation() bool {
	switch p.peek(1).Kind {
	case lexer.TokLParen, lexer.TokEq, lexer.TokSemicolon, lexer.TokColon,
		lexer.TokLt, lexer.TokQuestion, lexer.TokBang, lexer.TokRBrace:
		return false
	}
	return true
}

// memberNameFollows reports whether a member key follows the current
// token, which makes the current get/set token an accessor prefix.
func (p *Parser) memberNameFollows() bool {
	next := p.peek(1)
	return isNameLike(next) || next.Kind == lexer.TokString ||
		next.Kind == lexer.TokNumber || next.Kind == lexer.TokLBracket
}
