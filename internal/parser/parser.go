// Package parser provides TypeScript parsing into an AST.
//
// The parser implements a two-pass architecture similar to esbuild:
//
// Pass 1 (Parse): Build AST and scope tree, declare symbols
// Pass 2 (Visit): Bind identifiers to symbols, record reference sites
//
// Each reference site carries whether the identifier appeared in a type
// position or a value position. That record is what lets the stripper
// decide which imported bindings are type-only.
//
// Type expressions are parsed only far enough to record the identifiers
// they reference. They are never printed, so the type grammar here is a
// deliberate subset folded down to what reference recording needs.
package parser

import (
	"fmt"

	"codeberg.org/saruga/stripts/internal/ast"
	"codeberg.org/saruga/stripts/internal/diagnostic"
	"codeberg.org/saruga/stripts/internal/lexer"
)

// Options controls parsing behavior.
type Options struct {
	// JSX enables JSX syntax. When enabled, "<" in expression position
	// starts a JSX element and the old-style type assertion <T>expr is
	// unavailable.
	JSX bool
}

// Parser parses TypeScript source into an AST using a two-pass approach.
type Parser struct {
	source    string
	opts      Options
	tokens    []lexer.Token
	comments  []lexer.Comment
	pos       int
	lineIndex *diagnostic.LineIndex

	// Symbol table
	symbols []ast.Symbol
	scope   *ast.Scope

	// Visit pass state
	visitScope *ast.Scope

	// Parse state
	allowIn bool // false while parsing a classic for-loop init
	hasJSX  bool

	// Errors
	errors []ParseError
}

// ParseError represents a parsing error.
type ParseError struct {
	Message string
	Pos     int
	Line    int
	Column  int
}

func (e ParseError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Column, e.Message)
}

// New creates a new parser for the given source.
func New(source string, opts Options) *Parser {
	lex := lexer.New(source)
	tokens := lex.Tokenize()

	return &Parser{
		source:    source,
		opts:      opts,
		tokens:    tokens,
		comments:  lex.Comments(),
		lineIndex: diagnostic.NewLineIndex(source),
		symbols:   make([]ast.Symbol, 0),
		scope:     ast.NewScope(nil),
		allowIn:   true,
	}
}

// Parse parses the source and returns the AST program.
// This is the main entry point that runs both passes.
func (p *Parser) Parse() (*ast.Program, []ParseError) {
	program := &ast.Program{
		Source: p.source,
		Scope:  p.scope,
	}

	// Pass 1: Parse - build AST and declare symbols
	for p.current().Kind != lexer.TokEOF {
		if p.current().Kind == lexer.TokError {
			p.error(p.current().Value)
			break
		}
		before := p.pos
		stmt := p.parseModuleStmt()
		if stmt != nil {
			program.Stmts = append(program.Stmts, stmt)
		}
		if p.pos == before {
			// No progress; skip the offending token
			p.advance()
		}
	}

	// Pass 2: Visit - bind identifiers and record reference sites
	p.visitProgram(program)

	program.Symbols = p.symbols
	program.HasJSX = p.hasJSX
	for _, c := range p.comments {
		program.Comments = append(program.Comments, ast.Comment{
			Loc:  ast.Loc{Start: int32(c.Start)},
			Text: c.Text,
		})
	}

	return program, p.errors
}

// ----------------------------------------------------------------------------
// Token Helpers
// ----------------------------------------------------------------------------

func (p *Parser) current() lexer.Token {
	if p.pos >= len(p.tokens) {
		return lexer.Token{Kind: lexer.TokEOF}
	}
	return p.tokens[p.pos]
}

func (p *Parser) peek(offset int) lexer.Token {
	pos := p.pos + offset
	if pos >= len(p.tokens) {
		return lexer.Token{Kind: lexer.TokEOF}
	}
	return p.tokens[pos]
}

func (p *Parser) advance() lexer.Token {
	tok := p.current()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return tok
}

func (p *Parser) expect(kind lexer.TokenKind) (lexer.Token, bool) {
	tok := p.current()
	if tok.Kind != kind {
		p.error(fmt.Sprintf("expected %s, got %s", kind, tok.Kind))
		// Don't advance here - let caller decide how to recover
		return tok, false
	}
	p.advance()
	return tok, true
}

func (p *Parser) match(kind lexer.TokenKind) bool {
	if p.current().Kind == kind {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) error(msg string) {
	p.errorAt(p.current().Start, msg)
}

func (p *Parser) errorAt(offset int, msg string) {
	line, col := p.lineIndex.ByteOffsetToLineColumn(offset)
	p.errors = append(p.errors, ParseError{
		Message: msg,
		Pos:     offset,
		Line:    line + 1, // Convert to 1-based
		Column:  col + 1,  // Convert to 1-based
	})
}

func loc(tok lexer.Token) ast.Loc {
	return ast.Loc{Start: int32(tok.Start)}
}

// isIdentLike reports whether the token can serve as a binding or member
// name. Contextual and TypeScript-only keywords are valid names.
func isIdentLike(tok lexer.Token) bool {
	return tok.Kind == lexer.TokIdent ||
		(tok.Kind >= lexer.TokAs && tok.Kind <= lexer.TokType)
}

// isNameLike reports whether the token can appear after "." or as an
// object/class member key. Any keyword qualifies there.
func isNameLike(tok lexer.Token) bool {
	return tok.Kind == lexer.TokIdent || tok.Kind.IsKeyword()
}

func (p *Parser) expectIdentLike(what string) (lexer.Token, bool) {
	tok := p.current()
	if !isIdentLike(tok) {
		p.error(fmt.Sprintf("expected %s, got %s", what, tok.Kind))
		return tok, false
	}
	p.advance()
	return tok, true
}

// ----------------------------------------------------------------------------
// Speculative Parsing
// ----------------------------------------------------------------------------

// snapshot captures parser state so a speculative parse can be rolled
// back without leaking symbols, scopes, or errors.
type snapshot struct {
	pos         int
	symbolCount int
	errorCount  int
	scope       *ast.Scope
	childCount  int
}

func (p *Parser) save() snapshot {
	return snapshot{
		pos:         p.pos,
		symbolCount: len(p.symbols),
		errorCount:  len(p.errors),
		scope:       p.scope,
		childCount:  len(p.scope.Children),
	}
}

func (p *Parser) restore(s snapshot) {
	p.pos = s.pos
	p.symbols = p.symbols[:s.symbolCount]
	p.errors = p.errors[:s.errorCount]
	p.scope = s.scope
	p.scope.Children = p.scope.Children[:s.childCount]
}

// clean reports whether no new errors were recorded since the snapshot.
func (p *Parser) clean(s snapshot) bool {
	return len(p.errors) == s.errorCount
}

// ----------------------------------------------------------------------------
// Symbol Table (Pass 1)
// ----------------------------------------------------------------------------

func (p *Parser) declareSymbol(name string, kind ast.SymbolKind, l ast.Loc) ast.Ref {
	ref := ast.Ref{InnerIndex: uint32(len(p.symbols))}
	p.symbols = append(p.symbols, ast.Symbol{
		OriginalName: name,
		Loc:          l,
		Kind:         kind,
	})
	p.scope.Members[name] = ast.ScopeMember{Ref: ref}
	return ref
}

func (p *Parser) pushScope() *ast.Scope {
	p.scope = ast.NewScope(p.scope)
	return p.scope
}

func (p *Parser) popScope() {
	if p.scope.Parent != nil {
		p.scope = p.scope.Parent
	}
}

// ----------------------------------------------------------------------------
// Module-Level Statements
// ----------------------------------------------------------------------------

func (p *Parser) parseModuleStmt() ast.Stmt {
	switch p.current().Kind {
	case lexer.TokImport:
		return p.parseImport()
	case lexer.TokExport:
		return p.parseExport()
	}
	return p.parseStmt()
}

func (p *Parser) parseImport() ast.Stmt {
	start := p.advance() // import
	stmt := &ast.SImport{Loc: loc(start)}

	// Bare side-effect import: import "mod";
	if p.current().Kind == lexer.TokString {
		stmt.Path = p.advance().Value
		p.match(lexer.TokSemicolon)
		return stmt
	}

	// import x = require("mod");
	if isIdentLike(p.current()) && p.peek(1).Kind == lexer.TokEq {
		nameTok := p.advance()
		p.advance() // =
		eq := &ast.SImportEquals{Loc: loc(start)}
		eq.Name = ast.NameBinding{
			Loc:  loc(nameTok),
			Name: nameTok.Value,
			Ref:  p.declareSymbol(nameTok.Value, ast.SymbolImport, loc(nameTok)),
		}
		if _, ok := p.expect(lexer.TokRequire); !ok {
			return eq
		}
		p.expect(lexer.TokLParen)
		if path, ok := p.expect(lexer.TokString); ok {
			eq.Path = path.Value
		}
		p.expect(lexer.TokRParen)
		p.match(lexer.TokSemicolon)
		return eq
	}

	// import type ... (but not "import type from" or "import type,")
	if p.current().Kind == lexer.TokType {
		next := p.peek(1)
		if isIdentLike(next) || next.Kind == lexer.TokLBrace || next.Kind == lexer.TokStar {
			if !(isIdentLike(next) && p.peek(2).Kind == lexer.TokEq) {
				p.advance()
				stmt.TypeOnly = true
			}
		}
	}

	// Default import
	if isIdentLike(p.current()) {
		tok := p.advance()
		stmt.DefaultName = &ast.NameBinding{
			Loc:  loc(tok),
			Name: tok.Value,
			Ref:  p.declareSymbol(tok.Value, ast.SymbolImport, loc(tok)),
		}
		if !p.match(lexer.TokComma) {
			p.expect(lexer.TokFrom)
			if path, ok := p.expect(lexer.TokString); ok {
				stmt.Path = path.Value
			}
			p.match(lexer.TokSemicolon)
			return stmt
		}
	}

	// Namespace import: * as ns
	if p.match(lexer.TokStar) {
		p.expect(lexer.TokAs)
		if tok, ok := p.expectIdentLike("namespace import name"); ok {
			stmt.NamespaceRef = &ast.NameBinding{
				Loc:  loc(tok),
				Name: tok.Value,
				Ref:  p.declareSymbol(tok.Value, ast.SymbolImport, loc(tok)),
			}
		}
	} else if p.match(lexer.TokLBrace) {
		// Named imports
		for p.current().Kind != lexer.TokRBrace && p.current().Kind != lexer.TokEOF {
			item := ast.ImportItem{Loc: loc(p.current())}

			// Inline type specifier: { type A } but not { type } or { type as x }
			if p.current().Kind == lexer.TokType && isIdentLike(p.peek(1)) &&
				!(p.peek(1).Kind == lexer.TokAs && !isIdentLike(p.peek(2))) {
				p.advance()
				item.TypeOnly = true
			}

			nameTok, ok := p.expectIdentLike("import specifier")
			if !ok {
				break
			}
			item.Name = nameTok.Value
			localTok := nameTok
			if p.match(lexer.TokAs) {
				if tok, ok := p.expectIdentLike("import alias"); ok {
					localTok = tok
				}
			}
			item.Local = ast.NameBinding{
				Loc:  loc(localTok),
				Name: localTok.Value,
				Ref:  p.declareSymbol(localTok.Value, ast.SymbolImport, loc(localTok)),
			}
			stmt.Items = append(stmt.Items, item)

			if !p.match(lexer.TokComma) {
				break
			}
		}
		p.expect(lexer.TokRBrace)
	}

	p.expect(lexer.TokFrom)
	if path, ok := p.expect(lexer.TokString); ok {
		stmt.Path = path.Value
	}
	p.match(lexer.TokSemicolon)
	return stmt
}

func (p *Parser) parseExport() ast.Stmt {
	start := p.advance() // export

	switch p.current().Kind {
	case lexer.TokEq:
		// export = expr;
		p.advance()
		stmt := &ast.SExportEquals{Loc: loc(start), Value: p.parseExpr()}
		p.match(lexer.TokSemicolon)
		return stmt

	case lexer.TokDefault:
		p.advance()
		stmt := &ast.SExportDefault{Loc: loc(start)}
		switch {
		case p.current().Kind == lexer.TokFunction ||
			(p.current().Kind == lexer.TokAsync && p.peek(1).Kind == lexer.TokFunction):
			stmt.Decl = p.parseFunctionDecl(false)
		case p.current().Kind == lexer.TokClass ||
			(p.current().Kind == lexer.TokAbstract && p.peek(1).Kind == lexer.TokClass):
			stmt.Decl = p.parseClassDecl(false, nil)
		case p.current().Kind == lexer.TokInterface && isIdentLike(p.peek(1)):
			stmt.Decl = p.parseInterface()
		default:
			stmt.Value = p.parseExpr()
			p.match(lexer.TokSemicolon)
		}
		return stmt

	case lexer.TokStar:
		// export * [as name] from "mod";
		p.advance()
		stmt := &ast.SExportNamed{Loc: loc(start), Star: true}
		if p.match(lexer.TokAs) {
			if tok, ok := p.expectIdentLike("export alias"); ok {
				stmt.StarName = tok.Value
			}
		}
		p.expect(lexer.TokFrom)
		if path, ok := p.expect(lexer.TokString); ok {
			stmt.From = path.Value
		}
		p.match(lexer.TokSemicolon)
		return stmt

	case lexer.TokLBrace:
		return p.parseExportList(start, false)

	case lexer.TokType:
		// export type { ... } vs export type X = ...
		if p.peek(1).Kind == lexer.TokLBrace {
			p.advance()
			return p.parseExportList(start, true)
		}
	}

	// export <declaration>
	decl := p.parseStmt()
	return &ast.SExportNamed{Loc: loc(start), Decl: decl}
}

func (p *Parser) parseExportList(start lexer.Token, typeOnly bool) ast.Stmt {
	stmt := &ast.SExportNamed{Loc: loc(start), TypeOnly: typeOnly}
	p.expect(lexer.TokLBrace)
	for p.current().Kind != lexer.TokRBrace && p.current().Kind != lexer.TokEOF {
		item := ast.ExportItem{Loc: loc(p.current())}

		// Inline type specifier: export { type A }
		if p.current().Kind == lexer.TokType && isIdentLike(p.peek(1)) {
			p.advance()
		}

		nameTok, ok := p.expectIdentLike("export specifier")
		if !ok {
			break
		}
		item.Local = nameTok.Value
		item.Exported = nameTok.Value
		if p.match(lexer.TokAs) {
			if tok, ok := p.expectIdentLike("export alias"); ok {
				item.Exported = tok.Value
			}
		}
		stmt.Items = append(stmt.Items, item)

		if !p.match(lexer.TokComma) {
			break
		}
	}
	p.expect(lexer.TokRBrace)
	if p.match(lexer.TokFrom) {
		if path, ok := p.expect(lexer.TokString); ok {
			stmt.From = path.Value
		}
	}
	p.match(lexer.TokSemicolon)
	return stmt
}

// ----------------------------------------------------------------------------
// Statements
// ----------------------------------------------------------------------------

func (p *Parser) parseStmt() ast.Stmt {
	tok := p.current()

	switch tok.Kind {
	case lexer.TokLBrace:
		return p.parseBlock()

	case lexer.TokSemicolon:
		p.advance()
		return &ast.SEmpty{Loc: loc(tok)}

	case lexer.TokVar, lexer.TokLet:
		return p.parseVarStmt(false)

	case lexer.TokConst:
		if p.peek(1).Kind == lexer.TokEnum {
			p.advance()
			return p.parseEnum(false, true)
		}
		return p.parseVarStmt(false)

	case lexer.TokFunction:
		return p.parseFunctionDecl(false)

	case lexer.TokAsync:
		if p.peek(1).Kind == lexer.TokFunction {
			return p.parseFunctionDecl(false)
		}

	case lexer.TokClass:
		return p.parseClassDecl(false, nil)

	case lexer.TokAbstract:
		if p.peek(1).Kind == lexer.TokClass {
			return p.parseClassDecl(false, nil)
		}

	case lexer.TokAt:
		decorators := p.parseDecorators()
		if p.current().Kind == lexer.TokExport {
			p.advance()
			return &ast.SExportNamed{Loc: loc(tok), Decl: p.parseClassDecl(false, decorators)}
		}
		return p.parseClassDecl(false, decorators)

	case lexer.TokInterface:
		if isIdentLike(p.peek(1)) {
			return p.parseInterface()
		}

	case lexer.TokType:
		if isIdentLike(p.peek(1)) &&
			(p.peek(2).Kind == lexer.TokEq || p.peek(2).Kind == lexer.TokLt) {
			return p.parseTypeAlias()
		}

	case lexer.TokEnum:
		return p.parseEnum(false, false)

	case lexer.TokNamespace, lexer.TokModule:
		next := p.peek(1)
		if isIdentLike(next) || next.Kind == lexer.TokString {
			return p.parseNamespace(false)
		}

	case lexer.TokDeclare:
		return p.parseDeclareStmt()

	case lexer.TokIf:
		return p.parseIf()

	case lexer.TokWhile:
		p.advance()
		stmt := &ast.SWhile{Loc: loc(tok)}
		p.expect(lexer.TokLParen)
		stmt.Condition = p.parseExpr()
		p.expect(lexer.TokRParen)
		stmt.Body = p.parseStmt()
		return stmt

	case lexer.TokDo:
		p.advance()
		stmt := &ast.SDoWhile{Loc: loc(tok)}
		stmt.Body = p.parseStmt()
		p.expect(lexer.TokWhile)
		p.expect(lexer.TokLParen)
		stmt.Condition = p.parseExpr()
		p.expect(lexer.TokRParen)
		p.match(lexer.TokSemicolon)
		return stmt

	case lexer.TokFor:
		return p.parseFor()

	case lexer.TokSwitch:
		return p.parseSwitch()

	case lexer.TokTry:
		return p.parseTry()

	case lexer.TokReturn:
		p.advance()
		stmt := &ast.SReturn{Loc: loc(tok)}
		if p.current().Kind != lexer.TokSemicolon &&
			p.current().Kind != lexer.TokRBrace &&
			p.current().Kind != lexer.TokEOF {
			stmt.Value = p.parseExpr()
		}
		p.match(lexer.TokSemicolon)
		return stmt

	case lexer.TokThrow:
		p.advance()
		stmt := &ast.SThrow{Loc: loc(tok), Value: p.parseExpr()}
		p.match(lexer.TokSemicolon)
		return stmt

	case lexer.TokBreak:
		p.advance()
		stmt := &ast.SBreak{Loc: loc(tok)}
		if isIdentLike(p.current()) {
			stmt.Label = p.advance().Value
		}
		p.match(lexer.TokSemicolon)
		return stmt

	case lexer.TokContinue:
		p.advance()
		stmt := &ast.SContinue{Loc: loc(tok)}
		if isIdentLike(p.current()) {
			stmt.Label = p.advance().Value
		}
		p.match(lexer.TokSemicolon)
		return stmt
	}

	// Expression statement
	expr := p.parseExpr()
	p.match(lexer.TokSemicolon)
	return &ast.SExpr{Loc: loc(tok), Expr: expr}
}

func (p *Parser) parseDeclareStmt() ast.Stmt {
	p.advance() // declare

	switch p.current().Kind {
	case lexer.TokVar, lexer.TokLet, lexer.TokConst:
		return p.parseVarStmt(true)
	case lexer.TokFunction:
		stmt := p.parseFunctionDecl(true)
		return stmt
	case lexer.TokClass:
		return p.parseClassDecl(true, nil)
	case lexer.TokAbstract:
		if p.peek(1).Kind == lexer.TokClass {
			return p.parseClassDecl(true, nil)
		}
	case lexer.TokEnum:
		return p.parseEnum(true, false)
	case lexer.TokNamespace, lexer.TokModule:
		return p.parseNamespace(true)
	case lexer.TokInterface:
		return p.parseInterface()
	case lexer.TokType:
		return p.parseTypeAlias()
	case lexer.TokIdent:
		// declare global { ... }
		if p.current().Value == "global" && p.peek(1).Kind == lexer.TokLBrace {
			return p.parseNamespace(true)
		}
	}
	p.error("expected declaration after declare")
	return nil
}

func (p *Parser) parseBlock() *ast.SBlock {
	start := p.current()
	block := &ast.SBlock{Loc: loc(start)}
	p.expect(lexer.TokLBrace)
	block.Scope = p.pushScope()
	for p.current().Kind != lexer.TokRBrace && p.current().Kind != lexer.TokEOF {
		before := p.pos
		stmt := p.parseStmt()
		if stmt != nil {
			block.Stmts = append(block.Stmts, stmt)
		}
		if p.pos == before {
			p.advance()
		}
	}
	p.popScope()
	p.expect(lexer.TokRBrace)
	return block
}

func (p *Parser) parseIf() ast.Stmt {
	start := p.advance() // if
	stmt := &ast.SIf{Loc: loc(start)}
	p.expect(lexer.TokLParen)
	stmt.Condition = p.parseExpr()
	p.expect(lexer.TokRParen)
	stmt.Body = p.parseStmt()
	if p.match(lexer.TokElse) {
		stmt.Else = p.parseStmt()
	}
	return stmt
}

func (p *Parser) parseFor() ast.Stmt {
	start := p.advance() // for
	p.expect(lexer.TokLParen)

	var init ast.Stmt
	if p.current().Kind != lexer.TokSemicolon {
		switch p.current().Kind {
		case lexer.TokVar, lexer.TokLet, lexer.TokConst:
			kindTok := p.advance()
			kind := ast.VarVar
			switch kindTok.Kind {
			case lexer.TokLet:
				kind = ast.VarLet
			case lexer.TokConst:
				kind = ast.VarConst
			}
			decl := &ast.VarDeclarator{Loc: loc(p.current())}
			decl.Binding = p.parsePattern(p.symbolKindForVar(kind))
			sv := &ast.SVar{Loc: loc(kindTok), Kind: kind, Decls: []*ast.VarDeclarator{decl}}

			if p.current().Kind == lexer.TokIn || p.current().Kind == lexer.TokOf {
				return p.parseForInOf(start, sv)
			}

			// Classic loop: finish this declarator plus any others
			if p.match(lexer.TokColon) {
				p.setPatternType(decl.Binding, p.parseType())
			}
			if p.match(lexer.TokEq) {
				prevIn := p.allowIn
				p.allowIn = false
				decl.Init = p.parseAssign()
				p.allowIn = prevIn
			}
			for p.match(lexer.TokComma) {
				d := p.parseVarDeclarator(kind, false)
				sv.Decls = append(sv.Decls, d)
			}
			init = sv

		default:
			prevIn := p.allowIn
			p.allowIn = false
			expr := p.parseExpr()
			p.allowIn = prevIn
			se := &ast.SExpr{Loc: loc(start), Expr: expr}
			if p.current().Kind == lexer.TokIn || p.current().Kind == lexer.TokOf {
				return p.parseForInOf(start, se)
			}
			init = se
		}
	}

	stmt := &ast.SFor{Loc: loc(start), Init: init}
	p.expect(lexer.TokSemicolon)
	if p.current().Kind != lexer.TokSemicolon {
		stmt.Condition = p.parseExpr()
	}
	p.expect(lexer.TokSemicolon)
	if p.current().Kind != lexer.TokRParen {
		stmt.Update = p.parseExpr()
	}
	p.expect(lexer.TokRParen)
	stmt.Body = p.parseStmt()
	return stmt
}

func (p *Parser) parseForInOf(start lexer.Token, init ast.Stmt) ast.Stmt {
	isOf := p.current().Kind == lexer.TokOf
	p.advance() // in or of
	stmt := &ast.SForInOf{Loc: loc(start), IsOf: isOf, Init: init}
	stmt.Value = p.parseExpr()
	p.expect(lexer.TokRParen)
	stmt.Body = p.parseStmt()
	return stmt
}

func (p *Parser) parseSwitch() ast.Stmt {
	start := p.advance() // switch
	stmt := &ast.SSwitch{Loc: loc(start)}
	p.expect(lexer.TokLParen)
	stmt.Test = p.parseExpr()
	p.expect(lexer.TokRParen)
	p.expect(lexer.TokLBrace)

	for p.current().Kind != lexer.TokRBrace && p.current().Kind != lexer.TokEOF {
		c := ast.SwitchCase{Loc: loc(p.current())}
		switch p.current().Kind {
		case lexer.TokCase:
			p.advance()
			c.Value = p.parseExpr()
		case lexer.TokDefault:
			p.advance()
		default:
			p.error("expected case or default")
			p.advance()
			continue
		}
		p.expect(lexer.TokColon)
		for {
			k := p.current().Kind
			if k == lexer.TokCase || k == lexer.TokDefault ||
				k == lexer.TokRBrace || k == lexer.TokEOF {
				break
			}
			c.Body = append(c.Body, p.parseStmt())
		}
		stmt.Cases = append(stmt.Cases, c)
	}
	p.expect(lexer.TokRBrace)
	return stmt
}

func (p *Parser) parseTry() ast.Stmt {
	start := p.advance() // try
	stmt := &ast.STry{Loc: loc(start)}
	stmt.Body = p.parseBlock()

	if p.match(lexer.TokCatch) {
		if p.match(lexer.TokLParen) {
			binding := p.parsePattern(ast.SymbolParameter)
			if p.match(lexer.TokColon) {
				p.setPatternType(binding, p.parseType())
			}
			stmt.CatchBinding = binding
			p.expect(lexer.TokRParen)
		}
		stmt.CatchBody = p.parseBlock()
	}
	if p.match(lexer.TokFinally) {
		stmt.Finally = p.parseBlock()
	}
	return stmt
}

// ----------------------------------------------------------------------------
// Variable Declarations
// ----------------------------------------------------------------------------

func (p *Parser) symbolKindForVar(kind ast.VarKind) ast.SymbolKind {
	switch kind {
	case ast.VarLet:
		return ast.SymbolLet
	case ast.VarConst:
		return ast.SymbolConst
	default:
		return ast.SymbolVar
	}
}

func (p *Parser) parseVarStmt(declare bool) ast.Stmt {
	kindTok := p.advance()
	kind := ast.VarVar
	switch kindTok.Kind {
	case lexer.TokLet:
		kind = ast.VarLet
	case lexer.TokConst:
		kind = ast.VarConst
	}

	stmt := &ast.SVar{Loc: loc(kindTok), Kind: kind, Declare: declare}
	for {
		stmt.Decls = append(stmt.Decls, p.parseVarDeclarator(kind, declare))
		if !p.match(lexer.TokComma) {
			break
		}
	}
	p.match(lexer.TokSemicolon)
	return stmt
}

func (p *Parser) parseVarDeclarator(kind ast.VarKind, declare bool) *ast.VarDeclarator {
	decl := &ast.VarDeclarator{Loc: loc(p.current())}
	decl.Binding = p.parsePattern(p.symbolKindForVar(kind))

	if p.match(lexer.TokBang) {
		decl.Definite = true
	}
	if p.match(lexer.TokColon) {
		p.setPatternType(decl.Binding, p.parseType())
	}
	if p.match(lexer.TokEq) {
		decl.Init = p.parseAssign()
	}
	return decl
}

// ----------------------------------------------------------------------------
// Binding Patterns
// ----------------------------------------------------------------------------

// parsePattern parses a binding pattern, declaring a symbol of the given
// kind for every bound identifier.
func (p *Parser) parsePattern(kind ast.SymbolKind) ast.Pattern {
	tok := p.current()

	switch {
	case isIdentLike(tok) || tok.Kind == lexer.TokThis:
		p.advance()
		b := &ast.BIdentifier{Loc: loc(tok), Name: tok.Value, Ref: ast.InvalidRef()}
		if tok.Kind != lexer.TokThis {
			b.Ref = p.declareSymbol(tok.Value, kind, loc(tok))
		}
		return b

	case tok.Kind == lexer.TokLBracket:
		p.advance()
		b := &ast.BArray{Loc: loc(tok)}
		for p.current().Kind != lexer.TokRBracket && p.current().Kind != lexer.TokEOF {
			if p.current().Kind == lexer.TokComma {
				// Hole
				b.Items = append(b.Items, ast.PatternElem{})
				p.advance()
				continue
			}
			elem := ast.PatternElem{}
			if p.match(lexer.TokDotDotDot) {
				elem.Binding = &ast.BRest{Loc: loc(tok), Value: p.parsePattern(kind)}
			} else {
				elem.Binding = p.parsePattern(kind)
				if p.match(lexer.TokEq) {
					elem.Default = p.parseAssign()
				}
			}
			b.Items = append(b.Items, elem)
			if !p.match(lexer.TokComma) {
				break
			}
		}
		p.expect(lexer.TokRBracket)
		return b

	case tok.Kind == lexer.TokLBrace:
		p.advance()
		b := &ast.BObject{Loc: loc(tok)}
		for p.current().Kind != lexer.TokRBrace && p.current().Kind != lexer.TokEOF {
			prop := ast.BObjectProp{Loc: loc(p.current())}
			if p.match(lexer.TokDotDotDot) {
				prop.IsRest = true
				prop.Value = p.parsePattern(kind)
			} else {
				keyTok, ok := p.expectIdentLike("property name")
				if !ok {
					break
				}
				prop.Key = keyTok.Value
				if p.match(lexer.TokColon) {
					prop.Value = p.parsePattern(kind)
				} else {
					// Shorthand
					prop.Value = &ast.BIdentifier{
						Loc:  loc(keyTok),
						Name: keyTok.Value,
						Ref:  p.declareSymbol(keyTok.Value, kind, loc(keyTok)),
					}
				}
				if p.match(lexer.TokEq) {
					prop.Default = p.parseAssign()
				}
			}
			b.Props = append(b.Props, prop)
			if !p.match(lexer.TokComma) {
				break
			}
		}
		p.expect(lexer.TokRBrace)
		return b
	}

	p.error(fmt.Sprintf("expected binding pattern, got %s", tok.Kind))
	p.advance()
	return &ast.BIdentifier{Loc: loc(tok), Name: "_", Ref: ast.InvalidRef()}
}

// setPatternType attaches a type annotation to a binding pattern.
func (p *Parser) setPatternType(pattern ast.Pattern, t ast.TypeAnnotation) {
	switch b := pattern.(type) {
	case *ast.BIdentifier:
		b.Type = t
	case *ast.BRest:
		b.Type = t
	case *ast.BArray:
		b.Type = t
	case *ast.BObject:
		b.Type = t
	}
}

// ----------------------------------------------------------------------------
// Functions
// ----------------------------------------------------------------------------

func (p *Parser) parseFunctionDecl(declare bool) ast.Stmt {
	start := p.current()
	isAsync := p.match(lexer.TokAsync)
	p.expect(lexer.TokFunction)
	isGenerator := p.match(lexer.TokStar)

	stmt := &ast.SFunction{Loc: loc(start), Declare: declare}
	if tok, ok := p.expectIdentLike("function name"); ok {
		stmt.Name = ast.NameBinding{
			Loc:  loc(tok),
			Name: tok.Value,
			Ref:  p.declareSymbol(tok.Value, ast.SymbolFunction, loc(tok)),
		}
	}
	stmt.Fn = p.parseFn(loc(start), isAsync, isGenerator, !declare)
	return stmt
}

// parseFn parses type parameters, a parameter list, an optional return
// type, and an optional body. bodyAllowed distinguishes overload
// signatures (body optional) from ambient declarations (body forbidden).
func (p *Parser) parseFn(l ast.Loc, isAsync, isGenerator, bodyAllowed bool) *ast.Fn {
	fn := &ast.Fn{Loc: l, IsAsync: isAsync, IsGenerator: isGenerator}
	fn.Scope = p.pushScope()

	if p.current().Kind == lexer.TokLt {
		fn.TypeParams = p.parseTypeParams()
	}
	fn.Params = p.parseParams()
	if p.match(lexer.TokColon) {
		fn.ReturnType = p.parseReturnType()
	}
	if bodyAllowed && p.current().Kind == lexer.TokLBrace {
		fn.Body = p.parseBlock()
	} else {
		p.match(lexer.TokSemicolon)
	}

	p.popScope()
	return fn
}

func (p *Parser) parseParams() []*ast.Param {
	var params []*ast.Param
	p.expect(lexer.TokLParen)

	for p.current().Kind != lexer.TokRParen && p.current().Kind != lexer.TokEOF {
		param := &ast.Param{Loc: loc(p.current())}

		// Parameter decorators are not supported; skip them
		for p.current().Kind == lexer.TokAt {
			p.parseDecorator()
		}

		// Parameter-property modifiers
		for {
			switch p.current().Kind {
			case lexer.TokPublic:
				param.Accessibility = ast.AccessPublic
				p.advance()
				continue
			case lexer.TokPrivate:
				param.Accessibility = ast.AccessPrivate
				p.advance()
				continue
			case lexer.TokProtected:
				param.Accessibility = ast.AccessProtected
				p.advance()
				continue
			case lexer.TokReadonly:
				// readonly is also a valid parameter name
				if isIdentLike(p.peek(1)) || p.peek(1).Kind == lexer.TokLBrace ||
					p.peek(1).Kind == lexer.TokLBracket || p.peek(1).Kind == lexer.TokDotDotDot {
					param.Readonly = true
					p.advance()
					continue
				}
			}
			break
		}

		if p.match(lexer.TokDotDotDot) {
			rest := &ast.BRest{Loc: param.Loc, Value: p.parsePattern(ast.SymbolParameter)}
			param.Binding = rest
		} else {
			param.Binding = p.parsePattern(ast.SymbolParameter)
		}

		if p.match(lexer.TokQuestion) {
			if b, ok := param.Binding.(*ast.BIdentifier); ok {
				b.Optional = true
			}
		}
		if p.match(lexer.TokColon) {
			p.setPatternType(param.Binding, p.parseType())
		}
		if p.match(lexer.TokEq) {
			param.Default = p.parseAssign()
		}

		params = append(params, param)
		if !p.match(lexer.TokComma) {
			break
		}
	}

	p.expect(lexer.TokRParen)
	return params
}

// parseDecorators parses a run of @decorator annotations.
func (p *Parser) parseDecorators() []ast.Expr {
	var decorators []ast.Expr
	for p.current().Kind == lexer.TokAt {
		decorators = append(decorators, p.parseDecorator())
	}
	return decorators
}

// parseDecorator parses one @name, @name.path, or @name(...) annotation.
func (p *Parser) parseDecorator() ast.Expr {
	p.expect(lexer.TokAt)
	tok, ok := p.expectIdentLike("decorator name")
	if !ok {
		return &ast.EIdentifier{Loc: loc(tok), Name: "_", Ref: ast.InvalidRef()}
	}
	var expr ast.Expr = &ast.EIdentifier{Loc: loc(tok), Name: tok.Value, Ref: ast.InvalidRef()}
	for p.current().Kind == lexer.TokDot {
		p.advance()
		if nameTok := p.current(); isNameLike(nameTok) {
			p.advance()
			expr = &ast.EDot{Loc: loc(nameTok), Target: expr, Name: nameTok.Value}
		} else {
			p.error("expected decorator member name")
			break
		}
	}
	if p.current().Kind == lexer.TokLParen {
		expr = &ast.ECall{Loc: loc(tok), Target: expr, Args: p.parseArgs()}
	}
	return expr
}

// ----------------------------------------------------------------------------
// Type-Only Declarations
// ----------------------------------------------------------------------------

// parseInterface parses an interface declaration. The body is skipped
// rather than modeled: the declaration is removed whole, and identifier
// references inside it never count as value references, so there is
// nothing to record.
func (p *Parser) parseInterface() ast.Stmt {
	start := p.advance() // interface
	stmt := &ast.SInterface{Loc: loc(start)}
	if tok, ok := p.expectIdentLike("interface name"); ok {
		stmt.Name = ast.NameBinding{
			Loc:  loc(tok),
			Name: tok.Value,
			Ref:  p.declareSymbol(tok.Value, ast.SymbolInterface, loc(tok)),
		}
	}

	// Skip type parameters and heritage clauses up to the body
	depth := 0
	for p.current().Kind != lexer.TokEOF {
		k := p.current().Kind
		if k == lexer.TokLBrace && depth == 0 {
			break
		}
		if k == lexer.TokLt || k == lexer.TokLParen {
			depth++
		}
		if k == lexer.TokGt || k == lexer.TokRParen {
			depth--
		}
		p.advance()
	}
	p.skipBalancedBraces()
	return stmt
}

// parseTypeAlias parses: type Name<...> = T;
func (p *Parser) parseTypeAlias() ast.Stmt {
	start := p.advance() // type
	stmt := &ast.STypeAlias{Loc: loc(start)}
	if tok, ok := p.expectIdentLike("type alias name"); ok {
		stmt.Name = ast.NameBinding{
			Loc:  loc(tok),
			Name: tok.Value,
			Ref:  p.declareSymbol(tok.Value, ast.SymbolTypeAlias, loc(tok)),
		}
	}
	if p.current().Kind == lexer.TokLt {
		p.parseTypeParams()
	}
	p.expect(lexer.TokEq)
	p.parseType()
	p.match(lexer.TokSemicolon)
	return stmt
}

// skipBalancedBraces consumes a { ... } block without modeling it.
func (p *Parser) skipBalancedBraces() {
	if _, ok := p.expect(lexer.TokLBrace); !ok {
		return
	}
	depth := 1
	for depth > 0 && p.current().Kind != lexer.TokEOF {
		switch p.current().Kind {
		case lexer.TokLBrace:
			depth++
		case lexer.TokRBrace:
			depth--
		}
		p.advance()
	}
}

// ----------------------------------------------------------------------------
// Enums
// ----------------------------------------------------------------------------

func (p *Parser) parseEnum(declare, isConst bool) ast.Stmt {
	start := p.advance() // enum
	stmt := &ast.SEnum{Loc: loc(start), Const: isConst, Declare: declare}
	if tok, ok := p.expectIdentLike("enum name"); ok {
		stmt.Name = ast.NameBinding{
			Loc:  loc(tok),
			Name: tok.Value,
			Ref:  p.declareSymbol(tok.Value, ast.SymbolEnum, loc(tok)),
		}
	}
	p.expect(lexer.TokLBrace)

	for p.current().Kind != lexer.TokRBrace && p.current().Kind != lexer.TokEOF {
		member := ast.EnumMember{Loc: loc(p.current())}
		tok := p.current()
		switch {
		case isNameLike(tok):
			p.advance()
			member.Name = tok.Value
		case tok.Kind == lexer.TokString:
			p.advance()
			member.Name = tok.Value[1 : len(tok.Value)-1]
			member.StringKey = true
		default:
			p.error("expected enum member name")
			p.advance()
			continue
		}
		if p.match(lexer.TokEq) {
			member.Init = p.parseAssign()
		}
		stmt.Members = append(stmt.Members, member)
		if !p.match(lexer.TokComma) {
			break
		}
	}
	p.expect(lexer.TokRBrace)
	return stmt
}

// ----------------------------------------------------------------------------
// Namespaces
// ----------------------------------------------------------------------------

func (p *Parser) parseNamespace(declare bool) ast.Stmt {
	start := p.advance() // namespace, module, or global
	stmt := &ast.SNamespace{Loc: loc(start), Declare: declare}

	if start.Value == "global" {
		stmt.Name = "global"
	} else {
		tok := p.current()
		switch {
		case isIdentLike(tok):
			p.advance()
			stmt.Name = tok.Value
			// Nested form: namespace A.B.C
			for p.match(lexer.TokDot) {
				if next, ok := p.expectIdentLike("namespace name"); ok {
					stmt.Name += "." + next.Value
				}
			}
		case tok.Kind == lexer.TokString:
			p.advance()
			stmt.Name = tok.Value[1 : len(tok.Value)-1]
			stmt.StringName = true
		default:
			p.error("expected namespace name")
		}
	}

	// declare module "name"; without a body
	if p.current().Kind != lexer.TokLBrace {
		p.match(lexer.TokSemicolon)
		return stmt
	}

	p.expect(lexer.TokLBrace)
	stmt.Scope = p.pushScope()
	for p.current().Kind != lexer.TokRBrace && p.current().Kind != lexer.TokEOF {
		before := p.pos
		s := p.parseModuleStmt()
		if s != nil {
			stmt.Stmts = append(stmt.Stmts, s)
		}
		if p.pos == before {
			p.advance()
		}
	}
	p.popScope()
	p.expect(lexer.TokRBrace)
	return stmt
}
