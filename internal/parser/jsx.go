package parser

import (
	"strings"

	"codeberg.org/saruga/stripts/internal/ast"
	"codeberg.org/saruga/stripts/internal/lexer"
)

// ----------------------------------------------------------------------------
// JSX
//
// JSX children are recovered as raw source slices between token offsets,
// so text runs are limited to characters the lexer can scan. Expression
// containers and nested elements are parsed normally.
// ----------------------------------------------------------------------------

// parseJSX parses a JSX element or fragment starting at "<".
func (p *Parser) parseJSX() ast.Expr {
	p.hasJSX = true
	start := p.current()
	p.expect(lexer.TokLt)

	// Fragment: <>children</>
	if p.current().Kind == lexer.TokGt {
		p.advance()
		frag := &ast.EJSXFragment{Loc: loc(start)}
		frag.Children = p.parseJSXChildren("")
		return frag
	}

	elem := &ast.EJSXElement{Loc: loc(start), NameRef: ast.InvalidRef()}
	elem.Name = p.parseJSXName()

	if p.current().Kind == lexer.TokLt {
		s := p.save()
		args, ok := p.tryParseTypeArgs()
		if ok && p.clean(s) {
			elem.TypeArgs = args
		} else {
			p.restore(s)
		}
	}

	// Attributes
	for {
		tok := p.current()
		if tok.Kind == lexer.TokGt || tok.Kind == lexer.TokSlash ||
			tok.Kind == lexer.TokEOF {
			break
		}

		if tok.Kind == lexer.TokLBrace {
			// Spread attribute: {...expr}
			p.advance()
			p.expect(lexer.TokDotDotDot)
			attr := ast.JSXAttr{Loc: loc(tok), IsSpread: true, Value: p.parseAssign()}
			p.expect(lexer.TokRBrace)
			elem.Attrs = append(elem.Attrs, attr)
			continue
		}

		if !isNameLike(tok) {
			p.error("expected JSX attribute name")
			break
		}
		attr := ast.JSXAttr{Loc: loc(tok), Name: p.parseJSXAttrName()}

		if p.match(lexer.TokEq) {
			switch p.current().Kind {
			case lexer.TokString:
				strTok := p.advance()
				attr.Value = &ast.EString{Loc: loc(strTok), Raw: strTok.Value}
			case lexer.TokLBrace:
				p.advance()
				attr.Value = p.parseAssign()
				p.expect(lexer.TokRBrace)
			case lexer.TokLt:
				attr.Value = p.parseJSX()
			default:
				p.error("expected JSX attribute value")
			}
		}
		elem.Attrs = append(elem.Attrs, attr)
	}

	// Self-closing
	if p.current().Kind == lexer.TokSlash {
		p.advance()
		p.expect(lexer.TokGt)
		elem.SelfClosing = true
		return elem
	}

	p.expect(lexer.TokGt)
	elem.Children = p.parseJSXChildren(elem.Name)
	return elem
}

// parseJSXName parses a possibly-dotted element name: div, Foo, Foo.Bar.
func (p *Parser) parseJSXName() string {
	tok := p.current()
	if !isNameLike(tok) {
		p.error("expected JSX element name")
		return ""
	}
	p.advance()
	name := p.joinDashedName(tok)
	for p.current().Kind == lexer.TokDot {
		p.advance()
		if next := p.current(); isNameLike(next) {
			p.advance()
			name += "." + next.Value
		} else {
			p.error("expected JSX member name")
			break
		}
	}
	return name
}

// parseJSXAttrName parses an attribute name, joining dash-separated
// parts such as data-foo and aria-label.
func (p *Parser) parseJSXAttrName() string {
	tok := p.advance()
	return p.joinDashedName(tok)
}

// joinDashedName extends a name with -part suffixes when the tokens are
// contiguous in source.
func (p *Parser) joinDashedName(first lexer.Token) string {
	name := first.Value
	end := first.End
	for p.current().Kind == lexer.TokMinus && p.current().Start == end {
		minus := p.advance()
		next := p.current()
		if !isNameLike(next) || next.Start != minus.End {
			p.error("expected name after -")
			break
		}
		p.advance()
		name += "-" + next.Value
		end = next.End
	}
	return name
}

// parseJSXChildren parses children up to the matching closing tag. The
// closingName is empty for fragments.
func (p *Parser) parseJSXChildren(closingName string) []ast.JSXChild {
	var children []ast.JSXChild
	textStart := 0
	if p.pos > 0 {
		textStart = p.tokens[p.pos-1].End
	}

	flush := func(end int) {
		text := strings.TrimSpace(p.source[textStart:end])
		if text != "" {
			children = append(children, ast.JSXChild{
				Loc:  ast.Loc{Start: int32(textStart)},
				Text: p.source[textStart:end],
			})
		}
	}

	for {
		tok := p.current()
		switch tok.Kind {
		case lexer.TokEOF, lexer.TokError:
			p.error("unterminated JSX element")
			return children

		case lexer.TokLt:
			flush(tok.Start)
			if p.peek(1).Kind == lexer.TokSlash {
				// Closing tag
				p.advance() // <
				p.advance() // /
				if closingName != "" {
					got := p.parseJSXName()
					if got != closingName {
						p.errorAt(tok.Start, "mismatched JSX closing tag: expected </"+closingName+">, got </"+got+">")
					}
				}
				p.expect(lexer.TokGt)
				return children
			}
			// Nested element
			child := p.parseJSX()
			children = append(children, ast.JSXChild{Loc: loc(tok), Expr: child})
			textStart = p.tokens[p.pos-1].End

		case lexer.TokLBrace:
			flush(tok.Start)
			p.advance()
			if p.current().Kind == lexer.TokRBrace {
				// Empty container: {}
				p.advance()
			} else {
				expr := p.parseAssign()
				children = append(children, ast.JSXChild{Loc: loc(tok), Expr: expr})
				p.expect(lexer.TokRBrace)
			}
			textStart = p.tokens[p.pos-1].End

		default:
			// Part of a text run
			p.advance()
		}
	}
}
