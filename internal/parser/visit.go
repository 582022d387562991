package parser

import (
	"strings"

	"codeberg.org/saruga/stripts/internal/ast"
)

// ----------------------------------------------------------------------------
// Pass 2: Visit - Bind identifiers and record reference sites
// ----------------------------------------------------------------------------

func (p *Parser) visitProgram(program *ast.Program) {
	p.visitScope = program.Scope
	for _, stmt := range program.Stmts {
		p.visitStmt(stmt)
	}
}

func (p *Parser) enterScope(s *ast.Scope) *ast.Scope {
	prev := p.visitScope
	if s != nil {
		p.visitScope = s
	}
	return prev
}

func (p *Parser) leaveScope(prev *ast.Scope) {
	p.visitScope = prev
}

// resolve looks a name up through the current scope chain.
func (p *Parser) resolve(name string) (ast.Ref, bool) {
	if p.visitScope == nil {
		return ast.InvalidRef(), false
	}
	return p.visitScope.Lookup(name)
}

// recordRef records one reference site on the named symbol, if the name
// resolves. Returns the resolved ref for the caller to store.
func (p *Parser) recordRef(name string, l ast.Loc, inTypePosition bool) ast.Ref {
	ref, ok := p.resolve(name)
	if !ok || int(ref.InnerIndex) >= len(p.symbols) {
		return ast.InvalidRef()
	}
	sym := &p.symbols[ref.InnerIndex]
	sym.Refs = append(sym.Refs, ast.RefSite{Loc: l, InTypePosition: inTypePosition})
	return ref
}

// ----------------------------------------------------------------------------
// Statements
// ----------------------------------------------------------------------------

func (p *Parser) visitStmt(stmt ast.Stmt) {
	switch s := stmt.(type) {
	case *ast.SImport, *ast.SImportEquals, *ast.SInterface, *ast.STypeAlias, *ast.SEmpty:
		// Nothing to bind

	case *ast.SExportNamed:
		if s.Decl != nil {
			p.visitStmt(s.Decl)
			return
		}
		// Local re-exports keep their bindings alive as values. Specifier
		// lists with a From clause reference the other module, not local
		// symbols.
		if s.From == "" && !s.TypeOnly {
			for _, item := range s.Items {
				p.recordRef(item.Local, s.Loc, false)
			}
		}

	case *ast.SExportDefault:
		if s.Decl != nil {
			p.visitStmt(s.Decl)
		}
		if s.Value != nil {
			p.visitExpr(s.Value)
		}

	case *ast.SExportEquals:
		p.visitExpr(s.Value)

	case *ast.SVar:
		for _, decl := range s.Decls {
			p.visitPattern(decl.Binding)
			if decl.Init != nil {
				p.visitExpr(decl.Init)
			}
		}

	case *ast.SFunction:
		p.visitFn(s.Fn)

	case *ast.SClass:
		p.visitClass(s.Class)

	case *ast.SEnum:
		for i := range s.Members {
			if s.Members[i].Init != nil {
				p.visitExpr(s.Members[i].Init)
			}
		}

	case *ast.SNamespace:
		prev := p.enterScope(s.Scope)
		for _, inner := range s.Stmts {
			p.visitStmt(inner)
		}
		p.leaveScope(prev)

	case *ast.SBlock:
		prev := p.enterScope(s.Scope)
		for _, inner := range s.Stmts {
			p.visitStmt(inner)
		}
		p.leaveScope(prev)

	case *ast.SExpr:
		p.visitExpr(s.Expr)

	case *ast.SReturn:
		if s.Value != nil {
			p.visitExpr(s.Value)
		}

	case *ast.SThrow:
		p.visitExpr(s.Value)

	case *ast.SIf:
		p.visitExpr(s.Condition)
		p.visitStmt(s.Body)
		if s.Else != nil {
			p.visitStmt(s.Else)
		}

	case *ast.SWhile:
		p.visitExpr(s.Condition)
		p.visitStmt(s.Body)

	case *ast.SDoWhile:
		p.visitStmt(s.Body)
		p.visitExpr(s.Condition)

	case *ast.SFor:
		if s.Init != nil {
			p.visitStmt(s.Init)
		}
		if s.Condition != nil {
			p.visitExpr(s.Condition)
		}
		if s.Update != nil {
			p.visitExpr(s.Update)
		}
		p.visitStmt(s.Body)

	case *ast.SForInOf:
		if s.Init != nil {
			p.visitStmt(s.Init)
		}
		p.visitExpr(s.Value)
		p.visitStmt(s.Body)

	case *ast.SSwitch:
		p.visitExpr(s.Test)
		for _, c := range s.Cases {
			if c.Value != nil {
				p.visitExpr(c.Value)
			}
			for _, inner := range c.Body {
				p.visitStmt(inner)
			}
		}

	case *ast.STry:
		p.visitStmt(s.Body)
		if s.CatchBody != nil {
			p.visitStmt(s.CatchBody)
		}
		if s.Finally != nil {
			p.visitStmt(s.Finally)
		}
	}
}

// ----------------------------------------------------------------------------
// Expressions
// ----------------------------------------------------------------------------

func (p *Parser) visitExpr(expr ast.Expr) {
	switch e := expr.(type) {
	case *ast.EIdentifier:
		e.Ref = p.recordRef(e.Name, e.Loc, false)

	case *ast.ETemplate:
		for _, sub := range e.Exprs {
			p.visitExpr(sub)
		}

	case *ast.EArray:
		for _, item := range e.Items {
			if item != nil {
				p.visitExpr(item)
			}
		}

	case *ast.EObject:
		for i := range e.Props {
			prop := &e.Props[i]
			if prop.Computed && prop.Key != nil {
				p.visitExpr(prop.Key)
			}
			if prop.Value != nil {
				p.visitExpr(prop.Value)
			}
		}

	case *ast.EFunction:
		p.visitFn(e.Fn)

	case *ast.EArrow:
		prev := p.enterScope(e.Fn.Scope)
		p.visitFnInner(e.Fn)
		if e.ExprBody != nil {
			p.visitExpr(e.ExprBody)
		}
		p.leaveScope(prev)

	case *ast.EClass:
		p.visitClass(e.Class)

	case *ast.ECall:
		p.visitExpr(e.Target)
		for _, t := range e.TypeArgs {
			p.visitType(t)
		}
		for _, arg := range e.Args {
			p.visitExpr(arg)
		}

	case *ast.ENew:
		p.visitExpr(e.Target)
		for _, t := range e.TypeArgs {
			p.visitType(t)
		}
		for _, arg := range e.Args {
			p.visitExpr(arg)
		}

	case *ast.ETaggedTemplate:
		p.visitExpr(e.Tag)
		for _, t := range e.TypeArgs {
			p.visitType(t)
		}
		if e.Template != nil {
			for _, sub := range e.Template.Exprs {
				p.visitExpr(sub)
			}
		}

	case *ast.EDot:
		p.visitExpr(e.Target)

	case *ast.EIndex:
		p.visitExpr(e.Target)
		p.visitExpr(e.Index)

	case *ast.EBinary:
		p.visitExpr(e.Left)
		p.visitExpr(e.Right)

	case *ast.EUnary:
		p.visitExpr(e.Operand)

	case *ast.ECond:
		p.visitExpr(e.Test)
		p.visitExpr(e.Yes)
		p.visitExpr(e.No)

	case *ast.ESpread:
		p.visitExpr(e.Value)

	case *ast.EParen:
		p.visitExpr(e.Expr)

	case *ast.EAs:
		p.visitExpr(e.Value)
		p.visitType(e.Type)

	case *ast.ETypeAssertion:
		p.visitType(e.Type)
		p.visitExpr(e.Value)

	case *ast.ENonNull:
		p.visitExpr(e.Value)

	case *ast.EJSXElement:
		p.visitJSXElement(e)

	case *ast.EJSXFragment:
		for i := range e.Children {
			if e.Children[i].Expr != nil {
				p.visitExpr(e.Children[i].Expr)
			}
		}
	}
}

// visitJSXElement binds the element name when it refers to a component
// value. Lowercase names are intrinsic elements and reference nothing.
func (p *Parser) visitJSXElement(e *ast.EJSXElement) {
	head := e.Name
	if i := strings.IndexByte(head, '.'); i >= 0 {
		head = head[:i]
	}
	if head != "" && (head[0] >= 'A' && head[0] <= 'Z') {
		e.NameRef = p.recordRef(head, e.Loc, false)
	}

	for _, t := range e.TypeArgs {
		p.visitType(t)
	}
	for i := range e.Attrs {
		if e.Attrs[i].Value != nil {
			p.visitExpr(e.Attrs[i].Value)
		}
	}
	for i := range e.Children {
		if e.Children[i].Expr != nil {
			p.visitExpr(e.Children[i].Expr)
		}
	}
}

// ----------------------------------------------------------------------------
// Functions and Classes
// ----------------------------------------------------------------------------

func (p *Parser) visitFn(fn *ast.Fn) {
	if fn == nil {
		return
	}
	prev := p.enterScope(fn.Scope)
	p.visitFnInner(fn)
	p.leaveScope(prev)
}

// visitFnInner visits everything inside an already-entered fn scope.
func (p *Parser) visitFnInner(fn *ast.Fn) {
	for _, tp := range fn.TypeParams {
		if tp.Constraint != nil {
			p.visitType(tp.Constraint)
		}
		if tp.Default != nil {
			p.visitType(tp.Default)
		}
	}
	for _, param := range fn.Params {
		p.visitPattern(param.Binding)
		if param.Default != nil {
			p.visitExpr(param.Default)
		}
	}
	if fn.ReturnType != nil {
		p.visitType(fn.ReturnType)
	}
	if fn.Body != nil {
		p.visitStmt(fn.Body)
	}
}

// visitPattern visits type annotations and default values inside a
// binding pattern. The bound identifiers themselves were declared during
// the parse pass.
func (p *Parser) visitPattern(pattern ast.Pattern) {
	switch b := pattern.(type) {
	case *ast.BIdentifier:
		if b.Type != nil {
			p.visitType(b.Type)
		}
	case *ast.BRest:
		p.visitPattern(b.Value)
		if b.Type != nil {
			p.visitType(b.Type)
		}
	case *ast.BArray:
		for _, item := range b.Items {
			if item.Binding != nil {
				p.visitPattern(item.Binding)
			}
			if item.Default != nil {
				p.visitExpr(item.Default)
			}
		}
		if b.Type != nil {
			p.visitType(b.Type)
		}
	case *ast.BObject:
		for _, prop := range b.Props {
			if prop.Value != nil {
				p.visitPattern(prop.Value)
			}
			if prop.Default != nil {
				p.visitExpr(prop.Default)
			}
		}
		if b.Type != nil {
			p.visitType(b.Type)
		}
	}
}

func (p *Parser) visitClass(class *ast.Class) {
	if class == nil {
		return
	}
	for _, dec := range class.Decorators {
		p.visitExpr(dec)
	}
	for _, tp := range class.TypeParams {
		if tp.Constraint != nil {
			p.visitType(tp.Constraint)
		}
		if tp.Default != nil {
			p.visitType(tp.Default)
		}
	}
	if class.Extends != nil {
		p.visitExpr(class.Extends)
	}
	for _, t := range class.ExtendsTypeArgs {
		p.visitType(t)
	}
	for _, t := range class.Implements {
		p.visitType(t)
	}
	for _, member := range class.Members {
		switch m := member.(type) {
		case *ast.MethodMember:
			for _, dec := range m.Decorators {
				p.visitExpr(dec)
			}
			if m.Computed && m.Key != nil {
				p.visitExpr(m.Key)
			}
			p.visitFn(m.Fn)
		case *ast.PropertyMember:
			for _, dec := range m.Decorators {
				p.visitExpr(dec)
			}
			if m.Computed && m.Key != nil {
				p.visitExpr(m.Key)
			}
			if m.Type != nil {
				p.visitType(m.Type)
			}
			if m.Value != nil {
				p.visitExpr(m.Value)
			}
		}
	}
}

// ----------------------------------------------------------------------------
// Types
// ----------------------------------------------------------------------------

// visitType records type-position references for the head identifier of
// every type reference and type query.
func (p *Parser) visitType(t ast.TypeAnnotation) {
	switch tt := t.(type) {
	case *ast.TRef:
		if len(tt.Parts) > 0 {
			tt.HeadRef = p.recordRef(tt.Parts[0], tt.Loc, true)
		}
		for _, arg := range tt.TypeArgs {
			p.visitType(arg)
		}

	case *ast.TQuery:
		// A typeof query names a value, but the reference still sits in
		// a type position and erases with the annotation around it.
		if len(tt.Parts) > 0 {
			tt.HeadRef = p.recordRef(tt.Parts[0], tt.Loc, true)
		}

	case *ast.TFunc:
		for _, tp := range tt.TypeParams {
			if tp.Constraint != nil {
				p.visitType(tp.Constraint)
			}
			if tp.Default != nil {
				p.visitType(tp.Default)
			}
		}
		for _, param := range tt.Params {
			p.visitType(param)
		}
		if tt.Return != nil {
			p.visitType(tt.Return)
		}

	case *ast.TObject:
		for _, prop := range tt.Props {
			if prop.Type != nil {
				p.visitType(prop.Type)
			}
		}

	case *ast.TComposite:
		for _, inner := range tt.Types {
			p.visitType(inner)
		}

	case *ast.TArray:
		p.visitType(tt.Elem)

	case *ast.TTuple:
		for _, elem := range tt.Elems {
			p.visitType(elem)
		}
	}
}
