// Package printer outputs JavaScript code from an AST.
//
// The printer expects an AST that has already been stripped of type
// syntax: annotations are ignored, and any leftover cast node prints as
// its underlying expression. Literals keep their raw source text, so
// numbers, strings, and templates round-trip exactly.
package printer

import (
	"strings"

	"codeberg.org/saruga/stripts/internal/ast"
)

// Options controls printer output.
type Options struct {
	// MinifyWhitespace removes unnecessary whitespace
	MinifyWhitespace bool
}

// Printer outputs JavaScript code.
type Printer struct {
	options Options

	buf         strings.Builder
	indent      int
	atLineStart bool
}

// New creates a new printer.
func New(options Options) *Printer {
	return &Printer{options: options}
}

// Print outputs the program as a string.
func (p *Printer) Print(program *ast.Program) string {
	p.buf.Reset()
	p.atLineStart = false
	p.printStmts(program.Stmts)
	return p.buf.String()
}

// ----------------------------------------------------------------------------
// Output Helpers
// ----------------------------------------------------------------------------

// print writes s, emitting the pending indentation first when a newline
// was just printed. Indentation is deferred so closing braces and empty
// lines never carry trailing spaces.
func (p *Printer) print(s string) {
	if p.atLineStart && s != "" {
		for i := 0; i < p.indent; i++ {
			p.buf.WriteString("    ")
		}
		p.atLineStart = false
	}
	p.buf.WriteString(s)
}

func (p *Printer) printSpace() {
	if !p.options.MinifyWhitespace && !p.atLineStart {
		p.buf.WriteByte(' ')
	}
}

// printNewline is idempotent: consecutive calls produce a single newline.
func (p *Printer) printNewline() {
	if !p.options.MinifyWhitespace && !p.atLineStart {
		p.buf.WriteByte('\n')
		p.atLineStart = true
	}
}

func (p *Printer) printSemicolon() {
	p.print(";")
	p.printNewline()
}

// ----------------------------------------------------------------------------
// Statements
// ----------------------------------------------------------------------------

func (p *Printer) printStmts(stmts []ast.Stmt) {
	for _, stmt := range stmts {
		p.printStmt(stmt)
	}
}

func (p *Printer) printStmt(stmt ast.Stmt) {
	switch s := stmt.(type) {
	case *ast.SImport:
		p.printImport(s)

	case *ast.SExportNamed:
		p.printExportNamed(s)

	case *ast.SExportDefault:
		p.print("export default ")
		if s.Decl != nil {
			p.printStmt(s.Decl)
		} else {
			p.printExpr(s.Value)
			p.printSemicolon()
		}

	case *ast.SVar:
		p.printVar(s)
		p.printSemicolon()

	case *ast.SFunction:
		if s.Fn.IsAsync {
			p.print("async ")
		}
		p.print("function")
		if s.Fn.IsGenerator {
			p.print("*")
		}
		p.print(" ")
		p.print(s.Name.Name)
		p.printParams(s.Fn.Params)
		p.printSpace()
		p.printBlock(s.Fn.Body)
		p.printNewline()

	case *ast.SClass:
		p.printClass(s.Class)
		p.printNewline()

	case *ast.SBlock:
		p.printBlock(s)
		p.printNewline()

	case *ast.SExpr:
		p.printExpr(s.Expr)
		p.printSemicolon()

	case *ast.SReturn:
		p.print("return")
		if s.Value != nil {
			p.print(" ")
			p.printExpr(s.Value)
		}
		p.printSemicolon()

	case *ast.SThrow:
		p.print("throw ")
		p.printExpr(s.Value)
		p.printSemicolon()

	case *ast.SIf:
		p.printIf(s)
		p.printNewline()

	case *ast.SWhile:
		p.print("while")
		p.printSpace()
		p.print("(")
		p.printExpr(s.Condition)
		p.print(")")
		p.printSpace()
		p.printNestedStmt(s.Body)
		p.printNewline()

	case *ast.SDoWhile:
		p.print("do ")
		p.printNestedStmt(s.Body)
		p.printSpace()
		p.print("while")
		p.printSpace()
		p.print("(")
		p.printExpr(s.Condition)
		p.print(")")
		p.printSemicolon()

	case *ast.SFor:
		p.print("for")
		p.printSpace()
		p.print("(")
		if s.Init != nil {
			p.printForInit(s.Init)
		}
		p.print(";")
		if s.Condition != nil {
			p.printSpace()
			p.printExpr(s.Condition)
		}
		p.print(";")
		if s.Update != nil {
			p.printSpace()
			p.printExpr(s.Update)
		}
		p.print(")")
		p.printSpace()
		p.printNestedStmt(s.Body)
		p.printNewline()

	case *ast.SForInOf:
		p.print("for")
		p.printSpace()
		p.print("(")
		p.printForInit(s.Init)
		if s.IsOf {
			p.print(" of ")
		} else {
			p.print(" in ")
		}
		p.printExpr(s.Value)
		p.print(")")
		p.printSpace()
		p.printNestedStmt(s.Body)
		p.printNewline()

	case *ast.SSwitch:
		p.printSwitch(s)
		p.printNewline()

	case *ast.STry:
		p.printTry(s)
		p.printNewline()

	case *ast.SBreak:
		p.print("break")
		if s.Label != "" {
			p.print(" " + s.Label)
		}
		p.printSemicolon()

	case *ast.SContinue:
		p.print("continue")
		if s.Label != "" {
			p.print(" " + s.Label)
		}
		p.printSemicolon()

	case *ast.SEmpty:
		// Dropped from output
	}
}

// printNestedStmt prints a loop or branch body. Blocks stay inline with
// the header; other statements are printed as-is.
func (p *Printer) printNestedStmt(stmt ast.Stmt) {
	if block, ok := stmt.(*ast.SBlock); ok {
		p.printBlock(block)
		return
	}
	p.printStmt(stmt)
}

func (p *Printer) printIf(s *ast.SIf) {
	p.print("if")
	p.printSpace()
	p.print("(")
	p.printExpr(s.Condition)
	p.print(")")
	p.printSpace()
	p.printNestedStmt(s.Body)
	if s.Else != nil {
		p.print(" else ")
		if elseIf, ok := s.Else.(*ast.SIf); ok {
			p.printIf(elseIf)
			return
		}
		p.printNestedStmt(s.Else)
	}
}

func (p *Printer) printSwitch(s *ast.SSwitch) {
	p.print("switch")
	p.printSpace()
	p.print("(")
	p.printExpr(s.Test)
	p.print(")")
	p.printSpace()
	p.print("{")
	p.indent++
	for _, c := range s.Cases {
		p.printNewline()
		if c.Value != nil {
			p.print("case ")
			p.printExpr(c.Value)
			p.print(":")
		} else {
			p.print("default:")
		}
		p.indent++
		p.printNewline()
		for _, inner := range c.Body {
			p.printStmt(inner)
		}
		p.indent--
	}
	p.indent--
	p.printNewline()
	p.print("}")
}

func (p *Printer) printTry(s *ast.STry) {
	p.print("try")
	p.printSpace()
	p.printBlock(s.Body)
	if s.CatchBody != nil {
		p.print(" catch")
		if s.CatchBinding != nil {
			p.printSpace()
			p.print("(")
			p.printPattern(s.CatchBinding)
			p.print(")")
		}
		p.printSpace()
		p.printBlock(s.CatchBody)
	}
	if s.Finally != nil {
		p.print(" finally")
		p.printSpace()
		p.printBlock(s.Finally)
	}
}

func (p *Printer) printBlock(block *ast.SBlock) {
	if block == nil {
		p.print("{}")
		return
	}
	p.print("{")
	if len(block.Stmts) == 0 {
		p.print("}")
		return
	}
	p.indent++
	p.printNewline()
	p.printStmts(block.Stmts)
	p.indent--
	p.printNewline()
	p.print("}")
}

// ----------------------------------------------------------------------------
// Imports and Exports
// ----------------------------------------------------------------------------

func (p *Printer) printImport(s *ast.SImport) {
	p.print("import ")

	if !s.HasSpecifiers() {
		p.print(s.Path)
		p.printSemicolon()
		return
	}

	needsComma := false
	if s.DefaultName != nil {
		p.print(s.DefaultName.Name)
		needsComma = true
	}
	if s.NamespaceRef != nil {
		if needsComma {
			p.print(",")
			p.printSpace()
		}
		p.print("* as ")
		p.print(s.NamespaceRef.Name)
		needsComma = true
	}
	if len(s.Items) > 0 {
		if needsComma {
			p.print(",")
			p.printSpace()
		}
		p.print("{")
		p.printSpace()
		for i, item := range s.Items {
			if i > 0 {
				p.print(",")
				p.printSpace()
			}
			p.print(item.Name)
			if item.Local.Name != item.Name {
				p.print(" as ")
				p.print(item.Local.Name)
			}
		}
		p.printSpace()
		p.print("}")
	}

	p.print(" from ")
	p.print(s.Path)
	p.printSemicolon()
}

func (p *Printer) printExportNamed(s *ast.SExportNamed) {
	if s.Decl != nil {
		p.print("export ")
		p.printStmt(s.Decl)
		return
	}

	if s.Star {
		p.print("export *")
		if s.StarName != "" {
			p.print(" as ")
			p.print(s.StarName)
		}
		p.print(" from ")
		p.print(s.From)
		p.printSemicolon()
		return
	}

	p.print("export")
	p.printSpace()
	p.print("{")
	p.printSpace()
	for i, item := range s.Items {
		if i > 0 {
			p.print(",")
			p.printSpace()
		}
		p.print(item.Local)
		if item.Exported != item.Local {
			p.print(" as ")
			p.print(item.Exported)
		}
	}
	p.printSpace()
	p.print("}")
	if s.From != "" {
		p.print(" from ")
		p.print(s.From)
	}
	p.printSemicolon()
}

// ----------------------------------------------------------------------------
// Declarations
// ----------------------------------------------------------------------------

// printVar prints a variable declaration without the trailing semicolon
// so for-loop heads can reuse it.
func (p *Printer) printVar(s *ast.SVar) {
	p.print(s.Kind.String())
	p.print(" ")
	for i, decl := range s.Decls {
		if i > 0 {
			p.print(",")
			p.printSpace()
		}
		p.printPattern(decl.Binding)
		if decl.Init != nil {
			p.printSpace()
			p.print("=")
			p.printSpace()
			p.printExpr(decl.Init)
		}
	}
}

func (p *Printer) printForInit(stmt ast.Stmt) {
	switch s := stmt.(type) {
	case *ast.SVar:
		p.printVar(s)
	case *ast.SExpr:
		p.printExpr(s.Expr)
	}
}

func (p *Printer) printClass(class *ast.Class) {
	for _, dec := range class.Decorators {
		p.print("@")
		p.printExpr(dec)
		p.printNewline()
	}

	p.print("class")
	if class.Name.Name != "" {
		p.print(" ")
		p.print(class.Name.Name)
	}
	if class.Extends != nil {
		p.print(" extends ")
		p.printExpr(class.Extends)
	}
	p.printSpace()
	p.print("{")
	if len(class.Members) == 0 {
		p.print("}")
		return
	}
	p.indent++
	p.printNewline()
	for _, member := range class.Members {
		p.printClassMember(member)
	}
	p.indent--
	p.printNewline()
	p.print("}")
}

func (p *Printer) printClassMember(member ast.ClassMember) {
	switch m := member.(type) {
	case *ast.MethodMember:
		for _, dec := range m.Decorators {
			p.print("@")
			p.printExpr(dec)
			p.printNewline()
		}
		if m.Static {
			p.print("static ")
		}
		if m.Fn.IsAsync {
			p.print("async ")
		}
		if m.Fn.IsGenerator {
			p.print("*")
		}
		switch m.Kind {
		case ast.MethodGet:
			p.print("get ")
		case ast.MethodSet:
			p.print("set ")
		}
		p.printMemberKey(m.Key, m.Computed)
		p.printParams(m.Fn.Params)
		p.printSpace()
		p.printBlock(m.Fn.Body)
		p.printNewline()

	case *ast.PropertyMember:
		for _, dec := range m.Decorators {
			p.print("@")
			p.printExpr(dec)
			p.printNewline()
		}
		if m.Static {
			p.print("static ")
		}
		p.printMemberKey(m.Key, m.Computed)
		if m.Value != nil {
			p.printSpace()
			p.print("=")
			p.printSpace()
			p.printExpr(m.Value)
		}
		p.printSemicolon()
	}
}

func (p *Printer) printMemberKey(key ast.Expr, computed bool) {
	if computed {
		p.print("[")
		p.printExpr(key)
		p.print("]")
		return
	}
	p.printExpr(key)
}

// ----------------------------------------------------------------------------
// Parameters and Patterns
// ----------------------------------------------------------------------------

func (p *Printer) printParams(params []*ast.Param) {
	p.print("(")
	for i, param := range params {
		if i > 0 {
			p.print(",")
			p.printSpace()
		}
		p.printPattern(param.Binding)
		if param.Default != nil {
			p.printSpace()
			p.print("=")
			p.printSpace()
			p.printExpr(param.Default)
		}
	}
	p.print(")")
}

func (p *Printer) printPattern(pattern ast.Pattern) {
	switch b := pattern.(type) {
	case *ast.BIdentifier:
		p.print(b.Name)

	case *ast.BRest:
		p.print("...")
		p.printPattern(b.Value)

	case *ast.BArray:
		p.print("[")
		for i, item := range b.Items {
			if i > 0 {
				p.print(",")
				p.printSpace()
			}
			if item.Binding == nil {
				continue // hole
			}
			p.printPattern(item.Binding)
			if item.Default != nil {
				p.printSpace()
				p.print("=")
				p.printSpace()
				p.printExpr(item.Default)
			}
		}
		p.print("]")

	case *ast.BObject:
		p.print("{")
		p.printSpace()
		for i, prop := range b.Props {
			if i > 0 {
				p.print(",")
				p.printSpace()
			}
			if prop.IsRest {
				p.print("...")
				p.printPattern(prop.Value)
				continue
			}
			shorthand := false
			if ident, ok := prop.Value.(*ast.BIdentifier); ok && ident.Name == prop.Key {
				shorthand = true
			}
			if shorthand {
				p.printPattern(prop.Value)
			} else {
				p.print(prop.Key)
				p.print(":")
				p.printSpace()
				p.printPattern(prop.Value)
			}
			if prop.Default != nil {
				p.printSpace()
				p.print("=")
				p.printSpace()
				p.printExpr(prop.Default)
			}
		}
		p.printSpace()
		p.print("}")
	}
}

// ----------------------------------------------------------------------------
// Expressions
// ----------------------------------------------------------------------------

func (p *Printer) printExpr(expr ast.Expr) {
	switch e := expr.(type) {
	case *ast.EIdentifier:
		p.print(e.Name)

	case *ast.ENumber:
		p.print(e.Raw)

	case *ast.EString:
		p.print(e.Raw)

	case *ast.ETemplate:
		p.printTemplate(e)

	case *ast.EBool:
		if e.Value {
			p.print("true")
		} else {
			p.print("false")
		}

	case *ast.ENull:
		p.print("null")

	case *ast.EThis:
		p.print("this")

	case *ast.ESuper:
		p.print("super")

	case *ast.EArray:
		p.print("[")
		for i, item := range e.Items {
			if i > 0 {
				p.print(",")
				p.printSpace()
			}
			if item != nil {
				p.printExpr(item)
			}
		}
		p.print("]")

	case *ast.EObject:
		p.printObject(e)

	case *ast.EFunction:
		if e.Fn.IsAsync {
			p.print("async ")
		}
		p.print("function")
		if e.Fn.IsGenerator {
			p.print("*")
		}
		if e.Name.Name != "" {
			p.print(" ")
			p.print(e.Name.Name)
		}
		p.printParams(e.Fn.Params)
		p.printSpace()
		p.printBlock(e.Fn.Body)

	case *ast.EArrow:
		if e.Fn.IsAsync {
			p.print("async ")
		}
		p.printParams(e.Fn.Params)
		p.printSpace()
		p.print("=>")
		p.printSpace()
		if e.ExprBody != nil {
			// An object literal body needs parens to not read as a block
			if _, isObject := e.ExprBody.(*ast.EObject); isObject {
				p.print("(")
				p.printExpr(e.ExprBody)
				p.print(")")
			} else {
				p.printExpr(e.ExprBody)
			}
		} else {
			p.printBlock(e.Fn.Body)
		}

	case *ast.EClass:
		p.printClass(e.Class)

	case *ast.ECall:
		p.printExpr(e.Target)
		p.printArgs(e.Args)

	case *ast.ENew:
		p.print("new ")
		p.printExpr(e.Target)
		p.printArgs(e.Args)

	case *ast.ETaggedTemplate:
		p.printExpr(e.Tag)
		p.printTemplate(e.Template)

	case *ast.EDot:
		p.printExpr(e.Target)
		p.print(".")
		p.print(e.Name)

	case *ast.EIndex:
		p.printExpr(e.Target)
		p.print("[")
		p.printExpr(e.Index)
		p.print("]")

	case *ast.EBinary:
		p.printExpr(e.Left)
		op := e.Op.String()
		if op[0] >= 'a' && op[0] <= 'z' {
			// "in" and "instanceof" keep their spaces when minifying
			p.print(" ")
			p.print(op)
			p.print(" ")
		} else {
			p.printSpace()
			p.print(op)
			p.printSpace()
			if p.options.MinifyWhitespace && signClash(e.Op, e.Right) {
				p.print(" ")
			}
		}
		p.printExpr(e.Right)

	case *ast.EUnary:
		p.printUnary(e)

	case *ast.ECond:
		p.printExpr(e.Test)
		p.printSpace()
		p.print("?")
		p.printSpace()
		p.printExpr(e.Yes)
		p.printSpace()
		p.print(":")
		p.printSpace()
		p.printExpr(e.No)

	case *ast.ESpread:
		p.print("...")
		p.printExpr(e.Value)

	case *ast.EParen:
		p.print("(")
		p.printExpr(e.Expr)
		p.print(")")

	// Leftover cast nodes print as their underlying value
	case *ast.EAs:
		p.printExpr(e.Value)
	case *ast.ETypeAssertion:
		p.printExpr(e.Value)
	case *ast.ENonNull:
		p.printExpr(e.Value)

	case *ast.EJSXElement:
		p.printJSXElement(e)

	case *ast.EJSXFragment:
		p.print("<>")
		p.printJSXChildren(e.Children)
		p.print("</>")
	}
}

// printTemplate prints quasi text verbatim with substitution expressions
// reprinted in place.
func (p *Printer) printTemplate(e *ast.ETemplate) {
	p.print("`")
	for i, quasi := range e.Quasis {
		p.print(quasi)
		if i < len(e.Exprs) {
			p.print("${")
			p.printExpr(e.Exprs[i])
			p.print("}")
		}
	}
	p.print("`")
}

func (p *Printer) printArgs(args []ast.Expr) {
	p.print("(")
	for i, arg := range args {
		if i > 0 {
			p.print(",")
			p.printSpace()
		}
		p.printExpr(arg)
	}
	p.print(")")
}

func (p *Printer) printObject(e *ast.EObject) {
	if len(e.Props) == 0 {
		p.print("{}")
		return
	}
	p.print("{")
	p.printSpace()
	for i := range e.Props {
		prop := &e.Props[i]
		if i > 0 {
			p.print(",")
			p.printSpace()
		}
		switch prop.Kind {
		case ast.PropSpread:
			p.print("...")
			p.printExpr(prop.Value)

		case ast.PropShorthand:
			p.printExpr(prop.Key)

		case ast.PropMethod, ast.PropGet, ast.PropSet:
			fn := prop.Value.(*ast.EFunction)
			if fn.Fn.IsAsync {
				p.print("async ")
			}
			if fn.Fn.IsGenerator {
				p.print("*")
			}
			if prop.Kind == ast.PropGet {
				p.print("get ")
			}
			if prop.Kind == ast.PropSet {
				p.print("set ")
			}
			p.printMemberKey(prop.Key, prop.Computed)
			p.printParams(fn.Fn.Params)
			p.printSpace()
			p.printBlock(fn.Fn.Body)

		default:
			p.printMemberKey(prop.Key, prop.Computed)
			p.print(":")
			p.printSpace()
			p.printExpr(prop.Value)
		}
	}
	p.printSpace()
	p.print("}")
}

// signClash reports whether printing op directly against right would
// fuse into a different token, as in "a - -b" becoming "a--b".
func signClash(op ast.BinaryOp, right ast.Expr) bool {
	inner, ok := right.(*ast.EUnary)
	if !ok {
		return false
	}
	switch op {
	case ast.BinOpSub, ast.BinOpSubAssign:
		return inner.Op == ast.UnOpNeg || inner.Op == ast.UnOpPreDec
	case ast.BinOpAdd, ast.BinOpAddAssign:
		return inner.Op == ast.UnOpPos || inner.Op == ast.UnOpPreInc
	}
	return false
}

func (p *Printer) printUnary(e *ast.EUnary) {
	if e.Op.IsPostfix() {
		p.printExpr(e.Operand)
		p.print(e.Op.String())
		return
	}

	op := e.Op.String()
	p.print(op)
	switch e.Op {
	case ast.UnOpTypeof, ast.UnOpVoid, ast.UnOpDelete, ast.UnOpAwait:
		p.print(" ")
	case ast.UnOpNeg:
		// Avoid "--x" when negating a negative
		if inner, ok := e.Operand.(*ast.EUnary); ok &&
			(inner.Op == ast.UnOpNeg || inner.Op == ast.UnOpPreDec) {
			p.print(" ")
		}
	case ast.UnOpPos:
		if inner, ok := e.Operand.(*ast.EUnary); ok &&
			(inner.Op == ast.UnOpPos || inner.Op == ast.UnOpPreInc) {
			p.print(" ")
		}
	}
	p.printExpr(e.Operand)
}

// ----------------------------------------------------------------------------
// JSX
// ----------------------------------------------------------------------------

func (p *Printer) printJSXElement(e *ast.EJSXElement) {
	p.print("<")
	p.print(e.Name)
	for i := range e.Attrs {
		attr := &e.Attrs[i]
		p.print(" ")
		if attr.IsSpread {
			p.print("{...")
			p.printExpr(attr.Value)
			p.print("}")
			continue
		}
		p.print(attr.Name)
		if attr.Value != nil {
			p.print("=")
			if str, ok := attr.Value.(*ast.EString); ok {
				p.print(str.Raw)
			} else {
				p.print("{")
				p.printExpr(attr.Value)
				p.print("}")
			}
		}
	}
	if e.SelfClosing {
		p.print(" />")
		return
	}
	p.print(">")
	p.printJSXChildren(e.Children)
	p.print("</")
	p.print(e.Name)
	p.print(">")
}

func (p *Printer) printJSXChildren(children []ast.JSXChild) {
	for i := range children {
		child := &children[i]
		if child.Expr != nil {
			if _, isElem := child.Expr.(*ast.EJSXElement); isElem {
				p.printExpr(child.Expr)
			} else if _, isFrag := child.Expr.(*ast.EJSXFragment); isFrag {
				p.printExpr(child.Expr)
			} else {
				p.print("{")
				p.printExpr(child.Expr)
				p.print("}")
			}
			continue
		}
		p.print(child.Text)
	}
}
