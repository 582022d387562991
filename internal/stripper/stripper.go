// Package stripper implements the type-erasure transform: it takes a
// parsed tree of the TypeScript superset and rewrites it in place so
// that only plain JavaScript constructs remain.
//
// Three kinds of work happen during the single depth-first walk:
//
//   - type-only declarations (interfaces, type aliases, ambient forms)
//     are deleted outright,
//   - value-carrying nodes have their type decoration cleared
//     (annotations, type parameters, casts, modifiers),
//   - constructs whose erasure is not a deletion are re-expressed as
//     runtime code (enums, constructor parameter properties).
//
// Before the walk descends into any statement, two whole-program passes
// run over the original top-level statement list: the classifier
// collects the names of type-only declarations, and the elider removes
// import and export statements that only carry type information. Both
// need the complete list before any single statement can be decided.
package stripper

import (
	"regexp"

	"codeberg.org/saruga/stripts/internal/ast"
	"codeberg.org/saruga/stripts/internal/diagnostic"
	"codeberg.org/saruga/stripts/internal/parser"
	"codeberg.org/saruga/stripts/internal/printer"
)

// Options configures a transform.
type Options struct {
	// JSX enables JSX parsing; without it, < in expression position
	// starts an old-style type assertion.
	JSX bool

	// JSXPragma is the identifier JSX syntax implicitly references as a
	// value. Defaults to "React". A @jsx comment in the file overrides
	// it (last match wins).
	JSXPragma string
}

// Stats summarizes what one transform did.
type Stats struct {
	OriginalSize      int
	OutputSize        int
	RemovedImports    int
	LoweredParamProps int
	CompiledEnums     int
}

// Result holds the output of a source-to-source transform.
type Result struct {
	Code  string
	Stats Stats
}

// Stripper transforms TypeScript source into plain JavaScript. A single
// Stripper may be reused across files; every file gets independent
// transform state.
type Stripper struct {
	options Options
}

// New creates a stripper.
func New(options Options) *Stripper {
	if options.JSXPragma == "" {
		options.JSXPragma = "React"
	}
	return &Stripper{options: options}
}

// Strip parses source, erases its type syntax, and prints the result.
func (s *Stripper) Strip(source string) (Result, error) {
	p := parser.New(source, parser.Options{JSX: s.options.JSX})
	program, parseErrs := p.Parse()
	if len(parseErrs) > 0 {
		dl := diagnostic.NewDiagnosticList(source)
		for _, e := range parseErrs {
			dl.AddErrorWithCode(e.Pos, diagnostic.CodeUnexpectedToken, e.Message)
		}
		first := dl.Errors()[0]
		return Result{}, &first
	}

	stats := Stats{OriginalSize: len(source)}
	if err := s.stripProgram(program, &stats); err != nil {
		return Result{}, err
	}

	code := printer.New(printer.Options{}).Print(program)
	stats.OutputSize = len(code)
	return Result{Code: code, Stats: stats}, nil
}

// StripProgram erases type syntax from an already-parsed tree, mutating
// it in place.
func (s *Stripper) StripProgram(program *ast.Program) error {
	var stats Stats
	return s.stripProgram(program, &stats)
}

func (s *Stripper) stripProgram(program *ast.Program, stats *Stats) error {
	st := &fileState{
		program:  program,
		diags:    diagnostic.NewDiagnosticList(program.Source),
		typeOnly: classify(program.Stmts),
		pragma:   scanPragma(program.Comments, s.options.JSXPragma),
		visited:  make(map[*ast.Param]struct{}),
		stats:    stats,
	}

	st.elide()

	out, err := st.stripStmts(program.Stmts)
	if err != nil {
		return err
	}
	program.Stmts = out
	return nil
}

// fileState is the per-file transform state. It is created at Program
// entry, mutated only by this file's transform, and discarded after.
type fileState struct {
	program *ast.Program
	diags   *diagnostic.DiagnosticList

	// Top-level names with no runtime value, computed once from the
	// original statement list before any deletion happens.
	typeOnly map[string]struct{}

	// Active JSX pragma identifier for this file.
	pragma string

	// Constructor parameters already lowered to field assignments,
	// keyed by node identity so repeated traversal stays idempotent.
	visited map[*ast.Param]struct{}

	stats *Stats
}

// unsupported records a fatal diagnostic and returns it as the error
// that aborts the current file's transform.
func (st *fileState) unsupported(loc ast.Loc, code diagnostic.DiagnosticCode, message, rewrite string) error {
	st.diags.AddUnsupported(int(loc.Start), code, message, rewrite)
	errs := st.diags.Errors()
	d := errs[len(errs)-1]
	return &d
}

var jsxPragmaPattern = regexp.MustCompile(`@jsx\s+([A-Za-z_$][A-Za-z0-9_$]*)`)

// scanPragma finds the active JSX pragma: the last @jsx comment
// annotation in the file, or the configured default.
func scanPragma(comments []ast.Comment, fallback string) string {
	pragma := fallback
	for _, c := range comments {
		if m := jsxPragmaPattern.FindStringSubmatch(c.Text); m != nil {
			pragma = m[1]
		}
	}
	return pragma
}

// ----------------------------------------------------------------------------
// Statement Rules
// ----------------------------------------------------------------------------

func (st *fileState) stripStmts(stmts []ast.Stmt) ([]ast.Stmt, error) {
	out := make([]ast.Stmt, 0, len(stmts))
	for _, stmt := range stmts {
		repl, err := st.stripStmt(stmt)
		if err != nil {
			return nil, err
		}
		out = append(out, repl...)
	}
	return out, nil
}

// stripStmt applies the per-kind erasure rule. It returns the
// statement's replacement: empty for deletion, one statement for the
// common mutate-in-place case, two for enum expansion.
func (st *fileState) stripStmt(stmt ast.Stmt) ([]ast.Stmt, error) {
	switch s := stmt.(type) {
	case *ast.SImportEquals:
		return nil, st.unsupported(s.Loc, diagnostic.CodeImportEquals,
			"`import "+s.Name.Name+" = require(...)` is not supported",
			"import "+s.Name.Name+" from "+s.Path+";")

	case *ast.SExportEquals:
		return nil, st.unsupported(s.Loc, diagnostic.CodeExportAssignment,
			"`export =` is not supported",
			"export default <expression>;")

	case *ast.SNamespace:
		// Ambient namespaces and string-named module augmentations are
		// type-only; any other namespace would need runtime code.
		if s.Declare || s.StringName {
			return nil, nil
		}
		return nil, st.unsupported(s.Loc, diagnostic.CodeNamespaceValue,
			"namespace \""+s.Name+"\" has runtime meaning and cannot be erased",
			"const "+s.Name+" = { /* members */ };")

	case *ast.SInterface:
		return nil, nil

	case *ast.STypeAlias:
		return nil, nil

	case *ast.SImport:
		// Elision already happened in the whole-program pass
		return []ast.Stmt{s}, nil

	case *ast.SExportNamed:
		if s.Decl == nil {
			return []ast.Stmt{s}, nil
		}
		inner, err := st.stripStmt(s.Decl)
		if err != nil {
			return nil, err
		}
		if len(inner) == 0 {
			return nil, nil
		}
		s.Decl = inner[0]
		return append([]ast.Stmt{s}, inner[1:]...), nil

	case *ast.SExportDefault:
		if s.Decl != nil {
			inner, err := st.stripStmt(s.Decl)
			if err != nil {
				return nil, err
			}
			if len(inner) == 0 {
				return nil, nil
			}
			s.Decl = inner[0]
			return []ast.Stmt{s}, nil
		}
		value, err := st.stripExpr(s.Value)
		if err != nil {
			return nil, err
		}
		s.Value = value
		return []ast.Stmt{s}, nil

	case *ast.SVar:
		if s.Declare {
			return nil, nil
		}
		for _, decl := range s.Decls {
			decl.Definite = false
			if err := st.stripPattern(decl.Binding); err != nil {
				return nil, err
			}
			init, err := st.stripExpr(decl.Init)
			if err != nil {
				return nil, err
			}
			decl.Init = init
		}
		return []ast.Stmt{s}, nil

	case *ast.SFunction:
		// A body-less declaration is an overload signature or a
		// "declare function" form, both type-only
		if s.Declare || s.Fn.Body == nil {
			return nil, nil
		}
		if err := st.stripFn(s.Fn); err != nil {
			return nil, err
		}
		return []ast.Stmt{s}, nil

	case *ast.SClass:
		if s.Declare {
			return nil, nil
		}
		if err := st.stripClass(s.Class); err != nil {
			return nil, err
		}
		return []ast.Stmt{s}, nil

	case *ast.SEnum:
		if s.Declare {
			return nil, nil
		}
		repl, err := st.compileEnum(s)
		if err != nil {
			return nil, err
		}
		st.stats.CompiledEnums++
		return repl, nil

	case *ast.SBlock:
		body, err := st.stripStmts(s.Stmts)
		if err != nil {
			return nil, err
		}
		s.Stmts = body
		return []ast.Stmt{s}, nil

	case *ast.SExpr:
		expr, err := st.stripExpr(s.Expr)
		if err != nil {
			return nil, err
		}
		s.Expr = expr
		return []ast.Stmt{s}, nil

	case *ast.SReturn:
		value, err := st.stripExpr(s.Value)
		if err != nil {
			return nil, err
		}
		s.Value = value
		return []ast.Stmt{s}, nil

	case *ast.SThrow:
		value, err := st.stripExpr(s.Value)
		if err != nil {
			return nil, err
		}
		s.Value = value
		return []ast.Stmt{s}, nil

	case *ast.SIf:
		cond, err := st.stripExpr(s.Condition)
		if err != nil {
			return nil, err
		}
		s.Condition = cond
		if s.Body, err = st.stripSub(s.Body); err != nil {
			return nil, err
		}
		if s.Else != nil {
			if s.Else, err = st.stripSub(s.Else); err != nil {
				return nil, err
			}
		}
		return []ast.Stmt{s}, nil

	case *ast.SWhile:
		cond, err := st.stripExpr(s.Condition)
		if err != nil {
			return nil, err
		}
		s.Condition = cond
		if s.Body, err = st.stripSub(s.Body); err != nil {
			return nil, err
		}
		return []ast.Stmt{s}, nil

	case *ast.SDoWhile:
		cond, err := st.stripExpr(s.Condition)
		if err != nil {
			return nil, err
		}
		s.Condition = cond
		if s.Body, err = st.stripSub(s.Body); err != nil {
			return nil, err
		}
		return []ast.Stmt{s}, nil

	case *ast.SFor:
		var err error
		if s.Init != nil {
			if s.Init, err = st.stripSub(s.Init); err != nil {
				return nil, err
			}
		}
		if s.Condition, err = st.stripExpr(s.Condition); err != nil {
			return nil, err
		}
		if s.Update, err = st.stripExpr(s.Update); err != nil {
			return nil, err
		}
		if s.Body, err = st.stripSub(s.Body); err != nil {
			return nil, err
		}
		return []ast.Stmt{s}, nil

	case *ast.SForInOf:
		var err error
		if s.Init, err = st.stripSub(s.Init); err != nil {
			return nil, err
		}
		if s.Value, err = st.stripExpr(s.Value); err != nil {
			return nil, err
		}
		if s.Body, err = st.stripSub(s.Body); err != nil {
			return nil, err
		}
		return []ast.Stmt{s}, nil

	case *ast.SSwitch:
		test, err := st.stripExpr(s.Test)
		if err != nil {
			return nil, err
		}
		s.Test = test
		for i := range s.Cases {
			c := &s.Cases[i]
			if c.Value, err = st.stripExpr(c.Value); err != nil {
				return nil, err
			}
			if c.Body, err = st.stripStmts(c.Body); err != nil {
				return nil, err
			}
		}
		return []ast.Stmt{s}, nil

	case *ast.STry:
		body, err := st.stripStmts(s.Body.Stmts)
		if err != nil {
			return nil, err
		}
		s.Body.Stmts = body
		if s.CatchBinding != nil {
			if err := st.stripPattern(s.CatchBinding); err != nil {
				return nil, err
			}
		}
		if s.CatchBody != nil {
			if s.CatchBody.Stmts, err = st.stripStmts(s.CatchBody.Stmts); err != nil {
				return nil, err
			}
		}
		if s.Finally != nil {
			if s.Finally.Stmts, err = st.stripStmts(s.Finally.Stmts); err != nil {
				return nil, err
			}
		}
		return []ast.Stmt{s}, nil

	default:
		// break, continue, empty
		return []ast.Stmt{stmt}, nil
	}
}

// stripSub strips a single nested statement position (a loop or branch
// body). A deleted statement becomes an empty block; an enum expansion
// is wrapped in a block to stay a single statement.
func (st *fileState) stripSub(stmt ast.Stmt) (ast.Stmt, error) {
	repl, err := st.stripStmt(stmt)
	if err != nil {
		return nil, err
	}
	switch len(repl) {
	case 0:
		return &ast.SBlock{}, nil
	case 1:
		return repl[0], nil
	default:
		return &ast.SBlock{Stmts: repl}, nil
	}
}

// ----------------------------------------------------------------------------
// Expression Rules
// ----------------------------------------------------------------------------

// unwrapCasts peels type-assertion expressions until the innermost
// runtime expression is reached: x as A, <A>x, x!, and any chain of
// them, including parenthesized links like ((x as A) as B).
func unwrapCasts(expr ast.Expr) ast.Expr {
	for {
		switch e := expr.(type) {
		case *ast.EAs:
			expr = e.Value
		case *ast.ETypeAssertion:
			expr = e.Value
		case *ast.ENonNull:
			expr = e.Value
		case *ast.EParen:
			if !isCast(e.Expr) {
				return expr
			}
			expr = e.Expr
		default:
			return expr
		}
	}
}

func isCast(expr ast.Expr) bool {
	switch expr.(type) {
	case *ast.EAs, *ast.ETypeAssertion, *ast.ENonNull:
		return true
	}
	return false
}

func (st *fileState) stripExpr(expr ast.Expr) (ast.Expr, error) {
	if expr == nil {
		return nil, nil
	}
	expr = unwrapCasts(expr)

	var err error
	switch e := expr.(type) {
	case *ast.EArray:
		for i, item := range e.Items {
			if item == nil {
				continue
			}
			if e.Items[i], err = st.stripExpr(item); err != nil {
				return nil, err
			}
		}

	case *ast.EObject:
		for i := range e.Props {
			prop := &e.Props[i]
			if prop.Computed {
				if prop.Key, err = st.stripExpr(prop.Key); err != nil {
					return nil, err
				}
			}
			if prop.Value, err = st.stripExpr(prop.Value); err != nil {
				return nil, err
			}
		}

	case *ast.EFunction:
		if err = st.stripFn(e.Fn); err != nil {
			return nil, err
		}

	case *ast.EArrow:
		if err = st.stripFn(e.Fn); err != nil {
			return nil, err
		}
		if e.ExprBody != nil {
			if e.ExprBody, err = st.stripExpr(e.ExprBody); err != nil {
				return nil, err
			}
		}

	case *ast.EClass:
		if err = st.stripClass(e.Class); err != nil {
			return nil, err
		}

	case *ast.ECall:
		e.TypeArgs = nil
		if e.Target, err = st.stripExpr(e.Target); err != nil {
			return nil, err
		}
		for i := range e.Args {
			if e.Args[i], err = st.stripExpr(e.Args[i]); err != nil {
				return nil, err
			}
		}

	case *ast.ENew:
		e.TypeArgs = nil
		if e.Target, err = st.stripExpr(e.Target); err != nil {
			return nil, err
		}
		for i := range e.Args {
			if e.Args[i], err = st.stripExpr(e.Args[i]); err != nil {
				return nil, err
			}
		}

	case *ast.ETaggedTemplate:
		e.TypeArgs = nil
		if e.Tag, err = st.stripExpr(e.Tag); err != nil {
			return nil, err
		}
		if e.Template != nil {
			for i := range e.Template.Exprs {
				if e.Template.Exprs[i], err = st.stripExpr(e.Template.Exprs[i]); err != nil {
					return nil, err
				}
			}
		}

	case *ast.ETemplate:
		for i := range e.Exprs {
			if e.Exprs[i], err = st.stripExpr(e.Exprs[i]); err != nil {
				return nil, err
			}
		}

	case *ast.EDot:
		if e.Target, err = st.stripExpr(e.Target); err != nil {
			return nil, err
		}

	case *ast.EIndex:
		if e.Target, err = st.stripExpr(e.Target); err != nil {
			return nil, err
		}
		if e.Index, err = st.stripExpr(e.Index); err != nil {
			return nil, err
		}

	case *ast.EBinary:
		if e.Left, err = st.stripExpr(e.Left); err != nil {
			return nil, err
		}
		if e.Right, err = st.stripExpr(e.Right); err != nil {
			return nil, err
		}

	case *ast.EUnary:
		if e.Operand, err = st.stripExpr(e.Operand); err != nil {
			return nil, err
		}

	case *ast.ECond:
		if e.Test, err = st.stripExpr(e.Test); err != nil {
			return nil, err
		}
		if e.Yes, err = st.stripExpr(e.Yes); err != nil {
			return nil, err
		}
		if e.No, err = st.stripExpr(e.No); err != nil {
			return nil, err
		}

	case *ast.ESpread:
		if e.Value, err = st.stripExpr(e.Value); err != nil {
			return nil, err
		}

	case *ast.EParen:
		if e.Expr, err = st.stripExpr(e.Expr); err != nil {
			return nil, err
		}

	case *ast.EJSXElement:
		e.TypeArgs = nil
		for i := range e.Attrs {
			attr := &e.Attrs[i]
			if attr.Value != nil {
				if attr.Value, err = st.stripExpr(attr.Value); err != nil {
					return nil, err
				}
			}
		}
		if err = st.stripJSXChildren(e.Children); err != nil {
			return nil, err
		}

	case *ast.EJSXFragment:
		if err = st.stripJSXChildren(e.Children); err != nil {
			return nil, err
		}
	}

	return expr, nil
}

func (st *fileState) stripJSXChildren(children []ast.JSXChild) error {
	for i := range children {
		child := &children[i]
		if child.Expr == nil {
			continue
		}
		expr, err := st.stripExpr(child.Expr)
		if err != nil {
			return err
		}
		child.Expr = expr
	}
	return nil
}

// ----------------------------------------------------------------------------
// Functions, Patterns, Classes
// ----------------------------------------------------------------------------

func (st *fileState) stripFn(fn *ast.Fn) error {
	fn.TypeParams = nil
	fn.ReturnType = nil

	// A leading "this" parameter only types the receiver
	if len(fn.Params) > 0 {
		if ident, ok := fn.Params[0].Binding.(*ast.BIdentifier); ok && ident.Name == "this" {
			fn.Params = fn.Params[1:]
		}
	}

	for _, param := range fn.Params {
		param.Accessibility = ast.AccessNone
		param.Readonly = false
		if err := st.stripPattern(param.Binding); err != nil {
			return err
		}
		def, err := st.stripExpr(param.Default)
		if err != nil {
			return err
		}
		param.Default = def
	}

	if fn.Body != nil {
		body, err := st.stripStmts(fn.Body.Stmts)
		if err != nil {
			return err
		}
		fn.Body.Stmts = body
	}
	return nil
}

func (st *fileState) stripPattern(pattern ast.Pattern) error {
	switch b := pattern.(type) {
	case *ast.BIdentifier:
		b.Type = nil
		b.Optional = false

	case *ast.BRest:
		b.Type = nil
		return st.stripPattern(b.Value)

	case *ast.BArray:
		b.Type = nil
		for i := range b.Items {
			item := &b.Items[i]
			if item.Binding != nil {
				if err := st.stripPattern(item.Binding); err != nil {
					return err
				}
			}
			def, err := st.stripExpr(item.Default)
			if err != nil {
				return err
			}
			item.Default = def
		}

	case *ast.BObject:
		b.Type = nil
		for i := range b.Props {
			prop := &b.Props[i]
			if err := st.stripPattern(prop.Value); err != nil {
				return err
			}
			def, err := st.stripExpr(prop.Default)
			if err != nil {
				return err
			}
			prop.Default = def
		}
	}
	return nil
}

func (st *fileState) stripClass(class *ast.Class) error {
	class.TypeParams = nil
	class.ExtendsTypeArgs = nil
	class.Implements = nil
	class.Abstract = false

	var err error
	for i := range class.Decorators {
		if class.Decorators[i], err = st.stripExpr(class.Decorators[i]); err != nil {
			return err
		}
	}
	if class.Extends != nil {
		if class.Extends, err = st.stripExpr(class.Extends); err != nil {
			return err
		}
	}

	kept := class.Members[:0]
	for _, member := range class.Members {
		switch m := member.(type) {
		case *ast.IndexSignatureMember:
			// Type-only, removed

		case *ast.MethodMember:
			// Abstract and body-less methods are signatures
			if m.Abstract || m.Fn.Body == nil {
				continue
			}
			if m.Kind == ast.MethodConstructor {
				// Lowering reads the parameter-property modifiers, so
				// it runs before stripFn clears them
				if err := st.lowerParamProps(m.Fn); err != nil {
					return err
				}
			}
			m.Optional = false
			m.Accessibility = ast.AccessNone
			for i := range m.Decorators {
				if m.Decorators[i], err = st.stripExpr(m.Decorators[i]); err != nil {
					return err
				}
			}
			if m.Computed {
				if m.Key, err = st.stripExpr(m.Key); err != nil {
					return err
				}
			}
			if err := st.stripFn(m.Fn); err != nil {
				return err
			}
			kept = append(kept, m)

		case *ast.PropertyMember:
			if m.Declare || m.Abstract {
				continue
			}
			m.Type = nil
			m.Readonly = false
			m.Optional = false
			m.Definite = false
			m.Accessibility = ast.AccessNone
			// A field with neither initializer nor decorators existed
			// only to declare a type
			if m.Value == nil && len(m.Decorators) == 0 {
				continue
			}
			for i := range m.Decorators {
				if m.Decorators[i], err = st.stripExpr(m.Decorators[i]); err != nil {
					return err
				}
			}
			if m.Computed {
				if m.Key, err = st.stripExpr(m.Key); err != nil {
					return err
				}
			}
			if m.Value != nil {
				if m.Value, err = st.stripExpr(m.Value); err != nil {
					return err
				}
			}
			kept = append(kept, m)
		}
	}
	class.Members = kept
	return nil
}
