// Package ast defines the Abstract Syntax Tree types for the TypeScript
// superset handled by the eraser.
//
// The AST is designed to be:
// - Complete: Represents every construct the eraser must decide on,
//   including the type-only node kinds that never survive a transform
// - Efficient: Minimizes allocations and pointer chasing
// - Transformable: Supports in-place mutation; type-only fields are
//   cleared and type-only nodes removed by the stripper
package ast

// ----------------------------------------------------------------------------
// Source Location
// ----------------------------------------------------------------------------

// Loc represents a location in source code.
type Loc struct {
	Start int32 // Byte offset of start
}

// ----------------------------------------------------------------------------
// Symbols and References
// ----------------------------------------------------------------------------

// Ref is a reference to a symbol in the symbol table.
// Using a struct with two indices allows efficient symbol table lookups
// while supporting multiple source files (future extension).
type Ref struct {
	SourceIndex uint32
	InnerIndex  uint32
}

// InvalidRef returns an invalid reference.
func InvalidRef() Ref {
	return Ref{SourceIndex: ^uint32(0), InnerIndex: ^uint32(0)}
}

// IsValid returns true if this is a valid reference.
func (r Ref) IsValid() bool {
	return r.SourceIndex != ^uint32(0)
}

// RefSite records one syntactic position where a symbol is referenced.
// InTypePosition is true when the reference appears where an identifier
// names a type rather than a value: a type reference, a qualified type
// name, a type-argument list, or the operand of a typeof type query.
type RefSite struct {
	Loc            Loc
	InTypePosition bool
}

// Symbol represents a declared name.
type Symbol struct {
	// The original name as written in source
	OriginalName string

	// Location of the declaration
	Loc Loc

	// What kind of symbol this is
	Kind SymbolKind

	// Every syntactic position where the symbol is referenced, in source
	// order. Populated by the parser's binding pass.
	Refs []RefSite
}

// OnlyReferencedAsType reports whether every recorded reference to the
// symbol sits in a type position. True for symbols with no references.
func (s *Symbol) OnlyReferencedAsType() bool {
	for _, site := range s.Refs {
		if !site.InTypePosition {
			return false
		}
	}
	return true
}

// SymbolKind indicates what a symbol represents.
type SymbolKind uint8

const (
	SymbolUnbound   SymbolKind = iota // Not yet resolved
	SymbolVar                         // var declaration
	SymbolLet                         // let declaration
	SymbolConst                       // const declaration
	SymbolFunction                    // function declaration
	SymbolClass                       // class declaration
	SymbolImport                      // import binding
	SymbolParameter                   // function parameter
	SymbolInterface                   // interface declaration (type-only)
	SymbolTypeAlias                   // type alias declaration (type-only)
	SymbolEnum                        // enum declaration (value-producing)
	SymbolNamespace                   // namespace declaration
)

// ----------------------------------------------------------------------------
// Program (Top Level)
// ----------------------------------------------------------------------------

// Program represents a complete parsed source file.
type Program struct {
	// Source information
	Source     string // Original source text
	SourcePath string // File path (for error messages)

	// Top-level statements in order
	Stmts []Stmt

	// Symbol table
	Symbols []Symbol

	// Module-level scope
	Scope *Scope

	// Comments in source order, for pragma scanning
	Comments []Comment

	// HasJSX is set when any JSX element or fragment was parsed anywhere
	// in the file. JSX syntax implicitly reads the JSX pragma identifier
	// as a value even though no explicit reference appears in the text.
	HasJSX bool
}

// Comment is a source comment carried on the program for pragma scanning.
type Comment struct {
	Loc  Loc
	Text string
}

// ----------------------------------------------------------------------------
// Statements
// ----------------------------------------------------------------------------

// Stmt represents a statement.
type Stmt interface {
	isStmt()
}

// NameBinding pairs a declared name with its symbol table entry.
type NameBinding struct {
	Loc  Loc
	Name string
	Ref  Ref
}

// ImportItem is one named specifier in an import statement:
// { name }, { name as alias }, or { type name }.
type ImportItem struct {
	Loc      Loc
	Name     string // Exported name in the source module
	Local    NameBinding
	TypeOnly bool // import { type a } from "mod"
}

// SImport represents: import def, { a, b as c } from "mod";
// and the bare side-effect form import "mod"; (all binding fields nil/empty).
type SImport struct {
	Loc          Loc
	DefaultName  *NameBinding // import Foo from "mod"
	NamespaceRef *NameBinding // import * as ns from "mod"
	Items        []ImportItem // import { a, b as c } from "mod"
	Path         string       // Raw module path including quotes
	TypeOnly     bool         // import type ... from "mod"
}

func (*SImport) isStmt() {}

// HasSpecifiers reports whether the import binds any local names.
func (s *SImport) HasSpecifiers() bool {
	return s.DefaultName != nil || s.NamespaceRef != nil || len(s.Items) > 0
}

// ExportItem is one specifier in a named export: { local } or
// { local as exported }.
type ExportItem struct {
	Loc      Loc
	Local    string
	Exported string
}

// SExportNamed represents either a specifier list export
// (export { a, b as c } [from "mod"]) or an export wrapping a declaration
// (export const x = 1); exactly one of Items/Decl is set.
type SExportNamed struct {
	Loc      Loc
	Items    []ExportItem
	From     string // Raw module path including quotes; empty if not a re-export
	Decl     Stmt   // Wrapped declaration, nil for specifier-list form
	TypeOnly bool   // export type { ... }
	Star     bool   // export * from "mod"
	StarName string // export * as name from "mod"; empty for plain star
}

func (*SExportNamed) isStmt() {}

// SExportDefault represents: export default <expr or declaration>;
type SExportDefault struct {
	Loc   Loc
	Decl  Stmt // Function or class declaration, nil if Value is set
	Value Expr
}

func (*SExportDefault) isStmt() {}

// SExportEquals represents the TypeScript form: export = expr;
// It has no erasure semantics and is always rejected.
type SExportEquals struct {
	Loc   Loc
	Value Expr
}

func (*SExportEquals) isStmt() {}

// SImportEquals represents: import name = require("mod");
// It has no erasure semantics and is always rejected.
type SImportEquals struct {
	Loc  Loc
	Name NameBinding
	Path string // Raw module path including quotes
}

func (*SImportEquals) isStmt() {}

// VarKind distinguishes var/let/const declarations.
type VarKind uint8

const (
	VarVar VarKind = iota
	VarLet
	VarConst
)

func (k VarKind) String() string {
	switch k {
	case VarLet:
		return "let"
	case VarConst:
		return "const"
	default:
		return "var"
	}
}

// VarDeclarator is one binding in a variable declaration.
type VarDeclarator struct {
	Loc      Loc
	Binding  Pattern
	Init     Expr // nil if no initializer
	Definite bool // let x!: T (definite-assignment marker)
}

// SVar represents: var/let/const decl [, decl ...];
type SVar struct {
	Loc     Loc
	Kind    VarKind
	Declare bool // declare var x: T (ambient, type-only)
	Decls   []*VarDeclarator
}

func (*SVar) isStmt() {}

// SFunction represents a function declaration. A declaration without a
// body is a signature-only form (an overload signature or a
// "declare function"), which is type-only.
type SFunction struct {
	Loc     Loc
	Name    NameBinding
	Fn      *Fn
	Declare bool
}

func (*SFunction) isStmt() {}

// SClass represents a class declaration.
type SClass struct {
	Loc     Loc
	Class   *Class
	Declare bool // declare class (ambient, type-only)
}

func (*SClass) isStmt() {}

// SInterface represents an interface declaration (type-only).
type SInterface struct {
	Loc  Loc
	Name NameBinding
}

func (*SInterface) isStmt() {}

// STypeAlias represents: type Name<...> = T; (type-only)
type STypeAlias struct {
	Loc  Loc
	Name NameBinding
}

func (*STypeAlias) isStmt() {}

// EnumMember is one member of an enum declaration.
type EnumMember struct {
	Loc       Loc
	Name      string
	StringKey bool // Name was written as a string literal
	Init      Expr // nil for auto-increment members
}

// SEnum represents an enum declaration. Unlike the other TypeScript-only
// declarations an enum compiles to runtime code.
type SEnum struct {
	Loc     Loc
	Name    NameBinding
	Const   bool // const enum (generated identically, no inlining)
	Declare bool // declare enum (ambient, type-only)
	Members []EnumMember
}

func (*SEnum) isStmt() {}

// SNamespace represents a namespace or module declaration. Only the
// ambient form and the quoted-string module-augmentation form have
// erasure semantics (removal); anything else is rejected.
type SNamespace struct {
	Loc        Loc
	Name       string
	StringName bool // module "name" { ... } (module augmentation)
	Declare    bool
	Stmts      []Stmt
	Scope      *Scope
}

func (*SNamespace) isStmt() {}

// SBlock represents a block of statements: { stmts }
type SBlock struct {
	Loc   Loc
	Stmts []Stmt
	Scope *Scope
}

func (*SBlock) isStmt() {}

// SExpr represents an expression statement.
type SExpr struct {
	Loc  Loc
	Expr Expr
}

func (*SExpr) isStmt() {}

// SReturn represents: return [expr];
type SReturn struct {
	Loc   Loc
	Value Expr // nil for bare return
}

func (*SReturn) isStmt() {}

// SIf represents: if (cond) stmt [else stmt]
type SIf struct {
	Loc       Loc
	Condition Expr
	Body      Stmt
	Else      Stmt // nil, *SIf, or *SBlock
}

func (*SIf) isStmt() {}

// SWhile represents: while (cond) stmt
type SWhile struct {
	Loc       Loc
	Condition Expr
	Body      Stmt
}

func (*SWhile) isStmt() {}

// SFor represents: for (init; cond; update) stmt
type SFor struct {
	Loc       Loc
	Init      Stmt // *SVar or *SExpr, or nil
	Condition Expr // nil for infinite loop
	Update    Expr // nil if absent
	Body      Stmt
}

func (*SFor) isStmt() {}

// SDoWhile represents: do stmt while (cond);
type SDoWhile struct {
	Loc       Loc
	Body      Stmt
	Condition Expr
}

func (*SDoWhile) isStmt() {}

// SForInOf represents: for (binding in/of value) stmt
type SForInOf struct {
	Loc   Loc
	IsOf  bool
	Init  Stmt // *SVar with a single declarator, or *SExpr for bare targets
	Value Expr
	Body  Stmt
}

func (*SForInOf) isStmt() {}

// SwitchCase is one case (or default, when Value is nil) of a switch.
type SwitchCase struct {
	Loc   Loc
	Value Expr // nil for default
	Body  []Stmt
}

// SSwitch represents: switch (test) { cases }
type SSwitch struct {
	Loc   Loc
	Test  Expr
	Cases []SwitchCase
}

func (*SSwitch) isStmt() {}

// STry represents: try { } catch (e) { } finally { }
// The catch parameter's type annotation is carried on the binding and
// stripped like any other.
type STry struct {
	Loc          Loc
	Body         *SBlock
	CatchBinding Pattern // nil for catch-all without a binding, or no catch
	CatchBody    *SBlock // nil if no catch clause
	Finally      *SBlock // nil if no finally clause
}

func (*STry) isStmt() {}

// SBreak represents: break [label];
type SBreak struct {
	Loc   Loc
	Label string
}

func (*SBreak) isStmt() {}

// SContinue represents: continue [label];
type SContinue struct {
	Loc   Loc
	Label string
}

func (*SContinue) isStmt() {}

// SThrow represents: throw expr;
type SThrow struct {
	Loc   Loc
	Value Expr
}

func (*SThrow) isStmt() {}

// SEmpty represents a lone semicolon.
type SEmpty struct {
	Loc Loc
}

func (*SEmpty) isStmt() {}

// ----------------------------------------------------------------------------
// Patterns
// ----------------------------------------------------------------------------

// Pattern represents a binding pattern: an identifier, a rest element, or
// a destructuring pattern.
type Pattern interface {
	isPattern()
}

// BIdentifier is a plain identifier binding, optionally carrying the
// type-only decoration the stripper clears: a type annotation and an
// optional marker.
type BIdentifier struct {
	Loc      Loc
	Name     string
	Ref      Ref
	Optional bool           // x?: T
	Type     TypeAnnotation // nil if absent
}

func (*BIdentifier) isPattern() {}

// BRest is a rest element: ...name
type BRest struct {
	Loc   Loc
	Value Pattern
	Type  TypeAnnotation
}

func (*BRest) isPattern() {}

// PatternElem is one element of a destructuring pattern, optionally with
// a default value.
type PatternElem struct {
	Binding Pattern // nil for array holes
	Default Expr    // nil if no default
}

// BArray is an array destructuring pattern: [a, b = 1, ...rest]
type BArray struct {
	Loc   Loc
	Items []PatternElem
	Type  TypeAnnotation
}

func (*BArray) isPattern() {}

// BObjectProp is one property of an object destructuring pattern.
type BObjectProp struct {
	Loc     Loc
	Key     string // Property name in the source object
	Value   Pattern
	Default Expr // nil if no default
	IsRest  bool // ...rest (Key empty)
}

// BObject is an object destructuring pattern: { a, b: c = 1, ...rest }
type BObject struct {
	Loc   Loc
	Props []BObjectProp
	Type  TypeAnnotation
}

func (*BObject) isPattern() {}

// ----------------------------------------------------------------------------
// Functions and Classes
// ----------------------------------------------------------------------------

// Accessibility is a TypeScript member visibility modifier.
type Accessibility uint8

const (
	AccessNone Accessibility = iota
	AccessPublic
	AccessPrivate
	AccessProtected
)

func (a Accessibility) String() string {
	switch a {
	case AccessPublic:
		return "public"
	case AccessPrivate:
		return "private"
	case AccessProtected:
		return "protected"
	default:
		return ""
	}
}

// Param is a function parameter. A parameter with a visibility or
// readonly modifier inside a constructor is a parameter property: the
// modifiers are the type-level wrapper the stripper clears, and the
// lowerer turns the declaration into an explicit field assignment.
type Param struct {
	Loc     Loc
	Binding Pattern
	Default Expr // nil if no default value

	// Parameter-property modifiers (constructor parameters only)
	Accessibility Accessibility
	Readonly      bool
}

// IsProperty reports whether the parameter declares an instance field.
func (p *Param) IsProperty() bool {
	return p.Accessibility != AccessNone || p.Readonly
}

// TypeParam is a declared type parameter: <T extends U = V>.
// Only the constraint and default matter for reference recording.
type TypeParam struct {
	Loc        Loc
	Name       string
	Constraint TypeAnnotation
	Default    TypeAnnotation
}

// Fn represents a function-like body: declarations, expressions, arrows,
// and class methods all share it.
type Fn struct {
	Loc         Loc
	TypeParams  []TypeParam    // cleared by the stripper
	Params      []*Param
	ReturnType  TypeAnnotation // cleared by the stripper
	Body        *SBlock        // nil for signature-only forms
	IsAsync     bool
	IsGenerator bool
	Scope       *Scope // Parameter scope; the body scope is Body.Scope
}

// Class represents a class declaration or expression.
type Class struct {
	Loc             Loc
	Name            NameBinding // Ref invalid for anonymous class expressions
	TypeParams      []TypeParam
	Extends         Expr             // nil if no heritage
	ExtendsTypeArgs []TypeAnnotation // type arguments on the superclass reference
	Implements      []TypeAnnotation // implemented-interfaces list
	Abstract        bool
	Decorators      []Expr
	Members         []ClassMember
}

// ClassMember is a member of a class body.
type ClassMember interface {
	isClassMember()
}

// MethodKind distinguishes method flavors.
type MethodKind uint8

const (
	MethodNormal MethodKind = iota
	MethodConstructor
	MethodGet
	MethodSet
)

// MethodMember is a class method, constructor, or accessor. A method
// without a body is a signature-only overload or "declare" form and is
// removed outright.
type MethodMember struct {
	Loc           Loc
	Kind          MethodKind
	Key           Expr // EIdentifier for plain names
	Computed      bool
	Static        bool
	Abstract      bool
	Optional      bool
	Accessibility Accessibility
	Decorators    []Expr
	Fn            *Fn
}

func (*MethodMember) isClassMember() {}

// PropertyMember is a class field declaration.
type PropertyMember struct {
	Loc           Loc
	Key           Expr
	Computed      bool
	Static        bool
	Abstract      bool
	Readonly      bool
	Optional      bool
	Definite      bool // name!: T
	Declare       bool // declare name: T (ambient, removed)
	Accessibility Accessibility
	Decorators    []Expr
	Type          TypeAnnotation
	Value         Expr // nil if no initializer
}

func (*PropertyMember) isClassMember() {}

// IndexSignatureMember is a class index signature: [key: string]: T
// It is type-only and removed outright.
type IndexSignatureMember struct {
	Loc Loc
}

func (*IndexSignatureMember) isClassMember() {}

// ----------------------------------------------------------------------------
// Expressions
// ----------------------------------------------------------------------------

// Expr represents an expression.
type Expr interface {
	isExpr()
}

// EIdentifier represents an identifier reference.
type EIdentifier struct {
	Loc  Loc
	Name string
	Ref  Ref // Resolved symbol reference
}

func (*EIdentifier) isExpr() {}

// ENumber represents a numeric literal. The raw source text is kept so
// the printer reproduces it exactly.
type ENumber struct {
	Loc Loc
	Raw string
}

func (*ENumber) isExpr() {}

// EString represents a string literal (raw text including quotes).
type EString struct {
	Loc Loc
	Raw string
}

func (*EString) isExpr() {}

// Value returns the string content without the surrounding quotes.
// Escape sequences are not decoded.
func (e *EString) Value() string {
	if len(e.Raw) >= 2 {
		return e.Raw[1 : len(e.Raw)-1]
	}
	return e.Raw
}

// ETemplate represents a template literal as alternating raw quasi text
// and substitution expressions: Quasis[0] ${Exprs[0]} Quasis[1] ...
// Invariant: len(Quasis) == len(Exprs)+1. Quasi text excludes the
// backticks and the ${ } delimiters.
type ETemplate struct {
	Loc    Loc
	Quasis []string
	Exprs  []Expr
}

func (*ETemplate) isExpr() {}

// EBool represents true/false.
type EBool struct {
	Loc   Loc
	Value bool
}

func (*EBool) isExpr() {}

// ENull represents null.
type ENull struct {
	Loc Loc
}

func (*ENull) isExpr() {}

// EThis represents this.
type EThis struct {
	Loc Loc
}

func (*EThis) isExpr() {}

// ESuper represents super (as a call target or member base).
type ESuper struct {
	Loc Loc
}

func (*ESuper) isExpr() {}

// EArray represents an array literal.
type EArray struct {
	Loc   Loc
	Items []Expr // nil entries are holes
}

func (*EArray) isExpr() {}

// ObjectPropKind distinguishes object literal property flavors.
type ObjectPropKind uint8

const (
	PropInit ObjectPropKind = iota
	PropShorthand
	PropSpread
	PropMethod
	PropGet
	PropSet
)

// ObjectProp is one property of an object literal.
type ObjectProp struct {
	Loc      Loc
	Kind     ObjectPropKind
	Key      Expr // nil for spread
	Computed bool
	Value    Expr // For PropSpread the spread operand; for methods an EFunction
}

// EObject represents an object literal.
type EObject struct {
	Loc   Loc
	Props []ObjectProp
}

func (*EObject) isExpr() {}

// EFunction represents a function expression.
type EFunction struct {
	Loc  Loc
	Name NameBinding // Ref invalid for anonymous functions
	Fn   *Fn
}

func (*EFunction) isExpr() {}

// EArrow represents an arrow function. Exactly one of Body/ExprBody is set.
type EArrow struct {
	Loc      Loc
	Fn       *Fn  // Fn.Body nil when ExprBody is set
	ExprBody Expr
}

func (*EArrow) isExpr() {}

// EClass represents a class expression.
type EClass struct {
	Loc   Loc
	Class *Class
}

func (*EClass) isExpr() {}

// ECall represents a call expression, possibly with a type-argument list
// (cleared by the stripper).
type ECall struct {
	Loc      Loc
	Target   Expr
	TypeArgs []TypeAnnotation
	Args     []Expr
}

func (*ECall) isExpr() {}

// ENew represents a constructor call, possibly with a type-argument list.
type ENew struct {
	Loc      Loc
	Target   Expr
	TypeArgs []TypeAnnotation
	Args     []Expr
}

func (*ENew) isExpr() {}

// ETaggedTemplate represents tag`...` with an optional type-argument list.
type ETaggedTemplate struct {
	Loc      Loc
	Tag      Expr
	TypeArgs []TypeAnnotation
	Template *ETemplate
}

func (*ETaggedTemplate) isExpr() {}

// EDot represents member access: base.name
type EDot struct {
	Loc    Loc
	Target Expr
	Name   string
}

func (*EDot) isExpr() {}

// EIndex represents computed member access: base[index]
type EIndex struct {
	Loc    Loc
	Target Expr
	Index  Expr
}

func (*EIndex) isExpr() {}

// BinaryOp represents binary and assignment operators.
type BinaryOp uint8

const (
	BinOpAdd        BinaryOp = iota // +
	BinOpSub                        // -
	BinOpMul                        // *
	BinOpDiv                        // /
	BinOpMod                        // %
	BinOpBitAnd                     // &
	BinOpBitOr                      // |
	BinOpBitXor                     // ^
	BinOpShl                        // <<
	BinOpShr                        // >>
	BinOpUShr                       // >>>
	BinOpLogicalAnd                 // &&
	BinOpLogicalOr                  // ||
	BinOpLooseEq                    // ==
	BinOpLooseNe                    // !=
	BinOpStrictEq                   // ===
	BinOpStrictNe                   // !==
	BinOpLt                         // <
	BinOpLe                         // <=
	BinOpGt                         // >
	BinOpGe                         // >=
	BinOpIn                         // in
	BinOpInstanceof                 // instanceof
	BinOpAssign                     // =
	BinOpAddAssign                  // +=
	BinOpSubAssign                  // -=
	BinOpMulAssign                  // *=
	BinOpDivAssign                  // /=
	BinOpModAssign                  // %=
	BinOpAndAssign                  // &=
	BinOpOrAssign                   // |=
	BinOpXorAssign                  // ^=
)

// IsAssign reports whether the operator is an assignment operator.
func (op BinaryOp) IsAssign() bool {
	return op >= BinOpAssign
}

func (op BinaryOp) String() string {
	switch op {
	case BinOpAdd:
		return "+"
	case BinOpSub:
		return "-"
	case BinOpMul:
		return "*"
	case BinOpDiv:
		return "/"
	case BinOpMod:
		return "%"
	case BinOpBitAnd:
		return "&"
	case BinOpBitOr:
		return "|"
	case BinOpBitXor:
		return "^"
	case BinOpShl:
		return "<<"
	case BinOpShr:
		return ">>"
	case BinOpUShr:
		return ">>>"
	case BinOpLogicalAnd:
		return "&&"
	case BinOpLogicalOr:
		return "||"
	case BinOpLooseEq:
		return "=="
	case BinOpLooseNe:
		return "!="
	case BinOpStrictEq:
		return "==="
	case BinOpStrictNe:
		return "!=="
	case BinOpLt:
		return "<"
	case BinOpLe:
		return "<="
	case BinOpGt:
		return ">"
	case BinOpGe:
		return ">="
	case BinOpIn:
		return "in"
	case BinOpInstanceof:
		return "instanceof"
	case BinOpAssign:
		return "="
	case BinOpAddAssign:
		return "+="
	case BinOpSubAssign:
		return "-="
	case BinOpMulAssign:
		return "*="
	case BinOpDivAssign:
		return "/="
	case BinOpModAssign:
		return "%="
	case BinOpAndAssign:
		return "&="
	case BinOpOrAssign:
		return "|="
	case BinOpXorAssign:
		return "^="
	default:
		return "?"
	}
}

// EBinary represents a binary operation, including assignments.
type EBinary struct {
	Loc   Loc
	Op    BinaryOp
	Left  Expr
	Right Expr
}

func (*EBinary) isExpr() {}

// UnaryOp represents unary operators.
type UnaryOp uint8

const (
	UnOpNeg        UnaryOp = iota // -
	UnOpPos                       // +
	UnOpNot                       // !
	UnOpBitNot                    // ~
	UnOpTypeof                    // typeof
	UnOpVoid                      // void
	UnOpDelete                    // delete
	UnOpAwait                     // await
	UnOpPreInc                    // ++x
	UnOpPreDec                    // --x
	UnOpPostInc                   // x++
	UnOpPostDec                   // x--
)

// IsPostfix reports whether the operator follows its operand.
func (op UnaryOp) IsPostfix() bool {
	return op == UnOpPostInc || op == UnOpPostDec
}

func (op UnaryOp) String() string {
	switch op {
	case UnOpNeg:
		return "-"
	case UnOpPos:
		return "+"
	case UnOpNot:
		return "!"
	case UnOpBitNot:
		return "~"
	case UnOpTypeof:
		return "typeof"
	case UnOpVoid:
		return "void"
	case UnOpDelete:
		return "delete"
	case UnOpAwait:
		return "await"
	case UnOpPreInc, UnOpPostInc:
		return "++"
	case UnOpPreDec, UnOpPostDec:
		return "--"
	default:
		return "?"
	}
}

// EUnary represents a unary operation.
type EUnary struct {
	Loc     Loc
	Op      UnaryOp
	Operand Expr
}

func (*EUnary) isExpr() {}

// ECond represents: test ? yes : no
type ECond struct {
	Loc  Loc
	Test Expr
	Yes  Expr
	No   Expr
}

func (*ECond) isExpr() {}

// ESpread represents: ...value (in call arguments and array literals)
type ESpread struct {
	Loc   Loc
	Value Expr
}

func (*ESpread) isExpr() {}

// EParen represents a parenthesized expression.
type EParen struct {
	Loc  Loc
	Expr Expr
}

func (*EParen) isExpr() {}

// EAs represents: expr as T (or expr satisfies T). Stripped to its
// underlying expression.
type EAs struct {
	Loc       Loc
	Value     Expr
	Type      TypeAnnotation
	Satisfies bool
}

func (*EAs) isExpr() {}

// ETypeAssertion represents the old-style assertion: <T>expr.
// Only parsed when JSX is disabled. Stripped to its underlying expression.
type ETypeAssertion struct {
	Loc   Loc
	Type  TypeAnnotation
	Value Expr
}

func (*ETypeAssertion) isExpr() {}

// ENonNull represents: expr!, stripped to its underlying expression.
type ENonNull struct {
	Loc   Loc
	Value Expr
}

func (*ENonNull) isExpr() {}

// ----------------------------------------------------------------------------
// JSX
// ----------------------------------------------------------------------------

// JSXAttr is one attribute of a JSX opening element.
type JSXAttr struct {
	Loc      Loc
	Name     string
	Value    Expr // nil for bare attributes; EString or container expr
	IsSpread bool // {...expr} (Name empty, Value is the operand)
}

// EJSXElement represents a JSX element. The opening element may carry a
// type-argument list, which the stripper clears.
type EJSXElement struct {
	Loc         Loc
	Name        string // Dotted name as written: "div", "Foo.Bar"
	NameRef     Ref    // Bound head identifier for component names
	TypeArgs    []TypeAnnotation
	Attrs       []JSXAttr
	Children    []JSXChild
	SelfClosing bool
}

func (*EJSXElement) isExpr() {}

// EJSXFragment represents <>children</>.
type EJSXFragment struct {
	Loc      Loc
	Children []JSXChild
}

func (*EJSXFragment) isExpr() {}

// JSXChild is either raw text, an expression container, or a nested
// element/fragment.
type JSXChild struct {
	Loc  Loc
	Text string // Raw text run; empty when Expr is set
	Expr Expr   // {expr} container, nested EJSXElement, or EJSXFragment
}

// ----------------------------------------------------------------------------
// Scope
// ----------------------------------------------------------------------------

// ScopeMember represents a symbol in a scope.
type ScopeMember struct {
	Ref Ref
}

// Scope represents a lexical scope.
type Scope struct {
	Parent   *Scope
	Children []*Scope
	Members  map[string]ScopeMember
}

// NewScope creates a new scope with the given parent.
func NewScope(parent *Scope) *Scope {
	s := &Scope{
		Parent:  parent,
		Members: make(map[string]ScopeMember),
	}
	if parent != nil {
		parent.Children = append(parent.Children, s)
	}
	return s
}

// Lookup resolves a name through the scope chain.
func (s *Scope) Lookup(name string) (Ref, bool) {
	for scope := s; scope != nil; scope = scope.Parent {
		if member, ok := scope.Members[name]; ok {
			return member.Ref, true
		}
	}
	return InvalidRef(), false
}
