package parser

import (
	"strings"
	"testing"

	"codeberg.org/saruga/stripts/internal/ast"
	"codeberg.org/saruga/stripts/internal/printer"
)

// ----------------------------------------------------------------------------
// Test Helpers (esbuild-style)
// ----------------------------------------------------------------------------

func parse(t *testing.T, input string, opts Options) *ast.Program {
	t.Helper()
	p := New(input, opts)
	program, errs := p.Parse()
	if len(errs) > 0 {
		t.Fatalf("parse errors: %v", errs)
	}
	return program
}

// expectPrinted parses input and verifies the printed output matches expected.
// Type annotations do not survive printing, so this doubles as a check that
// the parser consumed them in the right places.
func expectPrinted(t *testing.T, input string, expected string) {
	t.Helper()
	t.Run(input, func(t *testing.T) {
		t.Helper()
		program := parse(t, input, Options{})
		actual := printer.New(printer.Options{}).Print(program)
		if actual != expected {
			t.Errorf("\ninput:\n%s\nexpected:\n%s\nactual:\n%s", input, expected, actual)
		}
	})
}

// expectPrintedJSX is expectPrinted with JSX syntax enabled.
func expectPrintedJSX(t *testing.T, input string, expected string) {
	t.Helper()
	t.Run(input+"_jsx", func(t *testing.T) {
		t.Helper()
		program := parse(t, input, Options{JSX: true})
		actual := printer.New(printer.Options{}).Print(program)
		if actual != expected {
			t.Errorf("\ninput:\n%s\nexpected:\n%s\nactual:\n%s", input, expected, actual)
		}
	})
}

// expectParseError verifies that parsing produces an error containing the substring.
func expectParseError(t *testing.T, input string, errorSubstring string) {
	t.Helper()
	t.Run(input+"_error", func(t *testing.T) {
		t.Helper()
		p := New(input, Options{})
		_, errs := p.Parse()
		if len(errs) == 0 {
			t.Errorf("expected parse error containing %q, got none", errorSubstring)
			return
		}
		found := false
		for _, err := range errs {
			if strings.Contains(err.Message, errorSubstring) {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("expected error containing %q, got: %v", errorSubstring, errs)
		}
	})
}

// symbolNamed finds the first symbol with the given source name.
func symbolNamed(t *testing.T, program *ast.Program, name string) *ast.Symbol {
	t.Helper()
	for i := range program.Symbols {
		if program.Symbols[i].OriginalName == name {
			return &program.Symbols[i]
		}
	}
	t.Fatalf("no symbol named %q", name)
	return nil
}

// ----------------------------------------------------------------------------
// Imports and Exports
// ----------------------------------------------------------------------------

func TestParseImports(t *testing.T) {
	expectPrinted(t, `import React from "react";`, "import React from \"react\";\n")
	expectPrinted(t, `import * as path from "node:path";`, "import * as path from \"node:path\";\n")
	expectPrinted(t, `import { a, b as c } from "m";`, "import { a, b as c } from \"m\";\n")
	expectPrinted(t, `import d, { a } from "m";`, "import d, { a } from \"m\";\n")
	expectPrinted(t, `import d, * as ns from "m";`, "import d, * as ns from \"m\";\n")
	expectPrinted(t, `import "./side-effect";`, "import \"./side-effect\";\n")
}

func TestParseImportTypeForms(t *testing.T) {
	program := parse(t, `import type { A } from "m";`, Options{})
	imp, ok := program.Stmts[0].(*ast.SImport)
	if !ok {
		t.Fatalf("expected *ast.SImport, got %T", program.Stmts[0])
	}
	if !imp.TypeOnly {
		t.Error("expected TypeOnly import")
	}

	program = parse(t, `import { type A, b } from "m";`, Options{})
	imp = program.Stmts[0].(*ast.SImport)
	if len(imp.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(imp.Items))
	}
	if !imp.Items[0].TypeOnly || imp.Items[0].Name != "A" {
		t.Errorf("expected first item to be type-only A, got %+v", imp.Items[0])
	}
	if imp.Items[1].TypeOnly {
		t.Errorf("expected second item to be a value specifier, got %+v", imp.Items[1])
	}
}

func TestParseImportAlias(t *testing.T) {
	program := parse(t, `import { a as renamed } from "m";`, Options{})
	imp := program.Stmts[0].(*ast.SImport)
	if imp.Items[0].Name != "a" || imp.Items[0].Local.Name != "renamed" {
		t.Errorf("expected a as renamed, got %+v", imp.Items[0])
	}
}

func TestParseImportEquals(t *testing.T) {
	program := parse(t, `import foo = require("./mod");`, Options{})
	ie, ok := program.Stmts[0].(*ast.SImportEquals)
	if !ok {
		t.Fatalf("expected *ast.SImportEquals, got %T", program.Stmts[0])
	}
	if ie.Name.Name != "foo" {
		t.Errorf("expected binding foo, got %q", ie.Name.Name)
	}
	if ie.Path != `"./mod"` {
		t.Errorf("expected raw path with quotes, got %q", ie.Path)
	}
}

func TestParseExportEquals(t *testing.T) {
	program := parse(t, "const foo = 1;\nexport = foo;", Options{})
	ee, ok := program.Stmts[1].(*ast.SExportEquals)
	if !ok {
		t.Fatalf("expected *ast.SExportEquals, got %T", program.Stmts[1])
	}
	if ee.Value == nil {
		t.Error("expected export = to carry an expression")
	}
}

func TestParseExports(t *testing.T) {
	expectPrinted(t, "const a = 1;\nexport { a };", "const a = 1;\nexport { a };\n")
	expectPrinted(t, "const a = 1;\nexport { a as b };", "const a = 1;\nexport { a as b };\n")
	expectPrinted(t, `export const x = 1;`, "export const x = 1;\n")
	expectPrinted(t, "const x = 1;\nexport default x;", "const x = 1;\nexport default x;\n")
	expectPrinted(t, `export * from "m";`, "export * from \"m\";\n")
	expectPrinted(t, `export * as ns from "m";`, "export * as ns from \"m\";\n")
	expectPrinted(t, `export { a as b } from "m";`, "export { a as b } from \"m\";\n")
}

func TestParseExportTypeOnly(t *testing.T) {
	program := parse(t, `export type { A };`, Options{})
	ex, ok := program.Stmts[0].(*ast.SExportNamed)
	if !ok {
		t.Fatalf("expected *ast.SExportNamed, got %T", program.Stmts[0])
	}
	if !ex.TypeOnly {
		t.Error("expected TypeOnly export")
	}
}

// ----------------------------------------------------------------------------
// Declarations
// ----------------------------------------------------------------------------

func TestParseAmbientDeclarations(t *testing.T) {
	program := parse(t, `declare var x: number;`, Options{})
	if v, ok := program.Stmts[0].(*ast.SVar); !ok || !v.Declare {
		t.Errorf("expected declare var, got %T", program.Stmts[0])
	}

	program = parse(t, `declare function f(a: number): void;`, Options{})
	fn, ok := program.Stmts[0].(*ast.SFunction)
	if !ok || !fn.Declare {
		t.Fatalf("expected declare function, got %T", program.Stmts[0])
	}
	if fn.Fn.Body != nil {
		t.Error("declare function should have no body")
	}

	program = parse(t, `declare class C {}`, Options{})
	if c, ok := program.Stmts[0].(*ast.SClass); !ok || !c.Declare {
		t.Errorf("expected declare class, got %T", program.Stmts[0])
	}
}

func TestParseOverloadSignatures(t *testing.T) {
	program := parse(t, "function f(a: number): void;\nfunction f(a) {}", Options{})
	if len(program.Stmts) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(program.Stmts))
	}
	sig := program.Stmts[0].(*ast.SFunction)
	impl := program.Stmts[1].(*ast.SFunction)
	if sig.Fn.Body != nil {
		t.Error("overload signature should have no body")
	}
	if impl.Fn.Body == nil {
		t.Error("implementation should have a body")
	}
}

func TestParseTypeDeclarations(t *testing.T) {
	program := parse(t, "interface I {\n    m(): void;\n}\ntype Alias = I | null;", Options{})
	iface, ok := program.Stmts[0].(*ast.SInterface)
	if !ok {
		t.Fatalf("expected *ast.SInterface, got %T", program.Stmts[0])
	}
	if iface.Name.Name != "I" {
		t.Errorf("expected interface I, got %q", iface.Name.Name)
	}
	alias, ok := program.Stmts[1].(*ast.STypeAlias)
	if !ok {
		t.Fatalf("expected *ast.STypeAlias, got %T", program.Stmts[1])
	}
	if alias.Name.Name != "Alias" {
		t.Errorf("expected type Alias, got %q", alias.Name.Name)
	}
}

func TestParseEnum(t *testing.T) {
	program := parse(t, `enum E { A, B = 2, C = "x" }`, Options{})
	e, ok := program.Stmts[0].(*ast.SEnum)
	if !ok {
		t.Fatalf("expected *ast.SEnum, got %T", program.Stmts[0])
	}
	if e.Name.Name != "E" || len(e.Members) != 3 {
		t.Fatalf("expected enum E with 3 members, got %q with %d", e.Name.Name, len(e.Members))
	}
	if e.Members[0].Init != nil {
		t.Error("expected A to be auto-increment")
	}
	if e.Members[1].Name != "B" || e.Members[1].Init == nil {
		t.Error("expected B = 2 with an initializer")
	}
	if e.Members[2].Name != "C" {
		t.Errorf("expected member C, got %q", e.Members[2].Name)
	}

	program = parse(t, `enum E { "my name" = 1 }`, Options{})
	e = program.Stmts[0].(*ast.SEnum)
	if !e.Members[0].StringKey || e.Members[0].Name != "my name" {
		t.Errorf("expected string-keyed member without quotes, got %+v", e.Members[0])
	}
}

func TestParseEnumModifiers(t *testing.T) {
	program := parse(t, `const enum E { A }`, Options{})
	if e := program.Stmts[0].(*ast.SEnum); !e.Const {
		t.Error("expected const enum")
	}
	program = parse(t, `declare enum E { A }`, Options{})
	if e := program.Stmts[0].(*ast.SEnum); !e.Declare {
		t.Error("expected declare enum")
	}
}

func TestParseNamespaceForms(t *testing.T) {
	program := parse(t, `declare namespace N { var x: number; }`, Options{})
	ns, ok := program.Stmts[0].(*ast.SNamespace)
	if !ok {
		t.Fatalf("expected *ast.SNamespace, got %T", program.Stmts[0])
	}
	if !ns.Declare || ns.Name != "N" {
		t.Errorf("expected ambient namespace N, got %+v", ns)
	}

	program = parse(t, `declare module "fs" {}`, Options{})
	ns = program.Stmts[0].(*ast.SNamespace)
	if !ns.StringName || ns.Name != "fs" {
		t.Errorf("expected string-named module fs, got %+v", ns)
	}

	program = parse(t, `namespace N { export const x = 1; }`, Options{})
	ns = program.Stmts[0].(*ast.SNamespace)
	if ns.Declare || ns.StringName {
		t.Errorf("expected plain namespace, got %+v", ns)
	}
}

// ----------------------------------------------------------------------------
// Type Syntax Consumption
// ----------------------------------------------------------------------------

func TestParseAnnotations(t *testing.T) {
	expectPrinted(t, `let x: Map<string, number[]> = new Map();`, "let x = new Map();\n")
	expectPrinted(t, "function f<T>(a: T, b?: string): T {\n    return a;\n}", "function f(a, b) {\n    return a;\n}\n")
	expectPrinted(t, "const f = (a: number): number => a;", "const f = (a) => a;\n")
	expectPrinted(t, "let t: [string, ...number[]];", "let t;\n")
	expectPrinted(t, "let o: { a: string; b(): void };", "let o;\n")
	expectPrinted(t, "let p: { m<T>(x: T): T; n() };", "let p;\n")
	expectPrinted(t, "let fn: (a: number) => void;", "let fn;\n")
}

func TestParseCasts(t *testing.T) {
	expectPrinted(t, "let x;\nconst v = x as unknown as string;", "let x;\nconst v = x;\n")
	expectPrinted(t, "let y;\nconst u = <number>y;", "let y;\nconst u = y;\n")
	expectPrinted(t, "let a;\nconst s = a satisfies object;", "let a;\nconst s = a;\n")
	expectPrinted(t, "let b;\nb!.m();", "let b;\nb.m();\n")
}

func TestParseCallTypeArguments(t *testing.T) {
	expectPrinted(t, "function f(x) {\n    return x;\n}\nf<number>(1);", "function f(x) {\n    return x;\n}\nf(1);\n")
	expectPrinted(t, "class Box {}\nnew Box<number>();", "class Box {}\nnew Box();\n")
}

func TestParseTemplateSubstitutions(t *testing.T) {
	program := parse(t, "let x;\nconst s = `a${x}b`;", Options{})
	decl := program.Stmts[1].(*ast.SVar).Decls[0]
	tmpl, ok := decl.Init.(*ast.ETemplate)
	if !ok {
		t.Fatalf("expected *ast.ETemplate, got %T", decl.Init)
	}
	if len(tmpl.Quasis) != 2 || len(tmpl.Exprs) != 1 {
		t.Fatalf("expected 2 quasis and 1 substitution, got %d and %d", len(tmpl.Quasis), len(tmpl.Exprs))
	}
	if tmpl.Quasis[0] != "a" || tmpl.Quasis[1] != "b" {
		t.Errorf("expected quasis a/b, got %q/%q", tmpl.Quasis[0], tmpl.Quasis[1])
	}
	sym := symbolNamed(t, program, "x")
	if len(sym.Refs) != 1 || sym.Refs[0].InTypePosition {
		t.Errorf("expected substitution to bind x as a value, got %+v", sym.Refs)
	}
}

// ----------------------------------------------------------------------------
// Classes
// ----------------------------------------------------------------------------

func TestParseParameterProperties(t *testing.T) {
	program := parse(t, "class C {\n    constructor(private a: number, readonly b = 1, c) {}\n}", Options{})
	class := program.Stmts[0].(*ast.SClass).Class
	ctor := class.Members[0].(*ast.MethodMember)
	if ctor.Kind != ast.MethodConstructor {
		t.Fatalf("expected constructor, got kind %v", ctor.Kind)
	}
	params := ctor.Fn.Params
	if params[0].Accessibility != ast.AccessPrivate {
		t.Errorf("expected private on first parameter, got %v", params[0].Accessibility)
	}
	if !params[1].Readonly || !params[1].IsProperty() {
		t.Error("expected readonly parameter property")
	}
	if params[2].IsProperty() {
		t.Error("expected plain parameter")
	}
}

func TestParseThisParameter(t *testing.T) {
	program := parse(t, `function f(this: Window, a) {}`, Options{})
	fn := program.Stmts[0].(*ast.SFunction)
	if len(fn.Fn.Params) != 2 {
		t.Fatalf("expected 2 parameters, got %d", len(fn.Fn.Params))
	}
	bind, ok := fn.Fn.Params[0].Binding.(*ast.BIdentifier)
	if !ok || bind.Name != "this" {
		t.Errorf("expected this parameter first, got %+v", fn.Fn.Params[0].Binding)
	}
}

func TestParseAbstractClass(t *testing.T) {
	program := parse(t, "abstract class A {\n    abstract m(): void;\n    n() {}\n}", Options{})
	sc := program.Stmts[0].(*ast.SClass)
	if !sc.Class.Abstract {
		t.Error("expected abstract class")
	}
	m := sc.Class.Members[0].(*ast.MethodMember)
	if !m.Abstract || m.Fn.Body != nil {
		t.Error("expected abstract method without a body")
	}
}

func TestParseClassHeritage(t *testing.T) {
	program := parse(t, "class B {}\nclass A<T> extends B<T> implements I, J {}", Options{})
	class := program.Stmts[1].(*ast.SClass).Class
	if class.Extends == nil {
		t.Error("expected extends clause")
	}
	if len(class.TypeParams) != 1 {
		t.Errorf("expected 1 type parameter, got %d", len(class.TypeParams))
	}
	if len(class.Implements) != 2 {
		t.Errorf("expected 2 implemented interfaces, got %d", len(class.Implements))
	}
}

// ----------------------------------------------------------------------------
// Reference Sites
// ----------------------------------------------------------------------------

func TestRefSitesTypePosition(t *testing.T) {
	program := parse(t, "import { A } from \"m\";\nlet x: A;", Options{})
	sym := symbolNamed(t, program, "A")
	if len(sym.Refs) != 1 || !sym.Refs[0].InTypePosition {
		t.Errorf("expected one type-position ref, got %+v", sym.Refs)
	}
	if !sym.OnlyReferencedAsType() {
		t.Error("expected A to be only referenced as a type")
	}
}

func TestRefSitesValuePosition(t *testing.T) {
	program := parse(t, "import { B } from \"m\";\nconst y = B;", Options{})
	sym := symbolNamed(t, program, "B")
	if len(sym.Refs) != 1 || sym.Refs[0].InTypePosition {
		t.Errorf("expected one value-position ref, got %+v", sym.Refs)
	}
	if sym.OnlyReferencedAsType() {
		t.Error("expected B to count as a value reference")
	}
}

func TestRefSitesMixed(t *testing.T) {
	program := parse(t, "import { C } from \"m\";\nlet z: C = C.make();", Options{})
	sym := symbolNamed(t, program, "C")
	if len(sym.Refs) != 2 {
		t.Fatalf("expected two refs, got %d", len(sym.Refs))
	}
	if sym.OnlyReferencedAsType() {
		t.Error("expected mixed references to count as value use")
	}
}

func TestRefSitesTypeofQuery(t *testing.T) {
	program := parse(t, "import { D } from \"m\";\nlet w: typeof D;", Options{})
	sym := symbolNamed(t, program, "D")
	if len(sym.Refs) != 1 || !sym.Refs[0].InTypePosition {
		t.Errorf("expected typeof query to record a type-position ref, got %+v", sym.Refs)
	}
}

func TestRefSitesUnreferenced(t *testing.T) {
	program := parse(t, `import { E } from "m";`, Options{})
	sym := symbolNamed(t, program, "E")
	if len(sym.Refs) != 0 {
		t.Errorf("expected no refs, got %+v", sym.Refs)
	}
	if !sym.OnlyReferencedAsType() {
		t.Error("expected zero references to count as type-only")
	}
}

// ----------------------------------------------------------------------------
// JSX
// ----------------------------------------------------------------------------

func TestParseJSX(t *testing.T) {
	expectPrintedJSX(t, "let x;\nconst el = <div className=\"a\">{x}</div>;", "let x;\nconst el = <div className=\"a\">{x}</div>;\n")
	expectPrintedJSX(t, "const el = <br />;", "const el = <br />;\n")
	expectPrintedJSX(t, "const el = <>text</>;", "const el = <>text</>;\n")
}

func TestParseJSXSetsFlag(t *testing.T) {
	program := parse(t, `const el = <br />;`, Options{JSX: true})
	if !program.HasJSX {
		t.Error("expected HasJSX to be set")
	}
	program = parse(t, `const x = 1;`, Options{JSX: true})
	if program.HasJSX {
		t.Error("expected HasJSX to be unset without elements")
	}
}

func TestParseAngleBracketAssertionWithoutJSX(t *testing.T) {
	// Without JSX enabled, <T>x is an old-style type assertion.
	program := parse(t, "let x;\nconst u = <T>x;", Options{})
	if program.HasJSX {
		t.Error("expected type assertion, not JSX")
	}
}

// ----------------------------------------------------------------------------
// Errors
// ----------------------------------------------------------------------------

func TestParseErrors(t *testing.T) {
	expectParseError(t, `enum E { = 1 }`, "expected enum member name")
	expectParseError(t, `declare 5;`, "expected declaration after declare")
	expectParseError(t, "switch (x) {\n    y();\n}", "expected case or default")
	expectParseError(t, `declare namespace {}`, "expected namespace name")
}
