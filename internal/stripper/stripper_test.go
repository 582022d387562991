package stripper

import (
	"strings"
	"testing"

	"codeberg.org/saruga/stripts/internal/diagnostic"
)

// ----------------------------------------------------------------------------
// Test Helpers (esbuild-style)
// ----------------------------------------------------------------------------

// expectStripped verifies the JavaScript produced for a TypeScript input.
func expectStripped(t *testing.T, input string, expected string) {
	t.Helper()
	t.Run(input, func(t *testing.T) {
		t.Helper()
		result, err := New(Options{}).Strip(input)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Code != expected {
			t.Errorf("\ninput:\n%s\nexpected:\n%s\nactual:\n%s", input, expected, result.Code)
		}
	})
}

// expectStrippedJSX verifies output with JSX parsing enabled.
func expectStrippedJSX(t *testing.T, input string, expected string) {
	t.Helper()
	t.Run(input+"_jsx", func(t *testing.T) {
		t.Helper()
		result, err := New(Options{JSX: true}).Strip(input)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Code != expected {
			t.Errorf("\ninput:\n%s\nexpected:\n%s\nactual:\n%s", input, expected, result.Code)
		}
	})
}

// expectStripError verifies that stripping fails with the given
// diagnostic code.
func expectStripError(t *testing.T, input string, code diagnostic.DiagnosticCode) {
	t.Helper()
	t.Run(input+"_error", func(t *testing.T) {
		t.Helper()
		_, err := New(Options{}).Strip(input)
		if err == nil {
			t.Fatalf("expected error, got none\ninput:\n%s", input)
		}
		d, ok := err.(*diagnostic.Diagnostic)
		if !ok {
			t.Fatalf("expected *diagnostic.Diagnostic, got %T: %v", err, err)
		}
		if d.Code != code {
			t.Errorf("expected code %s, got %s (%s)", code, d.Code, d.Message)
		}
	})
}

// ----------------------------------------------------------------------------
// Type-Only Declarations
// ----------------------------------------------------------------------------

func TestStripInterface(t *testing.T) {
	expectStripped(t, "interface I { x: number; }\nconst a = 1;", "const a = 1;\n")
	expectStripped(t, "export interface I { x: number; }", "")
	expectStripped(t, "interface I extends J { m(): void; }", "")
}

func TestStripTypeAlias(t *testing.T) {
	expectStripped(t, "type T = number | string;\nlet x = 0;", "let x = 0;\n")
	expectStripped(t, "export type Pair<A, B> = [A, B];", "")
}

func TestStripDeclareForms(t *testing.T) {
	expectStripped(t,
		"declare const a: number;\ndeclare function g(): void;\ndeclare class C {}\nlet keep = 1;",
		"let keep = 1;\n")
	expectStripped(t, "declare namespace N { const x: number; }", "")
	expectStripped(t, "declare module \"mod\" { const x: number; }", "")
	expectStripped(t, "declare enum E { A }", "")
}

func TestStripOverloadSignatures(t *testing.T) {
	expectStripped(t,
		"function f(x: number): void;\nfunction f(x: string): void;\nfunction f(x) {}",
		"function f(x) {}\n")
}

// ----------------------------------------------------------------------------
// Annotation Stripping
// ----------------------------------------------------------------------------

func TestStripAnnotations(t *testing.T) {
	expectStripped(t, "const x: number = 1;", "const x = 1;\n")
	expectStripped(t, "let y!: string;", "let y;\n")
	expectStripped(t, "function f(a: string, b?: number): void {}", "function f(a, b) {}\n")
	expectStripped(t, "function g<T>(v: T): T { return v; }",
		"function g(v) {\n    return v;\n}\n")
	expectStripped(t, "const h = (a: number): number => a * 2;",
		"const h = (a) => a * 2;\n")
	expectStripped(t, "const { a, b }: Pair = p;", "const { a, b } = p;\n")
}

func TestStripThisParameter(t *testing.T) {
	expectStripped(t, "function f(this: Window, x: number) {}", "function f(x) {}\n")
	expectStripped(t, "function g(this: Window) {}", "function g() {}\n")
}

func TestStripCasts(t *testing.T) {
	expectStripped(t, "const y = ((x as A) as B) as C;", "const y = x;\n")
	expectStripped(t, "const z = <A>x;", "const z = x;\n")
	expectStripped(t, "const s = v satisfies Schema;", "const s = v;\n")
	expectStripped(t, "v!.m();", "v.m();\n")
	expectStripped(t, "f<number>(x);", "f(x);\n")
	expectStripped(t, "new Box<number>(x);", "new Box(x);\n")
}

func TestStripTemplateSubstitutions(t *testing.T) {
	expectStripped(t, "const s = `${x as number}`;", "const s = `${x}`;\n")
	expectStripped(t, "const s = `v=${f<number>(x)}`;", "const s = `v=${f(x)}`;\n")
	expectStripped(t, "const s = `${a!}-${<B>c}`;", "const s = `${a}-${c}`;\n")
	expectStripped(t, "const t = tag`${v satisfies V}`;", "const t = tag`${v}`;\n")
}

func TestStripClassTypeSyntax(t *testing.T) {
	expectStripped(t,
		"class A<T> extends B<T> implements I {\n"+
			"    [key: string]: number;\n"+
			"    x!: string;\n"+
			"    y: number = 1;\n"+
			"    private z?: boolean;\n"+
			"}",
		"class A extends B {\n    y = 1;\n}\n")
	expectStripped(t,
		"abstract class A {\n    abstract m(): void;\n    n() { return 1; }\n}",
		"class A {\n    n() {\n        return 1;\n    }\n}\n")
}

func TestStripKeepsDecoratedFields(t *testing.T) {
	expectStripped(t,
		"class A {\n    @observable\n    x: number;\n}",
		"class A {\n    @observable\n    x;\n}\n")
}

// ----------------------------------------------------------------------------
// Import Elision
// ----------------------------------------------------------------------------

func TestElideTypeOnlyImport(t *testing.T) {
	expectStripped(t, "import { A } from \"m\";\nlet x: A;", "let x;\n")
	expectStripped(t, "import { A, b } from \"m\";\nconst x: A = b;",
		"import { b } from \"m\";\nconst x = b;\n")
	expectStripped(t, "import D from \"m\";\nlet d: D;", "let d;\n")
	expectStripped(t, "import * as ns from \"m\";\nlet v: ns.T;", "let v;\n")
}

func TestElideUnusedImport(t *testing.T) {
	// Zero references means every reference is a type reference
	expectStripped(t, "import { A } from \"m\";", "")
}

func TestKeepValueImports(t *testing.T) {
	expectStripped(t, "import { f } from \"m\";\nf();", "import { f } from \"m\";\nf();\n")
	expectStripped(t, "import \"polyfill\";", "import \"polyfill\";\n")
	expectStripped(t, "import { g } from \"m\";\nconst s = `v=${g}`;",
		"import { g } from \"m\";\nconst s = `v=${g}`;\n")
}

func TestExplicitTypeOnlyImports(t *testing.T) {
	expectStripped(t, "import type { T } from \"m\";\nf();", "f();\n")
	expectStripped(t, "import { type T, f } from \"m\";\nf();",
		"import { f } from \"m\";\nf();\n")
}

func TestJSXPragmaKeepsImport(t *testing.T) {
	// JSX syntax implicitly reads the pragma identifier as a value
	expectStrippedJSX(t, "import React from \"react\";\nconst el = <div />;",
		"import React from \"react\";\nconst el = <div />;\n")
	// Without JSX in the file the pragma import is unused
	expectStrippedJSX(t, "import React from \"react\";\nconst x = 1;", "const x = 1;\n")
	// A @jsx comment overrides the default pragma (last match wins)
	expectStrippedJSX(t, "/* @jsx h */\nimport h from \"lib\";\nconst el = <div />;",
		"import h from \"lib\";\nconst el = <div />;\n")
	expectStrippedJSX(t, "/* @jsx h */\nimport React from \"react\";\nconst el = <div />;",
		"const el = <div />;\n")
}

// ----------------------------------------------------------------------------
// Export Elision
// ----------------------------------------------------------------------------

func TestElideTypeOnlyExports(t *testing.T) {
	expectStripped(t, "interface I {}\nconst v = 1;\nexport { I, v };",
		"const v = 1;\nexport { v };\n")
	expectStripped(t, "type T = number;\nexport { T };", "")
	expectStripped(t, "interface I {}\nexport default I;", "")
	expectStripped(t, "export type { T } from \"m\";", "")
	// Re-export names are not local bindings and stay untouched
	expectStripped(t, "export { a } from \"m\";", "export { a } from \"m\";\n")
}

func TestEnumStaysExportable(t *testing.T) {
	// An enum compiles to runtime code, so its name is a value
	expectStripped(t, "enum E { A }\nexport { E };",
		"var E;\n(function(E) {\n    E[E[\"A\"] = 0] = \"A\";\n})(E || (E = {}));\nexport { E };\n")
}

// ----------------------------------------------------------------------------
// Parameter Properties
// ----------------------------------------------------------------------------

func TestLowerParamProps(t *testing.T) {
	expectStripped(t,
		"class A {\n    constructor(public x: number, y: string) {}\n}",
		"class A {\n    constructor(x, y) {\n        this.x = x;\n    }\n}\n")
	expectStripped(t,
		"class A {\n    constructor(readonly n: number, private s = \"d\") {}\n}",
		"class A {\n    constructor(n, s = \"d\") {\n        this.n = n;\n        this.s = s;\n    }\n}\n")
}

func TestLowerParamPropsAfterSuper(t *testing.T) {
	expectStripped(t,
		"class A extends B {\n    constructor(public x: number, y: string) {\n        super(y);\n        init();\n    }\n}",
		"class A extends B {\n"+
			"    constructor(x, y) {\n"+
			"        super(y);\n"+
			"        this.x = x;\n"+
			"        init();\n"+
			"    }\n"+
			"}\n")
}

// ----------------------------------------------------------------------------
// Enums
// ----------------------------------------------------------------------------

func TestEnumNumeric(t *testing.T) {
	expectStripped(t, "enum E { A, B, C }",
		"var E;\n"+
			"(function(E) {\n"+
			"    E[E[\"A\"] = 0] = \"A\";\n"+
			"    E[E[\"B\"] = 1] = \"B\";\n"+
			"    E[E[\"C\"] = 2] = \"C\";\n"+
			"})(E || (E = {}));\n")
	expectStripped(t, "enum E { A = 5, B }",
		"var E;\n"+
			"(function(E) {\n"+
			"    E[E[\"A\"] = 5] = \"A\";\n"+
			"    E[E[\"B\"] = 6] = \"B\";\n"+
			"})(E || (E = {}));\n")
}

func TestEnumString(t *testing.T) {
	// String members map forward only: no reverse entry
	expectStripped(t, "enum S { X = \"x\" }",
		"var S;\n"+
			"(function(S) {\n"+
			"    S[\"X\"] = \"x\";\n"+
			"})(S || (S = {}));\n")
}

func TestEnumStringKeys(t *testing.T) {
	expectStripped(t, "enum E { \"my name\" = 1 }",
		"var E;\n"+
			"(function(E) {\n"+
			"    E[E[\"my name\"] = 1] = \"my name\";\n"+
			"})(E || (E = {}));\n")
}

func TestEnumMemberReferences(t *testing.T) {
	// Earlier members resolve, bare or qualified
	expectStripped(t, "enum E { A = 1, B = A * 2 }",
		"var E;\n"+
			"(function(E) {\n"+
			"    E[E[\"A\"] = 1] = \"A\";\n"+
			"    E[E[\"B\"] = E.A * 2] = \"B\";\n"+
			"})(E || (E = {}));\n")
	expectStripped(t, "enum E { A = 1, B = E.A + 1 }",
		"var E;\n"+
			"(function(E) {\n"+
			"    E[E[\"A\"] = 1] = \"A\";\n"+
			"    E[E[\"B\"] = E.A + 1] = \"B\";\n"+
			"})(E || (E = {}));\n")
}

func TestExportEnum(t *testing.T) {
	expectStripped(t, "export enum E { A }",
		"export var E;\n(function(E) {\n    E[E[\"A\"] = 0] = \"A\";\n})(E || (E = {}));\n")
}

func TestConstEnum(t *testing.T) {
	// const enum generates identically; no inlining
	expectStripped(t, "const enum E { A }",
		"var E;\n(function(E) {\n    E[E[\"A\"] = 0] = \"A\";\n})(E || (E = {}));\n")
}

// ----------------------------------------------------------------------------
// Rejections
// ----------------------------------------------------------------------------

func TestRejectImportEquals(t *testing.T) {
	expectStripError(t, "import Foo = require(\"foo\");", diagnostic.CodeImportEquals)
}

func TestRejectExportAssignment(t *testing.T) {
	expectStripError(t, "export = foo;", diagnostic.CodeExportAssignment)
}

func TestRejectValueNamespace(t *testing.T) {
	expectStripError(t, "namespace N { const x = 1; }", diagnostic.CodeNamespaceValue)
}

func TestRejectDestructuredParamProp(t *testing.T) {
	expectStripError(t, "class A { constructor(private { x }) {} }",
		diagnostic.CodeDestructuredProp)
}

func TestRejectEnumForwardReference(t *testing.T) {
	expectStripError(t, "enum E { A = B * 2, B = 1 }", diagnostic.CodeEnumUnsupported)
	expectStripError(t, "enum E { A = E.B, B = 1 }", diagnostic.CodeEnumUnsupported)
}

func TestEnumStringMemberReference(t *testing.T) {
	// A member whose value comes from a string member is itself
	// string-valued: forward mapping only, same as the literal
	expectStripped(t, "enum S { X = \"x\", Y = X }",
		"var S;\n"+
			"(function(S) {\n"+
			"    S[\"X\"] = \"x\";\n"+
			"    S[\"Y\"] = S.X;\n"+
			"})(S || (S = {}));\n")
	expectStripped(t, "enum S { X = \"x\", Y = S.X }",
		"var S;\n"+
			"(function(S) {\n"+
			"    S[\"X\"] = \"x\";\n"+
			"    S[\"Y\"] = S.X;\n"+
			"})(S || (S = {}));\n")
}

func TestRejectionCarriesRewrite(t *testing.T) {
	_, err := New(Options{}).Strip("import Foo = require(\"foo\");")
	d, ok := err.(*diagnostic.Diagnostic)
	if !ok {
		t.Fatalf("expected *diagnostic.Diagnostic, got %T", err)
	}
	if !strings.Contains(d.Rewrite, "import Foo from") {
		t.Errorf("expected a suggested rewrite, got %q", d.Rewrite)
	}
}

// ----------------------------------------------------------------------------
// Idempotence and Stats
// ----------------------------------------------------------------------------

func TestIdempotence(t *testing.T) {
	input := "import { A, b } from \"m\";\n" +
		"interface I { x: A; }\n" +
		"enum E { A, B }\n" +
		"class C {\n    constructor(public x: number) {}\n}\n" +
		"const v: I = b as I;\n"

	first, err := New(Options{}).Strip(input)
	if err != nil {
		t.Fatalf("first pass: %v", err)
	}
	second, err := New(Options{}).Strip(first.Code)
	if err != nil {
		t.Fatalf("second pass: %v", err)
	}
	if second.Code != first.Code {
		t.Errorf("not idempotent\nfirst:\n%s\nsecond:\n%s", first.Code, second.Code)
	}
}

func TestStats(t *testing.T) {
	input := "import { A } from \"m\";\n" +
		"enum E { X }\n" +
		"class C {\n    constructor(public a: number, private b: string) {}\n}\n"
	result, err := New(Options{}).Strip(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Stats.RemovedImports != 1 {
		t.Errorf("expected 1 removed import, got %d", result.Stats.RemovedImports)
	}
	if result.Stats.CompiledEnums != 1 {
		t.Errorf("expected 1 compiled enum, got %d", result.Stats.CompiledEnums)
	}
	if result.Stats.LoweredParamProps != 2 {
		t.Errorf("expected 2 lowered parameter properties, got %d", result.Stats.LoweredParamProps)
	}
	if result.Stats.OriginalSize != len(input) {
		t.Errorf("expected original size %d, got %d", len(input), result.Stats.OriginalSize)
	}
	if result.Stats.OutputSize != len(result.Code) {
		t.Errorf("expected output size %d, got %d", len(result.Code), result.Stats.OutputSize)
	}
}
