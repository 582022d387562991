package printer

import (
	"testing"

	"codeberg.org/saruga/stripts/internal/parser"
)

// ----------------------------------------------------------------------------
// Test Helpers (esbuild-style)
// ----------------------------------------------------------------------------

// expectPrinted verifies pretty-printed output.
func expectPrinted(t *testing.T, input string, expected string) {
	t.Helper()
	t.Run(input, func(t *testing.T) {
		t.Helper()
		p := parser.New(input, parser.Options{})
		program, errs := p.Parse()
		if len(errs) > 0 {
			t.Fatalf("parse errors: %v", errs)
		}
		pr := New(Options{})
		actual := pr.Print(program)
		if actual != expected {
			t.Errorf("\ninput:\n%s\nexpected:\n%s\nactual:\n%s", input, expected, actual)
		}
	})
}

// expectPrintedJSX verifies pretty-printed output with JSX parsing enabled.
func expectPrintedJSX(t *testing.T, input string, expected string) {
	t.Helper()
	t.Run(input+"_jsx", func(t *testing.T) {
		t.Helper()
		p := parser.New(input, parser.Options{JSX: true})
		program, errs := p.Parse()
		if len(errs) > 0 {
			t.Fatalf("parse errors: %v", errs)
		}
		pr := New(Options{})
		actual := pr.Print(program)
		if actual != expected {
			t.Errorf("\ninput:\n%s\nexpected:\n%s\nactual:\n%s", input, expected, actual)
		}
	})
}

// expectPrintedMinify verifies minified output (whitespace removed).
func expectPrintedMinify(t *testing.T, input string, expected string) {
	t.Helper()
	t.Run(input+"_minify", func(t *testing.T) {
		t.Helper()
		p := parser.New(input, parser.Options{})
		program, errs := p.Parse()
		if len(errs) > 0 {
			t.Fatalf("parse errors: %v", errs)
		}
		pr := New(Options{
			MinifyWhitespace: true,
		})
		actual := pr.Print(program)
		if actual != expected {
			t.Errorf("\ninput:\n%s\nexpected:\n%s\nactual:\n%s", input, expected, actual)
		}
	})
}

// ----------------------------------------------------------------------------
// Variable Declarations
// ----------------------------------------------------------------------------

func TestPrintVar(t *testing.T) {
	expectPrinted(t, "let x = 1;", "let x = 1;\n")
	expectPrinted(t, "const a = 1, b = 2;", "const a = 1, b = 2;\n")
	expectPrinted(t, "var u;", "var u;\n")
}

func TestPrintDestructuring(t *testing.T) {
	expectPrinted(t, "const { a, b: c = 1, ...rest } = o;",
		"const { a, b: c = 1, ...rest } = o;\n")
	expectPrinted(t, "const [x, , y = 2, ...z] = arr;",
		"const [x, , y = 2, ...z] = arr;\n")
}

// ----------------------------------------------------------------------------
// Imports and Exports
// ----------------------------------------------------------------------------

func TestPrintImports(t *testing.T) {
	expectPrinted(t, `import "./side-effect";`, "import \"./side-effect\";\n")
	expectPrinted(t, `import d from "m";`, "import d from \"m\";\n")
	expectPrinted(t, `import * as ns from "m";`, "import * as ns from \"m\";\n")
	expectPrinted(t, `import { a, b as c } from "m";`,
		"import { a, b as c } from \"m\";\n")
	expectPrinted(t, `import d, { a } from "m";`, "import d, { a } from \"m\";\n")
}

func TestPrintExports(t *testing.T) {
	expectPrinted(t, "export { a, b as c };", "export { a, b as c };\n")
	expectPrinted(t, `export { a } from "m";`, "export { a } from \"m\";\n")
	expectPrinted(t, `export * from "m";`, "export * from \"m\";\n")
	expectPrinted(t, `export * as ns from "m";`, "export * as ns from \"m\";\n")
	expectPrinted(t, "export const x = 1;", "export const x = 1;\n")
	expectPrinted(t, "export default foo;", "export default foo;\n")
	expectPrinted(t, "export default function f() {}", "export default function f() {}\n")
}

// ----------------------------------------------------------------------------
// Functions and Classes
// ----------------------------------------------------------------------------

func TestPrintFunction(t *testing.T) {
	expectPrinted(t, "function add(a, b) { return a + b; }",
		"function add(a, b) {\n    return a + b;\n}\n")
	expectPrinted(t, "async function go() { await f(); }",
		"async function go() {\n    await f();\n}\n")
	expectPrinted(t, "function* gen() { yield; }",
		"function* gen() {\n    yield;\n}\n")
	expectPrinted(t, "function f(a = 1) {}", "function f(a = 1) {}\n")
}

func TestPrintArrow(t *testing.T) {
	expectPrinted(t, "const f = (a) => a + 1;", "const f = (a) => a + 1;\n")
	expectPrinted(t, "const id = x => x;", "const id = (x) => x;\n")
	expectPrinted(t, "const g = () => ({ a: 1 });", "const g = () => ({ a: 1 });\n")
	expectPrinted(t, "const h = async () => { await f(); };",
		"const h = async () => {\n    await f();\n};\n")
}

func TestPrintClass(t *testing.T) {
	expectPrinted(t, "class A {}", "class A {}\n")
	expectPrinted(t,
		"class A extends B { x = 1; constructor(a) { super(a); } get y() { return this.x; } }",
		"class A extends B {\n"+
			"    x = 1;\n"+
			"    constructor(a) {\n"+
			"        super(a);\n"+
			"    }\n"+
			"    get y() {\n"+
			"        return this.x;\n"+
			"    }\n"+
			"}\n")
	expectPrinted(t, "class A { static create() { return new A(); } }",
		"class A {\n    static create() {\n        return new A();\n    }\n}\n")
}

func TestPrintClassDecorators(t *testing.T) {
	expectPrinted(t, "@injectable()\nclass Service {}",
		"@injectable()\nclass Service {}\n")
}

// ----------------------------------------------------------------------------
// Control Flow
// ----------------------------------------------------------------------------

func TestPrintIf(t *testing.T) {
	expectPrinted(t, "if (a) { b(); }", "if (a) {\n    b();\n}\n")
	expectPrinted(t, "if (a) { b(); } else { c(); }",
		"if (a) {\n    b();\n} else {\n    c();\n}\n")
	expectPrinted(t, "if (a) { b(); } else if (c) { d(); }",
		"if (a) {\n    b();\n} else if (c) {\n    d();\n}\n")
}

func TestPrintLoops(t *testing.T) {
	expectPrinted(t, "while (x) { f(); }", "while (x) {\n    f();\n}\n")
	expectPrinted(t, "do { f(); } while (x);", "do {\n    f();\n} while (x);\n")
	expectPrinted(t, "for (let i = 0; i < n; i++) { f(i); }",
		"for (let i = 0; i < n; i++) {\n    f(i);\n}\n")
	expectPrinted(t, "for (;;) { f(); }", "for (;;) {\n    f();\n}\n")
	expectPrinted(t, "for (const x of xs) { f(x); }",
		"for (const x of xs) {\n    f(x);\n}\n")
	expectPrinted(t, "for (const k in o) { f(k); }",
		"for (const k in o) {\n    f(k);\n}\n")
}

func TestPrintSwitch(t *testing.T) {
	expectPrinted(t, "switch (x) { case 1: f(); break; default: g(); }",
		"switch (x) {\n"+
			"    case 1:\n"+
			"        f();\n"+
			"        break;\n"+
			"    default:\n"+
			"        g();\n"+
			"}\n")
}

func TestPrintTry(t *testing.T) {
	expectPrinted(t, "try { f(); } catch (e) { g(e); } finally { h(); }",
		"try {\n    f();\n} catch (e) {\n    g(e);\n} finally {\n    h();\n}\n")
	expectPrinted(t, "try { f(); } catch { g(); }",
		"try {\n    f();\n} catch {\n    g();\n}\n")
}

// ----------------------------------------------------------------------------
// Expressions
// ----------------------------------------------------------------------------

func TestPrintExpressions(t *testing.T) {
	expectPrinted(t, "a[b] = c ? 1 : 2;", "a[b] = c ? 1 : 2;\n")
	expectPrinted(t, "f(...args);", "f(...args);\n")
	expectPrinted(t, "const a = new Foo(1);", "const a = new Foo(1);\n")
	expectPrinted(t, "const o = { a: 1, b, ...r };", "const o = { a: 1, b, ...r };\n")
	expectPrinted(t, "const s = `a${b}c`;", "const s = `a${b}c`;\n")
	expectPrinted(t, "const t = tag`v=${v}`;", "const t = tag`v=${v}`;\n")
	expectPrinted(t, "const x = -y;", "const x = -y;\n")
	expectPrinted(t, "const ok = typeof x === \"string\";",
		"const ok = typeof x === \"string\";\n")
	expectPrinted(t, "delete o.k;", "delete o.k;\n")
}

func TestPrintCastsUnwrap(t *testing.T) {
	// Leftover cast nodes print as their underlying expression
	expectPrinted(t, "const x = y as number;", "const x = y;\n")
	expectPrinted(t, "const n = v!;", "const n = v;\n")
	expectPrinted(t, "a!.b();", "a.b();\n")
}

// ----------------------------------------------------------------------------
// JSX
// ----------------------------------------------------------------------------

func TestPrintJSX(t *testing.T) {
	expectPrintedJSX(t, `const el = <div className="x">{name}</div>;`,
		"const el = <div className=\"x\">{name}</div>;\n")
	expectPrintedJSX(t, "const el = <Foo a={1} />;", "const el = <Foo a={1} />;\n")
	expectPrintedJSX(t, "const el = <>{x}</>;", "const el = <>{x}</>;\n")
	expectPrintedJSX(t, "const el = <a.b.c />;", "const el = <a.b.c />;\n")
	expectPrintedJSX(t, "const el = <div {...props}>hi</div>;",
		"const el = <div {...props}>hi</div>;\n")
}

// ----------------------------------------------------------------------------
// Minified Output
// ----------------------------------------------------------------------------

func TestPrintMinify(t *testing.T) {
	expectPrintedMinify(t, "let x = 1;", "let x=1;")
	expectPrintedMinify(t, "function f(a, b) { return a + b; }",
		"function f(a,b){return a+b;}")
	expectPrintedMinify(t, "if (a) { b(); } else { c(); }",
		"if(a){b();} else {c();}")
	expectPrintedMinify(t, "const ok = a in b;", "const ok=a in b;")
	expectPrintedMinify(t, "const d = a - -b;", "const d=a- -b;")
}
