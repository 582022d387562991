package lexer

import (
	"testing"
)

// ----------------------------------------------------------------------------
// Test Helpers (esbuild-style)
// ----------------------------------------------------------------------------

func expectToken(t *testing.T, input string, expected TokenKind) {
	t.Helper()
	l := New(input)
	tok := l.Next()
	if tok.Kind != expected {
		t.Errorf("input %q: expected %v, got %v", input, expected, tok.Kind)
	}
}

func expectTokenValue(t *testing.T, input string, expectedKind TokenKind, expectedValue string) {
	t.Helper()
	l := New(input)
	tok := l.Next()
	if tok.Kind != expectedKind {
		t.Errorf("input %q: expected kind %v, got %v", input, expectedKind, tok.Kind)
	}
	if tok.Value != expectedValue {
		t.Errorf("input %q: expected value %q, got %q", input, expectedValue, tok.Value)
	}
}

func expectTokens(t *testing.T, input string, expected []TokenKind) {
	t.Helper()
	l := New(input)
	for i, exp := range expected {
		tok := l.Next()
		if tok.Kind != exp {
			t.Errorf("input %q token %d: expected %v, got %v", input, i, exp, tok.Kind)
		}
	}
}

func expectError(t *testing.T, input string) {
	t.Helper()
	l := New(input)
	tok := l.Next()
	if tok.Kind != TokError {
		t.Errorf("input %q: expected error, got %v", input, tok.Kind)
	}
}

// ----------------------------------------------------------------------------
// Keyword Tests
// ----------------------------------------------------------------------------

func TestKeywords(t *testing.T) {
	cases := []struct {
		input string
		kind  TokenKind
	}{
		{"break", TokBreak},
		{"class", TokClass},
		{"const", TokConst},
		{"enum", TokEnum},
		{"export", TokExport},
		{"extends", TokExtends},
		{"function", TokFunction},
		{"import", TokImport},
		{"instanceof", TokInstanceof},
		{"let", TokLet},
		{"new", TokNew},
		{"return", TokReturn},
		{"static", TokStatic},
		{"super", TokSuper},
		{"this", TokThis},
		{"typeof", TokTypeof},
		{"var", TokVar},
		{"void", TokVoid},
		{"while", TokWhile},
	}

	for _, tc := range cases {
		t.Run(tc.input, func(t *testing.T) {
			expectToken(t, tc.input, tc.kind)
		})
	}
}

func TestContextualKeywords(t *testing.T) {
	cases := []struct {
		input string
		kind  TokenKind
	}{
		{"as", TokAs},
		{"async", TokAsync},
		{"await", TokAwait},
		{"from", TokFrom},
		{"get", TokGet},
		{"of", TokOf},
		{"set", TokSet},
	}

	for _, tc := range cases {
		t.Run(tc.input, func(t *testing.T) {
			expectToken(t, tc.input, tc.kind)
		})
	}
}

func TestTypeScriptKeywords(t *testing.T) {
	cases := []struct {
		input string
		kind  TokenKind
	}{
		{"abstract", TokAbstract},
		{"declare", TokDeclare},
		{"implements", TokImplements},
		{"interface", TokInterface},
		{"keyof", TokKeyof},
		{"namespace", TokNamespace},
		{"private", TokPrivate},
		{"protected", TokProtected},
		{"public", TokPublic},
		{"readonly", TokReadonly},
		{"satisfies", TokSatisfies},
		{"type", TokType},
	}

	for _, tc := range cases {
		t.Run(tc.input, func(t *testing.T) {
			expectToken(t, tc.input, tc.kind)
		})
	}
}

func TestKeywordsCarryValue(t *testing.T) {
	// Keyword tokens keep their text so they work as member names
	expectTokenValue(t, "type", TokType, "type")
	expectTokenValue(t, "as", TokAs, "as")
}

func TestIsKeyword(t *testing.T) {
	if !TokBreak.IsKeyword() {
		t.Error("break should be a keyword")
	}
	if !TokType.IsKeyword() {
		t.Error("type should be a keyword")
	}
	if TokIdent.IsKeyword() {
		t.Error("identifier should not be a keyword")
	}
	if TokLParen.IsKeyword() {
		t.Error("( should not be a keyword")
	}
}

// ----------------------------------------------------------------------------
// Identifier Tests
// ----------------------------------------------------------------------------

func TestIdentifiers(t *testing.T) {
	cases := []struct {
		input string
		value string
	}{
		{"foo", "foo"},
		{"_bar", "_bar"},
		{"$jquery", "$jquery"},
		{"camelCase", "camelCase"},
		{"UPPER_CASE", "UPPER_CASE"},
		{"a1", "a1"},
		{"typeOf", "typeOf"}, // Not the keyword
	}

	for _, tc := range cases {
		t.Run(tc.input, func(t *testing.T) {
			expectTokenValue(t, tc.input, TokIdent, tc.value)
		})
	}
}

// ----------------------------------------------------------------------------
// Number Tests
// ----------------------------------------------------------------------------

func TestNumbers(t *testing.T) {
	cases := []string{
		"0", "42", "1234567890",
		"3.14", "0.5", ".5",
		"1e10", "1e+10", "1e-10", "2.5e3",
		"0x1F", "0xabcdef", "0b1010", "0o777",
	}

	for _, input := range cases {
		t.Run(input, func(t *testing.T) {
			expectTokenValue(t, input, TokNumber, input)
		})
	}
}

// ----------------------------------------------------------------------------
// String Tests
// ----------------------------------------------------------------------------

func TestStrings(t *testing.T) {
	// The raw token value keeps the quotes
	expectTokenValue(t, `"hello"`, TokString, `"hello"`)
	expectTokenValue(t, `'world'`, TokString, `'world'`)
	expectTokenValue(t, `"with \" escape"`, TokString, `"with \" escape"`)
	expectTokenValue(t, `'it\'s'`, TokString, `'it\'s'`)
}

func TestUnterminatedString(t *testing.T) {
	expectError(t, `"never ends`)
	expectError(t, "'crosses\nlines'")
}

// ----------------------------------------------------------------------------
// Template Literal Tests
// ----------------------------------------------------------------------------

func TestTemplates(t *testing.T) {
	// A template literal is one token, substitutions included
	expectTokenValue(t, "`hello`", TokTemplate, "`hello`")
	expectTokenValue(t, "`a ${b} c`", TokTemplate, "`a ${b} c`")
	expectTokenValue(t, "`x ${ {a: 1} } y`", TokTemplate, "`x ${ {a: 1} } y`")
	expectTokenValue(t, "`outer ${ `inner ${z}` }`", TokTemplate, "`outer ${ `inner ${z}` }`")
	expectTokenValue(t, "`multi\nline`", TokTemplate, "`multi\nline`")
}

func TestUnterminatedTemplate(t *testing.T) {
	expectError(t, "`never ends")
}

// ----------------------------------------------------------------------------
// Operator Tests
// ----------------------------------------------------------------------------

func TestOperators(t *testing.T) {
	cases := []struct {
		input string
		kind  TokenKind
	}{
		{"+", TokPlus},
		{"-", TokMinus},
		{"++", TokPlusPlus},
		{"--", TokMinusMinus},
		{"=>", TokArrow},
		{"===", TokEqEqEq},
		{"!==", TokBangEqEq},
		{"==", TokEqEq},
		{"!=", TokBangEq},
		{"<=", TokLtEq},
		{">=", TokGtEq},
		{"<<", TokLtLt},
		{">>", TokGtGt},
		{">>>", TokGtGtGt},
		{"&&", TokAmpAmp},
		{"||", TokPipePipe},
		{"+=", TokPlusEq},
		{"...", TokDotDotDot},
		{"?", TokQuestion},
		{"@", TokAt},
	}

	for _, tc := range cases {
		t.Run(tc.input, func(t *testing.T) {
			expectToken(t, tc.input, tc.kind)
		})
	}
}

func TestOperatorSequences(t *testing.T) {
	expectTokens(t, "a => b", []TokenKind{TokIdent, TokArrow, TokIdent, TokEOF})
	expectTokens(t, "x!", []TokenKind{TokIdent, TokBang, TokEOF})
	expectTokens(t, "a < b", []TokenKind{TokIdent, TokLt, TokIdent, TokEOF})
	// >>> must win over >> and >
	expectTokens(t, "a>>>b", []TokenKind{TokIdent, TokGtGtGt, TokIdent, TokEOF})
}

// ----------------------------------------------------------------------------
// Comment Tests
// ----------------------------------------------------------------------------

func TestCommentsAreSkipped(t *testing.T) {
	expectTokens(t, "a // comment\nb", []TokenKind{TokIdent, TokIdent, TokEOF})
	expectTokens(t, "a /* block */ b", []TokenKind{TokIdent, TokIdent, TokEOF})
}

func TestCommentsAreCollected(t *testing.T) {
	l := New("/* @jsx h */\nlet x = 1; // trailing")
	l.Tokenize()

	comments := l.Comments()
	if len(comments) != 2 {
		t.Fatalf("expected 2 comments, got %d", len(comments))
	}
	if comments[0].Text != " @jsx h " {
		t.Errorf("block comment text = %q, want %q", comments[0].Text, " @jsx h ")
	}
	if comments[1].Text != " trailing" {
		t.Errorf("line comment text = %q, want %q", comments[1].Text, " trailing")
	}
}

// ----------------------------------------------------------------------------
// Statement Tests
// ----------------------------------------------------------------------------

func TestStatementTokenization(t *testing.T) {
	expectTokens(t, "const x: number = 1;", []TokenKind{
		TokConst, TokIdent, TokColon, TokIdent, TokEq, TokNumber, TokSemicolon, TokEOF,
	})
	expectTokens(t, `import { a as b } from "mod";`, []TokenKind{
		TokImport, TokLBrace, TokIdent, TokAs, TokIdent, TokRBrace, TokFrom, TokString, TokSemicolon, TokEOF,
	})
	expectTokens(t, "enum E { A = 1 }", []TokenKind{
		TokEnum, TokIdent, TokLBrace, TokIdent, TokEq, TokNumber, TokRBrace, TokEOF,
	})
}

func TestTokenPositions(t *testing.T) {
	l := New("let x")
	tok := l.Next()
	if tok.Start != 0 || tok.End != 3 {
		t.Errorf("let: Start=%d End=%d, want 0 3", tok.Start, tok.End)
	}
	tok = l.Next()
	if tok.Start != 4 || tok.End != 5 {
		t.Errorf("x: Start=%d End=%d, want 4 5", tok.Start, tok.End)
	}
}

func TestEOF(t *testing.T) {
	expectToken(t, "", TokEOF)
	expectToken(t, "   \n\t  ", TokEOF)
	expectToken(t, "// only a comment", TokEOF)
}
