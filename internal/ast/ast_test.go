package ast

import "testing"

// ----------------------------------------------------------------------------
// Ref Tests
// ----------------------------------------------------------------------------

func TestRefIsValid(t *testing.T) {
	// Valid ref
	valid := Ref{SourceIndex: 0, InnerIndex: 0}
	if !valid.IsValid() {
		t.Error("Ref{0, 0} should be valid")
	}

	// Invalid ref
	invalid := InvalidRef()
	if invalid.IsValid() {
		t.Error("InvalidRef() should not be valid")
	}
}

// ----------------------------------------------------------------------------
// Symbol Tests
// ----------------------------------------------------------------------------

func TestOnlyReferencedAsType(t *testing.T) {
	// No references at all counts as type-only
	unreferenced := Symbol{OriginalName: "T", Kind: SymbolImport}
	if !unreferenced.OnlyReferencedAsType() {
		t.Error("symbol with no references should count as type-only")
	}

	typeOnly := Symbol{
		OriginalName: "T",
		Kind:         SymbolImport,
		Refs: []RefSite{
			{Loc: Loc{Start: 10}, InTypePosition: true},
			{Loc: Loc{Start: 42}, InTypePosition: true},
		},
	}
	if !typeOnly.OnlyReferencedAsType() {
		t.Error("symbol referenced only in type positions should be type-only")
	}

	// A single value reference disqualifies the symbol
	mixed := Symbol{
		OriginalName: "T",
		Kind:         SymbolImport,
		Refs: []RefSite{
			{Loc: Loc{Start: 10}, InTypePosition: true},
			{Loc: Loc{Start: 42}, InTypePosition: false},
		},
	}
	if mixed.OnlyReferencedAsType() {
		t.Error("symbol with a value reference should NOT be type-only")
	}
}

// ----------------------------------------------------------------------------
// Param Tests
// ----------------------------------------------------------------------------

func TestParamIsProperty(t *testing.T) {
	plain := &Param{Binding: &BIdentifier{Name: "x"}}
	if plain.IsProperty() {
		t.Error("plain parameter should not be a property")
	}

	private := &Param{Binding: &BIdentifier{Name: "x"}, Accessibility: AccessPrivate}
	if !private.IsProperty() {
		t.Error("private parameter should be a property")
	}

	readonly := &Param{Binding: &BIdentifier{Name: "x"}, Readonly: true}
	if !readonly.IsProperty() {
		t.Error("readonly parameter should be a property")
	}
}

// ----------------------------------------------------------------------------
// Accessibility.String() Tests
// ----------------------------------------------------------------------------

func TestAccessibilityString(t *testing.T) {
	tests := []struct {
		access   Accessibility
		expected string
	}{
		{AccessNone, ""},
		{AccessPublic, "public"},
		{AccessPrivate, "private"},
		{AccessProtected, "protected"},
		{Accessibility(99), ""}, // Unknown value
	}

	for _, tt := range tests {
		got := tt.access.String()
		if got != tt.expected {
			t.Errorf("Accessibility(%d).String() = %q, want %q", tt.access, got, tt.expected)
		}
	}
}

// ----------------------------------------------------------------------------
// VarKind.String() Tests
// ----------------------------------------------------------------------------

func TestVarKindString(t *testing.T) {
	tests := []struct {
		kind     VarKind
		expected string
	}{
		{VarVar, "var"},
		{VarLet, "let"},
		{VarConst, "const"},
	}

	for _, tt := range tests {
		got := tt.kind.String()
		if got != tt.expected {
			t.Errorf("VarKind(%d).String() = %q, want %q", tt.kind, got, tt.expected)
		}
	}
}

// ----------------------------------------------------------------------------
// BinaryOp Tests
// ----------------------------------------------------------------------------

func TestBinaryOpIsAssign(t *testing.T) {
	if BinOpAdd.IsAssign() {
		t.Error("+ should not be an assignment operator")
	}
	if !BinOpAssign.IsAssign() {
		t.Error("= should be an assignment operator")
	}
	if !BinOpAddAssign.IsAssign() {
		t.Error("+= should be an assignment operator")
	}
}

func TestBinaryOpString(t *testing.T) {
	tests := []struct {
		op       BinaryOp
		expected string
	}{
		{BinOpAdd, "+"},
		{BinOpStrictEq, "==="},
		{BinOpUShr, ">>>"},
		{BinOpInstanceof, "instanceof"},
		{BinOpAssign, "="},
		{BinOpAddAssign, "+="},
	}

	for _, tt := range tests {
		got := tt.op.String()
		if got != tt.expected {
			t.Errorf("BinaryOp(%d).String() = %q, want %q", tt.op, got, tt.expected)
		}
	}
}

// ----------------------------------------------------------------------------
// EString Tests
// ----------------------------------------------------------------------------

func TestEStringValue(t *testing.T) {
	s := &EString{Raw: `"hello"`}
	if s.Value() != "hello" {
		t.Errorf("Value() = %q, want %q", s.Value(), "hello")
	}

	single := &EString{Raw: `'x'`}
	if single.Value() != "x" {
		t.Errorf("Value() = %q, want %q", single.Value(), "x")
	}
}

// ----------------------------------------------------------------------------
// Scope Tests
// ----------------------------------------------------------------------------

func TestNewScope(t *testing.T) {
	// Create root scope with no parent
	root := NewScope(nil)
	if root == nil {
		t.Fatal("NewScope should not return nil")
	}
	if root.Parent != nil {
		t.Error("root scope should have nil parent")
	}
	if root.Members == nil {
		t.Error("scope.Members should be initialized")
	}

	// Create child scope
	child := NewScope(root)
	if child.Parent != root {
		t.Error("child scope should have root as parent")
	}
	if len(root.Children) != 1 || root.Children[0] != child {
		t.Error("child scope should be registered on the parent")
	}
}

func TestScopeLookup(t *testing.T) {
	root := NewScope(nil)
	root.Members["outer"] = ScopeMember{Ref: Ref{InnerIndex: 0}}

	child := NewScope(root)
	child.Members["inner"] = ScopeMember{Ref: Ref{InnerIndex: 1}}

	// Lookup resolves through the scope chain
	if ref, ok := child.Lookup("outer"); !ok || ref.InnerIndex != 0 {
		t.Error("child scope should resolve names from the parent")
	}
	if ref, ok := child.Lookup("inner"); !ok || ref.InnerIndex != 1 {
		t.Error("child scope should resolve its own names")
	}
	if _, ok := child.Lookup("missing"); ok {
		t.Error("unknown name should not resolve")
	}

	// Shadowing: the innermost binding wins
	child.Members["outer"] = ScopeMember{Ref: Ref{InnerIndex: 2}}
	if ref, _ := child.Lookup("outer"); ref.InnerIndex != 2 {
		t.Error("inner binding should shadow the outer one")
	}
}
