package ast

// TypeAnnotation represents a type expression. The stripper never prints
// these; they exist so the parser can record which identifiers are
// referenced in type positions before the annotations are cleared.
type TypeAnnotation interface {
	isType()
}

// TRef is a (possibly qualified) type reference: Name, a.b.Name, or
// Name<Args>. Only the head of a qualified name resolves to a symbol.
type TRef struct {
	Loc      Loc
	Parts    []string // "Name" or "a", "b", "Name"
	HeadRef  Ref
	TypeArgs []TypeAnnotation
}

func (*TRef) isType() {}

// TQuery is a type query: typeof name (or typeof a.b). The head
// identifier is recorded as a type-position reference.
type TQuery struct {
	Loc     Loc
	Parts   []string
	HeadRef Ref
}

func (*TQuery) isType() {}

// TKeyword is a built-in keyword type (string, number, any, void, ...)
// or a literal type ("x", 42, true, null).
type TKeyword struct {
	Loc Loc
	Raw string
}

func (*TKeyword) isType() {}

// TFunc is a function or constructor type: (a: A) => B.
type TFunc struct {
	Loc        Loc
	TypeParams []TypeParam
	Params     []TypeAnnotation
	Return     TypeAnnotation
}

func (*TFunc) isType() {}

// TObjectProp is one member of an object type literal. Only the value
// type matters for reference recording.
type TObjectProp struct {
	Loc  Loc
	Type TypeAnnotation
}

// TObject is an object type literal: { a: A; b(): B }.
type TObject struct {
	Loc   Loc
	Props []TObjectProp
}

func (*TObject) isType() {}

// TComposite is a union, intersection, or similar list-shaped type.
type TComposite struct {
	Loc   Loc
	Types []TypeAnnotation
}

func (*TComposite) isType() {}

// TArray is an array type: T[].
type TArray struct {
	Loc  Loc
	Elem TypeAnnotation
}

func (*TArray) isType() {}

// TTuple is a tuple type: [A, B].
type TTuple struct {
	Loc   Loc
	Elems []TypeAnnotation
}

func (*TTuple) isType() {}
