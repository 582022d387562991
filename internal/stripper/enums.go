package stripper

import (
	"strconv"

	"codeberg.org/saruga/stripts/internal/ast"
	"codeberg.org/saruga/stripts/internal/diagnostic"
)

// compileEnum turns an enum declaration into runtime code:
//
//	enum E { A, B, S = "s" }
//
// becomes
//
//	var E;
//	(function(E) {
//	    E[E["A"] = 0] = "A";
//	    E[E["B"] = 1] = "B";
//	    E["S"] = "s";
//	})(E || (E = {}));
//
// Numeric members get the reverse mapping (E[0] resolves to "A");
// string members map forward only. A member initializer may reference
// earlier members of the same enum bare or as E.Member; bare references
// are rewritten against the closure parameter. Forward references have
// no value yet and are rejected. const enums generate identically.
func (st *fileState) compileEnum(s *ast.SEnum) ([]ast.Stmt, error) {
	name := s.Name.Name
	all := make(map[string]struct{}, len(s.Members))
	for _, m := range s.Members {
		all[m.Name] = struct{}{}
	}
	earlier := make(map[string]struct{}, len(s.Members))
	stringMembers := make(map[string]struct{})

	body := make([]ast.Stmt, 0, len(s.Members))

	// Next auto-increment value; unknown after a member whose value is
	// not a numeric literal
	counter := float64(0)
	counterKnown := true

	for i := range s.Members {
		m := &s.Members[i]
		var value ast.Expr
		isString := false

		if m.Init == nil {
			if !counterKnown {
				return nil, st.unsupported(m.Loc, diagnostic.CodeEnumUnsupported,
					"enum member \""+m.Name+"\" needs an initializer: the previous member's value is not a numeric literal",
					"")
			}
			value = &ast.ENumber{Loc: m.Loc, Raw: formatEnumValue(counter)}
			counter++
		} else {
			init, err := st.stripExpr(m.Init)
			if err != nil {
				return nil, err
			}
			init, err = st.rewriteEnumRefs(init, name, earlier, all)
			if err != nil {
				return nil, err
			}
			isString = st.isStringValued(init, name, stringMembers)
			if n, ok := evalEnumNumber(init); ok {
				counter = n + 1
				counterKnown = true
			} else {
				counterKnown = false
			}
			value = init
		}
		earlier[m.Name] = struct{}{}
		if isString {
			stringMembers[m.Name] = struct{}{}
		}

		key := &ast.EString{Loc: m.Loc, Raw: strconv.Quote(m.Name)}
		forward := &ast.EBinary{
			Op:    ast.BinOpAssign,
			Left:  &ast.EIndex{Target: enumIdent(name), Index: key},
			Right: value,
		}
		if isString {
			body = append(body, &ast.SExpr{Expr: forward})
		} else {
			// Reverse mapping: E[E["A"] = 0] = "A"
			body = append(body, &ast.SExpr{Expr: &ast.EBinary{
				Op:    ast.BinOpAssign,
				Left:  &ast.EIndex{Target: enumIdent(name), Index: forward},
				Right: &ast.EString{Loc: m.Loc, Raw: strconv.Quote(m.Name)},
			}})
		}
	}

	decl := &ast.SVar{
		Loc:  s.Loc,
		Kind: ast.VarVar,
		Decls: []*ast.VarDeclarator{{
			Loc:     s.Loc,
			Binding: &ast.BIdentifier{Loc: s.Name.Loc, Name: name, Ref: s.Name.Ref},
		}},
	}

	closure := &ast.SExpr{Expr: &ast.ECall{
		Target: &ast.EParen{Expr: &ast.EFunction{
			Fn: &ast.Fn{
				Params: []*ast.Param{{Binding: &ast.BIdentifier{Name: name, Ref: ast.InvalidRef()}}},
				Body:   &ast.SBlock{Stmts: body},
			},
		}},
		Args: []ast.Expr{&ast.EBinary{
			Op:   ast.BinOpLogicalOr,
			Left: enumIdent(name),
			Right: &ast.EParen{Expr: &ast.EBinary{
				Op:    ast.BinOpAssign,
				Left:  enumIdent(name),
				Right: &ast.EObject{},
			}},
		}},
	}}

	return []ast.Stmt{decl, closure}, nil
}

func enumIdent(name string) *ast.EIdentifier {
	return &ast.EIdentifier{Name: name, Ref: ast.InvalidRef()}
}

// isStringValued reports whether a compiled member initializer yields a
// string: a string literal, or a reference to an earlier string-valued
// member of the same enum. String-valued members get no reverse mapping.
func (st *fileState) isStringValued(expr ast.Expr, name string, stringMembers map[string]struct{}) bool {
	switch e := expr.(type) {
	case *ast.EString:
		return true
	case *ast.EParen:
		return st.isStringValued(e.Expr, name, stringMembers)
	case *ast.EDot:
		if target, ok := e.Target.(*ast.EIdentifier); ok && target.Name == name {
			_, isString := stringMembers[e.Name]
			return isString
		}
	}
	return false
}

// rewriteEnumRefs resolves references to members of the enum being
// compiled, bare or qualified as E.Member. Earlier members rewrite to a
// property read off the closure parameter; later members have no value
// yet and fail.
func (st *fileState) rewriteEnumRefs(expr ast.Expr, name string, earlier, all map[string]struct{}) (ast.Expr, error) {
	var err error
	switch e := expr.(type) {
	case *ast.EIdentifier:
		if _, member := all[e.Name]; member {
			if _, assigned := earlier[e.Name]; !assigned {
				return nil, st.unsupported(e.Loc, diagnostic.CodeEnumUnsupported,
					"enum member \""+e.Name+"\" is referenced before its value is assigned",
					"move the referenced member earlier in the enum")
			}
			return &ast.EDot{Loc: e.Loc, Target: enumIdent(name), Name: e.Name}, nil
		}

	case *ast.EDot:
		if target, ok := e.Target.(*ast.EIdentifier); ok && target.Name == name {
			if _, member := all[e.Name]; member {
				if _, assigned := earlier[e.Name]; !assigned {
					return nil, st.unsupported(e.Loc, diagnostic.CodeEnumUnsupported,
						"enum member \""+e.Name+"\" is referenced before its value is assigned",
						"move the referenced member earlier in the enum")
				}
				return expr, nil
			}
		}
		if e.Target, err = st.rewriteEnumRefs(e.Target, name, earlier, all); err != nil {
			return nil, err
		}

	case *ast.EParen:
		if e.Expr, err = st.rewriteEnumRefs(e.Expr, name, earlier, all); err != nil {
			return nil, err
		}

	case *ast.EBinary:
		if e.Left, err = st.rewriteEnumRefs(e.Left, name, earlier, all); err != nil {
			return nil, err
		}
		if e.Right, err = st.rewriteEnumRefs(e.Right, name, earlier, all); err != nil {
			return nil, err
		}

	case *ast.EUnary:
		if e.Operand, err = st.rewriteEnumRefs(e.Operand, name, earlier, all); err != nil {
			return nil, err
		}

	case *ast.ECond:
		if e.Test, err = st.rewriteEnumRefs(e.Test, name, earlier, all); err != nil {
			return nil, err
		}
		if e.Yes, err = st.rewriteEnumRefs(e.Yes, name, earlier, all); err != nil {
			return nil, err
		}
		if e.No, err = st.rewriteEnumRefs(e.No, name, earlier, all); err != nil {
			return nil, err
		}

	case *ast.ECall:
		if e.Target, err = st.rewriteEnumRefs(e.Target, name, earlier, all); err != nil {
			return nil, err
		}
		for i := range e.Args {
			if e.Args[i], err = st.rewriteEnumRefs(e.Args[i], name, earlier, all); err != nil {
				return nil, err
			}
		}

	case *ast.EIndex:
		if e.Target, err = st.rewriteEnumRefs(e.Target, name, earlier, all); err != nil {
			return nil, err
		}
		if e.Index, err = st.rewriteEnumRefs(e.Index, name, earlier, all); err != nil {
			return nil, err
		}
	}
	return expr, nil
}

// evalEnumNumber evaluates the numeric literals auto-increment can
// continue from: plain numbers, unary minus, parens.
func evalEnumNumber(expr ast.Expr) (float64, bool) {
	switch e := expr.(type) {
	case *ast.ENumber:
		if n, err := strconv.ParseFloat(e.Raw, 64); err == nil {
			return n, true
		}
		// Hex, octal, and binary forms
		if n, err := strconv.ParseInt(e.Raw, 0, 64); err == nil {
			return float64(n), true
		}
	case *ast.EUnary:
		if e.Op == ast.UnOpNeg {
			if n, ok := evalEnumNumber(e.Operand); ok {
				return -n, true
			}
		}
	case *ast.EParen:
		return evalEnumNumber(e.Expr)
	}
	return 0, false
}

func formatEnumValue(n float64) string {
	return strconv.FormatFloat(n, 'g', -1, 64)
}
