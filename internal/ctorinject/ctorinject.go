// Package ctorinject inserts generated statements into constructor bodies.
//
// Derived-class constructors must call super() before touching this, so
// injected statements land immediately after the first top-level super()
// call. Constructors without one get the statements at the front.
package ctorinject

import (
	"codeberg.org/saruga/stripts/internal/ast"
)

// Inject inserts stmts into body at the earliest position where this is
// usable. The body is modified in place.
func Inject(body *ast.SBlock, stmts []ast.Stmt) {
	if body == nil || len(stmts) == 0 {
		return
	}

	at := 0
	for i, stmt := range body.Stmts {
		if isSuperCall(stmt) {
			at = i + 1
			break
		}
	}

	out := make([]ast.Stmt, 0, len(body.Stmts)+len(stmts))
	out = append(out, body.Stmts[:at]...)
	out = append(out, stmts...)
	out = append(out, body.Stmts[at:]...)
	body.Stmts = out
}

// isSuperCall matches a top-level statement of the form: super(...);
func isSuperCall(stmt ast.Stmt) bool {
	expr, ok := stmt.(*ast.SExpr)
	if !ok {
		return false
	}
	call, ok := expr.Expr.(*ast.ECall)
	if !ok {
		return false
	}
	_, ok = call.Target.(*ast.ESuper)
	return ok
}
