package stripper

import (
	"codeberg.org/saruga/stripts/internal/ast"
	"codeberg.org/saruga/stripts/internal/ctorinject"
	"codeberg.org/saruga/stripts/internal/diagnostic"
)

// lowerParamProps rewrites constructor parameter properties into plain
// parameters plus explicit field assignments:
//
//	constructor(public x: number, y: string) {}
//
// becomes
//
//	constructor(x, y) { this.x = x; }
//
// The assignments go in right after an explicit super() call when one
// exists, so prologue code injected by cooperating transforms composes
// correctly. Each parameter is lowered at most once, tracked by node
// identity in the per-file visited set.
func (st *fileState) lowerParamProps(fn *ast.Fn) error {
	var assigns []ast.Stmt
	for _, param := range fn.Params {
		if !param.IsProperty() {
			continue
		}
		if _, done := st.visited[param]; done {
			continue
		}
		st.visited[param] = struct{}{}

		ident, ok := param.Binding.(*ast.BIdentifier)
		if !ok {
			return st.unsupported(param.Loc, diagnostic.CodeDestructuredProp,
				"parameter properties cannot be destructuring patterns",
				"declare the field separately and assign it in the constructor body")
		}

		assigns = append(assigns, &ast.SExpr{Expr: &ast.EBinary{
			Op:    ast.BinOpAssign,
			Left:  &ast.EDot{Target: &ast.EThis{}, Name: ident.Name},
			Right: &ast.EIdentifier{Name: ident.Name, Ref: ident.Ref},
		}})
		st.stats.LoweredParamProps++
	}

	ctorinject.Inject(fn.Body, assigns)
	return nil
}
