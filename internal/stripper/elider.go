package stripper

import (
	"codeberg.org/saruga/stripts/internal/ast"
)

// elide is the whole-program pass that removes imports and exports that
// exist purely to carry type information. It runs over the top-level
// statement list after classification and before the node walk.
func (st *fileState) elide() {
	out := make([]ast.Stmt, 0, len(st.program.Stmts))
	for _, stmt := range st.program.Stmts {
		switch s := stmt.(type) {
		case *ast.SImport:
			if !st.elideImport(s) {
				continue
			}

		case *ast.SExportNamed:
			if !st.elideExport(s) {
				continue
			}

		case *ast.SExportDefault:
			// export default I, where I names an erased declaration
			if s.Decl == nil {
				if ident, ok := s.Value.(*ast.EIdentifier); ok {
					if _, erased := st.typeOnly[ident.Name]; erased {
						continue
					}
				}
			}
		}
		out = append(out, stmt)
	}
	st.program.Stmts = out
}

// elideImport removes type-only specifiers from an import statement and
// reports whether the statement survives.
func (st *fileState) elideImport(s *ast.SImport) bool {
	// A bare side-effecting import can never be classified as
	// type-only: module evaluation may have effects
	if !s.HasSpecifiers() {
		return true
	}

	// import type ... is explicitly type-only in full
	if s.TypeOnly {
		st.stats.RemovedImports++
		return false
	}

	if s.DefaultName != nil && st.bindingIsTypeOnly(s.DefaultName) {
		s.DefaultName = nil
	}
	if s.NamespaceRef != nil && st.bindingIsTypeOnly(s.NamespaceRef) {
		s.NamespaceRef = nil
	}
	kept := s.Items[:0]
	for _, item := range s.Items {
		if item.TypeOnly || st.bindingIsTypeOnly(&item.Local) {
			continue
		}
		kept = append(kept, item)
	}
	s.Items = kept

	if !s.HasSpecifiers() {
		st.stats.RemovedImports++
		return false
	}
	return true
}

// bindingIsTypeOnly decides whether an imported binding can be elided:
// every reference site lies in a type position, and the binding is not
// the JSX pragma of a file that contains JSX syntax (JSX implicitly
// reads the pragma as a value). An unresolved binding is conservatively
// kept.
func (st *fileState) bindingIsTypeOnly(b *ast.NameBinding) bool {
	if !b.Ref.IsValid() {
		return false
	}
	symbol := &st.program.Symbols[b.Ref.InnerIndex]
	if !symbol.OnlyReferencedAsType() {
		return false
	}
	if b.Name == st.pragma && st.program.HasJSX {
		return false
	}
	return true
}

// elideExport removes specifiers whose local name was classified as
// type-only and reports whether the statement survives. Re-export forms
// are untouched: their names are not local bindings. A declaration
// wrapped in export is handled by the declaration's own removal rule.
func (st *fileState) elideExport(s *ast.SExportNamed) bool {
	if s.TypeOnly {
		return false
	}
	if s.Decl != nil || s.Star || s.From != "" {
		return true
	}

	kept := s.Items[:0]
	for _, item := range s.Items {
		if _, erased := st.typeOnly[item.Local]; erased {
			continue
		}
		kept = append(kept, item)
	}
	s.Items = kept
	return len(s.Items) > 0
}
