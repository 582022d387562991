package stripper

import (
	"codeberg.org/saruga/stripts/internal/ast"
)

// classify runs once over a program's original top-level statement list
// and collects every name declared by a statement with no runtime
// representation: interfaces, type aliases, ambient namespaces, and
// "declare" variable/class/function forms. The elider uses the set to
// drop export statements that would re-export an erased name.
//
// Enums are deliberately absent: an enum compiles to runtime code and
// stays importable and exportable as a value.
func classify(stmts []ast.Stmt) map[string]struct{} {
	typeOnly := make(map[string]struct{})
	for _, stmt := range stmts {
		classifyStmt(stmt, typeOnly)
	}
	return typeOnly
}

func classifyStmt(stmt ast.Stmt, typeOnly map[string]struct{}) {
	switch s := stmt.(type) {
	case *ast.SInterface:
		typeOnly[s.Name.Name] = struct{}{}

	case *ast.STypeAlias:
		typeOnly[s.Name.Name] = struct{}{}

	case *ast.SNamespace:
		if s.Declare && !s.StringName && s.Name != "" {
			typeOnly[s.Name] = struct{}{}
		}

	case *ast.SVar:
		if s.Declare {
			for _, decl := range s.Decls {
				patternNames(decl.Binding, typeOnly)
			}
		}

	case *ast.SClass:
		if s.Declare {
			typeOnly[s.Class.Name.Name] = struct{}{}
		}

	case *ast.SFunction:
		if s.Declare || s.Fn.Body == nil {
			typeOnly[s.Name.Name] = struct{}{}
		}

	case *ast.SExportNamed:
		// Unwrap one level: export interface I {} classifies I
		if s.Decl != nil && len(s.Items) == 0 {
			classifyStmt(s.Decl, typeOnly)
		}
	}
}

// patternNames records every identifier a binding pattern introduces.
func patternNames(pattern ast.Pattern, names map[string]struct{}) {
	switch b := pattern.(type) {
	case *ast.BIdentifier:
		names[b.Name] = struct{}{}
	case *ast.BRest:
		patternNames(b.Value, names)
	case *ast.BArray:
		for _, item := range b.Items {
			if item.Binding != nil {
				patternNames(item.Binding, names)
			}
		}
	case *ast.BObject:
		for _, prop := range b.Props {
			patternNames(prop.Value, names)
		}
	}
}
