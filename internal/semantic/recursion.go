package semantic

import (
	"github.com/metro-lang/metro/internal/ast"
	"github.com/metro-lang/metro/internal/diag"
)

// checkRecursiveTypes walks every user type transitively through
// members and enumerator payloads, per spec.md §4.3 step 1: visiting
// the same user type twice on the current path, without passing
// through an indirecting container, means the type has infinite size.
func (a *Analyzer) checkRecursiveTypes() {
	for _, s := range a.structs {
		a.checkStructRecursion(s)
	}
	for _, e := range a.enums {
		a.checkEnumRecursion(e)
	}
}

func (a *Analyzer) checkStructRecursion(s *ast.Struct) {
	if s.Checked() {
		return
	}
	if s.Visiting() {
		a.sink.Errorf(diag.RecursiveType, ast.Span(s), "recursive type has infinite size: %s", s.Name)
		return
	}
	s.SetVisiting(true)
	for _, m := range s.Members {
		a.walkTypeForRecursion(m.Type)
	}
	s.SetVisiting(false)
	s.SetChecked(true)
}

func (a *Analyzer) checkEnumRecursion(e *ast.Enum) {
	if e.Checked() {
		return
	}
	if e.Visiting() {
		a.sink.Errorf(diag.RecursiveType, ast.Span(e), "recursive type has infinite size: %s", e.Name)
		return
	}
	e.SetVisiting(true)
	for _, en := range e.Enumerators {
		a.walkTypeForRecursion(en.PayloadType)
	}
	e.SetVisiting(false)
	e.SetChecked(true)
}

// walkTypeForRecursion continues the recursion-guard DFS through a
// referenced type, stopping at Vector/Dict/Range since those indirect
// through a container and cannot themselves cause infinite size.
func (a *Analyzer) walkTypeForRecursion(te *ast.TypeExpr) {
	if te == nil {
		return
	}
	switch te.Name {
	case "Vector", "Dict", "Range":
		return
	}
	if s, ok := a.structs[te.Name]; ok {
		a.checkStructRecursion(s)
		return
	}
	if e, ok := a.enums[te.Name]; ok {
		a.checkEnumRecursion(e)
	}
}
