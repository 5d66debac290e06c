package semantic

import (
	"github.com/metro-lang/metro/internal/ast"
	"github.com/metro-lang/metro/internal/diag"
	"github.com/metro-lang/metro/internal/types"
)

// resolveType turns a syntactic *ast.TypeExpr into the structural
// *types.Type descriptor of spec.md §3.3. A nil TypeExpr (no declared
// type) resolves to None.
func (a *Analyzer) resolveType(te *ast.TypeExpr) *types.Type {
	if te == nil {
		return types.NoneType
	}
	switch te.Name {
	case "None":
		return withConst(types.NoneType, te.Const)
	case "Int":
		return withConst(types.IntType, te.Const)
	case "USize":
		return withConst(types.USizeType, te.Const)
	case "Float":
		return withConst(types.FloatType, te.Const)
	case "Bool":
		return withConst(types.BoolType, te.Const)
	case "Char":
		return withConst(types.CharType, te.Const)
	case "String":
		return withConst(types.StringType, te.Const)
	case "Range":
		t := types.NewRange()
		t.Const = te.Const
		return t
	case "Vector":
		elem := types.NoneType
		if len(te.TypeArgs) > 0 {
			elem = a.resolveType(te.TypeArgs[0])
		}
		t := types.NewVector(elem)
		t.Const = te.Const
		return t
	case "Dict":
		key, val := types.NoneType, types.NoneType
		if len(te.TypeArgs) > 1 {
			key = a.resolveType(te.TypeArgs[0])
			val = a.resolveType(te.TypeArgs[1])
		}
		t := types.NewDict(key, val)
		t.Const = te.Const
		return t
	default:
		if s, ok := a.structs[te.Name]; ok {
			t := s.TypeDescriptor()
			return withConst(t, te.Const)
		}
		if e, ok := a.enums[te.Name]; ok {
			t := e.TypeDescriptor()
			return withConst(t, te.Const)
		}
		a.sink.Errorf(diag.Undefined, te.Tok.Span, "unknown type %q", te.Name)
		return types.NoneType
	}
}

// withConst clones t with Const set only when needed, since the basic
// kinds are shared singletons.
func withConst(t *types.Type, c bool) *types.Type {
	if !c || t.Const == c {
		return t
	}
	clone := *t
	clone.Const = true
	return &clone
}
