package semantic

import (
	"github.com/metro-lang/metro/internal/ast"
	"github.com/metro-lang/metro/internal/types"
)

// accepts implements the value-acceptance (widening) relation of
// spec.md §4.3.3: whether an expression of type got may stand in for
// an expression position expecting want, without error.
func (a *Analyzer) accepts(got, want *types.Type) bool {
	if got == nil || want == nil {
		return got == want
	}
	if types.Equal(got, want) {
		return true
	}
	if want.Kind == types.USize && got.Kind == types.Int {
		return true
	}
	if want.Kind == types.Vector && got.Kind == types.Vector &&
		len(got.Params) > 0 && got.Params[0].Kind == types.None {
		return true
	}
	if want.Kind == types.Dict && got.Kind == types.Dict &&
		len(got.Params) > 1 && got.Params[0].Kind == types.None && got.Params[1].Kind == types.None {
		return true
	}
	if want.Kind == types.UserDef && got.Kind == types.Enumerator {
		if _, ok := want.Decl.(*ast.Enum); ok && want.Decl == got.Decl {
			return true
		}
	}
	return false
}

// castAllowed implements the (from, to) cast table of spec.md §4.3.2:
// numeric<->numeric, Int<->Char, anything->String. Same-type casts
// are rejected by the caller before this is consulted.
func castAllowed(from, to *types.Type) bool {
	if types.IsNumeric(from.Kind) && types.IsNumeric(to.Kind) {
		return true
	}
	if (from.Kind == types.Int && to.Kind == types.Char) || (from.Kind == types.Char && to.Kind == types.Int) {
		return true
	}
	return to.Kind == types.String
}
