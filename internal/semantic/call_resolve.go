package semantic

import (
	"github.com/metro-lang/metro/internal/ast"
	"github.com/metro-lang/metro/internal/types"
)

// builtinSig describes one entry of the built-in library of spec.md
// §6.3. isMethod marks a receiver-call builtin (`x.push(y)`); for
// those, params[0] is the receiver type. A types.Args param accepts
// any number of remaining arguments of any type, for the variadic
// print/println/id/type/to_string family. vectorPush marks push's
// `self: Vector<T>, T -> None` contract, which builtinArgsMatch can't
// express as a plain params list since T must match the receiver's
// own element type rather than one fixed type.
type builtinSig struct {
	isMethod   bool
	vectorPush bool
	params     []*types.Type
	result     *types.Type
}

func builtinSignatures() map[string]*builtinSig {
	variadic := &types.Type{Kind: types.Args}
	return map[string]*builtinSig{
		"print":     {params: []*types.Type{variadic}, result: types.IntType},
		"println":   {params: []*types.Type{variadic}, result: types.IntType},
		"id":        {params: []*types.Type{variadic}, result: types.StringType},
		"type":      {params: []*types.Type{variadic}, result: types.StringType},
		"to_string": {params: []*types.Type{variadic}, result: types.StringType},
		"length":    {params: []*types.Type{types.StringType}, result: types.IntType},
		"input":     {result: types.StringType},
		"open":      {params: []*types.Type{types.StringType}, result: types.StringType},
		"exit":      {params: []*types.Type{types.IntType}, result: types.NoneType},
		"push":      {isMethod: true, vectorPush: true, result: types.NoneType},
		"substr":    {isMethod: true, params: []*types.Type{types.StringType, types.USizeType}, result: types.StringType},
		"replace":   {isMethod: true, params: []*types.Type{types.StringType, types.StringType, types.StringType}, result: types.StringType},
	}
}

// paramsMatch checks a user function's declared parameters against a
// call site's argument types via the acceptance relation of accept.go.
func (a *Analyzer) paramsMatch(fn *ast.Function, argTypes []*types.Type) bool {
	if len(fn.Params) != len(argTypes) {
		return false
	}
	for i, p := range fn.Params {
		want := a.resolveType(p.Type)
		if !a.accepts(argTypes[i], want) {
			return false
		}
	}
	return true
}

// builtinArgsMatch walks sig.params against argTypes; a types.Args
// param accepts the rest of the argument list, including zero.
func (a *Analyzer) builtinArgsMatch(sig *builtinSig, argTypes []*types.Type) bool {
	if sig.vectorPush {
		return a.vectorPushArgsMatch(argTypes)
	}
	pi := 0
	for _, p := range sig.params {
		if p.Kind == types.Args {
			return true
		}
		if pi >= len(argTypes) {
			return false
		}
		if !a.accepts(argTypes[pi], p) {
			return false
		}
		pi++
	}
	return pi == len(argTypes)
}

// vectorPushArgsMatch checks push's `self: Vector<T>, T -> None`
// contract: the receiver must actually be a Vector, and the pushed
// value must be acceptable as that vector's own element type — unlike
// every other builtin, T here is not a fixed type but whatever the
// receiver's Params[0] happens to be.
func (a *Analyzer) vectorPushArgsMatch(argTypes []*types.Type) bool {
	if len(argTypes) != 2 || argTypes[0].Kind != types.Vector {
		return false
	}
	elem := types.NoneType
	if len(argTypes[0].Params) > 0 {
		elem = argTypes[0].Params[0]
	}
	return a.accepts(argTypes[1], elem)
}

func (a *Analyzer) resultTypeOf(fn *ast.Function) *types.Type {
	return a.resolveType(fn.ResultType)
}
