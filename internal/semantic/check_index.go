package semantic

import (
	"github.com/metro-lang/metro/internal/ast"
	"github.com/metro-lang/metro/internal/diag"
	"github.com/metro-lang/metro/internal/types"
)

// checkIndexRef checks a base expression followed by a chain of
// index/member/call subscripts. Per spec.md §4.3.2, when the base
// names an enum type and the first subscript selects one of its
// enumerators, the subtree is promoted (rewritten) to a NewEnumerator
// instead of being treated as an ordinary member access.
func (a *Analyzer) checkIndexRef(n *ast.IndexRef) (ast.Expr, *types.Type) {
	if v, ok := n.Base.(*ast.Variable); ok {
		if enumDecl, isEnum := a.enums[v.Name]; isEnum {
			if _, _, _, found := a.resolveVar(v.Name); !found && len(n.Subscripts) > 0 {
				first := n.Subscripts[0].Kind
				if first == ast.SubMember || first == ast.SubCall {
					return a.rewriteAsEnumerator(n, enumDecl)
				}
			}
		}
	}

	baseT := a.checkExpr(&n.Base)
	baseT = a.checkSubscriptChain(baseT, n.Subscripts)
	return nil, baseT
}

// rewriteAsEnumerator builds the NewEnumerator this IndexRef's leading
// subscript denotes, validates its payload against the enum's
// declaration, and continues any remaining subscripts as a fresh
// IndexRef rooted at the rewritten node.
func (a *Analyzer) rewriteAsEnumerator(n *ast.IndexRef, enumDecl *ast.Enum) (ast.Expr, *types.Type) {
	first := n.Subscripts[0]
	idx := enumDecl.IndexOf(first.MemberName)
	if idx < 0 {
		a.sink.Errorf(diag.Undefined, first.Tok.Span, "enum %q has no enumerator %q", enumDecl.Name, first.MemberName)
		return nil, types.NoneType
	}
	enumr := enumDecl.Enumerators[idx]

	newNode := &ast.NewEnumerator{
		EnumTok:        n.Base.Start(),
		EnumName:       enumDecl.Name,
		EnumeratorName: first.MemberName,
		EndTok:         first.End,
		Enum:           enumDecl,
		Index:          idx,
	}

	if first.Kind == ast.SubCall {
		switch {
		case enumr.PayloadType == nil:
			a.sink.Errorf(diag.InvalidInitializer, first.Tok.Span, "enumerator %q takes no payload", first.MemberName)
		case len(first.CallArgs) != 1:
			a.sink.Errorf(diag.InvalidInitializer, first.Tok.Span, "enumerator %q takes exactly one payload value", first.MemberName)
		default:
			argT := a.checkExpr(&first.CallArgs[0])
			want := a.resolveType(enumr.PayloadType)
			if !a.accepts(argT, want) {
				a.sink.Errorf(diag.TypeMismatch, first.CallArgs[0].Start().Span, "enumerator %q expects payload %s, found %s", first.MemberName, want, argT)
			} else if !types.Equal(argT, want) {
				first.CallArgs[0].SetUseDefault(true)
			}
			newNode.Arg = first.CallArgs[0]
		}
	} else if enumr.PayloadType != nil {
		a.sink.Errorf(diag.InvalidInitializer, first.Tok.Span, "enumerator %q requires a payload value", first.MemberName)
	}

	resultType := enumDecl.EnumeratorType()
	rest := n.Subscripts[1:]
	if len(rest) == 0 {
		return newNode, resultType
	}

	wrapped := &ast.IndexRef{Base: newNode, Subscripts: rest}
	resultType = a.checkSubscriptChain(resultType, rest)
	return wrapped, resultType
}

func (a *Analyzer) checkSubscriptChain(baseT *types.Type, subs []*ast.Subscript) *types.Type {
	for _, sub := range subs {
		baseT = a.checkSubscript(sub, baseT)
	}
	return baseT
}

func (a *Analyzer) checkSubscript(sub *ast.Subscript, baseT *types.Type) *types.Type {
	switch sub.Kind {
	case ast.SubIndex:
		idxT := a.checkExpr(&sub.IndexExpr)
		switch baseT.Kind {
		case types.Vector:
			if idxT.Kind != types.Int && idxT.Kind != types.USize {
				a.sink.Errorf(diag.TypeMismatch, sub.IndexExpr.Start().Span, "vector index must be Int or USize, found %s", idxT)
			}
			elem := types.NoneType
			if len(baseT.Params) > 0 {
				elem = baseT.Params[0]
			}
			sub.ResolvedType = elem
		case types.String:
			if idxT.Kind != types.Int && idxT.Kind != types.USize {
				a.sink.Errorf(diag.TypeMismatch, sub.IndexExpr.Start().Span, "string index must be Int or USize, found %s", idxT)
			}
			sub.ResolvedType = types.CharType
		case types.Dict:
			key, val := types.NoneType, types.NoneType
			if len(baseT.Params) > 1 {
				key, val = baseT.Params[0], baseT.Params[1]
			}
			if !a.accepts(idxT, key) {
				a.sink.Errorf(diag.TypeMismatch, sub.IndexExpr.Start().Span, "dict key type %s does not match %s", idxT, key)
			}
			sub.ResolvedType = val
		default:
			a.sink.Errorf(diag.InvalidOperator, sub.Tok.Span, "value of type %s is not indexable", baseT)
			sub.ResolvedType = types.NoneType
		}
		return sub.ResolvedType

	case ast.SubMember:
		if baseT.Kind != types.UserDef {
			a.sink.Errorf(diag.InvalidOperator, sub.Tok.Span, "value of type %s has no members", baseT)
			return types.NoneType
		}
		s, ok := baseT.Decl.(*ast.Struct)
		if !ok {
			a.sink.Errorf(diag.Undefined, sub.Tok.Span, "type %s has no member %q", baseT, sub.MemberName)
			return types.NoneType
		}
		idx := s.IndexOf(sub.MemberName)
		if idx < 0 {
			a.sink.Errorf(diag.Undefined, sub.Tok.Span, "struct %q has no member %q", s.Name, sub.MemberName)
			return types.NoneType
		}
		sub.MemberIndex = idx
		sub.ResolvedType = a.resolveType(s.Members[idx].Type)
		return sub.ResolvedType

	case ast.SubCall:
		return a.checkMemberCall(sub, baseT)

	default:
		return types.NoneType
	}
}

// checkMemberCall resolves a `.name(args)` subscript against the
// receiver's impl methods first, then the method-shaped builtins of
// SPEC_FULL.md's domain stack.
func (a *Analyzer) checkMemberCall(sub *ast.Subscript, receiverT *types.Type) *types.Type {
	argTypes := make([]*types.Type, len(sub.CallArgs))
	for i := range sub.CallArgs {
		argTypes[i] = a.checkExpr(&sub.CallArgs[i])
	}

	if receiverT.Kind == types.UserDef {
		if s, ok := receiverT.Decl.(*ast.Struct); ok {
			if methods, ok := a.implFuncs[s.Name]; ok {
				if fn, ok := methods[sub.MemberName]; ok && a.paramsMatch(fn, argTypes) {
					sub.IsMemberCall = true
					sub.CalleeName = sub.MemberName
					sub.ResolvedType = a.resultTypeOf(fn)
					return sub.ResolvedType
				}
			}
		}
	}

	if sig, ok := a.builtins[sub.MemberName]; ok && sig.isMethod {
		full := append([]*types.Type{receiverT}, argTypes...)
		if a.builtinArgsMatch(sig, full) {
			sub.IsBuiltin = true
			sub.BuiltinName = sub.MemberName
			sub.ResolvedType = sig.result
			return sig.result
		}
	}

	a.sink.Errorf(diag.Undefined, sub.Tok.Span, "no method %q on type %s", sub.MemberName, receiverT)
	return types.NoneType
}

// checkCallFunc resolves a bare `name(args)` call against user
// functions first, then free-function builtins.
func (a *Analyzer) checkCallFunc(n *ast.CallFunc) *types.Type {
	argTypes := make([]*types.Type, len(n.Args))
	for i := range n.Args {
		argTypes[i] = a.checkExpr(&n.Args[i])
	}

	if fn, ok := a.funcs[n.Name]; ok && a.paramsMatch(fn, argTypes) {
		n.Callee = fn
		return a.resultTypeOf(fn)
	}

	if sig, ok := a.builtins[n.Name]; ok && !sig.isMethod && a.builtinArgsMatch(sig, argTypes) {
		n.IsBuiltin = true
		n.BuiltinName = n.Name
		return sig.result
	}

	a.sink.Errorf(diag.Undefined, n.NameTok.Span, "undefined function %q", n.Name)
	return types.NoneType
}
