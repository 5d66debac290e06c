package semantic

import (
	"github.com/metro-lang/metro/internal/ast"
	"github.com/metro-lang/metro/internal/diag"
	"github.com/metro-lang/metro/internal/lexer"
	"github.com/metro-lang/metro/internal/types"
)

// checkExpr resolves the type of the expression held in slot, caching
// it on the node (spec.md §4.3's "Tree check") and, where spec.md
// §4.3.2's IndexRef rule promotes the subtree to a NewEnumerator,
// replacing *slot with the rewritten node (spec.md §9's design note on
// subtree rewriting).
func (a *Analyzer) checkExpr(slot *ast.Expr) *types.Type {
	if slot == nil || *slot == nil {
		return types.NoneType
	}
	if cached := (*slot).ResolvedType(); cached != nil {
		return cached
	}
	rewritten, t := a.checkExprNode(*slot)
	if rewritten != nil {
		*slot = rewritten
	}
	return t
}

func (a *Analyzer) checkExprNode(e ast.Expr) (ast.Expr, *types.Type) {
	switch n := e.(type) {
	case *ast.NoneLit:
		n.SetResolvedType(types.NoneType)
		return nil, types.NoneType
	case *ast.TrueLit:
		n.SetResolvedType(types.BoolType)
		return nil, types.BoolType
	case *ast.FalseLit:
		n.SetResolvedType(types.BoolType)
		return nil, types.BoolType
	case *ast.ValueLit:
		t := a.literalType(n.Tok)
		n.SetResolvedType(t)
		return nil, t
	case *ast.Variable:
		t := a.checkVariable(n)
		n.SetResolvedType(t)
		return nil, t
	case *ast.Vector:
		t := a.checkVector(n)
		n.SetResolvedType(t)
		return nil, t
	case *ast.Dict:
		t := a.checkDict(n)
		n.SetResolvedType(t)
		return nil, t
	case *ast.Range:
		a.checkExpr(&n.Begin)
		a.checkExpr(&n.End_)
		t := types.NewRange()
		n.SetResolvedType(t)
		return nil, t
	case *ast.StructConstructor:
		t := a.checkStructConstructor(n)
		n.SetResolvedType(t)
		return nil, t
	case *ast.UnaryPlus:
		t := a.checkExpr(&n.X)
		n.SetResolvedType(t)
		return nil, t
	case *ast.UnaryMinus:
		t := a.checkExpr(&n.X)
		n.SetResolvedType(t)
		return nil, t
	case *ast.Cast:
		t := a.checkCast(n)
		n.SetResolvedType(t)
		return nil, t
	case *ast.BinaryExpr:
		t := a.checkBinaryExpr(n)
		n.SetResolvedType(t)
		return nil, t
	case *ast.CompareExpr:
		t := a.checkCompareExpr(n)
		n.SetResolvedType(t)
		return nil, t
	case *ast.Assign:
		t := a.checkAssign(n)
		n.SetResolvedType(t)
		return nil, t
	case *ast.IndexRef:
		rewritten, t := a.checkIndexRef(n)
		if rewritten != nil {
			rewritten.SetResolvedType(t)
		} else {
			n.SetResolvedType(t)
		}
		return rewritten, t
	case *ast.CallFunc:
		t := a.checkCallFunc(n)
		n.SetResolvedType(t)
		return nil, t
	case *ast.NewEnumerator:
		t := n.Enum.EnumeratorType()
		n.SetResolvedType(t)
		return nil, t
	default:
		return nil, types.NoneType
	}
}

func (a *Analyzer) literalType(tok lexer.Token) *types.Type {
	switch tok.Kind {
	case lexer.Int:
		return types.IntType
	case lexer.USize:
		return types.USizeType
	case lexer.Float:
		return types.FloatType
	case lexer.Char:
		return types.CharType
	case lexer.String:
		return types.StringType
	default:
		return types.NoneType
	}
}

func (a *Analyzer) checkVariable(v *ast.Variable) *types.Type {
	step, idx, loc, found := a.resolveVar(v.Name)
	if !found {
		a.sink.Errorf(diag.Undefined, v.Tok.Span, "undefined name %q", v.Name)
		return types.NoneType
	}
	v.Step, v.Index = step, idx
	return loc.typ
}

func (a *Analyzer) checkVector(v *ast.Vector) *types.Type {
	if len(v.Elements) == 0 {
		return types.NewVector(types.NoneType)
	}
	elemT := a.checkExpr(&v.Elements[0])
	for i := 1; i < len(v.Elements); i++ {
		t := a.checkExpr(&v.Elements[i])
		if !types.Equal(t, elemT) {
			a.sink.Errorf(diag.TypeMismatch, v.Elements[i].Start().Span, "vector element type %s does not match %s", t, elemT)
		}
	}
	return types.NewVector(elemT)
}

func (a *Analyzer) checkDict(d *ast.Dict) *types.Type {
	var keyT, valT *types.Type
	if d.KeyType != nil {
		keyT = a.resolveType(d.KeyType)
		valT = a.resolveType(d.ValueType)
	}
	for i := range d.Entries {
		kt := a.checkExpr(&d.Entries[i].Key)
		vt := a.checkExpr(&d.Entries[i].Value)
		if keyT == nil {
			keyT, valT = kt, vt
			continue
		}
		if !a.accepts(kt, keyT) {
			a.sink.Errorf(diag.TypeMismatch, d.Entries[i].Key.Start().Span, "dict key type %s does not match %s", kt, keyT)
		}
		if !a.accepts(vt, valT) {
			a.sink.Errorf(diag.TypeMismatch, d.Entries[i].Value.Start().Span, "dict value type %s does not match %s", vt, valT)
		}
	}
	if keyT == nil {
		keyT, valT = types.NoneType, types.NoneType
	}
	return types.NewDict(keyT, valT)
}

func (a *Analyzer) checkStructConstructor(n *ast.StructConstructor) *types.Type {
	s, ok := a.structs[n.Type.Name]
	if !ok {
		a.sink.Errorf(diag.Undefined, n.Type.Tok.Span, "unknown struct type %q", n.Type.Name)
		return types.NoneType
	}
	if len(n.Fields) != len(s.Members) {
		a.sink.Errorf(diag.InvalidInitializer, ast.Span(n), "struct %q requires %d field(s), found %d", s.Name, len(s.Members), len(n.Fields))
	}
	for i := range n.Fields {
		f := &n.Fields[i]
		idx := s.IndexOf(f.Name)
		if idx < 0 {
			a.sink.Errorf(diag.Undefined, f.Tok.Span, "struct %q has no member %q", s.Name, f.Name)
			a.checkExpr(&f.Value)
			continue
		}
		if idx != i {
			a.sink.Errorf(diag.InvalidInitializer, f.Tok.Span, "field %q initialized out of declared order", f.Name)
		}
		f.Index = idx
		want := a.resolveType(s.Members[idx].Type)
		got := a.checkExpr(&f.Value)
		if !a.accepts(got, want) {
			a.sink.Errorf(diag.TypeMismatch, f.Value.Start().Span, "field %q expects %s, found %s", f.Name, want, got)
		} else if !types.Equal(got, want) {
			f.Value.SetUseDefault(true)
		}
	}
	return s.TypeDescriptor()
}

func (a *Analyzer) checkCast(n *ast.Cast) *types.Type {
	target := a.resolveType(n.Target)
	srcT := a.checkExpr(&n.X)
	if types.Equal(srcT, target) {
		a.sink.Errorf(diag.InvalidCast, n.CastTok.Span, "cast from %s to the same type is not allowed", srcT)
		return target
	}
	if !castAllowed(srcT, target) {
		a.sink.Errorf(diag.InvalidCast, n.CastTok.Span, "cannot cast %s to %s", srcT, target)
	}
	return target
}

func (a *Analyzer) checkBinaryExpr(n *ast.BinaryExpr) *types.Type {
	cur := a.checkExpr(&n.Left)
	for i := range n.Tail {
		rhsT := a.checkExpr(&n.Tail[i].Operand)
		cur = a.applyBinaryOp(n.Tail[i].Op, cur, rhsT, n.Tail[i].OpTok)
	}
	return cur
}

func (a *Analyzer) applyBinaryOp(op ast.ExprOp, lt, rt *types.Type, tok lexer.Token) *types.Type {
	switch op {
	case ast.Add:
		if lt.Kind == types.String && rt.Kind == types.String {
			return types.StringType
		}
		if lt.Kind == types.Vector && types.Equal(lt, rt) {
			return lt
		}
		if types.IsNumeric(lt.Kind) && types.Equal(lt, rt) {
			return lt
		}
		a.sink.Errorf(diag.InvalidOperator, tok.Span, "operator + requires equal-typed operands, found %s and %s", lt, rt)
		return lt
	case ast.Sub:
		if types.IsNumeric(lt.Kind) && types.IsNumeric(rt.Kind) {
			if lt.Kind == types.Float || rt.Kind == types.Float {
				return types.FloatType
			}
			return lt
		}
		if lt.Kind == types.Vector {
			return lt
		}
		a.sink.Errorf(diag.InvalidOperator, tok.Span, "operator - is not defined for %s and %s", lt, rt)
		return lt
	case ast.Mul:
		if types.IsNumeric(rt.Kind) {
			return lt
		}
		a.sink.Errorf(diag.InvalidOperator, tok.Span, "operator * requires a numeric right operand, found %s", rt)
		return lt
	case ast.Div:
		if types.IsNumeric(lt.Kind) && types.IsNumeric(rt.Kind) {
			return lt
		}
		a.sink.Errorf(diag.InvalidOperator, tok.Span, "operator / requires numeric operands, found %s and %s", lt, rt)
		return lt
	case ast.Mod, ast.LShift, ast.RShift, ast.BitAnd, ast.BitXor, ast.BitOr:
		if lt.Kind != types.Int || rt.Kind != types.Int {
			a.sink.Errorf(diag.InvalidOperator, tok.Span, "operator %s requires Int operands, found %s and %s", op, lt, rt)
		}
		return types.IntType
	case ast.LogicalAnd, ast.LogicalOr:
		if lt.Kind != types.Bool || rt.Kind != types.Bool {
			a.sink.Errorf(diag.InvalidOperator, tok.Span, "operator %s requires Bool operands, found %s and %s", op, lt, rt)
		}
		return types.BoolType
	default:
		return lt
	}
}

func (a *Analyzer) checkCompareExpr(n *ast.CompareExpr) *types.Type {
	cur := a.checkExpr(&n.Left)
	for i := range n.Tail {
		rhsT := a.checkExpr(&n.Tail[i].Operand)
		switch n.Tail[i].Op {
		case ast.Eq, ast.NotEq:
			if !types.Equal(cur, rhsT) && !a.accepts(rhsT, cur) && !a.accepts(cur, rhsT) {
				a.sink.Errorf(diag.InvalidOperator, n.Tail[i].OpTok.Span, "equality comparison requires equal types, found %s and %s", cur, rhsT)
			}
		default:
			if !types.IsNumeric(cur.Kind) || !types.IsNumeric(rhsT.Kind) {
				a.sink.Errorf(diag.InvalidOperator, n.Tail[i].OpTok.Span, "ordering comparison requires numeric operands, found %s and %s", cur, rhsT)
			}
		}
		cur = rhsT
	}
	return types.BoolType
}

func (a *Analyzer) checkAssign(n *ast.Assign) *types.Type {
	if !a.isLValue(n.Target) {
		a.sink.Errorf(diag.InvalidLValue, ast.Span(n.Target), "left side of assignment is not assignable")
	}
	lt := a.checkExpr(&n.Target)
	if a.isConstTarget(n.Target) {
		a.sink.Errorf(diag.InvalidLValue, ast.Span(n.Target), "cannot assign to a const variable")
	}
	rt := a.checkExpr(&n.Value)
	if !a.accepts(rt, lt) {
		a.sink.Errorf(diag.TypeMismatch, ast.Span(n), "cannot assign value of type %s to %s", rt, lt)
	} else if !types.Equal(rt, lt) {
		n.Value.SetUseDefault(true)
	}
	return lt
}

func (a *Analyzer) isLValue(e ast.Expr) bool {
	switch e.(type) {
	case *ast.Variable, *ast.MemberVariable, *ast.IndexRef:
		return true
	default:
		return false
	}
}

func (a *Analyzer) isConstTarget(e ast.Expr) bool {
	v, ok := e.(*ast.Variable)
	if !ok {
		return false
	}
	if loc := a.lookupLocal(v.Name); loc != nil {
		return loc.isConst
	}
	return false
}
