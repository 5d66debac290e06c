package interp

import (
	"strconv"
	"strings"

	"github.com/metro-lang/metro/internal/ast"
	"github.com/metro-lang/metro/internal/diag"
	"github.com/metro-lang/metro/internal/lexer"
	"github.com/metro-lang/metro/internal/types"
)

// evalExpr evaluates one Sema-checked expression node to a runtime
// Value, per spec.md §4.4.
func (in *Interp) evalExpr(e ast.Expr) (Value, error) {
	switch n := e.(type) {
	case *ast.NoneLit:
		return None, nil
	case *ast.TrueLit:
		return &BoolVal{B: true, valueBase: valueBase{pinned: true}}, nil
	case *ast.FalseLit:
		return &BoolVal{B: false, valueBase: valueBase{pinned: true}}, nil
	case *ast.ValueLit:
		return literalValue(n.Tok), nil
	case *ast.Variable:
		return in.frame(n.Step).get(n.Index), nil
	case *ast.Vector:
		return in.evalVector(n)
	case *ast.Dict:
		return in.evalDict(n)
	case *ast.Range:
		return in.evalRange(n)
	case *ast.StructConstructor:
		return in.evalStructConstructor(n)
	case *ast.UnaryPlus:
		return in.evalExpr(n.X)
	case *ast.UnaryMinus:
		return in.evalUnaryMinus(n)
	case *ast.Cast:
		return in.evalCast(n)
	case *ast.BinaryExpr:
		return in.evalBinaryExpr(n)
	case *ast.CompareExpr:
		return in.evalCompareExpr(n)
	case *ast.Assign:
		return in.evalAssign(n)
	case *ast.IndexRef:
		return in.evalIndexRef(n)
	case *ast.CallFunc:
		return in.evalCallFunc(n)
	case *ast.NewEnumerator:
		return in.evalNewEnumerator(n)
	default:
		return None, nil
	}
}

func literalValue(tok lexer.Token) Value {
	switch tok.Kind {
	case lexer.Int:
		n, _ := strconv.ParseInt(tok.Text, 10, 64)
		return &IntVal{N: n}
	case lexer.USize:
		n, _ := strconv.ParseUint(strings.TrimSuffix(tok.Text, "u"), 10, 64)
		return &USizeVal{N: n}
	case lexer.Float:
		f, _ := strconv.ParseFloat(tok.Text, 32)
		return &FloatVal{N: float32(f)}
	case lexer.Char:
		if len(tok.Text) == 0 {
			return &CharVal{}
		}
		return &CharVal{C: uint16(tok.Text[0])}
	case lexer.String:
		return NewStringVal(tok.Text)
	default:
		return None
	}
}

func (in *Interp) evalUnaryMinus(n *ast.UnaryMinus) (Value, error) {
	v, err := in.evalExpr(n.X)
	if err != nil {
		return nil, err
	}
	switch x := v.(type) {
	case *IntVal:
		return &IntVal{N: -x.N}, nil
	case *FloatVal:
		return &FloatVal{N: -x.N}, nil
	default:
		return v, nil
	}
}

func (in *Interp) evalVector(n *ast.Vector) (Value, error) {
	items := make([]Value, len(n.Elements))
	for i, el := range n.Elements {
		v, err := in.evalExpr(el)
		if err != nil {
			return nil, err
		}
		items[i] = v
	}
	elem := n.ResolvedType().Params[0]
	return &VectorVal{Elem: elem, Items: items}, nil
}

func (in *Interp) evalDict(n *ast.Dict) (Value, error) {
	entries := make([]DictPair, len(n.Entries))
	for i, e := range n.Entries {
		k, err := in.evalExpr(e.Key)
		if err != nil {
			return nil, err
		}
		val, err := in.evalExpr(e.Value)
		if err != nil {
			return nil, err
		}
		entries[i] = DictPair{Key: k, Val: val}
	}
	t := n.ResolvedType()
	return &DictVal{Key: t.Params[0], Val: t.Params[1], Entries: entries}, nil
}

func (in *Interp) evalRange(n *ast.Range) (Value, error) {
	b, err := in.evalExpr(n.Begin)
	if err != nil {
		return nil, err
	}
	e, err := in.evalExpr(n.End_)
	if err != nil {
		return nil, err
	}
	return &RangeVal{Begin: asInt(b), End: asInt(e)}, nil
}

func asInt(v Value) int64 {
	switch n := v.(type) {
	case *IntVal:
		return n.N
	case *USizeVal:
		return int64(n.N)
	default:
		return 0
	}
}

func (in *Interp) evalStructConstructor(n *ast.StructConstructor) (Value, error) {
	s := in.structs[n.Type.Name]
	fields := make([]Value, len(s.Members))
	for _, f := range n.Fields {
		v, err := in.evalExpr(f.Value)
		if err != nil {
			return nil, err
		}
		want := in.resolveType(s.Members[f.Index].Type)
		fields[f.Index] = in.coerce(v, want, f.Value.UseDefault())
	}
	return &StructVal{Decl: s, Fields: fields}, nil
}

func (in *Interp) evalCast(n *ast.Cast) (Value, error) {
	v, err := in.evalExpr(n.X)
	if err != nil {
		return nil, err
	}
	target := in.resolveType(n.Target)
	return castValue(v, target), nil
}

// castValue converts v to target per the cast table semantic.castAllowed
// validated (numeric<->numeric, Int<->Char, anything->String).
func castValue(v Value, target *types.Type) Value {
	switch target.Kind {
	case types.Int:
		switch n := v.(type) {
		case *USizeVal:
			return &IntVal{N: int64(n.N)}
		case *FloatVal:
			return &IntVal{N: int64(n.N)}
		case *CharVal:
			return &IntVal{N: int64(n.C)}
		}
	case types.USize:
		switch n := v.(type) {
		case *IntVal:
			return &USizeVal{N: uint64(n.N)}
		case *FloatVal:
			return &USizeVal{N: uint64(n.N)}
		}
	case types.Float:
		switch n := v.(type) {
		case *IntVal:
			return &FloatVal{N: float32(n.N)}
		case *USizeVal:
			return &FloatVal{N: float32(n.N)}
		}
	case types.Char:
		if n, ok := v.(*IntVal); ok {
			return &CharVal{C: uint16(n.N)}
		}
	case types.String:
		return NewStringVal(v.String())
	}
	return v
}

func (in *Interp) evalBinaryExpr(n *ast.BinaryExpr) (Value, error) {
	cur, err := in.evalExpr(n.Left)
	if err != nil {
		return nil, err
	}
	for _, step := range n.Tail {
		rhs, err := in.evalExpr(step.Operand)
		if err != nil {
			return nil, err
		}
		cur, err = in.applyBinaryOp(step.Op, cur, rhs, step.OpTok)
		if err != nil {
			return nil, err
		}
	}
	return cur, nil
}

func (in *Interp) evalCompareExpr(n *ast.CompareExpr) (Value, error) {
	cur, err := in.evalExpr(n.Left)
	if err != nil {
		return nil, err
	}
	var result *BoolVal = &BoolVal{B: true}
	for _, step := range n.Tail {
		rhs, err := in.evalExpr(step.Operand)
		if err != nil {
			return nil, err
		}
		result = applyCompare(step.Op, cur, rhs)
		cur = rhs
		if !result.B {
			return result, nil
		}
	}
	return result, nil
}

func (in *Interp) evalAssign(n *ast.Assign) (Value, error) {
	v, err := in.evalExpr(n.Value)
	if err != nil {
		return nil, err
	}
	v = in.coerce(v, n.Target.ResolvedType(), n.Value.UseDefault())
	if err := in.assignTo(n.Target, v); err != nil {
		return nil, err
	}
	return v, nil
}

// assignTo writes v into the storage target denotes: a local slot, or
// the final subscript of an IndexRef chain (spec.md §4.4.6).
func (in *Interp) assignTo(target ast.Expr, v Value) error {
	switch t := target.(type) {
	case *ast.Variable:
		in.frame(t.Step).set(t.Index, v)
		return nil
	case *ast.IndexRef:
		return in.assignIndexRef(t, v)
	default:
		return nil
	}
}

func (in *Interp) assignIndexRef(n *ast.IndexRef, v Value) error {
	base, err := in.evalExpr(n.Base)
	if err != nil {
		return err
	}
	for i := 0; i < len(n.Subscripts)-1; i++ {
		base, err = in.evalSubscript(base, n.Subscripts[i])
		if err != nil {
			return err
		}
	}
	last := n.Subscripts[len(n.Subscripts)-1]
	switch last.Kind {
	case ast.SubIndex:
		idx, err := in.evalExpr(last.IndexExpr)
		if err != nil {
			return err
		}
		switch b := base.(type) {
		case *VectorVal:
			i := int(asInt(idx))
			if i < 0 || i >= len(b.Items) {
				in.sink.Errorf(diag.IndexOutOfRange, last.Tok.Span, "vector index %d out of range", i)
				return haltSignal{code: 1}
			}
			b.Items[i] = v
		case *DictVal:
			if j := b.Find(idx); j >= 0 {
				b.Entries[j].Val = v
			} else {
				b.Entries = append(b.Entries, DictPair{Key: idx, Val: v})
			}
		}
		return nil
	case ast.SubMember:
		s, ok := base.(*StructVal)
		if ok {
			s.Fields[last.MemberIndex] = v
		}
		return nil
	default:
		return nil
	}
}

func (in *Interp) evalIndexRef(n *ast.IndexRef) (Value, error) {
	cur, err := in.evalExpr(n.Base)
	if err != nil {
		return nil, err
	}
	for _, sub := range n.Subscripts {
		cur, err = in.evalSubscript(cur, sub)
		if err != nil {
			return nil, err
		}
	}
	return cur, nil
}

func (in *Interp) evalSubscript(cur Value, sub *ast.Subscript) (Value, error) {
	switch sub.Kind {
	case ast.SubIndex:
		idx, err := in.evalExpr(sub.IndexExpr)
		if err != nil {
			return nil, err
		}
		switch b := cur.(type) {
		case *VectorVal:
			i := int(asInt(idx))
			if i < 0 || i >= len(b.Items) {
				in.sink.Errorf(diag.IndexOutOfRange, sub.Tok.Span, "vector index %d out of range", i)
				return nil, haltSignal{code: 1}
			}
			return b.Items[i], nil
		case *StringVal:
			i := int(asInt(idx))
			if i < 0 || i >= len(b.Chars) {
				in.sink.Errorf(diag.IndexOutOfRange, sub.Tok.Span, "string index %d out of range", i)
				return nil, haltSignal{code: 1}
			}
			return &CharVal{C: b.Chars[i]}, nil
		case *DictVal:
			if j := b.Find(idx); j >= 0 {
				return b.Entries[j].Val, nil
			}
			def := in.defaultValue(b.Val)
			b.Entries = append(b.Entries, DictPair{Key: idx, Val: def})
			return def, nil
		default:
			return None, nil
		}
	case ast.SubMember:
		if s, ok := cur.(*StructVal); ok {
			return s.Fields[sub.MemberIndex], nil
		}
		return None, nil
	case ast.SubCall:
		return in.evalMemberCall(sub, cur)
	default:
		return None, nil
	}
}

func (in *Interp) evalNewEnumerator(n *ast.NewEnumerator) (Value, error) {
	var payload Value
	if n.Arg != nil {
		v, err := in.evalExpr(n.Arg)
		if err != nil {
			return nil, err
		}
		payload = v
	}
	return &EnumVal{Decl: n.Enum, Index: n.Index, Payload: payload}, nil
}
