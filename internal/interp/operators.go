package interp

import (
	"github.com/metro-lang/metro/internal/ast"
	"github.com/metro-lang/metro/internal/diag"
	"github.com/metro-lang/metro/internal/lexer"
)

// applyBinaryOp implements spec.md §4.4.3's per-operator arithmetic
// over an already Sema-checked pair of operands.
func (in *Interp) applyBinaryOp(op ast.ExprOp, l, r Value, tok lexer.Token) (Value, error) {
	switch op {
	case ast.Add:
		return in.opAdd(l, r)
	case ast.Sub:
		return in.opSub(l, r, tok)
	case ast.Mul:
		return in.opMul(l, r)
	case ast.Div:
		return in.opDiv(l, r, tok)
	case ast.Mod:
		return in.opMod(l, r, tok)
	case ast.LShift:
		return &IntVal{N: l.(*IntVal).N << uint(r.(*IntVal).N)}, nil
	case ast.RShift:
		return &IntVal{N: l.(*IntVal).N >> uint(r.(*IntVal).N)}, nil
	case ast.BitAnd:
		return &IntVal{N: l.(*IntVal).N & r.(*IntVal).N}, nil
	case ast.BitXor:
		return &IntVal{N: l.(*IntVal).N ^ r.(*IntVal).N}, nil
	case ast.BitOr:
		return &IntVal{N: l.(*IntVal).N | r.(*IntVal).N}, nil
	case ast.LogicalAnd:
		return &BoolVal{B: l.(*BoolVal).B && r.(*BoolVal).B}, nil
	case ast.LogicalOr:
		return &BoolVal{B: l.(*BoolVal).B || r.(*BoolVal).B}, nil
	default:
		return None, nil
	}
}

func (in *Interp) opAdd(l, r Value) (Value, error) {
	if ls, ok := l.(*StringVal); ok {
		rs := r.(*StringVal)
		out := make([]uint16, 0, len(ls.Chars)+len(rs.Chars))
		out = append(out, ls.Chars...)
		out = append(out, rs.Chars...)
		return &StringVal{Chars: out}, nil
	}
	if lv, ok := l.(*VectorVal); ok {
		rv := r.(*VectorVal)
		out := make([]Value, 0, len(lv.Items)+len(rv.Items))
		out = append(out, lv.Items...)
		out = append(out, rv.Items...)
		return &VectorVal{Elem: lv.Elem, Items: out}, nil
	}
	return in.numericBinOp(l, r, func(a, b int64) int64 { return a + b },
		func(a, b uint64) uint64 { return a + b },
		func(a, b float32) float32 { return a + b })
}

func (in *Interp) opSub(l, r Value, tok lexer.Token) (Value, error) {
	if lv, ok := l.(*VectorVal); ok {
		out := make([]Value, 0, len(lv.Items))
		removed := false
		for _, item := range lv.Items {
			if !removed && ValuesEqual(item, r) {
				removed = true
				continue
			}
			out = append(out, item)
		}
		return &VectorVal{Elem: lv.Elem, Items: out}, nil
	}
	return in.numericBinOp(l, r, func(a, b int64) int64 { return a - b },
		func(a, b uint64) uint64 { return a - b },
		func(a, b float32) float32 { return a - b })
}

func (in *Interp) opMul(l, r Value) (Value, error) {
	return in.numericBinOp(l, r, func(a, b int64) int64 { return a * b },
		func(a, b uint64) uint64 { return a * b },
		func(a, b float32) float32 { return a * b })
}

func (in *Interp) opDiv(l, r Value, tok lexer.Token) (Value, error) {
	if isZero(r) {
		in.sink.Errorf(diag.DivisionByZero, tok.Span, "division by zero")
		return nil, haltSignal{code: 1}
	}
	return in.numericBinOp(l, r, func(a, b int64) int64 { return a / b },
		func(a, b uint64) uint64 { return a / b },
		func(a, b float32) float32 { return a / b })
}

func (in *Interp) opMod(l, r Value, tok lexer.Token) (Value, error) {
	if isZero(r) {
		in.sink.Errorf(diag.DivisionByZero, tok.Span, "modulo by zero")
		return nil, haltSignal{code: 1}
	}
	return &IntVal{N: l.(*IntVal).N % r.(*IntVal).N}, nil
}

func isZero(v Value) bool {
	switch n := v.(type) {
	case *IntVal:
		return n.N == 0
	case *USizeVal:
		return n.N == 0
	case *FloatVal:
		return n.N == 0
	default:
		return false
	}
}

// numericBinOp folds l/r through whichever of the three numeric kinds
// they share, promoting to Float whenever either side is Float.
func (in *Interp) numericBinOp(l, r Value, intOp func(a, b int64) int64, usizeOp func(a, b uint64) uint64, floatOp func(a, b float32) float32) (Value, error) {
	if lf, ok := l.(*FloatVal); ok {
		return &FloatVal{N: floatOp(lf.N, asFloat(r))}, nil
	}
	if rf, ok := r.(*FloatVal); ok {
		return &FloatVal{N: floatOp(asFloat(l), rf.N)}, nil
	}
	if lu, ok := l.(*USizeVal); ok {
		return &USizeVal{N: usizeOp(lu.N, asUSize(r))}, nil
	}
	if ru, ok := r.(*USizeVal); ok {
		return &USizeVal{N: usizeOp(asUSize(l), ru.N)}, nil
	}
	return &IntVal{N: intOp(l.(*IntVal).N, r.(*IntVal).N)}, nil
}

func asFloat(v Value) float32 {
	switch n := v.(type) {
	case *FloatVal:
		return n.N
	case *IntVal:
		return float32(n.N)
	case *USizeVal:
		return float32(n.N)
	default:
		return 0
	}
}

func asUSize(v Value) uint64 {
	switch n := v.(type) {
	case *USizeVal:
		return n.N
	case *IntVal:
		return uint64(n.N)
	default:
		return 0
	}
}

// applyCompare implements spec.md §4.4.3's ordering/equality rule:
// equality is structural; ordering on numerics promotes Int/Float
// pairs to Float for the comparison only.
func applyCompare(op ast.CompareOp, l, r Value) *BoolVal {
	switch op {
	case ast.Eq:
		return &BoolVal{B: ValuesEqual(l, r)}
	case ast.NotEq:
		return &BoolVal{B: !ValuesEqual(l, r)}
	}
	lf, rf := asFloat(l), asFloat(r)
	switch op {
	case ast.Lt:
		return &BoolVal{B: lf < rf}
	case ast.LtEq:
		return &BoolVal{B: lf <= rf}
	case ast.Gt:
		return &BoolVal{B: lf > rf}
	case ast.GtEq:
		return &BoolVal{B: lf >= rf}
	default:
		return &BoolVal{B: false}
	}
}
