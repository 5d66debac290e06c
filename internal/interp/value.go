// Package interp implements the Evaluator (component C5 of spec.md
// §4.4): a tree-walking interpreter over a Sema-annotated *ast.File.
package interp

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/metro-lang/metro/internal/ast"
	"github.com/metro-lang/metro/internal/types"
)

// Value is a runtime value, per spec.md §3.5. One concrete struct per
// kind, no interface{} — matching the teacher's Value design.
//
// RefCount/Pinned are carried for spec fidelity with §3.5's ownership
// model, but Metro relies on the Go garbage collector for actual
// memory reclamation: Retain/Release only keep the bookkeeping counts,
// which Frame.sweep (frame.go) decrements at scope exit; nothing
// asserts on the counts and nothing is freed by hand. See DESIGN.md.
type Value interface {
	TypeOf() *types.Type
	String() string
	Retain()
	Release() int
	Identity() string
}

type valueBase struct {
	refCount int
	pinned   bool
	id       string
}

func (v *valueBase) Retain()      { v.refCount++ }
func (v *valueBase) Release() int { v.refCount--; return v.refCount }

// Identity lazily assigns and returns a stable uuid for this value,
// backing the `id` builtin (spec.md §6.3; see SPEC_FULL.md §B).
func (v *valueBase) Identity() string {
	if v.id == "" {
		v.id = uuid.NewString()
	}
	return v.id
}

// NoneVal is the type of the single None value; sweep only adjusts its
// ref-count and never reclaims it.
type NoneVal struct{ valueBase }

func (n *NoneVal) TypeOf() *types.Type { return types.NoneType }
func (n *NoneVal) String() string      { return "none" }

// None is the shared, pinned None singleton (spec.md §4.4.2, "literal
// nodes produce pinned values cached on the node").
var None = &NoneVal{valueBase: valueBase{pinned: true}}

type IntVal struct {
	valueBase
	N int64
}

func (v *IntVal) TypeOf() *types.Type { return types.IntType }
func (v *IntVal) String() string      { return strconv.FormatInt(v.N, 10) }

type USizeVal struct {
	valueBase
	N uint64
}

func (v *USizeVal) TypeOf() *types.Type { return types.USizeType }
func (v *USizeVal) String() string      { return strconv.FormatUint(v.N, 10) }

type FloatVal struct {
	valueBase
	N float32
}

func (v *FloatVal) TypeOf() *types.Type { return types.FloatType }
func (v *FloatVal) String() string      { return strconv.FormatFloat(float64(v.N), 'g', -1, 32) }

type BoolVal struct {
	valueBase
	B bool
}

func (v *BoolVal) TypeOf() *types.Type { return types.BoolType }
func (v *BoolVal) String() string {
	if v.B {
		return "true"
	}
	return "false"
}

// CharVal is a single 16-bit code unit (SPEC_FULL.md §D's open-question
// decision on Char/String width).
type CharVal struct {
	valueBase
	C uint16
}

func (v *CharVal) TypeOf() *types.Type { return types.CharType }
func (v *CharVal) String() string      { return string(rune(v.C)) }

// StringVal is an ordered sequence of Char code units, per spec.md
// §3.5 ("String (ordered sequence of Char values)").
type StringVal struct {
	valueBase
	Chars []uint16
}

func NewStringVal(s string) *StringVal {
	return &StringVal{Chars: utf16FromString(s)}
}

func (v *StringVal) TypeOf() *types.Type { return types.StringType }
func (v *StringVal) String() string      { return utf16ToString(v.Chars) }

func utf16FromString(s string) []uint16 {
	out := make([]uint16, 0, len(s))
	for _, r := range s {
		if r > 0xFFFF {
			r = '?'
		}
		out = append(out, uint16(r))
	}
	return out
}

func utf16ToString(cs []uint16) string {
	var sb strings.Builder
	for _, c := range cs {
		sb.WriteRune(rune(c))
	}
	return sb.String()
}

type RangeVal struct {
	valueBase
	Begin, End int64
}

func (v *RangeVal) TypeOf() *types.Type { return types.NewRange() }
func (v *RangeVal) String() string      { return fmt.Sprintf("%d..%d", v.Begin, v.End) }

// VectorVal is an ordered, mutable sequence of values of a uniform
// element type (spec.md §3.5).
type VectorVal struct {
	valueBase
	Elem  *types.Type
	Items []Value
}

func (v *VectorVal) TypeOf() *types.Type { return types.NewVector(v.Elem) }
func (v *VectorVal) String() string {
	parts := make([]string, len(v.Items))
	for i, it := range v.Items {
		parts[i] = it.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// DictPair is one ordered (key, value) entry of a DictVal.
type DictPair struct {
	Key Value
	Val Value
}

// DictVal is an ordered associative container, first-insertion order,
// equality by deep compare (spec.md §3.5).
type DictVal struct {
	valueBase
	Key, Val *types.Type
	Entries  []DictPair
}

func (v *DictVal) TypeOf() *types.Type { return types.NewDict(v.Key, v.Val) }
func (v *DictVal) String() string {
	parts := make([]string, len(v.Entries))
	for i, e := range v.Entries {
		parts[i] = e.Key.String() + ": " + e.Val.String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// Find returns the index of the entry whose key compares equal to
// key, or -1.
func (v *DictVal) Find(key Value) int {
	for i, e := range v.Entries {
		if ValuesEqual(e.Key, key) {
			return i
		}
	}
	return -1
}

// StructVal is an ordered set of member values, per spec.md §3.5's
// "UserType (ordered members)".
type StructVal struct {
	valueBase
	Decl   *ast.Struct
	Fields []Value
}

func (v *StructVal) TypeOf() *types.Type { return v.Decl.TypeDescriptor() }
func (v *StructVal) String() string {
	parts := make([]string, len(v.Fields))
	for i, f := range v.Fields {
		parts[i] = v.Decl.Members[i].Name + ": " + f.String()
	}
	return v.Decl.Name + "(" + strings.Join(parts, ", ") + ")"
}

// EnumVal is an enum pointer, enumerator index, and optional payload
// (spec.md §3.5).
type EnumVal struct {
	valueBase
	Decl    *ast.Enum
	Index   int
	Payload Value
}

func (v *EnumVal) TypeOf() *types.Type { return v.Decl.TypeDescriptor() }
func (v *EnumVal) String() string {
	name := v.Decl.Enumerators[v.Index].Name
	if v.Payload == nil {
		return v.Decl.Name + "." + name
	}
	return v.Decl.Name + "." + name + "(" + v.Payload.String() + ")"
}

// ValuesEqual implements the structural equality relation of spec.md
// §3.5, used by Dict lookups and the `==`/`!=` operators.
func ValuesEqual(a, b Value) bool {
	switch av := a.(type) {
	case *NoneVal:
		_, ok := b.(*NoneVal)
		return ok
	case *IntVal:
		switch bv := b.(type) {
		case *IntVal:
			return av.N == bv.N
		case *USizeVal:
			return av.N >= 0 && uint64(av.N) == bv.N
		}
		return false
	case *USizeVal:
		switch bv := b.(type) {
		case *USizeVal:
			return av.N == bv.N
		case *IntVal:
			return bv.N >= 0 && av.N == uint64(bv.N)
		}
		return false
	case *FloatVal:
		bv, ok := b.(*FloatVal)
		return ok && av.N == bv.N
	case *BoolVal:
		bv, ok := b.(*BoolVal)
		return ok && av.B == bv.B
	case *CharVal:
		bv, ok := b.(*CharVal)
		return ok && av.C == bv.C
	case *StringVal:
		bv, ok := b.(*StringVal)
		if !ok || len(av.Chars) != len(bv.Chars) {
			return false
		}
		for i := range av.Chars {
			if av.Chars[i] != bv.Chars[i] {
				return false
			}
		}
		return true
	case *RangeVal:
		bv, ok := b.(*RangeVal)
		return ok && av.Begin == bv.Begin && av.End == bv.End
	case *VectorVal:
		bv, ok := b.(*VectorVal)
		if !ok || len(av.Items) != len(bv.Items) {
			return false
		}
		for i := range av.Items {
			if !ValuesEqual(av.Items[i], bv.Items[i]) {
				return false
			}
		}
		return true
	case *DictVal:
		bv, ok := b.(*DictVal)
		if !ok || len(av.Entries) != len(bv.Entries) {
			return false
		}
		for _, e := range av.Entries {
			j := bv.Find(e.Key)
			if j < 0 || !ValuesEqual(e.Val, bv.Entries[j].Val) {
				return false
			}
		}
		return true
	case *StructVal:
		bv, ok := b.(*StructVal)
		if !ok || av.Decl != bv.Decl {
			return false
		}
		for i := range av.Fields {
			if !ValuesEqual(av.Fields[i], bv.Fields[i]) {
				return false
			}
		}
		return true
	case *EnumVal:
		bv, ok := b.(*EnumVal)
		if !ok || av.Decl != bv.Decl || av.Index != bv.Index {
			return false
		}
		if av.Payload == nil || bv.Payload == nil {
			return av.Payload == bv.Payload
		}
		return ValuesEqual(av.Payload, bv.Payload)
	default:
		return false
	}
}

// DefaultValue constructs the zero/empty value of t, used by the
// evaluator wherever Sema set UseDefault on an accepted-but-widened
// expression (spec.md §4.3.3) and by default struct-field/dict-miss
// initialization (spec.md §4.4.6). resolveType maps a declared struct
// member's *ast.TypeExpr to its *types.Type (see Interp.resolveType).
func DefaultValue(t *types.Type, resolveType func(*ast.TypeExpr) *types.Type) Value {
	switch t.Kind {
	case types.None:
		return None
	case types.Int:
		return &IntVal{}
	case types.USize:
		return &USizeVal{}
	case types.Float:
		return &FloatVal{}
	case types.Bool:
		return &BoolVal{}
	case types.Char:
		return &CharVal{}
	case types.String:
		return &StringVal{}
	case types.Range:
		return &RangeVal{}
	case types.Vector:
		elem := types.NoneType
		if len(t.Params) > 0 {
			elem = t.Params[0]
		}
		return &VectorVal{Elem: elem}
	case types.Dict:
		key, val := types.NoneType, types.NoneType
		if len(t.Params) > 1 {
			key, val = t.Params[0], t.Params[1]
		}
		return &DictVal{Key: key, Val: val}
	case types.UserDef:
		if s, ok := t.Decl.(*ast.Struct); ok {
			fields := make([]Value, len(s.Members))
			for i, m := range s.Members {
				fields[i] = DefaultValue(resolveType(m.Type), resolveType)
			}
			return &StructVal{Decl: s, Fields: fields}
		}
		if e, ok := t.Decl.(*ast.Enum); ok && len(e.Enumerators) > 0 {
			return &EnumVal{Decl: e, Index: 0}
		}
		return None
	default:
		return None
	}
}
