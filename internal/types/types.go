// Package types implements the structural type descriptor of
// spec.md §3.3.
package types

// Kind is the coarse category of a Type.
type Kind int

const (
	None Kind = iota
	Int
	USize
	Float
	Bool
	Char
	String
	Range
	Vector
	Dict
	Enumerator
	Args
	UserDef
	Template
)

func (k Kind) String() string {
	switch k {
	case None:
		return "none"
	case Int:
		return "int"
	case USize:
		return "usize"
	case Float:
		return "float"
	case Bool:
		return "bool"
	case Char:
		return "char"
	case String:
		return "string"
	case Range:
		return "range"
	case Vector:
		return "vector"
	case Dict:
		return "dict"
	case Enumerator:
		return "enumerator"
	case Args:
		return "args"
	case UserDef:
		return "userdef"
	case Template:
		return "template"
	default:
		return "unknown"
	}
}

// Member is one (name, type) pair of a user-defined struct, or one
// (name, payload-type) enumerator of a user-defined enum.
type Member struct {
	Name string
	Type *Type
}

// Type is the structural type descriptor. Equality is structural on
// (Kind, Const, Params); Decl distinguishes user-defined types of the
// same shape by identity.
type Type struct {
	Kind    Kind
	Const   bool
	Params  []*Type  // type parameters, e.g. vector<T>, dict<K,V>
	Members []Member // user type members, or enum enumerators
	Name    string   // user type / enumerator name, for display and lookup
	Decl    any      // defining *ast.Struct / *ast.Enum, when Kind == UserDef/Enumerator
}

// Basic type singletons, safe to share since Type carries no mutable
// identity for non-user kinds.
var (
	NoneType   = &Type{Kind: None}
	IntType    = &Type{Kind: Int}
	USizeType  = &Type{Kind: USize}
	FloatType  = &Type{Kind: Float}
	BoolType   = &Type{Kind: Bool}
	CharType   = &Type{Kind: Char}
	StringType = &Type{Kind: String}
)

// NewVector builds a vector<elem> type descriptor.
func NewVector(elem *Type) *Type {
	return &Type{Kind: Vector, Params: []*Type{elem}}
}

// NewDict builds a dict<key,value> type descriptor.
func NewDict(key, value *Type) *Type {
	return &Type{Kind: Dict, Params: []*Type{key, value}}
}

// NewRange builds the range type descriptor (untyped bounds; always Int
// per spec.md §4.3.2's "For" rule that a Range's element type is Int).
func NewRange() *Type {
	return &Type{Kind: Range}
}

// Equal implements the structural equality relation of spec.md §3.3:
// equal (kind, const flag, parameter list); Args matches any trailing
// sequence and is not a general equality target.
func Equal(a, b *Type) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Kind == Args || b.Kind == Args {
		return true
	}
	if a.Kind != b.Kind || a.Const != b.Const {
		return false
	}
	switch a.Kind {
	case UserDef, Enumerator:
		return a.Decl == b.Decl
	}
	if len(a.Params) != len(b.Params) {
		return false
	}
	for i := range a.Params {
		if !Equal(a.Params[i], b.Params[i]) {
			return false
		}
	}
	return true
}

// IsNumeric reports whether k is one of {Int, USize, Float}.
func IsNumeric(k Kind) bool { return k == Int || k == USize || k == Float }

// IsIntegerOnly reports whether k is one of {Int, USize}.
func IsIntegerOnly(k Kind) bool { return k == Int || k == USize }

// IsIterable reports whether k is one of {Range, Vector, Dict, String}.
func IsIterable(k Kind) bool {
	return k == Range || k == Vector || k == Dict || k == String
}

// String renders the type the way the `type` builtin does (SPEC_FULL.md
// §D): lowercase kind name, parameterized containers as name<params>,
// user types by declared name.
func (t *Type) String() string {
	if t == nil {
		return "none"
	}
	switch t.Kind {
	case UserDef, Enumerator:
		return t.Name
	case Vector:
		return "vector<" + t.Params[0].String() + ">"
	case Dict:
		return "dict<" + t.Params[0].String() + ", " + t.Params[1].String() + ">"
	default:
		return t.Kind.String()
	}
}
