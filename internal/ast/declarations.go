package ast

import (
	"github.com/metro-lang/metro/internal/lexer"
	"github.com/metro-lang/metro/internal/types"
)

// Param is one `name: Type` function parameter or struct member.
type Param struct {
	Name string
	Tok  lexer.Token
	Type *TypeExpr
}

// Function is `fn name([self,] params...) [-> ResultType] { body }`.
//
// HaveSelf marks a member function declared inside an Impl block with
// `self` as its first parameter; Params never includes the synthetic
// self slot itself, matching spec.md §3.2 ("argument list with
// optional leading self").
type Function struct {
	stmtBase
	Tok        lexer.Token
	Name       string
	HaveSelf   bool
	Params     []*Param
	ResultType *TypeExpr // nil means no declared result type
	Body       *Scope

	// ImplTarget is set when this Function is a member of an Impl
	// block, naming the type it is callable on.
	ImplTarget string
}

func (f *Function) Start() lexer.Token { return f.Tok }
func (f *Function) End() lexer.Token   { return f.Body.End() }

// Enumerator is one alternative of an Enum, with an optional typed
// payload (spec.md §3.2, §GLOSSARY).
type Enumerator struct {
	Name        string
	Tok         lexer.Token
	PayloadType *TypeExpr // nil if this enumerator carries no payload
}

// Enum is `enum Name { A, B(T), ... }`.
type Enum struct {
	stmtBase
	Tok         lexer.Token
	Name        string
	Enumerators []*Enumerator
	EndTok      lexer.Token

	visiting bool
	checked  bool
}

func (e *Enum) Start() lexer.Token { return e.Tok }
func (e *Enum) End() lexer.Token   { return e.EndTok }

func (e *Enum) SetVisiting(v bool) { e.visiting = v }
func (e *Enum) Visiting() bool     { return e.visiting }
func (e *Enum) SetChecked(v bool)  { e.checked = v }
func (e *Enum) Checked() bool      { return e.checked }

// TypeDescriptor builds the *types.Type used where this enum is
// referenced as a declared type (`let v: Color`): Kind UserDef,
// pointing at this Enum.
func (e *Enum) TypeDescriptor() *types.Type {
	t := &types.Type{Kind: types.UserDef, Name: e.Name, Decl: e}
	for _, en := range e.Enumerators {
		t.Members = append(t.Members, types.Member{Name: en.Name})
	}
	return t
}

// EnumeratorType builds the *types.Type a bare enumerator reference
// evaluates to before widening (`Color.Red`'s own type): Kind
// Enumerator, pointing at the same Enum, so the acceptance rule of
// spec.md §4.3.3 ("T is a user enum and T' is an Enumerator of that
// enum") can compare Decl identity between the two Kinds.
func (e *Enum) EnumeratorType() *types.Type {
	return &types.Type{Kind: types.Enumerator, Name: e.Name, Decl: e}
}

// IndexOf returns the ordinal index of the named enumerator, or -1.
func (e *Enum) IndexOf(name string) int {
	for i, en := range e.Enumerators {
		if en.Name == name {
			return i
		}
	}
	return -1
}

// Struct is `struct Name { field: Type, ... }`.
type Struct struct {
	stmtBase
	Tok     lexer.Token
	Name    string
	Members []*Param
	EndTok  lexer.Token

	// visiting is used only during Sema's recursion guard
	// (spec.md §4.3 step 1) and is not meaningful after analysis.
	visiting bool
	checked  bool
}

func (s *Struct) Start() lexer.Token { return s.Tok }
func (s *Struct) End() lexer.Token   { return s.EndTok }

// SetVisiting and Visiting back the recursion-guard DFS state.
func (s *Struct) SetVisiting(v bool) { s.visiting = v }
func (s *Struct) Visiting() bool     { return s.visiting }
func (s *Struct) SetChecked(v bool)  { s.checked = v }
func (s *Struct) Checked() bool      { return s.checked }

// TypeDescriptor builds (once per call) a UserDef *types.Type naming
// this struct, with Decl pointing back at it. Members is left empty;
// member lookups go through the *ast.Struct held in Decl.
func (s *Struct) TypeDescriptor() *types.Type {
	return &types.Type{Kind: types.UserDef, Name: s.Name, Decl: s}
}

// IndexOf returns the ordinal index of the named member, or -1.
func (s *Struct) IndexOf(name string) int {
	for i, m := range s.Members {
		if m.Name == name {
			return i
		}
	}
	return -1
}

// Impl is `impl TypeName { fn ... }`: a block of member functions
// associated with a user-defined type.
type Impl struct {
	stmtBase
	Tok        lexer.Token
	TargetName string
	Functions  []*Function
	EndTok     lexer.Token
}

func (i *Impl) Start() lexer.Token { return i.Tok }
func (i *Impl) End() lexer.Token   { return i.EndTok }
