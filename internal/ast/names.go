package ast

import "github.com/metro-lang/metro/internal/lexer"

// Variable is a name reference. Step and Index are filled by Sema:
// Step is how many scope frames to walk out, Index is the slot
// position within that frame (spec.md §4.3.1).
type Variable struct {
	exprBase
	Tok   lexer.Token
	Name  string
	Step  int
	Index int
}

func (v *Variable) Start() lexer.Token { return v.Tok }
func (v *Variable) End() lexer.Token   { return v.Tok }

// MemberVariable is the same shape as Variable but denotes a name that
// Sema resolved to a struct member access rather than a local/global
// (spec.md §3.2).
type MemberVariable struct {
	exprBase
	Tok         lexer.Token
	Name        string
	MemberIndex int
}

func (m *MemberVariable) Start() lexer.Token { return m.Tok }
func (m *MemberVariable) End() lexer.Token   { return m.Tok }

// TypeExpr is a type reference as written in source: a name plus
// optional type-parameters and an optional `const` qualifier.
type TypeExpr struct {
	Tok      lexer.Token
	Name     string
	TypeArgs []*TypeExpr
	Const    bool
	EndTok   lexer.Token
}

func (t *TypeExpr) Start() lexer.Token { return t.Tok }
func (t *TypeExpr) End() lexer.Token {
	if t.EndTok.Kind != 0 || t.EndTok.Text != "" {
		return t.EndTok
	}
	return t.Tok
}

// UserTypeName names a struct or enum being declared (the `name` in
// `struct name { ... }` / `enum name { ... }`).
type UserTypeName struct {
	Tok  lexer.Token
	Name string
}

func (u *UserTypeName) Start() lexer.Token { return u.Tok }
func (u *UserTypeName) End() lexer.Token   { return u.Tok }

// ImplName names the type an `impl` block targets.
type ImplName struct {
	Tok  lexer.Token
	Name string
}

func (i *ImplName) Start() lexer.Token { return i.Tok }
func (i *ImplName) End() lexer.Token   { return i.Tok }
