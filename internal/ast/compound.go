package ast

import "github.com/metro-lang/metro/internal/lexer"

// Vector is an ordered vector literal, e.g. `[1, 2, 3]`.
type Vector struct {
	exprBase
	LBrack   lexer.Token
	Elements []Expr
	RBrack   lexer.Token
}

func (v *Vector) Start() lexer.Token { return v.LBrack }
func (v *Vector) End() lexer.Token   { return v.RBrack }

// DictEntry is one key/value pair of a Dict literal, preserving
// source (first-insertion) order.
type DictEntry struct {
	Key   Expr
	Value Expr
}

// Dict is an ordered dict literal, e.g. `dict<String, Int>{"a": 1}`.
// KeyType/ValueType are nil for an untyped empty `{}` dict literal.
type Dict struct {
	exprBase
	Tok       lexer.Token
	KeyType   *TypeExpr
	ValueType *TypeExpr
	Entries   []DictEntry
	RBrace    lexer.Token
}

func (d *Dict) Start() lexer.Token { return d.Tok }
func (d *Dict) End() lexer.Token   { return d.RBrace }

// Range is a `begin..end` range literal.
type Range struct {
	exprBase
	Begin Expr
	End_  Expr
}

func (r *Range) Start() lexer.Token { return r.Begin.Start() }
func (r *Range) End() lexer.Token   { return r.End_.End() }

// FieldInit is one `{name: value}` pair of a StructConstructor.
type FieldInit struct {
	Name  string
	Tok   lexer.Token
	Value Expr
	// Index is filled by Sema: the declared member position this
	// field initializes.
	Index int
}

// StructConstructor builds a struct value: `new Point(x: 1, y: 2)`.
type StructConstructor struct {
	exprBase
	NewTok lexer.Token
	Type   *TypeExpr
	Fields []FieldInit
	RParen lexer.Token
}

func (s *StructConstructor) Start() lexer.Token { return s.NewTok }
func (s *StructConstructor) End() lexer.Token   { return s.RParen }
