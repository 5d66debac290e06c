package ast

import "github.com/metro-lang/metro/internal/lexer"

// NoneLit is the `none` literal.
type NoneLit struct {
	exprBase
	Tok lexer.Token
}

func (n *NoneLit) Start() lexer.Token { return n.Tok }
func (n *NoneLit) End() lexer.Token   { return n.Tok }

// TrueLit is the `true` literal.
type TrueLit struct {
	exprBase
	Tok lexer.Token
}

func (n *TrueLit) Start() lexer.Token { return n.Tok }
func (n *TrueLit) End() lexer.Token   { return n.Tok }

// FalseLit is the `false` literal.
type FalseLit struct {
	exprBase
	Tok lexer.Token
}

func (n *FalseLit) Start() lexer.Token { return n.Tok }
func (n *FalseLit) End() lexer.Token   { return n.Tok }

// ValueLit is a scalar literal token: int, usize, float, char, or
// string, per spec.md §3.2. The lexer.Kind of Tok says which.
type ValueLit struct {
	exprBase
	Tok lexer.Token
}

func (n *ValueLit) Start() lexer.Token { return n.Tok }
func (n *ValueLit) End() lexer.Token   { return n.Tok }
