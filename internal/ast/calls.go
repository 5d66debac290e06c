package ast

import "github.com/metro-lang/metro/internal/lexer"

// CallFunc is a name applied to an argument list: `name(args...)`.
// The resolution fields are filled by Sema's function-resolution
// procedure (spec.md §4.3.4): exactly one of IsBuiltin/Callee is set
// for a well-typed program.
type CallFunc struct {
	exprBase
	NameTok lexer.Token
	Name    string
	Args    []Expr
	RParen  lexer.Token

	IsBuiltin    bool
	BuiltinName  string
	Callee       *Function
	IsMemberCall bool
}

func (c *CallFunc) Start() lexer.Token { return c.NameTok }
func (c *CallFunc) End() lexer.Token   { return c.RParen }

// NewEnumerator constructs an enum value: `Color.Red` or
// `Shape.Circle(radius)`. Enum/Index are filled by Sema.
type NewEnumerator struct {
	exprBase
	EnumTok        lexer.Token
	EnumName       string
	EnumeratorName string
	Arg            Expr // optional payload argument
	EndTok         lexer.Token

	Enum  *Enum
	Index int
}

func (n *NewEnumerator) Start() lexer.Token { return n.EnumTok }
func (n *NewEnumerator) End() lexer.Token   { return n.EndTok }
