package ast

import (
	"github.com/metro-lang/metro/internal/lexer"
	"github.com/metro-lang/metro/internal/types"
)

// UnaryPlus is `+x`.
type UnaryPlus struct {
	exprBase
	OpTok lexer.Token
	X     Expr
}

func (u *UnaryPlus) Start() lexer.Token { return u.OpTok }
func (u *UnaryPlus) End() lexer.Token   { return u.X.End() }

// UnaryMinus is `-x`.
type UnaryMinus struct {
	exprBase
	OpTok lexer.Token
	X     Expr
}

func (u *UnaryMinus) Start() lexer.Token { return u.OpTok }
func (u *UnaryMinus) End() lexer.Token   { return u.X.End() }

// Cast is `cast<T>(x)`.
type Cast struct {
	exprBase
	CastTok lexer.Token
	Target  *TypeExpr
	X       Expr
	RParen  lexer.Token
}

func (c *Cast) Start() lexer.Token { return c.CastTok }
func (c *Cast) End() lexer.Token   { return c.RParen }

// ExprOp is the operator of one step of a folded Expr chain.
type ExprOp int

const (
	Add ExprOp = iota
	Sub
	Mul
	Div
	Mod
	LShift
	RShift
	BitAnd
	BitXor
	BitOr
	LogicalAnd
	LogicalOr
)

func (op ExprOp) String() string {
	switch op {
	case Add:
		return "+"
	case Sub:
		return "-"
	case Mul:
		return "*"
	case Div:
		return "/"
	case Mod:
		return "%"
	case LShift:
		return "<<"
	case RShift:
		return ">>"
	case BitAnd:
		return "&"
	case BitXor:
		return "^"
	case BitOr:
		return "|"
	case LogicalAnd:
		return "&&"
	case LogicalOr:
		return "||"
	default:
		return "?"
	}
}

// ExprTail is one (operator, operand) step of a folded binary chain.
type ExprTail struct {
	Op      ExprOp
	OpTok   lexer.Token
	Operand Expr
}

// BinaryExpr folds a left operand with an ordered tail of operators,
// per spec.md §3.2's `Expr` variant: "left operand + ordered tail of
// (op-kind, operand)".
type BinaryExpr struct {
	exprBase
	Left Expr
	Tail []ExprTail
}

func (b *BinaryExpr) Start() lexer.Token { return b.Left.Start() }
func (b *BinaryExpr) End() lexer.Token {
	if len(b.Tail) == 0 {
		return b.Left.End()
	}
	return b.Tail[len(b.Tail)-1].Operand.End()
}

// CompareOp is the operator of one step of a Compare chain.
type CompareOp int

const (
	Eq CompareOp = iota
	NotEq
	Lt
	LtEq
	Gt
	GtEq
)

func (op CompareOp) String() string {
	switch op {
	case Eq:
		return "=="
	case NotEq:
		return "!="
	case Lt:
		return "<"
	case LtEq:
		return "<="
	case Gt:
		return ">"
	case GtEq:
		return ">="
	default:
		return "?"
	}
}

// CompareTail is one (operator, operand) step of a Compare chain.
type CompareTail struct {
	Op      CompareOp
	OpTok   lexer.Token
	Operand Expr
}

// CompareExpr is the same shape as BinaryExpr but for comparison
// operators, which always yield Bool.
type CompareExpr struct {
	exprBase
	Left Expr
	Tail []CompareTail
}

func (c *CompareExpr) Start() lexer.Token { return c.Left.Start() }
func (c *CompareExpr) End() lexer.Token {
	if len(c.Tail) == 0 {
		return c.Left.End()
	}
	return c.Tail[len(c.Tail)-1].Operand.End()
}

// Assign is `target = value`.
type Assign struct {
	exprBase
	Target Expr
	OpTok  lexer.Token
	Value  Expr
}

func (a *Assign) Start() lexer.Token { return a.Target.Start() }
func (a *Assign) End() lexer.Token   { return a.Value.End() }

// SubscriptKind tags one step of an IndexRef chain, per spec.md §3.2.
type SubscriptKind int

const (
	SubIndex SubscriptKind = iota
	SubMember
	SubCall
)

// Subscript is one step of an IndexRef, plus the fields Sema fills in
// when resolving it.
type Subscript struct {
	Kind SubscriptKind
	Tok  lexer.Token
	End  lexer.Token

	IndexExpr  Expr     // SubIndex
	MemberName string   // SubMember
	CallArgs   []Expr   // SubCall

	// Filled by Sema (spec.md §4.3.2, IndexRef rule):
	ResolvedType *types.Type
	MemberIndex  int    // struct field position, for SubMember
	IsEnumerator bool   // SubMember selected an enumerator
	IsMemberCall bool   // SubCall's receiver is the accumulated base
	IsBuiltin    bool
	BuiltinName  string
	CalleeName   string
}

// IndexRef is a base expression followed by an ordered sequence of
// index/member/call subscripts, per spec.md §3.2.
type IndexRef struct {
	exprBase
	Base       Expr
	Subscripts []*Subscript
}

func (r *IndexRef) Start() lexer.Token { return r.Base.Start() }
func (r *IndexRef) End() lexer.Token {
	if len(r.Subscripts) == 0 {
		return r.Base.End()
	}
	return r.Subscripts[len(r.Subscripts)-1].End
}
