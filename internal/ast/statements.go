package ast

import (
	"github.com/metro-lang/metro/internal/lexer"
	"github.com/metro-lang/metro/internal/types"
)

// ExprStmt wraps an expression used as a statement (e.g. a bare call,
// or a scope's trailing expression when ReturnLastExpr is set).
type ExprStmt struct {
	stmtBase
	X Expr
}

func (e *ExprStmt) Start() lexer.Token { return e.X.Start() }
func (e *ExprStmt) End() lexer.Token   { return e.X.End() }

// VariableDeclaration is `let`/`const name[: Type] [= init];`.
type VariableDeclaration struct {
	stmtBase
	Tok         lexer.Token
	Name        string
	DeclaredTyp *TypeExpr // nil if the type is inferred from Init
	Init        Expr      // nil only when IgnoreInitializer is set
	EndTok      lexer.Token
	IsConst     bool

	// Filled by Sema (spec.md §4.3.2 "Let" rule):
	Index             int
	IsShadowing       bool
	IgnoreInitializer bool
}

func (v *VariableDeclaration) Start() lexer.Token { return v.Tok }
func (v *VariableDeclaration) End() lexer.Token   { return v.EndTok }

// Return is `return [expr];`.
type Return struct {
	stmtBase
	Tok    lexer.Token
	Value  Expr // nil for a bare `return;`
	EndTok lexer.Token
}

func (r *Return) Start() lexer.Token { return r.Tok }
func (r *Return) End() lexer.Token   { return r.EndTok }

// Break is `break;`.
type Break struct {
	stmtBase
	Tok lexer.Token
}

func (b *Break) Start() lexer.Token { return b.Tok }
func (b *Break) End() lexer.Token   { return b.Tok }

// Continue is `continue;`.
type Continue struct {
	stmtBase
	Tok lexer.Token
}

func (c *Continue) Start() lexer.Token { return c.Tok }
func (c *Continue) End() lexer.Token   { return c.Tok }

// If is `if cond { ... } [else (if ... | { ... })]`.
//
// Typ records the unified branch type when both branches exist
// (spec.md §4.3.2's "If" rule). If is not an Expr node, since the
// grammar only admits `if` in statement position, and a trailing If
// does not give its enclosing Scope a value: only a trailing
// expression statement does (Scope.ReturnLastExpr).
type If struct {
	stmtBase
	Tok  lexer.Token
	Cond Expr
	Then *Scope
	Else Node // *Scope, *If (else-if chain), or nil
	Typ  *types.Type
}

func (i *If) Start() lexer.Token { return i.Tok }
func (i *If) End() lexer.Token {
	if i.Else != nil {
		return i.Else.End()
	}
	return i.Then.End()
}

// Case is one `case expr:` arm of a Switch. Its Body is a braced
// `{ ... }` scope, or the bare statements up to the next `case`,
// `default` or the switch's closing `}`.
type Case struct {
	Tok  lexer.Token
	Cond Expr
	Body *Scope
}

// Switch is `switch subject { case ... }`.
type Switch struct {
	stmtBase
	Tok     lexer.Token
	Subject Expr
	Cases   []*Case
	Default *Scope // nil if there is no default arm
	EndTok  lexer.Token
	Typ     *types.Type
}

func (s *Switch) Start() lexer.Token { return s.Tok }
func (s *Switch) End() lexer.Token   { return s.EndTok }

// Loop is an unconditional `loop { ... }`, exited only by `break` or
// `return` (SPEC_FULL.md §C).
type Loop struct {
	stmtBase
	Tok  lexer.Token
	Body *Scope
}

func (l *Loop) Start() lexer.Token { return l.Tok }
func (l *Loop) End() lexer.Token   { return l.Body.End() }

// For is `for iterVar in iterable { ... }`.
type For struct {
	stmtBase
	Tok      lexer.Token
	Iterator Expr // *Variable, declared fresh in the loop's scope by Sema
	Iterable Expr
	Body     *Scope
}

func (f *For) Start() lexer.Token { return f.Tok }
func (f *For) End() lexer.Token   { return f.Body.End() }

// While is `while cond { ... }`.
type While struct {
	stmtBase
	Tok  lexer.Token
	Cond Expr
	Body *Scope
}

func (w *While) Start() lexer.Token { return w.Tok }
func (w *While) End() lexer.Token   { return w.Body.End() }

// DoWhile is `do { ... } while cond;`.
type DoWhile struct {
	stmtBase
	Tok    lexer.Token
	Body   *Scope
	Cond   Expr
	EndTok lexer.Token
}

func (d *DoWhile) Start() lexer.Token { return d.Tok }
func (d *DoWhile) End() lexer.Token   { return d.EndTok }

// Scope is `{ item ; item ; ... [tail-expr] }`. If the last item is an
// expression not followed by `;`, ReturnLastExpr is set and that
// expression is the scope's value (spec.md §4.2).
type Scope struct {
	stmtBase
	LBrace         lexer.Token
	Items          []Stmt
	RBrace         lexer.Token
	ReturnLastExpr bool
	OfFunction     bool
	Typ            *types.Type
}

func (s *Scope) Start() lexer.Token { return s.LBrace }
func (s *Scope) End() lexer.Token   { return s.RBrace }

// TailExpr returns the scope's trailing expression when
// ReturnLastExpr is set, or nil otherwise.
func (s *Scope) TailExpr() Expr {
	if !s.ReturnLastExpr || len(s.Items) == 0 {
		return nil
	}
	last, ok := s.Items[len(s.Items)-1].(*ExprStmt)
	if !ok {
		return nil
	}
	return last.X
}
