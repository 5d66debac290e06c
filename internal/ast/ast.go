// Package ast defines the Metro abstract syntax tree: a tagged sum of
// node variants per spec.md §3.2. The tree itself is a pure tree —
// resolved cross-references (call targets, user-type declarations)
// are plain, non-owning Go pointers to declaration nodes of the same
// tree (CallFunc.Callee, NewEnumerator.Enum, types.Type.Decl); there
// is no separate declaration arena and no integer handle.
package ast

import (
	"github.com/metro-lang/metro/internal/lexer"
	"github.com/metro-lang/metro/internal/source"
	"github.com/metro-lang/metro/internal/types"
)

// Node is the base interface every AST node implements. Start and End
// return the first and last token of the node, used by the diagnostic
// renderer to compute the node's span (spec.md §3.2, "every node
// carries the starting token ... and an end-token").
type Node interface {
	Start() lexer.Token
	End() lexer.Token
}

// Span computes the source span a node covers, from its start token's
// offset through its end token's offset+length.
func Span(n Node) source.Span {
	start := n.Start()
	end := n.End()
	length := (end.Span.Offset + end.Span.Length) - start.Span.Offset
	if length < 1 {
		length = start.Span.Length
	}
	return source.Span{
		File:   start.Span.File,
		Offset: start.Span.Offset,
		Length: length,
		Line:   start.Span.Line,
	}
}

// Expr is any node that produces a value.
type Expr interface {
	Node
	exprNode()
	// ResolvedType returns the type Sema assigned this expression.
	// Nil until Sema has run. See spec.md §4.3, "Tree check: recursive
	// check(node) -> Type, caching the result on the node."
	ResolvedType() *types.Type
	SetResolvedType(*types.Type)
	// UseDefault reports whether Sema accepted this expression under
	// the value-acceptance relaxation of spec.md §4.3.3. The evaluator
	// (interp.coerce) then converts an Int value to USize and uses any
	// other accepted value as it is; no default value of the expected
	// type is substituted.
	UseDefault() bool
	SetUseDefault(bool)
}

// Stmt is any node that performs an action without producing a value.
type Stmt interface {
	Node
	stmtNode()
}

// exprBase is embedded by every Expr to provide the Sema side-table
// fields (resolved type, use-default flag) without repeating them.
type exprBase struct {
	typ        *types.Type
	useDefault bool
}

func (e *exprBase) exprNode()                      {}
func (e *exprBase) ResolvedType() *types.Type       { return e.typ }
func (e *exprBase) SetResolvedType(t *types.Type)   { e.typ = t }
func (e *exprBase) UseDefault() bool                { return e.useDefault }
func (e *exprBase) SetUseDefault(v bool)            { e.useDefault = v }

// stmtBase is embedded by every Stmt.
type stmtBase struct{}

func (s *stmtBase) stmtNode() {}

// File is the root of one compiled source file: an ordered list of
// top-level items (functions, structs, enums, impls, or bare
// statements/expressions at file scope).
type File struct {
	Path  string
	Items []Stmt
}

func (f *File) Start() lexer.Token {
	if len(f.Items) == 0 {
		return lexer.Token{}
	}
	return f.Items[0].Start()
}

func (f *File) End() lexer.Token {
	if len(f.Items) == 0 {
		return lexer.Token{}
	}
	return f.Items[len(f.Items)-1].End()
}
