package parser

import (
	"fmt"

	"github.com/metro-lang/metro/internal/ast"
	"github.com/metro-lang/metro/internal/diag"
	"github.com/metro-lang/metro/internal/lexer"
)

// Parser turns a token stream into an *ast.File. A parser error stops
// parsing of the current file (spec.md §4.2): Failed reports whether
// that happened.
type Parser struct {
	c      *cursor
	sink   *diag.Sink
	path   string
	failed bool
}

// New creates a Parser reading from l, reporting errors to sink.
func New(l *lexer.Lexer, sink *diag.Sink, path string) *Parser {
	return &Parser{c: newCursor(l), sink: sink, path: path}
}

// Failed reports whether a parse error stopped this file's parse.
func (p *Parser) Failed() bool { return p.failed }

func (p *Parser) errorf(tok lexer.Token, format string, args ...any) {
	p.failed = true
	p.sink.Errorf(diag.InvalidSyntax, tok.Span, format, args...)
}

// expectPunct consumes the current token if it is the punctuator pk,
// else reports an error and marks the parse failed.
func (p *Parser) expectPunct(pk lexer.PunctKind, what string) lexer.Token {
	tok := p.c.cur()
	if tok.Kind == lexer.Punctuator && tok.Punct == pk {
		return p.c.advance()
	}
	p.errorf(tok, "expected %q, found %q", what, tok.Text)
	return tok
}

func (p *Parser) isPunct(pk lexer.PunctKind) bool {
	tok := p.c.cur()
	return tok.Kind == lexer.Punctuator && tok.Punct == pk
}

func (p *Parser) expectIdent(what string) lexer.Token {
	tok := p.c.cur()
	if tok.Kind == lexer.Identifier {
		return p.c.advance()
	}
	p.errorf(tok, "expected %s, found %q", what, tok.Text)
	return tok
}

func (p *Parser) isKeyword(kw string) bool {
	tok := p.c.cur()
	return tok.Kind == lexer.Identifier && tok.Text == kw
}

func (p *Parser) consumeKeyword(kw string) lexer.Token {
	if !p.isKeyword(kw) {
		p.errorf(p.c.cur(), "expected %q, found %q", kw, p.c.cur().Text)
	}
	return p.c.advance()
}

// ParseFile parses one whole compilation unit: a sequence of
// top-level items (spec.md §4.2 `top`), stopping at the first parse
// error.
func (p *Parser) ParseFile() *ast.File {
	f := &ast.File{Path: p.path}
	for !p.c.atEnd() && !p.failed {
		item := p.parseTop()
		if item == nil {
			break
		}
		f.Items = append(f.Items, item)
	}
	return f
}

func (p *Parser) parseTop() ast.Stmt {
	switch {
	case p.isKeyword("fn"):
		return p.parseFunction(false, "")
	case p.isKeyword("struct"):
		return p.parseStruct()
	case p.isKeyword("enum"):
		return p.parseEnum()
	case p.isKeyword("impl"):
		return p.parseImpl()
	case p.isKeyword("import"):
		return p.parseImport()
	default:
		return p.parseStatement()
	}
}

func (p *Parser) parseImport() ast.Stmt {
	p.consumeKeyword("import")
	path := ""
	for {
		seg := p.expectIdent("import path segment")
		path += seg.Text
		if p.isPunct(lexer.Slash) {
			p.c.advance()
			path += "/"
			continue
		}
		break
	}
	p.expectPunct(lexer.Semi, ";")
	return importStmt{path: path}
}

// importStmt wraps a resolved import path as a Stmt so it can live in
// ast.File.Items alongside other top-level items; the driver extracts
// these before running Sema/Eval (import resolution is an external
// collaborator per spec.md §1).
// The embedded ast.Stmt is always nil; it only supplies the interface's
// unexported marker method, which a type outside package ast cannot
// declare itself.
type importStmt struct {
	ast.Stmt
	path string
}

func (importStmt) Start() lexer.Token { return lexer.Token{} }
func (importStmt) End() lexer.Token   { return lexer.Token{} }

// ImportPath extracts the path from a Stmt produced by parseImport, if
// it is one.
func ImportPath(s ast.Stmt) (string, bool) {
	is, ok := s.(importStmt)
	return is.path, ok
}

func unexpectedTokenError(tok lexer.Token) string {
	return fmt.Sprintf("unexpected token %q", tok.Text)
}
