package parser

import (
	"github.com/metro-lang/metro/internal/ast"
	"github.com/metro-lang/metro/internal/lexer"
)

// parseStatement parses one statement, discarding the tail-expression
// flag that only matters inside a Scope's item list.
func (p *Parser) parseStatement() ast.Stmt {
	s, _ := p.parseStmtInternal()
	return s
}

// parseStmtInternal parses one statement and reports whether it is a
// trailing tail-expression: an expression-statement not terminated by
// `;`, which per spec.md §4.2 makes the enclosing Scope's value that
// expression's value.
func (p *Parser) parseStmtInternal() (ast.Stmt, bool) {
	switch {
	case p.isKeyword("let"):
		return p.parseVarDecl(false), false
	case p.isKeyword("const"):
		return p.parseVarDecl(true), false
	case p.isKeyword("return"):
		return p.parseReturn(), false
	case p.isKeyword("break"):
		return p.parseBreak(), false
	case p.isKeyword("continue"):
		return p.parseContinue(), false
	case p.isKeyword("if"):
		return p.parseIf(), false
	case p.isKeyword("switch"):
		return p.parseSwitch(), false
	case p.isKeyword("loop"):
		return p.parseLoop(), false
	case p.isKeyword("for"):
		return p.parseFor(), false
	case p.isKeyword("while"):
		return p.parseWhile(), false
	case p.isKeyword("do"):
		return p.parseDoWhile(), false
	case p.isPunct(lexer.LBrace):
		return p.parseScope(false), false
	default:
		return p.parseExprStatement()
	}
}

func (p *Parser) parseExprStatement() (ast.Stmt, bool) {
	x := p.ParseExpr()
	if p.isPunct(lexer.Semi) {
		p.c.advance()
		return &ast.ExprStmt{X: x}, false
	}
	return &ast.ExprStmt{X: x}, true
}

func (p *Parser) parseVarDecl(isConst bool) ast.Stmt {
	tok := p.c.advance() // `let` or `const`
	nameTok := p.expectIdent("variable name")
	vd := &ast.VariableDeclaration{Tok: tok, Name: nameTok.Text, IsConst: isConst}

	if p.isPunct(lexer.Colon) {
		p.c.advance()
		vd.DeclaredTyp = p.parseType()
	}
	if p.isPunct(lexer.Eq) {
		p.c.advance()
		vd.Init = p.ParseExpr()
	} else {
		vd.IgnoreInitializer = true
	}
	vd.EndTok = p.expectPunct(lexer.Semi, ";")
	return vd
}

func (p *Parser) parseReturn() ast.Stmt {
	tok := p.consumeKeyword("return")
	r := &ast.Return{Tok: tok}
	if !p.isPunct(lexer.Semi) {
		r.Value = p.ParseExpr()
	}
	r.EndTok = p.expectPunct(lexer.Semi, ";")
	return r
}

func (p *Parser) parseBreak() ast.Stmt {
	tok := p.consumeKeyword("break")
	p.expectPunct(lexer.Semi, ";")
	return &ast.Break{Tok: tok}
}

func (p *Parser) parseContinue() ast.Stmt {
	tok := p.consumeKeyword("continue")
	p.expectPunct(lexer.Semi, ";")
	return &ast.Continue{Tok: tok}
}

func (p *Parser) parseIf() *ast.If {
	tok := p.consumeKeyword("if")
	cond := p.ParseExpr()
	then := p.parseScope(false)
	node := &ast.If{Tok: tok, Cond: cond, Then: then}
	if p.isKeyword("else") {
		p.c.advance()
		if p.isKeyword("if") {
			node.Else = p.parseIf()
		} else {
			node.Else = p.parseScope(false)
		}
	}
	return node
}

func (p *Parser) parseSwitch() *ast.Switch {
	tok := p.consumeKeyword("switch")
	subject := p.ParseExpr()
	p.expectPunct(lexer.LBrace, "{")
	sw := &ast.Switch{Tok: tok, Subject: subject}
	// An arm's body is either a braced scope or the bare statements up
	// to the next `case`, `default` or the switch's closing `}`.
	caseBody := func() *ast.Scope {
		if p.isPunct(lexer.LBrace) {
			return p.parseScope(false)
		}
		sc := &ast.Scope{LBrace: p.c.cur(), RBrace: p.c.cur()}
		for !p.isPunct(lexer.RBrace) && !p.isKeyword("case") && !p.isKeyword("default") && !p.c.atEnd() && !p.failed {
			item := p.parseStatement()
			sc.Items = append(sc.Items, item)
			sc.RBrace = item.End()
		}
		return sc
	}
	for !p.isPunct(lexer.RBrace) && !p.c.atEnd() && !p.failed {
		if p.isKeyword("default") {
			p.c.advance()
			p.expectPunct(lexer.Colon, ":")
			sw.Default = caseBody()
			continue
		}
		caseTok := p.consumeKeyword("case")
		cond := p.ParseExpr()
		p.expectPunct(lexer.Colon, ":")
		body := caseBody()
		sw.Cases = append(sw.Cases, &ast.Case{Tok: caseTok, Cond: cond, Body: body})
	}
	sw.EndTok = p.expectPunct(lexer.RBrace, "}")
	return sw
}

func (p *Parser) parseLoop() *ast.Loop {
	tok := p.consumeKeyword("loop")
	body := p.parseScope(false)
	return &ast.Loop{Tok: tok, Body: body}
}

func (p *Parser) parseFor() *ast.For {
	tok := p.consumeKeyword("for")
	nameTok := p.expectIdent("loop variable")
	iterVar := &ast.Variable{Tok: nameTok, Name: nameTok.Text}
	p.consumeKeyword("in")
	iterable := p.ParseExpr()
	body := p.parseScope(false)
	return &ast.For{Tok: tok, Iterator: iterVar, Iterable: iterable, Body: body}
}

func (p *Parser) parseWhile() *ast.While {
	tok := p.consumeKeyword("while")
	cond := p.ParseExpr()
	body := p.parseScope(false)
	return &ast.While{Tok: tok, Cond: cond, Body: body}
}

func (p *Parser) parseDoWhile() *ast.DoWhile {
	tok := p.consumeKeyword("do")
	body := p.parseScope(false)
	p.consumeKeyword("while")
	cond := p.ParseExpr()
	end := p.expectPunct(lexer.Semi, ";")
	return &ast.DoWhile{Tok: tok, Body: body, Cond: cond, EndTok: end}
}

// parseScope parses `{ item ; item ; ... [tail-expr] }`. ofFunction
// marks a scope that is a function body (Scope.OfFunction); Sema and
// the evaluator do not read the flag, they reach function bodies
// through ast.Function.Body.
func (p *Parser) parseScope(ofFunction bool) *ast.Scope {
	lb := p.expectPunct(lexer.LBrace, "{")
	sc := &ast.Scope{LBrace: lb, OfFunction: ofFunction}
	for !p.isPunct(lexer.RBrace) && !p.c.atEnd() && !p.failed {
		stmt, tail := p.parseStmtInternal()
		sc.Items = append(sc.Items, stmt)
		if tail {
			sc.ReturnLastExpr = true
			break
		}
	}
	sc.RBrace = p.expectPunct(lexer.RBrace, "}")
	return sc
}
