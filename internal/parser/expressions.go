package parser

import (
	"github.com/metro-lang/metro/internal/ast"
	"github.com/metro-lang/metro/internal/lexer"
)

// ParseExpr parses a single expression, per the `expr := assign`
// production of spec.md §4.2.
func (p *Parser) ParseExpr() ast.Expr {
	return p.parseAssign()
}

func (p *Parser) parseAssign() ast.Expr {
	left := p.parseRange()
	if p.isPunct(lexer.Eq) {
		opTok := p.c.advance()
		value := p.parseAssign()
		return &ast.Assign{Target: left, OpTok: opTok, Value: value}
	}
	return left
}

func (p *Parser) parseRange() ast.Expr {
	left := p.parseLogical()
	if p.isPunct(lexer.DotDot) {
		p.c.advance()
		end := p.parseLogical()
		return &ast.Range{Begin: left, End_: end}
	}
	return left
}

func (p *Parser) parseLogical() ast.Expr {
	left := p.parseBitOp()
	var tail []ast.ExprTail
	for {
		var op ast.ExprOp
		switch {
		case p.isPunct(lexer.AndAnd):
			op = ast.LogicalAnd
		case p.isPunct(lexer.OrOr):
			op = ast.LogicalOr
		default:
			if len(tail) == 0 {
				return left
			}
			return &ast.BinaryExpr{Left: left, Tail: tail}
		}
		opTok := p.c.advance()
		operand := p.parseBitOp()
		tail = append(tail, ast.ExprTail{Op: op, OpTok: opTok, Operand: operand})
	}
}

func (p *Parser) parseBitOp() ast.Expr {
	left := p.parseCompare()
	var tail []ast.ExprTail
	for {
		var op ast.ExprOp
		switch {
		case p.isPunct(lexer.Amp):
			op = ast.BitAnd
		case p.isPunct(lexer.Caret):
			op = ast.BitXor
		case p.isPunct(lexer.Pipe):
			op = ast.BitOr
		default:
			if len(tail) == 0 {
				return left
			}
			return &ast.BinaryExpr{Left: left, Tail: tail}
		}
		opTok := p.c.advance()
		operand := p.parseCompare()
		tail = append(tail, ast.ExprTail{Op: op, OpTok: opTok, Operand: operand})
	}
}

func (p *Parser) parseCompare() ast.Expr {
	left := p.parseShift()
	var tail []ast.CompareTail
	for {
		var op ast.CompareOp
		switch {
		case p.isPunct(lexer.EqEq):
			op = ast.Eq
		case p.isPunct(lexer.NotEq):
			op = ast.NotEq
		case p.isPunct(lexer.GtEq):
			op = ast.GtEq
		case p.isPunct(lexer.LtEq):
			op = ast.LtEq
		case p.isPunct(lexer.Gt):
			op = ast.Gt
		case p.isPunct(lexer.Lt):
			op = ast.Lt
		default:
			if len(tail) == 0 {
				return left
			}
			return &ast.CompareExpr{Left: left, Tail: tail}
		}
		opTok := p.c.advance()
		operand := p.parseShift()
		tail = append(tail, ast.CompareTail{Op: op, OpTok: opTok, Operand: operand})
	}
}

func (p *Parser) parseShift() ast.Expr {
	left := p.parseAdd()
	var tail []ast.ExprTail
	for {
		var op ast.ExprOp
		switch {
		case p.isPunct(lexer.Shl):
			op = ast.LShift
		case p.isPunct(lexer.Shr):
			op = ast.RShift
		default:
			if len(tail) == 0 {
				return left
			}
			return &ast.BinaryExpr{Left: left, Tail: tail}
		}
		opTok := p.c.advance()
		operand := p.parseAdd()
		tail = append(tail, ast.ExprTail{Op: op, OpTok: opTok, Operand: operand})
	}
}

func (p *Parser) parseAdd() ast.Expr {
	left := p.parseMul()
	var tail []ast.ExprTail
	for {
		var op ast.ExprOp
		switch {
		case p.isPunct(lexer.Plus):
			op = ast.Add
		case p.isPunct(lexer.Minus):
			op = ast.Sub
		default:
			if len(tail) == 0 {
				return left
			}
			return &ast.BinaryExpr{Left: left, Tail: tail}
		}
		opTok := p.c.advance()
		operand := p.parseMul()
		tail = append(tail, ast.ExprTail{Op: op, OpTok: opTok, Operand: operand})
	}
}

func (p *Parser) parseMul() ast.Expr {
	left := p.parseUnary()
	var tail []ast.ExprTail
	for {
		var op ast.ExprOp
		switch {
		case p.isPunct(lexer.Star):
			op = ast.Mul
		case p.isPunct(lexer.Slash):
			op = ast.Div
		case p.isPunct(lexer.Percent):
			op = ast.Mod
		default:
			if len(tail) == 0 {
				return left
			}
			return &ast.BinaryExpr{Left: left, Tail: tail}
		}
		opTok := p.c.advance()
		operand := p.parseUnary()
		tail = append(tail, ast.ExprTail{Op: op, OpTok: opTok, Operand: operand})
	}
}

func (p *Parser) parseUnary() ast.Expr {
	if p.isPunct(lexer.Minus) {
		opTok := p.c.advance()
		x := p.parseIndexRef()
		return &ast.UnaryMinus{OpTok: opTok, X: x}
	}
	if p.isPunct(lexer.Plus) {
		opTok := p.c.advance()
		x := p.parseIndexRef()
		return &ast.UnaryPlus{OpTok: opTok, X: x}
	}
	if p.isKeyword("new") {
		return p.parseStructConstructor()
	}
	return p.parseIndexRef()
}

func (p *Parser) parseIndexRef() ast.Expr {
	base := p.parsePrimary()
	var subs []*ast.Subscript
	for {
		switch {
		case p.isPunct(lexer.LBracket):
			p.c.advance()
			idx := p.ParseExpr()
			end := p.expectPunct(lexer.RBracket, "]")
			subs = append(subs, &ast.Subscript{Kind: ast.SubIndex, IndexExpr: idx, End: end})
		case p.isPunct(lexer.Dot):
			p.c.advance()
			name := p.expectIdent("member name")
			if p.isPunct(lexer.LParen) {
				args, end := p.parseArgList()
				subs = append(subs, &ast.Subscript{Kind: ast.SubCall, Tok: name, MemberName: name.Text, CallArgs: args, End: end})
			} else {
				subs = append(subs, &ast.Subscript{Kind: ast.SubMember, Tok: name, MemberName: name.Text, End: name})
			}
		default:
			if len(subs) == 0 {
				return base
			}
			return &ast.IndexRef{Base: base, Subscripts: subs}
		}
	}
}

// parseArgList parses a parenthesized, comma-separated argument list
// and returns the arguments plus the closing `)` token.
func (p *Parser) parseArgList() ([]ast.Expr, lexer.Token) {
	p.expectPunct(lexer.LParen, "(")
	var args []ast.Expr
	if !p.isPunct(lexer.RParen) {
		for {
			args = append(args, p.ParseExpr())
			if p.isPunct(lexer.Comma) {
				p.c.advance()
				continue
			}
			break
		}
	}
	end := p.expectPunct(lexer.RParen, ")")
	return args, end
}

func (p *Parser) parseStructConstructor() ast.Expr {
	newTok := p.consumeKeyword("new")
	typ := p.parseType()
	p.expectPunct(lexer.LParen, "(")
	var fields []ast.FieldInit
	if !p.isPunct(lexer.RParen) {
		for {
			nameTok := p.expectIdent("field name")
			p.expectPunct(lexer.Colon, ":")
			value := p.ParseExpr()
			fields = append(fields, ast.FieldInit{Name: nameTok.Text, Tok: nameTok, Value: value})
			if p.isPunct(lexer.Comma) {
				p.c.advance()
				continue
			}
			break
		}
	}
	end := p.expectPunct(lexer.RParen, ")")
	return &ast.StructConstructor{NewTok: newTok, Type: typ, Fields: fields, RParen: end}
}

func (p *Parser) parsePrimary() ast.Expr {
	switch {
	case p.isPunct(lexer.LBracket):
		return p.parseVector()
	case p.isKeyword("dict"):
		return p.parseDict()
	case p.isKeyword("cast"):
		return p.parseCast()
	default:
		return p.parseFactor()
	}
}

func (p *Parser) parseVector() ast.Expr {
	lb := p.c.advance()
	var elems []ast.Expr
	if !p.isPunct(lexer.RBracket) {
		for {
			elems = append(elems, p.ParseExpr())
			if p.isPunct(lexer.Comma) {
				p.c.advance()
				continue
			}
			break
		}
	}
	rb := p.expectPunct(lexer.RBracket, "]")
	return &ast.Vector{LBrack: lb, Elements: elems, RBrack: rb}
}

func (p *Parser) parseDict() ast.Expr {
	tok := p.consumeKeyword("dict")
	d := &ast.Dict{Tok: tok}
	if p.isPunct(lexer.Lt) {
		p.c.advance()
		d.KeyType = p.parseTypeDepth(1)
		p.expectPunct(lexer.Comma, ",")
		d.ValueType = p.parseTypeDepth(1)
		p.closeGenericArgList(0)
	}
	p.expectPunct(lexer.LBrace, "{")
	if !p.isPunct(lexer.RBrace) {
		for {
			key := p.ParseExpr()
			p.expectPunct(lexer.Colon, ":")
			value := p.ParseExpr()
			d.Entries = append(d.Entries, ast.DictEntry{Key: key, Value: value})
			if p.isPunct(lexer.Comma) {
				p.c.advance()
				continue
			}
			break
		}
	}
	d.RBrace = p.expectPunct(lexer.RBrace, "}")
	return d
}

func (p *Parser) parseCast() ast.Expr {
	tok := p.consumeKeyword("cast")
	p.expectPunct(lexer.Lt, "<")
	target := p.parseTypeDepth(1)
	p.closeGenericArgList(0)
	p.expectPunct(lexer.LParen, "(")
	x := p.ParseExpr()
	end := p.expectPunct(lexer.RParen, ")")
	return &ast.Cast{CastTok: tok, Target: target, X: x, RParen: end}
}

func (p *Parser) parseFactor() ast.Expr {
	tok := p.c.cur()
	switch {
	case tok.Kind == lexer.Punctuator && tok.Punct == lexer.LParen:
		p.c.advance()
		inner := p.ParseExpr()
		p.expectPunct(lexer.RParen, ")")
		return inner
	case tok.Kind == lexer.Int, tok.Kind == lexer.USize, tok.Kind == lexer.Float,
		tok.Kind == lexer.Char, tok.Kind == lexer.String:
		p.c.advance()
		return &ast.ValueLit{Tok: tok}
	case tok.Kind == lexer.Punctuator && tok.Punct == lexer.LBrace:
		return p.parseBraceExpr()
	case tok.Kind == lexer.Identifier:
		switch tok.Text {
		case "none":
			p.c.advance()
			return &ast.NoneLit{Tok: tok}
		case "true":
			p.c.advance()
			return &ast.TrueLit{Tok: tok}
		case "false":
			p.c.advance()
			return &ast.FalseLit{Tok: tok}
		}
		p.c.advance()
		if p.isPunct(lexer.LParen) {
			args, end := p.parseArgList()
			return &ast.CallFunc{NameTok: tok, Name: tok.Text, Args: args, RParen: end}
		}
		return &ast.Variable{Tok: tok, Name: tok.Text}
	default:
		p.errorf(tok, "%s", unexpectedTokenError(tok))
		p.c.advance()
		return &ast.NoneLit{Tok: tok}
	}
}

// parseBraceExpr parses a `{` in expression position as an untyped
// dict literal: `{}` is the empty dict, and anything else is parsed as
// `key: value` entries. There is no lookahead for a top-level `:`, and
// a scope is not accepted here, so a brace whose contents are not dict
// entries is reported as a parse error at the missing `:`.
func (p *Parser) parseBraceExpr() ast.Expr {
	lb := p.c.cur()
	if p.peekN(1).Kind == lexer.Punctuator && p.peekN(1).Punct == lexer.RBrace {
		p.c.advance()
		rb := p.c.advance()
		return &ast.Dict{Tok: lb, RBrace: rb}
	}
	d := &ast.Dict{Tok: p.c.advance()}
	for {
		key := p.ParseExpr()
		p.expectPunct(lexer.Colon, ":")
		value := p.ParseExpr()
		d.Entries = append(d.Entries, ast.DictEntry{Key: key, Value: value})
		if p.isPunct(lexer.Comma) {
			p.c.advance()
			continue
		}
		break
	}
	d.RBrace = p.expectPunct(lexer.RBrace, "}")
	return d
}

func (p *Parser) peekN(n int) lexer.Token {
	return p.c.peekN(n)
}
