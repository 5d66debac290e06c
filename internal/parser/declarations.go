package parser

import (
	"github.com/metro-lang/metro/internal/ast"
	"github.com/metro-lang/metro/internal/lexer"
)

// parseFunction parses `fn name([self,] params...) [-> ResultType] { body }`.
// implTarget is set by parseImpl when this function is a member of an
// impl block. HaveSelf is set by a leading `self` parameter, or when
// haveSelf is true; parseImpl passes false.
func (p *Parser) parseFunction(haveSelf bool, implTarget string) *ast.Function {
	tok := p.consumeKeyword("fn")
	nameTok := p.expectIdent("function name")
	fn := &ast.Function{Tok: tok, Name: nameTok.Text, ImplTarget: implTarget}

	p.expectPunct(lexer.LParen, "(")
	first := true
	if !p.isPunct(lexer.RParen) {
		for {
			if first && p.isKeyword("self") {
				p.c.advance()
				fn.HaveSelf = true
				if p.isPunct(lexer.Comma) {
					p.c.advance()
					first = false
					continue
				}
				break
			}
			first = false
			pnameTok := p.expectIdent("parameter name")
			p.expectPunct(lexer.Colon, ":")
			ptype := p.parseType()
			fn.Params = append(fn.Params, &ast.Param{Name: pnameTok.Text, Tok: pnameTok, Type: ptype})
			if p.isPunct(lexer.Comma) {
				p.c.advance()
				continue
			}
			break
		}
	}
	p.expectPunct(lexer.RParen, ")")

	if p.isPunct(lexer.Arrow) {
		p.c.advance()
		fn.ResultType = p.parseType()
	}

	fn.Body = p.parseScope(true)
	if haveSelf {
		fn.HaveSelf = true
	}
	return fn
}

// parseStruct parses `struct Name { field: Type, ... }`.
func (p *Parser) parseStruct() *ast.Struct {
	tok := p.consumeKeyword("struct")
	nameTok := p.expectIdent("struct name")
	s := &ast.Struct{Tok: tok, Name: nameTok.Text}
	p.expectPunct(lexer.LBrace, "{")
	for !p.isPunct(lexer.RBrace) && !p.c.atEnd() && !p.failed {
		fieldTok := p.expectIdent("field name")
		p.expectPunct(lexer.Colon, ":")
		ftype := p.parseType()
		s.Members = append(s.Members, &ast.Param{Name: fieldTok.Text, Tok: fieldTok, Type: ftype})
		if p.isPunct(lexer.Comma) {
			p.c.advance()
			continue
		}
		break
	}
	s.EndTok = p.expectPunct(lexer.RBrace, "}")
	return s
}

// parseEnum parses `enum Name { A, B(T), ... }`.
func (p *Parser) parseEnum() *ast.Enum {
	tok := p.consumeKeyword("enum")
	nameTok := p.expectIdent("enum name")
	e := &ast.Enum{Tok: tok, Name: nameTok.Text}
	p.expectPunct(lexer.LBrace, "{")
	for !p.isPunct(lexer.RBrace) && !p.c.atEnd() && !p.failed {
		enTok := p.expectIdent("enumerator name")
		en := &ast.Enumerator{Name: enTok.Text, Tok: enTok}
		if p.isPunct(lexer.LParen) {
			p.c.advance()
			en.PayloadType = p.parseType()
			p.expectPunct(lexer.RParen, ")")
		}
		e.Enumerators = append(e.Enumerators, en)
		if p.isPunct(lexer.Comma) {
			p.c.advance()
			continue
		}
		break
	}
	e.EndTok = p.expectPunct(lexer.RBrace, "}")
	return e
}

// parseImpl parses `impl TypeName { fn ... }`: a block of member
// functions, each parsed with ImplTarget threaded through; HaveSelf
// comes from each function's own `self` parameter.
func (p *Parser) parseImpl() *ast.Impl {
	tok := p.consumeKeyword("impl")
	nameTok := p.expectIdent("impl target name")
	im := &ast.Impl{Tok: tok, TargetName: nameTok.Text}
	p.expectPunct(lexer.LBrace, "{")
	for !p.isPunct(lexer.RBrace) && !p.c.atEnd() && !p.failed {
		if !p.isKeyword("fn") {
			p.errorf(p.c.cur(), "expected function declaration in impl block, found %q", p.c.cur().Text)
			break
		}
		im.Functions = append(im.Functions, p.parseFunction(false, im.TargetName))
	}
	im.EndTok = p.expectPunct(lexer.RBrace, "}")
	return im
}
