package parser

import (
	"github.com/metro-lang/metro/internal/ast"
	"github.com/metro-lang/metro/internal/lexer"
)

// parseType parses a type reference: `[const] Name[<T, U>]`.
func (p *Parser) parseType() *ast.TypeExpr {
	return p.parseTypeDepth(0)
}

// parseTypeDepth parses a type reference at nested-generic depth
// `depth`, splitting a trailing `>>` into two `>` only once depth
// reaches 2 or more, per spec.md §9 (the open question on `>>`
// splitting, resolved at depth >= 2).
func (p *Parser) parseTypeDepth(depth int) *ast.TypeExpr {
	isConst := false
	startTok := p.c.cur()
	if p.isKeyword("const") {
		p.c.advance()
		isConst = true
	}

	nameTok := p.expectIdent("type name")
	te := &ast.TypeExpr{Tok: startTok, Name: nameTok.Text, Const: isConst, EndTok: nameTok}
	if startTok.Text == "const" {
		// keep Tok as the `const` token so the span covers the qualifier
	} else {
		te.Tok = nameTok
	}

	if p.isPunct(lexer.Lt) {
		p.c.advance()
		for {
			arg := p.parseTypeDepth(depth + 1)
			te.TypeArgs = append(te.TypeArgs, arg)
			if p.isPunct(lexer.Comma) {
				p.c.advance()
				continue
			}
			break
		}
		te.EndTok = p.closeGenericArgList(depth)
	}

	return te
}

// closeGenericArgList consumes the `>` that closes this type's
// argument list, splitting a `>>` token in place when the closing
// bracket is nested two or more levels deep.
func (p *Parser) closeGenericArgList(depth int) lexer.Token {
	cur := p.c.cur()
	if cur.Kind == lexer.Punctuator && cur.Punct == lexer.Shr && depth >= 1 {
		p.c.splitGT()
		cur = p.c.cur()
	}
	return p.expectPunct(lexer.Gt, ">")
}
