// Package parser implements the recursive-descent, precedence-climbing
// parser of spec.md §4.2 (component C3): tokens in, AST out.
package parser

import (
	"github.com/metro-lang/metro/internal/lexer"
)

// cursor buffers the token stream so the parser can peek arbitrarily
// far ahead (needed for the dict-vs-scope disambiguation and the
// `>>`-splitting rule).
type cursor struct {
	toks []lexer.Token
	pos  int
}

func newCursor(l *lexer.Lexer) *cursor {
	return &cursor{toks: l.Tokenize()}
}

func (c *cursor) cur() lexer.Token {
	if c.pos >= len(c.toks) {
		return c.toks[len(c.toks)-1] // End token
	}
	return c.toks[c.pos]
}

func (c *cursor) peekN(n int) lexer.Token {
	idx := c.pos + n
	if idx >= len(c.toks) {
		return c.toks[len(c.toks)-1]
	}
	return c.toks[idx]
}

func (c *cursor) advance() lexer.Token {
	tok := c.cur()
	if c.pos < len(c.toks)-1 {
		c.pos++
	}
	return tok
}

// splitGT splits the current `>>` token into two `>` tokens in place,
// used when closing nested generic argument lists at depth >= 2
// (spec.md §9, open question resolved at depth >= 2).
func (c *cursor) splitGT() {
	tok := c.toks[c.pos]
	half := tok
	half.Text = ">"
	half.Punct = lexer.Gt
	half.Span.Length = 1
	second := half
	second.Span.Offset++
	rest := append([]lexer.Token{half, second}, c.toks[c.pos+1:]...)
	c.toks = append(c.toks[:c.pos], rest...)
}

func (c *cursor) atEnd() bool {
	return c.cur().Kind == lexer.End
}
