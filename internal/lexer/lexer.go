package lexer

import (
	"strings"

	"github.com/metro-lang/metro/internal/diag"
	"github.com/metro-lang/metro/internal/source"
)

// Lexer scans a single File's text into a Token stream.
//
// It follows the teacher's functional-options constructor shape
// (Option values applied in New). WithTracing is the only option; the
// parser and analyzer constructors take no options.
type Lexer struct {
	file    *source.File
	sink    *diag.Sink
	input   string
	pos     int // byte offset of ch
	readPos int // byte offset of next rune
	ch      byte
	tracing bool
}

// Option configures a Lexer constructed with New.
type Option func(*Lexer)

// WithTracing sets the lexer's tracing flag. No lexer code reads the
// flag, so it changes neither the scanned tokens nor any output.
func WithTracing(trace bool) Option {
	return func(l *Lexer) { l.tracing = trace }
}

// New creates a Lexer over file's text, reporting lex errors to sink.
func New(file *source.File, sink *diag.Sink, opts ...Option) *Lexer {
	l := &Lexer{file: file, sink: sink, input: file.Text}
	for _, opt := range opts {
		opt(l)
	}
	l.readChar()
	return l
}

func (l *Lexer) readChar() {
	if l.readPos >= len(l.input) {
		l.ch = 0
		l.pos = l.readPos
		return
	}
	l.ch = l.input[l.readPos]
	l.pos = l.readPos
	l.readPos++
}

func (l *Lexer) peekChar() byte {
	if l.readPos >= len(l.input) {
		return 0
	}
	return l.input[l.readPos]
}

// skipWhitespaceAndComments advances the cursor past whitespace and
// `//` and `/* */` comments. The input is not modified: comment bytes
// are skipped, not overwritten, and every offset indexes the original
// text.
func (l *Lexer) skipWhitespaceAndComments() {
	for {
		switch {
		case l.ch == ' ' || l.ch == '\t' || l.ch == '\r' || l.ch == '\n':
			l.readChar()
		case l.ch == '/' && l.peekChar() == '/':
			for l.ch != '\n' && l.ch != 0 {
				l.readChar()
			}
		case l.ch == '/' && l.peekChar() == '*':
			l.readChar()
			l.readChar()
			for !(l.ch == '*' && l.peekChar() == '/') && l.ch != 0 {
				l.readChar()
			}
			if l.ch != 0 {
				l.readChar()
				l.readChar()
			}
		default:
			return
		}
	}
}

func isLetter(b byte) bool {
	return b == '_' || ('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z')
}

func isDigit(b byte) bool {
	return '0' <= b && b <= '9'
}

func (l *Lexer) makeSpan(start int) source.Span {
	line, _ := l.file.LineCol(start)
	return source.Span{File: l.file, Offset: start, Length: l.pos - start, Line: line}
}

// NextToken scans and returns the next token. Once End is returned,
// subsequent calls keep returning End.
func (l *Lexer) NextToken() Token {
	l.skipWhitespaceAndComments()

	start := l.pos

	if l.ch == 0 {
		return Token{Kind: End, Span: l.makeSpan(start)}
	}

	switch {
	case isLetter(l.ch):
		return l.lexIdentifier(start)
	case isDigit(l.ch):
		return l.lexNumber(start)
	case l.ch == '\'':
		return l.lexChar(start)
	case l.ch == '"':
		return l.lexString(start)
	default:
		if tok, ok := l.lexPunctuator(start); ok {
			return tok
		}
	}

	ch := l.ch
	l.readChar()
	span := l.makeSpan(start)
	l.sink.Errorf(diag.InvalidSyntax, span, "unexpected character %q", string(ch))
	return l.NextToken()
}

func (l *Lexer) lexIdentifier(start int) Token {
	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	text := l.input[start:l.pos]
	return Token{Kind: Identifier, Text: text, Span: l.makeSpan(start)}
}

func (l *Lexer) lexNumber(start int) Token {
	for isDigit(l.ch) {
		l.readChar()
	}
	if l.ch == 'u' && !isLetter(l.peekChar()) {
		l.readChar()
		text := l.input[start:l.pos]
		return Token{Kind: USize, Text: text, Span: l.makeSpan(start)}
	}
	if l.ch == '.' && isDigit(l.peekChar()) {
		l.readChar()
		for isDigit(l.ch) {
			l.readChar()
		}
		text := l.input[start:l.pos]
		return Token{Kind: Float, Text: text, Span: l.makeSpan(start)}
	}
	text := l.input[start:l.pos]
	return Token{Kind: Int, Text: text, Span: l.makeSpan(start)}
}

func (l *Lexer) lexString(start int) Token {
	l.readChar() // consume opening quote
	var sb strings.Builder
	for l.ch != '"' && l.ch != 0 {
		sb.WriteByte(l.ch)
		l.readChar()
	}
	if l.ch == '"' {
		l.readChar()
	} else {
		l.sink.Errorf(diag.InvalidSyntax, l.makeSpan(start), "unterminated string literal")
	}
	return Token{Kind: String, Text: sb.String(), Span: l.makeSpan(start)}
}

func (l *Lexer) lexChar(start int) Token {
	l.readChar() // consume opening quote
	var ch byte
	if l.ch != '\'' && l.ch != 0 {
		ch = l.ch
		l.readChar()
	}
	if l.ch == '\'' {
		l.readChar()
	} else {
		l.sink.Errorf(diag.InvalidSyntax, l.makeSpan(start), "unterminated char literal")
	}
	return Token{Kind: Char, Text: string(ch), Span: l.makeSpan(start)}
}

func (l *Lexer) lexPunctuator(start int) (Token, bool) {
	rest := l.input[l.pos:]
	for _, p := range punctTable {
		if strings.HasPrefix(rest, p.text) {
			for range p.text {
				l.readChar()
			}
			return Token{
				Kind:    Punctuator,
				Text:    p.text,
				Span:    l.makeSpan(start),
				Punct:   p.kind,
				Bracket: bracketInfo(p.kind),
			}, true
		}
	}
	return Token{}, false
}

// Tokenize scans the whole file and returns every token including the
// trailing End token.
func (l *Lexer) Tokenize() []Token {
	var toks []Token
	for {
		tok := l.NextToken()
		toks = append(toks, tok)
		if tok.Kind == End {
			return toks
		}
	}
}
