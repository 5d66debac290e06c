// Package lexer converts Metro source text into a token stream
// (component C2). See spec.md §3.1 and §4.1.
package lexer

import "github.com/metro-lang/metro/internal/source"

// Kind is the coarse category of a Token, per spec.md §3.1.
type Kind int

const (
	Int Kind = iota
	USize
	Float
	Char
	String
	Identifier
	Punctuator
	End
)

func (k Kind) String() string {
	switch k {
	case Int:
		return "Int"
	case USize:
		return "USize"
	case Float:
		return "Float"
	case Char:
		return "Char"
	case String:
		return "String"
	case Identifier:
		return "Identifier"
	case Punctuator:
		return "Punctuator"
	case End:
		return "End"
	default:
		return "Unknown"
	}
}

// PunctKind identifies which punctuator a Punctuator token is, in the
// longest-match order the lexer scans them.
type PunctKind int

const (
	Arrow   PunctKind = iota // ->
	AndAnd                   // &&
	OrOr                     // ||
	Shl                      // <<
	Shr                      // >>
	DotDot                   // ..
	EqEq                     // ==
	NotEq                    // !=
	GtEq                     // >=
	LtEq                     // <=
	Gt                       // >
	Lt                       // <
	Bang                     // !
	Question                 // ?
	Amp                      // &
	Caret                    // ^
	Pipe                     // |
	Tilde                    // ~
	Eq                       // =
	Plus                     // +
	Minus                    // -
	Star                     // *
	Slash                    // /
	Percent                  // %
	Comma                    // ,
	Dot                      // .
	Semi                     // ;
	Colon                    // :
	LParen                   // (
	RParen                   // )
	LBracket                 // [
	RBracket                 // ]
	LBrace                   // {
	RBrace                   // }
)

// punctTable is the fixed longest-match table from spec.md §4.1. Order
// matters: multi-character punctuators are tried before the single
// characters that prefix them.
var punctTable = []struct {
	text string
	kind PunctKind
}{
	{"->", Arrow},
	{"&&", AndAnd},
	{"||", OrOr},
	{"<<", Shl},
	{">>", Shr},
	{"..", DotDot},
	{"==", EqEq},
	{"!=", NotEq},
	{">=", GtEq},
	{"<=", LtEq},
	{">", Gt},
	{"<", Lt},
	{"!", Bang},
	{"?", Question},
	{"&", Amp},
	{"^", Caret},
	{"|", Pipe},
	{"~", Tilde},
	{"=", Eq},
	{"+", Plus},
	{"-", Minus},
	{"*", Star},
	{"/", Slash},
	{"%", Percent},
	{",", Comma},
	{".", Dot},
	{";", Semi},
	{":", Colon},
	{"(", LParen},
	{")", RParen},
	{"[", LBracket},
	{"]", RBracket},
	{"{", LBrace},
	{"}", RBrace},
}

// BracketFamily groups the three kinds of matched brackets.
type BracketFamily int

const (
	NotBracket BracketFamily = iota
	Paren
	Bracket
	Brace
)

// BracketInfo is populated on Punctuator tokens that are brackets.
type BracketInfo struct {
	Family BracketFamily
	Open   bool
}

func bracketInfo(k PunctKind) BracketInfo {
	switch k {
	case LParen:
		return BracketInfo{Paren, true}
	case RParen:
		return BracketInfo{Paren, false}
	case LBracket:
		return BracketInfo{Bracket, true}
	case RBracket:
		return BracketInfo{Bracket, false}
	case LBrace:
		return BracketInfo{Brace, true}
	case RBrace:
		return BracketInfo{Brace, false}
	default:
		return BracketInfo{NotBracket, false}
	}
}

// Token is one lexical unit, per spec.md §3.1.
type Token struct {
	Kind    Kind
	Text    string
	Span    source.Span
	Punct   PunctKind   // valid when Kind == Punctuator
	Bracket BracketInfo // valid when Kind == Punctuator and the punctuator is a bracket
}

// IsBracket reports whether this token is a bracket punctuator.
func (t Token) IsBracket() bool {
	return t.Kind == Punctuator && t.Bracket.Family != NotBracket
}
