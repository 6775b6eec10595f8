// Package sinkflow reads programs of a small imperative language: integer
// declarations, literal assignments, branches on opaque conditions and a
// single print sink. It provides the lexer, the parser into an arena tree
// and the dead-assignment simplifier.
package sinkflow

import "fmt"

// TokenKind classifies a lexical token.
type TokenKind int

const (
	OpenBrace TokenKind = iota
	CloseBrace
	OpenBracket
	CloseBracket
	OpenParen
	CloseParen
	Semicolon
	Equals
	IntKeyword
	IfKeyword
	SinkKeyword
	Ellipsis
	Number
	Whitespace
	Identifier
)

func (k TokenKind) String() string {
	switch k {
	case OpenBrace:
		return "OpenBrace"
	case CloseBrace:
		return "CloseBrace"
	case OpenBracket:
		return "OpenBracket"
	case CloseBracket:
		return "CloseBracket"
	case OpenParen:
		return "OpenParen"
	case CloseParen:
		return "CloseParen"
	case Semicolon:
		return "Semicolon"
	case Equals:
		return "Equals"
	case IntKeyword:
		return "IntKeyword"
	case IfKeyword:
		return "IfKeyword"
	case SinkKeyword:
		return "SinkKeyword"
	case Ellipsis:
		return "Ellipsis"
	case Number:
		return "Number"
	case Whitespace:
		return "Whitespace"
	case Identifier:
		return "Identifier"
	default:
		panic(k)
	}
}

// Token is a classified slice of the source text.
type Token struct {
	Kind   TokenKind
	Text   string
	Offset int // byte offset of the first character
	Line   int // 1-based
	Col    int // 1-based, in runes
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%q)", t.Kind, t.Text)
}

// SinkName is the literal spelling of the print statement.
const SinkName = "System.out.println"

// literals are matched before any pattern rule.
var literals = map[string]TokenKind{
	"{":      OpenBrace,
	"}":      CloseBrace,
	"[":      OpenBracket,
	"]":      CloseBracket,
	"(":      OpenParen,
	")":      CloseParen,
	";":      Semicolon,
	"=":      Equals,
	"if":     IfKeyword,
	"int":    IntKeyword,
	"...":    Ellipsis,
	SinkName: SinkKeyword,
}
