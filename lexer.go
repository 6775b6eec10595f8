package sinkflow

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Lexer splits source text into tokens by maximal munch with one token of
// lookback: a candidate grows one character at a time while it still
// classifies and its kind is extensible; when growth breaks classification
// the longest classified prefix is emitted and scanning resumes right after
// it.
//
// Characters that match no rule produce no token. They are recorded as gaps
// and otherwise ignored.
type Lexer struct {
	src    string
	offset int
	line   int
	col    int
	tokens []Token
	gaps   []*LexError
}

// NewLexer returns a lexer over src.
func NewLexer(src string) *Lexer {
	return &Lexer{src: src, line: 1, col: 1}
}

// Tokenize is shorthand for NewLexer(src).Scan().
func Tokenize(src string) []Token {
	return NewLexer(src).Scan()
}

// Scan consumes the whole source once and returns every token, including
// whitespace.
func (l *Lexer) Scan() []Token {
	for l.offset < len(l.src) {
		start := l.offset
		kind, end, ok := l.longestMatch(start)
		if !ok {
			_, size := utf8.DecodeRuneInString(l.src[start:])
			l.gaps = append(l.gaps, &LexError{
				Text:   l.src[start : start+size],
				Offset: start,
				Line:   l.line,
				Col:    l.col,
			})
			l.advance(start + size)
			continue
		}
		l.tokens = append(l.tokens, Token{
			Kind:   kind,
			Text:   l.src[start:end],
			Offset: start,
			Line:   l.line,
			Col:    l.col,
		})
		l.advance(end)
	}
	return l.tokens
}

// Gaps returns the input positions no rule matched, in source order.
func (l *Lexer) Gaps() []*LexError {
	return l.gaps
}

// longestMatch grows a candidate from start and reports the kind and end of
// the token to emit.
func (l *Lexer) longestMatch(start int) (TokenKind, int, bool) {
	var (
		best  TokenKind
		end   int
		found bool
	)
	for j := start; j < len(l.src); {
		_, size := utf8.DecodeRuneInString(l.src[j:])
		j += size
		cand := l.src[start:j]
		kind, ok := classify(cand)
		if !ok {
			if found || !isLiteralPrefix(cand) {
				break
			}
			continue
		}
		best, end, found = kind, j, true
		if !extensible(kind, cand) {
			break
		}
	}
	return best, end, found
}

func (l *Lexer) advance(to int) {
	for _, r := range l.src[l.offset:to] {
		if r == '\n' {
			l.line++
			l.col = 1
		} else {
			l.col++
		}
	}
	l.offset = to
}

// classify applies the literal table first, then the pattern rules.
func classify(s string) (TokenKind, bool) {
	if kind, ok := literals[s]; ok {
		return kind, true
	}
	switch {
	case isWhitespaceRun(s):
		return Whitespace, true
	case isDigitRun(s):
		return Number, true
	case isIdentifier(s):
		return Identifier, true
	}
	return 0, false
}

// extensible reports whether a classified candidate may keep growing.
// Identifiers stop growing once they end in a digit.
func extensible(kind TokenKind, text string) bool {
	switch kind {
	case Whitespace, Number:
		return true
	case Identifier:
		r, _ := utf8.DecodeLastRuneInString(text)
		return !unicode.IsDigit(r)
	default:
		return false
	}
}

// isLiteralPrefix lets an unclassified candidate such as "." keep growing
// toward a multi-character literal such as "...".
func isLiteralPrefix(s string) bool {
	for lit := range literals {
		if len(lit) > len(s) && strings.HasPrefix(lit, s) {
			return true
		}
	}
	return false
}

func isWhitespaceRun(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		switch r {
		case ' ', '\t', '\r', '\n':
		default:
			return false
		}
	}
	return true
}

func isDigitRun(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// isIdentifier accepts a letter, '_' or '+' followed by letters, digits,
// '_' and '.'. The leading '+' is accepted for compatibility with existing
// inputs.
func isIdentifier(s string) bool {
	for i, r := range s {
		if i == 0 {
			if !unicode.IsLetter(r) && r != '_' && r != '+' {
				return false
			}
			continue
		}
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' && r != '.' {
			return false
		}
	}
	return s != ""
}
