package sinkflow

// noise lists token kinds the parser never looks at. Brackets and
// parentheses are not checked for balance, semicolons are not checked for
// placement and '=' is not required before a value.
var noise = map[TokenKind]bool{
	OpenParen:    true,
	CloseParen:   true,
	Semicolon:    true,
	Whitespace:   true,
	Equals:       true,
	OpenBracket:  true,
	CloseBracket: true,
}

// Preprocess locates the program block and strips noise tokens.
//
// The accepted input shape is a wrapper block around the program block,
// for example a class body around a method body:
//
//	class Main {                       // skipped up to and including this '{'
//	    public static void main(...)   // skipped
//	    {                              // the program block starts here
//	        ...
//	    }
//	}
//
// Everything before the first '{' is skipped, then that '{' and any '{'
// directly following it, then everything up to the next '{'. The returned
// stream starts at that brace.
func Preprocess(tokens []Token) []Token {
	i := 0
	for i < len(tokens) && tokens[i].Kind != OpenBrace {
		i++
	}
	for i < len(tokens) && tokens[i].Kind == OpenBrace {
		i++
	}
	for i < len(tokens) && tokens[i].Kind != OpenBrace {
		i++
	}

	out := make([]Token, 0, len(tokens)-i)
	for _, tok := range tokens[i:] {
		if !noise[tok.Kind] {
			out = append(out, tok)
		}
	}
	return out
}
