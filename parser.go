package sinkflow

import (
	"fmt"
	"strconv"
)

// Parse tokenizes src, locates the program block and builds its tree.
// Characters the lexer cannot classify are skipped and listed in
// Program.Gaps.
func Parse(src string) (*Program, error) {
	l := NewLexer(src)
	tokens := l.Scan()
	prog, err := ParseTokens(Preprocess(tokens))
	if err != nil {
		return nil, err
	}
	prog.Gaps = l.Gaps()
	return prog, nil
}

// ParseStrict is like Parse but reports the first unclassified character
// as a *LexError.
func ParseStrict(src string) (*Program, error) {
	l := NewLexer(src)
	tokens := l.Scan()
	if gaps := l.Gaps(); len(gaps) > 0 {
		return nil, gaps[0]
	}
	return ParseTokens(Preprocess(tokens))
}

// ParseTokens builds the tree from an already preprocessed token stream:
//
//	Program     := '{' Block
//	Block       := (Declaration | Assignment | If | Sink)* '}'
//	Declaration := 'int' Identifier
//	Assignment  := Identifier Number
//	If          := 'if' Identifier (Number '{' | '{') Block
//	Sink        := 'System.out.println' Identifier
//
// Every decision is made on the current token alone. Tokens after the
// program block are ignored.
func ParseTokens(tokens []Token) (*Program, error) {
	p := &parser{tokens: tokens, prog: newProgram()}
	tok, ok := p.next()
	if !ok || tok.Kind != OpenBrace {
		return nil, p.errorf(ErrNoEntryBlock, tok, ok, "no entry block found")
	}
	root, err := p.parseBlock(NoNodeID, tok)
	if err != nil {
		return nil, err
	}
	p.prog.Root = root
	return p.prog, nil
}

type parser struct {
	tokens []Token
	pos    int
	prog   *Program
}

func (p *parser) next() (Token, bool) {
	if p.pos >= len(p.tokens) {
		return Token{}, false
	}
	tok := p.tokens[p.pos]
	p.pos++
	return tok, true
}

func (p *parser) expect(kind TokenKind, what string) (Token, error) {
	tok, ok := p.next()
	if !ok {
		return tok, p.errorf(ErrUnexpectedEOF, tok, ok, "unexpected end of input, expected %s", what)
	}
	if tok.Kind != kind {
		return tok, p.errorf(ErrUnexpectedToken, tok, ok, "expected %s, got %s (%q)", what, tok.Kind, tok.Text)
	}
	return tok, nil
}

func (p *parser) errorf(kind error, tok Token, ok bool, format string, args ...any) *ParseError {
	err := &ParseError{Kind: kind, Msg: fmt.Sprintf(format, args...)}
	if ok {
		err.Token = &tok
	}
	return err
}

func (p *parser) parseBlock(parent NodeID, open Token) (NodeID, error) {
	text := "Block"
	if !parent.IsValid() {
		text = "RootBlock"
	}
	block := p.prog.add(KindBlock, text, parent, posOf(open))
	for {
		tok, ok := p.next()
		if !ok {
			return NoNodeID, p.errorf(ErrUnexpectedEOF, tok, ok, "unexpected end of input, block opened at %d:%d is not closed", open.Line, open.Col)
		}
		var err error
		switch tok.Kind {
		case IntKeyword:
			err = p.parseDeclaration(block, tok)
		case Identifier:
			err = p.parseAssignment(block, tok)
		case IfKeyword:
			err = p.parseIf(block, tok)
		case SinkKeyword:
			err = p.parseSink(block, tok)
		case CloseBrace:
			return block, nil
		default:
			err = p.errorf(ErrUnexpectedToken, tok, ok, "%s (%q) is not a valid token in a block", tok.Kind, tok.Text)
		}
		if err != nil {
			return NoNodeID, err
		}
	}
}

func (p *parser) parseDeclaration(block NodeID, kw Token) error {
	name, err := p.expect(Identifier, "an identifier after the type")
	if err != nil {
		return err
	}
	decl := p.prog.add(KindDeclaration, kw.Text, block, posOf(kw))
	p.prog.add(KindVarName, name.Text, decl, posOf(name))
	return nil
}

func (p *parser) parseAssignment(block NodeID, name Token) error {
	lit, err := p.expect(Number, "a number after "+name.Text)
	if err != nil {
		return err
	}
	v, err := strconv.ParseInt(lit.Text, 10, 64)
	if err != nil {
		return p.errorf(ErrLiteralRange, lit, true, "integer literal %s does not fit in 64 bits", lit.Text)
	}
	assign := p.prog.add(KindAssignment, "=", block, posOf(name))
	p.prog.add(KindVarName, name.Text, assign, posOf(name))
	num := p.prog.add(KindNumber, lit.Text, assign, posOf(lit))
	p.prog.nodes[num].Value = v
	return nil
}

func (p *parser) parseIf(block NodeID, kw Token) error {
	cond, err := p.expect(Identifier, "an identifier at the start of the if condition")
	if err != nil {
		return err
	}
	tok, ok := p.next()
	if !ok {
		return p.errorf(ErrUnexpectedEOF, tok, ok, "unexpected end of input in if condition")
	}

	ifID := p.prog.add(KindIf, kw.Text, block, posOf(kw))
	open := tok
	switch tok.Kind {
	case Number:
		lookup := p.prog.add(KindLookup, cond.Text+"["+tok.Text+"]", ifID, posOf(cond))
		p.prog.add(KindVarName, cond.Text, lookup, posOf(cond))
		idx := p.prog.add(KindNumber, tok.Text, lookup, posOf(tok))
		if v, err := strconv.ParseInt(tok.Text, 10, 64); err == nil {
			p.prog.nodes[idx].Value = v
		}
		if open, err = p.expect(OpenBrace, "a body block after the if condition"); err != nil {
			return err
		}
	case OpenBrace:
		// a bare identifier is an opaque atom
		p.prog.add(KindNumber, cond.Text, ifID, posOf(cond))
	default:
		return p.errorf(ErrUnexpectedToken, tok, ok, "unexpected %s (%q) in if condition", tok.Kind, tok.Text)
	}

	_, err = p.parseBlock(ifID, open)
	return err
}

func (p *parser) parseSink(block NodeID, kw Token) error {
	name, err := p.expect(Identifier, "a variable name after "+SinkName)
	if err != nil {
		return err
	}
	sink := p.prog.add(KindSink, kw.Text, block, posOf(kw))
	p.prog.add(KindVarName, name.Text, sink, posOf(name))
	return nil
}

func posOf(tok Token) Pos {
	return Pos{Offset: tok.Offset, Line: tok.Line, Col: tok.Col}
}
