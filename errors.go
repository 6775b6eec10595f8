package sinkflow

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
)

var (
	// ErrNoEntryBlock is reported when the preprocessed stream does not
	// start with '{'.
	ErrNoEntryBlock = errors.New("no entry block found")
	// ErrUnexpectedEOF is reported when the token stream ends inside a
	// statement or block.
	ErrUnexpectedEOF = errors.New("unexpected end of input")
	// ErrUnexpectedToken is reported for a token of the wrong kind.
	ErrUnexpectedToken = errors.New("unexpected token")
	// ErrLiteralRange is reported for an integer literal that does not fit
	// in 64 bits.
	ErrLiteralRange = errors.New("integer literal out of range")
)

// LexError describes input that matched no token rule.
type LexError struct {
	Text   string
	Offset int
	Line   int
	Col    int
}

func (e *LexError) Error() string {
	return fmt.Sprintf("lex error at %d:%d: unrecognized character %q", e.Line, e.Col, e.Text)
}

// ParseError describes a structural mismatch against the grammar. Kind is
// one of the Err* sentinels above and is matched by errors.Is.
type ParseError struct {
	Kind  error
	Msg   string
	Token *Token // nil at end of input
}

func (e *ParseError) Error() string {
	if e.Token == nil {
		return fmt.Sprintf("parse error: %s", e.Msg)
	}
	return fmt.Sprintf("parse error at %d:%d: %s", e.Token.Line, e.Token.Col, e.Msg)
}

func (e *ParseError) Unwrap() error {
	return e.Kind
}

// WrapErrorWithSource renders lex and parse errors as a snippet of src with
// a caret under the offending column. Other errors are returned unchanged.
//
//	parse error at 3:5: IntKeyword ("int") is not a valid value for x
//
//	   2 |     x = 1;
//	   3 |     x int;
//	     |       ^
//	   4 | }
func WrapErrorWithSource(err error, src string) error {
	var lexErr *LexError
	if errors.As(err, &lexErr) {
		return &snippetError{err: err, text: snippet(src, lexErr.Error(), lexErr.Line, lexErr.Col)}
	}
	var parseErr *ParseError
	if errors.As(err, &parseErr) && parseErr.Token != nil {
		return &snippetError{err: err, text: snippet(src, parseErr.Error(), parseErr.Token.Line, parseErr.Token.Col)}
	}
	return err
}

type snippetError struct {
	err  error
	text string
}

func (e *snippetError) Error() string { return e.text }
func (e *snippetError) Unwrap() error { return e.err }

// snippet shows at most one line of context on each side. line and col are
// 1-based and clamped to the source.
func snippet(src, header string, line, col int) string {
	lines := strings.Split(src, "\n")
	line = min(max(line, 1), len(lines))
	col = max(col, 1)

	width := len(fmt.Sprint(min(line+1, len(lines))))
	var b strings.Builder
	b.WriteString(header)
	b.WriteString("\n\n")
	for n := line - 1; n <= line+1; n++ {
		if n < 1 || n > len(lines) {
			continue
		}
		text := strings.TrimRight(lines[n-1], "\r")
		fmt.Fprintf(&b, "  %*d | %s\n", width, n, text)
		if n == line {
			runes := []rune(text)
			var pad strings.Builder
			for _, r := range runes[:min(col-1, len(runes))] {
				// tabs are kept so the caret lines up in a terminal
				if r == '\t' {
					pad.WriteByte('\t')
					continue
				}
				pad.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
			}
			fmt.Fprintf(&b, "  %*s | %s^\n", width, "", pad.String())
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
