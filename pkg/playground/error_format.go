package playground

import (
	"errors"
	"fmt"
	"strings"

	"github.com/speakeasy-api/sinkflow"
	"github.com/speakeasy-api/sinkflow/analysis"
)

// FormatAnalysisError turns an error from AnalyzeSource into a user-facing
// message with a source excerpt where one is available.
func FormatAnalysisError(err error, src string) string {
	if err == nil {
		return ""
	}

	msg, hint := classifyAndHint(err)

	var b strings.Builder
	fmt.Fprintf(&b, "Analysis failed.\n- %s\n", msg)
	if loc := deriveLocation(err); loc != "" {
		fmt.Fprintf(&b, "  Location: %s\n", loc)
	}
	if hint != "" {
		fmt.Fprintf(&b, "  How to fix: %s\n", hint)
	}

	details := sinkflow.WrapErrorWithSource(err, src).Error()
	b.WriteString("  Details:\n")
	for _, line := range strings.Split(details, "\n") {
		if line == "" {
			b.WriteByte('\n')
			continue
		}
		b.WriteString("    " + line + "\n")
	}
	return b.String()
}

// FormatWarnings lists non-fatal findings of a run.
func FormatWarnings(warnings []string) string {
	if len(warnings) == 0 {
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d character(s) were ignored:\n", len(warnings))
	for _, w := range warnings {
		fmt.Fprintf(&b, "- %s\n", w)
	}
	return b.String()
}

func deriveLocation(err error) string {
	var lexErr *sinkflow.LexError
	if errors.As(err, &lexErr) {
		return fmt.Sprintf("line %d, column %d", lexErr.Line, lexErr.Col)
	}
	var parseErr *sinkflow.ParseError
	if errors.As(err, &parseErr) {
		if parseErr.Token == nil {
			return "end of input"
		}
		return fmt.Sprintf("line %d, column %d", parseErr.Token.Line, parseErr.Token.Col)
	}
	return ""
}

func classifyAndHint(err error) (msg, hint string) {
	var lexErr *sinkflow.LexError
	var invErr *analysis.InvariantError
	var panicErr *analysis.SolverPanicError
	switch {
	case errors.As(err, &lexErr):
		msg = fmt.Sprintf("Unrecognized character %q.", lexErr.Text)
		hint = "Remove the character, or analyze without strict lexing to skip it."
	case errors.Is(err, sinkflow.ErrNoEntryBlock):
		msg = "No program block was found."
		hint = "Wrap the program in a class and a method, e.g. \"class Main { void main() { ... } }\"."
	case errors.Is(err, sinkflow.ErrUnexpectedEOF):
		msg = "The source ended inside a block or statement."
		hint = "Close every block with \"}\"."
	case errors.Is(err, sinkflow.ErrUnexpectedToken):
		msg = "Unexpected token."
		hint = "Statements are \"int x;\", \"x = 1;\", \"if (c) { ... }\", \"if (a[1]) { ... }\" and \"" + sinkflow.SinkName + "(x);\"."
	case errors.Is(err, sinkflow.ErrLiteralRange):
		msg = "Integer literal out of range."
		hint = "Integer literals must fit in 64 bits."
	case errors.As(err, &invErr):
		msg = "Internal analyzer error."
	case errors.As(err, &panicErr):
		msg = "Internal analyzer error."
		hint = "Report this together with the source and the stack trace."
	default:
		msg = "Analysis error."
	}
	return msg, hint
}
