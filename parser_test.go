package sinkflow

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// wrap places body inside the class/method shell Preprocess expects.
func wrap(body string) string {
	return fmt.Sprintf("class Main {\n  public static void main(String[] args) {\n%s\n  }\n}\n", body)
}

func mustParse(t *testing.T, src string) *Program {
	t.Helper()
	prog, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	return prog
}

func TestPreprocess_SkipsWrapperAndNoise(t *testing.T) {
	src := "class Main {{ void main(int[] a) { x = 1; } }"
	got := plain(Preprocess(Tokenize(src)))
	want := []tok{
		{OpenBrace, "{"}, {Identifier, "x"}, {Number, "1"}, {CloseBrace, "}"}, {CloseBrace, "}"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Preprocess mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_Statements(t *testing.T) {
	src := wrap(`
    int x;
    x = 1;
    if (c) {
      x = 2;
    }
    if (a[3]) {
      x = 4;
    }
    System.out.println(x);`)

	want := `(block
  (int x)
  (= x 1)
  (if c
    (block
      (= x 2)))
  (if a[3]
    (block
      (= x 4)))
  (sink x))`

	prog := mustParse(t, src)
	if diff := cmp.Diff(want, prog.String()); diff != "" {
		t.Fatalf("tree mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_ArenaShape(t *testing.T) {
	prog := mustParse(t, wrap("x = 7; if (a[2]) { x = 9; }"))

	root := prog.Node(prog.Root)
	if root.Kind != KindBlock || root.Parent.IsValid() {
		t.Fatalf("root is %v with parent %d", root.Kind, root.Parent)
	}
	if len(root.Children) != 2 {
		t.Fatalf("root has %d children, want 2", len(root.Children))
	}

	assign := prog.Node(root.Children[0])
	if assign.Kind != KindAssignment || prog.Literal(assign.ID).Value != 7 {
		t.Errorf("first child is %v with value %d", assign.Kind, prog.Literal(assign.ID).Value)
	}

	ifNode := prog.Node(root.Children[1])
	cond := prog.Condition(ifNode.ID)
	if cond.Kind != KindLookup || prog.Literal(cond.ID).Text != "2" {
		t.Errorf("condition is %v %q", cond.Kind, cond.Text)
	}
	body := prog.Body(ifNode.ID)
	if body.Kind != KindBlock || body.Parent != ifNode.ID {
		t.Errorf("body is %v with parent %d, want Block under %d", body.Kind, body.Parent, ifNode.ID)
	}

	arity := map[NodeKind]int{
		KindIf: 2, KindDeclaration: 1, KindAssignment: 2, KindLookup: 2,
		KindVarName: 0, KindNumber: 0, KindSink: 1,
	}
	prog.Walk(func(n *Node) bool {
		if want, ok := arity[n.Kind]; ok && len(n.Children) != want {
			t.Errorf("%v node has %d children, want %d", n.Kind, len(n.Children), want)
		}
		for _, c := range n.Children {
			if prog.Node(c).Parent != n.ID {
				t.Errorf("child %d of %d has parent %d", c, n.ID, prog.Node(c).Parent)
			}
		}
		return true
	})
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want error
	}{
		{"no braces", "int x;", ErrNoEntryBlock},
		{"wrapper only", "main { int x; }", ErrNoEntryBlock},
		{"unclosed block", "class A { void m() { int x;", ErrUnexpectedEOF},
		{"unclosed if", "class A { void m() { if (c) { x = 1;", ErrUnexpectedEOF},
		{"assignment without number", wrap("x = y;"), ErrUnexpectedToken},
		{"assignment at end", "class A { void m() { x", ErrUnexpectedEOF},
		{"declaration without name", wrap("int 5;"), ErrUnexpectedToken},
		{"if without body", wrap("if (c) x = 1;"), ErrUnexpectedToken},
		{"lookup without body", wrap("if (a[1]) x = 1;"), ErrUnexpectedToken},
		{"if without identifier", wrap("if (5) { x = 1; }"), ErrUnexpectedToken},
		{"sink without name", wrap("System.out.println(1);"), ErrUnexpectedToken},
		{"ellipsis in block", wrap("x = 1; ..."), ErrUnexpectedToken},
		{"stray open brace", wrap("{ x = 1; }"), ErrUnexpectedToken},
		{"literal out of range", wrap("x = 99999999999999999999;"), ErrLiteralRange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prog, err := Parse(tt.src)
			if err == nil {
				t.Fatalf("expected error, got tree:\n%s", prog)
			}
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
			var perr *ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("expected *ParseError, got %T", err)
			}
		})
	}
}

func TestParse_GapsRecorded(t *testing.T) {
	src := wrap("x = 1; @ System.out.println(x);")

	prog := mustParse(t, src)
	if len(prog.Gaps) != 1 || prog.Gaps[0].Text != "@" {
		t.Fatalf("expected one gap for '@', got %v", prog.Gaps)
	}

	_, err := ParseStrict(src)
	var lexErr *LexError
	if !errors.As(err, &lexErr) {
		t.Fatalf("ParseStrict: expected *LexError, got %v", err)
	}
	if lexErr.Line != 3 {
		t.Errorf("gap reported on line %d, want 3", lexErr.Line)
	}
}

func TestParse_TrailingTokensIgnored(t *testing.T) {
	prog := mustParse(t, "class A { void m() { x = 1; } } int junk; x 5")
	if got := prog.String(); got != "(block\n  (= x 1))" {
		t.Fatalf("unexpected tree:\n%s", got)
	}
}

func TestWrapErrorWithSource(t *testing.T) {
	src := "class A {\nvoid m() {\nx = y;\n}\n}"
	_, err := Parse(src)
	if err == nil {
		t.Fatal("expected parse error")
	}

	got := WrapErrorWithSource(err, src).Error()
	want := `parse error at 3:5: expected a number after x, got Identifier ("y")

  2 | void m() {
  3 | x = y;
    |     ^
  4 | }`
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("snippet mismatch (-want +got):\n%s", diff)
	}
	if !errors.Is(WrapErrorWithSource(err, src), ErrUnexpectedToken) {
		t.Error("wrapped error lost its kind")
	}
}

func TestWrapErrorWithSource_WideRunes(t *testing.T) {
	src := "class A { void m() {\n漢字 @\n}}"
	_, err := ParseStrict(src)
	got := WrapErrorWithSource(err, src).Error()
	// two wide runes and a space put the caret at display column 6
	if want := "    |      ^"; !containsLine(got, want) {
		t.Fatalf("caret line %q not found in:\n%s", want, got)
	}
}

func TestWrapErrorWithSource_OtherErrors(t *testing.T) {
	plainErr := errors.New("boom")
	if WrapErrorWithSource(plainErr, "src") != plainErr {
		t.Fatal("non-parse errors must be returned unchanged")
	}
}

func containsLine(text, line string) bool {
	for _, l := range strings.Split(text, "\n") {
		if l == line {
			return true
		}
	}
	return false
}
