package sinkflow

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSimplify(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{
			name: "straight-line reassignment",
			body: "int x; x = 1; x = 2;",
			want: "(block\n  (= x 2))",
		},
		{
			name: "branch before an unconditional overwrite",
			body: "if (c) { x = 1; } x = 2;",
			want: "(block\n  (= x 2))",
		},
		{
			name: "branches after the last assignment stay",
			body: "x = 1; x = 5; if (c) { x = 2; } if (d) { x = 3; } System.out.println(x);",
			want: "(block\n  (= x 5)\n  (if c\n    (block\n      (= x 2)))\n  (if d\n    (block\n      (= x 3)))\n  (sink x))",
		},
		{
			name: "no assignment keeps everything",
			body: "int x; if (c) { x = 1; } System.out.println(x);",
			want: "(block\n  (int x)\n  (if c\n    (block\n      (= x 1)))\n  (sink x))",
		},
		{
			name: "nested bodies",
			body: "x = 1; if (c) { x = 2; x = 3; if (d) { x = 4; x = 6; } }",
			want: "(block\n  (= x 1)\n  (if c\n    (block\n      (= x 3)\n      (if d\n        (block\n          (= x 6))))))",
		},
		{
			name: "empty program",
			body: "",
			want: "(block)",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prog := mustParse(t, wrap(tt.body))
			got := Simplify(prog).String()
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("Simplify mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSimplify_Idempotent(t *testing.T) {
	bodies := []string{
		"int x; x = 1; x = 2;",
		"if (c) { x = 1; } if (d) { x = 2; }",
		"if (c) { x = 1; } x = 2;",
		"if (c) { if (d) { x = 1; } }",
		"x = 1; if (a[1]) { x = 2; x = 3; } x = 4; if (b[1]) { if (c) { x = 5; } x = 6; }",
	}
	for _, body := range bodies {
		once := Simplify(mustParse(t, wrap(body)))
		twice := Simplify(once)
		if diff := cmp.Diff(once.String(), twice.String()); diff != "" {
			t.Errorf("Simplify not idempotent for %q (-once +twice):\n%s", body, diff)
		}
	}
}

func TestSimplify_LeavesInputUntouched(t *testing.T) {
	prog := mustParse(t, wrap("x = 1; x = 2;"))
	before := prog.String()
	_ = Simplify(prog)
	if after := prog.String(); after != before {
		t.Fatalf("input changed:\nbefore:\n%s\nafter:\n%s", before, after)
	}
}
