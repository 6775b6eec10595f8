package analysis

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/speakeasy-api/sinkflow"
)

func buildPaths(t *testing.T, body string, opts Options) *Paths {
	t.Helper()
	prog, err := sinkflow.Parse(wrap(body))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	paths, err := BuildPaths(sinkflow.Simplify(prog), opts)
	if err != nil {
		t.Fatalf("BuildPaths error: %v", err)
	}
	return paths
}

// siteConstraints maps each assigned value to the sorted atoms of its sites.
func siteConstraints(p *Paths) map[int64][][]string {
	out := make(map[int64][][]string)
	for _, v := range p.Values() {
		for _, s := range p.Sites(v) {
			out[v] = append(out[v], p.Constraints(s).Strings())
		}
	}
	return out
}

func TestBuildPaths(t *testing.T) {
	tests := []struct {
		name string
		body string
		want map[int64][][]string
	}{
		{
			name: "later branch negates earlier siblings",
			body: "if (c) { x = 1; } if (d) { x = 2; }",
			want: map[int64][][]string{1: {{"!d", "c"}}, 2: {{"d"}}},
		},
		{
			name: "nested conditions accumulate",
			body: "if (c) { if (d) { x = 1; } }",
			want: map[int64][][]string{1: {{"c", "d"}}},
		},
		{
			name: "unconditional site",
			body: "x = 4;",
			want: map[int64][][]string{4: {{}}},
		},
		{
			name: "assignment before branches",
			body: "x = 5; if (c) { x = 2; } if (d) { x = 5; }",
			want: map[int64][][]string{
				5: {{"!c", "!d"}, {"d"}},
				2: {{"!d", "c"}},
			},
		},
		{
			name: "indexed condition names the index",
			body: "if (flag[7]) { x = 1; }",
			want: map[int64][][]string{1: {{"7"}}},
		},
		{
			name: "negation inside nested blocks",
			body: "if (c) { x = 1; if (d) { x = 2; } } if (e) { x = 3; }",
			want: map[int64][][]string{
				1: {{"!d", "!e", "c"}},
				2: {{"!e", "c", "d"}},
				3: {{"e"}},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			paths := buildPaths(t, tt.body, quiet())
			if diff := cmp.Diff(tt.want, siteConstraints(paths)); diff != "" {
				t.Fatalf("constraints mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestBuildPaths_QualifiedAtoms(t *testing.T) {
	opts := quiet()
	opts.QualifiedAtoms = true
	paths := buildPaths(t, "if (flag[7]) { x = 1; }", opts)
	want := map[int64][][]string{1: {{"flag[7]"}}}
	if diff := cmp.Diff(want, siteConstraints(paths)); diff != "" {
		t.Fatalf("constraints mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildPaths_BranchConstraints(t *testing.T) {
	paths := buildPaths(t, "if (c) { x = 1; } if (d) { x = 2; }", quiet())
	prog := paths.Program()

	var got [][]string
	prog.Walk(func(n *sinkflow.Node) bool {
		if n.Kind == sinkflow.KindIf {
			got = append(got, paths.Constraints(n.ID).Strings())
		}
		return true
	})
	want := [][]string{{"!d", "c"}, {"d"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("branch constraints mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildPaths_VisitsOnce(t *testing.T) {
	body := "int x; x = 1; if (c) { x = 2; if (d) { x = 3; } } if (e) { x = 4; } System.out.println(x);"
	paths := buildPaths(t, body, quiet())
	prog := paths.Program()

	count := 0
	prog.Walk(func(n *sinkflow.Node) bool {
		switch n.Kind {
		case sinkflow.KindBlock, sinkflow.KindIf, sinkflow.KindAssignment, sinkflow.KindDeclaration, sinkflow.KindSink:
			count++
			if got := paths.Visits(n.ID); got != 1 {
				t.Errorf("%s node %d visited %d times", n.Kind, n.ID, got)
			}
		}
		return true
	})
	if count == 0 {
		t.Fatal("walk found no statements")
	}
}

func TestBuildPaths_EmptyProgram(t *testing.T) {
	paths, err := BuildPaths(&sinkflow.Program{}, quiet())
	if err != nil {
		t.Fatalf("BuildPaths error: %v", err)
	}
	if got := paths.Values(); len(got) != 0 {
		t.Fatalf("Values() = %v, want none", got)
	}
}

func TestInvariantError(t *testing.T) {
	err := &InvariantError{Node: 4, Kind: sinkflow.KindIf, Visits: 2}
	if got, want := err.Error(), "internal error: If node 4 visited 2 times"; got != want {
		t.Fatalf("Error() = %q, want %q", got, want)
	}
}

func TestAtomSet(t *testing.T) {
	s := newAtomSet()
	if !s.Add(Atom{Name: "c"}) || s.Add(Atom{Name: "c"}) {
		t.Fatal("Add did not deduplicate")
	}
	s.Add(Atom{Name: "c", Negated: true})
	o := newAtomSet()
	o.Add(Atom{Name: "a"})
	s.Union(o)
	s.Union(nil)
	if got, want := s.String(), "{!c, a, c}"; got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
	if !s.Has(Atom{Name: "a"}) || s.Len() != 3 {
		t.Fatalf("unexpected set %s", s)
	}
}
