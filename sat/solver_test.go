package sat

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
)

var backends = []struct {
	name string
	s    Solver
}{
	{"dpll", DPLL{}},
	{"exhaustive", Exhaustive{}},
	{"gophersat", Gophersat{}},
}

func TestSolve(t *testing.T) {
	a, b, c := &Var{Name: "a"}, &Var{Name: "b"}, &Var{Name: "c"}
	tests := []struct {
		name     string
		asserted []Expr
		want     bool
	}{
		{"no assertions", nil, true},
		{"true", []Expr{True}, true},
		{"false", []Expr{False}, false},
		{"single var", []Expr{a}, true},
		{"contradiction", []Expr{a, Not(a)}, false},
		{"empty conjunction", []Expr{And()}, true},
		{"empty disjunction", []Expr{Or()}, false},
		{"implied conflict", []Expr{Or(a, b), Not(a), Not(b)}, false},
		{"disjunction of paths", []Expr{Or(And(a, Not(b)), And(Not(a), c))}, true},
		{"or of contradictions", []Expr{Or(And(a, Not(a)), And(b, Not(b)))}, false},
		{"negated conjunction", []Expr{Not(And(a, b)), a, b}, false},
		{"double negation", []Expr{Not(Not(c)), Not(c)}, false},
	}
	for _, tt := range tests {
		for _, be := range backends {
			t.Run(tt.name+"/"+be.name, func(t *testing.T) {
				p := NewProblem()
				for _, e := range tt.asserted {
					p.Assert(e)
				}
				m, ok := p.Solve(be.s)
				if ok != tt.want {
					t.Fatalf("Solve() = %v, want %v", ok, tt.want)
				}
				if ok && !holds(tt.asserted, m) {
					t.Fatalf("model %v does not satisfy %v", m, tt.asserted)
				}
			})
		}
	}
}

func TestNewProblem_ControlVar(t *testing.T) {
	p := NewProblem()
	if got := len(p.Vars()); got != 1 || p.Vars()[0].Name != ControlVar {
		t.Fatalf("Vars() = %v, want only %s", p.Vars(), ControlVar)
	}
	m, ok := p.Solve(DPLL{})
	if !ok {
		t.Fatal("empty problem is unsatisfiable")
	}
	if _, present := m[ControlVar]; !present {
		t.Fatalf("model %v lacks %s", m, ControlVar)
	}
	if p.Var("x") != p.Var("x") {
		t.Fatal("Var() created two variables for one name")
	}
}

func TestLookup(t *testing.T) {
	for name, want := range map[string]Solver{"": DPLL{}, "dpll": DPLL{}, "exhaustive": Exhaustive{}, "gophersat": Gophersat{}} {
		got, err := Lookup(name)
		if err != nil {
			t.Fatalf("Lookup(%q): %v", name, err)
		}
		if got != want {
			t.Fatalf("Lookup(%q) = %T, want %T", name, got, want)
		}
	}
	if _, err := Lookup("z3"); err == nil {
		t.Fatal("Lookup(z3) succeeded")
	}
}

// randomExpr builds a formula over n variables with the given depth.
func randomExpr(r *rand.Rand, n, depth int) Expr {
	if depth == 0 || r.Intn(4) == 0 {
		v := &Var{Name: fmt.Sprintf("v%d", r.Intn(n))}
		if r.Intn(2) == 0 {
			return Not(v)
		}
		return v
	}
	k := 1 + r.Intn(3)
	xs := make([]Expr, k)
	for i := range xs {
		xs[i] = randomExpr(r, n, depth-1)
	}
	switch r.Intn(3) {
	case 0:
		return And(xs...)
	case 1:
		return Or(xs...)
	default:
		return Not(And(xs...))
	}
}

func TestBackendsAgree(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for i := 0; i < 300; i++ {
		asserted := []Expr{randomExpr(r, 5, 4), randomExpr(r, 5, 3)}
		_, want := Exhaustive{}.Solve(nil, asserted)
		for _, s := range []Solver{DPLL{}, Gophersat{}} {
			m, got := s.Solve(nil, asserted)
			if got != want {
				t.Fatalf("case %d: %T=%v exhaustive=%v for %v", i, s, got, want, asserted)
			}
			if got && !holds(asserted, m) {
				t.Fatalf("case %d: %T model %v does not satisfy %v", i, s, m, asserted)
			}
		}
	}
}

func TestSimplify(t *testing.T) {
	a, b := &Var{Name: "a"}, &Var{Name: "b"}
	tests := []struct {
		in   Expr
		want string
	}{
		{Not(Not(a)), "a"},
		{Not(True), "0"},
		{And(a, True), "a"},
		{And(a, False), "0"},
		{Or(a, True), "1"},
		{Or(a, False, b), "(a | b)"},
		{And(a, And(b, a)), "(a & b)"},
		{And(a, Not(a)), "0"},
		{Or(Not(b), b), "1"},
		{Or(And(a, b), And(b, a)), "((a & b) | (b & a))"},
		{And(), "1"},
	}
	for _, tt := range tests {
		if got := Simplify(tt.in).String(); got != tt.want {
			t.Errorf("Simplify(%v) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestSimplify_PreservesSatisfiability(t *testing.T) {
	r := rand.New(rand.NewSource(11))
	for i := 0; i < 300; i++ {
		e := randomExpr(r, 4, 4)
		_, want := Exhaustive{}.Solve(nil, []Expr{e})
		_, got := Exhaustive{}.Solve(nil, []Expr{Simplify(e)})
		if got != want {
			t.Fatalf("case %d: Simplify(%v) = %v changes satisfiability", i, e, Simplify(e))
		}
	}
}

func TestTree(t *testing.T) {
	a, b := &Var{Name: "a"}, &Var{Name: "b"}
	got := Tree(Or(And(a, Not(b)), True))
	want := "OR\n" +
		"└── AND\n" +
		"│   └── VAR(a)\n" +
		"│   └── NOT\n" +
		"│   │   └── VAR(b)\n" +
		"└── CONST(1)"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Tree mismatch (-want +got):\n%s", diff)
	}
}
