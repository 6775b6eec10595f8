// Package sat decides satisfiability of boolean formulas built from named
// variables with NOT, AND and OR.
package sat

import (
	"strings"
)

// Expr is a boolean formula. The concrete types are *Var, *NotExpr,
// *AndExpr, *OrExpr and Const.
type Expr interface {
	String() string
	expr()
}

// Var is a named decision variable ranging over {0, 1}.
type Var struct {
	Name string
}

// NotExpr negates X.
type NotExpr struct {
	X Expr
}

// AndExpr is true when every element of Xs is true.
type AndExpr struct {
	Xs []Expr
}

// OrExpr is true when some element of Xs is true.
type OrExpr struct {
	Xs []Expr
}

// Const is a boolean constant.
type Const bool

const (
	True  = Const(true)
	False = Const(false)
)

func (*Var) expr()     {}
func (*NotExpr) expr() {}
func (*AndExpr) expr() {}
func (*OrExpr) expr()  {}
func (Const) expr()    {}

func (v *Var) String() string { return v.Name }

func (e *NotExpr) String() string { return "!" + e.X.String() }

func (e *AndExpr) String() string { return join(e.Xs, " & ") }

func (e *OrExpr) String() string { return join(e.Xs, " | ") }

func (c Const) String() string {
	if c {
		return "1"
	}
	return "0"
}

func join(xs []Expr, sep string) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = x.String()
	}
	return "(" + strings.Join(parts, sep) + ")"
}

// Not returns the negation of x.
func Not(x Expr) Expr {
	return &NotExpr{X: x}
}

// And returns the conjunction of xs. The empty conjunction is True.
func And(xs ...Expr) Expr {
	switch len(xs) {
	case 0:
		return True
	case 1:
		return xs[0]
	}
	return &AndExpr{Xs: xs}
}

// Or returns the disjunction of xs. The empty disjunction is False.
func Or(xs ...Expr) Expr {
	switch len(xs) {
	case 0:
		return False
	case 1:
		return xs[0]
	}
	return &OrExpr{Xs: xs}
}

// Model assigns a value to every variable of a problem.
type Model map[string]bool

// Eval evaluates e under m. Variables missing from m are false.
func Eval(e Expr, m Model) bool {
	switch e := e.(type) {
	case *Var:
		return m[e.Name]
	case *NotExpr:
		return !Eval(e.X, m)
	case *AndExpr:
		for _, x := range e.Xs {
			if !Eval(x, m) {
				return false
			}
		}
		return true
	case *OrExpr:
		for _, x := range e.Xs {
			if Eval(x, m) {
				return true
			}
		}
		return false
	case Const:
		return bool(e)
	default:
		panic(e)
	}
}

// Tree renders e as an indented tree, one operator or variable per line.
func Tree(e Expr) string {
	var b strings.Builder
	writeTree(&b, e, 0)
	return strings.TrimSuffix(b.String(), "\n")
}

func padding(depth int) string {
	if depth == 0 {
		return ""
	}
	return strings.Repeat("│   ", depth-1) + "└── "
}

func writeTree(b *strings.Builder, e Expr, depth int) {
	b.WriteString(padding(depth))
	switch e := e.(type) {
	case *Var:
		b.WriteString("VAR(" + e.Name + ")\n")
	case *NotExpr:
		b.WriteString("NOT\n")
		writeTree(b, e.X, depth+1)
	case *AndExpr:
		b.WriteString("AND\n")
		for _, x := range e.Xs {
			writeTree(b, x, depth+1)
		}
	case *OrExpr:
		b.WriteString("OR\n")
		for _, x := range e.Xs {
			writeTree(b, x, depth+1)
		}
	case Const:
		b.WriteString("CONST(" + e.String() + ")\n")
	}
}

// variables returns the distinct variable names of es in first-seen order.
func variables(seed []*Var, es []Expr) []string {
	seen := make(map[string]bool)
	var names []string
	add := func(name string) {
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	for _, v := range seed {
		add(v.Name)
	}
	var walk func(e Expr)
	walk = func(e Expr) {
		switch e := e.(type) {
		case *Var:
			add(e.Name)
		case *NotExpr:
			walk(e.X)
		case *AndExpr:
			for _, x := range e.Xs {
				walk(x)
			}
		case *OrExpr:
			for _, x := range e.Xs {
				walk(x)
			}
		}
	}
	for _, e := range es {
		walk(e)
	}
	return names
}
