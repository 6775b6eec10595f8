package sat

import "github.com/crillab/gophersat/bf"

// Gophersat hands the problem to the CDCL solver of
// github.com/crillab/gophersat through its boolean formula front end.
type Gophersat struct{}

func (Gophersat) Solve(vars []*Var, asserted []Expr) (Model, bool) {
	names := variables(vars, asserted)

	// Every variable gets a tautology so that it appears in the model, and
	// the control variable anchors the constants.
	anchor := bf.Var(ControlVar)
	conj := []bf.Formula{bf.Or(anchor, bf.Not(anchor))}
	for _, name := range names {
		v := bf.Var(name)
		conj = append(conj, bf.Or(v, bf.Not(v)))
	}
	for _, e := range asserted {
		conj = append(conj, toFormula(e, anchor))
	}

	model := bf.Solve(bf.And(conj...))
	if model == nil {
		return nil, false
	}
	m := make(Model, len(names))
	for _, name := range names {
		m[name] = model[name]
	}
	return m, true
}

func toFormula(e Expr, anchor bf.Formula) bf.Formula {
	switch e := e.(type) {
	case Const:
		if e {
			return bf.Or(anchor, bf.Not(anchor))
		}
		return bf.And(anchor, bf.Not(anchor))
	case *Var:
		return bf.Var(e.Name)
	case *NotExpr:
		return bf.Not(toFormula(e.X, anchor))
	case *AndExpr:
		if len(e.Xs) == 0 {
			return toFormula(True, anchor)
		}
		return bf.And(toFormulas(e.Xs, anchor)...)
	case *OrExpr:
		if len(e.Xs) == 0 {
			return toFormula(False, anchor)
		}
		return bf.Or(toFormulas(e.Xs, anchor)...)
	default:
		panic(e)
	}
}

func toFormulas(xs []Expr, anchor bf.Formula) []bf.Formula {
	fs := make([]bf.Formula, len(xs))
	for i, x := range xs {
		fs[i] = toFormula(x, anchor)
	}
	return fs
}
