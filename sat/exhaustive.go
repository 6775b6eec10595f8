package sat

// MaxExhaustiveVars bounds the truth table Exhaustive enumerates. Larger
// problems are handed to DPLL.
const MaxExhaustiveVars = 24

// Exhaustive tries every assignment in binary counting order.
type Exhaustive struct{}

func (Exhaustive) Solve(vars []*Var, asserted []Expr) (Model, bool) {
	names := variables(vars, asserted)
	if len(names) > MaxExhaustiveVars {
		return DPLL{}.Solve(vars, asserted)
	}

	for i := uint64(0); i < 1<<len(names); i++ {
		m := make(Model, len(names))
		for j, name := range names {
			m[name] = (i>>j)&1 == 1
		}
		if holds(asserted, m) {
			return m, true
		}
	}
	return nil, false
}

func holds(asserted []Expr, m Model) bool {
	for _, e := range asserted {
		if !Eval(e, m) {
			return false
		}
	}
	return true
}
