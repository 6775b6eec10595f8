package sat

// Simplify rewrites e into an equivalent, usually smaller formula. It
// removes double negation, folds constants, flattens nested operators of the
// same kind, drops duplicate operands and collapses an operand list that
// holds both x and !x.
func Simplify(e Expr) Expr {
	switch e := e.(type) {
	case *NotExpr:
		x := Simplify(e.X)
		switch x := x.(type) {
		case *NotExpr:
			return x.X
		case Const:
			return !x
		}
		return Not(x)
	case *AndExpr:
		return simplifyOperands(e.Xs, true)
	case *OrExpr:
		return simplifyOperands(e.Xs, false)
	default:
		return e
	}
}

// simplifyOperands handles AND when and is true, OR otherwise. The absorbing
// constant is False for AND and True for OR.
func simplifyOperands(xs []Expr, and bool) Expr {
	absorb := Const(!and)
	var out []Expr
	seen := make(map[string]bool)
	var add func(x Expr) bool
	add = func(x Expr) bool {
		switch x := x.(type) {
		case Const:
			return x != absorb
		case *AndExpr:
			if and {
				for _, y := range x.Xs {
					if !add(y) {
						return false
					}
				}
				return true
			}
		case *OrExpr:
			if !and {
				for _, y := range x.Xs {
					if !add(y) {
						return false
					}
				}
				return true
			}
		}
		key := x.String()
		if seen[key] {
			return true
		}
		if seen[complement(x)] {
			return false
		}
		seen[key] = true
		out = append(out, x)
		return true
	}
	for _, x := range xs {
		if !add(Simplify(x)) {
			return absorb
		}
	}
	if and {
		return And(out...)
	}
	return Or(out...)
}

func complement(x Expr) string {
	if n, ok := x.(*NotExpr); ok {
		return n.X.String()
	}
	return "!" + x.String()
}
