package sat

import "fmt"

// ControlVar is registered by every Problem so that a problem without
// assertions still has one unconstrained variable.
const ControlVar = "__system"

// Solver decides whether some assignment of the variables makes every
// asserted formula true. Variables that appear only inside the formulas are
// included as well. Implementations must agree on satisfiability; the
// returned models may differ.
type Solver interface {
	Solve(vars []*Var, asserted []Expr) (Model, bool)
}

// Lookup returns the solver registered under name. The empty name selects
// the default DPLL solver.
func Lookup(name string) (Solver, error) {
	switch name {
	case "", "dpll":
		return DPLL{}, nil
	case "exhaustive":
		return Exhaustive{}, nil
	case "gophersat":
		return Gophersat{}, nil
	default:
		return nil, fmt.Errorf("unknown solver %q (valid: dpll, exhaustive, gophersat)", name)
	}
}

// Problem collects variables and asserted formulas for one query.
type Problem struct {
	vars     []*Var
	byName   map[string]*Var
	asserted []Expr
}

// NewProblem returns a problem holding only ControlVar.
func NewProblem() *Problem {
	p := &Problem{byName: make(map[string]*Var)}
	p.Var(ControlVar)
	return p
}

// Var returns the variable called name, creating it on first use.
func (p *Problem) Var(name string) *Var {
	if v, ok := p.byName[name]; ok {
		return v
	}
	v := &Var{Name: name}
	p.byName[name] = v
	p.vars = append(p.vars, v)
	return v
}

// Assert adds a formula that must evaluate to true.
func (p *Problem) Assert(e Expr) {
	p.asserted = append(p.asserted, e)
}

// Vars returns the registered variables in creation order.
func (p *Problem) Vars() []*Var {
	return p.vars
}

// Assertions returns the asserted formulas.
func (p *Problem) Assertions() []Expr {
	return p.asserted
}

// Solve runs s on the problem.
func (p *Problem) Solve(s Solver) (Model, bool) {
	return s.Solve(p.vars, p.asserted)
}
