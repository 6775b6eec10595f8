package sat

// DPLL converts the asserted formulas to clauses with the Tseitin encoding
// and searches with unit propagation and chronological backtracking.
type DPLL struct{}

func (DPLL) Solve(vars []*Var, asserted []Expr) (Model, bool) {
	enc := &encoder{names: make(map[string]int)}
	for _, name := range variables(vars, nil) {
		enc.variable(name)
	}
	for _, e := range asserted {
		enc.clauses = append(enc.clauses, []int{enc.lit(e)})
	}

	d := &dpll{clauses: enc.clauses, assign: make([]int8, enc.n+1)}
	if !d.search() {
		return nil, false
	}
	m := make(Model, len(enc.names))
	for name, id := range enc.names {
		m[name] = d.assign[id] == 1
	}
	return m, true
}

// encoder numbers variables from 1; a negative literal is a negation.
type encoder struct {
	n       int
	names   map[string]int
	clauses [][]int
}

func (e *encoder) fresh() int {
	e.n++
	return e.n
}

func (e *encoder) variable(name string) int {
	if id, ok := e.names[name]; ok {
		return id
	}
	id := e.fresh()
	e.names[name] = id
	return id
}

// lit returns a literal equivalent to x, adding defining clauses for every
// compound subformula.
func (e *encoder) lit(x Expr) int {
	switch x := x.(type) {
	case *Var:
		return e.variable(x.Name)
	case *NotExpr:
		return -e.lit(x.X)
	case Const:
		t := e.fresh()
		if x {
			e.clauses = append(e.clauses, []int{t})
		} else {
			e.clauses = append(e.clauses, []int{-t})
		}
		return t
	case *AndExpr:
		lits := e.lits(x.Xs)
		t := e.fresh()
		all := []int{t}
		for _, l := range lits {
			e.clauses = append(e.clauses, []int{-t, l})
			all = append(all, -l)
		}
		e.clauses = append(e.clauses, all)
		return t
	case *OrExpr:
		lits := e.lits(x.Xs)
		t := e.fresh()
		some := []int{-t}
		for _, l := range lits {
			e.clauses = append(e.clauses, []int{-l, t})
			some = append(some, l)
		}
		e.clauses = append(e.clauses, some)
		return t
	default:
		panic(x)
	}
}

func (e *encoder) lits(xs []Expr) []int {
	out := make([]int, len(xs))
	for i, x := range xs {
		out[i] = e.lit(x)
	}
	return out
}

type dpll struct {
	clauses [][]int
	assign  []int8 // 1 true, -1 false, 0 unassigned
	trail   []int
}

func (d *dpll) value(lit int) int8 {
	if lit < 0 {
		return -d.assign[-lit]
	}
	return d.assign[lit]
}

func (d *dpll) set(lit int) {
	if lit < 0 {
		d.assign[-lit] = -1
		d.trail = append(d.trail, -lit)
		return
	}
	d.assign[lit] = 1
	d.trail = append(d.trail, lit)
}

func (d *dpll) undo(mark int) {
	for len(d.trail) > mark {
		v := d.trail[len(d.trail)-1]
		d.trail = d.trail[:len(d.trail)-1]
		d.assign[v] = 0
	}
}

// propagate assigns the last free literal of every unit clause until
// nothing changes. It reports false on a falsified clause.
func (d *dpll) propagate() bool {
	for changed := true; changed; {
		changed = false
		for _, c := range d.clauses {
			free, last, satisfied := 0, 0, false
			for _, l := range c {
				switch d.value(l) {
				case 1:
					satisfied = true
				case 0:
					free++
					last = l
				}
				if satisfied {
					break
				}
			}
			if satisfied {
				continue
			}
			switch free {
			case 0:
				return false
			case 1:
				d.set(last)
				changed = true
			}
		}
	}
	return true
}

func (d *dpll) search() bool {
	mark := len(d.trail)
	if !d.propagate() {
		d.undo(mark)
		return false
	}
	v := 0
	for i := 1; i < len(d.assign); i++ {
		if d.assign[i] == 0 {
			v = i
			break
		}
	}
	if v == 0 {
		return true
	}
	for _, lit := range [2]int{v, -v} {
		branch := len(d.trail)
		d.set(lit)
		if d.search() {
			return true
		}
		d.undo(branch)
	}
	d.undo(mark)
	return false
}
