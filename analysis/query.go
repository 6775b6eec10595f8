package analysis

import (
	"context"
	"fmt"
	"runtime/debug"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/speakeasy-api/sinkflow/sat"
)

// Formula builds the survival condition of value v inside prob: the
// disjunction, over every site assigning v, of the conjunction of that
// site's atoms. A site without atoms contributes true.
func (p *Paths) Formula(prob *sat.Problem, v int64) sat.Expr {
	sites := p.Sites(v)
	disj := make([]sat.Expr, 0, len(sites))
	for _, s := range sites {
		atoms := p.Constraints(s).Atoms()
		conj := make([]sat.Expr, 0, len(atoms))
		for _, a := range atoms {
			var x sat.Expr = prob.Var(a.Name)
			if a.Negated {
				x = sat.Not(x)
			}
			conj = append(conj, x)
		}
		disj = append(disj, sat.And(conj...))
	}
	return sat.Or(disj...)
}

// PossibleValues returns every value with a satisfiable survival condition.
// Each value is decided on a fresh sat.Problem; with opts.Workers > 1 the
// queries run concurrently, but the result order does not depend on it.
func (p *Paths) PossibleValues(ctx context.Context, opts Options) ([]int64, error) {
	values := p.Values()
	solver := opts.solver()
	log := opts.logger()

	var m *memo
	if opts.EnableMemo {
		m = newMemo()
	}

	possible := make([]bool, len(values))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(opts.Workers, 1))
	for i, v := range values {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			ok, err := p.query(v, solver, opts.SimplifyFormulas, m, log)
			if err != nil {
				return err
			}
			possible[i] = ok
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]int64, 0, len(values))
	for i, v := range values {
		if possible[i] {
			out = append(out, v)
		}
	}
	if opts.Order == OrderAscending {
		sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	}
	if m != nil && m.hits > 0 {
		log.Debugf("memo reused %d solver outcomes", m.hits)
	}
	return out, nil
}

// SolverPanicError reports a panic raised while deciding one value. It is
// an analyzer bug; Stack is the trace of the panicking goroutine.
type SolverPanicError struct {
	Value int64
	Panic any
	Stack []byte
}

func (e *SolverPanicError) Error() string {
	return fmt.Sprintf("internal error: solver panicked on value %d: %v", e.Value, e.Panic)
}

func (p *Paths) query(v int64, solver sat.Solver, simplify bool, m *memo, log Logger) (ok bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &SolverPanicError{Value: v, Panic: r, Stack: debug.Stack()}
		}
	}()

	prob := sat.NewProblem()
	f := p.Formula(prob, v)
	if simplify {
		f = sat.Simplify(f)
	}
	log = log.With("value", v)
	log.Debugf("formula %s", f)

	var key string
	if m != nil {
		var hit bool
		if key, ok, hit = m.lookup(f); hit {
			log.Debugf("memo hit: satisfiable=%v", ok)
			return ok, nil
		}
	}

	prob.Assert(f)
	model, ok := prob.Solve(solver)
	if ok {
		log.Debugf("satisfiable with %v", model)
	} else {
		log.Debugf("unsatisfiable")
	}
	if m != nil {
		m.store(key, ok)
	}
	return ok, nil
}
