// Package analysis computes the values a program can print at its sink. It
// attaches a path constraint to every assignment and branch, groups
// assignments by literal value and asks a SAT backend, per value, whether
// some choice of branch outcomes lets one of its assignments survive.
package analysis

import (
	"fmt"
	"sort"
	"strings"

	"github.com/speakeasy-api/openapi/sequencedmap"
	"github.com/speakeasy-api/sinkflow"
)

// Atom is a signed branch condition.
type Atom struct {
	Name    string
	Negated bool
}

func (a Atom) String() string {
	if a.Negated {
		return "!" + a.Name
	}
	return a.Name
}

// AtomSet is a set of atoms that remembers insertion order.
type AtomSet struct {
	atoms []Atom
	index map[Atom]struct{}
}

func newAtomSet() *AtomSet {
	return &AtomSet{index: make(map[Atom]struct{})}
}

// Add inserts a and reports whether it was new.
func (s *AtomSet) Add(a Atom) bool {
	if _, ok := s.index[a]; ok {
		return false
	}
	s.index[a] = struct{}{}
	s.atoms = append(s.atoms, a)
	return true
}

// Union adds every atom of o.
func (s *AtomSet) Union(o *AtomSet) {
	if o == nil {
		return
	}
	for _, a := range o.atoms {
		s.Add(a)
	}
}

// Has reports whether a is in the set.
func (s *AtomSet) Has(a Atom) bool {
	_, ok := s.index[a]
	return ok
}

// Len returns the number of atoms.
func (s *AtomSet) Len() int {
	return len(s.atoms)
}

// Atoms returns the atoms in insertion order.
func (s *AtomSet) Atoms() []Atom {
	return s.atoms
}

// Strings returns the rendered atoms sorted, for stable comparisons.
func (s *AtomSet) Strings() []string {
	out := make([]string, len(s.atoms))
	for i, a := range s.atoms {
		out[i] = a.String()
	}
	sort.Strings(out)
	return out
}

func (s *AtomSet) String() string {
	return "{" + strings.Join(s.Strings(), ", ") + "}"
}

// InvariantError reports a node the constraint walk reached more than once.
type InvariantError struct {
	Node   sinkflow.NodeID
	Kind   sinkflow.NodeKind
	Visits int
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("internal error: %s node %d visited %d times", e.Kind, e.Node, e.Visits)
}

// Paths holds the path constraints of a program and its value sites.
type Paths struct {
	prog        *sinkflow.Program
	constraints map[sinkflow.NodeID]*AtomSet
	sites       *sequencedmap.Map[int64, []sinkflow.NodeID]
	visits      map[sinkflow.NodeID]int
}

// Program returns the program the constraints were computed for.
func (p *Paths) Program() *sinkflow.Program {
	return p.prog
}

// Constraints returns the constraint set of a Block, If or Assignment node,
// or nil for any other node.
func (p *Paths) Constraints(id sinkflow.NodeID) *AtomSet {
	return p.constraints[id]
}

// Sites returns the Assignment nodes that assign v.
func (p *Paths) Sites(v int64) []sinkflow.NodeID {
	sites, _ := p.sites.Get(v)
	return sites
}

// Values returns every assigned literal in order of first assignment.
func (p *Paths) Values() []int64 {
	out := make([]int64, 0, p.sites.Len())
	for v := range p.sites.All() {
		out = append(out, v)
	}
	return out
}

// Visits returns how many times the walk entered id.
func (p *Paths) Visits(id sinkflow.NodeID) int {
	return p.visits[id]
}

// BuildPaths walks prog once, depth first, and records the constraint under
// which each statement's effect survives to the end of its block. prog is
// expected to be simplified already.
func BuildPaths(prog *sinkflow.Program, opts Options) (*Paths, error) {
	w := &walker{
		Paths: &Paths{
			prog:        prog,
			constraints: make(map[sinkflow.NodeID]*AtomSet),
			sites:       sequencedmap.New[int64, []sinkflow.NodeID](),
			visits:      make(map[sinkflow.NodeID]int),
		},
		qualified: opts.QualifiedAtoms,
		verify:    opts.VerifyVisits,
		log:       opts.logger(),
	}
	if !prog.Root.IsValid() {
		return w.Paths, nil
	}
	if err := w.visitBlock(prog.Root); err != nil {
		return nil, err
	}
	return w.Paths, nil
}

type walker struct {
	*Paths
	qualified bool
	verify    bool
	log       Logger
}

func (w *walker) enter(n *sinkflow.Node) error {
	w.visits[n.ID]++
	if w.verify && w.visits[n.ID] > 1 {
		return &InvariantError{Node: n.ID, Kind: n.Kind, Visits: w.visits[n.ID]}
	}
	return nil
}

func (w *walker) set(id sinkflow.NodeID) *AtomSet {
	s, ok := w.constraints[id]
	if !ok {
		s = newAtomSet()
		w.constraints[id] = s
	}
	return s
}

func (w *walker) visitBlock(id sinkflow.NodeID) error {
	n := w.prog.Node(id)
	if err := w.enter(n); err != nil {
		return err
	}
	set := w.set(id)
	if n.Parent.IsValid() {
		set.Union(w.constraints[n.Parent])
	}

	// earlier siblings whose effect a later branch may overwrite
	var buff []sinkflow.NodeID
	for _, c := range n.Children {
		child := w.prog.Node(c)
		switch child.Kind {
		case sinkflow.KindIf:
			name := w.atomName(c)
			for _, b := range buff {
				w.constrainSubtree(b, Atom{Name: name, Negated: true})
			}
			buff = append(buff, c)
			if err := w.visitIf(child, name); err != nil {
				return err
			}
		case sinkflow.KindAssignment:
			if err := w.visitAssignment(child, set); err != nil {
				return err
			}
			buff = append(buff, c)
		case sinkflow.KindDeclaration, sinkflow.KindSink:
			if err := w.enter(child); err != nil {
				return err
			}
		default:
			return fmt.Errorf("unexpected %s node %d in block %d", child.Kind, c, id)
		}
	}
	return nil
}

func (w *walker) visitIf(n *sinkflow.Node, name string) error {
	if err := w.enter(n); err != nil {
		return err
	}
	set := w.set(n.ID)
	set.Union(w.constraints[n.Parent])
	set.Add(Atom{Name: name})
	w.log.Debugf("branch %d on %s: %s", n.ID, name, set)
	return w.visitBlock(w.prog.Body(n.ID).ID)
}

func (w *walker) visitAssignment(n *sinkflow.Node, block *AtomSet) error {
	if err := w.enter(n); err != nil {
		return err
	}
	v := w.prog.Literal(n.ID).Value
	sites, _ := w.sites.Get(v)
	w.sites.Set(v, append(sites, n.ID))
	w.set(n.ID).Union(block)
	return nil
}

// constrainSubtree adds a to id and to every constrained node below it.
// Statements inside an earlier branch body are overwritten by a later
// sibling branch just like the branch itself.
func (w *walker) constrainSubtree(id sinkflow.NodeID, a Atom) {
	var walk func(id sinkflow.NodeID)
	walk = func(id sinkflow.NodeID) {
		n := w.prog.Node(id)
		switch n.Kind {
		case sinkflow.KindBlock, sinkflow.KindIf, sinkflow.KindAssignment:
			if s, ok := w.constraints[id]; ok {
				s.Add(a)
			}
		default:
			return
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(id)
	w.log.Debugf("negated %s on node %d", a.Name, id)
}

// atomName names the condition of an If node. An indexed condition a[3]
// is named by its index alone unless qualified atoms are enabled.
func (w *walker) atomName(ifID sinkflow.NodeID) string {
	cond := w.prog.Condition(ifID)
	if cond.Kind == sinkflow.KindLookup && !w.qualified {
		return w.prog.Literal(cond.ID).Text
	}
	return cond.Text
}
