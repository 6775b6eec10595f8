package sinkflow

// Simplify returns a copy of p in which every block keeps only its
// statements from the last Assignment onward. An Assignment overwrites
// everything before it in the same block; the If statements after it are
// conditional and stay. Blocks without an Assignment are kept whole. Nested
// If bodies are simplified the same way.
//
// Simplify is idempotent.
func Simplify(p *Program) *Program {
	out := p.Clone()
	if out.Root.IsValid() {
		out.simplifyBlock(out.Root)
	}
	return out
}

func (p *Program) simplifyBlock(id NodeID) {
	children := p.nodes[id].Children
	start := 0
	for i := len(children) - 1; i >= 0; i-- {
		if p.nodes[children[i]].Kind == KindAssignment {
			start = i
			break
		}
	}
	kept := children[start:]
	p.nodes[id].Children = kept
	for _, c := range kept {
		if p.nodes[c].Kind == KindIf {
			p.simplifyBlock(p.nodes[c].Children[1])
		}
	}
}
