package sinkflow

import "strings"

// String renders the tree as an S-expression, one statement per line:
//
//	(block
//	  (int x)
//	  (= x 1)
//	  (if c
//	    (block
//	      (= x 2)))
//	  (sink x))
func (p *Program) String() string {
	if !p.Root.IsValid() {
		return "<empty>"
	}
	var b strings.Builder
	p.writeNode(&b, p.Root, 0)
	return b.String()
}

// SExpr renders the subtree rooted at id.
func (p *Program) SExpr(id NodeID) string {
	var b strings.Builder
	p.writeNode(&b, id, 0)
	return b.String()
}

func (p *Program) writeNode(b *strings.Builder, id NodeID, depth int) {
	n := p.Node(id)
	switch n.Kind {
	case KindBlock:
		b.WriteString("(block")
		for _, c := range n.Children {
			newline(b, depth+1)
			p.writeNode(b, c, depth+1)
		}
		b.WriteByte(')')
	case KindIf:
		b.WriteString("(if ")
		p.writeNode(b, n.Children[0], depth)
		newline(b, depth+1)
		p.writeNode(b, n.Children[1], depth+1)
		b.WriteByte(')')
	case KindDeclaration:
		b.WriteString("(int ")
		p.writeNode(b, n.Children[0], depth)
		b.WriteByte(')')
	case KindAssignment:
		b.WriteString("(= ")
		p.writeNode(b, n.Children[0], depth)
		b.WriteByte(' ')
		p.writeNode(b, n.Children[1], depth)
		b.WriteByte(')')
	case KindLookup:
		p.writeNode(b, n.Children[0], depth)
		b.WriteByte('[')
		p.writeNode(b, n.Children[1], depth)
		b.WriteByte(']')
	case KindVarName, KindNumber:
		b.WriteString(n.Text)
	case KindSink:
		b.WriteString("(sink ")
		p.writeNode(b, n.Children[0], depth)
		b.WriteByte(')')
	}
}

func newline(b *strings.Builder, depth int) {
	b.WriteByte('\n')
	b.WriteString(strings.Repeat("  ", depth))
}
