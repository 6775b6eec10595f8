package sinkflow

// NodeID identifies a node within a Program's arena.
type NodeID uint32

// NoNodeID is the zero sentinel; it never names a node.
const NoNodeID NodeID = 0

// IsValid reports whether id names a node.
func (id NodeID) IsValid() bool { return id != NoNodeID }

// NodeKind is the tag of a node. Child arity is fixed per kind:
//
//	Block        any number of statements
//	If           condition (Lookup or Number), body (Block)
//	Declaration  VarName
//	Assignment   VarName, Number
//	Lookup       VarName, Number
//	VarName      leaf
//	Number       leaf
//	Sink         VarName
type NodeKind int

const (
	KindBlock NodeKind = iota
	KindIf
	KindDeclaration
	KindAssignment
	KindLookup
	KindVarName
	KindNumber
	KindSink
)

func (k NodeKind) String() string {
	switch k {
	case KindBlock:
		return "Block"
	case KindIf:
		return "If"
	case KindDeclaration:
		return "Declaration"
	case KindAssignment:
		return "Assignment"
	case KindLookup:
		return "Lookup"
	case KindVarName:
		return "VarName"
	case KindNumber:
		return "Number"
	case KindSink:
		return "Sink"
	default:
		panic(k)
	}
}

// Pos is the source position of the token a node was built from.
type Pos struct {
	Offset int
	Line   int
	Col    int
}

// Node is one entry of the arena. Children are owned; Parent is a
// back-reference used for constraint lookup only.
type Node struct {
	ID       NodeID
	Kind     NodeKind
	Text     string
	Parent   NodeID
	Children []NodeID
	Pos      Pos

	// Value holds the parsed literal of Number nodes.
	Value int64
}

// Program is a parsed source: an arena of nodes rooted at a Block.
type Program struct {
	nodes []Node
	Root  NodeID

	// Gaps lists characters the lexer could not classify.
	Gaps []*LexError
}

func newProgram() *Program {
	// slot 0 backs NoNodeID
	return &Program{nodes: make([]Node, 1, 64)}
}

func (p *Program) add(kind NodeKind, text string, parent NodeID, pos Pos) NodeID {
	id := NodeID(len(p.nodes))
	p.nodes = append(p.nodes, Node{
		ID:     id,
		Kind:   kind,
		Text:   text,
		Parent: parent,
		Pos:    pos,
	})
	if parent.IsValid() {
		p.nodes[parent].Children = append(p.nodes[parent].Children, id)
	}
	return id
}

// Node returns the node for id, or nil if id is out of range.
func (p *Program) Node(id NodeID) *Node {
	if !id.IsValid() || int(id) >= len(p.nodes) {
		return nil
	}
	return &p.nodes[id]
}

// Len returns the number of arena slots in use, including nodes a rewrite
// detached from the tree.
func (p *Program) Len() int {
	return len(p.nodes) - 1
}

// Condition returns the condition subtree of an If node.
func (p *Program) Condition(ifID NodeID) *Node {
	return p.Node(p.nodes[ifID].Children[0])
}

// Body returns the body block of an If node.
func (p *Program) Body(ifID NodeID) *Node {
	return p.Node(p.nodes[ifID].Children[1])
}

// Literal returns the Number child of an Assignment or Lookup node.
func (p *Program) Literal(id NodeID) *Node {
	return p.Node(p.nodes[id].Children[1])
}

// Walk visits the tree reachable from the root in depth-first pre-order.
// Returning false from fn skips the node's children.
func (p *Program) Walk(fn func(n *Node) bool) {
	var walk func(id NodeID)
	walk = func(id NodeID) {
		n := p.Node(id)
		if !fn(n) {
			return
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	if p.Root.IsValid() {
		walk(p.Root)
	}
}

// Clone returns a deep copy of p.
func (p *Program) Clone() *Program {
	nodes := make([]Node, len(p.nodes))
	copy(nodes, p.nodes)
	for i := range nodes {
		if nodes[i].Children != nil {
			nodes[i].Children = append([]NodeID(nil), nodes[i].Children...)
		}
	}
	gaps := append([]*LexError(nil), p.Gaps...)
	return &Program{nodes: nodes, Root: p.Root, Gaps: gaps}
}
