package book

import "maps"

// DefaultWeight is used for selection whenever a node carries no weight.
const DefaultWeight = 0.5

// MoveNode is a node of an authored opening tree. Nodes are built once by the
// loader and never mutated afterwards, so they are safe to share between sessions.
type MoveNode struct {
	move       string // "" only at the root
	annotation string
	children   map[string]*MoveNode
	weight     float64
	hasWeight  bool
	terminal   bool
}

// Move returns the label of the move leading to this node, "" at the root.
func (n *MoveNode) Move() string {
	return n.move
}

func (n *MoveNode) Annotation() string {
	return n.annotation
}

// Weight returns the authored relative weight, if any.
func (n *MoveNode) Weight() (float64, bool) {
	return n.weight, n.hasWeight
}

// EffectiveWeight returns the authored weight or DefaultWeight when absent.
func (n *MoveNode) EffectiveWeight() float64 {
	if !n.hasWeight {
		return DefaultWeight
	}
	return n.weight
}

// Terminal reports whether the author marked this node as the end of a line.
func (n *MoveNode) Terminal() bool {
	return n.terminal
}

func (n *MoveNode) IsLeaf() bool {
	return len(n.children) == 0
}

// Ends reports whether reaching this node concludes the drill.
func (n *MoveNode) Ends() bool {
	return n.terminal || n.IsLeaf()
}

// Child returns the node reached by playing move from n.
func (n *MoveNode) Child(move string) (*MoveNode, bool) {
	child, ok := n.children[move]
	return child, ok
}

// Children returns a copy of the label to child mapping.
func (n *MoveNode) Children() map[string]*MoveNode {
	if n.children == nil {
		return map[string]*MoveNode{}
	}
	return maps.Clone(n.children)
}
