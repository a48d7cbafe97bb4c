package book

import (
	"slices"
	"sort"
)

// NavigateToPath walks moves from root. It returns false the first time a
// label is missing from the current node's children.
func NavigateToPath(root *MoveNode, moves []string) (*MoveNode, bool) {
	if root == nil {
		return nil, false
	}

	node := root
	for _, move := range moves {
		child, ok := node.children[move]
		if !ok { // Line is not part of the book
			return nil, false
		}
		node = child
	}
	return node, true
}

// IsLegalInTree reports whether move is an authored continuation from node.
func IsLegalInTree(node *MoveNode, move string) bool {
	if node == nil {
		return false
	}
	_, ok := node.children[move]
	return ok
}

// PossibleMoves returns the labels of node's children in sorted order.
func PossibleMoves(node *MoveNode) []string {
	if node == nil {
		return []string{}
	}
	moves := make([]string, 0, len(node.children))
	for move := range node.children {
		moves = append(moves, move)
	}
	sort.Strings(moves)
	return moves
}

// Depth returns the length of the longest line below node.
func Depth(node *MoveNode) int {
	maxDepth := 0
	for _, child := range node.children {
		maxDepth = max(maxDepth, Depth(child)+1)
	}
	return maxDepth
}

// TerminalPaths enumerates every line from node to a node that is terminal or
// has no children. Siblings are visited in label order.
func TerminalPaths(node *MoveNode) [][]string {
	return terminalPaths(node, []string{})
}

func terminalPaths(node *MoveNode, current []string) [][]string {
	if node.Ends() {
		return [][]string{slices.Clone(current)}
	}

	paths := [][]string{}
	for _, move := range PossibleMoves(node) {
		line := append(slices.Clone(current), move)
		paths = append(paths, terminalPaths(node.children[move], line)...)
	}
	return paths
}
