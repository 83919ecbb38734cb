package thread

import "github.com/fragmede/hackerterm/internal/api"

// FlatNode is a comment flattened from the tree for display.
type FlatNode struct {
	Comment *api.Comment
	Depth   int
}

// Flatten converts a comment forest into pre-order: each comment is followed
// by its whole subtree before its next sibling. Roots are depth 0 entries
// when resolved at depth 0.
func Flatten(roots []*api.Comment) []FlatNode {
	result := make([]FlatNode, 0, Count(roots))

	var walk func(c *api.Comment)
	walk = func(c *api.Comment) {
		result = append(result, FlatNode{Comment: c, Depth: c.Depth})
		for _, kid := range c.Children {
			walk(kid)
		}
	}

	for _, root := range roots {
		walk(root)
	}
	return result
}

// Count returns the number of comments in the forest.
func Count(roots []*api.Comment) int {
	n := 0
	for _, c := range roots {
		n += 1 + Count(c.Children)
	}
	return n
}

// FindParentIndex returns the index of the parent comment in the flat list,
// or -1 when the current node is a root or out of range.
func FindParentIndex(nodes []FlatNode, currentIdx int) int {
	if currentIdx < 0 || currentIdx >= len(nodes) {
		return -1
	}
	parentID := nodes[currentIdx].Comment.Parent
	for i := currentIdx - 1; i >= 0; i-- {
		if nodes[i].Comment.ID == parentID {
			return i
		}
	}
	return -1
}
