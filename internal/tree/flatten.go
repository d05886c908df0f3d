package tree

import "github.com/hayeah/picktree/internal/set"

// FlatNode is one visible row. It refers to a node owned by the tree and is
// only valid until the tree is rebuilt.
type FlatNode struct {
	Node        *Node
	Depth       int
	HasChildren bool
	Expanded    bool
}

// Flatten lists the visible nodes of roots in pre-order. A node's children are
// visited only when its id is in expanded; collapsed subtrees are not walked.
func Flatten(roots []*Node, expanded *set.Set[string]) []FlatNode {
	var rows []FlatNode
	appendVisible(&rows, roots, 0, expanded)
	return rows
}

// Flatten lists the visible nodes of t. See Flatten.
func (t *Tree) Flatten(expanded *set.Set[string]) []FlatNode {
	return Flatten(t.Roots, expanded)
}

func appendVisible(rows *[]FlatNode, nodes []*Node, depth int, expanded *set.Set[string]) {
	for _, n := range nodes {
		open := expanded.Contains(n.ID)
		*rows = append(*rows, FlatNode{
			Node:        n,
			Depth:       depth,
			HasChildren: n.HasChildren(),
			Expanded:    open,
		})
		if open && n.HasChildren() {
			appendVisible(rows, n.Children, depth+1, expanded)
		}
	}
}

// ExpandedIDs collects the ids of nodes whose Expanded flag is set.
func (t *Tree) ExpandedIDs() *set.Set[string] {
	ids := set.NewSet[string]()
	t.Walk(func(n *Node, _ int) bool {
		if n.Expanded {
			ids.Add(n.ID)
		}
		return true
	})
	return ids
}
