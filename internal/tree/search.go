package tree

import (
	"strings"

	"github.com/sahilm/fuzzy"
)

// Search returns the rows to show for a fuzzy query over node paths: every
// matching node plus its ancestors, in tree order, with those ancestors shown
// expanded. An empty query gives the fully collapsed projection.
func Search(roots []*Node, query string) []FlatNode {
	query = strings.TrimSpace(query)
	if query == "" {
		return Flatten(roots, nil)
	}

	// pre-order listing with the index of each node's parent row
	type row struct {
		node   *Node
		depth  int
		parent int
	}
	var all []row
	var collect func(nodes []*Node, depth, parent int)
	collect = func(nodes []*Node, depth, parent int) {
		for _, n := range nodes {
			all = append(all, row{node: n, depth: depth, parent: parent})
			if n.IsDir() {
				collect(n.Children, depth+1, len(all)-1)
			}
		}
	}
	collect(roots, 0, -1)

	paths := make([]string, len(all))
	for i, r := range all {
		paths[i] = r.node.Path
	}

	visible := make([]bool, len(all))
	open := make([]bool, len(all))
	for _, m := range fuzzy.Find(query, paths) {
		visible[m.Index] = true
		for p := all[m.Index].parent; p >= 0 && !open[p]; p = all[p].parent {
			visible[p] = true
			open[p] = true
		}
	}

	var rows []FlatNode
	for i, r := range all {
		if !visible[i] {
			continue
		}
		rows = append(rows, FlatNode{
			Node:        r.node,
			Depth:       r.depth,
			HasChildren: r.node.HasChildren(),
			Expanded:    open[i],
		})
	}
	return rows
}

// Search runs Search over the roots of t.
func (t *Tree) Search(query string) []FlatNode {
	return Search(t.Roots, query)
}
