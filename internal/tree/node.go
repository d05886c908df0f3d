// Package tree holds the file-selection tree: building it from a raw listing,
// tri-state selection with propagation, flattening for display and width
// estimation. Everything here works on memory only.
package tree

import (
	"path"
	"path/filepath"
)

// Kind distinguishes files from directories.
type Kind string

const (
	KindFile Kind = "file"
	KindDir  Kind = "dir"
)

// Selection is the tri-state inclusion status of a node.
type Selection uint8

const (
	SelectNone Selection = iota
	SelectPartial
	SelectFull
)

func (s Selection) String() string {
	switch s {
	case SelectFull:
		return "full"
	case SelectPartial:
		return "partial"
	default:
		return "none"
	}
}

// Node is one file or directory. A directory exclusively owns its Children.
type Node struct {
	ID       string
	Name     string
	Path     string
	Kind     Kind
	Size     int64 // for directories, the sum of descendant file sizes
	Children []*Node

	Selection Selection
	Expanded  bool // display only
	Locked    bool // ignores propagation from ancestors
}

// IsDir reports whether n is a directory.
func (n *Node) IsDir() bool { return n.Kind == KindDir }

// HasChildren reports whether n is a directory with at least one child.
func (n *Node) HasChildren() bool { return n.Kind == KindDir && len(n.Children) > 0 }

// IsSelected reports whether n is fully selected.
func (n *Node) IsSelected() bool { return n.Selection == SelectFull }

// IsPartial reports whether n is a partially selected directory.
func (n *Node) IsPartial() bool { return n.Selection == SelectPartial }

// NodeID derives the id of the node at p. Equal paths give equal ids, so state
// keyed by id survives a rebuild.
func NodeID(p string) string {
	return path.Clean(filepath.ToSlash(p))
}

// Tree owns a forest of nodes and indexes them by id. The index holds no
// ownership: parents are recorded by id only.
type Tree struct {
	Roots []*Node

	byID     map[string]*Node
	parentOf map[string]string
}

func newTree() *Tree {
	return &Tree{
		byID:     make(map[string]*Node),
		parentOf: make(map[string]string),
	}
}

// Node returns the node with the given id.
func (t *Tree) Node(id string) (*Node, bool) {
	n, ok := t.byID[id]
	return n, ok
}

// Parent returns the parent of the node with the given id, if any.
func (t *Tree) Parent(id string) (*Node, bool) {
	pid, ok := t.parentOf[id]
	if !ok {
		return nil, false
	}
	return t.byID[pid], true
}

// Len returns the number of nodes in the tree.
func (t *Tree) Len() int { return len(t.byID) }

// Walk visits every node in pre-order. Returning false from fn skips the
// node's children.
func (t *Tree) Walk(fn func(n *Node, depth int) bool) {
	walkNodes(t.Roots, 0, fn)
}

func walkNodes(nodes []*Node, depth int, fn func(n *Node, depth int) bool) {
	for _, n := range nodes {
		if fn(n, depth) && n.IsDir() {
			walkNodes(n.Children, depth+1, fn)
		}
	}
}

// Stats summarizes a tree and its selection.
type Stats struct {
	Files         int
	Dirs          int
	SelectedFiles int
	TotalBytes    int64
	SelectedBytes int64
}

// Stats counts files, directories and selected bytes.
func (t *Tree) Stats() Stats {
	var s Stats
	t.Walk(func(n *Node, _ int) bool {
		if n.IsDir() {
			s.Dirs++
			return true
		}
		s.Files++
		s.TotalBytes += n.Size
		if n.IsSelected() {
			s.SelectedFiles++
			s.SelectedBytes += n.Size
		}
		return true
	})
	return s
}

// SelectedFiles returns the fully selected files in tree order.
func (t *Tree) SelectedFiles() []*Node {
	var files []*Node
	t.Walk(func(n *Node, _ int) bool {
		if !n.IsDir() && n.IsSelected() {
			files = append(files, n)
		}
		// a directory selected as None has no selected descendants
		return !n.IsDir() || n.Selection != SelectNone
	})
	return files
}
