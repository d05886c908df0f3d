package tree

import (
	"fmt"
	"path"

	"github.com/hayeah/picktree/ignore"
)

// Entry is one item of the raw listing supplied by a filesystem provider.
type Entry struct {
	Name     string  `json:"name"`
	Path     string  `json:"path"`
	Kind     Kind    `json:"kind,omitempty"`
	Size     int64   `json:"size,omitempty"`
	Children []Entry `json:"children,omitempty"`
}

// Build constructs a tree from entries, dropping every entry (and its subtree)
// excluded by rules. All flags start cleared.
func Build(entries []Entry, rules ignore.RuleSet) (*Tree, error) {
	return BuildWithState(entries, rules, nil)
}

// BuildWithState is Build followed by restoring flags from prior, keyed by id.
// Unknown ids in prior are ignored. Directory selection is re-aggregated from
// the restored children so it stays consistent when the listing has changed.
func BuildWithState(entries []Entry, rules ignore.RuleSet, prior State) (*Tree, error) {
	b := &builder{
		tree:      newTree(),
		rules:     rules,
		ancestors: make(map[string]bool),
	}
	roots, _, err := b.buildLevel(entries, "", "")
	if err != nil {
		return nil, err
	}
	t := b.tree
	t.Roots = roots
	if len(prior) > 0 {
		t.restore(prior)
	}
	return t, nil
}

type builder struct {
	tree      *Tree
	rules     ignore.RuleSet
	ancestors map[string]bool // ids on the path from the root to the current entry
}

// buildLevel builds the surviving nodes of entries and returns them with the
// sum of their sizes.
func (b *builder) buildLevel(entries []Entry, parentID, parentPath string) ([]*Node, int64, error) {
	var (
		nodes []*Node
		total int64
	)
	for _, e := range entries {
		n, err := b.buildNode(e, parentID, parentPath)
		if err != nil {
			return nil, 0, err
		}
		if n == nil {
			continue
		}
		nodes = append(nodes, n)
		total += n.Size
	}
	return nodes, total, nil
}

func (b *builder) buildNode(e Entry, parentID, parentPath string) (*Node, error) {
	kind := e.Kind
	if kind == "" {
		kind = KindFile
		if len(e.Children) > 0 {
			kind = KindDir
		}
	}

	p := e.Path
	if p == "" {
		p = path.Join(parentPath, e.Name)
	}
	name := e.Name
	if name == "" {
		name = path.Base(NodeID(p))
	}

	if ignore.IsExcluded(name, kind == KindDir, b.rules) {
		return nil, nil
	}

	id := NodeID(p)
	if b.ancestors[id] {
		return nil, fmt.Errorf("%w: %s", ErrCycleDetected, p)
	}
	if _, ok := b.tree.byID[id]; ok {
		return nil, fmt.Errorf("%w: %s", ErrDuplicatePath, p)
	}

	n := &Node{
		ID:   id,
		Name: name,
		Path: p,
		Kind: kind,
	}
	b.tree.byID[id] = n
	if parentID != "" {
		b.tree.parentOf[id] = parentID
	}

	if kind == KindFile {
		n.Size = max(e.Size, 0)
		return n, nil
	}

	b.ancestors[id] = true
	children, size, err := b.buildLevel(e.Children, id, p)
	delete(b.ancestors, id)
	if err != nil {
		return nil, err
	}
	n.Children = children
	n.Size = size
	return n, nil
}
