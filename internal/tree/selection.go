package tree

import "fmt"

// SetSelection sets the node with the given id to Full (selected) or None and
// propagates the change. See (*Tree).SetSelection.
func SetSelection(t *Tree, id string, selected bool) error {
	return t.SetSelection(id, selected)
}

// SetSelection sets the node with the given id to Full or None.
//
// Unlocked descendants take the same state; locked ones keep theirs, but their
// own descendants are still visited. The target itself is set even when locked.
// Every directory on the way is then recomputed from its children: first the
// target's subtree bottom-up, then each ancestor up to the root.
func (t *Tree) SetSelection(id string, selected bool) error {
	target, ok := t.byID[id]
	if !ok {
		return fmt.Errorf("set selection of %q: %w", id, ErrNotFound)
	}

	want := SelectNone
	if selected {
		want = SelectFull
	}

	for _, child := range target.Children {
		propagateDown(child, want)
	}
	if target.HasChildren() {
		// equals want unless a locked descendant disagrees
		target.Selection = aggregate(target.Children)
	} else {
		target.Selection = want
	}

	for pid, ok := t.parentOf[id]; ok; pid, ok = t.parentOf[pid] {
		parent := t.byID[pid]
		parent.Selection = aggregate(parent.Children)
	}
	return nil
}

// Toggle selects the node unless it is already fully selected, in which case
// it deselects it. A partial directory becomes Full.
func (t *Tree) Toggle(id string) error {
	n, ok := t.byID[id]
	if !ok {
		return fmt.Errorf("toggle %q: %w", id, ErrNotFound)
	}
	return t.SetSelection(id, !n.IsSelected())
}

// SelectAll sets every root, and so every unlocked node, to Full or None.
func (t *Tree) SelectAll(selected bool) {
	for _, root := range t.Roots {
		// roots always exist in the index
		_ = t.SetSelection(root.ID, selected)
	}
}

// SetLocked marks the node as locked or unlocked. Selection is unchanged.
func (t *Tree) SetLocked(id string, locked bool) error {
	n, ok := t.byID[id]
	if !ok {
		return fmt.Errorf("lock %q: %w", id, ErrNotFound)
	}
	n.Locked = locked
	return nil
}

// SetExpanded sets the display flag of the node.
func (t *Tree) SetExpanded(id string, expanded bool) error {
	n, ok := t.byID[id]
	if !ok {
		return fmt.Errorf("expand %q: %w", id, ErrNotFound)
	}
	n.Expanded = expanded
	return nil
}

func propagateDown(n *Node, want Selection) {
	for _, child := range n.Children {
		propagateDown(child, want)
	}
	if n.HasChildren() {
		n.Selection = aggregate(n.Children)
		return
	}
	if !n.Locked {
		n.Selection = want
	}
}

// aggregate derives a directory's state from its children.
func aggregate(children []*Node) Selection {
	full, none := true, true
	for _, c := range children {
		switch c.Selection {
		case SelectFull:
			none = false
		case SelectNone:
			full = false
		default:
			return SelectPartial
		}
		if !full && !none {
			return SelectPartial
		}
	}
	if full && len(children) > 0 {
		return SelectFull
	}
	return SelectNone
}

// reaggregate recomputes every directory with children bottom-up.
func reaggregate(nodes []*Node) {
	for _, n := range nodes {
		if !n.HasChildren() {
			continue
		}
		reaggregate(n.Children)
		n.Selection = aggregate(n.Children)
	}
}
