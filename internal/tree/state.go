package tree

// NodeState is the persisted form of a node's flags.
type NodeState struct {
	Selected bool `json:"isSelected"`
	Partial  bool `json:"isPartial"`
	Expanded bool `json:"isExpanded"`
	Locked   bool `json:"isLocked"`
}

// State maps node ids to their flags.
type State map[string]NodeState

func stateOf(n *Node) NodeState {
	return NodeState{
		Selected: n.Selection == SelectFull,
		Partial:  n.Selection == SelectPartial,
		Expanded: n.Expanded,
		Locked:   n.Locked,
	}
}

func (s NodeState) selection() Selection {
	switch {
	case s.Selected:
		return SelectFull
	case s.Partial:
		return SelectPartial
	default:
		return SelectNone
	}
}

// IsZero reports whether every flag is cleared.
func (s NodeState) IsZero() bool {
	return s == NodeState{}
}

// Snapshot returns the flags of every node that has one set.
func (t *Tree) Snapshot() State {
	st := make(State)
	t.Walk(func(n *Node, _ int) bool {
		if ns := stateOf(n); !ns.IsZero() {
			st[n.ID] = ns
		}
		return true
	})
	return st
}

func (t *Tree) restore(prior State) {
	for id, ns := range prior {
		n, ok := t.byID[id]
		if !ok {
			continue
		}
		n.Expanded = ns.Expanded
		n.Locked = ns.Locked
		n.Selection = ns.selection()
		if n.Selection == SelectPartial && !n.HasChildren() {
			n.Selection = SelectNone
		}
	}
	reaggregate(t.Roots)
}
