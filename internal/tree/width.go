package tree

import "github.com/mattn/go-runewidth"

// WidthMetrics are the constants of the width heuristic.
type WidthMetrics struct {
	Indent      int // per depth level
	CharWidth   int // per display cell of the name
	BasePadding int // checkbox, icon and margins
	Min         int
	Max         int
}

var (
	// PixelMetrics size a column in pixels.
	PixelMetrics = WidthMetrics{Indent: 16, CharWidth: 8, BasePadding: 56, Min: 200, Max: 640}
	// CellMetrics size a column in terminal cells.
	CellMetrics = WidthMetrics{Indent: 2, CharWidth: 1, BasePadding: 8, Min: 24, Max: 80}
)

// EstimateWidth returns the width needed to show the widest row of roots,
// clamped to [m.Min, m.Max]. Every node counts, expanded or not, so collapsing
// a subtree never shrinks the column.
func EstimateWidth(roots []*Node, m WidthMetrics) int {
	widest := 0
	walkNodes(roots, 0, func(n *Node, depth int) bool {
		w := depth*m.Indent + runewidth.StringWidth(n.Name)*m.CharWidth + m.BasePadding
		widest = max(widest, w)
		return true
	})
	return min(max(widest, m.Min), m.Max)
}
