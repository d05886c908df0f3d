package tree

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"

	"github.com/hayeah/picktree/internal/set"
)

// DiagramOptions controls WriteDiagram.
type DiagramOptions struct {
	Header   string           // printed on the first line when not empty
	Marks    bool             // prefix rows with [x], [-] or [ ]
	Sizes    bool             // append human-readable sizes
	Expanded *set.Set[string] // when set, only expanded directories are opened
}

// WriteDiagram writes roots as an indented tree using box-drawing connectors.
func WriteDiagram(w io.Writer, roots []*Node, opts DiagramOptions) error {
	if opts.Header != "" {
		if _, err := fmt.Fprintln(w, opts.Header); err != nil {
			return err
		}
	}
	return writeDiagramLevel(w, roots, "", opts)
}

func writeDiagramLevel(w io.Writer, nodes []*Node, prefix string, opts DiagramOptions) error {
	for i, n := range nodes {
		isLast := i == len(nodes)-1
		connector := "├── "
		if isLast {
			connector = "└── "
		}

		line := prefix + connector
		if opts.Marks {
			line += selectionMark(n.Selection) + " "
		}
		line += n.Name
		if n.IsDir() {
			line += "/"
		}
		if n.Locked {
			line += " (locked)"
		}
		if opts.Sizes {
			line += " " + humanize.Bytes(uint64(n.Size))
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}

		if !n.HasChildren() {
			continue
		}
		if opts.Expanded != nil && !opts.Expanded.Contains(n.ID) {
			continue
		}
		childPrefix := prefix + "│   "
		if isLast {
			childPrefix = prefix + "    "
		}
		if err := writeDiagramLevel(w, n.Children, childPrefix, opts); err != nil {
			return err
		}
	}
	return nil
}

func selectionMark(s Selection) string {
	switch s {
	case SelectFull:
		return "[x]"
	case SelectPartial:
		return "[-]"
	default:
		return "[ ]"
	}
}
