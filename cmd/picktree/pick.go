package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"

	"github.com/hayeah/picktree/internal/tree"
)

type PickCmd struct{}

// ExitState indicates how the picker is exiting
type ExitState int

const (
	ExitStateNone    ExitState = iota // Not exiting
	ExitStateAbort                    // Exiting without saving (ESC, Ctrl+C)
	ExitStateConfirm                  // Exiting with saving (Enter)
)

var (
	cursorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	lockedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	statusStyle = lipgloss.NewStyle().Faint(true)
)

const pickUsage = "↑/↓ move, →/← open/close, space toggle, ctrl+l lock, ctrl+a/ctrl+n all/none, enter save, esc abort"

type pickModel struct {
	tree *tree.Tree

	textInput  textinput.Model
	searchTerm string

	rows      []tree.FlatNode
	nameWidth int // columns reserved for indentation and names
	cursor    int
	exitState ExitState
	err       error

	viewport viewport.Model
	ready    bool
}

func newPickModel(t *tree.Tree) pickModel {
	ti := textinput.New()
	ti.Placeholder = "Type to fuzzy-search..."
	ti.Prompt = "> "
	ti.CharLimit = 0
	ti.Focus()

	m := pickModel{
		tree:      t,
		textInput: ti,
		nameWidth: tree.EstimateWidth(t.Roots, tree.CellMetrics),
		viewport:  viewport.New(0, 0),
	}
	m.refresh()
	return m
}

// RunPick runs the picker and saves the selection when it is confirmed.
func (app *App) RunPick(PickCmd) error {
	t, err := app.LoadTree()
	if err != nil {
		return err
	}

	// stdout stays free for piping
	p := tea.NewProgram(newPickModel(t), tea.WithOutput(os.Stderr), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return err
	}
	m, ok := final.(pickModel)
	if !ok {
		return fmt.Errorf("could not get final model state")
	}
	if m.err != nil {
		return m.err
	}
	if m.exitState != ExitStateConfirm {
		app.Logger.Debug("selection discarded")
		return nil
	}
	if err := app.SaveTree(t); err != nil {
		return err
	}
	s := t.Stats()
	fmt.Fprintf(os.Stderr, "saved: %d files, %s\n", s.SelectedFiles, humanize.Bytes(uint64(s.SelectedBytes)))
	return nil
}

func (m pickModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m pickModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.exitState != ExitStateNone {
		return m, tea.Quit
	}

	var (
		cmd  tea.Cmd
		cmds []tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		headerHeight := lipgloss.Height(m.textInput.View()) + 1
		footerHeight := 3
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-headerHeight-footerHeight, 1)
		m.viewport.YPosition = headerHeight
		m.ready = true
		m.render()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.exitState = ExitStateAbort
			return m, tea.Quit

		case "enter":
			m.exitState = ExitStateConfirm
			return m, tea.Quit

		case "up":
			m.moveCursor(m.cursor - 1)
			return m, nil

		case "down":
			m.moveCursor(m.cursor + 1)
			return m, nil

		case "pgup":
			m.moveCursor(m.cursor - max(m.viewport.Height/2, 1))
			return m, nil

		case "pgdown":
			m.moveCursor(m.cursor + max(m.viewport.Height/2, 1))
			return m, nil

		case "home":
			m.moveCursor(0)
			return m, nil

		case "end":
			m.moveCursor(len(m.rows) - 1)
			return m, nil

		case "right":
			if row, ok := m.current(); ok && row.HasChildren && m.searchTerm == "" {
				m.apply(m.tree.SetExpanded(row.Node.ID, true))
			}
			return m, nil

		case "left":
			m.collapseOrParent()
			return m, nil

		case " ":
			if row, ok := m.current(); ok {
				m.apply(m.tree.Toggle(row.Node.ID))
			}
			return m, nil

		case "ctrl+l":
			if row, ok := m.current(); ok {
				m.apply(m.tree.SetLocked(row.Node.ID, !row.Node.Locked))
			}
			return m, nil

		case "ctrl+a":
			m.tree.SelectAll(true)
			m.refresh()
			return m, nil

		case "ctrl+n":
			m.tree.SelectAll(false)
			m.refresh()
			return m, nil
		}
	}

	m.textInput, cmd = m.textInput.Update(msg)
	cmds = append(cmds, cmd)

	if term := m.textInput.Value(); term != m.searchTerm {
		m.searchTerm = term
		m.cursor = 0
		m.refresh()
	}

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func (m pickModel) View() string {
	if !m.ready {
		return "Initializing..."
	}

	s := m.tree.Stats()
	status := fmt.Sprintf("%d/%d rows, %d/%d files selected, %s",
		len(m.rows), m.tree.Len(), s.SelectedFiles, s.Files, humanize.Bytes(uint64(s.SelectedBytes)))
	if m.err != nil {
		status += " | " + m.err.Error()
	}
	return fmt.Sprintf("%s\n%s\n%s\n%s",
		m.textInput.View(), m.viewport.View(), statusStyle.Render(status), statusStyle.Render(pickUsage))
}

func (m *pickModel) current() (tree.FlatNode, bool) {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return tree.FlatNode{}, false
	}
	return m.rows[m.cursor], true
}

// apply records err and redraws.
func (m *pickModel) apply(err error) {
	m.err = err
	m.refresh()
}

func (m *pickModel) collapseOrParent() {
	row, ok := m.current()
	if !ok {
		return
	}
	if row.HasChildren && row.Expanded && m.searchTerm == "" {
		m.apply(m.tree.SetExpanded(row.Node.ID, false))
		return
	}
	parent, ok := m.tree.Parent(row.Node.ID)
	if !ok {
		return
	}
	for i, r := range m.rows {
		if r.Node == parent {
			m.moveCursor(i)
			return
		}
	}
}

func (m *pickModel) moveCursor(to int) {
	if len(m.rows) == 0 {
		m.cursor = 0
		return
	}
	m.cursor = min(max(to, 0), len(m.rows)-1)
	m.render()
	m.ensureCursorVisible()
}

// refresh recomputes the visible rows and redraws.
func (m *pickModel) refresh() {
	if m.searchTerm == "" {
		m.rows = m.tree.Flatten(m.tree.ExpandedIDs())
	} else {
		m.rows = m.tree.Search(m.searchTerm)
	}
	m.cursor = min(m.cursor, max(len(m.rows)-1, 0))
	m.render()
	m.ensureCursorVisible()
}

func (m *pickModel) render() {
	var sb strings.Builder
	for i, row := range m.rows {
		line := m.formatRow(row)
		if i == m.cursor {
			line = cursorStyle.Render(line)
		} else if row.Node.Locked {
			line = lockedStyle.Render(line)
		}
		sb.WriteString(line + "\n")
	}
	m.viewport.SetContent(sb.String())
}

func (m *pickModel) formatRow(row tree.FlatNode) string {
	n := row.Node

	arrow := "  "
	if row.HasChildren {
		arrow = "▸ "
		if row.Expanded {
			arrow = "▾ "
		}
	}
	mark := "[ ]"
	switch n.Selection {
	case tree.SelectFull:
		mark = "[x]"
	case tree.SelectPartial:
		mark = "[-]"
	}
	name := n.Name
	if n.IsDir() {
		name += "/"
	}

	label := strings.Repeat("  ", row.Depth) + arrow + mark + " " + name
	line := runewidth.FillRight(label, m.nameWidth) + "  " + humanize.Bytes(uint64(n.Size))
	if n.Locked {
		line += " (locked)"
	}
	return line
}

func (m *pickModel) ensureCursorVisible() {
	if m.viewport.Height <= 0 {
		return
	}
	top := m.viewport.YOffset
	bottom := top + m.viewport.Height - 1
	if m.cursor < top {
		m.viewport.SetYOffset(m.cursor)
	} else if m.cursor > bottom {
		m.viewport.SetYOffset(m.cursor - m.viewport.Height + 1)
	}
}
