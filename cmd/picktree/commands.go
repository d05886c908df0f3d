package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/dustin/go-humanize"
	"golang.org/x/term"

	"github.com/hayeah/picktree/internal/config"
	"github.com/hayeah/picktree/internal/listing"
	"github.com/hayeah/picktree/internal/metrics"
	"github.com/hayeah/picktree/internal/metrics/chart"
	"github.com/hayeah/picktree/internal/tree"
)

type TreeCmd struct {
	All     bool `arg:"-a,--all" help:"open every directory, not only expanded ones"`
	Sizes   bool `arg:"-s,--sizes" help:"show file and directory sizes"`
	NoMarks bool `arg:"--no-marks" help:"omit selection marks"`
}

type LsCmd struct {
	Absolute bool `arg:"-a,--absolute" help:"print absolute paths"`
}

type OutCmd struct {
	Counter string `arg:"--counter" default:"simple" help:"token counter: simple, or a model name for tiktoken"`
	NoChart bool   `arg:"--no-chart" help:"do not print the token chart to stderr"`
}

type SummaryCmd struct {
	NoChart bool `arg:"--no-chart" help:"print totals only"`
}

type IgnoreCmd struct {
	Show *IgnoreShowCmd `arg:"subcommand:show" help:"Print the merged ignore rules"`
	Add  *IgnoreAddCmd  `arg:"subcommand:add" help:"Add an ignore rule"`
}

type IgnoreShowCmd struct{}

type IgnoreAddCmd struct {
	Category string `arg:"positional,required" help:"dirs, files or extensions"`
	Value    string `arg:"positional,required" help:"name or extension to ignore"`
	Global   bool   `arg:"--global" help:"edit the global ignore file instead of the project one"`
}

type ResetCmd struct{}

type RootsCmd struct{}

func (app *App) RunTree(cmd TreeCmd, w io.Writer) error {
	t, err := app.LoadTree()
	if err != nil {
		return err
	}
	opts := tree.DiagramOptions{
		Header: filepath.Base(string(app.Root)) + "/",
		Marks:  !cmd.NoMarks,
		Sizes:  cmd.Sizes,
	}
	if !cmd.All {
		opts.Expanded = t.ExpandedIDs()
	}
	return tree.WriteDiagram(w, t.Roots, opts)
}

func (app *App) RunLs(cmd LsCmd, w io.Writer) error {
	t, err := app.LoadTree()
	if err != nil {
		return err
	}
	for _, n := range t.SelectedFiles() {
		p := n.Path
		if cmd.Absolute {
			p = filepath.Join(string(app.Root), filepath.FromSlash(n.Path))
		}
		if _, err := fmt.Fprintln(w, p); err != nil {
			return err
		}
	}
	return nil
}

// RunOut writes every selected file to w, and a token chart to chartW.
func (app *App) RunOut(cmd OutCmd, w, chartW io.Writer) error {
	t, err := app.LoadTree()
	if err != nil {
		return err
	}
	counter, err := metrics.NewCounter(cmd.Counter)
	if err != nil {
		return err
	}
	collector := metrics.NewCollector(counter, runtime.NumCPU())
	defer collector.Wait()

	for _, n := range t.SelectedFiles() {
		content, err := os.ReadFile(filepath.Join(string(app.Root), filepath.FromSlash(n.Path)))
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", n.Path, err)
		}
		switch {
		case listing.IsLockFile(n.Path):
			content = []byte("[lock file omitted]\n")
		case listing.IsBinary(content):
			app.Logger.Warn("skipping binary file", "path", n.Path)
			content = []byte("[binary file omitted]\n")
		default:
			if err := collector.Add(n.Path, content); err != nil {
				return err
			}
		}
		if err := writeFileBlock(w, n.Path, content); err != nil {
			return err
		}
	}

	items := collector.Items()
	if cmd.NoChart {
		return nil
	}
	bars := make([]chart.Item, len(items))
	for i, it := range items {
		bars[i] = chart.Item{Path: it.Path, Value: it.Tokens}
	}
	return chart.Print(bars, chart.DefaultOptions(termWidth, chartW, "tokens"))
}

func writeFileBlock(w io.Writer, path string, content []byte) error {
	fence := "```"
	if _, err := fmt.Fprintf(w, "File: %s\n%s%s\n", path, fence, fenceLanguage(path)); err != nil {
		return err
	}
	if _, err := w.Write(content); err != nil {
		return err
	}
	if len(content) > 0 && content[len(content)-1] != '\n' {
		fmt.Fprintln(w)
	}
	_, err := fmt.Fprintf(w, "%s\n\n", fence)
	return err
}

var fenceLanguages = map[string]string{
	".go":   "go",
	".js":   "javascript",
	".ts":   "typescript",
	".tsx":  "tsx",
	".py":   "python",
	".rs":   "rust",
	".md":   "markdown",
	".json": "json",
	".yaml": "yaml",
	".yml":  "yaml",
	".toml": "toml",
	".sh":   "bash",
	".bash": "bash",
	".sql":  "sql",
}

func fenceLanguage(path string) string {
	return fenceLanguages[strings.ToLower(filepath.Ext(path))]
}

func (app *App) RunSummary(cmd SummaryCmd, w io.Writer) error {
	t, err := app.LoadTree()
	if err != nil {
		return err
	}
	s := t.Stats()
	fmt.Fprintf(w, "%d/%d files selected, %s of %s\n",
		s.SelectedFiles, s.Files,
		humanize.Bytes(uint64(s.SelectedBytes)), humanize.Bytes(uint64(s.TotalBytes)))
	if cmd.NoChart || s.SelectedFiles == 0 {
		return nil
	}

	var bars []chart.Item
	for _, n := range t.SelectedFiles() {
		bars = append(bars, chart.Item{Path: n.Path, Value: int(n.Size)})
	}
	fmt.Fprintln(w)
	return chart.Print(bars, chart.DefaultOptions(termWidth, w, "bytes"))
}

func (app *App) RunIgnore(cmd IgnoreCmd, w io.Writer) error {
	switch {
	case cmd.Add != nil:
		category, err := config.ParseCategory(cmd.Add.Category)
		if err != nil {
			return err
		}
		target := app.Paths.Project
		if cmd.Add.Global {
			target = app.Paths.Global
		}
		if err := config.AddRule(target, category, cmd.Add.Value); err != nil {
			return err
		}
		app.Logger.Info("added ignore rule", "file", target, "category", category, "value", cmd.Add.Value)
		return nil
	default:
		fmt.Fprintf(w, "# global:  %s\n# project: %s\n", app.Paths.Global, app.Paths.Project)
		return toml.NewEncoder(w).Encode(app.Rules.Config())
	}
}

func (app *App) RunReset(w io.Writer) error {
	if err := app.Store.ClearState(string(app.Root)); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "cleared selection for %s\n", app.Root)
	return err
}

func (app *App) RunRoots(w io.Writer) error {
	roots, err := app.Store.Roots()
	if err != nil {
		return err
	}
	for _, r := range roots {
		if _, err := fmt.Fprintln(w, r); err != nil {
			return err
		}
	}
	return nil
}

// termWidth returns the width of the terminal on stderr, or 80.
func termWidth() int {
	width, _, err := term.GetSize(int(os.Stderr.Fd()))
	if err != nil || width <= 0 {
		return 80
	}
	return width
}
