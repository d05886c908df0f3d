// Package chart prints per-path totals as a horizontal bar chart. Small
// directories are folded into "dir/**" buckets.
package chart

import (
	"cmp"
	"fmt"
	"io"
	"path"
	"slices"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Item is one file and its value (tokens, bytes, ...).
type Item struct {
	Path  string
	Value int
}

// Options controls layout.
type Options struct {
	BarWidth     int        // 0 = 35% of the terminal, at most 30
	FillRune     rune       // default '█'
	ThresholdPct float64    // siblings below this share of the total are folded
	Unit         string     // shown in the summary line, e.g. "tokens"
	TermWidth    func() int // columns available
	Writer       io.Writer
}

// DefaultOptions returns the options used by the command line.
func DefaultOptions(termWidth func() int, w io.Writer, unit string) Options {
	return Options{
		FillRune:     '█',
		ThresholdPct: 1,
		Unit:         unit,
		TermWidth:    termWidth,
		Writer:       w,
	}
}

// Print writes the chart of items to opt.Writer.
func Print(items []Item, opt Options) error {
	if opt.FillRune == 0 {
		opt.FillRune = '█'
	}
	if opt.Unit == "" {
		opt.Unit = "tokens"
	}
	if opt.TermWidth == nil {
		opt.TermWidth = func() int { return 80 }
	}

	total := 0
	for _, it := range items {
		total += it.Value
	}
	root := buildDirTree(items)
	buckets := collapseSmallDirs(root, total, opt.ThresholdPct)
	for _, ln := range layoutChart(buckets, total, len(items), opt) {
		if _, err := fmt.Fprintln(opt.Writer, ln); err != nil {
			return err
		}
	}
	return nil
}

type dirNode struct {
	name     string
	isFile   bool
	value    int
	children map[string]*dirNode
}

func buildDirTree(items []Item) *dirNode {
	root := &dirNode{name: ".", children: map[string]*dirNode{}}
	for _, it := range items {
		parts := strings.Split(path.Clean(it.Path), "/")
		cur := root
		for i, part := range parts {
			next, ok := cur.children[part]
			if !ok {
				next = &dirNode{name: part, children: map[string]*dirNode{}}
				cur.children[part] = next
			}
			if i == len(parts)-1 {
				next.isFile = true
				next.value += it.Value
			}
			cur = next
		}
	}
	rollUp(root)
	return root
}

func rollUp(n *dirNode) int {
	if n.isFile {
		return n.value
	}
	sum := 0
	for _, c := range n.children {
		sum += rollUp(c)
	}
	n.value = sum
	return sum
}

type bucket struct {
	label string
	value int
}

func collapseSmallDirs(root *dirNode, total int, thresholdPct float64) []bucket {
	var out []bucket
	thresh := float64(total) * thresholdPct / 100

	var walk func(n *dirNode, prefix string)
	walk = func(n *dirNode, prefix string) {
		if n.isFile {
			out = append(out, bucket{label: prefix, value: n.value})
			return
		}
		small := 0
		for _, c := range n.children {
			if float64(c.value) < thresh {
				small += c.value
				continue
			}
			walk(c, path.Join(prefix, c.name))
		}
		if small > 0 {
			out = append(out, bucket{label: path.Join(prefix, "**"), value: small})
		}
	}
	walk(root, "")
	return out
}

func layoutChart(buckets []bucket, total, fileCount int, opt Options) []string {
	if len(buckets) == 0 || total == 0 {
		return []string{fmt.Sprintf("No %s recorded", opt.Unit)}
	}
	const pctW, valueW, gapW = 6, 8, 2

	// smallest first; the largest ends up next to the total
	slices.SortFunc(buckets, func(a, b bucket) int {
		if c := cmp.Compare(a.value, b.value); c != 0 {
			return c
		}
		return cmp.Compare(a.label, b.label)
	})

	termW := opt.TermWidth()
	barW := opt.BarWidth
	if barW <= 0 {
		barW = min(int(float64(termW)*0.35), 30)
	}
	labelW := max(termW-(barW+pctW+valueW+gapW*3), 8)

	maxValue := buckets[len(buckets)-1].value
	fill := string(opt.FillRune)

	var lines []string
	for _, b := range buckets {
		barLen := int(float64(b.value)/float64(maxValue)*float64(barW) + 0.5)
		if barLen == 0 && b.value > 0 {
			barLen = 1
		}
		lines = append(lines, row(strings.Repeat(fill, barLen), pct(b.value, total), b.value, trimLeft(b.label, labelW), barW, valueW))
	}
	lines = append(lines, row(strings.Repeat("─", barW), 100, total, "TOTAL", barW, valueW))
	lines = append(lines, fmt.Sprintf("\nSummary: %d files, %d %s", fileCount, total, opt.Unit))
	return lines
}

func row(bar string, pct float64, value int, label string, barW, valueW int) string {
	return fmt.Sprintf("%s  %5.1f%%  %*d  %s",
		runewidth.FillRight(bar, barW), pct, valueW, value, label)
}

// trimLeft shortens s to at most w columns, keeping its end.
func trimLeft(s string, w int) string {
	if runewidth.StringWidth(s) <= w {
		return s
	}
	runes := []rune(s)
	width := 1 // the ellipsis
	i := len(runes)
	for i > 0 {
		rw := runewidth.RuneWidth(runes[i-1])
		if width+rw > w {
			break
		}
		width += rw
		i--
	}
	return "…" + string(runes[i:])
}

func pct(part, total int) float64 { return float64(part) * 100 / float64(total) }
