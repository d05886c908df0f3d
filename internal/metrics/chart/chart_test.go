package chart

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func constantTermWidth(cols int) func() int { return func() int { return cols } }

//	a/big.go  : 900
//	a/small.go:  20
//	x/y/z.go  :  50
func sampleItems() []Item {
	return []Item{
		{Path: "a/big.go", Value: 900},
		{Path: "a/small.go", Value: 20},
		{Path: "x/y/z.go", Value: 50},
	}
}

func TestBuildDirTreeRollUp(t *testing.T) {
	assert := assert.New(t)

	root := buildDirTree(sampleItems())
	assert.Equal(970, root.value)

	aDir := root.children["a"]
	require.NotNil(t, aDir)
	assert.Equal(920, aDir.value)
	assert.False(aDir.isFile)
	assert.True(aDir.children["big.go"].isFile)
}

func TestCollapseSmallDirsThreshold(t *testing.T) {
	assert := assert.New(t)

	buckets := collapseSmallDirs(buildDirTree(sampleItems()), 970, 5)

	var labels []string
	for _, b := range buckets {
		labels = append(labels, b.label)
	}
	assert.ElementsMatch([]string{"a/big.go", "a/**", "x/y/z.go"}, labels)
}

func TestCollapseSmallDirsAtRoot(t *testing.T) {
	items := []Item{
		{Path: "main.go", Value: 990},
		{Path: "tiny/a.go", Value: 5},
		{Path: "tiny/b.go", Value: 5},
	}
	buckets := collapseSmallDirs(buildDirTree(items), 1000, 2)

	assert.ElementsMatch(t, []bucket{
		{label: "main.go", value: 990},
		{label: "**", value: 10},
	}, buckets)
}

func TestLayoutChart(t *testing.T) {
	assert := assert.New(t)

	buckets := []bucket{
		{label: "a/big.go", value: 900},
		{label: "a/**", value: 20},
		{label: "x/y/z.go", value: 50},
	}
	opt := Options{BarWidth: 20, FillRune: '#', Unit: "tokens", TermWidth: constantTermWidth(80)}
	lines := layoutChart(buckets, 970, 3, opt)

	require.Len(t, lines, 5)
	assert.Contains(lines[0], "a/**")
	assert.Contains(lines[2], "a/big.go")
	assert.Contains(lines[2], strings.Repeat("#", 20))
	assert.Contains(lines[3], "TOTAL")
	assert.Contains(lines[4], "Summary: 3 files, 970 tokens")
}

func TestLayoutChartEmpty(t *testing.T) {
	lines := layoutChart(nil, 0, 0, Options{Unit: "bytes", TermWidth: constantTermWidth(80)})
	assert.Equal(t, []string{"No bytes recorded"}, lines)
}

func TestTrimLeft(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("short", trimLeft("short", 10))
	assert.Equal("…/file.go", trimLeft("very/long/path/file.go", 9))
	assert.Equal("…文件", trimLeft("目录/文件", 5))
}

func TestPrint(t *testing.T) {
	var buf bytes.Buffer
	opt := DefaultOptions(constantTermWidth(60), &buf, "bytes")

	require.NoError(t, Print(sampleItems(), opt))

	out := buf.String()
	assert.Contains(t, out, "a/big.go")
	assert.Contains(t, out, "TOTAL")
	assert.Contains(t, out, "Summary: 3 files, 970 bytes")
}
