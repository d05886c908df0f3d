package tree

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hayeah/picktree/ignore"
)

func TestBuild_Structure(t *testing.T) {
	assert := assert.New(t)
	tr := buildSample(t)

	require.Len(t, tr.Roots, 3)
	assert.Equal("src", tr.Roots[0].Name)
	assert.Equal("docs", tr.Roots[1].Name)
	assert.Equal("README.md", tr.Roots[2].Name)

	src := mustNode(t, tr, "src")
	assert.Equal(KindDir, src.Kind)
	assert.Equal(int64(150), src.Size)
	assert.Equal(int64(50), mustNode(t, tr, "src/util").Size)
	assert.Equal(int64(50), mustNode(t, tr, "docs").Size)

	tr.Walk(func(n *Node, _ int) bool {
		assert.Equal(SelectNone, n.Selection)
		assert.False(n.Expanded)
		assert.False(n.Locked)
		return true
	})
}

func TestBuild_ExcludesIgnoredEntries(t *testing.T) {
	assert := assert.New(t)

	global := ignore.NewRuleSet(ignore.Config{
		Dirs:       []string{"node_modules"},
		Extensions: []string{"log"},
	})
	rules := ignore.Merge(global, ignore.RuleSet{})

	entries := []Entry{
		{Name: "node_modules", Path: "node_modules", Kind: KindDir, Children: []Entry{
			{Name: "pkg", Path: "node_modules/pkg", Kind: KindDir, Children: []Entry{
				{Name: "index.js", Path: "node_modules/pkg/index.js", Kind: KindFile, Size: 999},
			}},
		}},
		{Name: "app.log", Path: "app.log", Kind: KindFile, Size: 500},
		{Name: "app.js", Path: "app.js", Kind: KindFile, Size: 7},
	}

	tr, err := Build(entries, rules)
	require.NoError(t, err)

	require.Len(t, tr.Roots, 1)
	assert.Equal("app.js", tr.Roots[0].Path)
	assert.Equal(1, tr.Len())
	_, ok := tr.Node("node_modules/pkg/index.js")
	assert.False(ok)
	_, ok = tr.Node("app.log")
	assert.False(ok)
}

func TestBuild_ExcludedFilesDoNotCountTowardSize(t *testing.T) {
	assert := assert.New(t)

	rules := ignore.NewRuleSet(ignore.Config{Extensions: []string{"png"}, Dirs: []string{"cache"}})
	entries := []Entry{
		{Name: "assets", Path: "assets", Kind: KindDir, Children: []Entry{
			{Name: "logo.PNG", Path: "assets/logo.PNG", Kind: KindFile, Size: 4096},
			{Name: "cache", Path: "assets/cache", Kind: KindDir, Children: []Entry{
				{Name: "x.txt", Path: "assets/cache/x.txt", Kind: KindFile, Size: 100},
			}},
		}},
		{Name: "lib", Path: "lib", Kind: KindDir, Children: []Entry{
			{Name: "a.txt", Path: "lib/a.txt", Kind: KindFile, Size: 3},
			{Name: "b.png", Path: "lib/b.png", Kind: KindFile, Size: 1000},
		}},
	}

	tr, err := Build(entries, rules)
	require.NoError(t, err)

	assets := mustNode(t, tr, "assets")
	assert.Equal(int64(0), assets.Size)
	assert.Empty(assets.Children, "directory emptied by filtering is kept")
	assert.Equal(int64(3), mustNode(t, tr, "lib").Size)
}

func TestBuild_DerivesMissingFields(t *testing.T) {
	assert := assert.New(t)

	entries := []Entry{
		{Name: "pkg", Children: []Entry{
			{Name: "a.go", Size: 5},
			{Path: "pkg/b.go", Size: 6},
		}},
	}
	tr, err := Build(entries, ignore.RuleSet{})
	require.NoError(t, err)

	pkg := mustNode(t, tr, "pkg")
	assert.Equal(KindDir, pkg.Kind, "kind inferred from children")
	a := mustNode(t, tr, "pkg/a.go")
	assert.Equal(KindFile, a.Kind)
	assert.Equal("pkg/a.go", a.Path)
	assert.Equal("b.go", mustNode(t, tr, "pkg/b.go").Name)
	assert.Equal(int64(11), pkg.Size)
}

func TestBuild_DeterministicIDs(t *testing.T) {
	assert := assert.New(t)

	first := buildSample(t)
	second := buildSample(t)

	var a, b []string
	first.Walk(func(n *Node, _ int) bool { a = append(a, n.ID); return true })
	second.Walk(func(n *Node, _ int) bool { b = append(b, n.ID); return true })
	assert.Equal(a, b)
	assert.Equal("src/util/a.go", NodeID("src//util/./a.go"))
}

func TestBuild_CycleDetected(t *testing.T) {
	entries := []Entry{
		{Name: "a", Path: "a", Kind: KindDir, Children: []Entry{
			{Name: "b", Path: "a/b", Kind: KindDir, Children: []Entry{
				{Name: "a", Path: "a", Kind: KindDir},
			}},
		}},
	}
	tr, err := Build(entries, ignore.RuleSet{})
	assert.Nil(t, tr)
	assert.True(t, errors.Is(err, ErrCycleDetected), "got %v", err)
}

func TestBuild_DuplicatePath(t *testing.T) {
	entries := []Entry{
		{Name: "a.go", Path: "a.go"},
		{Name: "a.go", Path: "./a.go"},
	}
	_, err := Build(entries, ignore.RuleSet{})
	assert.ErrorIs(t, err, ErrDuplicatePath)
}

func TestBuild_Empty(t *testing.T) {
	tr, err := Build(nil, ignore.DefaultGlobal())
	require.NoError(t, err)
	assert.Empty(t, tr.Roots)
	assert.Equal(t, 0, tr.Len())
}
