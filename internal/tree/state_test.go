package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hayeah/picktree/ignore"
)

func TestSnapshot_OnlyNonDefault(t *testing.T) {
	assert := assert.New(t)
	tr := buildSample(t)

	require.NoError(t, tr.SetSelection("src/util/a.go", true))
	require.NoError(t, tr.SetExpanded("docs", true))
	require.NoError(t, tr.SetLocked("README.md", true))

	assert.Equal(State{
		"src":           {Partial: true},
		"src/util":      {Partial: true},
		"src/util/a.go": {Selected: true},
		"docs":          {Expanded: true},
		"README.md":     {Locked: true},
	}, tr.Snapshot())
}

func TestBuildWithState_RoundTrip(t *testing.T) {
	assert := assert.New(t)
	tr := buildSample(t)

	require.NoError(t, tr.SetSelection("src/util", true))
	require.NoError(t, tr.SetExpanded("src", true))
	require.NoError(t, tr.SetLocked("src/main.go", true))
	saved := tr.Snapshot()

	rebuilt, err := BuildWithState(sampleEntries(), ignore.RuleSet{}, saved)
	require.NoError(t, err)
	assert.Equal(saved, rebuilt.Snapshot())
	assert.True(mustNode(t, rebuilt, "src/main.go").Locked)
	assert.True(mustNode(t, rebuilt, "src").Expanded)
}

func TestBuildWithState_ReaggregatesChangedListing(t *testing.T) {
	assert := assert.New(t)

	// everything in src/util was selected, but b.go has since disappeared and a
	// new file appeared next to it
	prior := State{
		"src":           {Partial: true},
		"src/util":      {Selected: true},
		"src/util/a.go": {Selected: true},
		"src/util/b.go": {Selected: true},
		"gone.txt":      {Selected: true},
	}
	entries := []Entry{
		{Name: "src", Path: "src", Kind: KindDir, Children: []Entry{
			{Name: "util", Path: "src/util", Kind: KindDir, Children: []Entry{
				{Name: "a.go", Path: "src/util/a.go"},
				{Name: "c.go", Path: "src/util/c.go"},
			}},
		}},
	}

	tr, err := BuildWithState(entries, ignore.RuleSet{}, prior)
	require.NoError(t, err)
	assert.Equal(SelectFull, mustNode(t, tr, "src/util/a.go").Selection)
	assert.Equal(SelectNone, mustNode(t, tr, "src/util/c.go").Selection)
	assert.Equal(SelectPartial, mustNode(t, tr, "src/util").Selection)
	assert.Equal(SelectPartial, mustNode(t, tr, "src").Selection)
	checkAggregation(t, tr.Roots)
}

func TestBuildWithState_PartialFileIsCleared(t *testing.T) {
	tr, err := BuildWithState(sampleEntries(), ignore.RuleSet{}, State{
		"README.md": {Partial: true},
	})
	require.NoError(t, err)
	assert.Equal(t, SelectNone, mustNode(t, tr, "README.md").Selection)
}
