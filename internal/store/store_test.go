package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hayeah/picktree/ignore"
	"github.com/hayeah/picktree/internal/tree"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:", nil)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestLoadState_Empty(t *testing.T) {
	s := openTestStore(t)

	state, err := s.LoadState("/repo")
	require.NoError(t, err)
	assert.Empty(t, state)
}

func TestSaveState_RoundTrip(t *testing.T) {
	s := openTestStore(t)

	state := tree.State{
		"src":         {Partial: true, Expanded: true},
		"src/main.go": {Selected: true, Locked: true},
		"README.md":   {},
	}
	require.NoError(t, s.SaveState("/repo", state))

	got, err := s.LoadState("/repo")
	require.NoError(t, err)
	assert.Equal(t, tree.State{
		"src":         {Partial: true, Expanded: true},
		"src/main.go": {Selected: true, Locked: true},
	}, got)
}

func TestSaveState_Replaces(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.SaveState("/repo", tree.State{"a": {Selected: true}}))
	require.NoError(t, s.SaveState("/repo", tree.State{"b": {Expanded: true}}))

	got, err := s.LoadState("/repo")
	require.NoError(t, err)
	assert.Equal(t, tree.State{"b": {Expanded: true}}, got)
}

func TestState_IsolatedPerRoot(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.SaveState("/one", tree.State{"a": {Selected: true}}))
	require.NoError(t, s.SaveState("/two", tree.State{"b": {Selected: true}}))

	roots, err := s.Roots()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"/one", "/two"}, roots)

	require.NoError(t, s.ClearState("/one"))

	got, err := s.LoadState("/one")
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = s.LoadState("/two")
	require.NoError(t, err)
	assert.Equal(t, tree.State{"b": {Selected: true}}, got)

	roots, err = s.Roots()
	require.NoError(t, err)
	assert.Equal(t, []string{"/two"}, roots)
}

func TestOpen_ReopensFileDatabase(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "nested", "state.db")

	s, err := Open(dsn, nil)
	require.NoError(t, err)
	require.NoError(t, s.SaveState("/repo", tree.State{"x": {Locked: true}}))
	require.NoError(t, s.Close())

	s, err = Open(dsn, nil)
	require.NoError(t, err)
	defer s.Close()

	got, err := s.LoadState("/repo")
	require.NoError(t, err)
	assert.Equal(t, tree.State{"x": {Locked: true}}, got)
}

func TestSnapshotSurvivesStore(t *testing.T) {
	s := openTestStore(t)
	entries := []tree.Entry{
		{Name: "src", Kind: tree.KindDir, Children: []tree.Entry{
			{Name: "a.go", Kind: tree.KindFile, Size: 10},
			{Name: "b.go", Kind: tree.KindFile, Size: 20},
		}},
	}

	tr, err := tree.Build(entries, ignore.RuleSet{})
	require.NoError(t, err)
	require.NoError(t, tr.SetSelection("src/a.go", true))
	require.NoError(t, tr.SetExpanded("src", true))
	require.NoError(t, s.SaveState("/repo", tr.Snapshot()))

	prior, err := s.LoadState("/repo")
	require.NoError(t, err)
	restored, err := tree.BuildWithState(entries, ignore.RuleSet{}, prior)
	require.NoError(t, err)

	src, ok := restored.Node("src")
	require.True(t, ok)
	assert.Equal(t, tree.SelectPartial, src.Selection)
	assert.True(t, src.Expanded)

	a, _ := restored.Node("src/a.go")
	b, _ := restored.Node("src/b.go")
	assert.Equal(t, tree.SelectFull, a.Selection)
	assert.Equal(t, tree.SelectNone, b.Selection)
}
