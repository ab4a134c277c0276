// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package index

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/taskmd/pkg/types"
)

func testIndex(t *testing.T) *Index {
	t.Helper()
	idx, err := NewMemory()
	require.NoError(t, err)
	t.Cleanup(func() { idx.Close() })

	require.NoError(t, idx.Add("work.md", []types.Task{
		{Text: "Ship quarterly report"},
		{Text: "Review parser changes", Done: true},
	}))
	require.NoError(t, idx.Add("home.md", []types.Task{
		{Text: "Buy milk"},
	}))
	return idx
}

func TestSearch(t *testing.T) {
	idx := testIndex(t)

	hits, err := idx.Search("report", 10)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, DocID("work.md", 0), hits[0].ID)
	assert.Equal(t, "Ship quarterly report", hits[0].Text)
	assert.Equal(t, "work.md", hits[0].Source)
	assert.Greater(t, hits[0].Score, 0.0)
}

func TestSearchStoredDone(t *testing.T) {
	idx := testIndex(t)

	hits, err := idx.Search("parser", 0)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.True(t, hits[0].Done)
}

func TestSearchNoHits(t *testing.T) {
	idx := testIndex(t)

	hits, err := idx.Search("zebra", 5)
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestAddOverwritesPositions(t *testing.T) {
	idx := testIndex(t)

	require.NoError(t, idx.Add("home.md", []types.Task{{Text: "Buy bread"}}))

	count, err := idx.Count()
	require.NoError(t, err)
	assert.Equal(t, uint64(3), count)

	hits, err := idx.Search("milk", 5)
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestAddDropsRemovedTasks(t *testing.T) {
	idx := testIndex(t)

	require.NoError(t, idx.Add("work.md", []types.Task{{Text: "Ship quarterly report"}}))

	count, err := idx.Count()
	require.NoError(t, err)
	assert.Equal(t, uint64(2), count)

	hits, err := idx.Search("parser", 5)
	require.NoError(t, err)
	assert.Empty(t, hits)

	hits, err = idx.Search("milk", 5)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "home.md", hits[0].Source)
}

func TestAddEmptySourceClearsIt(t *testing.T) {
	idx := testIndex(t)

	require.NoError(t, idx.Add("home.md", nil))

	hits, err := idx.Search("milk", 5)
	require.NoError(t, err)
	assert.Empty(t, hits)

	count, err := idx.Count()
	require.NoError(t, err)
	assert.Equal(t, uint64(2), count)
}

func TestAddReplacesSourceByExactPath(t *testing.T) {
	idx := testIndex(t)

	require.NoError(t, idx.Add("notes/work.md", []types.Task{{Text: "Archive report"}}))
	require.NoError(t, idx.Add("notes/work.md", []types.Task{{Text: "Archive report"}}))

	count, err := idx.Count()
	require.NoError(t, err)
	assert.Equal(t, uint64(4), count)
}

func TestOpenCreatesAndReopens(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "index")

	idx, err := Open(dir)
	require.NoError(t, err)
	require.NoError(t, idx.Add("a.md", []types.Task{{Text: "persist me"}}))
	require.NoError(t, idx.Close())

	idx, err = Open(dir)
	require.NoError(t, err)
	defer idx.Close()

	hits, err := idx.Search("persist", 5)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "persist me", hits[0].Text)
}
