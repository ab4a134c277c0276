// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/taskmd/internal/index"
	"github.com/pdiddy/taskmd/internal/store"
	"github.com/pdiddy/taskmd/pkg/types"
)

func TestExtractCommandWritesJSON(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "notes.md")
	out := filepath.Join(dir, "out", "tasks.json")
	require.NoError(t, os.WriteFile(in, []byte("- [ ] Buy milk 📅2024-03-01\n- [x] Done ✅2024-03-02 10:00:00\n"), 0o644))

	var stderr bytes.Buffer
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs([]string{"extract", in, "--output", out})
	require.NoError(t, rootCmd.Execute())

	data, err := os.ReadFile(out)
	require.NoError(t, err)

	var tasks []types.Task
	require.NoError(t, json.Unmarshal(data, &tasks))
	require.Len(t, tasks, 2)
	assert.Equal(t, "Buy milk ", tasks[0].Text)
	assert.Equal(t, "2024-03-01T00:00:00", tasks[0].Deadline.String())
	assert.True(t, tasks[1].Done)
	assert.Equal(t, "2024-03-02T10:00:00", tasks[1].CompletedAt.String())

	assert.Contains(t, stderr.String(), "extracted: "+in+" (2 tasks)")
	assert.Contains(t, stderr.String(), `[ ] "Buy milk "`)
}

func TestExtractCommandMissingInput(t *testing.T) {
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs([]string{"extract", filepath.Join(t.TempDir(), "nope.md"), "--output", "-"})
	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nope.md")
}

func TestQueryOptsFromFlags(t *testing.T) {
	newCmd := func() *cobra.Command {
		c := &cobra.Command{Use: "x"}
		addFilterFlags(c)
		return c
	}

	c := newCmd()
	require.NoError(t, c.Flags().Parse([]string{"--pending", "--due-before", "2024-03-01", "--limit", "5"}))
	opts, err := queryOptsFromFlags(c)
	require.NoError(t, err)
	require.NotNil(t, opts.Done)
	assert.False(t, *opts.Done)
	require.NotNil(t, opts.DueBefore)
	assert.Equal(t, "2024-03-01T00:00:00", opts.DueBefore.String())
	assert.Equal(t, 5, opts.Limit)

	c = newCmd()
	require.NoError(t, c.Flags().Parse([]string{"--done", "--pending"}))
	_, err = queryOptsFromFlags(c)
	assert.Error(t, err)

	c = newCmd()
	require.NoError(t, c.Flags().Parse([]string{"--due-before", "tomorrow"}))
	_, err = queryOptsFromFlags(c)
	assert.Error(t, err)

	c = newCmd()
	require.NoError(t, c.Flags().Parse(nil))
	opts, err = queryOptsFromFlags(c)
	require.NoError(t, err)
	assert.Nil(t, opts.Done)
}

func TestFormatListOutput(t *testing.T) {
	deadline, err := types.ParseTimestamp("2024-03-01")
	require.NoError(t, err)
	records := []store.Record{
		{Task: types.Task{Text: "Buy milk ", Deadline: &deadline}, Source: "home.md"},
		{Task: types.Task{Text: "Fix bike", Done: true}, Source: "home.md", Position: 1},
	}

	var buf bytes.Buffer
	require.NoError(t, formatListOutput(&buf, records, false))
	out := buf.String()
	assert.Contains(t, out, "[ ]   2024-03-01T00:00:00")
	assert.Contains(t, out, "Fix bike")
	assert.Contains(t, out, "2 tasks")

	buf.Reset()
	require.NoError(t, formatListOutput(&buf, nil, false))
	assert.Equal(t, "No tasks found.\n", buf.String())

	buf.Reset()
	require.NoError(t, formatListOutput(&buf, records, true))
	assert.Contains(t, buf.String(), `"source": "home.md"`)
}

func TestFormatSearchOutput(t *testing.T) {
	hits := []index.Hit{{ID: "a.md#0", Score: 1.5, Text: "Buy milk ", Source: "a.md"}}

	var buf bytes.Buffer
	require.NoError(t, formatSearchOutput(&buf, hits, false))
	assert.Equal(t, "  1. [ ] Buy milk  (a.md#0, score 1.500)\n", buf.String())

	buf.Reset()
	require.NoError(t, formatSearchOutput(&buf, nil, false))
	assert.Equal(t, "No results found.\n", buf.String())
}
