// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/taskmd/internal/mdtree"
)

func item(check mdtree.CheckState, children ...mdtree.Node) *mdtree.ListItem {
	return &mdtree.ListItem{Check: check, Children: children}
}

func para(children ...mdtree.Node) *mdtree.Paragraph {
	return &mdtree.Paragraph{Children: children}
}

func text(s string) *mdtree.Text {
	return &mdtree.Text{Value: s}
}

func TestChecklistItem(t *testing.T) {
	tests := []struct {
		name     string
		node     mdtree.Node
		wantOK   bool
		wantText string
		wantDone bool
	}{
		{
			name:     "unchecked item",
			node:     item(mdtree.Unchecked, para(text("write tests"))),
			wantOK:   true,
			wantText: "write tests",
		},
		{
			name:     "checked item",
			node:     item(mdtree.Checked, para(text("write code"))),
			wantOK:   true,
			wantText: "write code",
			wantDone: true,
		},
		{
			name: "plain list item",
			node: item(mdtree.NotCheckbox, para(text("just a bullet"))),
		},
		{
			name: "no paragraph",
			node: item(mdtree.Checked, &mdtree.Container{Kind: "List"}),
		},
		{
			name: "paragraph without text leaf",
			node: item(mdtree.Unchecked, para(&mdtree.Container{Kind: "Emphasis", Children: []mdtree.Node{text("bold")}})),
		},
		{
			name:     "first paragraph and first text are chosen",
			node:     item(mdtree.Unchecked, &mdtree.Other{Kind: "HTMLBlock"}, para(&mdtree.Other{Kind: "CodeSpan"}, text("first"), text("second")), para(text("other"))),
			wantOK:   true,
			wantText: "first",
		},
		{
			name: "not a list item",
			node: para(text("- [ ] looks like a task")),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, done, ok := ChecklistItem(tt.node)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantText, got)
			assert.Equal(t, tt.wantDone, done)
		})
	}
}

func TestFromNodeBothAnnotations(t *testing.T) {
	task, ok := FromNode(item(mdtree.Checked, para(text("Task 📅2024-01-01 ✅2024-01-05"))))
	require.True(t, ok)

	assert.True(t, task.Done)
	assert.Equal(t, "Task  ", task.Text)
	require.NotNil(t, task.Deadline)
	require.NotNil(t, task.CompletedAt)
	assert.Equal(t, "2024-01-01T00:00:00", task.Deadline.String())
	assert.Equal(t, "2024-01-05T00:00:00", task.CompletedAt.String())
	assert.NotContains(t, task.Text, string(DeadlineIcon))
	assert.NotContains(t, task.Text, string(CompletedIcon))
}

func TestFromNodeMalformedDeadline(t *testing.T) {
	task, ok := FromNode(item(mdtree.Unchecked, para(text("Pay rent 📅2024-13-01"))))
	require.True(t, ok)

	assert.Nil(t, task.Deadline)
	assert.Nil(t, task.CompletedAt)
	assert.Equal(t, "Pay rent 📅2024-13-01", task.Text)
}

func TestFromNodeCompletionOnly(t *testing.T) {
	task, ok := FromNode(item(mdtree.Checked, para(text("Ship it ✅ 2024-02-02 18:00:00"))))
	require.True(t, ok)

	assert.Nil(t, task.Deadline)
	require.NotNil(t, task.CompletedAt)
	assert.Equal(t, "2024-02-02T18:00:00", task.CompletedAt.String())
	assert.Equal(t, "Ship it ", task.Text)
}

func TestFromNodeSkipsNonTasks(t *testing.T) {
	_, ok := FromNode(item(mdtree.NotCheckbox, para(text("bullet 📅2024-01-01"))))
	assert.False(t, ok)
}
