// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"github.com/pdiddy/taskmd/internal/mdtree"
	"github.com/pdiddy/taskmd/pkg/types"
)

// ChecklistItem reports whether n is a checklist item and, if so, returns
// the literal of the first text leaf of its first paragraph together with
// its checked state. Plain list items, items without a paragraph, and
// paragraphs that do not start with text are not checklist items.
func ChecklistItem(n mdtree.Node) (text string, done bool, ok bool) {
	li, isItem := n.(*mdtree.ListItem)
	if !isItem {
		return "", false, false
	}
	switch li.Check {
	case mdtree.Checked:
		done = true
	case mdtree.Unchecked:
		done = false
	default:
		return "", false, false
	}

	para := firstParagraph(li.Children)
	if para == nil {
		return "", false, false
	}
	leaf := firstText(para.Children)
	if leaf == nil {
		return "", false, false
	}
	return leaf.Value, done, true
}

func firstParagraph(nodes []mdtree.Node) *mdtree.Paragraph {
	for _, n := range nodes {
		if p, ok := n.(*mdtree.Paragraph); ok {
			return p
		}
	}
	return nil
}

func firstText(nodes []mdtree.Node) *mdtree.Text {
	for _, n := range nodes {
		if t, ok := n.(*mdtree.Text); ok {
			return t
		}
	}
	return nil
}

// FromNode builds a Task from a checklist item node. The deadline annotation
// is stripped first and the completion annotation is then searched for in
// what remains.
func FromNode(n mdtree.Node) (types.Task, bool) {
	text, done, ok := ChecklistItem(n)
	if !ok {
		return types.Task{}, false
	}

	task := types.Task{Done: done}
	if ts, rest, found := ParseAnnotation(text, DeadlineIcon); found {
		deadline := types.NewTimestamp(ts)
		task.Deadline = &deadline
		text = rest
	}
	if ts, rest, found := ParseAnnotation(text, CompletedIcon); found {
		completed := types.NewTimestamp(ts)
		task.CompletedAt = &completed
		text = rest
	}
	task.Text = text
	return task, true
}
