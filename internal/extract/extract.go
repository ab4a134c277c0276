// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract turns markdown checklist items into Task records.
//
// A document is parsed by mdtree, every node is visited once, and each
// checklist item found has its 📅 deadline and ✅ completion annotations
// parsed out of its text.
package extract

import (
	"fmt"
	"os"

	"github.com/pdiddy/taskmd/internal/mdtree"
	"github.com/pdiddy/taskmd/pkg/types"
)

// Tasks visits every node under root exactly once and returns the tasks of
// all checklist items found, in document order. Nested checklist items are
// collected alongside their parents.
func Tasks(root mdtree.Node) []types.Task {
	tasks := []types.Task{}
	if root == nil {
		return tasks
	}

	stack := []mdtree.Node{root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if task, ok := FromNode(n); ok {
			tasks = append(tasks, task)
		}

		// Push in reverse so the first child is popped next.
		children := mdtree.Children(n)
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, children[i])
		}
	}
	return tasks
}

// Document parses src as markdown and extracts its tasks.
func Document(src []byte) ([]types.Task, error) {
	root, err := mdtree.Build(src)
	if err != nil {
		return nil, fmt.Errorf("parsing markdown: %w", err)
	}
	return Tasks(root), nil
}

// File reads the markdown document at path and extracts its tasks.
func File(path string) ([]types.Task, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	tasks, err := Document(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return tasks, nil
}
