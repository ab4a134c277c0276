// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"fmt"
	"io"

	"github.com/pdiddy/taskmd/pkg/types"
)

// BatchResult holds the outcome of extracting tasks from several documents.
type BatchResult struct {
	Files       int
	Tasks       int
	Done        int
	Deadlines   int
	Completions int
}

// Pending returns the number of unchecked tasks.
func (r BatchResult) Pending() int {
	return r.Tasks - r.Done
}

func (r *BatchResult) add(tasks []types.Task) {
	r.Files++
	r.Tasks += len(tasks)
	for _, t := range tasks {
		if t.Done {
			r.Done++
		}
		if t.HasDeadline() {
			r.Deadlines++
		}
		if t.HasCompletion() {
			r.Completions++
		}
	}
}

// Files extracts tasks from each path in order, printing one status line per
// document to w followed by a summary. Tasks from all documents are returned
// concatenated in argument order. The first unreadable or unparsable document
// aborts the batch; no partial task list is returned with the error.
func Files(paths []string, w io.Writer) (BatchResult, []types.Task, error) {
	var result BatchResult
	all := []types.Task{}

	for _, p := range paths {
		tasks, err := File(p)
		if err != nil {
			fmt.Fprintf(w, "failed:    %s (%v)\n", p, err)
			return result, nil, err
		}
		fmt.Fprintf(w, "extracted: %s (%d tasks)\n", p, len(tasks))
		result.add(tasks)
		all = append(all, tasks...)
	}

	fmt.Fprintf(w, "\nBatch summary: %d tasks from %d file(s): %d done, %d pending, %d with deadline, %d with completion\n",
		result.Tasks, result.Files, result.Done, result.Pending(), result.Deadlines, result.Completions)
	return result, all, nil
}
