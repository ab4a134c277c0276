// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/taskmd/internal/export"
	"github.com/pdiddy/taskmd/pkg/types"
)

// QueryOptions filters List results. Zero values mean "no filter".
type QueryOptions struct {
	// Done keeps only checked (true) or unchecked (false) tasks.
	Done *bool

	// Source keeps only tasks from this document path.
	Source string

	// DueBefore keeps only tasks whose deadline is strictly earlier.
	DueBefore *types.Timestamp

	// Contains is a case-insensitive substring of the task text.
	Contains string

	// Limit caps the number of results; zero means unlimited.
	Limit int
}

// Record is a stored task together with where it came from.
type Record struct {
	types.Task `yaml:",inline"`
	Source     string `json:"source" yaml:"source"`
	Position   int    `json:"position" yaml:"position"`
}

type taskRow struct {
	Source      string         `db:"source"`
	Position    int            `db:"position"`
	Text        string         `db:"text"`
	Done        bool           `db:"done"`
	Deadline    sql.NullString `db:"deadline"`
	CompletedAt sql.NullString `db:"completed_at"`
}

func (r taskRow) record() (Record, error) {
	rec := Record{
		Task:     types.Task{Text: r.Text, Done: r.Done},
		Source:   r.Source,
		Position: r.Position,
	}
	var err error
	if rec.Deadline, err = parseNull(r.Deadline); err != nil {
		return Record{}, fmt.Errorf("task %s#%d deadline: %w", r.Source, r.Position, err)
	}
	if rec.CompletedAt, err = parseNull(r.CompletedAt); err != nil {
		return Record{}, fmt.Errorf("task %s#%d completed_at: %w", r.Source, r.Position, err)
	}
	return rec, nil
}

func parseNull(v sql.NullString) (*types.Timestamp, error) {
	if !v.Valid {
		return nil, nil
	}
	ts, err := types.ParseTimestamp(v.String)
	if err != nil {
		return nil, err
	}
	return &ts, nil
}

// List returns stored tasks matching opts, ordered by deadline (tasks with
// no deadline last), then by source and position within the source.
func (s *Store) List(ctx context.Context, opts QueryOptions) ([]Record, error) {
	var (
		qb   strings.Builder
		args []any
	)
	qb.WriteString(`SELECT source, position, text, done, deadline, completed_at FROM tasks WHERE 1=1`)

	if opts.Done != nil {
		qb.WriteString(` AND done = ?`)
		args = append(args, *opts.Done)
	}
	if opts.Source != "" {
		qb.WriteString(` AND source = ?`)
		args = append(args, opts.Source)
	}
	if opts.DueBefore != nil {
		qb.WriteString(` AND deadline IS NOT NULL AND deadline < ?`)
		args = append(args, opts.DueBefore.String())
	}
	if opts.Contains != "" {
		qb.WriteString(` AND instr(lower(text), lower(?)) > 0`)
		args = append(args, opts.Contains)
	}

	qb.WriteString(` ORDER BY deadline IS NULL, deadline, source, position`)
	if opts.Limit > 0 {
		qb.WriteString(` LIMIT ?`)
		args = append(args, opts.Limit)
	}

	var rows []taskRow
	if err := s.db.SelectContext(ctx, &rows, qb.String(), args...); err != nil {
		return nil, fmt.Errorf("querying tasks: %w", err)
	}

	records := make([]Record, 0, len(rows))
	for _, r := range rows {
		rec, err := r.record()
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

// Export writes the tasks matching opts to <dir>/export.<format> and returns
// the path written.
func (s *Store) Export(ctx context.Context, opts QueryOptions, format types.OutputFormat) (string, error) {
	records, err := s.List(ctx, opts)
	if err != nil {
		return "", fmt.Errorf("querying for export: %w", err)
	}

	data, err := export.Marshal(format, records)
	if err != nil {
		return "", err
	}

	ext := string(format)
	if ext == "" {
		ext = string(types.FormatJSON)
	}
	path := filepath.Join(s.dir, "export."+ext)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}
