// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists extracted tasks in a SQLite database so they can be
// listed and filtered across many markdown documents. Each source document
// is re-ingested only when its modification time changes.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/taskmd/internal/extract"
	"github.com/pdiddy/taskmd/pkg/types"
)

const dbFile = "tasks.db"

// Store manages the task database.
type Store struct {
	db  *sqlx.DB
	dir string
}

// NewStore opens or creates cfg.Dir/tasks.db and creates the schema if it
// does not exist.
func NewStore(cfg types.StoreConfig) (*Store, error) {
	dir := cfg.Dir
	if dir == "" {
		dir = types.DefaultStoreDir
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating store directory: %w", err)
	}

	dbPath := filepath.Join(dir, dbFile)
	db, err := sqlx.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, dir: dir}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Dir returns the directory holding the database.
func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS sources (
			path TEXT PRIMARY KEY,
			file_mod_time TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS tasks (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			source TEXT NOT NULL REFERENCES sources(path) ON DELETE CASCADE,
			position INTEGER NOT NULL,
			text TEXT NOT NULL,
			done INTEGER NOT NULL,
			deadline TEXT,
			completed_at TEXT,
			UNIQUE (source, position)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_tasks_source ON tasks(source)`,
		`CREATE INDEX IF NOT EXISTS idx_tasks_deadline ON tasks(deadline)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// IngestStatus is the outcome of ingesting one source document.
type IngestStatus string

const (
	StatusIndexed IngestStatus = "indexed"
	StatusUpdated IngestStatus = "updated"
	StatusSkipped IngestStatus = "skipped"
)

// Ingest replaces the stored tasks of source with tasks. When the stored
// modification time equals modTime the source is left untouched and
// StatusSkipped is returned.
func (s *Store) Ingest(ctx context.Context, source, modTime string, tasks []types.Task) (IngestStatus, error) {
	var stored string
	err := s.db.GetContext(ctx, &stored, `SELECT file_mod_time FROM sources WHERE path = ?`, source)
	switch {
	case err == nil && stored == modTime:
		return StatusSkipped, nil
	case err != nil && !errors.Is(err, sql.ErrNoRows):
		return "", fmt.Errorf("looking up source %s: %w", source, err)
	}
	isUpdate := err == nil

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO sources (path, file_mod_time) VALUES (?, ?)
		 ON CONFLICT(path) DO UPDATE SET file_mod_time=excluded.file_mod_time`,
		source, modTime,
	); err != nil {
		return "", fmt.Errorf("upserting source: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM tasks WHERE source = ?`, source); err != nil {
		return "", fmt.Errorf("deleting old tasks: %w", err)
	}

	stmt, err := tx.PreparexContext(ctx,
		`INSERT INTO tasks (source, position, text, done, deadline, completed_at)
		 VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return "", fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, t := range tasks {
		if _, err := stmt.ExecContext(ctx,
			source, i, t.Text, t.Done, nullTimestamp(t.Deadline), nullTimestamp(t.CompletedAt),
		); err != nil {
			return "", fmt.Errorf("inserting task %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("committing: %w", err)
	}
	if isUpdate {
		return StatusUpdated, nil
	}
	return StatusIndexed, nil
}

// IngestSummary holds counts from a multi-file ingestion run.
type IngestSummary struct {
	Indexed int
	Updated int
	Skipped int
	Failed  int
}

// Total returns the number of documents processed.
func (s IngestSummary) Total() int {
	return s.Indexed + s.Updated + s.Skipped + s.Failed
}

// IngestFiles extracts tasks from each markdown document and ingests them,
// printing a status line per document to w. A document that cannot be read
// or stored is counted as failed and the run continues.
func (s *Store) IngestFiles(ctx context.Context, paths []string, w io.Writer) (IngestSummary, error) {
	var summary IngestSummary

	for _, p := range paths {
		select {
		case <-ctx.Done():
			return summary, ctx.Err()
		default:
		}

		info, err := os.Stat(p)
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", p, err)
			summary.Failed++
			continue
		}
		modTime := info.ModTime().UTC().Format(time.RFC3339Nano)

		tasks, err := extract.File(p)
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", p, err)
			summary.Failed++
			continue
		}

		status, err := s.Ingest(ctx, p, modTime, tasks)
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", p, err)
			summary.Failed++
			continue
		}

		switch status {
		case StatusSkipped:
			fmt.Fprintf(w, "skipped %s\n", p)
			summary.Skipped++
		case StatusUpdated:
			fmt.Fprintf(w, "updated %s (%d tasks)\n", p, len(tasks))
			summary.Updated++
		default:
			fmt.Fprintf(w, "indexed %s (%d tasks)\n", p, len(tasks))
			summary.Indexed++
		}
	}

	fmt.Fprintf(w, "\nindexed: %d, updated: %d, skipped: %d, failed: %d\n",
		summary.Indexed, summary.Updated, summary.Skipped, summary.Failed)
	return summary, nil
}

func nullTimestamp(t *types.Timestamp) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: t.String(), Valid: true}
}
