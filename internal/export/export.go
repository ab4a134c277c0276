// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export serializes extracted task lists to JSON or YAML and prints
// the human-readable diagnostic dump.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/taskmd/pkg/types"
)

// ParseFormat validates a format name. An empty name selects JSON.
func ParseFormat(s string) (types.OutputFormat, error) {
	switch types.OutputFormat(strings.ToLower(strings.TrimSpace(s))) {
	case types.FormatJSON, "":
		return types.FormatJSON, nil
	case types.FormatYAML, "yml":
		return types.FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported format %q: use json or yaml", s)
	}
}

// Encode writes tasks to w in the given format. A nil slice is encoded as
// an empty list.
func Encode(w io.Writer, format types.OutputFormat, tasks []types.Task) error {
	if tasks == nil {
		tasks = []types.Task{}
	}
	data, err := Marshal(format, tasks)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// Marshal serializes v in the given format. JSON output is compact.
func Marshal(format types.OutputFormat, v any) ([]byte, error) {
	switch format {
	case types.FormatJSON, "":
		data, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("marshaling JSON: %w", err)
		}
		return data, nil
	case types.FormatYAML:
		data, err := yaml.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("marshaling YAML: %w", err)
		}
		return data, nil
	default:
		return nil, fmt.Errorf("unsupported format %q: use json or yaml", format)
	}
}

// WriteFile encodes tasks to path, creating parent directories as needed.
func WriteFile(path string, format types.OutputFormat, tasks []types.Task) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := Encode(f, format, tasks); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}

// Dump prints one line per task for a human reader. The layout is not
// stable and should not be parsed.
func Dump(w io.Writer, tasks []types.Task) {
	for _, t := range tasks {
		mark := " "
		if t.Done {
			mark = "x"
		}
		fmt.Fprintf(w, "[%s] %q", mark, t.Text)
		if t.Deadline != nil {
			fmt.Fprintf(w, "  deadline=%s", t.Deadline)
		}
		if t.CompletedAt != nil {
			fmt.Fprintf(w, "  completed=%s", t.CompletedAt)
		}
		fmt.Fprintln(w)
	}
}
