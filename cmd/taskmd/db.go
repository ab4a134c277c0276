// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/taskmd/internal/export"
	"github.com/pdiddy/taskmd/internal/store"
	"github.com/pdiddy/taskmd/pkg/types"
)

var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Manage the task database (store, list, export)",
	Long: `Db keeps extracted tasks from many markdown files in a local SQLite
database. Use subcommands to ingest files, list tasks with filters, or export.`,
}

// --- store subcommand ---

var dbStoreCmd = &cobra.Command{
	Use:   "store [files...]",
	Short: "Extract tasks from markdown files into the database",
	Long: `Store extracts the tasks of each markdown file and replaces that file's
tasks in the database. Files whose modification time has not changed since
the last run are skipped.`,
	RunE: runDBStore,
}

func runDBStore(cmd *cobra.Command, args []string) error {
	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	summary, err := s.IngestFiles(context.Background(), inputPaths(args), cmd.OutOrStdout())
	if err != nil {
		return err
	}
	if summary.Failed > 0 {
		return fmt.Errorf("%d file(s) failed ingestion", summary.Failed)
	}
	return nil
}

// --- list subcommand ---

var dbListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored tasks with optional filters",
	Long: `List prints stored tasks ordered by deadline, tasks without a deadline
last. Filters combine with AND semantics.`,
	RunE: runDBList,
}

func runDBList(cmd *cobra.Command, args []string) error {
	opts, err := queryOptsFromFlags(cmd)
	if err != nil {
		return err
	}

	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	records, err := s.List(context.Background(), opts)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatListOutput(cmd.OutOrStdout(), records, jsonOutput)
}

func formatListOutput(w io.Writer, records []store.Record, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	}

	if len(records) == 0 {
		fmt.Fprintln(w, "No tasks found.")
		return nil
	}

	fmt.Fprintf(w, "%-4s  %-19s  %-19s  %-50s  %s\n",
		"Done", "Deadline", "Completed", "Task", "Source")
	fmt.Fprintln(w, strings.Repeat("-", 110))

	for _, r := range records {
		done := "[ ]"
		if r.Done {
			done = "[x]"
		}
		text := strings.TrimSpace(r.Text)
		if runes := []rune(text); len(runes) > 50 {
			text = string(runes[:47]) + "..."
		}
		fmt.Fprintf(w, "%-4s  %-19s  %-19s  %-50s  %s\n",
			done, timestampOrDash(r.Deadline), timestampOrDash(r.CompletedAt), text, r.Source)
	}

	fmt.Fprintf(w, "\n%d tasks\n", len(records))
	return nil
}

func timestampOrDash(t *types.Timestamp) string {
	if t == nil {
		return "-"
	}
	return t.String()
}

// --- export subcommand ---

var dbExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export stored tasks to JSON or YAML",
	Long: `Export writes stored tasks (or a filtered subset) with their source
file and position to export.json or export.yaml in the database directory.`,
	RunE: runDBExport,
}

func runDBExport(cmd *cobra.Command, args []string) error {
	formatName, _ := cmd.Flags().GetString("format")
	format, err := export.ParseFormat(formatName)
	if err != nil {
		return err
	}
	opts, err := queryOptsFromFlags(cmd)
	if err != nil {
		return err
	}

	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	path, err := s.Export(context.Background(), opts, format)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", path)
	return nil
}

// --- shared helpers ---

func openStore() (*store.Store, error) {
	return store.NewStore(types.StoreConfig{Dir: viper.GetString("store.dir")})
}

func queryOptsFromFlags(cmd *cobra.Command) (store.QueryOptions, error) {
	done, _ := cmd.Flags().GetBool("done")
	pending, _ := cmd.Flags().GetBool("pending")
	source, _ := cmd.Flags().GetString("source")
	dueBefore, _ := cmd.Flags().GetString("due-before")
	contains, _ := cmd.Flags().GetString("contains")
	limit, _ := cmd.Flags().GetInt("limit")

	if done && pending {
		return store.QueryOptions{}, fmt.Errorf("--done and --pending are mutually exclusive")
	}

	opts := store.QueryOptions{
		Source:   source,
		Contains: contains,
		Limit:    limit,
	}
	if done || pending {
		opts.Done = &done
	}
	if dueBefore != "" {
		ts, err := types.ParseTimestamp(dueBefore)
		if err != nil {
			return store.QueryOptions{}, fmt.Errorf("--due-before: %w", err)
		}
		opts.DueBefore = &ts
	}
	return opts, nil
}

func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("done", false, "only checked tasks")
	cmd.Flags().Bool("pending", false, "only unchecked tasks")
	cmd.Flags().String("source", "", "only tasks from this markdown file")
	cmd.Flags().String("due-before", "", "only tasks due before YYYY-MM-DD[THH:MM:SS]")
	cmd.Flags().String("contains", "", "only tasks whose text contains this string")
	cmd.Flags().Int("limit", 0, "maximum tasks (0 = all)")
}

func init() {
	dbCmd.PersistentFlags().String("db-dir", types.DefaultStoreDir, "directory holding tasks.db")
	if err := viper.BindPFlag("store.dir", dbCmd.PersistentFlags().Lookup("db-dir")); err != nil {
		panic(err)
	}

	addFilterFlags(dbListCmd)
	dbListCmd.Flags().Bool("json", false, "output results as JSON")

	addFilterFlags(dbExportCmd)
	dbExportCmd.Flags().String("format", "json", "export format: json or yaml")

	dbCmd.AddCommand(dbStoreCmd)
	dbCmd.AddCommand(dbListCmd)
	dbCmd.AddCommand(dbExportCmd)

	rootCmd.AddCommand(dbCmd)
}
