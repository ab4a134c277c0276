// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/taskmd/internal/extract"
	"github.com/pdiddy/taskmd/internal/index"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Full-text search over task text",
	Long: `Search refreshes a full-text index from the markdown files given with
--file (default: the configured input) and prints the tasks best matching
the query.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringSlice("file", nil, "markdown files to index before searching")
	searchCmd.Flags().String("index-dir", "", "index directory (default .taskmd/index)")
	searchCmd.Flags().Int("max-results", 0, "maximum number of hits (default 20)")
	searchCmd.Flags().Bool("json", false, "output results as JSON")

	bindFlag(searchCmd, "index.dir", "index-dir")
	bindFlag(searchCmd, "index.max_results", "max-results")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	files, _ := cmd.Flags().GetStringSlice("file")
	files = inputPaths(files)

	idx, err := index.Open(viper.GetString("index.dir"))
	if err != nil {
		return err
	}
	defer idx.Close()

	for _, f := range files {
		tasks, err := extract.File(f)
		if err != nil {
			return err
		}
		if err := idx.Add(f, tasks); err != nil {
			return err
		}
	}

	hits, err := idx.Search(strings.Join(args, " "), viper.GetInt("index.max_results"))
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatSearchOutput(cmd.OutOrStdout(), hits, jsonOutput)
}

func formatSearchOutput(w io.Writer, hits []index.Hit, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(hits)
	}

	if len(hits) == 0 {
		fmt.Fprintln(w, "No results found.")
		return nil
	}
	for i, h := range hits {
		done := "[ ]"
		if h.Done {
			done = "[x]"
		}
		fmt.Fprintf(w, "%3d. %s %s  (%s, score %.3f)\n", i+1, done, strings.TrimSpace(h.Text), h.ID, h.Score)
	}
	return nil
}
