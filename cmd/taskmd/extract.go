// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/taskmd/internal/export"
	"github.com/pdiddy/taskmd/internal/extract"
	"github.com/pdiddy/taskmd/pkg/types"
)

var extractCmd = &cobra.Command{
	Use:   "extract [files...]",
	Short: "Extract checklist tasks from markdown files",
	Long: `Extract parses each markdown file, collects every checklist item in
document order, and writes the resulting task list as JSON (or YAML).

With no arguments the configured input (default data/tasks.md) is read.
Use --output - to write the task list to stdout. A diagnostic line per task
is printed to stderr unless --quiet is set.`,
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().StringP("output", "o", types.DefaultOutputPath, "output file, or - for stdout")
	extractCmd.Flags().String("format", string(types.FormatJSON), "output format: json or yaml")
	extractCmd.Flags().BoolP("quiet", "q", false, "do not print the per-task dump")

	bindFlag(extractCmd, "extraction.output_path", "output")
	bindFlag(extractCmd, "extraction.format", "format")
	bindFlag(extractCmd, "extraction.quiet", "quiet")

	rootCmd.AddCommand(extractCmd)
}

func extractionConfig(args []string) (types.ExtractionConfig, error) {
	format, err := export.ParseFormat(viper.GetString("extraction.format"))
	if err != nil {
		return types.ExtractionConfig{}, err
	}
	return types.ExtractionConfig{
		InputPaths: inputPaths(args),
		OutputPath: viper.GetString("extraction.output_path"),
		Format:     format,
		Quiet:      viper.GetBool("extraction.quiet"),
	}, nil
}

func runExtract(cmd *cobra.Command, args []string) error {
	cfg, err := extractionConfig(args)
	if err != nil {
		return err
	}

	stderr := cmd.ErrOrStderr()
	result, tasks, err := extract.Files(cfg.InputPaths, stderr)
	if err != nil {
		return err
	}

	if !cfg.Quiet {
		export.Dump(stderr, tasks)
	}

	if cfg.OutputPath == "-" {
		return export.Encode(cmd.OutOrStdout(), cfg.Format, tasks)
	}
	if err := export.WriteFile(cfg.OutputPath, cfg.Format, tasks); err != nil {
		return err
	}
	fmt.Fprintf(stderr, "wrote %d tasks to %s\n", result.Tasks, cfg.OutputPath)
	return nil
}
