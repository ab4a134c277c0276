// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the taskmd CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/taskmd/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the taskmd CLI.
var rootCmd = &cobra.Command{
	Use:   "taskmd",
	Short: "Extract checklist tasks from markdown notes",
	Long: `taskmd reads markdown documents, finds GitHub-style checklist items
("- [ ] ..." and "- [x] ..."), and turns each into a task record. A 📅 date
in the item text becomes the task deadline and a ✅ date its completion time;
both annotations are removed from the task text.

Dates are written YYYY-MM-DD or YYYY-MM-DD HH:MM:SS, optionally separated
from the icon by spaces.`,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./taskmd.yaml or ~/.config/taskmd/taskmd.yaml)")

	viper.SetDefault("extraction.input_paths", []string{types.DefaultInputPath})
	viper.SetDefault("extraction.output_path", types.DefaultOutputPath)
	viper.SetDefault("extraction.format", string(types.FormatJSON))
	viper.SetDefault("store.dir", types.DefaultStoreDir)
	viper.SetDefault("index.dir", types.DefaultIndexDir)
	viper.SetDefault("index.max_results", 20)
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("taskmd")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "taskmd"))
		}
	}

	viper.SetEnvPrefix("TASKMD")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// inputPaths returns the positional arguments, or the configured inputs when
// none were given.
func inputPaths(args []string) []string {
	if len(args) > 0 {
		return args
	}
	paths := viper.GetStringSlice("extraction.input_paths")
	if len(paths) == 0 {
		return []string{types.DefaultInputPath}
	}
	return paths
}

// bindFlag ties a flag to a config key so the config file and TASKMD_*
// environment variables can supply it.
func bindFlag(cmd *cobra.Command, key, flag string) {
	if err := viper.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
		panic(fmt.Sprintf("binding flag %s: %v", flag, err))
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
