// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Default locations used when neither flags nor the config file name one.
const (
	DefaultInputPath  = "data/tasks.md"
	DefaultOutputPath = "tasks.json"
	DefaultStoreDir   = ".taskmd"
	DefaultIndexDir   = ".taskmd/index"
)

// OutputFormat selects the serialization of an extracted task list.
type OutputFormat string

const (
	FormatJSON OutputFormat = "json"
	FormatYAML OutputFormat = "yaml"
)

// ExtractionConfig holds settings for the extract stage.
type ExtractionConfig struct {
	// InputPaths lists the markdown documents to read (default data/tasks.md).
	InputPaths []string `json:"input_paths" yaml:"input_paths"`

	// OutputPath is where the task list is written (default tasks.json).
	OutputPath string `json:"output_path" yaml:"output_path"`

	// Format selects json or yaml output.
	Format OutputFormat `json:"format" yaml:"format"`

	// Quiet suppresses the per-task diagnostic dump.
	Quiet bool `json:"quiet" yaml:"quiet"`
}

// StoreConfig holds settings for the SQLite task store.
type StoreConfig struct {
	// Dir contains the tasks.db database file.
	Dir string `json:"dir" yaml:"dir"`
}

// IndexConfig holds settings for the full-text search index.
type IndexConfig struct {
	// Dir is the on-disk bleve index directory.
	Dir string `json:"dir" yaml:"dir"`

	// MaxResults is the default number of search hits (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// Config groups all stage configurations.
type Config struct {
	Extraction ExtractionConfig `json:"extraction" yaml:"extraction"`
	Store      StoreConfig      `json:"store" yaml:"store"`
	Index      IndexConfig      `json:"index" yaml:"index"`
}
