package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// Version information (set via ldflags at build time)
var (
	Version = "0.0.1-dev"
	Commit  = "unknown"
)

// CLI flags that override config file values
var (
	cfgFile    string
	policyFile string
	logLevel   string
	logFormat  string
)

var rootCmd = &cobra.Command{
	Use:   "schemix",
	Short: "Cross-table relational schema inference",
	Long: `Infers the relational structure of loosely related tabular datasets:
primary keys, foreign-key relationships, module grouping and data-quality
diagnostics, from the data itself rather than declared constraints.

The analysis pipeline:
  1. Profile every column (uniqueness, nullability, semantic type)
  2. Detect the best primary-key candidate per table
  3. Match candidate foreign keys by value-set overlap
  4. Resolve edge direction against the entity hierarchy
  5. Filter descriptive columns and classify confidence
  6. Compose modules and report diagnostics`,
	Version: Version,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"Path to configuration file")
	rootCmd.PersistentFlags().StringVar(&policyFile, "policy", "",
		"Path to domain policy file (overrides built-in banking policy)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"Override log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "",
		"Override log format (json, text)")
}
