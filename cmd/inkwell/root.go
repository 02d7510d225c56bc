package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "inkwell",
	Short:         "Local-first markdown documents with autosave",
	Long:          `Inkwell stores markdown documents in a local SQLite database, keeps them ordered by name and recency, and autosaves edits after a quiet period.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "database file path (overrides config and INKWELL_DB_PATH)")
}
