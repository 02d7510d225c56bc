package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rpggio/inkwell/internal/projection"
	"github.com/rpggio/inkwell/internal/ui"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List documents, most recently updated first",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd, os.Stderr)
		if err != nil {
			return err
		}
		defer a.Close()

		summaries, err := a.docs.Summaries(cmd.Context())
		if err != nil {
			return err
		}
		if len(summaries) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No documents yet. Create one with: inkwell new")
			return nil
		}
		rows := projection.Project(summaries, 0, nil)
		for _, row := range rows {
			fmt.Fprintln(cmd.OutOrStdout(), ui.FormatListItem(row))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
