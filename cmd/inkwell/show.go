package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rpggio/inkwell/internal/ui"
)

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Render a document to the terminal",
	Long:  `Render a document's markdown to the terminal. Opening a document marks it as the most recently used one.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd, os.Stderr)
		if err != nil {
			return err
		}
		defer a.Close()

		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		doc, err := a.docs.Open(cmd.Context(), id)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), ui.FormatHeader(doc.Name, doc.UpdatedAt))
		fmt.Fprint(cmd.OutOrStdout(), ui.FormatMarkdown(doc.Content))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}
