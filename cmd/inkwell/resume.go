package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rpggio/inkwell/internal/ui"
)

var resumeCmd = &cobra.Command{
	Use:   "resume",
	Short: "Render the most recently used document",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd, os.Stderr)
		if err != nil {
			return err
		}
		defer a.Close()

		doc, err := a.docs.Resume(cmd.Context())
		if err != nil {
			return err
		}
		// Resume counts as using the document.
		doc, err = a.docs.Open(cmd.Context(), doc.ID)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), ui.FormatHeader(doc.Name, doc.UpdatedAt))
		fmt.Fprint(cmd.OutOrStdout(), ui.FormatMarkdown(doc.Content))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(resumeCmd)
}
