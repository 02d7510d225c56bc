package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var newCmd = &cobra.Command{
	Use:   "new [name]",
	Short: "Create a new document",
	Long:  `Create a new document. Without a name, the next free "Document {n}" name is assigned.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd, os.Stderr)
		if err != nil {
			return err
		}
		defer a.Close()

		var name string
		if len(args) > 0 {
			name = args[0]
		}
		doc, err := a.docs.Create(cmd.Context(), name)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created document %d: %s\n", doc.ID, doc.Name)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(newCmd)
}
