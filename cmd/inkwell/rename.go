package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var renameCmd = &cobra.Command{
	Use:   "rename <id> <name>",
	Short: "Rename a document",
	Args:  cobra.ExactArgs(2),
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
		doc, err := a.docs.Rename(cmd.Context(), id, args[1])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Renamed document %d to %s\n", doc.ID, doc.Name)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(renameCmd)
}
