package main

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/spf13/cobra"
)

var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit a document in $EDITOR",
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

		content, changed, err := openEditor(doc.Content)
		if err != nil {
			return err
		}
		if !changed {
			fmt.Fprintln(cmd.OutOrStdout(), "No changes.")
			return nil
		}

		doc.Content = content
		if err := a.docs.Save(cmd.Context(), doc); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Saved document %d: %s\n", doc.ID, doc.Name)
		return nil
	},
}

// openEditor round-trips content through $EDITOR via a temp file and
// reports whether it changed.
func openEditor(initial string) (string, bool, error) {
	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = "vim"
	}

	tmp, err := os.CreateTemp("", "inkwell-*.md")
	if err != nil {
		return "", false, fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(initial); err != nil {
		tmp.Close()
		return "", false, fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", false, fmt.Errorf("failed to close temp file: %w", err)
	}

	ed := exec.Command(editor, tmp.Name())
	ed.Stdin = os.Stdin
	ed.Stdout = os.Stdout
	ed.Stderr = os.Stderr
	if err := ed.Run(); err != nil {
		return "", false, fmt.Errorf("editor exited with error: %w", err)
	}

	edited, err := os.ReadFile(tmp.Name())
	if err != nil {
		return "", false, fmt.Errorf("failed to read edited file: %w", err)
	}
	return string(edited), string(edited) != initial, nil
}

func init() {
	rootCmd.AddCommand(editCmd)
}
