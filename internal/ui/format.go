// Package ui formats documents for terminal output, using glamour for
// markdown and fatih/color for styling.
package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/fatih/color"

	"github.com/rpggio/inkwell/internal/domain/editor"
	"github.com/rpggio/inkwell/internal/projection"
)

var (
	faint = color.New(color.Faint).SprintFunc()
	bold  = color.New(color.Bold).SprintFunc()
	cyan  = color.New(color.FgCyan).SprintFunc()
)

// FormatListItem renders one projection row.
func FormatListItem(row projection.Row) string {
	var sb strings.Builder

	marker := " "
	if row.IsCurrent {
		marker = cyan(">")
	}
	sb.WriteString(fmt.Sprintf("%s %s  %s\n", marker, faint(fmt.Sprintf("%4d", row.ID)), bold(row.Name)))

	status := ""
	if row.SaveState != editor.StateIdle {
		status = "  " + cyan(row.SaveState.String())
	}
	sb.WriteString(fmt.Sprintf("         %s %s%s\n",
		faint("Updated:"),
		faint(row.UpdatedAt.Format("2006-01-02 15:04")),
		status))

	return sb.String()
}

// FormatHeader renders a document header line.
func FormatHeader(name string, updatedAt time.Time) string {
	return fmt.Sprintf("%s\n%s %s\n", bold(name),
		faint("Updated:"), faint(updatedAt.Format("2006-01-02 15:04")))
}

// FormatMarkdown renders markdown for the terminal, falling back to the
// raw source when rendering fails.
func FormatMarkdown(content string) string {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return content
	}
	out, err := renderer.Render(content)
	if err != nil {
		return content
	}
	return out
}
