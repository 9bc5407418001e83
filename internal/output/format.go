// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"planify/internal/service"
)

const (
	// Separator sets the header apart from the task list.
	Separator = "------------"

	// DateLayout is how due dates are printed and parsed.
	DateLayout = "2006-01-02"
)

// FormatTask formats a task line.
// Format: "{N:>4}  [x] {TITLE}" with "  ({DUE})" appended when due is set.
func FormatTask(w io.Writer, num int, task service.Task, due string) {
	mark := " "
	if task.IsChecked {
		mark = "x"
	}
	fmt.Fprintf(w, "%4d  [%s] %s", num, mark, normalizeTitle(task.Title))
	if due != "" {
		fmt.Fprintf(w, "  (%s)", due)
	}
	fmt.Fprintln(w)
}

// FormatHeader formats the greeting block above the list.
func FormatHeader(w io.Writer, greeting string) {
	fmt.Fprintln(w, greeting)
	fmt.Fprintln(w, Separator)
}

// FormatQuote formats a quote as two lines: the text in quotes, then the author.
func FormatQuote(w io.Writer, q service.Quote) {
	fmt.Fprintf(w, "\"%s\"\n", normalizeTitle(q.Text))
	author := strings.TrimSpace(q.Author)
	if author == "" {
		author = "Unknown"
	}
	fmt.Fprintf(w, "— %s\n", author)
}

// FormatDue renders a due date in the local zone, or "" for no due date.
func FormatDue(task service.Task) string {
	if task.DueDate == nil {
		return ""
	}
	return task.DueDate.Local().Format(DateLayout)
}

// normalizeTitle normalizes a task title for display.
// - Empty or whitespace-only titles become "(untitled)"
// - Newlines are replaced with spaces
func normalizeTitle(title string) string {
	title = strings.ReplaceAll(title, "\r", " ")
	title = strings.ReplaceAll(title, "\n", " ")

	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}
