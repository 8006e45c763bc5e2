// Package output provides formatters for CLI output.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"taskboard/internal/taskview"
)

const (
	// HeadingSeparator underlines the heading.
	HeadingSeparator = "------------"

	// contentIndent lines content up under the title.
	contentIndent = "      "
)

// Format names accepted by --format.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// WriteTree renders a view tree in the named format.
func WriteTree(w io.Writer, format string, root taskview.Node) error {
	switch strings.ToLower(format) {
	case "", FormatText:
		FormatTree(w, root)
		return nil
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(root)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(root); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// FormatTree writes the text rendering of a view tree.
func FormatTree(w io.Writer, root taskview.Node) {
	num := 0
	for _, n := range root.Children {
		switch n.Kind {
		case taskview.KindEmpty:
			fmt.Fprintln(w, n.Text)
		case taskview.KindHeading:
			FormatHeading(w, n.Text)
		case taskview.KindTask:
			num++
			FormatTask(w, num, n)
		}
	}
}

// FormatHeading formats the list heading.
func FormatHeading(w io.Writer, text string) {
	fmt.Fprintln(w, text)
	fmt.Fprintln(w, HeadingSeparator)
}

// FormatTask formats a task node.
// Format: "{N:>4}  {TITLE}\n" followed by each content line indented by six spaces.
func FormatTask(w io.Writer, num int, n taskview.Node) {
	title := normalizeTitle(n.Title)
	if n.HasClass(taskview.ClassFadeOut) {
		title += " (removing)"
	}
	fmt.Fprintf(w, "%4d  %s\n", num, title)
	for _, line := range contentLines(n.Content) {
		fmt.Fprintf(w, "%s%s\n", contentIndent, line)
	}
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

// contentLines splits content into display lines. Content is shown
// preformatted, so blank lines inside it are kept and only trailing ones go.
func contentLines(content string) []string {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.TrimRight(content, "\n")
	if content == "" {
		return nil
	}
	return strings.Split(content, "\n")
}
