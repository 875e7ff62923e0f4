// Package diff renders unified diffs between two documents' content.
package diff

import (
	"strings"

	"github.com/fatih/color"
	"github.com/pmezard/go-difflib/difflib"

	"github.com/ssr-dev/ssr/internal/doc"
)

const contextLines = 5

var (
	addStyle    = color.New(color.FgGreen)
	deleteStyle = color.New(color.FgRed)
	hunkStyle   = color.New(color.FgCyan)
)

// Unified renders a line-based unified diff between the contents of a and b,
// with "a/<path>" and "b/<path>" headers and 5 lines of context per hunk.
// An empty string means the documents have identical content.
func Unified(a, b *doc.Document) (string, error) {
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(a.Content())),
		B:        difflib.SplitLines(string(b.Content())),
		FromFile: "a/" + a.Path(),
		ToFile:   "b/" + b.Path(),
		Context:  contextLines,
	})
}

// Changed reports whether a rendered diff is non-empty, for no-op detection.
func Changed(unified string) bool {
	return unified != ""
}

// Colorize styles added, removed, and hunk-header lines for terminal output.
// The fatih/color package disables itself when stdout is not a terminal.
func Colorize(unified string) string {
	if unified == "" {
		return unified
	}
	lines := strings.Split(unified, "\n")
	for i, line := range lines {
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
			// headers stay plain
		case strings.HasPrefix(line, "@@"):
			lines[i] = hunkStyle.Sprint(line)
		case strings.HasPrefix(line, "+"):
			lines[i] = addStyle.Sprint(line)
		case strings.HasPrefix(line, "-"):
			lines[i] = deleteStyle.Sprint(line)
		}
	}
	return strings.Join(lines, "\n")
}
