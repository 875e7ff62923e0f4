// Package render formats matches for terminal output.
package render

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/ssr-dev/ssr/internal/doc"
)

var (
	fileStyle    = color.New(color.FgCyan, color.Bold)
	captureStyle = color.New(color.FgYellow, color.Bold)
	lineStyle    = color.New(color.FgHiBlue)
)

// Matches renders every match of one document: a "capture: name [pattern]"
// header per capture followed by the capture's source lines, numbered
// 1-indexed in a right-aligned gutter sized to the file's line count. A
// blank line separates matches.
func Matches(d *doc.Document, matches []doc.Match) string {
	if len(matches) == 0 {
		return ""
	}

	var b strings.Builder
	lines := d.Lines()
	gutter := len(fmt.Sprintf("%d", len(lines)))

	b.WriteString(fileStyle.Sprint(d.Path()))
	b.WriteString("\n")
	for _, m := range matches {
		for _, c := range m.Captures {
			fmt.Fprintf(&b, "%s  %s %s [%d]\n",
				strings.Repeat(" ", gutter),
				captureStyle.Sprint("capture:"), c.Name, m.PatternIndex)

			first := int(c.Start.Row)
			last := int(c.End.Row)
			for ln := first; ln <= last && ln < len(lines); ln++ {
				fmt.Fprintf(&b, "%s: %s\n", lineStyle.Sprintf("%*d", gutter, ln+1), lines[ln])
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}
