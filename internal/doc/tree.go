package doc

import (
	"fmt"
	"io"

	sitter "github.com/smacker/go-tree-sitter"
)

// WriteTree serializes the document's syntax tree, one line per named node,
// in pre-order. Each line carries a 2-space indent per nesting depth, an
// optional "field: " prefix when the node hangs off a named field of its
// parent, the node kind, and its inclusive start / exclusive end positions
// as 0-indexed (row, column) pairs. Unnamed nodes are walked through but
// never printed.
//
// The walk is an iterative first-child / next-sibling / parent cursor loop,
// so deeply nested inputs cannot blow the stack.
func (d *Document) WriteTree(w io.Writer) error {
	cursor := sitter.NewTreeCursor(d.tree.RootNode())
	defer cursor.Close()

	needsNewline := false
	indent := 0
	visitedChildren := false
	for {
		node := cursor.CurrentNode()
		named := node.IsNamed()
		if visitedChildren {
			if named {
				if _, err := io.WriteString(w, ")"); err != nil {
					return err
				}
				needsNewline = true
			}
			if cursor.GoToNextSibling() {
				visitedChildren = false
			} else if cursor.GoToParent() {
				visitedChildren = true
				indent--
			} else {
				break
			}
			continue
		}

		if named {
			if needsNewline {
				if _, err := io.WriteString(w, "\n"); err != nil {
					return err
				}
			}
			for i := 0; i < indent; i++ {
				if _, err := io.WriteString(w, "  "); err != nil {
					return err
				}
			}
			if field := cursor.CurrentFieldName(); field != "" {
				if _, err := fmt.Fprintf(w, "%s: ", field); err != nil {
					return err
				}
			}
			start, end := node.StartPoint(), node.EndPoint()
			if _, err := fmt.Fprintf(w, "(%s [%d, %d] - [%d, %d]",
				node.Type(), start.Row, start.Column, end.Row, end.Column); err != nil {
				return err
			}
			needsNewline = true
		}

		if cursor.GoToFirstChild() {
			visitedChildren = false
			indent++
		} else {
			visitedChildren = true
		}
	}
	return nil
}
