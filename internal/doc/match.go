package doc

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/ssr-dev/ssr/internal/query"
)

// Point is a 0-indexed (row, column) position.
type Point struct {
	Row    uint32
	Column uint32
}

// Capture is one named binding from a successful pattern match. Its range
// and text are resolved against the document at scan time and are never
// updated to reflect later edits.
type Capture struct {
	Index     uint32
	Name      string
	StartByte uint32
	EndByte   uint32
	Start     Point
	End       Point
	Text      string
}

// Match is one successful pattern application at a tree location.
type Match struct {
	ID           uint32
	PatternIndex int
	Captures     []Capture
}

// Find runs a compiled query against the document and collects every match
// eagerly. Ordering is deterministic: pre-order over the tree, pattern
// alternatives in declaration order at each candidate node. Matches whose
// predicates (#eq? and friends) fail are filtered out.
func (d *Document) Find(q *query.Query) []Match {
	cursor := sitter.NewQueryCursor()
	defer cursor.Close()
	cursor.Exec(q.TS(), d.tree.RootNode())

	var matches []Match
	for {
		m, ok := cursor.NextMatch()
		if !ok {
			break
		}
		m = cursor.FilterPredicates(m, d.content)
		if len(m.Captures) == 0 {
			continue
		}

		captures := make([]Capture, 0, len(m.Captures))
		for _, c := range m.Captures {
			node := c.Node
			captures = append(captures, Capture{
				Index:     c.Index,
				Name:      q.CaptureName(c.Index),
				StartByte: node.StartByte(),
				EndByte:   node.EndByte(),
				Start:     Point{Row: node.StartPoint().Row, Column: node.StartPoint().Column},
				End:       Point{Row: node.EndPoint().Row, Column: node.EndPoint().Column},
				Text:      node.Content(d.content),
			})
		}
		matches = append(matches, Match{
			ID:           m.ID,
			PatternIndex: int(m.PatternIndex),
			Captures:     captures,
		})
	}
	return matches
}
