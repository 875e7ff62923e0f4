// Package edit accumulates text replacements recorded by an edit script and
// splices them into source content.
package edit

import (
	"fmt"
	"sort"
)

// Change is one replacement: a byte range in the ORIGINAL content and the
// text that replaces it.
type Change struct {
	Start uint32
	End   uint32
	Text  string
}

// OverlapError reports two changes whose ranges collide. Applying both would
// corrupt the lower one's offsets, so the whole edit run is rejected instead.
type OverlapError struct {
	A Change
	B Change
}

func (e *OverlapError) Error() string {
	return fmt.Sprintf("overlapping edits: [%d, %d) and [%d, %d)", e.A.Start, e.A.End, e.B.Start, e.B.End)
}

// Set collects the changes recorded across all matches of one edit run.
// Insertion order carries no meaning; Apply decides the splice order.
type Set struct {
	changes []Change
}

// NewSet returns an empty edit set.
func NewSet() *Set {
	return &Set{}
}

// Record appends a change. This is the only mutation the scripting surface
// can perform.
func (s *Set) Record(start, end uint32, text string) {
	s.changes = append(s.changes, Change{Start: start, End: end, Text: text})
}

// Len reports the number of recorded changes.
func (s *Set) Len() int {
	return len(s.changes)
}

// Apply splices every recorded change into content and returns the result.
// Changes are sorted by start offset descending and spliced tail-first, so
// a splice never shifts the stored offsets of the not-yet-processed changes
// at lower offsets. That only holds for disjoint ranges: after sorting, any
// range reaching into its higher neighbour, or two changes sharing a start
// offset, fails with OverlapError. All ranges are validated before any text
// is touched; a range reaching past the end of content is rejected too.
func (s *Set) Apply(content []byte) ([]byte, error) {
	if len(s.changes) == 0 {
		return content, nil
	}

	changes := make([]Change, len(s.changes))
	copy(changes, s.changes)
	sort.Slice(changes, func(i, j int) bool {
		return changes[i].Start > changes[j].Start
	})

	for i, c := range changes {
		if c.End < c.Start {
			return nil, fmt.Errorf("invalid edit range [%d, %d)", c.Start, c.End)
		}
		if c.End > uint32(len(content)) {
			return nil, fmt.Errorf("edit range [%d, %d) exceeds content length %d", c.Start, c.End, len(content))
		}
		if i+1 < len(changes) {
			// changes[i+1] starts at or below c.Start
			next := changes[i+1]
			if next.Start == c.Start || next.End > c.Start {
				return nil, &OverlapError{A: next, B: c}
			}
		}
	}

	out := make([]byte, len(content))
	copy(out, content)
	for _, c := range changes {
		spliced := make([]byte, 0, len(out)-int(c.End-c.Start)+len(c.Text))
		spliced = append(spliced, out[:c.Start]...)
		spliced = append(spliced, c.Text...)
		spliced = append(spliced, out[c.End:]...)
		out = spliced
	}
	return out, nil
}
