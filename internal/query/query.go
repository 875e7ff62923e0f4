// Package query compiles structural patterns against a language grammar.
//
// Patterns use the tree-sitter s-expression query syntax:
// https://tree-sitter.github.io/tree-sitter/using-parsers#pattern-matching-with-queries
package query

import (
	"errors"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/ssr-dev/ssr/internal/lang"
)

// CompileError reports a malformed pattern or a reference to a node kind or
// field the language does not define. Offset is a byte position into the
// pattern source.
type CompileError struct {
	Message string
	Offset  uint32
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("query compile error at offset %d: %s", e.Offset, e.Message)
}

// Query is a compiled pattern with named capture slots. It is independent of
// any document and safe to run against many of them.
type Query struct {
	ts           *sitter.Query
	captureNames []string
}

// Compile compiles a pattern for the given language. Capture names are
// resolved once at compile time.
func Compile(l lang.Language, source string) (*Query, error) {
	ts, err := sitter.NewQuery([]byte(source), l.Grammar())
	if err != nil {
		var qe *sitter.QueryError
		if errors.As(err, &qe) {
			return nil, &CompileError{Message: qe.Message, Offset: qe.Offset}
		}
		return nil, &CompileError{Message: err.Error()}
	}

	names := make([]string, ts.CaptureCount())
	for i := range names {
		names[i] = ts.CaptureNameForId(uint32(i))
	}

	return &Query{ts: ts, captureNames: names}, nil
}

// CaptureName returns the name declared for a capture slot. The mapping is
// stable for the lifetime of the query.
func (q *Query) CaptureName(slot uint32) string {
	return q.captureNames[slot]
}

// TS exposes the underlying tree-sitter query for cursor execution.
func (q *Query) TS() *sitter.Query {
	return q.ts
}
