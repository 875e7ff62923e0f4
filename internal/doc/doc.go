// Package doc owns the parsed-document model: one source file, its content,
// and the syntax tree over it. Documents are immutable once built; every
// edit produces a new Document.
package doc

import (
	"context"
	"fmt"
	"os"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/ssr-dev/ssr/internal/lang"
)

// ParseError reports that the grammar produced no tree for a file.
type ParseError struct {
	Path string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: grammar produced no syntax tree", e.Path)
}

// Document pairs source content with its syntax tree. The tree always
// reflects exactly the content it was parsed from.
type Document struct {
	path    string
	content []byte
	tree    *sitter.Tree
	lang    lang.Language

	lines []string // lazily split, 0-indexed
}

// Open reads and parses a file.
func Open(ctx context.Context, path string, l lang.Language) (*Document, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return FromContent(ctx, path, l, content)
}

// FromContent parses in-memory content, keeping path for display only.
// Used to materialize edited results without touching the filesystem.
func FromContent(ctx context.Context, path string, l lang.Language, content []byte) (*Document, error) {
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(l.Grammar())

	tree, err := parser.ParseCtx(ctx, nil, content)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if tree == nil {
		return nil, &ParseError{Path: path}
	}

	return &Document{
		path:    path,
		content: content,
		tree:    tree,
		lang:    l,
	}, nil
}

func (d *Document) Path() string {
	return d.path
}

func (d *Document) Lang() lang.Language {
	return d.lang
}

// Content returns the document's source text. Callers must not mutate it.
func (d *Document) Content() []byte {
	return d.content
}

// Lines returns the content split on newlines, 0-indexed. The split happens
// once on first use.
func (d *Document) Lines() []string {
	if d.lines == nil {
		d.lines = strings.Split(string(d.content), "\n")
	}
	return d.lines
}
