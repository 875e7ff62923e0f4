// Package lang maps user-facing language names to tree-sitter grammars.
package lang

import (
	"fmt"
	"sort"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/golang"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/python"
	"github.com/smacker/go-tree-sitter/rust"
)

// Language identifies one supported grammar.
type Language string

const (
	Bazel      Language = "bazel"
	Go         Language = "go"
	JavaScript Language = "javascript"
	Python     Language = "python"
	Rust       Language = "rust"
)

// UnsupportedError is returned when a language name has no registered grammar.
type UnsupportedError struct {
	Name string
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("unsupported language: %q (supported: %s)", e.Name, strings.Join(Names(), ", "))
}

// Bazel's Starlark is close enough to Python for the grammar to apply.
var grammars = map[Language]func() *sitter.Language{
	Bazel:      python.GetLanguage,
	Go:         golang.GetLanguage,
	JavaScript: javascript.GetLanguage,
	Python:     python.GetLanguage,
	Rust:       rust.GetLanguage,
}

// FromString resolves a user-supplied language name. Matching is
// case-insensitive and ignores surrounding whitespace.
func FromString(s string) (Language, error) {
	l := Language(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := grammars[l]; !ok {
		return "", &UnsupportedError{Name: s}
	}
	return l, nil
}

// Grammar returns the tree-sitter grammar backing l.
func (l Language) Grammar() *sitter.Language {
	g, ok := grammars[l]
	if !ok {
		panic(fmt.Sprintf("lang: no grammar registered for %q", string(l)))
	}
	return g()
}

func (l Language) String() string {
	return string(l)
}

// Names lists the supported language names in sorted order.
func Names() []string {
	names := make([]string, 0, len(grammars))
	for l := range grammars {
		names = append(names, string(l))
	}
	sort.Strings(names)
	return names
}
