package walk

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// Default type definitions, modeled on ripgrep's built-in type list:
// https://github.com/BurntSushi/ripgrep/blob/master/crates/ignore/src/default_types.rs
var defaultTypes = map[string][]string{
	"bazel":      {"BUILD", "BUILD.bazel", "WORKSPACE", "WORKSPACE.bazel", "*.bzl", "*.bazel"},
	"go":         {"*.go"},
	"javascript": {"*.js", "*.mjs", "*.cjs", "*.jsx"},
	"python":     {"*.py", "*.pyi"},
	"rust":       {"*.rs"},
}

// TypeFilter decides which walked files are eligible for processing.
// With no selected types every regular file passes.
type TypeFilter struct {
	defs     map[string][]string
	selected []string
}

// NewTypeFilter starts from the built-in definitions.
func NewTypeFilter() *TypeFilter {
	defs := make(map[string][]string, len(defaultTypes))
	for name, globs := range defaultTypes {
		defs[name] = append([]string(nil), globs...)
	}
	return &TypeFilter{defs: defs}
}

// Add parses a definition of the form "name:glob1,glob2", creating or
// extending the named type.
func (f *TypeFilter) Add(def string) error {
	name, globs, ok := strings.Cut(def, ":")
	name = strings.TrimSpace(name)
	if !ok || name == "" || strings.TrimSpace(globs) == "" {
		return fmt.Errorf("invalid type definition %q (want name:glob,glob)", def)
	}
	for _, g := range strings.Split(globs, ",") {
		g = strings.TrimSpace(g)
		if g == "" {
			continue
		}
		f.defs[name] = append(f.defs[name], g)
	}
	return nil
}

// Merge folds externally configured definitions (e.g. from .ssr.yaml) into
// the filter, extending any existing names.
func (f *TypeFilter) Merge(types map[string][]string) {
	for name, globs := range types {
		f.defs[name] = append(f.defs[name], globs...)
	}
}

// Select restricts the filter to one named type. Selecting an undefined
// type is an error so a typo never silently matches nothing.
func (f *TypeFilter) Select(name string) error {
	if _, ok := f.defs[name]; !ok {
		return fmt.Errorf("unknown file type %q (known: %s)", name, strings.Join(f.Names(), ", "))
	}
	f.selected = append(f.selected, name)
	return nil
}

// Matches reports whether a file path passes the selected types.
func (f *TypeFilter) Matches(path string) bool {
	if len(f.selected) == 0 {
		return true
	}
	base := filepath.Base(path)
	for _, name := range f.selected {
		for _, glob := range f.defs[name] {
			if ok, _ := filepath.Match(glob, base); ok {
				return true
			}
		}
	}
	return false
}

// Names lists the defined type names in sorted order.
func (f *TypeFilter) Names() []string {
	names := make([]string, 0, len(f.defs))
	for name := range f.defs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
