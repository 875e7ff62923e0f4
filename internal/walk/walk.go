// Package walk visits the files a search or replace run should process:
// directory traversal with file-type filtering, plus the .ssr.yaml config
// that can extend the built-in type definitions.
package walk

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Files resolves a mix of file and directory arguments into the list of
// files to process, in argument order then lexical walk order, deduplicated.
// Directories are walked recursively; dot-directories
// (.git and friends) are skipped. The type filter applies only to walked
// files — a file named explicitly on the command line is always included.
func Files(paths []string, filter *TypeFilter) ([]string, error) {
	var files []string
	seen := make(map[string]bool)

	add := func(path string) {
		if !seen[path] {
			seen[path] = true
			files = append(files, path)
		}
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		if !info.IsDir() {
			add(path)
			continue
		}

		err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if name := d.Name(); strings.HasPrefix(name, ".") && p != path {
					return filepath.SkipDir
				}
				return nil
			}
			if !d.Type().IsRegular() {
				return nil
			}
			if filter.Matches(p) {
				add(p)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}
	return files, nil
}

// Config is the on-disk .ssr.yaml shape.
type Config struct {
	Name  string              `yaml:"name"`
	Types map[string][]string `yaml:"types"`
}

// LoadConfig reads a yaml config file. A missing file at the default
// location is not an error; an explicitly named file must exist.
func LoadConfig(path string, mustExist bool) (Config, error) {
	var config Config

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) && !mustExist {
			return config, nil
		}
		return config, fmt.Errorf("%s: %w", path, err)
	}
	defer f.Close()

	if err := yaml.NewDecoder(f).Decode(&config); err != nil {
		return config, fmt.Errorf("%s: %w", path, err)
	}
	return config, nil
}
