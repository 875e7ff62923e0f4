package walk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypeFilterNoSelectionMatchesEverything(t *testing.T) {
	f := NewTypeFilter()
	assert.True(t, f.Matches("whatever.xyz"))
	assert.True(t, f.Matches("Makefile"))
}

func TestTypeFilterSelect(t *testing.T) {
	f := NewTypeFilter()
	require.NoError(t, f.Select("python"))

	assert.True(t, f.Matches("a.py"))
	assert.True(t, f.Matches("stubs/a.pyi"))
	assert.False(t, f.Matches("a.rs"))
}

func TestTypeFilterSelectUnknown(t *testing.T) {
	f := NewTypeFilter()
	err := f.Select("fortran")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fortran")
}

func TestTypeFilterBazelFilenames(t *testing.T) {
	f := NewTypeFilter()
	require.NoError(t, f.Select("bazel"))

	assert.True(t, f.Matches("pkg/BUILD"))
	assert.True(t, f.Matches("pkg/BUILD.bazel"))
	assert.True(t, f.Matches("defs.bzl"))
	assert.False(t, f.Matches("build.py"))
}

func TestTypeFilterAdd(t *testing.T) {
	tests := []struct {
		name    string
		def     string
		wantErr bool
	}{
		{"new type", "proto:*.proto", false},
		{"multiple globs", "web:*.html,*.css", false},
		{"extend existing", "python:*.pyx", false},
		{"missing colon", "proto", true},
		{"empty name", ":*.proto", true},
		{"empty globs", "proto:", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewTypeFilter()
			err := f.Add(tt.def)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestTypeFilterAddThenSelect(t *testing.T) {
	f := NewTypeFilter()
	require.NoError(t, f.Add("proto:*.proto"))
	require.NoError(t, f.Select("proto"))

	assert.True(t, f.Matches("svc/api.proto"))
	assert.False(t, f.Matches("svc/api.go"))
}

func TestTypeFilterMerge(t *testing.T) {
	f := NewTypeFilter()
	f.Merge(map[string][]string{
		"python": {"*.pyx"},
		"web":    {"*.html"},
	})
	require.NoError(t, f.Select("python"))

	assert.True(t, f.Matches("native.pyx"))
	assert.True(t, f.Matches("plain.py"))
}

func TestTypeFilterMultipleSelections(t *testing.T) {
	f := NewTypeFilter()
	require.NoError(t, f.Select("python"))
	require.NoError(t, f.Select("rust"))

	assert.True(t, f.Matches("a.py"))
	assert.True(t, f.Matches("b.rs"))
	assert.False(t, f.Matches("c.go"))
}
