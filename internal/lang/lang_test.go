package lang

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromString(t *testing.T) {
	tests := []struct {
		input    string
		expected Language
	}{
		{"python", Python},
		{"Python", Python},
		{"  rust  ", Rust},
		{"GO", Go},
		{"bazel", Bazel},
		{"javascript", JavaScript},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			l, err := FromString(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, l)
		})
	}
}

func TestFromStringUnsupported(t *testing.T) {
	_, err := FromString("cobol")
	require.Error(t, err)
	var unsupported *UnsupportedError
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, "cobol", unsupported.Name)
}

func TestGrammar(t *testing.T) {
	for _, name := range Names() {
		l, err := FromString(name)
		require.NoError(t, err)
		assert.NotNil(t, l.Grammar())
	}
}

func TestBazelUsesPythonGrammar(t *testing.T) {
	assert.Equal(t, Python.Grammar(), Bazel.Grammar())
}

func TestNamesSorted(t *testing.T) {
	names := Names()
	assert.Equal(t, []string{"bazel", "go", "javascript", "python", "rust"}, names)
}
