package render

import (
	"context"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ssr-dev/ssr/internal/doc"
	"github.com/ssr-dev/ssr/internal/lang"
	"github.com/ssr-dev/ssr/internal/query"
)

func TestMatches(t *testing.T) {
	color.NoColor = true

	d, err := doc.FromContent(context.Background(), "f.py", lang.Python, []byte("x = 1\ny = 2\n"))
	require.NoError(t, err)
	q, err := query.Compile(lang.Python, "(integer) @num")
	require.NoError(t, err)

	out := Matches(d, d.Find(q))

	assert.Contains(t, out, "f.py\n")
	assert.Contains(t, out, "capture: num [0]")
	assert.Contains(t, out, "1: x = 1")
	assert.Contains(t, out, "2: y = 2")
}

func TestMatchesEmpty(t *testing.T) {
	d, err := doc.FromContent(context.Background(), "f.py", lang.Python, []byte("x = 1\n"))
	require.NoError(t, err)

	assert.Empty(t, Matches(d, nil))
}
