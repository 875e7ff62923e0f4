package script

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ssr-dev/ssr/internal/doc"
	"github.com/ssr-dev/ssr/internal/edit"
	"github.com/ssr-dev/ssr/internal/lang"
	"github.com/ssr-dev/ssr/internal/query"
)

func mustDoc(t *testing.T, content string) *doc.Document {
	t.Helper()
	d, err := doc.FromContent(context.Background(), "test.py", lang.Python, []byte(content))
	require.NoError(t, err)
	return d
}

func mustQuery(t *testing.T, pattern string) *query.Query {
	t.Helper()
	q, err := query.Compile(lang.Python, pattern)
	require.NoError(t, err)
	return q
}

func TestRunRewritesCapture(t *testing.T) {
	d := mustDoc(t, "x = 1\n")
	q := mustQuery(t, "(integer) @num")

	out, err := NewRunner(0).Run(context.Background(), d, q, `document.edit(found.captures[0], "2")`)
	require.NoError(t, err)
	assert.Equal(t, "x = 2\n", string(out.Content()))
	// the original document is untouched
	assert.Equal(t, "x = 1\n", string(d.Content()))
}

// The capture's range object is reachable by indexing; `range` is a Risor
// keyword, so dot access would not even parse.
func TestRunRangeObjectTarget(t *testing.T) {
	d := mustDoc(t, "x = 1\n")
	q := mustQuery(t, "(integer) @num")

	out, err := NewRunner(0).Run(context.Background(), d, q, `document.edit(found.captures[0]["range"], "2")`)
	require.NoError(t, err)
	assert.Equal(t, "x = 2\n", string(out.Content()))
}

func TestRunZeroMatchesIsIdentity(t *testing.T) {
	d := mustDoc(t, "x = 1\n")
	q := mustQuery(t, "(string) @s")

	out, err := NewRunner(0).Run(context.Background(), d, q, `document.edit([0, 5], "boom")`)
	require.NoError(t, err)
	assert.Equal(t, "x = 1\n", string(out.Content()))
}

func TestRunNoOpScriptIsIdentity(t *testing.T) {
	d := mustDoc(t, "x = 1\n")
	q := mustQuery(t, "(integer) @num")

	out, err := NewRunner(0).Run(context.Background(), d, q, `found.captures[0].text`)
	require.NoError(t, err)
	assert.Equal(t, "x = 1\n", string(out.Content()))
}

func TestRunEveryMatch(t *testing.T) {
	d := mustDoc(t, "a = 1\nb = 2\nc = 3\n")
	q := mustQuery(t, "(integer) @num")

	out, err := NewRunner(0).Run(context.Background(), d, q, `document.edit(found.captures[0], "0")`)
	require.NoError(t, err)
	assert.Equal(t, "a = 0\nb = 0\nc = 0\n", string(out.Content()))
}

func TestRunMatchBindings(t *testing.T) {
	d := mustDoc(t, "x = 1\n")
	q := mustQuery(t, "(integer) @num")

	// rewrite using the capture's own name and text, proving both bindings
	// carry the matcher's values
	script := `
c := found.captures[0]
document.edit(c, c.name + "_" + c.text + "_" + string(found.pattern_index))
`
	out, err := NewRunner(0).Run(context.Background(), d, q, script)
	require.NoError(t, err)
	assert.Equal(t, "x = num_1_0\n", string(out.Content()))
}

func TestRunStateSharedAcrossMatches(t *testing.T) {
	d := mustDoc(t, "a = 1\nb = 2\nc = 3\n")
	q := mustQuery(t, "(integer) @num")

	// Only the first match sees an empty state, so only the first integer
	// is rewritten — later invocations observe earlier writes.
	script := `
n := len(state)
state[found.captures[0].text] = true
if n == 0 {
    document.edit(found.captures[0], "9")
}
`
	out, err := NewRunner(0).Run(context.Background(), d, q, script)
	require.NoError(t, err)
	assert.Equal(t, "a = 9\nb = 2\nc = 3\n", string(out.Content()))
}

func TestRunListRangeForm(t *testing.T) {
	d := mustDoc(t, "x = 1\n")
	q := mustQuery(t, "(integer) @num")

	script := `
r := found.captures[0]["range"]
document.edit([r.start.byte, r.end.byte], "7")
`
	out, err := NewRunner(0).Run(context.Background(), d, q, script)
	require.NoError(t, err)
	assert.Equal(t, "x = 7\n", string(out.Content()))
}

func TestRunBuiltinsAvailable(t *testing.T) {
	d := mustDoc(t, "x = 1\n")
	q := mustQuery(t, "(integer) @num")

	script := `
c := found.captures[0]
document.edit(c, sprintf("%d", len(c.text) + 1))
`
	out, err := NewRunner(0).Run(context.Background(), d, q, script)
	require.NoError(t, err)
	assert.Equal(t, "x = 2\n", string(out.Content()))
}

func TestRunScriptCompileError(t *testing.T) {
	d := mustDoc(t, "x = 1\n")
	q := mustQuery(t, "(integer) @num")

	tests := []struct {
		name   string
		script string
	}{
		{"malformed", `func (`},
		{"undefined variable", `no_such_binding()`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRunner(0).Run(context.Background(), d, q, tt.script)
			require.Error(t, err)
			var compileErr *CompileError
			assert.ErrorAs(t, err, &compileErr)
		})
	}
}

func TestRunScriptRuntimeError(t *testing.T) {
	d := mustDoc(t, "x = 1\n")
	q := mustQuery(t, "(integer) @num")

	_, err := NewRunner(0).Run(context.Background(), d, q, `error("boom")`)
	require.Error(t, err)
	var runtimeErr *RuntimeError
	require.ErrorAs(t, err, &runtimeErr)
	assert.Equal(t, "test.py", runtimeErr.Path)
	assert.Contains(t, runtimeErr.Message, "boom")
}

func TestRunOverlappingEdits(t *testing.T) {
	d := mustDoc(t, "x = 1\n")
	q := mustQuery(t, "(integer) @num")

	script := `
document.edit(found.captures[0], "2")
document.edit(found.captures[0], "3")
`
	_, err := NewRunner(0).Run(context.Background(), d, q, script)
	require.Error(t, err)
	var overlap *edit.OverlapError
	assert.ErrorAs(t, err, &overlap)
}

func TestRunBadEditArguments(t *testing.T) {
	d := mustDoc(t, "x = 1\n")
	q := mustQuery(t, "(integer) @num")

	tests := []struct {
		name   string
		script string
	}{
		{"wrong arity", `document.edit([0, 1])`},
		{"non-range target", `document.edit("nope", "x")`},
		{"map without range shape", `document.edit({"foo": 1}, "x")`},
		{"short list", `document.edit([1], "x")`},
		{"non-string replacement", `document.edit([0, 1], 42)`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRunner(0).Run(context.Background(), d, q, tt.script)
			require.Error(t, err)
			var runtimeErr *RuntimeError
			assert.ErrorAs(t, err, &runtimeErr)
		})
	}
}

func TestRunBudgetStopsRunawayScript(t *testing.T) {
	d := mustDoc(t, "x = 1\n")
	q := mustQuery(t, "(integer) @num")

	script := `
for {}
`
	_, err := NewRunner(50*time.Millisecond).Run(context.Background(), d, q, script)
	require.Error(t, err)
}
