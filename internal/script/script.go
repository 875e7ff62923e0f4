// Package script runs a user-supplied edit script once per pattern match.
//
// Scripts are Risor programs with the standard builtins (len, string,
// sprintf, ...) available. The host adds exactly two bindings per
// invocation plus one shared map:
//
//   - document — an object whose only member is edit(target, text), which
//     records a replacement; scripts cannot read or mutate content directly.
//   - found — the current match: id, pattern_index, and captures, each
//     capture exposing index, name, range, and text.
//   - state — a mutable map shared across every invocation of one edit run,
//     so a script can carry values from one match to the next.
//
// edit's target names a byte range in the ORIGINAL content: a capture
// object (`document.edit(found.captures[0], "2")`), a range object, or a
// plain [start, end] list. Because `range` is a reserved keyword in Risor,
// a capture's range object is reached by indexing — `c["range"].start.byte`
// — rather than dot access.
package script

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/risor-io/risor/builtins"
	"github.com/risor-io/risor/compiler"
	"github.com/risor-io/risor/object"
	"github.com/risor-io/risor/parser"
	"github.com/risor-io/risor/vm"

	"github.com/ssr-dev/ssr/internal/doc"
	"github.com/ssr-dev/ssr/internal/edit"
	"github.com/ssr-dev/ssr/internal/query"
)

// CompileError reports a script that failed to parse or compile.
type CompileError struct {
	Message string
}

func (e *CompileError) Error() string {
	return "script compile error: " + e.Message
}

// RuntimeError reports a script that failed while running against a match.
type RuntimeError struct {
	Path    string
	Message string
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("%s: script runtime error: %s", e.Path, e.Message)
}

// baseGlobals is Risor's default builtin set; scripts see it alongside the
// host bindings, the same way risor.Eval provides it.
var baseGlobals = builtins.Builtins()

var hostNames = []string{"document", "found", "state"}

func compileGlobalNames() []string {
	names := make([]string, 0, len(baseGlobals)+len(hostNames))
	for name := range baseGlobals {
		names = append(names, name)
	}
	names = append(names, hostNames...)
	sort.Strings(names)
	return names
}

// Runner executes edit scripts with a per-invocation wall-clock budget.
// A zero budget means no limit.
type Runner struct {
	budget time.Duration
}

func NewRunner(budget time.Duration) *Runner {
	return &Runner{budget: budget}
}

// Run applies the edit protocol to one document: compile the query, collect
// ALL matches up front, run the script once per match in matcher order, then
// splice the recorded edits and re-parse into a brand-new document.
//
// The script never observes a partially edited document — every capture's
// range and text come from the pre-edit scan. Matches run strictly
// sequentially; one invocation completes before the next begins. Any compile
// or runtime failure aborts the whole run for this document, discarding the
// recorded edits and leaving the original untouched.
func (r *Runner) Run(ctx context.Context, d *doc.Document, q *query.Query, source string) (*doc.Document, error) {
	prog, err := parser.Parse(ctx, source)
	if err != nil {
		return nil, &CompileError{Message: err.Error()}
	}
	code, err := compiler.Compile(prog, compiler.WithGlobalNames(compileGlobalNames()))
	if err != nil {
		return nil, &CompileError{Message: err.Error()}
	}

	matches := d.Find(q)

	// The set is owned by this loop; edit() below is only ever invoked from
	// inside the current vm.Run call, so no locking is needed.
	set := edit.NewSet()
	document := object.NewMap(map[string]object.Object{
		"edit": object.NewBuiltin("edit", func(_ context.Context, args ...object.Object) object.Object {
			if len(args) != 2 {
				return object.Errorf("type error: edit() takes exactly 2 arguments (%d given)", len(args))
			}
			start, end, errObj := rangeArg(args[0])
			if errObj != nil {
				return errObj
			}
			text, argErr := object.AsString(args[1])
			if argErr != nil {
				return argErr
			}
			set.Record(start, end, text)
			return object.Nil
		}),
	})
	state := object.NewMap(map[string]object.Object{})

	globals := make(map[string]any, len(baseGlobals)+len(hostNames))
	for name, obj := range baseGlobals {
		globals[name] = obj
	}
	globals["document"] = document
	globals["state"] = state

	for _, m := range matches {
		globals["found"] = matchObject(m)
		if err := r.runOne(ctx, code, globals); err != nil {
			return nil, &RuntimeError{Path: d.Path(), Message: err.Error()}
		}
	}

	content, err := set.Apply(d.Content())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", d.Path(), err)
	}
	return doc.FromContent(ctx, d.Path(), d.Lang(), content)
}

func (r *Runner) runOne(ctx context.Context, code *compiler.Code, globals map[string]any) error {
	if r.budget > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.budget)
		defer cancel()
	}
	_, err := vm.Run(ctx, code, vm.WithGlobals(globals))
	return err
}

func matchObject(m doc.Match) *object.Map {
	captures := make([]object.Object, len(m.Captures))
	for i, c := range m.Captures {
		captures[i] = object.NewMap(map[string]object.Object{
			"index": object.NewInt(int64(c.Index)),
			"name":  object.NewString(c.Name),
			"range": rangeObject(c),
			"text":  object.NewString(c.Text),
		})
	}
	return object.NewMap(map[string]object.Object{
		"id":            object.NewInt(int64(m.ID)),
		"pattern_index": object.NewInt(int64(m.PatternIndex)),
		"captures":      object.NewList(captures),
	})
}

func rangeObject(c doc.Capture) *object.Map {
	return object.NewMap(map[string]object.Object{
		"start": object.NewMap(map[string]object.Object{
			"byte":   object.NewInt(int64(c.StartByte)),
			"row":    object.NewInt(int64(c.Start.Row)),
			"column": object.NewInt(int64(c.Start.Column)),
		}),
		"end": object.NewMap(map[string]object.Object{
			"byte":   object.NewInt(int64(c.EndByte)),
			"row":    object.NewInt(int64(c.End.Row)),
			"column": object.NewInt(int64(c.End.Column)),
		}),
	})
}

// rangeArg resolves edit()'s target: a capture object (carrying a "range"
// member), a bare range object, or a two-element [start, end] list.
func rangeArg(arg object.Object) (start, end uint32, errObj object.Object) {
	switch v := arg.(type) {
	case *object.Map:
		if r, ok := v.Value()["range"]; ok {
			rm, err := object.AsMap(r)
			if err != nil {
				return 0, 0, err
			}
			return rangeFromMap(rm)
		}
		return rangeFromMap(v)
	case *object.List:
		items := v.Value()
		if len(items) != 2 {
			return 0, 0, object.Errorf("type error: edit() range list must have exactly 2 elements")
		}
		s, err := object.AsInt(items[0])
		if err != nil {
			return 0, 0, err
		}
		e, err := object.AsInt(items[1])
		if err != nil {
			return 0, 0, err
		}
		return uint32(s), uint32(e), nil
	default:
		return 0, 0, object.Errorf("type error: edit() target must be a capture, range object, or [start, end] list (got %s)", arg.Type())
	}
}

func rangeFromMap(m *object.Map) (start, end uint32, errObj object.Object) {
	s, err := byteOf(m, "start")
	if err != nil {
		return 0, 0, err
	}
	e, err := byteOf(m, "end")
	if err != nil {
		return 0, 0, err
	}
	return s, e, nil
}

func byteOf(m *object.Map, key string) (uint32, object.Object) {
	point, ok := m.Value()[key]
	if !ok {
		return 0, object.Errorf("type error: edit() range is missing %q", key)
	}
	pm, err := object.AsMap(point)
	if err != nil {
		return 0, err
	}
	b, ok := pm.Value()["byte"]
	if !ok {
		return 0, object.Errorf("type error: edit() range %s has no byte offset", key)
	}
	n, err := object.AsInt(b)
	if err != nil {
		return 0, err
	}
	return uint32(n), nil
}
