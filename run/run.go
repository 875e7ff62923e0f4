// Package run drives a per-file operation across many files. Files are
// independent units of work — no document, query, or edit state is shared
// between them — so they run on a bounded worker pool, one worker per file.
// Within a single file, processing stays strictly sequential.
package run

import (
	"context"
	"runtime"

	"go.uber.org/zap"
)

// Result is one file's outcome. Output is whatever the operation wants
// printed for this file; Hit reports whether the operation found or changed
// anything, which drives the process exit code.
type Result struct {
	Path   string
	Output string
	Hit    bool
	Err    error
}

// PerFile processes one file.
type PerFile func(ctx context.Context, path string) (output string, hit bool, err error)

// Process runs fn over every file and returns the results in input order,
// regardless of completion order. A failing file is logged and reported in
// its Result; the rest of the run continues (continue-and-report, never
// abort-on-first-error).
func Process(ctx context.Context, logger *zap.Logger, files []string, fn PerFile) []Result {
	results := make([]Result, len(files))

	maxWorkers := runtime.NumCPU()
	sem := make(chan struct{}, maxWorkers)
	done := make(chan int, len(files))

	for i, path := range files {
		select {
		case <-ctx.Done():
			results[i] = Result{Path: path, Err: ctx.Err()}
			done <- i
			continue
		default:
		}

		sem <- struct{}{}
		go func(i int, path string) {
			defer func() { <-sem }()

			output, hit, err := fn(ctx, path)
			if err != nil && logger != nil {
				logger.Error("error processing file", zap.String("file", path), zap.Error(err))
			}
			results[i] = Result{Path: path, Output: output, Hit: hit, Err: err}
			done <- i
		}(i, path)
	}

	for range files {
		<-done
	}
	return results
}

// AnyHit reports whether any file's operation produced a hit.
func AnyHit(results []Result) bool {
	for _, r := range results {
		if r.Hit {
			return true
		}
	}
	return false
}

// AnyErr reports whether any file failed.
func AnyErr(results []Result) bool {
	for _, r := range results {
		if r.Err != nil {
			return true
		}
	}
	return false
}
