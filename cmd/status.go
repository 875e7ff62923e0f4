package cmd

import "github.com/ssr-dev/ssr/run"

// exitStatus maps a run's results to the process exit code: 2 when any
// file failed, otherwise 0 when any file hit (matched or changed) and 1
// when none did.
func exitStatus(results []run.Result) int {
	if run.AnyErr(results) {
		return 2
	}
	if run.AnyHit(results) {
		return 0
	}
	return 1
}
