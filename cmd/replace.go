package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ssr-dev/ssr/internal/diff"
	"github.com/ssr-dev/ssr/internal/doc"
	"github.com/ssr-dev/ssr/internal/script"
	"github.com/ssr-dev/ssr/internal/walk"
	"github.com/ssr-dev/ssr/run"
)

var (
	replaceOpts  queryOptions
	replacement  string
	writeInPlace bool
)

var replaceCmd = &cobra.Command{
	Use:   "replace --language <lang> --query <pattern> --replacement <script> [paths...]",
	Short: "Rewrite pattern matches via a per-match script",
	Long: `Replace runs the pattern against every visited file and executes the
replacement script once per match. The script records text replacements
through document.edit(target, text), where target is a capture from the
current match (bound as "found"), e.g.:

    document.edit(found.captures[0], "2")

Changed files are reported as unified diffs. Without --write nothing is
persisted. The exit code is 0 when any file changed, 1 otherwise.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		l, q, err := replaceOpts.compile()
		if err != nil {
			logger.Error("invalid replace", zap.Error(err))
			os.Exit(1)
		}
		filter, err := replaceOpts.filter()
		if err != nil {
			logger.Error("invalid type filter", zap.Error(err))
			os.Exit(1)
		}

		files, err := walk.Files(targets(args), filter)
		if err != nil {
			logger.Error("error walking paths", zap.Error(err))
			os.Exit(1)
		}

		runner := script.NewRunner(scriptTimeout)
		results := run.Process(ctx, logger, files, func(ctx context.Context, path string) (string, bool, error) {
			d, err := doc.Open(ctx, path, l)
			if err != nil {
				return "", false, err
			}
			edited, err := runner.Run(ctx, d, q, replacement)
			if err != nil {
				return "", false, err
			}
			unified, err := diff.Unified(d, edited)
			if err != nil {
				return "", false, err
			}
			if !diff.Changed(unified) {
				return "", false, nil
			}
			if writeInPlace {
				if err := writeFile(path, edited.Content()); err != nil {
					return "", false, err
				}
			}
			return diff.Colorize(unified), true, nil
		})

		for _, r := range results {
			if r.Output != "" {
				fmt.Print(r.Output)
			}
		}

		if code := exitStatus(results); code != 0 {
			os.Exit(code)
		}
	},
}

// writeFile persists edited content, preserving the file's mode.
func writeFile(path string, content []byte) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	if err := os.WriteFile(path, content, info.Mode().Perm()); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

func init() {
	replaceOpts.bind(replaceCmd)
	replaceCmd.Flags().StringVarP(&replacement, "replacement", "r", "", "Replacement script, run once per match")
	replaceCmd.Flags().BoolVar(&writeInPlace, "write", false, "Write changed files back to disk")
	_ = replaceCmd.MarkFlagRequired("replacement")
}
