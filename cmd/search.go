package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ssr-dev/ssr/internal/doc"
	"github.com/ssr-dev/ssr/internal/render"
	"github.com/ssr-dev/ssr/internal/walk"
	"github.com/ssr-dev/ssr/run"
)

var searchOpts queryOptions

var searchCmd = &cobra.Command{
	Use:   "search --language <lang> --query <pattern> [paths...]",
	Short: "Search files for a structural pattern",
	Long: `Search parses every visited file, runs the pattern against its syntax
tree, and prints each match's captures with their source lines. The exit
code is 0 when any match was found anywhere in the run, 1 otherwise.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		l, q, err := searchOpts.compile()
		if err != nil {
			logger.Error("invalid search", zap.Error(err))
			os.Exit(1)
		}
		filter, err := searchOpts.filter()
		if err != nil {
			logger.Error("invalid type filter", zap.Error(err))
			os.Exit(1)
		}

		files, err := walk.Files(targets(args), filter)
		if err != nil {
			logger.Error("error walking paths", zap.Error(err))
			os.Exit(1)
		}

		results := run.Process(ctx, logger, files, func(ctx context.Context, path string) (string, bool, error) {
			d, err := doc.Open(ctx, path, l)
			if err != nil {
				return "", false, err
			}
			matches := d.Find(q)
			return render.Matches(d, matches), len(matches) > 0, nil
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

func init() {
	searchOpts.bind(searchCmd)
}
