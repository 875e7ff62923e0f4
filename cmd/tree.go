package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ssr-dev/ssr/internal/doc"
	"github.com/ssr-dev/ssr/internal/lang"
)

var treeLanguage string

var treeCmd = &cobra.Command{
	Use:   "tree --language <lang> <file>",
	Short: "Print the syntax tree of a file",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		l, err := lang.FromString(treeLanguage)
		if err != nil {
			logger.Error("invalid language", zap.Error(err))
			os.Exit(1)
		}

		d, err := doc.Open(ctx, args[0], l)
		if err != nil {
			logger.Error("error opening file", zap.String("file", args[0]), zap.Error(err))
			os.Exit(1)
		}

		out := os.Stdout
		if err := d.WriteTree(out); err != nil {
			logger.Error("error writing tree", zap.Error(err))
			os.Exit(1)
		}
		fmt.Fprintln(out)
	},
}

func init() {
	treeCmd.Flags().StringVarP(&treeLanguage, "language", "l", "", "Language to parse the file as")
	_ = treeCmd.MarkFlagRequired("language")
}
