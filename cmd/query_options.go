package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ssr-dev/ssr/internal/lang"
	"github.com/ssr-dev/ssr/internal/query"
	"github.com/ssr-dev/ssr/internal/walk"
)

// queryOptions are the flags shared by the search and replace subcommands.
type queryOptions struct {
	language string
	pattern  string
	types    []string
	typeAdds []string
}

func (o *queryOptions) bind(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.language, "language", "l", "", "Language to parse files as")
	cmd.Flags().StringVarP(&o.pattern, "query", "q", "", "Structural pattern (tree-sitter s-expression query)")
	cmd.Flags().StringSliceVar(&o.types, "type", nil, "Only process files of this type")
	cmd.Flags().StringSliceVar(&o.typeAdds, "type-add", nil, "Define or extend a file type (name:glob,glob)")
	_ = cmd.MarkFlagRequired("language")
	_ = cmd.MarkFlagRequired("query")
}

func (o *queryOptions) compile() (lang.Language, *query.Query, error) {
	l, err := lang.FromString(o.language)
	if err != nil {
		return "", nil, err
	}
	q, err := query.Compile(l, o.pattern)
	if err != nil {
		return "", nil, err
	}
	return l, q, nil
}

// filter assembles the file-type filter: built-in defaults, then config
// file definitions, then --type-add, then --type selections.
func (o *queryOptions) filter() (*walk.TypeFilter, error) {
	config, err := walk.LoadConfig(cfgFile, cfgFileSet)
	if err != nil {
		return nil, err
	}

	f := walk.NewTypeFilter()
	f.Merge(config.Types)
	for _, def := range o.typeAdds {
		if err := f.Add(def); err != nil {
			return nil, err
		}
	}
	for _, name := range o.types {
		if err := f.Select(name); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// targets defaults to the current directory when no paths were given.
func targets(args []string) []string {
	if len(args) == 0 {
		return []string{"."}
	}
	return args
}
