package cmd

import (
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	cfgFile       string
	cfgFileSet    bool
	timeout       time.Duration
	scriptTimeout time.Duration

	logger *zap.Logger
)

const defaultConfigPath = ".ssr.yaml"

var rootCmd = &cobra.Command{
	Use:   "ssr",
	Short: "ssr - structural search and replace over syntax trees",
	Long: `ssr matches structural patterns against parsed source files and can
rewrite the matched regions via a small per-match script, reporting the
result as a unified diff.`,
	SilenceUsage: true,
}

func Execute() error {
	defer func() { _ = logger.Sync() }()
	return rootCmd.Execute()
}

func init() {
	logger, _ = zap.NewProduction()

	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		cfgFileSet = rootCmd.PersistentFlags().Changed("config")
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", defaultConfigPath, "Path to the configuration file")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 5*time.Minute, "Overall run timeout")
	rootCmd.PersistentFlags().DurationVar(&scriptTimeout, "script-timeout", 5*time.Second, "Wall-clock budget per script invocation (0 disables)")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(treeCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(replaceCmd)
}
