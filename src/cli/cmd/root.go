package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sofmeright/stagepack/src/config"
	"github.com/sofmeright/stagepack/src/logger"
	"github.com/sofmeright/stagepack/src/output"
)

var (
	cfgFile string
	verbose bool
	logJSON bool
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "stagepack",
	Short: "Bundler configuration generator",
	Long:  "stagepack generates development and production bundler configs from one set of project paths.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		l := logger.New(os.Stderr, verbose)
		if logJSON || output.IsCI() {
			l = logger.NewJSON(os.Stderr, verbose)
		}
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		cmd.SetContext(logger.WithLogger(ctx, l))

		// Skip config loading for commands that don't need it.
		if cmd.Name() == "version" || cmd.Name() == "migrate" {
			return nil
		}
		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		return nil
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: .stagepack.yml, then stagepack.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&logJSON, "log-json", false, "log as JSON lines (default in CI)")
}

// Execute runs the root command.
func Execute() error {
	return ExecuteContext(context.Background())
}

// ExecuteContext runs the root command with ctx.
func ExecuteContext(ctx context.Context) error {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}
	return nil
}
