package cmd

import (
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/sofmeright/stagepack/src/bundle"
	"github.com/sofmeright/stagepack/src/output"
)

var (
	inspectEnv   string
	inspectPaths pathFlags
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Show the generated rules and plugins",
	Long: `Generate the config for one environment and print a readable summary:
loader rules with their chains, plugins in order with the module each is
constructed from, and the dev server settings.`,
	Args: cobra.NoArgs,
	RunE: runInspect,
}

func init() {
	inspectCmd.Flags().StringVarP(&inspectEnv, "env", "e", "", "target environment: development or production (default: development)")
	inspectPaths.register(inspectCmd)

	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	color := output.UseColor()
	w := cmd.OutOrStdout()

	env, err := bundle.ParseEnvironment(inspectEnv)
	if err != nil {
		return err
	}
	opts, err := inspectPaths.options(ctx, cfg)
	if err != nil {
		return err
	}

	start := time.Now()
	built, err := bundle.Generate(ctx, env, opts)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	kv := []output.KV{
		{Key: "env", Value: string(env)},
		{Key: "devtool", Value: built.Devtool},
		{Key: "entry", Value: built.Entry["app"]},
	}
	if built.Output != nil {
		kv = append(kv,
			output.KV{Key: "output", Value: built.Output.Path},
			output.KV{Key: "filename", Value: built.Output.Filename},
		)
	}
	if len(opts.Defines) > 0 {
		kv = append(kv, output.KV{Key: "commit", Value: opts.Defines["BUILD_COMMIT_SHORT"]})
	}
	output.ContextBlock(w, kv)

	sec := output.NewSection(w, "Rules · "+output.Count(len(built.Rules()), "rule"), elapsed, color)
	output.SectionRules(sec, built.Rules(), color)
	sec.Close()

	sec = output.NewSection(w, "Plugins · "+output.Count(len(built.Plugins), "plugin"), 0, color)
	output.SectionPlugins(sec, built.Plugins, color)
	sec.Close()

	if len(built.DevServer) > 0 {
		sec = output.NewSection(w, "Dev server", 0, color)
		output.SectionSettings(sec, built.DevServer)
		sec.Close()
	}

	if built.Resolve != nil {
		sec = output.NewSection(w, "Resolve", 0, color)
		sec.Row("%-12s %s", "extensions", strings.Join(built.Resolve.Extensions, " "))
		sec.Row("%-12s %s", "modules", strings.Join(built.Resolve.Modules, " "))
		sec.Close()
	}

	return nil
}
