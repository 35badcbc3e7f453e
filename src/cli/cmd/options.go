package cmd

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/sofmeright/stagepack/src/buildinfo"
	"github.com/sofmeright/stagepack/src/bundle"
	"github.com/sofmeright/stagepack/src/config"
)

// pathFlags are the per-invocation overrides shared by generate and inspect.
type pathFlags struct {
	entry      string
	outputPath string
	publicPath string
	babelEnv   string
	noGit      bool
}

func (f *pathFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.entry, "entry", "", "application entry module (overrides app_entry)")
	cmd.Flags().StringVar(&f.outputPath, "output-path", "", "build output directory (overrides output_path)")
	cmd.Flags().StringVar(&f.publicPath, "public-path", "", "URL prefix of emitted assets (overrides public_path)")
	cmd.Flags().StringVar(&f.babelEnv, "babel-env", "", "transpiler env name (default: the target environment)")
	cmd.Flags().BoolVar(&f.noGit, "no-git", false, "skip injecting BUILD_* defines from the git checkout")
}

// options layers the project file, STAGEPACK_* variables and flags into
// generator options.
func (f *pathFlags) options(ctx context.Context, c *config.Config) (bundle.Options, error) {
	resolved, err := config.NewBuilder(c).
		WithEnv(nil).
		WithPaths(config.Paths{
			AppEntry:   f.entry,
			OutputPath: f.outputPath,
			PublicPath: f.publicPath,
		}).
		Build()
	if err != nil {
		return bundle.Options{}, err
	}

	opts := bundle.NewOptions(resolved)
	opts.BabelEnv = f.babelEnv

	if !f.noGit {
		info, err := buildinfo.Detect(resolved.Context)
		if err != nil {
			zerolog.Ctx(ctx).Warn().Err(err).Msg("reading git metadata")
		} else {
			opts.Defines = info.Defines()
		}
	}
	return opts, nil
}
