package cmd

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/sofmeright/stagepack/src/bundle"
	"github.com/sofmeright/stagepack/src/config"
	"github.com/sofmeright/stagepack/src/merge"
	"github.com/sofmeright/stagepack/src/render"
	"github.com/sofmeright/stagepack/src/watch"
)

var (
	genEnv    string
	genAll    bool
	genFormat string
	genOut    string
	genStrict bool
	genWatch  bool
	genMinify bool
	genPaths  pathFlags
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate the bundler config",
	Long: `Generate the bundler config for one environment, or both with --all.

Paths come from the project file, then STAGEPACK_* environment variables,
then flags; later sources win. The config is written to stdout unless
--out (or output.file) names a file. With --all each environment is
written to its own file, named by inserting the environment before the
extension (webpack.config.js becomes webpack.config.production.js).`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVarP(&genEnv, "env", "e", "", "target environment: development or production (default: development)")
	generateCmd.Flags().BoolVar(&genAll, "all", false, "generate every environment")
	generateCmd.Flags().StringVarP(&genFormat, "format", "f", "", "output format: json, yaml or js (default: from config, then json)")
	generateCmd.Flags().StringVarP(&genOut, "out", "o", "", "output file (default: from config, then stdout)")
	generateCmd.Flags().BoolVar(&genStrict, "strict-merge", false, "fail on structural conflicts between common and environment configs")
	generateCmd.Flags().BoolVarP(&genWatch, "watch", "w", false, "regenerate when the project file changes")
	generateCmd.Flags().BoolVar(&genMinify, "minify", false, "minify js output")
	genPaths.register(generateCmd)

	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	if err := generateOnce(ctx, cmd, cfg); err != nil {
		return err
	}
	if !genWatch {
		return nil
	}

	file, err := config.Find(cfgFile)
	if err != nil {
		return err
	}
	if file == "" {
		return fmt.Errorf("--watch needs a project file (.stagepack.yml or stagepack.toml)")
	}
	w, err := watch.New([]string{file})
	if err != nil {
		return err
	}

	log := zerolog.Ctx(ctx)
	log.Info().Str("file", file).Msg("watching for changes")
	err = w.Run(ctx, func(ctx context.Context) error {
		c, err := config.Load(file)
		if err != nil {
			return err
		}
		return generateOnce(ctx, cmd, c)
	})
	if ctx.Err() != nil {
		return nil
	}
	return err
}

// generateOnce builds and writes the configs selected by the flags.
func generateOnce(ctx context.Context, cmd *cobra.Command, c *config.Config) error {
	log := zerolog.Ctx(ctx)
	start := time.Now()

	warnings, err := config.Validate(c)
	if err != nil {
		return err
	}
	for _, w := range warnings {
		log.Warn().Msg(w)
	}

	format, err := render.ParseFormat(firstNonEmpty(genFormat, c.Output.Format))
	if err != nil {
		return err
	}
	out := firstNonEmpty(genOut, c.Output.File)

	envs, err := targetEnvironments()
	if err != nil {
		return err
	}

	opts, err := genPaths.options(ctx, c)
	if err != nil {
		return err
	}

	var mopts []merge.Option
	if genStrict {
		mopts = append(mopts, merge.WithPolicy(merge.PolicyStrict))
	}

	results := make([][]byte, len(envs))
	g, gctx := errgroup.WithContext(ctx)
	for i, env := range envs {
		g.Go(func() error {
			built, err := bundle.Generate(gctx, env, opts, mopts...)
			if err != nil {
				return err
			}
			var buf bytes.Buffer
			if err := render.Write(&buf, built, format, render.Options{Minify: genMinify}); err != nil {
				return fmt.Errorf("rendering %s config: %w", env, err)
			}
			results[i] = buf.Bytes()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	multi := len(envs) > 1
	if multi && out == "" {
		out = "webpack.config" + format.Ext()
	}
	for i, env := range envs {
		if out == "" {
			if _, err := cmd.OutOrStdout().Write(results[i]); err != nil {
				return err
			}
			continue
		}
		target := out
		if multi {
			target = envFile(out, env)
		}
		if err := writeFile(target, results[i]); err != nil {
			return err
		}
		log.Info().Str("env", string(env)).Str("file", target).Msg("config written")
	}

	log.Debug().Dur("elapsed", time.Since(start)).Int("configs", len(envs)).Msg("generate done")
	return nil
}

func targetEnvironments() ([]bundle.Environment, error) {
	if genAll {
		return bundle.Environments(), nil
	}
	env, err := bundle.ParseEnvironment(genEnv)
	if err != nil {
		return nil, err
	}
	return []bundle.Environment{env}, nil
}

// envFile inserts env before the extension of path.
func envFile(path string, env bundle.Environment) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + "." + string(env) + ext
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
