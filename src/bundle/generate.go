package bundle

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/sofmeright/stagepack/src/config"
	"github.com/sofmeright/stagepack/src/merge"
)

// Overlay returns the overlay generator for env.
func Overlay(env Environment) (func(Options) *Config, error) {
	switch env {
	case Development:
		return BuildDevelopment, nil
	case Production:
		return BuildProduction, nil
	}
	return nil, fmt.Errorf("%w %q", ErrUnknownEnvironment, env)
}

// Combine merges overlay onto base: mappings merge recursively, sequences
// concatenate base first, and the overlay wins everywhere else.
// Neither input is modified.
func Combine(base, overlay *Config, opts ...merge.Option) (*Config, error) {
	bt, err := base.Tree()
	if err != nil {
		return nil, err
	}
	ot, err := overlay.Tree()
	if err != nil {
		return nil, err
	}
	merged, err := merge.Merge(bt, ot, opts...)
	if err != nil {
		return nil, err
	}
	return FromTree(merged)
}

// Generate builds the complete configuration for env. An empty env means
// development. The path options are resolved first, so unset paths take
// their defaults and missing required ones fail with config.ErrInvalidOptions.
// BabelEnv defaults to the environment name.
func Generate(ctx context.Context, env Environment, opts Options, mopts ...merge.Option) (*Config, error) {
	if env == "" {
		env = Development
	}
	overlayFn, err := Overlay(env)
	if err != nil {
		return nil, err
	}
	resolved, err := config.Resolve(opts.Options)
	if err != nil {
		return nil, fmt.Errorf("resolving options: %w", err)
	}
	opts.Options = resolved
	if opts.BabelEnv == "" {
		opts.BabelEnv = string(env)
	}

	logger := zerolog.Ctx(ctx)
	logger.Info().Str("env", string(env)).Msg("bundler running")

	common := BuildCommon(opts)
	overlay := overlayFn(opts)

	cfg, err := Combine(common, overlay, mergeOptions(ctx, mopts)...)
	if err != nil {
		return nil, fmt.Errorf("combining %s config: %w", env, err)
	}

	if err := Check(cfg, env); err != nil {
		return nil, err
	}
	logger.Debug().
		Int("rules", len(cfg.Rules())).
		Int("plugins", len(cfg.Plugins)).
		Msg("config generated")
	return cfg, nil
}

// mergeOptions routes conflict warnings to the context logger when one is
// set; otherwise merge keeps its global default.
func mergeOptions(ctx context.Context, mopts []merge.Option) []merge.Option {
	l := zerolog.Ctx(ctx)
	if l.GetLevel() == zerolog.Disabled {
		return mopts
	}
	return append([]merge.Option{merge.WithLogger(l)}, mopts...)
}
