package config

import (
	"errors"
	"fmt"

	"dario.cat/mergo"
	"github.com/caarlos0/env/v11"
)

// EnvPrefix prefixes every environment variable that overrides a path.
const EnvPrefix = "STAGEPACK_"

// Builder layers path settings from several sources. Later layers win for
// every field they set; unset fields fall through to earlier layers.
type Builder struct {
	base   *Config
	layers []Paths
	err    error
}

// NewBuilder starts a builder over the paths of a loaded project file.
// cfg may be nil.
func NewBuilder(cfg *Config) *Builder {
	b := &Builder{base: cfg}
	if cfg != nil {
		b.layers = append(b.layers, cfg.Paths.Paths)
	}
	return b
}

// WithEnv adds STAGEPACK_* variables from environ, or from the process
// environment when environ is nil.
func (b *Builder) WithEnv(environ map[string]string) *Builder {
	var p Paths
	opts := env.Options{Prefix: EnvPrefix}
	if environ != nil {
		opts.Environment = environ
	}
	if err := env.ParseWithOptions(&p, opts); err != nil {
		b.err = errors.Join(b.err, fmt.Errorf("reading environment: %w", err))
		return b
	}
	b.layers = append(b.layers, p)
	return b
}

// WithPaths adds an explicit layer, typically parsed CLI flags.
func (b *Builder) WithPaths(p Paths) *Builder {
	b.layers = append(b.layers, p)
	return b
}

// Build merges the layers and resolves the result into final Options.
func (b *Builder) Build() (Options, error) {
	if b.err != nil {
		return Options{}, b.err
	}

	var merged Paths
	for _, layer := range b.layers {
		if err := mergo.Merge(&merged, layer, mergo.WithOverride); err != nil {
			return Options{}, fmt.Errorf("merging path layers: %w", err)
		}
	}

	opts := Options{Paths: merged}
	if b.base != nil {
		opts.SVGSprites = b.base.Paths.SVGSprites
		opts.DevServer = b.base.Paths.DevServer
	}
	return Resolve(opts)
}
