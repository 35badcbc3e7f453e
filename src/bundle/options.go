package bundle

import (
	"errors"
	"fmt"
	"maps"
	"strings"

	"github.com/sofmeright/stagepack/src/config"
)

// Environment selects the overlay merged onto the common configuration.
type Environment string

const (
	Development Environment = "development"
	Production  Environment = "production"
)

// ErrUnknownEnvironment is returned for environment names other than
// development and production.
var ErrUnknownEnvironment = errors.New("unknown environment")

// Environments lists every supported environment.
func Environments() []Environment {
	return []Environment{Development, Production}
}

// ParseEnvironment maps a name to an Environment. Empty means development.
func ParseEnvironment(name string) (Environment, error) {
	switch Environment(strings.ToLower(strings.TrimSpace(name))) {
	case "", Development:
		return Development, nil
	case Production:
		return Production, nil
	}
	return "", fmt.Errorf("%w %q (supported: development, production)", ErrUnknownEnvironment, name)
}

// Options is everything a generator reads. It is passed explicitly so no
// generator depends on process state.
type Options struct {
	config.Options

	// BabelEnv selects the transpiler preset environment. Generate sets it to
	// the environment name when empty.
	BabelEnv string

	// Defines are extra compile-time constants injected as process.env.<KEY>.
	Defines map[string]string
}

// NewOptions wraps resolved path options.
func NewOptions(o config.Options) Options {
	return Options{Options: o}
}

func (o Options) svgSprites() []LoaderStep {
	steps := make([]LoaderStep, len(o.SVGSprites))
	for i, s := range o.SVGSprites {
		steps[i] = LoaderStep{Loader: s.Loader, Options: maps.Clone(s.Options)}
	}
	return steps
}

// nodeEnv is the NODE_ENV default baked in when the variable is unset at
// build time.
func (o Options) nodeEnv() string {
	if o.BabelEnv != "" {
		return o.BabelEnv
	}
	return string(Development)
}
