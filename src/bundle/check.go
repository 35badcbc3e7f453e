package bundle

import (
	"errors"
	"fmt"
	"path"
	"strings"
)

// ErrShape is matched by every error returned from Check.
var ErrShape = errors.New("config shape")

// Check verifies the root schema contract and the ordering invariants of a
// generated configuration.
func Check(c *Config, env Environment) error {
	var errs []string

	// ── Required keys ─────────────────────────────────────────────────────

	if len(c.Entry) == 0 {
		errs = append(errs, "entry: missing")
	}
	if c.Output == nil || c.Output.Path == "" {
		errs = append(errs, "output.path: missing")
	}
	if c.Resolve == nil {
		errs = append(errs, "resolve: missing")
	}
	if len(c.Rules()) == 0 {
		errs = append(errs, "module.rules: missing")
	}
	if len(c.Plugins) == 0 {
		errs = append(errs, "plugins: missing")
	}
	if env == Development && c.DevServer == nil {
		errs = append(errs, "devServer: missing")
	}

	// ── Rules ─────────────────────────────────────────────────────────────

	for i, r := range c.Rules() {
		if _, err := r.Pattern(); err != nil {
			errs = append(errs, fmt.Sprintf("module.rules[%d]: %v", i, err))
		}
		if len(r.Use) == 0 {
			errs = append(errs, fmt.Sprintf("module.rules[%d]: empty loader chain", i))
		}
	}
	errs = append(errs, checkSpriteScope(c.Rules())...)

	// ── Plugins ───────────────────────────────────────────────────────────

	for i, p := range c.Plugins {
		if _, ok := SourceOf(p.Kind); !ok {
			errs = append(errs, fmt.Sprintf("plugins[%d]: unknown kind %q (supported: %s)", i, p.Kind, strings.Join(KnownPluginKinds(), ", ")))
		}
	}
	if sprite := c.PluginIndex(PluginSVGSprite); sprite >= 0 {
		for _, k := range []PluginKind{PluginInlineManifest, PluginManifest, PluginHTML} {
			if i := c.PluginIndex(k); i >= 0 && i < sprite {
				errs = append(errs, fmt.Sprintf("plugins[%d]: %s must come after %s", i, k, PluginSVGSprite))
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %s", ErrShape, strings.Join(errs, "; "))
	}
	return nil
}

// checkSpriteScope makes sure an SVG inside a sprite directory is picked up
// by exactly one rule.
func checkSpriteScope(rules []Rule) []string {
	var errs []string
	for i, r := range rules {
		if !usesLoader(r, "svg-symbol-sprite-loader") {
			continue
		}
		if len(r.Include) == 0 {
			errs = append(errs, fmt.Sprintf("module.rules[%d]: sprite rule has no include and would take every svg", i))
			continue
		}
		for _, dir := range r.Include {
			probe := path.Join(dir, "probe.svg")
			var matched []string
			for _, other := range rules {
				if other.Applies(probe) {
					matched = append(matched, other.Test)
				}
			}
			if len(matched) != 1 {
				errs = append(errs, fmt.Sprintf("module.rules: %s is matched by %d rules (%s)", probe, len(matched), strings.Join(matched, ", ")))
			}
		}
	}
	return errs
}

func usesLoader(r Rule, loader string) bool {
	for _, s := range r.Use {
		if s.Loader == loader {
			return true
		}
	}
	return false
}
