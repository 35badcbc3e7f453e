package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// SupportedOrchestrator is the bundler version range the generated
// configuration schema targets.
const SupportedOrchestrator = ">= 3.0.0, < 4.0.0"

// validFormats enumerates the recognized output formats.
var validFormats = map[string]bool{
	"json": true,
	"yaml": true,
	"js":   true,
}

// Validate checks structural invariants of a loaded Config.
// Returns warnings (soft issues) and a hard error if the config is invalid.
func Validate(cfg *Config) (warnings []string, err error) {
	var errs []string

	// ── Version ───────────────────────────────────────────────────────────

	if cfg.Version != LatestVersion {
		errs = append(errs, fmt.Sprintf("version: must be %d, got %d", LatestVersion, cfg.Version))
	}

	// ── Output ────────────────────────────────────────────────────────────

	if cfg.Output.Format != "" && !validFormats[cfg.Output.Format] {
		errs = append(errs, fmt.Sprintf("output.format: unknown format %q (supported: js, json, yaml)", cfg.Output.Format))
	}
	if cfg.Output.File != "" && filepath.Ext(cfg.Output.File) == "" {
		warnings = append(warnings, fmt.Sprintf("output.file: %q has no extension", cfg.Output.File))
	}

	// ── Orchestrator ──────────────────────────────────────────────────────

	if v := cfg.Orchestrator.Version; v != "" {
		w, verr := CheckOrchestrator(v)
		if verr != nil {
			errs = append(errs, fmt.Sprintf("orchestrator.version: %v", verr))
		} else if w != "" {
			warnings = append(warnings, "orchestrator.version: "+w)
		}
	}

	// ── Paths ─────────────────────────────────────────────────────────────

	p := cfg.Paths
	if p.PublicPath != "" && !strings.HasSuffix(p.PublicPath, "/") {
		warnings = append(warnings, fmt.Sprintf("paths.public_path: %q should end with /", p.PublicPath))
	}
	for i, s := range p.SVGSprites {
		if s.Loader == "" {
			errs = append(errs, fmt.Sprintf("paths.svg_sprites[%d]: loader is required", i))
		}
	}
	for _, inc := range p.IconsSpriteLoader {
		for _, babel := range p.BabelLoaderInclude {
			if inc == babel {
				warnings = append(warnings, fmt.Sprintf("paths.icons_sprite_loader: %q is also a babel include", inc))
			}
		}
	}

	if len(errs) > 0 {
		return warnings, fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return warnings, nil
}

// CheckOrchestrator parses version and reports a warning when it falls
// outside SupportedOrchestrator.
func CheckOrchestrator(version string) (string, error) {
	v, err := semver.NewVersion(version)
	if err != nil {
		return "", fmt.Errorf("parsing %q: %w", version, err)
	}
	c, err := semver.NewConstraint(SupportedOrchestrator)
	if err != nil {
		return "", err
	}
	if !c.Check(v) {
		return fmt.Sprintf("%s is outside the supported range %s; plugin names may not resolve", v, SupportedOrchestrator), nil
	}
	return "", nil
}
