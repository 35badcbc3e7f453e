package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// MigrateToLatest takes raw YAML data and migrates it to the current schema version.
// Returns the migrated YAML bytes ready for writing.
//
// Migration chain:
//
//	version 0 (no version field) → 1: stamp version, move top-level path keys under paths:
//	version 1 → current (no-op)
func MigrateToLatest(data []byte) ([]byte, error) {
	ver, err := peekVersion(data)
	if err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	switch ver {
	case LatestVersion:
		return data, nil
	case 0:
		return migrateV0(data)
	default:
		return nil, fmt.Errorf("migrate: unknown config version %d (latest supported: %d)", ver, LatestVersion)
	}
}

// migrateV0 upgrades the unversioned layout, where path options sat at the
// top level next to output settings.
func migrateV0(data []byte) ([]byte, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	out := map[string]any{"version": LatestVersion}
	paths := map[string]any{}
	for k, v := range raw {
		switch k {
		case "paths":
			m, ok := v.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("migrate: paths must be a mapping")
			}
			for pk, pv := range m {
				paths[pk] = pv
			}
		case "orchestrator", "output":
			out[k] = v
		default:
			paths[k] = v
		}
	}
	if len(paths) > 0 {
		out["paths"] = paths
	}

	migrated, err := yaml.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return migrated, nil
}

// peekVersion extracts the version field from raw YAML without full parsing.
// Returns 0 if no version field is present.
func peekVersion(data []byte) (int, error) {
	var probe struct {
		Version int `yaml:"version"`
	}

	// Lenient decode: only the version field matters here.
	if err := yaml.Unmarshal(data, &probe); err != nil {
		return 0, fmt.Errorf("reading version: %w", err)
	}

	return probe.Version, nil
}
