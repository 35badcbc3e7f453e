package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

const (
	defaultConfigFile     = ".stagepack.yml"
	defaultTOMLConfigFile = "stagepack.toml"

	// LatestVersion is the current project file schema version.
	LatestVersion = 1
)

// Config is the top-level stagepack project configuration.
type Config struct {
	Version      int                `yaml:"version" toml:"version"`
	Paths        Options            `yaml:"paths" toml:"paths"`
	Orchestrator OrchestratorConfig `yaml:"orchestrator" toml:"orchestrator"`
	Output       OutputConfig       `yaml:"output" toml:"output"`
}

// OrchestratorConfig describes the bundler that consumes the generated config.
type OrchestratorConfig struct {
	// Version is the installed bundler version (semver). Empty skips the check.
	Version string `yaml:"version" toml:"version"`
}

// OutputConfig controls how generated configs are written.
type OutputConfig struct {
	Format string `yaml:"format" toml:"format"` // json, yaml or js
	File   string `yaml:"file" toml:"file"`     // empty writes to stdout
}

// DefaultOutputConfig returns the default emission settings.
func DefaultOutputConfig() OutputConfig {
	return OutputConfig{Format: "json"}
}

// Find returns the project file Load reads for path: path itself when set,
// otherwise the first of .stagepack.yml and stagepack.toml that exists.
// Empty means there is none.
func Find(path string) (string, error) {
	if path != "" {
		return path, nil
	}
	for _, p := range []string{defaultConfigFile, defaultTOMLConfigFile} {
		_, err := os.Stat(p)
		if err == nil {
			return p, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", err
		}
	}
	return "", nil
}

// Load reads configuration from a YAML or TOML file, picked by extension.
// If path is empty, it tries .stagepack.yml then stagepack.toml.
// Returns defaults if no file exists.
func Load(path string) (*Config, error) {
	p, err := Find(path)
	if err != nil {
		return nil, err
	}
	if p == "" {
		return defaults(), nil
	}
	data, err := os.ReadFile(p)
	if err != nil {
		return nil, err
	}
	return Parse(data, p)
}

// Parse decodes project configuration over the defaults. name selects the
// decoder: *.toml is TOML, anything else YAML.
func Parse(data []byte, name string) (*Config, error) {
	cfg := defaults()
	if strings.EqualFold(filepath.Ext(name), ".toml") {
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", name, err)
		}
		return cfg, nil
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", name, err)
	}
	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Version: LatestVersion,
		Output:  DefaultOutputConfig(),
	}
}
