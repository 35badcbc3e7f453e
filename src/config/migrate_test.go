package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestMigrateLatestIsNoop(t *testing.T) {
	in := []byte("version: 1\npaths:\n  app_entry: a.js\n")
	out, err := MigrateToLatest(in)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestMigrateUnversioned(t *testing.T) {
	in := []byte("app_entry: src/index.jsx\noutput_path: build\noutput:\n  format: js\n")

	out, err := MigrateToLatest(in)
	require.NoError(t, err)

	cfg, err := Parse(out, ".stagepack.yml")
	require.NoError(t, err)
	assert.Equal(t, 1, cfg.Version)
	assert.Equal(t, "src/index.jsx", cfg.Paths.AppEntry)
	assert.Equal(t, "build", cfg.Paths.OutputPath)
	assert.Equal(t, "js", cfg.Output.Format)

	var raw map[string]any
	require.NoError(t, yaml.Unmarshal(out, &raw))
	assert.NotContains(t, raw, "app_entry")
}

func TestMigrateUnknownVersion(t *testing.T) {
	_, err := MigrateToLatest([]byte("version: 7\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown config version 7")
}
