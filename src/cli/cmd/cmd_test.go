package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/sofmeright/stagepack/src/bundle"
	"github.com/sofmeright/stagepack/src/config"
)

const projectFile = `version: 1
paths:
  app_entry: src/index.jsx
  output_path: build
  icons_sprite_loader: [src/icons]
output:
  format: json
`

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})
	err := rootCmd.ExecuteContext(context.Background())
	return buf.String(), err
}

func writeProject(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".stagepack.yml")
	require.NoError(t, os.WriteFile(path, []byte(projectFile), 0o644))
	return path
}

func TestGenerateAllWritesEachEnvironment(t *testing.T) {
	project := writeProject(t)
	out := filepath.Join(t.TempDir(), "conf", "webpack.config.yaml")

	_, err := run(t, "--config", project, "generate", "--all", "--format", "yaml", "--out", out, "--no-git")
	require.NoError(t, err)
	t.Cleanup(func() { genAll, genFormat, genOut = false, "", "" })

	for _, env := range bundle.Environments() {
		data, err := os.ReadFile(envFile(out, env))
		require.NoError(t, err, env)

		var got bundle.Config
		require.NoError(t, yaml.Unmarshal(data, &got), env)
		assert.Equal(t, "src/index.jsx", got.Entry["app"], env)
	}
}

func TestValidateReportsEnvironments(t *testing.T) {
	project := writeProject(t)

	stdout, err := run(t, "--config", project, "validate", "--no-git")
	require.NoError(t, err)
	assert.Contains(t, stdout, "development")
	assert.Contains(t, stdout, "production")
	assert.Contains(t, stdout, "no warnings")
}

func TestInspectProduction(t *testing.T) {
	project := writeProject(t)
	t.Cleanup(func() { inspectEnv = "" })

	stdout, err := run(t, "--config", project, "inspect", "--env", "production", "--no-git")
	require.NoError(t, err)
	assert.Contains(t, stdout, "production")
	assert.Contains(t, stdout, "source-map")
	assert.Contains(t, stdout, "Rules")
	assert.Contains(t, stdout, "extract-text-webpack-plugin")
	assert.Contains(t, stdout, "include src/icons")
	assert.NotContains(t, stdout, "Dev server")
}

const unversionedProject = `app_entry: src/main.jsx
output_path: dist
output:
  format: yaml
`

func TestMigrateUnversionedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".stagepack.yml")
	require.NoError(t, os.WriteFile(path, []byte(unversionedProject), 0o644))

	stdout, err := run(t, "migrate", path)
	require.NoError(t, err)

	migrated, err := config.Parse([]byte(stdout), path)
	require.NoError(t, err)
	assert.Equal(t, config.LatestVersion, migrated.Version)
	assert.Equal(t, "src/main.jsx", migrated.Paths.AppEntry)
	assert.Equal(t, "dist", migrated.Paths.OutputPath)
	assert.Equal(t, "yaml", migrated.Output.Format)

	t.Cleanup(func() { migrateInPlace = false })
	_, err = run(t, "migrate", "--in-place", path)
	require.NoError(t, err)

	onDisk, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "src/main.jsx", onDisk.Paths.AppEntry)

	_, err = run(t, "migrate", filepath.Join(t.TempDir(), "stagepack.toml"))
	assert.ErrorContains(t, err, "YAML project files only")
}

func TestVersionCommand(t *testing.T) {
	stdout, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "stagepack")
}

func TestEnvFile(t *testing.T) {
	assert.Equal(t, "webpack.config.production.js", envFile("webpack.config.js", bundle.Production))
	assert.Equal(t, "out/dev.development", envFile("out/dev", bundle.Development))
}

func TestFirstNonEmpty(t *testing.T) {
	assert.Equal(t, "b", firstNonEmpty("", "b", "c"))
	assert.Equal(t, "", firstNonEmpty("", ""))
}
