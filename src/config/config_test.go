package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, ".stagepack.yml", `
version: 1
paths:
  app_entry: src/index.jsx
  output_path: build
  icons_sprite_loader: [src/icons]
  svg_sprites:
    - loader: svg-sprite-import-loader
      options:
        symbolId: icon-[name]
  dev_server:
    port: 8080
orchestrator:
  version: 3.12.0
output:
  format: js
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 1, cfg.Version)
	assert.Equal(t, "src/index.jsx", cfg.Paths.AppEntry)
	assert.Equal(t, "build", cfg.Paths.OutputPath)
	assert.Equal(t, []string{"src/icons"}, cfg.Paths.IconsSpriteLoader)
	require.Len(t, cfg.Paths.SVGSprites, 1)
	assert.Equal(t, "svg-sprite-import-loader", cfg.Paths.SVGSprites[0].Loader)
	assert.Equal(t, "icon-[name]", cfg.Paths.SVGSprites[0].Options["symbolId"])
	assert.Equal(t, 8080, cfg.Paths.DevServer["port"])
	assert.Equal(t, "3.12.0", cfg.Orchestrator.Version)
	assert.Equal(t, "js", cfg.Output.Format)
}

func TestLoadTOML(t *testing.T) {
	path := writeFile(t, "stagepack.toml", `
version = 1

[paths]
app_entry = "src/main.jsx"
output_path = "dist"
public_path = "/static/"

[output]
format = "yaml"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "src/main.jsx", cfg.Paths.AppEntry)
	assert.Equal(t, "dist", cfg.Paths.OutputPath)
	assert.Equal(t, "/static/", cfg.Paths.PublicPath)
	assert.Equal(t, "yaml", cfg.Output.Format)
}

func TestLoadMissingDefaultFile(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, LatestVersion, cfg.Version)
	assert.Equal(t, "json", cfg.Output.Format)
}

func TestFindPrefersYAML(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	p, err := Find("")
	require.NoError(t, err)
	assert.Empty(t, p)

	require.NoError(t, os.WriteFile("stagepack.toml", []byte("version = 1\n"), 0o644))
	p, err = Find("")
	require.NoError(t, err)
	assert.Equal(t, "stagepack.toml", p)

	require.NoError(t, os.WriteFile(".stagepack.yml", []byte("version: 1\n"), 0o644))
	p, err = Find("")
	require.NoError(t, err)
	assert.Equal(t, ".stagepack.yml", p)

	p, err = Find("custom.yml")
	require.NoError(t, err)
	assert.Equal(t, "custom.yml", p)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	require.Error(t, err)
}

func TestParseRejectsMalformed(t *testing.T) {
	_, err := Parse([]byte("paths: [unterminated"), ".stagepack.yml")
	require.Error(t, err)

	_, err = Parse([]byte("paths = ="), "stagepack.toml")
	require.Error(t, err)
}
