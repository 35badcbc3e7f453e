package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilderLayerPrecedence(t *testing.T) {
	file := &Config{
		Version: 1,
		Paths: Options{
			Paths: Paths{
				AppEntry:   "src/index.jsx",
				OutputPath: "build",
				PublicPath: "/file/",
			},
			SVGSprites: []LoaderStep{{Loader: "svg-sprite-import-loader"}},
			DevServer:  map[string]any{"port": 9000},
		},
	}

	environ := map[string]string{
		"STAGEPACK_OUTPUT_PATH":         "dist",
		"STAGEPACK_ICONS_SPRITE_LOADER": "src/icons,lib/icons",
		"STAGEPACK_PUBLIC_PATH":         "/env/",
	}

	got, err := NewBuilder(file).
		WithEnv(environ).
		WithPaths(Paths{PublicPath: "/flag/"}).
		Build()
	require.NoError(t, err)

	assert.Equal(t, "src/index.jsx", got.AppEntry) // file only
	assert.Equal(t, "dist", got.OutputPath)        // env over file
	assert.Equal(t, "/flag/", got.PublicPath)      // flag over env
	assert.Equal(t, []string{"src/icons", "lib/icons"}, got.IconsSpriteLoader)
	assert.Equal(t, "src", got.AppSrc) // default
	assert.Equal(t, []LoaderStep{{Loader: "svg-sprite-import-loader"}}, got.SVGSprites)
	assert.Equal(t, 9000, got.DevServer["port"])
}

func TestBuilderWithoutFile(t *testing.T) {
	_, err := NewBuilder(nil).WithEnv(map[string]string{}).Build()
	require.ErrorIs(t, err, ErrInvalidOptions)

	got, err := NewBuilder(nil).
		WithPaths(Paths{AppEntry: "a.js", OutputPath: "out"}).
		Build()
	require.NoError(t, err)
	assert.Equal(t, "out", got.OutputPath)
}
