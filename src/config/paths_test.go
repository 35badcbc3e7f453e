package config

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func required() Options {
	return Options{Paths: Paths{AppEntry: "src/index.jsx", OutputPath: "build"}}
}

func TestResolveFillsDefaults(t *testing.T) {
	got, err := Resolve(required())
	require.NoError(t, err)

	assert.Equal(t, "/", got.PublicPath)
	assert.Equal(t, "src", got.AppSrc)
	assert.Equal(t, "node_modules", got.NodeModules)
	assert.Equal(t, "public/index.html", got.HTMLTemplate)
	assert.Equal(t, []string{"src/media/icons"}, got.IconsSpriteLoader)
	assert.Equal(t, DefaultDevServerPort, got.DevServer["port"])
	assert.Equal(t, "src/index.jsx", got.AppEntry)
	assert.Equal(t, "build", got.OutputPath)
}

func TestResolveKeepsExplicitValues(t *testing.T) {
	in := required()
	in.PublicPath = "/assets/"
	in.IconsSpriteLoader = []string{"app/icons"}
	in.DevServer = map[string]any{"port": 8080, "https": true}

	got, err := Resolve(in)
	require.NoError(t, err)

	assert.Equal(t, "/assets/", got.PublicPath)
	assert.Equal(t, []string{"app/icons"}, got.IconsSpriteLoader)
	assert.Equal(t, 8080, got.DevServer["port"])
	assert.Equal(t, true, got.DevServer["https"])
}

func TestResolveDoesNotMutateInput(t *testing.T) {
	in := required()
	in.IconsSpriteLoader = []string{"app/icons"}
	in.DevServer = map[string]any{"hot": false}

	got, err := Resolve(in)
	require.NoError(t, err)

	got.IconsSpriteLoader[0] = "changed"
	got.DevServer["hot"] = true

	assert.Equal(t, "app/icons", in.IconsSpriteLoader[0])
	assert.Equal(t, false, in.DevServer["hot"])
	_, hasPort := in.DevServer["port"]
	assert.False(t, hasPort)
	assert.Empty(t, in.PublicPath)
}

func TestResolveInvalidOptions(t *testing.T) {
	tests := []struct {
		name    string
		in      Options
		missing []string
		empty   []string
	}{
		{
			name:    "nothing set",
			in:      Options{},
			missing: []string{"app_entry", "output_path"},
		},
		{
			name:    "no output path",
			in:      Options{Paths: Paths{AppEntry: "src/index.jsx"}},
			missing: []string{"output_path"},
		},
		{
			name: "empty list entry",
			in: Options{
				Paths:      Paths{AppEntry: "a.js", OutputPath: "build", SassIncludePaths: []string{"ok", ""}},
				SVGSprites: []LoaderStep{{Loader: ""}},
			},
			empty: []string{"sass_include_paths[1]", "svg_sprites[0].loader"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Resolve(tt.in)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidOptions))

			var ioe *InvalidOptionsError
			require.ErrorAs(t, err, &ioe)
			assert.Equal(t, tt.missing, ioe.Missing)
			assert.Equal(t, tt.empty, ioe.Empty)
		})
	}
}
