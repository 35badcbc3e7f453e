package bundle

import (
	"fmt"
	"maps"
	"slices"

	"github.com/sofmeright/stagepack/src/config"
	"github.com/sofmeright/stagepack/src/merge"
)

// LocalIdentName is the scoped CSS class name template.
const LocalIdentName = "[name]-[local]--[hash:base64:5]"

// DevServerDefaults returns the development server settings used when the
// caller overrides nothing.
func DevServerDefaults(appPublic string) map[string]any {
	return map[string]any{
		"contentBase":        appPublic,
		"compress":           true,
		"historyApiFallback": true,
		"port":               config.DefaultDevServerPort,
		"hot":                true,
		"https":              false,
		"noInfo":             true,
		"overlay": map[string]any{
			"errors":   true,
			"warnings": false,
		},
		// friendly-errors prints the build status instead
		"quiet": true,
	}
}

// BuildDevelopment returns the development overlay: lint-on-build JS, styles
// injected into the page, hot replacement and the dev server.
func BuildDevelopment(opts Options) *Config {
	use := []LoaderStep{babelLoader(opts)}
	use = append(use, opts.svgSprites()...)
	use = append(use, LoaderStep{Loader: "eslint-loader"})

	devServer := DevServerDefaults(opts.AppPublic)
	maps.Copy(devServer, merge.Clone(opts.DevServer))

	return &Config{
		// eval keeps module boundaries visible without source map noise.
		Devtool: "eval",
		Module: &Module{
			Rules: []Rule{
				{
					Test:    `/\.jsx?$/`,
					Include: slices.Clone(opts.BabelLoaderInclude),
					Use:     use,
				},
				{
					Test: `/\.scss$/`,
					Use: []LoaderStep{
						{Loader: "style-loader"},
						{
							Loader:  "css-loader",
							Options: map[string]any{"localIdentName": LocalIdentName},
						},
						{
							Loader:  "sass-loader",
							Options: map[string]any{"includePaths": stringsToAny(opts.SassIncludePaths)},
						},
					},
				},
			},
		},
		Plugins: []Plugin{
			{
				Kind: PluginFriendlyErrors,
				Config: map[string]any{
					"compilationSuccessInfo": map[string]any{
						"messages": []any{
							fmt.Sprintf("  Application running at http://localhost:%v", devServer["port"]),
						},
						"notes": []any{},
					},
				},
			},
			{Kind: PluginHotModuleReplace},
			{Kind: PluginNamedModules},
			// Assets are never written while compilation has errors.
			{Kind: PluginNoEmitOnErrors},
		},
		DevServer: devServer,
	}
}

func stringsToAny(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}
