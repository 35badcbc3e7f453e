package bundle

import "slices"

// ProductionFilename replaces the output filename with a content-hashed one.
const ProductionFilename = "static/js/[name].[chunkhash:8].js"

// StyleFilename is where extracted styles are written.
const StyleFilename = "static/css/[name].[contenthash:8].css"

// BuildProduction returns the production overlay: styles extracted to files,
// scope hoisting, stable module ids and minification.
func BuildProduction(opts Options) *Config {
	use := []LoaderStep{babelLoader(opts)}
	use = append(use, opts.svgSprites()...)

	return &Config{
		Devtool: "source-map",
		Output: &Output{
			Filename: ProductionFilename,
		},
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
						{
							Loader:  "extract-text-webpack-plugin/dist/loader",
							Options: map[string]any{"omit": 0, "remove": true},
						},
						{
							Loader: "css-loader",
							Options: map[string]any{
								"localIdentName": LocalIdentName,
								"minimize":       true,
								"sourceMap":      true,
							},
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
				Kind: PluginExtractText,
				Config: map[string]any{
					"filename":  StyleFilename,
					"allChunks": true,
				},
			},
			{
				Kind: PluginDefine,
				Config: map[string]any{
					"process.env.NODE_ENV": jsonString(string(Production)),
				},
			},
			{Kind: PluginModuleConcatenate},
			{Kind: PluginHashedModuleIDs},
			{Kind: PluginMinify},
		},
	}
}
