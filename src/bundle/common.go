package bundle

import (
	"encoding/json"
	"slices"
)

// MarkdownLoader is the loader that turns markdown into a component module.
const MarkdownLoader = "magic-markdown-loader"

// SpriteFilename is where the icon sprite is emitted.
const SpriteFilename = "static/media/icon-sprite.[hash:8].svg"

// BuildCommon returns the configuration shared by every environment.
func BuildCommon(opts Options) *Config {
	return &Config{
		Context: opts.Context,
		Entry: map[string]string{
			"app": opts.AppEntry,
		},
		Output: &Output{
			Path:       opts.OutputPath,
			Filename:   opts.OutputFilename,
			PublicPath: opts.PublicPath,
		},
		Resolve: &Resolve{
			Extensions: []string{".js", ".jsx", ".json"},
			// AppSrc allows imports relative to the source root.
			Modules: []string{opts.NodeModules, opts.AppSrc},
			Alias:   map[string]string{},
		},
		Module: &Module{
			Rules: commonRules(opts),
		},
		Plugins: commonPlugins(opts),
	}
}

func commonRules(opts Options) []Rule {
	icons := slices.Clone(opts.IconsSpriteLoader)

	return []Rule{
		{
			Test: `/\.md$/`,
			Use: []LoaderStep{
				babelLoader(opts),
				{Loader: MarkdownLoader},
			},
		},
		{
			Test:    `/\.svg$/`,
			Include: icons,
			Use:     []LoaderStep{{Loader: "svg-symbol-sprite-loader"}},
		},
		// Excludes exactly the sprite directories so no SVG reaches both rules.
		{
			Test:    `/\.(jpe?g|png|gif|svg)$/i`,
			Exclude: slices.Clone(icons),
			Use: []LoaderStep{
				{
					Loader: "file-loader",
					Options: map[string]any{
						"name":       "[name].[hash:8].[ext]",
						"outputPath": "static/media/",
					},
				},
			},
		},
		{
			Test: `/\.txt$/`,
			Use:  []LoaderStep{{Loader: "raw-loader"}},
		},
	}
}

// commonPlugins returns the shared plugin list.
//
// The sprite plugin and the manifest/HTML plugins all hook the emit event;
// the sprite must come first so its asset exists when the manifest is built.
func commonPlugins(opts Options) []Plugin {
	return []Plugin{
		{
			Kind: PluginProgressBar,
			Config: map[string]any{
				"format": "  building [:bar] :percent (:elapsed seconds) :msg",
				"clear":  false,
			},
		},
		{
			Kind: PluginEnvironment,
			Config: map[string]any{
				"NODE_ENV": opts.nodeEnv(),
			},
		},
		{
			Kind:   PluginDefine,
			Config: defines(opts),
		},
		{
			Kind:   PluginSVGSprite,
			Config: map[string]any{"filename": SpriteFilename},
		},
		{
			Kind: PluginCopy,
			Config: map[string]any{
				"patterns": []any{map[string]any{"from": opts.AppPublic}},
			},
		},
		{
			Kind: PluginInlineManifest,
			Config: map[string]any{
				"manifestPlugins": []any{
					map[string]any{
						"kind": string(PluginManifest),
						"config": map[string]any{
							"filter": JS("({ name }) => !name.includes('.map')"),
						},
					},
				},
				"manifestVariable": "manifest",
			},
		},
		{
			Kind: PluginHTML,
			Config: map[string]any{
				"inject":   true,
				"template": opts.HTMLTemplate,
				"favicon":  opts.AppPublic + "/favicon.ico",
			},
		},
		// node_modules js/json goes to the vendor chunk.
		{
			Kind: PluginCommonsChunk,
			Config: map[string]any{
				"name": "vendor",
				"minChunks": JS("({ resource }) => resource && resource.indexOf('node_modules') >= 0 && " +
					"resource.match(/\\.(js|json)$/)"),
			},
		},
		// Runtime manifest gets its own chunk so app changes keep the vendor hash.
		{
			Kind: PluginCommonsChunk,
			Config: map[string]any{
				"name":      "manifest",
				"minChunks": JS("Infinity"),
			},
		},
	}
}

// babelLoader selects the transpiler env through envName.
func babelLoader(opts Options) LoaderStep {
	step := LoaderStep{Loader: "babel-loader"}
	if opts.BabelEnv != "" {
		step.Options = map[string]any{"envName": opts.BabelEnv}
	}
	return step
}

// defines returns the define plugin config: PUBLIC_PATH plus every extra
// define, each JSON-encoded as the bundler expects.
func defines(opts Options) map[string]any {
	out := map[string]any{
		"process.env.PUBLIC_PATH": jsonString(opts.PublicPath),
	}
	for k, v := range opts.Defines {
		out["process.env."+k] = jsonString(v)
	}
	return out
}

func jsonString(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}
