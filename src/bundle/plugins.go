package bundle

import "sort"

// PluginKind identifies a plugin descriptor.
type PluginKind string

const (
	PluginProgressBar       PluginKind = "progress-bar"
	PluginEnvironment       PluginKind = "environment"
	PluginDefine            PluginKind = "define"
	PluginSVGSprite         PluginKind = "svg-symbol-sprite"
	PluginCopy              PluginKind = "copy"
	PluginInlineManifest    PluginKind = "inline-chunk-manifest-html"
	PluginManifest          PluginKind = "manifest"
	PluginHTML              PluginKind = "html"
	PluginCommonsChunk      PluginKind = "commons-chunk"
	PluginFriendlyErrors    PluginKind = "friendly-errors"
	PluginHotModuleReplace  PluginKind = "hot-module-replacement"
	PluginNamedModules      PluginKind = "named-modules"
	PluginNoEmitOnErrors    PluginKind = "no-emit-on-errors"
	PluginExtractText       PluginKind = "extract-text"
	PluginModuleConcatenate PluginKind = "module-concatenation"
	PluginHashedModuleIDs   PluginKind = "hashed-module-ids"
	PluginMinify            PluginKind = "minify"
)

// PluginSource tells an emitter how to construct a plugin kind: the npm
// module to require and the constructor expression relative to it.
type PluginSource struct {
	Module      string // e.g. "html-webpack-plugin"
	Constructor string // property path on the module export; empty is the export itself
}

// pluginSources maps every known kind to its constructor.
var pluginSources = map[PluginKind]PluginSource{
	PluginProgressBar:       {Module: "progress-bar-webpack-plugin"},
	PluginEnvironment:       {Module: "webpack", Constructor: "EnvironmentPlugin"},
	PluginDefine:            {Module: "webpack", Constructor: "DefinePlugin"},
	PluginSVGSprite:         {Module: "svg-symbol-sprite-loader/src/plugin"},
	PluginCopy:              {Module: "copy-webpack-plugin"},
	PluginInlineManifest:    {Module: "inline-chunk-manifest-html-webpack-plugin"},
	PluginManifest:          {Module: "webpack-manifest-plugin"},
	PluginHTML:              {Module: "html-webpack-plugin"},
	PluginCommonsChunk:      {Module: "webpack", Constructor: "optimize.CommonsChunkPlugin"},
	PluginFriendlyErrors:    {Module: "friendly-errors-webpack-plugin"},
	PluginHotModuleReplace:  {Module: "webpack", Constructor: "HotModuleReplacementPlugin"},
	PluginNamedModules:      {Module: "webpack", Constructor: "NamedModulesPlugin"},
	PluginNoEmitOnErrors:    {Module: "webpack", Constructor: "NoEmitOnErrorsPlugin"},
	PluginExtractText:       {Module: "extract-text-webpack-plugin"},
	PluginModuleConcatenate: {Module: "webpack", Constructor: "optimize.ModuleConcatenationPlugin"},
	PluginHashedModuleIDs:   {Module: "webpack", Constructor: "HashedModuleIdsPlugin"},
	PluginMinify:            {Module: "babel-minify-webpack-plugin"},
}

// SourceOf returns the constructor for k.
func SourceOf(k PluginKind) (PluginSource, bool) {
	s, ok := pluginSources[k]
	return s, ok
}

// KnownPluginKinds returns every kind with a registered constructor, sorted.
func KnownPluginKinds() []string {
	kinds := make([]string, 0, len(pluginSources))
	for k := range pluginSources {
		kinds = append(kinds, string(k))
	}
	sort.Strings(kinds)
	return kinds
}
