// Package bundle generates bundler configuration objects.
//
// A build is described by a common Config produced by BuildCommon and an
// environment overlay produced by BuildDevelopment or BuildProduction.
// Combine merges the two through the generic tree form handled by package
// merge, and Generate wires the whole pipeline for one environment.
//
// Field names and yaml tags follow the bundler's root schema (entry, output,
// resolve, module.rules, plugins, devServer) and must not be renamed.
package bundle

// Config is the root bundler configuration object.
type Config struct {
	Context   string            `yaml:"context,omitempty" json:"context,omitempty"`
	Devtool   string            `yaml:"devtool,omitempty" json:"devtool,omitempty"`
	Entry     map[string]string `yaml:"entry,omitempty" json:"entry,omitempty"`
	Output    *Output           `yaml:"output,omitempty" json:"output,omitempty"`
	Resolve   *Resolve          `yaml:"resolve,omitempty" json:"resolve,omitempty"`
	Module    *Module           `yaml:"module,omitempty" json:"module,omitempty"`
	Plugins   []Plugin          `yaml:"plugins,omitempty" json:"plugins,omitempty"`
	DevServer map[string]any    `yaml:"devServer,omitempty" json:"devServer,omitempty"`
}

// Output controls where and how bundles are emitted.
type Output struct {
	Path       string `yaml:"path,omitempty" json:"path,omitempty"`
	Filename   string `yaml:"filename,omitempty" json:"filename,omitempty"`
	PublicPath string `yaml:"publicPath,omitempty" json:"publicPath,omitempty"`
}

// Resolve controls module resolution.
type Resolve struct {
	Extensions []string          `yaml:"extensions,omitempty" json:"extensions,omitempty"`
	Modules    []string          `yaml:"modules,omitempty" json:"modules,omitempty"`
	Alias      map[string]string `yaml:"alias" json:"alias"`
}

// Module holds the loader rules.
type Module struct {
	Rules []Rule `yaml:"rules,omitempty" json:"rules,omitempty"`
}

// Rule matches files by pattern and runs them through a loader chain.
//
// Test is a regular expression literal in the bundler's syntax, e.g.
// `/\.svg$/` or `/\.png$/i`. Use lists its loaders in the order the bundler
// expects; the order is significant and survives merging as-is.
type Rule struct {
	Test    string       `yaml:"test" json:"test"`
	Include []string     `yaml:"include,omitempty" json:"include,omitempty"`
	Exclude []string     `yaml:"exclude,omitempty" json:"exclude,omitempty"`
	Use     []LoaderStep `yaml:"use" json:"use"`
}

// LoaderStep is one named processing step of a loader chain.
type LoaderStep struct {
	Loader  string         `yaml:"loader" json:"loader"`
	Options map[string]any `yaml:"options,omitempty" json:"options,omitempty"`
}

// Plugin is an opaque plugin descriptor. Kind names the plugin; Config is
// handed to its constructor untouched.
type Plugin struct {
	Kind   PluginKind     `yaml:"kind" json:"kind"`
	Config map[string]any `yaml:"config,omitempty" json:"config,omitempty"`
}

// Rules returns the loader rules, or nil when the config has no module block.
func (c *Config) Rules() []Rule {
	if c.Module == nil {
		return nil
	}
	return c.Module.Rules
}

// HasPlugin reports whether a plugin of kind k is present.
func (c *Config) HasPlugin(k PluginKind) bool {
	return c.PluginIndex(k) >= 0
}

// PluginIndex returns the position of the first plugin of kind k, or -1.
func (c *Config) PluginIndex(k PluginKind) int {
	for i, p := range c.Plugins {
		if p.Kind == k {
			return i
		}
	}
	return -1
}
