package config

import (
	"fmt"
	"maps"
	"slices"

	"dario.cat/mergo"
)

// DefaultDevServerPort is used when no dev server port is configured.
const DefaultDevServerPort = 3000

// Paths holds the named filesystem locations and include lists a build is
// generated from. Every field can come from the project file, a STAGEPACK_*
// environment variable or a CLI flag.
type Paths struct {
	// Context is the base directory entry points and loaders resolve against.
	Context string `yaml:"context,omitempty" toml:"context,omitempty" env:"CONTEXT"`

	// AppEntry is the application entry module. Required.
	AppEntry string `yaml:"app_entry,omitempty" toml:"app_entry,omitempty" env:"APP_ENTRY"`

	// AppPublic is the static public directory (favicon, copied assets).
	AppPublic string `yaml:"app_public,omitempty" toml:"app_public,omitempty" env:"APP_PUBLIC"`

	// AppSrc is the source root, searched when resolving bare imports.
	AppSrc string `yaml:"app_src,omitempty" toml:"app_src,omitempty" env:"APP_SRC"`

	HTMLTemplate string `yaml:"html_template,omitempty" toml:"html_template,omitempty" env:"HTML_TEMPLATE"`
	NodeModules  string `yaml:"node_modules,omitempty" toml:"node_modules,omitempty" env:"NODE_MODULES"`

	// OutputPath is the build output directory. Required.
	OutputPath     string `yaml:"output_path,omitempty" toml:"output_path,omitempty" env:"OUTPUT_PATH"`
	OutputFilename string `yaml:"output_filename,omitempty" toml:"output_filename,omitempty" env:"OUTPUT_FILENAME"`

	// PublicPath is the URL prefix of every emitted asset.
	PublicPath string `yaml:"public_path,omitempty" toml:"public_path,omitempty" env:"PUBLIC_PATH"`

	// IconsSpriteLoader lists the directories whose SVGs go into the icon
	// sprite instead of through the image loader.
	IconsSpriteLoader  []string `yaml:"icons_sprite_loader,omitempty" toml:"icons_sprite_loader,omitempty" env:"ICONS_SPRITE_LOADER" envSeparator:","`
	BabelLoaderInclude []string `yaml:"babel_loader_include,omitempty" toml:"babel_loader_include,omitempty" env:"BABEL_LOADER_INCLUDE" envSeparator:","`
	SassIncludePaths   []string `yaml:"sass_include_paths,omitempty" toml:"sass_include_paths,omitempty" env:"SASS_INCLUDE_PATHS" envSeparator:","`
}

// LoaderStep is one loader of a loader chain as written in the project file.
type LoaderStep struct {
	Loader  string         `yaml:"loader" toml:"loader"`
	Options map[string]any `yaml:"options,omitempty" toml:"options,omitempty"`
}

// Options is the finalized input record for the generators.
type Options struct {
	Paths `yaml:",inline"`

	// SVGSprites are spliced into the JS loader chain between the transpile
	// and lint steps.
	SVGSprites []LoaderStep `yaml:"svg_sprites,omitempty" toml:"svg_sprites,omitempty"`

	// DevServer overrides the development server defaults key by key.
	DevServer map[string]any `yaml:"dev_server,omitempty" toml:"dev_server,omitempty"`
}

// DefaultPaths returns the defaults for every optional path.
// AppEntry and OutputPath have no default.
func DefaultPaths() Paths {
	return Paths{
		Context:            ".",
		AppPublic:          "public",
		AppSrc:             "src",
		HTMLTemplate:       "public/index.html",
		NodeModules:        "node_modules",
		OutputFilename:     "[name].[hash:8].js",
		PublicPath:         "/",
		IconsSpriteLoader:  []string{"src/media/icons"},
		BabelLoaderInclude: []string{"src"},
		SassIncludePaths:   []string{"src/styles"},
	}
}

// Resolve fills every unset option with its default and checks that the
// required ones are present. partial is not modified.
func Resolve(partial Options) (Options, error) {
	out := partial.clone()

	if err := mergo.Merge(&out.Paths, DefaultPaths()); err != nil {
		return Options{}, fmt.Errorf("applying path defaults: %w", err)
	}

	if out.DevServer == nil {
		out.DevServer = map[string]any{}
	}
	if _, ok := out.DevServer["port"]; !ok {
		out.DevServer["port"] = DefaultDevServerPort
	}

	if err := checkRequired(out); err != nil {
		return Options{}, err
	}
	return out, nil
}

func checkRequired(o Options) error {
	e := &InvalidOptionsError{}
	if o.AppEntry == "" {
		e.Missing = append(e.Missing, "app_entry")
	}
	if o.OutputPath == "" {
		e.Missing = append(e.Missing, "output_path")
	}

	lists := []struct {
		key  string
		vals []string
	}{
		{"icons_sprite_loader", o.IconsSpriteLoader},
		{"babel_loader_include", o.BabelLoaderInclude},
		{"sass_include_paths", o.SassIncludePaths},
	}
	for _, l := range lists {
		for i, v := range l.vals {
			if v == "" {
				e.Empty = append(e.Empty, fmt.Sprintf("%s[%d]", l.key, i))
			}
		}
	}
	for i, s := range o.SVGSprites {
		if s.Loader == "" {
			e.Empty = append(e.Empty, fmt.Sprintf("svg_sprites[%d].loader", i))
		}
	}

	if len(e.Missing) > 0 || len(e.Empty) > 0 {
		return e
	}
	return nil
}

func (o Options) clone() Options {
	out := o
	out.IconsSpriteLoader = slices.Clone(o.IconsSpriteLoader)
	out.BabelLoaderInclude = slices.Clone(o.BabelLoaderInclude)
	out.SassIncludePaths = slices.Clone(o.SassIncludePaths)
	if o.SVGSprites != nil {
		out.SVGSprites = make([]LoaderStep, len(o.SVGSprites))
		for i, s := range o.SVGSprites {
			out.SVGSprites[i] = LoaderStep{Loader: s.Loader, Options: maps.Clone(s.Options)}
		}
	}
	out.DevServer = maps.Clone(o.DevServer)
	return out
}
