package render

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/evanw/esbuild/pkg/api"

	"github.com/sofmeright/stagepack/src/bundle"
)

// Header is prepended to every generated JS module.
const Header = "// Generated by stagepack. Do not edit.\n"

// ErrInvalidJS is returned when the emitted module does not parse.
var ErrInvalidJS = errors.New("generated javascript is invalid")

var (
	identRe = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

	// Values at these paths are printed as raw source.
	testPath = regexp.MustCompile(`^module\.rules\[\d+\]\.test$`)

	// Values at these paths are directories resolved against the config file.
	dirPath = regexp.MustCompile(`^(module\.rules\[\d+\]\.(include|exclude)\[\d+\]|output\.path|context)$`)
)

// JS renders c as a CommonJS module exporting the config. Plugins become
// constructor calls on their required modules, rule tests become regular
// expression literals, raw expression markers are inlined and directories
// are resolved against the module's own location.
//
// The module is parsed by esbuild before it is returned, so a config that
// cannot be expressed as valid JavaScript is reported instead of written.
func JS(c *bundle.Config, opts Options) ([]byte, error) {
	tree, err := c.Tree()
	if err != nil {
		return nil, err
	}

	e := &jsEmitter{idents: map[string]string{}}
	body := e.value("", map[string]any(tree))

	var src strings.Builder
	src.WriteString(`const path = require("path");` + "\n")
	for _, mod := range e.modules() {
		fmt.Fprintf(&src, "const %s = require(%s);\n", e.idents[mod], quote(mod))
	}
	src.WriteString("\nmodule.exports = " + body + ";\n")

	res := api.Transform(src.String(), api.TransformOptions{
		Loader:            api.LoaderJS,
		Sourcefile:        "webpack.config.js",
		MinifyWhitespace:  opts.Minify,
		MinifyIdentifiers: opts.Minify,
		MinifySyntax:      opts.Minify,
	})
	if len(res.Errors) > 0 {
		msgs := make([]string, 0, len(res.Errors))
		for _, m := range res.Errors {
			if m.Location != nil {
				msgs = append(msgs, fmt.Sprintf("%d:%d: %s", m.Location.Line, m.Location.Column, m.Text))
			} else {
				msgs = append(msgs, m.Text)
			}
		}
		return nil, fmt.Errorf("%w: %s", ErrInvalidJS, strings.Join(msgs, "; "))
	}

	return append([]byte(Header), res.Code...), nil
}

type jsEmitter struct {
	// idents maps a required module to its local binding.
	idents map[string]string
}

func (e *jsEmitter) modules() []string {
	mods := make([]string, 0, len(e.idents))
	for m := range e.idents {
		mods = append(mods, m)
	}
	sort.Strings(mods)
	return mods
}

func (e *jsEmitter) value(path string, v any) string {
	if expr, ok := bundle.ExprOf(v); ok {
		return expr
	}
	switch t := v.(type) {
	case nil:
		return "null"
	case string:
		if testPath.MatchString(path) {
			return t
		}
		if dirPath.MatchString(path) {
			return "path.resolve(__dirname, " + quote(t) + ")"
		}
		return quote(t)
	case bool:
		return strconv.FormatBool(t)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case uint64:
		return strconv.FormatUint(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64)
	case []any:
		parts := make([]string, len(t))
		for i, item := range t {
			parts[i] = e.value(fmt.Sprintf("%s[%d]", path, i), item)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case map[string]any:
		if call, ok := e.plugin(path, t); ok {
			return call
		}
		return e.object(path, t)
	}
	// Anything else is data the tree codec produced; JSON is valid JS.
	b, err := json.Marshal(v)
	if err != nil {
		return "null"
	}
	return string(b)
}

func (e *jsEmitter) object(path string, m map[string]any) string {
	if len(m) == 0 {
		return "{}"
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		child := k
		if path != "" {
			child = path + "." + k
		}
		parts[i] = key(k) + ": " + e.value(child, m[k])
	}
	return "{ " + strings.Join(parts, ", ") + " }"
}

// plugin prints a plugin descriptor as a constructor call. A descriptor is a
// mapping holding a known kind and nothing but an optional config.
func (e *jsEmitter) plugin(path string, m map[string]any) (string, bool) {
	kind, ok := m["kind"].(string)
	if !ok {
		return "", false
	}
	for k := range m {
		if k != "kind" && k != "config" {
			return "", false
		}
	}
	src, ok := bundle.SourceOf(bundle.PluginKind(kind))
	if !ok {
		return "", false
	}

	ctor := e.require(src.Module)
	if src.Constructor != "" {
		ctor += "." + src.Constructor
	}
	cfg, ok := m["config"]
	if !ok || cfg == nil {
		return "new " + ctor + "()", true
	}
	return "new " + ctor + "(" + e.value(path+".config", cfg) + ")", true
}

// require records mod and returns its local binding.
func (e *jsEmitter) require(mod string) string {
	if id, ok := e.idents[mod]; ok {
		return id
	}
	taken := map[string]bool{"path": true}
	for _, v := range e.idents {
		taken[v] = true
	}
	base := binding(mod)
	id := base
	for n := 2; taken[id]; n++ {
		id = fmt.Sprintf("%s%d", base, n)
	}
	e.idents[mod] = id
	return id
}

// binding turns a module path into a PascalCase identifier:
// "html-webpack-plugin" becomes HtmlWebpackPlugin. The bundler itself keeps
// its conventional lowercase name.
func binding(mod string) string {
	if mod == "webpack" {
		return "webpack"
	}
	var b strings.Builder
	upper := true
	for _, r := range mod {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			upper = true
			continue
		}
		if upper {
			r = unicode.ToUpper(r)
			upper = false
		}
		b.WriteRune(r)
	}
	id := b.String()
	if id == "" || unicode.IsDigit(rune(id[0])) {
		id = "M" + id
	}
	return id
}

func key(k string) string {
	if identRe.MatchString(k) {
		return k
	}
	return quote(k)
}

func quote(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}
