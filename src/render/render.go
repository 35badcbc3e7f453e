// Package render serializes a generated bundler config for the bundler to
// consume: as JSON, as YAML, or as a CommonJS webpack.config.js module.
package render

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/sofmeright/stagepack/src/bundle"
)

// Format names an output encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatJS   Format = "js"
)

// ErrUnknownFormat is returned for an unsupported format name.
var ErrUnknownFormat = errors.New("unknown output format")

// Formats returns every supported format name.
func Formats() []string {
	return []string{string(FormatJSON), string(FormatYAML), string(FormatJS)}
}

// ParseFormat returns the Format named by s. Empty selects JSON.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatJSON:
		return FormatJSON, nil
	case FormatYAML, "yml":
		return FormatYAML, nil
	case FormatJS, "javascript":
		return FormatJS, nil
	}
	return "", fmt.Errorf("%w %q (want one of %s)", ErrUnknownFormat, s, strings.Join(Formats(), ", "))
}

// Ext returns the file extension conventionally used for f.
func (f Format) Ext() string {
	switch f {
	case FormatYAML:
		return ".yaml"
	case FormatJS:
		return ".js"
	}
	return ".json"
}

// Options tunes rendering.
type Options struct {
	// Minify compacts JS output. Ignored by the other formats.
	Minify bool
}

// Write renders c in format f to w.
func Write(w io.Writer, c *bundle.Config, f Format, opts Options) error {
	var (
		out []byte
		err error
	)
	switch f {
	case FormatJSON:
		out, err = JSON(c)
	case FormatYAML:
		out, err = YAML(c)
	case FormatJS:
		out, err = JS(c, opts)
	default:
		return fmt.Errorf("%w %q", ErrUnknownFormat, f)
	}
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}

// JSON renders c as indented JSON. Raw expressions keep their marker form.
func JSON(c *bundle.Config) ([]byte, error) {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding json: %w", err)
	}
	return append(data, '\n'), nil
}

// YAML renders c as YAML with two-space indentation.
func YAML(c *bundle.Config) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return nil, fmt.Errorf("encoding yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encoding yaml: %w", err)
	}
	return buf.Bytes(), nil
}
