package bundle

import (
	"fmt"

	"github.com/sofmeright/stagepack/src/merge"
	"gopkg.in/yaml.v3"
)

// JSKey marks a mapping that stands for a raw JavaScript expression, such as
// a filter callback. Emitters that write JavaScript print the expression
// verbatim; data emitters keep the mapping.
const JSKey = "$js"

// JS wraps a JavaScript expression for use inside plugin or loader options.
func JS(expr string) map[string]any {
	return map[string]any{JSKey: expr}
}

// ExprOf returns the expression held by a JS marker.
func ExprOf(v any) (string, bool) {
	m, ok := v.(map[string]any)
	if !ok || len(m) != 1 {
		return "", false
	}
	s, ok := m[JSKey].(string)
	return s, ok
}

// Tree converts c to the generic tree form used by package merge.
func (c *Config) Tree() (merge.Map, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("encoding config: %w", err)
	}
	tree := merge.Map{}
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return nil, fmt.Errorf("decoding config tree: %w", err)
	}
	return tree, nil
}

// FromTree decodes a tree back into a Config.
func FromTree(tree merge.Map) (*Config, error) {
	data, err := yaml.Marshal(tree)
	if err != nil {
		return nil, fmt.Errorf("encoding config tree: %w", err)
	}
	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	return &c, nil
}
