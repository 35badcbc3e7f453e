package bundle

import (
	"fmt"
	"path"
	"regexp"
	"strings"
)

// Pattern compiles the rule's test literal. Only the i flag is honoured.
func (r Rule) Pattern() (*regexp.Regexp, error) {
	src, flags, err := splitLiteral(r.Test)
	if err != nil {
		return nil, err
	}
	if strings.Contains(flags, "i") {
		src = "(?i)" + src
	}
	re, err := regexp.Compile(src)
	if err != nil {
		return nil, fmt.Errorf("rule %s: %w", r.Test, err)
	}
	return re, nil
}

// Applies reports whether the bundler would run file through this rule:
// the test matches, file lies under an include (when any are set) and under
// no exclude. Paths are compared slash-separated and relative to the context.
func (r Rule) Applies(file string) bool {
	re, err := r.Pattern()
	if err != nil || !re.MatchString(file) {
		return false
	}
	if len(r.Include) > 0 && !underAny(file, r.Include) {
		return false
	}
	return !underAny(file, r.Exclude)
}

// Loaders returns the loader names of the chain, in order.
func (r Rule) Loaders() []string {
	names := make([]string, len(r.Use))
	for i, s := range r.Use {
		names[i] = s.Loader
	}
	return names
}

func splitLiteral(lit string) (src, flags string, err error) {
	if !strings.HasPrefix(lit, "/") {
		return "", "", fmt.Errorf("rule test %q: not a /pattern/ literal", lit)
	}
	end := strings.LastIndex(lit, "/")
	if end == 0 {
		return "", "", fmt.Errorf("rule test %q: unterminated literal", lit)
	}
	return lit[1:end], lit[end+1:], nil
}

func underAny(file string, dirs []string) bool {
	file = path.Clean(file)
	for _, d := range dirs {
		d = path.Clean(d)
		if file == d || strings.HasPrefix(file, d+"/") {
			return true
		}
	}
	return false
}
